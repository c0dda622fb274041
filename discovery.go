package configurables

import (
	"os"
	"path/filepath"
	"strings"
)

// FileDiscoveryOptions configures automatic config file discovery.
type FileDiscoveryOptions struct {
	// Base name of the config file (without extension).
	Name string

	// Extensions to try (in order). Empty means the standard built-in
	// formats: .ini, .conf, .toml, .yaml, .yml, .json.
	Extensions []string

	// Custom search paths (in addition to defaults).
	Paths []string

	// Environment variable to check for an explicit path.
	EnvVar string

	// CLI flag to check (e.g. "--config").
	CLIFlag string

	// Whether to search XDG config directories.
	UseXDG bool

	// Whether to search the current directory.
	UseCurrentDir bool
}

// DefaultDiscoveryOptions returns sensible defaults for appName.
func DefaultDiscoveryOptions(appName string) FileDiscoveryOptions {
	return FileDiscoveryOptions{
		Name:          appName,
		EnvVar:        strings.ToUpper(appName) + "_CONFIG",
		CLIFlag:       "--config",
		UseXDG:        true,
		UseCurrentDir: true,
	}
}

func defaultDiscoveryExtensions() []string {
	return []string{".ini", ".conf", ".toml", ".yaml", ".yml", ".json"}
}

// WithFileDiscovery binds the first config file found by checking, in
// priority order: the CLI flag, the environment variable, then the
// search paths (custom, current directory, XDG). A discovered file is
// bound as optional so a later deletion degrades rather than fails; no
// file found leaves the resolver without a file source, which is not an
// error.
func (b *Binder) WithFileDiscovery(opts FileDiscoveryOptions) *Binder {
	// CLI flag first (highest priority)
	if opts.CLIFlag != "" {
		for i, arg := range b.cli.Args {
			if arg == opts.CLIFlag && i+1 < len(b.cli.Args) {
				return b.WithOptionalFile(b.cli.Args[i+1])
			}
			if strings.HasPrefix(arg, opts.CLIFlag+"=") {
				return b.WithOptionalFile(strings.TrimPrefix(arg, opts.CLIFlag+"="))
			}
		}
	}

	// Environment variable
	if opts.EnvVar != "" {
		if path := os.Getenv(opts.EnvVar); path != "" {
			return b.WithOptionalFile(path)
		}
	}

	var searchPaths []string
	searchPaths = append(searchPaths, opts.Paths...)
	if opts.UseCurrentDir {
		if cwd, err := os.Getwd(); err == nil {
			searchPaths = append(searchPaths, cwd)
		}
	}
	if opts.UseXDG {
		searchPaths = append(searchPaths, xdgConfigPaths(opts.Name)...)
	}

	extensions := opts.Extensions
	if len(extensions) == 0 {
		extensions = defaultDiscoveryExtensions()
	}

	for _, dir := range searchPaths {
		for _, ext := range extensions {
			path := filepath.Join(dir, opts.Name+ext)
			if _, err := os.Stat(path); err == nil {
				return b.WithOptionalFile(path)
			}
		}
	}

	// No file found is not an error; the schema's requiredness checks
	// still apply at resolution time.
	return b
}

// xdgConfigPaths returns XDG-compliant config search paths.
func xdgConfigPaths(appName string) []string {
	var paths []string

	if xdgHome := os.Getenv("XDG_CONFIG_HOME"); xdgHome != "" {
		paths = append(paths, filepath.Join(xdgHome, appName))
	} else if home := os.Getenv("HOME"); home != "" {
		paths = append(paths, filepath.Join(home, ".config", appName))
	}

	if xdgDirs := os.Getenv("XDG_CONFIG_DIRS"); xdgDirs != "" {
		for _, dir := range filepath.SplitList(xdgDirs) {
			paths = append(paths, filepath.Join(dir, appName))
		}
	} else {
		paths = append(paths,
			filepath.Join("/etc/xdg", appName),
			filepath.Join("/etc", appName),
		)
	}

	return paths
}
