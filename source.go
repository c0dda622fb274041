package configurables

import (
	"errors"
	"fmt"
	"os"
	"reflect"
	"strings"
)

// Source identifies one configuration source kind within a resolution
// order.
type Source string

const (
	// SourceCLI represents values parsed from command-line arguments.
	SourceCLI Source = "cli"
	// SourceFile represents values loaded from a configuration file.
	SourceFile Source = "file"
	// SourceEnv represents values read from environment variables.
	SourceEnv Source = "env"
)

// Interpreter extracts raw string values for schema fields from one
// external source. Fields the source cannot supply are simply absent
// from the result; absence is not an error at this stage. Supply must
// be side-effect-free apart from reading its designated source, and is
// re-invoked on every resolution.
type Interpreter interface {
	Kind() Source
	Supply(schema *Schema) (map[string]string, error)
}

// EnvTransformFunc converts a field name to an environment variable
// name.
type EnvTransformFunc func(name string) string

// FileSource reads one structured configuration file through a format
// registry.
type FileSource struct {
	// Path of the configuration file.
	Path string

	// Format is an explicit codec tag overriding extension detection.
	Format string

	// Optional makes a missing file degrade to an empty mapping
	// instead of failing with ErrConfigNotFound.
	Optional bool

	// Registry to select codecs from; nil means DefaultRegistry.
	Registry *Registry
}

func (f *FileSource) Kind() Source { return SourceFile }

func (f *FileSource) Supply(schema *Schema) (map[string]string, error) {
	reg := f.Registry
	if reg == nil {
		reg = DefaultRegistry()
	}

	var codec Format
	if f.Format != "" {
		c, ok := reg.Lookup(f.Format)
		if !ok {
			return nil, &UnknownFormatError{Tag: f.Format}
		}
		codec = c
	} else {
		c, err := reg.forPath(f.Path)
		if err != nil {
			return nil, err
		}
		codec = c
	}
	if codec.Parse == nil {
		return nil, &UnknownFormatError{Tag: normalizeTag(f.Format)}
	}

	data, err := os.ReadFile(f.Path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			if f.Optional {
				return map[string]string{}, nil
			}
			return nil, fmt.Errorf("%w: %s", ErrConfigNotFound, f.Path)
		}
		return nil, fmt.Errorf("failed to read config file '%s': %w", f.Path, err)
	}

	doc, err := codec.Parse(data)
	if err != nil {
		return nil, fmt.Errorf("failed to parse config file '%s': %w", f.Path, err)
	}

	// Named section first, then the reserved DEFAULT section, then flat
	// top-level keys. A key found in an earlier scope is never
	// overwritten by a later one.
	out := make(map[string]string)
	for _, section := range sectionLookup(schema.Section()) {
		keys, ok := doc[section]
		if !ok {
			continue
		}
		for _, field := range schema.Fields() {
			if _, have := out[field.Name]; have {
				continue
			}
			if raw, ok := keys[field.Name]; ok {
				out[field.Name] = raw
			}
		}
	}
	return out, nil
}

func sectionLookup(section string) []string {
	scopes := make([]string, 0, 3)
	if section != "" && section != DefaultSection {
		scopes = append(scopes, section)
	}
	return append(scopes, DefaultSection, "")
}

// EnvSource reads identically-named process environment variables for
// each schema field: exact case match, no prefixing. A Transform hook
// may remap field names to variable names; nil means identity.
type EnvSource struct {
	Transform EnvTransformFunc
}

func (e *EnvSource) Kind() Source { return SourceEnv }

func (e *EnvSource) Supply(schema *Schema) (map[string]string, error) {
	out := make(map[string]string)
	for _, field := range schema.Fields() {
		name := field.Name
		if e.Transform != nil {
			name = e.Transform(field.Name)
		}
		if value, exists := os.LookupEnv(name); exists {
			out[field.Name] = value
		}
	}
	return out, nil
}

// CLISource scans a raw token list for schema fields using the
// "--field value" and "--field=value" conventions. Boolean-typed fields
// additionally accept bare "--field" as true. Unknown flags are skipped
// unless Strict is set, in which case they fail with UnknownFlagError;
// lenient mode lets unrelated program flags coexist on the same line.
type CLISource struct {
	Args   []string
	Strict bool
}

func (c *CLISource) Kind() Source { return SourceCLI }

func (c *CLISource) Supply(schema *Schema) (map[string]string, error) {
	out := make(map[string]string)
	args := c.Args
	i := 0
	for i < len(args) {
		arg := args[i]
		if !strings.HasPrefix(arg, "--") {
			// Skip non-flag arguments
			i++
			continue
		}

		content := strings.TrimPrefix(arg, "--")
		if content == "" {
			// Skip "--" used as a separator
			i++
			continue
		}

		var name, value string
		hasValue := false
		if eq := strings.Index(content, "="); eq >= 0 {
			name = content[:eq]
			value = content[eq+1:]
			hasValue = true
			i++
		} else {
			name = content
			if i+1 < len(args) && !strings.HasPrefix(args[i+1], "--") {
				value = args[i+1]
				hasValue = true
				i += 2
			} else {
				i++
			}
		}

		field, known := schema.Lookup(name)
		if !known {
			if c.Strict {
				return nil, &UnknownFlagError{Flag: name}
			}
			continue
		}
		if !hasValue {
			if !isBoolField(field) {
				return nil, fmt.Errorf("flag --%s requires a value", name)
			}
			value = "true"
		}
		out[name] = value
	}
	return out, nil
}

// isBoolField reports whether a field was declared with the built-in
// Bool coercer, enabling the bare-flag form.
func isBoolField(f Field) bool {
	if f.Coerce == nil {
		return false
	}
	return reflect.ValueOf(f.Coerce).Pointer() == reflect.ValueOf(Bool).Pointer()
}
