package configurables_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/confield/configurables"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestFileSource(t *testing.T) {
	schema := configurables.NewSchema("PipelineSettings").
		Param("ra", configurables.Float).
		Param("dec", configurables.Float).
		Option("n_workers", configurables.Int, int64(4)).
		MustBuild()

	t.Run("Named Section", func(t *testing.T) {
		path := writeFile(t, "config.ini", `
[PipelineSettings]
ra = 10.0
dec = 20.0
n_workers = 5
`)
		src := &configurables.FileSource{Path: path}
		raw, err := src.Supply(schema)
		require.NoError(t, err)
		assert.Equal(t, map[string]string{"ra": "10.0", "dec": "20.0", "n_workers": "5"}, raw)
	})

	t.Run("Default Section Fallback", func(t *testing.T) {
		path := writeFile(t, "config.ini", `
[DEFAULT]
n_workers = 8
ra = 99.0

[PipelineSettings]
ra = 10.0
dec = 20.0
`)
		src := &configurables.FileSource{Path: path}
		raw, err := src.Supply(schema)
		require.NoError(t, err)

		// The named section wins; DEFAULT only fills the gap.
		assert.Equal(t, "10.0", raw["ra"])
		assert.Equal(t, "8", raw["n_workers"])
	})

	t.Run("Missing Named Section Falls Back", func(t *testing.T) {
		path := writeFile(t, "config.ini", `
[DEFAULT]
ra = 1.5
`)
		src := &configurables.FileSource{Path: path}
		raw, err := src.Supply(schema)
		require.NoError(t, err)
		assert.Equal(t, map[string]string{"ra": "1.5"}, raw)
	})

	t.Run("Flat Format Ignores Section", func(t *testing.T) {
		path := writeFile(t, "config.toml", `
ra = 10.0
dec = 20.0
`)
		src := &configurables.FileSource{Path: path}
		raw, err := src.Supply(schema)
		require.NoError(t, err)
		assert.Equal(t, map[string]string{"ra": "10", "dec": "20"}, raw)
	})

	t.Run("Unregistered Fields Ignored", func(t *testing.T) {
		path := writeFile(t, "config.ini", `
[PipelineSettings]
ra = 10.0
unrelated = value
`)
		src := &configurables.FileSource{Path: path}
		raw, err := src.Supply(schema)
		require.NoError(t, err)
		assert.NotContains(t, raw, "unrelated")
	})

	t.Run("Missing File", func(t *testing.T) {
		src := &configurables.FileSource{Path: filepath.Join(t.TempDir(), "absent.ini")}
		_, err := src.Supply(schema)
		assert.ErrorIs(t, err, configurables.ErrConfigNotFound)
	})

	t.Run("Missing Optional File Degrades", func(t *testing.T) {
		src := &configurables.FileSource{
			Path:     filepath.Join(t.TempDir(), "absent.ini"),
			Optional: true,
		}
		raw, err := src.Supply(schema)
		require.NoError(t, err)
		assert.Empty(t, raw)
	})

	t.Run("Unknown Extension", func(t *testing.T) {
		src := &configurables.FileSource{Path: "config.xyz"}
		_, err := src.Supply(schema)

		var formatErr *configurables.UnknownFormatError
		require.ErrorAs(t, err, &formatErr)
		assert.Equal(t, ".xyz", formatErr.Tag)
	})

	t.Run("Explicit Format Override", func(t *testing.T) {
		// INI content behind an unknown extension, selected explicitly.
		path := writeFile(t, "pipeline.cfg", `
[PipelineSettings]
ra = 10.0
`)
		src := &configurables.FileSource{Path: path, Format: "ini"}
		raw, err := src.Supply(schema)
		require.NoError(t, err)
		assert.Equal(t, "10.0", raw["ra"])
	})
}

func TestEnvSource(t *testing.T) {
	schema := configurables.NewSchema("").
		Param("ra", configurables.Float).
		Option("n_workers", configurables.Int, int64(4)).
		MustBuild()

	t.Run("Exact Name Match", func(t *testing.T) {
		os.Setenv("n_workers", "3")
		t.Cleanup(func() { os.Unsetenv("n_workers") })

		src := &configurables.EnvSource{}
		raw, err := src.Supply(schema)
		require.NoError(t, err)
		assert.Equal(t, map[string]string{"n_workers": "3"}, raw)
	})

	t.Run("Case Sensitive", func(t *testing.T) {
		os.Setenv("N_WORKERS", "3")
		t.Cleanup(func() { os.Unsetenv("N_WORKERS") })

		src := &configurables.EnvSource{}
		raw, err := src.Supply(schema)
		require.NoError(t, err)
		assert.NotContains(t, raw, "n_workers")
	})

	t.Run("Transform", func(t *testing.T) {
		os.Setenv("APP_RA", "1.25")
		t.Cleanup(func() { os.Unsetenv("APP_RA") })

		src := &configurables.EnvSource{
			Transform: func(name string) string {
				if name == "ra" {
					return "APP_RA"
				}
				return name
			},
		}
		raw, err := src.Supply(schema)
		require.NoError(t, err)
		assert.Equal(t, "1.25", raw["ra"])
	})
}

func TestCLISource(t *testing.T) {
	schema := configurables.NewSchema("").
		Param("ra", configurables.Float).
		Option("n_workers", configurables.Int, int64(4)).
		Option("verbose", configurables.Bool, false).
		MustBuild()

	t.Run("Space And Equals Forms", func(t *testing.T) {
		src := &configurables.CLISource{Args: []string{"--ra", "10.0", "--n_workers=5"}}
		raw, err := src.Supply(schema)
		require.NoError(t, err)
		assert.Equal(t, map[string]string{"ra": "10.0", "n_workers": "5"}, raw)
	})

	t.Run("Bare Boolean Flag", func(t *testing.T) {
		src := &configurables.CLISource{Args: []string{"--verbose", "--ra", "10.0"}}
		raw, err := src.Supply(schema)
		require.NoError(t, err)
		assert.Equal(t, "true", raw["verbose"])
		assert.Equal(t, "10.0", raw["ra"])
	})

	t.Run("Bare Non-Boolean Flag", func(t *testing.T) {
		src := &configurables.CLISource{Args: []string{"--ra"}}
		_, err := src.Supply(schema)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "requires a value")
	})

	t.Run("Lenient Ignores Unknown Flags", func(t *testing.T) {
		src := &configurables.CLISource{Args: []string{"--other-tool-flag", "x", "--ra=2.5", "positional"}}
		raw, err := src.Supply(schema)
		require.NoError(t, err)
		assert.Equal(t, map[string]string{"ra": "2.5"}, raw)
	})

	t.Run("Strict Rejects Unknown Flags", func(t *testing.T) {
		src := &configurables.CLISource{Args: []string{"--mystery=1"}, Strict: true}
		_, err := src.Supply(schema)

		var flagErr *configurables.UnknownFlagError
		require.ErrorAs(t, err, &flagErr)
		assert.Equal(t, "mystery", flagErr.Flag)
	})

	t.Run("Last Occurrence Wins", func(t *testing.T) {
		src := &configurables.CLISource{Args: []string{"--ra", "1.0", "--ra", "2.0"}}
		raw, err := src.Supply(schema)
		require.NoError(t, err)
		assert.Equal(t, "2.0", raw["ra"])
	})

	t.Run("Separator Skipped", func(t *testing.T) {
		src := &configurables.CLISource{Args: []string{"--", "--ra", "3.0"}}
		raw, err := src.Supply(schema)
		require.NoError(t, err)
		assert.Equal(t, "3.0", raw["ra"])
	})

	t.Run("Negative Values", func(t *testing.T) {
		src := &configurables.CLISource{Args: []string{"--ra", "-10.5"}}
		raw, err := src.Supply(schema)
		require.NoError(t, err)
		assert.Equal(t, "-10.5", raw["ra"])
	})
}

func TestSourceKinds(t *testing.T) {
	assert.Equal(t, configurables.SourceFile, (&configurables.FileSource{}).Kind())
	assert.Equal(t, configurables.SourceEnv, (&configurables.EnvSource{}).Kind())
	assert.Equal(t, configurables.SourceCLI, (&configurables.CLISource{}).Kind())
}
