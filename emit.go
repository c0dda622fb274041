package configurables

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// Emit renders a template configuration file for the schema at path,
// using the default registry's codec for the destination extension.
// Fields appear in declaration order where the format permits. For each
// field the written value is: the supplied value if present, else the
// declared default for options, else an empty placeholder for required
// fields the caller must fill in. The write is atomic: a failure never
// corrupts a pre-existing file at path.
func Emit(schema *Schema, path string, values map[string]any) error {
	return EmitWith(DefaultRegistry(), schema, path, values)
}

// EmitWith is Emit against an explicit registry.
func EmitWith(reg *Registry, schema *Schema, path string, values map[string]any) error {
	codec, err := reg.forPath(path)
	if err != nil {
		return err
	}
	if codec.Serialize == nil {
		return &UnknownFormatError{Tag: strings.ToLower(filepath.Ext(path))}
	}

	section := schema.Section()
	if section == "" {
		section = DefaultSection
	}

	keys := make(map[string]string, schema.Len())
	for _, field := range schema.Fields() {
		if v, ok := values[field.Name]; ok {
			keys[field.Name] = emitValue(v)
		} else if !field.Required {
			keys[field.Name] = emitValue(field.Default)
		} else {
			keys[field.Name] = ""
		}
	}

	data, err := codec.Serialize(Document{section: keys}, schema.Names())
	if err != nil {
		return fmt.Errorf("failed to serialize template for '%s': %w", path, err)
	}
	return atomicWriteFile(path, data)
}

// emitValue renders a typed value for the template; nil (an option
// with no meaningful default) becomes an empty placeholder.
func emitValue(v any) string {
	if v == nil {
		return ""
	}
	return stringifyValue(v)
}

// atomicWriteFile writes data to path through a temporary file in the
// same directory followed by a rename.
func atomicWriteFile(path string, data []byte) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create directory '%s': %w", dir, err)
	}

	tempFile, err := os.CreateTemp(dir, filepath.Base(path)+".*.tmp")
	if err != nil {
		return fmt.Errorf("failed to create temporary file: %w", err)
	}

	tempPath := tempFile.Name()
	removed := false
	defer func() {
		if !removed {
			os.Remove(tempPath)
		}
	}()

	if _, err := tempFile.Write(data); err != nil {
		tempFile.Close()
		return fmt.Errorf("failed to write temporary file: %w", err)
	}

	if err := tempFile.Sync(); err != nil {
		tempFile.Close()
		return fmt.Errorf("failed to sync temporary file: %w", err)
	}

	if err := tempFile.Close(); err != nil {
		return fmt.Errorf("failed to close temporary file: %w", err)
	}

	if err := os.Chmod(tempPath, 0644); err != nil {
		return fmt.Errorf("failed to set permissions: %w", err)
	}

	if err := os.Rename(tempPath, path); err != nil {
		return fmt.Errorf("failed to rename temporary file to '%s': %w", path, err)
	}
	removed = true

	return nil
}
