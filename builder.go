package configurables

import "fmt"

// Builder accumulates field declarations for a schema. Declarations are
// collected in call order; the first invalid declaration is held and
// reported by Build.
type Builder struct {
	section string
	fields  []Field
	seen    map[string]bool
	err     error
}

// NewSchema starts a schema builder. The section identifier scopes
// lookups in structured file sources; pass "" for formats or layouts
// without sections.
func NewSchema(section string) *Builder {
	return &Builder{
		section: section,
		seen:    make(map[string]bool),
	}
}

// Param declares a required field with no default.
func (b *Builder) Param(name string, coerce Coercer) *Builder {
	return b.add(Field{Name: name, Coerce: coerce, Required: true})
}

// Option declares an optional field. When no source or override
// supplies a value, def is used verbatim; it is not coerced, so it must
// already be of the field's target type.
func (b *Builder) Option(name string, coerce Coercer, def any) *Builder {
	return b.add(Field{Name: name, Coerce: coerce, Default: def})
}

func (b *Builder) add(f Field) *Builder {
	if b.err != nil {
		return b
	}
	if !isValidKeySegment(f.Name) {
		b.err = fmt.Errorf("invalid field name %q", f.Name)
		return b
	}
	if f.Coerce == nil {
		b.err = fmt.Errorf("field %q has no coercer", f.Name)
		return b
	}
	if b.seen[f.Name] {
		b.err = fmt.Errorf("field %q declared twice", f.Name)
		return b
	}
	b.seen[f.Name] = true
	b.fields = append(b.fields, f)
	return b
}

// Build finalizes the schema. The result is immutable; the builder must
// not be reused after Build.
func (b *Builder) Build() (*Schema, error) {
	if b.err != nil {
		return nil, b.err
	}
	if len(b.fields) == 0 {
		return nil, fmt.Errorf("schema declares no fields")
	}

	s := &Schema{
		section: b.section,
		fields:  b.fields,
		index:   make(map[string]int, len(b.fields)),
	}
	for i, f := range b.fields {
		s.index[f.Name] = i
	}
	return s, nil
}

// MustBuild is like Build but panics on error.
func (b *Builder) MustBuild() *Schema {
	s, err := b.Build()
	if err != nil {
		panic(fmt.Sprintf("schema build failed: %v", err))
	}
	return s
}
