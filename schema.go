package configurables

// Field is a single named declaration within a schema. A required field
// (a parameter) carries no default; an optional field (an option) falls
// back to its default when no source supplies a value. Defaults are
// used as-is and are never passed through the coercer.
type Field struct {
	Name     string
	Coerce   Coercer
	Required bool
	Default  any
}

// Schema is an ordered, immutable collection of field declarations plus
// an optional section identifier used by structured file sources to
// scope lookups (e.g. an INI section header).
type Schema struct {
	section string
	fields  []Field
	index   map[string]int
}

// Section returns the section identifier, or "" if none was declared.
func (s *Schema) Section() string { return s.section }

// Len returns the number of declared fields.
func (s *Schema) Len() int { return len(s.fields) }

// Fields returns the declarations in declaration order. The returned
// slice is a copy; the schema itself never changes after Build.
func (s *Schema) Fields() []Field {
	out := make([]Field, len(s.fields))
	copy(out, s.fields)
	return out
}

// Lookup returns the declaration for name.
func (s *Schema) Lookup(name string) (Field, bool) {
	i, ok := s.index[name]
	if !ok {
		return Field{}, false
	}
	return s.fields[i], true
}

// Names returns the declared field names in declaration order.
func (s *Schema) Names() []string {
	names := make([]string, len(s.fields))
	for i, f := range s.fields {
		names[i] = f.Name
	}
	return names
}
