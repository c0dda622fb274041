package configurables

import (
	"fmt"
	"os"
)

// Binder provides a fluent interface for binding a schema and a set of
// source inputs into a reusable Resolver.
type Binder struct {
	schema   *Schema
	order    Order
	registry *Registry
	file     *FileSource
	env      *EnvSource
	cli      *CLISource
	extra    map[Source]Interpreter
	err      error
}

// NewResolver starts binding a resolver for schema. Without further
// configuration the resolver uses the default order, os.Args for the
// command line, and no file source.
func NewResolver(schema *Schema) *Binder {
	return &Binder{
		schema: schema,
		order:  DefaultOrder(),
		env:    &EnvSource{},
		cli:    &CLISource{Args: os.Args[1:]},
	}
}

// WithFile binds a mandatory configuration file; resolution fails with
// ErrConfigNotFound when the path does not exist.
func (b *Binder) WithFile(path string) *Binder {
	b.file = &FileSource{Path: path}
	return b
}

// WithOptionalFile binds a configuration file that degrades to an
// empty mapping when missing.
func (b *Binder) WithOptionalFile(path string) *Binder {
	b.file = &FileSource{Path: path, Optional: true}
	return b
}

// WithFormat overrides extension-based codec selection for the bound
// file with an explicit tag.
func (b *Binder) WithFormat(tag string) *Binder {
	if b.file == nil {
		if b.err == nil {
			b.err = fmt.Errorf("WithFormat requires a file source bound first")
		}
		return b
	}
	b.file.Format = tag
	return b
}

// WithRegistry selects the format registry used by the file source and
// discovery; nil keeps the default registry.
func (b *Binder) WithRegistry(reg *Registry) *Binder {
	b.registry = reg
	return b
}

// WithArgs replaces the command-line token list (default os.Args[1:]).
func (b *Binder) WithArgs(args []string) *Binder {
	b.cli.Args = args
	return b
}

// WithStrictArgs makes unrecognized command-line flags fail with
// UnknownFlagError instead of being skipped.
func (b *Binder) WithStrictArgs() *Binder {
	b.cli.Strict = true
	return b
}

// WithEnvTransform remaps field names to environment variable names;
// the default is an exact-name lookup.
func (b *Binder) WithEnvTransform(fn EnvTransformFunc) *Binder {
	b.env.Transform = fn
	return b
}

// WithOrder sets the source precedence, first source highest.
func (b *Binder) WithOrder(sources ...Source) *Binder {
	b.order = Order(sources)
	return b
}

// WithInterpreter binds a custom source interpreter under its own kind,
// making that kind referenceable from WithOrder.
func (b *Binder) WithInterpreter(interp Interpreter) *Binder {
	if b.extra == nil {
		b.extra = make(map[Source]Interpreter)
	}
	b.extra[interp.Kind()] = interp
	return b
}

// Bind validates the accumulated inputs and produces the Resolver. The
// built-in kinds are always valid order members: a file kind with no
// bound path simply supplies nothing, mirroring an absent source.
func (b *Binder) Bind() (*Resolver, error) {
	if b.err != nil {
		return nil, b.err
	}
	if b.schema == nil {
		return nil, fmt.Errorf("no schema bound")
	}

	sources := map[Source]Interpreter{
		SourceEnv: b.env,
		SourceCLI: b.cli,
	}
	if b.file != nil {
		b.file.Registry = b.registry
		sources[SourceFile] = b.file
	}
	for kind, interp := range b.extra {
		sources[kind] = interp
	}

	known := func(s Source) bool {
		if s == SourceFile {
			return true
		}
		_, ok := sources[s]
		return ok
	}
	if err := b.order.Validate(known); err != nil {
		return nil, err
	}

	return &Resolver{
		schema:  b.schema,
		order:   append(Order(nil), b.order...),
		sources: sources,
	}, nil
}

// MustBind is like Bind but panics on error.
func (b *Binder) MustBind() *Resolver {
	r, err := b.Bind()
	if err != nil {
		panic(fmt.Sprintf("resolver bind failed: %v", err))
	}
	return r
}

// Resolver is a schema partially applied to a fixed set of sources. It
// holds no state across calls: every Resolve re-reads the external
// sources, so repeated invocations observe file or environment changes.
type Resolver struct {
	schema  *Schema
	order   Order
	sources map[Source]Interpreter
}

// Schema returns the bound schema.
func (r *Resolver) Schema() *Schema { return r.schema }

// Order returns the bound precedence.
func (r *Resolver) Order() Order {
	return append(Order(nil), r.order...)
}

// Resolve runs the full resolution: collect raw values from every
// source in precedence order, apply overrides, coerce, and enforce
// requiredness. Overrides always win regardless of the bound order;
// string override values are coerced like any raw value, while
// non-string overrides are assumed pre-typed and used as-is. Exactly
// one error is returned on failure, for the first failing field in
// declaration order.
func (r *Resolver) Resolve(overrides map[string]any) (Args, error) {
	// COLLECTING: lowest precedence first, so later (higher) sources
	// overwrite on key collision.
	merged := make(map[string]string)
	for i := len(r.order) - 1; i >= 0; i-- {
		interp := r.sources[r.order[i]]
		if interp == nil {
			continue
		}
		supplied, err := interp.Supply(r.schema)
		if err != nil {
			return nil, err
		}
		for name, raw := range supplied {
			merged[name] = raw
		}
	}

	// COERCING: declaration order keeps the reported error stable when
	// several fields are invalid.
	resolved := make(Args, r.schema.Len())
	for _, field := range r.schema.Fields() {
		if override, ok := overrides[field.Name]; ok {
			raw, isString := override.(string)
			if !isString {
				resolved[field.Name] = override
				continue
			}
			value, err := field.Coerce(raw)
			if err != nil {
				return nil, &CoercionError{Field: field.Name, Raw: raw, Err: err}
			}
			resolved[field.Name] = value
			continue
		}

		raw, ok := merged[field.Name]
		if !ok {
			continue
		}
		value, err := field.Coerce(raw)
		if err != nil {
			return nil, &CoercionError{Field: field.Name, Raw: raw, Err: err}
		}
		resolved[field.Name] = value
	}

	// VALIDATING: every required field must have produced a value;
	// options fall back to their declared default verbatim.
	for _, field := range r.schema.Fields() {
		if _, ok := resolved[field.Name]; ok {
			continue
		}
		if field.Required {
			return nil, &MissingFieldError{Field: field.Name}
		}
		resolved[field.Name] = field.Default
	}

	return resolved, nil
}

// ResolveOptions configures a one-shot resolution.
type ResolveOptions struct {
	// File is the configuration file path; empty means no file source.
	File string

	// Format overrides extension-based codec selection.
	Format string

	// Optional tolerates a missing file.
	Optional bool

	// Args is the command-line token list; nil means os.Args[1:], an
	// empty non-nil slice means no command-line input.
	Args []string

	// StrictArgs fails on unrecognized flags.
	StrictArgs bool

	// Order is the source precedence; nil means DefaultOrder.
	Order Order

	// Registry selects format codecs; nil means DefaultRegistry.
	Registry *Registry
}

// Resolve performs a single resolution of schema against the configured
// sources. It is shorthand for binding a Resolver and resolving once.
func Resolve(schema *Schema, opts ResolveOptions, overrides map[string]any) (Args, error) {
	b := NewResolver(schema)
	if opts.File != "" {
		if opts.Optional {
			b.WithOptionalFile(opts.File)
		} else {
			b.WithFile(opts.File)
		}
		if opts.Format != "" {
			b.WithFormat(opts.Format)
		}
	}
	if opts.Args != nil {
		b.WithArgs(opts.Args)
	}
	if opts.StrictArgs {
		b.WithStrictArgs()
	}
	if opts.Order != nil {
		b.WithOrder(opts.Order...)
	}
	if opts.Registry != nil {
		b.WithRegistry(opts.Registry)
	}

	r, err := b.Bind()
	if err != nil {
		return nil, err
	}
	return r.Resolve(overrides)
}
