package configurables

import (
	"fmt"
	"strings"
)

// Quick resolves schema against configFile with the default precedence
// and os.Args for the command line. The file is optional; a missing
// file only fails resolution if a required field then has no value.
// This is the recommended entry point for most applications.
func Quick(schema *Schema, configFile string) (Args, error) {
	b := NewResolver(schema)
	if configFile != "" {
		b.WithOptionalFile(configFile)
	}
	r, err := b.Bind()
	if err != nil {
		return nil, err
	}
	return r.Resolve(nil)
}

// MustQuick is like Quick but panics on error.
func MustQuick(schema *Schema, configFile string) Args {
	args, err := Quick(schema, configFile)
	if err != nil {
		panic(fmt.Sprintf("configuration resolution failed: %v", err))
	}
	return args
}

// Configure resolves schema against configFile and hands the resolved
// arguments to target. Any resolution error is returned before target
// runs.
func Configure(schema *Schema, configFile string, target func(Args) error) error {
	args, err := Quick(schema, configFile)
	if err != nil {
		return err
	}
	return target(args)
}

// Debug returns a formatted dump of the resolver's bound precedence and
// the raw values each source currently supplies per field. Sources are
// re-read, so the dump reflects their present state.
func (r *Resolver) Debug() string {
	var b strings.Builder
	b.WriteString("Resolution Debug Info:\n")
	b.WriteString(fmt.Sprintf("Precedence: %s\n", r.order))
	if section := r.schema.Section(); section != "" {
		b.WriteString(fmt.Sprintf("Section: %s\n", section))
	}

	supplied := make(map[Source]map[string]string, len(r.order))
	for _, kind := range r.order {
		interp := r.sources[kind]
		if interp == nil {
			continue
		}
		values, err := interp.Supply(r.schema)
		if err != nil {
			b.WriteString(fmt.Sprintf("Source %s: error: %v\n", kind, err))
			continue
		}
		supplied[kind] = values
	}

	b.WriteString("Raw values:\n")
	for _, field := range r.schema.Fields() {
		b.WriteString(fmt.Sprintf("  %s:\n", field.Name))
		if !field.Required {
			b.WriteString(fmt.Sprintf("    default: %v\n", field.Default))
		}
		for _, kind := range r.order {
			if raw, ok := supplied[kind][field.Name]; ok {
				b.WriteString(fmt.Sprintf("    %s: %q\n", kind, raw))
			}
		}
	}

	return b.String()
}
