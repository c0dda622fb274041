package configurables

import (
	"fmt"
	"strconv"
	"strings"
)

// Coercer converts the raw string token a source supplied for a field
// into the field's typed value. A coercer must be a pure function; the
// engine invokes it exactly once per field, on the final merged raw
// string. Any function with this signature may be used as a custom
// coercer.
type Coercer func(raw string) (any, error)

// Built-in coercers for field declarations.
var (
	// Int parses a base-10 integer (optional sign) into an int64.
	Int Coercer = coerceInt

	// Float parses a decimal or exponent form into a float64.
	Float Coercer = coerceFloat

	// Bool maps the truthy set {"true","1","yes","on"} and falsy set
	// {"false","0","no","off"}, case-insensitively. Anything else fails.
	Bool Coercer = coerceBool

	// String is the identity coercion.
	String Coercer = coerceString

	// Path wraps the raw string without touching the filesystem; no
	// existence check is performed.
	Path Coercer = coercePath
)

func coerceInt(raw string) (any, error) {
	v, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return nil, fmt.Errorf("%q is not an integer", raw)
	}
	return v, nil
}

func coerceFloat(raw string) (any, error) {
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return nil, fmt.Errorf("%q is not a floating point number", raw)
	}
	return v, nil
}

var (
	truthy = map[string]bool{"true": true, "1": true, "yes": true, "on": true}
	falsy  = map[string]bool{"false": true, "0": true, "no": true, "off": true}
)

func coerceBool(raw string) (any, error) {
	switch lowered := strings.ToLower(raw); {
	case truthy[lowered]:
		return true, nil
	case falsy[lowered]:
		return false, nil
	default:
		return nil, fmt.Errorf("%q is not a boolean", raw)
	}
}

func coerceString(raw string) (any, error) {
	return raw, nil
}

func coercePath(raw string) (any, error) {
	return raw, nil
}
