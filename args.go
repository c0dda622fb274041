package configurables

import (
	"fmt"
	"reflect"
	"strconv"
)

// Args is the resolved argument mapping a Resolver produces: one typed
// value per schema field. The typed accessors convert across common
// representations so callers are not coupled to the exact coercer a
// field was declared with.
type Args map[string]any

// Value returns the raw resolved value for name.
func (a Args) Value(name string) (any, bool) {
	v, ok := a[name]
	return v, ok
}

// String retrieves a string argument, converting common types when the
// resolved value isn't already a string.
func (a Args) String(name string) (string, error) {
	val, found := a[name]
	if !found {
		return "", fmt.Errorf("no resolved value for %q", name)
	}
	if val == nil {
		return "", nil
	}

	switch v := val.(type) {
	case string:
		return v, nil
	case fmt.Stringer:
		return v.String(), nil
	case []byte:
		return string(v), nil
	case bool:
		return strconv.FormatBool(v), nil
	}

	rv := reflect.ValueOf(val)
	switch rv.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return strconv.FormatInt(rv.Int(), 10), nil
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return strconv.FormatUint(rv.Uint(), 10), nil
	case reflect.Float32, reflect.Float64:
		return strconv.FormatFloat(rv.Float(), 'g', -1, 64), nil
	}

	return "", fmt.Errorf("cannot convert type %T to string for %q", val, name)
}

// Int retrieves an int64 argument, converting numeric types and
// parsable strings.
func (a Args) Int(name string) (int64, error) {
	val, found := a[name]
	if !found {
		return 0, fmt.Errorf("no resolved value for %q", name)
	}
	if val == nil {
		return 0, fmt.Errorf("value for %q is nil, cannot convert to int64", name)
	}

	rv := reflect.ValueOf(val)
	switch rv.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return rv.Int(), nil
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		u := rv.Uint()
		if u > uint64(^uint64(0)>>1) {
			return 0, fmt.Errorf("cannot convert %d to int64 for %q: overflow", u, name)
		}
		return int64(u), nil
	case reflect.Float32, reflect.Float64:
		return int64(rv.Float()), nil
	case reflect.String:
		s := rv.String()
		i, err := strconv.ParseInt(s, 10, 64)
		if err != nil {
			return 0, fmt.Errorf("cannot convert string %q to int64 for %q: %w", s, name, err)
		}
		return i, nil
	case reflect.Bool:
		if rv.Bool() {
			return 1, nil
		}
		return 0, nil
	}

	return 0, fmt.Errorf("cannot convert type %T to int64 for %q", val, name)
}

// Float retrieves a float64 argument, converting numeric types and
// parsable strings.
func (a Args) Float(name string) (float64, error) {
	val, found := a[name]
	if !found {
		return 0, fmt.Errorf("no resolved value for %q", name)
	}
	if val == nil {
		return 0, fmt.Errorf("value for %q is nil, cannot convert to float64", name)
	}

	rv := reflect.ValueOf(val)
	switch rv.Kind() {
	case reflect.Float32, reflect.Float64:
		return rv.Float(), nil
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return float64(rv.Int()), nil
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return float64(rv.Uint()), nil
	case reflect.String:
		s := rv.String()
		f, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return 0, fmt.Errorf("cannot convert string %q to float64 for %q: %w", s, name, err)
		}
		return f, nil
	}

	return 0, fmt.Errorf("cannot convert type %T to float64 for %q", val, name)
}

// Bool retrieves a boolean argument, converting the engine's truthy and
// falsy string forms and numeric values (0 = false).
func (a Args) Bool(name string) (bool, error) {
	val, found := a[name]
	if !found {
		return false, fmt.Errorf("no resolved value for %q", name)
	}
	if val == nil {
		return false, fmt.Errorf("value for %q is nil, cannot convert to bool", name)
	}

	rv := reflect.ValueOf(val)
	switch rv.Kind() {
	case reflect.Bool:
		return rv.Bool(), nil
	case reflect.String:
		parsed, err := coerceBool(rv.String())
		if err != nil {
			return false, fmt.Errorf("cannot convert string %q to bool for %q: %w", rv.String(), name, err)
		}
		return parsed.(bool), nil
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return rv.Int() != 0, nil
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return rv.Uint() != 0, nil
	case reflect.Float32, reflect.Float64:
		return rv.Float() != 0, nil
	}

	return false, fmt.Errorf("cannot convert type %T to bool for %q", val, name)
}

// PathValue retrieves a path-typed argument. Paths are plain strings;
// the engine never checks their existence.
func (a Args) PathValue(name string) (string, error) {
	return a.String(name)
}
