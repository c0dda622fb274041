package configurables

import (
	"fmt"
	"reflect"

	"github.com/mitchellh/mapstructure"
)

// Scan decodes the resolved arguments into the target struct or map.
// The target must be a non-nil pointer. Fields are matched by the
// "config" struct tag, falling back to the field name. Weak typing is
// enabled so resolved values convert to the target's field types, with
// hooks for time.Duration and comma-separated slices.
func (a Args) Scan(target any) error {
	rv := reflect.ValueOf(target)
	if rv.Kind() != reflect.Ptr || rv.IsNil() {
		return fmt.Errorf("target of Scan must be a non-nil pointer, got %T", target)
	}

	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:           target,
		TagName:          "config",
		WeaklyTypedInput: true,
		DecodeHook: mapstructure.ComposeDecodeHookFunc(
			mapstructure.StringToTimeDurationHookFunc(),
			mapstructure.StringToSliceHookFunc(","),
		),
	})
	if err != nil {
		return fmt.Errorf("failed to create mapstructure decoder: %w", err)
	}

	if err := decoder.Decode(map[string]any(a)); err != nil {
		return fmt.Errorf("failed to scan resolved arguments into %T: %w", target, err)
	}

	return nil
}
