package configurables_test

import (
	"strings"
	"testing"

	"github.com/confield/configurables"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuiltinCoercers(t *testing.T) {
	t.Run("Int", func(t *testing.T) {
		v, err := configurables.Int("42")
		require.NoError(t, err)
		assert.Equal(t, int64(42), v)

		v, err = configurables.Int("-7")
		require.NoError(t, err)
		assert.Equal(t, int64(-7), v)

		_, err = configurables.Int("12abc")
		assert.Error(t, err)

		_, err = configurables.Int("4.5")
		assert.Error(t, err)

		_, err = configurables.Int("")
		assert.Error(t, err)
	})

	t.Run("Float", func(t *testing.T) {
		v, err := configurables.Float("3.14159")
		require.NoError(t, err)
		assert.Equal(t, 3.14159, v)

		v, err = configurables.Float("1e3")
		require.NoError(t, err)
		assert.Equal(t, 1000.0, v)

		v, err = configurables.Float("-0.5")
		require.NoError(t, err)
		assert.Equal(t, -0.5, v)

		_, err = configurables.Float("ten")
		assert.Error(t, err)
	})

	t.Run("Bool Truthy And Falsy Sets", func(t *testing.T) {
		for _, raw := range []string{"true", "1", "yes", "on", "TRUE", "Yes", "ON"} {
			v, err := configurables.Bool(raw)
			require.NoError(t, err, "raw %q", raw)
			assert.Equal(t, true, v, "raw %q", raw)
		}
		for _, raw := range []string{"false", "0", "no", "off", "FALSE", "No", "OFF"} {
			v, err := configurables.Bool(raw)
			require.NoError(t, err, "raw %q", raw)
			assert.Equal(t, false, v, "raw %q", raw)
		}
		for _, raw := range []string{"maybe", "2", "", "yess"} {
			_, err := configurables.Bool(raw)
			assert.Error(t, err, "raw %q", raw)
		}
	})

	t.Run("String Identity", func(t *testing.T) {
		v, err := configurables.String("  keep me verbatim  ")
		require.NoError(t, err)
		assert.Equal(t, "  keep me verbatim  ", v)
	})

	t.Run("Path Identity Without Filesystem Access", func(t *testing.T) {
		v, err := configurables.Path("/definitely/does/not/exist")
		require.NoError(t, err)
		assert.Equal(t, "/definitely/does/not/exist", v)
	})

	t.Run("Custom Coercer", func(t *testing.T) {
		upper := configurables.Coercer(func(raw string) (any, error) {
			return strings.ToUpper(raw), nil
		})
		v, err := upper("quiet")
		require.NoError(t, err)
		assert.Equal(t, "QUIET", v)
	})
}
