package configurables

import (
	"fmt"
	"strings"
)

// Order is a resolution definition: a strict total precedence over
// source kinds, first element highest. Sources later in the order are
// overridden by earlier ones; caller overrides outrank the entire
// order.
type Order []Source

// DefaultOrder returns the standard precedence: command line over
// configuration file over environment.
func DefaultOrder() Order {
	return Order{SourceCLI, SourceFile, SourceEnv}
}

// Validate checks the order's invariants: at least one source, no
// duplicate kinds, and every kind resolvable through known. A kind for
// which known reports false fails with UnknownSourceError.
func (o Order) Validate(known func(Source) bool) error {
	if len(o) == 0 {
		return ErrEmptyOrder
	}
	seen := make(map[Source]bool, len(o))
	for _, s := range o {
		if seen[s] {
			return fmt.Errorf("%w: %s", ErrDuplicateSource, s)
		}
		seen[s] = true
		if known != nil && !known(s) {
			return &UnknownSourceError{Kind: s}
		}
	}
	return nil
}

// String renders the order as a precedence expression, e.g.
// "cli > file > env".
func (o Order) String() string {
	parts := make([]string, len(o))
	for i, s := range o {
		parts[i] = string(s)
	}
	return strings.Join(parts, " > ")
}
