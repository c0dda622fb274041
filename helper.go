package configurables

import "sort"

// isValidKeySegment checks that a field name is a bare key usable in
// every built-in format: ASCII letters, digits, underscores, dashes.
func isValidKeySegment(s string) bool {
	if len(s) == 0 {
		return false
	}
	for _, r := range s {
		isLetter := (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z')
		isDigit := r >= '0' && r <= '9'
		if !(isLetter || isDigit || r == '_' || r == '-') {
			return false
		}
	}
	return true
}

// sortedKeys returns the map's keys in sorted order for deterministic
// iteration.
func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// orderedKeys returns the map's keys with those named in preference
// first, in that order, followed by the rest sorted.
func orderedKeys(m map[string]string, preference []string) []string {
	keys := make([]string, 0, len(m))
	taken := make(map[string]bool, len(m))
	for _, k := range preference {
		if _, ok := m[k]; ok && !taken[k] {
			keys = append(keys, k)
			taken[k] = true
		}
	}
	rest := make([]string, 0, len(m)-len(keys))
	for k := range m {
		if !taken[k] {
			rest = append(rest, k)
		}
	}
	sort.Strings(rest)
	return append(keys, rest...)
}
