package common

import (
	"slices"
)

// UnknownStr is the String() result for out-of-range enum values.
const UnknownStr = "unknown"

// IsEmpty returns true if the slice is empty.
func IsEmpty[S ~[]E, E any](s S) bool {
	return len(s) == 0
}

// FirstNonEmpty returns the first slice that has at least one element, or nil.
func FirstNonEmpty[S ~[]E, E any](candidates ...S) S {
	for _, s := range candidates {
		if !IsEmpty(s) {
			return s
		}
	}

	return nil
}

// SortedKeys returns the keys of a set in ascending order.
func SortedKeys[K interface{ ~string }, V any](m map[K]V) []K {
	keys := make([]K, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}

	slices.Sort(keys)

	return keys
}
