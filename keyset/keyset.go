// Package keyset provides the string set shared by the key extractor,
// the catalog parser and the reconciler.
package keyset

import "sort"

// Set is an unordered, deduplicated collection of translation keys.
// The zero value is not usable; call New.
type Set map[string]struct{}

// New returns a set holding the given keys.
func New(keys ...string) Set {
	s := make(Set, len(keys))
	for _, k := range keys {
		s[k] = struct{}{}
	}
	return s
}

// Add inserts key into the set.
func (s Set) Add(key string) {
	s[key] = struct{}{}
}

// Has reports whether key is a member of the set.
func (s Set) Has(key string) bool {
	_, ok := s[key]
	return ok
}

// Len returns the number of keys.
func (s Set) Len() int {
	return len(s)
}

// Sorted returns the keys in lexicographic order.
func (s Set) Sorted() []string {
	keys := make([]string, 0, len(s))
	for k := range s {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Minus returns the keys of s absent from other, sorted.
func (s Set) Minus(other Set) []string {
	out := make([]string, 0)
	for _, k := range s.Sorted() {
		if !other.Has(k) {
			out = append(out, k)
		}
	}
	return out
}
