package permission

import "sort"

// Set is a normalized collection of permission keys of the form
// "resource.action". The zero value is an empty set and denies every
// non-empty key.
type Set map[string]struct{}

// NewSet builds a [Set] from raw keys. Empty and duplicate keys are dropped.
func NewSet(keys []string) Set {
	s := make(Set, len(keys))
	for _, k := range keys {
		if k == "" {
			continue
		}
		s[k] = struct{}{}
	}
	return s
}

// Normalize converts the payload shapes returned by the permissions endpoint
// into a flat key list: plain strings, or objects carrying a "key" field.
// Unknown shapes and empty keys are skipped rather than rejected.
func Normalize(raw []any) []string {
	keys := make([]string, 0, len(raw))
	seen := make(map[string]struct{}, len(raw))

	for _, item := range raw {
		var key string
		switch v := item.(type) {
		case string:
			key = v
		case map[string]any:
			key, _ = v["key"].(string)
		}
		if key == "" {
			continue
		}
		if _, dup := seen[key]; dup {
			continue
		}
		seen[key] = struct{}{}
		keys = append(keys, key)
	}

	return keys
}

// Contains reports whether the set holds the exact key.
func (s Set) Contains(key string) bool {
	_, ok := s[key]
	return ok
}

// Keys returns the set contents as a sorted slice.
func (s Set) Keys() []string {
	keys := make([]string, 0, len(s))
	for k := range s {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
