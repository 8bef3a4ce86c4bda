package permission

// Allowed is the capability rule shared by guards, menu filtering, and
// inline checks. It is total: every (set, key) pair maps to a boolean and
// the function never panics.
//
// The empty key is the "unrestricted" marker and always passes, matching
// the historical behavior of the admin front-end this package serves. That
// behavior means a typo'd key constant silently degrades to an ungated
// check, so it lives here as the only place the rule is written down; hosts
// that want to catch typos register their keys in a [Registry] and call
// [Registry.Lint] at startup.
//
//	Docs: docs/permission.md
func Allowed(s Set, key string) bool {
	if key == "" {
		return true
	}
	if len(s) == 0 {
		return false
	}
	return s.Contains(key)
}
