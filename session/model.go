package session

// Snapshot is an immutable view of session state handed to subscribers and
// returned by [Store.Snapshot]. Permissions are sorted.
type Snapshot struct {
	Token       string
	Permissions []string
	Locale      string
}

// Authenticated reports whether the snapshot carries a token.
func (s Snapshot) Authenticated() bool {
	return s.Token != ""
}
