// Package nav filters the admin shell's navigation menu with the same
// capability rule the route guards use, so the menu never advertises a
// destination a guard would reject.
package nav

import "github.com/MrEthical07/goGuard/session"

// Entry is one navigable destination. Permission empty means the entry is
// unrestricted.
type Entry struct {
	Route      string
	LabelKey   string
	Permission string
}

// Menu is an ordered list of destinations.
type Menu struct {
	entries []Entry
}

// NewMenu copies the entries; order is preserved for the life of the menu.
func NewMenu(entries []Entry) *Menu {
	copied := make([]Entry, len(entries))
	copy(copied, entries)
	return &Menu{entries: copied}
}

// Entries returns all destinations, visible or not.
func (m *Menu) Entries() []Entry {
	out := make([]Entry, len(m.entries))
	copy(out, m.entries)
	return out
}

// Visible returns the order-preserving sublist of entries the session may
// navigate to. The decision delegates to the session's capability check, so
// menu and guards can never diverge.
func (m *Menu) Visible(store *session.Store) []Entry {
	visible := make([]Entry, 0, len(m.entries))
	for _, entry := range m.entries {
		if store.Can(entry.Permission) {
			visible = append(visible, entry)
		}
	}
	return visible
}

// PermissionKeys returns the distinct non-empty permission keys the menu
// gates on, in first-seen order. Hosts feed them to a registry lint at
// startup.
func (m *Menu) PermissionKeys() []string {
	seen := make(map[string]struct{}, len(m.entries))
	keys := make([]string, 0, len(m.entries))
	for _, entry := range m.entries {
		if entry.Permission == "" {
			continue
		}
		if _, dup := seen[entry.Permission]; dup {
			continue
		}
		seen[entry.Permission] = struct{}{}
		keys = append(keys, entry.Permission)
	}
	return keys
}
