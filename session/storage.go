package session

import (
	"context"
	"errors"
)

// Slot names used by [Store]. Storage implementations namespace them
// (directory for files, key prefix for Redis).
const (
	SlotToken       = "token"
	SlotPermissions = "permissions"
	SlotLocale      = "locale"
)

// ErrSlotNotFound is returned by [Storage.Load] when the slot has never been
// written or was deleted.
var ErrSlotNotFound = errors.New("session: slot not found")

// Storage is the persistence boundary for session state. Implementations
// must be safe for concurrent use; the [Store] is the only writer of the
// session slots.
type Storage interface {
	Load(ctx context.Context, slot string) (string, error)
	Store(ctx context.Context, slot, value string) error
	Delete(ctx context.Context, slot string) error
}
