package session

import (
	"context"
	"errors"
	"reflect"
	"testing"
)

func newStoreTest(t *testing.T) (*Store, *MemoryStorage) {
	t.Helper()
	storage := NewMemoryStorage()
	store, err := NewStore(context.Background(), storage, "")
	if err != nil {
		t.Fatalf("new store: %v", err)
	}
	return store, storage
}

func TestStoreHydratesFromStorage(t *testing.T) {
	ctx := context.Background()
	storage := NewMemoryStorage()

	if err := storage.Store(ctx, SlotToken, "t-prior"); err != nil {
		t.Fatalf("seed token: %v", err)
	}
	if err := storage.Store(ctx, SlotPermissions, `["roles.view","admins.view"]`); err != nil {
		t.Fatalf("seed permissions: %v", err)
	}
	if err := storage.Store(ctx, SlotLocale, "en"); err != nil {
		t.Fatalf("seed locale: %v", err)
	}

	store, err := NewStore(ctx, storage, "")
	if err != nil {
		t.Fatalf("new store: %v", err)
	}

	token, ok := store.Token()
	if !ok || token != "t-prior" {
		t.Fatalf("expected hydrated token, got %q (ok=%v)", token, ok)
	}
	if got := store.Permissions(); !reflect.DeepEqual(got, []string{"admins.view", "roles.view"}) {
		t.Fatalf("hydrated permissions = %v", got)
	}
	if store.Locale() != "en" {
		t.Fatalf("hydrated locale = %q, want en", store.Locale())
	}
	if !store.Can("roles.view") || store.Can("roles.delete") {
		t.Fatal("capability check does not match hydrated set")
	}
}

func TestStoreLocaleDefaultsToArabic(t *testing.T) {
	store, _ := newStoreTest(t)
	if store.Locale() != DefaultLocale {
		t.Fatalf("locale = %q, want %q", store.Locale(), DefaultLocale)
	}
}

func TestStorePermissionsRequireToken(t *testing.T) {
	ctx := context.Background()
	store, storage := newStoreTest(t)

	if err := store.SetPermissions(ctx, []string{"roles.view"}); !errors.Is(err, ErrNoSession) {
		t.Fatalf("expected ErrNoSession, got %v", err)
	}
	if _, err := storage.Load(ctx, SlotPermissions); !errors.Is(err, ErrSlotNotFound) {
		t.Fatal("permissions slot must not be written without a token")
	}
}

func TestStorePermissionsNotHydratedWithoutToken(t *testing.T) {
	ctx := context.Background()
	storage := NewMemoryStorage()

	// Stale permissions slot with no token, e.g. a partial external wipe.
	if err := storage.Store(ctx, SlotPermissions, `["roles.view"]`); err != nil {
		t.Fatalf("seed permissions: %v", err)
	}

	store, err := NewStore(ctx, storage, "")
	if err != nil {
		t.Fatalf("new store: %v", err)
	}
	if got := store.Permissions(); len(got) != 0 {
		t.Fatalf("expected empty permissions without token, got %v", got)
	}
	if store.Can("roles.view") {
		t.Fatal("capability check must deny without a token")
	}
}

func TestStoreSetTokenRejectsEmpty(t *testing.T) {
	store, _ := newStoreTest(t)
	if err := store.SetToken(context.Background(), ""); !errors.Is(err, ErrEmptyToken) {
		t.Fatalf("expected ErrEmptyToken, got %v", err)
	}
}

func TestStoreSetLocaleRejectsUnknown(t *testing.T) {
	store, _ := newStoreTest(t)
	if err := store.SetLocale(context.Background(), "fr"); !errors.Is(err, ErrLocaleUnsupported) {
		t.Fatalf("expected ErrLocaleUnsupported, got %v", err)
	}
}

func TestStoreSubscribersSeeWriteBeforeReturn(t *testing.T) {
	ctx := context.Background()
	store, _ := newStoreTest(t)

	var seen []Snapshot
	cancel := store.Subscribe(func(s Snapshot) { seen = append(seen, s) })
	defer cancel()

	if err := store.SetToken(ctx, "t1"); err != nil {
		t.Fatalf("set token: %v", err)
	}
	if len(seen) != 1 || seen[0].Token != "t1" {
		t.Fatalf("subscriber did not observe token write synchronously: %+v", seen)
	}

	if err := store.SetPermissions(ctx, []string{"roles.view"}); err != nil {
		t.Fatalf("set permissions: %v", err)
	}
	if len(seen) != 2 || !reflect.DeepEqual(seen[1].Permissions, []string{"roles.view"}) {
		t.Fatalf("subscriber did not observe permission write: %+v", seen)
	}

	cancel()
	if err := store.SetLocale(ctx, "en"); err != nil {
		t.Fatalf("set locale: %v", err)
	}
	if len(seen) != 2 {
		t.Fatal("cancelled subscriber still notified")
	}
}

func TestStoreSnapshotIsConsistent(t *testing.T) {
	ctx := context.Background()
	store, _ := newStoreTest(t)

	if err := store.SetToken(ctx, "t1"); err != nil {
		t.Fatalf("set token: %v", err)
	}
	if err := store.SetPermissions(ctx, []string{"roles.view", "roles.create"}); err != nil {
		t.Fatalf("set permissions: %v", err)
	}

	snap := store.Snapshot()
	if !snap.Authenticated() || snap.Token != "t1" {
		t.Fatalf("snapshot token = %+v", snap)
	}
	if !reflect.DeepEqual(snap.Permissions, []string{"roles.create", "roles.view"}) {
		t.Fatalf("snapshot permissions = %v", snap.Permissions)
	}
	if snap.Locale != DefaultLocale {
		t.Fatalf("snapshot locale = %q", snap.Locale)
	}
}
