package session

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// ErrSlotNameInvalid is returned for slot names that would escape the
// storage directory.
var ErrSlotNameInvalid = errors.New("session: invalid slot name")

// FileStorage persists each slot as one file under a directory, the
// filesystem analog of per-key browser storage. Writes go through a temp
// file and rename so a crash never leaves a half-written slot.
type FileStorage struct {
	dir string
}

// NewFileStorage creates the directory (0700) if needed and returns a
// [FileStorage] rooted there.
func NewFileStorage(dir string) (*FileStorage, error) {
	if dir == "" {
		return nil, errors.New("session: storage directory required")
	}
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return nil, fmt.Errorf("session: create storage directory: %w", err)
	}
	return &FileStorage{dir: dir}, nil
}

// Load implements [Storage].
func (f *FileStorage) Load(_ context.Context, slot string) (string, error) {
	path, err := f.path(slot)
	if err != nil {
		return "", err
	}

	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return "", ErrSlotNotFound
	}
	if err != nil {
		return "", fmt.Errorf("session: read slot %s: %w", slot, err)
	}
	return string(data), nil
}

// Store implements [Storage].
func (f *FileStorage) Store(_ context.Context, slot, value string) error {
	path, err := f.path(slot)
	if err != nil {
		return err
	}

	tmp, err := os.CreateTemp(f.dir, slot+".tmp-*")
	if err != nil {
		return fmt.Errorf("session: write slot %s: %w", slot, err)
	}
	tmpName := tmp.Name()

	if _, err := tmp.WriteString(value); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("session: write slot %s: %w", slot, err)
	}
	if err := tmp.Chmod(0o600); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("session: write slot %s: %w", slot, err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("session: write slot %s: %w", slot, err)
	}

	if err := os.Rename(tmpName, path); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("session: write slot %s: %w", slot, err)
	}
	return nil
}

// Delete implements [Storage]. Deleting an absent slot is a no-op.
func (f *FileStorage) Delete(_ context.Context, slot string) error {
	path, err := f.path(slot)
	if err != nil {
		return err
	}

	if err := os.Remove(path); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("session: delete slot %s: %w", slot, err)
	}
	return nil
}

func (f *FileStorage) path(slot string) (string, error) {
	if slot == "" || strings.ContainsAny(slot, `/\.`) {
		return "", ErrSlotNameInvalid
	}
	return filepath.Join(f.dir, slot), nil
}
