package storage

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"github.com/junaidrashid-git/storefront/config"
)

func newTestStorage(t *testing.T) *LocalStorage {
	t.Helper()
	db, err := Open(config.Config{SQLitePath: filepath.Join(t.TempDir(), "test.db")})
	if err != nil {
		t.Fatalf("Open failed: %v", err)
	}
	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			sqlDB.Close()
		}
	})
	return NewLocalStorage(db)
}

func TestSetAndGetItem(t *testing.T) {
	s := newTestStorage(t)
	ctx := context.Background()

	if err := s.SetItem(ctx, "v1", "token", "abc"); err != nil {
		t.Fatalf("SetItem failed: %v", err)
	}
	if err := s.SetItem(ctx, "v1", "token", "def"); err != nil {
		t.Fatalf("SetItem overwrite failed: %v", err)
	}

	got, err := s.GetItem(ctx, "v1", "token")
	if err != nil {
		t.Fatalf("GetItem failed: %v", err)
	}
	if got != "def" {
		t.Errorf("Expected overwritten value def, got %q", got)
	}

	if _, err := s.GetItem(ctx, "v2", "token"); !errors.Is(err, ErrNotFound) {
		t.Errorf("Expected ErrNotFound for another visitor, got %v", err)
	}
}

func TestRemoveAndClear(t *testing.T) {
	s := newTestStorage(t)
	ctx := context.Background()

	for _, kv := range [][2]string{{"token", "abc"}, {"username", "crio"}, {"balance", "5000"}} {
		if err := s.SetItem(ctx, "v1", kv[0], kv[1]); err != nil {
			t.Fatalf("SetItem failed: %v", err)
		}
	}
	if err := s.SetItem(ctx, "v2", "token", "other"); err != nil {
		t.Fatalf("SetItem failed: %v", err)
	}

	if err := s.RemoveItem(ctx, "v1", "balance"); err != nil {
		t.Fatalf("RemoveItem failed: %v", err)
	}
	items, err := s.Items(ctx, "v1")
	if err != nil {
		t.Fatalf("Items failed: %v", err)
	}
	if len(items) != 2 || items["username"] != "crio" {
		t.Errorf("Unexpected items %v", items)
	}

	if err := s.Clear(ctx, "v1"); err != nil {
		t.Fatalf("Clear failed: %v", err)
	}
	items, _ = s.Items(ctx, "v1")
	if len(items) != 0 {
		t.Errorf("Expected no keys after clear, got %v", items)
	}
	if got, err := s.GetItem(ctx, "v2", "token"); err != nil || got != "other" {
		t.Errorf("Clear leaked into another visitor: %q %v", got, err)
	}
}
