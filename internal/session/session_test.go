package session

import (
	"context"
	"os"
	"path/filepath"
	"testing"
)

func TestFileStore_InitializesDeviceID(t *testing.T) {
	dir := t.TempDir()
	store, err := NewFileStore(dir)
	if err != nil {
		t.Fatalf("NewFileStore failed: %v", err)
	}

	s, err := store.Session(context.Background())
	if err != nil {
		t.Fatalf("Session failed: %v", err)
	}
	if s.DeviceID == "" {
		t.Fatal("expected a generated device id")
	}
	if s.Authenticated() {
		t.Fatal("fresh session must not be authenticated")
	}

	// The device id must be stable across loads.
	again, err := store.Session(context.Background())
	if err != nil {
		t.Fatalf("second Session failed: %v", err)
	}
	if again.DeviceID != s.DeviceID {
		t.Fatalf("device id changed between loads: %s vs %s", s.DeviceID, again.DeviceID)
	}
}

func TestFileStore_SaveAndLoad(t *testing.T) {
	dir := t.TempDir()
	store, err := NewFileStore(dir)
	if err != nil {
		t.Fatalf("NewFileStore failed: %v", err)
	}

	want := &Session{DeviceID: "device-1", Key: "secret", User: "octocat"}
	if err := store.Save(want); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	got, err := store.Session(context.Background())
	if err != nil {
		t.Fatalf("Session failed: %v", err)
	}
	if got.DeviceID != want.DeviceID || got.Key != want.Key || got.User != want.User {
		t.Fatalf("loaded %+v, want %+v", got, want)
	}
	if !got.Authenticated() {
		t.Fatal("session with a key must be authenticated")
	}
}

func TestFileStore_BackfillsMissingDeviceID(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, sessionFileName)
	if err := os.WriteFile(path, []byte(`{"key":"secret","user":"octocat"}`), 0o600); err != nil {
		t.Fatalf("seed session file: %v", err)
	}

	store, err := NewFileStore(dir)
	if err != nil {
		t.Fatalf("NewFileStore failed: %v", err)
	}
	s, err := store.Session(context.Background())
	if err != nil {
		t.Fatalf("Session failed: %v", err)
	}
	if s.DeviceID == "" {
		t.Fatal("expected backfilled device id")
	}
	if s.Key != "secret" || s.User != "octocat" {
		t.Fatalf("existing fields lost: %+v", s)
	}
}

func TestFileStore_Clear(t *testing.T) {
	dir := t.TempDir()
	store, err := NewFileStore(dir)
	if err != nil {
		t.Fatalf("NewFileStore failed: %v", err)
	}
	if _, err := store.Session(context.Background()); err != nil {
		t.Fatalf("Session failed: %v", err)
	}
	if err := store.Clear(); err != nil {
		t.Fatalf("Clear failed: %v", err)
	}
	// Clearing twice is fine.
	if err := store.Clear(); err != nil {
		t.Fatalf("second Clear failed: %v", err)
	}
	if _, err := os.Stat(filepath.Join(dir, sessionFileName)); !os.IsNotExist(err) {
		t.Fatalf("session file still present: %v", err)
	}
}

func TestFileStore_CorruptFile(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, sessionFileName), []byte("{not json"), 0o600); err != nil {
		t.Fatalf("seed corrupt file: %v", err)
	}
	store, err := NewFileStore(dir)
	if err != nil {
		t.Fatalf("NewFileStore failed: %v", err)
	}
	if _, err := store.Session(context.Background()); err == nil {
		t.Fatal("expected error for corrupt session file")
	}
}

func TestStatic_ReturnsSession(t *testing.T) {
	s := &Session{DeviceID: "device-1"}
	got, err := Static{S: s}.Session(context.Background())
	if err != nil {
		t.Fatalf("Session failed: %v", err)
	}
	if got != s {
		t.Fatalf("expected the injected session, got %+v", got)
	}

	none, err := Static{}.Session(context.Background())
	if err != nil {
		t.Fatalf("Session failed: %v", err)
	}
	if none != nil {
		t.Fatalf("expected nil session, got %+v", none)
	}
}
