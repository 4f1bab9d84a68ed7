package cas_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"go.trai.ch/elmpack/internal/adapters/cas"
	"go.trai.ch/elmpack/internal/core/domain"
)

func TestStore_PutAndGet(t *testing.T) {
	storePath := filepath.Join(t.TempDir(), ".elmpack", "state.json")

	store, err := cas.NewStore(storePath)
	if err != nil {
		t.Fatalf("NewStore failed: %v", err)
	}

	info := domain.BuildInfo{
		Path:      "dist/main.js",
		Hash:      "abc",
		Mode:      "debug",
		Timestamp: time.Now(),
	}
	if err := store.Put(info); err != nil {
		t.Fatalf("Put failed: %v", err)
	}

	got, err := store.Get("dist/main.js")
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if got == nil {
		t.Fatal("Get returned nil")
	}
	if got.Hash != "abc" {
		t.Errorf("expected Hash %q, got %q", "abc", got.Hash)
	}
}

func TestStore_GetMissing(t *testing.T) {
	store, err := cas.NewStore(filepath.Join(t.TempDir(), "state.json"))
	if err != nil {
		t.Fatalf("NewStore failed: %v", err)
	}

	got, err := store.Get("nope.js")
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if got != nil {
		t.Errorf("expected nil for missing entry, got %+v", got)
	}
}

func TestStore_Persistence(t *testing.T) {
	storePath := filepath.Join(t.TempDir(), "state.json")

	store1, err := cas.NewStore(storePath)
	if err != nil {
		t.Fatalf("NewStore 1 failed: %v", err)
	}
	if err := store1.Put(domain.BuildInfo{Path: "dist/main.css", Hash: "xyz"}); err != nil {
		t.Fatalf("Put failed: %v", err)
	}

	store2, err := cas.NewStore(storePath)
	if err != nil {
		t.Fatalf("NewStore 2 failed: %v", err)
	}

	got, err := store2.Get("dist/main.css")
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if got == nil || got.Hash != "xyz" {
		t.Fatalf("expected persisted hash xyz, got %+v", got)
	}
}

func TestStore_OmitZero(t *testing.T) {
	storePath := filepath.Join(t.TempDir(), "state.json")

	store, err := cas.NewStore(storePath)
	if err != nil {
		t.Fatalf("NewStore failed: %v", err)
	}
	if err := store.Put(domain.BuildInfo{Path: "dist/zero.js"}); err != nil {
		t.Fatalf("Put failed: %v", err)
	}

	//nolint:gosec // Test file with controlled path
	content, err := os.ReadFile(storePath)
	if err != nil {
		t.Fatalf("ReadFile failed: %v", err)
	}

	jsonStr := string(content)
	if strings.Contains(jsonStr, "\"hash\"") {
		t.Error("JSON should not contain 'hash' for zero value")
	}
	if strings.Contains(jsonStr, "timestamp") {
		t.Error("JSON should not contain 'timestamp' for zero value")
	}
	if !strings.Contains(jsonStr, "\"path\"") {
		t.Error("JSON should contain 'path'")
	}
}

func TestStore_CorruptFile(t *testing.T) {
	storePath := filepath.Join(t.TempDir(), "state.json")
	if err := os.WriteFile(storePath, []byte("{not json"), 0o600); err != nil {
		t.Fatalf("WriteFile failed: %v", err)
	}

	if _, err := cas.NewStore(storePath); err == nil {
		t.Fatal("expected error for corrupt store")
	}
}
