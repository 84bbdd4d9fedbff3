package cli

import (
	"context"
	"os"
	"path/filepath"
	"testing"
)

func TestLocateLockfile(t *testing.T) {
	dir := t.TempDir()
	lockPath := filepath.Join(dir, "yarn.lock")
	if err := os.WriteFile(lockPath, []byte("# yarn lockfile v1\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	t.Run("directory", func(t *testing.T) {
		got, err := locateLockfile(dir)
		if err != nil {
			t.Fatalf("locateLockfile: %v", err)
		}
		if got != lockPath {
			t.Errorf("got %q, want %q", got, lockPath)
		}
	})

	t.Run("explicit file", func(t *testing.T) {
		got, err := locateLockfile(lockPath)
		if err != nil || got != lockPath {
			t.Errorf("got %q, %v", got, err)
		}
	})

	t.Run("empty directory", func(t *testing.T) {
		if _, err := locateLockfile(t.TempDir()); err == nil {
			t.Error("expected error for directory without lockfile")
		}
	})

	t.Run("missing path", func(t *testing.T) {
		if _, err := locateLockfile(filepath.Join(dir, "nope")); err == nil {
			t.Error("expected error for missing path")
		}
	})
}

func TestLocateLockfilePreference(t *testing.T) {
	// package-lock.json wins over yarn.lock when both exist.
	dir := t.TempDir()
	for _, name := range []string{"package-lock.json", "yarn.lock"} {
		if err := os.WriteFile(filepath.Join(dir, name), []byte("{}"), 0o644); err != nil {
			t.Fatal(err)
		}
	}
	got, err := locateLockfile(dir)
	if err != nil {
		t.Fatalf("locateLockfile: %v", err)
	}
	if filepath.Base(got) != "package-lock.json" {
		t.Errorf("got %q, want package-lock.json", got)
	}
}

func TestLoadGraph(t *testing.T) {
	dir := t.TempDir()
	lock := `{
  "lockfileVersion": 3,
  "packages": {
    "": {"name": "demo"},
    "node_modules/lodash": {"version": "4.17.21"}
  }
}`
	if err := os.WriteFile(filepath.Join(dir, "package-lock.json"), []byte(lock), 0o644); err != nil {
		t.Fatal(err)
	}

	g, parser, path, err := loadGraph(context.Background(), dir)
	if err != nil {
		t.Fatalf("loadGraph: %v", err)
	}
	if g.Len() != 1 {
		t.Errorf("graph has %d packages, want 1", g.Len())
	}
	if parser.Type() != "package-lock.json" {
		t.Errorf("parser type = %q", parser.Type())
	}
	if filepath.Base(path) != "package-lock.json" {
		t.Errorf("path = %q", path)
	}
}
