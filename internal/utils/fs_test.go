package utils

import (
	"os"
	"path/filepath"
	"testing"
)

func TestFileExists(t *testing.T) {
	path := filepath.Join(t.TempDir(), "present.txt")
	if FileExists(path) {
		t.Error("FileExists true for a missing file")
	}
	if err := os.WriteFile(path, []byte("x"), 0644); err != nil {
		t.Fatalf("writing file: %v", err)
	}
	if !FileExists(path) {
		t.Error("FileExists false for an existing file")
	}
}

func TestEnsureDir(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "a", "b", "c")
	if err := EnsureDir(dir); err != nil {
		t.Fatalf("EnsureDir failed: %v", err)
	}
	info, err := os.Stat(dir)
	if err != nil || !info.IsDir() {
		t.Fatalf("nested directory not created: %v", err)
	}
	// idempotent on an existing directory
	if err := EnsureDir(dir); err != nil {
		t.Errorf("EnsureDir on existing dir: %v", err)
	}
}

func TestTOMLRoundTrip(t *testing.T) {
	type payload struct {
		Name  string `toml:"name"`
		Limit int    `toml:"limit"`
	}
	path := filepath.Join(t.TempDir(), "cfg.toml")

	in := payload{Name: "spellserve", Limit: 8}
	if err := SaveTOMLFile(in, path); err != nil {
		t.Fatalf("SaveTOMLFile failed: %v", err)
	}
	var out payload
	if err := LoadTOMLFile(path, &out); err != nil {
		t.Fatalf("LoadTOMLFile failed: %v", err)
	}
	if out != in {
		t.Errorf("round trip = %+v, want %+v", out, in)
	}
}

func TestGetAbsolutePath(t *testing.T) {
	if got := GetAbsolutePath(""); got != "unknown" {
		t.Errorf("GetAbsolutePath(\"\") = %q, want unknown", got)
	}
	got := GetAbsolutePath("some/relative.txt")
	if !filepath.IsAbs(got) {
		t.Errorf("relative input not absolutized: %q", got)
	}
	abs := filepath.Join(t.TempDir(), "x.txt")
	if got := GetAbsolutePath(abs); got != abs {
		t.Errorf("absolute input rewritten: %q", got)
	}
}

func TestGetExecutableDir(t *testing.T) {
	dir, err := GetExecutableDir()
	if err != nil {
		t.Fatalf("GetExecutableDir failed: %v", err)
	}
	if !filepath.IsAbs(dir) {
		t.Errorf("executable dir not absolute: %q", dir)
	}
}
