package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestDirAndFilePath(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)

	if got, want := Dir(), filepath.Join(home, ".vcsxml"); got != want {
		t.Errorf("Dir() = %q, want %q", got, want)
	}
	if got, want := FilePath(), filepath.Join(home, ".vcsxml", "config.yaml"); got != want {
		t.Errorf("FilePath() = %q, want %q", got, want)
	}
}

func TestSetAndGet(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)

	if got := Get(KeyRemote); got != "" {
		t.Errorf("Get() before Set = %q, want empty", got)
	}
	if err := Set(KeyRemote, "upstream"); err != nil {
		t.Fatalf("Set() error: %v", err)
	}
	if err := Set(KeyBranch, "develop"); err != nil {
		t.Fatalf("Set() error: %v", err)
	}
	if got := Get(KeyRemote); got != "upstream" {
		t.Errorf("Get(remote) = %q, want upstream", got)
	}
	if got := Get(KeyBranch); got != "develop" {
		t.Errorf("Get(branch) = %q, want develop", got)
	}
	if _, err := os.Stat(filepath.Join(home, ".vcsxml", "config.yaml")); err != nil {
		t.Errorf("config file not written: %v", err)
	}
}

func TestSet_UnknownKey(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	if err := Set("colour", "blue"); err == nil {
		t.Fatal("expected error for unknown key")
	}
}
