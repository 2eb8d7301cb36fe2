package fsutil

import (
	"os"
	"path/filepath"
	"runtime"
	"testing"
)

func TestExpandHome(t *testing.T) {
	origHome, hadHome := os.LookupEnv("HOME")
	origUserProfile, hadUserProfile := os.LookupEnv("USERPROFILE")
	t.Cleanup(func() {
		if hadHome {
			_ = os.Setenv("HOME", origHome)
		} else {
			_ = os.Unsetenv("HOME")
		}
		if hadUserProfile {
			_ = os.Setenv("USERPROFILE", origUserProfile)
		} else {
			_ = os.Unsetenv("USERPROFILE")
		}
	})

	home := t.TempDir()
	_ = os.Setenv("HOME", home)
	if runtime.GOOS == "windows" {
		_ = os.Setenv("USERPROFILE", home)
	}
	if got, err := ExpandHome("/tmp"); err != nil || got != "/tmp" {
		t.Fatalf("got %q err=%v", got, err)
	}
	if got, err := ExpandHome(""); err != nil || got != "" {
		t.Fatalf("got %q err=%v", got, err)
	}
	p, err := ExpandHome("~")
	if err != nil {
		t.Fatalf("err: %v", err)
	}
	if p != home {
		t.Fatalf("expected %q, got %q", home, p)
	}
	exp, err := ExpandHome("~/models")
	if err != nil {
		t.Fatalf("err: %v", err)
	}
	if exp != filepath.Join(home, "models") {
		t.Fatalf("unexpected expanded path: %q", exp)
	}
}

func TestEnsureDirAndPathExists(t *testing.T) {
	d := t.TempDir()
	target := filepath.Join(d, "a", "b")
	if PathExists(target) {
		t.Fatalf("expected %q to not exist yet", target)
	}
	if err := EnsureDir(target); err != nil {
		t.Fatalf("ensure: %v", err)
	}
	if !PathExists(target) {
		t.Fatalf("expected %q to exist", target)
	}
	// idempotent
	if err := EnsureDir(target); err != nil {
		t.Fatalf("ensure again: %v", err)
	}
	if err := EnsureDir(""); err != nil {
		t.Fatalf("empty dir should be a no-op: %v", err)
	}
}
