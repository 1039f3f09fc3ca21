package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func TestResolveLayout_ExplicitWinsOverEnv(t *testing.T) {
	explicit := t.TempDir()
	t.Setenv("ARES_RUNTIME", t.TempDir())

	layout, err := ResolveLayout(explicit)
	if err != nil {
		t.Fatalf("ResolveLayout() error = %v", err)
	}
	if layout.Root != explicit {
		t.Errorf("Root = %q, want %q", layout.Root, explicit)
	}
}

func TestResolveLayout_EnvFallback(t *testing.T) {
	root := t.TempDir()
	t.Setenv("ARES_RUNTIME", root)

	layout, err := ResolveLayout("")
	if err != nil {
		t.Fatalf("ResolveLayout() error = %v", err)
	}
	if layout.Root != root {
		t.Errorf("Root = %q, want %q", layout.Root, root)
	}
}

func TestResolveLayout_HomeFallback(t *testing.T) {
	home := t.TempDir()
	root := filepath.Join(home, "ARES_RUNTIME")
	if err := os.Mkdir(root, 0755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	t.Setenv("ARES_RUNTIME", "")
	t.Setenv("HOME", home)

	layout, err := ResolveLayout("")
	if err != nil {
		t.Fatalf("ResolveLayout() error = %v", err)
	}
	if layout.Root != root {
		t.Errorf("Root = %q, want %q", layout.Root, root)
	}
}

func TestResolveLayout_DerivedPaths(t *testing.T) {
	root := t.TempDir()

	layout, err := ResolveLayout(root)
	if err != nil {
		t.Fatalf("ResolveLayout() error = %v", err)
	}
	if want := filepath.Join(root, "import"); layout.ImportRoot != want {
		t.Errorf("ImportRoot = %q, want %q", layout.ImportRoot, want)
	}
	if want := filepath.Join(root, "AdminServer", "ares_server.log"); layout.ServerLog != want {
		t.Errorf("ServerLog = %q, want %q", layout.ServerLog, want)
	}
}

func TestResolveLayout_MissingFolder(t *testing.T) {
	_, err := ResolveLayout(filepath.Join(t.TempDir(), "nope"))
	if !errors.Is(err, ErrRuntimeNotFound) {
		t.Errorf("ResolveLayout() error = %v, want ErrRuntimeNotFound", err)
	}
}

func TestResolveLayout_RootIsFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "runtime")
	if err := os.WriteFile(path, []byte("not a folder"), 0644); err != nil {
		t.Fatalf("write file: %v", err)
	}

	_, err := ResolveLayout(path)
	if !errors.Is(err, ErrRuntimeNotFound) {
		t.Errorf("ResolveLayout() error = %v, want ErrRuntimeNotFound", err)
	}
}
