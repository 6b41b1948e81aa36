package cli

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/matzehuels/framer/pkg/cache"
)

func TestXDGDirs(t *testing.T) {
	cacheHome, configHome := isolateDirs(t)

	dir, err := cacheDir()
	if err != nil {
		t.Fatalf("cacheDir() error: %v", err)
	}
	if want := filepath.Join(cacheHome, "framer"); dir != want {
		t.Errorf("cacheDir() = %q, want %q", dir, want)
	}

	dir, err = configDir()
	if err != nil {
		t.Fatalf("configDir() error: %v", err)
	}
	if want := filepath.Join(configHome, "framer"); dir != want {
		t.Errorf("configDir() = %q, want %q", dir, want)
	}
}

func TestCacheDirFallsBackToHome(t *testing.T) {
	home := t.TempDir()
	t.Setenv("XDG_CACHE_HOME", "")
	t.Setenv("HOME", home)

	dir, err := cacheDir()
	if err != nil {
		t.Fatalf("cacheDir() error: %v", err)
	}
	if want := filepath.Join(home, ".cache", "framer"); dir != want {
		t.Errorf("cacheDir() = %q, want %q", dir, want)
	}
}

func TestNewCache(t *testing.T) {
	isolateDirs(t)

	c, err := newCache(true)
	if err != nil {
		t.Fatalf("newCache(true): %v", err)
	}
	if _, ok := c.(cache.NullCache); !ok {
		t.Errorf("newCache(true) = %T, want cache.NullCache", c)
	}

	c, err = newCache(false)
	if err != nil {
		t.Fatalf("newCache(false): %v", err)
	}
	if _, ok := c.(*cache.FileCache); !ok {
		t.Errorf("newCache(false) = %T, want *cache.FileCache", c)
	}
}

func TestKeyerIsScopedToBuild(t *testing.T) {
	key := newKeyer().ArtifactKey("abc", cache.ArtifactKeyOpts{Format: "png"})
	if !strings.HasPrefix(key, "framer:") {
		t.Errorf("key %q is not scoped", key)
	}
}

func TestCacheClearCommand(t *testing.T) {
	isolateDirs(t)
	buf := captureOutput(t)

	dir, _ := cacheDir()
	fc, err := cache.NewFileCache(dir)
	if err != nil {
		t.Fatal(err)
	}
	if err := fc.Set(context.Background(), "k", []byte("v"), 0); err != nil {
		t.Fatal(err)
	}

	root := newTestCLI().RootCommand()
	root.SetArgs([]string{"cache", "clear"})
	if err := root.Execute(); err != nil {
		t.Fatalf("cache clear: %v", err)
	}
	if !strings.Contains(buf.String(), "Cleared 1 cached artifact") {
		t.Errorf("output = %q", buf.String())
	}
	if _, hit, _ := fc.Get(context.Background(), "k"); hit {
		t.Error("entry survived cache clear")
	}
	if _, err := os.Stat(dir); err != nil {
		t.Errorf("cache dir removed: %v", err)
	}
}

func TestCachePathCommand(t *testing.T) {
	cacheHome, _ := isolateDirs(t)
	buf := captureOutput(t)

	root := newTestCLI().RootCommand()
	root.SetArgs([]string{"cache", "path"})
	if err := root.Execute(); err != nil {
		t.Fatalf("cache path: %v", err)
	}
	if got, want := strings.TrimSpace(buf.String()), filepath.Join(cacheHome, "framer"); got != want {
		t.Errorf("cache path = %q, want %q", got, want)
	}
}
