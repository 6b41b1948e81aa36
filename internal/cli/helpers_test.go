package cli

import (
	"bytes"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/charmbracelet/log"
)

// overlapScene has two blueprints whose annotations overlap, so one
// collision is reported.
const overlapScene = `{
  "width": 200,
  "height": 100,
  "blueprints": [
    {"id": "a", "contents": [
      {"frame": {"x": 10, "y": 30, "width": 80, "height": 40, "annotation": {"text": "A"}}}
    ]},
    {"id": "b", "contents": [
      {"frame": {"x": 12, "y": 32, "width": 80, "height": 40, "annotation": {"text": "B"}}},
      {"line": {"from": {"x": 0, "y": 0}, "to": {"x": 200, "y": 100}}}
    ]}
  ]
}`

// writeScene writes content to name in a fresh directory and returns its
// path.
func writeScene(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

// captureOutput redirects status output into a buffer for the test.
func captureOutput(t *testing.T) *bytes.Buffer {
	t.Helper()
	var buf bytes.Buffer
	old := out
	out = &buf
	t.Cleanup(func() { out = old })
	return &buf
}

// isolateDirs points cache and config lookups at temporary directories.
func isolateDirs(t *testing.T) (cacheHome, configHome string) {
	t.Helper()
	cacheHome, configHome = t.TempDir(), t.TempDir()
	t.Setenv("XDG_CACHE_HOME", cacheHome)
	t.Setenv("XDG_CONFIG_HOME", configHome)
	return cacheHome, configHome
}

func quietLogger() *log.Logger {
	return newLogger(io.Discard, log.InfoLevel)
}

func newTestCLI() *CLI {
	return &CLI{Logger: quietLogger()}
}
