package buildinfo

import (
	"strings"
	"testing"
)

func TestCacheScope(t *testing.T) {
	oldVersion, oldCommit := Version, Commit
	t.Cleanup(func() { Version, Commit = oldVersion, oldCommit })

	tests := []struct {
		version, commit string
		want            string
	}{
		{"v1.2.0", "abc123", "framer:v1.2.0:"},
		{"dev", "abc123", "framer:dev-abc123:"},
	}
	for _, tt := range tests {
		Version, Commit = tt.version, tt.commit
		if got := CacheScope(); got != tt.want {
			t.Errorf("CacheScope() with %s/%s = %q, want %q", tt.version, tt.commit, got, tt.want)
		}
	}
}

func TestString(t *testing.T) {
	s := String()
	for _, field := range []string{"version:", "commit:", "built:"} {
		if !strings.Contains(s, field) {
			t.Errorf("String() missing %q:\n%s", field, s)
		}
	}
}
