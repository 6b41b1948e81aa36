package cli

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/cobra"

	"github.com/matzehuels/framer/pkg/errors"
)

func TestReadConfig(t *testing.T) {
	tests := []struct {
		name    string
		content string
		want    Config
		code    errors.Code
	}{
		{
			name:    "full",
			content: "format = \"svg\"\nwidth = 640\nheight = 480\nscale = 2\nno_cache = true\naddr = \":9000\"\n",
			want:    Config{Format: "svg", Width: 640, Height: 480, Scale: 2, NoCache: true, Addr: ":9000", loaded: true},
		},
		{
			name:    "empty",
			content: "",
			want:    Config{loaded: true},
		},
		{name: "unknown key", content: "colour = \"red\"\n", code: errors.ErrCodeInvalidConfig},
		{name: "bad format", content: "format = \"gif\"\n", code: errors.ErrCodeInvalidConfig},
		{name: "negative size", content: "width = -1\n", code: errors.ErrCodeInvalidConfig},
		{name: "syntax", content: "format = \n", code: errors.ErrCodeInvalidConfig},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "config.toml")
			if err := os.WriteFile(path, []byte(tt.content), 0o644); err != nil {
				t.Fatal(err)
			}

			got, err := readConfig(path, true)
			if tt.code != "" {
				if !errors.Is(err, tt.code) {
					t.Errorf("error = %v, want code %s", err, tt.code)
				}
				return
			}
			if err != nil {
				t.Fatalf("readConfig: %v", err)
			}
			if got != tt.want {
				t.Errorf("readConfig() = %+v, want %+v", got, tt.want)
			}
		})
	}
}

func TestReadConfigMissing(t *testing.T) {
	path := filepath.Join(t.TempDir(), "missing.toml")

	cfg, err := readConfig(path, false)
	if err != nil || cfg.loaded {
		t.Errorf("implicit missing config = (%+v, %v), want zero config", cfg, err)
	}

	if _, err := readConfig(path, true); !errors.Is(err, errors.ErrCodeFileNotFound) {
		t.Errorf("explicit missing config error = %v, want FILE_NOT_FOUND", err)
	}
}

func TestLoadConfigFromXDG(t *testing.T) {
	_, configHome := isolateDirs(t)
	dir := filepath.Join(configHome, "framer")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(dir, "config.toml"), []byte("scale = 3\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	c := newTestCLI()
	if err := c.loadConfig(); err != nil {
		t.Fatalf("loadConfig: %v", err)
	}
	if c.config.Scale != 3 {
		t.Errorf("config.Scale = %v, want 3", c.config.Scale)
	}
}

func TestFlagsOverrideConfig(t *testing.T) {
	var (
		format string
		scale  float64
	)
	cmd := &cobra.Command{Use: "test"}
	cmd.Flags().StringVar(&format, "format", "", "")
	cmd.Flags().Float64Var(&scale, "scale", 0, "")
	if err := cmd.Flags().Parse([]string{"--format", "pdf"}); err != nil {
		t.Fatal(err)
	}

	applyString(cmd, "format", &format, "svg")
	applyFloat(cmd, "scale", &scale, 2)

	if format != "pdf" {
		t.Errorf("format = %q, want flag value pdf", format)
	}
	if scale != 2 {
		t.Errorf("scale = %v, want config value 2", scale)
	}
}
