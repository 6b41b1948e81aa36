package cli

import (
	"os"

	"github.com/BurntSushi/toml"
	"github.com/spf13/cobra"

	"github.com/matzehuels/framer/pkg/errors"
	"github.com/matzehuels/framer/pkg/render/sink"
)

// Config holds defaults read from config.toml. Command-line flags override
// every value here.
//
//	format = "svg"
//	scale = 2
//	no_cache = false
//	addr = "127.0.0.1:8000"
type Config struct {
	Format  string  `toml:"format"`
	Width   float64 `toml:"width"`
	Height  float64 `toml:"height"`
	Scale   float64 `toml:"scale"`
	NoCache bool    `toml:"no_cache"`
	Addr    string  `toml:"addr"`

	loaded bool
}

// readConfig decodes the TOML file at path. A missing file is only an error
// when it was named explicitly.
func readConfig(path string, explicit bool) (Config, error) {
	var cfg Config
	md, err := toml.DecodeFile(path, &cfg)
	if err != nil {
		if os.IsNotExist(err) && !explicit {
			return Config{}, nil
		}
		if os.IsNotExist(err) {
			return Config{}, errors.Wrap(errors.ErrCodeFileNotFound, err, "config %s not found", path)
		}
		return Config{}, errors.Wrap(errors.ErrCodeInvalidConfig, err, "parse config %s", path)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		return Config{}, errors.New(errors.ErrCodeInvalidConfig, "config %s: unknown key %q", path, undecoded[0].String())
	}
	if cfg.Format != "" {
		if _, err := sink.ParseFormat(cfg.Format); err != nil {
			return Config{}, errors.Wrap(errors.ErrCodeInvalidConfig, err, "config %s", path)
		}
	}
	if cfg.Width < 0 || cfg.Height < 0 || cfg.Scale < 0 {
		return Config{}, errors.New(errors.ErrCodeInvalidConfig, "config %s: sizes must not be negative", path)
	}
	cfg.loaded = true
	return cfg, nil
}

// applyString sets *dst from the config unless the flag was given.
func applyString(cmd *cobra.Command, flag string, dst *string, value string) {
	if value != "" && !cmd.Flags().Changed(flag) {
		*dst = value
	}
}

// applyFloat sets *dst from the config unless the flag was given.
func applyFloat(cmd *cobra.Command, flag string, dst *float64, value float64) {
	if value != 0 && !cmd.Flags().Changed(flag) {
		*dst = value
	}
}

// applyBool sets *dst from the config unless the flag was given.
func applyBool(cmd *cobra.Command, flag string, dst *bool, value bool) {
	if value && !cmd.Flags().Changed(flag) {
		*dst = value
	}
}
