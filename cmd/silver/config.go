package main

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"github.com/BurntSushi/toml"
	"github.com/spf13/cobra"
)

const configFileName = "silver.toml"

type silverConfig struct {
	Run   runSection   `toml:"run"`
	UI    uiSection    `toml:"ui"`
	Trace traceSection `toml:"trace"`
	Repl  replSection  `toml:"repl"`
}

type runSection struct {
	MaxDiagnostics int `toml:"max_diagnostics"`
	Jobs           int `toml:"jobs"`
}

type uiSection struct {
	Color    string `toml:"color"`
	Timings  bool   `toml:"timings"`
	Progress string `toml:"progress"`
}

type traceSection struct {
	Level  string `toml:"level"`
	Mode   string `toml:"mode"`
	Output string `toml:"output"`
}

type replSection struct {
	Session string `toml:"session"`
}

// configBinding maps a TOML key to the flag it provides a default for.
type configBinding struct {
	flag  string
	keys  []string
	value func(*silverConfig) string
}

var configBindings = []configBinding{
	{"max-diagnostics", []string{"run", "max_diagnostics"}, func(c *silverConfig) string { return strconv.Itoa(c.Run.MaxDiagnostics) }},
	{"jobs", []string{"run", "jobs"}, func(c *silverConfig) string { return strconv.Itoa(c.Run.Jobs) }},
	{"color", []string{"ui", "color"}, func(c *silverConfig) string { return c.UI.Color }},
	{"timings", []string{"ui", "timings"}, func(c *silverConfig) string { return strconv.FormatBool(c.UI.Timings) }},
	{"ui", []string{"ui", "progress"}, func(c *silverConfig) string { return c.UI.Progress }},
	{"trace-level", []string{"trace", "level"}, func(c *silverConfig) string { return c.Trace.Level }},
	{"trace-mode", []string{"trace", "mode"}, func(c *silverConfig) string { return c.Trace.Mode }},
	{"trace", []string{"trace", "output"}, func(c *silverConfig) string { return c.Trace.Output }},
	{"session", []string{"repl", "session"}, func(c *silverConfig) string { return c.Repl.Session }},
}

// findConfig walks up from startDir looking for silver.toml.
func findConfig(startDir string) (string, bool, error) {
	if startDir == "" {
		startDir = "."
	}
	dir, err := filepath.Abs(startDir)
	if err != nil {
		return "", false, fmt.Errorf("failed to resolve start directory: %w", err)
	}
	for {
		candidate := filepath.Join(dir, configFileName)
		if _, err := os.Stat(candidate); err == nil {
			return candidate, true, nil
		} else if !errors.Is(err, os.ErrNotExist) {
			return "", false, fmt.Errorf("failed to stat %q: %w", candidate, err)
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return "", false, nil
		}
		dir = parent
	}
}

// loadConfig decodes path and returns the config plus the keys it defines.
func loadConfig(path string) (*silverConfig, toml.MetaData, error) {
	var cfg silverConfig
	meta, err := toml.DecodeFile(path, &cfg)
	if err != nil {
		return nil, meta, fmt.Errorf("%s: failed to parse TOML: %w", path, err)
	}
	if undecoded := meta.Undecoded(); len(undecoded) > 0 {
		return nil, meta, fmt.Errorf("%s: unknown key %s", path, undecoded[0])
	}
	if cfg.Repl.Session != "" && !filepath.IsAbs(cfg.Repl.Session) {
		cfg.Repl.Session = filepath.Join(filepath.Dir(path), cfg.Repl.Session)
	}
	return &cfg, meta, nil
}

// applyConfig fills every flag the user did not set from silver.toml.
func applyConfig(cmd *cobra.Command) error {
	path, err := cmd.Flags().GetString("config")
	if err != nil {
		return fmt.Errorf("failed to get config flag: %w", err)
	}
	if path == "" {
		found, ok, err := findConfig(".")
		if err != nil || !ok {
			return err
		}
		path = found
	}
	cfg, meta, err := loadConfig(path)
	if err != nil {
		return err
	}
	return applyConfigValues(cmd, cfg, meta)
}

func applyConfigValues(cmd *cobra.Command, cfg *silverConfig, meta toml.MetaData) error {
	for _, b := range configBindings {
		if !meta.IsDefined(b.keys...) {
			continue
		}
		flag := cmd.Flags().Lookup(b.flag)
		if flag == nil || flag.Changed {
			continue
		}
		if err := flag.Value.Set(b.value(cfg)); err != nil {
			return fmt.Errorf("%s: invalid value for %s: %w", configFileName, b.flag, err)
		}
	}
	return nil
}
