// Package config loads s2cell.toml.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
)

// FileName is the configuration file looked up from the working directory
// upward.
const FileName = "s2cell.toml"

// Config is the decoded s2cell.toml. Zero values mean "use the default".
type Config struct {
	// Path is the file the config was read from, empty for defaults.
	Path string `toml:"-"`

	Batch  BatchConfig  `toml:"batch"`
	Report ReportConfig `toml:"report"`
	Trace  TraceConfig  `toml:"trace"`
}

type BatchConfig struct {
	CheckEvery  int    `toml:"check_every"`
	TokenPolicy string `toml:"token_policy"`
	Jobs        int    `toml:"jobs"`
}

type ReportConfig struct {
	Format      string `toml:"format"`
	MaxProblems int    `toml:"max_problems"`
	Color       string `toml:"color"`
	PathMode    string `toml:"path_mode"`
}

type TraceConfig struct {
	Level     string   `toml:"level"`
	Mode      string   `toml:"mode"`
	Format    string   `toml:"format"`
	Output    string   `toml:"output"`
	RingSize  int      `toml:"ring_size"`
	Heartbeat Duration `toml:"heartbeat"`
}

// Duration decodes TOML strings such as "500ms" or "2s".
type Duration struct {
	time.Duration
}

func (d *Duration) UnmarshalText(text []byte) error {
	parsed, err := time.ParseDuration(string(text))
	if err != nil {
		return err
	}
	d.Duration = parsed
	return nil
}

func (d Duration) MarshalText() ([]byte, error) {
	return []byte(d.String()), nil
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		Batch: BatchConfig{
			CheckEvery:  1000,
			TokenPolicy: "isolate",
			Jobs:        0,
		},
		Report: ReportConfig{
			Format:      "pretty",
			MaxProblems: 10,
			Color:       "auto",
			PathMode:    "auto",
		},
		Trace: TraceConfig{
			Level:    "off",
			Mode:     "ring",
			Format:   "auto",
			RingSize: 4096,
		},
	}
}

// Find walks from startDir up to the filesystem root looking for FileName.
func Find(startDir string) (string, bool, error) {
	if startDir == "" {
		startDir = "."
	}
	dir, err := filepath.Abs(startDir)
	if err != nil {
		return "", false, fmt.Errorf("failed to resolve start directory: %w", err)
	}
	for {
		candidate := filepath.Join(dir, FileName)
		if _, err := os.Stat(candidate); err == nil {
			return candidate, true, nil
		} else if !errors.Is(err, os.ErrNotExist) {
			return "", false, fmt.Errorf("failed to stat %q: %w", candidate, err)
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}
	return "", false, nil
}

// Discover finds and loads the nearest config file, falling back to
// Default when there is none.
func Discover(startDir string) (*Config, error) {
	path, ok, err := Find(startDir)
	if err != nil {
		return nil, err
	}
	if !ok {
		return Default(), nil
	}
	return Load(path)
}

// Load reads path on top of Default. Keys absent from the file keep their
// defaults; unknown keys and invalid values are errors naming the key.
func Load(path string) (*Config, error) {
	cfg := Default()
	meta, err := toml.DecodeFile(path, cfg)
	if err != nil {
		return nil, fmt.Errorf("%s: failed to parse TOML: %w", path, err)
	}
	cfg.Path = path
	if undecoded := meta.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		msg := "unknown key"
		if len(keys) > 1 {
			msg += "; also unknown: " + strings.Join(keys[1:], ", ")
		}
		return nil, &Error{Path: path, Key: keys[0], Msg: msg}
	}
	if meta.IsDefined("batch", "check_every") && cfg.Batch.CheckEvery <= 0 {
		return nil, &Error{Path: path, Key: "batch.check_every", Msg: "must be positive"}
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Error is a configuration value that could not be used.
type Error struct {
	Path string
	Key  string
	Msg  string
}

func (e *Error) Error() string {
	if e.Path == "" {
		return fmt.Sprintf("config: [%s] %s", e.Key, e.Msg)
	}
	return fmt.Sprintf("%s: [%s] %s", e.Path, e.Key, e.Msg)
}

// Validate checks enumerated values and ranges.
func (c *Config) Validate() error {
	invalid := func(key, msg string) error { return &Error{Path: c.Path, Key: key, Msg: msg} }

	if c.Batch.CheckEvery < 0 {
		return invalid("batch.check_every", "must be positive")
	}
	if c.Batch.Jobs < 0 {
		return invalid("batch.jobs", "must not be negative")
	}
	if !oneOf(c.Batch.TokenPolicy, "", "isolate", "strict") {
		return invalid("batch.token_policy", fmt.Sprintf("%q is not one of isolate|strict", c.Batch.TokenPolicy))
	}
	if !oneOf(c.Report.Format, "", "pretty", "json", "short", "msgpack") {
		return invalid("report.format", fmt.Sprintf("%q is not one of pretty|json|short|msgpack", c.Report.Format))
	}
	if c.Report.MaxProblems < 0 {
		return invalid("report.max_problems", "must not be negative")
	}
	if !oneOf(c.Report.Color, "", "auto", "on", "off") {
		return invalid("report.color", fmt.Sprintf("%q is not one of auto|on|off", c.Report.Color))
	}
	if !oneOf(c.Report.PathMode, "", "auto", "absolute", "relative", "basename") {
		return invalid("report.path_mode", fmt.Sprintf("%q is not one of auto|absolute|relative|basename", c.Report.PathMode))
	}
	if !oneOf(c.Trace.Level, "", "off", "error", "phase", "detail", "debug") {
		return invalid("trace.level", fmt.Sprintf("%q is not one of off|error|phase|detail|debug", c.Trace.Level))
	}
	if !oneOf(c.Trace.Mode, "", "stream", "ring", "both") {
		return invalid("trace.mode", fmt.Sprintf("%q is not one of stream|ring|both", c.Trace.Mode))
	}
	if !oneOf(c.Trace.Format, "", "auto", "text", "ndjson", "json") {
		return invalid("trace.format", fmt.Sprintf("%q is not one of auto|text|ndjson", c.Trace.Format))
	}
	if c.Trace.RingSize < 0 {
		return invalid("trace.ring_size", "must not be negative")
	}
	if c.Trace.Heartbeat.Duration < 0 {
		return invalid("trace.heartbeat", "must not be negative")
	}
	return nil
}

func oneOf(v string, allowed ...string) bool {
	v = strings.ToLower(strings.TrimSpace(v))
	for _, a := range allowed {
		if v == a {
			return true
		}
	}
	return false
}
