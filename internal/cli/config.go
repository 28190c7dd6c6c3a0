package cli

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	semver "github.com/Masterminds/semver/v3"
	"gopkg.in/yaml.v3"
)

// Color modes accepted by Config.Color.
const (
	ColorAuto   = "auto"
	ColorAlways = "always"
	ColorNever  = "never"
)

// DefaultConfigFile is looked up in the working directory when --config
// is not given.
const DefaultConfigFile = "vlang.yaml"

// ServeConfig configures the evaluation endpoint.
type ServeConfig struct {
	Addr      string        `json:"addr" yaml:"addr"`
	HTTP1Addr string        `json:"http1_addr,omitempty" yaml:"http1_addr,omitempty"`
	Cert      string        `json:"cert,omitempty" yaml:"cert,omitempty"`
	Key       string        `json:"key,omitempty" yaml:"key,omitempty"`
	MaxBody   int64         `json:"max_body" yaml:"max_body"`
	Timeout   time.Duration `json:"timeout" yaml:"timeout"`
}

// WatchConfig configures the file watcher.
type WatchConfig struct {
	Debounce time.Duration `json:"debounce" yaml:"debounce"`
}

// Config represents common configuration for CLI tools
type Config struct {
	Verbose        bool        `json:"verbose" yaml:"verbose"`
	Debug          bool        `json:"debug" yaml:"debug"`
	Color          string      `json:"color" yaml:"color"`
	Requires       string      `json:"requires,omitempty" yaml:"requires,omitempty"`
	HistoryFile    string      `json:"history_file" yaml:"history_file"`
	MaxHistory     int         `json:"max_history" yaml:"max_history"`
	FloatPrecision int         `json:"float_precision" yaml:"float_precision"`
	MaxCallDepth   int         `json:"max_call_depth" yaml:"max_call_depth"`
	Serve          ServeConfig `json:"serve" yaml:"serve"`
	Watch          WatchConfig `json:"watch" yaml:"watch"`
}

// DefaultConfig returns the configuration used when no file is present.
func DefaultConfig() *Config {
	return &Config{
		Color:          ColorAuto,
		HistoryFile:    ".vlang_history",
		MaxHistory:     1000,
		FloatPrecision: 4,
		MaxCallDepth:   1000,
		Serve: ServeConfig{
			Addr:    "localhost:8443",
			MaxBody: 1 << 20,
			Timeout: 10 * time.Second,
		},
		Watch: WatchConfig{Debounce: 100 * time.Millisecond},
	}
}

// LoadConfig loads configuration from file and applies VLANG_*
// environment overrides. A missing file yields the defaults.
func LoadConfig(configPath string) (*Config, error) {
	config := DefaultConfig()

	if configPath != "" {
		data, err := os.ReadFile(configPath)
		switch {
		case err == nil:
			if err := config.decode(configPath, data); err != nil {
				return nil, fmt.Errorf("failed to parse config file: %w", err)
			}
		case !os.IsNotExist(err):
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	if err := config.applyEnv(os.LookupEnv); err != nil {
		return nil, err
	}
	return config, nil
}

func isJSON(path string) bool {
	return strings.EqualFold(filepath.Ext(path), ".json")
}

func (c *Config) decode(path string, data []byte) error {
	if isJSON(path) {
		return json.Unmarshal(data, c)
	}
	return yaml.Unmarshal(data, c)
}

func (c *Config) applyEnv(lookup func(string) (string, bool)) error {
	boolVar := func(name string, dst *bool) error {
		if v, ok := lookup(name); ok {
			b, err := strconv.ParseBool(v)
			if err != nil {
				return fmt.Errorf("invalid %s: %w", name, err)
			}
			*dst = b
		}
		return nil
	}

	if err := boolVar("VLANG_VERBOSE", &c.Verbose); err != nil {
		return err
	}
	if err := boolVar("VLANG_DEBUG", &c.Debug); err != nil {
		return err
	}
	if v, ok := lookup("VLANG_COLOR"); ok {
		c.Color = v
	}
	if v, ok := lookup("VLANG_HISTORY"); ok {
		c.HistoryFile = v
	}
	if v, ok := lookup("VLANG_ADDR"); ok {
		c.Serve.Addr = v
	}
	return nil
}

// Validate checks field ranges and that this tool satisfies the
// `requires` version constraint.
func (c *Config) Validate() error {
	switch c.Color {
	case ColorAuto, ColorAlways, ColorNever:
	default:
		return fmt.Errorf("invalid color mode %q: want auto, always or never", c.Color)
	}
	if c.FloatPrecision < 0 || c.FloatPrecision > 17 {
		return fmt.Errorf("float_precision must be between 0 and 17, got %d", c.FloatPrecision)
	}
	if c.MaxCallDepth <= 0 {
		return fmt.Errorf("max_call_depth must be positive, got %d", c.MaxCallDepth)
	}
	if c.Serve.Timeout < 0 {
		return fmt.Errorf("serve.timeout must not be negative, got %s", c.Serve.Timeout)
	}
	if c.Requires != "" {
		if err := CheckVersion(c.Requires); err != nil {
			return err
		}
	}
	return nil
}

// CheckVersion reports an error unless the tool version satisfies the
// semver constraint.
func CheckVersion(constraint string) error {
	cons, err := semver.NewConstraint(constraint)
	if err != nil {
		return fmt.Errorf("invalid version constraint %q: %w", constraint, err)
	}
	v, err := semver.NewVersion(Version)
	if err != nil {
		return fmt.Errorf("invalid tool version %q: %w", Version, err)
	}
	if ok, errs := cons.Validate(v); !ok {
		msgs := make([]string, len(errs))
		for i, e := range errs {
			msgs[i] = e.Error()
		}
		return fmt.Errorf("vlang %s does not satisfy %q: %s", Version, constraint, strings.Join(msgs, "; "))
	}
	return nil
}

// UseColor resolves the color mode for a stream.
func (c *Config) UseColor(fd uintptr) bool {
	switch c.Color {
	case ColorAlways:
		return true
	case ColorNever:
		return false
	default:
		return IsTerminal(fd)
	}
}

// SaveConfig saves configuration to file, as JSON for a .json path and
// YAML otherwise.
func (c *Config) SaveConfig(configPath string) error {
	var (
		data []byte
		err  error
	)
	if isJSON(configPath) {
		data, err = json.MarshalIndent(c, "", "  ")
	} else {
		data, err = yaml.Marshal(c)
	}
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(configPath, data, 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}
