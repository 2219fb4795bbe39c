package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/gofrs/flock"
	"gopkg.in/yaml.v3"

	"github.com/adrianmross/mpctl/pkg/multipass"
	"github.com/adrianmross/mpctl/pkg/runner"
)

// Config represents the persisted settings for mpctl.
type Config struct {
	Options Options       `yaml:"options" json:"options"`
	Log     Log           `yaml:"log" json:"log"`
	Launch  LaunchDefault `yaml:"launch" json:"launch"`
	UI      UI            `yaml:"ui" json:"ui"`
}

// Options holds global settings.
type Options struct {
	Tool    string        `yaml:"tool" json:"tool"`
	Timeout time.Duration `yaml:"timeout" json:"timeout"`
}

// MarshalJSON renders Timeout as a duration string, matching the yaml form.
func (o Options) MarshalJSON() ([]byte, error) {
	type options Options
	return json.Marshal(struct {
		options
		Timeout string `json:"timeout"`
	}{options(o), o.Timeout.String()})
}

// Log configures the process logger.
type Log struct {
	Level    string `yaml:"level" json:"level"`
	Filename string `yaml:"filename" json:"filename"`
}

// LaunchDefault is applied to `launch` when a flag is not given, and to
// every launch issued from the TUI.
type LaunchDefault struct {
	Image  string `yaml:"image" json:"image"`
	CPUs   int    `yaml:"cpus" json:"cpus"`
	Memory string `yaml:"memory" json:"memory"`
	Disk   string `yaml:"disk" json:"disk"`
}

// UI holds TUI display options.
type UI struct {
	Compact bool `yaml:"compact" json:"compact"`
}

// DefaultConfig returns the initial config. An empty log filename means
// stdout for commands and DefaultLogFile for the TUI.
func DefaultConfig() Config {
	return Config{
		Options: Options{
			Tool: runner.DefaultBinary,
		},
		Log: Log{
			Level: "info",
		},
	}
}

// DefaultLogFile is where the TUI logs unless log.filename is set.
func DefaultLogFile(home string) string {
	return filepath.Join(home, ".mpctl", "mpctl.log")
}

// EnsureDefaultConfig creates a default config file if it does not exist.
func EnsureDefaultConfig(path string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}
	if _, err := os.Stat(path); err == nil {
		return nil // already exists
	}
	return Save(path, DefaultConfig())
}

// Load reads config with a file lock for safety.
func Load(path string) (Config, error) {
	lock := flock.New(path + ".lock")
	if err := lock.Lock(); err != nil {
		return Config{}, err
	}
	defer lock.Unlock()

	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, err
	}
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, err
	}
	if cfg.Options.Tool == "" {
		cfg.Options.Tool = runner.DefaultBinary
	}
	return cfg, nil
}

// Save writes config with a file lock.
func Save(path string, cfg Config) error {
	lock := flock.New(path + ".lock")
	if err := lock.Lock(); err != nil {
		return err
	}
	defer lock.Unlock()

	data, err := yaml.Marshal(&cfg)
	if err != nil {
		return err
	}
	if err := os.WriteFile(path, data, 0o600); err != nil {
		return err
	}
	return nil
}

// LaunchOptions merges the launch defaults under the explicit options.
func (c Config) LaunchOptions(explicit multipass.LaunchOptions) multipass.LaunchOptions {
	out := explicit
	if out.Image == "" {
		out.Image = c.Launch.Image
	}
	if out.CPUs == 0 {
		out.CPUs = c.Launch.CPUs
	}
	if out.Memory == "" {
		out.Memory = c.Launch.Memory
	}
	if out.Disk == "" {
		out.Disk = c.Launch.Disk
	}
	return out
}

// Validate checks values that would otherwise only fail once multipass runs.
func (c Config) Validate() error {
	if c.Options.Timeout < 0 {
		return fmt.Errorf("options.timeout must not be negative")
	}
	if err := c.LaunchOptions(multipass.LaunchOptions{}).Validate(); err != nil {
		return fmt.Errorf("launch defaults: %w", err)
	}
	return nil
}
