package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/adrianmross/mpctl/pkg/multipass"
)

func TestSaveLoadRoundTrip(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yml")

	cfg := DefaultConfig()
	cfg.Options.Timeout = 90 * time.Second
	cfg.Launch = LaunchDefault{Image: "24.04", CPUs: 2, Memory: "2G", Disk: "20G"}
	cfg.UI.Compact = true
	if err := Save(path, cfg); err != nil {
		t.Fatalf("save: %v", err)
	}

	got, err := Load(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if got != cfg {
		t.Fatalf("round trip mismatch:\nwant %+v\ngot  %+v", cfg, got)
	}
}

func TestLoadFillsDefaultTool(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yml")
	if err := os.WriteFile(path, []byte("log:\n  level: debug\n"), 0o600); err != nil {
		t.Fatalf("write: %v", err)
	}
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Options.Tool != "multipass" {
		t.Fatalf("expected default tool, got %q", cfg.Options.Tool)
	}
	if cfg.Log.Level != "debug" {
		t.Fatalf("expected debug level, got %q", cfg.Log.Level)
	}
}

func TestEnsureDefaultConfigKeepsExisting(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "config.yml")
	if err := EnsureDefaultConfig(path); err != nil {
		t.Fatalf("ensure: %v", err)
	}
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	cfg.Options.Tool = "/opt/multipass/bin/multipass"
	if err := Save(path, cfg); err != nil {
		t.Fatalf("save: %v", err)
	}
	if err := EnsureDefaultConfig(path); err != nil {
		t.Fatalf("ensure again: %v", err)
	}
	again, err := Load(path)
	if err != nil {
		t.Fatalf("load again: %v", err)
	}
	if again.Options.Tool != "/opt/multipass/bin/multipass" {
		t.Fatalf("existing config overwritten: %+v", again.Options)
	}
}

func TestLaunchOptionsMerge(t *testing.T) {
	cfg := Config{Launch: LaunchDefault{Image: "22.04", CPUs: 2, Memory: "1G"}}
	got := cfg.LaunchOptions(multipass.LaunchOptions{Name: "dev", Memory: "4G"})
	want := multipass.LaunchOptions{Name: "dev", Image: "22.04", CPUs: 2, Memory: "4G"}
	if got != want {
		t.Fatalf("want %+v, got %+v", want, got)
	}
}

func TestValidate(t *testing.T) {
	cfg := DefaultConfig()
	if err := cfg.Validate(); err != nil {
		t.Fatalf("default config should be valid: %v", err)
	}
	cfg.Launch.Disk = "big"
	if err := cfg.Validate(); err == nil || !strings.Contains(err.Error(), "launch defaults") {
		t.Fatalf("expected launch defaults error, got %v", err)
	}
	cfg = DefaultConfig()
	cfg.Options.Timeout = -time.Second
	if err := cfg.Validate(); err == nil {
		t.Fatalf("expected timeout error")
	}
}
