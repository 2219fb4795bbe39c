package cmd

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/spf13/cobra"

	"github.com/adrianmross/mpctl/pkg/config"
	"github.com/adrianmross/mpctl/pkg/multipass"
	"github.com/adrianmross/mpctl/pkg/runner"
)

// pathsEqual normalizes symlinks (macOS /private/tmp) before comparison.
func pathsEqual(a, b string) bool {
	aAbs, _ := filepath.EvalSymlinks(a)
	bAbs, _ := filepath.EvalSymlinks(b)
	if aAbs == "" {
		aAbs = a
	}
	if bAbs == "" {
		bAbs = b
	}
	return aAbs == bAbs
}

// helper to run resolveConfigPath in a temp working directory with files created.
func withTempWd(t *testing.T, fn func(tmp string)) {
	t.Helper()
	cwd, err := os.Getwd()
	if err != nil {
		t.Fatalf("getwd: %v", err)
	}
	tmp := t.TempDir()
	if err := os.Chdir(tmp); err != nil {
		t.Fatalf("chdir: %v", err)
	}
	t.Cleanup(func() { _ = os.Chdir(cwd) })
	fn(tmp)
}

func touch(t *testing.T, path string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	f, err := os.Create(path)
	if err != nil {
		t.Fatalf("create %s: %v", path, err)
	}
	f.Close()
}

func TestResolveConfigPath_ProjectPriority(t *testing.T) {
	withTempWd(t, func(tmp string) {
		// create lower-priority file
		touch(t, filepath.Join(tmp, "mpctl.yml"))
		// higher-priority hidden top-level should win
		touch(t, filepath.Join(tmp, ".mpctl.yml"))

		got, err := resolveConfigPath("", false)
		if err != nil {
			t.Fatalf("resolve: %v", err)
		}
		want := filepath.Join(tmp, ".mpctl.yml")
		if !pathsEqual(got, want) {
			t.Fatalf("want %s, got %s", want, got)
		}
	})
}

func TestResolveConfigPath_DirectoryConfig(t *testing.T) {
	withTempWd(t, func(tmp string) {
		// prefer ./.mpctl/config.yml over ./mpctl.yml
		touch(t, filepath.Join(tmp, "mpctl.yml"))
		touch(t, filepath.Join(tmp, ".mpctl", "config.yml"))

		got, err := resolveConfigPath("", false)
		if err != nil {
			t.Fatalf("resolve: %v", err)
		}
		want := filepath.Join(tmp, ".mpctl", "config.yml")
		if !pathsEqual(got, want) {
			t.Fatalf("want %s, got %s", want, got)
		}
	})
}

func TestResolveConfigPath_GlobalFlag(t *testing.T) {
	got, err := resolveConfigPath("", true)
	if err != nil {
		t.Fatalf("resolve: %v", err)
	}
	home, _ := os.UserHomeDir()
	want := filepath.Join(home, ".mpctl", "config.yml")
	if !pathsEqual(got, want) {
		t.Fatalf("want global %s, got %s", want, got)
	}
}

func TestResolveConfigPath_Explicit(t *testing.T) {
	got, err := resolveConfigPath("/tmp/custom.yml", false)
	if err != nil {
		t.Fatalf("resolve: %v", err)
	}
	if got != "/tmp/custom.yml" {
		t.Fatalf("expected explicit path, got %s", got)
	}
}

// stubClient routes every command through fake and records the config it was built from.
func stubClient(t *testing.T, fake *runner.Fake) *config.Config {
	t.Helper()
	t.Setenv("HOME", t.TempDir())
	var seen config.Config
	original := newClient
	newClient = func(cfg config.Config) *multipass.Client {
		seen = cfg
		return multipass.NewClient(fake)
	}
	t.Cleanup(func() { newClient = original })
	return &seen
}

func run(t *testing.T, cmd *cobra.Command, args ...string) (string, error) {
	t.Helper()
	buf := &bytes.Buffer{}
	cmd.SetOut(buf)
	cmd.SetErr(buf)
	cmd.SetArgs(append(args, "--config", filepath.Join(t.TempDir(), "config.yml")))
	err := cmd.Execute()
	return buf.String(), err
}

func TestLoadConfigOverrides(t *testing.T) {
	seen := stubClient(t, runner.NewFake())
	t.Setenv("MPCTL_TOOL", "/opt/multipass/bin/multipass")

	if _, err := run(t, newPurgeCmd(), "--timeout", "45s"); err != nil {
		t.Fatalf("purge: %v", err)
	}
	if seen.Options.Tool != "/opt/multipass/bin/multipass" {
		t.Fatalf("expected tool from env, got %q", seen.Options.Tool)
	}
	if seen.Options.Timeout != 45*time.Second {
		t.Fatalf("expected timeout from flag, got %s", seen.Options.Timeout)
	}

	if _, err := run(t, newPurgeCmd(), "--tool", "mp-dev"); err != nil {
		t.Fatalf("purge: %v", err)
	}
	if seen.Options.Tool != "mp-dev" {
		t.Fatalf("flag should win over env, got %q", seen.Options.Tool)
	}
}

func TestLoadConfigFromFile(t *testing.T) {
	seen := stubClient(t, runner.NewFake())
	path := filepath.Join(t.TempDir(), "config.yml")
	cfg := config.DefaultConfig()
	cfg.Options.Tool = "snap-multipass"
	cfg.Launch.Memory = "lots"
	if err := config.Save(path, cfg); err != nil {
		t.Fatalf("save: %v", err)
	}

	cmd := newPurgeCmd()
	cmd.SetOut(&bytes.Buffer{})
	cmd.SetArgs([]string{"--config", path})
	if err := cmd.Execute(); err == nil || !strings.Contains(err.Error(), "launch defaults") {
		t.Fatalf("expected invalid launch defaults to be rejected, got %v", err)
	}

	cfg.Launch.Memory = "2G"
	if err := config.Save(path, cfg); err != nil {
		t.Fatalf("save: %v", err)
	}
	cmd = newPurgeCmd()
	cmd.SetOut(&bytes.Buffer{})
	cmd.SetArgs([]string{"--config", path})
	if err := cmd.Execute(); err != nil {
		t.Fatalf("purge: %v", err)
	}
	if seen.Options.Tool != "snap-multipass" {
		t.Fatalf("expected tool from file, got %q", seen.Options.Tool)
	}
}
