package cmd

import (
	"context"
	"errors"
	"io/fs"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"

	"github.com/projecteru2/core/log"
	coretypes "github.com/projecteru2/core/types"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"golang.org/x/term"

	"github.com/adrianmross/mpctl/pkg/config"
	"github.com/adrianmross/mpctl/pkg/multipass"
	"github.com/adrianmross/mpctl/pkg/runner"
)

// newClient is a seam so tests can swap in a fake runner.
var newClient = func(cfg config.Config) *multipass.Client {
	return multipass.NewClient(runner.New(cfg.Options.Tool, cfg.Options.Timeout))
}

var isTerminal = func() bool {
	return term.IsTerminal(int(os.Stdout.Fd()))
}

// resolveConfigPath returns the config path based on flags and project discovery.
// Priority:
//  1. explicit --config
//  2. if global flag set -> ~/.mpctl/config.yml
//  3. project-local configs (in order):
//     ./.mpctl.yml, ./.mpctl.json,
//     ./.mpctl/config.yml, ./.mpctl/config.json,
//     ./mpctl.yml, ./mpctl.json,
//     ./mpctl/config.yml, ./mpctl/config.json
//  4. fallback to ~/.mpctl/config.yml
func resolveConfigPath(cfg string, global bool) (string, error) {
	if cfg != "" {
		return cfg, nil
	}

	// global override
	if global {
		return globalConfigPath()
	}

	// project discovery (cwd)
	if wd, err := os.Getwd(); err == nil {
		candidates := []string{
			".mpctl.yml",
			".mpctl.json",
			filepath.Join(".mpctl", "config.yml"),
			filepath.Join(".mpctl", "config.json"),
			"mpctl.yml",
			"mpctl.json",
			filepath.Join("mpctl", "config.yml"),
			filepath.Join("mpctl", "config.json"),
		}
		for _, rel := range candidates {
			p := filepath.Join(wd, rel)
			if fi, err := os.Stat(p); err == nil && !fi.IsDir() {
				return p, nil
			}
		}
	}

	return globalConfigPath()
}

func globalConfigPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".mpctl", "config.yml"), nil
}

// configFlags are the flags every command that talks to multipass accepts.
type configFlags struct {
	path   string
	global bool
}

func (f *configFlags) register(cmd *cobra.Command) {
	fl := cmd.Flags()
	fl.StringVarP(&f.path, "config", "c", "", "Path to config file")
	fl.BoolVarP(&f.global, "global", "g", false, "Use global config (~/.mpctl/config.yml)")
	fl.String("tool", "", "multipass binary to run (env MPCTL_TOOL)")
	fl.Duration("timeout", 0, "Per-command timeout, 0 for none (env MPCTL_TIMEOUT)")
	fl.String("log-level", "", "Log level (env MPCTL_LOG_LEVEL)")
}

// load reads the config file, a missing file meaning defaults, applies
// MPCTL_* environment and flag overrides and sets up logging. Interactive
// sessions log to a file so log lines never draw over the UI.
func (f *configFlags) load(cmd *cobra.Command, interactive bool) (config.Config, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return config.Config{}, err
	}
	path, err := resolveConfigPath(f.path, f.global)
	if err != nil {
		return config.Config{}, err
	}
	cfg, err := config.Load(path)
	switch {
	case errors.Is(err, fs.ErrNotExist):
		cfg = config.DefaultConfig()
	case err != nil:
		return config.Config{}, err
	}

	v := viper.New()
	v.SetEnvPrefix("MPCTL")
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()
	_ = v.BindPFlag("tool", cmd.Flags().Lookup("tool"))
	_ = v.BindPFlag("timeout", cmd.Flags().Lookup("timeout"))
	_ = v.BindPFlag("log_level", cmd.Flags().Lookup("log-level"))
	if s := v.GetString("tool"); s != "" {
		cfg.Options.Tool = s
	}
	if d := v.GetDuration("timeout"); d > 0 {
		cfg.Options.Timeout = d
	}
	if s := v.GetString("log_level"); s != "" {
		cfg.Log.Level = s
	}
	if cfg.Log.Level == "" {
		cfg.Log.Level = "info"
	}
	if interactive && cfg.Log.Filename == "" {
		cfg.Log.Filename = config.DefaultLogFile(home)
	}
	if err := cfg.Validate(); err != nil {
		return config.Config{}, err
	}

	if err := setupLog(commandContext(cmd), cfg.Log); err != nil {
		return config.Config{}, err
	}
	return cfg, nil
}

func setupLog(ctx context.Context, l config.Log) error {
	return log.SetupLog(ctx, &coretypes.ServerLogConfig{
		Level:      l.Level,
		Filename:   l.Filename,
		MaxSize:    50,
		MaxAge:     28,
		MaxBackups: 3,
	}, "")
}

// newCommandContext creates the root command context canceled by SIGINT/SIGTERM.
func newCommandContext() (context.Context, context.CancelFunc) {
	return signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
}

// commandContext returns the command context, falling back to Background.
func commandContext(cmd *cobra.Command) context.Context {
	if cmd != nil && cmd.Context() != nil {
		return cmd.Context()
	}
	return context.Background()
}
