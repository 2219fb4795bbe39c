package cmd

import (
	"fmt"
	"time"

	"github.com/adrianmross/mpctl/pkg/config"
	"github.com/spf13/cobra"
)

func newSetCmd() *cobra.Command {
	var cfgPath string
	var useGlobal bool
	var tool, logLevel, logFile, image, memory, disk string
	var timeout time.Duration
	var cpus int
	var compact bool

	cmd := &cobra.Command{
		Use:   "set",
		Short: "Update persisted settings and launch defaults",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			path, err := resolveConfigPath(cfgPath, useGlobal)
			if err != nil {
				return err
			}
			if err := config.EnsureDefaultConfig(path); err != nil {
				return err
			}
			cfg, err := config.Load(path)
			if err != nil {
				return err
			}
			fl := cmd.Flags()
			if fl.Changed("tool") {
				cfg.Options.Tool = tool
			}
			if fl.Changed("timeout") {
				cfg.Options.Timeout = timeout
			}
			if fl.Changed("log-level") {
				cfg.Log.Level = logLevel
			}
			if fl.Changed("log-file") {
				cfg.Log.Filename = logFile
			}
			if fl.Changed("image") {
				cfg.Launch.Image = image
			}
			if fl.Changed("cpus") {
				cfg.Launch.CPUs = cpus
			}
			if fl.Changed("memory") {
				cfg.Launch.Memory = memory
			}
			if fl.Changed("disk") {
				cfg.Launch.Disk = disk
			}
			if fl.Changed("compact") {
				cfg.UI.Compact = compact
			}
			if err := cfg.Validate(); err != nil {
				return err
			}
			if err := config.Save(path, cfg); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Updated %s\n", path)
			return nil
		},
	}

	cmd.Flags().StringVarP(&cfgPath, "config", "c", "", "Path to config file")
	cmd.Flags().BoolVarP(&useGlobal, "global", "g", false, "Use global config (~/.mpctl/config.yml)")
	cmd.Flags().StringVar(&tool, "tool", "", "multipass binary")
	cmd.Flags().DurationVar(&timeout, "timeout", 0, "Per-command timeout, 0 for none")
	cmd.Flags().StringVar(&logLevel, "log-level", "", "Log level")
	cmd.Flags().StringVar(&logFile, "log-file", "", "Log file, empty for stdout")
	cmd.Flags().StringVar(&image, "image", "", "Default launch image")
	cmd.Flags().IntVar(&cpus, "cpus", 0, "Default launch CPUs")
	cmd.Flags().StringVarP(&memory, "memory", "m", "", "Default launch memory, e.g. 2G")
	cmd.Flags().StringVarP(&disk, "disk", "d", "", "Default launch disk, e.g. 20G")
	cmd.Flags().BoolVar(&compact, "compact", false, "Compact TUI rows")

	return cmd
}
