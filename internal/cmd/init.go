package cmd

import (
	"fmt"

	"github.com/adrianmross/mpctl/pkg/config"
	"github.com/spf13/cobra"
)

func newInitCmd() *cobra.Command {
	var cfgPath string

	cmd := &cobra.Command{
		Use:   "init",
		Short: "Initialize mpctl config file",
		RunE: func(cmd *cobra.Command, args []string) error {
			if cfgPath == "" {
				p, err := globalConfigPath()
				if err != nil {
					return err
				}
				cfgPath = p
			}
			if err := config.EnsureDefaultConfig(cfgPath); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Initialized config at %s\n", cfgPath)
			return nil
		},
	}

	cmd.Flags().StringVarP(&cfgPath, "config", "c", "", "Path to config file")
	return cmd
}
