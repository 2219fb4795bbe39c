package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

// Version is set at build time with -ldflags "-X github.com/adrianmross/mpctl/internal/cmd.Version=...".
var Version = "dev"

func newVersionCmd() *cobra.Command {
	var flags configFlags

	cmd := &cobra.Command{
		Use:   "version",
		Short: "Print mpctl and multipass versions",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			fmt.Fprintf(cmd.OutOrStdout(), "mpctl %s\n", Version)
			cfg, err := flags.load(cmd, false)
			if err != nil {
				return err
			}
			v, err := newClient(cfg).Version(commandContext(cmd))
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "multipass %s\n", v)
			return nil
		},
	}

	flags.register(cmd)
	return cmd
}
