package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

func newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:           "mpctl",
		Short:         "Manage multipass instances from the terminal",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	// Subcommands
	cmd.AddCommand(
		newInitCmd(),
		newListCmd(),
		newLifecycleCmd(startVerb),
		newLifecycleCmd(stopVerb),
		newLifecycleCmd(suspendVerb),
		newLifecycleCmd(deleteVerb),
		newLifecycleCmd(recoverVerb),
		newPurgeCmd(),
		newLaunchCmd(),
		newPowerCmd(),
		newExportCmd(),
		newSetCmd(),
		newCurrentCmd(),
		newVersionCmd(),
		newTuiCmd(),
	)

	return cmd
}

// Execute runs the CLI.
func Execute() {
	ctx, cancel := newCommandContext()
	err := newRootCmd().ExecuteContext(ctx)
	cancel()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
