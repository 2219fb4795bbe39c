package cmd

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/adrianmross/mpctl/internal/tui"
	"github.com/adrianmross/mpctl/pkg/multipass"
)

func newTuiCmd() *cobra.Command {
	var flags configFlags

	cmd := &cobra.Command{
		Use:   "tui",
		Short: "Interactive instance manager",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			interactive := isTerminal()
			cfg, err := flags.load(cmd, interactive)
			if err != nil {
				return err
			}
			client := newClient(cfg)
			if !interactive {
				return runListFallback(cmd, client)
			}
			p := tea.NewProgram(tui.New(client, cfg), tea.WithAltScreen(), tea.WithMouseCellMotion(), tea.WithContext(commandContext(cmd)))
			_, err = p.Run()
			return err
		},
	}

	flags.register(cmd)
	return cmd
}

// runListFallback prints the instance list when stdout is not a terminal.
func runListFallback(cmd *cobra.Command, client *multipass.Client) error {
	instances, err := client.ListInstances(commandContext(cmd))
	if err != nil {
		return err
	}
	out := cmd.OutOrStdout()
	fmt.Fprintln(out, "Not a terminal; listing instances instead.")
	if len(instances) == 0 {
		fmt.Fprintln(out, "No instances.")
		return nil
	}
	for i, inst := range instances {
		fmt.Fprintf(out, "%d) %s [%s]\n", i+1, inst.Name, inst.State)
	}
	return nil
}
