package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/adrianmross/mpctl/pkg/multipass"
)

func newLaunchCmd() *cobra.Command {
	var flags configFlags
	var opts multipass.LaunchOptions

	cmd := &cobra.Command{
		Use:   "launch [IMAGE]",
		Short: "Create and start a new instance",
		Long:  "Create and start a new instance. Without arguments multipass picks the name and image; launch defaults from the config fill unset flags.",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := flags.load(cmd, false)
			if err != nil {
				return err
			}
			if len(args) == 1 {
				opts.Image = args[0]
			}
			merged := cfg.LaunchOptions(opts)
			if err := newClient(cfg).Launch(commandContext(cmd), merged); err != nil {
				return err
			}
			name := merged.Name
			if name == "" {
				name = "new instance"
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Launched %s\n", name)
			return nil
		},
	}

	flags.register(cmd)
	cmd.Flags().StringVarP(&opts.Name, "name", "n", "", "Instance name")
	cmd.Flags().IntVar(&opts.CPUs, "cpus", 0, "Number of CPUs")
	cmd.Flags().StringVarP(&opts.Memory, "memory", "m", "", "Memory size, e.g. 2G")
	cmd.Flags().StringVarP(&opts.Disk, "disk", "d", "", "Disk size, e.g. 20G")
	return cmd
}
