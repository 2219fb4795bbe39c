package cmd

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/adrianmross/mpctl/pkg/multipass"
)

func newExportCmd() *cobra.Command {
	var flags configFlags
	var format string

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export running instance addresses as hosts entries, env or json",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := flags.load(cmd, false)
			if err != nil {
				return err
			}
			instances, err := newClient(cfg).ListInstances(commandContext(cmd))
			if err != nil {
				return err
			}
			running := multipass.FilterByState(instances, multipass.StateRunning)

			switch format {
			case "hosts", "":
				for _, inst := range running {
					if ip := inst.PrimaryIPv4(); ip != "" {
						fmt.Fprintf(cmd.OutOrStdout(), "%s\t%s\n", ip, inst.Name)
					}
				}
			case "env":
				for _, inst := range running {
					if ip := inst.PrimaryIPv4(); ip != "" {
						fmt.Fprintf(cmd.OutOrStdout(), "export MPCTL_%s_IP=%s\n", envName(inst.Name), ip)
					}
				}
			case "json":
				addrs := make(map[string]string, len(running))
				for _, inst := range running {
					addrs[inst.Name] = inst.PrimaryIPv4()
				}
				enc := json.NewEncoder(cmd.OutOrStdout())
				enc.SetIndent("", "  ")
				if err := enc.Encode(addrs); err != nil {
					return err
				}
			default:
				return fmt.Errorf("unsupported format: %s", format)
			}
			return nil
		},
	}

	flags.register(cmd)
	cmd.Flags().StringVarP(&format, "format", "f", "hosts", "Output format: hosts|env|json")
	return cmd
}

// envName upper-cases name and maps anything outside [A-Z0-9] to '_'.
func envName(name string) string {
	return strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z':
			return r - 'a' + 'A'
		case r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
			return r
		default:
			return '_'
		}
	}, name)
}
