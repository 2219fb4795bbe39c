package cmd

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

func newCurrentCmd() *cobra.Command {
	var flags configFlags
	var output string

	cmd := &cobra.Command{
		Use:   "current",
		Short: "Show the effective settings after env and flag overrides",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := flags.load(cmd, false)
			if err != nil {
				return err
			}
			switch strings.ToLower(output) {
			case "", "yaml", "yml":
				enc := yaml.NewEncoder(cmd.OutOrStdout())
				defer enc.Close()
				return enc.Encode(cfg)
			case "json":
				enc := json.NewEncoder(cmd.OutOrStdout())
				enc.SetIndent("", "  ")
				return enc.Encode(cfg)
			default:
				return fmt.Errorf("unsupported output format: %s", output)
			}
		},
	}
	flags.register(cmd)
	cmd.Flags().StringVarP(&output, "out", "o", "", "Output format: yaml|json")
	return cmd
}
