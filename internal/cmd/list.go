package cmd

import (
	"context"
	"encoding/csv"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/adrianmross/mpctl/pkg/multipass"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

func newListCmd() *cobra.Command {
	var flags configFlags
	var output string
	var state string

	cmd := &cobra.Command{
		Use:     "list",
		Aliases: []string{"ls"},
		Short:   "List instances",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := flags.load(cmd, false)
			if err != nil {
				return err
			}
			client := newClient(cfg)
			ctx := commandContext(cmd)
			out := cmd.OutOrStdout()

			format := strings.ToLower(output)
			if format == "csv" {
				if state != "" {
					return fmt.Errorf("--state cannot be combined with csv output")
				}
				t, err := client.ListTable(ctx)
				if err != nil {
					return err
				}
				w := csv.NewWriter(out)
				if err := w.Write(t.Header); err != nil {
					return err
				}
				if err := w.WriteAll(t.Rows); err != nil {
					return err
				}
				return nil
			}

			if format == "names" {
				names, err := listNames(ctx, client, state)
				if err != nil {
					return err
				}
				for _, n := range names {
					fmt.Fprintln(out, n)
				}
				return nil
			}

			instances, err := client.ListInstances(ctx)
			if err != nil {
				return err
			}
			if state != "" {
				s, err := multipass.ParseState(state)
				if err != nil {
					return err
				}
				instances = multipass.FilterByState(instances, s)
			}

			switch format {
			case "":
				// Default: human-friendly list
				for _, inst := range instances {
					marker := " "
					if inst.State == multipass.StateRunning {
						marker = "*"
					}
					ip := inst.PrimaryIPv4()
					if ip == "" {
						ip = "-"
					}
					fmt.Fprintf(out, "%s %s (state=%s ipv4=%s release=%s)\n", marker, inst.Name, inst.State, ip, inst.Release)
				}
				return nil
			case "json":
				enc := json.NewEncoder(out)
				enc.SetIndent("", "  ")
				return enc.Encode(instances)
			case "yaml", "yml":
				enc := yaml.NewEncoder(out)
				defer enc.Close()
				return enc.Encode(instances)
			case "plain":
				for _, inst := range instances {
					fmt.Fprintf(out, "name=%s state=%s ipv4=%s release=%s\n",
						inst.Name,
						inst.State,
						strings.Join(inst.IPv4, ","),
						inst.Release,
					)
				}
				return nil
			default:
				return fmt.Errorf("unsupported output format: %s", output)
			}
		},
	}

	flags.register(cmd)
	cmd.Flags().StringVarP(&output, "out", "o", "", "Output format: json|yaml|plain|csv|names (default: human-readable)")
	cmd.Flags().StringVar(&state, "state", "", "Only list instances in state: running|stopped|suspended|other")
	return cmd
}

// listNames returns instance names, narrowed to state when one is given.
func listNames(ctx context.Context, client *multipass.Client, state string) ([]string, error) {
	if state == "" {
		instances, err := client.ListInstances(ctx)
		if err != nil {
			return nil, err
		}
		return multipass.Names(instances), nil
	}
	s, err := multipass.ParseState(state)
	if err != nil {
		return nil, err
	}
	switch s {
	case multipass.StateRunning:
		return client.RunningNames(ctx)
	case multipass.StateStopped:
		return client.StoppedNames(ctx)
	case multipass.StateSuspended:
		return client.SuspendedNames(ctx)
	default:
		instances, err := client.ListInstances(ctx)
		if err != nil {
			return nil, err
		}
		return multipass.Names(multipass.FilterByState(instances, s)), nil
	}
}
