package cmd

import (
	"context"
	"fmt"
	"strings"

	"github.com/projecteru2/core/log"
	"github.com/spf13/cobra"

	"github.com/adrianmross/mpctl/pkg/multipass"
)

// lifecycleVerb describes one of the per-instance commands.
type lifecycleVerb struct {
	name      string
	pastTense string
	short     string
	op        func(*multipass.Client) func(context.Context, ...string) error
}

var (
	startVerb = lifecycleVerb{"start", "Started", "Start instances",
		func(c *multipass.Client) func(context.Context, ...string) error { return c.Start }}
	stopVerb = lifecycleVerb{"stop", "Stopped", "Stop running instances",
		func(c *multipass.Client) func(context.Context, ...string) error { return c.Stop }}
	suspendVerb = lifecycleVerb{"suspend", "Suspended", "Suspend running instances",
		func(c *multipass.Client) func(context.Context, ...string) error { return c.Suspend }}
	deleteVerb = lifecycleVerb{"delete", "Deleted", "Delete instances (recoverable until purged)",
		func(c *multipass.Client) func(context.Context, ...string) error { return c.Delete }}
	recoverVerb = lifecycleVerb{"recover", "Recovered", "Recover deleted instances",
		func(c *multipass.Client) func(context.Context, ...string) error { return c.Recover }}
)

func newLifecycleCmd(v lifecycleVerb) *cobra.Command {
	var flags configFlags
	var all bool

	cmd := &cobra.Command{
		Use:   v.name + " [NAME...]",
		Short: v.short,
		RunE: func(cmd *cobra.Command, args []string) error {
			refs := args
			switch {
			case all && len(args) > 0:
				return fmt.Errorf("%s: pass instance names or --all, not both", v.name)
			case all:
				refs = []string{multipass.All}
			case len(args) == 0:
				return fmt.Errorf("%s: requires at least one instance name or --all", v.name)
			}
			cfg, err := flags.load(cmd, false)
			if err != nil {
				return err
			}
			client := newClient(cfg)
			return batchCmd(cmd, v.name, v.pastTense, v.op(client), refs)
		},
	}

	flags.register(cmd)
	cmd.Flags().BoolVar(&all, "all", false, "Apply to all instances")
	return cmd
}

// batchCmd issues one multipass command for refs and reports what was done.
func batchCmd(cmd *cobra.Command, name, pastTense string, fn func(context.Context, ...string) error, refs []string) error {
	ctx := commandContext(cmd)
	logger := log.WithFunc("cmd." + name)
	if err := fn(ctx, refs...); err != nil {
		return err
	}
	target := strings.Join(refs, ", ")
	if len(refs) == 1 && refs[0] == multipass.All {
		target = "all instances"
	}
	logger.Infof(ctx, "%s: %s", strings.ToLower(pastTense), target)
	fmt.Fprintf(cmd.OutOrStdout(), "%s %s\n", pastTense, target)
	return nil
}

func newPurgeCmd() *cobra.Command {
	var flags configFlags

	cmd := &cobra.Command{
		Use:   "purge",
		Short: "Permanently remove all deleted instances",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := flags.load(cmd, false)
			if err != nil {
				return err
			}
			if err := newClient(cfg).Purge(commandContext(cmd)); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "Purged deleted instances")
			return nil
		},
	}

	flags.register(cmd)
	return cmd
}

func newPowerCmd() *cobra.Command {
	var flags configFlags

	cmd := &cobra.Command{
		Use:       "power NAME STATE",
		Short:     "Change the power state of an instance (start|stop|suspend)",
		Args:      cobra.ExactArgs(2),
		ValidArgs: multipass.PowerStates,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := flags.load(cmd, false)
			if err != nil {
				return err
			}
			name, state := args[0], args[1]
			if err := newClient(cfg).ChangePowerState(commandContext(cmd), name, state); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s: %s done\n", name, strings.ToLower(state))
			return nil
		},
	}

	flags.register(cmd)
	return cmd
}
