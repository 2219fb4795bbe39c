package multipass

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	units "github.com/docker/go-units"
)

// All targets every instance (`--all`) in place of explicit names.
const All = "--all"

var (
	ErrInvalidPowerState = errors.New("invalid power state")
	ErrNoTarget          = errors.New("no instance given")
)

// PowerStates are the verbs accepted by ChangePowerState.
var PowerStates = []string{"start", "stop", "suspend"}

// Start starts the named instances, or all of them with All.
func (c *Client) Start(ctx context.Context, names ...string) error {
	return c.lifecycle(ctx, "start", names)
}

// Stop stops the named instances, or all of them with All.
func (c *Client) Stop(ctx context.Context, names ...string) error {
	return c.lifecycle(ctx, "stop", names)
}

// Suspend suspends the named instances, or all of them with All.
func (c *Client) Suspend(ctx context.Context, names ...string) error {
	return c.lifecycle(ctx, "suspend", names)
}

// Delete marks the named instances deleted; Purge removes them for good.
func (c *Client) Delete(ctx context.Context, names ...string) error {
	return c.lifecycle(ctx, "delete", names)
}

// Recover brings back deleted instances that were not purged yet.
func (c *Client) Recover(ctx context.Context, names ...string) error {
	return c.lifecycle(ctx, "recover", names)
}

// Purge permanently removes all deleted instances.
func (c *Client) Purge(ctx context.Context) error {
	if _, err := c.run(ctx, "purge"); err != nil {
		return fmt.Errorf("purge: %w", err)
	}
	return nil
}

// StartAll starts every instance.
func (c *Client) StartAll(ctx context.Context) error { return c.Start(ctx, All) }

// StopAll stops every instance.
func (c *Client) StopAll(ctx context.Context) error { return c.Stop(ctx, All) }

// ChangePowerState dispatches start, stop or suspend for name. Any other
// verb is rejected before the runner is touched.
func (c *Client) ChangePowerState(ctx context.Context, name, desired string) error {
	verb := strings.ToLower(strings.TrimSpace(desired))
	for _, allowed := range PowerStates {
		if verb == allowed {
			return c.lifecycle(ctx, verb, []string{name})
		}
	}
	return fmt.Errorf("%w %q: can only %s instances", ErrInvalidPowerState, desired, strings.Join(PowerStates, ", "))
}

func (c *Client) lifecycle(ctx context.Context, verb string, names []string) error {
	args := []string{verb}
	for _, n := range names {
		if n = strings.TrimSpace(n); n != "" {
			args = append(args, n)
		}
	}
	if len(args) == 1 {
		return fmt.Errorf("%s: %w", verb, ErrNoTarget)
	}
	if _, err := c.run(ctx, args...); err != nil {
		return fmt.Errorf("%s %s: %w", verb, strings.Join(args[1:], " "), err)
	}
	return nil
}

// LaunchOptions are the optional arguments of `launch`. The zero value
// issues a bare `launch` with multipass defaults.
type LaunchOptions struct {
	Name   string
	Image  string
	CPUs   int
	Memory string // e.g. "2G"
	Disk   string // e.g. "10G"
}

// Validate checks the size strings and cpu count.
func (o LaunchOptions) Validate() error {
	if o.CPUs < 0 {
		return fmt.Errorf("invalid cpus %d", o.CPUs)
	}
	if o.Memory != "" {
		if _, err := units.RAMInBytes(o.Memory); err != nil {
			return fmt.Errorf("invalid memory %q: %w", o.Memory, err)
		}
	}
	if o.Disk != "" {
		if _, err := units.RAMInBytes(o.Disk); err != nil {
			return fmt.Errorf("invalid disk %q: %w", o.Disk, err)
		}
	}
	return nil
}

// Args renders the launch invocation.
func (o LaunchOptions) Args() []string {
	args := []string{"launch"}
	if o.Name != "" {
		args = append(args, "--name", o.Name)
	}
	if o.CPUs > 0 {
		args = append(args, "--cpus", strconv.Itoa(o.CPUs))
	}
	if o.Memory != "" {
		args = append(args, "--memory", o.Memory)
	}
	if o.Disk != "" {
		args = append(args, "--disk", o.Disk)
	}
	if o.Image != "" {
		args = append(args, o.Image)
	}
	return args
}

// Launch creates a new instance.
func (c *Client) Launch(ctx context.Context, opts LaunchOptions) error {
	if err := opts.Validate(); err != nil {
		return fmt.Errorf("launch: %w", err)
	}
	if _, err := c.run(ctx, opts.Args()...); err != nil {
		return fmt.Errorf("launch: %w", err)
	}
	return nil
}

// HumanSize renders a byte count string (as reported by `info`) for display;
// values that are not plain integers are returned unchanged.
func HumanSize(raw string) string {
	n, err := strconv.ParseInt(strings.TrimSpace(raw), 10, 64)
	if err != nil {
		return raw
	}
	return units.BytesSize(float64(n))
}
