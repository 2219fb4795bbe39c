package multipass

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/projecteru2/core/log"
)

// State is the lifecycle state reported by multipass.
type State string

const (
	StateRunning   State = "Running"
	StateStopped   State = "Stopped"
	StateSuspended State = "Suspended"
	// StateOther groups every state multipass reports beyond the three above
	// (Starting, Deleted, Unknown, ...).
	StateOther State = "Other"
)

// Category maps s onto one of the four known states.
func (s State) Category() State {
	switch s {
	case StateRunning, StateStopped, StateSuspended:
		return s
	default:
		return StateOther
	}
}

// ParseState matches a user supplied state name case-insensitively.
func ParseState(s string) (State, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "running":
		return StateRunning, nil
	case "stopped":
		return StateStopped, nil
	case "suspended":
		return StateSuspended, nil
	case "other":
		return StateOther, nil
	default:
		return "", fmt.Errorf("unknown state: %s", s)
	}
}

// Instance is a snapshot of one multipass instance.
type Instance struct {
	Name    string   `json:"name" yaml:"name"`
	State   State    `json:"state" yaml:"state"`
	IPv4    []string `json:"ipv4,omitempty" yaml:"ipv4,omitempty"`
	Release string   `json:"release,omitempty" yaml:"release,omitempty"`
	Load    string   `json:"load,omitempty" yaml:"load,omitempty"`
	Disk    string   `json:"disk,omitempty" yaml:"disk,omitempty"`
	Memory  string   `json:"memory,omitempty" yaml:"memory,omitempty"`
}

// PrimaryIPv4 returns the first reported address, or "".
func (i Instance) PrimaryIPv4() string {
	if len(i.IPv4) == 0 {
		return ""
	}
	return i.IPv4[0]
}

var ErrMalformedList = errors.New("malformed instance list")

type listResponse struct {
	List *[]Instance `json:"list"`
}

// ListInstances runs `list --format json` and decodes the result. It never
// returns a partial list.
func (c *Client) ListInstances(ctx context.Context) ([]Instance, error) {
	out, err := c.run(ctx, "list", "--format", "json")
	if err != nil {
		return nil, fmt.Errorf("list instances: %w", err)
	}
	instances, err := ParseInstances([]byte(out))
	if err != nil {
		log.WithFunc("multipass.ListInstances").Warnf(ctx, "parse list output: %v", err)
		return nil, err
	}
	return instances, nil
}

// ParseInstances decodes the `{"list": [...]}` document emitted by multipass.
func ParseInstances(data []byte) ([]Instance, error) {
	var resp listResponse
	if err := json.Unmarshal(data, &resp); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedList, err)
	}
	if resp.List == nil {
		return nil, fmt.Errorf("%w: missing \"list\" key", ErrMalformedList)
	}
	for i, inst := range *resp.List {
		if inst.Name == "" {
			return nil, fmt.Errorf("%w: entry %d has no name", ErrMalformedList, i)
		}
	}
	return *resp.List, nil
}

// FilterByState returns the records in state, preserving order. Filtering by
// StateOther selects every record outside the three known states.
func FilterByState(instances []Instance, state State) []Instance {
	out := make([]Instance, 0, len(instances))
	for _, inst := range instances {
		if inst.State == state || (state == StateOther && inst.State.Category() == StateOther) {
			out = append(out, inst)
		}
	}
	return out
}

// Names returns the instance names in order.
func Names(instances []Instance) []string {
	names := make([]string, 0, len(instances))
	for _, inst := range instances {
		names = append(names, inst.Name)
	}
	return names
}

func (c *Client) namesIn(ctx context.Context, state State) ([]string, error) {
	instances, err := c.ListInstances(ctx)
	if err != nil {
		return nil, err
	}
	return Names(FilterByState(instances, state)), nil
}

// RunningNames lists the names of running instances.
func (c *Client) RunningNames(ctx context.Context) ([]string, error) {
	return c.namesIn(ctx, StateRunning)
}

// StoppedNames lists the names of stopped instances.
func (c *Client) StoppedNames(ctx context.Context) ([]string, error) {
	return c.namesIn(ctx, StateStopped)
}

// SuspendedNames lists the names of suspended instances.
func (c *Client) SuspendedNames(ctx context.Context) ([]string, error) {
	return c.namesIn(ctx, StateSuspended)
}
