// Package multipass wraps the multipass CLI: listing instances, parsing its
// JSON and CSV output, and issuing lifecycle commands through a runner.Runner.
package multipass

import (
	"context"

	"github.com/adrianmross/mpctl/pkg/runner"
)

// Client issues multipass commands through a Runner.
type Client struct {
	runner runner.Runner
}

// NewClient returns a Client backed by r.
func NewClient(r runner.Runner) *Client {
	return &Client{runner: r}
}

func (c *Client) run(ctx context.Context, args ...string) (string, error) {
	return c.runner.Run(ctx, args...)
}
