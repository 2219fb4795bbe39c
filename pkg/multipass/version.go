package multipass

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"strings"
)

var (
	ErrNoVersion   = errors.New("no version found in output")
	versionPattern = regexp.MustCompile(`\b\d+\.\d+\.\d+`)
)

// Version returns the dotted version of the installed tool.
func (c *Client) Version(ctx context.Context) (string, error) {
	out, err := c.run(ctx, "--version")
	if err != nil {
		return "", fmt.Errorf("version: %w", err)
	}
	return ParseVersion(out)
}

// ParseVersion extracts the first x.y.z from the first line of out.
func ParseVersion(out string) (string, error) {
	first, _, _ := strings.Cut(strings.TrimSpace(out), "\n")
	v := versionPattern.FindString(first)
	if v == "" {
		return "", ErrNoVersion
	}
	return v, nil
}
