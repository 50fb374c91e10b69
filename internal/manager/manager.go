package manager

import (
	"context"
	"errors"
	"strings"
	"time"
)

const noInfo = "No information available."

// Client runs the read-only catalog queries: search and package info.
type Client struct {
	Exec    Executor
	Builder Builder
	Timeout time.Duration
}

// Search returns the package names matching query. An empty slice means the
// manager found nothing. The manager's exit status is ignored since `-Ss`
// exits nonzero when nothing matches; only a spawn failure is an error.
func (c Client) Search(ctx context.Context, query string, sel Selection) ([]string, error) {
	spec, err := c.Builder.Build(Search, sel, query)
	if err != nil {
		return nil, err
	}
	ctx, cancel := c.withTimeout(ctx)
	defer cancel()

	res := c.Exec.Execute(ctx, spec, "")
	var spawnErr *SpawnError
	if errors.As(res.Err, &spawnErr) {
		return nil, spawnErr
	}
	return ParseSearch(res.Stdout), nil
}

// Info returns the manager's `-Si` description of name.
func (c Client) Info(ctx context.Context, name string, sel Selection) string {
	spec, err := c.Builder.Build(Info, sel, name)
	if err != nil {
		return noInfo
	}
	ctx, cancel := c.withTimeout(ctx)
	defer cancel()

	res := c.Exec.Execute(ctx, spec, "")
	if !res.OK() || strings.TrimSpace(res.Stdout) == "" {
		return noInfo
	}
	return res.Stdout
}

func (c Client) withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	if c.Timeout <= 0 {
		return context.WithCancel(ctx)
	}
	return context.WithTimeout(ctx, c.Timeout)
}
