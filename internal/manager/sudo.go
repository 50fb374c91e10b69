package manager

import (
	"context"
	"os/exec"
)

// ElevationCached reports whether elevator can run without prompting.
func ElevationCached(ctx context.Context, elevator string) bool {
	err := exec.CommandContext(ctx, elevator, "-n", "true").Run()
	return err == nil
}
