package manager

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrUnknownIntent = errors.New("unknown intent")
	ErrMissingTarget = errors.New("missing target package")
	// ErrUserAborted marks a privileged operation whose credential prompt was
	// dismissed or left empty. Nothing was started.
	ErrUserAborted = errors.New("aborted by user")
)

// SpawnError means the child process could not be started at all.
type SpawnError struct {
	Program string
	Err     error
}

func (e *SpawnError) Error() string {
	return fmt.Sprintf("start %s: %v", e.Program, e.Err)
}

func (e *SpawnError) Unwrap() error { return e.Err }

// ManagerError means the child ran and exited nonzero.
type ManagerError struct {
	Program  string
	ExitCode int
	Output   string
}

func (e *ManagerError) Error() string {
	out := strings.TrimSpace(e.Output)
	if out == "" {
		return fmt.Sprintf("%s exited with status %d", e.Program, e.ExitCode)
	}
	return fmt.Sprintf("%s exited with status %d: %s", e.Program, e.ExitCode, out)
}
