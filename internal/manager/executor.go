package manager

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"
	"strings"
	"time"
)

// Credential is a one-shot secret handed to a single execution. It never
// prints its value.
type Credential string

func (Credential) String() string { return "[redacted]" }

func (Credential) MarshalText() ([]byte, error) { return []byte("[redacted]"), nil }

func (c Credential) Empty() bool { return c == "" }

type Outcome int

const (
	OutcomeSuccess Outcome = iota
	OutcomeFailure
	OutcomeAborted
)

func (o Outcome) String() string {
	switch o {
	case OutcomeSuccess:
		return "success"
	case OutcomeFailure:
		return "failure"
	case OutcomeAborted:
		return "aborted"
	}
	return "unknown"
}

// Result is produced exactly once per execution. Diagnostic is only set on
// failure: the child's stderr, its stdout when stderr was empty, or the
// reason it could not be started.
type Result struct {
	Outcome    Outcome
	Stdout     string
	Diagnostic string
	Err        error
}

func (r Result) OK() bool { return r.Outcome == OutcomeSuccess }

func Succeeded(stdout string) Result {
	return Result{Outcome: OutcomeSuccess, Stdout: stdout}
}

func Failed(diagnostic string, err error) Result {
	return Result{Outcome: OutcomeFailure, Diagnostic: diagnostic, Err: err}
}

func AbortedResult() Result {
	return Result{Outcome: OutcomeAborted, Err: ErrUserAborted}
}

type Executor interface {
	Execute(ctx context.Context, spec CommandSpec, cred Credential) Result
}

// CmdExecutor runs a CommandSpec as a child process and blocks until it exits.
type CmdExecutor struct {
	Env []string
	// WaitDelay bounds how long Wait keeps draining output after the
	// context kills the child.
	WaitDelay time.Duration
}

func (e CmdExecutor) Execute(ctx context.Context, spec CommandSpec, cred Credential) Result {
	if spec.RequiresCredential && cred.Empty() {
		return AbortedResult()
	}

	cmd := exec.CommandContext(ctx, spec.Program, spec.Args...)
	if len(e.Env) > 0 {
		cmd.Env = append(os.Environ(), e.Env...)
	}
	cmd.WaitDelay = e.WaitDelay
	if cmd.WaitDelay == 0 {
		cmd.WaitDelay = 5 * time.Second
	}

	var stdoutBuf, stderrBuf bytes.Buffer
	cmd.Stdout = &stdoutBuf
	cmd.Stderr = &stderrBuf

	var stdin io.WriteCloser
	if spec.RequiresCredential {
		pipe, err := cmd.StdinPipe()
		if err != nil {
			return spawnFailure(spec.Program, err)
		}
		stdin = pipe
	}

	if err := cmd.Start(); err != nil {
		return spawnFailure(spec.Program, err)
	}

	if stdin != nil {
		// A child that exits before reading gives EPIPE here; Wait reports
		// the real outcome.
		_, _ = io.WriteString(stdin, string(cred)+"\n")
		_ = stdin.Close()
		cred = ""
	}

	err := cmd.Wait()
	return classify(ctx, spec.Program, stdoutBuf.String(), stderrBuf.String(), err)
}

func spawnFailure(program string, err error) Result {
	spawnErr := &SpawnError{Program: program, Err: err}
	return Failed(spawnErr.Error(), spawnErr)
}

func classify(ctx context.Context, program, stdout, stderr string, err error) Result {
	if err == nil {
		return Succeeded(stdout)
	}

	diagnostic := stderr
	if strings.TrimSpace(diagnostic) == "" {
		diagnostic = stdout
	}

	if ctxErr := ctx.Err(); ctxErr != nil {
		if strings.TrimSpace(diagnostic) == "" {
			diagnostic = fmt.Sprintf("%s: %v", program, ctxErr)
		}
		res := Failed(diagnostic, fmt.Errorf("%s: %w", program, ctxErr))
		res.Stdout = stdout
		return res
	}

	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		res := Failed(diagnostic, &ManagerError{
			Program:  program,
			ExitCode: exitErr.ExitCode(),
			Output:   diagnostic,
		})
		res.Stdout = stdout
		return res
	}

	if strings.TrimSpace(diagnostic) == "" {
		diagnostic = err.Error()
	}
	res := Failed(diagnostic, fmt.Errorf("wait %s: %w", program, err))
	res.Stdout = stdout
	return res
}
