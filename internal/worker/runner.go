// Package worker runs package-manager commands off the caller's goroutine and
// hands back exactly one result per submission.
package worker

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"fikus/internal/manager"
)

// ErrInFlight is returned when a job for the same target is still running.
var ErrInFlight = errors.New("operation already in flight")

// UpgradeTarget is the in-flight key for whole-system upgrades.
const UpgradeTarget = "@system"

type Job struct {
	Target     string
	Spec       manager.CommandSpec
	Credential manager.Credential
}

type Runner struct {
	exec    manager.Executor
	timeout time.Duration

	mu       sync.Mutex
	inflight map[string]struct{}
	wg       sync.WaitGroup
}

// New returns a Runner. A positive timeout kills jobs that run longer.
func New(exec manager.Executor, timeout time.Duration) *Runner {
	return &Runner{
		exec:     exec,
		timeout:  timeout,
		inflight: make(map[string]struct{}),
	}
}

// Submit starts job on its own goroutine. The returned channel yields one
// result and is then closed.
//
// A job that needs a credential but has none is not started; its channel
// yields an aborted result. A job whose target already has a job running is
// rejected with ErrInFlight and nothing is delivered for it.
//
// Once started, a job ignores cancellation of ctx. Only the runner timeout
// stops it.
func (r *Runner) Submit(ctx context.Context, job Job) (<-chan manager.Result, error) {
	done := make(chan manager.Result, 1)

	if job.Spec.RequiresCredential && job.Credential.Empty() {
		done <- manager.AbortedResult()
		close(done)
		return done, nil
	}

	if !r.acquire(job.Target) {
		return nil, fmt.Errorf("%s: %w", job.Target, ErrInFlight)
	}

	target, spec := job.Target, job.Spec
	cred := takeCredential(&job.Credential)

	ctx = context.WithoutCancel(ctx)
	r.wg.Add(1)
	go func() {
		defer r.wg.Done()
		defer close(done)

		runCtx, cancel := ctx, context.CancelFunc(func() {})
		if r.timeout > 0 {
			runCtx, cancel = context.WithTimeout(ctx, r.timeout)
		}
		res := r.exec.Execute(runCtx, spec, takeCredential(&cred))
		cancel()

		r.release(target)
		done <- res
	}()
	return done, nil
}

// takeCredential returns *c and clears it, leaving the caller's copy as the
// only reference.
func takeCredential(c *manager.Credential) manager.Credential {
	cred := *c
	*c = ""
	return cred
}

// InFlight reports whether a job for target is running.
func (r *Runner) InFlight(target string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	_, ok := r.inflight[target]
	return ok
}

// Wait blocks until every submitted job has delivered its result.
func (r *Runner) Wait() {
	r.wg.Wait()
}

func (r *Runner) acquire(target string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, busy := r.inflight[target]; busy {
		return false
	}
	r.inflight[target] = struct{}{}
	return true
}

func (r *Runner) release(target string) {
	r.mu.Lock()
	delete(r.inflight, target)
	r.mu.Unlock()
}
