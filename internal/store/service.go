// Package store is the catalog-facing entry point: it builds commands for the
// active manager selection, runs them through the worker, and feeds every
// mutating result to reconciliation.
package store

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	"github.com/rs/zerolog"

	"fikus/internal/config"
	"fikus/internal/manager"
	"fikus/internal/reconcile"
	"fikus/internal/worker"
)

type Options struct {
	Builder          manager.Builder
	Exec             manager.Executor
	Selection        manager.Selection
	OperationTimeout time.Duration
	QueryTimeout     time.Duration
	Log              zerolog.Logger
	Notifier         reconcile.Notifier
	// Refresher is told to refresh after the service's own board has been.
	Refresher reconcile.Refresher
}

// OptionsFromConfig fills the binary names, timeouts and selection from cfg.
func OptionsFromConfig(cfg *config.Config) Options {
	return Options{
		Builder: manager.Builder{
			Primary:   cfg.Primary,
			Alternate: cfg.Alternate,
			Elevator:  cfg.Elevator,
		},
		Exec:             manager.CmdExecutor{},
		Selection:        manager.SelectionFor(cfg.UseAlternate),
		OperationTimeout: cfg.OperationTimeout,
		QueryTimeout:     cfg.QueryTimeout,
		Log:              zerolog.Nop(),
	}
}

type Service struct {
	builder    manager.Builder
	selection  atomic.Int32
	runner     *worker.Runner
	resolver   *manager.Resolver
	client     manager.Client
	board      *reconcile.Board
	dispatcher *reconcile.Dispatcher
	pending    sync.WaitGroup
}

func New(opts Options) *Service {
	if opts.Exec == nil {
		opts.Exec = manager.CmdExecutor{}
	}
	if opts.Builder == (manager.Builder{}) {
		opts.Builder = manager.DefaultBuilder()
	}

	s := &Service{
		builder:  opts.Builder,
		runner:   worker.New(opts.Exec, opts.OperationTimeout),
		resolver: manager.NewResolver(opts.Exec, opts.Builder, opts.QueryTimeout),
		client: manager.Client{
			Exec:    opts.Exec,
			Builder: opts.Builder,
			Timeout: opts.QueryTimeout,
		},
	}
	s.selection.Store(int32(opts.Selection))
	s.board = reconcile.NewBoard(s.resolver, s.Selection)

	var refresher reconcile.Refresher = s.board
	if opts.Refresher != nil {
		refresher = refreshers{s.board, opts.Refresher}
	}
	s.dispatcher = reconcile.NewDispatcher(s.resolver, refresher, opts.Notifier, opts.Log)
	return s
}

func (s *Service) Selection() manager.Selection {
	return manager.Selection(s.selection.Load())
}

// SetSelection switches the manager dialect. It should only be called
// between operations; commands already built keep their dialect.
func (s *Service) SetSelection(sel manager.Selection) {
	s.selection.Store(int32(sel))
}

// Board holds the entries displayed by callers that have no widget tree of
// their own. It is refreshed after every successful mutation.
func (s *Service) Board() *reconcile.Board {
	return s.board
}

func (s *Service) Resolver() *manager.Resolver {
	return s.resolver
}

func (s *Service) NeedsCredential(intent manager.Intent) bool {
	return s.builder.RequiresCredential(intent, s.Selection())
}

// Busy reports whether an operation on name is still running. An empty name
// asks about the system upgrade.
func (s *Service) Busy(name string) bool {
	if name == "" {
		name = worker.UpgradeTarget
	}
	return s.runner.InFlight(name)
}

func (s *Service) SubmitInstall(ctx context.Context, name string, cred manager.Credential) (<-chan reconcile.Event, error) {
	return s.submit(ctx, manager.Install, name, cred)
}

func (s *Service) SubmitRemove(ctx context.Context, name string, cred manager.Credential) (<-chan reconcile.Event, error) {
	return s.submit(ctx, manager.Remove, name, cred)
}

func (s *Service) SubmitUpgrade(ctx context.Context, cred manager.Credential) (<-chan reconcile.Event, error) {
	return s.submit(ctx, manager.FullUpgrade, "", cred)
}

func (s *Service) Search(ctx context.Context, query string) ([]string, error) {
	return s.client.Search(ctx, query, s.Selection())
}

func (s *Service) Info(ctx context.Context, name string) string {
	return s.client.Info(ctx, name, s.Selection())
}

func (s *Service) IsInstalled(ctx context.Context, name string) bool {
	return s.resolver.IsInstalled(ctx, name, s.Selection())
}

func (s *Service) States(ctx context.Context, names []string) map[string]bool {
	return s.resolver.States(ctx, names, s.Selection())
}

// Invalidate drops every remembered installed state, e.g. after the system
// was changed from outside.
func (s *Service) Invalidate() {
	s.resolver.Invalidate()
}

// Wait blocks until all submitted operations have finished and been
// reconciled.
func (s *Service) Wait() {
	s.runner.Wait()
	s.pending.Wait()
}

func (s *Service) submit(ctx context.Context, intent manager.Intent, target string, cred manager.Credential) (<-chan reconcile.Event, error) {
	spec, err := s.builder.Build(intent, s.Selection(), target)
	if err != nil {
		return nil, err
	}

	key := target
	if intent == manager.FullUpgrade {
		key = worker.UpgradeTarget
	}
	results, err := s.runner.Submit(ctx, worker.Job{Target: key, Spec: spec, Credential: cred})
	if err != nil {
		return nil, err
	}

	ctx = context.WithoutCancel(ctx)
	events := make(chan reconcile.Event, 1)
	s.pending.Add(1)
	go func() {
		defer s.pending.Done()
		defer close(events)
		ev := reconcile.Event{Intent: intent, Target: target, Result: <-results}
		s.dispatcher.OnOperationComplete(ctx, ev)
		events <- ev
	}()
	return events, nil
}

type refreshers []reconcile.Refresher

func (rs refreshers) Refresh(ctx context.Context) {
	for _, r := range rs {
		r.Refresh(ctx)
	}
}
