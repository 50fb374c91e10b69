package manager

import (
	"context"
	"sync"
	"time"

	"github.com/sourcegraph/conc/pool"
)

type stateKey struct {
	name string
	sel  Selection
}

// Resolver answers "is this package installed" with a `-Q <name>` query.
// Answers are remembered until Invalidate is called, so a catalog can ask
// repeatedly without spawning a process each time.
type Resolver struct {
	exec    Executor
	builder Builder
	timeout time.Duration

	mu    sync.Mutex
	cache map[stateKey]bool
	// gen advances on every Invalidate or Forget. A query started under an
	// older generation is not cached.
	gen uint64
}

func NewResolver(exec Executor, builder Builder, timeout time.Duration) *Resolver {
	return &Resolver{
		exec:    exec,
		builder: builder,
		timeout: timeout,
		cache:   make(map[stateKey]bool),
	}
}

// IsInstalled never fails: a query that cannot run counts as not installed.
func (r *Resolver) IsInstalled(ctx context.Context, name string, sel Selection) bool {
	key := stateKey{name: name, sel: sel}
	r.mu.Lock()
	installed, ok := r.cache[key]
	gen := r.gen
	r.mu.Unlock()
	if ok {
		return installed
	}

	installed = r.query(ctx, name, sel)

	r.mu.Lock()
	if r.gen == gen {
		r.cache[key] = installed
	}
	r.mu.Unlock()
	return installed
}

func (r *Resolver) query(ctx context.Context, name string, sel Selection) bool {
	spec, err := r.builder.Build(QueryInstalled, sel, name)
	if err != nil {
		return false
	}
	if r.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, r.timeout)
		defer cancel()
	}
	return r.exec.Execute(ctx, spec, "").OK()
}

// States resolves many names concurrently.
func (r *Resolver) States(ctx context.Context, names []string, sel Selection) map[string]bool {
	states := make(map[string]bool, len(names))
	var mu sync.Mutex

	p := pool.New().WithMaxGoroutines(8)
	for _, name := range names {
		mu.Lock()
		_, dup := states[name]
		if !dup {
			states[name] = false
		}
		mu.Unlock()
		if dup {
			continue
		}
		p.Go(func() {
			installed := r.IsInstalled(ctx, name, sel)
			mu.Lock()
			states[name] = installed
			mu.Unlock()
		})
	}
	p.Wait()
	return states
}

// Invalidate forgets every remembered answer.
func (r *Resolver) Invalidate() {
	r.mu.Lock()
	clear(r.cache)
	r.gen++
	r.mu.Unlock()
}

// Forget drops the remembered answers for one name.
func (r *Resolver) Forget(name string) {
	r.mu.Lock()
	delete(r.cache, stateKey{name: name, sel: Primary})
	delete(r.cache, stateKey{name: name, sel: Alternate})
	r.gen++
	r.mu.Unlock()
}
