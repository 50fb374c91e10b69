package reconcile

import (
	"context"
	"sort"
	"sync"

	"fikus/internal/manager"
)

type StateResolver interface {
	States(ctx context.Context, names []string, sel manager.Selection) map[string]bool
}

// Board tracks the package names currently on display and their last known
// installed state. It is a Refresher for callers without their own widget
// tree.
type Board struct {
	resolver  StateResolver
	selection func() manager.Selection

	mu      sync.Mutex
	entries map[string]bool
}

func NewBoard(resolver StateResolver, selection func() manager.Selection) *Board {
	return &Board{
		resolver:  resolver,
		selection: selection,
		entries:   make(map[string]bool),
	}
}

// Show puts names on display with an unknown (not installed) state.
func (b *Board) Show(names ...string) {
	b.mu.Lock()
	defer b.mu.Unlock()
	for _, name := range names {
		if _, ok := b.entries[name]; !ok {
			b.entries[name] = false
		}
	}
}

func (b *Board) Hide(names ...string) {
	b.mu.Lock()
	defer b.mu.Unlock()
	for _, name := range names {
		delete(b.entries, name)
	}
}

// Installed returns the last resolved state and whether name is displayed.
func (b *Board) Installed(name string) (installed, shown bool) {
	b.mu.Lock()
	defer b.mu.Unlock()
	installed, shown = b.entries[name]
	return installed, shown
}

func (b *Board) Names() []string {
	b.mu.Lock()
	defer b.mu.Unlock()
	names := make([]string, 0, len(b.entries))
	for name := range b.entries {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func (b *Board) Refresh(ctx context.Context) {
	names := b.Names()
	if len(names) == 0 {
		return
	}
	states := b.resolver.States(ctx, names, b.selection())

	b.mu.Lock()
	defer b.mu.Unlock()
	for name, installed := range states {
		if _, ok := b.entries[name]; ok {
			b.entries[name] = installed
		}
	}
}
