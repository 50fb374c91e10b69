package tui

import (
	"context"
	"sync"

	tea "github.com/charmbracelet/bubbletea"

	"fikus/internal/reconcile"
)

// Bridge carries reconciliation signals from worker goroutines into the
// bubbletea event loop. It is the TUI's Notifier and Refresher.
//
// Refresh requests collapse into one pending signal. Notifications queue and
// block the sender until read, or until Close.
type Bridge struct {
	notes   chan reconcile.Notification
	refresh chan struct{}

	done      chan struct{}
	closeOnce sync.Once
}

func NewBridge() *Bridge {
	return &Bridge{
		notes:   make(chan reconcile.Notification, 32),
		refresh: make(chan struct{}, 1),
		done:    make(chan struct{}),
	}
}

func (b *Bridge) Notify(n reconcile.Notification) {
	select {
	case b.notes <- n:
	case <-b.done:
	}
}

func (b *Bridge) Refresh(context.Context) {
	select {
	case b.refresh <- struct{}{}:
	default:
		// A refresh is already pending and will re-resolve everything.
	}
}

// Close releases senders once the program has stopped reading.
func (b *Bridge) Close() {
	b.closeOnce.Do(func() { close(b.done) })
}

// listen waits for the next signal. The model re-arms it after each one.
func (b *Bridge) listen() tea.Cmd {
	return func() tea.Msg {
		select {
		case <-b.refresh:
			return refreshMsg{}
		case n := <-b.notes:
			return notifyMsg{note: n}
		case <-b.done:
			return nil
		}
	}
}
