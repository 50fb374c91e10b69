package tui

import "fikus/internal/reconcile"

type statesMsg struct {
	states map[string]bool
}

type searchResultsMsg struct {
	query string
	names []string
	err   error
}

type packageInfoMsg struct {
	pkg  string
	info string
}

type operationDoneMsg struct {
	event reconcile.Event
}

type notifyMsg struct {
	note reconcile.Notification
}

// refreshMsg asks the model to re-resolve what it displays.
type refreshMsg struct{}
