// Package reconcile brings displayed package state back in line with the
// system after a mutating operation finishes.
package reconcile

import (
	"context"
	"fmt"
	"strings"

	"github.com/rs/zerolog"

	"fikus/internal/manager"
)

// Event is the terminal outcome of one install, remove or upgrade.
type Event struct {
	Intent manager.Intent
	Target string
	Result manager.Result
}

type Severity int

const (
	SeverityInfo Severity = iota
	SeveritySuccess
	SeverityError
)

type Notification struct {
	Title    string
	Message  string
	Severity Severity
}

type Notifier interface {
	Notify(n Notification)
}

// Refresher re-resolves the installed state of everything on display.
type Refresher interface {
	Refresh(ctx context.Context)
}

type Invalidator interface {
	Invalidate()
}

type Dispatcher struct {
	states    Invalidator
	refresher Refresher
	notifier  Notifier
	log       zerolog.Logger
}

// NewDispatcher wires the collaborators. refresher and notifier may be nil.
func NewDispatcher(states Invalidator, refresher Refresher, notifier Notifier, log zerolog.Logger) *Dispatcher {
	return &Dispatcher{
		states:    states,
		refresher: refresher,
		notifier:  notifier,
		log:       log,
	}
}

// OnOperationComplete is called once per terminal event.
func (d *Dispatcher) OnOperationComplete(ctx context.Context, ev Event) {
	switch ev.Result.Outcome {
	case manager.OutcomeAborted:
		return

	case manager.OutcomeSuccess:
		d.logEvent(ev).Msg(successLine(ev))
		if d.states != nil {
			d.states.Invalidate()
		}
		if d.refresher != nil {
			d.refresher.Refresh(ctx)
		}
		d.notify(Notification{
			Title:    "Success",
			Message:  successMessage(ev.Intent),
			Severity: SeveritySuccess,
		})

	default:
		line := failureLine(ev)
		d.logEvent(ev).Msg(line)
		d.notify(Notification{
			Title:    "Error",
			Message:  line,
			Severity: SeverityError,
		})
	}
}

func (d *Dispatcher) logEvent(ev Event) *zerolog.Event {
	var e *zerolog.Event
	if ev.Result.OK() {
		e = d.log.Info()
	} else {
		e = d.log.Error()
	}
	e = e.Str("op", ev.Intent.String())
	if ev.Intent != manager.FullUpgrade {
		e = e.Str("package", ev.Target)
	}
	return e
}

func (d *Dispatcher) notify(n Notification) {
	if d.notifier != nil {
		d.notifier.Notify(n)
	}
}

func successMessage(intent manager.Intent) string {
	switch intent {
	case manager.Install:
		return "Package installed successfully!"
	case manager.Remove:
		return "Package removed successfully!"
	case manager.FullUpgrade:
		return "System updated successfully!"
	}
	return intent.String() + " finished"
}

func successLine(ev Event) string {
	out := oneLine(ev.Result.Stdout)
	switch ev.Intent {
	case manager.Install:
		return "Package installed: " + out
	case manager.Remove:
		return "Package removed: " + out
	case manager.FullUpgrade:
		return "System updated: " + out
	}
	return fmt.Sprintf("%s %s: %s", ev.Intent, ev.Target, out)
}

func failureLine(ev Event) string {
	diag := oneLine(ev.Result.Diagnostic)
	switch ev.Intent {
	case manager.Install:
		return "Error installing package: " + diag
	case manager.Remove:
		return "Error removing package: " + diag
	case manager.FullUpgrade:
		return "Error updating system: " + diag
	}
	return fmt.Sprintf("Error running %s %s: %s", ev.Intent, ev.Target, diag)
}

// oneLine folds multi-line tool output so each log entry stays on one line.
func oneLine(s string) string {
	var parts []string
	for _, line := range strings.Split(s, "\n") {
		if line = strings.TrimSpace(line); line != "" {
			parts = append(parts, line)
		}
	}
	return strings.Join(parts, " | ")
}
