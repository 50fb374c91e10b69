package manager

import (
	"fmt"
	"strings"
)

type Intent int

const (
	QueryInstalled Intent = iota
	Search
	Info
	Install
	Remove
	FullUpgrade
)

func (i Intent) String() string {
	switch i {
	case QueryInstalled:
		return "query"
	case Search:
		return "search"
	case Info:
		return "info"
	case Install:
		return "install"
	case Remove:
		return "remove"
	case FullUpgrade:
		return "upgrade"
	}
	return fmt.Sprintf("intent(%d)", int(i))
}

// Mutating reports whether the intent changes system state.
func (i Intent) Mutating() bool {
	return i == Install || i == Remove || i == FullUpgrade
}

// CommandSpec is a program plus a discrete argument vector. It is never run
// through a shell.
type CommandSpec struct {
	Program            string
	Args               []string
	RequiresCredential bool
}

func (c CommandSpec) String() string {
	return strings.Join(append([]string{c.Program}, c.Args...), " ")
}

// Builder knows the binary names for both dialects and the elevator used in
// front of the primary tool.
type Builder struct {
	Primary   string
	Alternate string
	Elevator  string
}

func DefaultBuilder() Builder {
	return Builder{
		Primary:   "pacman",
		Alternate: "yay",
		Elevator:  "sudo",
	}
}

// Build is DefaultBuilder().Build.
func Build(intent Intent, sel Selection, target string) (CommandSpec, error) {
	return DefaultBuilder().Build(intent, sel, target)
}

func (b Builder) Build(intent Intent, sel Selection, target string) (CommandSpec, error) {
	if intent != FullUpgrade && target == "" {
		return CommandSpec{}, fmt.Errorf("build %s: %w", intent, ErrMissingTarget)
	}

	tool := b.Primary
	if sel == Alternate {
		tool = b.Alternate
	}

	switch intent {
	case QueryInstalled:
		return CommandSpec{Program: tool, Args: []string{"-Q", target}}, nil
	case Search:
		return CommandSpec{Program: tool, Args: []string{"-Ss", target}}, nil
	case Info:
		return CommandSpec{Program: tool, Args: []string{"-Si", target}}, nil
	case Install:
		if sel == Alternate {
			return CommandSpec{Program: b.Alternate, Args: []string{"-S", "--noconfirm", target}}, nil
		}
		return b.elevated("-S", "--noconfirm", target), nil
	case Remove:
		// Removal always goes through the elevated primary tool.
		return b.elevated("-R", "--noconfirm", target), nil
	case FullUpgrade:
		if sel == Alternate {
			return CommandSpec{Program: b.Alternate, Args: []string{"-Syu", "--noconfirm"}}, nil
		}
		return b.elevated("-Syu", "--noconfirm"), nil
	}
	return CommandSpec{}, fmt.Errorf("build %s: %w", intent, ErrUnknownIntent)
}

func (b Builder) elevated(args ...string) CommandSpec {
	return CommandSpec{
		Program:            b.Elevator,
		Args:               append([]string{"-S", b.Primary}, args...),
		RequiresCredential: true,
	}
}

// RequiresCredential reports whether commands built for intent under sel
// need a credential, so callers can skip the prompt when they do not.
func (b Builder) RequiresCredential(intent Intent, sel Selection) bool {
	spec, err := b.Build(intent, sel, "placeholder")
	return err == nil && spec.RequiresCredential
}
