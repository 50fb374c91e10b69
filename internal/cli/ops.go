package cli

import (
	"errors"
	"fmt"

	"github.com/gookit/color"
	"github.com/spf13/cobra"

	"fikus/internal/manager"
	"fikus/internal/reconcile"
)

func newInstallCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "install <package>...",
		Short: "Install packages",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runPackageOp(cmd, manager.Install, args)
		},
	}
}

func newRemoveCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "remove <package>...",
		Aliases: []string{"uninstall"},
		Short:   "Remove packages",
		Args:    cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runPackageOp(cmd, manager.Remove, args)
		},
	}
}

func newUpgradeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "upgrade",
		Short: "Upgrade the whole system",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			env, err := setup(cmd, consoleNotifier{out: cmd.OutOrStdout()}, nil)
			if err != nil {
				return err
			}
			defer env.Close()

			prompt := newPrompter(cmd.InOrStdin(), cmd.ErrOrStderr())
			cred, err := prompt.credential(env.svc.NeedsCredential(manager.FullUpgrade))
			if err != nil {
				return err
			}
			events, err := env.svc.SubmitUpgrade(cmd.Context(), cred)
			if err != nil {
				return err
			}
			return outcome(cmd, <-events)
		},
	}
}

// runPackageOp installs or removes each name in turn. Every operation gets
// its own credential prompt.
func runPackageOp(cmd *cobra.Command, intent manager.Intent, names []string) error {
	env, err := setup(cmd, consoleNotifier{out: cmd.OutOrStdout()}, nil)
	if err != nil {
		return err
	}
	defer env.Close()

	ctx := cmd.Context()
	prompt := newPrompter(cmd.InOrStdin(), cmd.ErrOrStderr())
	board := env.svc.Board()
	board.Show(names...)
	board.Refresh(ctx)

	var failed []error
	for _, name := range names {
		installed, _ := board.Installed(name)
		if intent == manager.Install && installed {
			fmt.Fprintf(cmd.OutOrStdout(), "%s is already installed\n", name)
			continue
		}
		if intent == manager.Remove && !installed {
			fmt.Fprintf(cmd.OutOrStdout(), "%s is not installed\n", name)
			continue
		}

		fmt.Fprintf(cmd.OutOrStdout(), "%s %s with %s...\n", intentVerb(intent), name, selectionLabel(env.cfg, env.svc.Selection()))
		cred, err := prompt.credential(env.svc.NeedsCredential(intent))
		if err != nil {
			return err
		}

		var events <-chan reconcile.Event
		if intent == manager.Install {
			events, err = env.svc.SubmitInstall(ctx, name, cred)
		} else {
			events, err = env.svc.SubmitRemove(ctx, name, cred)
		}
		if err != nil {
			failed = append(failed, fmt.Errorf("%s: %w", name, err))
			continue
		}
		if err := outcome(cmd, <-events); err != nil {
			failed = append(failed, fmt.Errorf("%s: %w", name, err))
		}
	}

	for _, name := range names {
		if installed, ok := board.Installed(name); ok {
			fmt.Fprintf(cmd.OutOrStdout(), "  %s %s\n", stateMark(installed), name)
		}
	}
	return errors.Join(failed...)
}

// outcome turns a terminal event into the command's error. Aborts are not
// errors.
func outcome(cmd *cobra.Command, ev reconcile.Event) error {
	switch ev.Result.Outcome {
	case manager.OutcomeAborted:
		fmt.Fprintln(cmd.OutOrStdout(), color.Yellow.Sprint("Cancelled."))
		return nil
	case manager.OutcomeSuccess:
		return nil
	}
	return ev.Result.Err
}

func intentVerb(intent manager.Intent) string {
	switch intent {
	case manager.Install:
		return "Installing"
	case manager.Remove:
		return "Removing"
	}
	return "Upgrading"
}

func stateMark(installed bool) string {
	if installed {
		return color.Green.Sprint("[✓]")
	}
	return color.FgDarkGray.Sprint("[ ]")
}
