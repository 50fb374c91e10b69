package cli

import (
	"fmt"

	"github.com/gookit/color"
	"github.com/spf13/cobra"
)

func newSearchCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "search <query>",
		Short: "Search the package repositories",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			env, err := setup(cmd, nil, nil)
			if err != nil {
				return err
			}
			defer env.Close()

			names, err := env.svc.Search(cmd.Context(), args[0])
			if err != nil {
				return fmt.Errorf("search %q: %w", args[0], err)
			}
			if len(names) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), color.Yellow.Sprint("No packages found."))
				return nil
			}

			states := env.svc.States(cmd.Context(), names)
			for _, name := range names {
				fmt.Fprintf(cmd.OutOrStdout(), "%s %s\n", stateMark(states[name]), name)
			}
			return nil
		},
	}
}

func newStatusCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "status <package>...",
		Short: "Show whether packages are installed",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			env, err := setup(cmd, nil, nil)
			if err != nil {
				return err
			}
			defer env.Close()

			states := env.svc.States(cmd.Context(), args)
			for _, name := range args {
				label := "not installed"
				if states[name] {
					label = "installed"
				}
				fmt.Fprintf(cmd.OutOrStdout(), "%s %s: %s\n", stateMark(states[name]), name, label)
			}
			return nil
		},
	}
}

func newInfoCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "info <package>",
		Short: "Show repository information for a package",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			env, err := setup(cmd, nil, nil)
			if err != nil {
				return err
			}
			defer env.Close()

			fmt.Fprintln(cmd.OutOrStdout(), env.svc.Info(cmd.Context(), args[0]))
			return nil
		},
	}
}
