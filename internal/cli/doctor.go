package cli

import (
	"fmt"
	"io"

	"github.com/gookit/color"
	"github.com/spf13/cobra"

	"fikus/internal/manager"
)

func newDoctorCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "doctor",
		Short: "Check that the package tools are available",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return fmt.Errorf("load config: %w", err)
			}
			if cmd.Flags().Changed("alternate") {
				cfg.UseAlternate = useAlternate
			}

			out := cmd.OutOrStdout()
			b := manager.Builder{Primary: cfg.Primary, Alternate: cfg.Alternate, Elevator: cfg.Elevator}
			found := manager.Detect(b)

			checkLine(out, cfg.Primary, found.Primary, "primary package manager")
			checkLine(out, cfg.Alternate, found.Alternate, "alternate helper")
			checkLine(out, cfg.Elevator, found.Elevator, "privilege elevation")
			if found.Elevator {
				cached := manager.ElevationCached(cmd.Context(), cfg.Elevator)
				state := "password will be asked"
				if cached {
					state = "credentials cached"
				}
				fmt.Fprintf(out, "  %s: %s\n", cfg.Elevator, state)
			}

			sel := manager.SelectionFor(cfg.UseAlternate)
			fmt.Fprintf(out, "Active manager: %s\n", selectionLabel(cfg, sel))
			if !found.Usable(sel) {
				return fmt.Errorf("%s cannot run package operations; see missing tools above", selectionLabel(cfg, sel))
			}
			return nil
		},
	}
}

func checkLine(out io.Writer, name string, ok bool, role string) {
	if ok {
		fmt.Fprintf(out, "%s %s (%s)\n", color.Green.Sprint("ok     "), name, role)
		return
	}
	fmt.Fprintf(out, "%s %s (%s)\n", color.Red.Sprint("missing"), name, role)
}
