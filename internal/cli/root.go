package cli

import (
	"fmt"
	"io"
	"os"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"fikus/internal/config"
	"fikus/internal/manager"
	"fikus/internal/oplog"
	"fikus/internal/reconcile"
	"fikus/internal/store"
	"fikus/internal/tui"
)

var (
	configPath   string
	useAlternate bool
)

// Execute runs the root cobra command.
func Execute() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:           "fikus",
		Short:         "Browse, install and remove packages with pacman or yay",
		SilenceUsage:  true,
		SilenceErrors: true,
		Args:          cobra.NoArgs,
		RunE:          runTUI,
	}

	cmd.PersistentFlags().StringVar(&configPath, "config", "", "Path to settings.yaml")
	cmd.PersistentFlags().BoolVar(&useAlternate, "alternate", false, "Use the alternate helper (yay) for this run")

	cmd.AddCommand(newSearchCmd())
	cmd.AddCommand(newStatusCmd())
	cmd.AddCommand(newInfoCmd())
	cmd.AddCommand(newInstallCmd())
	cmd.AddCommand(newRemoveCmd())
	cmd.AddCommand(newUpgradeCmd())
	cmd.AddCommand(newDoctorCmd())

	return cmd
}

func runTUI(cmd *cobra.Command, _ []string) error {
	bridge := tui.NewBridge()
	env, err := setup(cmd, bridge, bridge)
	if err != nil {
		return err
	}
	defer env.Close()

	err = tui.Run(env.svc, env.cfg, bridge)
	bridge.Close()
	return err
}

type environment struct {
	cfg    *config.Config
	svc    *store.Service
	closer io.Closer
}

func (e *environment) Close() {
	e.svc.Wait()
	if e.closer != nil {
		e.closer.Close()
	}
}

func setup(cmd *cobra.Command, notifier reconcile.Notifier, refresher reconcile.Refresher) (*environment, error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	if cmd.Flags().Changed("alternate") {
		cfg.UseAlternate = useAlternate
	}

	opts := store.OptionsFromConfig(cfg)
	opts.Notifier = notifier
	opts.Refresher = refresher

	log, closer := openLog(cmd, cfg)
	opts.Log = log

	return &environment{cfg: cfg, svc: store.New(opts), closer: closer}, nil
}

func loadConfig() (*config.Config, error) {
	if configPath != "" {
		return config.LoadFrom(configPath)
	}
	return config.Load()
}

// openLog falls back to a no-op logger when the log file cannot be opened;
// package operations still work without it.
func openLog(cmd *cobra.Command, cfg *config.Config) (zerolog.Logger, io.Closer) {
	path := cfg.LogPath
	if path == "" {
		var err error
		if path, err = oplog.DefaultPath(); err != nil {
			fmt.Fprintf(cmd.ErrOrStderr(), "warning: operation log disabled: %v\n", err)
			return zerolog.Nop(), nil
		}
	}
	log, closer, err := oplog.Open(path)
	if err != nil {
		fmt.Fprintf(cmd.ErrOrStderr(), "warning: operation log disabled: %v\n", err)
		return zerolog.Nop(), nil
	}
	return log, closer
}

func selectionLabel(cfg *config.Config, sel manager.Selection) string {
	if sel == manager.Alternate {
		return cfg.Alternate
	}
	return cfg.Primary
}
