package main

import (
	"context"
	"errors"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/treykane/listings/internal/app"
	"github.com/treykane/listings/internal/config"
	"github.com/treykane/listings/internal/listings"
	"github.com/treykane/listings/internal/logging"
)

// rootOptions are the persistent flags shared by every command.
type rootOptions struct {
	configPath string
	dataFile   string
	verbose    bool
}

func newRootCmd() *cobra.Command {
	opts := &rootOptions{}

	root := &cobra.Command{
		Use:          "listings",
		Short:        "Browse property listings in the terminal",
		Long:         "listings is a terminal browser for property listings with a user menu, per-listing info panels and admin act-as.",
		SilenceUsage: true,
		Args:         cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runTUI(cmd, opts)
		},
	}

	root.PersistentFlags().StringVar(&opts.configPath, "config", "", "config file (default ~/.listings/config.toml)")
	root.PersistentFlags().StringVar(&opts.dataFile, "data", "", "listings data file (overrides data_file)")
	root.PersistentFlags().BoolVarP(&opts.verbose, "verbose", "v", false, "enable debug logging")

	root.AddCommand(newPlaceCmd())
	root.AddCommand(newConfigCmd(opts))
	return root
}

// resolveConfigPath returns the --config value or the default location.
func (o *rootOptions) resolveConfigPath() (string, error) {
	if o.configPath != "" {
		return config.NormalizePath(o.configPath)
	}
	return config.ConfigPath()
}

// loadConfig reads the config file and applies flag overrides.
func (o *rootOptions) loadConfig() (config.Config, error) {
	path, err := o.resolveConfigPath()
	if err != nil {
		return config.Config{}, err
	}
	cfg, err := config.LoadFrom(path)
	if errors.Is(err, config.ErrNotConfigured) {
		return config.Config{}, fmt.Errorf("%w: run `listings config init --email you@example.com` first", err)
	}
	if err != nil {
		return config.Config{}, err
	}
	if o.dataFile != "" {
		data, err := config.NormalizePath(o.dataFile)
		if err != nil {
			return config.Config{}, fmt.Errorf("invalid --data: %w", err)
		}
		cfg.DataFile = data
	}
	if o.verbose {
		cfg.LogLevel = "debug"
	}
	return cfg, nil
}

func runTUI(cmd *cobra.Command, opts *rootOptions) error {
	cfg, err := opts.loadConfig()
	if err != nil {
		return err
	}

	closeLog, err := logging.Configure(logging.Options{Level: cfg.LogLevel, File: cfg.LogFile})
	if err != nil {
		return err
	}
	defer closeLog()

	store, err := listings.Open(cfg.DataFile)
	if err != nil {
		return err
	}
	session, err := listings.NewSession(store, cfg.UserEmail)
	if err != nil {
		return err
	}

	ctx := cmd.Context()
	m := app.New(cfg, store, session)
	p := tea.NewProgram(m,
		tea.WithAltScreen(),
		tea.WithMouseCellMotion(),
		tea.WithContext(ctx),
	)
	if _, err := p.Run(); err != nil {
		if errors.Is(err, tea.ErrProgramKilled) && ctx.Err() != nil {
			return context.Canceled
		}
		return fmt.Errorf("run ui: %w", err)
	}

	if m.LoggedOut() {
		fmt.Fprintf(cmd.OutOrStdout(), "Logged out %s.\n", session.User().Label())
	}
	return nil
}
