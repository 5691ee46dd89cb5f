package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	_ "github.com/joho/godotenv/autoload"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/mmcdole/anidex/internal/adapter"
	"github.com/mmcdole/anidex/internal/catalog"
	"github.com/mmcdole/anidex/internal/cloud"
	"github.com/mmcdole/anidex/internal/domain"
	"github.com/mmcdole/anidex/internal/ingest"
	"github.com/mmcdole/anidex/internal/store"
	"github.com/mmcdole/anidex/internal/tui"
)

// Version is set at build time via -ldflags
var Version = "dev"

// app bundles what every subcommand needs
type app struct {
	cfg    *adapter.Config
	logger *slog.Logger
	closer io.Closer
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var configPath string

	rootCmd := &cobra.Command{
		Use:   "anidex",
		Short: "Browse an anime/manga catalog in the terminal",
		Long: `anidex loads a JSON catalog export and lets you search, filter and
page through it in a card grid, or list results in plain text or JSON.`,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runBrowse(cmd, configPath)
		},
	}
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "config file (default searches ~/.config/anidex and .)")
	rootCmd.PersistentFlags().String("source", "", "catalog file path or http(s) URL (overrides source.path)")

	browseCmd := &cobra.Command{
		Use:   "browse",
		Short: "Launch the interactive browser",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runBrowse(cmd, configPath)
		},
	}

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "Print one page of results",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := setup(cmd, configPath)
			if err != nil {
				return err
			}
			defer a.close()
			return a.runList(cmd)
		},
	}
	addListFlags(listCmd)

	optionsCmd := &cobra.Command{
		Use:   "options <key>",
		Short: "Print the values a filter accepts",
		Long:  "Print the values a filter accepts. Keys: category, genre, studio, year, season, mediaType, nationality, author.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := setup(cmd, configPath)
			if err != nil {
				return err
			}
			defer a.close()
			return a.runOptions(cmd, args[0])
		},
	}
	optionsCmd.Flags().Bool("json", false, "Output JSON")

	rootCmd.AddCommand(browseCmd, listCmd, optionsCmd, newCloudCmd(&configPath), newConfigCmd(&configPath), newVersionCmd())
	return rootCmd
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the version",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "anidex %s\n", Version)
		},
	}
}

// setup loads configuration and the logger
func setup(cmd *cobra.Command, configPath string) (*app, error) {
	var (
		cfg *adapter.Config
		err error
	)
	if configPath != "" {
		cfg, err = adapter.LoadConfigFile(configPath)
	} else {
		cfg, err = adapter.LoadConfig()
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	if f := cmd.Flag("source"); f != nil && f.Value.String() != "" {
		cfg.Source.Path = f.Value.String()
	}

	logger, closer, err := adapter.SetupLogger(&cfg.Logging)
	if err != nil {
		// Fall back to null logger if file logging fails
		logger, closer = adapter.NullLogger(), io.NopCloser(nil)
	}
	slog.SetDefault(logger)

	logger.Info("starting anidex", "version", Version, "command", cmd.Name())
	return &app{cfg: cfg, logger: logger, closer: closer}, nil
}

func (a *app) close() {
	a.logger.Info("shutting down")
	a.closer.Close()
}

func (a *app) loader() *adapter.Loader {
	return adapter.NewLoader(a.cfg.Source.Path, a.cfg.Source.Timeout, a.cfg.IngestOptions(), a.logger)
}

// load fetches the catalog once for the non-interactive commands
func (a *app) load() (ingest.Collection, error) {
	ctx, cancel := context.WithTimeout(context.Background(), a.cfg.Source.Timeout)
	defer cancel()
	return a.loader().Load(ctx)
}

// openSettings opens the settings database, falling back to memory only
func (a *app) openSettings() *store.SettingsStore {
	dir, err := adapter.ExpandPath(a.cfg.Storage.Path)
	if err == nil {
		var s *store.SettingsStore
		if s, err = store.NewSettingsStore(dir); err == nil {
			return s
		}
	}
	a.logger.Warn("settings not persisted", "path", a.cfg.Storage.Path, "error", err)
	s, _ := store.NewSettingsStore("")
	return s
}

func (a *app) cloudService(s domain.SettingsStore) *cloud.Service {
	return cloud.NewService(s, cloud.NewValidator(a.cfg.Cloud.HostPrefix), a.cfg.Cloud.FallbackBase, a.logger)
}

func (a *app) catalogOptions(view domain.View) catalog.Options {
	return catalog.Options{
		PageSize:   a.cfg.Feed.PageSize,
		SampleSize: a.cfg.Home.RandomCount,
		View:       view,
	}
}

func runBrowse(cmd *cobra.Command, configPath string) error {
	if !term.IsTerminal(int(os.Stdout.Fd())) {
		// Piped output gets the landing page as plain text
		listCmd, _, err := cmd.Root().Find([]string{"list"})
		if err != nil {
			return err
		}
		if err := listCmd.Flags().Set("home", "true"); err != nil {
			return err
		}
		return listCmd.RunE(listCmd, nil)
	}

	a, err := setup(cmd, configPath)
	if err != nil {
		return err
	}
	defer a.close()

	settings := a.openSettings()
	defer settings.Close()

	model := tui.NewModel(tui.Options{
		Loader:      a.loader(),
		LoadTimeout: a.cfg.Source.Timeout,
		Source:      a.cfg.Source.Path,
		Opener:      adapter.NewOpener(a.cfg.Opener.Command, a.cfg.Opener.Args, a.logger),
		Cloud:       a.cloudService(settings),
		Catalog:     a.catalogOptions(domain.ViewHome),
		Columns:     a.cfg.UI.GridColumns,
		Logger:      a.logger,
	})

	p := tea.NewProgram(model, tea.WithAltScreen())

	a.logger.Info("starting TUI")
	if _, err := p.Run(); err != nil {
		a.logger.Error("TUI error", "error", err)
		return fmt.Errorf("TUI error: %w", err)
	}
	return nil
}
