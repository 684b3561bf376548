// Package cli wires the command surface: the interactive browser plus
// plain one-shot commands against the same collection cache.
package cli

import (
	"log/slog"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/idilsaglam/todoview/internal/api"
	"github.com/idilsaglam/todoview/internal/cache"
	"github.com/idilsaglam/todoview/internal/config"
	"github.com/idilsaglam/todoview/internal/tui"
	"github.com/idilsaglam/todoview/internal/ui"
)

// newCollection builds the cache over a client configured from files,
// environment and the --base-url flag. A var so tests can swap it.
var newCollection = func(baseURL string) (*cache.Collection, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}
	if baseURL != "" {
		cfg.BaseURL = baseURL
	}
	setupLogging(cfg)
	slog.Debug("configured", "base_url", cfg.BaseURL, "timeout", cfg.Timeout())
	return cache.New(api.New(cfg.BaseURL, cfg.Timeout())), nil
}

func setupLogging(cfg *config.Config) {
	level := slog.LevelInfo
	if strings.EqualFold(cfg.LogLevel, "debug") {
		level = slog.LevelDebug
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})))
}

// NewRootCmd assembles the command tree.
func NewRootCmd(version string) *cobra.Command {
	var baseURL string

	root := &cobra.Command{
		Use:           "todoview",
		Short:         "Browse a remote todo service from the terminal",
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runBrowse(baseURL)
		},
	}
	root.PersistentFlags().StringVar(&baseURL, "base-url", "", "todo service base URL (overrides config)")

	root.AddCommand(
		newBrowseCmd(&baseURL),
		newLsCmd(&baseURL),
		newAddCmd(&baseURL),
		newSetCmd(&baseURL),
	)
	return root
}

// Execute runs the CLI and returns the process exit code.
func Execute(version string) int {
	if err := NewRootCmd(version).Execute(); err != nil {
		ui.Fail(err.Error())
		return 1
	}
	return 0
}

func newBrowseCmd(baseURL *string) *cobra.Command {
	return &cobra.Command{
		Use:   "browse",
		Short: "Open the interactive todo browser (default)",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runBrowse(*baseURL)
		},
	}
}

func runBrowse(baseURL string) error {
	coll, err := newCollection(baseURL)
	if err != nil {
		return err
	}
	return tui.Run(coll)
}
