package main

import (
	"io"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/jackzampolin/lpnmatch/internal/api"
	"github.com/jackzampolin/lpnmatch/internal/config"
	"github.com/jackzampolin/lpnmatch/internal/home"
	"github.com/jackzampolin/lpnmatch/version"
)

var (
	cfgFile      string
	homeDir      string
	outputFormat string
)

var rootCmd = &cobra.Command{
	Use:   "lpnmatch",
	Short: "Reconcile a receiving report against LPNs printed in receipt PDFs",
	Long: `lpnmatch checks which packages on a receiving report were actually received.

It reads an xlsx report (title banner on row 1, column names on row 2),
collects every 8-12 digit LPN printed in a batch of receipt PDFs, and
writes a copy of the report with two extra columns:

  PDF LPN        the PACKAGEID when it was found in a PDF, blank otherwise
  RECEIVE MATCH  YES or NO

The result is saved as {report}_RECEIVE_MATCH.xlsx.`,
	Version:      version.GitRelease,
	SilenceUsage: true,
}

func init() {
	rootCmd.PersistentFlags().StringVar(
		&cfgFile, "config", "", "config file (default: ./config.yaml or ~/.lpnmatch/config.yaml)",
	)
	rootCmd.PersistentFlags().StringVar(
		&homeDir, "home", "", "lpnmatch home directory (default: ~/.lpnmatch)",
	)
	rootCmd.PersistentFlags().StringVarP(
		&outputFormat, "output", "o", "", "output format: table, yaml or json (default: table on a terminal, yaml otherwise)",
	)

	// Set output format before any command runs
	rootCmd.PersistentPreRun = func(cmd *cobra.Command, args []string) {
		api.SetOutputFormat(outputFormat)
	}

	rootCmd.AddCommand(versionCmd)
}

// loadConfig resolves the home directory and loads configuration. An
// explicit --config wins; otherwise a config.yaml inside --home is used
// when present, then the default search path.
func loadConfig() (*home.Dir, *config.Manager, error) {
	h, err := home.New(homeDir)
	if err != nil {
		return nil, nil, err
	}

	path := cfgFile
	if path == "" && homeDir != "" && h.ConfigExists() {
		path = h.ConfigPath()
	}
	mgr, err := config.NewManager(path)
	if err != nil {
		return nil, nil, err
	}
	return h, mgr, nil
}

// newLogger builds the configured logger writing to w.
func newLogger(cfg *config.Config, w io.Writer) *slog.Logger {
	logger := cfg.Log.NewLogger(w)
	slog.SetDefault(logger)
	return logger
}
