package main

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/jackzampolin/lpnmatch/internal/server"
)

var (
	serveHost string
	servePort string
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the lpnmatch server",
	Long: `Start the lpnmatch HTTP server.

The server exposes the match workflow over HTTP and serves a small
upload page at /. Annotated reports are kept under ~/.lpnmatch/results
until server.result_ttl passes.

The server provides:
  - POST /api/match               - Upload a report and receipts
  - GET  /api/match/{id}/download - Download the annotated report
  - /health, /status              - Server checks
  - /swagger                      - API documentation

Config changes are picked up without a restart.

Examples:
  lpnmatch serve                    # Start on default port 8080
  lpnmatch serve --port 3000        # Start on custom port
  lpnmatch serve --host 0.0.0.0     # Bind to all interfaces`,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		h, mgr, err := loadConfig()
		if err != nil {
			return err
		}
		if err := h.EnsureExists(); err != nil {
			return err
		}
		logger := newLogger(mgr.Get(), os.Stdout)
		mgr.SetLogger(logger)
		mgr.WatchConfig()

		srv, err := server.New(server.Config{
			Host:          serveHost,
			Port:          servePort,
			Home:          h,
			ConfigManager: mgr,
			Logger:        logger,
		})
		if err != nil {
			return err
		}

		// Start server (blocks until shutdown)
		return srv.Start(ctx)
	},
}

func init() {
	serveCmd.Flags().StringVar(&serveHost, "host", "", "Host to bind to (default: server.host from config)")
	serveCmd.Flags().StringVar(&servePort, "port", "", "Port to listen on (default: server.port from config)")

	rootCmd.AddCommand(serveCmd)
}
