package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/fintamas01/geoaudit/internal/audit"
	"github.com/fintamas01/geoaudit/internal/server"
	"github.com/fintamas01/geoaudit/internal/storage"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the audit HTTP endpoint",
	Long: `Starts an HTTP server exposing the audit pipeline:

  POST /audit   {"url": "...", "maxPages": 5}  runs one audit
  GET  /audits  lists recent audits (requires --database)
  GET  /healthz liveness check`,
	RunE: runServe,
}

func init() {
	serveCmd.Flags().String("listen", ":8090", "Listen address")
	if err := viper.BindPFlag("listen_addr", serveCmd.Flags().Lookup("listen")); err != nil {
		panic(err)
	}
	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, _ []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	if err := setupLogging(cfg); err != nil {
		return fmt.Errorf("failed to set up logging: %w", err)
	}

	var store server.AuditStore
	if cfg.DatabasePath != "" {
		sqliteStore, err := storage.NewSQLiteStore(cfg.DatabasePath)
		if err != nil {
			return fmt.Errorf("failed to open audit history: %w", err)
		}
		defer func() { _ = sqliteStore.Close() }()
		store = sqliteStore
	}

	runner := audit.NewRunner(runnerOptions(cfg))
	srv := server.New(runner, store)
	return srv.ListenAndServe(cmd.Context(), cfg.ListenAddr)
}
