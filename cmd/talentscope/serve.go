package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/talentscope/talentscope/internal/api"
	"github.com/talentscope/talentscope/internal/runs"
	"github.com/talentscope/talentscope/internal/telemetry"
	"github.com/talentscope/talentscope/pkg/matching"
)

func newServeCmd() *cobra.Command {
	var (
		profilesPath string
		databaseURL  string
		port         string
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start a local API server over a profiles file or the HR database",
		Long: `Starts an HTTP server on localhost exposing the matching API. Runs are kept
in memory; result tables are written to the configured storage directory.

Usage:
  talentscope serve --profiles profiles.json
  curl -X POST localhost:7700/api/v1/match \
    -d '{"role_name":"Data Analyst","benchmarks":"EMP100012, EMP100034"}'`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe(cmd, profilesPath, databaseURL, port)
		},
	}

	cmd.Flags().StringVar(&profilesPath, "profiles", "", "Employee profiles JSON file")
	cmd.Flags().StringVar(&databaseURL, "database-url", "", "HR database URL (default: database.url from config)")
	cmd.Flags().StringVar(&port, "port", "7700", "Port to serve on")

	return cmd
}

func runServe(cmd *cobra.Command, profilesPath, databaseURL, port string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	cat, err := cfg.LoadCatalog()
	if err != nil {
		return err
	}
	engine, err := matching.NewEngine(cat, cfg.Matching.EngineOptions()...)
	if err != nil {
		return err
	}

	src, closeSrc, err := openSource(profilesPath, firstNonEmpty(databaseURL, cfg.Database.URL))
	if err != nil {
		return err
	}
	defer closeSrc()

	metrics := telemetry.New()
	storage := runs.NewLocalStorage(cfg.Storage.Dir)
	svc := runs.NewService(runs.NewMemoryRepository(), storage, engine, src, cfg.Matching.GroupWeights(), metrics)

	mux := http.NewServeMux()
	api.NewHandler(svc, api.NewResultCache(cfg.Server.CacheSize, metrics), cfg.Matching.QualifiedThreshold).RegisterRoutes(mux)
	mux.Handle("GET /metrics", metrics.Handler())

	srv := &http.Server{
		Addr:    ":" + port,
		Handler: api.CORS(api.RequestLog(mux)),
	}

	fmt.Fprintf(os.Stderr, "TalentScope API server\n")
	fmt.Fprintf(os.Stderr, "  Catalog:    %d attributes\n", cat.Len())
	fmt.Fprintf(os.Stderr, "  Results:    %s\n", cfg.Storage.Dir)
	fmt.Fprintf(os.Stderr, "  Listening:  http://localhost:%s\n", port)

	ctx, stop := signal.NotifyContext(commandContext(cmd), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}
	log.Println("shutting down...")
	return srv.Shutdown(context.Background())
}
