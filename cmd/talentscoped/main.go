// Command talentscoped is the TalentScope platform service.
// It serves the matching API backed by the HR database, run persistence in
// Postgres and result tables in blob storage, plus health and metrics.
package main

import (
	"context"
	"database/sql"
	"encoding/json"
	"io"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/talentscope/talentscope/internal/api"
	"github.com/talentscope/talentscope/internal/directory"
	"github.com/talentscope/talentscope/internal/platform"
	"github.com/talentscope/talentscope/internal/runs"
	"github.com/talentscope/talentscope/internal/telemetry"
	"github.com/talentscope/talentscope/pkg/config"
	"github.com/talentscope/talentscope/pkg/matching"
)

func loadConfig() *config.Config {
	path := os.Getenv("TALENTSCOPE_CONFIG")
	if path == "" {
		if wd, err := os.Getwd(); err == nil {
			path = config.FindConfigFile(wd)
		}
	}

	cfg := config.DefaultConfig()
	if path != "" {
		loaded, err := config.Load(path)
		if err != nil {
			log.Fatalf("load config: %v", err)
		}
		cfg = loaded
	}

	cfg.ApplyEnv(os.Getenv)
	if cfg.Database.URL == "" {
		cfg.Database.URL = "postgres://localhost:5432/talentscope?sslmode=disable"
	}
	if err := cfg.Validate(); err != nil {
		log.Fatalf("invalid config: %v", err)
	}
	return cfg
}

func main() {
	cfg := loadConfig()

	db, err := platform.Open(cfg.Database.URL)
	if err != nil {
		log.Fatalf("database: %v", err)
	}
	defer db.Close()

	if err := platform.AutoMigrate(db); err != nil {
		log.Fatalf("migrate: %v", err)
	}

	cat, err := cfg.LoadCatalog()
	if err != nil {
		log.Fatalf("catalog: %v", err)
	}
	engine, err := matching.NewEngine(cat, cfg.Matching.EngineOptions()...)
	if err != nil {
		log.Fatalf("engine: %v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	storage, err := runs.NewStorage(ctx, cfg.Storage)
	if err != nil {
		log.Fatalf("storage: %v", err)
	}
	if c, ok := storage.(io.Closer); ok {
		defer c.Close()
	}

	// Initialize services
	metrics := telemetry.New()
	runSvc := runs.NewService(
		runs.NewPostgresRepository(db),
		storage,
		engine,
		directory.NewStore(db),
		cfg.Matching.GroupWeights(),
		metrics,
	)
	handler := api.NewHandler(runSvc, api.NewResultCache(cfg.Server.CacheSize, metrics), cfg.Matching.QualifiedThreshold)

	// Set up HTTP routes
	mux := http.NewServeMux()
	handler.RegisterRoutes(mux)
	mux.HandleFunc("GET /healthz", healthHandler(db))
	mux.Handle("GET /metrics", metrics.Handler())

	srv := &http.Server{
		Addr:              ":" + cfg.Server.Port,
		Handler:           api.CORS(api.RequestLog(api.APIKeyAuth(cfg.Server.APIKey)(mux))),
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		log.Printf("starting talentscoped on :%s (storage=%s, catalog=%d attributes)", cfg.Server.Port, cfg.Storage.Backend, cat.Len())
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("listen: %v", err)
		}
	}()

	<-ctx.Done()
	log.Println("shutting down...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Printf("shutdown error: %v", err)
	}
}

func healthHandler(db *sql.DB) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := db.PingContext(r.Context()); err != nil {
			http.Error(w, "database unreachable", http.StatusServiceUnavailable)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		json.NewEncoder(w).Encode(map[string]string{"status": "ok"})
	}
}
