package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"go-fixture-summary/internal/config"
	"go-fixture-summary/internal/database"
	"go-fixture-summary/internal/models"
	"go-fixture-summary/internal/reporter"
	"go-fixture-summary/internal/runner"
	"go-fixture-summary/internal/server"
)

func main() {
	cfg := config.Load()

	table, err := runner.LoadSelectors(cfg)
	if err != nil {
		log.Fatalf("❌ Failed to load selectors: %v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	r, cleanup := runner.FromConfig(ctx, cfg, table, runner.NewLauncher(cfg, table, ""))
	defer cleanup()

	latest := func(ctx context.Context) (*models.MatchSummary, error) {
		if repo, ok := r.Store.(*database.Repository); ok {
			stored, err := repo.GetLatest(ctx)
			if err == nil {
				return stored.Summary, nil
			}
			log.Printf("⚠️ %v, falling back to %s", err, reporter.SummaryFile)
		}
		return reporter.ReadSummary(filepath.Join(cfg.OutputDir, reporter.SummaryFile))
	}

	srv := server.New(r.Run, latest, 5*time.Minute)
	httpServer := &http.Server{Addr: cfg.ServerAddr, Handler: srv.Router()}

	go func() {
		log.Printf("Server listening on %s", cfg.ServerAddr)
		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Failed to start server: %v", err)
		}
	}()

	<-ctx.Done()
	log.Println("🛑 Shutting down...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		log.Printf("⚠️ Server shutdown: %v", err)
	}
	srv.Wait()
}
