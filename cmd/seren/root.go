package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/serenpaths/seren/internal/api"
	"github.com/serenpaths/seren/internal/catalog"
	"github.com/serenpaths/seren/internal/config"
	"github.com/serenpaths/seren/internal/engine"
	"github.com/serenpaths/seren/internal/enrich"
	"github.com/serenpaths/seren/internal/worker"
	"github.com/spf13/cobra"
)

// Version is set at build time via ldflags: -ldflags "-X main.Version=1.0.0"
var Version = "dev"

var rootCmd = &cobra.Command{
	Use:   "seren",
	Short: "Seren Paths - Anti-Optimization Challenge Recommender",
	RunE:  run,
}

func init() {
	rootCmd.AddCommand(catalogCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run(cmd *cobra.Command, args []string) error {
	// 1. Signal handling
	ctx, cancel := signal.NotifyContext(context.Background(),
		syscall.SIGTERM, syscall.SIGINT)
	defer cancel()

	// 2. Load configuration
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	// 3. Initialize logger
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: parseLogLevel(cfg.Log.Level),
	}))
	slog.SetDefault(logger)
	slog.Info("logger initialized", "level", cfg.Log.Level)

	// 4. Load the embedded challenge catalog
	cat, err := catalog.Load()
	if err != nil {
		return err
	}
	slog.Info("catalog loaded", "challenges", cat.Size(), "categories", cat.CategoryCount())

	// 5. Recommendation engine and feedback log
	eng := engine.New(cat, nil)
	feedback := engine.NewFeedbackLog(cfg.Feedback.MaxPerUser, time.Duration(cfg.Feedback.MaxAge))

	// 6. Optional AI enricher
	var enricher enrich.Enricher = enrich.Disabled{}
	if cfg.EnrichmentEnabled() {
		enricher = enrich.NewOpenAI(cfg.AI.APIKey, cfg.AI.Model)
	}
	slog.Info("enricher initialized", "enricher", enricher.Name())

	// 7. Initialize HTTP router
	handler := api.NewHandler(eng, enricher, feedback, cfg.AI, Version)
	router := api.NewRouter(handler, cfg.CORS.AllowedOrigins, cfg.Auth.JWTSecret)
	slog.Info("router initialized")

	// 8. Configure HTTP server
	addr := fmt.Sprintf(":%d", cfg.Server.Port)
	srv := &http.Server{
		Addr:         addr,
		Handler:      router,
		ReadTimeout:  time.Duration(cfg.Server.ReadTimeout),
		WriteTimeout: time.Duration(cfg.Server.WriteTimeout),
	}

	// 9. Background workers
	var wg sync.WaitGroup
	retention := worker.NewRetentionCoordinator(feedback, time.Duration(cfg.Feedback.PruneInterval))
	startWorker(ctx, &wg, "retention", retention.Run)

	// 10. Start HTTP server in goroutine
	go func() {
		slog.Info("server starting", "address", addr)
		// ErrServerClosed is the expected error when Shutdown() is called
		// gracefully. Any other error indicates an actual server failure.
		if err := srv.ListenAndServe(); err != http.ErrServerClosed {
			slog.Error("server error", "error", err)
			cancel()
		}
	}()

	// 11. Block until signal received
	<-ctx.Done()
	slog.Info("shutdown initiated")

	// 12. Graceful shutdown sequence
	shutdownCtx, shutdownCancel := context.WithTimeout(
		context.Background(),
		time.Duration(cfg.Server.ShutdownTimeout))
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		slog.Error("server shutdown error", "error", err)
	}

	wg.Wait()

	slog.Info("shutdown complete")
	return nil
}

func parseLogLevel(level string) slog.Level {
	switch level {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// startWorker launches a background worker goroutine that respects context
// cancellation. Workers are tracked via WaitGroup for graceful shutdown.
func startWorker(ctx context.Context, wg *sync.WaitGroup, name string, fn func(ctx context.Context)) {
	wg.Add(1)
	go func() {
		defer wg.Done()
		slog.Info("worker started", "worker", name)
		fn(ctx)
		slog.Info("worker stopped", "worker", name)
	}()
}
