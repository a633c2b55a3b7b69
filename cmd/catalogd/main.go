package main

import (
	"context"
	"errors"
	"flag"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"cloud.google.com/go/spanner"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/murkotick/catalog-mirror/internal/app/catalogd/repo"
	"github.com/murkotick/catalog-mirror/internal/config"
	"github.com/murkotick/catalog-mirror/internal/pkg/clock"
	"github.com/murkotick/catalog-mirror/internal/pkg/logger"
	"github.com/murkotick/catalog-mirror/internal/transport/http/server"
)

func main() {
	configPath := flag.String("config", os.Getenv("CATALOG_CONFIG"), "path to a YAML config file")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		panic(err)
	}

	log, err := logger.New(cfg.Log.Level, cfg.Log.Development)
	if err != nil {
		panic(err)
	}
	defer log.Sync()

	if !cfg.Log.Development {
		gin.SetMode(gin.ReleaseMode)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Handle SIGINT/SIGTERM.
	go func() {
		ch := make(chan os.Signal, 1)
		signal.Notify(ch, syscall.SIGINT, syscall.SIGTERM)
		<-ch
		log.Info("shutdown signal received")
		cancel()
	}()

	var store repo.ProductRepo
	switch cfg.Server.Storage {
	case config.StorageSpanner:
		client, err := spanner.NewClient(ctx, cfg.Server.SpannerDatabase)
		if err != nil {
			log.Fatal("spanner.NewClient", zap.Error(err))
		}
		defer client.Close()
		store = repo.NewSpannerRepo(client, clock.RealClock{})
	default:
		store = repo.NewMemoryRepo()
	}

	srv := &http.Server{
		Addr:              cfg.Server.Addr,
		Handler:           server.NewRouter(server.NewHandler(store, log), log),
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		log.Info("catalog backend listening",
			zap.String("addr", cfg.Server.Addr),
			zap.String("storage", cfg.Server.Storage),
		)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error("http serve", zap.Error(err))
			cancel()
		}
	}()

	<-ctx.Done()
	shutdownCtx, stop := context.WithTimeout(context.Background(), 5*time.Second)
	defer stop()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Warn("forced shutdown", zap.Error(err))
		_ = srv.Close()
	}

	log.Info("server stopped")
}
