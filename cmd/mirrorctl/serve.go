package main

import (
	"context"
	"errors"
	"fmt"
	"net"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
	"google.golang.org/grpc"
	grpchealth "google.golang.org/grpc/health"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"

	"github.com/murkotick/catalog-mirror/internal/app/catalog"
	"github.com/murkotick/catalog-mirror/internal/config"
	mirrorhealth "github.com/murkotick/catalog-mirror/internal/transport/grpc/health"
)

const defaultRefreshInterval = 30 * time.Second

// runServe keeps the mirror fresh and reports its status over gRPC health
// until ctx is done.
func runServe(ctx context.Context, cfg *config.Config, c *catalog.Container, log *zap.Logger) error {
	lis, err := net.Listen("tcp", cfg.Mirror.HealthAddr)
	if err != nil {
		return fmt.Errorf("listen %s: %w", cfg.Mirror.HealthAddr, err)
	}

	srv := grpc.NewServer()
	hs := grpchealth.NewServer()
	healthpb.RegisterHealthServer(srv, hs)

	reporter := mirrorhealth.NewReporter(hs, log.Named("health"))
	states, unsubscribe := c.Subscribe()
	defer unsubscribe()
	reporter.Report(c.State())

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		log.Info("health server listening", zap.String("addr", lis.Addr().String()))
		return srv.Serve(lis)
	})
	g.Go(func() error {
		<-gctx.Done()
		stopped := make(chan struct{})
		go func() {
			srv.GracefulStop()
			close(stopped)
		}()
		select {
		case <-stopped:
		case <-time.After(5 * time.Second):
			srv.Stop()
		}
		return nil
	})
	g.Go(func() error {
		if err := reporter.Run(gctx, states); !errors.Is(err, context.Canceled) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		return refresh(gctx, c, cfg.Mirror.RefreshInterval, log)
	})

	err = g.Wait()
	log.Info("mirror stopped")
	return err
}

// refresh reloads the catalog immediately and then every interval.
// Failures are recorded in the mirror state and logged, never fatal.
func refresh(ctx context.Context, c *catalog.Container, interval time.Duration, log *zap.Logger) error {
	if interval <= 0 {
		interval = defaultRefreshInterval
	}
	t := time.NewTicker(interval)
	defer t.Stop()

	for {
		if _, err := c.LoadAll(ctx); err != nil && ctx.Err() == nil {
			log.Warn("catalog refresh failed", zap.Error(err))
		}
		select {
		case <-ctx.Done():
			return nil
		case <-t.C:
		}
	}
}
