// Package health publishes the mirror's synchronization status through the
// standard gRPC health service.
package health

import (
	"context"

	"go.uber.org/zap"
	"google.golang.org/grpc/health"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"

	"github.com/murkotick/catalog-mirror/internal/app/catalog/snapshot"
)

// ServiceName is the health service key the mirror reports under.
const ServiceName = "catalog.Mirror"

// ServingStatus maps a snapshot status to a health status. A mirror that has
// not finished its first load is neither serving nor broken.
func ServingStatus(s snapshot.Status) healthpb.HealthCheckResponse_ServingStatus {
	switch s {
	case snapshot.StatusSucceeded:
		return healthpb.HealthCheckResponse_SERVING
	case snapshot.StatusFailed:
		return healthpb.HealthCheckResponse_NOT_SERVING
	}
	return healthpb.HealthCheckResponse_UNKNOWN
}

// Reporter keeps a health.Server in step with the mirror snapshot.
type Reporter struct {
	srv  *health.Server
	log  *zap.Logger
	last healthpb.HealthCheckResponse_ServingStatus
}

func NewReporter(srv *health.Server, log *zap.Logger) *Reporter {
	if log == nil {
		log = zap.NewNop()
	}
	return &Reporter{srv: srv, log: log, last: -1}
}

// Report sets both the mirror service and the server-wide ("") status.
func (r *Reporter) Report(st snapshot.State) {
	status := ServingStatus(st.Status)
	if status == r.last {
		return
	}
	r.last = status

	r.srv.SetServingStatus(ServiceName, status)
	r.srv.SetServingStatus("", status)
	r.log.Info("health changed",
		zap.String("status", status.String()),
		zap.String("mirror_status", string(st.Status)),
		zap.String("error", st.Error),
	)
}

// Run reports every state received until ctx is done. It is meant to own
// the Reporter: Report is not safe for concurrent use.
func (r *Reporter) Run(ctx context.Context, states <-chan snapshot.State) error {
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case st, ok := <-states:
			if !ok {
				return nil
			}
			r.Report(st)
		}
	}
}
