package server

import (
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/murkotick/catalog-mirror/internal/metrics"
)

// NewRouter builds the backend engine: recovery, request metrics and
// logging, the product routes and /metrics.
func NewRouter(h *Handler, log *zap.Logger) *gin.Engine {
	if log == nil {
		log = zap.NewNop()
	}

	r := gin.New()
	r.Use(gin.Recovery(), observe(log))
	h.Register(r)
	r.GET("/metrics", gin.WrapH(metrics.Handler()))
	return r
}

func observe(log *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		endpoint := c.FullPath()
		if endpoint == "" {
			endpoint = "unmatched"
		}
		status := c.Writer.Status()
		elapsed := time.Since(start)

		metrics.RecordRequest(c.Request.Method, endpoint, status, elapsed)
		log.Debug("request",
			zap.String("method", c.Request.Method),
			zap.String("endpoint", endpoint),
			zap.Int("status", status),
			zap.Duration("elapsed", elapsed),
		)
	}
}
