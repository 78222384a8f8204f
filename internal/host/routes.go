package host

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/nexadesk/hostctl/internal/observability"
)

// startStatusServer serves the local-only host status surface. Returns nil
// when the endpoint is disabled by config. Read-only: the endpoint reports
// supervisor state, it never probes the backend itself.
func (s *Service) startStatusServer() *http.Server {
	if strings.TrimSpace(s.cfg.StatusAddr) == "" {
		return nil
	}
	observability.RegisterMetrics()
	startedAt := time.Now()

	gin.SetMode(gin.ReleaseMode)
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(observability.RequestLogger(s.log))
	r.Use(cors.New(cors.Config{
		AllowOrigins: []string{"http://localhost:3000"},
		AllowMethods: []string{"GET"},
		AllowHeaders: []string{"Origin", "Content-Type"},
		MaxAge:       12 * time.Hour,
	}))

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":  "ok",
			"uptime":  time.Since(startedAt).String(),
			"service": "hostctl",
		})
	})
	r.GET("/backend", func(c *gin.Context) {
		c.JSON(http.StatusOK, s.supervisor.Status())
	})
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	srv := &http.Server{Addr: s.cfg.StatusAddr, Handler: r}
	go func() {
		s.log.Info().Str("addr", s.cfg.StatusAddr).Msg("host.Service status endpoint listening")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			s.log.Warn().Err(err).Msg("host.Service status endpoint stopped")
		}
	}()
	return srv
}

func (s *Service) stopStatusServer(srv *http.Server) {
	if srv == nil {
		return
	}
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	_ = srv.Shutdown(shutdownCtx)
}
