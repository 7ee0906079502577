package server

import (
	"context"
	"database/sql"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const healthTimeout = 2 * time.Second

// Check reports the state of one component for /health. The detail is
// rendered under the component's name; a non-nil error marks the service
// unhealthy.
type Check func(ctx context.Context) (interface{}, error)

type Server struct {
	Engine *gin.Engine
	Addr   string

	mu     sync.RWMutex
	names  []string
	checks map[string]Check
}

// New builds the gin engine with /health and /metrics. db may be nil when
// the service runs on the in-memory store; the database check then reports
// "in-memory".
func New(addr string, db *sql.DB, mode string) *Server {
	if mode == "debug" {
		gin.SetMode(gin.DebugMode)
	} else {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.Default()

	s := &Server{
		Engine: r,
		Addr:   addr,
		checks: make(map[string]Check),
	}
	s.AddCheck("database", databaseCheck(db))

	r.GET("/health", s.healthHandler)
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	return s
}

// AddCheck registers a component for /health. Registering a name twice
// replaces the earlier check.
func (s *Server) AddCheck(name string, check Check) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.checks[name]; !ok {
		s.names = append(s.names, name)
	}
	s.checks[name] = check
}

func databaseCheck(db *sql.DB) Check {
	return func(ctx context.Context) (interface{}, error) {
		if db == nil {
			return "in-memory", nil
		}
		if err := db.PingContext(ctx); err != nil {
			return "unreachable", err
		}
		return "connected", nil
	}
}

func (s *Server) healthHandler(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), healthTimeout)
	defer cancel()

	s.mu.RLock()
	names := append([]string(nil), s.names...)
	checks := make([]Check, len(names))
	for i, name := range names {
		checks[i] = s.checks[name]
	}
	s.mu.RUnlock()

	body := gin.H{"status": "healthy"}
	code := http.StatusOK
	var failed []string
	for i, name := range names {
		detail, err := checks[i](ctx)
		body[name] = detail
		if err != nil {
			slog.Error("[Server] Health check failed", "component", name, "error", err)
			failed = append(failed, name)
		}
	}
	if len(failed) > 0 {
		body["status"] = "unhealthy"
		body["failed"] = failed
		code = http.StatusServiceUnavailable
	}

	c.JSON(code, body)
}

func (s *Server) Run(ctx context.Context) error {
	srv := &http.Server{
		Addr:              s.Addr,
		Handler:           s.Engine,
		ReadHeaderTimeout: 10 * time.Second,
	}

	slog.Info("[Server] Starting HTTP Server...", "address", s.Addr)

	go func() {
		<-ctx.Done()
		slog.Info("[Server] Stopping HTTP Server...")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			slog.Error("[Server] HTTP Server forced to shutdown", "error", err)
		}
	}()

	if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return err
	}
	return nil
}
