// Package httpapi exposes the REST surface: auth routes issuing bearer
// tokens, project CRUD and nested/flat task routes. Handlers decode the
// request, call a service and translate errors to status codes; all
// business rules live below this layer.
package httpapi

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/anvitha-acharya/DevOrgs/internal/logging"
	"github.com/anvitha-acharya/DevOrgs/internal/server/config"
	"github.com/anvitha-acharya/DevOrgs/internal/server/services"
)

type Server struct {
	address         string
	logger          logging.Logger
	users           *services.UserService
	projects        *services.ProjectService
	tasks           *services.TaskService
	allowedOrigins  []string
	shutdownTimeout time.Duration
}

func NewServer(cfg *config.Config, l logging.Logger, us *services.UserService, ps *services.ProjectService, ts *services.TaskService) *Server {
	return &Server{
		address:         cfg.EndpointAddr,
		logger:          l.With("module", "http_server"),
		users:           us,
		projects:        ps,
		tasks:           ts,
		allowedOrigins:  cfg.AllowedOrigins,
		shutdownTimeout: cfg.ShutdownTimeout,
	}
}

// Handler builds the full route table with the middleware chain
// applied. Split out from Run so tests can drive it with httptest.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("GET /api/health", s.handleHealth)
	mux.HandleFunc("POST /api/auth/signup", s.handleSignup)
	mux.HandleFunc("POST /api/auth/login", s.handleLogin)

	mux.HandleFunc("POST /api/projects", s.withAuth(s.handleCreateProject))
	mux.HandleFunc("GET /api/projects", s.withAuth(s.handleListProjects))
	mux.HandleFunc("GET /api/projects/{id}", s.withAuth(s.handleGetProject))
	mux.HandleFunc("PUT /api/projects/{id}", s.withAuth(s.handleUpdateProject))
	mux.HandleFunc("DELETE /api/projects/{id}", s.withAuth(s.handleDeleteProject))

	mux.HandleFunc("POST /api/projects/{projectId}/tasks", s.withAuth(s.handleCreateTask))
	mux.HandleFunc("GET /api/projects/{projectId}/tasks", s.withAuth(s.handleListTasks))
	mux.HandleFunc("GET /api/tasks/{id}", s.withAuth(s.handleGetTask))
	mux.HandleFunc("PUT /api/tasks/{id}", s.withAuth(s.handleUpdateTask))
	mux.HandleFunc("DELETE /api/tasks/{id}", s.withAuth(s.handleDeleteTask))

	return s.withRequestLog(s.withCORS(mux))
}

// Run serves until ctx is cancelled, then shuts down gracefully within
// the configured timeout.
func (s *Server) Run(ctx context.Context) error {
	srv := &http.Server{
		Addr:    s.address,
		Handler: s.Handler(),
	}

	errCh := make(chan error, 1)
	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	s.logger.Info(ctx, "starting HTTP server", "address", s.address)

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	s.logger.Info(ctx, "stopping HTTP server")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), s.shutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	return <-errCh
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
