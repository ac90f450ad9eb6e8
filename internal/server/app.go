// Package server initializes and runs the application: it loads
// configuration, opens the MongoDB connection, wires repositories and
// services, and serves the HTTP API until an OS signal arrives.
package server

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/anvitha-acharya/DevOrgs/internal/logging"
	"github.com/anvitha-acharya/DevOrgs/internal/server/config"
	"github.com/anvitha-acharya/DevOrgs/internal/server/httpapi"
	"github.com/anvitha-acharya/DevOrgs/internal/server/repositories/projects"
	"github.com/anvitha-acharya/DevOrgs/internal/server/repositories/tasks"
	"github.com/anvitha-acharya/DevOrgs/internal/server/repositories/users"
	"github.com/anvitha-acharya/DevOrgs/internal/server/services"
	"github.com/anvitha-acharya/DevOrgs/internal/server/storage"
)

type App struct {
	config *config.Config
	logger logging.Logger
	store  *storage.Store
	server *httpapi.Server
}

// NewApp wires the application. It fails hard on unusable configuration
// (a missing JWT secret) and on an unreachable database.
func NewApp(ctx context.Context, cfg *config.Config) (*App, error) {
	logger := logging.NewSlogLogger(slog.New(slog.NewJSONHandler(os.Stdout, nil)))

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	store, err := storage.Connect(ctx, cfg.DatabaseURI, cfg.DatabaseName)
	if err != nil {
		return nil, fmt.Errorf("db init error: %w", err)
	}

	userRepo := users.NewMongoRepository(store.Users())
	projectRepo := projects.NewMongoRepository(store.Projects())
	taskRepo := tasks.NewMongoRepository(store.Tasks())

	userService := services.NewUserService(userRepo, cfg, logger)
	projectService := services.NewProjectService(projectRepo, logger)
	taskService := services.NewTaskService(taskRepo, projectRepo, logger)

	srv := httpapi.NewServer(cfg, logger, userService, projectService, taskService)

	return &App{config: cfg, logger: logger, store: store, server: srv}, nil
}

func (app *App) initSignalHandler(cancelFunc context.CancelFunc) {
	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT)

	go func() {
		<-sigs
		cancelFunc()
	}()
}

// Run serves the HTTP API until the context is cancelled or a signal
// arrives, then disconnects from the database.
func (app *App) Run(ctx context.Context) {
	ctx, cancelFunc := context.WithCancel(ctx)
	defer cancelFunc()

	app.logger.Info(ctx, "starting app")

	app.initSignalHandler(cancelFunc)

	if err := app.server.Run(ctx); err != nil {
		app.logger.Error(ctx, "http server error", "error", err)
	}

	if err := app.store.Close(context.Background()); err != nil {
		app.logger.Error(ctx, "db disconnect error", "error", err)
	}

	app.logger.Info(ctx, "app stopped")
}
