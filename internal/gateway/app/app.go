package app

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/auslane/authgate/internal/gateway/federation"
	httpapi "github.com/auslane/authgate/internal/gateway/http"
	"github.com/auslane/authgate/internal/gateway/idp"
	"github.com/auslane/authgate/internal/gateway/service"
	"github.com/auslane/authgate/internal/gateway/store"
	"github.com/auslane/authgate/internal/gateway/store/drivers/memory"
	"github.com/auslane/authgate/internal/gateway/store/drivers/sqlite"
	"github.com/auslane/authgate/pkg/cryptox"
	"github.com/auslane/authgate/pkg/slogx"
)

const (
	// BuildVersion should be set at build time via ldflags. Later problem
	BuildVersion = "v0.1.0"
)

// Application encapsulates the gateway with all its dependencies
type Application struct {
	cfg    Config
	logger *slog.Logger

	db        store.Store
	issuer    idp.TokenIssuer
	validator federation.CredentialValidator

	authService      *service.AuthService
	mfaService       *service.MFAService
	directoryService *service.DirectoryService

	server *http.Server
	router *httpapi.Router
}

// New creates a new Application instance with all dependencies initialized
func New(cfg Config) (*Application, error) {
	app := &Application{
		cfg: cfg,
		logger: slogx.New(slogx.Config{
			Service: "authgate",
			Version: BuildVersion,
			Env:     cfg.Env,
			Level:   cfg.LogLevel,
			Format:  cfg.LogFormat,
		}),
	}

	if cfg.IdPServerURL == "" {
		return nil, fmt.Errorf("GATEWAY_IDP_SERVER_URL is required")
	}

	// Set pepper path for password hashing
	cryptox.SetPepperPath(app.cfg.PepperFile)

	if err := app.initStore(); err != nil {
		return nil, err
	}
	if err := app.initBackends(); err != nil {
		_ = app.db.Close()
		return nil, err
	}

	app.initServices()
	app.initHTTP()

	return app, nil
}

// Run starts the application and blocks until shutdown is requested
func (app *Application) Run() error {
	app.logger.Info("gateway starting",
		"port", app.cfg.Port,
		"version", BuildVersion,
		"federation_mode", app.cfg.FederationMode,
		"store_driver", app.cfg.StoreDriver,
	)

	// Start server in a goroutine
	serverErrors := make(chan error, 1)
	go func() {
		serverErrors <- app.server.ListenAndServe()
	}()

	// Setup signal handling for graceful shutdown
	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM)

	// Block until we receive a shutdown signal or server error
	select {
	case err := <-serverErrors:
		if err != nil && err != http.ErrServerClosed {
			return fmt.Errorf("server failed: %w", err)
		}
	case sig := <-shutdown:
		app.logger.Info("shutdown signal received", "signal", sig)

		if err := app.Shutdown(); err != nil {
			return fmt.Errorf("graceful shutdown failed: %w", err)
		}
	}

	return nil
}

// Shutdown gracefully shuts down the application
func (app *Application) Shutdown() error {
	app.logger.Info("shutting down gateway...")

	// Give outstanding requests a deadline for completion
	ctx, cancel := context.WithTimeout(context.Background(), app.cfg.ShutdownGracePeriod)
	defer cancel()

	if err := app.server.Shutdown(ctx); err != nil {
		app.logger.Error("graceful server shutdown failed", "error", err)
		if err := app.server.Close(); err != nil {
			app.logger.Error("error closing server", "error", err)
		}
	}

	if err := app.db.Close(); err != nil {
		app.logger.Error("error closing store", "error", err)
		return err
	}

	app.logger.Info("gateway stopped")
	return nil
}

// initStore initializes the MFA/directory store and applies migrations
func (app *Application) initStore() error {
	switch app.cfg.StoreDriver {
	case "memory":
		app.db = memory.NewStore()
		app.logger.Info("using in-memory store, state is lost on restart")
		return nil
	case "sqlite":
		host := fmt.Sprintf("file:%s?_busy_timeout=5000&_journal_mode=WAL", app.cfg.DatabaseFile)
		db, err := sqlite.NewStore(host)
		if err != nil {
			return fmt.Errorf("failed to initialize store: %w", err)
		}
		app.db = db

		if err := db.ApplyMigrations(); err != nil {
			_ = db.Close()
			return fmt.Errorf("failed to apply store migrations: %w", err)
		}

		app.logger.Info("store migrations applied successfully")
		return nil
	default:
		return fmt.Errorf("unknown store driver %q", app.cfg.StoreDriver)
	}
}

// initBackends initializes the token issuer and federation validator
func (app *Application) initBackends() error {
	app.issuer = idp.NewClient(
		app.cfg.IdPServerURL,
		app.cfg.IdPRealm,
		app.cfg.IdPClientID,
		app.cfg.IdPClientSecret,
	)

	switch app.cfg.FederationMode {
	case "directory":
		app.validator = &federation.DirectoryValidator{Store: app.db}
	case "remote":
		if app.cfg.FederationValidateURL == "" {
			return fmt.Errorf("GATEWAY_FEDERATION_VALIDATE_URL is required in remote federation mode")
		}
		app.validator = federation.NewRemoteValidator(app.cfg.FederationValidateURL)
	default:
		return fmt.Errorf("unknown federation mode %q", app.cfg.FederationMode)
	}

	return nil
}

// initServices initializes all business logic services
func (app *Application) initServices() {
	app.authService = &service.AuthService{
		Strategies: []service.Strategy{
			&service.DatabaseStrategy{Issuer: app.issuer},
			&service.FederationStrategy{
				Validator: app.validator,
				Issuer:    app.issuer,
			},
		},
	}

	app.mfaService = &service.MFAService{
		Store:  app.db,
		Issuer: app.cfg.MFAIssuer,
	}

	app.directoryService = &service.DirectoryService{Store: app.db}
}

// initHTTP initializes the HTTP router and server
func (app *Application) initHTTP() {
	router := httpapi.NewRouter(BuildVersion, app.db, app.logger)

	// Wire services to router
	router.AuthService = app.authService
	router.MFAService = app.mfaService
	router.DirectoryService = app.directoryService
	router.ApplyRoutes()

	app.router = router

	app.server = &http.Server{
		Addr:              fmt.Sprintf(":%d", app.cfg.Port),
		Handler:           router,
		ReadHeaderTimeout: 3 * time.Second,
	}
}
