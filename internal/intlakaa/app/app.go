package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/aussiebroadwan/intlakaa/internal/intlakaa/domain"
	httpapi "github.com/aussiebroadwan/intlakaa/internal/intlakaa/http"
	"github.com/aussiebroadwan/intlakaa/internal/intlakaa/mailer"
	"github.com/aussiebroadwan/intlakaa/internal/intlakaa/service"
	"github.com/aussiebroadwan/intlakaa/internal/intlakaa/store"
	"github.com/aussiebroadwan/intlakaa/internal/intlakaa/store/drivers/mongo"
	"github.com/aussiebroadwan/intlakaa/internal/intlakaa/store/drivers/sqlite"
	"github.com/aussiebroadwan/intlakaa/pkg/cryptox"
	"github.com/aussiebroadwan/intlakaa/pkg/httpx"
	"github.com/aussiebroadwan/intlakaa/pkg/jwtx"
	"github.com/aussiebroadwan/intlakaa/pkg/slogx"
)

// BuildVersion is overridden at build time via -ldflags "-X ...app.BuildVersion=...".
var BuildVersion = "v1.0.0"

// Application wires the store, mailer, services and HTTP server together.
type Application struct {
	cfg    Config
	logger *slog.Logger

	// Core dependencies
	db     store.Store
	mailer mailer.Mailer
	keys   *jwtx.Keys

	// Services
	authService         *service.AuthService
	inviteService       *service.InviteService
	adminService        *service.AdminService
	requestService      *service.RequestService
	bootstrapService    *service.BootstrapService
	housekeepingService *service.HousekeepingService

	// HTTP server
	server *http.Server
	router *httpapi.Router
}

// New creates a new Application instance with all dependencies initialized
func New(cfg Config) (*Application, error) {
	app := &Application{
		cfg: cfg,
		logger: slogx.New(slogx.Config{
			Service: "intlakaa-api",
			Version: BuildVersion,
			Env:     cfg.Env,
			Level:   cfg.LogLevel,
			Format:  cfg.LogFormat,
		}),
	}

	// Error responses carry the cause chain only in development.
	httpx.SetDebug(slogx.IsDev(cfg.Env))

	if err := httpx.SetTrustedProxies(cfg.TrustedProxies); err != nil {
		return nil, fmt.Errorf("trusted proxies: %w", err)
	}

	cryptox.SetPepperPath(app.cfg.PepperFile)

	if err := app.initDatabase(); err != nil {
		return nil, err
	}

	keys, err := InitAdminKeys(app.cfg, app.logger)
	if err != nil {
		_ = app.db.Close()
		return nil, fmt.Errorf("failed to initialize JWT keys: %w", err)
	}
	app.keys = keys

	if err := app.initMailer(); err != nil {
		_ = app.db.Close()
		return nil, err
	}

	app.initServices()
	app.initHTTP()

	return app, nil
}

// Run starts the application and blocks until shutdown is requested
func (app *Application) Run() error {
	app.housekeepingService.Start()

	app.logger.Info("intlakaa api starting",
		"port", app.cfg.Port,
		"version", BuildVersion,
		"database", app.cfg.DatabaseDriver,
		"mailer", app.cfg.Mailer,
	)
	app.logBootstrapState()

	serverErrors := make(chan error, 1)
	go func() {
		serverErrors <- app.server.ListenAndServe()
	}()

	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM)

	select {
	case err := <-serverErrors:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			app.housekeepingService.Stop()
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
	app.logger.Info("shutting down intlakaa api...")

	ctx, cancel := context.WithTimeout(context.Background(), app.cfg.ShutdownGracePeriod)
	defer cancel()

	if err := app.server.Shutdown(ctx); err != nil {
		app.logger.Error("graceful server shutdown failed", "error", err)
		if err := app.server.Close(); err != nil {
			app.logger.Error("error closing server", "error", err)
		}
	}

	app.housekeepingService.Stop()

	if err := app.mailer.Close(); err != nil {
		app.logger.Error("error closing mailer", "error", err)
	}

	if err := app.db.Close(); err != nil {
		app.logger.Error("error closing database", "error", err)
		return err
	}

	app.logger.Info("intlakaa api stopped")
	return nil
}

// initDatabase opens the configured store and applies migrations
func (app *Application) initDatabase() error {
	var (
		db  store.Store
		err error
	)

	switch app.cfg.DatabaseDriver {
	case "sqlite", "":
		db, err = sqlite.NewStore(sqlite.DSN(app.cfg.DatabaseFile))
	case "mongo", "mongodb":
		if app.cfg.MongoURI == "" {
			return errors.New("MONGO_URI is required when DATABASE_DRIVER=mongo")
		}
		ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
		defer cancel()
		db, err = mongo.NewStore(ctx, app.cfg.MongoURI, app.cfg.MongoDatabase)
	default:
		return fmt.Errorf("unknown DATABASE_DRIVER %q", app.cfg.DatabaseDriver)
	}
	if err != nil {
		return fmt.Errorf("failed to initialize database: %w", err)
	}
	app.db = db

	if err := db.ApplyMigrations(); err != nil {
		_ = db.Close()
		return fmt.Errorf("failed to apply database migrations: %w", err)
	}

	app.logger.Info("database migrations applied successfully", "driver", app.cfg.DatabaseDriver)
	return nil
}

// initMailer selects how invite links are delivered
func (app *Application) initMailer() error {
	switch app.cfg.Mailer {
	case "log", "":
		app.mailer = mailer.NewLogMailer()
		app.logger.Warn("invite emails are only logged; set MAILER=amqp to deliver them")
	case "amqp":
		if app.cfg.AMQPURL == "" {
			return errors.New("AMQP_URL is required when MAILER=amqp")
		}
		m, err := mailer.NewAMQPMailer(app.cfg.AMQPURL, app.cfg.AMQPExchange)
		if err != nil {
			return fmt.Errorf("failed to connect mailer: %w", err)
		}
		app.mailer = m
	default:
		return fmt.Errorf("unknown MAILER %q", app.cfg.Mailer)
	}
	return nil
}

// initServices initializes all business logic services
func (app *Application) initServices() {
	app.authService = &service.AuthService{
		Store:    app.db,
		Keys:     app.keys,
		TokenTTL: app.cfg.AdminTokenTTL,
	}
	app.inviteService = &service.InviteService{
		Store:       app.db,
		Mailer:      app.mailer,
		Auth:        app.authService,
		TTL:         app.cfg.InviteTTL,
		FrontendURL: app.cfg.FrontendURL,
		Policy:      domain.PasswordPolicy{MinLength: app.cfg.PasswordMinLength},
	}
	app.adminService = &service.AdminService{Store: app.db}
	app.requestService = &service.RequestService{Store: app.db}
	app.bootstrapService = &service.BootstrapService{
		Store:   app.db,
		Invites: app.inviteService,
		Token:   app.cfg.BootstrapToken,
	}

	app.housekeepingService = service.NewHousekeepingService(
		app.db,
		app.logger,
		app.cfg.HousekeepingInterval,
	)
}

// initHTTP initializes the HTTP router and server
func (app *Application) initHTTP() {
	router := httpapi.NewRouter(
		app.keys,
		BuildVersion,
		app.db,
		app.logger,
		app.cfg.AllowedOrigins,
	)

	router.AuthService = app.authService
	router.InviteService = app.inviteService
	router.AdminService = app.adminService
	router.RequestService = app.requestService
	router.BootstrapService = app.bootstrapService
	router.ApplyRoutes()

	app.router = router

	app.server = &http.Server{
		Addr:              fmt.Sprintf(":%d", app.cfg.Port),
		Handler:           router,
		ReadHeaderTimeout: 3 * time.Second,
	}
}

// logBootstrapState tells the operator whether an owner still has to be
// created.
func (app *Application) logBootstrapState() {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	bootstrapped, err := app.bootstrapService.IsBootstrapped(ctx)
	switch {
	case err != nil:
		app.logger.Warn("could not determine bootstrap state", "error", err)
	case !bootstrapped && app.cfg.BootstrapToken == "":
		app.logger.Warn("no admins exist and BOOTSTRAP_TOKEN is unset; no one can sign in")
	case !bootstrapped:
		app.logger.Info("no admins exist; POST /api/auth/bootstrap to invite the first owner")
	}
}
