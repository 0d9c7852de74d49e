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

	"forum-api/internal/config"
	"forum-api/internal/database"
	"forum-api/internal/handler"
	"forum-api/internal/middleware"
	"forum-api/internal/payment"
	"forum-api/internal/query"
	"forum-api/internal/repository"
	"forum-api/internal/router"
	"forum-api/internal/service"
)

type App struct {
	server       *http.Server
	cleanupFuncs []func()
}

func New(cfg *config.Config) (*App, error) {
	ctx := context.Background()
	var cleanups []func()
	fail := func(err error) (*App, error) {
		runCleanups(cleanups)
		return nil, err
	}

	slog.Info("connecting to MongoDB")
	mongoDB, err := database.NewMongo(ctx, cfg.MongoURI, cfg.MongoDatabase, cfg.StoreTimeout)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to document store: %w", err)
	}
	cleanups = append(cleanups, func() {
		closeCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := mongoDB.Close(closeCtx); err != nil {
			slog.Warn("mongo disconnect failed", "error", err)
		}
	})

	if err := mongoDB.EnsureIndexes(ctx); err != nil {
		return fail(fmt.Errorf("failed to ensure indexes: %w", err))
	}

	healthChecks := map[string]handler.HealthChecker{"mongo": mongoDB}

	var auditService *service.AuditService
	if cfg.AuditEnabled() {
		slog.Info("connecting to PostgreSQL")
		db, err := database.New(ctx, cfg.DatabaseURL, cfg.DBMaxConns, cfg.DBMinConns)
		if err != nil {
			return fail(fmt.Errorf("failed to connect to database: %w", err))
		}
		cleanups = append(cleanups, db.Close)

		if err := db.Migrate(ctx); err != nil {
			return fail(fmt.Errorf("failed to migrate database: %w", err))
		}

		auditService = service.NewAuditService(repository.NewAuditRepository(db.Pool), cfg.StoreTimeout)
		healthChecks["postgres"] = db
	} else {
		slog.Warn("DATABASE_URL not set, audit trail disabled")
	}

	userRepo := repository.NewUserRepository(mongoDB.DB, cfg.StoreTimeout)
	postRepo := repository.NewPostRepository(mongoDB.DB, cfg.StoreTimeout)
	announcementRepo := repository.NewAnnouncementRepository(mongoDB.DB, cfg.StoreTimeout)
	paymentRepo := repository.NewPaymentRepository(mongoDB.DB, cfg.StoreTimeout)

	tokenService, err := service.NewTokenService(cfg.AccessTokenSecret, cfg.AccessTokenTTL)
	if err != nil {
		return fail(fmt.Errorf("failed to initialize token service: %w", err))
	}
	issuePolicy, err := service.NewIssuePolicy(cfg, userRepo)
	if err != nil {
		return fail(fmt.Errorf("failed to initialize token issue policy: %w", err))
	}
	slog.Info("token issue policy", "policy", issuePolicy.Name())

	roleService := service.NewRoleService(userRepo)
	userService := service.NewUserService(userRepo, roleService, auditService)
	postService := service.NewPostService(postRepo, auditService)
	announcementService := service.NewAnnouncementService(announcementRepo)
	paymentService := service.NewPaymentService(payment.NewStripeProcessor(cfg.StripeSecretKey), paymentRepo, cfg.PaymentCurrency, auditService)

	authMiddleware := middleware.NewAuthMiddleware(tokenService, roleService)

	appRouter := router.New(cfg, authMiddleware, router.Handlers{
		Health:       handler.NewHealthHandler(healthChecks),
		Auth:         handler.NewAuthHandler(tokenService, issuePolicy, auditService),
		User:         handler.NewUserHandler(userService),
		Post:         handler.NewPostHandler(postService, query.NewPaging(cfg.PageDefaultSize, cfg.PageMaxSize)),
		Announcement: handler.NewAnnouncementHandler(announcementService),
		Payment:      handler.NewPaymentHandler(paymentService),
		Audit:        handler.NewAuditHandler(auditService),
	})

	server := &http.Server{
		Addr:              ":" + cfg.ServerPort,
		Handler:           appRouter,
		ReadHeaderTimeout: cfg.ServerReadHeaderTimeout,
		WriteTimeout:      cfg.ServerWriteTimeout,
		IdleTimeout:       cfg.ServerIdleTimeout,
	}

	return &App{server: server, cleanupFuncs: cleanups}, nil
}

func (a *App) Run() error {
	go func() {
		slog.Info("server starting", "addr", a.server.Addr)
		if serveErr := a.server.ListenAndServe(); serveErr != nil && !errors.Is(serveErr, http.ErrServerClosed) {
			slog.Error("server failed", "error", serveErr)
			os.Exit(1)
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	<-stop

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	// Stop accepting requests before the stores go away.
	shutdownErr := a.server.Shutdown(ctx)
	runCleanups(a.cleanupFuncs)

	if shutdownErr != nil {
		return fmt.Errorf("graceful shutdown failed: %w", shutdownErr)
	}

	slog.Info("server stopped")
	return nil
}

// runCleanups releases resources in reverse acquisition order.
func runCleanups(cleanups []func()) {
	for i := len(cleanups) - 1; i >= 0; i-- {
		cleanups[i]()
	}
}
