package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/backoffice-hq/backoffice/internal/access"
	"github.com/backoffice-hq/backoffice/internal/app"
	"github.com/backoffice-hq/backoffice/internal/auth"
	"github.com/backoffice-hq/backoffice/internal/permissions"
	"github.com/backoffice-hq/backoffice/internal/platform/cache"
	"github.com/backoffice-hq/backoffice/internal/platform/db"
	"github.com/backoffice-hq/backoffice/internal/roles"
	"github.com/backoffice-hq/backoffice/internal/seed"
)

func main() {
	if err := run(); err != nil {
		slog.Error("backoffice exited", slog.Any("error", err))
		os.Exit(1)
	}
}

func run() error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg, err := app.LoadConfig()
	if err != nil {
		return err
	}
	logger := app.NewLogger(cfg)

	redisClient, err := cache.New(ctx, cfg.RedisAddr)
	if err != nil {
		return err
	}
	defer func() { _ = redisClient.Close() }()

	var permissionStore permissions.Store
	var roleStore roles.Store
	if cfg.PGDSN != "" {
		pool, err := db.New(ctx, cfg.PGDSN)
		if err != nil {
			return err
		}
		defer pool.Close()
		permissionStore = permissions.NewRepository(pool)
		roleStore = roles.NewRepository(pool)
		logger.Info("using postgres stores")
	} else {
		permissionStore = permissions.NewMemoryStore(seed.DefaultPermissions()...)
		roleStore = roles.NewMemoryStore(seed.DefaultRoles()...)
		logger.Info("using in-memory stores with reference seed data")
	}

	resolver := access.NewResolver(roleStore, permissionStore)
	userStore := auth.NewMemoryUserStore(seed.DefaultUsers()...)
	tokens := auth.NewTokenIssuer(cfg.AuthSecret, redisClient, cfg.AccessTokenTTL, cfg.RefreshTokenTTL)
	authService := auth.NewService(userStore, roleStore, resolver, tokens)

	router := app.NewRouter(app.RouterParams{
		Logger:             logger,
		Config:             cfg,
		PermissionsHandler: permissions.NewHandler(logger, permissionStore),
		RolesHandler:       roles.NewHandler(logger, roleStore),
		AuthHandler:        auth.NewHandler(logger, authService),
	})

	srv := &http.Server{
		Addr:         cfg.AppAddr,
		Handler:      router,
		ReadTimeout:  cfg.AppReadTimeout,
		WriteTimeout: cfg.AppWriteTimeout,
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		logger.Info("listening", slog.String("addr", cfg.AppAddr), slog.String("env", cfg.AppEnv))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		logger.Info("shutting down")
		return srv.Shutdown(shutdownCtx)
	})
	return g.Wait()
}
