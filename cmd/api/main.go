// Package main wires configuration, logging, MongoDB, services and the HTTP
// router, then serves the pet management API until interrupted.
//
// @title                       Pet Management API
// @version                     1.0.0
// @description                 Register, log in and manage your pets with a bearer token.
// @BasePath                    /
// @securityDefinitions.apikey  BearerAuth
// @in                          header
// @name                        Authorization
// @description                 Type "Bearer" followed by a space and the access token.
package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"

	"github.com/99minutos/pet-management/internal/api"
	"github.com/99minutos/pet-management/internal/core/service"
	mongostore "github.com/99minutos/pet-management/internal/infrastructure/db/mongo"
	"github.com/99minutos/pet-management/internal/infrastructure/security"
	"github.com/99minutos/pet-management/internal/pkg/config"
	"github.com/99minutos/pet-management/pkg/logger"
)

const shutdownTimeout = 10 * time.Second

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "pet-management: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load(ctx)
	if err != nil {
		return err
	}

	log := logger.Init(logger.Options{
		Level:   cfg.LogLevel,
		Pretty:  cfg.IsDevelopment(),
		Service: "pet-management",
	})

	// --- Datastore ---
	client, db, err := mongostore.Connect(ctx, mongostore.Config{
		URI:      cfg.Mongo.URI(),
		Database: cfg.Mongo.Database,
		TLS:      cfg.Mongo.TLS,
	})
	switch {
	case err == nil:
		log.Info().Str("database", cfg.Mongo.Database).Bool("tls", cfg.Mongo.TLS).Msg("connected to MongoDB")
	case errors.Is(err, mongostore.ErrUnreachable) && !cfg.Mongo.FailFast:
		log.Error().Err(err).Msg("MongoDB unreachable at startup, continuing in degraded mode")
	default:
		if client != nil {
			_ = client.Disconnect(context.Background())
		}
		return err
	}
	defer func() {
		dctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := client.Disconnect(dctx); err != nil {
			log.Warn().Err(err).Msg("MongoDB disconnect failed")
		}
	}()

	userRepo := mongostore.NewUserRepository(db)
	petRepo := mongostore.NewPetRepository(db, log)
	ensureIndexes(ctx, log, userRepo, petRepo)

	// --- Auth ---
	hasher := security.NewBcryptHasher(cfg.Auth.BcryptCost)
	codec, err := security.NewJWTCodec(cfg.Auth.SecretKey, cfg.Auth.Algorithm)
	if err != nil {
		return err
	}

	// --- Services ---
	authService := service.NewAuthService(userRepo, hasher, codec, cfg.Auth.TokenTTL(), log)
	identity := service.NewIdentityService(codec, userRepo, log)
	petService := service.NewPetService(petRepo, log)

	e := api.NewRouter(api.Dependencies{
		AuthService: authService,
		PetService:  petService,
		Identity:    identity,
		Mongo:       client,
		Logger:      log,
	})

	errCh := make(chan error, 1)
	go func() {
		log.Info().Str("port", cfg.Port).Str("env", cfg.Env).Msg("starting HTTP server")
		if err := e.Start(":" + cfg.Port); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("http server: %w", err)
		}
	case <-ctx.Done():
		log.Info().Msg("shutting down")
	}

	sctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	return e.Shutdown(sctx)
}

type indexer interface {
	EnsureIndexes(ctx context.Context) error
}

// ensureIndexes creates indexes at startup. Failures are only logged: the
// user store retries its unique index before every insert.
func ensureIndexes(ctx context.Context, log zerolog.Logger, repos ...indexer) {
	for _, r := range repos {
		if err := r.EnsureIndexes(ctx); err != nil {
			log.Error().Err(err).Msgf("ensure indexes for %T", r)
		}
	}
}
