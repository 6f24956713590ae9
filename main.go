package main

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"roster/auth"
	"roster/config"
	"roster/database"
	"roster/handlers"
	"roster/logger"
	"roster/oauth"
	"roster/repository"
	"roster/services"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		panic(err)
	}

	log, err := logger.New(cfg.Logging.Level)
	if err != nil {
		panic(err)
	}
	defer func() { _ = log.Sync() }()

	// Initialize database
	db, err := database.Open(cfg.Database.URL, cfg.Logging.Level)
	if err != nil {
		log.Errorw("database initialization error", "error", err)
		return
	}
	defer func() {
		if err := database.Close(db); err != nil {
			log.Warnw("database close error", "error", err)
		}
	}()

	persons := repository.NewPersonRepository(db, log)
	teams := repository.NewTeamRepository(db, log)
	users := repository.NewUserRepository(db, log)

	providers := oauth.NewFactory(oauth.Config{
		RedirectURI: cfg.OAuth.RedirectURI,
		HTTPClient:  &http.Client{Timeout: cfg.OAuth.HTTPTimeout},
		Google: oauth.ProviderConfig{
			ClientID:     cfg.Google.ClientID,
			ClientSecret: cfg.Google.ClientSecret,
		},
		Facebook: oauth.ProviderConfig{
			ClientID:     cfg.Facebook.ClientID,
			ClientSecret: cfg.Facebook.ClientSecret,
		},
	})
	tokens := auth.NewTokenIssuer(cfg.JWT.Secret, cfg.JWT.AccessTTL, cfg.JWT.RefreshTTL)

	router := handlers.NewRouter(handlers.Deps{
		Persons: services.NewPersonService(persons, log),
		Teams:   services.NewTeamService(teams, log),
		OAuth:   services.NewOAuthService(providers, users, tokens, log),
		Tokens:  tokens,
		Log:     log,
	})

	srv := &http.Server{
		Addr:              cfg.ServerAddr(),
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		log.Infow("server starting", "addr", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Errorw("failed to start server", "error", err)
			stop()
		}
	}()

	<-ctx.Done()
	stop()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Warnw("server shutdown timeout", "timeout", cfg.Server.ShutdownTimeout, "error", err)
	}
}
