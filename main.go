package main

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

	"finance-analyzer/pkg/auth"
	"finance-analyzer/pkg/config"
	"finance-analyzer/pkg/logging"
	"finance-analyzer/pkg/store"

	"github.com/gin-gonic/gin"
)

func main() {
	cfg := config.Load()
	logger := logging.New(cfg.LogLevel, cfg.LogFormat, nil)
	slog.SetDefault(logger)

	if err := cfg.Validate(); err != nil {
		logger.Error("invalid configuration", "error", err)
		os.Exit(1)
	}

	db, err := store.Open(cfg.DBDriver, cfg.DBDSN, false)
	if err != nil {
		logger.Error("failed to connect database", "driver", cfg.DBDriver, "error", err)
		os.Exit(1)
	}
	st := store.New(db)
	defer st.Close()

	// `finance-analyzer migrate` applies the schema then exits. Useful for CI or manual DB setup.
	if len(os.Args) > 1 && os.Args[1] == "migrate" {
		if err := store.Migrate(db); err != nil {
			logger.Error("migration failed", "error", err)
			os.Exit(1)
		}
		fmt.Println("migration completed")
		return
	}
	if cfg.DBAutoMigrate {
		// permission problems on a managed database should not keep the API down
		if err := store.Migrate(db); err != nil {
			logger.Warn("migration warning", "error", err)
		}
	}

	key, err := signingKey(cfg.JWTSecret, logger)
	if err != nil {
		logger.Error("cannot set up token signing key", "error", err)
		os.Exit(1)
	}
	a, err := newApp(cfg, logger, st, key)
	if err != nil {
		logger.Error("cannot build application", "error", err)
		os.Exit(1)
	}

	if cfg.GinMode != "" {
		gin.SetMode(cfg.GinMode)
	}
	r := gin.New()
	r.Use(gin.Recovery(), logging.Requests(logger), corsMiddleware(cfg.CORSAllowedOrigins))
	setupRoutes(r, a)

	srv := &http.Server{
		Addr:              cfg.Addr(),
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go func() {
		sigChan := make(chan os.Signal, 1)
		signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
		sig := <-sigChan
		logger.Info("shutdown signal received", "signal", sig.String())

		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer shutdownCancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			logger.Error("server shutdown error", "error", err)
		}
		cancel()
	}()

	logger.Info("starting finance-analyzer", "addr", srv.Addr, "prefix", cfg.APIPrefix, "driver", cfg.DBDriver)
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		logger.Error("server error", "error", err)
		os.Exit(1)
	}
	<-ctx.Done()
	logger.Info("server stopped")
}

// signingKey uses JWT_SECRET when set, otherwise a random key valid for this process only.
func signingKey(secret string, logger *slog.Logger) ([]byte, error) {
	if secret != "" {
		return []byte(secret), nil
	}
	logger.Warn("JWT_SECRET not set, generated a random signing key; tokens will not survive a restart")
	return auth.GenerateKey()
}
