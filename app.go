package main

import (
	"log/slog"
	"net/http"
	"time"

	"finance-analyzer/pkg/auth"
	"finance-analyzer/pkg/config"
	"finance-analyzer/pkg/csvimport"
	"finance-analyzer/pkg/finance"
	"finance-analyzer/pkg/store"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

// app holds everything the handlers need. One per process.
type app struct {
	cfg      *config.Config
	log      *slog.Logger
	st       *store.Store
	tokens   *auth.TokenService
	gateway  *auth.Gateway
	users    *finance.UserService
	cats     *finance.CategoryService
	txs      *finance.TransactionService
	uploads  *finance.UploadService
	importer *csvimport.Pipeline
}

func newApp(cfg *config.Config, logger *slog.Logger, st *store.Store, key []byte) (*app, error) {
	tokens, err := auth.NewTokenService(key, cfg.JWTTTL)
	if err != nil {
		return nil, err
	}
	return &app{
		cfg:      cfg,
		log:      logger,
		st:       st,
		tokens:   tokens,
		gateway:  auth.NewGateway(tokens, st.Users, auth.DefaultExemptions(cfg.APIPrefix), logger),
		users:    finance.NewUserService(st, auth.BcryptHasher{}, logger),
		cats:     finance.NewCategoryService(st),
		txs:      finance.NewTransactionService(st),
		uploads:  finance.NewUploadService(st),
		importer: csvimport.New(st.Uploads, st.Users, st.Transactions, logger),
	}, nil
}

func corsMiddleware(origins []string) gin.HandlerFunc {
	cfg := cors.Config{
		AllowMethods:  []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete, http.MethodOptions},
		AllowHeaders:  []string{"Origin", "Content-Type", "Accept", "Authorization"},
		ExposeHeaders: []string{"Content-Length", "X-Request-ID"},
		MaxAge:        12 * time.Hour,
	}
	cfg.AllowAllOrigins = len(origins) == 0
	for _, o := range origins {
		if o == "*" {
			cfg.AllowAllOrigins = true
		}
	}
	if !cfg.AllowAllOrigins {
		cfg.AllowOrigins = origins
		cfg.AllowCredentials = true
	}
	return cors.New(cfg)
}
