package auth

import (
	"context"
	"log/slog"
	"net/http"
	"strings"

	"finance-analyzer/models"

	"github.com/gin-gonic/gin"
)

// UserLookup resolves a token subject to a stored user.
type UserLookup interface {
	ByUsername(ctx context.Context, username string) (*models.User, error)
}

// Exemptions lists the paths served without looking at the Authorization header.
type Exemptions struct {
	Exact    []string
	Prefixes []string
}

// DefaultExemptions covers auth and public endpoints under apiPrefix, health, docs and the root.
func DefaultExemptions(apiPrefix string) Exemptions {
	apiPrefix = strings.TrimRight(apiPrefix, "/")
	return Exemptions{
		Exact: []string{"/", "/health"},
		Prefixes: []string{
			apiPrefix + "/auth/",
			apiPrefix + "/public/",
			"/health/",
			"/swagger",
			"/docs",
			"/v3/api-docs",
		},
	}
}

func (e Exemptions) match(path string) bool {
	for _, p := range e.Exact {
		if path == p {
			return true
		}
	}
	for _, p := range e.Prefixes {
		if strings.HasPrefix(path, p) {
			return true
		}
	}
	return false
}

// Gateway attaches the caller identity to each request that presents a valid bearer token.
// It never rejects a request itself; RequireIdentity does that for protected routes.
type Gateway struct {
	tokens *TokenService
	users  UserLookup
	exempt Exemptions
	log    *slog.Logger
}

func NewGateway(tokens *TokenService, users UserLookup, exempt Exemptions, logger *slog.Logger) *Gateway {
	if logger == nil {
		logger = slog.Default()
	}
	return &Gateway{tokens: tokens, users: users, exempt: exempt, log: logger.With("component", "auth")}
}

// BearerToken extracts the token from an "Authorization: Bearer <token>" header value.
func BearerToken(header string) (string, bool) {
	const prefix = "Bearer "
	if len(header) <= len(prefix) || header[:len(prefix)] != prefix {
		return "", false
	}
	tok := strings.TrimSpace(header[len(prefix):])
	return tok, tok != ""
}

// Middleware runs once per request. Identity lives only on that request's context.
func (g *Gateway) Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		if g.exempt.match(c.Request.URL.Path) {
			c.Next()
			return
		}
		tokenString, ok := BearerToken(c.GetHeader("Authorization"))
		if !ok {
			c.Next()
			return
		}
		id, err := g.authenticate(c.Request.Context(), tokenString)
		if err != nil {
			g.log.Warn("cannot set user authentication", "path", c.Request.URL.Path, "error", err)
			delete(c.Keys, ginIdentityKey)
			c.Next()
			return
		}
		c.Set(ginIdentityKey, id)
		c.Request = c.Request.WithContext(WithIdentity(c.Request.Context(), id))
		g.log.Debug("user authenticated", "username", id.Username)
		c.Next()
	}
}

func (g *Gateway) authenticate(ctx context.Context, tokenString string) (Identity, error) {
	subject, err := g.tokens.Validate(tokenString)
	if err != nil {
		return Identity{}, err
	}
	user, err := g.users.ByUsername(ctx, subject)
	if err != nil {
		return Identity{}, err
	}
	return Identity{UserID: user.ID, Username: user.Username}, nil
}

// RequireIdentity aborts with 401 when the gateway attached no identity.
func RequireIdentity() gin.HandlerFunc {
	return func(c *gin.Context) {
		if _, ok := Current(c); !ok {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"success": false,
				"message": "Full authentication is required to access this resource",
			})
			return
		}
		c.Next()
	}
}
