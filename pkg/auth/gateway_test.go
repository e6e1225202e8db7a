package auth

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"finance-analyzer/models"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeUsers map[string]uint

func (f fakeUsers) ByUsername(_ context.Context, username string) (*models.User, error) {
	id, ok := f[username]
	if !ok {
		return nil, errors.New("user not found")
	}
	return &models.User{ID: id, Username: username}, nil
}

func newGatewayRouter(t *testing.T) (*gin.Engine, *TokenService) {
	t.Helper()
	gin.SetMode(gin.TestMode)
	tokens, err := NewTokenService(testKey, time.Hour)
	require.NoError(t, err)
	gw := NewGateway(tokens, fakeUsers{"alice": 1, "bob": 2}, DefaultExemptions("/api"), nil)

	r := gin.New()
	r.Use(gw.Middleware())
	whoami := func(c *gin.Context) {
		id, ok := Current(c)
		ctxID, ctxOK := FromContext(c.Request.Context())
		c.JSON(http.StatusOK, gin.H{"ok": ok, "user": id.Username, "ctx_ok": ctxOK, "ctx_user": ctxID.Username})
	}
	r.GET("/api/auth/whoami", whoami)
	r.GET("/api/open", whoami)
	protected := r.Group("/api", RequireIdentity())
	protected.GET("/secure", whoami)
	return r, tokens
}

func get(r http.Handler, path, authHeader string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, path, nil)
	if authHeader != "" {
		req.Header.Set("Authorization", authHeader)
	}
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	return rec
}

func TestGatewayAttachesIdentity(t *testing.T) {
	r, tokens := newGatewayRouter(t)
	tok, err := tokens.Issue("alice")
	require.NoError(t, err)

	rec := get(r, "/api/secure", "Bearer "+tok)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"ok":true,"user":"alice","ctx_ok":true,"ctx_user":"alice"}`, rec.Body.String())
}

func TestGatewayAnonymousRequests(t *testing.T) {
	r, tokens := newGatewayRouter(t)
	tok, err := tokens.Issue("alice")
	require.NoError(t, err)
	ghost, err := tokens.Issue("ghost")
	require.NoError(t, err)

	cases := map[string]string{
		"missing header":  "",
		"wrong scheme":    "Basic " + tok,
		"no token":        "Bearer ",
		"garbage":         "Bearer not-a-jwt",
		"unknown subject": "Bearer " + ghost,
	}
	for name, header := range cases {
		t.Run(name, func(t *testing.T) {
			rec := get(r, "/api/secure", header)
			assert.Equal(t, http.StatusUnauthorized, rec.Code)

			rec = get(r, "/api/open", header)
			require.Equal(t, http.StatusOK, rec.Code)
			assert.JSONEq(t, `{"ok":false,"user":"","ctx_ok":false,"ctx_user":""}`, rec.Body.String())
		})
	}
}

func TestGatewaySkipsExemptPaths(t *testing.T) {
	r, tokens := newGatewayRouter(t)
	tok, err := tokens.Issue("alice")
	require.NoError(t, err)

	rec := get(r, "/api/auth/whoami", "Bearer "+tok)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"ok":false,"user":"","ctx_ok":false,"ctx_user":""}`, rec.Body.String())
}

func TestGatewayIsolatesConcurrentRequests(t *testing.T) {
	r, tokens := newGatewayRouter(t)
	aliceTok, err := tokens.Issue("alice")
	require.NoError(t, err)
	bobTok, err := tokens.Issue("bob")
	require.NoError(t, err)

	var wg sync.WaitGroup
	errs := make(chan string, 150)
	for i := 0; i < 50; i++ {
		for _, tc := range []struct{ tok, want string }{{aliceTok, "alice"}, {bobTok, "bob"}, {"", ""}} {
			wg.Add(1)
			go func(tok, want string) {
				defer wg.Done()
				header := ""
				if tok != "" {
					header = "Bearer " + tok
				}
				rec := get(r, "/api/open", header)
				if rec.Code != http.StatusOK || rec.Body.String() != expectedBody(want) {
					errs <- rec.Body.String()
				}
			}(tc.tok, tc.want)
		}
	}
	wg.Wait()
	close(errs)
	for e := range errs {
		t.Errorf("identity leaked across requests: %s", e)
	}
}

func expectedBody(user string) string {
	if user == "" {
		return `{"ctx_ok":false,"ctx_user":"","ok":false,"user":""}`
	}
	return `{"ctx_ok":true,"ctx_user":"` + user + `","ok":true,"user":"` + user + `"}`
}

func TestBearerToken(t *testing.T) {
	tok, ok := BearerToken("Bearer abc")
	assert.True(t, ok)
	assert.Equal(t, "abc", tok)
	for _, h := range []string{"", "Bearer", "bearer abc", "Token abc"} {
		_, ok := BearerToken(h)
		assert.False(t, ok, h)
	}
}

func TestDefaultExemptions(t *testing.T) {
	ex := DefaultExemptions("/api/")
	for _, p := range []string{"/", "/health", "/api/auth/login", "/api/public/ping", "/swagger-ui/index.html", "/v3/api-docs"} {
		assert.True(t, ex.match(p), p)
	}
	for _, p := range []string{"/api/transactions", "/api/files/upload", "/api/auth"} {
		assert.False(t, ex.match(p), p)
	}
}
