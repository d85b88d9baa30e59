package http

import (
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	generationHTTP "github.com/ngoinfo/copilot-gateway/internal/generation/http"
	healthHTTP "github.com/ngoinfo/copilot-gateway/internal/health/http"
	"github.com/ngoinfo/copilot-gateway/internal/httputil"
)

func TestPrincipalMiddleware(t *testing.T) {
	gin.SetMode(gin.TestMode)

	t.Run("Success_HeadersSetPrincipal", func(t *testing.T) {
		router := gin.New()
		router.Use(PrincipalMiddleware())
		router.GET("/", func(c *gin.Context) {
			principal, ok := httputil.PrincipalFromContext(c)
			require.True(t, ok)
			assert.Equal(t, "42", principal.ID)
			assert.Equal(t, "user@example.org", principal.Email)
			c.Status(http.StatusOK)
		})

		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set(HeaderPrincipalID, "42")
		req.Header.Set(HeaderPrincipalEmail, "user@example.org")
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("Success_NoHeadersStaysAnonymous", func(t *testing.T) {
		router := gin.New()
		router.Use(PrincipalMiddleware())
		router.GET("/", func(c *gin.Context) {
			_, ok := httputil.PrincipalFromContext(c)
			assert.False(t, ok)
			c.Status(http.StatusOK)
		})

		w := httptest.NewRecorder()
		router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))

		assert.Equal(t, http.StatusOK, w.Code)
	})
}

func TestRateLimitMiddleware(t *testing.T) {
	gin.SetMode(gin.TestMode)

	t.Run("Success_BurstThenLimited", func(t *testing.T) {
		router := gin.New()
		router.Use(PrincipalMiddleware())
		router.Use(RateLimitMiddleware(1, 2, slog.Default()))
		router.GET("/", func(c *gin.Context) { c.Status(http.StatusOK) })

		codes := make([]int, 0, 3)
		for i := 0; i < 3; i++ {
			w := httptest.NewRecorder()
			req := httptest.NewRequest(http.MethodGet, "/", nil)
			req.Header.Set(HeaderPrincipalID, "42")
			router.ServeHTTP(w, req)
			codes = append(codes, w.Code)
		}

		assert.Equal(t, http.StatusOK, codes[0])
		assert.Equal(t, http.StatusOK, codes[1])
		assert.Equal(t, http.StatusTooManyRequests, codes[2])
	})

	t.Run("Success_CallersAreIndependent", func(t *testing.T) {
		router := gin.New()
		router.Use(PrincipalMiddleware())
		router.Use(RateLimitMiddleware(1, 1, slog.Default()))
		router.GET("/", func(c *gin.Context) { c.Status(http.StatusOK) })

		first := httptest.NewRecorder()
		reqA := httptest.NewRequest(http.MethodGet, "/", nil)
		reqA.Header.Set(HeaderPrincipalID, "a")
		router.ServeHTTP(first, reqA)

		second := httptest.NewRecorder()
		reqB := httptest.NewRequest(http.MethodGet, "/", nil)
		reqB.Header.Set(HeaderPrincipalID, "b")
		router.ServeHTTP(second, reqB)

		assert.Equal(t, http.StatusOK, first.Code)
		assert.Equal(t, http.StatusOK, second.Code)
	})
}

func TestParseOrigins(t *testing.T) {
	assert.Nil(t, parseOrigins(""))
	assert.Equal(t, []string{"https://a.org", "https://b.org"}, parseOrigins(" https://a.org , https://b.org "))
}

func TestServer_Healthz(t *testing.T) {
	gin.SetMode(gin.TestMode)
	logger := slog.Default()

	server := NewServer(
		"127.0.0.1",
		0,
		RouterConfig{},
		generationHTTP.NewGenerationHandler(nil, logger),
		healthHTTP.NewStatusHandler(nil, logger),
		logger,
	)

	w := httptest.NewRecorder()
	server.GetHandler().ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/healthz", nil))

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "healthy")
}
