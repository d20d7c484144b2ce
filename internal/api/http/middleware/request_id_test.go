package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newRequestIDRouter() (*gin.Engine, *string) {
	gin.SetMode(gin.TestMode)

	var seen string
	router := gin.New()
	router.Use(RequestID(zap.NewNop()))
	router.GET("/ping", func(c *gin.Context) {
		seen = GetRequestID(c.Request.Context())
		c.Status(http.StatusOK)
	})
	return router, &seen
}

func TestRequestIDGenerated(t *testing.T) {
	router, seen := newRequestIDRouter()

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/ping", nil))

	rid := w.Header().Get("X-Request-Id")
	require.NotEmpty(t, rid)
	_, err := uuid.Parse(rid)
	assert.NoError(t, err, "generated id should be a uuid")
	assert.Equal(t, rid, *seen, "handler context carries the same id")
}

func TestRequestIDPropagated(t *testing.T) {
	router, seen := newRequestIDRouter()

	req := httptest.NewRequest(http.MethodGet, "/ping", nil)
	req.Header.Set("X-Request-Id", "client-supplied-id")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, "client-supplied-id", w.Header().Get("X-Request-Id"))
	assert.Equal(t, "client-supplied-id", *seen)
}

func TestGetRequestIDMissing(t *testing.T) {
	assert.Empty(t, GetRequestID(httptest.NewRequest(http.MethodGet, "/", nil).Context()))
}
