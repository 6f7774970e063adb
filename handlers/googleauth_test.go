package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"portfolio/config"
)

func googleAuthRouter(h *Handler) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.GET("/api/auth/google", h.StartGoogleAuth)
	r.GET("/api/auth/google/callback", h.GoogleAuthCallback)
	r.GET("/api/admin/check-google-auth", h.CheckGoogleAuth)
	return r
}

func TestGoogleAuthFlow(t *testing.T) {
	saved := config.AppConfig
	defer func() { config.AppConfig = saved }()

	config.AppConfig.GoogleClientID = "client-id"
	config.AppConfig.GoogleClientSecret = "client-secret"
	config.AppConfig.GoogleRefreshToken = "refresh-token"
	config.AppConfig.GoogleRedirectURI = "http://localhost:8080/api/auth/google/callback"

	h := &Handler{Logger: zap.NewNop()}
	r := googleAuthRouter(h)

	t.Run("consent redirect requests offline access", func(t *testing.T) {
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/api/auth/google", nil)
		r.ServeHTTP(w, req)

		require.Equal(t, http.StatusTemporaryRedirect, w.Code)
		loc := w.Header().Get("Location")
		assert.Contains(t, loc, "accounts.google.com")
		assert.Contains(t, loc, "client_id=client-id")
		assert.Contains(t, loc, "access_type=offline")
		assert.Contains(t, loc, "prompt=consent")
	})

	t.Run("callback without a code is a 400", func(t *testing.T) {
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/api/auth/google/callback", nil)
		r.ServeHTTP(w, req)
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("check reports a configured integration", func(t *testing.T) {
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/api/admin/check-google-auth", nil)
		r.ServeHTTP(w, req)

		require.Equal(t, http.StatusOK, w.Code)
		var body struct {
			IsConfigured bool `json:"isConfigured"`
		}
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
		assert.True(t, body.IsConfigured)
	})

	t.Run("check flags a missing refresh token", func(t *testing.T) {
		config.AppConfig.GoogleRefreshToken = ""
		defer func() { config.AppConfig.GoogleRefreshToken = "refresh-token" }()

		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/api/admin/check-google-auth", nil)
		r.ServeHTTP(w, req)

		require.Equal(t, http.StatusOK, w.Code)
		var body struct {
			IsConfigured bool `json:"isConfigured"`
		}
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
		assert.False(t, body.IsConfigured)
	})
}
