// File: handlers/googleauth.go
package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"

	"portfolio/config"
	"portfolio/utils"
)

func googleOAuthConfig() *oauth2.Config {
	return &oauth2.Config{
		ClientID:     config.AppConfig.GoogleClientID,
		ClientSecret: config.AppConfig.GoogleClientSecret,
		RedirectURL:  config.AppConfig.GoogleRedirectURI,
		Scopes: []string{
			"https://www.googleapis.com/auth/calendar",
			"https://www.googleapis.com/auth/calendar.events",
		},
		Endpoint: google.Endpoint,
	}
}

// StartGoogleAuth handles GET /api/auth/google. It sends the admin to the
// Google consent screen; offline access with a forced consent prompt is what
// makes Google hand back a refresh token.
func (h *Handler) StartGoogleAuth(c *gin.Context) {
	authURL := googleOAuthConfig().AuthCodeURL("",
		oauth2.AccessTypeOffline,
		oauth2.SetAuthURLParam("prompt", "consent"),
		oauth2.SetAuthURLParam("include_granted_scopes", "true"),
	)
	c.Redirect(http.StatusTemporaryRedirect, authURL)
}

// GoogleAuthCallback handles GET /api/auth/google/callback. The refresh token
// is returned once for the operator to store as GOOGLE_REFRESH_TOKEN; nothing
// is persisted server-side.
func (h *Handler) GoogleAuthCallback(c *gin.Context) {
	code := c.Query("code")
	if code == "" {
		utils.JSONError(c, http.StatusBadRequest, "No authorization code received", "")
		return
	}

	token, err := googleOAuthConfig().Exchange(c.Request.Context(), code)
	if err != nil {
		h.Logger.Error("google oauth code exchange failed", zap.Error(err))
		utils.JSONError(c, http.StatusInternalServerError, "Failed to exchange authorization code", err.Error())
		return
	}

	refresh := token.RefreshToken
	if refresh == "" {
		// Google only issues a refresh token on the first consent; the
		// operator has to revoke access and run the flow again.
		utils.JSONError(c, http.StatusBadRequest, "No refresh token received",
			"revoke access at https://myaccount.google.com/permissions and retry")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":      true,
		"message":      "Store the refresh token as GOOGLE_REFRESH_TOKEN and restart the server",
		"refreshToken": refresh,
		"accessExpiry": token.Expiry,
	})
}

// CheckGoogleAuth handles GET /api/admin/check-google-auth. It reports
// whether the calendar integration has everything it needs without revealing
// any credential values.
func (h *Handler) CheckGoogleAuth(c *gin.Context) {
	cfg := config.AppConfig
	hasCredentials := cfg.GoogleClientID != "" && cfg.GoogleClientSecret != ""
	hasRefreshToken := cfg.GoogleRefreshToken != ""

	c.JSON(http.StatusOK, gin.H{
		"isConfigured": hasCredentials && hasRefreshToken,
		"details": gin.H{
			"hasClientCredentials": hasCredentials,
			"hasRefreshToken":      hasRefreshToken,
		},
	})
}
