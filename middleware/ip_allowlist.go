package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// AdminIPAllowlist restricts a route group to a fixed set of client IPs.
// An empty allow-list denies everyone rather than failing open.
func AdminIPAllowlist(allowedIPs []string) gin.HandlerFunc {
	allowed := make([]string, 0, len(allowedIPs))
	for _, ip := range allowedIPs {
		if trimmed := strings.TrimSpace(ip); trimmed != "" {
			allowed = append(allowed, trimmed)
		}
	}

	return func(c *gin.Context) {
		logger := zap.L()
		clientIP := normalizeLocalhost(GetClientIP(c))

		if !ipAllowed(clientIP, allowed) {
			logger.Warn("unauthorized admin access attempt", zap.String("ip", clientIP))
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "Access denied: IP not authorized"})
			return
		}
		c.Next()
	}
}

func ipAllowed(clientIP string, allowed []string) bool {
	for _, ip := range allowed {
		if ip == clientIP {
			return true
		}
		if ip == "localhost" && clientIP == "127.0.0.1" {
			return true
		}
	}
	return false
}

// normalizeLocalhost folds IPv6 loopback onto the IPv4 form so one allow-list
// entry covers local development.
func normalizeLocalhost(ip string) string {
	if ip == "::1" || ip == "" {
		return "127.0.0.1"
	}
	return ip
}
