// File: handlers/projects.go
package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// ListProjects handles GET /api/projects.
func (h *Handler) ListProjects(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"success":  true,
		"count":    len(h.Projects),
		"projects": h.Projects,
	})
}
