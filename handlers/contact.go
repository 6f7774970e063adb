// File: handlers/contact.go
package handlers

import (
	"net/http"
	"net/mail"
	"strings"

	"github.com/gin-gonic/gin"

	"portfolio/models"
	"portfolio/utils"
)

// SubmitContactMessage handles POST /api/contact. The message is relayed to
// the owner's inbox; nothing is persisted.
func (h *Handler) SubmitContactMessage(c *gin.Context) {
	var msg models.ContactMessage
	if err := c.ShouldBindJSON(&msg); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "Invalid request body", err.Error())
		return
	}

	if strings.TrimSpace(msg.Name) == "" || strings.TrimSpace(msg.Message) == "" {
		utils.JSONError(c, http.StatusBadRequest, "Missing required fields", "name and message are required")
		return
	}
	if _, err := mail.ParseAddress(msg.Email); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "Invalid email", "a valid reply address is required")
		return
	}

	if err := h.Emails.SendContactMessage(msg); err != nil {
		utils.JSONError(c, http.StatusInternalServerError, "Failed to send message", "could not deliver your message, try again later")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Message sent",
	})
}
