package http

import (
	"errors"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/antonin-suzor/kanaschool/internal/contact"
)

// ContactController forwards contact form messages to the configured
// webhook.
type ContactController struct {
	notifier *contact.Notifier
}

// NewContactController creates a new ContactController.
func NewContactController(notifier *contact.Notifier) *ContactController {
	return &ContactController{notifier: notifier}
}

type contactRequest struct {
	Message string `json:"message"`
}

// Message delivers one contact form message. Delivery is synchronous;
// any failure surfaces to the caller.
func (cc *ContactController) Message(c *gin.Context) {
	var req contactRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, "invalid request body")
		return
	}
	if strings.TrimSpace(req.Message) == "" {
		respondBadRequest(c, "message is required")
		return
	}

	if err := cc.notifier.Send(c.Request.Context(), req.Message); err != nil {
		if errors.Is(err, contact.ErrNotConfigured) {
			respondInternalError(c, err, "contact message", "server configuration error")
			return
		}
		respondInternalError(c, err, "contact message", "failed to send message")
		return
	}

	respondSuccess(c)
}
