package web

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/hybridzdynamics/portfolio/internal/analytics"
	"github.com/hybridzdynamics/portfolio/internal/contact"
)

// submitContact handles the page's form. HTMX gets the form fragment back
// (always 200 so it swaps); a plain post gets the whole page.
func (h *handlers) submitContact(c *gin.Context) {
	var msg contact.Message
	if err := c.ShouldBind(&msg); err != nil {
		h.log.Debug("binding contact form", "error", err)
	}

	form := contact.NewForm(h.sender, msg)
	note, err := form.Submit(c.Request.Context())
	h.recordOutcome(c, err)

	view := ContactView{Action: "/contact", HTMX: true, Fields: form.Fields(), Notification: &note}
	if c.GetHeader("HX-Request") == "true" {
		c.HTML(http.StatusOK, "contact_form.html", view)
		return
	}
	c.HTML(statusFor(err), "index.html", h.page(view))
}

// apiContact is the JSON flavor of the same flow.
func (h *handlers) apiContact(c *gin.Context) {
	var msg contact.Message
	if err := c.ShouldBindJSON(&msg); err != nil {
		respondError(c, http.StatusBadRequest, "invalid request body")
		return
	}

	note, err := contact.NewForm(h.sender, msg).Submit(c.Request.Context())
	h.recordOutcome(c, err)

	if err != nil {
		c.JSON(statusFor(err), gin.H{"error": note.Description, "notification": note})
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true, "notification": note})
}

func statusFor(err error) int {
	switch {
	case err == nil:
		return http.StatusOK
	case errors.Is(err, contact.ErrInvalid):
		return http.StatusUnprocessableEntity
	default:
		return http.StatusBadGateway
	}
}

// recordOutcome logs and counts what happened. Message content is never logged.
func (h *handlers) recordOutcome(c *gin.Context, err error) {
	requestID := c.GetString(requestIDKey)

	var outcome analytics.Outcome
	switch {
	case err == nil:
		outcome = analytics.OutcomeSent
		h.log.Info("contact message forwarded", "request_id", requestID)
	case errors.Is(err, contact.ErrInvalid):
		h.log.Debug("contact message rejected", "request_id", requestID, "error", err)
		return
	default:
		outcome = analytics.OutcomeFailed
		h.log.Warn("contact message failed", "request_id", requestID, "error", err)
	}

	if h.stats == nil {
		return
	}
	// The request context may already be cancelled by a slow endpoint.
	if err := h.stats.RecordContact(context.WithoutCancel(c.Request.Context()), outcome); err != nil {
		h.log.Warn("recording contact outcome failed", "error", err)
	}
}
