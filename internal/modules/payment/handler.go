package payment

import (
	"net/http"

	"turnosya/internal/modules/booking"
	"turnosya/internal/pkg/response"

	"github.com/gin-gonic/gin"
)

type Handler struct {
	processor WebhookProcessor
}

func NewHandler(processor WebhookProcessor) *Handler {
	return &Handler{processor: processor}
}

func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("/payments/webhook", h.Webhook)
}

// Webhook ingests gateway events. The gateway retries on non-2xx, so this
// endpoint acknowledges every delivery it can read at all; a payload that
// does not even parse decodes to zero values and is recorded as-is.
func (h *Handler) Webhook(c *gin.Context) {
	var payload booking.WebhookPayload
	_ = c.ShouldBindJSON(&payload)

	h.processor.ProcessPaymentWebhook(payload)
	response.Success(c, http.StatusOK, gin.H{"received": true})
}
