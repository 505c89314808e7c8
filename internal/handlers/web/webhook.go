package web

import (
	"net/http"

	"github.com/KirkDiggler/reservas/internal/services/messaging"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// Webhook handles POST /webhook from Twilio. The message is queued and
// acknowledged right away; the reply goes out through the Messages API.
func (h *Handler) Webhook(c *gin.Context) {
	from := c.PostForm("From")
	body := c.PostForm("Body")

	if from == "" {
		c.String(http.StatusBadRequest, "missing From")
		return
	}

	output, err := h.messaging.Enqueue(c.Request.Context(), &messaging.EnqueueInput{
		Channel:  messaging.ChannelWhatsApp,
		SenderID: from,
		Text:     body,
	})
	if err != nil {
		h.logger.Error("Webhook: failed to queue message", zap.String("sender", from), zap.Error(err))
	} else {
		h.logger.Debug("Webhook: message queued",
			zap.String("message_id", output.MessageID),
			zap.String("sender", from),
		)
	}

	c.String(http.StatusOK, "OK")
}
