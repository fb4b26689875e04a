package handlers

import (
	"forneiro_pix/internal/infrastructure/realtime"

	"github.com/gin-gonic/gin"
)

// WSHandler hands connections to the charge broadcaster. Clients receive every
// payment_update event and filter by charge or order id themselves.
type WSHandler struct {
	broadcaster *realtime.ChargeBroadcaster
}

func NewWSHandler(b *realtime.ChargeBroadcaster) *WSHandler {
	return &WSHandler{broadcaster: b}
}

func (h *WSHandler) Connect(c *gin.Context) {
	// Subscribe logs its own failures; the upgrade already wrote the response.
	_ = h.broadcaster.Subscribe(c.Writer, c.Request)
}
