package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

// HealthHandler reports process liveness plus whether the payment provider is
// configured, mirroring what the storefront's deploy checks expect.
type HealthHandler struct {
	startedAt        time.Time
	providerReady    bool
	devMode          bool
	printSinkEnabled bool
}

func NewHealthHandler(providerReady, devMode, printSinkEnabled bool) *HealthHandler {
	return &HealthHandler{
		startedAt:        time.Now(),
		providerReady:    providerReady,
		devMode:          devMode,
		printSinkEnabled: printSinkEnabled,
	}
}

// Healthz is the health check endpoint.
//
// @Summary      Health check
// @Produce      json
// @Success      200 {object} map[string]interface{}
// @Router       /healthz [get]
func (h *HealthHandler) Healthz(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":        "healthy",
		"timestamp":     time.Now().UTC().Format(time.RFC3339),
		"uptimeSeconds": int(time.Since(h.startedAt).Seconds()),
		"mercadoPago": gin.H{
			"configured": h.providerReady,
			"devMode":    h.devMode,
		},
		"printSink": gin.H{"configured": h.printSinkEnabled},
	})
}
