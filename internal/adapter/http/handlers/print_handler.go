package handlers

import (
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"time"

	"forneiro_pix/internal/infrastructure/printing"
	"forneiro_pix/pkg"

	"github.com/gin-gonic/gin"
)

// PrintHandler exposes passthrough endpoints to the external print webhook,
// used by the storefront admin tooling to print orders and test the sink.
type PrintHandler struct {
	client *printing.PrintClient
}

func NewPrintHandler(client *printing.PrintClient) *PrintHandler {
	return &PrintHandler{client: client}
}

// Forward relays the request body to the configured print sink and mirrors the
// upstream response. Registered for /api/print and /api/print-order.
//
// @Summary      Forward an order to the print sink
// @Accept       json
// @Produce      json
// @Success      200 {string} string "upstream response"
// @Failure      502 {object} pkg.HTTPError
// @Router       /api/print [post]
func (h *PrintHandler) Forward(c *gin.Context) {
	raw, err := c.GetRawData()
	if err != nil {
		appErr := pkg.NewDomainErrorSimple("INVALID_REQUEST", "Invalid request body", http.StatusBadRequest)
		c.JSON(appErr.HTTPStatus, appErr.ToHTTPError())
		return
	}
	h.relay(c, raw)
}

// Test sends a canned payload so the sink can be verified without a real order.
//
// @Summary      Send a test payload to the print sink
// @Produce      json
// @Success      200 {string} string "upstream response"
// @Failure      502 {object} pkg.HTTPError
// @Router       /api/print-test [post]
func (h *PrintHandler) Test(c *gin.Context) {
	payload, _ := json.Marshal(gin.H{
		"test":      true,
		"message":   "Impressao de teste",
		"timestamp": time.Now().UTC().Format(time.RFC3339),
	})
	h.relay(c, payload)
}

// Echo returns the received body unchanged, for debugging payload shapes
// without touching the sink.
//
// @Summary      Echo the request body
// @Accept       json
// @Produce      json
// @Success      200 {string} string "the request body"
// @Router       /api/print-echo [post]
func (h *PrintHandler) Echo(c *gin.Context) {
	raw, err := c.GetRawData()
	if err != nil {
		appErr := pkg.NewDomainErrorSimple("INVALID_REQUEST", "Invalid request body", http.StatusBadRequest)
		c.JSON(appErr.HTTPStatus, appErr.ToHTTPError())
		return
	}
	c.Data(http.StatusOK, "application/json", raw)
}

func (h *PrintHandler) relay(c *gin.Context, payload []byte) {
	if !h.client.Configured() {
		appErr := pkg.NewDomainErrorSimple("PRINT_SINK_NOT_CONFIGURED", "No print webhook URL configured", http.StatusBadGateway)
		c.JSON(appErr.HTTPStatus, appErr.ToHTTPError())
		return
	}

	status, body, err := h.client.Send(c.Request.Context(), payload)
	if err != nil {
		log.Printf("[pix][print] sink unreachable err=%v", err)
		appErr := pkg.NewDomainError("PRINT_SINK_UNREACHABLE", "Print sink unreachable", fmt.Errorf("upstream request failed: %w", err), http.StatusBadGateway)
		c.JSON(appErr.HTTPStatus, appErr.ToHTTPError())
		return
	}
	c.Data(status, "application/json", body)
}
