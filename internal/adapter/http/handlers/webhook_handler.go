package handlers

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"log"
	"net/http"
	"strings"

	"forneiro_pix/internal/usecase"
	"forneiro_pix/pkg"

	"github.com/gin-gonic/gin"
)

// signatureHeaders lists the header names the provider (and older proxy
// setups) have historically used for the webhook HMAC.
var signatureHeaders = []string{
	"X-Hub-Signature-256",
	"X-Hub-Signature",
	"X-Signature",
	"X-Webhook-Signature",
}

// WebhookHandler authenticates provider notifications and hands the raw body
// to the webhook usecase. Once a request is authenticated the provider always
// gets a 200, no matter what happens downstream; anything else makes it retry
// indefinitely.
type WebhookHandler struct {
	usecase usecase.IWebhookUseCase
	secret  string
}

func NewWebhookHandler(uc usecase.IWebhookUseCase, secret string) *WebhookHandler {
	return &WebhookHandler{usecase: uc, secret: secret}
}

// Receive is the provider push endpoint.
//
// @Summary      Provider webhook
// @Accept       json
// @Produce      plain
// @Success      200 {string} string "ok"
// @Failure      401 {object} pkg.HTTPError
// @Router       /api/webhook [post]
func (h *WebhookHandler) Receive(c *gin.Context) {
	raw, err := c.GetRawData()
	if err != nil {
		log.Printf("[pix][webhook] body read failed err=%v", err)
		appErr := pkg.NewDomainErrorSimple("INVALID_REQUEST", "Invalid request body", http.StatusBadRequest)
		c.JSON(appErr.HTTPStatus, appErr.ToHTTPError())
		return
	}

	if h.secret != "" {
		sig := firstSignature(c.Request.Header)
		if sig == "" {
			log.Printf("[pix][webhook] missing signature remote=%s", c.ClientIP())
			appErr := pkg.NewDomainErrorSimple("MISSING_SIGNATURE", "Webhook signature required", http.StatusUnauthorized)
			c.JSON(appErr.HTTPStatus, appErr.ToHTTPError())
			return
		}
		if !verifySignature(h.secret, raw, sig) {
			log.Printf("[pix][webhook] signature mismatch remote=%s", c.ClientIP())
			appErr := pkg.NewDomainErrorSimple("INVALID_SIGNATURE", "Webhook signature mismatch", http.StatusUnauthorized)
			c.JSON(appErr.HTTPStatus, appErr.ToHTTPError())
			return
		}
	}

	// Errors past authentication are logged inside; the provider sees 200.
	_ = h.usecase.ProcessNotification(c.Request.Context(), raw)
	c.String(http.StatusOK, "ok")
}

func firstSignature(header http.Header) string {
	for _, name := range signatureHeaders {
		if v := strings.TrimSpace(header.Get(name)); v != "" {
			return v
		}
	}
	return ""
}

// verifySignature checks an HMAC-SHA256 hex digest over the exact raw body.
// The optional "sha256=" prefix follows the X-Hub-Signature-256 convention.
func verifySignature(secret string, body []byte, signature string) bool {
	signature = strings.TrimPrefix(strings.TrimSpace(signature), "sha256=")
	expected, err := hex.DecodeString(signature)
	if err != nil {
		return false
	}

	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write(body)
	return hmac.Equal(mac.Sum(nil), expected)
}
