package routes

import (
	"forneiro_pix/internal/adapter/http/handlers"

	"github.com/gin-gonic/gin"
)

const (
	PathAPI             = "/api"
	PathStatusPagamento = "/status-pagamento"
)

func addPaymentRoutes(r *gin.Engine, pix *handlers.PixChargeHandler, webhook *handlers.WebhookHandler, print *handlers.PrintHandler, ws *handlers.WSHandler, health *handlers.HealthHandler) {
	api := r.Group(PathAPI)
	{
		api.POST("/generate-pix", pix.GeneratePix)
		api.GET("/check-payment/:id", pix.CheckPayment)
		api.POST("/webhook", webhook.Receive)

		api.POST("/print", print.Forward)
		api.POST("/print-order", print.Forward)
		api.POST("/print-test", print.Test)
		api.POST("/print-echo", print.Echo)
	}

	r.GET(PathStatusPagamento+"/:id", pix.StatusPagamento)
	r.GET("/ws", ws.Connect)
	r.GET("/healthz", health.Healthz)
}
