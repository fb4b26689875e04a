package routes

import (
	"context"
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	_ "forneiro_pix/docs" // swag-generated swagger registration
	"forneiro_pix/internal/adapter/http/handlers"
	repository2 "forneiro_pix/internal/adapter/persistence/repository"
	"forneiro_pix/internal/infrastructure/cache"
	"forneiro_pix/internal/infrastructure/database"
	"forneiro_pix/internal/infrastructure/payments"
	"forneiro_pix/internal/infrastructure/printing"
	"forneiro_pix/internal/infrastructure/realtime"
	"forneiro_pix/internal/usecase"
	"forneiro_pix/internal/usecase/interfaces"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

var router = gin.Default()

// Run wires every component and starts the server.
func Run() {
	setMiddlewares()

	// Swagger documentation endpoint
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	getRoutes()

	port := getenvDefault("PORT", "8080")
	if err := router.Run(":" + port); err != nil {
		log.Fatalf("Failed to startup the application: %v", err.Error())
	}
}

func getRoutes() {
	accessToken := strings.TrimSpace(os.Getenv("MERCADOPAGO_ACCESS_TOKEN"))
	devMode := accessToken == "" || strings.HasPrefix(accessToken, "TEST-")

	var gateway interfaces.IPaymentGateway
	if devMode {
		log.Printf("[pix][routes] development credential; charges will be simulated locally")
	} else {
		mpGateway, err := payments.NewMercadoPagoGateway(accessToken)
		if err != nil {
			log.Fatalf("Mercado Pago gateway not configured: %v", err)
		}
		// Fail fast on a bad credential instead of running with silently
		// broken payments.
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := mpGateway.ValidateCredential(ctx); err != nil {
			log.Fatalf("Mercado Pago credential validation failed: %v", err)
		}
		gateway = mpGateway
	}

	repo := buildChargeRepository()
	broadcaster := realtime.NewChargeBroadcaster(allowedOrigins())
	statusCache := cache.NewStatusCache(os.Getenv("REDIS_ADDR"))
	printClient := printing.NewPrintClient(os.Getenv("PRINT_WEBHOOK_URL"))

	var printForwarder interfaces.IPrintForwarder
	if printClient.Configured() {
		printForwarder = printClient
	}

	pixUseCase := usecase.NewPixChargeUseCase(repo, gateway, broadcaster, statusCache, usecase.PixChargeOptions{
		DevMode:          devMode,
		AutoApproveDelay: autoApproveDelay(),
		LocalFallback:    boolEnv("PIX_LOCAL_FALLBACK"),
	})
	webhookUseCase := usecase.NewWebhookUseCase(repo, gateway, broadcaster, printForwarder)

	pixHandler := handlers.NewPixChargeHandler(pixUseCase)
	webhookHandler := handlers.NewWebhookHandler(webhookUseCase, os.Getenv("WEBHOOK_SECRET"))
	printHandler := handlers.NewPrintHandler(printClient)
	wsHandler := handlers.NewWSHandler(broadcaster)
	healthHandler := handlers.NewHealthHandler(gateway != nil, devMode, printClient.Configured())

	addPaymentRoutes(router, pixHandler, webhookHandler, printHandler, wsHandler, healthHandler)
}

func setMiddlewares() {
	router.Use(gin.Logger())
	router.Use(gin.Recovery())
	router.Use(gin.CustomRecovery(func(c *gin.Context, recovered interface{}) {
		log.Printf("Recovered from panic: %v", recovered)
		c.AbortWithStatus(500)
	}))
	router.Use(corsMiddleware())
}

// corsMiddleware builds the allow-list from FRONTEND_ORIGIN. Without it the
// server stays permissive, which is only acceptable for local development;
// production deployments must set the variable.
func corsMiddleware() gin.HandlerFunc {
	cfg := cors.Config{
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Content-Type", "Authorization", "Accept", "X-Idempotency-Key"},
		ExposeHeaders:    []string{"Content-Length", "X-Request-Id"},
		AllowCredentials: true,
		MaxAge:           24 * time.Hour,
	}
	origins := allowedOrigins()
	if len(origins) == 0 {
		log.Printf("[pix][routes] FRONTEND_ORIGIN not set; allowing all origins (dev only)")
		cfg.AllowCredentials = false
		cfg.AllowAllOrigins = true
	} else {
		cfg.AllowOrigins = origins
	}
	return cors.New(cfg)
}

func buildChargeRepository() interfaces.IChargeRepository {
	if getenvDefault("CHARGE_STORE", "file") == "dynamodb" {
		log.Printf("[pix][routes] using dynamodb charge store")
		return repository2.NewChargeDynamoRepository(database.ConnectDynamoDB())
	}
	return repository2.NewChargeFileRepository(os.Getenv("CHARGES_FILE"))
}

func allowedOrigins() []string {
	raw := os.Getenv("FRONTEND_ORIGIN")
	if raw == "" {
		return nil
	}
	var origins []string
	for _, o := range strings.Split(raw, ",") {
		if t := strings.TrimSpace(o); t != "" {
			origins = append(origins, t)
		}
	}
	return origins
}

func autoApproveDelay() time.Duration {
	raw := os.Getenv("DEV_AUTO_APPROVE_MS")
	if raw == "" {
		return 0
	}
	ms, err := strconv.Atoi(raw)
	if err != nil || ms <= 0 {
		log.Printf("[pix][routes] invalid DEV_AUTO_APPROVE_MS=%q, ignoring", raw)
		return 0
	}
	return time.Duration(ms) * time.Millisecond
}

func boolEnv(key string) bool {
	switch strings.ToLower(strings.TrimSpace(os.Getenv(key))) {
	case "1", "true", "yes", "on":
		return true
	}
	return false
}

func getenvDefault(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}
