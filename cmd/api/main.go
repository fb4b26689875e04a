package main

import (
	"forneiro_pix/internal/adapter/http/routes"

	_ "github.com/joho/godotenv/autoload"
)

// @title           Forneiro PIX API
// @version         1.0
// @description     PIX payment backend for the Forneiro storefront: charge creation, status fan-out, provider webhooks and print forwarding.

// @host localhost:8080

// @BasePath  /

func main() {
	routes.Run()
}
