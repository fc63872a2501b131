package main

import (
	"log"
	"os"

	"image-steganography-backend/handlers"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

func main() {
	router := gin.Default()

	config := cors.DefaultConfig()
	config.AllowOrigins = []string{"http://localhost:3000"}
	config.AllowMethods = []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"}
	config.AllowHeaders = []string{"Origin", "Content-Type", "Accept", "Authorization", "X-Requested-With"}
	config.ExposeHeaders = []string{"Content-Disposition"}
	config.AllowCredentials = true
	router.Use(cors.New(config))

	stegoHandler := handlers.NewStegoHandler()

	// API Routes
	api := router.Group("/api/v1")
	{
		api.GET("/health", stegoHandler.HealthCheck)

		stego := api.Group("/stego")
		{
			stego.POST("/encode", stegoHandler.EncodeImages)
			stego.POST("/decode", stegoHandler.DecodeImages)
		}
	}

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}

	log.Printf("Server starting on port %s", port)
	log.Printf("API endpoints:")
	log.Printf("  POST /api/v1/stego/encode  - Hide encrypted text/images in carrier images (returns PNGs)")
	log.Printf("  POST /api/v1/stego/decode  - Recover hidden payloads from carrier images")
	log.Printf("  GET  /api/v1/health        - Health check")
	log.Printf("")
	log.Printf("Features:")
	log.Printf("  • LSB steganography on R/G/B channels (alpha untouched)")
	log.Printf("  • AES-256-GCM payload encryption with per-carrier keys")
	log.Printf("  • Up to %d carriers per batch, processed independently", handlers.MaxCarriers)
	log.Printf("  • PSNR quality assessment per encoded carrier")
	log.Printf("  • Direct streaming (no disk storage)")

	if err := router.Run(":" + port); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}
