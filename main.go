package main

import (
	"flag"
	"log"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/EdTheDev254/audio-steganography/config"
	"github.com/EdTheDev254/audio-steganography/handlers"
	"github.com/EdTheDev254/audio-steganography/stego"
)

func main() {
	configPath := flag.String("config", "", "path to YAML server config")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	router := gin.Default()

	corsConfig := cors.DefaultConfig()
	corsConfig.AllowOrigins = cfg.AllowOrigins
	corsConfig.AllowMethods = []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"}
	corsConfig.AllowHeaders = []string{"Origin", "Content-Type", "Accept", "Authorization", "X-Requested-With"}
	corsConfig.ExposeHeaders = []string{"X-Stego-Method", "X-Stego-Step", "X-Stego-PSNR", "X-Stego-Capacity", "X-Stego-Stealth-Capacity", "X-Stego-Warning", "Content-Disposition"}
	corsConfig.AllowCredentials = true
	router.Use(cors.New(corsConfig))

	codec := stego.NewCodec(cfg.StealthStepThreshold)
	stegoHandler := handlers.NewStegoHandler(codec, cfg.MaxUploadMB)

	// API Routes
	api := router.Group("/api/v1")
	{
		api.GET("/health", stegoHandler.HealthCheck)

		st := api.Group("/stego")
		{
			st.POST("/analyze", stegoHandler.AnalyzeCarrier)
			st.POST("/encode", stegoHandler.EncodeMessage)
			st.POST("/decode", stegoHandler.DecodeMessage)
		}
	}

	log.Printf("Server starting on port %s", cfg.Port)
	log.Printf("API endpoints:")
	log.Printf("  POST /api/v1/stego/analyze - Report carrier properties and hiding capacity")
	log.Printf("  POST /api/v1/stego/encode  - Hide a message in a WAV/MP3 carrier (returns stego WAV)")
	log.Printf("  POST /api/v1/stego/decode  - Recover the hidden message from a stego WAV")
	log.Printf("  GET  /api/v1/health        - Health check")
	log.Printf("")
	log.Printf("Features:")
	log.Printf("  • Interleaved LSB embedding with a 32-byte length header")
	log.Printf("  • Absolute and stealth capacity reporting (step threshold %d)", cfg.StealthStepThreshold)
	log.Printf("  • PSNR quality assessment (returned in X-Stego-PSNR header)")
	log.Printf("  • Direct streaming (no disk storage)")

	if err := router.Run(":" + cfg.Port); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}
