package main

import (
	"os"

	"payment-relay/internal/config"
	"payment-relay/internal/database"
	"payment-relay/internal/handlers"
	"payment-relay/internal/services"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Info().Msg("No .env file found, using system environment variables")
	}

	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})

	cfg, err := config.New()
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to load configuration")
	}

	if cfg.GinMode != "" {
		gin.SetMode(cfg.GinMode)
	}

	db, err := database.Connect(cfg)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to connect to database")
	}
	if err := database.Migrate(db); err != nil {
		log.Fatal().Err(err).Msg("Failed to migrate database")
	}
	log.Info().Msg("Database connection established")

	// Services
	tokenService := services.NewTokenService(cfg.EzipayBaseURL, cfg.EzipayClientID, cfg.EzipayClientSecret)
	ezipayService := services.NewEzipayService(cfg.EzipayBaseURL, tokenService)
	paymentService := services.NewPaymentService(db, ezipayService)
	withdrawalService := services.NewWithdrawalService(db, ezipayService)

	// Handlers
	paymentHandler := handlers.NewPaymentHandler(paymentService, ezipayService)
	withdrawalHandler := handlers.NewWithdrawalHandler(withdrawalService)

	r := gin.Default()

	r.GET("/", handlers.Health)
	r.GET("/api/health", handlers.Health)

	r.POST("/api/payment/create", paymentHandler.Create)
	r.GET("/api/payment/status/:transactionId", paymentHandler.Status)
	r.POST("/api/payment-methods", paymentHandler.ListPaymentMethods)
	r.POST("/api/verify-receiver", paymentHandler.VerifyReceiver)

	r.POST("/api/withdrawal/request", withdrawalHandler.Create)
	r.GET("/api/withdrawal/status/:id", withdrawalHandler.GetStatus)

	r.GET("/api/admin/withdrawals", withdrawalHandler.List)
	r.POST("/api/admin/withdrawal/approve/:id", withdrawalHandler.Approve)
	r.POST("/api/admin/withdrawal/reject/:id", withdrawalHandler.Reject)
	r.GET("/api/admin/stats", withdrawalHandler.Stats)

	log.Info().Str("port", cfg.Port).Msg("HTTP server starting")
	if err := r.Run(":" + cfg.Port); err != nil {
		log.Fatal().Err(err).Msg("Failed to start server")
	}
}
