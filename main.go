package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/aurastyle/wardrobe-be/internal/ai"
	"github.com/aurastyle/wardrobe-be/internal/api"
	"github.com/aurastyle/wardrobe-be/internal/config"
	"github.com/aurastyle/wardrobe-be/internal/database"
	"github.com/aurastyle/wardrobe-be/internal/logger"
	"github.com/aurastyle/wardrobe-be/internal/maintenance"
	"github.com/aurastyle/wardrobe-be/internal/services"
	"github.com/aurastyle/wardrobe-be/internal/websocket"
)

func main() {
	logger.Init()

	// Load configuration. A missing Gemini key is fatal here: every
	// AI-backed operation needs it.
	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to load configuration")
	}

	// Set up database
	db, err := database.New(cfg.DatabasePath)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to initialize database")
	}
	defer db.Close()

	if err := database.Migrate(db); err != nil {
		log.Fatal().Err(err).Msg("Failed to apply database migrations")
	}

	// Set up the AI gateway
	gateway, err := ai.New(context.Background(), cfg.GeminiAPIKey, cfg.TextModel, cfg.ImageModel, cfg.AITimeout)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to initialize AI gateway")
	}
	defer gateway.Close()

	// Set up WebSocket Hub
	hub := websocket.NewHub()
	go hub.Run()

	// Set up services
	userService := services.NewUserService(db)
	eventService := services.NewEventService(db)
	wardrobeService := services.NewWardrobeService(db, gateway, eventService, hub)
	outfitService := services.NewOutfitService(db)
	stylistService := services.NewStylistService(wardrobeService, outfitService, gateway, eventService, hub)

	// Set up and run the background maintenance scheduler
	scheduler, err := maintenance.New(cfg.MaintenanceCron, eventService, stylistService)
	if err != nil {
		log.Fatal().Err(err).Msg("Invalid maintenance cron expression")
	}
	go scheduler.Run()

	// Set up router
	router := api.NewRouter(hub, userService, wardrobeService, outfitService, stylistService, eventService)

	// Set up server
	srv := &http.Server{
		Addr:    fmt.Sprintf(":%d", cfg.ServerPort),
		Handler: router,
	}

	// Graceful shutdown
	go func() {
		log.Info().Int("port", cfg.ServerPort).Msg("Server starting")
		if err := srv.ListenAndServe(); err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("ListenAndServe()")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info().Msg("Shutting down server...")

	scheduler.Stop()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Fatal().Err(err).Msg("Server forced to shutdown")
	}

	log.Info().Msg("Server exiting")
}
