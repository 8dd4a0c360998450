package main

import (
	"context"
	"log"
	"net"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/forkful/forkful-backend/config"
	"github.com/forkful/forkful-backend/internal/api"
	"github.com/forkful/forkful-backend/internal/database"
	"github.com/forkful/forkful-backend/internal/router"
	"github.com/forkful/forkful-backend/internal/server"
	"github.com/forkful/forkful-backend/internal/service"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	db, err := database.New(cfg)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	if err := database.Migrate(db); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}

	// Redis is optional; without it suggestions are computed per request.
	rdb, err := database.NewRedisClient(cfg)
	if err != nil {
		log.Printf("Redis unavailable, suggestion caching disabled: %v", err)
		rdb = nil
	}

	authService := service.NewAuthService(db, cfg.JWTSecret)
	recipeService := service.NewRecipeService(db)
	fridgeService := service.NewFridgeService(db)
	shoppingService := service.NewShoppingService(db)
	userService := service.NewUserService(db)
	uploadService := service.NewUploadService(cfg.UploadsDir)
	suggestionService := service.NewSuggestionService(db, rdb)

	handlers := router.Handlers{
		Auth:     api.NewAuthHandler(authService),
		Recipes:  api.NewRecipeHandler(recipeService, suggestionService, uploadService),
		Fridge:   api.NewFridgeHandler(fridgeService, suggestionService),
		Shopping: api.NewShoppingHandler(shoppingService),
		Profile:  api.NewProfileHandler(userService, uploadService),
		Health:   api.NewHealthHandler(db, rdb),
	}

	engine := router.Setup(handlers, authService, cfg.UploadsDir)
	srv := server.New(engine, net.JoinHostPort(cfg.ServerHost, cfg.ServerPort))

	errChan := make(chan error, 1)
	go func() {
		log.Println("Starting server...")
		errChan <- srv.Start()
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-errChan:
		if err != nil {
			log.Fatalf("Server error: %v", err)
		}
	case sig := <-quit:
		log.Printf("Received signal: %v", sig)
	}

	log.Println("Shutting down server...")
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Fatalf("Server shutdown error: %v", err)
	}
	log.Println("Server stopped")
}
