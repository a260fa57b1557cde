package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"social_feed/internal/api"
	"social_feed/internal/app/service"
	"social_feed/internal/common/security"
	"social_feed/internal/domain/repository"
	"social_feed/internal/platform/config"
	"social_feed/internal/platform/database"
	"syscall"
	"time"
)

func main() {
	// 1. Load Configuration
	config.Load()
	fmt.Println("Configuration loaded.")

	// 2. Initialize JWT
	security.InitJWT()
	fmt.Println("JWT initialized.")

	// 3. Initialize Database
	database.Connect()
	defer database.Close()

	bootCtx, bootCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer bootCancel()
	if err := database.Migrate(bootCtx, database.DB); err != nil {
		log.Fatalf("Could not apply database schema: %v", err)
	}
	fmt.Println("Database schema ready.")

	// 4. Initialize Repositories
	userRepo := repository.NewPgUserRepository(database.DB)
	postRepo := repository.NewPgPostRepository(database.DB)

	// 5. Initialize Services
	authService := service.NewAuthService(userRepo)
	userService := service.NewUserService(userRepo)
	postService := service.NewPostService(postRepo)

	// 6. Bootstrap the default account
	if config.AppConfig.SeedDefaultUser {
		if _, err := authService.SeedDefaultUser(bootCtx); err != nil {
			log.Printf("ERROR: Could not create default user: %v", err)
		}
	}

	// 7. Initialize Router & HTTP Server
	router := api.NewRouter(authService, userService, postService, database.DB)

	server := &http.Server{
		Addr:         ":" + config.AppConfig.APIPort,
		Handler:      router,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	// 8. Graceful Shutdown
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)

	go func() {
		log.Printf("Server starting on port %s", config.AppConfig.APIPort)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Could not listen on %s: %v\n", config.AppConfig.APIPort, err)
		}
	}()
	log.Println("Server started successfully.")

	<-stop // Wait for interrupt signal

	log.Println("Shutting down server...")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer shutdownCancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Fatalf("Server shutdown failed: %v", err)
	}

	log.Println("Server stopped gracefully.")
}
