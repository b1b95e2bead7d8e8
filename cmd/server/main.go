// Command server is the entry point for the Masterblog API server.
package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"masterblog/internal/cache"
	"masterblog/internal/config"
	"masterblog/internal/repository"
	"masterblog/internal/seed"
	"masterblog/internal/server"
)

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Seed-load failure is non-fatal: the store simply starts empty.
	posts := repository.NewPostRepository(seed.LoadPosts(cfg.SeedFile))

	// Redis is optional; without it rate limits are tracked in process memory.
	redisClient := cache.NewClient(cfg.RedisURL)

	srv := server.NewServer(cfg, posts, redisClient)
	app := srv.App()

	janitorCtx, janitorCancel := context.WithCancel(context.Background())
	defer janitorCancel()
	srv.StartLimiterJanitor(janitorCtx)

	// Graceful shutdown
	go func() {
		sigChan := make(chan os.Signal, 1)
		signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
		<-sigChan

		log.Println("Shutting down server...")
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()

		if err := app.ShutdownWithContext(ctx); err != nil {
			log.Printf("Server shutdown error: %v", err)
		}
		if redisClient != nil {
			if err := redisClient.Close(); err != nil {
				log.Printf("Error closing redis: %v", err)
			}
		}
	}()

	log.Printf("Server starting on port %s...", cfg.Port)
	log.Fatal(app.Listen(":" + cfg.Port))
}
