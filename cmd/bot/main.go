package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"

	"tg-chatlog/internal/biz/usecase"
	"tg-chatlog/internal/conf"
	"tg-chatlog/internal/data"
	"tg-chatlog/internal/server"
	"tg-chatlog/internal/service"
)

func main() {
	// Load .env file
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	// Load configuration
	cfg, err := conf.Load()
	if err != nil {
		log.Fatalf("Invalid config: %v", err)
	}

	// Initialize repository layer
	repos, err := data.NewRepositories(cfg.DBPath)
	if err != nil {
		log.Fatalf("Failed to create repositories: %v", err)
	}
	defer repos.Close()

	fmt.Printf("[Bot] Chat log DB: %s\n", cfg.DBPath)

	// Initialize usecase layer
	directoryUC := usecase.NewDirectoryUsecase(repos.User)
	chatLogUC := usecase.NewChatLogUsecase(repos.Message)
	historyUC := usecase.NewHistoryUsecase(chatLogUC, directoryUC)

	// Initialize service layer
	relaySvc := service.NewRelayService(directoryUC, chatLogUC, historyUC)

	// Initialize Telegram server
	srv, err := server.NewTelegramServer(cfg, relaySvc)
	if err != nil {
		log.Fatalf("Failed to create telegram server: %v", err)
	}

	// Graceful shutdown
	ctx, cancel := context.WithCancel(context.Background())
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-sigCh
		fmt.Println("\nShutting down...")
		cancel()
	}()

	if cfg.WebhookEnabled() {
		fmt.Printf("[Bot] Webhook mode: %s\n", cfg.PublicURL)
	} else {
		fmt.Println("[Bot] Long polling mode")
	}
	if err := srv.Start(ctx); err != nil {
		log.Fatalf("Server error: %v", err)
	}
}
