package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/hoanglong2311/telebot/internal/bot"
	"github.com/hoanglong2311/telebot/internal/config"
	"github.com/hoanglong2311/telebot/internal/database"
	"github.com/hoanglong2311/telebot/internal/store"
	"github.com/hoanglong2311/telebot/internal/telegram"
)

const webhookPath = "/webhook"

func main() {
	logger := log.New(os.Stdout, "[telebot] ", log.LstdFlags|log.Lshortfile)
	cfg := config.Load()

	if cfg.BotToken == "" {
		logger.Fatal("BOT_TOKEN must be set")
	}
	if cfg.WebhookBaseURL == "" {
		logger.Println("WEBHOOK_BASE_URL is not set, cannot register webhook")
		return
	}

	db, err := database.New()
	if err != nil {
		logger.Fatalf("database init failed: %v", err)
	}

	tg, err := telegram.New(cfg.BotToken)
	if err != nil {
		logger.Fatalf("telegram client: %v", err)
	}
	logger.Printf("authorized as @%s", tg.Username())

	if err := tg.RegisterWebhook(cfg.WebhookBaseURL+webhookPath, cfg.BotToken); err != nil {
		logger.Fatalf("webhook registration: %v", err)
	}

	countdownBot := bot.New(cfg, store.New(db), tg, logger)
	if err := countdownBot.StartScheduler(); err != nil {
		logger.Fatalf("scheduler start: %v", err)
	}

	http.Handle(webhookPath, countdownBot.Handler())
	http.Handle("/", countdownBot.HealthHandler())

	server := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: nil,
	}

	go func() {
		logger.Printf("server starting on :%s", cfg.Port)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatalf("server error: %v", err)
		}
	}()

	waitForShutdown(server, countdownBot, logger)
}

func waitForShutdown(server *http.Server, countdownBot *bot.Bot, logger *log.Logger) {
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	<-stop
	logger.Println("shutting down...")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		logger.Printf("server shutdown error: %v", err)
	}
	countdownBot.StopScheduler()
}
