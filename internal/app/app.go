// Package app wires the bot together: configuration, logging, stores,
// the Telegram bot itself and the HTTP server for health checks and
// webhook delivery.
package app

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"clientbot/internal/backup"
	"clientbot/internal/bot"
	"clientbot/internal/config"
	"clientbot/internal/content"
	"clientbot/internal/storage/memory"
)

// App represents the application.
type App struct {
	config *config.Config
	bot    *bot.Bot
	server *http.Server
	logger *zap.Logger
}

// New creates and initializes a new application instance.
func New() (*App, error) {
	// Load .env file if it exists; system environment wins otherwise.
	_ = godotenv.Load()

	cfg, err := config.LoadFromEnv()
	if err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}

	logger, err := zap.NewProduction()
	if err != nil {
		return nil, fmt.Errorf("failed to create logger: %w", err)
	}

	logger.Info("Starting client bot", zap.Int64("admin_user_id", cfg.AdminUserID))

	contentManager, err := content.NewManager(cfg.ContentDir, logger)
	if err != nil {
		return nil, err
	}
	backupManager, err := backup.NewManager(cfg.BackupDir, logger)
	if err != nil {
		return nil, err
	}

	telegramBot, err := bot.NewBot(cfg.TelegramToken, bot.Deps{
		Tickets:       memory.NewTickets(),
		Bonuses:       memory.NewBonuses(),
		Reviews:       memory.NewReviews(),
		Content:       contentManager,
		Backups:       backupManager,
		AdminUserID:   cfg.AdminUserID,
		ReferralBonus: cfg.ReferralBonus,
		BackupKeep:    cfg.BackupKeep,
		Logger:        logger,
	})
	if err != nil {
		return nil, err
	}

	app := &App{
		config: cfg,
		bot:    telegramBot,
		logger: logger,
	}
	app.initHTTPServer()
	return app, nil
}

// initHTTPServer initializes the HTTP server for health checks and
// webhook delivery.
func (a *App) initHTTPServer() {
	mux := http.NewServeMux()

	mux.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		fmt.Fprintf(w, "OK")
	})

	mux.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		mode := "polling"
		if a.config.WebhookMode {
			mode = "webhook"
		}
		w.WriteHeader(http.StatusOK)
		fmt.Fprintf(w, "Client bot is running (mode: %s)", mode)
	})

	mux.HandleFunc("/telegram-webhook", func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			w.WriteHeader(http.StatusMethodNotAllowed)
			return
		}

		var update tgbotapi.Update
		if err := json.NewDecoder(r.Body).Decode(&update); err != nil {
			a.logger.Warn("Error decoding webhook update", zap.Error(err))
			w.WriteHeader(http.StatusBadRequest)
			return
		}

		// Process in background to respond quickly to Telegram.
		go a.bot.HandleWebhookUpdate(update)

		w.WriteHeader(http.StatusOK)
	})

	a.server = &http.Server{
		Addr:         ":" + a.config.HTTPPort,
		Handler:      mux,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
	}

	go func() {
		a.logger.Info("Starting HTTP server", zap.String("port", a.config.HTTPPort))
		if err := a.server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			a.logger.Error("HTTP server error", zap.Error(err))
		}
	}()
}

// Run starts the application and blocks until shutdown.
func (a *App) Run() error {
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	if a.config.WebhookMode {
		a.logger.Info("Starting bot in webhook mode", zap.String("webhook_url", a.config.WebhookURL))
		if err := a.bot.StartWebhook(a.config.WebhookURL); err != nil {
			return fmt.Errorf("failed to setup webhook: %w", err)
		}
	} else {
		go func() {
			if err := a.bot.Start(); err != nil {
				a.logger.Fatal("Failed to start bot", zap.Error(err))
			}
		}()
	}

	<-sigChan

	a.logger.Info("Shutting down...")
	return a.Shutdown()
}

// Shutdown gracefully shuts down the application.
func (a *App) Shutdown() error {
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := a.server.Shutdown(shutdownCtx); err != nil {
		a.logger.Warn("HTTP server shutdown error", zap.Error(err))
	}

	a.logger.Info("Shutdown complete")
	return a.logger.Sync()
}
