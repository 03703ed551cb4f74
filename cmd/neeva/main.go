package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/neeva-app/neeva-backend/db"
	"github.com/neeva-app/neeva-backend/internal/ai"
	"github.com/neeva-app/neeva-backend/internal/auth"
	"github.com/neeva-app/neeva-backend/internal/chat"
	"github.com/neeva-app/neeva-backend/internal/config"
	"github.com/neeva-app/neeva-backend/internal/handlers"
	"github.com/neeva-app/neeva-backend/internal/logger"
	"github.com/neeva-app/neeva-backend/internal/router"
)

func main() {
	_ = godotenv.Load()

	cfg, err := config.NewConfig()
	if err != nil {
		panic(err)
	}

	log, err := logger.New(cfg.LogMode)
	if err != nil {
		panic(err)
	}
	defer log.Sync()

	if err := auth.InitJWTSecret(cfg.JWTSecret); err != nil {
		log.Fatal("failed to initialize JWT secret", "error", err.Error())
	}

	if err := db.ConnectDatabase(cfg.Database.DSN); err != nil {
		log.Fatal("failed to connect to database", "error", err.Error())
	}

	if err := db.MigrateDatabase(); err != nil {
		log.Fatal("failed to migrate database", "error", err.Error())
	}

	handlers.Init(log)

	aiClient := ai.NewClient(cfg.AI, log)
	gateway := ai.NewGateway(aiClient, cfg.AI, log)

	store := chat.NewStore(db.DB)
	chatService := chat.NewService(store, gateway, cfg.Chat.HistoryLimit, log)

	chatHandler := handlers.NewChatHandler(chatService)
	insightsHandler := handlers.NewInsightsHandler(gateway)

	r := router.NewRouter(log, cfg.CORSOrigins(), chatHandler, insightsHandler)

	srv := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      r,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 60 * time.Second, // model calls can take a while
		IdleTimeout:  120 * time.Second,
	}

	go func() {
		log.Info("starting server", "addr", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("server stopped unexpectedly", "error", err.Error())
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("shutting down server")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Fatal("server forced to shutdown", "error", err.Error())
	}

	log.Info("server exited gracefully")
}
