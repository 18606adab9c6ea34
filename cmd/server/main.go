package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"factoria/internal/backend/plan"
	"factoria/internal/backend/products"
	"factoria/internal/backend/rawmaterials"
	"factoria/internal/config"
	"factoria/internal/infrastructure/logger"
	"factoria/internal/infrastructure/mysql"
	"factoria/internal/server"

	"go.uber.org/zap"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("loading config: %v", err)
	}

	zapLogger, err := logger.New(cfg.Log.Level)
	if err != nil {
		log.Fatalf("creating logger: %v", err)
	}
	defer zapLogger.Sync()

	db, err := mysql.NewConnection(cfg.Database)
	if err != nil {
		zapLogger.Fatal("connecting to database", zap.Error(err))
	}
	defer db.Close()
	zapLogger.Info("database connected")

	productsCtrl := products.NewModule(db, zapLogger)
	materialsCtrl := rawmaterials.NewModule(db, zapLogger)
	planCtrl := plan.NewModule(db, zapLogger)

	router := server.NewRouter(productsCtrl, materialsCtrl, planCtrl, zapLogger)

	srv := server.New(cfg.Server.Port, router, zapLogger)

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		if err := srv.Start(); err != nil {
			zapLogger.Fatal("server error", zap.Error(err))
		}
	}()

	<-quit
	zapLogger.Info("received shutdown signal")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		zapLogger.Fatal("server shutdown failed", zap.Error(err))
	}

	zapLogger.Info("server stopped gracefully")
}
