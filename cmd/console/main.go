package main

import (
	"context"
	"log"
	"os"

	"factoria/internal/config"
	"factoria/internal/console"
	"factoria/internal/gateway"
	"factoria/internal/infrastructure/logger"
	"factoria/internal/store/plan"
	"factoria/internal/store/products"
	"factoria/internal/store/rawmaterials"

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

	client := gateway.NewClient(cfg.Console.APIBaseURL, cfg.Console.HTTPTimeout, zapLogger)

	productStore := products.NewStore(client, zapLogger)
	materialStore := rawmaterials.NewStore(client, zapLogger)
	planCache := plan.NewCache(client, zapLogger)

	orch := console.NewOrchestrator(productStore, materialStore, planCache, zapLogger)
	repl := console.NewREPL(orch, cfg.Console.LowStockThreshold, os.Stdin, os.Stdout)

	if err := repl.Run(context.Background()); err != nil {
		zapLogger.Fatal("console terminated", zap.Error(err))
	}
}
