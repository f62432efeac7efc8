package main

import (
	"os"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"

	"github.com/mohammed-adachi/marjane-products-pipeline/internal/api"
	"github.com/mohammed-adachi/marjane-products-pipeline/internal/config"
	"github.com/mohammed-adachi/marjane-products-pipeline/internal/engine"
	"github.com/mohammed-adachi/marjane-products-pipeline/internal/storage"
)

func main() {
	// Setup Logging
	logger := logrus.New()
	logger.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	entry := logger.WithField("service", "products-api")

	entry.Info("Starting Marjane Products API Service")

	// 1. Config (.env then env, with optional YAML file)
	_ = godotenv.Load()
	cfg := loadConfig(entry)

	// 2. Storage
	store, err := storage.NewFileStorage(cfg.Storage.DataDir)
	if err != nil {
		entry.Fatalf("Failed to initialize storage: %v", err)
	}

	// 3. Engine
	eng := engine.NewEngine(cfg, entry, store)

	// 4. Catalog + Index (queries are rejected until this completes)
	if err := eng.LoadCatalog(); err != nil {
		entry.WithError(err).Warn("No catalog on disk yet, POST /api/v1/scrape to acquire one")
	}

	// 5. API Server
	server := api.NewServer(eng, entry)

	entry.Infof("Marjane Products API ready on %s", cfg.Server.Addr)
	if err := server.Start(cfg.Server.Addr); err != nil {
		entry.Fatal(err)
	}
}

func loadConfig(log *logrus.Entry) *config.Config {
	path := config.GetStringEnv("CONFIG_FILE", "config.yaml")
	if _, err := os.Stat(path); err == nil {
		cfg, err := config.LoadFile(path)
		if err != nil {
			log.Fatalf("Failed to load config file: %v", err)
		}
		return cfg
	}
	return config.Load()
}
