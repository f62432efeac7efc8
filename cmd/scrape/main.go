package main

import (
	"context"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"

	"github.com/mohammed-adachi/marjane-products-pipeline/internal/config"
	"github.com/mohammed-adachi/marjane-products-pipeline/internal/engine"
	"github.com/mohammed-adachi/marjane-products-pipeline/internal/storage"
)

// Acquisition pipeline: scrape the seed page, clean the products and
// persist the catalog, cleaned CSV and analysis report.
func main() {
	logger := logrus.New()
	logger.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	entry := logger.WithField("service", "products-scraper")

	_ = godotenv.Load()
	cfg := config.Load()

	store, err := storage.NewFileStorage(cfg.Storage.DataDir)
	if err != nil {
		entry.Fatalf("Failed to initialize storage: %v", err)
	}

	eng := engine.NewEngine(cfg, entry, store)

	count, err := eng.RunScrape(context.Background())
	if err != nil {
		entry.Fatalf("Scrape failed: %v", err)
	}

	entry.WithField("products", count).Info("Catalog acquired and cleaned")
}
