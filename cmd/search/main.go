package main

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"

	"github.com/mohammed-adachi/marjane-products-pipeline/internal/config"
	"github.com/mohammed-adachi/marjane-products-pipeline/internal/engine"
	"github.com/mohammed-adachi/marjane-products-pipeline/internal/search"
	"github.com/mohammed-adachi/marjane-products-pipeline/internal/storage"
)

var demoQueries = []string{
	"produits de beauté",
	"électronique pas cher",
	"chocolat et bonbons",
	"nettoyage de maison",
	"produits bio",
}

// Console driver for the search engine: run the demo batch, export the
// results, then hand over to the interactive prompt.
func main() {
	logger := logrus.New()
	logger.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	entry := logger.WithField("service", "products-search")

	_ = godotenv.Load()
	cfg := config.Load()

	store, err := storage.NewFileStorage(cfg.Storage.DataDir)
	if err != nil {
		entry.Fatalf("Failed to initialize storage: %v", err)
	}

	eng := engine.NewEngine(cfg, entry, store)
	if err := eng.LoadCatalog(); err != nil {
		entry.Fatalf("Failed to load catalog, run the scrape command first: %v", err)
	}

	// Demo batch + export
	batch, err := eng.BatchSearch(demoQueries, cfg.Search.BatchTopK)
	if err != nil {
		entry.Fatalf("Batch search failed: %v", err)
	}
	for _, query := range demoQueries {
		displayResults(query, batch[query])
	}
	if err := search.Export(batch, cfg.Search.ExportFile); err != nil {
		entry.Fatalf("Export failed: %v", err)
	}
	entry.WithField("file", cfg.Search.ExportFile).Info("Batch results exported")

	interactiveLoop(eng, cfg.Search.DefaultTopK)
}

// interactiveLoop reads one query per line until "quit" or end of input
func interactiveLoop(eng *engine.Engine, topK int) {
	fmt.Println("\nTapez votre requête ou 'quit' pour quitter")
	scanner := bufio.NewScanner(os.Stdin)

	for {
		fmt.Print("recherche> ")
		if !scanner.Scan() {
			return
		}
		query := strings.TrimSpace(scanner.Text())

		if strings.EqualFold(query, "quit") {
			fmt.Println("Au revoir!")
			return
		}
		if query == "" {
			continue
		}

		results, err := eng.Search(query, topK)
		if err != nil {
			fmt.Printf("Erreur: %v\n", err)
			continue
		}
		displayResults(query, results)
	}
}

func displayResults(query string, results []search.Result) {
	fmt.Printf("\n%s\nRésultats pour: %q\n%s\n", divider, query, divider)
	if len(results) == 0 {
		fmt.Println("Aucun résultat trouvé")
		return
	}
	for i, r := range results {
		fmt.Printf("%d. %s\n", i+1, r.Titre)
		if r.Prix != "" {
			fmt.Printf("   Prix: %s\n", r.Prix)
		}
		fmt.Printf("   Similarité: %.1f%%\n", r.ScorePourcentage)
	}
}

var divider = strings.Repeat("=", 70)
