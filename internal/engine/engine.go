package engine

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/mohammed-adachi/marjane-products-pipeline/internal/catalog"
	"github.com/mohammed-adachi/marjane-products-pipeline/internal/cleaner"
	"github.com/mohammed-adachi/marjane-products-pipeline/internal/config"
	"github.com/mohammed-adachi/marjane-products-pipeline/internal/scraper"
	"github.com/mohammed-adachi/marjane-products-pipeline/internal/search"
	"github.com/mohammed-adachi/marjane-products-pipeline/internal/storage"
)

// Engine orchestrates the pipeline components: acquisition, cleaning,
// storage and the search index.
type Engine struct {
	Config  *config.Config
	Logger  *logrus.Entry
	Storage storage.PipelineStorage
	Scraper *scraper.Scraper

	// searcher is rebuilt wholesale on reindex; queries hold the read lock
	// only long enough to grab the current pointer.
	mu       sync.RWMutex
	searcher *search.Engine

	Stats EngineStats
}

type EngineStats struct {
	ProductsLoaded  int
	VocabularyTerms int
	LastBuild       time.Time
	LastError       string
}

func NewEngine(cfg *config.Config, logger *logrus.Entry, store storage.PipelineStorage) *Engine {
	return &Engine{
		Config:  cfg,
		Logger:  logger,
		Storage: store,
		Scraper: scraper.NewScraper(cfg.Scraper.RequestTimeout, cfg.Scraper.PolitenessDelay, cfg.Scraper.UserAgent),
	}
}

// LoadCatalog reads the persisted catalog and category data and builds the
// search index over it. Queries are accepted only after it returns.
func (e *Engine) LoadCatalog() error {
	products, err := e.Storage.LoadCatalog()
	if err != nil {
		e.setError(err)
		return fmt.Errorf("failed to load catalog: %w", err)
	}

	// Category data is optional; the cleaned CSV may not exist yet
	categories, err := e.Storage.LoadCategories()
	if err != nil {
		e.Logger.WithError(err).Warn("No category data, category search disabled")
		categories = nil
	}

	e.buildIndex(products, categories)
	return nil
}

// RunScrape executes the acquisition pipeline: fetch the seed page, clean
// the products, persist every artifact and rebuild the index.
func (e *Engine) RunScrape(ctx context.Context) (int, error) {
	e.Logger.WithField("url", e.Config.Scraper.SeedURL).Info("Scraping catalog")

	products, err := e.Scraper.Scrape(ctx, e.Config.Scraper.SeedURL)
	if err != nil {
		e.setError(err)
		return 0, fmt.Errorf("scrape failed: %w", err)
	}

	cleaned := cleaner.Clean(products)
	report := cleaner.Analyze(cleaned)

	if err := e.Storage.SaveCatalog(products); err != nil {
		e.setError(err)
		return 0, err
	}
	if err := e.Storage.SaveCleaned(cleaned); err != nil {
		e.setError(err)
		return 0, err
	}
	if err := e.Storage.SaveReport(report); err != nil {
		e.setError(err)
		return 0, err
	}

	e.buildIndex(products, catalog.NewCategoryIndex(cleaner.Labels(cleaned)))
	return len(products), nil
}

// buildIndex constructs a fresh search engine and swaps it in atomically
func (e *Engine) buildIndex(products []catalog.Product, categories *catalog.CategoryIndex) {
	searcher := search.NewEngine(products, categories)

	vectorizer := search.NewTFIDFVectorizer()
	vectorizer.MaxFeatures = e.Config.Search.MaxFeatures
	vectorizer.MinDF = e.Config.Search.MinDF
	vectorizer.MaxDF = e.Config.Search.MaxDF
	searcher.SetVectorizer(vectorizer)

	searcher.BuildIndex()

	e.mu.Lock()
	e.searcher = searcher
	e.Stats.ProductsLoaded = searcher.Len()
	e.Stats.VocabularyTerms = searcher.VocabularySize()
	e.Stats.LastBuild = time.Now()
	e.Stats.LastError = ""
	e.mu.Unlock()

	e.Logger.WithFields(logrus.Fields{
		"products": searcher.Len(),
		"terms":    searcher.VocabularySize(),
	}).Info("Search index built")
}

// Searcher returns the current index, or nil before the first build
func (e *Engine) Searcher() *search.Engine {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.searcher
}

// Ready reports whether queries can be answered
func (e *Engine) Ready() bool {
	return e.Searcher() != nil
}

// Search ranks the whole catalog against the query
func (e *Engine) Search(query string, k int) ([]search.Result, error) {
	searcher := e.Searcher()
	if searcher == nil {
		return nil, search.ErrNotReady
	}
	return searcher.Search(query, k)
}

// BatchSearch runs independent searches for every query
func (e *Engine) BatchSearch(queries []string, k int) (map[string][]search.Result, error) {
	searcher := e.Searcher()
	if searcher == nil {
		return nil, search.ErrNotReady
	}
	return searcher.BatchSearch(queries, k)
}

// SearchByCategory ranks only within one category
func (e *Engine) SearchByCategory(query, category string, k int) ([]search.Result, error) {
	searcher := e.Searcher()
	if searcher == nil {
		return nil, search.ErrNotReady
	}
	return searcher.SearchByCategory(query, category, k)
}

// SimilarProducts ranks the catalog against one product's own vector
func (e *Engine) SimilarProducts(index, k int) ([]search.Result, error) {
	searcher := e.Searcher()
	if searcher == nil {
		return nil, search.ErrNotReady
	}
	return searcher.SimilarProducts(index, k)
}

// StatsSnapshot returns a copy of the current stats
func (e *Engine) StatsSnapshot() EngineStats {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.Stats
}

func (e *Engine) setError(err error) {
	e.mu.Lock()
	e.Stats.LastError = err.Error()
	e.mu.Unlock()
}
