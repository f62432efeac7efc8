package storage

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"sync"

	"github.com/mohammed-adachi/marjane-products-pipeline/internal/catalog"
	"github.com/mohammed-adachi/marjane-products-pipeline/internal/cleaner"
)

// PipelineStorage defines the interface for persisting pipeline artifacts
type PipelineStorage interface {
	SaveCatalog(products []catalog.Product) error
	LoadCatalog() ([]catalog.Product, error)
	SaveCleaned(cleaned []cleaner.CleanedProduct) error
	LoadCategories() (*catalog.CategoryIndex, error)
	SaveReport(report cleaner.Report) error
	Close() error
}

// FileStorage implements PipelineStorage on the local file system, one file
// per artifact under a base directory.
type FileStorage struct {
	baseDir string
	mu      sync.RWMutex
}

const (
	catalogFile = "produits_marjane.json"
	cleanedFile = "produits_marjane_clean.csv"
	reportFile  = "analyse_rapport.json"
)

// NewFileStorage creates a new file-based storage
func NewFileStorage(baseDir string) (*FileStorage, error) {
	if err := os.MkdirAll(baseDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create storage directory: %w", err)
	}
	return &FileStorage{
		baseDir: baseDir,
	}, nil
}

// CatalogPath returns the catalog artifact location
func (fs *FileStorage) CatalogPath() string {
	return filepath.Join(fs.baseDir, catalogFile)
}

// CleanedPath returns the cleaned-products artifact location
func (fs *FileStorage) CleanedPath() string {
	return filepath.Join(fs.baseDir, cleanedFile)
}

// ReportPath returns the analysis report location
func (fs *FileStorage) ReportPath() string {
	return filepath.Join(fs.baseDir, reportFile)
}

// SaveCatalog writes the raw scraped catalog as a JSON array
func (fs *FileStorage) SaveCatalog(products []catalog.Product) error {
	fs.mu.Lock()
	defer fs.mu.Unlock()

	data, err := json.MarshalIndent(products, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal catalog: %w", err)
	}
	if err := os.WriteFile(fs.CatalogPath(), data, 0644); err != nil {
		return fmt.Errorf("failed to write catalog: %w", err)
	}
	return nil
}

// LoadCatalog reads the raw catalog back from disk
func (fs *FileStorage) LoadCatalog() ([]catalog.Product, error) {
	fs.mu.RLock()
	defer fs.mu.RUnlock()

	return catalog.Load(fs.CatalogPath())
}

// SaveCleaned writes the cleaned products as CSV, one row per catalog
// position, with the categorie column consumed by category-scoped search.
func (fs *FileStorage) SaveCleaned(cleaned []cleaner.CleanedProduct) error {
	fs.mu.Lock()
	defer fs.mu.Unlock()

	f, err := os.Create(fs.CleanedPath())
	if err != nil {
		return fmt.Errorf("failed to create cleaned csv: %w", err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	header := []string{"title", "price", "image", "prix_principal", "prix_reduit", "pourcentage_remise", "categorie", "marque", "promo"}
	if err := w.Write(header); err != nil {
		return fmt.Errorf("failed to write cleaned csv: %w", err)
	}

	for _, c := range cleaned {
		record := []string{
			c.Title,
			c.Price,
			c.Image,
			formatPrice(c.MainPrice, c.HasMainPrice),
			formatPrice(c.ReducedPrice, c.HasReducedPrice),
			strconv.FormatFloat(c.DiscountPercent, 'f', 2, 64),
			c.Category,
			c.Brand,
			strconv.FormatBool(c.Promo),
		}
		if err := w.Write(record); err != nil {
			return fmt.Errorf("failed to write cleaned csv: %w", err)
		}
	}

	w.Flush()
	return w.Error()
}

// LoadCategories reads the categorie column of the cleaned CSV back into a
// category index keyed by catalog position
func (fs *FileStorage) LoadCategories() (*catalog.CategoryIndex, error) {
	fs.mu.RLock()
	defer fs.mu.RUnlock()

	return catalog.LoadCategories(fs.CleanedPath())
}

// SaveReport writes the analysis report as JSON
func (fs *FileStorage) SaveReport(report cleaner.Report) error {
	fs.mu.Lock()
	defer fs.mu.Unlock()

	data, err := json.MarshalIndent(report, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal report: %w", err)
	}
	if err := os.WriteFile(fs.ReportPath(), data, 0644); err != nil {
		return fmt.Errorf("failed to write report: %w", err)
	}
	return nil
}

// Close is a no-op for file storage
func (fs *FileStorage) Close() error {
	return nil
}

func formatPrice(value float64, ok bool) string {
	if !ok {
		return ""
	}
	return strconv.FormatFloat(value, 'f', 2, 64)
}
