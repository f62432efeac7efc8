package storage_test

import (
	"encoding/json"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/mohammed-adachi/marjane-products-pipeline/internal/catalog"
	"github.com/mohammed-adachi/marjane-products-pipeline/internal/cleaner"
	"github.com/mohammed-adachi/marjane-products-pipeline/internal/storage"
)

func sampleProducts() []catalog.Product {
	return []catalog.Product{
		{Title: "Chocolat noir - LINDT", Price: "25,90 DH", Image: "https://cdn.example/lindt.jpg"},
		{Title: "Lessive 3L - TIDE", Price: "99,00 DH"},
	}
}

func TestFileStorage_CatalogRoundTrip(t *testing.T) {
	fs, err := storage.NewFileStorage(t.TempDir())
	assert.NoError(t, err)
	defer fs.Close()

	products := sampleProducts()
	assert.NoError(t, fs.SaveCatalog(products))

	loaded, err := fs.LoadCatalog()
	assert.NoError(t, err)
	assert.Equal(t, products, loaded)
}

func TestFileStorage_LoadCatalogMissing(t *testing.T) {
	fs, err := storage.NewFileStorage(t.TempDir())
	assert.NoError(t, err)

	_, err = fs.LoadCatalog()
	assert.Error(t, err)
}

func TestFileStorage_CleanedAndCategories(t *testing.T) {
	fs, err := storage.NewFileStorage(t.TempDir())
	assert.NoError(t, err)

	cleaned := cleaner.Clean(sampleProducts())
	assert.NoError(t, fs.SaveCleaned(cleaned))

	// Category data reads back keyed by catalog position
	idx, err := fs.LoadCategories()
	assert.NoError(t, err)
	assert.Equal(t, []int{0}, idx.Indices("Alimentaire"))
	assert.Equal(t, []int{1}, idx.Indices("Maison"))
}

func TestFileStorage_LoadCategoriesMissing(t *testing.T) {
	fs, err := storage.NewFileStorage(t.TempDir())
	assert.NoError(t, err)

	_, err = fs.LoadCategories()
	assert.Error(t, err)
}

func TestFileStorage_SaveReport(t *testing.T) {
	fs, err := storage.NewFileStorage(t.TempDir())
	assert.NoError(t, err)

	report := cleaner.Analyze(cleaner.Clean(sampleProducts()))
	assert.NoError(t, fs.SaveReport(report))

	data, err := os.ReadFile(fs.ReportPath())
	assert.NoError(t, err)

	var loaded cleaner.Report
	assert.NoError(t, json.Unmarshal(data, &loaded))
	assert.Equal(t, report.ProductCount, loaded.ProductCount)
	assert.Equal(t, report.Categories, loaded.Categories)
}

func TestNewFileStorage_BadDir(t *testing.T) {
	tmp := t.TempDir()
	file := tmp + "/occupied"
	assert.NoError(t, os.WriteFile(file, []byte("x"), 0644))

	_, err := storage.NewFileStorage(file + "/nested")
	assert.Error(t, err)
}
