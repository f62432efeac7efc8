package cleaner_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/mohammed-adachi/marjane-products-pipeline/internal/catalog"
	"github.com/mohammed-adachi/marjane-products-pipeline/internal/cleaner"
)

func TestExtractMainPrice(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected float64
		ok       bool
	}{
		{"Plain price", "25,90 DH", 25.90, true},
		{"Dot decimal", "129.99 DH", 129.99, true},
		{"Integer", "45 DH", 45, true},
		{"Promo label keeps first number", "99,00 DH au lieu de 149,00 DH", 99, true},
		{"No number", "Prix sur demande", 0, false},
		{"Empty", "", 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			value, ok := cleaner.ExtractMainPrice(tt.input)
			assert.Equal(t, tt.ok, ok)
			if tt.ok {
				assert.InDelta(t, tt.expected, value, 1e-9)
			}
		})
	}
}

func TestExtractReducedPrice(t *testing.T) {
	value, ok := cleaner.ExtractReducedPrice("149,00 DH 99,00 DH")
	assert.True(t, ok)
	assert.InDelta(t, 99.0, value, 1e-9)

	_, ok = cleaner.ExtractReducedPrice("25,90 DH")
	assert.False(t, ok, "a single number is not a reduction")
}

func TestDiscountPercent(t *testing.T) {
	assert.InDelta(t, 50, cleaner.DiscountPercent(100, 50), 1e-9)
	assert.Zero(t, cleaner.DiscountPercent(0, 50))
	// Clamped to [0, 100]
	assert.Zero(t, cleaner.DiscountPercent(50, 100))
	assert.InDelta(t, 100, cleaner.DiscountPercent(100, -20), 1e-9)
}

func TestCategorize(t *testing.T) {
	tests := []struct {
		title    string
		expected string
	}{
		{"Téléviseur HISENSE 55 pouces", "Électronique"},
		{"Chocolat au lait NESTLE", "Alimentaire"},
		{"Shampoing doux 400ml", "Hygiène & Beauté"},
		{"Lessive liquide 3L - TIDE", "Maison"},
		{"Drapeau Maroc CAN 2025", "Sport & Supporters"},
		{"Bûche glacée vanille", "Fêtes"},
		{"Produit mystère", "Autre"},
	}

	for _, tt := range tests {
		t.Run(tt.title, func(t *testing.T) {
			assert.Equal(t, tt.expected, cleaner.Categorize(tt.title))
		})
	}
}

func TestExtractBrand(t *testing.T) {
	assert.Equal(t, "LINDT", cleaner.ExtractBrand("Dark Chocolate Bar 100g - LINDT"))
	assert.Equal(t, "P&G", cleaner.ExtractBrand("Lessive - P&G"))
	assert.Equal(t, "Non spécifié", cleaner.ExtractBrand("Chocolat noir bio"))
}

func TestIsPromo(t *testing.T) {
	assert.True(t, cleaner.IsPromo("99 DH au lieu de 149 DH -33%"))
	assert.True(t, cleaner.IsPromo("2 achetés = 1 offert"))
	assert.False(t, cleaner.IsPromo("25,90 DH"))
}

func TestClean(t *testing.T) {
	products := []catalog.Product{
		{Title: "  Chocolat   au lait - NESTLE ", Price: "Promotion 149,00 DH 99,00 DH", Image: "https://cdn.example/p.jpg"},
		{Title: "Produit mystère", Price: ""},
	}

	cleaned := cleaner.Clean(products)
	assert.Len(t, cleaned, 2)

	first := cleaned[0]
	assert.Equal(t, "Chocolat au lait - NESTLE", first.Title)
	assert.Equal(t, "Alimentaire", first.Category)
	assert.Equal(t, "NESTLE", first.Brand)
	assert.True(t, first.Promo)
	assert.True(t, first.HasMainPrice)
	assert.InDelta(t, 149, first.MainPrice, 1e-9)
	assert.True(t, first.HasReducedPrice)
	assert.InDelta(t, 99, first.ReducedPrice, 1e-9)
	assert.InDelta(t, (149.0-99.0)/149.0*100, first.DiscountPercent, 1e-9)

	second := cleaned[1]
	assert.Equal(t, "Autre", second.Category)
	assert.False(t, second.HasMainPrice)
	assert.False(t, second.Promo)
}

func TestLabels(t *testing.T) {
	cleaned := cleaner.Clean([]catalog.Product{
		{Title: "Chocolat"},
		{Title: "Lessive"},
	})
	assert.Equal(t, []string{"Alimentaire", "Maison"}, cleaner.Labels(cleaned))
}

func TestAnalyze(t *testing.T) {
	cleaned := cleaner.Clean([]catalog.Product{
		{Title: "Chocolat noir - LINDT", Price: "25,90 DH"},
		{Title: "Chocolat au lait - LINDT", Price: "18,00 DH"},
		{Title: "Lessive 3L - TIDE", Price: "Promotion 149,00 DH 99,00 DH"},
		{Title: "Produit mystère"},
	})

	report := cleaner.Analyze(cleaned)
	assert.Equal(t, 4, report.ProductCount)
	assert.Equal(t, 3, report.WithPrice)
	assert.InDelta(t, (25.90+18.00+149.00)/3, report.AveragePrice, 1e-9)
	assert.InDelta(t, 18.00, report.MinPrice, 1e-9)
	assert.InDelta(t, 149.00, report.MaxPrice, 1e-9)
	assert.Equal(t, 2, report.Categories["Alimentaire"])
	assert.Equal(t, 1, report.Categories["Maison"])
	assert.Equal(t, 1, report.Categories["Autre"])
	assert.Equal(t, 2, report.TopBrands["LINDT"])
	assert.Equal(t, 1, report.PromoCount)
}

func TestAnalyzeEmpty(t *testing.T) {
	report := cleaner.Analyze(nil)
	assert.Zero(t, report.ProductCount)
	assert.Zero(t, report.AveragePrice)
	assert.Zero(t, report.MinPrice)
}
