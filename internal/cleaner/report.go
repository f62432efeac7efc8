package cleaner

import (
	"math"
	"sort"
)

// Report summarizes a cleaned catalog. Field names follow the historical
// analysis report format.
type Report struct {
	ProductCount int            `json:"nombre_produits"`
	WithPrice    int            `json:"produits_avec_prix"`
	AveragePrice float64        `json:"prix_moyen"`
	MinPrice     float64        `json:"prix_min"`
	MaxPrice     float64        `json:"prix_max"`
	Categories   map[string]int `json:"categories"`
	TopBrands    map[string]int `json:"top_marques"`
	PromoCount   int            `json:"produits_en_promotion"`
}

// Analyze aggregates price, category, brand and promotion statistics over a
// cleaned catalog.
func Analyze(cleaned []CleanedProduct) Report {
	report := Report{
		ProductCount: len(cleaned),
		Categories:   make(map[string]int),
		TopBrands:    make(map[string]int),
	}

	brandCounts := make(map[string]int)
	var priceSum float64
	report.MinPrice = math.Inf(1)

	for _, c := range cleaned {
		report.Categories[c.Category]++
		if c.Brand != "Non spécifié" {
			brandCounts[c.Brand]++
		}
		if c.Promo {
			report.PromoCount++
		}
		if c.HasMainPrice {
			report.WithPrice++
			priceSum += c.MainPrice
			if c.MainPrice < report.MinPrice {
				report.MinPrice = c.MainPrice
			}
			if c.MainPrice > report.MaxPrice {
				report.MaxPrice = c.MainPrice
			}
		}
	}

	if report.WithPrice > 0 {
		report.AveragePrice = priceSum / float64(report.WithPrice)
	} else {
		report.MinPrice = 0
	}

	// Keep the five most frequent brands
	type brandCount struct {
		brand string
		count int
	}
	counts := make([]brandCount, 0, len(brandCounts))
	for brand, count := range brandCounts {
		counts = append(counts, brandCount{brand, count})
	}
	sort.Slice(counts, func(i, j int) bool {
		if counts[i].count != counts[j].count {
			return counts[i].count > counts[j].count
		}
		return counts[i].brand < counts[j].brand
	})
	for i, bc := range counts {
		if i >= 5 {
			break
		}
		report.TopBrands[bc.brand] = bc.count
	}

	return report
}
