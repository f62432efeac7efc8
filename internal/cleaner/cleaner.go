package cleaner

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/mohammed-adachi/marjane-products-pipeline/internal/catalog"
)

// CleanedProduct is a catalog entry with the structured fields derived from
// its raw title and price text. Row order matches the catalog it was
// cleaned from.
type CleanedProduct struct {
	Title           string
	Price           string
	Image           string
	MainPrice       float64
	HasMainPrice    bool
	ReducedPrice    float64
	HasReducedPrice bool
	DiscountPercent float64
	Category        string
	Brand           string
	Promo           bool
}

var (
	priceRe = regexp.MustCompile(`(\d+(?:[,\.]\d+)?)`)
	brandRe = regexp.MustCompile(`-\s*([A-Z][A-Z\s&]+)$`)
)

// categoryKeywords drives keyword categorisation of product titles. First
// matching category wins, in this order.
var categoryOrder = []string{
	"Électronique", "Alimentaire", "Hygiène & Beauté", "Maison",
	"Sport & Supporters", "Fêtes",
}

var categoryKeywords = map[string][]string{
	"Électronique":       {"téléviseur", "tv", "écran", "hisense", "samsung", "lg", "électroménager"},
	"Alimentaire":        {"chocolat", "biscuit", "lait", "eau", "jus", "fromage", "yaourt", "huile", "tomate"},
	"Hygiène & Beauté":   {"shampoing", "savon", "crème", "déodorant", "dentifrice", "parfum"},
	"Maison":             {"lessive", "assouplissant", "nettoyage", "détergent", "fairy", "tide"},
	"Sport & Supporters": {"drapeau", "vuvuzela", "mug", "can 2025", "maroc"},
	"Fêtes":              {"bûche", "chocolat", "calendrier", "bonbon", "cadeau"},
}

var promoKeywords = []string{"remise", "promotion", "-", "%", "achetés"}

// ExtractMainPrice pulls the first decimal number out of raw price text
func ExtractMainPrice(price string) (float64, bool) {
	match := priceRe.FindString(price)
	if match == "" {
		return 0, false
	}
	value, err := strconv.ParseFloat(strings.ReplaceAll(match, ",", "."), 64)
	if err != nil {
		return 0, false
	}
	return value, true
}

// ExtractReducedPrice pulls the last decimal number out of raw price text,
// which on promo labels is the discounted price. Only meaningful when the
// text carries more than one number.
func ExtractReducedPrice(price string) (float64, bool) {
	matches := priceRe.FindAllString(price, -1)
	if len(matches) < 2 {
		return 0, false
	}
	value, err := strconv.ParseFloat(strings.ReplaceAll(matches[len(matches)-1], ",", "."), 64)
	if err != nil {
		return 0, false
	}
	return value, true
}

// DiscountPercent computes the discount between main and reduced price,
// clamped to [0, 100].
func DiscountPercent(main, reduced float64) float64 {
	if main <= 0 {
		return 0
	}
	discount := (main - reduced) / main * 100
	if discount < 0 {
		return 0
	}
	if discount > 100 {
		return 100
	}
	return discount
}

// Categorize assigns a category from title keywords, "Autre" when nothing
// matches.
func Categorize(title string) string {
	lower := strings.ToLower(title)
	for _, category := range categoryOrder {
		for _, keyword := range categoryKeywords[category] {
			if strings.Contains(lower, keyword) {
				return category
			}
		}
	}
	return "Autre"
}

// ExtractBrand reads a trailing "- BRAND" suffix from the title
func ExtractBrand(title string) string {
	match := brandRe.FindStringSubmatch(strings.TrimSpace(title))
	if match == nil {
		return "Non spécifié"
	}
	return strings.TrimSpace(match[1])
}

// IsPromo reports whether the raw price text looks like a promotion label
func IsPromo(price string) bool {
	lower := strings.ToLower(price)
	for _, keyword := range promoKeywords {
		if strings.Contains(lower, keyword) {
			return true
		}
	}
	return false
}

// Clean derives structured fields for every catalog product, preserving row
// order so downstream consumers can key on catalog position.
func Clean(products []catalog.Product) []CleanedProduct {
	cleaned := make([]CleanedProduct, len(products))
	for i, p := range products {
		title := strings.Join(strings.Fields(p.Title), " ")
		c := CleanedProduct{
			Title:    title,
			Price:    p.Price,
			Image:    p.Image,
			Category: Categorize(title),
			Brand:    ExtractBrand(title),
			Promo:    IsPromo(p.Price),
		}
		c.MainPrice, c.HasMainPrice = ExtractMainPrice(p.Price)
		c.ReducedPrice, c.HasReducedPrice = ExtractReducedPrice(p.Price)
		if c.HasMainPrice && c.HasReducedPrice {
			c.DiscountPercent = DiscountPercent(c.MainPrice, c.ReducedPrice)
		}
		cleaned[i] = c
	}
	return cleaned
}

// Labels returns the per-row category labels of a cleaned set
func Labels(cleaned []CleanedProduct) []string {
	labels := make([]string, len(cleaned))
	for i, c := range cleaned {
		labels[i] = c.Category
	}
	return labels
}
