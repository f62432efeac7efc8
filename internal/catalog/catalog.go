package catalog

import (
	"encoding/json"
	"fmt"
	"os"
)

// Product is one scraped catalog entry. Price and image are kept as the raw
// scraped text; absent fields decode to the empty string. A product's
// identity is its position in the loaded slice, which every search result
// and similar-product lookup refers back to.
type Product struct {
	Title string `json:"title"`
	Price string `json:"price"`
	Image string `json:"image"`
}

// Load reads a JSON array of products. A missing file surfaces as a wrapped
// fs.ErrNotExist so callers can distinguish "no catalog yet" from a corrupt
// one.
func Load(path string) ([]Product, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read catalog %s: %w", path, err)
	}

	var products []Product
	if err := json.Unmarshal(data, &products); err != nil {
		return nil, fmt.Errorf("failed to parse catalog %s: %w", path, err)
	}
	return products, nil
}
