package catalog

import (
	"encoding/csv"
	"fmt"
	"os"
)

// CategoryIndex maps category labels to the catalog positions that carry
// them. It is built once from the cleaned-products CSV, whose row order is
// the catalog order, and is read-only afterwards.
type CategoryIndex struct {
	byCategory map[string][]int
}

// NewCategoryIndex builds an index from per-row labels, label i belonging
// to catalog position i.
func NewCategoryIndex(labels []string) *CategoryIndex {
	idx := &CategoryIndex{byCategory: make(map[string][]int)}
	for i, label := range labels {
		if label == "" {
			continue
		}
		idx.byCategory[label] = append(idx.byCategory[label], i)
	}
	return idx
}

// LoadCategories reads the cleaned-products CSV and indexes its "categorie"
// column. Rows are keyed by position, matching the catalog they were
// cleaned from.
func LoadCategories(path string) (*CategoryIndex, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open categories %s: %w", path, err)
	}
	defer f.Close()

	reader := csv.NewReader(f)
	records, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("failed to parse categories %s: %w", path, err)
	}
	if len(records) == 0 {
		return NewCategoryIndex(nil), nil
	}

	col := -1
	for i, name := range records[0] {
		if name == "categorie" {
			col = i
			break
		}
	}
	if col < 0 {
		return nil, fmt.Errorf("categories %s: no categorie column", path)
	}

	labels := make([]string, 0, len(records)-1)
	for _, record := range records[1:] {
		if col < len(record) {
			labels = append(labels, record[col])
		} else {
			labels = append(labels, "")
		}
	}
	return NewCategoryIndex(labels), nil
}

// Indices returns the catalog positions labeled with the category, in
// ascending order. Unknown categories return nil.
func (c *CategoryIndex) Indices(category string) []int {
	return c.byCategory[category]
}

// Categories lists the known labels
func (c *CategoryIndex) Categories() []string {
	out := make([]string, 0, len(c.byCategory))
	for label := range c.byCategory {
		out = append(out, label)
	}
	return out
}
