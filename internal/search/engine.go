package search

import (
	"errors"

	"github.com/mohammed-adachi/marjane-products-pipeline/internal/catalog"
)

var (
	// ErrNotReady is returned for queries issued before BuildIndex completed
	ErrNotReady = errors.New("search index not built")
	// ErrInvalidIndex is returned for out-of-range product references
	ErrInvalidIndex = errors.New("product index out of range")
	// ErrUnknownCategory is returned when a category has no catalog members
	ErrUnknownCategory = errors.New("unknown category")
	// ErrNoCategories is returned for category searches without a loaded category index
	ErrNoCategories = errors.New("no category index loaded")
)

// Result is one ranked match. JSON field names follow the historical
// export format of the pipeline.
type Result struct {
	Index            int     `json:"index"`
	Titre            string  `json:"titre"`
	Prix             string  `json:"prix"`
	Image            string  `json:"image"`
	Similarite       float64 `json:"similarite"`
	ScorePourcentage float64 `json:"score_pourcentage"`
}

// Engine answers similarity queries over a fixed product catalog. It owns
// the fitted vocabulary and the document matrix; both are built exactly once
// by BuildIndex and are read-only afterwards, so a built Engine is safe for
// concurrent query evaluation.
type Engine struct {
	items      []catalog.Product
	categories *catalog.CategoryIndex
	vectorizer *TFIDFVectorizer
	matrix     [][]float64
	ready      bool
}

// NewEngine creates an engine over the catalog. categories may be nil when
// no cleaned category data is available; category-scoped searches then fail
// with ErrNoCategories.
func NewEngine(items []catalog.Product, categories *catalog.CategoryIndex) *Engine {
	return &Engine{
		items:      items,
		categories: categories,
		vectorizer: NewTFIDFVectorizer(),
	}
}

// SetVectorizer replaces the default vectorizer. Must be called before
// BuildIndex.
func (e *Engine) SetVectorizer(v *TFIDFVectorizer) {
	e.vectorizer = v
}

// BuildIndex fits the vocabulary on the catalog titles and materializes one
// vector row per product. It must complete before any query is accepted; an
// empty catalog still builds (to an empty matrix), so subsequent searches
// return empty results rather than errors.
func (e *Engine) BuildIndex() {
	docs := make([]string, len(e.items))
	for i, item := range e.items {
		docs[i] = item.Title
	}
	e.matrix = e.vectorizer.FitTransform(docs)
	e.ready = true
}

// Ready reports whether BuildIndex has completed
func (e *Engine) Ready() bool {
	return e.ready
}

// Len returns the catalog size
func (e *Engine) Len() int {
	return len(e.items)
}

// VocabularySize returns the number of fitted terms
func (e *Engine) VocabularySize() int {
	return len(e.vectorizer.Vocabulary)
}

// Search ranks the whole catalog against a free-text query and returns at
// most k matches. Queries with no usable terms yield an empty result.
func (e *Engine) Search(query string, k int) ([]Result, error) {
	if !e.ready {
		return nil, ErrNotReady
	}
	queryVector := e.vectorizer.Transform(query)
	return e.toResults(rankTopK(queryVector, e.matrix, k)), nil
}

// BatchSearch runs Search independently for each query and maps every query
// string to its own results. A degenerate query never aborts the batch; its
// entry is present with an empty result slice.
func (e *Engine) BatchSearch(queries []string, k int) (map[string][]Result, error) {
	if !e.ready {
		return nil, ErrNotReady
	}
	batch := make(map[string][]Result, len(queries))
	for _, query := range queries {
		results, err := e.Search(query, k)
		if err != nil {
			return nil, err
		}
		batch[query] = results
	}
	return batch, nil
}

// SearchByCategory ranks only the catalog rows carrying the given category
// label and maps the winners back to their global catalog indices.
func (e *Engine) SearchByCategory(query, category string, k int) ([]Result, error) {
	if !e.ready {
		return nil, ErrNotReady
	}
	if e.categories == nil {
		return nil, ErrNoCategories
	}

	indices := e.categories.Indices(category)
	if len(indices) == 0 {
		return nil, ErrUnknownCategory
	}

	rows := make([][]float64, 0, len(indices))
	for _, idx := range indices {
		if idx >= 0 && idx < len(e.matrix) {
			rows = append(rows, e.matrix[idx])
		} else {
			rows = append(rows, nil)
		}
	}

	queryVector := e.vectorizer.Transform(query)
	ranked := rankTopK(queryVector, rows, k)

	// Map subset-local ranks back to catalog positions
	for i := range ranked {
		ranked[i].Index = indices[ranked[i].Index]
	}
	return e.toResults(ranked), nil
}

// SimilarProducts ranks the catalog against one product's own vector. The
// product's row is suppressed before selection, so it never appears in its
// own neighborhood.
func (e *Engine) SimilarProducts(index, k int) ([]Result, error) {
	if !e.ready {
		return nil, ErrNotReady
	}
	if index < 0 || index >= len(e.items) {
		return nil, ErrInvalidIndex
	}

	rows := make([][]float64, len(e.matrix))
	copy(rows, e.matrix)
	rows[index] = nil

	return e.toResults(rankTopK(e.matrix[index], rows, k)), nil
}

func (e *Engine) toResults(ranked []scored) []Result {
	results := make([]Result, 0, len(ranked))
	for _, hit := range ranked {
		item := e.items[hit.Index]
		results = append(results, Result{
			Index:            hit.Index,
			Titre:            item.Title,
			Prix:             item.Price,
			Image:            item.Image,
			Similarite:       hit.Score,
			ScorePourcentage: hit.Score * 100,
		})
	}
	return results
}
