package search_test

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/mohammed-adachi/marjane-products-pipeline/internal/search"
)

func TestExportRoundTrip(t *testing.T) {
	engine := groceryEngine(t, nil)

	batch, err := engine.BatchSearch([]string{"chocolate", "milk", ""}, 3)
	assert.NoError(t, err)

	path := filepath.Join(t.TempDir(), "search_results.json")
	assert.NoError(t, search.Export(batch, path))

	data, err := os.ReadFile(path)
	assert.NoError(t, err)

	var reloaded map[string][]search.Result
	assert.NoError(t, json.Unmarshal(data, &reloaded))

	assert.Len(t, reloaded, len(batch))
	for query, results := range batch {
		assert.Len(t, reloaded[query], len(results))
		for i, r := range results {
			assert.Equal(t, r.Index, reloaded[query][i].Index)
			assert.Equal(t, r.Titre, reloaded[query][i].Titre)
			assert.Equal(t, r.Prix, reloaded[query][i].Prix)
			assert.Equal(t, r.Image, reloaded[query][i].Image)
			assert.InDelta(t, r.Similarite, reloaded[query][i].Similarite, 1e-9)
			assert.InDelta(t, r.ScorePourcentage, reloaded[query][i].ScorePourcentage, 1e-9)
		}
	}
}

func TestExportFieldNames(t *testing.T) {
	path := filepath.Join(t.TempDir(), "single.json")
	results := []search.Result{{
		Index:            2,
		Titre:            "Milk Chocolate 200g - NESTLE",
		Prix:             "18,00 DH",
		Image:            "https://cdn.example/nestle.jpg",
		Similarite:       0.42,
		ScorePourcentage: 42,
	}}
	assert.NoError(t, search.ExportSingle("chocolat", results, path))

	data, err := os.ReadFile(path)
	assert.NoError(t, err)

	// Historical export format: keyed by query, french field names
	var raw map[string][]map[string]interface{}
	assert.NoError(t, json.Unmarshal(data, &raw))
	assert.Contains(t, raw, "chocolat")

	entry := raw["chocolat"][0]
	for _, field := range []string{"index", "titre", "prix", "image", "similarite", "score_pourcentage"} {
		assert.Contains(t, entry, field)
	}
}

func TestExportUnwritableDestination(t *testing.T) {
	err := search.Export(map[string][]search.Result{}, filepath.Join(t.TempDir(), "missing", "out.json"))
	assert.Error(t, err)
}
