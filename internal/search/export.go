package search

import (
	"encoding/json"
	"fmt"
	"os"
)

// Export serializes a result set to a JSON file, one key per query. Single
// searches export the same shape with their query as the only key.
func Export(results map[string][]Result, path string) error {
	data, err := json.MarshalIndent(results, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal results: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write results: %w", err)
	}
	return nil
}

// ExportSingle exports one query's results under the query as its key
func ExportSingle(query string, results []Result, path string) error {
	return Export(map[string][]Result{query: results}, path)
}
