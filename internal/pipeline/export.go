package pipeline

import (
	"fmt"
	"os"
	"path/filepath"

	"survey-pipeline/internal/model"
	"survey-pipeline/internal/store"
)

// ------------------- Export -------------------

// WriteSummaryFile writes the serialized summary verbatim to path, creating
// parent directories as needed.
func WriteSummaryFile(path string, data []byte) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create directory: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write summary file: %w", err)
	}
	fmt.Printf("💾 Written %d bytes to %s\n", len(data), path)
	return nil
}

// persistSummary stores the summary and its geography list for the API to
// serve. No-op when the store is not initialized (plain CLI runs).
func persistSummary(runID string, summary *model.Summary, data []byte) error {
	if !store.Enabled() {
		return nil
	}
	if err := store.SaveSummary(runID, summary.Meta.Generated, data); err != nil {
		return fmt.Errorf("failed to save summary: %w", err)
	}
	if err := store.SaveGeographies(runID, summary.Meta.Countries); err != nil {
		return fmt.Errorf("failed to save geographies: %w", err)
	}
	fmt.Printf("💾 Persisted summary for run %s\n", runID)
	return nil
}
