package pipeline

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"survey-pipeline/internal/model"
	"survey-pipeline/internal/store"
	"survey-pipeline/pkg/utils"
)

// ------------------- Pipeline Runner -------------------

// Run executes one full processing run: load -> filter -> geographies ->
// aggregate -> assemble -> outputs. The pipeline is a single synchronous
// pass over the in-memory table; failure at any stage aborts the run.
func Run(ctx context.Context, runID string, spec model.RunSpec) (err error) {
	start := time.Now()
	fmt.Printf("🚀 Starting survey run: %s\n", runID)

	store.UpdateRunStatus(runID, "running")
	defer func() {
		if err != nil {
			store.UpdateRunStatus(runID, "failed")
			store.SaveRunError(runID, err)
		}
	}()

	ctx, cancel := context.WithTimeout(ctx, utils.ParseDuration(spec.Timeout))
	defer cancel()

	// --- INGESTION STAGE ---
	store.UpdateRunStatus(runID, "ingesting")
	table, err := LoadTable(spec.Input)
	if err != nil {
		return fmt.Errorf("ingestion failed: %w", err)
	}
	if err = ctx.Err(); err != nil {
		return err
	}

	// --- FILTER STAGE ---
	store.UpdateRunStatus(runID, "filtering")
	valid, stats, err := FilterRows(table)
	if err != nil {
		return fmt.Errorf("filtering failed: %w", err)
	}
	store.SetRunTotal(runID, stats.Valid)

	// --- AGGREGATION STAGE ---
	store.UpdateRunStatus(runID, "aggregating")
	geos := Geographies(valid)
	if err = ctx.Err(); err != nil {
		return err
	}
	cells := BuildCells(valid, geos)
	if err = ctx.Err(); err != nil {
		return err
	}

	// --- EXPORT STAGE ---
	store.UpdateRunStatus(runID, "exporting")
	summary := BuildSummary(valid, geos, cells)
	data, err := json.Marshal(summary)
	if err != nil {
		return fmt.Errorf("failed to encode summary: %w", err)
	}
	fmt.Printf("📦 JSON size: %d bytes (%.1f KB)\n", len(data), float64(len(data))/1024)

	if err = persistSummary(runID, summary, data); err != nil {
		return err
	}
	if spec.Output != "" {
		if err = WriteSummaryFile(spec.Output, data); err != nil {
			return err
		}
	}
	if spec.Embed != "" {
		if err = EmbedSummary(spec.Embed, data); err != nil {
			return err
		}
	}
	if spec.Output == "" && spec.Embed == "" && !store.Enabled() {
		fmt.Println("⚠️ No output or embed target configured; results were not persisted.")
	}

	fmt.Printf("🏁 Run %s completed in %v\n", runID, time.Since(start))
	store.UpdateRunStatus(runID, "completed")
	return nil
}
