package handler

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"time"

	"survey-pipeline/internal/model"
	"survey-pipeline/internal/pipeline"
	"survey-pipeline/internal/store"
	"survey-pipeline/pkg/utils"

	"github.com/google/uuid"
)

const runsPrefix = "/api/v1/runs/"

// CreateRun starts a new survey processing run
// @Summary Create a new run
// @Description Create and start a survey processing run with the provided configuration
// @Tags runs
// @Accept json
// @Produce json
// @Param run body model.RunSpec true "Run configuration"
// @Success 200 {object} map[string]interface{} "Run created successfully"
// @Failure 400 {object} map[string]interface{} "Invalid request payload"
// @Failure 500 {object} map[string]interface{} "Internal server error"
// @Router /runs [post]
func CreateRun(w http.ResponseWriter, r *http.Request) {
	var spec model.RunSpec
	if err := json.NewDecoder(r.Body).Decode(&spec); err != nil {
		http.Error(w, "Invalid JSON payload", http.StatusBadRequest)
		return
	}

	if spec.Input == "" {
		http.Error(w, "An input file is required", http.StatusBadRequest)
		return
	}

	runID := uuid.New().String()

	if err := store.SaveRun(runID, spec); err != nil {
		http.Error(w, "Failed to save run", http.StatusInternalServerError)
		return
	}

	// Execute the run asynchronously; status and errors land in the store.
	ctx, cancel := context.WithTimeout(context.Background(), utils.ParseDuration(spec.Timeout))
	go func() {
		defer cancel()
		if err := pipeline.Run(ctx, runID, spec); err != nil {
			store.SaveRunError(runID, err)
		}
	}()

	resp := map[string]interface{}{
		"message":   "Run created successfully!",
		"runID":     runID,
		"status":    "pending",
		"createdAt": time.Now().UTC(),
	}
	writeJSON(w, resp)
}

// ListRuns retrieves all processing runs
// @Summary List all runs
// @Description Get a list of all processing runs with their current status
// @Tags runs
// @Produce json
// @Success 200 {array} map[string]interface{} "List of runs"
// @Failure 500 {object} map[string]interface{} "Internal server error"
// @Router /runs [get]
func ListRuns(w http.ResponseWriter, r *http.Request) {
	runs, err := store.ListRuns()
	if err != nil {
		http.Error(w, "Failed to fetch runs", http.StatusInternalServerError)
		return
	}
	writeJSON(w, runs)
}

// GetRun retrieves a specific run
// @Summary Get run
// @Description Retrieve details of a specific processing run
// @Tags runs
// @Produce json
// @Param id path string true "Run ID"
// @Success 200 {object} map[string]interface{} "Run details"
// @Failure 404 {object} map[string]interface{} "Run not found"
// @Router /runs/{id} [get]
func GetRun(w http.ResponseWriter, r *http.Request) {
	runID := runIDFromPath(r.URL.Path, "")
	if runID == "" {
		http.Error(w, "Run ID is required", http.StatusBadRequest)
		return
	}

	run, err := store.GetRun(runID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			http.Error(w, "Run not found", http.StatusNotFound)
		} else {
			http.Error(w, "Failed to fetch run", http.StatusInternalServerError)
		}
		return
	}
	writeJSON(w, run)
}

// GetRunErrors retrieves the errors recorded for a run
// @Summary Get run errors
// @Description Retrieve the errors recorded for a processing run
// @Tags runs
// @Produce json
// @Param id path string true "Run ID"
// @Success 200 {array} map[string]interface{} "Run errors"
// @Failure 500 {object} map[string]interface{} "Internal server error"
// @Router /runs/{id}/errors [get]
func GetRunErrors(w http.ResponseWriter, r *http.Request) {
	runID := runIDFromPath(r.URL.Path, "/errors")
	if runID == "" {
		http.Error(w, "Run ID is required", http.StatusBadRequest)
		return
	}

	runErrors, err := store.ListRunErrors(runID)
	if err != nil {
		http.Error(w, "Failed to fetch run errors", http.StatusInternalServerError)
		return
	}
	if runErrors == nil {
		runErrors = []map[string]interface{}{}
	}
	writeJSON(w, runErrors)
}

// GetRunGeographies retrieves the qualifying geography list for a run
// @Summary Get run geographies
// @Description Retrieve the geographies that qualified in a processing run
// @Tags runs
// @Produce json
// @Param id path string true "Run ID"
// @Success 200 {array} model.Geography "Qualifying geographies"
// @Failure 500 {object} map[string]interface{} "Internal server error"
// @Router /runs/{id}/geographies [get]
func GetRunGeographies(w http.ResponseWriter, r *http.Request) {
	runID := runIDFromPath(r.URL.Path, "/geographies")
	if runID == "" {
		http.Error(w, "Run ID is required", http.StatusBadRequest)
		return
	}

	geos, err := store.ListGeographies(runID)
	if err != nil {
		http.Error(w, "Failed to fetch geographies", http.StatusInternalServerError)
		return
	}
	if geos == nil {
		geos = []model.Geography{}
	}
	writeJSON(w, geos)
}

// GetSummary serves the latest pre-aggregated summary
// @Summary Get latest summary
// @Description Serve the most recently generated summary JSON, as consumed by the static page
// @Tags summary
// @Produce json
// @Success 200 {object} model.Summary "Latest summary"
// @Failure 404 {object} map[string]interface{} "No summary generated yet"
// @Router /summary [get]
func GetSummary(w http.ResponseWriter, r *http.Request) {
	body, err := store.LatestSummary()
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			http.Error(w, "No summary generated yet", http.StatusNotFound)
		} else {
			http.Error(w, "Failed to fetch summary", http.StatusInternalServerError)
		}
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.Write(body)
}

// runIDFromPath extracts the run ID from /api/v1/runs/{id}[suffix].
func runIDFromPath(path, suffix string) string {
	if !strings.HasPrefix(path, runsPrefix) {
		return ""
	}
	id := strings.TrimPrefix(path, runsPrefix)
	if suffix != "" {
		id = strings.TrimSuffix(id, suffix)
	}
	return strings.Trim(id, "/")
}

func writeJSON(w http.ResponseWriter, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(v)
}
