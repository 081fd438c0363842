package store

import (
	"database/sql"
	"encoding/json"
	"time"

	"survey-pipeline/internal/model"

	_ "github.com/mattn/go-sqlite3"
)

var db *sql.DB

// InitDB opens the sqlite database and creates the schema. The store is
// optional: CLI runs without -db never call InitDB and every store function
// becomes a no-op.
func InitDB(dbPath string) error {
	var err error
	db, err = sql.Open("sqlite3", dbPath)
	if err != nil {
		return err
	}

	schema := []string{
		`CREATE TABLE IF NOT EXISTS runs (
			id TEXT PRIMARY KEY,
			spec TEXT,
			status TEXT,
			total_n INTEGER DEFAULT 0,
			created_at DATETIME,
			updated_at DATETIME
		);`,
		`CREATE TABLE IF NOT EXISTS run_errors (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			run_id TEXT,
			error_message TEXT,
			created_at DATETIME
		);`,
		`CREATE TABLE IF NOT EXISTS summaries (
			run_id TEXT PRIMARY KEY,
			generated TEXT,
			body TEXT,
			created_at DATETIME
		);`,
		`CREATE TABLE IF NOT EXISTS geographies (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			run_id TEXT,
			geo_id TEXT,
			name TEXT,
			grp TEXT,
			n INTEGER
		);`,
	}
	for _, stmt := range schema {
		if _, err := db.Exec(stmt); err != nil {
			return err
		}
	}
	return nil
}

// Enabled reports whether a database was opened.
func Enabled() bool {
	return db != nil
}

// Close closes the database handle.
func Close() error {
	if db == nil {
		return nil
	}
	err := db.Close()
	db = nil
	return err
}

// SaveRun stores a new processing run.
func SaveRun(runID string, spec model.RunSpec) error {
	if db == nil {
		return nil
	}
	specJSON, err := json.Marshal(spec)
	if err != nil {
		return err
	}
	now := time.Now().UTC()
	_, err = db.Exec(`INSERT INTO runs (id, spec, status, created_at, updated_at) VALUES (?, ?, ?, ?, ?)`,
		runID, specJSON, "pending", now, now)
	return err
}

// UpdateRunStatus updates a run's status.
func UpdateRunStatus(runID string, status string) error {
	if db == nil {
		return nil
	}
	now := time.Now().UTC()
	_, err := db.Exec(`UPDATE runs SET status = ?, updated_at = ? WHERE id = ?`, status, now, runID)
	return err
}

// SetRunTotal records the valid respondent count for a run.
func SetRunTotal(runID string, totalN int) error {
	if db == nil {
		return nil
	}
	now := time.Now().UTC()
	_, err := db.Exec(`UPDATE runs SET total_n = ?, updated_at = ? WHERE id = ?`, totalN, now, runID)
	return err
}

// SaveRunError records an error for a run.
func SaveRunError(runID string, runErr error) error {
	if db == nil || runErr == nil {
		return nil
	}
	now := time.Now().UTC()
	_, err := db.Exec(`INSERT INTO run_errors (run_id, error_message, created_at) VALUES (?, ?, ?)`,
		runID, runErr.Error(), now)
	return err
}

// ListRuns returns all runs with basic info, newest first.
func ListRuns() ([]map[string]interface{}, error) {
	if db == nil {
		return nil, nil
	}
	rows, err := db.Query(`SELECT id, status, total_n, created_at, updated_at FROM runs ORDER BY created_at DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var runs []map[string]interface{}
	for rows.Next() {
		var id, status string
		var totalN int
		var createdAt, updatedAt time.Time
		if err := rows.Scan(&id, &status, &totalN, &createdAt, &updatedAt); err != nil {
			return nil, err
		}
		runs = append(runs, map[string]interface{}{
			"id":        id,
			"status":    status,
			"totalN":    totalN,
			"createdAt": createdAt,
			"updatedAt": updatedAt,
		})
	}
	return runs, rows.Err()
}

// GetRun fetches one run's spec and status.
func GetRun(runID string) (map[string]interface{}, error) {
	if db == nil {
		return nil, sql.ErrNoRows
	}
	var specJSON, status string
	var totalN int
	var createdAt, updatedAt time.Time

	err := db.QueryRow(`SELECT spec, status, total_n, created_at, updated_at FROM runs WHERE id = ?`, runID).
		Scan(&specJSON, &status, &totalN, &createdAt, &updatedAt)
	if err != nil {
		return nil, err
	}

	var spec model.RunSpec
	if err := json.Unmarshal([]byte(specJSON), &spec); err != nil {
		return nil, err
	}

	return map[string]interface{}{
		"id":        runID,
		"spec":      spec,
		"status":    status,
		"totalN":    totalN,
		"createdAt": createdAt,
		"updatedAt": updatedAt,
	}, nil
}

// ListRunErrors returns the recorded errors for a run, oldest first.
func ListRunErrors(runID string) ([]map[string]interface{}, error) {
	if db == nil {
		return nil, nil
	}
	rows, err := db.Query(`SELECT error_message, created_at FROM run_errors WHERE run_id = ? ORDER BY created_at`, runID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var errs []map[string]interface{}
	for rows.Next() {
		var message string
		var createdAt time.Time
		if err := rows.Scan(&message, &createdAt); err != nil {
			return nil, err
		}
		errs = append(errs, map[string]interface{}{
			"error":     message,
			"createdAt": createdAt,
		})
	}
	return errs, rows.Err()
}

// SaveSummary stores the serialized summary for a run.
func SaveSummary(runID, generated string, body []byte) error {
	if db == nil {
		return nil
	}
	now := time.Now().UTC()
	_, err := db.Exec(`INSERT OR REPLACE INTO summaries (run_id, generated, body, created_at) VALUES (?, ?, ?, ?)`,
		runID, generated, string(body), now)
	return err
}

// LatestSummary returns the most recently stored summary JSON.
func LatestSummary() ([]byte, error) {
	if db == nil {
		return nil, sql.ErrNoRows
	}
	var body string
	err := db.QueryRow(`SELECT body FROM summaries ORDER BY created_at DESC, run_id DESC LIMIT 1`).Scan(&body)
	if err != nil {
		return nil, err
	}
	return []byte(body), nil
}

// SaveGeographies stores a run's qualifying geography list.
func SaveGeographies(runID string, geos []model.Geography) error {
	if db == nil {
		return nil
	}
	for _, g := range geos {
		_, err := db.Exec(`INSERT INTO geographies (run_id, geo_id, name, grp, n) VALUES (?, ?, ?, ?, ?)`,
			runID, g.ID, g.Name, g.Group, g.N)
		if err != nil {
			return err
		}
	}
	return nil
}

// ListGeographies returns the geography list stored for a run.
func ListGeographies(runID string) ([]model.Geography, error) {
	if db == nil {
		return nil, nil
	}
	rows, err := db.Query(`SELECT geo_id, name, grp, n FROM geographies WHERE run_id = ? ORDER BY n DESC, name`, runID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var geos []model.Geography
	for rows.Next() {
		var g model.Geography
		if err := rows.Scan(&g.ID, &g.Name, &g.Group, &g.N); err != nil {
			return nil, err
		}
		geos = append(geos, g)
	}
	return geos, rows.Err()
}
