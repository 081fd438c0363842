package pipeline

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"survey-pipeline/internal/survey"

	"github.com/xuri/excelize/v2"
)

// Row is one respondent record keyed by column name. Values stay raw strings
// as exported; coercion happens where a statistic needs it.
type Row map[string]string

// Table is the in-memory respondent table. Stages only ever subset it; the
// single derived column (edu_short) is added during grouping.
type Table []Row

// ------------------- Ingestion -------------------

// LoadTable reads the survey export at path into a Table. CSV and XLSX
// exports are supported, chosen by extension. The question-label row and
// ImportId metadata rows are dropped here so downstream stages only ever see
// respondent data.
func LoadTable(path string) (Table, error) {
	fmt.Printf("➡️ Starting ingestion for export: %s\n", path)

	var rows [][]string
	var err error
	switch strings.ToLower(filepath.Ext(path)) {
	case ".xlsx", ".xls":
		rows, err = readXLSX(path)
	default:
		rows, err = readCSV(path)
	}
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, fmt.Errorf("export %s is empty", path)
	}

	headers := make([]string, len(rows[0]))
	for i, h := range rows[0] {
		// Clean header names: trim whitespace and remove all quotes
		headers[i] = strings.ReplaceAll(strings.TrimSpace(h), `"`, "")
	}
	if err := checkColumns(headers); err != nil {
		return nil, err
	}

	table := make(Table, 0, len(rows))
	for _, record := range rows[1:] {
		row := make(Row, len(headers))
		for i, h := range headers {
			if i < len(record) {
				row[h] = record[i]
			} else {
				row[h] = ""
			}
		}
		table = append(table, row)
	}

	// The first data row repeats the question texts as labels; skip it.
	if len(table) > 0 {
		table = table[1:]
	}

	// Remove ImportId metadata rows
	data := make(Table, 0, len(table))
	dropped := 0
	for _, row := range table {
		if strings.Contains(row["Q3.1"], survey.ImportMarker) {
			dropped++
			continue
		}
		data = append(data, row)
	}

	fmt.Printf("📄 Ingestion done: %d rows read from %s (%d metadata rows dropped)\n",
		len(data), path, dropped)
	return data, nil
}

func readCSV(path string) ([][]string, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open export file: %w", err)
	}
	defer file.Close()

	csvReader := csv.NewReader(file)
	csvReader.LazyQuotes = true
	csvReader.FieldsPerRecord = -1

	var rows [][]string
	for {
		record, err := csvReader.Read()
		if err == io.EOF {
			return rows, nil
		} else if err != nil {
			return nil, fmt.Errorf("CSV read error: %w", err)
		}
		rows = append(rows, record)
	}
}

func readXLSX(path string) ([][]string, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open xlsx export: %w", err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, fmt.Errorf("xlsx export %s has no sheets", path)
	}
	rows, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, fmt.Errorf("failed to read xlsx rows: %w", err)
	}
	return rows, nil
}

func checkColumns(headers []string) error {
	have := make(map[string]bool, len(headers))
	for _, h := range headers {
		have[h] = true
	}
	for _, col := range survey.RequiredColumns {
		if !have[col] {
			return fmt.Errorf("missing required column: %s", col)
		}
	}
	return nil
}
