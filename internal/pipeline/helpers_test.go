package pipeline

import (
	"encoding/csv"
	"os"
	"path/filepath"
	"testing"

	"survey-pipeline/internal/survey"

	"github.com/stretchr/testify/require"
)

// makeRow builds a respondent row that passes every quality gate, with
// overrides applied on top.
func makeRow(overrides map[string]string) Row {
	row := Row{
		survey.ColStartDate: "2026-02-01 10:00:00",
		survey.ColCountry:   "France",
		survey.ColAge:       "25-34 years old",
		survey.ColEducation: "Secondary",
		survey.ColAttention: survey.AttentionAnswer,
		survey.ColOECD:      "True",
		survey.ColLMIC:      "False",
		"Q3.1":              survey.Q31Options[0],
		"Q3.2":              survey.Q32Options[0],
		"Q4.1":              survey.Q41Options[0],
		"Q7.1":              "Yes",
		"Q7.2":              "Yes",
		"Q7.3":              "No",
		"Q7.4":              "Yes",
		"Q7.5":              "No",
		"Q7.6":              "Yes",
		"Q7.7":              survey.Q77FullOptions[0],
		"Q7.8_1":            "100",
		"Q7.8_7":            "0",
		"Q7.8_8":            "0",
		"Q7.8_9":            "0",
		"Q7.8_10":           "0",
	}
	for k, v := range overrides {
		row[k] = v
	}
	return row
}

// makeRows builds n identical rows with the same overrides.
func makeRows(n int, overrides map[string]string) Table {
	table := make(Table, 0, n)
	for i := 0; i < n; i++ {
		table = append(table, makeRow(overrides))
	}
	return table
}

// writeCSV writes a survey export CSV in the real layout: header row,
// question-label row, then data rows.
func writeCSV(t *testing.T, rows Table) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "survey.csv")
	f, err := os.Create(path)
	require.NoError(t, err)
	defer f.Close()

	w := csv.NewWriter(f)
	require.NoError(t, w.Write(survey.RequiredColumns))

	label := make([]string, len(survey.RequiredColumns))
	for i := range label {
		label[i] = "Question text label"
	}
	require.NoError(t, w.Write(label))

	for _, row := range rows {
		record := make([]string, len(survey.RequiredColumns))
		for i, col := range survey.RequiredColumns {
			record[i] = row[col]
		}
		require.NoError(t, w.Write(record))
	}
	w.Flush()
	require.NoError(t, w.Error())
	return path
}
