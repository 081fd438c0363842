package pipeline

import (
	"fmt"
	"time"

	"survey-pipeline/internal/model"
	"survey-pipeline/internal/survey"
)

// startDateLayouts covers the timestamp formats seen in survey exports.
var startDateLayouts = []string{
	"2006-01-02 15:04:05",
	"2006-01-02T15:04:05",
	"2006-01-02",
	"1/2/2006 15:04",
}

// ------------------- Quality filters -------------------

// FilterRows applies the two quality gates in order: the submission-date
// cutoff, then the attention check. Both are independent predicates, so
// re-filtering an already filtered table changes nothing; the ordering only
// affects how removals are attributed in the stats.
func FilterRows(table Table) (Table, model.FilterStats, error) {
	var stats model.FilterStats

	cutoff, err := time.Parse("2006-01-02", survey.DateCutoff)
	if err != nil {
		return nil, stats, fmt.Errorf("bad cutoff date %q: %w", survey.DateCutoff, err)
	}

	afterCutoff := make(Table, 0, len(table))
	for _, row := range table {
		started, err := parseStartDate(row[survey.ColStartDate])
		if err != nil {
			return nil, stats, fmt.Errorf("row has unparsable %s %q: %w",
				survey.ColStartDate, row[survey.ColStartDate], err)
		}
		if started.Before(cutoff) {
			stats.BeforeCutoff++
			continue
		}
		afterCutoff = append(afterCutoff, row)
	}
	fmt.Printf("🔍 Filtered %d test responses before %s\n", stats.BeforeCutoff, survey.DateCutoff)

	valid := make(Table, 0, len(afterCutoff))
	for _, row := range afterCutoff {
		if row[survey.ColAttention] != survey.AttentionAnswer {
			stats.FailedAttention++
			continue
		}
		valid = append(valid, row)
	}
	fmt.Printf("🔍 Filtered %d failed attention checks\n", stats.FailedAttention)

	stats.Valid = len(valid)
	fmt.Printf("✅ Valid responses: %d\n", stats.Valid)
	return valid, stats, nil
}

func parseStartDate(value string) (time.Time, error) {
	var lastErr error
	for _, layout := range startDateLayouts {
		t, err := time.Parse(layout, value)
		if err == nil {
			return t, nil
		}
		lastErr = err
	}
	return time.Time{}, lastErr
}
