package pipeline

import (
	"fmt"
	"strings"

	"survey-pipeline/internal/model"
	"survey-pipeline/internal/survey"
	"survey-pipeline/pkg/utils"
)

// ------------------- Cell aggregation -------------------

// AggregateCell computes the full per-question statistics for one row
// subset, or nil when the subset is empty. Yes/no and single-choice counts
// match option values exactly; rows with missing or unexpected answers still
// count toward n but toward no option.
func AggregateCell(rows Table) *model.Cell {
	n := len(rows)
	if n == 0 {
		return nil
	}

	cell := &model.Cell{N: n}

	cell.Q71 = countYesNo(rows, "Q7.1")
	cell.Q31 = countOptions(rows, "Q3.1", survey.Q31Options)
	cell.Q32 = countOptions(rows, "Q3.2", survey.Q32Options)
	cell.Q41 = countOptions(rows, "Q4.1", survey.Q41Options)
	cell.Q72 = countYesNo(rows, "Q7.2")
	cell.Q73 = countYesNo(rows, "Q7.3")
	cell.Q74 = countYesNo(rows, "Q7.4")
	cell.Q75 = countYesNo(rows, "Q7.5")

	// Q7.6 is counted across all rows in the subset, with a yes+no denominator.
	cell.Q76 = countYesNo(rows, "Q7.6")
	cell.NQ76 = cell.Q76[0] + cell.Q76[1]

	cell.Q77 = countMultiSelect(rows, "Q7.7", survey.Q77FullOptions)
	cell.NQ77 = countAnswered(rows, "Q7.7")

	cell.Q78, cell.NQ78 = meanAllocations(rows)

	return cell
}

func countYesNo(rows Table, col string) []int {
	yes, no := 0, 0
	for _, row := range rows {
		switch row[col] {
		case "Yes":
			yes++
		case "No":
			no++
		}
	}
	return []int{yes, no}
}

func countOptions(rows Table, col string, options []string) []int {
	counts := make([]int, len(options))
	for _, row := range rows {
		for i, opt := range options {
			if row[col] == opt {
				counts[i]++
				break
			}
		}
	}
	return counts
}

// countMultiSelect counts rows whose raw answer text contains each option.
// Substring matching tolerates the export's inconsistent multi-select
// encodings; a row can count toward several options.
func countMultiSelect(rows Table, col string, options []string) []int {
	counts := make([]int, len(options))
	for _, row := range rows {
		for i, opt := range options {
			if strings.Contains(row[col], opt) {
				counts[i]++
			}
		}
	}
	return counts
}

func countAnswered(rows Table, col string) int {
	n := 0
	for _, row := range rows {
		if row[col] != "" {
			n++
		}
	}
	return n
}

// meanAllocations averages the Q7.8 percentage fields over the rows that
// answered Q7.7 (allocation is only meaningful given a selection).
// Unparsable or missing fields count as zero. An empty restricted subset
// reports all-zero means with denominator 0.
func meanAllocations(rows Table) ([]float64, int) {
	var answered Table
	for _, row := range rows {
		if row["Q7.7"] != "" {
			answered = append(answered, row)
		}
	}
	means := make([]float64, len(survey.Q78Cols))
	if len(answered) == 0 {
		return means, 0
	}

	for i, col := range survey.Q78Cols {
		sum := 0.0
		for _, row := range answered {
			sum += utils.ParsePercent(row[col])
		}
		means[i] = utils.Round1(sum / float64(len(answered)))
	}
	return means, len(answered)
}

// ------------------- Group enumeration -------------------

// BuildCells aggregates every (geography, age, education) combination:
// overall, the two macro groups and each qualifying country, crossed with
// (all, all), (age, all), (all, edu) and (age, edu). Breakdown cells under
// survey.MinCellN respondents are suppressed; the per-geography All|All cell
// is always kept when non-empty.
func BuildCells(table Table, geos []model.Geography) map[string]*model.Cell {
	cells := make(map[string]*model.Cell)

	// Derived short education label, added once so bucket matching is a
	// plain string compare. Unmapped values get "" and match no bucket.
	for _, row := range table {
		row[survey.ColEduShort] = survey.EduShort(row[survey.ColEducation])
	}

	addCells := func(prefix string, subset Table) {
		// All ages, all education: kept whenever the geography has any rows.
		if cell := AggregateCell(subset); cell != nil {
			cells[cellKey(prefix, survey.AllLabel, survey.AllLabel)] = cell
		}

		for _, age := range survey.AgeGroups {
			ageSubset := filterCol(subset, survey.ColAge, age.Full)
			if cell := AggregateCell(ageSubset); cell != nil && cell.N >= survey.MinCellN {
				cells[cellKey(prefix, age.Short, survey.AllLabel)] = cell
			}
		}

		for _, edu := range survey.EduShortOrder {
			eduSubset := filterCol(subset, survey.ColEduShort, edu)
			if cell := AggregateCell(eduSubset); cell != nil && cell.N >= survey.MinCellN {
				cells[cellKey(prefix, survey.AllLabel, edu)] = cell
			}
		}

		for _, age := range survey.AgeGroups {
			ageSubset := filterCol(subset, survey.ColAge, age.Full)
			for _, edu := range survey.EduShortOrder {
				combo := filterCol(ageSubset, survey.ColEduShort, edu)
				if cell := AggregateCell(combo); cell != nil && cell.N >= survey.MinCellN {
					cells[cellKey(prefix, age.Short, edu)] = cell
				}
			}
		}
	}

	fmt.Printf("📊 Aggregating: %s\n", survey.AllLabel)
	addCells(survey.AllLabel, table)

	oecdRows := filterCol(table, survey.ColOECD, "True")
	fmt.Printf("📊 Aggregating: OECD (n=%d)\n", len(oecdRows))
	addCells("OECD", oecdRows)

	lmicRows := filterCol(table, survey.ColLMIC, "True")
	fmt.Printf("📊 Aggregating: LMIC (n=%d)\n", len(lmicRows))
	addCells("LMIC", lmicRows)

	for _, geo := range geos {
		countryRows := filterCol(table, survey.ColCountry, geo.FullName)
		fmt.Printf("📊 Aggregating: %s (n=%d)\n", geo.ID, len(countryRows))
		addCells(geo.ID, countryRows)
	}

	fmt.Printf("📊 Aggregation Summary: %d cells built\n", len(cells))
	return cells
}

func cellKey(geo, age, edu string) string {
	return geo + survey.KeySep + age + survey.KeySep + edu
}

func filterCol(rows Table, col, value string) Table {
	var out Table
	for _, row := range rows {
		if row[col] == value {
			out = append(out, row)
		}
	}
	return out
}
