package pipeline

import (
	"testing"

	"survey-pipeline/internal/model"
	"survey-pipeline/internal/survey"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAggregateCellEmptySubset(t *testing.T) {
	assert.Nil(t, AggregateCell(nil))
	assert.Nil(t, AggregateCell(Table{}))
}

func TestAggregateCellYesNoCounts(t *testing.T) {
	table := Table{
		makeRow(map[string]string{"Q7.1": "Yes"}),
		makeRow(map[string]string{"Q7.1": "Yes"}),
		makeRow(map[string]string{"Q7.1": "No"}),
		makeRow(map[string]string{"Q7.1": "Maybe"}), // excluded from both counts
		makeRow(map[string]string{"Q7.1": ""}),      // missing, still counts toward n
	}

	cell := AggregateCell(table)
	require.NotNil(t, cell)
	assert.Equal(t, 5, cell.N)
	assert.Equal(t, []int{2, 1}, cell.Q71)
}

func TestAggregateCellOptionCountsOrdered(t *testing.T) {
	table := Table{
		makeRow(map[string]string{"Q3.1": survey.Q31Options[2]}),
		makeRow(map[string]string{"Q3.1": survey.Q31Options[0]}),
		makeRow(map[string]string{"Q3.1": survey.Q31Options[0]}),
		makeRow(map[string]string{"Q3.1": "something else"}),
	}

	cell := AggregateCell(table)
	assert.Equal(t, []int{2, 0, 1}, cell.Q31)
}

func TestAggregateCellEmissionsDenominator(t *testing.T) {
	table := Table{
		makeRow(map[string]string{"Q7.6": "Yes"}),
		makeRow(map[string]string{"Q7.6": "No"}),
		makeRow(map[string]string{"Q7.6": ""}),
	}

	cell := AggregateCell(table)
	assert.Equal(t, []int{1, 1}, cell.Q76)
	assert.Equal(t, 2, cell.NQ76)
	assert.Equal(t, 3, cell.N)
}

func TestAggregateCellMultiSelect(t *testing.T) {
	combined := survey.Q77FullOptions[0] + "," + survey.Q77FullOptions[1]
	table := Table{
		makeRow(map[string]string{"Q7.7": combined}),
		makeRow(map[string]string{"Q7.7": survey.Q77FullOptions[1]}),
		makeRow(map[string]string{"Q7.7": ""}),
	}

	cell := AggregateCell(table)
	// The combined row counts toward both options but once in the denominator.
	assert.Equal(t, []int{1, 2, 0, 0, 0}, cell.Q77)
	assert.Equal(t, 2, cell.NQ77)
}

func TestAggregateCellAllocationMeans(t *testing.T) {
	table := Table{
		makeRow(map[string]string{"Q7.8_1": "50", "Q7.8_7": "25", "Q7.8_8": "25", "Q7.8_9": "0", "Q7.8_10": "0"}),
		makeRow(map[string]string{"Q7.8_1": "25", "Q7.8_7": "junk", "Q7.8_8": "", "Q7.8_9": "75", "Q7.8_10": "0"}),
		// Did not answer Q7.7, so excluded from the allocation denominator.
		makeRow(map[string]string{"Q7.7": "", "Q7.8_1": "100"}),
	}

	cell := AggregateCell(table)
	assert.Equal(t, []float64{37.5, 12.5, 12.5, 37.5, 0}, cell.Q78)
	assert.Equal(t, 2, cell.NQ78)
}

func TestAggregateCellAllocationRounding(t *testing.T) {
	table := Table{
		makeRow(map[string]string{"Q7.8_1": "33"}),
		makeRow(map[string]string{"Q7.8_1": "33"}),
		makeRow(map[string]string{"Q7.8_1": "34"}),
	}

	cell := AggregateCell(table)
	assert.Equal(t, 33.3, cell.Q78[0])
}

func TestAggregateCellNoAllocationAnswers(t *testing.T) {
	table := Table{
		makeRow(map[string]string{"Q7.7": ""}),
		makeRow(map[string]string{"Q7.7": ""}),
	}

	cell := AggregateCell(table)
	assert.Equal(t, []float64{0, 0, 0, 0, 0}, cell.Q78)
	assert.Equal(t, 0, cell.NQ78)
}

func TestAggregateCellCountsNeverExceedDenominators(t *testing.T) {
	table := Table{
		makeRow(nil),
		makeRow(map[string]string{"Q7.1": "No", "Q3.1": survey.Q31Options[1]}),
		makeRow(map[string]string{"Q7.7": survey.Q77FullOptions[2]}),
		makeRow(map[string]string{"Q7.6": "", "Q7.7": ""}),
		makeRow(map[string]string{"Q4.1": survey.Q41Options[4]}),
	}

	cell := AggregateCell(table)
	for _, counts := range [][]int{cell.Q71, cell.Q31, cell.Q32, cell.Q41, cell.Q72, cell.Q73, cell.Q74, cell.Q75} {
		assert.LessOrEqual(t, sum(counts), cell.N)
	}
	assert.LessOrEqual(t, sum(cell.Q76), cell.NQ76)
	for _, c := range cell.Q77 {
		// Multi-select: each option count is bounded by its own denominator.
		assert.LessOrEqual(t, c, cell.NQ77)
	}
	for _, m := range cell.Q78 {
		assert.GreaterOrEqual(t, m, 0.0)
		assert.LessOrEqual(t, m, 100.0)
	}
}

func sum(counts []int) int {
	total := 0
	for _, c := range counts {
		total += c
	}
	return total
}

func TestBuildCellsSuppression(t *testing.T) {
	// 6 respondents aged 25-34, 4 aged 45-54: only the first bracket survives
	// the minimum sample size.
	table := append(
		makeRows(6, map[string]string{survey.ColAge: "25-34 years old"}),
		makeRows(4, map[string]string{survey.ColAge: "45-54 years old"})...,
	)

	cells := BuildCells(table, nil)

	require.Contains(t, cells, "All|All|All")
	assert.Equal(t, 10, cells["All|All|All"].N)
	assert.Contains(t, cells, "All|25-34|All")
	assert.NotContains(t, cells, "All|45-54|All")
}

func TestBuildCellsTopLevelKeptBelowThreshold(t *testing.T) {
	// A macro group with fewer than MinCellN rows still gets its All|All cell.
	table := append(
		makeRows(6, map[string]string{survey.ColOECD: "True", survey.ColLMIC: "False"}),
		makeRows(2, map[string]string{survey.ColOECD: "False", survey.ColLMIC: "True"})...,
	)

	cells := BuildCells(table, nil)

	require.Contains(t, cells, "LMIC|All|All")
	assert.Equal(t, 2, cells["LMIC|All|All"].N)
	// But its breakdowns are suppressed.
	assert.NotContains(t, cells, "LMIC|25-34|All")
}

func TestBuildCellsEducationMerge(t *testing.T) {
	table := append(
		makeRows(3, map[string]string{survey.ColEducation: "Primary"}),
		makeRows(3, map[string]string{survey.ColEducation: "Some Secondary"})...,
	)

	cells := BuildCells(table, nil)

	require.Contains(t, cells, "All|All|Less than secondary")
	assert.Equal(t, 6, cells["All|All|Less than secondary"].N)
}

func TestBuildCellsUnmappedEducation(t *testing.T) {
	table := makeRows(8, map[string]string{survey.ColEducation: "Prefer not to say"})

	cells := BuildCells(table, nil)

	// Unmapped education matches no bucket, but the rows still count overall.
	assert.Equal(t, 8, cells["All|All|All"].N)
	for _, edu := range survey.EduShortOrder {
		assert.NotContains(t, cells, "All|All|"+edu)
	}
}

func TestBuildCellsCountryCells(t *testing.T) {
	table := append(
		makeRows(120, map[string]string{survey.ColCountry: "Viet Nam", survey.ColOECD: "False", survey.ColLMIC: "True"}),
		makeRows(30, map[string]string{survey.ColCountry: "Iceland"})...,
	)
	geos := Geographies(table)
	require.Len(t, geos, 1)

	cells := BuildCells(table, geos)

	require.Contains(t, cells, "Vietnam|All|All")
	assert.Equal(t, 120, cells["Vietnam|All|All"].N)
	assert.NotContains(t, cells, "Iceland|All|All")
	assert.Equal(t, 120, cells["LMIC|All|All"].N)
	assert.Equal(t, 30, cells["OECD|All|All"].N)
}

func TestBuildCellsAgeEducationCombination(t *testing.T) {
	table := makeRows(7, map[string]string{
		survey.ColAge:       "55-64 years old",
		survey.ColEducation: "University - Bachelors Degree",
	})

	cells := BuildCells(table, []model.Geography{})

	require.Contains(t, cells, "All|55-64|Bachelor's degree")
	assert.Equal(t, 7, cells["All|55-64|Bachelor's degree"].N)
}
