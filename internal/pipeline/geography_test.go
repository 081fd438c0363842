package pipeline

import (
	"testing"

	"survey-pipeline/internal/survey"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGeographiesThreshold(t *testing.T) {
	table := append(
		makeRows(survey.MinCountryN, map[string]string{survey.ColCountry: "France"}),
		makeRows(survey.MinCountryN-1, map[string]string{survey.ColCountry: "Germany"})...,
	)

	geos := Geographies(table)
	require.Len(t, geos, 1)
	assert.Equal(t, "France", geos[0].ID)
	assert.Equal(t, survey.MinCountryN, geos[0].N)
}

func TestGeographiesNameShortening(t *testing.T) {
	table := makeRows(survey.MinCountryN, map[string]string{
		survey.ColCountry: "United States of America",
	})

	geos := Geographies(table)
	require.Len(t, geos, 1)
	assert.Equal(t, "United States", geos[0].ID)
	assert.Equal(t, "United States", geos[0].Name)
	assert.Equal(t, "United States of America", geos[0].FullName)
}

func TestGeographiesGroupClassification(t *testing.T) {
	table := append(
		makeRows(survey.MinCountryN, map[string]string{
			survey.ColCountry: "Kenya", survey.ColOECD: "False", survey.ColLMIC: "True",
		}),
		makeRows(survey.MinCountryN, map[string]string{
			survey.ColCountry: "Qatar", survey.ColOECD: "False", survey.ColLMIC: "False",
		})...,
	)
	// One stray OECD-flagged row classifies the whole country; OECD wins
	// over LMIC.
	table = append(table, makeRows(survey.MinCountryN, map[string]string{
		survey.ColCountry: "Mexico", survey.ColOECD: "False", survey.ColLMIC: "True",
	})...)
	table = append(table, makeRow(map[string]string{
		survey.ColCountry: "Mexico", survey.ColOECD: "True", survey.ColLMIC: "True",
	}))

	geos := Geographies(table)
	require.Len(t, geos, 3)

	byID := make(map[string]string)
	for _, g := range geos {
		byID[g.ID] = g.Group
	}
	assert.Equal(t, "lmic", byID["Kenya"])
	assert.Equal(t, "other", byID["Qatar"])
	assert.Equal(t, "oecd", byID["Mexico"])
}

func TestGeographiesOrderedByCount(t *testing.T) {
	table := append(
		makeRows(150, map[string]string{survey.ColCountry: "Brazil"}),
		makeRows(300, map[string]string{survey.ColCountry: "India"})...,
	)
	table = append(table, makeRows(150, map[string]string{survey.ColCountry: "Argentina"})...)

	geos := Geographies(table)
	require.Len(t, geos, 3)
	assert.Equal(t, "India", geos[0].ID)
	// Equal counts fall back to name order.
	assert.Equal(t, "Argentina", geos[1].ID)
	assert.Equal(t, "Brazil", geos[2].ID)
}
