package pipeline

import (
	"fmt"
	"sort"

	"survey-pipeline/internal/model"
	"survey-pipeline/internal/survey"
)

// ------------------- Geography resolution -------------------

// Geographies determines which countries get reported individually and
// classifies each into its macro group. A country qualifies when its
// respondent count reaches survey.MinCountryN. Classification is per country,
// not per row: one row with the flag set marks the whole country. OECD takes
// precedence over LMIC.
func Geographies(table Table) []model.Geography {
	counts := make(map[string]int)
	oecd := make(map[string]bool)
	lmic := make(map[string]bool)
	for _, row := range table {
		country := row[survey.ColCountry]
		counts[country]++
		if row[survey.ColOECD] == "True" {
			oecd[country] = true
		}
		if row[survey.ColLMIC] == "True" {
			lmic[country] = true
		}
	}

	var geos []model.Geography
	for country, n := range counts {
		if n < survey.MinCountryN {
			continue
		}
		group := "other"
		if oecd[country] {
			group = "oecd"
		} else if lmic[country] {
			group = "lmic"
		}
		short := survey.ShortCountry(country)
		geos = append(geos, model.Geography{
			ID:       short,
			Name:     short,
			FullName: country,
			Group:    group,
			N:        n,
		})
	}

	// Largest samples first; ties by name so output order is deterministic.
	sort.Slice(geos, func(i, j int) bool {
		if geos[i].N != geos[j].N {
			return geos[i].N > geos[j].N
		}
		return geos[i].Name < geos[j].Name
	})

	fmt.Printf("🌍 Countries with >= %d responses: %d\n", survey.MinCountryN, len(geos))
	for _, g := range geos {
		fmt.Printf("  %s: n=%d (%s)\n", g.ID, g.N, g.Group)
	}
	return geos
}
