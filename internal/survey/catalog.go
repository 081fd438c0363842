// Package survey holds the static configuration of the climate survey:
// column names, filtering constants and the lookup tables that map raw
// export values to the short labels used in the published summary. This is
// declarative data only; all processing logic lives in internal/pipeline.
package survey

import "survey-pipeline/internal/model"

// Quality-filter constants.
const (
	AttentionAnswer = "7"          // expected value of the attention-check question
	DateCutoff      = "2026-01-15" // responses before this date are test runs
	MinCountryN     = 100          // minimum responses to report a country individually
	MinCellN        = 5            // minimum n for any non-overall breakdown cell
)

// Composite cell keys join geography, age and education with KeySep; AllLabel
// stands in for an unconstrained dimension. KeySep must not appear in any
// geography or bracket label.
const (
	KeySep   = "|"
	AllLabel = "All"
)

// Column names as they appear in the export.
const (
	ColStartDate = "StartDate"
	ColCountry   = "Country"
	ColAge       = "Age"
	ColEducation = "Education"
	ColAttention = "Attention Check"
	ColOECD      = "is_oecd"
	ColLMIC      = "is_lmic"
	ColEduShort  = "edu_short" // derived during grouping, not present in the export
)

// ImportMarker identifies Qualtrics metadata rows mixed in with the data.
const ImportMarker = "ImportId"

// RequiredColumns must all be present in the export header.
var RequiredColumns = []string{
	ColStartDate, ColCountry, ColAge, ColEducation, ColAttention,
	ColOECD, ColLMIC,
	"Q3.1", "Q3.2", "Q4.1",
	"Q7.1", "Q7.2", "Q7.3", "Q7.4", "Q7.5", "Q7.6", "Q7.7",
	"Q7.8_1", "Q7.8_7", "Q7.8_8", "Q7.8_9", "Q7.8_10",
}

// AgeGroups lists the age brackets in display order, raw export value first.
var AgeGroups = []struct {
	Full  string
	Short string
}{
	{"18-24 years old", "18-24"},
	{"25-34 years old", "25-34"},
	{"35-44 years old", "35-44"},
	{"45-54 years old", "45-54"},
	{"55-64 years old", "55-64"},
	{"65+ years old", "65+"},
}

// EduGroups maps raw education values to short labels, in display order.
// The three lowest levels collapse into one "Less than secondary" bucket.
var EduGroups = []struct {
	Full  string
	Short string
}{
	{"Graduate or professional degree (MA, MS, MBA, PhD, Law Degree, Medical Degree etc)", "Graduate degree"},
	{"University - Bachelors Degree", "Bachelor's degree"},
	{"Some University but no degree", "Some university"},
	{"Vocational or Similar", "Vocational"},
	{"Secondary", "Secondary"},
	{"Some Secondary", "Less than secondary"},
	{"Primary", "Less than secondary"},
	{"Less than Primary", "Less than secondary"},
}

// EduShortOrder is the bracket display order for the summary metadata.
var EduShortOrder = []string{
	"Graduate degree",
	"Bachelor's degree",
	"Some university",
	"Vocational",
	"Secondary",
	"Less than secondary",
}

// CountryShort overrides long-form ISO country names for display; countries
// not listed keep their export name.
var CountryShort = map[string]string{
	"United States of America": "United States",
	"United Kingdom of Great Britain and Northern Ireland": "United Kingdom",
	"United Arab Emirates":                "UAE",
	"Congo, Democratic Republic of the":   "DR Congo",
	"Iran (Islamic Republic of)":          "Iran",
	"Bolivia (Plurinational State of)":    "Bolivia",
	"Venezuela (Bolivarian Republic of)":  "Venezuela",
	"Tanzania, United Republic of":        "Tanzania",
	"Korea, Republic of":                  "South Korea",
	"Lao People's Democratic Republic":    "Laos",
	"Viet Nam":                            "Vietnam",
	"Russian Federation":                  "Russia",
	"Moldova, Republic of":                "Moldova",
	"Syrian Arab Republic":                "Syria",
	"Micronesia (Federated States of)":    "Micronesia",
}

// Single-choice option lists, in display order.
var (
	Q31Options = []string{
		"Climate change is happening",
		"Climate change is not happening",
		"Not sure",
	}
	Q32Options = []string{
		"Caused by human activities",
		"Caused by natural changes in the environment",
		"Caused by a mix of human activities and natural changes in the environment",
		"I don't know",
	}
	Q41Options = []string{
		"Strongly agree",
		"Somewhat agree",
		"Neither agree nor disagree",
		"Somewhat disagree",
		"Strongly disagree",
	}
)

// Q77FullOptions are the full multi-select answer texts. Rows are counted per
// option by substring match, because the export encodes multi-select answers
// inconsistently. WARNING: this breaks if one option's text ever becomes a
// substring of another's; TestMultiSelectOptionsNotSubstrings pins that.
var Q77FullOptions = []string{
	"Given to poor country governments without restrictions",
	"Given directly to people in poor countries",
	"Put in an insurance fund for disasters (like droughts and hurricanes)",
	"Given to poor country governments and communities for climate resilience investments (like seawalls and air conditioning)",
	"Put in a fund for climate resilience investments that people can apply to, controlled by rich countries",
}

// Q77Short are the display labels for Q77FullOptions, same order.
var Q77Short = []string{
	"Unrestricted govt aid",
	"Direct to people",
	"Disaster insurance",
	"Resilience investments",
	"Rich-country controlled fund",
}

// Q78Cols are the allocation-percentage columns, ordered like Q77Short.
var Q78Cols = []string{"Q7.8_1", "Q7.8_7", "Q7.8_8", "Q7.8_9", "Q7.8_10"}

// Questions is the published question catalog.
var Questions = map[string]model.QuestionMeta{
	"q71": {
		Text:    "Support for climate compensation program",
		Options: []string{"Yes", "No"},
	},
	"q31": {
		Text:    "Do you think climate change is happening?",
		Options: []string{"Happening", "Not happening", "Not sure"},
	},
	"q32": {
		Text:    "What causes climate change?",
		Options: []string{"Human activities", "Natural changes", "Mix of both", "Don't know"},
	},
	"q41": {
		Text: "Country should take measures to fight climate change",
		Options: []string{
			"Strongly agree",
			"Somewhat agree",
			"Neither",
			"Somewhat disagree",
			"Strongly disagree",
		},
	},
	"q72": {Text: "Fund via carbon tax", Options: []string{"Yes", "No"}},
	"q73": {Text: "Fund via wealth tax on billionaires", Options: []string{"Yes", "No"}},
	"q74": {Text: "Fund via corporate minimum tax", Options: []string{"Yes", "No"}},
	"q75": {Text: "Fund via general tax revenues", Options: []string{"Yes", "No"}},
	"q76": {Text: "Require emissions reduction commitments", Options: []string{"Yes", "No"}},
	"q77": {Text: "How should climate fund be spent?", Options: Q77Short},
	"q78": {Text: "Fund allocation percentages", Options: Q77Short},
}

// AgeShortLabels returns the ordered short age labels for the metadata block.
func AgeShortLabels() []string {
	labels := make([]string, len(AgeGroups))
	for i, ag := range AgeGroups {
		labels[i] = ag.Short
	}
	return labels
}

// EduShort maps a raw education value to its short label, or "" when the
// value has no mapping (such rows match no education bucket).
func EduShort(raw string) string {
	for _, eg := range EduGroups {
		if eg.Full == raw {
			return eg.Short
		}
	}
	return ""
}

// ShortCountry returns the display name for a raw country value.
func ShortCountry(raw string) string {
	if short, ok := CountryShort[raw]; ok {
		return short
	}
	return raw
}
