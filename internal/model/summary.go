package model

// Geography is one reporting scope: "All", a macro group (OECD/LMIC) or a
// single country that met the minimum response threshold.
type Geography struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	FullName string `json:"-"` // source value used for row filtering, not published
	Group    string `json:"group"` // "oecd", "lmic" or "other"
	N        int    `json:"n"`
}

// QuestionMeta describes one tracked question for the output catalog.
type QuestionMeta struct {
	Text    string   `json:"text"`
	Options []string `json:"options"`
}

// Cell holds the aggregated statistics for one (geography, age, education)
// combination. Option count slices are ordered like the question's option
// list. Questions with non-response carry their own denominator next to the
// counts (n_q76, n_q77, n_q78); everything else uses the cell's n.
type Cell struct {
	N   int   `json:"n"`
	Q71 []int `json:"q71"` // compensation support, [yes, no]
	Q31 []int `json:"q31"` // climate beliefs
	Q32 []int `json:"q32"` // climate causes
	Q41 []int `json:"q41"` // climate action agreement
	Q72 []int `json:"q72"` // fund via carbon tax, [yes, no]
	Q73 []int `json:"q73"` // fund via wealth tax, [yes, no]
	Q74 []int `json:"q74"` // fund via corporate minimum tax, [yes, no]
	Q75 []int `json:"q75"` // fund via general revenues, [yes, no]

	Q76  []int `json:"q76"` // emissions requirements, [yes, no]
	NQ76 int   `json:"n_q76"`

	Q77  []int `json:"q77"` // spending preferences, multi-select
	NQ77 int   `json:"n_q77"`

	Q78  []float64 `json:"q78"` // mean allocation percentages
	NQ78 int       `json:"n_q78"`
}

// Meta is the metadata block of the published summary.
type Meta struct {
	Generated string                  `json:"generated"`
	TotalN    int                     `json:"total_n"`
	Countries []Geography             `json:"countries"`
	AgeGroups []string                `json:"age_groups"`
	EduGroups []string                `json:"edu_groups"`
	Questions map[string]QuestionMeta `json:"questions"`
}

// Summary is the full pre-aggregated structure the static page consumes.
// Cell keys look like "United States|25-34|Secondary", with "All" standing
// in for an unconstrained dimension.
type Summary struct {
	Meta  Meta             `json:"meta"`
	Cells map[string]*Cell `json:"cells"`
}
