package pipeline

import (
	"time"

	"survey-pipeline/internal/model"
	"survey-pipeline/internal/survey"
)

// BuildSummary assembles the published structure: generation metadata, the
// geography list, the ordered bracket labels, the question catalog and the
// flat cell mapping.
func BuildSummary(table Table, geos []model.Geography, cells map[string]*model.Cell) *model.Summary {
	return &model.Summary{
		Meta: model.Meta{
			Generated: time.Now().Format("2006-01-02"),
			TotalN:    len(table),
			Countries: geos,
			AgeGroups: survey.AgeShortLabels(),
			EduGroups: survey.EduShortOrder,
			Questions: survey.Questions,
		},
		Cells: cells,
	}
}
