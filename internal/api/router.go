package api

import (
	"survey-pipeline/internal/api/handler"
	"survey-pipeline/pkg/router"
)

func RegisterRoutes(r *router.Router) {
	r.POST("/api/v1/runs", handler.CreateRun)
	r.GET("/api/v1/runs", handler.ListRuns)
	// More specific routes first
	r.GET("/api/v1/runs/*/errors", handler.GetRunErrors)
	r.GET("/api/v1/runs/*/geographies", handler.GetRunGeographies)
	r.GET("/api/v1/runs/*", handler.GetRun)
	r.GET("/api/v1/summary", handler.GetSummary)
}
