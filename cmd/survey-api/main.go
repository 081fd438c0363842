package main

import (
	"log"

	"survey-pipeline/internal/api"
	"survey-pipeline/internal/config"
	"survey-pipeline/internal/store"
	"survey-pipeline/pkg/router"

	_ "survey-pipeline/docs"

	httpSwagger "github.com/swaggo/http-swagger"
)

// @title Survey Pipeline API
// @version 1.0
// @description Trigger survey processing runs and serve the pre-aggregated summary.
// @BasePath /api/v1
func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	if err := store.InitDB(cfg.DBPath); err != nil {
		log.Fatalf("failed to open database: %v", err)
	}
	defer store.Close()

	r := router.New()
	api.RegisterRoutes(r)
	r.GET("/swagger/*", router.HandlerFunc(httpSwagger.WrapHandler))

	r.Start(cfg.Addr)
}
