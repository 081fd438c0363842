// Package config loads API server settings from the environment.
package config

import "github.com/kelseyhightower/envconfig"

// Server holds the survey-api settings, read from SURVEY_* variables.
type Server struct {
	Addr   string `envconfig:"ADDR" default:":8080"`
	DBPath string `envconfig:"DB" default:"survey.db"`
}

// Load reads the server configuration from the environment.
func Load() (*Server, error) {
	var cfg Server
	if err := envconfig.Process("survey", &cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}
