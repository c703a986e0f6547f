package main

import (
	"bitbucket.org/sotavant/hardhat-skill/internal/backend"
	"flag"
	"github.com/joho/godotenv"
	"os"
)

type config struct {
	RunAddr  string
	LogLevel string
	Backend  backend.Config
}

func parseFlags() config {
	// A missing .env is fine, the environment wins anyway.
	_ = godotenv.Load()

	var cfg config
	flag.StringVar(&cfg.RunAddr, "a", ":8080", "address and port")
	flag.StringVar(&cfg.LogLevel, "l", "info", "log level")
	flag.StringVar(&cfg.Backend.BaseURL, "b", backend.DefaultBaseURL, "helmet backend base URL")
	flag.StringVar(&cfg.Backend.APIKey, "k", "", "helmet backend API key")
	flag.Parse()

	if envRunAddr := os.Getenv("RUN_ADDR"); envRunAddr != "" {
		cfg.RunAddr = envRunAddr
	}

	if envLogLevel := os.Getenv("LOG_LEVEL"); envLogLevel != "" {
		cfg.LogLevel = envLogLevel
	}

	if envBackendURL := os.Getenv("BACKEND_URL"); envBackendURL != "" {
		cfg.Backend.BaseURL = envBackendURL
	}

	if envAPIKey := os.Getenv("BACKEND_API_KEY"); envAPIKey != "" {
		cfg.Backend.APIKey = envAPIKey
	}

	return cfg
}
