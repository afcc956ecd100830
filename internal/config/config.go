// Package config reads site configuration from environment variables.
// The .env file, when present, is loaded by godotenv's autoload import in
// package main before anything here runs.
package config

import (
	"os"
	"strconv"
	"time"
)

// Transport modes for the chat widget's completion path.
const (
	TransportDirect = "direct" // dev: this process holds the key and calls upstream
	TransportRelay  = "relay"  // prod: a relay endpoint attaches the key
)

// Config holds everything the site reads from the environment.
type Config struct {
	Port string

	OpenAIAPIKey  string
	OpenAIAPIBase string
	Model         string
	MaxTokens     int
	Timeout       time.Duration

	Transport     string
	RelayURL      string
	HistoryWindow int

	DBPath string
}

// Load builds the config from the process environment. Nothing is validated
// here: a missing API key is a request-time error in the gateway, not a
// startup failure.
func Load() Config {
	return Config{
		Port: envOrDefault("PORT", "8080"),

		OpenAIAPIKey:  os.Getenv("OPENAI_API_KEY"),
		OpenAIAPIBase: envOrDefault("OPENAI_API_BASE", "https://api.openai.com"),
		Model:         envOrDefault("OPENAI_MODEL", "gpt-4o-mini"),
		MaxTokens:     envIntOrDefault("OPENAI_MAX_TOKENS", 800),
		Timeout:       time.Duration(envIntOrDefault("OPENAI_TIMEOUT_SECONDS", 30)) * time.Second,

		Transport:     envOrDefault("CHAT_TRANSPORT", TransportDirect),
		RelayURL:      os.Getenv("CHAT_RELAY_URL"),
		HistoryWindow: envIntOrDefault("CHAT_HISTORY_WINDOW", 10),

		DBPath: envOrDefault("DB_PATH", "./site.db"),
	}
}

func envOrDefault(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envIntOrDefault(key string, fallback int) int {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return fallback
	}
	return n
}
