package config

import (
	"os"
	"time"

	"github.com/joho/godotenv"
)

// parseEnv overlays Config with values from the process environment.
// A .env file in the working directory is loaded first, best-effort, so a
// local checkout can keep its settings next to the binary.
//
// Recognized variables:
//
//	PROPKEEPER_SERVER_ADDR      base URL of the backend
//	PROPKEEPER_DB_PATH          path of the local SQLite database
//	PROPKEEPER_REQUEST_TIMEOUT  duration string, e.g. "15s"
func parseEnv(cfg *Config) {
	_ = godotenv.Load()

	if v, ok := os.LookupEnv("PROPKEEPER_SERVER_ADDR"); ok && v != "" {
		cfg.ServerAddr = v
	}
	if v, ok := os.LookupEnv("PROPKEEPER_DB_PATH"); ok && v != "" {
		cfg.DatabasePath = v
	}
	if v, ok := os.LookupEnv("PROPKEEPER_REQUEST_TIMEOUT"); ok && v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			cfg.RequestTimeout = d
		}
	}
}
