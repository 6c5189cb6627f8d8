package config

import "time"

// Config holds runtime settings for the propkeeper CLI.
//
// Fields:
//   - ServerAddr: base URL of the backend REST API.
//   - DatabasePath: filename of the client-local SQLite database.
//   - RequestTimeout: per-request timeout of the HTTP transport.
type Config struct {
	ServerAddr     string
	DatabasePath   string
	RequestTimeout time.Duration
}

// LoadDefaults populates c with sensible defaults.
func (c *Config) LoadDefaults() {
	c.ServerAddr = "http://127.0.0.1:5000"
	c.DatabasePath = "propkeeper.db"
	c.RequestTimeout = 15 * time.Second
}

// LoadConfig constructs a Config, applies defaults, then overlays values
// from the environment (including a .env file, if present), a JSON file and
// command-line flags. Later sources take precedence over earlier ones.
func LoadConfig() *Config {
	cfg := &Config{}
	cfg.LoadDefaults()
	parseEnv(cfg)
	parseJson(cfg)
	parseFlags(cfg)
	return cfg
}
