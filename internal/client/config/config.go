package config

import "time"

// Config holds runtime settings for the admin console.
type Config struct {
	ServerBaseURL     string
	RequestTimeout    time.Duration
	SessionDBPath     string
	RedirectDelay     time.Duration
	AuthCheckAttempts int
	AuthCheckInterval time.Duration
	PageSize          int
	Debug             bool
}

const EnvServerBaseURL = "ADMIN_API_URL"

// LoadDefaults populates c with sensible defaults.
func (c *Config) LoadDefaults() {
	c.ServerBaseURL = "http://127.0.0.1:8080"
	c.RequestTimeout = 30 * time.Second
	c.SessionDBPath = "session.db"
	c.RedirectDelay = 1500 * time.Millisecond
	c.AuthCheckAttempts = 5
	c.AuthCheckInterval = 500 * time.Millisecond
	c.PageSize = 20
	c.Debug = false
}

// LoadConfig applies defaults, then the JSON file, the environment and
// finally command-line flags. Later sources take precedence.
func LoadConfig() *Config {
	cfg := &Config{}
	cfg.LoadDefaults()
	parseJson(cfg)
	parseEnv(cfg)
	parseFlags(cfg)
	return cfg
}
