package config

import "github.com/dmitrijs2005/adminconsole/internal/flagx"

func parseEnv(cfg *Config) {
	flagx.StringFromEnv(&cfg.ServerBaseURL, EnvServerBaseURL)
}
