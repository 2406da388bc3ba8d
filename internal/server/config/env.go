package config

import "github.com/dmitrijs2005/adminconsole/internal/flagx"

func parseEnv(cfg *Config) {
	flagx.StringFromEnv(&cfg.DatabaseDSN, EnvDatabaseDSN)
	flagx.StringFromEnv(&cfg.SecretKey, EnvSecretKey)
	flagx.StringFromEnv(&cfg.AdminEmail, EnvAdminEmail)
	flagx.StringFromEnv(&cfg.AdminPassword, EnvAdminPassword)
}
