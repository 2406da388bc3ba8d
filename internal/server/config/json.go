package config

import (
	"encoding/json"
	"os"

	"github.com/dmitrijs2005/adminconsole/internal/flagx"
	"github.com/dmitrijs2005/adminconsole/internal/timex"
)

// JsonConfig is the on-disk shape of the server config file. Durations
// accept both strings such as "15m" and integer nanoseconds. Absent fields
// keep their previous values.
type JsonConfig struct {
	EndpointAddr                 string         `json:"endpoint_addr"`
	DatabaseDSN                  string         `json:"database_dsn"`
	SecretKey                    string         `json:"secret_key"`
	AccessTokenValidityDuration  timex.Duration `json:"access_token_validity_duration"`
	RefreshTokenValidityDuration timex.Duration `json:"refresh_token_validity_duration"`
	CookieSecure                 *bool          `json:"cookie_secure"`
	CookieDomain                 string         `json:"cookie_domain"`
	S3RootUser                   string         `json:"s3_root_user"`
	S3RootPassword               string         `json:"s3_root_password"`
	S3Bucket                     string         `json:"s3_bucket"`
	S3Region                     string         `json:"s3_region"`
	S3BaseEndpoint               string         `json:"s3_base_endpoint"`
	ExportURLValidity            timex.Duration `json:"export_url_validity"`
	LoginRPS                     float64        `json:"login_rps"`
	LoginBurst                   int            `json:"login_burst"`
	LogLevel                     string         `json:"log_level"`
	AdminEmail                   string         `json:"admin_email"`
	AdminPassword                string         `json:"admin_password"`
}

// parseJson loads configuration values from the file named by the -c or
// -config flag into config. Without the flag nothing is loaded. If the file
// cannot be read or contains invalid JSON, the function panics.
func parseJson(config *Config) {
	jsonConfigFile := flagx.JsonConfigFlags()
	if jsonConfigFile == "" {
		return
	}

	c := &JsonConfig{}

	file, err := os.ReadFile(jsonConfigFile)
	if err != nil {
		panic(err)
	}

	err = json.Unmarshal(file, c)
	if err != nil {
		panic(err)
	}

	setString(&config.EndpointAddr, c.EndpointAddr)
	setString(&config.DatabaseDSN, c.DatabaseDSN)
	setString(&config.SecretKey, c.SecretKey)
	setString(&config.CookieDomain, c.CookieDomain)
	setString(&config.S3RootUser, c.S3RootUser)
	setString(&config.S3RootPassword, c.S3RootPassword)
	setString(&config.S3Bucket, c.S3Bucket)
	setString(&config.S3Region, c.S3Region)
	setString(&config.S3BaseEndpoint, c.S3BaseEndpoint)
	setString(&config.LogLevel, c.LogLevel)
	setString(&config.AdminEmail, c.AdminEmail)
	setString(&config.AdminPassword, c.AdminPassword)

	if c.CookieSecure != nil {
		config.CookieSecure = *c.CookieSecure
	}
	if c.LoginRPS > 0 {
		config.LoginRPS = c.LoginRPS
	}
	if c.LoginBurst > 0 {
		config.LoginBurst = c.LoginBurst
	}

	config.AccessTokenValidityDuration = c.AccessTokenValidityDuration.OrDefault(config.AccessTokenValidityDuration)
	config.RefreshTokenValidityDuration = c.RefreshTokenValidityDuration.OrDefault(config.RefreshTokenValidityDuration)
	config.ExportURLValidity = c.ExportURLValidity.OrDefault(config.ExportURLValidity)
}

func setString(dst *string, v string) {
	if v != "" {
		*dst = v
	}
}
