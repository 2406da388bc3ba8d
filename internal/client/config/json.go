package config

import (
	"encoding/json"
	"os"

	"github.com/dmitrijs2005/adminconsole/internal/flagx"
	"github.com/dmitrijs2005/adminconsole/internal/timex"
)

// JsonConfig is the on-disk shape of the config file. Absent fields keep
// their previous values.
type JsonConfig struct {
	ServerBaseURL     string         `json:"server_base_url"`
	RequestTimeout    timex.Duration `json:"request_timeout"`
	SessionDBPath     string         `json:"session_db_path"`
	RedirectDelay     timex.Duration `json:"redirect_delay"`
	AuthCheckAttempts int            `json:"auth_check_attempts"`
	AuthCheckInterval timex.Duration `json:"auth_check_interval"`
	PageSize          int            `json:"page_size"`
	Debug             *bool          `json:"debug"`
}

// parseJson overlays cfg with the file named by -c/-config, if any.
// Read and unmarshal errors panic.
func parseJson(cfg *Config) {
	jsonConfigFile := flagx.JsonConfigFlags()
	if jsonConfigFile == "" {
		return
	}

	var jc JsonConfig

	data, err := os.ReadFile(jsonConfigFile)
	if err != nil {
		panic(err)
	}
	if err := json.Unmarshal(data, &jc); err != nil {
		panic(err)
	}

	if jc.ServerBaseURL != "" {
		cfg.ServerBaseURL = jc.ServerBaseURL
	}
	if jc.SessionDBPath != "" {
		cfg.SessionDBPath = jc.SessionDBPath
	}
	if jc.AuthCheckAttempts > 0 {
		cfg.AuthCheckAttempts = jc.AuthCheckAttempts
	}
	if jc.PageSize > 0 {
		cfg.PageSize = jc.PageSize
	}
	if jc.Debug != nil {
		cfg.Debug = *jc.Debug
	}
	cfg.RequestTimeout = jc.RequestTimeout.OrDefault(cfg.RequestTimeout)
	cfg.RedirectDelay = jc.RedirectDelay.OrDefault(cfg.RedirectDelay)
	cfg.AuthCheckInterval = jc.AuthCheckInterval.OrDefault(cfg.AuthCheckInterval)
}
