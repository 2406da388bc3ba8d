package config

import (
	"flag"
	"os"
	"time"

	"github.com/dmitrijs2005/adminconsole/internal/flagx"
)

// parseFlags populates Config fields from the command-line flags this
// package owns; other arguments are filtered out with flagx.FilterArgs.
func parseFlags(cfg *Config) {
	args := flagx.FilterArgs(os.Args[1:], []string{"-a", "-t", "-s", "-n", "-v"})

	fs := flag.NewFlagSet("main", flag.ContinueOnError)

	fs.StringVar(&cfg.ServerBaseURL, "a", cfg.ServerBaseURL, "base URL of the admin API")
	timeout := fs.Int("t", int(cfg.RequestTimeout.Seconds()), "request timeout (in seconds)")
	fs.StringVar(&cfg.SessionDBPath, "s", cfg.SessionDBPath, "path of the session database")
	fs.IntVar(&cfg.PageSize, "n", cfg.PageSize, "rows per page")
	fs.BoolVar(&cfg.Debug, "v", cfg.Debug, "debug logging")

	if err := fs.Parse(args); err != nil {
		panic(err)
	}

	cfg.RequestTimeout = time.Duration(*timeout) * time.Second
}
