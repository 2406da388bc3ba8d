package config

import (
	"os"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseFlags(t *testing.T) {
	origArgs := os.Args
	t.Cleanup(func() { os.Args = origArgs })

	tests := []struct {
		expected    *Config
		name        string
		args        []string
		expectPanic bool
	}{
		{
			name: "all flags",
			args: []string{"cmd", "-a", "https://admin.example.com", "-t", "10", "-s", "/tmp/s.db", "-n", "50", "-v"},
			expected: &Config{
				ServerBaseURL:  "https://admin.example.com",
				RequestTimeout: 10 * time.Second,
				SessionDBPath:  "/tmp/s.db",
				PageSize:       50,
				Debug:          true,
			},
		},
		{
			name:     "unknown flags are ignored",
			args:     []string{"cmd", "-x", "1", "-t", "5", "-config", "f.json"},
			expected: &Config{RequestTimeout: 5 * time.Second},
		},
		{name: "bad timeout", args: []string{"cmd", "-t", "abc"}, expectPanic: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			os.Args = tt.args
			config := &Config{}

			if tt.expectPanic {
				require.Panics(t, func() { parseFlags(config) })
				return
			}
			require.NotPanics(t, func() { parseFlags(config) })
			assert.Empty(t, cmp.Diff(tt.expected, config))
		})
	}
}
