package cli

import (
	"errors"
	"fmt"
	"net/url"
	"strconv"
	"strings"
)

var errUsage = errors.New("usage")

// parseArgs turns "key=value" tokens into query values. A bare token is
// treated as a boolean flag ("unread" is the same as "unread=true").
func parseArgs(args []string) url.Values {
	v := url.Values{}
	for _, a := range args {
		key, val, ok := strings.Cut(a, "=")
		if !ok {
			val = "true"
		}
		key = strings.TrimSpace(key)
		if key == "" {
			continue
		}
		v.Set(key, strings.TrimSpace(val))
	}
	return v
}

// argID returns the first argument or a usage error naming cmd.
func argID(cmd string, args []string) (string, error) {
	if len(args) == 0 || strings.TrimSpace(args[0]) == "" {
		return "", fmt.Errorf("%w: %s <id>", errUsage, cmd)
	}
	return args[0], nil
}

// argInt parses the first argument as a positive integer.
func argInt(cmd string, args []string) (int, error) {
	if len(args) == 0 {
		return 0, fmt.Errorf("%w: %s <n>", errUsage, cmd)
	}
	n, err := strconv.Atoi(args[0])
	if err != nil || n < 1 {
		return 0, fmt.Errorf("%w: %s <n>, n >= 1", errUsage, cmd)
	}
	return n, nil
}
