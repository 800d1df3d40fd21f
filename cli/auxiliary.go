package main

import (
	"os"
	"strings"
)

// envOr returns either environment variable envKey (if non-empty) or the default value
func envOr(envKey, defaultValue string) string {
	val, ok := os.LookupEnv(envKey)
	if !ok || val == "" {
		return defaultValue
	}
	return val
}

// envToBool returns environment variable envKey considered as boolean value
func envToBool(envKey string) bool {
	val, ok := os.LookupEnv(envKey)
	return ok && (val == `1` || strings.ToLower(val) == `true`)
}

// jsonOutput determines whether the JSON output format was requested
func jsonOutput(args []string) bool {
	for _, arg := range args {
		if arg == `--json` {
			return true
		}
	}
	return false
}
