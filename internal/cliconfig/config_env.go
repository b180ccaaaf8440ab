package cliconfig

import (
	"os"
	"strconv"
	"strings"
	"time"
)

// ApplyEnvConfig applies configuration from environment variables (I2P_*).
// It respects flags that have been explicitly set (changed map).
// Returns error if any environment variable has an invalid format.
func ApplyEnvConfig(cfg *Config, changed map[string]bool) error {
	p := precedence(changed)

	for flag, dst := range map[string]*string{
		"source-url": &cfg.SourceURL,
		"prefix":     &cfg.Prefix,
		"http-addr":  &cfg.HTTPAddr,
		"log-level":  &cfg.LogLevel,
	} {
		v := os.Getenv(envName(flag))
		set(p, flag, v, v != "", dst)
	}

	if err := setParsed(p, "fetch-timeout", os.Getenv(envName("fetch-timeout")), time.ParseDuration, nil, &cfg.FetchTimeout); err != nil {
		return err
	}
	if err := setParsed(p, "fetch-retries", os.Getenv(envName("fetch-retries")), strconv.Atoi, positive, &cfg.FetchRetries); err != nil {
		return err
	}
	return setParsed(p, "console", os.Getenv(envName("console")), parseEnvBool, nil, &cfg.Console)
}

// envName maps a flag name to its environment variable, e.g.
// "fetch-timeout" to I2P_FETCH_TIMEOUT.
func envName(flag string) string {
	return "I2P_" + strings.ToUpper(strings.ReplaceAll(flag, "-", "_"))
}
