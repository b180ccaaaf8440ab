package cliconfig

import (
	"fmt"
	"strings"
	"time"
)

// DefaultSourceURL is the packet document fetched when no source is configured.
const DefaultSourceURL = "https://gist.githubusercontent.com/Lucaskyy/26284f56765dc05201f5ea31cbfaf548/raw/487b1857901e3d63d004f8000b55e99d39c7bad8/data.json"

// Config holds CLI configuration for i2p.
type Config struct {
	SourceURL    string
	FetchTimeout time.Duration
	FetchRetries int

	Prefix   string
	HTTPAddr string
	Console  bool

	LogLevel string
}

// DefaultConfig returns a Config with default values.
func DefaultConfig() Config {
	return Config{
		SourceURL:    DefaultSourceURL,
		FetchTimeout: 15 * time.Second,
		FetchRetries: 3,
		Prefix:       "~",
		HTTPAddr:     ":8080",
		Console:      true,
		LogLevel:     "info",
	}
}

// Validate checks the configuration for errors and normalizes values.
func (c *Config) Validate() error {
	c.SourceURL = strings.TrimSpace(c.SourceURL)
	if c.SourceURL == "" {
		return fmt.Errorf("source-url is required")
	}
	if c.FetchTimeout <= 0 {
		return fmt.Errorf("fetch timeout must be positive")
	}
	if c.FetchRetries < 1 {
		return fmt.Errorf("fetch retries must be at least 1")
	}
	if c.Prefix == "" || strings.ContainsAny(c.Prefix, " \t\r\n") {
		return fmt.Errorf("prefix must be non-empty and contain no whitespace")
	}

	c.LogLevel = strings.ToLower(strings.TrimSpace(c.LogLevel))
	switch c.LogLevel {
	case "":
		c.LogLevel = "info"
	case "debug", "info", "warn", "warning", "error":
	default:
		return fmt.Errorf("unknown log level %q", c.LogLevel)
	}

	return nil
}

// precedence records which flags were set on the command line. Values from
// the config file and environment only fill fields whose flag is absent.
type precedence map[string]bool

// set assigns v to dst when ok holds and flag was not changed.
func set[T any](p precedence, flag string, v T, ok bool, dst *T) {
	if !ok || p[flag] {
		return
	}
	*dst = v
}

// setParsed parses a non-empty raw value and assigns it when keep accepts
// it (a nil keep accepts everything). An overridden flag is not parsed.
func setParsed[T any](p precedence, flag, raw string, parse func(string) (T, error), keep func(T) bool, dst *T) error {
	if raw == "" || p[flag] {
		return nil
	}
	v, err := parse(raw)
	if err != nil {
		return fmt.Errorf("parse %s: %w", flag, err)
	}
	set(p, flag, v, keep == nil || keep(v), dst)
	return nil
}

func positive(n int) bool { return n > 0 }

// parseEnvBool treats "true" and "1" as true and anything else as false.
func parseEnvBool(s string) (bool, error) {
	return s == "true" || s == "1", nil
}
