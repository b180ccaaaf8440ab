package cliconfig

import (
	"os"
	"path/filepath"
	"time"

	toml "github.com/pelletier/go-toml/v2"
)

// FileConfig mirrors Config but uses strings for durations to make TOML friendly.
type FileConfig struct {
	SourceURL    string `toml:"source_url"`
	FetchTimeout string `toml:"fetch_timeout"`
	FetchRetries int    `toml:"fetch_retries"`
	Prefix       string `toml:"prefix"`
	HTTPAddr     string `toml:"http_addr"`
	Console      *bool  `toml:"console"`
	LogLevel     string `toml:"log_level"`
}

// LoadFileConfig reads and parses a TOML config file from the given path.
func LoadFileConfig(path string) (FileConfig, error) {
	var fc FileConfig
	b, err := os.ReadFile(path)
	if err != nil {
		return fc, err
	}
	if err := toml.Unmarshal(b, &fc); err != nil {
		return fc, err
	}
	return fc, nil
}

// DefaultConfigPath returns ~/.i2p/config.toml, or "" when the home
// directory cannot be determined.
func DefaultConfigPath() string {
	if h, err := os.UserHomeDir(); err == nil {
		return filepath.Join(h, ".i2p", "config.toml")
	}
	return ""
}

// ApplyFileConfig applies configuration from a file to the Config struct.
// It respects flags that have been explicitly set (changed map).
func ApplyFileConfig(cfg *Config, fc FileConfig, changed map[string]bool) error {
	p := precedence(changed)

	set(p, "source-url", fc.SourceURL, fc.SourceURL != "", &cfg.SourceURL)
	set(p, "prefix", fc.Prefix, fc.Prefix != "", &cfg.Prefix)
	set(p, "http-addr", fc.HTTPAddr, fc.HTTPAddr != "", &cfg.HTTPAddr)
	set(p, "log-level", fc.LogLevel, fc.LogLevel != "", &cfg.LogLevel)
	set(p, "fetch-retries", fc.FetchRetries, positive(fc.FetchRetries), &cfg.FetchRetries)
	if fc.Console != nil {
		set(p, "console", *fc.Console, true, &cfg.Console)
	}

	return setParsed(p, "fetch-timeout", fc.FetchTimeout, time.ParseDuration, nil, &cfg.FetchTimeout)
}

// FileExists checks if a file exists at the given path.
func FileExists(p string) bool {
	_, err := os.Stat(p)
	return err == nil
}
