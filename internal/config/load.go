package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

// Environment variables that override file settings.
const (
	EnvCatalogPath = "JQLC_CATALOG_PATH"
	EnvPageSize    = "JQLC_SEARCH_PAGE_SIZE"
	EnvFields      = "JQLC_SEARCH_DEFAULT_FIELDS" // comma-separated
	EnvFormat      = "JQLC_OUTPUT_FORMAT"
	EnvLogLevel    = "JQLC_LOG_LEVEL"
)

// Load reads the configuration at path, applies defaults and environment
// overrides, and validates the result. An empty path skips the file.
func Load(path string) (*Config, error) {
	var cfg Config

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read configuration file %q: %w", path, err)
		}
		dec := yaml.NewDecoder(bytes.NewReader(data))
		dec.KnownFields(true)
		if err := dec.Decode(&cfg); err != nil && !errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("failed to parse configuration file %q: %w", path, err)
		}
	}

	ApplyDefaults(&cfg)
	if err := applyEnvOverrides(&cfg); err != nil {
		return nil, err
	}

	if err := Validate(&cfg); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}
	return &cfg, nil
}

// applyEnvOverrides applies JQLC_* variables. Environment variables always
// take precedence over file settings.
func applyEnvOverrides(cfg *Config) error {
	if val := os.Getenv(EnvCatalogPath); val != "" {
		cfg.Catalog.Path = val
	}
	if val := os.Getenv(EnvPageSize); val != "" {
		n, err := strconv.Atoi(strings.TrimSpace(val))
		if err != nil {
			return fmt.Errorf("%s: %q is not an integer", EnvPageSize, val)
		}
		cfg.Search.PageSize = n
	}
	if val := os.Getenv(EnvFields); val != "" {
		var fields []string
		for _, f := range strings.Split(val, ",") {
			if f = strings.TrimSpace(f); f != "" {
				fields = append(fields, f)
			}
		}
		cfg.Search.DefaultFields = fields
	}
	if val := os.Getenv(EnvFormat); val != "" {
		cfg.Output.Format = val
	}
	if val := os.Getenv(EnvLogLevel); val != "" {
		cfg.Log.Level = val
	}
	return nil
}
