package config

// Default values.
const (
	DefaultPageSize = 100
	DefaultFormat   = "text"
	DefaultLogLevel = "info"
)

// DefaultFields is the search projection used when nothing is configured.
var DefaultFields = []string{"summary", "status"}

// ApplyDefaults fills zero-valued settings. Values already set are kept.
func ApplyDefaults(cfg *Config) {
	if cfg.Search.PageSize == 0 {
		cfg.Search.PageSize = DefaultPageSize
	}
	if cfg.Search.DefaultFields == nil {
		cfg.Search.DefaultFields = append([]string(nil), DefaultFields...)
	}
	if cfg.Output.Format == "" {
		cfg.Output.Format = DefaultFormat
	}
	if cfg.Log.Level == "" {
		cfg.Log.Level = DefaultLogLevel
	}
}

// Default returns a configuration with every default applied.
func Default() *Config {
	cfg := &Config{}
	ApplyDefaults(cfg)
	return cfg
}
