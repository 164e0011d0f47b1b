// Package config loads jqlc settings from a YAML file and the environment.
//
// The loading sequence is:
//  1. Parse YAML from the file, if one is given
//  2. Apply default values
//  3. Apply JQLC_* environment overrides
//  4. Validate the result
//
// Example file:
//
//	catalog:
//	  path: ~/.jqlc/catalog.db
//	search:
//	  page_size: 50
//	  default_fields: [summary, status]
//	  story_point_fields: [customfield_10016]
//	output:
//	  format: json
//	log:
//	  level: debug
package config

// Config is the complete jqlc configuration.
type Config struct {
	Catalog CatalogConfig `yaml:"catalog"`
	Search  SearchConfig  `yaml:"search"`
	Output  OutputConfig  `yaml:"output"`
	Log     LogConfig     `yaml:"log"`
}

// CatalogConfig locates the saved-query database.
type CatalogConfig struct {
	// Path is the SQLite file. Empty means commands that need a catalog
	// must be given --db.
	Path string `yaml:"path"`
}

// SearchConfig shapes search request bodies.
type SearchConfig struct {
	// PageSize is the maxResults of each page request.
	PageSize int `yaml:"page_size"`

	// DefaultFields is the projection used when a query declares none.
	DefaultFields []string `yaml:"default_fields"`

	// StoryPointFields lists custom field IDs that may hold story points.
	StoryPointFields []string `yaml:"story_point_fields"`
}

// OutputConfig sets the default CLI output format.
type OutputConfig struct {
	Format string `yaml:"format"`
}

// LogConfig sets the default log level.
type LogConfig struct {
	Level string `yaml:"level"`
}
