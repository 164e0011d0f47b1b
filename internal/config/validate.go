package config

import (
	"fmt"
	"log/slog"
	"strings"
)

// MaxPageSize bounds search.page_size.
const MaxPageSize = 1000

// FieldError is a validation failure for one setting.
type FieldError struct {
	// Field is the dotted path to the setting (e.g., "search.page_size").
	Field   string
	Message string
}

func (e FieldError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// ValidationError collects every FieldError found.
type ValidationError struct {
	Errors []FieldError
}

func (e ValidationError) Error() string {
	switch len(e.Errors) {
	case 0:
		return "invalid configuration"
	case 1:
		return e.Errors[0].Error()
	}
	var sb strings.Builder
	fmt.Fprintf(&sb, "%d errors:", len(e.Errors))
	for _, err := range e.Errors {
		sb.WriteString("\n  - ")
		sb.WriteString(err.Error())
	}
	return sb.String()
}

// Validate checks every setting and returns a ValidationError listing all
// failures, or nil.
func Validate(cfg *Config) error {
	var errs []FieldError

	if cfg.Search.PageSize < 1 || cfg.Search.PageSize > MaxPageSize {
		errs = append(errs, FieldError{
			Field:   "search.page_size",
			Message: fmt.Sprintf("must be between 1 and %d, got %d", MaxPageSize, cfg.Search.PageSize),
		})
	}
	for i, f := range cfg.Search.DefaultFields {
		if strings.TrimSpace(f) == "" {
			errs = append(errs, FieldError{Field: fmt.Sprintf("search.default_fields[%d]", i), Message: "must not be empty"})
		}
	}
	for i, f := range cfg.Search.StoryPointFields {
		if strings.TrimSpace(f) == "" {
			errs = append(errs, FieldError{Field: fmt.Sprintf("search.story_point_fields[%d]", i), Message: "must not be empty"})
		}
	}
	switch cfg.Output.Format {
	case "text", "json":
	default:
		errs = append(errs, FieldError{Field: "output.format", Message: fmt.Sprintf("must be text or json, got %q", cfg.Output.Format)})
	}
	if _, err := ParseLevel(cfg.Log.Level); err != nil {
		errs = append(errs, FieldError{Field: "log.level", Message: err.Error()})
	}

	if len(errs) > 0 {
		return ValidationError{Errors: errs}
	}
	return nil
}

// ParseLevel maps a level name to a slog.Level.
func ParseLevel(s string) (slog.Level, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(s)); err != nil {
		return 0, fmt.Errorf("unknown level %q (want debug, info, warn or error)", s)
	}
	return level, nil
}
