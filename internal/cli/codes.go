package cli

import (
	"errors"

	"github.com/roach88/jqlkit/internal/catalog"
	"github.com/roach88/jqlkit/internal/querydef"
)

// Error codes shared by all commands.
const (
	ErrCodeGeneric      = "E001" // Generic/unknown error
	ErrCodeParse        = "E002" // Definition file could not be parsed
	ErrCodeNoFiles      = "E003" // No definition files found
	ErrCodeSchema       = "E004" // Definition violates the query schema
	ErrCodeNotFound     = "E005" // Path not found
	ErrCodeDuplicate    = "E006" // Query name defined twice
	ErrCodeCatalog      = "E007" // Catalog open/read/write failed
	ErrCodeUnknownQuery = "E008" // Named query not found
	ErrCodeConfig       = "E009" // Configuration invalid
	ErrCodeUsage        = "E010" // Missing or invalid flag

	ErrCodeLint = "W001" // Lint finding
)

// errorCode maps a load, compile or catalog error to its code.
func errorCode(err error) string {
	switch {
	case errors.Is(err, querydef.ErrNotFound):
		return ErrCodeNotFound
	case errors.Is(err, querydef.ErrNoFiles):
		return ErrCodeNoFiles
	case errors.Is(err, querydef.ErrParse):
		return ErrCodeParse
	case errors.Is(err, querydef.ErrDuplicateName):
		return ErrCodeDuplicate
	case errors.Is(err, querydef.ErrSchema):
		return ErrCodeSchema
	case errors.Is(err, catalog.ErrNotFound):
		return ErrCodeUnknownQuery
	}
	var defErr *querydef.DefinitionError
	if errors.As(err, &defErr) {
		return ErrCodeSchema
	}
	return ErrCodeGeneric
}
