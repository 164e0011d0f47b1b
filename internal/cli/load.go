package cli

import (
	"errors"
	"fmt"

	"github.com/roach88/jqlkit/internal/querydef"
)

// loadFailure describes one error in command output.
type loadFailure struct {
	Code    string `json:"code"`
	Source  string `json:"source,omitempty"`
	Line    int    `json:"line,omitempty"`
	Column  int    `json:"column,omitempty"`
	Query   string `json:"query,omitempty"`
	Path    string `json:"path,omitempty"`
	Message string `json:"message"`
}

func newLoadFailure(err error) loadFailure {
	f := loadFailure{Code: errorCode(err), Message: err.Error()}
	var defErr *querydef.DefinitionError
	if errors.As(err, &defErr) {
		f.Source = defErr.Source
		f.Line = defErr.Line
		f.Column = defErr.Column
		f.Query = defErr.Query
		f.Path = defErr.Path
		f.Message = defErr.Message
		if defErr.Err != nil {
			f.Message += ": " + defErr.Err.Error()
		}
	}
	return f
}

// loadQueries loads definitions at path. A nil result is reported as a
// command error; compile errors are returned for the caller to present.
func loadQueries(opts *RootOptions, f *OutputFormatter, path string, mode querydef.LoadMode) (*querydef.LoadResult, []error, error) {
	result, errs := querydef.Load(path, mode)
	if result == nil {
		err := errs[0]
		return nil, nil, f.Fail(ExitCommandError, errorCode(err), err.Error(), nil)
	}

	opts.logger().Debug("loaded query definitions",
		"path", path,
		"files", result.FileCount,
		"queries", len(result.Queries),
		"errors", len(errs))
	return result, errs, nil
}

// requireQueries loads in fail-fast mode and turns any error into a failure.
func requireQueries(opts *RootOptions, f *OutputFormatter, path string) (*querydef.LoadResult, error) {
	result, errs, err := loadQueries(opts, f, path, querydef.LoadModeFailFast)
	if err != nil {
		return nil, err
	}
	if len(errs) > 0 {
		failure := newLoadFailure(errs[0])
		return nil, f.Fail(ExitFailure, failure.Code, errs[0].Error(), failure)
	}
	return result, nil
}

// selectQueries returns the named query, or all of them when name is empty.
func selectQueries(f *OutputFormatter, result *querydef.LoadResult, name string) ([]*querydef.Query, error) {
	if name == "" {
		return result.Queries, nil
	}
	q := result.Lookup(name)
	if q == nil {
		return nil, f.Fail(ExitCommandError, ErrCodeUnknownQuery, fmt.Sprintf("query %q not found", name), nil)
	}
	return []*querydef.Query{q}, nil
}
