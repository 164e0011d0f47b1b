package querydef

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// LoadMode controls how errors are handled during loading.
type LoadMode int

const (
	// LoadModeFailFast stops on the first error encountered.
	LoadModeFailFast LoadMode = iota
	// LoadModeCollectAll collects all errors before returning.
	LoadModeCollectAll
)

// LoadResult contains the queries compiled from a file or directory.
type LoadResult struct {
	Queries   []*Query // In file order, then declaration order
	FileCount int      // Number of definition files read
}

// Lookup returns the query with the given name, or nil.
func (r *LoadResult) Lookup(name string) *Query {
	for _, q := range r.Queries {
		if q.Name == name {
			return q
		}
	}
	return nil
}

// LoadError reports a file-level failure (missing path, unreadable file).
// Err wraps one of the package's sentinel errors.
type LoadError struct {
	Path    string
	Message string
	Err     error
}

func (e *LoadError) Error() string {
	if e.Path != "" {
		return fmt.Sprintf("%s: %s", e.Path, e.Message)
	}
	return e.Message
}

func (e *LoadError) Unwrap() error {
	return e.Err
}

// parsers maps file extensions to their decoders.
var parsers = map[string]func(data []byte, source string) ([]Definition, error){
	".cue":  ParseCUE,
	".yaml": ParseYAML,
	".yml":  ParseYAML,
	".json": ParseYAML,
}

// IsDefinitionFile reports whether path has a supported extension.
func IsDefinitionFile(path string) bool {
	_, ok := parsers[strings.ToLower(filepath.Ext(path))]
	return ok
}

// Load compiles every definition under path, which may be a single file or
// a directory (walked recursively, in lexical order).
//
// If mode is LoadModeFailFast, returns on the first error. If mode is
// LoadModeCollectAll, keeps going and returns every error; the result then
// holds the queries that did compile. A nil result means nothing could be
// read at all.
func Load(path string, mode LoadMode) (*LoadResult, []error) {
	info, err := os.Stat(path)
	if os.IsNotExist(err) {
		return nil, []error{&LoadError{Path: path, Message: "path not found", Err: ErrNotFound}}
	}
	if err != nil {
		return nil, []error{&LoadError{Path: path, Message: fmt.Sprintf("error accessing path: %v", err), Err: ErrNotFound}}
	}

	var files []string
	if info.IsDir() {
		files, err = FindDefinitionFiles(path)
		if err != nil {
			return nil, []error{&LoadError{Path: path, Message: fmt.Sprintf("error scanning directory: %v", err), Err: ErrNotFound}}
		}
	} else {
		if !IsDefinitionFile(path) {
			return nil, []error{&LoadError{Path: path, Message: "unsupported file extension (want .cue, .yaml, .yml or .json)", Err: ErrNoFiles}}
		}
		files = []string{path}
	}
	if len(files) == 0 {
		return nil, []error{&LoadError{Path: path, Message: "no .cue, .yaml, .yml or .json files found", Err: ErrNoFiles}}
	}

	result := &LoadResult{FileCount: len(files)}
	seen := make(map[string]string) // name → source
	var errs []error

	for _, file := range files {
		defs, err := readFile(file)
		if err != nil {
			errs = append(errs, err)
			if mode == LoadModeFailFast {
				return result, errs
			}
			continue
		}

		for _, def := range defs {
			q, err := Compile(def)
			if err == nil {
				if first, dup := seen[q.Name]; dup {
					err = &DefinitionError{
						Source:  def.Source,
						Line:    def.Line,
						Column:  def.Column,
						Query:   q.Name,
						Message: fmt.Sprintf("already defined in %s", first),
						Err:     ErrDuplicateName,
					}
				}
			}
			if err != nil {
				errs = append(errs, err)
				if mode == LoadModeFailFast {
					return result, errs
				}
				continue
			}

			seen[q.Name] = q.Source
			result.Queries = append(result.Queries, q)
		}
	}

	return result, errs
}

// FindDefinitionFiles walks dir and returns every supported definition file.
func FindDefinitionFiles(dir string) ([]string, error) {
	var files []string
	err := filepath.Walk(dir, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		if !info.IsDir() && IsDefinitionFile(path) {
			files = append(files, path)
		}
		return nil
	})
	return files, err
}

func readFile(path string) ([]Definition, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, &LoadError{Path: path, Message: fmt.Sprintf("read file: %v", err), Err: ErrNotFound}
	}

	parse := parsers[strings.ToLower(filepath.Ext(path))]
	defs, err := parse(data, path)
	if err != nil {
		var defErr *DefinitionError
		if errors.As(err, &defErr) {
			return nil, err
		}
		return nil, &LoadError{Path: path, Message: err.Error(), Err: ErrParse}
	}
	return defs, nil
}
