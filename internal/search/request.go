package search

import (
	"bytes"
	"context"
	"encoding/json"

	"github.com/roach88/jqlkit/internal/jql"
)

// DefaultPageSize is the page size used when none is configured.
const DefaultPageSize = 100

// Request is one page of a search call.
//
// The statement marshals as its rendered JQL string.
type Request struct {
	Fields     []string      `json:"fields"`
	JQL        jql.Statement `json:"jql"`
	MaxResults int           `json:"maxResults"`
	StartAt    int           `json:"startAt"`
}

// MarshalJSON keeps "fields" an array when no fields were requested.
func (r Request) MarshalJSON() ([]byte, error) {
	type wire Request
	w := wire(r)
	if w.Fields == nil {
		w.Fields = []string{}
	}
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(w); err != nil {
		return nil, err
	}
	return bytes.TrimSuffix(buf.Bytes(), []byte("\n")), nil
}

// Issue is one search hit. Fields are kept raw; see StringAt.
type Issue struct {
	ID     string                     `json:"id"`
	Key    string                     `json:"key"`
	Fields map[string]json.RawMessage `json:"fields"`
}

// Page is one search response.
type Page struct {
	Issues []Issue `json:"issues"`
}

// Searcher executes a single page request.
type Searcher interface {
	Search(ctx context.Context, req Request) (Page, error)
}

// SearcherFunc adapts a function to Searcher.
type SearcherFunc func(ctx context.Context, req Request) (Page, error)

// Search calls f.
func (f SearcherFunc) Search(ctx context.Context, req Request) (Page, error) {
	return f(ctx, req)
}
