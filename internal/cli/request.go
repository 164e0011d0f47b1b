package cli

import (
	"encoding/json"
	"fmt"
	"slices"

	"github.com/spf13/cobra"

	"github.com/roach88/jqlkit/internal/search"
)

// RequestOptions holds request command flags.
type RequestOptions struct {
	Query      string
	StartAt    int
	MaxResults int
	Fields     []string
}

// NewRequestCommand creates the request command.
func NewRequestCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &RequestOptions{}

	cmd := &cobra.Command{
		Use:   "request <path>",
		Short: "Print the search request body for a query",
		Long: `Print the JSON body of one page of a search request for the named
query. Fields come from --fields, then the query's own fields, then
search.default_fields from the configuration; unless --fields is given,
search.story_point_fields are appended. --max-results defaults to
search.page_size.`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runRequest(rootOpts, opts, cmd, args[0])
		},
	}

	cmd.Flags().StringVarP(&opts.Query, "query", "q", "", "query name (required)")
	cmd.Flags().IntVar(&opts.StartAt, "start-at", 0, "index of the first result")
	cmd.Flags().IntVar(&opts.MaxResults, "max-results", 0, "page size (default: search.page_size)")
	cmd.Flags().StringSliceVar(&opts.Fields, "fields", nil, "fields to return")
	return cmd
}

func runRequest(rootOpts *RootOptions, opts *RequestOptions, cmd *cobra.Command, path string) error {
	f := rootOpts.formatter(cmd)
	cfg := rootOpts.settings()

	if opts.Query == "" {
		return f.Fail(ExitCommandError, ErrCodeUsage, "--query is required", nil)
	}
	if opts.StartAt < 0 {
		return f.Fail(ExitCommandError, ErrCodeUsage, fmt.Sprintf("--start-at must not be negative, got %d", opts.StartAt), nil)
	}
	if opts.MaxResults < 0 {
		return f.Fail(ExitCommandError, ErrCodeUsage, fmt.Sprintf("--max-results must not be negative, got %d", opts.MaxResults), nil)
	}

	result, err := requireQueries(rootOpts, f, path)
	if err != nil {
		return err
	}
	queries, err := selectQueries(f, result, opts.Query)
	if err != nil {
		return err
	}
	q := queries[0]

	fields := opts.Fields
	if len(fields) == 0 {
		fields = q.Fields
		if len(fields) == 0 {
			fields = cfg.Search.DefaultFields
		}
		fields = withFields(fields, cfg.Search.StoryPointFields)
	}
	maxResults := opts.MaxResults
	if maxResults == 0 {
		maxResults = cfg.Search.PageSize
	}

	req := search.Request{
		Fields:     fields,
		JQL:        q.Statement,
		MaxResults: maxResults,
		StartAt:    opts.StartAt,
	}

	if f.JSON() {
		return f.Success(req)
	}
	enc := json.NewEncoder(f.Writer)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	return enc.Encode(req)
}

// withFields returns fields followed by every extra not already present.
func withFields(fields, extra []string) []string {
	out := slices.Clone(fields)
	for _, f := range extra {
		if !slices.Contains(out, f) {
			out = append(out, f)
		}
	}
	return out
}
