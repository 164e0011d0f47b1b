package search

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"slices"

	"github.com/roach88/jqlkit/internal/jql"
)

// PageError reports a page that could not be fetched. Issues collected from
// earlier pages are discarded.
type PageError struct {
	StartAt int
	Err     error
}

func (e *PageError) Error() string {
	return fmt.Sprintf("search page at offset %d: %v", e.StartAt, e.Err)
}

func (e *PageError) Unwrap() error {
	return e.Err
}

// Collector pages through a Searcher until the result set is exhausted.
// A Collector is safe for concurrent use if its Searcher is.
type Collector struct {
	searcher Searcher
	pageSize int
	logger   *slog.Logger
	metrics  *Metrics
}

// Option configures a Collector.
type Option func(*Collector)

// WithPageSize sets the requested page size. Values below 1 are ignored.
func WithPageSize(n int) Option {
	return func(c *Collector) {
		if n > 0 {
			c.pageSize = n
		}
	}
}

// WithLogger sets the logger for per-page debug output.
func WithLogger(l *slog.Logger) Option {
	return func(c *Collector) {
		if l != nil {
			c.logger = l
		}
	}
}

// WithMetrics records page and issue counts.
func WithMetrics(m *Metrics) Option {
	return func(c *Collector) {
		c.metrics = m
	}
}

// NewCollector returns a Collector over s.
func NewCollector(s Searcher, opts ...Option) *Collector {
	c := &Collector{
		searcher: s,
		pageSize: DefaultPageSize,
		logger:   slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// PageSize returns the configured page size.
func (c *Collector) PageSize() int {
	return c.pageSize
}

// All returns every issue matching stmt, in the order the pages returned
// them. ctx is checked before each page.
func (c *Collector) All(ctx context.Context, fields []string, stmt jql.Statement) ([]Issue, error) {
	var (
		issues  []Issue
		startAt int
	)
	query := stmt.Serialize()

	for {
		if err := ctx.Err(); err != nil {
			return nil, &PageError{StartAt: startAt, Err: err}
		}

		req := Request{
			Fields:     slices.Clone(fields),
			JQL:        stmt,
			MaxResults: c.pageSize,
			StartAt:    startAt,
		}
		page, err := c.searcher.Search(ctx, req)
		if err != nil {
			c.metrics.observeFailure()
			c.logger.Debug("search page failed",
				"jql", query,
				"start_at", startAt,
				"error", err)
			return nil, &PageError{StartAt: startAt, Err: err}
		}

		n := len(page.Issues)
		c.metrics.observePage(n)
		c.logger.Debug("search page",
			"jql", query,
			"start_at", startAt,
			"returned", n)

		issues = append(issues, page.Issues...)
		if n < c.pageSize {
			return issues, nil
		}
		startAt += n
	}
}
