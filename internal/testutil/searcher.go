package testutil

import (
	"context"
	"fmt"
	"sync"

	"github.com/roach88/jqlkit/internal/search"
)

// PagedSearcher is an in-memory search.Searcher over a fixed result set.
// It honours StartAt and MaxResults the way a real search endpoint does
// and records every request it receives.
type PagedSearcher struct {
	mu       sync.Mutex
	issues   []search.Issue
	requests []search.Request

	// FailAt makes the call whose StartAt equals it return Err.
	// Negative disables failures.
	FailAt int
	Err    error
}

// NewPagedSearcher returns a searcher over issues.
func NewPagedSearcher(issues []search.Issue) *PagedSearcher {
	return &PagedSearcher{issues: issues, FailAt: -1}
}

// Issues builds n issues with keys "<project>-1" ... "<project>-n".
func Issues(project string, n int) []search.Issue {
	out := make([]search.Issue, n)
	for i := range out {
		out[i] = search.Issue{
			ID:  fmt.Sprintf("%d", 10000+i+1),
			Key: fmt.Sprintf("%s-%d", project, i+1),
		}
	}
	return out
}

// Search returns the slice of issues at [StartAt, StartAt+MaxResults).
func (s *PagedSearcher) Search(ctx context.Context, req search.Request) (search.Page, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.requests = append(s.requests, req)
	if err := ctx.Err(); err != nil {
		return search.Page{}, err
	}
	if s.FailAt >= 0 && req.StartAt == s.FailAt {
		return search.Page{}, s.Err
	}

	start := min(max(req.StartAt, 0), len(s.issues))
	end := min(start+max(req.MaxResults, 0), len(s.issues))
	page := make([]search.Issue, end-start)
	copy(page, s.issues[start:end])
	return search.Page{Issues: page}, nil
}

// Requests returns a copy of the requests received so far.
func (s *PagedSearcher) Requests() []search.Request {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]search.Request, len(s.requests))
	copy(out, s.requests)
	return out
}
