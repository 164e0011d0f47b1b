// Package search is the boundary between rendered statements and whatever
// transport executes them.
//
// A Request is the body of one page of a search call. The transport itself
// is a Searcher supplied by the caller; Collector drives it page by page:
//
//	c := search.NewCollector(client, search.WithPageSize(50))
//	issues, err := c.All(ctx, []string{"summary", "status"}, stmt)
//
// Paging stops at the first page that returns fewer issues than were asked
// for. The next page starts after the issues actually returned, not after
// the requested page size.
//
// jqlc does not drive a Collector: no transport ships here, and the CLI
// stops at printing the request body. Collector and its Metrics are for
// programs that bring their own Searcher; register NewMetrics on their
// prometheus registry.
//
// Issue fields stay raw JSON. StringAt, StatusCategory and StoryPoints read
// the few nested values callers commonly need without a schema.
package search
