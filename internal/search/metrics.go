package search

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds the collectors for search paging.
type Metrics struct {
	pages    *prometheus.CounterVec
	issues   prometheus.Counter
	pageSize prometheus.Histogram
}

// NewMetrics registers the search metrics on reg.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)
	return &Metrics{
		pages: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "jqlkit_search_pages_total",
				Help: "Total number of search pages requested",
			},
			[]string{"result"},
		),
		issues: factory.NewCounter(
			prometheus.CounterOpts{
				Name: "jqlkit_search_issues_total",
				Help: "Total number of issues returned by search pages",
			},
		),
		pageSize: factory.NewHistogram(
			prometheus.HistogramOpts{
				Name:    "jqlkit_search_page_size",
				Help:    "Number of issues returned per search page",
				Buckets: []float64{0, 1, 10, 25, 50, 100, 250, 500, 1000},
			},
		),
	}
}

func (m *Metrics) observePage(n int) {
	if m == nil {
		return
	}
	m.pages.WithLabelValues("ok").Inc()
	m.issues.Add(float64(n))
	m.pageSize.Observe(float64(n))
}

func (m *Metrics) observeFailure() {
	if m == nil {
		return
	}
	m.pages.WithLabelValues("error").Inc()
}
