package pagination

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// PagesServedTotal counts served feed pages per feed kind, split by whether
// the page exhausted the result set. A high last-page ratio means clients
// walk feeds to the end and deeper pages are worth caching.
var PagesServedTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Name: "feed_pages_served_total",
		Help: "Total number of feed pages served",
	},
	[]string{"feed", "last_page"},
)

// RecordPage records one served page for the given feed kind.
func RecordPage(feed string, lastReached bool) {
	last := "false"
	if lastReached {
		last = "true"
	}
	PagesServedTotal.WithLabelValues(feed, last).Inc()
}
