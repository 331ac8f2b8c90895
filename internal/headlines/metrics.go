package headlines

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	cacheHits = promauto.NewCounter(prometheus.CounterOpts{
		Name: "newsapp_cache_hits_total",
		Help: "Headline requests served from the in-memory cache.",
	})
	cacheMisses = promauto.NewCounter(prometheus.CounterOpts{
		Name: "newsapp_cache_misses_total",
		Help: "Headline requests that required a remote fetch.",
	})
	fetchErrors = promauto.NewCounter(prometheus.CounterOpts{
		Name: "newsapp_fetch_errors_total",
		Help: "Remote fetches that failed, transport and API errors combined.",
	})
)
