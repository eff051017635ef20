package memcache

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	cacheLookups = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "agenda",
		Subsystem: "hierarchy_cache",
		Name:      "lookups_total",
		Help:      "Snapshot lookups broken down by result (hit, miss).",
	}, []string{"result"})

	cacheLoads = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "agenda",
		Subsystem: "hierarchy_cache",
		Name:      "loads_total",
		Help:      "Snapshot loads from the store broken down by result (ok, error).",
	}, []string{"result"})

	cacheInvalidations = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "agenda",
		Subsystem: "hierarchy_cache",
		Name:      "invalidations_total",
		Help:      "Snapshot invalidations broken down by source (local, remote).",
	}, []string{"source"})
)
