package metrics

import "github.com/prometheus/client_golang/prometheus"

var (
	APIRequests = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "airtab_api_requests_total",
			Help: "Number of remote API requests",
		},
		[]string{"op", "status"},
	)
	SchemaFetches = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "airtab_schema_fetches_total",
			Help: "Number of base schema fetches",
		},
	)
	SchemaCacheHits = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "airtab_schema_cache_hits_total",
			Help: "Schema cache hits",
		},
	)
	SchemaCacheMisses = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "airtab_schema_cache_misses_total",
			Help: "Schema cache misses",
		},
	)
	SchemaCacheClears = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "airtab_schema_cache_clears_total",
			Help: "Full cache clears triggered by the base-count ceiling",
		},
	)
	MappingWarnings = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "airtab_mapping_warnings_total",
			Help: "Per-field mapping failures tolerated in warning mode",
		},
	)
)

func init() {
	prometheus.MustRegister(
		APIRequests,
		SchemaFetches,
		SchemaCacheHits,
		SchemaCacheMisses,
		SchemaCacheClears,
		MappingWarnings,
	)
}
