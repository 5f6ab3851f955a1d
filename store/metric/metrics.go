// SPDX-License-Identifier: Apache-2.0

package metric

import (
	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/fx"

	"github.com/zoomvr/geomodelportal/store"
)

const (
	CacheHitCounter  = "cache_hit_count"
	CacheMissCounter = "cache_miss_count"
	CacheAddCounter  = "cache_add_count"
)

// BucketLabel partitions the cache counters by logical namespace.
const BucketLabel = "bucket"

// Measures holds the cache-level metrics shared by the index builder, the
// scene splitter and the blob fetch path.
type Measures struct {
	CacheHits   *prometheus.CounterVec
	CacheMisses *prometheus.CounterVec
	CacheAdds   *prometheus.CounterVec
}

func NewMeasures(registry *prometheus.Registry) (Measures, error) {
	m := Measures{
		CacheHits: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: CacheHitCounter,
			Help: "The total number of cache reads answered from the store",
		}, []string{BucketLabel}),
		CacheMisses: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: CacheMissCounter,
			Help: "The total number of cache reads that fell through to a rebuild",
		}, []string{BucketLabel}),
		CacheAdds: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: CacheAddCounter,
			Help: "The total number of cache populate attempts",
		}, []string{BucketLabel, store.TypeLabel}),
	}
	for _, c := range []*prometheus.CounterVec{m.CacheHits, m.CacheMisses, m.CacheAdds} {
		if err := registry.Register(c); err != nil {
			return Measures{}, err
		}
	}
	return m, nil
}

// ProvideMetrics returns the metrics relevant to this package.
func ProvideMetrics() fx.Option {
	return fx.Provide(NewMeasures)
}
