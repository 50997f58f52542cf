// Package metrics holds the prometheus collectors of the service.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/serroba/shortlink/internal/shortener"
	"github.com/serroba/shortlink/internal/store"
)

const (
	// KindLabel distinguishes custom aliases from generated codes.
	KindLabel = "kind"

	KindCustom    = "custom"
	KindGenerated = "generated"
)

// NewRegistry returns a registry that already carries the Go runtime and
// process collectors.
func NewRegistry() *prometheus.Registry {
	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	return reg
}

// Handler serves the metrics gathered by reg in the prometheus text format.
func Handler(reg *prometheus.Registry) http.Handler {
	return promhttp.HandlerFor(reg, promhttp.HandlerOpts{Registry: reg})
}

// Allocation counts allocation outcomes. It implements shortener.Observer.
type Allocation struct {
	Allocations    *prometheus.CounterVec
	Collisions     prometheus.Counter
	AliasConflicts prometheus.Counter
	Exhaustions    prometheus.Counter
}

// NewAllocation creates the allocation collectors and registers them with reg.
func NewAllocation(reg prometheus.Registerer) *Allocation {
	m := &Allocation{
		Allocations: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "shortlink_allocations_total",
			Help: "The number of short codes allocated",
		}, []string{KindLabel}),
		Collisions: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "shortlink_generated_collisions_total",
			Help: "The number of generated codes that were already taken",
		}),
		AliasConflicts: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "shortlink_alias_conflicts_total",
			Help: "The number of rejected custom codes",
		}),
		Exhaustions: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "shortlink_allocation_exhausted_total",
			Help: "The number of allocations that ran out of attempts",
		}),
	}
	reg.MustRegister(m.Allocations, m.Collisions, m.AliasConflicts, m.Exhaustions)

	return m
}

func (m *Allocation) Allocated(custom bool) {
	kind := KindGenerated
	if custom {
		kind = KindCustom
	}

	m.Allocations.WithLabelValues(kind).Inc()
}

func (m *Allocation) Collision()     { m.Collisions.Inc() }
func (m *Allocation) AliasConflict() { m.AliasConflicts.Inc() }
func (m *Allocation) Exhausted()     { m.Exhaustions.Inc() }

// Cache counts link cache hits and misses. It implements store.CacheObserver.
type Cache struct {
	Hits   prometheus.Counter
	Misses prometheus.Counter
}

// NewCache creates the cache collectors and registers them with reg.
func NewCache(reg prometheus.Registerer) *Cache {
	m := &Cache{
		Hits: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "shortlink_cache_hit_count",
			Help: "The number of link cache hits",
		}),
		Misses: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "shortlink_cache_miss_count",
			Help: "The number of link cache misses",
		}),
	}
	reg.MustRegister(m.Hits, m.Misses)

	return m
}

func (m *Cache) Hit()  { m.Hits.Inc() }
func (m *Cache) Miss() { m.Misses.Inc() }

var (
	_ shortener.Observer  = (*Allocation)(nil)
	_ store.CacheObserver = (*Cache)(nil)
)
