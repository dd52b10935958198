package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds the platform's Prometheus counters.
type Metrics struct {
	ViewsRegistered        prometheus.Counter
	ViewIncrementErrors    prometheus.Counter
	CurationRequests       prometheus.Counter
	CurationProductsServed prometheus.Counter
}

// New creates and registers all counters on the default registry.
func New() *Metrics {
	return &Metrics{
		ViewsRegistered: promauto.NewCounter(prometheus.CounterOpts{
			Name: "vendora_store_views_registered_total",
			Help: "Store view events accepted for increment, after idempotency checks",
		}),
		ViewIncrementErrors: promauto.NewCounter(prometheus.CounterOpts{
			Name: "vendora_store_view_increment_errors_total",
			Help: "Best-effort view-count increments that failed and were dropped",
		}),
		CurationRequests: promauto.NewCounter(prometheus.CounterOpts{
			Name: "vendora_curation_requests_total",
			Help: "Marketplace and landing curation runs",
		}),
		CurationProductsServed: promauto.NewCounter(prometheus.CounterOpts{
			Name: "vendora_curation_products_served_total",
			Help: "Products admitted into curated feeds",
		}),
	}
}

// NewForTest creates counters on a private registry so tests do not
// collide on the default one.
func NewForTest() *Metrics {
	reg := prometheus.NewRegistry()
	factory := promauto.With(reg)
	return &Metrics{
		ViewsRegistered:        factory.NewCounter(prometheus.CounterOpts{Name: "vendora_store_views_registered_total"}),
		ViewIncrementErrors:    factory.NewCounter(prometheus.CounterOpts{Name: "vendora_store_view_increment_errors_total"}),
		CurationRequests:       factory.NewCounter(prometheus.CounterOpts{Name: "vendora_curation_requests_total"}),
		CurationProductsServed: factory.NewCounter(prometheus.CounterOpts{Name: "vendora_curation_products_served_total"}),
	}
}
