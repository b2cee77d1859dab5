package metrics

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
)

var (
	once sync.Once

	httpRequests = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "barokah",
			Name:      "http_requests_total",
			Help:      "HTTP requests by route pattern.",
		},
		[]string{"route"},
	)

	bookingsCreated = prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: "barokah",
			Name:      "bookings_created_total",
			Help:      "Bookings accepted through the public form.",
		},
	)

	dashboardRefreshes = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "barokah",
			Name:      "dashboard_refresh_total",
			Help:      "Dashboard snapshot refreshes by result.",
		},
		[]string{"result"},
	)

	mutationFailures = prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: "barokah",
			Name:      "mutation_failures_total",
			Help:      "Admin mutations rejected by the data store.",
		},
	)
)

// Register registers Prometheus metrics. Safe to call multiple times.
func Register() {
	once.Do(func() {
		prometheus.MustRegister(httpRequests, bookingsCreated, dashboardRefreshes, mutationFailures)
	})
}

func IncHTTP(route string) {
	httpRequests.WithLabelValues(route).Inc()
}

func IncBookingCreated() {
	bookingsCreated.Inc()
}

func IncRefresh(result string) {
	dashboardRefreshes.WithLabelValues(result).Inc()
}

func IncMutationFailure() {
	mutationFailures.Inc()
}
