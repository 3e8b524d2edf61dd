package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	// HTTP
	RequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total HTTP requests",
		},
		[]string{"route", "method", "status"},
	)

	// Orders
	OrdersTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "orders_total",
			Help: "Order attempts by result",
		},
		[]string{"result"}, // completed | error code
	)
	ConcurrencyConflictsTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "order_concurrency_conflicts_total",
			Help: "Orders lost to a balance version conflict",
		},
	)

	// Points
	PointChargesTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "point_charges_total",
			Help: "Successful point charges",
		},
	)

	// Worker queue
	WorkerQueueDepth = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "worker_queue_depth",
			Help: "Current worker queue depth",
		},
	)
)

var Handler = promhttp.Handler

func Init() {
	prometheus.MustRegister(RequestsTotal)
	prometheus.MustRegister(OrdersTotal)
	prometheus.MustRegister(ConcurrencyConflictsTotal)
	prometheus.MustRegister(PointChargesTotal)
	prometheus.MustRegister(WorkerQueueDepth)
}
