package metrics

import "github.com/prometheus/client_golang/prometheus"

var (
	HTTPRequestDuration = prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "rajwen_http_request_duration_seconds",
		Help:    "Latency of HTTP requests by route",
		Buckets: prometheus.DefBuckets,
	}, []string{"method", "path"})

	HTTPRequestsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "rajwen_http_requests_total",
		Help: "Total HTTP requests by route and status",
	}, []string{"method", "path", "status"})

	OrdersCreatedTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "rajwen_orders_created_total",
		Help: "Total orders created",
	})

	OrderStatusTransitionsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "rajwen_order_status_transitions_total",
		Help: "Order status transitions by target status",
	}, []string{"to"})

	PaymentsRecordedTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "rajwen_payments_recorded_total",
		Help: "Payments recorded by status",
	}, []string{"status"})
)

func Init() {
	prometheus.MustRegister(
		HTTPRequestDuration,
		HTTPRequestsTotal,
		OrdersCreatedTotal,
		OrderStatusTransitionsTotal,
		PaymentsRecordedTotal,
	)
}
