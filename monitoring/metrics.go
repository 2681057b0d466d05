package monitoring

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	checkoutOperations = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "checkout_operations_total",
			Help: "Total checkout operations by outcome",
		},
		[]string{"operation", "status"},
	)

	activeSessions = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "checkout_active_sessions",
			Help: "Current number of live checkout sessions",
		},
	)

	salesCreated = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "sales_created_total",
			Help: "Total sales persisted",
		},
	)

	ticketsCreated = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "tickets_created_total",
			Help: "Total tickets persisted",
		},
	)

	saleRollbacks = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "sale_rollbacks_total",
			Help: "Sales deleted after ticket batch creation failed",
		},
	)

	reservationsExpired = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "reservations_expired_total",
			Help: "Reservations expired by the countdown",
		},
	)

	ticketCodeRetries = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "ticket_code_retries_total",
			Help: "Ticket codes regenerated after a store collision",
		},
	)

	orphanSalesSwept = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "orphan_sales_swept_total",
			Help: "Zero-ticket pending sales removed by the reconciliation sweep",
		},
	)
)

func RecordCheckoutOperation(operation, status string) {
	checkoutOperations.WithLabelValues(operation, status).Inc()
}

func IncActiveSessions() {
	activeSessions.Inc()
}

func DecActiveSessions() {
	activeSessions.Dec()
}

func RecordSaleCreated() {
	salesCreated.Inc()
}

func RecordTicketsCreated(n int) {
	ticketsCreated.Add(float64(n))
}

func RecordSaleRollback() {
	saleRollbacks.Inc()
}

func RecordReservationExpired() {
	reservationsExpired.Inc()
}

func RecordTicketCodeRetries(n int) {
	ticketCodeRetries.Add(float64(n))
}

func RecordOrphanSaleSwept() {
	orphanSalesSwept.Inc()
}
