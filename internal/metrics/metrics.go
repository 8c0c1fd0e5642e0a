package metrics

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
)

const (
	StatusSuccess = "success"
	StatusFailed  = "failed"
)

var (
	domainMetricsOnce sync.Once

	friendRequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "friend_requests_total",
			Help: "Total number of friend request attempts",
		},
		[]string{"status"},
	)

	friendAcceptsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "friend_accepts_total",
			Help: "Total number of friend request accept attempts",
		},
		[]string{"status"},
	)

	friendRejectsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "friend_rejects_total",
			Help: "Total number of friend request reject attempts",
		},
		[]string{"status"},
	)

	invoiceCreatesTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "invoice_creates_total",
			Help: "Total number of invoice creation attempts",
		},
		[]string{"status"},
	)

	invoicePaymentsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "invoice_payments_total",
			Help: "Total number of invoice payment attempts",
		},
		[]string{"status"},
	)

	invoiceRejectionsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "invoice_rejections_total",
			Help: "Total number of invoice rejection attempts",
		},
		[]string{"status"},
	)

	chatMessagesTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "chat_messages_total",
			Help: "Total number of chat message send attempts",
		},
		[]string{"status"},
	)
)

func RegisterDomainMetrics() {
	domainMetricsOnce.Do(func() {
		prometheus.MustRegister(
			friendRequestsTotal,
			friendAcceptsTotal,
			friendRejectsTotal,
			invoiceCreatesTotal,
			invoicePaymentsTotal,
			invoiceRejectionsTotal,
			chatMessagesTotal,
		)
	})
}

func IncFriendRequest(status string) {
	RegisterDomainMetrics()
	friendRequestsTotal.WithLabelValues(status).Inc()
}

func IncFriendAccept(status string) {
	RegisterDomainMetrics()
	friendAcceptsTotal.WithLabelValues(status).Inc()
}

func IncFriendReject(status string) {
	RegisterDomainMetrics()
	friendRejectsTotal.WithLabelValues(status).Inc()
}

func IncInvoiceCreate(status string) {
	RegisterDomainMetrics()
	invoiceCreatesTotal.WithLabelValues(status).Inc()
}

func IncInvoicePayment(status string) {
	RegisterDomainMetrics()
	invoicePaymentsTotal.WithLabelValues(status).Inc()
}

func IncInvoiceRejection(status string) {
	RegisterDomainMetrics()
	invoiceRejectionsTotal.WithLabelValues(status).Inc()
}

func IncChatMessage(status string) {
	RegisterDomainMetrics()
	chatMessagesTotal.WithLabelValues(status).Inc()
}
