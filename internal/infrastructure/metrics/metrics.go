package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// ViolationMetrics covers the dispute workflow, settlement and the
// order-state sweep.
type ViolationMetrics struct {
	CasesReportedTotal  *prometheus.CounterVec
	CasesAcceptedTotal  prometheus.Counter
	CasesRejectedTotal  prometheus.Counter
	CasesRevisedTotal   prometheus.Counter
	CasesEscalatedTotal *prometheus.CounterVec
	CasesResolvedTotal  *prometheus.CounterVec

	SettlementsTotal      prometheus.Counter
	SettlementRefundTotal prometheus.Counter

	OrdersAdvancedTotal *prometheus.CounterVec
	SweepDuration       prometheus.Histogram

	EvidenceUploadErrorsTotal prometheus.Counter
	NotificationErrorsTotal   prometheus.Counter
}

func NewViolationMetrics(reg prometheus.Registerer) *ViolationMetrics {
	factory := promauto.With(reg)

	return &ViolationMetrics{
		CasesReportedTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "violation_cases_reported_total",
			Help: "Violation cases created by provider reports",
		}, []string{"kind"}),
		CasesAcceptedTotal: factory.NewCounter(prometheus.CounterOpts{
			Name: "violation_cases_accepted_total",
			Help: "Cases accepted by the customer",
		}),
		CasesRejectedTotal: factory.NewCounter(prometheus.CounterOpts{
			Name: "violation_cases_rejected_total",
			Help: "Cases contested by the customer",
		}),
		CasesRevisedTotal: factory.NewCounter(prometheus.CounterOpts{
			Name: "violation_cases_revised_total",
			Help: "Provider revisions after a rejection",
		}),
		CasesEscalatedTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "violation_cases_escalated_total",
			Help: "Cases escalated to admin review",
		}, []string{"initiator"}),
		CasesResolvedTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "violation_cases_resolved_total",
			Help: "Admin resolutions recorded",
		}, []string{"kind"}),
		SettlementsTotal: factory.NewCounter(prometheus.CounterOpts{
			Name: "violation_settlements_total",
			Help: "Deposit settlements recorded",
		}),
		SettlementRefundTotal: factory.NewCounter(prometheus.CounterOpts{
			Name: "violation_settlement_refund_total",
			Help: "Sum of refund amounts settled",
		}),
		OrdersAdvancedTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "order_state_advanced_total",
			Help: "Orders auto-advanced to in-use by the time-driver",
		}, []string{"rule"}),
		SweepDuration: factory.NewHistogram(prometheus.HistogramOpts{
			Name:    "order_state_sweep_duration_seconds",
			Help:    "Duration of one time-driver sweep",
			Buckets: prometheus.DefBuckets,
		}),
		EvidenceUploadErrorsTotal: factory.NewCounter(prometheus.CounterOpts{
			Name: "evidence_upload_errors_total",
			Help: "Evidence store upload failures",
		}),
		NotificationErrorsTotal: factory.NewCounter(prometheus.CounterOpts{
			Name: "notification_errors_total",
			Help: "Notification gateway delivery failures (swallowed)",
		}),
	}
}
