package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	envelopesTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "contract_envelopes_total",
			Help: "Envelopes created on the signature provider, by action",
		},
		[]string{"action"},
	)

	tokenRenewals = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "docusign_token_renewals_total",
			Help: "Access tokens requested from the DocuSign OAuth endpoint",
		},
	)

	webhookEvents = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "docusign_webhook_events_total",
			Help: "DocuSign Connect events received",
		},
		[]string{"event", "result"},
	)

	eligibilityChecks = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "eligibility_checks_total",
			Help: "Eligibility recomputations, by outcome",
		},
		[]string{"eligible"},
	)

	integrationErrors = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "integration_errors_total",
			Help: "Total number of integration errors",
		},
		[]string{"service", "operation"},
	)
)

const (
	EnvelopeCreated     = "created"
	EnvelopeRegenerated = "regenerated"
)

func RecordEnvelope(action string) {
	envelopesTotal.WithLabelValues(action).Inc()
}

func RecordTokenRenewal() {
	tokenRenewals.Inc()
}

func RecordWebhookEvent(event, result string) {
	webhookEvents.WithLabelValues(event, result).Inc()
}

func RecordEligibility(eligible bool) {
	label := "false"
	if eligible {
		label = "true"
	}
	eligibilityChecks.WithLabelValues(label).Inc()
}

func RecordIntegrationError(service, operation string) {
	integrationErrors.WithLabelValues(service, operation).Inc()
}
