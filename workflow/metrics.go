package workflow

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metric outcome labels.
const (
	outcomeAllowed = "allowed"
	outcomeDenied  = "denied"
)

// Metric definitions with appropriate labels. State and action label values
// come from the closed, authored vocabulary, so cardinality stays bounded.
var (
	// transitionChecksTotal tracks CanTransition outcomes.
	transitionChecksTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "workflow_transition_checks_total",
		Help: "Total number of transition capability checks by entity type, action, edge, and outcome",
	}, []string{"entity_type", "action", "from", "to", "outcome"})

	// validationsTotal tracks ValidateTransition outcomes.
	validationsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "workflow_validations_total",
		Help: "Total number of transition validations by entity type, action, and outcome",
	}, []string{"entity_type", "action", "outcome"})

	// conditionFailuresTotal tracks individual failing conditions.
	conditionFailuresTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "workflow_condition_failures_total",
		Help: "Total number of failed transition conditions by entity type, action, and condition kind",
	}, []string{"entity_type", "action", "condition_kind"})

	// validationDuration tracks validation latency; only custom conditions
	// doing I/O push this beyond microseconds.
	validationDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "workflow_validation_duration_seconds",
		Help:    "Duration of transition validation by entity type and action",
		Buckets: []float64{0.0001, 0.001, 0.01, 0.05, 0.1, 0.5, 1, 2, 5},
	}, []string{"entity_type", "action"})
)

// outcomeLabel maps a boolean outcome to its metric label.
func outcomeLabel(allowed bool) string {
	if allowed {
		return outcomeAllowed
	}

	return outcomeDenied
}
