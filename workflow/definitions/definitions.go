// Package definitions holds the authored workflow tables for the five
// governed entity types: timesheet, invoice, payment, payslip, remittance.
//
// Each table is a static graph of states and transitions plus the capability
// and condition requirements for each edge. The tables share structure but
// not content; the engine in the parent package is identical across all of
// them. Side effects declared here are advisory: the application layer
// executes the corresponding audit write or notification dispatch after a
// successful, persisted transition.
package definitions

import (
	"github.com/crewledger/crew-common/workflow"
)

// All returns the full set of authored definitions, one per entity type.
// Definitions are built fresh per call; they are pure data and cheap to
// construct.
func All() []*workflow.Definition {
	return []*workflow.Definition{
		Timesheet(),
		Invoice(),
		Payment(),
		Payslip(),
		Remittance(),
	}
}

// NewRegistry builds a registry over every authored definition, panicking if
// any table fails validation. Table validity is covered by tests, so a panic
// here means a build shipped with a broken table.
func NewRegistry() *workflow.Registry {
	return workflow.MustNewRegistry(All()...)
}

// notEmpty builds a field_not_empty condition. The check is truthiness, not
// numeric validity: a present amount of 0 still fails it.
func notEmpty(field, message string) workflow.Condition {
	return workflow.Condition{
		Kind:    workflow.ConditionFieldNotEmpty,
		Field:   field,
		Message: message,
	}
}

// auditLog declares an audit-trail side effect for the given event tag.
func auditLog(event string) workflow.SideEffect {
	return workflow.SideEffect{
		Kind:   workflow.EffectAuditLog,
		Config: map[string]any{"event": event},
	}
}

// notify declares a notification side effect for a recipient role and
// message template.
func notify(role, template string) workflow.SideEffect {
	return workflow.SideEffect{
		Kind: workflow.EffectNotification,
		Config: map[string]any{
			"recipientRole": role,
			"template":      template,
		},
	}
}

// reworkLoop marks a transition as an intentional rework edge so the
// definition validator tolerates the cycle it closes.
func reworkLoop() map[string]any {
	return map[string]any{workflow.MetaReworkLoop: true}
}
