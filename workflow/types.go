// Package workflow implements the declarative finite-state-machine engine
// that governs how business entities (timesheets, invoices, payments,
// payslips, remittances) move between lifecycle states.
//
// A Definition is a static table of states and transitions authored once at
// process start. A Machine answers authorization and lifecycle questions
// against one immutable definition and holds no other state, so every
// operation is safe to call concurrently without locks. The engine never
// persists anything: the caller owns the entity's current-state field and is
// responsible for writing it back (with an optimistic-concurrency check) after
// a successful validation.
package workflow

import (
	"context"

	"github.com/crewledger/crew-common/capability"
)

// EntityType identifies which business entity a definition governs.
type EntityType string

// The entity types with authored workflow definitions.
const (
	EntityTimesheet  EntityType = "timesheet"
	EntityInvoice    EntityType = "invoice"
	EntityPayment    EntityType = "payment"
	EntityPayslip    EntityType = "payslip"
	EntityRemittance EntityType = "remittance"
)

// Action names a transition edge. The vocabulary is closed and shared across
// all entity types; each definition wires only the subset it needs.
type Action string

// The full action vocabulary.
const (
	ActionSubmit              Action = "submit"
	ActionReview              Action = "review"
	ActionApprove             Action = "approve"
	ActionReject              Action = "reject"
	ActionRequestChanges      Action = "request_changes"
	ActionSend                Action = "send"
	ActionConfirmMargin       Action = "confirm_margin"
	ActionMarkPaidByAgency    Action = "mark_paid_by_agency"
	ActionMarkPaymentReceived Action = "mark_payment_received"
	ActionMarkPaid            Action = "mark_paid"
	ActionMarkReceived        Action = "mark_received"
	ActionMarkPartialReceived Action = "mark_partially_received"
	ActionConfirm             Action = "confirm"
	ActionValidate            Action = "validate"
	ActionGenerate            Action = "generate"
	ActionCancel              Action = "cancel"
)

// State is a named point in an entity's lifecycle.
//
// AllowedActions is informational (used by UIs to pre-render action menus);
// actual legality is always determined by the transition table. Metadata is
// an opaque bag, e.g. the auto-transition hint carried by the remittance
// "sent" state.
type State struct {
	Name           string
	Label          string
	Description    string
	Initial        bool
	Final          bool
	AllowedActions []Action
	Metadata       map[string]any
}

// ConditionKind discriminates the guard types a transition may carry.
type ConditionKind string

// Condition kinds.
const (
	// ConditionFieldNotEmpty requires a named metadata field to be present
	// and truthy on the transition context.
	ConditionFieldNotEmpty ConditionKind = "field_not_empty"
	// ConditionFieldEquals requires a named metadata field to equal a literal.
	ConditionFieldEquals ConditionKind = "field_equals"
	// ConditionCustom delegates to an injected predicate over the full
	// context, for rules that cannot be expressed declaratively.
	ConditionCustom ConditionKind = "custom"
)

// CheckFunc is an injected predicate for custom conditions. It may perform
// blocking work (e.g. a cross-entity lookup); the engine awaits it and treats
// an error as a condition failure, never as a fault.
type CheckFunc func(ctx context.Context, tc *Context) (bool, error)

// Condition is a guard evaluated against a transition context before a
// transition is allowed. Message is the fixed human-readable error emitted
// on failure.
type Condition struct {
	Kind    ConditionKind
	Field   string
	Value   any
	Message string
	Check   CheckFunc
}

// SideEffectKind discriminates declared transition consequences.
type SideEffectKind string

// Side effect kinds.
const (
	EffectAuditLog      SideEffectKind = "audit_log"
	EffectNotification  SideEffectKind = "notification"
	EffectUpdateRelated SideEffectKind = "update_related"
	EffectCustom        SideEffectKind = "custom"
)

// ExecuteFunc is an optional callback an integration may attach to a side
// effect. The engine never calls it; the application layer invokes it after
// the transition has been persisted.
type ExecuteFunc func(ctx context.Context, tc *Context) error

// SideEffect is a declared (not engine-executed) consequence of a successful
// transition, e.g. an audit-log entry or a notification dispatch. Config
// carries kind-specific settings such as the recipient role or template tag.
type SideEffect struct {
	Kind    SideEffectKind
	Config  map[string]any
	Execute ExecuteFunc
}

// Transition is a directed edge from one state to another, labeled with an
// action. Requires holds the capability set gating the edge with ANY-of
// semantics: a caller holding any one of the listed capabilities may fire it.
type Transition struct {
	From        string
	To          string
	Action      Action
	Requires    capability.Set
	Conditions  []Condition
	SideEffects []SideEffect
	Metadata    map[string]any
}

// MetaReworkLoop marks a transition as an intentional rework loop (e.g.
// changes_requested back to submitted). The definition validator rejects any
// other cycle in a definition's graph.
const MetaReworkLoop = "reworkLoop"

// MetaAutoTransition is the state-metadata key carrying an auto-transition
// hint for an external scheduler. The engine only models explicit edges and
// never acts on the hint itself.
const MetaAutoTransition = "autoTransition"
