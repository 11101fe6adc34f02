package workflow

import (
	"context"
	"time"

	"go.opentelemetry.io/otel/codes"

	"github.com/crewledger/crew-common/capability"
)

// Result is the outcome of validating a transition attempt. Every failing
// condition's message is collected, so a UI can show all unmet requirements
// at once instead of forcing a fix-one-resubmit loop.
type Result struct {
	Valid  bool
	Errors []string
}

// transitionKey identifies a unique transition edge within a definition.
type transitionKey struct {
	from   string
	to     string
	action Action
}

// Machine answers authorization and lifecycle questions against one immutable
// definition. It is stateless beyond the definition reference, so a single
// instance may be shared by arbitrarily many concurrent callers.
//
// Machine does not own the entity's persisted state and cannot prevent two
// callers racing conflicting transitions from the same observed state; the
// persistence layer must close that with an optimistic-concurrency write
// keyed on the state value read at validation time.
type Machine struct {
	def    *Definition
	byKey  map[transitionKey]Transition
	states map[string]State
	logger Logger
}

// NewMachine builds an evaluator for a definition, validating it first.
func NewMachine(def *Definition) (*Machine, error) {
	if def == nil {
		return nil, ErrNilDefinition
	}

	if err := def.Validate(); err != nil {
		return nil, err
	}

	m := &Machine{
		def:    def,
		byKey:  make(map[transitionKey]Transition, len(def.Transitions)),
		states: make(map[string]State, len(def.States)),
	}

	for _, t := range def.Transitions {
		m.byKey[transitionKey{from: t.From, to: t.To, action: t.Action}] = t
	}

	for _, s := range def.States {
		m.states[s.Name] = s
	}

	return m, nil
}

// SetLogger sets the logger used for evaluation events. A nil logger
// disables logging.
func (m *Machine) SetLogger(logger Logger) {
	m.logger = logger
}

// EntityType returns the entity type this machine governs.
func (m *Machine) EntityType() EntityType {
	return m.def.EntityType
}

// Definition returns the underlying immutable definition.
func (m *Machine) Definition() *Definition {
	return m.def
}

// State returns the named state. A missing name is a caller error (querying
// a state this machine never declared), not a domain error.
func (m *Machine) State(name string) (State, bool) {
	s, ok := m.states[name]

	return s, ok
}

// InitialState returns the definition's designated initial state.
func (m *Machine) InitialState() State {
	s, _ := m.def.Initial()

	return s
}

// CanTransition reports whether the (from, to, action) edge exists and the
// caller's capability set intersects its required set (ANY-of semantics).
// It performs no data-condition checks; this is the cheap query used to
// decide whether to show an action at all.
func (m *Machine) CanTransition(from, to string, action Action, caps capability.Set) bool {
	t, ok := m.byKey[transitionKey{from: from, to: to, action: action}]

	allowed := ok && caps.Intersects(t.Requires)
	m.observeCheck(from, to, action, allowed)

	if m.logger != nil {
		m.logger.TransitionChecked(context.Background(), m.def.EntityType, from, to, action, allowed)
	}

	return allowed
}

// AllowedTransitions returns every transition out of the given state whose
// required capabilities intersect the caller's, in authored (definition)
// order. Conditions are ignored here: the caller does not yet know the
// situational data conditions would need.
func (m *Machine) AllowedTransitions(from string, caps capability.Set) []Transition {
	var out []Transition

	for _, t := range m.def.Transitions {
		if t.From == from && caps.Intersects(t.Requires) {
			out = append(out, t)
		}
	}

	return out
}

// ValidateTransition resolves the context's (from, to, action) triple and
// evaluates every attached condition, independent of each other. The capability
// check is deliberately not repeated here: CanTransition answers "is this
// action visible", this answers "is this specific attempt valid", and the two
// are layered so they can be queried independently.
//
// The ctx parameter bounds custom condition checks that perform blocking
// work; the engine itself has no timeout concept.
func (m *Machine) ValidateTransition(ctx context.Context, tc *Context) Result {
	ctx, span := startValidationSpan(ctx, m.def.EntityType, tc)
	defer span.End()

	start := time.Now()

	if tc == nil {
		span.SetStatus(codes.Error, msgInvalidTransition)
		m.observeValidation(Action(""), false, time.Since(start))

		return Result{Valid: false, Errors: []string{msgInvalidTransition}}
	}

	t, ok := m.byKey[transitionKey{from: tc.From, to: tc.To, action: tc.Action}]
	if !ok {
		span.SetStatus(codes.Error, msgInvalidTransition)
		m.observeValidation(tc.Action, false, time.Since(start))
		m.logValidation(ctx, tc, Result{Valid: false, Errors: []string{msgInvalidTransition}})

		return Result{Valid: false, Errors: []string{msgInvalidTransition}}
	}

	var errs []string

	// Every condition is evaluated; no short-circuit.
	for _, cond := range t.Conditions {
		if !cond.evaluate(ctx, tc) {
			errs = append(errs, cond.Message)
			conditionFailuresTotal.WithLabelValues(
				string(m.def.EntityType),
				string(tc.Action),
				string(cond.Kind),
			).Inc()
		}
	}

	result := Result{Valid: len(errs) == 0, Errors: errs}

	if result.Valid {
		span.SetStatus(codes.Ok, "valid")
	} else {
		span.SetStatus(codes.Error, "conditions failed")
	}

	m.observeValidation(tc.Action, result.Valid, time.Since(start))
	m.logValidation(ctx, tc, result)

	return result
}

// observeCheck records a CanTransition outcome.
func (m *Machine) observeCheck(from, to string, action Action, allowed bool) {
	transitionChecksTotal.WithLabelValues(
		string(m.def.EntityType),
		string(action),
		from,
		to,
		outcomeLabel(allowed),
	).Inc()
}

// observeValidation records a ValidateTransition outcome and duration.
func (m *Machine) observeValidation(action Action, valid bool, elapsed time.Duration) {
	validationsTotal.WithLabelValues(
		string(m.def.EntityType),
		string(action),
		outcomeLabel(valid),
	).Inc()

	validationDuration.WithLabelValues(
		string(m.def.EntityType),
		string(action),
	).Observe(elapsed.Seconds())
}

// logValidation emits the validation outcome if a logger is configured.
func (m *Machine) logValidation(ctx context.Context, tc *Context, result Result) {
	if m.logger == nil {
		return
	}

	m.logger.ValidationEvaluated(ctx, tc, result)
}
