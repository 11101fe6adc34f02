package workflow

import (
	"errors"
	"fmt"
)

// Predefined error types.
var (
	// ErrUnknownEntityType indicates a registry lookup with a type tag no
	// definition was registered for. This is a programming error (a typo in
	// a type tag), not a runtime condition.
	ErrUnknownEntityType = errors.New("unknown entity type")

	// ErrNilDefinition indicates a machine was constructed without a definition.
	ErrNilDefinition = errors.New("definition is nil")
	// ErrDuplicateDefinition indicates two definitions share an entity type.
	ErrDuplicateDefinition = errors.New("duplicate definition for entity type")

	// Definition validation errors.

	// ErrEntityTypeRequired indicates a definition without an entity type tag.
	ErrEntityTypeRequired = errors.New("entity type is required")
	// ErrStateRequired indicates a definition with no states.
	ErrStateRequired = errors.New("at least one state is required")
	// ErrStateNameRequired indicates a state without a name.
	ErrStateNameRequired = errors.New("state name is required")
	// ErrDuplicateStateName indicates two states share a name.
	ErrDuplicateStateName = errors.New("duplicate state name")
	// ErrNoInitialState indicates no state is marked initial.
	ErrNoInitialState = errors.New("exactly one state must be initial, found none")
	// ErrMultipleInitialStates indicates more than one state is marked initial.
	ErrMultipleInitialStates = errors.New("exactly one state must be initial, found several")
	// ErrTransitionFromNotFound indicates a transition references a missing from state.
	ErrTransitionFromNotFound = errors.New("transition from state does not exist")
	// ErrTransitionToNotFound indicates a transition references a missing to state.
	ErrTransitionToNotFound = errors.New("transition to state does not exist")
	// ErrTransitionActionRequired indicates a transition without an action.
	ErrTransitionActionRequired = errors.New("transition action is required")
	// ErrFinalStateOutgoing indicates a transition originates from a final state.
	ErrFinalStateOutgoing = errors.New("final state must not have outgoing transitions")
	// ErrDuplicateTransition indicates a (from, to, action) triple appears twice.
	ErrDuplicateTransition = errors.New("duplicate (from, to, action) transition")
	// ErrUnflaggedCycle indicates a cycle not whitelisted as a rework loop.
	ErrUnflaggedCycle = errors.New("cycle is not flagged as an intentional rework loop")
	// ErrConditionMessageRequired indicates a condition without a failure message.
	ErrConditionMessageRequired = errors.New("condition message is required")
	// ErrConditionFieldRequired indicates a field condition without a field name.
	ErrConditionFieldRequired = errors.New("condition field is required")
	// ErrConditionCheckRequired indicates a custom condition without a predicate.
	ErrConditionCheckRequired = errors.New("custom condition requires a check function")
	// ErrUnknownConditionKind indicates an unrecognized condition kind.
	ErrUnknownConditionKind = errors.New("unknown condition kind")
)

// msgInvalidTransition is the single validation error returned for a
// (from, to, action) triple absent from the definition. A stale action button
// is a normal, expected outcome, reported to the caller rather than raised.
const msgInvalidTransition = "Invalid transition"

// DefinitionError wraps an error with the entity type whose definition it
// concerns.
type DefinitionError struct {
	EntityType EntityType
	Err        error
}

func (e *DefinitionError) Error() string {
	return fmt.Sprintf("definition %s: %v", e.EntityType, e.Err)
}

func (e *DefinitionError) Unwrap() error {
	return e.Err
}

// WrapDefinitionError wraps an error with definition context.
func WrapDefinitionError(entityType EntityType, err error) error {
	if err == nil {
		return nil
	}

	return &DefinitionError{
		EntityType: entityType,
		Err:        err,
	}
}
