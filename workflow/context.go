package workflow

import (
	"time"

	"github.com/google/uuid"
)

// Context is the complete input to a transition attempt: the entity snapshot,
// the acting caller, the requested edge, and whatever situational fields the
// relevant conditions need to inspect (e.g. rejectionReason, amountReceived).
//
// A Context is a one-shot input bundle. The engine never mutates it, so a
// caller may reuse one across retries after an optimistic-concurrency
// conflict and will get the same validation answer for the same input.
type Context struct {
	// AttemptID correlates log lines, spans and audit records produced for
	// one validation attempt. Assigned by NewContext.
	AttemptID uuid.UUID

	EntityType EntityType
	EntityID   string
	// Entity is a read-only snapshot of the entity record's data.
	Entity map[string]any

	ActorID   string
	ActorRole string
	TenantID  string

	Action Action
	From   string
	To     string

	// Reason is the optional human-supplied justification for the action.
	Reason string

	// Metadata carries the situational fields conditions inspect.
	Metadata map[string]any

	CreatedAt time.Time
}

// NewContext creates a transition context for one validation attempt.
func NewContext(entityType EntityType, entityID string, action Action, from, to string) *Context {
	return &Context{
		AttemptID:  uuid.New(),
		EntityType: entityType,
		EntityID:   entityID,
		Entity:     map[string]any{},
		Action:     action,
		From:       from,
		To:         to,
		Metadata:   map[string]any{},
		CreatedAt:  time.Now(),
	}
}

// WithActor sets the acting caller on the context and returns it for chaining.
func (tc *Context) WithActor(actorID, actorRole, tenantID string) *Context {
	tc.ActorID = actorID
	tc.ActorRole = actorRole
	tc.TenantID = tenantID

	return tc
}

// WithReason sets the human-supplied reason and returns the context.
func (tc *Context) WithReason(reason string) *Context {
	tc.Reason = reason

	return tc
}

// WithMetadata merges situational fields into the context and returns it.
func (tc *Context) WithMetadata(meta map[string]any) *Context {
	if tc.Metadata == nil {
		tc.Metadata = make(map[string]any, len(meta))
	}

	for k, v := range meta {
		tc.Metadata[k] = v
	}

	return tc
}

// Get retrieves a situational metadata field.
func (tc *Context) Get(key string) (any, bool) {
	val, ok := tc.Metadata[key]

	return val, ok
}

// GetString retrieves a string metadata field.
func (tc *Context) GetString(key string) (string, bool) {
	val, ok := tc.Get(key)
	if !ok {
		return "", false
	}

	str, ok := val.(string)

	return str, ok
}

// GetBool retrieves a boolean metadata field.
func (tc *Context) GetBool(key string) (bool, bool) {
	val, ok := tc.Get(key)
	if !ok {
		return false, false
	}

	b, ok := val.(bool)

	return b, ok
}
