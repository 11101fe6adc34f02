package workflow

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/crewledger/crew-common/capability"
)

var errLookupFailed = errors.New("lookup failed")

// expenseFixture is a small machine exercising every condition kind:
//
//	draft -> submitted (submit, field_not_empty total)
//	submitted -> approved (approve)
//	submitted -> rejected (reject, field_not_empty reason, field_equals tier)
//	submitted -> flagged (review, custom check)
func expenseFixture(t *testing.T, check CheckFunc) *Machine {
	t.Helper()

	if check == nil {
		check = func(_ context.Context, _ *Context) (bool, error) {
			return true, nil
		}
	}

	m, err := NewMachine(&Definition{
		EntityType: "expense",
		States: []State{
			{Name: "draft", Initial: true},
			{Name: "submitted"},
			{Name: "approved", Final: true},
			{Name: "rejected", Final: true},
			{Name: "flagged"},
		},
		Transitions: []Transition{
			{
				From:     "draft",
				To:       "submitted",
				Action:   ActionSubmit,
				Requires: capability.New("expense.submit.own"),
				Conditions: []Condition{{
					Kind:    ConditionFieldNotEmpty,
					Field:   "total",
					Message: "Total is required",
				}},
			},
			{
				From:     "submitted",
				To:       "approved",
				Action:   ActionApprove,
				Requires: capability.New("expense.review.global", "expense.approve.global"),
			},
			{
				From:     "submitted",
				To:       "rejected",
				Action:   ActionReject,
				Requires: capability.New("expense.review.global", "expense.approve.global"),
				Conditions: []Condition{
					{
						Kind:    ConditionFieldNotEmpty,
						Field:   "reason",
						Message: "Rejection reason is required",
					},
					{
						Kind:    ConditionFieldEquals,
						Field:   "tier",
						Value:   "standard",
						Message: "Only standard tier expenses may be rejected here",
					},
				},
			},
			{
				From:     "submitted",
				To:       "flagged",
				Action:   ActionReview,
				Requires: capability.New("expense.review.global"),
				Conditions: []Condition{{
					Kind:    ConditionCustom,
					Message: "Expense is outside the audit window",
					Check:   check,
				}},
			},
		},
	})
	require.NoError(t, err)

	return m
}

func TestNewMachineNilDefinition(t *testing.T) {
	t.Parallel()

	_, err := NewMachine(nil)
	require.ErrorIs(t, err, ErrNilDefinition)
}

func TestNewMachineInvalidDefinition(t *testing.T) {
	t.Parallel()

	_, err := NewMachine(&Definition{EntityType: "broken"})
	require.ErrorIs(t, err, ErrStateRequired)
}

func TestCanTransition(t *testing.T) {
	t.Parallel()

	m := expenseFixture(t, nil)

	approver := capability.New("expense.approve.global")
	reviewer := capability.New("expense.review.global")
	submitter := capability.New("expense.submit.own")

	// ANY-of semantics: either listed capability satisfies the edge.
	assert.True(t, m.CanTransition("submitted", "approved", ActionApprove, approver))
	assert.True(t, m.CanTransition("submitted", "approved", ActionApprove, reviewer))
	assert.False(t, m.CanTransition("submitted", "approved", ActionApprove, submitter))

	// Empty capability set never passes a non-trivial transition.
	assert.False(t, m.CanTransition("submitted", "approved", ActionApprove, capability.New()))

	// Absent (from, to, action) triples are false regardless of capabilities.
	everything := capability.New(
		"expense.submit.own", "expense.review.global", "expense.approve.global",
	)
	assert.False(t, m.CanTransition("draft", "approved", ActionApprove, everything))
	assert.False(t, m.CanTransition("submitted", "approved", ActionReject, everything))
	assert.False(t, m.CanTransition("nowhere", "approved", ActionApprove, everything))
}

func TestAllowedTransitions(t *testing.T) {
	t.Parallel()

	m := expenseFixture(t, nil)

	// A reviewer sees approve, reject and review from submitted, in
	// definition order, regardless of any condition outcome.
	got := m.AllowedTransitions("submitted", capability.New("expense.review.global"))
	require.Len(t, got, 3)
	assert.Equal(t, "approved", got[0].To)
	assert.Equal(t, "rejected", got[1].To)
	assert.Equal(t, "flagged", got[2].To)

	// A submitter holds nothing that applies from submitted.
	assert.Empty(t, m.AllowedTransitions("submitted", capability.New("expense.submit.own")))

	// Unknown or terminal states have no candidates.
	assert.Empty(t, m.AllowedTransitions("approved", capability.New("expense.approve.global")))
	assert.Empty(t, m.AllowedTransitions("ghost", capability.New("expense.approve.global")))
}

func TestValidateTransitionUnknownEdge(t *testing.T) {
	t.Parallel()

	m := expenseFixture(t, nil)

	tc := NewContext("expense", "exp-1", ActionApprove, "draft", "approved")

	result := m.ValidateTransition(context.Background(), tc)
	assert.False(t, result.Valid)
	assert.Equal(t, []string{"Invalid transition"}, result.Errors)
}

func TestValidateTransitionNilContext(t *testing.T) {
	t.Parallel()

	m := expenseFixture(t, nil)

	result := m.ValidateTransition(context.Background(), nil)
	assert.False(t, result.Valid)
	assert.Equal(t, []string{"Invalid transition"}, result.Errors)
}

func TestValidateTransitionFieldNotEmpty(t *testing.T) {
	t.Parallel()

	m := expenseFixture(t, nil)

	tests := []struct {
		name  string
		total any
		set   bool
		valid bool
	}{
		{name: "missing field", set: false, valid: false},
		{name: "nil value", total: nil, set: true, valid: false},
		{name: "empty string", total: "", set: true, valid: false},
		// Truthiness, not numeric validity: zero counts as empty.
		{name: "zero int", total: 0, set: true, valid: false},
		{name: "zero float", total: 0.0, set: true, valid: false},
		{name: "false bool", total: false, set: true, valid: false},
		{name: "non-zero int", total: 40, set: true, valid: true},
		{name: "non-empty string", total: "40", set: true, valid: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			tc := NewContext("expense", "exp-1", ActionSubmit, "draft", "submitted")
			if tt.set {
				tc.Metadata["total"] = tt.total
			}

			result := m.ValidateTransition(context.Background(), tc)
			assert.Equal(t, tt.valid, result.Valid)

			if !tt.valid {
				assert.Equal(t, []string{"Total is required"}, result.Errors)
			}
		})
	}
}

func TestValidateTransitionCollectsAllFailures(t *testing.T) {
	t.Parallel()

	m := expenseFixture(t, nil)

	tc := NewContext("expense", "exp-1", ActionReject, "submitted", "rejected")
	tc.Metadata["tier"] = "premium"

	result := m.ValidateTransition(context.Background(), tc)
	assert.False(t, result.Valid)
	// No short-circuit: both failing conditions are reported together.
	assert.Equal(t, []string{
		"Rejection reason is required",
		"Only standard tier expenses may be rejected here",
	}, result.Errors)
}

func TestValidateTransitionFieldEquals(t *testing.T) {
	t.Parallel()

	m := expenseFixture(t, nil)

	tc := NewContext("expense", "exp-1", ActionReject, "submitted", "rejected")
	tc.WithMetadata(map[string]any{"reason": "duplicate claim", "tier": "standard"})

	result := m.ValidateTransition(context.Background(), tc)
	assert.True(t, result.Valid)
	assert.Empty(t, result.Errors)
}

func TestValidateTransitionCustomCheck(t *testing.T) {
	t.Parallel()

	t.Run("passing check", func(t *testing.T) {
		t.Parallel()

		m := expenseFixture(t, func(_ context.Context, _ *Context) (bool, error) {
			return true, nil
		})

		tc := NewContext("expense", "exp-1", ActionReview, "submitted", "flagged")

		result := m.ValidateTransition(context.Background(), tc)
		assert.True(t, result.Valid)
	})

	t.Run("failing check", func(t *testing.T) {
		t.Parallel()

		m := expenseFixture(t, func(_ context.Context, _ *Context) (bool, error) {
			return false, nil
		})

		tc := NewContext("expense", "exp-1", ActionReview, "submitted", "flagged")

		result := m.ValidateTransition(context.Background(), tc)
		assert.False(t, result.Valid)
		assert.Equal(t, []string{"Expense is outside the audit window"}, result.Errors)
	})

	t.Run("erroring check becomes a condition failure", func(t *testing.T) {
		t.Parallel()

		m := expenseFixture(t, func(_ context.Context, _ *Context) (bool, error) {
			return false, errLookupFailed
		})

		tc := NewContext("expense", "exp-1", ActionReview, "submitted", "flagged")

		result := m.ValidateTransition(context.Background(), tc)
		assert.False(t, result.Valid)
		assert.Equal(t, []string{"Expense is outside the audit window"}, result.Errors)
	})

	t.Run("check receives the full context", func(t *testing.T) {
		t.Parallel()

		var seen *Context

		m := expenseFixture(t, func(_ context.Context, tc *Context) (bool, error) {
			seen = tc

			return true, nil
		})

		tc := NewContext("expense", "exp-42", ActionReview, "submitted", "flagged").
			WithActor("usr-1", "auditor", "ten-1")

		m.ValidateTransition(context.Background(), tc)
		require.NotNil(t, seen)
		assert.Equal(t, "exp-42", seen.EntityID)
		assert.Equal(t, "auditor", seen.ActorRole)
	})
}

func TestValidateTransitionIsDeterministic(t *testing.T) {
	t.Parallel()

	m := expenseFixture(t, nil)

	tc := NewContext("expense", "exp-1", ActionSubmit, "draft", "submitted")

	first := m.ValidateTransition(context.Background(), tc)
	second := m.ValidateTransition(context.Background(), tc)

	// Referentially transparent: same context, same answer, and a prior
	// call never changes a later one.
	assert.Equal(t, first, second)
	assert.False(t, second.Valid)
}

func TestMachineStateLookup(t *testing.T) {
	t.Parallel()

	m := expenseFixture(t, nil)

	s, ok := m.State("submitted")
	require.True(t, ok)
	assert.Equal(t, "submitted", s.Name)

	_, ok = m.State("ghost")
	assert.False(t, ok)

	assert.Equal(t, "draft", m.InitialState().Name)
	assert.Equal(t, EntityType("expense"), m.EntityType())
}
