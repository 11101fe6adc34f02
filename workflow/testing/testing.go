// Package testing provides helpers for testing workflow tables: scenario
// runners that assert a single transition attempt, and path walkers that
// assert a whole lifecycle route edge by edge.
//
// The helpers are for consumers authoring their own definitions; the engine's
// own tests do not depend on them.
package testing

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/crewledger/crew-common/capability"
	"github.com/crewledger/crew-common/workflow"
)

// Scenario describes one transition attempt and its expected outcome.
type Scenario struct {
	Name string

	From   string
	To     string
	Action workflow.Action

	// Caps is the caller's grant for the CanTransition check.
	Caps capability.Set

	// Metadata is the situational input for condition evaluation.
	Metadata map[string]any

	// WantAllowed is the expected CanTransition answer for Caps.
	WantAllowed bool

	// WantValid is the expected ValidateTransition verdict; WantErrors, when
	// set, pins the exact failure messages in condition order.
	WantValid  bool
	WantErrors []string
}

// RunScenario runs one scenario as a subtest against the given machine.
func RunScenario(t *testing.T, m *workflow.Machine, s Scenario) {
	t.Helper()

	t.Run(s.Name, func(t *testing.T) {
		assert.Equal(t, s.WantAllowed,
			m.CanTransition(s.From, s.To, s.Action, s.Caps),
			"CanTransition(%s, %s, %s)", s.From, s.To, s.Action)

		tc := workflow.NewContext(m.EntityType(), "test-entity", s.Action, s.From, s.To).
			WithMetadata(s.Metadata)

		res := m.ValidateTransition(context.Background(), tc)
		assert.Equal(t, s.WantValid, res.Valid, "validation verdict")

		if s.WantErrors != nil {
			assert.Equal(t, s.WantErrors, res.Errors)
		}
	})
}

// RunScenarios runs each scenario as its own subtest.
func RunScenarios(t *testing.T, m *workflow.Machine, scenarios []Scenario) {
	t.Helper()

	for _, s := range scenarios {
		RunScenario(t, m, s)
	}
}

// PathStep is one edge of a lifecycle route.
type PathStep struct {
	From   string
	To     string
	Action workflow.Action

	// Metadata carries the fields this edge's conditions need.
	Metadata map[string]any
}

// WalkPath asserts that a route through the table is contiguous and that the
// given grant may take every edge with every condition satisfied. It fails
// fast on the first broken step so the report points at the exact edge.
func WalkPath(t *testing.T, m *workflow.Machine, caps capability.Set, steps ...PathStep) {
	t.Helper()

	require.NotEmpty(t, steps, "path must have at least one step")

	for i, step := range steps {
		if i > 0 {
			require.Equalf(t, steps[i-1].To, step.From,
				"step %d does not continue from step %d", i, i-1)
		}

		require.Truef(t, m.CanTransition(step.From, step.To, step.Action, caps),
			"step %d: %s -> %s (%s) not allowed", i, step.From, step.To, step.Action)

		tc := workflow.NewContext(m.EntityType(), "test-entity",
			step.Action, step.From, step.To).
			WithMetadata(step.Metadata)

		res := m.ValidateTransition(context.Background(), tc)
		require.Truef(t, res.Valid,
			"step %d: %s -> %s (%s) failed validation: %v",
			i, step.From, step.To, step.Action, res.Errors)
	}
}

// AssertTerminal asserts that a state is final and offers no outgoing edges
// to any grant, including the full union of capabilities the table mentions.
func AssertTerminal(t *testing.T, m *workflow.Machine, state string) {
	t.Helper()

	s, ok := m.State(state)
	require.Truef(t, ok, "state %q not defined", state)
	assert.Truef(t, s.Final, "state %q is not final", state)

	everything := capability.New()
	for _, tr := range m.Definition().Transitions {
		everything = everything.Union(tr.Requires)
	}

	assert.Empty(t, m.AllowedTransitions(state, everything))
}
