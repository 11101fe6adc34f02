package testing

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/crewledger/crew-common/capability"
	"github.com/crewledger/crew-common/workflow"
)

// NewMachine builds a machine from a definition, failing the test if the
// definition does not validate.
func NewMachine(t *testing.T, def *workflow.Definition) *workflow.Machine {
	t.Helper()

	m, err := workflow.NewMachine(def)
	require.NoError(t, err, "definition for %q must validate", def.EntityType)

	return m
}

// Fixtures provides small canned definitions for tests that exercise engine
// behavior without dragging in a full business table.
var Fixtures = struct {
	Linear func() *workflow.Definition
	Rework func() *workflow.Definition
}{
	Linear: func() *workflow.Definition {
		return &workflow.Definition{
			EntityType: "fixture_linear",
			States: []workflow.State{
				{Name: "start", Initial: true},
				{Name: "middle"},
				{Name: "end", Final: true},
			},
			Transitions: []workflow.Transition{
				{
					From:     "start",
					To:       "middle",
					Action:   "advance",
					Requires: capability.New("fixture.advance.global"),
				},
				{
					From:     "middle",
					To:       "end",
					Action:   "finish",
					Requires: capability.New("fixture.advance.global"),
				},
			},
		}
	},
	Rework: func() *workflow.Definition {
		return &workflow.Definition{
			EntityType: "fixture_rework",
			States: []workflow.State{
				{Name: "open", Initial: true},
				{Name: "review"},
				{Name: "done", Final: true},
			},
			Transitions: []workflow.Transition{
				{
					From:     "open",
					To:       "review",
					Action:   "submit",
					Requires: capability.New("fixture.submit.own"),
					Conditions: []workflow.Condition{
						{
							Kind:    workflow.ConditionFieldNotEmpty,
							Field:   "summary",
							Message: "Summary is required",
						},
					},
				},
				{
					From:     "review",
					To:       "done",
					Action:   "accept",
					Requires: capability.New("fixture.accept.global"),
				},
				{
					From:     "review",
					To:       "open",
					Action:   "return",
					Requires: capability.New("fixture.accept.global"),
					Metadata: map[string]any{workflow.MetaReworkLoop: true},
				},
			},
		}
	},
}
