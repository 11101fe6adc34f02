package testing

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/crewledger/crew-common/capability"
	"github.com/crewledger/crew-common/workflow"
)

func TestFixturesValidate(t *testing.T) {
	t.Parallel()

	require.NoError(t, Fixtures.Linear().Validate())
	require.NoError(t, Fixtures.Rework().Validate())
}

func TestRunScenarios(t *testing.T) {
	t.Parallel()

	m := NewMachine(t, Fixtures.Rework())

	RunScenarios(t, m, []Scenario{
		{
			Name:        "submit with summary",
			From:        "open",
			To:          "review",
			Action:      "submit",
			Caps:        capability.New("fixture.submit.own"),
			Metadata:    map[string]any{"summary": "weekly report"},
			WantAllowed: true,
			WantValid:   true,
		},
		{
			Name:        "submit without summary",
			From:        "open",
			To:          "review",
			Action:      "submit",
			Caps:        capability.New("fixture.submit.own"),
			WantAllowed: true,
			WantValid:   false,
			WantErrors:  []string{"Summary is required"},
		},
		{
			Name:        "accept needs the accept grant",
			From:        "review",
			To:          "done",
			Action:      "accept",
			Caps:        capability.New("fixture.submit.own"),
			WantAllowed: false,
			WantValid:   true,
		},
		{
			Name:        "unknown edge",
			From:        "open",
			To:          "done",
			Action:      "accept",
			Caps:        capability.New("fixture.accept.global"),
			WantAllowed: false,
			WantValid:   false,
			WantErrors:  []string{"Invalid transition"},
		},
	})
}

func TestWalkPath(t *testing.T) {
	t.Parallel()

	m := NewMachine(t, Fixtures.Rework())
	caps := capability.New("fixture.submit.own", "fixture.accept.global")

	WalkPath(t, m, caps,
		PathStep{
			From: "open", To: "review", Action: "submit",
			Metadata: map[string]any{"summary": "v1"},
		},
		PathStep{From: "review", To: "open", Action: "return"},
		PathStep{
			From: "open", To: "review", Action: "submit",
			Metadata: map[string]any{"summary": "v2"},
		},
		PathStep{From: "review", To: "done", Action: "accept"},
	)
}

func TestAssertTerminal(t *testing.T) {
	t.Parallel()

	m := NewMachine(t, Fixtures.Linear())

	AssertTerminal(t, m, "end")
}

func TestLinearFixtureShape(t *testing.T) {
	t.Parallel()

	def := Fixtures.Linear()

	initial, ok := def.Initial()
	require.True(t, ok)
	assert.Equal(t, "start", initial.Name)
	assert.Len(t, def.Transitions, 2)
	assert.Equal(t, workflow.EntityType("fixture_linear"), def.EntityType)
}
