package visualizer

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/crewledger/crew-common/capability"
	"github.com/crewledger/crew-common/workflow"
	"github.com/crewledger/crew-common/workflow/definitions"
)

func reviewFixture() *workflow.Definition {
	return &workflow.Definition{
		EntityType: "review_item",
		States: []workflow.State{
			{Name: "open", Label: "Open", Initial: true},
			{Name: "in_review", Label: "In Review"},
			{Name: "closed", Label: "Closed", Final: true},
		},
		Transitions: []workflow.Transition{
			{
				From:     "open",
				To:       "in_review",
				Action:   "submit",
				Requires: capability.New("review_item.submit.own"),
				Conditions: []workflow.Condition{
					{
						Kind:    workflow.ConditionFieldNotEmpty,
						Field:   "summary",
						Message: "Summary is required",
					},
				},
			},
			{
				From:     "in_review",
				To:       "closed",
				Action:   "close",
				Requires: capability.New("review_item.close.global"),
			},
		},
	}
}

func TestGenerateMermaid(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name        string
		def         *workflow.Definition
		wantErr     error
		wantContain []string
	}{
		{
			name: "simple review workflow",
			def:  reviewFixture(),
			wantContain: []string{
				"stateDiagram-TD",
				"[*] --> open",
				"open --> in_review: submit",
				"if summary set",
				"in_review --> closed: close",
				"closed --> [*]",
				"class closed finalState",
			},
		},
		{
			name:    "nil definition",
			def:     nil,
			wantErr: ErrDefinitionNil,
		},
		{
			name: "no initial state",
			def: &workflow.Definition{
				EntityType: "broken",
				States:     []workflow.State{{Name: "only"}},
			},
			wantErr: ErrNoInitialState,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			out, err := GenerateMermaid(tt.def)
			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)

				return
			}

			require.NoError(t, err)

			for _, want := range tt.wantContain {
				assert.Contains(t, out, want)
			}

			assert.True(t, strings.HasPrefix(out, "```mermaid\n"))
			assert.True(t, strings.HasSuffix(out, "```\n"))
		})
	}
}

func TestGenerateMermaidOptions(t *testing.T) {
	t.Parallel()

	def := reviewFixture()

	out, err := GenerateMermaidWithOptions(def, DefaultOptions().
		WithDirection("LR").
		WithShowConditions(false).
		WithShowCapabilities(true).
		WithHighlightPath([]string{"in_review"}))
	require.NoError(t, err)

	assert.Contains(t, out, "stateDiagram-LR")
	assert.Contains(t, out, "requires review_item.submit.own")
	assert.Contains(t, out, "class in_review highlighted")
	assert.NotContains(t, out, "if summary set")
}

func TestGenerateMermaidPlaceholdersDeclared(t *testing.T) {
	t.Parallel()

	// Unreachable placeholder states still appear in the diagram.
	out, err := GenerateMermaid(definitions.Payment())
	require.NoError(t, err)

	assert.Contains(t, out, "refunded: Refunded")
	assert.NotContains(t, out, "refunded -->")
}

func TestExportYAML(t *testing.T) {
	t.Parallel()

	out, err := ExportYAML(reviewFixture())
	require.NoError(t, err)

	var doc Doc
	require.NoError(t, yaml.Unmarshal(out, &doc))

	assert.Equal(t, "review_item", doc.EntityType)
	require.Len(t, doc.States, 3)
	assert.True(t, doc.States[0].Initial)
	assert.True(t, doc.States[2].Final)

	require.Len(t, doc.Transitions, 2)
	submit := doc.Transitions[0]
	assert.Equal(t, "submit", submit.Action)
	assert.Equal(t, []string{"review_item.submit.own"}, submit.Requires)
	require.Len(t, submit.Conditions, 1)
	assert.Equal(t, "field_not_empty", submit.Conditions[0].Kind)
	assert.Equal(t, "Summary is required", submit.Conditions[0].Message)
}

func TestLoadDocRoundTrip(t *testing.T) {
	t.Parallel()

	out, err := ExportYAML(reviewFixture())
	require.NoError(t, err)

	path := filepath.Join(t.TempDir(), "review_item.yaml")
	require.NoError(t, os.WriteFile(path, out, 0o644))

	doc, err := LoadDoc(path)
	require.NoError(t, err)
	assert.Equal(t, "review_item", doc.EntityType)
	assert.Len(t, doc.Transitions, 2)

	_, err = LoadDoc(filepath.Join(t.TempDir(), "missing.yaml"))
	require.Error(t, err)
}

func TestExportYAMLNilDefinition(t *testing.T) {
	t.Parallel()

	_, err := ExportYAML(nil)
	require.ErrorIs(t, err, ErrDefinitionNil)
}

func TestExportYAMLAllDefinitions(t *testing.T) {
	t.Parallel()

	for _, def := range definitions.All() {
		out, err := ExportYAML(def)
		require.NoError(t, err)
		assert.Contains(t, string(out), "entityType: "+string(def.EntityType))
	}
}
