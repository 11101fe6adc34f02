// Package visualizer renders workflow definitions as Mermaid state diagrams
// and as YAML documents for the generated lifecycle docs.
package visualizer

import (
	"errors"
	"fmt"
	"strings"

	"github.com/crewledger/crew-common/workflow"
)

// Visualizer errors.
var (
	ErrDefinitionNil  = errors.New("definition cannot be nil")
	ErrNoInitialState = errors.New("definition must have an initial state")
)

// GenerateMermaid converts a definition to a Mermaid state diagram with
// default options.
func GenerateMermaid(def *workflow.Definition) (string, error) {
	return GenerateMermaidWithOptions(def, DefaultOptions())
}

// GenerateMermaidWithOptions generates a Mermaid diagram with custom options.
// Edges are labeled with their action; unreachable placeholder states are
// still declared so the diagram shows the full state vocabulary.
func GenerateMermaidWithOptions(def *workflow.Definition, opts Options) (string, error) {
	if def == nil {
		return "", ErrDefinitionNil
	}

	initial, ok := def.Initial()
	if !ok {
		return "", ErrNoInitialState
	}

	var sb strings.Builder

	sb.WriteString("```mermaid\n")
	sb.WriteString(fmt.Sprintf("stateDiagram-%s\n", opts.Direction))
	sb.WriteString(fmt.Sprintf("    [*] --> %s\n", initial.Name))

	highlighted := make(map[string]bool)
	for _, state := range opts.HighlightPath {
		highlighted[state] = true
	}

	for _, state := range def.States {
		if state.Label != "" && state.Label != state.Name {
			sb.WriteString(fmt.Sprintf("    %s: %s\n", state.Name, state.Label))
		}

		switch {
		case highlighted[state.Name]:
			sb.WriteString(fmt.Sprintf("    class %s highlighted\n", state.Name))
		case state.Final:
			sb.WriteString(fmt.Sprintf("    class %s finalState\n", state.Name))
		}

		for _, tr := range def.TransitionsFrom(state.Name) {
			sb.WriteString(fmt.Sprintf("    %s --> %s: %s\n",
				tr.From, tr.To, edgeLabel(tr, opts)))
		}

		if state.Final {
			sb.WriteString(fmt.Sprintf("    %s --> [*]\n", state.Name))
		}
	}

	sb.WriteString("\n")
	sb.WriteString("    classDef finalState fill:#c8e6c9,stroke:#2e7d32,stroke-width:2px\n")
	sb.WriteString("    classDef highlighted fill:#fff9c4,stroke:#f57f17,stroke-width:3px\n")
	sb.WriteString("```\n")

	return sb.String(), nil
}

// edgeLabel builds the label for one transition edge: the action, optionally
// followed by condition summaries and the required capabilities.
func edgeLabel(tr workflow.Transition, opts Options) string {
	parts := []string{string(tr.Action)}

	if opts.ShowConditions {
		for _, c := range tr.Conditions {
			parts = append(parts, conditionSummary(c))
		}
	}

	if opts.ShowCapabilities && !tr.Requires.IsEmpty() {
		parts = append(parts, "requires "+strings.Join(tr.Requires.Strings(), " | "))
	}

	return strings.Join(parts, "<br/>")
}

func conditionSummary(c workflow.Condition) string {
	switch c.Kind {
	case workflow.ConditionFieldNotEmpty:
		return fmt.Sprintf("if %s set", c.Field)
	case workflow.ConditionFieldEquals:
		return fmt.Sprintf("if %s == %v", c.Field, c.Value)
	case workflow.ConditionCustom:
		return "if " + c.Message
	default:
		return string(c.Kind)
	}
}
