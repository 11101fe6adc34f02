package visualizer

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/crewledger/crew-common/workflow"
)

// Doc is the YAML form of a definition, written alongside the Mermaid
// diagrams by the docs generator. Custom condition checks and side-effect
// executors are code, so only their declared shape is exported.
type Doc struct {
	EntityType  string          `yaml:"entityType"`
	States      []StateDoc      `yaml:"states"`
	Transitions []TransitionDoc `yaml:"transitions"`
}

// StateDoc is one state in the exported document.
type StateDoc struct {
	Name        string         `yaml:"name"`
	Label       string         `yaml:"label,omitempty"`
	Description string         `yaml:"description,omitempty"`
	Initial     bool           `yaml:"initial,omitempty"`
	Final       bool           `yaml:"final,omitempty"`
	Metadata    map[string]any `yaml:"metadata,omitempty"`
}

// TransitionDoc is one transition in the exported document.
type TransitionDoc struct {
	From        string         `yaml:"from"`
	To          string         `yaml:"to"`
	Action      string         `yaml:"action"`
	Requires    []string       `yaml:"requires,omitempty"`
	Conditions  []ConditionDoc `yaml:"conditions,omitempty"`
	SideEffects []EffectDoc    `yaml:"sideEffects,omitempty"`
	Metadata    map[string]any `yaml:"metadata,omitempty"`
}

// ConditionDoc is one condition in the exported document.
type ConditionDoc struct {
	Kind    string `yaml:"kind"`
	Field   string `yaml:"field,omitempty"`
	Value   any    `yaml:"value,omitempty"`
	Message string `yaml:"message"`
}

// EffectDoc is one advisory side effect in the exported document.
type EffectDoc struct {
	Kind   string         `yaml:"kind"`
	Config map[string]any `yaml:"config,omitempty"`
}

// NewDoc converts a definition into its exportable document form.
func NewDoc(def *workflow.Definition) (*Doc, error) {
	if def == nil {
		return nil, ErrDefinitionNil
	}

	doc := &Doc{
		EntityType:  string(def.EntityType),
		States:      make([]StateDoc, 0, len(def.States)),
		Transitions: make([]TransitionDoc, 0, len(def.Transitions)),
	}

	for _, s := range def.States {
		doc.States = append(doc.States, StateDoc{
			Name:        s.Name,
			Label:       s.Label,
			Description: s.Description,
			Initial:     s.Initial,
			Final:       s.Final,
			Metadata:    s.Metadata,
		})
	}

	for _, tr := range def.Transitions {
		conditions := make([]ConditionDoc, 0, len(tr.Conditions))
		for _, c := range tr.Conditions {
			conditions = append(conditions, ConditionDoc{
				Kind:    string(c.Kind),
				Field:   c.Field,
				Value:   c.Value,
				Message: c.Message,
			})
		}

		effects := make([]EffectDoc, 0, len(tr.SideEffects))
		for _, e := range tr.SideEffects {
			effects = append(effects, EffectDoc{
				Kind:   string(e.Kind),
				Config: e.Config,
			})
		}

		doc.Transitions = append(doc.Transitions, TransitionDoc{
			From:        tr.From,
			To:          tr.To,
			Action:      string(tr.Action),
			Requires:    tr.Requires.Strings(),
			Conditions:  conditions,
			SideEffects: effects,
			Metadata:    tr.Metadata,
		})
	}

	return doc, nil
}

// ExportYAML renders a definition as a YAML document.
func ExportYAML(def *workflow.Definition) ([]byte, error) {
	doc, err := NewDoc(def)
	if err != nil {
		return nil, err
	}

	out, err := yaml.Marshal(doc)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal definition: %w", err)
	}

	return out, nil
}

// LoadDoc reads a previously exported document back from a file. Docs carry
// only the declared shape, not the custom checks or capability semantics, so
// this is for diffing and doc tooling, not for reconstructing a Definition.
func LoadDoc(path string) (*Doc, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read document: %w", err)
	}

	var doc Doc
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("failed to parse document: %w", err)
	}

	return &doc, nil
}
