package workflow

import (
	"fmt"

	"github.com/crewledger/crew-common/errors"
)

// Definition is the full authored table for one entity type: its states, its
// transitions, and (implicitly, via the Initial flag) its designated initial
// state. Definitions are constructed once at process start and never mutated.
type Definition struct {
	EntityType  EntityType
	States      []State
	Transitions []Transition
}

// Initial returns the definition's initial state.
func (d *Definition) Initial() (State, bool) {
	for _, s := range d.States {
		if s.Initial {
			return s, true
		}
	}

	return State{}, false
}

// State returns the state with the given name.
func (d *Definition) State(name string) (State, bool) {
	for _, s := range d.States {
		if s.Name == name {
			return s, true
		}
	}

	return State{}, false
}

// TransitionsFrom returns every transition originating from the given state,
// in authored order.
func (d *Definition) TransitionsFrom(from string) []Transition {
	var out []Transition

	for _, t := range d.Transitions {
		if t.From == from {
			out = append(out, t)
		}
	}

	return out
}

// Find returns the unique transition matching the (from, to, action) triple.
func (d *Definition) Find(from, to string, action Action) (Transition, bool) {
	for _, t := range d.Transitions {
		if t.From == from && t.To == to && t.Action == action {
			return t, true
		}
	}

	return Transition{}, false
}

// Validate checks the structural invariants every definition must satisfy:
// exactly one initial state, unique state names, transition endpoints that
// exist, no edges out of final states, unique (from, to, action) triples,
// well-formed conditions, and no cycles other than transitions explicitly
// flagged as rework loops. All problems are reported together.
func (d *Definition) Validate() error {
	coll := &errors.Collection{}

	if d.EntityType == "" {
		coll.Add(ErrEntityTypeRequired)
	}

	if len(d.States) == 0 {
		coll.Add(ErrStateRequired)
	}

	names := make(map[string]State, len(d.States))
	initials := 0

	for _, s := range d.States {
		if s.Name == "" {
			coll.Add(ErrStateNameRequired)

			continue
		}

		if _, dup := names[s.Name]; dup {
			coll.Addf("%w: %s", ErrDuplicateStateName, s.Name)
		}

		names[s.Name] = s

		if s.Initial {
			initials++
		}
	}

	switch {
	case initials == 0 && len(d.States) > 0:
		coll.Add(ErrNoInitialState)
	case initials > 1:
		coll.Add(ErrMultipleInitialStates)
	}

	seen := make(map[string]struct{}, len(d.Transitions))

	for i, t := range d.Transitions {
		if t.Action == "" {
			coll.Addf("transition %d: %w", i, ErrTransitionActionRequired)
		}

		from, fromOK := names[t.From]
		if !fromOK {
			coll.Addf("transition %d: %w: %s", i, ErrTransitionFromNotFound, t.From)
		}

		if _, ok := names[t.To]; !ok {
			coll.Addf("transition %d: %w: %s", i, ErrTransitionToNotFound, t.To)
		}

		if fromOK && from.Final {
			coll.Addf("transition %d (%s -> %s): %w", i, t.From, t.To, ErrFinalStateOutgoing)
		}

		key := t.From + "\x00" + t.To + "\x00" + string(t.Action)
		if _, dup := seen[key]; dup {
			coll.Addf("%w: (%s, %s, %s)", ErrDuplicateTransition, t.From, t.To, t.Action)
		}

		seen[key] = struct{}{}

		for j, c := range t.Conditions {
			coll.Add(validateCondition(c, fmt.Sprintf("transition %d, condition %d", i, j)))
		}
	}

	d.validateAcyclic(coll)

	return WrapDefinitionError(d.EntityType, coll.GetError())
}

// validateCondition checks a single condition's shape.
func validateCondition(c Condition, where string) error {
	if c.Message == "" {
		return fmt.Errorf("%s: %w", where, ErrConditionMessageRequired)
	}

	switch c.Kind {
	case ConditionFieldNotEmpty, ConditionFieldEquals:
		if c.Field == "" {
			return fmt.Errorf("%s: %w", where, ErrConditionFieldRequired)
		}
	case ConditionCustom:
		if c.Check == nil {
			return fmt.Errorf("%s: %w", where, ErrConditionCheckRequired)
		}
	default:
		return fmt.Errorf("%s: %w: %s", where, ErrUnknownConditionKind, c.Kind)
	}

	return nil
}

// validateAcyclic checks that the graph restricted to non-rework edges is
// acyclic. Rework loops (e.g. changes_requested back to submitted) must be
// authored intentionally via the MetaReworkLoop transition metadata flag;
// any other cycle is an authoring mistake.
func (d *Definition) validateAcyclic(coll *errors.Collection) {
	adj := make(map[string][]string)

	for _, t := range d.Transitions {
		if flagged, _ := t.Metadata[MetaReworkLoop].(bool); flagged {
			continue
		}

		adj[t.From] = append(adj[t.From], t.To)
	}

	const (
		unvisited = 0
		visiting  = 1
		done      = 2
	)

	color := make(map[string]int, len(d.States))

	var visit func(name string) bool
	visit = func(name string) bool {
		color[name] = visiting

		for _, next := range adj[name] {
			switch color[next] {
			case visiting:
				coll.Addf("%w: cycle through %s -> %s", ErrUnflaggedCycle, name, next)

				return false
			case unvisited:
				if !visit(next) {
					return false
				}
			}
		}

		color[name] = done

		return true
	}

	for _, s := range d.States {
		if color[s.Name] == unvisited {
			if !visit(s.Name) {
				return
			}
		}
	}
}
