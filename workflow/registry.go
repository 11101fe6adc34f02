package workflow

import (
	"fmt"
	"maps"
	"slices"
)

// Registry maps an entity-type tag to its evaluator. It is the sole
// integration point the surrounding application uses to reach the engine.
// Machines are built eagerly at construction, so an invalid authored table
// fails at startup instead of on first use.
type Registry struct {
	machines map[EntityType]*Machine
}

// NewRegistry builds and validates an evaluator for every given definition.
func NewRegistry(defs ...*Definition) (*Registry, error) {
	r := &Registry{machines: make(map[EntityType]*Machine, len(defs))}

	for _, def := range defs {
		machine, err := NewMachine(def)
		if err != nil {
			return nil, err
		}

		if _, dup := r.machines[def.EntityType]; dup {
			return nil, fmt.Errorf("%w: %s", ErrDuplicateDefinition, def.EntityType)
		}

		r.machines[def.EntityType] = machine
	}

	return r, nil
}

// MustNewRegistry is NewRegistry, panicking on an invalid definition. An
// authored table that fails validation is a programming error, caught at
// startup or in tests, never a runtime condition.
func MustNewRegistry(defs ...*Definition) *Registry {
	r, err := NewRegistry(defs...)
	if err != nil {
		panic(err)
	}

	return r
}

// Machine returns the evaluator for an entity type. An unknown type is a
// programming error (a typo in a type tag) wrapped around
// ErrUnknownEntityType.
func (r *Registry) Machine(entityType EntityType) (*Machine, error) {
	m, ok := r.machines[entityType]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownEntityType, entityType)
	}

	return m, nil
}

// MustMachine returns the evaluator for an entity type, panicking if the
// type is unrecognized.
func (r *Registry) MustMachine(entityType EntityType) *Machine {
	m, err := r.Machine(entityType)
	if err != nil {
		panic(err)
	}

	return m
}

// All returns every evaluator keyed by entity type. Used by tooling that
// enumerates all workflows, e.g. documentation generation or cross-entity
// admin views. The returned map is a copy; the machines are shared.
func (r *Registry) All() map[EntityType]*Machine {
	out := make(map[EntityType]*Machine, len(r.machines))
	maps.Copy(out, r.machines)

	return out
}

// EntityTypes returns the registered entity types in lexical order.
func (r *Registry) EntityTypes() []EntityType {
	out := slices.Collect(maps.Keys(r.machines))
	slices.Sort(out)

	return out
}

// SetLogger sets the logger on every registered machine.
func (r *Registry) SetLogger(logger Logger) {
	for _, m := range r.machines {
		m.SetLogger(logger)
	}
}
