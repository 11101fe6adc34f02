// Package errors provides a small utility for accumulating multiple errors,
// used by the definition validator to report every problem with an authored
// workflow table at once instead of stopping at the first.
package errors

import (
	"errors"
	"fmt"
)

// Collection is a thread-unsafe utility for accumulating multiple errors.
// Use it when a pass over a structure should surface all problems together.
type Collection struct {
	errors []error
}

// Add appends an error to the collection. Nil errors are ignored.
func (c *Collection) Add(err error) {
	if err != nil {
		c.errors = append(c.errors, err)
	}
}

// Addf formats and appends an error to the collection.
func (c *Collection) Addf(format string, args ...any) {
	c.errors = append(c.errors, fmt.Errorf(format, args...))
}

// Clear removes all errors from the collection.
func (c *Collection) Clear() {
	c.errors = nil
}

// HasError returns true if the collection contains at least one error.
func (c *Collection) HasError() bool {
	return len(c.errors) > 0
}

// Len returns the number of collected errors.
func (c *Collection) Len() int {
	return len(c.errors)
}

// Errors returns the collected errors in insertion order.
func (c *Collection) Errors() []error {
	return c.errors
}

// GetError returns the collected errors as a single error.
// Returns nil if the collection is empty, the single error if there's only
// one, or a joined error (errors.Join) if there are multiple.
func (c *Collection) GetError() error {
	switch len(c.errors) {
	case 0:
		return nil
	case 1:
		return c.errors[0]
	default:
		return errors.Join(c.errors...)
	}
}
