package workflow

import (
	"context"
	"reflect"
)

// evaluate runs a single condition against a transition context. It returns
// true when the condition holds; on failure the condition's configured
// Message is what the caller reports. A custom check returning an error is
// converted into a plain failure so ValidateTransition stays total.
func (c Condition) evaluate(ctx context.Context, tc *Context) bool {
	switch c.Kind {
	case ConditionFieldNotEmpty:
		val, ok := tc.Get(c.Field)

		return ok && !isEmptyValue(val)

	case ConditionFieldEquals:
		val, ok := tc.Get(c.Field)

		return ok && reflect.DeepEqual(val, c.Value)

	case ConditionCustom:
		if c.Check == nil {
			return false
		}

		pass, err := c.Check(ctx, tc)

		return err == nil && pass

	default:
		return false
	}
}

// isEmptyValue implements the truthiness semantics of field_not_empty:
// nil, "", false, numeric zero, and empty maps/slices/arrays all count as
// empty. A submitted amount of 0 is therefore "empty": the check is
// truthiness, not numeric validity. The field_not_empty tests pin this down.
func isEmptyValue(val any) bool {
	if val == nil {
		return true
	}

	rv := reflect.ValueOf(val)

	switch rv.Kind() {
	case reflect.String:
		return rv.Len() == 0
	case reflect.Bool:
		return !rv.Bool()
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return rv.Int() == 0
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		return rv.Uint() == 0
	case reflect.Float32, reflect.Float64:
		return rv.Float() == 0
	case reflect.Slice, reflect.Map, reflect.Array:
		return rv.Len() == 0
	case reflect.Ptr, reflect.Interface:
		return rv.IsNil() || isEmptyValue(rv.Elem().Interface())
	default:
		return false
	}
}
