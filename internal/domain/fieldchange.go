package domain

import (
	"fmt"
	"math"
	"reflect"
	"strings"
)

// FieldType drives only display formatting of a change, never comparison
// semantics.
type FieldType string

const (
	FieldTypeText    FieldType = "text"
	FieldTypePrice   FieldType = "price"
	FieldTypeBoolean FieldType = "boolean"
	FieldTypeNumber  FieldType = "number"
	FieldTypeArray   FieldType = "array"
)

// Canonical comparable field names shared between MenuItem and
// MenuItemSnapshot views.
const (
	FieldName        = "name"
	FieldDescription = "description"
	FieldPrice       = "price"
	FieldAvailable   = "available"
	FieldTags        = "tags"
	FieldCalories    = "calories"
)

// ComparableField declares one entry of the fixed diff field set: the
// canonical field name, a human label for display, the display type, and any
// legacy names the value may still live under in older records.
type ComparableField struct {
	Name    string
	Label   string
	Type    FieldType
	Aliases []string
}

// ComparableFields is the fixed, ordered field set the comparator walks.
// Diff output follows this order; it is never reordered by the caller.
var ComparableFields = []ComparableField{
	{Name: FieldName, Label: "Name", Type: FieldTypeText},
	{Name: FieldDescription, Label: "Description", Type: FieldTypeText, Aliases: []string{"item_description"}},
	{Name: FieldPrice, Label: "Price", Type: FieldTypePrice},
	{Name: FieldAvailable, Label: "Available", Type: FieldTypeBoolean},
	{Name: FieldTags, Label: "Tags", Type: FieldTypeArray},
	{Name: FieldCalories, Label: "Calories", Type: FieldTypeNumber},
}

// FieldChange is a single old/new value pair surfaced for review display.
// It is computed on demand and never persisted.
type FieldChange struct {
	Field string    `json:"field"`
	Label string    `json:"label"`
	Old   any       `json:"old_value"`
	New   any       `json:"new_value"`
	Type  FieldType `json:"type"`
}

// numericTolerance absorbs floating-point rounding in currency fields.
const numericTolerance = 0.001

// DiffFields compares two name-keyed records field by field and returns the
// changes in fieldSet order. It is pure: no side effects, deterministic
// output for deterministic input. Callers must not invoke it for an item
// with no snapshot; a missing baseline means "new", not "everything changed".
func DiffFields(live, snapshot map[string]any, fieldSet []ComparableField) []FieldChange {
	changes := make([]FieldChange, 0)
	for _, f := range fieldSet {
		oldVal := resolveFieldValue(snapshot, f)
		newVal := resolveFieldValue(live, f)
		if !valuesEqual(oldVal, newVal) {
			changes = append(changes, FieldChange{
				Field: f.Name,
				Label: f.Label,
				Old:   oldVal,
				New:   newVal,
				Type:  f.Type,
			})
		}
	}
	return changes
}

// resolveFieldValue reads a field from a record, preferring the canonical
// name and falling back to legacy aliases when the canonical value is absent.
func resolveFieldValue(record map[string]any, f ComparableField) any {
	if v, ok := record[f.Name]; ok && v != nil {
		return v
	}
	for _, alias := range f.Aliases {
		if v, ok := record[alias]; ok && v != nil {
			return v
		}
	}
	return nil
}

// valuesEqual implements the comparator's equality semantics:
// nil equals nil and nothing else; numbers are equal within an absolute
// tolerance; arrays are equal iff same length and element-wise equal under
// the same rules; everything else compares strictly.
func valuesEqual(a, b any) bool {
	if a == nil && b == nil {
		return true
	}
	if a == nil || b == nil {
		return false
	}

	if af, aok := toFloat(a); aok {
		bf, bok := toFloat(b)
		if !bok {
			return false
		}
		return math.Abs(af-bf) <= numericTolerance
	}

	if as, aok := toSlice(a); aok {
		bs, bok := toSlice(b)
		if !bok || len(as) != len(bs) {
			return false
		}
		for i := range as {
			if !valuesEqual(as[i], bs[i]) {
				return false
			}
		}
		return true
	}

	return reflect.DeepEqual(a, b)
}

// toFloat coerces the numeric types that reach the comparator into float64.
func toFloat(v any) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case float32:
		return float64(n), true
	case int:
		return float64(n), true
	case int32:
		return float64(n), true
	case int64:
		return float64(n), true
	default:
		return 0, false
	}
}

// toSlice normalizes the slice types that reach the comparator into []any.
func toSlice(v any) ([]any, bool) {
	switch s := v.(type) {
	case []any:
		return s, true
	case []string:
		out := make([]any, len(s))
		for i, e := range s {
			out[i] = e
		}
		return out, true
	case []float64:
		out := make([]any, len(s))
		for i, e := range s {
			out[i] = e
		}
		return out, true
	default:
		return nil, false
	}
}

// FormatValue renders a field value for review display according to its
// display type. Price values use the configured currency symbol, e.g. "£10.00".
func FormatValue(currency string, t FieldType, v any) string {
	if v == nil {
		return "(none)"
	}
	switch t {
	case FieldTypePrice:
		if f, ok := toFloat(v); ok {
			return fmt.Sprintf("%s%.2f", currency, f)
		}
	case FieldTypeBoolean:
		if b, ok := v.(bool); ok {
			if b {
				return "Yes"
			}
			return "No"
		}
	case FieldTypeNumber:
		if f, ok := toFloat(v); ok {
			if f == math.Trunc(f) {
				return fmt.Sprintf("%d", int64(f))
			}
			return fmt.Sprintf("%g", f)
		}
	case FieldTypeArray:
		if s, ok := toSlice(v); ok {
			parts := make([]string, len(s))
			for i, e := range s {
				parts[i] = fmt.Sprintf("%v", e)
			}
			return strings.Join(parts, ", ")
		}
	}
	return fmt.Sprintf("%v", v)
}
