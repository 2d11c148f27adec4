package projects

import (
	"fmt"
	"time"
)

// Kind tags the shape of a scalar-or-list field as found in a raw record.
type Kind int

const (
	// Absent means the key is missing or null.
	Absent Kind = iota
	// Single means one scalar value.
	Single
	// Multiple means a list, possibly empty.
	Multiple
)

// String returns the kind name.
func (k Kind) String() string {
	switch k {
	case Single:
		return "single"
	case Multiple:
		return "multiple"
	default:
		return "absent"
	}
}

// ScalarOrList is a field that records may write either as one value or as
// a list of values. It is parsed once, at the record boundary.
type ScalarOrList struct {
	Kind   Kind
	values []string
}

// ParseScalarOrList classifies v. Scalars of any YAML type are kept in
// their string form; nested mappings or lists are rejected.
func ParseScalarOrList(v any) (ScalarOrList, error) {
	if v == nil {
		return ScalarOrList{Kind: Absent}, nil
	}
	if list, ok := v.([]any); ok {
		values := make([]string, 0, len(list))
		for i, item := range list {
			s, ok := scalarString(item)
			if !ok {
				return ScalarOrList{}, fmt.Errorf("item %d is not a scalar (%T)", i, item)
			}
			values = append(values, s)
		}
		return ScalarOrList{Kind: Multiple, values: values}, nil
	}
	s, ok := scalarString(v)
	if !ok {
		return ScalarOrList{}, fmt.Errorf("expected a value or a list, got %T", v)
	}
	return ScalarOrList{Kind: Single, values: []string{s}}, nil
}

// List returns the values as a list: empty when absent, a singleton for a
// single value, the values unchanged otherwise. Duplicates are kept.
func (s ScalarOrList) List() []string {
	out := make([]string, len(s.values))
	copy(out, s.values)
	return out
}

// Scalar returns the single value of s. A list or an absent field reports
// false.
func (s ScalarOrList) Scalar() (string, bool) {
	if s.Kind != Single {
		return "", false
	}
	return s.values[0], true
}

// scalarString renders a YAML scalar as a string. Null, mappings and
// sequences are not scalars.
func scalarString(v any) (string, bool) {
	switch t := v.(type) {
	case nil:
		return "", false
	case string:
		return t, true
	case bool, int, int8, int16, int32, int64, uint, uint8, uint16, uint32, uint64, float32, float64:
		return fmt.Sprint(t), true
	case time.Time:
		return t.Format(time.RFC3339), true
	case fmt.Stringer:
		return t.String(), true
	default:
		return "", false
	}
}
