package sheetxml

import (
	"fmt"
	"math"
	"strconv"
)

// Kind identifies what a Value holds
type Kind int

const (
	KindEmpty Kind = iota
	KindNumber
	KindText
)

// String returns the SpreadsheetML data type name
func (k Kind) String() string {
	switch k {
	case KindNumber:
		return "Number"
	case KindText:
		return "String"
	default:
		return "Empty"
	}
}

// Value is a single cell entry: a number, a text or nothing
type Value struct {
	kind Kind
	num  float64
	text string
}

// Number returns a numeric cell value
func Number(v float64) Value {
	return Value{kind: KindNumber, num: v}
}

// Text returns a text cell value
func Text(s string) Value {
	return Value{kind: KindText, text: s}
}

// Empty returns a cell value without content
func Empty() Value {
	return Value{}
}

// Kind returns the kind of the value
func (v Value) Kind() Kind { return v.kind }

// IsEmpty reports whether the value has no content
func (v Value) IsEmpty() bool { return v.kind == KindEmpty }

// Float returns the numeric content; ok is false for non-numbers
func (v Value) Float() (f float64, ok bool) {
	return v.num, v.kind == KindNumber
}

// String returns the value as it is written into the document
func (v Value) String() string {
	switch v.kind {
	case KindNumber:
		return strconv.FormatFloat(v.num, 'f', -1, 64)
	case KindText:
		return v.text
	default:
		return ""
	}
}

// ValueOf converts a Go value into a cell value. Numbers of any width,
// strings, byte slices and nil are accepted.
func ValueOf(v interface{}) (Value, error) {
	switch val := v.(type) {
	case nil:
		return Empty(), nil
	case Value:
		return val, nil
	case string:
		return Text(val), nil
	case []byte:
		return Text(string(val)), nil
	}

	if isNumeric(v) {
		f := toFloat64(v)
		if math.IsNaN(f) || math.IsInf(f, 0) {
			return Value{}, fmt.Errorf("non-finite number %v: %w", f, ErrInvalidArgument)
		}
		return Number(f), nil
	}

	return Value{}, fmt.Errorf("unsupported cell value type %T: %w", v, ErrInvalidArgument)
}

// valuesOf converts a whole row, failing on the first unsupported entry
func valuesOf(entries []interface{}) ([]Value, error) {
	values := make([]Value, len(entries))
	for i, e := range entries {
		val, err := ValueOf(e)
		if err != nil {
			return nil, fmt.Errorf("entry %d: %w", i, err)
		}
		values[i] = val
	}
	return values, nil
}

// isNumeric checks if a value is numeric
func isNumeric(v interface{}) bool {
	switch v.(type) {
	case int, int8, int16, int32, int64,
		uint, uint8, uint16, uint32, uint64,
		float32, float64:
		return true
	default:
		return false
	}
}

// toFloat64 converts a numeric value to float64
func toFloat64(v interface{}) float64 {
	switch val := v.(type) {
	case int:
		return float64(val)
	case int8:
		return float64(val)
	case int16:
		return float64(val)
	case int32:
		return float64(val)
	case int64:
		return float64(val)
	case uint:
		return float64(val)
	case uint8:
		return float64(val)
	case uint16:
		return float64(val)
	case uint32:
		return float64(val)
	case uint64:
		return float64(val)
	case float32:
		return float64(val)
	case float64:
		return val
	default:
		return 0
	}
}
