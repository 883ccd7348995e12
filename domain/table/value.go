package table

import (
	"fmt"
	"strconv"
	"time"
)

// DateLayout is the canonical on-disk representation for date values.
const DateLayout = "2006-01-02"

// Value represents a typed cell with an explicit missing marker.
// A missing Value is distinct from every valid value, including the
// empty string and zero.
type Value struct {
	Type       ValueType  `json:"type"`
	StringVal  *string    `json:"string_val,omitempty"`
	NumericVal *float64   `json:"numeric_val,omitempty"`
	BooleanVal *bool      `json:"boolean_val,omitempty"`
	DateVal    *time.Time `json:"date_val,omitempty"`
	IsMissing  bool       `json:"is_missing"`
}

// ValueType defines the storage type for cell values
type ValueType string

const (
	ValueTypeString  ValueType = "string"
	ValueTypeNumeric ValueType = "numeric"
	ValueTypeBoolean ValueType = "boolean"
	ValueTypeDate    ValueType = "date"
	ValueTypeMissing ValueType = "missing"
)

// NewStringValue creates a string value; the empty string maps to missing
func NewStringValue(s string) Value {
	if s == "" {
		return NewMissingValue()
	}
	return Value{Type: ValueTypeString, StringVal: &s}
}

// NewNumericValue creates a numeric value
func NewNumericValue(n float64) Value {
	return Value{Type: ValueTypeNumeric, NumericVal: &n}
}

// NewBooleanValue creates a boolean value
func NewBooleanValue(b bool) Value {
	return Value{Type: ValueTypeBoolean, BooleanVal: &b}
}

// NewDateValue creates a date value
func NewDateValue(t time.Time) Value {
	return Value{Type: ValueTypeDate, DateVal: &t}
}

// NewMissingValue creates a missing value
func NewMissingValue() Value {
	return Value{Type: ValueTypeMissing, IsMissing: true}
}

// IsNumeric returns true if the value holds a valid number
func (v Value) IsNumeric() bool {
	return v.Type == ValueTypeNumeric && v.NumericVal != nil
}

// IsString returns true if the value holds a valid string
func (v Value) IsString() bool {
	return v.Type == ValueTypeString && v.StringVal != nil
}

// IsBoolean returns true if the value holds a valid boolean
func (v Value) IsBoolean() bool {
	return v.Type == ValueTypeBoolean && v.BooleanVal != nil
}

// IsDate returns true if the value holds a valid date
func (v Value) IsDate() bool {
	return v.Type == ValueTypeDate && v.DateVal != nil
}

// AsFloat64 returns the numeric value, or 0 if not numeric
func (v Value) AsFloat64() float64 {
	if v.NumericVal != nil {
		return *v.NumericVal
	}
	return 0.0
}

// AsString returns the string value, or "" if not a string
func (v Value) AsString() string {
	if v.StringVal != nil {
		return *v.StringVal
	}
	return ""
}

// AsBool returns the boolean value, or false if not a boolean
func (v Value) AsBool() bool {
	if v.BooleanVal != nil {
		return *v.BooleanVal
	}
	return false
}

// AsDate returns the date value, or the zero time if not a date
func (v Value) AsDate() time.Time {
	if v.DateVal != nil {
		return *v.DateVal
	}
	return time.Time{}
}

// Equal reports whether two values are identical in type and content.
// Used by deduplication, which compares whole rows cell by cell.
func (v Value) Equal(other Value) bool {
	if v.IsMissing || other.IsMissing {
		return v.IsMissing && other.IsMissing
	}
	if v.Type != other.Type {
		return false
	}
	switch v.Type {
	case ValueTypeString:
		return v.AsString() == other.AsString()
	case ValueTypeNumeric:
		return v.AsFloat64() == other.AsFloat64()
	case ValueTypeBoolean:
		return v.AsBool() == other.AsBool()
	case ValueTypeDate:
		return v.AsDate().Equal(other.AsDate())
	}
	return false
}

// String returns a human-readable representation of the value
func (v Value) String() string {
	switch v.Type {
	case ValueTypeString:
		if v.StringVal != nil {
			return *v.StringVal
		}
	case ValueTypeNumeric:
		if v.NumericVal != nil {
			return strconv.FormatFloat(*v.NumericVal, 'f', -1, 64)
		}
	case ValueTypeBoolean:
		if v.BooleanVal != nil {
			return fmt.Sprintf("%t", *v.BooleanVal)
		}
	case ValueTypeDate:
		if v.DateVal != nil {
			return v.DateVal.Format(DateLayout)
		}
	case ValueTypeMissing:
		return "<missing>"
	}
	return "<invalid>"
}

// CSVString returns the serialized form written by the CSV writer.
// Missing values serialize to the empty string.
func (v Value) CSVString() string {
	if v.IsMissing {
		return ""
	}
	return v.String()
}
