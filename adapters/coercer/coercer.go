// Package coercer performs deterministic type coercion of raw cell
// text. Coercion never fails: a cell that cannot be parsed under its
// expected type becomes a missing value.
package coercer

import (
	"math"
	"strconv"
	"strings"
	"time"

	"goprep/domain/table"
)

// TypeCoercer converts raw cell strings into typed values
type TypeCoercer struct {
	config CoercionConfig
}

// CoercionConfig defines the coercion thresholds and rules
type CoercionConfig struct {
	NumericThreshold float64 // share of values that must parse as numbers
	BooleanThreshold float64 // share of values that must parse as booleans
	DateThreshold    float64 // share of values that must parse as dates
	TrimStrings      bool    // whether to trim surrounding whitespace
}

// DefaultCoercionConfig returns sensible defaults
func DefaultCoercionConfig() CoercionConfig {
	return CoercionConfig{
		NumericThreshold: 0.8,
		BooleanThreshold: 0.9,
		DateThreshold:    0.8,
		TrimStrings:      true,
	}
}

// NewTypeCoercer creates a coercer with the given config
func NewTypeCoercer(config CoercionConfig) *TypeCoercer {
	return &TypeCoercer{config: config}
}

// missing tokens produced by upstream tooling
var missingTokens = map[string]bool{
	"": true, "na": true, "n/a": true, "nan": true, "null": true, "none": true,
}

// IsMissingToken reports whether a raw cell denotes a missing value
func IsMissingToken(raw string) bool {
	return missingTokens[strings.ToLower(strings.TrimSpace(raw))]
}

// CoerceNumeric parses a raw cell as a number, handling currency
// symbols, thousands separators, percent signs and parenthesized
// negatives. Unparseable cells become missing.
func (c *TypeCoercer) CoerceNumeric(raw string) table.Value {
	if v, ok := c.tryParseNumeric(raw); ok {
		return v
	}
	return table.NewMissingValue()
}

// CoerceBoolean parses a raw cell as a boolean token
func (c *TypeCoercer) CoerceBoolean(raw string) table.Value {
	if v, ok := c.tryParseBoolean(raw); ok {
		return v
	}
	return table.NewMissingValue()
}

// CoerceDate parses a raw cell as a date under the known layouts
func (c *TypeCoercer) CoerceDate(raw string) table.Value {
	if v, ok := c.tryParseDate(raw); ok {
		return v
	}
	return table.NewMissingValue()
}

// CoerceString normalizes a raw cell into a string value
func (c *TypeCoercer) CoerceString(raw string) table.Value {
	if IsMissingToken(raw) {
		return table.NewMissingValue()
	}
	if c.config.TrimStrings {
		raw = strings.TrimSpace(raw)
	}
	return table.NewStringValue(raw)
}

// ParseCurrency strips currency symbols and separators from a
// numeric-as-text cell and parses the remainder as an integer.
func (c *TypeCoercer) ParseCurrency(raw string) (int64, bool) {
	v, ok := c.tryParseNumeric(raw)
	if !ok {
		return 0, false
	}
	return int64(math.Trunc(v.AsFloat64())), true
}

// ParseDate parses a free-form date string under the known layouts
func (c *TypeCoercer) ParseDate(raw string) (time.Time, bool) {
	v, ok := c.tryParseDate(raw)
	if !ok {
		return time.Time{}, false
	}
	return v.AsDate(), true
}

func (c *TypeCoercer) tryParseNumeric(raw string) (table.Value, bool) {
	if IsMissingToken(raw) {
		return table.Value{}, false
	}
	cleanVal := strings.TrimSpace(raw)

	// Parentheses mark negatives in accounting exports: (123) -> -123
	isNegative := false
	if strings.HasPrefix(cleanVal, "(") && strings.HasSuffix(cleanVal, ")") {
		cleanVal = strings.TrimPrefix(cleanVal, "(")
		cleanVal = strings.TrimSuffix(cleanVal, ")")
		isNegative = true
	}

	for _, symbol := range []string{"$", "€", "£", "¥", "USD", "EUR", "GBP"} {
		cleanVal = strings.ReplaceAll(cleanVal, symbol, "")
	}
	cleanVal = strings.ReplaceAll(cleanVal, "%", "")
	cleanVal = strings.ReplaceAll(cleanVal, ",", "")
	cleanVal = strings.TrimSpace(cleanVal)

	if isNegative {
		cleanVal = "-" + cleanVal
	}

	val, err := strconv.ParseFloat(cleanVal, 64)
	if err != nil || math.IsInf(val, 0) || math.IsNaN(val) {
		return table.Value{}, false
	}
	return table.NewNumericValue(val), true
}

func (c *TypeCoercer) tryParseBoolean(raw string) (table.Value, bool) {
	lowerVal := strings.ToLower(strings.TrimSpace(raw))
	switch lowerVal {
	case "true", "1", "yes", "y", "on":
		return table.NewBooleanValue(true), true
	case "false", "0", "no", "n", "off":
		return table.NewBooleanValue(false), true
	}
	return table.Value{}, false
}

// dateLayouts are tried in order; the first match wins, so the more
// specific layouts come first.
var dateLayouts = []string{
	"2006-01-02",
	"2006/01/02",
	"01/02/2006",
	"01-02-2006",
	"02-Jan-2006",
	"Jan 2, 2006",
	"January 2, 2006",
	"2 January 2006",
}

func (c *TypeCoercer) tryParseDate(raw string) (table.Value, bool) {
	cleanVal := strings.TrimSpace(raw)
	if IsMissingToken(cleanVal) {
		return table.Value{}, false
	}
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, cleanVal); err == nil {
			return table.NewDateValue(t), true
		}
	}
	return table.Value{}, false
}

// TypeAnalysis contains the results of type distribution analysis
type TypeAnalysis struct {
	TotalCount      int
	ValidCount      int
	NumericCount    int
	BooleanCount    int
	DateCount       int
	NumericRatio    float64
	BooleanRatio    float64
	DateRatio       float64
	RecommendedType table.ValueType
}

// AnalyzeTypeDistribution samples a column's raw cells to decide which
// coercion a role-less column should get. Thresholds are checked most
// restrictive first, mirroring the per-cell coercion order.
func (c *TypeCoercer) AnalyzeTypeDistribution(values []string) TypeAnalysis {
	analysis := TypeAnalysis{TotalCount: len(values)}

	for _, raw := range values {
		if IsMissingToken(raw) {
			continue
		}
		analysis.ValidCount++
		if _, ok := c.tryParseNumeric(raw); ok {
			analysis.NumericCount++
		}
		if _, ok := c.tryParseBoolean(raw); ok {
			analysis.BooleanCount++
		}
		if _, ok := c.tryParseDate(raw); ok {
			analysis.DateCount++
		}
	}

	if analysis.ValidCount > 0 {
		analysis.NumericRatio = float64(analysis.NumericCount) / float64(analysis.ValidCount)
		analysis.BooleanRatio = float64(analysis.BooleanCount) / float64(analysis.ValidCount)
		analysis.DateRatio = float64(analysis.DateCount) / float64(analysis.ValidCount)
	}
	analysis.RecommendedType = c.determineRecommendedType(analysis)
	return analysis
}

func (c *TypeCoercer) determineRecommendedType(analysis TypeAnalysis) table.ValueType {
	// Boolean before numeric: "0"/"1" columns parse as both
	if analysis.BooleanRatio >= c.config.BooleanThreshold {
		return table.ValueTypeBoolean
	}
	if analysis.NumericRatio >= c.config.NumericThreshold {
		return table.ValueTypeNumeric
	}
	if analysis.DateRatio >= c.config.DateThreshold {
		return table.ValueTypeDate
	}
	return table.ValueTypeString
}
