package clean

import (
	"math"
	"strings"
	"unicode"

	"goprep/domain/table"
)

// standardize fixes inconsistent formats in place: free-form dates
// become canonical dates (unparseable ones become missing dates),
// currency text becomes integers, name fields are trimmed and
// title-cased, category typos are collapsed, and declared float
// columns are truncated to integer precision.
func (c *Cleaner) standardize(t *table.Table) {
	for _, col := range c.config.DateColumns {
		c.standardizeDates(t, col)
	}
	for _, col := range c.config.CurrencyColumns {
		c.standardizeCurrency(t, col)
	}
	for _, col := range c.config.NameColumns {
		standardizeNames(t, col)
	}
	for col, fixes := range c.config.CategoryFixes {
		standardizeCategories(t, col, fixes)
	}
	for _, col := range c.config.TruncateColumns {
		truncateFloats(t, col)
	}
}

func (c *Cleaner) standardizeDates(t *table.Table, col string) {
	for _, r := range t.Rows {
		v := r[col]
		if v.IsDate() {
			continue
		}
		if !v.IsString() {
			r[col] = table.NewMissingValue()
			continue
		}
		if d, ok := c.coercer.ParseDate(v.AsString()); ok {
			r[col] = table.NewDateValue(d)
		} else {
			r[col] = table.NewMissingValue()
		}
	}
}

func (c *Cleaner) standardizeCurrency(t *table.Table, col string) {
	for _, r := range t.Rows {
		v := r[col]
		if v.IsNumeric() {
			r[col] = table.NewNumericValue(math.Trunc(v.AsFloat64()))
			continue
		}
		if !v.IsString() {
			continue
		}
		if n, ok := c.coercer.ParseCurrency(v.AsString()); ok {
			r[col] = table.NewNumericValue(float64(n))
		} else {
			r[col] = table.NewMissingValue()
		}
	}
}

func standardizeNames(t *table.Table, col string) {
	for _, r := range t.Rows {
		v := r[col]
		if !v.IsString() {
			continue
		}
		r[col] = table.NewStringValue(titleCase(v.AsString()))
	}
}

// standardizeCategories trims category cells and collapses known typos
// onto their canonical spelling.
func standardizeCategories(t *table.Table, col string, fixes map[string]string) {
	for _, r := range t.Rows {
		v := r[col]
		if !v.IsString() {
			continue
		}
		s := strings.TrimSpace(v.AsString())
		if canonical, ok := fixes[s]; ok {
			s = canonical
		}
		r[col] = table.NewStringValue(s)
	}
}

func truncateFloats(t *table.Table, col string) {
	for _, r := range t.Rows {
		if v := r[col]; v.IsNumeric() {
			r[col] = table.NewNumericValue(math.Trunc(v.AsFloat64()))
		}
	}
}

// titleCase lowercases a name and capitalizes the first letter of each
// word, collapsing internal runs of whitespace.
func titleCase(s string) string {
	words := strings.Fields(strings.ToLower(s))
	for i, w := range words {
		runes := []rune(w)
		runes[0] = unicode.ToUpper(runes[0])
		words[i] = string(runes)
	}
	return strings.Join(words, " ")
}
