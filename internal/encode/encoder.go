// Package encode converts categorical columns to numeric
// representations: integer codes for ordinal/nominal columns and a
// one-hot expansion for a designated nominal column.
package encode

import (
	"goprep/domain/table"
	"goprep/internal"
	apperrors "goprep/internal/errors"
)

// Config declares which columns to encode
type Config struct {
	// OrdinalColumns get integer codes assigned in first-seen order
	OrdinalColumns []string
	// OneHotColumn is expanded into one boolean column per category,
	// named <column>_<category>, with the reference category dropped
	OneHotColumn string
	// ReferenceCategory is the category dropped from the one-hot
	// expansion. Empty means the first-seen category.
	ReferenceCategory string
}

// Mapping is the injective category -> code mapping built for one
// column. Codes are assigned in first-seen row order, which is
// deterministic because rows are always visited top to bottom.
type Mapping struct {
	Column     string
	Codes      map[string]int
	Categories []string // in code order
}

// Encoder replaces categorical cells with their numeric codes
type Encoder struct {
	config Config
	logger *internal.Logger
}

// New creates an encoder
func New(config Config, logger *internal.Logger) *Encoder {
	return &Encoder{config: config, logger: logger.WithComponent("encoder")}
}

// Encode builds the category mappings from the table's post-cleaning
// distinct values and applies them to every row. It fails if any
// designated column still carries a missing marker: encoding must only
// run after imputation.
func (e *Encoder) Encode(t *table.Table) (*table.Table, []Mapping, error) {
	out := t.Clone()

	for _, col := range append(append([]string{}, e.config.OrdinalColumns...), e.oneHotColumns()...) {
		if out.MissingCount(col) > 0 {
			return nil, nil, apperrors.PreconditionViolation(
				"categorical column " + col + " has missing values; encoding requires a cleaned table")
		}
	}

	mappings := make([]Mapping, 0, len(e.config.OrdinalColumns))
	for _, col := range e.config.OrdinalColumns {
		m := buildMapping(out, col)
		applyMapping(out, m)
		e.logger.Debug("encoded %s with %d categories", col, len(m.Categories))
		mappings = append(mappings, m)
	}

	if e.config.OneHotColumn != "" {
		if err := e.oneHot(out); err != nil {
			return nil, nil, err
		}
	}
	return out, mappings, nil
}

func (e *Encoder) oneHotColumns() []string {
	if e.config.OneHotColumn == "" {
		return nil
	}
	return []string{e.config.OneHotColumn}
}

// buildMapping assigns integer codes to a column's distinct values in
// first-seen order. The mapping is injective by construction: each new
// category gets the next unused code.
func buildMapping(t *table.Table, col string) Mapping {
	m := Mapping{Column: col, Codes: make(map[string]int)}
	for _, cat := range t.DistinctStrings(col) {
		m.Codes[cat] = len(m.Categories)
		m.Categories = append(m.Categories, cat)
	}
	return m
}

func applyMapping(t *table.Table, m Mapping) {
	for _, r := range t.Rows {
		if v := r[m.Column]; v.IsString() {
			r[m.Column] = table.NewNumericValue(float64(m.Codes[v.AsString()]))
		}
	}
}

// oneHot replaces the designated column with one boolean column per
// category except the reference category, which is dropped to avoid
// collinearity.
func (e *Encoder) oneHot(t *table.Table) error {
	col := e.config.OneHotColumn
	categories := t.DistinctStrings(col)
	if len(categories) < 2 {
		return apperrors.InputInvalid("one-hot column " + col + " needs at least two categories")
	}

	reference := e.config.ReferenceCategory
	if reference == "" {
		reference = categories[0]
	}

	var newCols []string
	kept := make([]string, 0, len(categories)-1)
	for _, cat := range categories {
		if cat == reference {
			continue
		}
		kept = append(kept, cat)
		newCols = append(newCols, col+"_"+cat)
	}

	for _, r := range t.Rows {
		observed := r[col].AsString()
		for i, cat := range kept {
			r[newCols[i]] = table.NewBooleanValue(observed == cat)
		}
	}
	e.logger.Debug("one-hot expanded %s into %d columns (reference %q dropped)", col, len(newCols), reference)
	return t.ReplaceColumn(col, newCols)
}
