// Package transform applies feature scaling, log transforms and
// derived arithmetic features to a partitioned table.
package transform

import (
	"fmt"
	"math"

	"github.com/montanaflynn/stats"

	"goprep/domain/table"
	"goprep/internal"
	apperrors "goprep/internal/errors"
)

// RatioSpec derives a new column as Numerator / (Denominator + Offset).
// The fixed offset keeps the denominator away from zero.
type RatioSpec struct {
	Name        string
	Numerator   string
	Denominator string
	Offset      float64
}

// Config declares which columns each transform acts on
type Config struct {
	// ScaleColumns get min-max normalization to [0,1] over the
	// column's observed range
	ScaleColumns []string
	// LogColumns get log(1+x); x < -1 is a fatal precondition violation
	LogColumns []string
	Ratios     []RatioSpec
}

// Transformer applies the transforms in declaration order
type Transformer struct {
	config Config
	logger *internal.Logger
}

// New creates a transformer
func New(config Config, logger *internal.Logger) *Transformer {
	return &Transformer{config: config, logger: logger.WithComponent("transformer")}
}

// Transform scales, log-transforms and derives features. Scaling is
// fit on the same table it transforms; with the split already made,
// train and test are each scaled against their own observed range.
// That is a known limitation of this one-shot pipeline, not a bug to
// paper over silently.
func (tr *Transformer) Transform(t *table.Table) (*table.Table, error) {
	out := t.Clone()

	for _, col := range tr.config.ScaleColumns {
		if err := minMaxScale(out, col); err != nil {
			return nil, err
		}
	}
	for _, col := range tr.config.LogColumns {
		if err := logTransform(out, col); err != nil {
			return nil, err
		}
	}
	for _, spec := range tr.config.Ratios {
		if err := deriveRatio(out, spec); err != nil {
			return nil, err
		}
	}
	return out, nil
}

// minMaxScale maps the observed minimum to 0 and maximum to 1 exactly.
// A constant column collapses to 0.
func minMaxScale(t *table.Table, col string) error {
	vals := t.NumericColumn(col)
	min, errMin := stats.Min(vals)
	max, errMax := stats.Max(vals)
	if errMin != nil || errMax != nil {
		return apperrors.InputInvalid("scale column " + col + " has no numeric values")
	}
	span := max - min
	for _, r := range t.Rows {
		v := r[col]
		if !v.IsNumeric() {
			continue
		}
		if span == 0 {
			r[col] = table.NewNumericValue(0)
			continue
		}
		r[col] = table.NewNumericValue((v.AsFloat64() - min) / span)
	}
	return nil
}

func logTransform(t *table.Table, col string) error {
	for _, r := range t.Rows {
		v := r[col]
		if !v.IsNumeric() {
			continue
		}
		x := v.AsFloat64()
		if x < -1 {
			return apperrors.PreconditionViolation(
				fmt.Sprintf("log transform of column %s: value %g is below -1", col, x))
		}
		r[col] = table.NewNumericValue(math.Log1p(x))
	}
	return nil
}

func deriveRatio(t *table.Table, spec RatioSpec) error {
	if err := t.AddColumn(spec.Name, table.NewMissingValue()); err != nil {
		return apperrors.InputInvalid("derived column " + spec.Name + " collides with an existing column")
	}
	for _, r := range t.Rows {
		num, den := r[spec.Numerator], r[spec.Denominator]
		if !num.IsNumeric() || !den.IsNumeric() {
			continue
		}
		r[spec.Name] = table.NewNumericValue(num.AsFloat64() / (den.AsFloat64() + spec.Offset))
	}
	return nil
}
