// Package balance prepares the cleaned, encoded table for modeling: a
// defensive missing-value sweep, a derived elapsed-years column, a drop
// of non-modeling columns, a seeded stratified train/test split, and
// minority-class oversampling on the training partition only.
package balance

import (
	"time"

	"goprep/domain/table"
	"goprep/internal"
	apperrors "goprep/internal/errors"
)

// Config declares the balancing behavior
type Config struct {
	TargetColumn string
	TestRatio    float64 // default 0.2
	Seed         int64

	// DurationColumn, when set, derives elapsed years from a cleaned
	// date column to the processing timestamp
	DurationColumn string
	DurationFrom   string
	// Now is the processing timestamp; zero means time.Now()
	Now time.Time

	// DropColumns lists identifier and free-text columns not used for
	// modeling
	DropColumns []string

	SMOTENeighbors int
}

// DefaultConfig returns the standard split parameters
func DefaultConfig() Config {
	return Config{TestRatio: 0.2, SMOTENeighbors: 5}
}

// Result carries both partitions and the bookkeeping for the report
type Result struct {
	Train *table.Table
	Test  *table.Table

	SweptRows         int
	SyntheticRows     int
	ClassCountsBefore map[string]int
	TrainClassCounts  map[string]int
	TestClassCounts   map[string]int
}

// Balancer runs the balancing sequence
type Balancer struct {
	config Config
	logger *internal.Logger
}

// New creates a balancer
func New(config Config, logger *internal.Logger) *Balancer {
	if config.TestRatio <= 0 {
		config.TestRatio = 0.2
	}
	if config.SMOTENeighbors <= 0 {
		config.SMOTENeighbors = 5
	}
	if config.Now.IsZero() {
		config.Now = time.Now()
	}
	return &Balancer{config: config, logger: logger.WithComponent("balancer")}
}

// Balance runs sweep, derivation, column drop, stratified split and
// oversampling. The test partition is never modified after the split.
func (b *Balancer) Balance(t *table.Table) (*Result, error) {
	out := t.Clone()

	swept := sweepMissing(out)
	res := &Result{SweptRows: out.NumRows() - swept.NumRows()}
	if res.SweptRows > 0 {
		b.logger.Warn("defensive sweep dropped %d rows with residual missing values", res.SweptRows)
	}
	out = swept

	if b.config.DurationColumn != "" {
		if err := b.deriveDuration(out); err != nil {
			return nil, err
		}
	}
	if len(b.config.DropColumns) > 0 {
		out.DropColumns(b.config.DropColumns...)
	}

	res.ClassCountsBefore = ClassCounts(out, b.config.TargetColumn)

	train, test, err := StratifiedSplit(out, b.config.TargetColumn, b.config.TestRatio, b.config.Seed)
	if err != nil {
		return nil, err
	}

	featureCols := numericFeatures(train, b.config.TargetColumn)
	balanced, synthesized := Oversample(train, b.config.TargetColumn, featureCols, b.config.SMOTENeighbors, b.config.Seed)
	b.logger.Info("oversampling synthesized %d minority rows", synthesized)

	res.Train = balanced
	res.Test = test
	res.SyntheticRows = synthesized
	res.TrainClassCounts = ClassCounts(balanced, b.config.TargetColumn)
	res.TestClassCounts = ClassCounts(test, b.config.TargetColumn)
	return res, nil
}

// sweepMissing drops any row still containing a missing value in any
// column. Counts feed the report; nothing is dropped silently.
func sweepMissing(t *table.Table) *table.Table {
	return t.Filter(func(r table.Row) bool {
		for _, col := range t.Columns {
			if r[col].IsMissing {
				return false
			}
		}
		return true
	})
}

// deriveDuration adds the elapsed time from the source date column to
// the processing timestamp, in years as a floating value.
func (b *Balancer) deriveDuration(t *table.Table) error {
	if err := t.AddColumn(b.config.DurationColumn, table.NewMissingValue()); err != nil {
		return apperrors.ConfigInvalid(
			"duration column " + b.config.DurationColumn + " collides with an existing column")
	}
	for _, r := range t.Rows {
		v := r[b.config.DurationFrom]
		if !v.IsDate() {
			continue
		}
		years := b.config.Now.Sub(v.AsDate()).Hours() / 24 / 365.25
		r[b.config.DurationColumn] = table.NewNumericValue(years)
	}
	return nil
}

// numericFeatures lists the columns SMOTE interpolates over: every
// numeric or boolean column except the target.
func numericFeatures(t *table.Table, target string) []string {
	var out []string
	for _, col := range t.Columns {
		if col == target || t.NumRows() == 0 {
			continue
		}
		if v := t.Rows[0][col]; v.IsNumeric() || v.IsBoolean() {
			out = append(out, col)
		}
	}
	return out
}
