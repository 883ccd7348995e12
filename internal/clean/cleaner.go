// Package clean repairs data-quality defects in a loaded table:
// missing values, duplicate rows, statistical outliers and
// inconsistent text/date/currency formats. Steps run in a fixed order
// and no step reintroduces a missing marker into a column an earlier
// step already cleaned.
package clean

import (
	"goprep/adapters/coercer"
	"goprep/domain/table"
	"goprep/internal"
	apperrors "goprep/internal/errors"
)

// Config declares which columns each cleaning operation acts on
type Config struct {
	MeanColumns   []string // numeric, impute with column mean
	MedianColumns []string // numeric, impute with column median
	KNNColumns    []string // numeric, impute jointly from nearest complete rows
	KNNNeighbors  int
	ModeColumns   []string // categorical, impute with most frequent category

	ZScoreColumn    string // drop rows with |z| above the threshold
	ZScoreThreshold float64
	IQRColumn       string // drop rows outside the IQR fences
	IQRMultiplier   float64

	DateColumns     []string // parse free-form dates to canonical dates
	CurrencyColumns []string // strip symbols, parse as integer
	NameColumns     []string // trim and title-case
	TruncateColumns []string // truncate floats to integer precision

	// CategoryFixes maps column -> observed typo -> canonical category.
	// Category cells are also trimmed before the fix lookup.
	CategoryFixes map[string]map[string]string

	// RequiredColumns must be missing-free once cleaning completes
	RequiredColumns []string
}

// DefaultConfig returns the standard thresholds
func DefaultConfig() Config {
	return Config{
		KNNNeighbors:    3,
		ZScoreThreshold: 3.0,
		IQRMultiplier:   1.5,
	}
}

// Stats reports what cleaning did, for the run report
type Stats struct {
	MissingBefore     map[string]int
	MissingAfter      map[string]int
	DuplicatesRemoved int
	ZScoreRemoved     int
	IQRRemoved        int
}

// Cleaner applies the cleaning operations in fixed order
type Cleaner struct {
	config  Config
	coercer *coercer.TypeCoercer
	logger  *internal.Logger
}

// New creates a cleaner
func New(config Config, tc *coercer.TypeCoercer, logger *internal.Logger) *Cleaner {
	if config.KNNNeighbors <= 0 {
		config.KNNNeighbors = 3
	}
	if config.ZScoreThreshold <= 0 {
		config.ZScoreThreshold = 3.0
	}
	if config.IQRMultiplier <= 0 {
		config.IQRMultiplier = 1.5
	}
	return &Cleaner{config: config, coercer: tc, logger: logger.WithComponent("cleaner")}
}

// Clean runs imputation, deduplication, outlier removal and format
// standardization, in that order. Each operation sees the table as the
// previous one left it.
func (c *Cleaner) Clean(t *table.Table) (*table.Table, *Stats, error) {
	stats := &Stats{MissingBefore: t.MissingCounts()}
	out := t.Clone()

	c.impute(out)

	var removed int
	out, removed = Deduplicate(out)
	stats.DuplicatesRemoved = removed
	c.logger.Info("deduplication removed %d rows", removed)

	if c.config.ZScoreColumn != "" {
		out, removed = FilterZScore(out, c.config.ZScoreColumn, c.config.ZScoreThreshold)
		stats.ZScoreRemoved = removed
		c.logger.Info("z-score filter on %s removed %d rows", c.config.ZScoreColumn, removed)
	}
	if c.config.IQRColumn != "" {
		out, removed = FilterIQR(out, c.config.IQRColumn, c.config.IQRMultiplier)
		stats.IQRRemoved = removed
		c.logger.Info("IQR filter on %s removed %d rows", c.config.IQRColumn, removed)
	}

	c.standardize(out)

	stats.MissingAfter = out.MissingCounts()
	if err := c.checkRequired(out); err != nil {
		return nil, nil, err
	}
	return out, stats, nil
}

// checkRequired enforces that no declared-required column still holds a
// missing marker after cleaning.
func (c *Cleaner) checkRequired(t *table.Table) error {
	for _, col := range c.config.RequiredColumns {
		if n := t.MissingCount(col); n > 0 {
			return apperrors.PreconditionViolation(
				"required column " + col + " still has missing values after cleaning")
		}
	}
	return nil
}
