package clean

import (
	"math"

	"github.com/montanaflynn/stats"

	"goprep/domain/table"
)

// FilterZScore drops rows whose absolute standardized deviation in the
// named column exceeds the threshold. Sample mean and sample standard
// deviation are computed from the column as it exists when the filter
// runs.
func FilterZScore(t *table.Table, col string, threshold float64) (*table.Table, int) {
	vals := t.NumericColumn(col)
	mean, errM := stats.Mean(vals)
	sd, errS := stats.StandardDeviationSample(vals)
	if errM != nil || errS != nil || sd == 0 {
		return t, 0
	}

	out := t.Filter(func(r table.Row) bool {
		v := r[col]
		if !v.IsNumeric() {
			return true
		}
		return math.Abs((v.AsFloat64()-mean)/sd) <= threshold
	})
	return out, t.NumRows() - out.NumRows()
}

// FilterIQR drops rows outside [Q1 - mult*IQR, Q3 + mult*IQR] for the
// named column.
func FilterIQR(t *table.Table, col string, mult float64) (*table.Table, int) {
	vals := t.NumericColumn(col)
	q1, err1 := stats.Percentile(vals, 25)
	q3, err3 := stats.Percentile(vals, 75)
	if err1 != nil || err3 != nil {
		return t, 0
	}
	iqr := q3 - q1
	lower, upper := q1-mult*iqr, q3+mult*iqr

	out := t.Filter(func(r table.Row) bool {
		v := r[col]
		if !v.IsNumeric() {
			return true
		}
		x := v.AsFloat64()
		return x >= lower && x <= upper
	})
	return out, t.NumRows() - out.NumRows()
}
