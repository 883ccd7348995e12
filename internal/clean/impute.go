package clean

import (
	"sort"

	"github.com/montanaflynn/stats"
	"gonum.org/v1/gonum/floats"

	"goprep/domain/table"
)

// impute resolves missing markers column by column. Mean and median
// columns are independent; KNN columns are imputed jointly from the
// table's complete rows; categorical columns take the most frequent
// category.
func (c *Cleaner) impute(t *table.Table) {
	for _, col := range c.config.MeanColumns {
		if v, err := stats.Mean(t.NumericColumn(col)); err == nil {
			fillMissing(t, col, table.NewNumericValue(v))
		}
	}
	for _, col := range c.config.MedianColumns {
		if v, err := stats.Median(t.NumericColumn(col)); err == nil {
			fillMissing(t, col, table.NewNumericValue(v))
		}
	}
	if len(c.config.KNNColumns) > 1 {
		c.imputeKNN(t, c.config.KNNColumns, c.config.KNNNeighbors)
	}
	for _, col := range c.config.ModeColumns {
		if mode, ok := mostFrequent(t, col); ok {
			fillMissing(t, col, table.NewStringValue(mode))
		}
	}
}

func fillMissing(t *table.Table, col string, v table.Value) {
	for _, r := range t.Rows {
		if r[col].IsMissing {
			r[col] = v
		}
	}
}

// mostFrequent returns the most frequent non-missing category of a
// column. Ties break toward the category seen first in row order.
func mostFrequent(t *table.Table, col string) (string, bool) {
	counts := make(map[string]int)
	var order []string
	for _, r := range t.Rows {
		v := r[col]
		if !v.IsString() {
			continue
		}
		s := v.AsString()
		if counts[s] == 0 {
			order = append(order, s)
		}
		counts[s]++
	}
	best, bestCount := "", 0
	for _, s := range order {
		if counts[s] > bestCount {
			best, bestCount = s, counts[s]
		}
	}
	return best, bestCount > 0
}

// imputeKNN fills a missing numeric cell with the mean of that column
// over the k most similar complete rows, where similarity is Euclidean
// distance over the selected columns the incomplete row does have.
func (c *Cleaner) imputeKNN(t *table.Table, cols []string, k int) {
	complete := completeRowIndices(t, cols)

	for i, r := range t.Rows {
		for _, col := range cols {
			if !r[col].IsMissing {
				continue
			}
			features := presentFeatures(r, cols, col)
			if len(features) == 0 || len(complete) == 0 {
				// No basis for similarity; fall back to the column mean
				if v, err := stats.Mean(t.NumericColumn(col)); err == nil {
					r[col] = table.NewNumericValue(v)
				}
				continue
			}
			r[col] = table.NewNumericValue(c.knnEstimate(t, i, col, features, complete, k))
		}
	}
}

func completeRowIndices(t *table.Table, cols []string) []int {
	var out []int
	for i, r := range t.Rows {
		complete := true
		for _, col := range cols {
			if !r[col].IsNumeric() {
				complete = false
				break
			}
		}
		if complete {
			out = append(out, i)
		}
	}
	return out
}

// presentFeatures lists the columns (other than the target) for which
// the row has a numeric value.
func presentFeatures(r table.Row, cols []string, target string) []string {
	var out []string
	for _, col := range cols {
		if col != target && r[col].IsNumeric() {
			out = append(out, col)
		}
	}
	return out
}

type neighbor struct {
	row  int
	dist float64
}

func (c *Cleaner) knnEstimate(t *table.Table, rowIdx int, target string, features []string, complete []int, k int) float64 {
	query := make([]float64, len(features))
	for j, col := range features {
		query[j] = t.Rows[rowIdx][col].AsFloat64()
	}

	neighbors := make([]neighbor, 0, len(complete))
	point := make([]float64, len(features))
	for _, ci := range complete {
		if ci == rowIdx {
			continue
		}
		for j, col := range features {
			point[j] = t.Rows[ci][col].AsFloat64()
		}
		neighbors = append(neighbors, neighbor{row: ci, dist: floats.Distance(query, point, 2)})
	}
	sort.Slice(neighbors, func(a, b int) bool { return neighbors[a].dist < neighbors[b].dist })

	if k > len(neighbors) {
		k = len(neighbors)
	}
	vals := make([]float64, 0, k)
	for _, n := range neighbors[:k] {
		vals = append(vals, t.Rows[n.row][target].AsFloat64())
	}
	est, err := stats.Mean(vals)
	if err != nil {
		return 0
	}
	return est
}
