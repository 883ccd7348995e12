package balance

import (
	"math/rand"
	"sort"

	"gonum.org/v1/gonum/floats"

	"goprep/domain/table"
)

// Oversample synthesizes minority-class rows until every class matches
// the majority class count. A synthetic row interpolates the feature
// vector between a random minority row and one of its k nearest
// same-class neighbours at a uniform random point along the line; the
// synthetic row keeps the class label. Only the given table is grown;
// callers apply this to the training partition exclusively.
func Oversample(t *table.Table, target string, featureCols []string, k int, seed int64) (*table.Table, int) {
	if k <= 0 {
		k = 5
	}
	out := t.Clone()
	classes, byClass := groupByClass(out, target)

	majority := 0
	for _, class := range classes {
		if n := len(byClass[class]); n > majority {
			majority = n
		}
	}

	rng := rand.New(rand.NewSource(seed))
	synthesized := 0
	for _, class := range classes {
		indices := byClass[class]
		vectors := make([][]float64, len(indices))
		for i, idx := range indices {
			vectors[i] = featureVector(out.Rows[idx], featureCols)
		}
		for deficit := majority - len(indices); deficit > 0; deficit-- {
			base := rng.Intn(len(indices))
			row := synthesizeRow(out, indices, vectors, base, featureCols, k, rng)
			out.Append(row)
			synthesized++
		}
	}
	return out, synthesized
}

func featureVector(r table.Row, cols []string) []float64 {
	vec := make([]float64, len(cols))
	for i, col := range cols {
		v := r[col]
		switch {
		case v.IsNumeric():
			vec[i] = v.AsFloat64()
		case v.IsBoolean() && v.AsBool():
			vec[i] = 1
		}
	}
	return vec
}

// synthesizeRow interpolates between the base row and one of its k
// nearest same-class neighbours. A class of one degenerates to copying
// the lone row.
func synthesizeRow(t *table.Table, indices []int, vectors [][]float64, base int, featureCols []string, k int, rng *rand.Rand) table.Row {
	row := t.Rows[indices[base]].Clone()
	if len(indices) < 2 {
		return row
	}

	type neighbor struct {
		pos  int
		dist float64
	}
	neighbors := make([]neighbor, 0, len(indices)-1)
	for i := range indices {
		if i == base {
			continue
		}
		neighbors = append(neighbors, neighbor{pos: i, dist: floats.Distance(vectors[base], vectors[i], 2)})
	}
	sort.Slice(neighbors, func(a, b int) bool { return neighbors[a].dist < neighbors[b].dist })
	if k > len(neighbors) {
		k = len(neighbors)
	}
	picked := neighbors[rng.Intn(k)].pos

	gap := rng.Float64()
	for i, col := range featureCols {
		x := vectors[base][i] + gap*(vectors[picked][i]-vectors[base][i])
		if row[col].IsBoolean() {
			row[col] = table.NewBooleanValue(x >= 0.5)
		} else {
			row[col] = table.NewNumericValue(x)
		}
	}
	return row
}
