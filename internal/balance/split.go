package balance

import (
	"fmt"
	"math"
	"math/rand"

	"goprep/domain/table"
	apperrors "goprep/internal/errors"
)

// StratifiedSplit partitions the table into disjoint train and test
// subsets covering all rows, preserving the target column's class
// proportions within rounding in both partitions. The seed makes the
// split reproducible.
func StratifiedSplit(t *table.Table, target string, testRatio float64, seed int64) (*table.Table, *table.Table, error) {
	if testRatio <= 0 || testRatio >= 1 {
		return nil, nil, apperrors.ConfigInvalid(fmt.Sprintf("test ratio must be in (0,1), got %g", testRatio))
	}

	classes, byClass := groupByClass(t, target)
	for _, class := range classes {
		if len(byClass[class]) < 2 {
			return nil, nil, apperrors.PreconditionViolation(
				fmt.Sprintf("stratified split requires at least 2 rows per class; class %q has %d", class, len(byClass[class])))
		}
	}

	rng := rand.New(rand.NewSource(seed))
	var trainIdx, testIdx []int
	for _, class := range classes {
		indices := append([]int(nil), byClass[class]...)
		rng.Shuffle(len(indices), func(i, j int) {
			indices[i], indices[j] = indices[j], indices[i]
		})
		nTest := int(math.Round(float64(len(indices)) * testRatio))
		if nTest >= len(indices) {
			nTest = len(indices) - 1
		}
		testIdx = append(testIdx, indices[:nTest]...)
		trainIdx = append(trainIdx, indices[nTest:]...)
	}

	return t.Select(trainIdx), t.Select(testIdx), nil
}

// groupByClass buckets row indices by the target cell's serialized
// value, returning classes in first-seen order for determinism.
func groupByClass(t *table.Table, target string) ([]string, map[string][]int) {
	byClass := make(map[string][]int)
	var classes []string
	for i, r := range t.Rows {
		class := r[target].CSVString()
		if _, ok := byClass[class]; !ok {
			classes = append(classes, class)
		}
		byClass[class] = append(byClass[class], i)
	}
	return classes, byClass
}

// ClassCounts returns the per-class row counts of the target column
func ClassCounts(t *table.Table, target string) map[string]int {
	out := make(map[string]int)
	for _, r := range t.Rows {
		out[r[target].CSVString()]++
	}
	return out
}
