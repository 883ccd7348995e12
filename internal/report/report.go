// Package report renders the human-readable run summary: missing-value
// counts before and after cleaning, rows dropped per filter, and the
// category-to-code tables for each encoded column. The report is
// informational only; nothing downstream consumes it.
package report

import (
	"fmt"
	"io"
	"sort"
	"text/tabwriter"

	"goprep/domain/core"
	"goprep/internal/balance"
	"goprep/internal/clean"
	"goprep/internal/encode"
)

// Report collects the pipeline's auxiliary outputs for one run
type Report struct {
	RunID     core.RunID
	InputPath string

	RowsLoaded int
	Columns    []string // loaded column order, for stable rendering

	CleanStats *clean.Stats
	Mappings   []encode.Mapping
	Balance    *balance.Result

	TrainRows int
	TestRows  int
}

// New creates a report stamped with a fresh run ID
func New(inputPath string) *Report {
	return &Report{RunID: core.NewRunID(), InputPath: inputPath}
}

// Render writes the report to w
func (r *Report) Render(w io.Writer) {
	fmt.Fprintf(w, "run %s\ninput %s (%d rows)\n\n", r.RunID, r.InputPath, r.RowsLoaded)

	if r.CleanStats != nil {
		r.renderMissing(w)
		fmt.Fprintf(w, "duplicates removed: %d\n", r.CleanStats.DuplicatesRemoved)
		fmt.Fprintf(w, "z-score outliers removed: %d\n", r.CleanStats.ZScoreRemoved)
		fmt.Fprintf(w, "IQR outliers removed: %d\n\n", r.CleanStats.IQRRemoved)
	}

	for _, m := range r.Mappings {
		fmt.Fprintf(w, "category codes for %s:\n", m.Column)
		tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
		for code, cat := range m.Categories {
			fmt.Fprintf(tw, "  %s\t%d\n", cat, code)
		}
		tw.Flush()
	}

	if r.Balance != nil {
		fmt.Fprintf(w, "\nrows swept before split: %d\n", r.Balance.SweptRows)
		fmt.Fprintf(w, "synthetic minority rows: %d\n", r.Balance.SyntheticRows)
		renderCounts(w, "class counts before split", r.Balance.ClassCountsBefore)
		renderCounts(w, "train class counts after balancing", r.Balance.TrainClassCounts)
		renderCounts(w, "test class counts", r.Balance.TestClassCounts)
	}

	fmt.Fprintf(w, "\ntrain rows: %d\ntest rows: %d\n", r.TrainRows, r.TestRows)
}

func (r *Report) renderMissing(w io.Writer) {
	fmt.Fprintln(w, "missing values per column (before -> after cleaning):")
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	for _, col := range r.Columns {
		before := r.CleanStats.MissingBefore[col]
		after := r.CleanStats.MissingAfter[col]
		fmt.Fprintf(tw, "  %s\t%d\t->\t%d\n", col, before, after)
	}
	tw.Flush()
	fmt.Fprintln(w)
}

func renderCounts(w io.Writer, title string, counts map[string]int) {
	classes := make([]string, 0, len(counts))
	for class := range counts {
		classes = append(classes, class)
	}
	sort.Strings(classes)
	fmt.Fprintf(w, "%s:\n", title)
	for _, class := range classes {
		fmt.Fprintf(w, "  %s: %d\n", class, counts[class])
	}
}
