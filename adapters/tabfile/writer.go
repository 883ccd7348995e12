package tabfile

import (
	"encoding/csv"
	"os"

	"goprep/domain/table"
	apperrors "goprep/internal/errors"
)

// Writer serializes a Table to a delimited file. Column order follows
// the table's column order; no row index column is written.
type Writer struct {
	filePath string
}

// NewWriter creates a CSV writer for the given destination
func NewWriter(filePath string) *Writer {
	return &Writer{filePath: filePath}
}

// Write persists the table. Fatal only on an unwritable destination.
func (w *Writer) Write(t *table.Table) error {
	file, err := os.Create(w.filePath)
	if err != nil {
		return apperrors.IOError("failed to create output file "+w.filePath, err)
	}
	defer file.Close()

	cw := csv.NewWriter(file)
	if err := cw.Write(t.Columns); err != nil {
		return apperrors.IOError("failed to write header", err)
	}

	record := make([]string, len(t.Columns))
	for _, row := range t.Rows {
		for i, col := range t.Columns {
			record[i] = row[col].CSVString()
		}
		if err := cw.Write(record); err != nil {
			return apperrors.IOError("failed to write row", err)
		}
	}

	cw.Flush()
	if err := cw.Error(); err != nil {
		return apperrors.IOError("failed to flush output", err)
	}
	return nil
}
