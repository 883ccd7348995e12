// Package tabfile reads and writes delimited tabular files. CSV input
// goes through encoding/csv, Excel input through excelize; both funnel
// into the same row coercion path.
package tabfile

import (
	"encoding/csv"
	"os"
	"path/filepath"
	"strings"

	"goprep/adapters/coercer"
	"goprep/domain/table"
	apperrors "goprep/internal/errors"

	"github.com/xuri/excelize/v2"
)

// DataReader loads a CSV or Excel file into a Table
type DataReader struct {
	filePath string
	fileType string // "xlsx" or "csv"
	coercer  *coercer.TypeCoercer
}

// NewDataReader creates a reader that handles both Excel and CSV files,
// keyed on the file extension.
func NewDataReader(filePath string, tc *coercer.TypeCoercer) *DataReader {
	ext := strings.ToLower(filepath.Ext(filePath))
	fileType := "csv"
	if ext == ".xlsx" || ext == ".xls" {
		fileType = "xlsx"
	}
	return &DataReader{filePath: filePath, fileType: fileType, coercer: tc}
}

// Read loads the file and coerces every cell according to the schema.
// Malformed cells become missing markers; only an unopenable or empty
// file is fatal.
func (r *DataReader) Read(schema table.Schema) (*table.Table, error) {
	if _, err := os.Stat(r.filePath); os.IsNotExist(err) {
		return nil, apperrors.IOError("input file not found: "+r.filePath, err)
	}

	var rows [][]string
	var err error
	switch r.fileType {
	case "xlsx":
		rows, err = r.readExcelRows()
	default:
		rows, err = r.readCSVRows()
	}
	if err != nil {
		return nil, err
	}
	if len(rows) < 2 {
		return nil, apperrors.InputInvalid("input file must have a header row and at least one data row")
	}
	return r.coerceRows(rows, schema), nil
}

func (r *DataReader) readCSVRows() ([][]string, error) {
	file, err := os.Open(r.filePath)
	if err != nil {
		return nil, apperrors.IOError("failed to open CSV file", err)
	}
	defer file.Close()

	reader := csv.NewReader(file)
	reader.FieldsPerRecord = -1 // ragged rows surface as missing cells
	rows, err := reader.ReadAll()
	if err != nil {
		return nil, apperrors.IOError("failed to read CSV file", err)
	}
	return rows, nil
}

func (r *DataReader) readExcelRows() ([][]string, error) {
	f, err := excelize.OpenFile(r.filePath)
	if err != nil {
		return nil, apperrors.IOError("failed to open Excel file", err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, apperrors.InputInvalid("Excel file has no sheets")
	}
	rows, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, apperrors.IOError("failed to read sheet "+sheets[0], err)
	}
	return rows, nil
}

// coerceRows converts raw string rows into a typed Table. Declared
// roles pick the coercion; undeclared columns get their type inferred
// from a sample of their content.
func (r *DataReader) coerceRows(rows [][]string, schema table.Schema) *table.Table {
	headers := make([]string, len(rows[0]))
	for i, h := range rows[0] {
		headers[i] = strings.TrimSpace(h)
	}
	dataRows := rows[1:]

	coerce := make([]func(string) table.Value, len(headers))
	for i, header := range headers {
		coerce[i] = r.cellCoercion(schema.Role(header), dataRows, i)
	}

	t := table.New(headers...)
	for _, record := range dataRows {
		row := make(table.Row, len(headers))
		for j, header := range headers {
			if j < len(record) {
				row[header] = coerce[j](record[j])
			} else {
				row[header] = table.NewMissingValue()
			}
		}
		t.Append(row)
	}
	return t
}

func (r *DataReader) cellCoercion(role table.Role, dataRows [][]string, col int) func(string) table.Value {
	switch {
	case role.IsNumeric():
		return r.coercer.CoerceNumeric
	case role == table.RoleBoolean:
		return r.coercer.CoerceBoolean
	case role != "":
		// Dates, currency and free text stay raw at load time; the
		// cleaner's standardization step owns their parsing.
		return r.coercer.CoerceString
	}
	return r.inferredCoercion(dataRows, col)
}

// inferredCoercion samples up to 100 raw cells to choose a coercion for
// a column with no declared role.
func (r *DataReader) inferredCoercion(dataRows [][]string, col int) func(string) table.Value {
	sampleSize := 100
	if len(dataRows) < sampleSize {
		sampleSize = len(dataRows)
	}
	sample := make([]string, 0, sampleSize)
	for i := 0; i < sampleSize; i++ {
		if col < len(dataRows[i]) {
			sample = append(sample, dataRows[i][col])
		}
	}

	analysis := r.coercer.AnalyzeTypeDistribution(sample)
	switch analysis.RecommendedType {
	case table.ValueTypeNumeric:
		return r.coercer.CoerceNumeric
	case table.ValueTypeBoolean:
		return r.coercer.CoerceBoolean
	case table.ValueTypeDate:
		return r.coercer.CoerceDate
	default:
		return r.coercer.CoerceString
	}
}
