package encode

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"goprep/domain/table"
	"goprep/internal"
	apperrors "goprep/internal/errors"
)

func newEncoder(cfg Config) *Encoder {
	return New(cfg, internal.NewLogger(internal.LogLevelError))
}

func deptTable(depts ...string) *table.Table {
	tbl := table.New("Department")
	for _, d := range depts {
		tbl.Append(table.Row{"Department": table.NewStringValue(d)})
	}
	return tbl
}

func TestOrdinalCodesFirstSeenAndInjective(t *testing.T) {
	tbl := deptTable("IT", "Finance", "IT", "HR", "Finance")

	out, mappings, err := newEncoder(Config{OrdinalColumns: []string{"Department"}}).Encode(tbl)
	require.NoError(t, err)
	require.Len(t, mappings, 1)

	m := mappings[0]
	assert.Equal(t, []string{"IT", "Finance", "HR"}, m.Categories)
	assert.Equal(t, map[string]int{"IT": 0, "Finance": 1, "HR": 2}, m.Codes)

	// distinct categories got distinct codes
	seen := make(map[int]bool)
	for _, code := range m.Codes {
		assert.False(t, seen[code], "code %d assigned twice", code)
		seen[code] = true
	}

	// every cell now carries its category's code
	want := []float64{0, 1, 0, 2, 1}
	for i, r := range out.Rows {
		require.True(t, r["Department"].IsNumeric())
		assert.Equal(t, want[i], r["Department"].AsFloat64())
	}
}

func TestEncodeDoesNotMutateInput(t *testing.T) {
	tbl := deptTable("IT", "Finance")
	_, _, err := newEncoder(Config{OrdinalColumns: []string{"Department"}}).Encode(tbl)
	require.NoError(t, err)
	assert.True(t, tbl.Rows[0]["Department"].IsString(), "input table was mutated")
}

func TestOneHotDropsReferenceAndKeepsPosition(t *testing.T) {
	tbl := table.New("id", "Gender", "salary")
	for _, g := range []string{"Male", "Female", "Other", "Female"} {
		tbl.Append(table.Row{
			"id":     table.NewStringValue("x"),
			"Gender": table.NewStringValue(g),
			"salary": table.NewNumericValue(1),
		})
	}

	out, _, err := newEncoder(Config{OneHotColumn: "Gender"}).Encode(tbl)
	require.NoError(t, err)

	// first-seen category Male is the reference and gets no column
	assert.Equal(t, []string{"id", "Gender_Female", "Gender_Other", "salary"}, out.Columns)

	assert.False(t, out.Rows[0]["Gender_Female"].AsBool())
	assert.False(t, out.Rows[0]["Gender_Other"].AsBool())
	assert.True(t, out.Rows[1]["Gender_Female"].AsBool())
	assert.True(t, out.Rows[2]["Gender_Other"].AsBool())
}

func TestOneHotExplicitReference(t *testing.T) {
	tbl := deptTable("IT", "Finance", "HR")
	out, _, err := newEncoder(Config{OneHotColumn: "Department", ReferenceCategory: "HR"}).Encode(tbl)
	require.NoError(t, err)
	assert.Equal(t, []string{"Department_IT", "Department_Finance"}, out.Columns)
}

func TestOneHotRejectsSingleCategory(t *testing.T) {
	tbl := deptTable("IT", "IT")
	_, _, err := newEncoder(Config{OneHotColumn: "Department"}).Encode(tbl)
	require.Error(t, err)
	assert.Equal(t, apperrors.CodeInputInvalid, apperrors.GetCode(err))
}

func TestEncodeRejectsMissingValues(t *testing.T) {
	tbl := deptTable("IT")
	tbl.Append(table.Row{"Department": table.NewMissingValue()})

	_, _, err := newEncoder(Config{OrdinalColumns: []string{"Department"}}).Encode(tbl)
	require.Error(t, err)
	assert.Equal(t, apperrors.CodePrecondition, apperrors.GetCode(err))

	_, _, err = newEncoder(Config{OneHotColumn: "Department"}).Encode(tbl)
	require.Error(t, err)
	assert.Equal(t, apperrors.CodePrecondition, apperrors.GetCode(err))
}
