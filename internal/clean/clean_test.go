package clean

import (
	"math"
	"testing"
	"time"

	"goprep/adapters/coercer"
	"goprep/domain/table"
	"goprep/internal"
	apperrors "goprep/internal/errors"
)

func num(v float64) table.Value { return table.NewNumericValue(v) }
func str(s string) table.Value  { return table.NewStringValue(s) }
func missing() table.Value      { return table.NewMissingValue() }

func quietLogger() *internal.Logger {
	return internal.NewLogger(internal.LogLevelError)
}

func newCleaner(cfg Config) *Cleaner {
	return New(cfg, coercer.NewTypeCoercer(coercer.DefaultCoercionConfig()), quietLogger())
}

func TestImputeMeanAndMedian(t *testing.T) {
	tbl := table.New("a", "b")
	for _, v := range []float64{10, 20, 30} {
		tbl.Append(table.Row{"a": num(v), "b": num(v)})
	}
	tbl.Append(table.Row{"a": missing(), "b": missing()})

	cfg := DefaultConfig()
	cfg.MeanColumns = []string{"a"}
	cfg.MedianColumns = []string{"b"}
	out, _, err := newCleaner(cfg).Clean(tbl)
	if err != nil {
		t.Fatal(err)
	}
	if got := out.Rows[3]["a"].AsFloat64(); got != 20 {
		t.Errorf("mean imputation = %v, want 20", got)
	}
	if got := out.Rows[3]["b"].AsFloat64(); got != 20 {
		t.Errorf("median imputation = %v, want 20", got)
	}
}

func TestImputeModeFirstEncounteredTieBreak(t *testing.T) {
	tbl := table.New("dept")
	// Finance and IT both appear twice; Finance is seen first
	for _, s := range []string{"Finance", "IT", "Finance", "IT"} {
		tbl.Append(table.Row{"dept": str(s)})
	}
	tbl.Append(table.Row{"dept": missing()})

	cfg := DefaultConfig()
	cfg.ModeColumns = []string{"dept"}
	out, _, err := newCleaner(cfg).Clean(tbl)
	if err != nil {
		t.Fatal(err)
	}
	if got := out.Rows[4]["dept"].AsString(); got != "Finance" {
		t.Errorf("mode imputation = %q, want first-encountered %q", got, "Finance")
	}
}

func TestImputeKNNUsesNearestCompleteRows(t *testing.T) {
	tbl := table.New("x", "y")
	tbl.Append(table.Row{"x": num(1), "y": num(10)})
	tbl.Append(table.Row{"x": num(2), "y": num(20)})
	tbl.Append(table.Row{"x": num(3), "y": num(30)})
	tbl.Append(table.Row{"x": num(100), "y": num(1000)})
	// y missing; x=2 sits between the first three rows
	tbl.Append(table.Row{"x": num(2), "y": missing()})

	cfg := DefaultConfig()
	cfg.KNNColumns = []string{"x", "y"}
	cfg.KNNNeighbors = 3
	out, _, err := newCleaner(cfg).Clean(tbl)
	if err != nil {
		t.Fatal(err)
	}
	// the 3 nearest complete rows by x are (1,10),(2,20),(3,30)
	if got := out.Rows[4]["y"].AsFloat64(); got != 20 {
		t.Errorf("knn imputation = %v, want 20", got)
	}
}

func TestDeduplicateKeepsFirstAndIsIdempotent(t *testing.T) {
	tbl := table.New("a", "b")
	tbl.Append(table.Row{"a": num(1), "b": str("x")})
	tbl.Append(table.Row{"a": num(1), "b": str("x")})
	tbl.Append(table.Row{"a": num(2), "b": str("y")})

	once, removed := Deduplicate(tbl)
	if removed != 1 || once.NumRows() != 2 {
		t.Fatalf("first pass removed %d rows, kept %d", removed, once.NumRows())
	}
	twice, removed := Deduplicate(once)
	if removed != 0 || twice.NumRows() != once.NumRows() {
		t.Errorf("deduplication is not idempotent: second pass removed %d", removed)
	}
}

func TestDeduplicateDistinguishesMissingFromZero(t *testing.T) {
	tbl := table.New("a")
	tbl.Append(table.Row{"a": num(0)})
	tbl.Append(table.Row{"a": missing()})
	out, removed := Deduplicate(tbl)
	if removed != 0 || out.NumRows() != 2 {
		t.Error("a missing cell must not collide with zero")
	}
}

func agesTable(vals ...float64) *table.Table {
	tbl := table.New("age")
	for _, v := range vals {
		tbl.Append(table.Row{"age": num(v)})
	}
	return tbl
}

func TestFilterZScoreDropsExtremeRows(t *testing.T) {
	vals := make([]float64, 0, 30)
	for i := 0; i < 29; i++ {
		vals = append(vals, 25+float64(i%15))
	}
	vals = append(vals, 150) // the defect
	tbl := agesTable(vals...)

	out, removed := FilterZScore(tbl, "age", 3)
	if removed != 1 {
		t.Fatalf("removed = %d, want 1", removed)
	}
	if out.NumRows() >= tbl.NumRows() && tbl.NumRows() != out.NumRows()+removed {
		t.Error("filter must be monotonic")
	}
	// no retained row violates the threshold under the retained sample's
	// original statistics
	for _, r := range out.Rows {
		if r["age"].AsFloat64() == 150 {
			t.Error("outlier survived the filter")
		}
	}
}

func TestFilterIQRFences(t *testing.T) {
	vals := []float64{50, 51, 52, 53, 54, 55, 56, 57, 58, 59, 500}
	tbl := agesTable(vals...)
	out, removed := FilterIQR(tbl, "age", 1.5)
	if removed != 1 {
		t.Fatalf("removed = %d, want 1", removed)
	}
	for _, r := range out.Rows {
		if r["age"].AsFloat64() == 500 {
			t.Error("IQR outlier survived the filter")
		}
	}
}

func TestFiltersAreSequential(t *testing.T) {
	// z-score filter first, then IQR on the already-filtered table
	tbl := table.New("a", "b")
	for i := 0; i < 20; i++ {
		tbl.Append(table.Row{"a": num(30 + float64(i%5)), "b": num(100 + float64(i))})
	}
	tbl.Append(table.Row{"a": num(400), "b": num(100)})

	cfg := DefaultConfig()
	cfg.ZScoreColumn = "a"
	cfg.IQRColumn = "b"
	out, stats, err := newCleaner(cfg).Clean(tbl)
	if err != nil {
		t.Fatal(err)
	}
	if stats.ZScoreRemoved != 1 {
		t.Errorf("ZScoreRemoved = %d, want 1", stats.ZScoreRemoved)
	}
	if out.NumRows() != tbl.NumRows()-stats.ZScoreRemoved-stats.IQRRemoved {
		t.Error("row accounting is inconsistent")
	}
}

func TestStandardizeFormats(t *testing.T) {
	tbl := table.New("Name", "Join_Date", "Bonus", "Score")
	tbl.Append(table.Row{
		"Name":      str(" alice  smith "),
		"Join_Date": str("01/15/2018"),
		"Bonus":     str("$4500"),
		"Score":     num(7.9),
	})
	tbl.Append(table.Row{
		"Name":      str("BOB JONES"),
		"Join_Date": str("garbage"),
		"Bonus":     str("???"),
		"Score":     num(3.2),
	})

	cfg := DefaultConfig()
	cfg.NameColumns = []string{"Name"}
	cfg.DateColumns = []string{"Join_Date"}
	cfg.CurrencyColumns = []string{"Bonus"}
	cfg.TruncateColumns = []string{"Score"}
	out, _, err := newCleaner(cfg).Clean(tbl)
	if err != nil {
		t.Fatal(err)
	}

	if got := out.Rows[0]["Name"].AsString(); got != "Alice Smith" {
		t.Errorf("Name = %q, want %q", got, "Alice Smith")
	}
	want := time.Date(2018, 1, 15, 0, 0, 0, 0, time.UTC)
	if got := out.Rows[0]["Join_Date"]; !got.IsDate() || !got.AsDate().Equal(want) {
		t.Errorf("Join_Date = %v, want %v", got, want)
	}
	if got := out.Rows[1]["Join_Date"]; !got.IsMissing {
		t.Errorf("unparseable date = %v, want missing", got)
	}
	if got := out.Rows[0]["Bonus"]; !got.IsNumeric() || got.AsFloat64() != 4500 {
		t.Errorf("Bonus = %v, want 4500", got)
	}
	if got := out.Rows[1]["Bonus"]; !got.IsMissing {
		t.Errorf("unparseable currency = %v, want missing", got)
	}
	if got := out.Rows[0]["Score"].AsFloat64(); got != math.Trunc(7.9) {
		t.Errorf("Score = %v, want truncated 7", got)
	}
}

func TestCategoryCollapse(t *testing.T) {
	tbl := table.New("Department")
	for _, s := range []string{"IT", "IT ", "Finanace", "Finance"} {
		tbl.Append(table.Row{"Department": str(s)})
	}

	cfg := DefaultConfig()
	cfg.CategoryFixes = map[string]map[string]string{
		"Department": {"Finanace": "Finance"},
	}
	out, _, err := newCleaner(cfg).Clean(tbl)
	if err != nil {
		t.Fatal(err)
	}
	got := out.DistinctStrings("Department")
	if len(got) != 2 || got[0] != "IT" || got[1] != "Finance" {
		t.Errorf("categories = %v, want [IT Finance]", got)
	}
}

func TestRequiredColumnInvariant(t *testing.T) {
	tbl := table.New("Salary", "Note")
	tbl.Append(table.Row{"Salary": num(1000), "Note": str("ok")})
	tbl.Append(table.Row{"Salary": missing(), "Note": missing()})

	cfg := DefaultConfig()
	cfg.MeanColumns = []string{"Salary"}
	cfg.RequiredColumns = []string{"Salary"}
	out, _, err := newCleaner(cfg).Clean(tbl)
	if err != nil {
		t.Fatal(err)
	}
	if out.MissingCount("Salary") != 0 {
		t.Error("required column still has missing values after cleaning")
	}

	// An uncovered required column must fail loudly, not pass silently
	cfg2 := DefaultConfig()
	cfg2.RequiredColumns = []string{"Note"}
	_, _, err = newCleaner(cfg2).Clean(tbl)
	if err == nil {
		t.Fatal("expected precondition violation")
	}
	if apperrors.GetCode(err) != apperrors.CodePrecondition {
		t.Errorf("code = %s, want %s", apperrors.GetCode(err), apperrors.CodePrecondition)
	}
}

func TestAliceScenario(t *testing.T) {
	// end to end through the cleaner: outlier row dropped, salary
	// imputed, date parsed, bonus integerized, name tidied
	tbl := table.New("Name", "Age", "Salary", "Join_Date", "Bonus")
	addRow := func(name string, age float64, salary table.Value, date, bonus string) {
		tbl.Append(table.Row{
			"Name": str(name), "Age": num(age), "Salary": salary,
			"Join_Date": str(date), "Bonus": str(bonus),
		})
	}
	addRow(" Alice ", 150, missing(), "01/15/2018", "$4500")
	for i := 0; i < 29; i++ {
		addRow("bob", 25+float64(i%12), num(50000+float64(i)*100), "2019-03-01", "$1000")
	}

	cfg := DefaultConfig()
	cfg.MeanColumns = []string{"Salary"}
	cfg.ZScoreColumn = "Age"
	cfg.DateColumns = []string{"Join_Date"}
	cfg.CurrencyColumns = []string{"Bonus"}
	cfg.NameColumns = []string{"Name"}
	cfg.RequiredColumns = []string{"Age", "Salary", "Bonus"}
	out, stats, err := newCleaner(cfg).Clean(tbl)
	if err != nil {
		t.Fatal(err)
	}

	// Alice's age of 150 is beyond 3 standard deviations: row dropped
	for _, r := range out.Rows {
		if r["Age"].AsFloat64() == 150 {
			t.Error("age outlier row should have been dropped")
		}
	}
	if stats.ZScoreRemoved != 1 {
		t.Errorf("ZScoreRemoved = %d, want 1", stats.ZScoreRemoved)
	}
	// Salary was imputed before the outlier filter ran
	if stats.MissingAfter["Salary"] != 0 {
		t.Error("salary still missing after cleaning")
	}
	// surviving rows have parsed dates and integer bonuses
	for _, r := range out.Rows {
		if !r["Join_Date"].IsDate() {
			t.Fatalf("Join_Date = %v, want date", r["Join_Date"])
		}
		if b := r["Bonus"]; !b.IsNumeric() || b.AsFloat64() != math.Trunc(b.AsFloat64()) {
			t.Fatalf("Bonus = %v, want integer", b)
		}
		if r["Name"].AsString() == " Alice " {
			t.Error("name was not tidied")
		}
	}
}
