// Package testkit generates deterministic synthetic employee datasets
// seeded with the data-quality defects the pipeline exists to repair:
// missing values, age and salary outliers, currency-formatted numbers,
// mixed date formats, padded and misspelled categories, and duplicate
// rows.
package testkit

import (
	"encoding/csv"
	"fmt"
	"math/rand"
	"os"
	"time"
)

// EmployeeGeneratorConfig configures the defective dataset generator
type EmployeeGeneratorConfig struct {
	RowCount       int
	MissingRate    float64 // per-cell chance of a missing salary/score
	OutlierRate    float64 // chance of an implausible age
	DuplicateRate  float64 // chance a row is emitted twice
	MinorityShare  float64 // share of rows in the minority target class
	Seed           int64
	StartDate      time.Time
	EndDate        time.Time
}

// DefaultEmployeeConfig returns sensible defaults
func DefaultEmployeeConfig() EmployeeGeneratorConfig {
	return EmployeeGeneratorConfig{
		RowCount:      200,
		MissingRate:   0.08,
		OutlierRate:   0.03,
		DuplicateRate: 0.04,
		MinorityShare: 0.25,
		Seed:          42,
		StartDate:     time.Date(2015, 1, 1, 0, 0, 0, 0, time.UTC),
		EndDate:       time.Date(2023, 12, 31, 0, 0, 0, 0, time.UTC),
	}
}

// EmployeeGenerator emits defective employee rows
type EmployeeGenerator struct {
	config EmployeeGeneratorConfig
	rng    *rand.Rand
}

// NewEmployeeGenerator creates a generator with deterministic seeding
func NewEmployeeGenerator(config EmployeeGeneratorConfig) *EmployeeGenerator {
	return &EmployeeGenerator{config: config, rng: rand.New(rand.NewSource(config.Seed))}
}

// Columns is the header row of generated files
func (g *EmployeeGenerator) Columns() []string {
	return []string{"Employee_ID", "Name", "Age", "Salary", "Bonus", "Join_Date", "Department", "Gender", "Performance_Score", "Left_Company"}
}

var firstNames = []string{"alice", "bob", "carol", "dave", "erin", "frank", "grace", "henry", "irene", "jack"}
var lastNames = []string{"smith", "jones", "chen", "patel", "garcia", "kim", "brown", "davis", "lopez", "wilson"}

// departments includes the padded and misspelled variants the cleaner
// must collapse
var departments = []string{"IT", "IT ", "Finance", "Finanace", "HR", "Sales"}

var dateLayouts = []string{"2006-01-02", "01/02/2006", "Jan 2, 2006"}

// GenerateRows produces the defective rows, header excluded
func (g *EmployeeGenerator) GenerateRows() [][]string {
	rows := make([][]string, 0, g.config.RowCount)
	for i := 0; i < g.config.RowCount; i++ {
		row := g.generateRow(i)
		rows = append(rows, row)
		if g.rng.Float64() < g.config.DuplicateRate {
			dup := make([]string, len(row))
			copy(dup, row)
			rows = append(rows, dup)
		}
	}
	return rows
}

func (g *EmployeeGenerator) generateRow(i int) []string {
	name := firstNames[g.rng.Intn(len(firstNames))] + " " + lastNames[g.rng.Intn(len(lastNames))]
	if g.rng.Float64() < 0.2 {
		name = " " + name + " " // stray padding
	}

	age := 22 + g.rng.Intn(40)
	if g.rng.Float64() < g.config.OutlierRate {
		age = 150
	}

	salary := fmt.Sprintf("%.2f", 35000+g.rng.Float64()*90000)
	if g.rng.Float64() < g.config.MissingRate {
		salary = "NaN"
	}

	bonus := fmt.Sprintf("$%d", 500+g.rng.Intn(9500))

	joined := g.randomDate()
	layout := dateLayouts[g.rng.Intn(len(dateLayouts))]
	joinDate := joined.Format(layout)
	if g.rng.Float64() < 0.02 {
		joinDate = "not a date"
	}

	dept := departments[g.rng.Intn(len(departments))]

	gender := "Male"
	if g.rng.Float64() < 0.5 {
		gender = "Female"
	}

	score := fmt.Sprintf("%.1f", 1+g.rng.Float64()*9)
	if g.rng.Float64() < g.config.MissingRate {
		score = ""
	}

	left := "No"
	if g.rng.Float64() < g.config.MinorityShare {
		left = "Yes"
	}

	return []string{
		fmt.Sprintf("E%04d", i+1),
		name,
		fmt.Sprintf("%d", age),
		salary,
		bonus,
		joinDate,
		dept,
		gender,
		score,
		left,
	}
}

func (g *EmployeeGenerator) randomDate() time.Time {
	span := g.config.EndDate.Sub(g.config.StartDate)
	return g.config.StartDate.Add(time.Duration(g.rng.Int63n(int64(span))))
}

// WriteCSV generates a defective dataset and writes it to path
func (g *EmployeeGenerator) WriteCSV(path string) error {
	file, err := os.Create(path)
	if err != nil {
		return err
	}
	defer file.Close()

	w := csv.NewWriter(file)
	if err := w.Write(g.Columns()); err != nil {
		return err
	}
	for _, row := range g.GenerateRows() {
		if err := w.Write(row); err != nil {
			return err
		}
	}
	w.Flush()
	return w.Error()
}
