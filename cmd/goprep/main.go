package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"goprep/adapters/coercer"
	"goprep/adapters/tabfile"
	"goprep/domain/table"
	"goprep/internal"
	"goprep/internal/balance"
	"goprep/internal/clean"
	"goprep/internal/config"
	"goprep/internal/encode"
	"goprep/internal/pipeline"
	"goprep/internal/transform"
)

func main() {
	// .env is optional; environment variables win when both exist
	_ = godotenv.Load()

	rootCmd := &cobra.Command{
		Use:   "goprep",
		Short: "Batch cleaning and preprocessing for tabular datasets",
	}
	rootCmd.AddCommand(newRunCmd())

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRunCmd() *cobra.Command {
	var input, output, testOutput, target string
	var seed int64
	var testRatio float64

	cmd := &cobra.Command{
		Use:   "run",
		Short: "Run the full pipeline over one input file",
		Long: `Load a CSV or Excel dataset, repair data-quality defects, encode
categorical columns, split and rebalance, apply feature transforms and
write the result.

Example: goprep run --input employees.csv --output train.csv --test-output test.csv --seed 42`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				return err
			}
			if input != "" {
				cfg.Input = input
			}
			if output != "" {
				cfg.TrainOut = output
			}
			if testOutput != "" {
				cfg.TestOut = testOutput
			}
			if target != "" {
				cfg.Target = target
			}
			if cmd.Flags().Changed("seed") {
				cfg.Seed = seed
			}
			if cmd.Flags().Changed("test-ratio") {
				cfg.TestRatio = testRatio
			}
			if cfg.Input == "" {
				return fmt.Errorf("no input file given (flag --input or GOPREP_INPUT)")
			}
			if cfg.Target == "" {
				cfg.Target = "Left_Company"
			}
			return run(cfg)
		},
	}

	cmd.Flags().StringVar(&input, "input", "", "Input CSV or Excel file")
	cmd.Flags().StringVar(&output, "output", "", "Training partition output CSV")
	cmd.Flags().StringVar(&testOutput, "test-output", "", "Test partition output CSV (optional)")
	cmd.Flags().StringVar(&target, "target", "", "Target column for the stratified split")
	cmd.Flags().Int64Var(&seed, "seed", 42, "Random seed for split and oversampling")
	cmd.Flags().Float64Var(&testRatio, "test-ratio", 0.2, "Share of rows in the test partition")

	return cmd
}

// run wires the employee-dataset profile into the pipeline and executes
// it. The profile declares which column each operation acts on; the
// dataset-independent machinery lives in the stage packages.
func run(cfg *config.Config) error {
	logger := internal.NewDefaultLogger()
	tc := coercer.NewTypeCoercer(coercer.DefaultCoercionConfig())

	schema := table.Schema{
		"Employee_ID":       table.RoleIdentifier,
		"Name":              table.RoleText,
		"Age":               table.RoleDiscrete,
		"Salary":            table.RoleContinuous,
		"Bonus":             table.RoleCurrency,
		"Join_Date":         table.RoleDate,
		"Department":        table.RoleNominal,
		"Gender":            table.RoleNominal,
		"Performance_Score": table.RoleContinuous,
		cfg.Target:          table.RoleTarget,
	}

	cleanCfg := clean.DefaultConfig()
	cleanCfg.MeanColumns = []string{"Age"}
	cleanCfg.KNNColumns = []string{"Salary", "Performance_Score"}
	cleanCfg.KNNNeighbors = cfg.KNN
	cleanCfg.ModeColumns = []string{"Department", "Gender", cfg.Target}
	cleanCfg.ZScoreColumn = "Age"
	cleanCfg.IQRColumn = "Salary"
	cleanCfg.DateColumns = []string{"Join_Date"}
	cleanCfg.CurrencyColumns = []string{"Bonus"}
	cleanCfg.NameColumns = []string{"Name"}
	cleanCfg.TruncateColumns = []string{"Age"}
	cleanCfg.CategoryFixes = map[string]map[string]string{
		"Department": {"Finanace": "Finance"},
	}
	cleanCfg.RequiredColumns = []string{"Age", "Salary", "Bonus", "Department", "Gender", "Performance_Score", cfg.Target}

	encodeCfg := encode.Config{
		OrdinalColumns: []string{"Department", cfg.Target},
		OneHotColumn:   "Gender",
	}

	balanceCfg := balance.DefaultConfig()
	balanceCfg.TargetColumn = cfg.Target
	balanceCfg.TestRatio = cfg.TestRatio
	balanceCfg.Seed = cfg.Seed
	balanceCfg.SMOTENeighbors = cfg.SMOTENears
	balanceCfg.DurationColumn = "Tenure_Years"
	balanceCfg.DurationFrom = "Join_Date"
	balanceCfg.DropColumns = []string{"Employee_ID", "Name", "Join_Date"}

	transformCfg := transform.Config{
		ScaleColumns: []string{"Age", "Salary", "Tenure_Years"},
		LogColumns:   []string{"Bonus"},
		Ratios: []transform.RatioSpec{
			{Name: "Bonus_Ratio", Numerator: "Bonus", Denominator: "Salary", Offset: 1},
		},
	}

	var testWriter pipeline.Writer
	if cfg.TestOut != "" {
		testWriter = tabfile.NewWriter(cfg.TestOut)
	}

	p := pipeline.New(
		schema,
		tabfile.NewDataReader(cfg.Input, tc),
		clean.New(cleanCfg, tc, logger),
		encode.New(encodeCfg, logger),
		balance.New(balanceCfg, logger),
		transform.New(transformCfg, logger),
		tabfile.NewWriter(cfg.TrainOut),
		testWriter,
		logger,
	)

	rep, err := p.Run(cfg.Input)
	if err != nil {
		return err
	}
	rep.Render(os.Stdout)
	return nil
}
