package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/augur-ml/augur/autodiff"
	"github.com/augur-ml/augur/backend/cpu"
	"github.com/augur-ml/augur/forecast"
	"github.com/augur-ml/augur/internal/chart"
	"github.com/augur-ml/augur/internal/checkpoint"
	"github.com/augur-ml/augur/series"
)

var evaluateCmd = &cobra.Command{
	Use:   "evaluate",
	Short: "Score a saved model against the naive baseline",
	Long: `Evaluate loads a checkpoint, replays its walk-forward evaluation on
the dataset's held-out tail, and prints the error metrics next to the
naive persistence baseline.

The held-out size and CSV column names default to the values stored in
the checkpoint, so evaluating on the training dataset reproduces the
numbers train printed.`,
	RunE: runEvaluate,
}

func runEvaluate(cmd *cobra.Command, args []string) error {
	if err := viper.BindPFlags(cmd.Flags()); err != nil {
		return err
	}

	dataPath := viper.GetString("data")
	if dataPath == "" {
		return fmt.Errorf("no dataset: provide --data with a CSV file")
	}
	modelPath := viper.GetString("model")
	plotPath := viper.GetString("plot")

	backend := autodiff.New(cpu.New())
	model, scaler, err := checkpoint.Load(modelPath, backend)
	if err != nil {
		return fmt.Errorf("loading checkpoint: %w", err)
	}
	cfg := model.Config()

	opts := series.LoadOptions{DateColumn: cfg.DateColumn, ValueColumn: cfg.ValueColumn}
	if c := viper.GetString("date-column"); c != "" {
		opts.DateColumn = c
	}
	if c := viper.GetString("value-column"); c != "" {
		opts.ValueColumn = c
	}
	testSize := cfg.TestSize
	if n := viper.GetInt("test-size"); n > 0 {
		testSize = n
	}

	s, err := series.LoadCSV(dataPath, opts)
	if err != nil {
		return fmt.Errorf("loading series: %w", err)
	}

	report, err := forecast.Evaluate(model, scaler, s, testSize)
	if err != nil {
		return fmt.Errorf("evaluating: %w", err)
	}

	if plotPath != "" {
		title := fmt.Sprintf("%s: forecast vs actual", filepath.Base(dataPath))
		if err := chart.Render(plotPath, title, forecastLines(report)); err != nil {
			return fmt.Errorf("rendering chart: %w", err)
		}
	}

	printReport(os.Stdout, report)
	return nil
}

func init() {
	evaluateCmd.Flags().String("data", "", "path to the input CSV (required)")
	evaluateCmd.Flags().String("model", "model.augur", "checkpoint to evaluate")
	evaluateCmd.Flags().Int("test-size", 0, "trailing observations to hold out (default: checkpoint config)")
	evaluateCmd.Flags().String("date-column", "", "CSV header of the timestamp column (default: checkpoint config)")
	evaluateCmd.Flags().String("value-column", "", "CSV header of the value column (default: checkpoint config)")
	evaluateCmd.Flags().String("plot", "", "render forecast-vs-actual chart to this PNG/SVG path")

	rootCmd.AddCommand(evaluateCmd)
}
