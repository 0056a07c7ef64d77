package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/augur-ml/augur/autodiff"
	"github.com/augur-ml/augur/backend/cpu"
	"github.com/augur-ml/augur/forecast"
	"github.com/augur-ml/augur/internal/checkpoint"
	"github.com/augur-ml/augur/series"
)

var predictCmd = &cobra.Command{
	Use:   "predict",
	Short: "Forecast future values with a saved model",
	Long: `Predict loads a checkpoint and rolls the model forward past the end
of the series, feeding each prediction back into the window for the
next step. Future timestamps continue the series cadence.

Output is one "date,value" line per step on stdout, ready to pipe into
other tools.`,
	RunE: runPredict,
}

func runPredict(cmd *cobra.Command, args []string) error {
	if err := viper.BindPFlags(cmd.Flags()); err != nil {
		return err
	}

	dataPath := viper.GetString("data")
	if dataPath == "" {
		return fmt.Errorf("no dataset: provide --data with a CSV file")
	}
	modelPath := viper.GetString("model")
	steps := viper.GetInt("steps")
	if steps <= 0 {
		return nil
	}

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

	s, err := series.LoadCSV(dataPath, opts)
	if err != nil {
		return fmt.Errorf("loading series: %w", err)
	}

	forecasts, err := forecast.Forecast(model, scaler, s.Values(), steps)
	if err != nil {
		return fmt.Errorf("forecasting: %w", err)
	}
	times, err := s.Extend(steps)
	if err != nil {
		return fmt.Errorf("extending timeline: %w", err)
	}

	out := cmd.OutOrStdout()
	for i, value := range forecasts {
		fmt.Fprintf(out, "%s,%.4f\n", times[i].Format("2006-01-02"), value)
	}
	return nil
}

func init() {
	predictCmd.Flags().String("data", "", "path to the input CSV (required)")
	predictCmd.Flags().String("model", "model.augur", "checkpoint to forecast with")
	predictCmd.Flags().Int("steps", 12, "future observations to forecast")
	predictCmd.Flags().String("date-column", "", "CSV header of the timestamp column (default: checkpoint config)")
	predictCmd.Flags().String("value-column", "", "CSV header of the value column (default: checkpoint config)")

	rootCmd.AddCommand(predictCmd)
}
