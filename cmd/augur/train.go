package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/augur-ml/augur/autodiff"
	"github.com/augur-ml/augur/backend/cpu"
	"github.com/augur-ml/augur/forecast"
	"github.com/augur-ml/augur/internal/chart"
	"github.com/augur-ml/augur/internal/checkpoint"
	"github.com/augur-ml/augur/internal/runstore"
	"github.com/augur-ml/augur/series"
)

var trainCmd = &cobra.Command{
	Use:   "train",
	Short: "Train a forecasting model on a CSV time series",
	Long: `Train runs the full pipeline: load the series, hold out the final
test-size observations, standardize on the training segment, slide
supervised windows over it, train the recurrent model, evaluate against
the naive persistence baseline, save a checkpoint, and record the run.

Hyperparameters default to the values that work on small monthly
series; override them with flags, an augur.yaml file, or AUGUR_* env
variables.`,
	RunE: runTrain,
}

func runTrain(cmd *cobra.Command, args []string) error {
	if err := viper.BindPFlags(cmd.Flags()); err != nil {
		return err
	}

	dataPath := viper.GetString("data")
	if dataPath == "" {
		return fmt.Errorf("no dataset: provide --data with a CSV file")
	}
	outPath := viper.GetString("out")
	plotPath := viper.GetString("plot")
	lossPlotPath := viper.GetString("loss-plot")
	runsDB := viper.GetString("runs-db")
	cfg := configFromFlags()

	logger, err := forecast.NewStdLogger()
	if err != nil {
		return fmt.Errorf("creating logger: %w", err)
	}

	started := time.Now()

	s, err := series.LoadCSV(dataPath, series.LoadOptions{
		DateColumn:  cfg.DateColumn,
		ValueColumn: cfg.ValueColumn,
	})
	if err != nil {
		return fmt.Errorf("loading series: %w", err)
	}

	trainSeg, _, err := s.Split(cfg.TestSize)
	if err != nil {
		return fmt.Errorf("splitting series: %w", err)
	}

	var scaler series.Scaler
	if err := scaler.Fit(trainSeg.Values()); err != nil {
		return fmt.Errorf("fitting scaler: %w", err)
	}

	examples, err := series.Window(scaler.Transform(trainSeg.Values()), cfg.WindowSize)
	if err != nil {
		return fmt.Errorf("windowing series: %w", err)
	}

	backend := autodiff.New(cpu.New())
	logger.Infow("starting training run",
		"dataset", dataPath,
		"observations", s.Len(),
		"train", trainSeg.Len(),
		"test", cfg.TestSize,
		"backend", backend.Name(),
		"hardware", cpu.Hardware(),
	)

	model, err := forecast.NewModel(cfg, backend)
	if err != nil {
		return fmt.Errorf("building model: %w", err)
	}
	trainer, err := forecast.NewTrainer(model, cfg, backend, logger)
	if err != nil {
		return fmt.Errorf("building trainer: %w", err)
	}

	losses, err := trainer.Train(examples)
	if err != nil {
		return fmt.Errorf("training: %w", err)
	}

	report, err := forecast.Evaluate(model, &scaler, s, cfg.TestSize)
	if err != nil {
		return fmt.Errorf("evaluating: %w", err)
	}

	if err := checkpoint.Save(outPath, model, &scaler); err != nil {
		return fmt.Errorf("saving checkpoint: %w", err)
	}
	logger.Infow("checkpoint saved", "path", outPath)

	if plotPath != "" {
		title := fmt.Sprintf("%s: forecast vs actual", filepath.Base(dataPath))
		if err := chart.Render(plotPath, title, forecastLines(report)); err != nil {
			return fmt.Errorf("rendering chart: %w", err)
		}
		logger.Infow("chart rendered", "path", plotPath)
	}
	if lossPlotPath != "" {
		if err := chart.RenderLoss(lossPlotPath, losses); err != nil {
			return fmt.Errorf("rendering loss chart: %w", err)
		}
		logger.Infow("loss chart rendered", "path", lossPlotPath)
	}

	if runsDB != "" {
		id, err := recordRun(cmd, runsDB, runstore.Run{
			StartedAt:      started,
			FinishedAt:     time.Now(),
			Dataset:        dataPath,
			ConfigJSON:     configJSON(cfg),
			Backend:        backend.Name(),
			Hardware:       cpu.Hardware(),
			FinalLoss:      losses[len(losses)-1],
			ModelRMSE:      report.Model.RMSE,
			ModelMAE:       report.Model.MAE,
			ModelMAPE:      report.Model.MAPE,
			NaiveRMSE:      report.Naive.RMSE,
			NaiveMAE:       report.Naive.MAE,
			NaiveMAPE:      report.Naive.MAPE,
			Skill:          report.Skill,
			Correlation:    report.Correlation,
			CheckpointPath: outPath,
		})
		if err != nil {
			return fmt.Errorf("recording run: %w", err)
		}
		logger.Infow("run recorded", "id", id, "db", runsDB)
	}

	printReport(os.Stdout, report)
	return nil
}

// configFromFlags assembles the training config from the bound flag,
// config-file, and env values.
func configFromFlags() forecast.Config {
	cfg := forecast.Defaults()
	cfg.WindowSize = viper.GetInt("window")
	cfg.HiddenSize = viper.GetInt("hidden")
	cfg.NumLayers = viper.GetInt("layers")
	cfg.Epochs = viper.GetInt("epochs")
	cfg.BatchSize = viper.GetInt("batch")
	cfg.LR = viper.GetFloat64("lr")
	cfg.Optimizer = viper.GetString("optimizer")
	cfg.Momentum = viper.GetFloat64("momentum")
	cfg.TestSize = viper.GetInt("test-size")
	cfg.Seed = viper.GetInt64("seed")
	cfg.DateColumn = viper.GetString("date-column")
	cfg.ValueColumn = viper.GetString("value-column")
	return cfg
}

func configJSON(cfg forecast.Config) string {
	b, err := json.Marshal(cfg)
	if err != nil {
		return ""
	}
	return string(b)
}

func recordRun(cmd *cobra.Command, path string, run runstore.Run) (int64, error) {
	store, err := runstore.Open(path)
	if err != nil {
		return 0, err
	}
	defer store.Close()

	return store.Record(cmd.Context(), run)
}

// forecastLines arranges an evaluation report as chart lines: actual
// test values, model predictions, and the persistence baseline.
func forecastLines(report *forecast.Report) []chart.Line {
	actual := chart.Line{Name: "actual"}
	predicted := chart.Line{Name: "predicted"}
	naive := chart.Line{Name: "naive"}

	for i, ts := range report.Times {
		actual.Points = append(actual.Points, chart.TimePoint{Time: ts, Value: report.Actuals[i]})
		predicted.Points = append(predicted.Points, chart.TimePoint{Time: ts, Value: report.Predictions[i]})
		naive.Points = append(naive.Points, chart.TimePoint{Time: ts, Value: report.Baseline[i]})
	}
	return []chart.Line{actual, predicted, naive}
}

func printReport(w io.Writer, report *forecast.Report) {
	fmt.Fprintf(w, "%-8s  %10s  %10s  %9s\n", "", "RMSE", "MAE", "MAPE")
	fmt.Fprintf(w, "%-8s  %10.2f  %10.2f  %8.2f%%\n", "model", report.Model.RMSE, report.Model.MAE, report.Model.MAPE)
	fmt.Fprintf(w, "%-8s  %10.2f  %10.2f  %8.2f%%\n", "naive", report.Naive.RMSE, report.Naive.MAE, report.Naive.MAPE)
	fmt.Fprintf(w, "\nskill %.3f  correlation %.3f\n", report.Skill, report.Correlation)

	if report.Skill > 0 {
		fmt.Fprintln(w, "the model beats the persistence baseline")
	} else {
		fmt.Fprintln(w, "the model does not beat the persistence baseline")
	}
}

func init() {
	defaults := forecast.Defaults()

	trainCmd.Flags().String("data", "", "path to the input CSV (required)")
	trainCmd.Flags().Int("window", defaults.WindowSize, "observations per input window")
	trainCmd.Flags().Int("hidden", defaults.HiddenSize, "hidden units per recurrent layer")
	trainCmd.Flags().Int("layers", defaults.NumLayers, "stacked recurrent layers")
	trainCmd.Flags().Int("epochs", defaults.Epochs, "training epochs")
	trainCmd.Flags().Int("batch", defaults.BatchSize, "mini-batch size")
	trainCmd.Flags().Float64("lr", defaults.LR, "learning rate")
	trainCmd.Flags().String("optimizer", defaults.Optimizer, "optimizer: adam or sgd")
	trainCmd.Flags().Float64("momentum", defaults.Momentum, "SGD momentum in [0, 1)")
	trainCmd.Flags().Int("test-size", defaults.TestSize, "trailing observations held out for evaluation")
	trainCmd.Flags().Int64("seed", defaults.Seed, "seed for weight init and batch shuffling")
	trainCmd.Flags().String("date-column", defaults.DateColumn, "CSV header of the timestamp column")
	trainCmd.Flags().String("value-column", defaults.ValueColumn, "CSV header of the value column")
	trainCmd.Flags().String("out", "model.augur", "checkpoint output path")
	trainCmd.Flags().String("plot", "", "render forecast-vs-actual chart to this PNG/SVG path")
	trainCmd.Flags().String("loss-plot", "", "render the training loss curve to this PNG/SVG path")
	trainCmd.Flags().String("runs-db", "runs.db", "SQLite run-history database (empty to skip recording)")

	rootCmd.AddCommand(trainCmd)
}
