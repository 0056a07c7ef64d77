package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/augur-ml/augur/internal/runstore"
)

var runsCmd = &cobra.Command{
	Use:   "runs",
	Short: "List recorded training runs",
	Long: `Runs lists the training history recorded by train, newest first.
Use "runs show <id>" for one run's full configuration and metrics.`,
	RunE: runRunsList,
}

func runRunsList(cmd *cobra.Command, args []string) error {
	if err := viper.BindPFlags(cmd.Flags()); err != nil {
		return err
	}

	store, err := runstore.Open(viper.GetString("runs-db"))
	if err != nil {
		return fmt.Errorf("opening run database: %w", err)
	}
	defer store.Close()

	runs, err := store.List(cmd.Context(), viper.GetInt("limit"))
	if err != nil {
		return fmt.Errorf("listing runs: %w", err)
	}
	if len(runs) == 0 {
		fmt.Println("No runs recorded.")
		return nil
	}

	fmt.Fprintf(os.Stdout, "%-4s  %-16s  %-28s  %10s  %7s  %s\n",
		"ID", "Started", "Dataset", "RMSE", "Skill", "Duration")
	fmt.Fprintln(os.Stdout, strings.Repeat("-", 82))

	for _, run := range runs {
		dataset := run.Dataset
		if len(dataset) > 28 {
			dataset = dataset[:25] + "..."
		}
		fmt.Fprintf(os.Stdout, "%-4d  %-16s  %-28s  %10.2f  %7.3f  %s\n",
			run.ID,
			run.StartedAt.Local().Format("2006-01-02 15:04"),
			dataset,
			run.ModelRMSE,
			run.Skill,
			run.Duration().Round(time.Millisecond),
		)
	}

	fmt.Fprintf(os.Stdout, "\n%d runs\n", len(runs))
	return nil
}

// --- show subcommand ---

var runsShowCmd = &cobra.Command{
	Use:   "show <id>",
	Short: "Show one run's full configuration and metrics",
	Args:  cobra.ExactArgs(1),
	RunE:  runRunsShow,
}

func runRunsShow(cmd *cobra.Command, args []string) error {
	if err := viper.BindPFlags(cmd.Flags()); err != nil {
		return err
	}

	id, err := strconv.ParseInt(args[0], 10, 64)
	if err != nil {
		return fmt.Errorf("invalid run id %q", args[0])
	}

	store, err := runstore.Open(viper.GetString("runs-db"))
	if err != nil {
		return fmt.Errorf("opening run database: %w", err)
	}
	defer store.Close()

	run, err := store.Get(cmd.Context(), id)
	if err != nil {
		return err
	}

	fmt.Fprintf(os.Stdout, "run %d\n", run.ID)
	fmt.Fprintf(os.Stdout, "%-12s %s\n", "started", run.StartedAt.Local().Format("2006-01-02 15:04:05"))
	fmt.Fprintf(os.Stdout, "%-12s %s  (%s)\n", "finished",
		run.FinishedAt.Local().Format("2006-01-02 15:04:05"), run.Duration().Round(time.Millisecond))
	fmt.Fprintf(os.Stdout, "%-12s %s\n", "dataset", run.Dataset)
	fmt.Fprintf(os.Stdout, "%-12s %s\n", "backend", run.Backend)
	fmt.Fprintf(os.Stdout, "%-12s %s\n", "hardware", run.Hardware)
	fmt.Fprintf(os.Stdout, "%-12s %s\n", "checkpoint", run.CheckpointPath)
	fmt.Fprintf(os.Stdout, "%-12s %.6f\n", "final loss", run.FinalLoss)

	fmt.Fprintf(os.Stdout, "\n%-8s  %10s  %10s  %9s\n", "", "RMSE", "MAE", "MAPE")
	fmt.Fprintf(os.Stdout, "%-8s  %10.2f  %10.2f  %8.2f%%\n", "model", run.ModelRMSE, run.ModelMAE, run.ModelMAPE)
	fmt.Fprintf(os.Stdout, "%-8s  %10.2f  %10.2f  %8.2f%%\n", "naive", run.NaiveRMSE, run.NaiveMAE, run.NaiveMAPE)
	fmt.Fprintf(os.Stdout, "\nskill %.3f  correlation %.3f\n", run.Skill, run.Correlation)

	if run.ConfigJSON != "" {
		var pretty bytes.Buffer
		if err := json.Indent(&pretty, []byte(run.ConfigJSON), "", "  "); err == nil {
			fmt.Fprintf(os.Stdout, "\nconfig\n%s\n", pretty.String())
		}
	}
	return nil
}

func init() {
	// Shared flag on the parent command, inherited by show.
	runsCmd.PersistentFlags().String("runs-db", "runs.db", "SQLite run-history database")
	runsCmd.Flags().Int("limit", 20, "maximum runs to list (0 = all)")

	runsCmd.AddCommand(runsShowCmd)
	rootCmd.AddCommand(runsCmd)
}
