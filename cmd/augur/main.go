// Package main provides the Augur forecasting CLI.
package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// version is set at build time via ldflags.
var version = "dev"

// rootCmd is the base command for the augur CLI.
var rootCmd = &cobra.Command{
	Use:   "augur",
	Short: "Train and apply recurrent time-series forecasting models",
	Long: `augur trains small recurrent neural networks on univariate time series
and measures them against the naive persistence baseline.

The pipeline is the classic one: load a CSV, hold out the final
observations, standardize on the training segment, slide supervised
windows over it, train an Elman RNN with a linear head, then report
RMSE/MAE/MAPE against "tomorrow equals today". Trained models save to
a single .augur file that carries the config and scaler needed for
inference.

Flags can also come from an augur.yaml config file or AUGUR_* env
variables; explicit flags win.`,
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().String("config", "", "config file (default: ./augur.yaml or ~/.config/augur/config.yaml)")
}

func initConfig() {
	cfgFile, _ := rootCmd.PersistentFlags().GetString("config")
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName("augur")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(".")

		home, err := os.UserHomeDir()
		if err == nil {
			viper.AddConfigPath(filepath.Join(home, ".config", "augur"))
		}
	}

	viper.SetEnvPrefix("AUGUR")
	viper.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err == nil {
		fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
	}
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
