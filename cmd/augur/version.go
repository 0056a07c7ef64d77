package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/augur-ml/augur/internal/checkpoint"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version of augur",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("augur %s (toolkit %s)\n", version, checkpoint.ToolkitVersion)
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
