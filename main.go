package main

import (
	"os"

	"github.com/spf13/cobra"
	"github.com/tarn-lang/tarn/cmd"
)

func main() {
	err := rootCmd.Execute()
	if err != nil {
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:          "tarn [subcommand]",
	Short:        "tarn\n the frontend toolchain for the tarn functional language",
	Args:         cobra.MinimumNArgs(1),
	SilenceUsage: true,
}

func init() {
	rootCmd.AddCommand(cmd.DesugarCmd)
}
