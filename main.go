package main

import (
	"os"

	"github.com/candlelang/candle/cmd"
	"github.com/spf13/cobra"
)

func main() {
	err := rootCmd.Execute()
	if err != nil {
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:          "candle [subcommand]",
	Short:        "candle 🕯️\n inference tooling for the candle type solver",
	Args:         cobra.MinimumNArgs(1),
	SilenceUsage: true,
}

func init() {
	rootCmd.AddCommand(cmd.FixationCmd)
}
