package main

import (
	"os"

	"github.com/spf13/cobra"
)

type rootCmdConfig struct {
	logger
}

func main() {
	if err := cliParser().Execute(); err != nil {
		os.Exit(1)
	}
}

func cliParser() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "mltree",
		Short: "mltree is a tool to grow and use binary decision trees",
		Long:  `A tool to grow binary decision trees from your data and use them to make predictions, report feature importances and render the trees as graphs`,
	}
	config := &rootCmdConfig{}
	rootCmd.PersistentFlags().BoolVarP((*bool)(&config.logger), "verbose", "v", false, "")
	rootCmd.AddCommand(versionCmd(), growCmd(config), predictCmd(config), importancesCmd(config), exportCmd(config))
	return rootCmd
}
