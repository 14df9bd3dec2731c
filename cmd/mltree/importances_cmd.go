package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

type importancesCmdConfig struct {
	*rootCmdConfig
	treeInput     string
	metadataInput string
	labelFeature  string
}

func importancesCmd(rootConfig *rootCmdConfig) *cobra.Command {
	config := &importancesCmdConfig{rootCmdConfig: rootConfig}
	cmd := &cobra.Command{
		Use:   "importances",
		Short: "Report the feature importances of a grown tree",
		Long:  `Load a previously grown tree and print, for each feature column, the total purity increase of the splits on that column.`,
		Run: func(cmd *cobra.Command, args []string) {
			if config.treeInput == "" {
				fmt.Fprintln(os.Stderr, "required tree flag was not set")
				os.Exit(1)
			}
			if config.metadataInput == "" {
				fmt.Fprintln(os.Stderr, "required metadata flag was not set")
				os.Exit(1)
			}
			t, features, err := loadTreeAndFeatures(config.treeInput, config.metadataInput, config.labelFeature)
			if err != nil {
				fmt.Fprintln(os.Stderr, err)
				os.Exit(2)
			}
			importances, err := t.FeatureImportances()
			if err != nil {
				fmt.Fprintln(os.Stderr, err)
				os.Exit(3)
			}
			for i, importance := range importances {
				fmt.Printf("%s\t%g\n", features[i].Name(), importance)
			}
		},
	}
	cmd.PersistentFlags().StringVarP(&(config.treeInput), "tree", "t", "", "path to a JSON file with a grown tree (required)")
	cmd.PersistentFlags().StringVarP(&(config.metadataInput), "metadata", "m", "", "path to a YML file with metadata describing the features the tree was grown with (required)")
	cmd.PersistentFlags().StringVarP(&(config.labelFeature), "label-feature", "c", "", "name of the feature the tree predicts, to exclude from the metadata columns")
	return cmd
}
