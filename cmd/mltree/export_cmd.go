package main

import (
	"fmt"
	"os"

	"github.com/Textualization/ML/feature"
	"github.com/spf13/cobra"
)

type exportCmdConfig struct {
	*rootCmdConfig
	treeInput     string
	metadataInput string
	output        string
	labelFeature  string
	maxDepth      int
}

func exportCmd(rootConfig *rootCmdConfig) *cobra.Command {
	config := &exportCmdConfig{rootCmdConfig: rootConfig}
	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export a grown tree as a Graphviz dot graph",
		Long:  `Load a previously grown tree and write a Graphviz dot document describing it, suitable for rendering with dot.`,
		Run: func(cmd *cobra.Command, args []string) {
			if config.treeInput == "" {
				fmt.Fprintln(os.Stderr, "required tree flag was not set")
				os.Exit(1)
			}
			t, features, err := loadTreeAndFeatures(config.treeInput, config.metadataInput, config.labelFeature)
			if err != nil {
				fmt.Fprintln(os.Stderr, err)
				os.Exit(2)
			}
			dot, err := t.ExportGraphviz(feature.Names(features), config.maxDepth)
			if err != nil {
				fmt.Fprintln(os.Stderr, err)
				os.Exit(3)
			}
			out := os.Stdout
			if config.output != "" {
				out, err = os.Create(config.output)
				if err != nil {
					fmt.Fprintln(os.Stderr, err)
					os.Exit(4)
				}
				defer out.Close()
			}
			fmt.Fprintln(out, dot)
		},
	}
	cmd.PersistentFlags().StringVarP(&(config.treeInput), "tree", "t", "", "path to a JSON file with a grown tree (required)")
	cmd.PersistentFlags().StringVarP(&(config.metadataInput), "metadata", "m", "", "path to a YML file with metadata naming the features the tree was grown with")
	cmd.PersistentFlags().StringVarP(&(config.output), "output", "o", "", "path to a file to which the dot document will be written (defaults to STDOUT)")
	cmd.PersistentFlags().StringVarP(&(config.labelFeature), "label-feature", "c", "", "name of the feature the tree predicts, to exclude from the metadata columns")
	cmd.PersistentFlags().IntVarP(&(config.maxDepth), "max-depth", "d", 0, "maximum depth to render, deeper nodes collapse into an ellipsis (defaults to 0: no limit)")
	return cmd
}
