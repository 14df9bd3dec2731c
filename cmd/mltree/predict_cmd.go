package main

import (
	"fmt"
	"os"

	"github.com/Textualization/ML/dataset/csv"
	"github.com/Textualization/ML/feature"
	"github.com/Textualization/ML/feature/yaml"
	"github.com/Textualization/ML/tree"
	treejson "github.com/Textualization/ML/tree/json"
	"github.com/spf13/cobra"
)

type predictCmdConfig struct {
	*rootCmdConfig
	treeInput     string
	metadataInput string
	dataInput     string
	labelFeature  string
}

func predictCmd(rootConfig *rootCmdConfig) *cobra.Command {
	config := &predictCmdConfig{rootCmdConfig: rootConfig}
	cmd := &cobra.Command{
		Use:   "predict",
		Short: "Predict samples with a grown tree",
		Long:  `Load a previously grown tree and print its predicted outcome for each input sample, one per line.`,
		Run: func(cmd *cobra.Command, args []string) {
			err := config.Validate()
			if err != nil {
				fmt.Fprintln(os.Stderr, err)
				os.Exit(1)
			}
			t, features, err := loadTreeAndFeatures(config.treeInput, config.metadataInput, config.labelFeature)
			if err != nil {
				fmt.Fprintln(os.Stderr, err)
				os.Exit(2)
			}
			samples, err := config.samples(features)
			if err != nil {
				fmt.Fprintln(os.Stderr, err)
				os.Exit(3)
			}
			config.Logf("Predicting %d samples...", len(samples))
			for i, sample := range samples {
				outcome := t.Search(sample)
				if outcome == nil {
					fmt.Fprintf(os.Stderr, "no prediction for sample %d\n", i+1)
					os.Exit(4)
				}
				fmt.Printf("%v\n", outcome.Value)
			}
		},
	}
	cmd.PersistentFlags().StringVarP(&(config.treeInput), "tree", "t", "", "path to a JSON file with a grown tree (required)")
	cmd.PersistentFlags().StringVarP(&(config.metadataInput), "metadata", "m", "", "path to a YML file with metadata describing the features the tree was grown with (required)")
	cmd.PersistentFlags().StringVarP(&(config.dataInput), "input", "i", "", "path to a CSV file with the samples to predict (defaults to STDIN)")
	cmd.PersistentFlags().StringVarP(&(config.labelFeature), "label-feature", "c", "", "name of the feature the tree predicts, to exclude from the metadata columns")
	return cmd
}

func (pcc *predictCmdConfig) Validate() error {
	if pcc.treeInput == "" {
		return fmt.Errorf("required tree flag was not set")
	}
	if pcc.metadataInput == "" {
		return fmt.Errorf("required metadata flag was not set")
	}
	return nil
}

func (pcc *predictCmdConfig) samples(features []feature.Feature) ([][]interface{}, error) {
	var f *os.File
	if pcc.dataInput == "" {
		pcc.Logf("Reading samples from STDIN...")
		f = os.Stdin
	} else {
		pcc.Logf("Opening %s to read samples...", pcc.dataInput)
		var err error
		f, err = os.Open(pcc.dataInput)
		if err != nil {
			return nil, fmt.Errorf("opening samples at %s: %v", pcc.dataInput, err)
		}
		defer f.Close()
	}
	return csv.ReadSamples(f, features)
}

// loadTreeAndFeatures loads a serialized tree and the feature columns
// it was grown over, dropping the label feature from the metadata when
// one is named.
func loadTreeAndFeatures(treePath, metadataPath, labelName string) (*tree.Tree, []feature.Feature, error) {
	f, err := os.Open(treePath)
	if err != nil {
		return nil, nil, fmt.Errorf("opening tree at %s: %v", treePath, err)
	}
	defer f.Close()
	t, err := treejson.ReadTree(f)
	if err != nil {
		return nil, nil, err
	}
	if metadataPath == "" {
		return t, nil, nil
	}
	features, err := yaml.ReadFeaturesFromFile(metadataPath)
	if err != nil {
		return nil, nil, err
	}
	if labelName != "" {
		features, _, err = splitOffLabel(features, labelName)
		if err != nil {
			return nil, nil, err
		}
	}
	if len(features) != t.FeatureCount() {
		return nil, nil, fmt.Errorf("tree was grown with %d features but metadata describes %d", t.FeatureCount(), len(features))
	}
	return t, features, nil
}
