package main

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/Textualization/ML/dataset"
	"github.com/Textualization/ML/dataset/csv"
	"github.com/Textualization/ML/dataset/mongodataset"
	"github.com/Textualization/ML/dataset/sqldataset"
	"github.com/Textualization/ML/dataset/sqldataset/pgadapter"
	"github.com/Textualization/ML/dataset/sqldataset/sqlite3adapter"
	"github.com/Textualization/ML/feature"
	"github.com/Textualization/ML/feature/yaml"
	"github.com/Textualization/ML/splitter"
	"github.com/Textualization/ML/tree"
	treejson "github.com/Textualization/ML/tree/json"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

type growCmdConfig struct {
	*rootCmdConfig
	dataInput         string
	metadataInput     string
	output            string
	labelFeature      string
	strategy          string
	table             string
	mongoDB           string
	maxDBConns        int
	maxHeight         int
	maxLeafSize       int
	minPurityIncrease float64
}

func growCmd(rootConfig *rootCmdConfig) *cobra.Command {
	config := &growCmdConfig{rootCmdConfig: rootConfig}
	v := viper.New()
	cmd := &cobra.Command{
		Use:   "grow",
		Short: "Grow a decision tree from a set of data",
		Long:  `Grow a binary decision tree from a set of data to predict a certain feature.`,
		Run: func(cmd *cobra.Command, args []string) {
			config.applyDefaults(v, cmd)
			err := config.Validate()
			if err != nil {
				fmt.Fprintln(os.Stderr, err)
				os.Exit(1)
			}
			features, err := yaml.ReadFeaturesFromFile(config.metadataInput)
			if err != nil {
				fmt.Fprintln(os.Stderr, err)
				os.Exit(2)
			}
			features, label, err := splitOffLabel(features, config.labelFeature)
			if err != nil {
				fmt.Fprintln(os.Stderr, err)
				os.Exit(3)
			}
			trainingSet, err := config.trainingSet(features, label)
			if err != nil {
				fmt.Fprintln(os.Stderr, err)
				os.Exit(4)
			}
			strategy, err := strategyFor(config.strategy)
			if err != nil {
				fmt.Fprintln(os.Stderr, err)
				os.Exit(5)
			}
			t, err := tree.New(strategy, config.maxHeight, config.maxLeafSize, config.minPurityIncrease)
			if err != nil {
				fmt.Fprintln(os.Stderr, err)
				os.Exit(6)
			}
			config.Logf("Growing tree from a set with %d samples and %d features to predict %s ...", trainingSet.NumSamples(), trainingSet.NumFeatures(), label.Name())
			err = t.Grow(trainingSet)
			if err != nil {
				fmt.Fprintf(os.Stderr, "growing the tree: %v\n", err)
				os.Exit(7)
			}
			config.Logf("Done: height %d, balance %d", t.Height(), t.Balance())
			config.Logf("%v", t)
			err = outputTree(config.output, t)
			if err != nil {
				fmt.Fprintln(os.Stderr, err)
				os.Exit(8)
			}
		},
	}
	cmd.PersistentFlags().StringVarP(&(config.dataInput), "input", "i", "", "path to an input CSV (.csv) or SQLite3 (.db) file, or a PostgreSQL or MongoDB connection URL with data to use to grow the tree (defaults to STDIN, interpreted as CSV)")
	cmd.PersistentFlags().StringVarP(&(config.metadataInput), "metadata", "m", "", "path to a YML file with metadata describing the different features available on the input (required)")
	cmd.PersistentFlags().StringVarP(&(config.output), "output", "o", "", "path to a file to which the grown tree will be written in JSON format (defaults to STDOUT)")
	cmd.PersistentFlags().StringVarP(&(config.labelFeature), "label-feature", "c", "", "name of the feature the grown tree should predict (required)")
	cmd.PersistentFlags().StringVarP(&(config.strategy), "strategy", "s", "gini", "splitting strategy to grow with: gini, entropy or variance")
	cmd.PersistentFlags().StringVar(&(config.table), "table", "samples", "name of the table or collection with the training data on DB inputs")
	cmd.PersistentFlags().StringVar(&(config.mongoDB), "db-name", "mltree", "name of the database with the training data on MongoDB inputs")
	cmd.PersistentFlags().IntVar(&(config.maxDBConns), "max-db-conns", 0, "limit to DB connections opened at a time (defaults to 0: no limit)")
	cmd.PersistentFlags().Int("max-height", 0, "maximum height the grown tree may reach")
	cmd.PersistentFlags().Int("max-leaf-size", 0, "maximum number of samples a branch may hold before it must be split further")
	cmd.PersistentFlags().Float64("min-purity-increase", -1.0, "minimum purity increase a split must achieve to be kept")
	v.SetDefault("max-height", 50)
	v.SetDefault("max-leaf-size", 3)
	v.SetDefault("min-purity-increase", 1e-7)
	v.BindPFlag("max-height", cmd.PersistentFlags().Lookup("max-height"))
	v.BindPFlag("max-leaf-size", cmd.PersistentFlags().Lookup("max-leaf-size"))
	v.BindPFlag("min-purity-increase", cmd.PersistentFlags().Lookup("min-purity-increase"))
	return cmd
}

// applyDefaults resolves the growth hyperparameters through viper:
// explicit flags win over MLTREE_* environment variables, which win
// over a .mltree.yml config file, which wins over built-in defaults.
func (gcc *growCmdConfig) applyDefaults(v *viper.Viper, cmd *cobra.Command) {
	v.SetConfigName(".mltree")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	if home, err := os.UserHomeDir(); err == nil {
		v.AddConfigPath(home)
	}
	v.SetEnvPrefix("mltree")
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()
	if err := v.ReadInConfig(); err == nil {
		gcc.Logf("Using config file %s", v.ConfigFileUsed())
	}
	gcc.maxHeight = v.GetInt("max-height")
	gcc.maxLeafSize = v.GetInt("max-leaf-size")
	gcc.minPurityIncrease = v.GetFloat64("min-purity-increase")
}

func (gcc *growCmdConfig) Validate() error {
	if gcc.metadataInput == "" {
		return fmt.Errorf("required metadata flag was not set")
	}
	if gcc.labelFeature == "" {
		return fmt.Errorf("required label-feature flag was not set")
	}
	return nil
}

func (gcc *growCmdConfig) trainingSet(features []feature.Feature, label feature.Feature) (*dataset.Labeled, error) {
	ctx := context.Background()
	if strings.HasPrefix(gcc.dataInput, "postgresql://") {
		gcc.Logf("Creating PostgreSQL adapter for url %s to read training set...", gcc.dataInput)
		adapter, err := pgadapter.New(gcc.dataInput)
		if err != nil {
			return nil, err
		}
		defer adapter.Close()
		return sqldataset.Read(ctx, adapter, gcc.table, features, label)
	}
	if strings.HasPrefix(gcc.dataInput, "mongodb://") {
		gcc.Logf("Connecting to MongoDB at %s to read training set...", gcc.dataInput)
		session, err := mongodataset.Open(gcc.dataInput)
		if err != nil {
			return nil, err
		}
		defer session.Close()
		return mongodataset.Read(ctx, session, gcc.mongoDB, gcc.table, features, label)
	}
	if strings.HasSuffix(gcc.dataInput, ".db") {
		gcc.Logf("Creating SQLite3 adapter for file %s to read training set...", gcc.dataInput)
		adapter, err := sqlite3adapter.New(gcc.dataInput, gcc.maxDBConns)
		if err != nil {
			return nil, err
		}
		defer adapter.Close()
		return sqldataset.Read(ctx, adapter, gcc.table, features, label)
	}
	var f *os.File
	if gcc.dataInput == "" {
		gcc.Logf("Reading training set from STDIN...")
		f = os.Stdin
	} else {
		gcc.Logf("Opening %s to read training set...", gcc.dataInput)
		var err error
		f, err = os.Open(gcc.dataInput)
		if err != nil {
			return nil, fmt.Errorf("opening training set at %s: %v", gcc.dataInput, err)
		}
		defer f.Close()
	}
	trainingSet, err := csv.ReadLabeled(f, features, label)
	if err != nil {
		return nil, fmt.Errorf("reading training set: %v", err)
	}
	return trainingSet, nil
}

func splitOffLabel(features []feature.Feature, labelName string) ([]feature.Feature, feature.Feature, error) {
	i := feature.Named(features, labelName)
	if i < 0 {
		return nil, nil, fmt.Errorf("label feature '%s' is not defined", labelName)
	}
	label := features[i]
	return append(append([]feature.Feature{}, features[:i]...), features[i+1:]...), label, nil
}

func strategyFor(name string) (tree.Strategy, error) {
	switch name {
	case "gini":
		return splitter.Gini{}, nil
	case "entropy":
		return splitter.Entropy{}, nil
	case "variance":
		return splitter.Variance{}, nil
	}
	return nil, fmt.Errorf("unknown splitting strategy %s", name)
}

func outputTree(outputPath string, t *tree.Tree) error {
	var f *os.File
	var err error
	if outputPath == "" {
		f = os.Stdout
	} else {
		f, err = os.Create(outputPath)
		if err != nil {
			return err
		}
	}
	defer f.Close()
	return treejson.WriteTree(t, f)
}
