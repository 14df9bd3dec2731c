package splitter

import (
	"github.com/Textualization/ML/dataset"
	"github.com/Textualization/ML/tree"
)

/*
Gini is a classification strategy scoring groups by Gini impurity: the
probability of mislabeling a sample drawn from the group if it were
labeled at random following the group's label distribution. Leaves
predict the plurality label of their group.
*/
type Gini struct{}

/*
Split returns the best split of the given dataset by Gini impurity.
*/
func (g Gini) Split(d *dataset.Labeled) (*tree.Split, error) {
	return bestSplit(g.Impurity, d)
}

/*
Terminate returns a leaf predicting the plurality label of the given
dataset, carrying the dataset's Gini impurity.
*/
func (g Gini) Terminate(d *dataset.Labeled) (*tree.Outcome, error) {
	return terminateClassification(g.Impurity, d)
}

/*
Impurity returns the Gini impurity of the given labels: 1 minus the sum
of squared label probabilities. It is 0 for a pure label sequence.
*/
func (g Gini) Impurity(labels []interface{}) (float64, error) {
	if len(labels) == 0 {
		return 0, nil
	}
	n := float64(len(labels))
	impurity := 1.0
	for _, count := range countLabels(labels) {
		p := float64(count) / n
		impurity -= p * p
	}
	return impurity, nil
}

func countLabels(labels []interface{}) map[interface{}]int {
	counts := make(map[interface{}]int)
	for _, label := range labels {
		counts[label]++
	}
	return counts
}

// terminateClassification builds a plurality-label leaf. Ties break on
// first appearance so termination stays deterministic.
func terminateClassification(impurity func([]interface{}) (float64, error), d *dataset.Labeled) (*tree.Outcome, error) {
	labels := d.Labels()
	counts := countLabels(labels)
	var outcome interface{}
	bestCount := -1
	for _, label := range labels {
		if counts[label] > bestCount {
			outcome = label
			bestCount = counts[label]
		}
	}
	leafImpurity, err := impurity(labels)
	if err != nil {
		return nil, err
	}
	return tree.NewOutcome(outcome, leafImpurity), nil
}
