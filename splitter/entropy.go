package splitter

import (
	"math"

	"github.com/Textualization/ML/dataset"
	"github.com/Textualization/ML/tree"
)

/*
Entropy is a classification strategy scoring groups by Shannon entropy,
so splits maximize information gain. Leaves predict the plurality label
of their group.
*/
type Entropy struct{}

/*
Split returns the best split of the given dataset by entropy.
*/
func (e Entropy) Split(d *dataset.Labeled) (*tree.Split, error) {
	return bestSplit(e.Impurity, d)
}

/*
Terminate returns a leaf predicting the plurality label of the given
dataset, carrying the dataset's entropy.
*/
func (e Entropy) Terminate(d *dataset.Labeled) (*tree.Outcome, error) {
	return terminateClassification(e.Impurity, d)
}

/*
Impurity returns the Shannon entropy of the given labels in bits. It is
0 for a pure label sequence.
*/
func (e Entropy) Impurity(labels []interface{}) (float64, error) {
	if len(labels) == 0 {
		return 0, nil
	}
	n := float64(len(labels))
	var entropy float64
	for _, count := range countLabels(labels) {
		p := float64(count) / n
		entropy -= p * math.Log2(p)
	}
	return entropy, nil
}
