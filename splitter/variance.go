package splitter

import (
	"fmt"

	"github.com/Textualization/ML/dataset"
	"github.com/Textualization/ML/tree"
)

/*
Variance is a regression strategy over float64 labels: groups are
scored by the variance of their labels, so splits maximize variance
reduction, and leaves predict the mean label of their group.
*/
type Variance struct{}

/*
Split returns the best split of the given dataset by label variance.
*/
func (v Variance) Split(d *dataset.Labeled) (*tree.Split, error) {
	return bestSplit(v.Impurity, d)
}

/*
Terminate returns a leaf predicting the mean label of the given
dataset, carrying the variance of its labels.
*/
func (v Variance) Terminate(d *dataset.Labeled) (*tree.Outcome, error) {
	mean, err := meanLabel(d.Labels())
	if err != nil {
		return nil, err
	}
	leafImpurity, err := v.Impurity(d.Labels())
	if err != nil {
		return nil, err
	}
	return tree.NewOutcome(mean, leafImpurity), nil
}

/*
Impurity returns the variance of the given float64 labels, or an error
if a label is not numeric. It is 0 for constant labels.
*/
func (v Variance) Impurity(labels []interface{}) (float64, error) {
	if len(labels) == 0 {
		return 0, nil
	}
	mean, err := meanLabel(labels)
	if err != nil {
		return 0, err
	}
	var variance float64
	for _, label := range labels {
		d := label.(float64) - mean
		variance += d * d
	}
	return variance / float64(len(labels)), nil
}

func meanLabel(labels []interface{}) (float64, error) {
	var sum float64
	for i, label := range labels {
		f, ok := label.(float64)
		if !ok {
			return 0, fmt.Errorf("regression expects float64 labels, got %T label at sample %d", label, i)
		}
		sum += f
	}
	return sum / float64(len(labels)), nil
}
