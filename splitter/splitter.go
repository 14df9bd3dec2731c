/*
Package splitter provides tree.Strategy implementations: the
algorithm-specific splitting, termination and impurity criteria a
decision tree is grown with. Gini and Entropy grow classification
trees over string labels, Variance grows regression trees over numeric
labels.

All strategies pick splits the same way: for every feature column and
every distinct value it takes on the dataset, partition the dataset on
that value and score the partition by size-weighted impurity; keep the
candidate with the largest impurity reduction. This guarantees a
non-negative purity increase on every returned split.
*/
package splitter

import (
	"fmt"

	"github.com/Textualization/ML/dataset"
	"github.com/Textualization/ML/tree"
)

/*
SplitImpurity takes an impurity function and the two candidate groups
of a split and returns their impurity weighted by group size. Groups of
size 1 or less contribute zero weight, their disorder is definitionally
irrelevant.
*/
func SplitImpurity(impurity func([]interface{}) (float64, error), left, right *dataset.Labeled) (float64, error) {
	n := float64(left.NumSamples() + right.NumSamples())
	var weighted float64
	for _, group := range []*dataset.Labeled{left, right} {
		m := group.NumSamples()
		if m <= 1 {
			continue
		}
		groupImpurity, err := impurity(group.Labels())
		if err != nil {
			return 0, err
		}
		weighted += float64(m) / n * groupImpurity
	}
	return weighted, nil
}

// bestSplit greedily searches every column and distinct column value
// for the partition with the largest purity increase.
func bestSplit(impurity func([]interface{}) (float64, error), d *dataset.Labeled) (*tree.Split, error) {
	if d.NumSamples() < 2 {
		return nil, fmt.Errorf("cannot split a dataset of %d samples", d.NumSamples())
	}
	parentImpurity, err := impurity(d.Labels())
	if err != nil {
		return nil, err
	}
	var best *tree.Split
	for column := 0; column < d.NumFeatures(); column++ {
		for _, value := range distinct(d.Column(column)) {
			left, right := d.Partition(column, value)
			weighted, err := SplitImpurity(impurity, left, right)
			if err != nil {
				return nil, err
			}
			purityIncrease := parentImpurity - weighted
			if best == nil || purityIncrease > best.PurityIncrease {
				best = tree.NewSplit(column, value, parentImpurity, purityIncrease, left, right)
			}
		}
	}
	if best == nil {
		return nil, fmt.Errorf("no feature column to split %d samples on", d.NumSamples())
	}
	return best, nil
}

// distinct returns the unique values of a column in first-appearance
// order.
func distinct(values []interface{}) []interface{} {
	var result []interface{}
	seen := make(map[interface{}]bool)
	for _, v := range values {
		if !seen[v] {
			seen[v] = true
			result = append(result, v)
		}
	}
	return result
}
