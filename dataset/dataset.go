/*
Package dataset provides the in-memory labeled dataset that trees are
grown from: an ordered collection of feature vectors paired 1:1 with
labels.

Feature values and labels are scalars: float64 for continuous columns
and string for discrete ones. Sub-packages provide loaders that build
labeled datasets from CSV streams, SQL databases and MongoDB
collections.
*/
package dataset

import (
	"fmt"
)

/*
Labeled is an ordered collection of samples, each a fixed-length vector
of feature values, paired with one label per sample. Samples and labels
are co-indexed and co-sized.
*/
type Labeled struct {
	samples [][]interface{}
	labels  []interface{}
}

/*
NewLabeled takes a slice of samples and a co-indexed slice of labels and
returns a labeled dataset with them. It returns an error if the slices
differ in length or the samples differ in width.
*/
func NewLabeled(samples [][]interface{}, labels []interface{}) (*Labeled, error) {
	if len(samples) != len(labels) {
		return nil, fmt.Errorf("building labeled dataset: %d samples paired with %d labels", len(samples), len(labels))
	}
	for i, s := range samples {
		if len(s) != len(samples[0]) {
			return nil, fmt.Errorf("building labeled dataset: sample %d has %d features, expected %d", i, len(s), len(samples[0]))
		}
	}
	return &Labeled{samples, labels}, nil
}

/*
NumSamples returns the number of samples in the dataset.
*/
func (d *Labeled) NumSamples() int {
	return len(d.samples)
}

/*
NumFeatures returns the number of feature columns of the dataset's
samples, 0 for an empty dataset.
*/
func (d *Labeled) NumFeatures() int {
	if len(d.samples) == 0 {
		return 0
	}
	return len(d.samples[0])
}

/*
Empty returns true if the dataset holds no samples.
*/
func (d *Labeled) Empty() bool {
	return len(d.samples) == 0
}

/*
Samples returns the sample slice backing the dataset. Callers must not
mutate it.
*/
func (d *Labeled) Samples() [][]interface{} {
	return d.samples
}

/*
Labels returns the label slice backing the dataset. Callers must not
mutate it.
*/
func (d *Labeled) Labels() []interface{} {
	return d.labels
}

/*
Sample returns the feature vector at the given index.
*/
func (d *Labeled) Sample(i int) []interface{} {
	return d.samples[i]
}

/*
Label returns the label at the given index.
*/
func (d *Labeled) Label(i int) interface{} {
	return d.labels[i]
}

/*
Partition takes a feature column index and a split value and returns two
sub-datasets: the left one with the samples that match the split test
and the right one with the rest. The test depends on the runtime type of
the value: a string value matches on exact equality, a numeric value
matches when the sample's value for the column is less than or equal to
it.
*/
func (d *Labeled) Partition(column int, value interface{}) (*Labeled, *Labeled) {
	left := &Labeled{}
	right := &Labeled{}
	if v, ok := value.(string); ok {
		for i, s := range d.samples {
			if sv, ok := s[column].(string); ok && sv == v {
				left.append(s, d.labels[i])
			} else {
				right.append(s, d.labels[i])
			}
		}
		return left, right
	}
	threshold, _ := value.(float64)
	for i, s := range d.samples {
		if sv, ok := s[column].(float64); ok && sv <= threshold {
			left.append(s, d.labels[i])
		} else {
			right.append(s, d.labels[i])
		}
	}
	return left, right
}

/*
Merge returns a dataset with the samples and labels of the receiver
followed by those of the given dataset.
*/
func (d *Labeled) Merge(other *Labeled) *Labeled {
	merged := &Labeled{
		samples: make([][]interface{}, 0, len(d.samples)+len(other.samples)),
		labels:  make([]interface{}, 0, len(d.labels)+len(other.labels)),
	}
	merged.samples = append(merged.samples, d.samples...)
	merged.samples = append(merged.samples, other.samples...)
	merged.labels = append(merged.labels, d.labels...)
	merged.labels = append(merged.labels, other.labels...)
	return merged
}

/*
Column returns the values the dataset's samples take on the given
feature column, in sample order.
*/
func (d *Labeled) Column(column int) []interface{} {
	values := make([]interface{}, len(d.samples))
	for i, s := range d.samples {
		values[i] = s[column]
	}
	return values
}

func (d *Labeled) append(sample []interface{}, label interface{}) {
	d.samples = append(d.samples, sample)
	d.labels = append(d.labels, label)
}
