package tree

import (
	"github.com/Textualization/ML/dataset"
)

/*
Node is the structural contract shared by the two kinds of nodes a tree
is made of: *Split decision nodes and *Outcome leaves. Code walking a
tree dispatches on the concrete type with a type switch.
*/
type Node interface {
	// Height returns the height of the subtree rooted at the
	// node: 1 plus the larger of its children's heights, 0 for
	// a childless node.
	Height() int
	// Balance returns the height of the left subtree minus the
	// height of the right subtree, 0 for a childless node.
	Balance() int
	// Children returns the non-nil immediate children of the
	// node, left then right.
	Children() []Node
}

/*
Split is a decision node: it tests the value a sample takes on one
feature column against a split value. A string split value tests exact
equality, a float64 split value tests less-than-or-equal. Samples that
match the test continue down the left branch, the rest down the right.
*/
type Split struct {
	// Column is the index of the tested feature column.
	Column int
	// Value is the split value: a float64 threshold or a string
	// equality target. Its runtime type selects the comparator.
	Value interface{}
	// Impurity is the impurity of the group of samples the split
	// was derived from, before splitting.
	Impurity float64
	// PurityIncrease is the reduction in weighted impurity the
	// split achieves over that group.
	PurityIncrease float64

	Left  Node
	Right Node

	groups *splitGroups
}

// splitGroups holds the two candidate sub-datasets a split produced.
// They live on the split only between its creation by the splitting
// strategy and their consumption during growth.
type splitGroups struct {
	left  *dataset.Labeled
	right *dataset.Labeled
}

/*
NewSplit takes a feature column index, a split value, the impurity of
the pre-split group, the purity increase the split achieves and the two
candidate sub-datasets it produces, and returns a split node holding
them. The candidate groups remain attached until Cleanup is called.
*/
func NewSplit(column int, value interface{}, impurity, purityIncrease float64, left, right *dataset.Labeled) *Split {
	return &Split{
		Column:         column,
		Value:          value,
		Impurity:       impurity,
		PurityIncrease: purityIncrease,
		groups:         &splitGroups{left, right},
	}
}

/*
Groups returns the two candidate sub-datasets attached to the split,
left then right, or nil datasets if they have been released.
*/
func (s *Split) Groups() (*dataset.Labeled, *dataset.Labeled) {
	if s.groups == nil {
		return nil, nil
	}
	return s.groups.left, s.groups.right
}

/*
Cleanup releases the candidate sub-datasets attached to the split so
their memory can be reclaimed once growth has consumed them.
*/
func (s *Split) Cleanup() {
	s.groups = nil
}

/*
AttachLeft sets the left child of the split.
*/
func (s *Split) AttachLeft(n Node) {
	s.Left = n
}

/*
AttachRight sets the right child of the split.
*/
func (s *Split) AttachRight(n Node) {
	s.Right = n
}

/*
Height returns 1 plus the larger of the children's heights, or 0 when
the split has no children attached yet.
*/
func (s *Split) Height() int {
	if s.Left == nil && s.Right == nil {
		return 0
	}
	var left, right int
	if s.Left != nil {
		left = s.Left.Height()
	}
	if s.Right != nil {
		right = s.Right.Height()
	}
	if left > right {
		return 1 + left
	}
	return 1 + right
}

/*
Balance returns the height of the left subtree minus the height of the
right subtree, or 0 when the split has no children attached yet.
*/
func (s *Split) Balance() int {
	if s.Left == nil && s.Right == nil {
		return 0
	}
	var left, right int
	if s.Left != nil {
		left = s.Left.Height()
	}
	if s.Right != nil {
		right = s.Right.Height()
	}
	return left - right
}

/*
Children returns the non-nil children of the split, left then right.
*/
func (s *Split) Children() []Node {
	var children []Node
	if s.Left != nil {
		children = append(children, s.Left)
	}
	if s.Right != nil {
		children = append(children, s.Right)
	}
	return children
}

/*
Outcome is a leaf node holding the predicted label for the samples that
reach it and the impurity of the sample group it was terminated from.
It is immutable after creation.
*/
type Outcome struct {
	// Value is the predicted label: a float64 for regression
	// trees, a string for classification trees.
	Value interface{}
	// Impurity is the impurity of the leaf's sample group.
	Impurity float64
}

/*
NewOutcome takes a predicted label and the impurity of the sample group
it was derived from and returns an outcome leaf.
*/
func NewOutcome(value interface{}, impurity float64) *Outcome {
	return &Outcome{Value: value, Impurity: impurity}
}

// Height returns 0: outcomes are always childless.
func (o *Outcome) Height() int {
	return 0
}

// Balance returns 0: outcomes are always childless.
func (o *Outcome) Balance() int {
	return 0
}

// Children returns nil: outcomes are always childless.
func (o *Outcome) Children() []Node {
	return nil
}
