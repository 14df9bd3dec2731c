/*
Package tree implements a generic binary decision-tree growth and
inference engine. The engine recursively partitions a labeled dataset
into a binary tree whose split nodes test one feature column against a
threshold or category and whose leaves carry a predicted outcome.

The per-algorithm decision logic, which feature and value to split on,
how to score disorder and what to predict at a leaf, is supplied by a
Strategy injected at construction, so concrete criteria such as Gini,
entropy or variance live in separate, independently testable
implementations.
*/
package tree

import (
	"fmt"

	"github.com/Textualization/ML/dataset"
)

/*
Strategy supplies the algorithm-specific decision logic a tree is grown
with.
*/
type Strategy interface {
	// Split takes a dataset with at least 2 samples, selects the
	// feature column and value that best partitions it and returns
	// a split node populated with its column, value, impurity,
	// purity increase and the two candidate groups the partition
	// produced, attached as transient state.
	Split(*dataset.Labeled) (*Split, error)
	// Terminate takes a dataset, which may hold a single sample,
	// and returns a leaf with its prediction and impurity.
	Terminate(*dataset.Labeled) (*Outcome, error)
	// Impurity takes a label sequence and returns its non-negative
	// disorder score, 0 meaning perfectly pure.
	Impurity(labels []interface{}) (float64, error)
}

// Error is an error related to growing or querying a tree.
type Error string

func (e Error) Error() string {
	return string(e)
}

/*
ErrBareTree is the error returned by operations that require a grown
tree when invoked before Grow. It flags a precondition violation to fix
in calling code, not a contingency to handle.
*/
const ErrBareTree = Error("tree has not been grown")

/*
Tree is a binary decision tree. It exclusively owns its node graph: the
root owns every node transitively and no node is shared outside the
tree. A tree is bare until Grow is called; a subsequent Grow replaces
the node graph wholesale.

A tree must not be grown concurrently with any other operation on the
same instance. Once grown it is safe for concurrent reads.
*/
type Tree struct {
	strategy          Strategy
	maxHeight         int
	maxLeafSize       int
	minPurityIncrease float64
	featureCount      int
	root              Node
}

/*
New takes a splitting strategy and the growth hyperparameters, maximum
tree height, maximum number of samples a branch may hold before it must
be split further, and minimum purity increase a split must clear to be
kept, and returns a bare tree or an error if a hyperparameter is out of
range.
*/
func New(strategy Strategy, maxHeight, maxLeafSize int, minPurityIncrease float64) (*Tree, error) {
	if maxHeight < 1 {
		return nil, fmt.Errorf("max height must be greater than 0, got %d", maxHeight)
	}
	if maxLeafSize < 1 {
		return nil, fmt.Errorf("max leaf size must be greater than 0, got %d", maxLeafSize)
	}
	if minPurityIncrease < 0.0 {
		return nil, fmt.Errorf("min purity increase must not be negative, got %f", minPurityIncrease)
	}
	return &Tree{
		strategy:          strategy,
		maxHeight:         maxHeight,
		maxLeafSize:       maxLeafSize,
		minPurityIncrease: minPurityIncrease,
	}, nil
}

/*
Restore takes a root node and a feature count and returns a tree rebuilt
around previously grown state, as decoded from a serialized tree. A
restored tree can predict, report importances and export itself but has
no strategy to grow with.
*/
func Restore(root Node, featureCount int) *Tree {
	return &Tree{
		maxHeight:    1,
		maxLeafSize:  1,
		featureCount: featureCount,
		root:         root,
	}
}

/*
Grow takes a labeled dataset and grows the tree from it, replacing any
previously grown node graph. It returns an error if the tree has no
strategy or the strategy fails to split or terminate a group.

Growth is iterative: an explicit work stack of (split, depth) pairs
replaces native recursion, so call-stack depth stays constant while the
tracked depth is compared against the height limit. Each iteration
consumes the pending split's two candidate groups, releases them, and
attaches two children: leaves when a group is empty, the height limit
is hit or a group is small enough, further splits otherwise. A split
whose purity increase falls below the configured minimum has any split
children overridden with leaves terminated from the original groups.
*/
func (t *Tree) Grow(d *dataset.Labeled) error {
	if t.strategy == nil {
		return fmt.Errorf("growing tree: no splitting strategy")
	}
	t.featureCount = d.NumFeatures()
	root, err := t.strategy.Split(d)
	if err != nil {
		return fmt.Errorf("growing tree: %v", err)
	}
	t.root = root

	type pending struct {
		node  *Split
		depth int
	}
	stack := []pending{{root, 0}}
	for len(stack) > 0 {
		current, depth := stack[len(stack)-1].node, stack[len(stack)-1].depth
		stack = stack[:len(stack)-1]

		left, right := current.Groups()
		current.Cleanup()
		depth++

		if left.Empty() || right.Empty() {
			// The split separated nothing: collapse it into a
			// single leaf attached on both sides.
			leaf, err := t.strategy.Terminate(left.Merge(right))
			if err != nil {
				return fmt.Errorf("growing tree: %v", err)
			}
			current.AttachLeft(leaf)
			current.AttachRight(leaf)
			continue
		}

		if depth >= t.maxHeight {
			leftLeaf, err := t.strategy.Terminate(left)
			if err != nil {
				return fmt.Errorf("growing tree: %v", err)
			}
			rightLeaf, err := t.strategy.Terminate(right)
			if err != nil {
				return fmt.Errorf("growing tree: %v", err)
			}
			current.AttachLeft(leftLeaf)
			current.AttachRight(rightLeaf)
			continue
		}

		leftChild, err := t.growChild(left)
		if err != nil {
			return err
		}
		current.AttachLeft(leftChild)

		rightChild, err := t.growChild(right)
		if err != nil {
			return err
		}
		current.AttachRight(rightChild)

		if current.PurityIncrease >= t.minPurityIncrease {
			if split, ok := leftChild.(*Split); ok {
				stack = append(stack, pending{split, depth})
			}
			if split, ok := rightChild.(*Split); ok {
				stack = append(stack, pending{split, depth})
			}
			continue
		}
		// The split did not clear the purity increase threshold:
		// override any split children with leaves terminated from
		// the original groups.
		if _, ok := leftChild.(*Split); ok {
			leaf, err := t.strategy.Terminate(left)
			if err != nil {
				return fmt.Errorf("growing tree: %v", err)
			}
			current.AttachLeft(leaf)
		}
		if _, ok := rightChild.(*Split); ok {
			leaf, err := t.strategy.Terminate(right)
			if err != nil {
				return fmt.Errorf("growing tree: %v", err)
			}
			current.AttachRight(leaf)
		}
	}
	return nil
}

// growChild splits groups still larger than the leaf size limit and
// terminates the rest.
func (t *Tree) growChild(group *dataset.Labeled) (Node, error) {
	if group.NumSamples() > t.maxLeafSize {
		split, err := t.strategy.Split(group)
		if err != nil {
			return nil, fmt.Errorf("growing tree: %v", err)
		}
		return split, nil
	}
	leaf, err := t.strategy.Terminate(group)
	if err != nil {
		return nil, fmt.Errorf("growing tree: %v", err)
	}
	return leaf, nil
}

/*
Search takes a sample, a feature vector with as many columns as the
dataset the tree was grown from, and returns the outcome leaf the
sample reaches, or nil if the tree is bare. Each split sends the sample
left when it matches the split's test and right otherwise, so every
sample follows a single deterministic path.
*/
func (t *Tree) Search(sample []interface{}) *Outcome {
	node := t.root
	for node != nil {
		switch n := node.(type) {
		case *Split:
			if v, ok := n.Value.(string); ok {
				if sv, ok := sample[n.Column].(string); ok && sv == v {
					node = n.Left
				} else {
					node = n.Right
				}
				continue
			}
			threshold, _ := n.Value.(float64)
			if sv, ok := sample[n.Column].(float64); ok && sv <= threshold {
				node = n.Left
			} else {
				node = n.Right
			}
		case *Outcome:
			return n
		}
	}
	return nil
}

/*
FeatureImportances returns one importance score per feature column of
the dataset the tree was grown from: the total purity increase of the
splits on that column across the whole tree. Columns never split on
score exactly 0. It returns ErrBareTree if the tree has not been grown.
*/
func (t *Tree) FeatureImportances() ([]float64, error) {
	if t.Bare() {
		return nil, ErrBareTree
	}
	importances := make([]float64, t.featureCount)
	t.Traverse(func(n Node) bool {
		if split, ok := n.(*Split); ok {
			importances[split.Column] += split.PurityIncrease
		}
		return true
	})
	return importances, nil
}

/*
Traverse goes through every node of the tree depth-first from the root,
calling fn with each node until fn returns false or the tree is
exhausted. The walk uses an explicit stack rather than recursion and
yields a node's left subtree before its right one.
*/
func (t *Tree) Traverse(fn func(Node) bool) {
	if t.root == nil {
		return
	}
	stack := []Node{t.root}
	for len(stack) > 0 {
		n := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		if !fn(n) {
			return
		}
		children := n.Children()
		for i := len(children) - 1; i >= 0; i-- {
			stack = append(stack, children[i])
		}
	}
}

/*
Height returns the height of the tree, 0 if it is bare.
*/
func (t *Tree) Height() int {
	if t.root == nil {
		return 0
	}
	return t.root.Height()
}

/*
Balance returns the balance factor of the tree's root, 0 if it is bare.
A positive balance means the tree leans left.
*/
func (t *Tree) Balance() int {
	if t.root == nil {
		return 0
	}
	return t.root.Balance()
}

/*
Bare returns true if the tree has no root, that is, it has not been
grown yet.
*/
func (t *Tree) Bare() bool {
	return t.root == nil
}

/*
Root returns the root node of the tree, nil if it is bare.
*/
func (t *Tree) Root() Node {
	return t.root
}

/*
FeatureCount returns the number of feature columns of the dataset the
tree was grown from, 0 if it is bare.
*/
func (t *Tree) FeatureCount() int {
	return t.featureCount
}
