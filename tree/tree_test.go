package tree_test

import (
	"testing"

	"github.com/Textualization/ML/dataset"
	"github.com/Textualization/ML/splitter"
	"github.com/Textualization/ML/tree"
	"github.com/stretchr/testify/require"
)

func labeled(t *testing.T, samples [][]interface{}, labels []interface{}) *dataset.Labeled {
	t.Helper()
	d, err := dataset.NewLabeled(samples, labels)
	require.NoError(t, err)
	return d
}

// separable returns a two-class dataset perfectly separated by
// feature 0 at 3.0, with an uninformative second column.
func separable(t *testing.T) *dataset.Labeled {
	t.Helper()
	return labeled(t,
		[][]interface{}{
			{1.0, 1.0}, {2.0, 1.0}, {3.0, 1.0},
			{7.0, 1.0}, {8.0, 1.0}, {9.0, 1.0},
		},
		[]interface{}{"a", "a", "a", "b", "b", "b"},
	)
}

func TestNewValidatesHyperparameters(t *testing.T) {
	t.Parallel()

	_, err := tree.New(splitter.Gini{}, 0, 3, 0)
	require.Error(t, err)

	_, err = tree.New(splitter.Gini{}, 10, 0, 0)
	require.Error(t, err)

	_, err = tree.New(splitter.Gini{}, 10, 3, -0.5)
	require.Error(t, err)

	dt, err := tree.New(splitter.Gini{}, 10, 3, 0)
	require.NoError(t, err)
	require.True(t, dt.Bare())
	require.Zero(t, dt.Height())
	require.Zero(t, dt.Balance())
}

func TestGrowSeparableDataset(t *testing.T) {
	t.Parallel()

	dt, err := tree.New(splitter.Gini{}, 10, 3, 0)
	require.NoError(t, err)
	require.NoError(t, dt.Grow(separable(t)))

	require.False(t, dt.Bare())
	require.Equal(t, 1, dt.Height())
	require.Zero(t, dt.Balance())
	require.Equal(t, 2, dt.FeatureCount())

	// held-out samples on either side of the boundary
	left := dt.Search([]interface{}{2.5, 1.0})
	require.NotNil(t, left)
	require.Equal(t, "a", left.Value)

	right := dt.Search([]interface{}{5.5, 1.0})
	require.NotNil(t, right)
	require.Equal(t, "b", right.Value)
	require.Zero(t, right.Impurity)
}

func TestSearchIsIdempotent(t *testing.T) {
	t.Parallel()

	dt, err := tree.New(splitter.Gini{}, 10, 3, 0)
	require.NoError(t, err)
	require.NoError(t, dt.Grow(separable(t)))

	sample := []interface{}{1.5, 1.0}
	first := dt.Search(sample)
	second := dt.Search(sample)
	require.Same(t, first, second)
}

func TestSearchOnBareTree(t *testing.T) {
	t.Parallel()

	dt, err := tree.New(splitter.Gini{}, 10, 3, 0)
	require.NoError(t, err)
	require.Nil(t, dt.Search([]interface{}{1.0}))
}

func TestGrowCollapsesTrivialSplit(t *testing.T) {
	t.Parallel()

	// identical samples: any split leaves one side empty, so it
	// collapses into a single merged leaf attached on both sides
	dt, err := tree.New(splitter.Gini{}, 10, 1, 0)
	require.NoError(t, err)
	require.NoError(t, dt.Grow(labeled(t,
		[][]interface{}{{1.0}, {1.0}, {1.0}, {1.0}},
		[]interface{}{"a", "a", "a", "a"},
	)))

	root, ok := dt.Root().(*tree.Split)
	require.True(t, ok)
	require.Same(t, root.Left, root.Right)

	leaf, ok := root.Left.(*tree.Outcome)
	require.True(t, ok)
	require.Equal(t, "a", leaf.Value)
	require.Zero(t, leaf.Impurity)
}

func TestGrowUniformLabels(t *testing.T) {
	t.Parallel()

	dt, err := tree.New(splitter.Gini{}, 10, 3, 0)
	require.NoError(t, err)
	require.NoError(t, dt.Grow(labeled(t,
		[][]interface{}{{1.0}, {2.0}, {3.0}, {4.0}},
		[]interface{}{"a", "a", "a", "a"},
	)))

	dt.Traverse(func(n tree.Node) bool {
		if leaf, ok := n.(*tree.Outcome); ok {
			require.Equal(t, "a", leaf.Value)
			require.Zero(t, leaf.Impurity)
		}
		return true
	})
	require.Equal(t, "a", dt.Search([]interface{}{2.5}).Value)
}

func TestMaxHeightForcesLeaves(t *testing.T) {
	t.Parallel()

	dt, err := tree.New(splitter.Gini{}, 1, 1, 0)
	require.NoError(t, err)
	require.NoError(t, dt.Grow(separable(t)))

	require.Equal(t, 1, dt.Height())
	root, ok := dt.Root().(*tree.Split)
	require.True(t, ok)
	_, ok = root.Left.(*tree.Outcome)
	require.True(t, ok)
	_, ok = root.Right.(*tree.Outcome)
	require.True(t, ok)
}

func TestGrownHeightNeverExceedsMaxHeight(t *testing.T) {
	t.Parallel()

	d := labeled(t,
		[][]interface{}{
			{1.0}, {2.0}, {3.0}, {4.0},
			{5.0}, {6.0}, {7.0}, {8.0},
		},
		[]interface{}{"a", "a", "b", "b", "c", "c", "d", "d"},
	)
	for _, maxHeight := range []int{1, 2, 3, 10} {
		dt, err := tree.New(splitter.Gini{}, maxHeight, 1, 0)
		require.NoError(t, err)
		require.NoError(t, dt.Grow(d))
		require.LessOrEqual(t, dt.Height(), maxHeight)
	}
}

// lowGainStrategy caps the purity increase reported by every split so
// the pruning threshold can be exercised deterministically.
type lowGainStrategy struct {
	tree.Strategy
}

func (s lowGainStrategy) Split(d *dataset.Labeled) (*tree.Split, error) {
	split, err := s.Strategy.Split(d)
	if err != nil {
		return nil, err
	}
	split.PurityIncrease = 0.1
	return split, nil
}

func TestPruningOverridesLowGainSplits(t *testing.T) {
	t.Parallel()

	dt, err := tree.New(lowGainStrategy{splitter.Gini{}}, 10, 1, 0.5)
	require.NoError(t, err)
	require.NoError(t, dt.Grow(separable(t)))

	// both sides held more than maxLeafSize samples, so splits
	// were produced and then overridden with leaves terminated
	// from the original groups
	require.Equal(t, 1, dt.Height())
	root, ok := dt.Root().(*tree.Split)
	require.True(t, ok)

	left, ok := root.Left.(*tree.Outcome)
	require.True(t, ok)
	require.Equal(t, "a", left.Value)

	right, ok := root.Right.(*tree.Outcome)
	require.True(t, ok)
	require.Equal(t, "b", right.Value)
}

func TestGrownSplitsClearPurityThreshold(t *testing.T) {
	t.Parallel()

	dt, err := tree.New(splitter.Gini{}, 10, 2, 0.05)
	require.NoError(t, err)
	require.NoError(t, dt.Grow(labeled(t,
		[][]interface{}{
			{1.0}, {2.0}, {3.0}, {4.0},
			{5.0}, {6.0}, {7.0}, {8.0},
		},
		[]interface{}{"a", "a", "b", "b", "c", "c", "d", "d"},
	)))

	var root tree.Node = dt.Root()
	dt.Traverse(func(n tree.Node) bool {
		if split, ok := n.(*tree.Split); ok && n != root {
			require.GreaterOrEqual(t, split.PurityIncrease, 0.05)
		}
		return true
	})
}

func TestGrowReleasesCandidateGroups(t *testing.T) {
	t.Parallel()

	dt, err := tree.New(splitter.Gini{}, 10, 1, 0)
	require.NoError(t, err)
	require.NoError(t, dt.Grow(separable(t)))

	dt.Traverse(func(n tree.Node) bool {
		if split, ok := n.(*tree.Split); ok {
			left, right := split.Groups()
			require.Nil(t, left)
			require.Nil(t, right)
		}
		return true
	})
}

func TestTraverse(t *testing.T) {
	t.Parallel()

	dt, err := tree.New(splitter.Gini{}, 10, 3, 0)
	require.NoError(t, err)
	require.NoError(t, dt.Grow(separable(t)))

	var nodes []tree.Node
	dt.Traverse(func(n tree.Node) bool {
		nodes = append(nodes, n)
		return true
	})
	require.Len(t, nodes, 3)

	root, ok := nodes[0].(*tree.Split)
	require.True(t, ok)
	require.Same(t, root.Left, nodes[1])
	require.Same(t, root.Right, nodes[2])

	// traversal can be restarted and stopped early
	var visited int
	dt.Traverse(func(tree.Node) bool {
		visited++
		return false
	})
	require.Equal(t, 1, visited)
}

func TestTraverseOnBareTree(t *testing.T) {
	t.Parallel()

	dt, err := tree.New(splitter.Gini{}, 10, 3, 0)
	require.NoError(t, err)
	dt.Traverse(func(tree.Node) bool {
		t.Fatal("bare tree should yield no nodes")
		return false
	})
}

func TestFeatureImportances(t *testing.T) {
	t.Parallel()

	dt, err := tree.New(splitter.Gini{}, 10, 3, 0)
	require.NoError(t, err)
	require.NoError(t, dt.Grow(separable(t)))

	importances, err := dt.FeatureImportances()
	require.NoError(t, err)
	require.Len(t, importances, 2)
	require.InDelta(t, 0.5, importances[0], 1e-9)
	// the uninformative column was never split on
	require.Zero(t, importances[1])
}

func TestFeatureImportancesOnBareTree(t *testing.T) {
	t.Parallel()

	dt, err := tree.New(splitter.Gini{}, 10, 3, 0)
	require.NoError(t, err)
	_, err = dt.FeatureImportances()
	require.ErrorIs(t, err, tree.ErrBareTree)
}

func TestRegrowReplacesTree(t *testing.T) {
	t.Parallel()

	dt, err := tree.New(splitter.Gini{}, 10, 3, 0)
	require.NoError(t, err)
	require.NoError(t, dt.Grow(separable(t)))
	firstRoot := dt.Root()

	require.NoError(t, dt.Grow(labeled(t,
		[][]interface{}{{1.0}, {2.0}},
		[]interface{}{"a", "b"},
	)))
	require.NotSame(t, firstRoot, dt.Root())
	require.Equal(t, 1, dt.FeatureCount())
}

func TestRestoredTreeCannotGrow(t *testing.T) {
	t.Parallel()

	dt := tree.Restore(tree.NewOutcome("a", 0), 1)
	require.False(t, dt.Bare())
	require.Error(t, dt.Grow(labeled(t, [][]interface{}{{1.0}}, []interface{}{"a"})))
}

func TestRegressionGrowAndSearch(t *testing.T) {
	t.Parallel()

	dt, err := tree.New(splitter.Variance{}, 10, 2, 0)
	require.NoError(t, err)
	require.NoError(t, dt.Grow(labeled(t,
		[][]interface{}{{1.0}, {2.0}, {10.0}, {11.0}},
		[]interface{}{1.0, 2.0, 10.0, 11.0},
	)))

	low := dt.Search([]interface{}{1.5})
	require.NotNil(t, low)
	require.Equal(t, 1.5, low.Value)

	high := dt.Search([]interface{}{12.0})
	require.NotNil(t, high)
	require.Equal(t, 10.5, high.Value)
}
