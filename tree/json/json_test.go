package json_test

import (
	"bytes"
	"strings"
	"testing"

	"github.com/Textualization/ML/dataset"
	"github.com/Textualization/ML/splitter"
	"github.com/Textualization/ML/tree"
	treejson "github.com/Textualization/ML/tree/json"
	"github.com/stretchr/testify/require"
)

func grownTree(t *testing.T) *tree.Tree {
	t.Helper()
	d, err := dataset.NewLabeled(
		[][]interface{}{
			{1.0, 1.0}, {2.0, 1.0}, {3.0, 1.0},
			{7.0, 1.0}, {8.0, 1.0}, {9.0, 1.0},
		},
		[]interface{}{"a", "a", "a", "b", "b", "b"},
	)
	require.NoError(t, err)
	dt, err := tree.New(splitter.Gini{}, 10, 3, 0)
	require.NoError(t, err)
	require.NoError(t, dt.Grow(d))
	return dt
}

func TestWriteReadRoundTrip(t *testing.T) {
	t.Parallel()

	grown := grownTree(t)
	var buf bytes.Buffer
	require.NoError(t, treejson.WriteTree(grown, &buf))

	restored, err := treejson.ReadTree(&buf)
	require.NoError(t, err)
	require.Equal(t, grown.FeatureCount(), restored.FeatureCount())
	require.Equal(t, grown.Height(), restored.Height())

	for _, sample := range [][]interface{}{{2.5, 1.0}, {5.5, 1.0}} {
		want := grown.Search(sample)
		got := restored.Search(sample)
		require.NotNil(t, got)
		require.Equal(t, want.Value, got.Value)
		require.Equal(t, want.Impurity, got.Impurity)
	}

	wantImportances, err := grown.FeatureImportances()
	require.NoError(t, err)
	gotImportances, err := restored.FeatureImportances()
	require.NoError(t, err)
	require.Equal(t, wantImportances, gotImportances)
}

func TestWriteBareTree(t *testing.T) {
	t.Parallel()

	dt, err := tree.New(splitter.Gini{}, 10, 3, 0)
	require.NoError(t, err)
	require.ErrorIs(t, treejson.WriteTree(dt, &bytes.Buffer{}), tree.ErrBareTree)
}

func TestReadInvalidJSON(t *testing.T) {
	t.Parallel()

	_, err := treejson.ReadTree(strings.NewReader("{not json"))
	require.Error(t, err)
}

func TestReadMissingRoot(t *testing.T) {
	t.Parallel()

	_, err := treejson.ReadTree(strings.NewReader(`{"featureCount": 2}`))
	require.Error(t, err)
}

func TestReadUnknownNodeKind(t *testing.T) {
	t.Parallel()

	_, err := treejson.ReadTree(strings.NewReader(`{"featureCount": 1, "root": {"kind": "branch"}}`))
	require.Error(t, err)
}

func TestRoundTripSingleLeaf(t *testing.T) {
	t.Parallel()

	dt := tree.Restore(tree.NewOutcome("a", 0.25), 1)
	var buf bytes.Buffer
	require.NoError(t, treejson.WriteTree(dt, &buf))

	restored, err := treejson.ReadTree(&buf)
	require.NoError(t, err)
	leaf, ok := restored.Root().(*tree.Outcome)
	require.True(t, ok)
	require.Equal(t, "a", leaf.Value)
	require.Equal(t, 0.25, leaf.Impurity)
}
