package store_test

import (
	"context"
	"testing"

	"github.com/Textualization/ML/dataset"
	"github.com/Textualization/ML/splitter"
	"github.com/Textualization/ML/store"
	"github.com/Textualization/ML/tree"
	"github.com/stretchr/testify/require"
)

func grownTree(t *testing.T) *tree.Tree {
	t.Helper()
	d, err := dataset.NewLabeled(
		[][]interface{}{{1.0}, {2.0}, {7.0}, {8.0}},
		[]interface{}{"a", "a", "b", "b"},
	)
	require.NoError(t, err)
	dt, err := tree.New(splitter.Gini{}, 10, 2, 0)
	require.NoError(t, err)
	require.NoError(t, dt.Grow(d))
	return dt
}

func TestMemoryModelStoreSaveAndLoad(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	ms := store.NewMemoryModelStore()
	defer ms.Close(ctx)

	grown := grownTree(t)
	id, err := ms.Save(ctx, "model-1", grown)
	require.NoError(t, err)
	require.Equal(t, "model-1", id)

	loaded, err := ms.Load(ctx, "model-1")
	require.NoError(t, err)
	require.NotNil(t, loaded)
	require.Equal(t, grown.Height(), loaded.Height())
	require.Equal(t, "a", loaded.Search([]interface{}{1.5}).Value)
	require.Equal(t, "b", loaded.Search([]interface{}{7.5}).Value)
}

func TestMemoryModelStoreGeneratesID(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	ms := store.NewMemoryModelStore()
	defer ms.Close(ctx)

	id, err := ms.Save(ctx, "", grownTree(t))
	require.NoError(t, err)
	require.NotEmpty(t, id)

	loaded, err := ms.Load(ctx, id)
	require.NoError(t, err)
	require.NotNil(t, loaded)
}

func TestMemoryModelStoreLoadMissing(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	ms := store.NewMemoryModelStore()
	defer ms.Close(ctx)

	loaded, err := ms.Load(ctx, "nope")
	require.NoError(t, err)
	require.Nil(t, loaded)
}

func TestMemoryModelStoreSaveBareTree(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	ms := store.NewMemoryModelStore()
	defer ms.Close(ctx)

	bare, err := tree.New(splitter.Gini{}, 10, 2, 0)
	require.NoError(t, err)
	_, err = ms.Save(ctx, "bare", bare)
	require.ErrorIs(t, err, tree.ErrBareTree)
}

func TestMemoryModelStoreListAndDelete(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	ms := store.NewMemoryModelStore()
	defer ms.Close(ctx)

	grown := grownTree(t)
	_, err := ms.Save(ctx, "one", grown)
	require.NoError(t, err)
	_, err = ms.Save(ctx, "two", grown)
	require.NoError(t, err)

	ids, err := ms.List(ctx)
	require.NoError(t, err)
	require.ElementsMatch(t, []string{"one", "two"}, ids)

	require.NoError(t, ms.Delete(ctx, "one"))
	ids, err = ms.List(ctx)
	require.NoError(t, err)
	require.ElementsMatch(t, []string{"two"}, ids)

	loaded, err := ms.Load(ctx, "one")
	require.NoError(t, err)
	require.Nil(t, loaded)
}
