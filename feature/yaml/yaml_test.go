package yaml_test

import (
	"testing"

	"github.com/Textualization/ML/feature"
	"github.com/Textualization/ML/feature/yaml"
	"github.com/stretchr/testify/require"
)

const metadata = `
features:
  age: continuous
  color:
    - red
    - blue
  class:
    - spam
    - ham
`

func TestReadFeatures(t *testing.T) {
	t.Parallel()

	features, err := yaml.ReadFeatures([]byte(metadata))
	require.NoError(t, err)
	require.Len(t, features, 3)

	// declaration order defines column order
	require.Equal(t, []string{"age", "color", "class"}, feature.Names(features))

	_, ok := features[0].(*feature.ContinuousFeature)
	require.True(t, ok)

	color, ok := features[1].(*feature.DiscreteFeature)
	require.True(t, ok)
	require.Equal(t, []string{"red", "blue"}, color.AvailableValues())
}

func TestReadFeaturesWithoutMetadata(t *testing.T) {
	t.Parallel()

	_, err := yaml.ReadFeatures([]byte("something: else"))
	require.Error(t, err)
}

func TestReadFeaturesWithInvalidDeclaration(t *testing.T) {
	t.Parallel()

	_, err := yaml.ReadFeatures([]byte("features:\n  age: 42"))
	require.Error(t, err)
}
