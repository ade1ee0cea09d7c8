package categories

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestNewRegistry_LoadsEmbeddedConfig(t *testing.T) {
	registry, err := NewRegistry()
	require.NoError(t, err)

	list := registry.List()
	require.NotEmpty(t, list)

	// Sorted by key for stable API output
	for i := 1; i < len(list); i++ {
		require.Less(t, list[i-1].Key, list[i].Key)
	}

	require.True(t, registry.Has("drawings"))
	require.True(t, registry.Has(DefaultCategory))
	require.False(t, registry.Has("blueprints"))
}

func TestRegistry_Get(t *testing.T) {
	registry, err := NewRegistry()
	require.NoError(t, err)

	cat, err := registry.Get("drawings")
	require.NoError(t, err)
	require.Equal(t, "drawings", cat.Key)
	require.NotEmpty(t, cat.DisplayName)
	require.True(t, cat.Transmittable)

	_, err = registry.Get("blueprints")
	require.Error(t, err)
}
