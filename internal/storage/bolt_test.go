package storage

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBoltProviderRoundTrip(t *testing.T) {
	provider, err := NewBoltProvider(t.TempDir())
	require.NoError(t, err)
	defer provider.Close()

	ctx := context.Background()

	_, found, err := provider.Get(ctx, "favorites")
	require.NoError(t, err)
	assert.False(t, found)

	require.NoError(t, provider.Set(ctx, "favorites", []byte(`[{"id":"m1"}]`)))

	data, found, err := provider.Get(ctx, "favorites")
	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, `[{"id":"m1"}]`, string(data))

	// Overwrites replace the blob wholesale.
	require.NoError(t, provider.Set(ctx, "favorites", []byte(`[]`)))
	data, _, err = provider.Get(ctx, "favorites")
	require.NoError(t, err)
	assert.Equal(t, `[]`, string(data))
}

func TestBoltProviderPersistsAcrossReopen(t *testing.T) {
	dir := t.TempDir()
	ctx := context.Background()

	provider, err := NewBoltProvider(dir)
	require.NoError(t, err)
	require.NoError(t, provider.Set(ctx, "reviews", []byte(`[]`)))
	require.NoError(t, provider.Close())

	reopened, err := NewBoltProvider(dir)
	require.NoError(t, err)
	defer reopened.Close()

	data, found, err := reopened.Get(ctx, "reviews")
	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, `[]`, string(data))
}

func TestBoltProviderHonorsContext(t *testing.T) {
	provider, err := NewBoltProvider(t.TempDir())
	require.NoError(t, err)
	defer provider.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, _, err = provider.Get(ctx, "favorites")
	assert.ErrorIs(t, err, context.Canceled)
	assert.ErrorIs(t, provider.Set(ctx, "favorites", nil), context.Canceled)
}

func TestMemoryProviderCopiesValues(t *testing.T) {
	provider := NewMemoryProvider()
	ctx := context.Background()

	value := []byte(`[1,2,3]`)
	require.NoError(t, provider.Set(ctx, "k", value))
	value[0] = 'X'

	data, found, err := provider.Get(ctx, "k")
	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, `[1,2,3]`, string(data))

	data[0] = 'Y'
	again, _, err := provider.Get(ctx, "k")
	require.NoError(t, err)
	assert.Equal(t, `[1,2,3]`, string(again))
}
