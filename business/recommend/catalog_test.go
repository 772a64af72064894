package recommend

import (
	"context"
	"testing"

	"offerPilot/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// countingEmbedder wraps stubEmbedder and counts batch calls.
type countingEmbedder struct {
	inner stubEmbedder
	calls int
}

func (e *countingEmbedder) Embed(ctx context.Context, texts []string) ([][]float64, error) {
	e.calls++
	return e.inner.Embed(ctx, texts)
}

type fakeVectorCache struct {
	store map[string][]float64
}

func newFakeVectorCache() *fakeVectorCache {
	return &fakeVectorCache{store: map[string][]float64{}}
}

func (c *fakeVectorCache) GetVectors(_ context.Context, keys []string) (map[string][]float64, error) {
	out := map[string][]float64{}
	for _, key := range keys {
		if vec, ok := c.store[key]; ok {
			out[key] = vec
		}
	}
	return out, nil
}

func (c *fakeVectorCache) SetVectors(_ context.Context, vectors map[string][]float64) error {
	for key, vec := range vectors {
		c.store[key] = vec
	}
	return nil
}

func TestSnapshot_RebuildsOnlyOnVersionChange(t *testing.T) {
	repo := &stubVendorRepo{vendors: testVendors(), version: "v1"}
	embedder := &countingEmbedder{}
	catalog := NewCatalog(repo, embedder, nil)

	first, err := catalog.Snapshot(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, embedder.calls)

	second, err := catalog.Snapshot(context.Background())
	require.NoError(t, err)
	assert.Same(t, first, second)
	assert.Equal(t, 1, embedder.calls, "unchanged version must not re-embed")

	repo.version = "v2"
	third, err := catalog.Snapshot(context.Background())
	require.NoError(t, err)
	assert.NotSame(t, first, third)
	assert.Equal(t, 2, embedder.calls)
}

func TestSnapshot_VectorsAlignWithVendors(t *testing.T) {
	catalog := NewCatalog(&stubVendorRepo{vendors: testVendors(), version: "v1"}, &stubEmbedder{}, nil)

	snap, err := catalog.Snapshot(context.Background())
	require.NoError(t, err)
	require.Len(t, snap.vectors, len(snap.vendors))

	for i, vendor := range snap.vendors {
		want, embErr := (&stubEmbedder{}).Embed(context.Background(), []string{vendor.EmbedBlob()})
		require.NoError(t, embErr)
		assert.Equal(t, want[0], snap.vectors[i])
	}
}

func TestSnapshot_CacheSkipsEncoder(t *testing.T) {
	vendors := testVendors()
	cache := newFakeVectorCache()

	// first build warms the cache
	warm := &countingEmbedder{}
	catalog := NewCatalog(&stubVendorRepo{vendors: vendors, version: "v1"}, warm, cache)
	_, err := catalog.Snapshot(context.Background())
	require.NoError(t, err)
	require.Equal(t, 1, warm.calls)
	assert.Len(t, cache.store, len(vendors))

	// a fresh catalog with the warmed cache never hits the encoder
	cold := &countingEmbedder{}
	rebuilt := NewCatalog(&stubVendorRepo{vendors: vendors, version: "v1"}, cold, cache)
	snap, err := rebuilt.Snapshot(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 0, cold.calls)
	assert.Len(t, snap.vectors, len(vendors))
}

type mismatchEmbedder struct{}

func (mismatchEmbedder) Embed(_ context.Context, texts []string) ([][]float64, error) {
	// one vector short
	out := make([][]float64, 0, len(texts))
	for i := 1; i < len(texts); i++ {
		out = append(out, []float64{0, 0, 1})
	}
	return out, nil
}

func TestSnapshot_VectorCountMismatch(t *testing.T) {
	catalog := NewCatalog(&stubVendorRepo{vendors: testVendors(), version: "v1"}, mismatchEmbedder{}, nil)

	_, err := catalog.Snapshot(context.Background())
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrEncoderUnavailable)
}
