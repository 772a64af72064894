package recommend

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"sync"
	"sync/atomic"

	"offerPilot/domain"
	"offerPilot/pkg/logger"
)

// Embedder maps text to unit-length vectors. It is an opaque external
// capability; failures surface as domain.ErrEncoderUnavailable wrapped
// errors and are never retried here.
type Embedder interface {
	Embed(ctx context.Context, texts []string) ([][]float64, error)
}

type VendorRepository interface {
	FindAll(ctx context.Context) ([]domain.Vendor, error)
	// Version changes whenever catalog rows change; it gates re-embedding.
	Version(ctx context.Context) (string, error)
}

// VectorCache persists per-blob embeddings across restarts and catalog
// edits so only new blobs hit the encoder. Optional.
type VectorCache interface {
	GetVectors(ctx context.Context, keys []string) (map[string][]float64, error)
	SetVectors(ctx context.Context, vectors map[string][]float64) error
}

// catalogSnapshot is immutable after construction and shared read-only
// across anchors and requests.
type catalogSnapshot struct {
	version string
	vendors []domain.Vendor
	vectors [][]float64 // row i belongs to vendors[i]
}

type Catalog struct {
	vendorRepo VendorRepository
	embedder   Embedder
	cache      VectorCache // nil-able

	mu   sync.Mutex // single writer during rebuild
	snap atomic.Pointer[catalogSnapshot]
}

func NewCatalog(vendorRepo VendorRepository, embedder Embedder, cache VectorCache) *Catalog {
	return &Catalog{
		vendorRepo: vendorRepo,
		embedder:   embedder,
		cache:      cache,
	}
}

// Snapshot returns the current catalog with its embedding matrix,
// rebuilding only when the catalog version moved.
func (c *Catalog) Snapshot(ctx context.Context) (*catalogSnapshot, error) {
	version, err := c.vendorRepo.Version(ctx)
	if err != nil {
		return nil, fmt.Errorf("catalog version: %w", err)
	}

	if cur := c.snap.Load(); cur != nil && cur.version == version {
		return cur, nil
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	// another request may have rebuilt while we waited
	if cur := c.snap.Load(); cur != nil && cur.version == version {
		return cur, nil
	}

	vendors, err := c.vendorRepo.FindAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("load vendor catalog: %w", err)
	}

	vectors, err := c.embedVendors(ctx, vendors)
	if err != nil {
		return nil, err
	}

	snap := &catalogSnapshot{
		version: version,
		vendors: vendors,
		vectors: vectors,
	}
	c.snap.Store(snap)

	logger.Info("vendor catalog embedded",
		"version", version,
		"vendors", len(vendors),
	)

	return snap, nil
}

func vectorKey(blob string) string {
	sum := sha256.Sum256([]byte(blob))
	return "reco:vec:" + hex.EncodeToString(sum[:])
}

func (c *Catalog) embedVendors(ctx context.Context, vendors []domain.Vendor) ([][]float64, error) {
	vectors := make([][]float64, len(vendors))

	blobs := make([]string, len(vendors))
	keys := make([]string, len(vendors))
	for i, v := range vendors {
		blobs[i] = v.EmbedBlob()
		keys[i] = vectorKey(blobs[i])
	}

	cached := map[string][]float64{}
	if c.cache != nil {
		var err error
		cached, err = c.cache.GetVectors(ctx, keys)
		if err != nil {
			// cache miss is fine; the encoder is the source of truth
			logger.Warn("vector cache read failed", "error", err)
			cached = map[string][]float64{}
		}
	}

	missingIdx := make([]int, 0, len(vendors))
	missingBlobs := make([]string, 0, len(vendors))
	for i := range vendors {
		if vec, ok := cached[keys[i]]; ok {
			vectors[i] = vec
			continue
		}
		missingIdx = append(missingIdx, i)
		missingBlobs = append(missingBlobs, blobs[i])
	}

	if len(missingBlobs) > 0 {
		embedded, err := c.embedder.Embed(ctx, missingBlobs)
		if err != nil {
			return nil, fmt.Errorf("embed vendor catalog: %w", err)
		}
		if len(embedded) != len(missingBlobs) {
			return nil, fmt.Errorf("%w: got %d vectors for %d texts",
				domain.ErrEncoderUnavailable, len(embedded), len(missingBlobs))
		}

		toCache := make(map[string][]float64, len(missingIdx))
		for j, i := range missingIdx {
			vectors[i] = embedded[j]
			toCache[keys[i]] = embedded[j]
		}

		if c.cache != nil {
			if err := c.cache.SetVectors(ctx, toCache); err != nil {
				logger.Warn("vector cache write failed", "error", err)
			}
		}

		EncoderBatchesTotal.Inc()
	}

	return vectors, nil
}
