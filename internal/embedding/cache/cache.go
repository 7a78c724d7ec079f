// Package cache provides a caching decorator for the embedding capability.
package cache

import (
	"context"
	"crypto/sha256"
	"encoding/binary"
	"encoding/hex"
	"errors"
	"fmt"
	"math"

	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"

	"github.com/kailas-cloud/vectorgate/internal/embedding"
)

// ErrKeyNotFound signals a cache miss at the store level.
var ErrKeyNotFound = errors.New("key not found")

const keyPrefix = "vectorgate:emb_cache:"

// Store is the consumer interface for the cache backend.
type Store interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error
}

// CachedEmbedder caches embeddings in a key-value store. Cache failures
// degrade to a miss and never fail the call.
type CachedEmbedder struct {
	inner      embedding.Embedder
	store      Store
	cacheTotal *prometheus.CounterVec
	logger     *zap.Logger
}

// New creates a caching decorator.
// cacheTotal is a counter vec with label "result" ("hit"/"miss"), passed explicitly.
func New(
	inner embedding.Embedder,
	s Store,
	cacheTotal *prometheus.CounterVec,
	logger *zap.Logger,
) *CachedEmbedder {
	return &CachedEmbedder{
		inner:      inner,
		store:      s,
		cacheTotal: cacheTotal,
		logger:     logger,
	}
}

// Embed returns cached vectors where possible and calls the inner embedder
// for the rest. Output order matches input order.
func (c *CachedEmbedder) Embed(ctx context.Context, req embedding.Request) ([][]float32, error) {
	vectors := make([][]float32, len(req.Inputs))
	var missing []string
	var missingIdx []int

	for i, text := range req.Inputs {
		key := c.cacheKey(req, text)
		if vec, ok := c.getFromCache(ctx, key); ok {
			c.incCache("hit")
			vectors[i] = vec
			continue
		}
		c.incCache("miss")
		missing = append(missing, text)
		missingIdx = append(missingIdx, i)
	}

	if len(missing) == 0 {
		return vectors, nil
	}

	fresh, err := c.inner.Embed(ctx, embedding.Request{
		Model:  req.Model,
		Inputs: missing,
		Config: req.Config,
	})
	if err != nil {
		return nil, fmt.Errorf("embed inputs: %w", err)
	}
	if len(fresh) < len(missing) {
		return nil, fmt.Errorf("embedder returned %d vectors for %d inputs", len(fresh), len(missing))
	}

	for j, i := range missingIdx {
		vectors[i] = fresh[j]
		c.putToCache(ctx, c.cacheKey(req, missing[j]), fresh[j])
	}
	return vectors, nil
}

func (c *CachedEmbedder) incCache(result string) {
	if c.cacheTotal != nil {
		c.cacheTotal.WithLabelValues(result).Inc()
	}
}

// cacheKey hashes the model, dimensions, and text so the same text embedded
// under different models never collides.
func (c *CachedEmbedder) cacheKey(req embedding.Request, text string) string {
	h := sha256.New()
	h.Write([]byte(req.Model))
	h.Write([]byte{0})
	if dims, ok := req.Config["dimensions"]; ok {
		fmt.Fprintf(h, "%v", dims)
	}
	h.Write([]byte{0})
	h.Write([]byte(text))
	return keyPrefix + hex.EncodeToString(h.Sum(nil))
}

func (c *CachedEmbedder) getFromCache(ctx context.Context, key string) ([]float32, bool) {
	data, err := c.store.Get(ctx, key)
	if err != nil {
		if !errors.Is(err, ErrKeyNotFound) {
			c.logger.Warn("Failed to get cached embedding", zap.String("key", key), zap.Error(err))
		}
		return nil, false
	}
	if len(data) == 0 {
		return nil, false
	}

	vec, err := bytesToVector(data)
	if err != nil {
		c.logger.Warn("Failed to parse cached embedding", zap.String("key", key), zap.Error(err))
		return nil, false
	}

	return vec, true
}

func (c *CachedEmbedder) putToCache(ctx context.Context, key string, vec []float32) {
	if err := c.store.Set(ctx, key, vectorToBytes(vec)); err != nil {
		c.logger.Warn("Failed to cache embedding", zap.String("key", key), zap.Error(err))
	}
}

func vectorToBytes(v []float32) []byte {
	buf := make([]byte, len(v)*4)
	for i, f := range v {
		binary.LittleEndian.PutUint32(buf[i*4:], math.Float32bits(f))
	}
	return buf
}

func bytesToVector(data []byte) ([]float32, error) {
	if len(data)%4 != 0 {
		return nil, fmt.Errorf("invalid embedding cache data: len=%d (not multiple of 4)", len(data))
	}
	vec := make([]float32, len(data)/4)
	for i := range vec {
		vec[i] = math.Float32frombits(binary.LittleEndian.Uint32(data[i*4:]))
	}
	return vec, nil
}
