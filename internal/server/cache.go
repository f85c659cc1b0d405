package server

import (
	"crypto/sha256"
	"encoding/binary"
	"encoding/hex"
	"hash"
	"time"

	"github.com/hashicorp/golang-lru/v2/expirable"

	"github.com/jonathan/fleet-estimator/internal/types"
)

// estimateCache holds successful AI estimates keyed by their full input.
// Failures are never cached. A nil cache is a valid, always-missing cache.
type estimateCache struct {
	lru *expirable.LRU[string, types.AIEstimateResult]
}

func newEstimateCache(size int, ttl time.Duration) *estimateCache {
	if size <= 0 {
		return nil
	}
	return &estimateCache{lru: expirable.NewLRU[string, types.AIEstimateResult](size, nil, ttl)}
}

func (c *estimateCache) get(input types.AIEstimateInput) (types.AIEstimateResult, bool) {
	if c == nil {
		return types.AIEstimateResult{}, false
	}
	return c.lru.Get(estimateKey(input))
}

func (c *estimateCache) add(input types.AIEstimateInput, result types.AIEstimateResult) {
	if c == nil {
		return
	}
	c.lru.Add(estimateKey(input), result)
}

func (c *estimateCache) len() int {
	if c == nil {
		return 0
	}
	return c.lru.Len()
}

// estimateKey hashes every field the model sees, length-prefixed so that
// field boundaries cannot shift between inputs.
func estimateKey(input types.AIEstimateInput) string {
	h := sha256.New()
	writeField(h, []byte(input.Sketch.MIMEType))
	writeField(h, input.Sketch.Data)
	for _, area := range input.DamagedAreas {
		writeField(h, []byte(area))
	}
	writeField(h, nil)
	writeField(h, []byte(input.VehicleMake))
	writeField(h, []byte(input.VehicleYear))
	return hex.EncodeToString(h.Sum(nil))
}

func writeField(h hash.Hash, b []byte) {
	var n [8]byte
	binary.BigEndian.PutUint64(n[:], uint64(len(b)))
	h.Write(n[:])
	h.Write(b)
}
