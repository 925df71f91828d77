package exercise

import (
	"encoding/json"
	"math/rand"

	"screenclash/internal/models"
)

// drawIndices picks n item indices from a pool of size total, shuffled,
// reusing the pool as many times as needed. Each full pass through the
// pool is shuffled independently, so a small pool repeats in a fresh
// order rather than a fixed cycle.
func drawIndices(rng *rand.Rand, total, n int) []int {
	if total == 0 || n <= 0 {
		return nil
	}

	indices := make([]int, 0, n)
	for len(indices) < n {
		pass := rng.Perm(total)
		indices = append(indices, pass...)
	}
	return indices[:n]
}

// decodePool unmarshals every item's payload into the content type for
// the engine. Items that fail to decode are skipped.
func decodePool[T any](items []models.LibraryItem) []T {
	var pool []T
	for _, item := range items {
		var content T
		if err := json.Unmarshal(item.Content, &content); err != nil {
			continue
		}
		pool = append(pool, content)
	}
	return pool
}

// drawFromPool builds a run of n questions from the pool, drawing with
// replacement when the pool is smaller than n.
func drawFromPool[T any](rng *rand.Rand, pool []T, n int) []T {
	indices := drawIndices(rng, len(pool), n)
	drawn := make([]T, 0, len(indices))
	for _, i := range indices {
		drawn = append(drawn, pool[i])
	}
	return drawn
}
