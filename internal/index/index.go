// ABOUTME: In-memory exact nearest-neighbor index over fixed-dimension vectors
// ABOUTME: Append-only flat index with squared-L2 search, guarded by a single RWMutex
package index

import (
	"errors"
	"sort"
	"sync"
)

// ErrDimensionMismatch reports a vector whose length does not match the
// index dimension. It is a programmer or data error, never retried.
var ErrDimensionMismatch = errors.New("vector dimension mismatch")

// Hit is one search result: the insertion position of a stored vector and
// its squared Euclidean distance to the query.
type Hit struct {
	Position int
	Distance float64
}

// Index is a flat, exhaustive nearest-neighbor index. Positions equal
// insertion order and are never reused. There is no update or removal; a
// position can only be tombstoned, which keeps it allocated but hides it
// from searches. State lives for the process lifetime only.
type Index struct {
	mu      sync.RWMutex
	dim     int
	base    int
	vectors [][]float64
	dead    map[int]struct{}
}

// New creates an empty index for vectors of the given dimension. The first
// appended vector gets position 0.
func New(dim int) *Index {
	return NewAt(dim, 0)
}

// NewAt creates an empty index whose first appended vector gets position
// first. Positions below first belong to documents persisted by earlier
// processes; they are never assigned again and never searched, so the
// position space stays unique and monotonic across restarts.
func NewAt(dim, first int) *Index {
	if first < 0 {
		first = 0
	}
	return &Index{
		dim:  dim,
		base: first,
		dead: map[int]struct{}{},
	}
}

// Append inserts a vector at the end and returns its position. The vector
// is copied, so the caller keeps no alias into the index. Position order is
// lock-acquisition order.
func (ix *Index) Append(vector []float64) (int, error) {
	if len(vector) != ix.dim {
		return 0, ErrDimensionMismatch
	}

	owned := make([]float64, len(vector))
	copy(owned, vector)

	ix.mu.Lock()
	defer ix.mu.Unlock()
	ix.vectors = append(ix.vectors, owned)
	return ix.base + len(ix.vectors) - 1, nil
}

// Tombstone hides a position from searches. The position stays allocated so
// later appends keep their monotonic offsets. Used to compensate a store
// insert that failed after the append already happened.
func (ix *Index) Tombstone(position int) {
	ix.mu.Lock()
	defer ix.mu.Unlock()
	if position >= ix.base && position < ix.base+len(ix.vectors) {
		ix.dead[position] = struct{}{}
	}
}

// Search scans every live vector and returns up to k hits ordered by
// ascending squared Euclidean distance, ties broken by ascending position.
// An empty index yields an empty result, not an error.
func (ix *Index) Search(query []float64, k int) ([]Hit, error) {
	if len(query) != ix.dim {
		return nil, ErrDimensionMismatch
	}
	if k <= 0 {
		return nil, nil
	}

	ix.mu.RLock()
	defer ix.mu.RUnlock()

	hits := make([]Hit, 0, len(ix.vectors))
	for i, v := range ix.vectors {
		pos := ix.base + i
		if _, gone := ix.dead[pos]; gone {
			continue
		}
		hits = append(hits, Hit{Position: pos, Distance: squaredL2(query, v)})
	}

	sort.Slice(hits, func(i, j int) bool {
		if hits[i].Distance != hits[j].Distance {
			return hits[i].Distance < hits[j].Distance
		}
		return hits[i].Position < hits[j].Position
	})

	if len(hits) > k {
		hits = hits[:k]
	}
	return hits, nil
}

// Len reports how many vectors have been appended, tombstoned ones included.
func (ix *Index) Len() int {
	ix.mu.RLock()
	defer ix.mu.RUnlock()
	return len(ix.vectors)
}

// Dimension returns the fixed vector dimension of the index.
func (ix *Index) Dimension() int {
	return ix.dim
}

func squaredL2(a, b []float64) float64 {
	var sum float64
	for i := range a {
		d := a[i] - b[i]
		sum += d * d
	}
	return sum
}
