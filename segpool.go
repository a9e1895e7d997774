// ©Hayabusa Cloud Co., Ltd. 2025. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package jayo

import "code.hybscloud.com/jayo/internal/segpool"

// defaultPool is the process-wide SegmentPool. It is initialised at
// package init; segpool.New only allocates lane bookkeeping slices, not
// chunks themselves, so chunks are allocated on first use.
var defaultPool = segpool.New()

// acquireSegment returns an owned, empty Segment backed by a chunk taken
// from the process pool (or freshly allocated if the calling goroutine's
// lane is empty).
func acquireSegment() *Segment {
	c := defaultPool.Get()
	return &Segment{chunk: c, data: c.Data[:], owner: true}
}

// releaseSegment returns s's backing chunk to the process pool, unless s
// is a shared view: in that case another Segment still aliases the same
// chunk, so handing it back would let the pool give out a live array to a
// new, unrelated owner. The chunk remains reachable (and eventually
// collected) through whichever reference is still outstanding.
func releaseSegment(s *Segment) {
	if s.shared {
		return
	}
	c := s.chunk
	s.chunk, s.data = nil, nil
	s.pos, s.limit, s.owner = 0, 0, false
	defaultPool.Put(c)
}

// PoolStats summarizes the process-wide SegmentPool's current state, for
// diagnostics and tests.
type PoolStats struct {
	Lanes         int
	RetainedBytes int64
}

// Stats reports the current PoolStats for the process-wide SegmentPool.
func Stats() PoolStats {
	return PoolStats{Lanes: defaultPool.Lanes(), RetainedBytes: defaultPool.RetainedBytes()}
}

// ResetPool discards every chunk currently retained by the process-wide
// pool. It exists for tests that need a clean baseline; production code
// has no reason to call it, since pool retention is bounded and tearing
// it down is optional.
func ResetPool() {
	defaultPool = segpool.New()
}
