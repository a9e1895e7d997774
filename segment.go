// ©Hayabusa Cloud Co., Ltd. 2025. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package jayo

import "code.hybscloud.com/jayo/internal/segpool"

// SegmentSize is the fixed capacity, in bytes, of every Segment.
const SegmentSize = segpool.ChunkSize

// ShareMinimum is the byte count threshold above which Segment.split
// produces a zero-copy shared prefix instead of a fresh copy. Below the
// threshold, copying is cheaper than the bookkeeping a shared view
// requires and avoids permanently losing the ability to compact the
// segment later. This is an implementation parameter: callers must not
// depend on its exact value.
const ShareMinimum = 1024

// Segment is a fixed-capacity byte holder and the unit of allocation and
// transfer for Buffer. It is never used directly by library consumers.
type Segment struct {
	chunk *segpool.Chunk
	data  []byte // data[:SegmentSize], a view over chunk.Data

	pos   int
	limit int

	owner  bool
	shared bool

	prev, next *Segment
}

// size returns the number of live bytes held by the segment.
func (s *Segment) size() int { return s.limit - s.pos }

// writableSpace returns the remaining tail capacity. Only meaningful when
// owner is true; shared segments must never be extended.
func (s *Segment) writableSpace() int {
	if !s.owner {
		return 0
	}
	return SegmentSize - s.limit
}

// split divides s into a byteCount-length prefix and the remaining
// suffix. The prefix is returned; s is mutated in place to become the
// suffix (pos advances by byteCount). byteCount must be in
// (0, s.size()); violating that is a programming error and panics.
//
// When byteCount >= ShareMinimum the prefix shares the same backing
// array as s (shared = true, owner = false on both the prefix and,
// going forward, s itself becomes a read-only view unless it was
// already the tail with writable space — split is only ever called on
// segments being handed off, so s loses owner status along with the
// prefix). Below the threshold, the prefix is a fresh owned copy so the
// pool is not left holding a shared array for a tiny slice.
func (s *Segment) split(byteCount int) *Segment {
	if byteCount <= 0 || byteCount >= s.size() {
		panic("jayo: split: byteCount out of range")
	}

	var prefix *Segment
	if byteCount >= ShareMinimum {
		prefix = s.sharedView(s.pos, s.pos+byteCount)
	} else {
		prefix = acquireSegment()
		n := copy(prefix.data[:byteCount], s.data[s.pos:s.pos+byteCount])
		prefix.limit = n
		prefix.owner = true
	}
	s.pos += byteCount
	return prefix
}

// sharedView returns a read-only Segment aliasing s's backing array over
// [from, to). Both the new view and s are marked shared; s loses owner
// status since a second reference to its array now exists.
func (s *Segment) sharedView(from, to int) *Segment {
	view := &Segment{
		chunk:  s.chunk,
		data:   s.data,
		pos:    from,
		limit:  to,
		owner:  false,
		shared: true,
	}
	s.shared = true
	s.owner = false
	return view
}

// compact moves s's bytes into the tail of its previous sibling when that
// sibling has room and is not itself shared, then releases s. It is
// always safe to call; it is a no-op when the preconditions do not hold.
// No Buffer operation calls it, so a Buffer's segments are never merged;
// it also does not update a Buffer's head or tail pointers.
func (s *Segment) compact() {
	if s.prev == nil || !s.prev.owner || s.prev.shared {
		return
	}
	prev := s.prev
	if prev.writableSpace() < s.size() {
		return
	}
	n := copy(prev.data[prev.limit:], s.data[s.pos:s.limit])
	prev.limit += n
	unlink(s)
	releaseSegment(s)
}

// unlink removes s from its doubly-linked list without touching the pool.
func unlink(s *Segment) {
	if s.prev != nil {
		s.prev.next = s.next
	}
	if s.next != nil {
		s.next.prev = s.prev
	}
	s.prev, s.next = nil, nil
}
