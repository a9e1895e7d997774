// ©Hayabusa Cloud Co., Ltd. 2025. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

// Package segpool implements the process-wide, sharded free list of fixed
// capacity byte arrays that backs jayo's Segment type.
//
// The free list is split into a fixed number of lanes so concurrent
// acquirers rarely contend on the same lane; each lane is a Treiber stack
// (a singly-linked list updated with a CAS loop) which keeps push/pop
// allocation-free and does not require a mutex. Capacity per lane is
// capped so the pool's total retained memory is bounded regardless of how
// many goroutines have touched it.
package segpool

import (
	"runtime"
	"sync/atomic"
	"unsafe"
)

// ChunkSize is the fixed capacity, in bytes, of every chunk handed out by
// the pool. It matches jayo's SEGMENT_SIZE.
const ChunkSize = 8192

// MaxPerLane is the maximum number of chunks a single lane retains before
// it starts dropping releases for the garbage collector, matching
// MAX_POOL_BYTES_PER_LANE (64 KiB) / ChunkSize.
const MaxPerLane = 64 * 1024 / ChunkSize

// Chunk is a single fixed-capacity byte holder. Segment wraps a *Chunk and
// slices Data to the live region.
type Chunk struct {
	Data [ChunkSize]byte
	next *Chunk // lane free-list linkage only valid while pooled
}

type lane struct {
	head  atomic.Pointer[Chunk]
	count atomic.Int32
}

// Pool is a sharded free list of *Chunk.
type Pool struct {
	lanes []lane
}

// laneCount picks a shard count proportional to available parallelism,
// with a sane floor so single-core hosts still get contention relief from
// having more than one lane.
func laneCount() int {
	n := runtime.GOMAXPROCS(0) * 2
	if n < 4 {
		n = 4
	}
	if n > 64 {
		n = 64
	}
	return n
}

// New constructs a Pool with a lane count derived from GOMAXPROCS.
func New() *Pool {
	return &Pool{lanes: make([]lane, laneCount())}
}

// laneFor picks a lane for the calling goroutine. True thread/goroutine
// affinity is not observable from user code in Go, so this approximates
// one-lane-per-logical-executor sharding with a cheap pseudo-random index
// derived from a stack address, which spreads concurrent callers across
// lanes without a shared counter becoming a contention point itself.
func (p *Pool) laneFor() *lane {
	var probe int
	addr := uintptr(unsafe.Pointer(&probe))
	idx := (addr >> 6) % uintptr(len(p.lanes))
	return &p.lanes[idx]
}

// Get removes a chunk from the calling goroutine's lane, or allocates a
// fresh one if the lane is empty.
func (p *Pool) Get() *Chunk {
	l := p.laneFor()
	for {
		head := l.head.Load()
		if head == nil {
			return &Chunk{}
		}
		next := head.next
		if l.head.CompareAndSwap(head, next) {
			l.count.Add(-1)
			head.next = nil
			return head
		}
	}
}

// Put returns a chunk to the calling goroutine's lane. If the lane is
// already holding MaxPerLane chunks, the chunk is dropped for the garbage
// collector instead of growing the lane without bound.
func (p *Pool) Put(c *Chunk) {
	if c == nil {
		return
	}
	l := p.laneFor()
	for {
		if l.count.Load() >= MaxPerLane {
			return
		}
		head := l.head.Load()
		c.next = head
		if l.head.CompareAndSwap(head, c) {
			l.count.Add(1)
			return
		}
	}
}

// RetainedBytes reports the pool's current retained memory, for tests and
// diagnostics. It is not safe to assume exactness under concurrent
// Get/Put, only an upper bound of len(lanes) * MaxPerLane * ChunkSize.
func (p *Pool) RetainedBytes() int64 {
	var total int64
	for i := range p.lanes {
		total += int64(p.lanes[i].count.Load()) * ChunkSize
	}
	return total
}

// Lanes reports the number of lanes configured for this pool.
func (p *Pool) Lanes() int { return len(p.lanes) }
