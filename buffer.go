// ©Hayabusa Cloud Co., Ltd. 2025. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package jayo

import "io"

// Buffer is a mutable, doubly-linked-list-of-segments byte queue: the
// primary mutable data plane. The zero value is an
// empty, ready to use Buffer.
//
// A Buffer is not safe for concurrent use by multiple goroutines; callers
// must synchronize externally.
type Buffer struct {
	head, tail *Segment
	size       int64
}

// Len reports the number of live bytes currently queued.
func (b *Buffer) Len() int64 { return b.size }

// IsEmpty reports whether the buffer holds no bytes.
func (b *Buffer) IsEmpty() bool { return b.size == 0 }

// appendOwned links a freshly-acquired owned segment onto the tail.
func (b *Buffer) appendOwned(s *Segment) {
	if b.tail == nil {
		b.head, b.tail = s, s
		return
	}
	s.prev = b.tail
	b.tail.next = s
	b.tail = s
}

// removeHead unlinks the current head from the list and returns it. It
// does not touch b.size; the caller accounts for any bytes the segment
// still holds and either releases it or relinks it elsewhere.
func (b *Buffer) removeHead() *Segment {
	s := b.head
	if s == nil {
		return nil
	}
	b.head = s.next
	if b.head == nil {
		b.tail = nil
	} else {
		b.head.prev = nil
	}
	s.next = nil
	return s
}

// dropHeadIfEmpty releases the head segment back to the pool if it has
// been fully consumed, maintaining the invariant that no segment in the
// list has size() == 0 once a mutating operation returns.
func (b *Buffer) dropHeadIfEmpty() {
	for b.head != nil && b.head.size() == 0 {
		s := b.removeHead()
		releaseSegment(s)
	}
}

// writableTail returns the segment writes should land in, allocating and
// linking a new owned segment if the current tail is absent, full, or not
// owned by this buffer (e.g. a shared view produced by snapshot/copyTo).
func (b *Buffer) writableTail(need int) *Segment {
	if b.tail != nil && b.tail.owner && !b.tail.shared && b.tail.writableSpace() > 0 {
		return b.tail
	}
	s := acquireSegment()
	_ = need
	b.appendOwned(s)
	return s
}

// Write appends len(p) bytes to the tail of the buffer. It never returns
// an error and always writes the whole slice, satisfying io.Writer.
func (b *Buffer) Write(p []byte) (int, error) {
	total := len(p)
	for len(p) > 0 {
		dst := b.writableTail(len(p))
		n := copy(dst.data[dst.limit:SegmentSize], p)
		dst.limit += n
		b.size += int64(n)
		p = p[n:]
	}
	return total, nil
}

// WriteByte appends a single byte to the tail.
func (b *Buffer) WriteByte(c byte) error {
	dst := b.writableTail(1)
	dst.data[dst.limit] = c
	dst.limit++
	b.size++
	return nil
}

// WriteFromBuffer moves exactly byteCount bytes from src's head to this
// buffer's tail. When a source segment
// is wholly consumed by the move, its node is unlinked from src and
// relinked onto this buffer's tail without copying any bytes — the
// zero-copy transfer that characterises the design. It returns
// ErrInvalidArgument, moving nothing, if byteCount is negative or exceeds
// src.Len().
func (b *Buffer) WriteFromBuffer(src *Buffer, byteCount int64) (int64, error) {
	if byteCount < 0 || byteCount > src.size {
		return 0, ErrInvalidArgument
	}
	moved := int64(0)
	for byteCount > 0 {
		head := src.head
		segSize := int64(head.size())
		if segSize <= byteCount {
			src.removeHead()
			src.size -= segSize
			b.appendOwned(head)
			b.size += segSize
			byteCount -= segSize
			moved += segSize
			continue
		}
		prefix := head.split(int(byteCount))
		b.appendOwned(prefix)
		b.size += byteCount
		src.size -= byteCount
		moved += byteCount
		byteCount = 0
	}
	return moved, nil
}

// Read implements io.Reader, copying up to len(p) bytes from the head of
// the buffer. It returns io.EOF when the buffer is empty, matching
// bytes.Buffer's convention so Buffer composes with stdlib io helpers.
func (b *Buffer) Read(p []byte) (int, error) {
	if len(p) == 0 {
		return 0, nil
	}
	if b.size == 0 {
		return 0, io.EOF
	}
	n, _ := b.ReadAtMostTo(p)
	return n, nil
}

// ReadAtMostTo copies up to len(dst) bytes from the head of the buffer,
// returning the number of bytes copied (which may be less than len(dst),
// including zero when the buffer is empty).
func (b *Buffer) ReadAtMostTo(dst []byte) (int, error) {
	total := 0
	for total < len(dst) && b.head != nil {
		s := b.head
		n := copy(dst[total:], s.data[s.pos:s.limit])
		s.pos += n
		total += n
		b.size -= int64(n)
		b.dropHeadIfEmpty()
	}
	return total, nil
}

// ReadFully copies exactly len(dst) bytes from the head of the buffer. If
// fewer bytes are available, nothing is consumed and ErrEndOfInput is
// returned.
func (b *Buffer) ReadFully(dst []byte) (int, error) {
	if int64(len(dst)) > b.size {
		return 0, ErrEndOfInput
	}
	n, _ := b.ReadAtMostTo(dst)
	return n, nil
}

// ReadByte removes and returns the first byte of the buffer.
func (b *Buffer) ReadByte() (byte, error) {
	if b.head == nil {
		return 0, ErrEndOfInput
	}
	s := b.head
	c := s.data[s.pos]
	s.pos++
	b.size--
	b.dropHeadIfEmpty()
	return c, nil
}

// ReadAll drains this buffer's entire contents into dst, which removes
// exactly that many bytes per the RawWriter contract.
func (b *Buffer) ReadAll(dst RawWriter) (int64, error) {
	n := b.size
	if n == 0 {
		return 0, nil
	}
	if err := dst.Write(b, n); err != nil {
		return 0, err
	}
	return n, nil
}

// Clear releases every segment back to the process pool and resets the
// buffer to empty.
func (b *Buffer) Clear() {
	for b.head != nil {
		s := b.removeHead()
		releaseSegment(s)
	}
	b.size = 0
}

// byteAt returns the byte at absolute index i without consuming it. It is
// used by IndexOfByteString, the UTF-8 line readers and the decimal/hex
// number parsers.
func (b *Buffer) byteAt(i int64) byte {
	s := b.head
	off := i
	for {
		n := int64(s.size())
		if off < n {
			return s.data[s.pos+int(off)]
		}
		off -= n
		s = s.next
	}
}

// CopyTo performs a non-destructive copy of byteCount bytes starting at
// offset into dst's tail. Every source segment in the range, including
// partial ones at either boundary, is linked into dst as a read-only
// shared view; no bytes are copied.
func (b *Buffer) CopyTo(dst *Buffer, offset, byteCount int64) (int64, error) {
	if offset < 0 || byteCount < 0 || offset+byteCount > b.size {
		return 0, ErrInvalidArgument
	}
	remaining := byteCount
	// Walk to the segment containing offset.
	s := b.head
	skip := offset
	for s != nil && skip >= int64(s.size()) {
		skip -= int64(s.size())
		s = s.next
	}
	for remaining > 0 && s != nil {
		from := s.pos + int(skip)
		avail := s.limit - from
		take := avail
		if int64(take) > remaining {
			take = int(remaining)
		}
		view := s.sharedViewCopy(from, from+take)
		dst.appendOwned(view)
		dst.size += int64(take)
		remaining -= int64(take)
		skip = 0
		s = s.next
	}
	return byteCount, nil
}

// sharedViewCopy produces a read-only Segment view over [from, to) of s's
// backing array without mutating s's own pos/limit, used by CopyTo and
// Snapshot where the source buffer keeps its own copy of the range.
func (s *Segment) sharedViewCopy(from, to int) *Segment {
	s.shared = true
	s.owner = false
	return &Segment{chunk: s.chunk, data: s.data, pos: from, limit: to, owner: false, shared: true}
}

// IndexOf returns the absolute index of the first occurrence of b within
// [from, to) of the buffer, or -1 if not found. to < 0 means "to the end
// of the buffer".
func (buf *Buffer) IndexOf(b byte, from, to int64) int64 {
	if to < 0 || to > buf.size {
		to = buf.size
	}
	if from < 0 {
		from = 0
	}
	if from >= to {
		return -1
	}
	s := buf.head
	pos := int64(0)
	for s != nil {
		segStart := pos
		segEnd := pos + int64(s.size())
		if segEnd > from {
			lo := from
			if lo < segStart {
				lo = segStart
			}
			hi := to
			if hi > segEnd {
				hi = segEnd
			}
			for i := lo; i < hi; i++ {
				if s.data[s.pos+int(i-segStart)] == b {
					return i
				}
			}
		}
		if segEnd >= to {
			break
		}
		pos = segEnd
		s = s.next
	}
	return -1
}

// IndexOfByteString returns the absolute index of the first occurrence of
// needle at or after from, or -1 if not found. It performs a direct scan
// crossing segment boundaries; no skip-table optimisation is attempted.
func (buf *Buffer) IndexOfByteString(needle ByteString, from int64) int64 {
	nlen := int64(needle.Len())
	if nlen == 0 {
		if from < 0 {
			from = 0
		}
		if from > buf.size {
			return -1
		}
		return from
	}
	if from < 0 {
		from = 0
	}
	limit := buf.size - nlen
	for i := from; i <= limit; i++ {
		ok := true
		for j := int64(0); j < nlen; j++ {
			if buf.byteAt(i+j) != needle.At(int(j)) {
				ok = false
				break
			}
		}
		if ok {
			return i
		}
	}
	return -1
}

// Snapshot takes an immutable ByteString sharing segments with this
// buffer: the current segments are marked shared, and further writes to
// this buffer land in new segments, leaving bytes already visible to the
// returned ByteString untouched.
func (b *Buffer) Snapshot() ByteString {
	if b.size == 0 {
		return ByteString{}
	}
	parts := make([][]byte, 0, 4)
	s := b.head
	for s != nil {
		s.shared = true
		s.owner = false
		parts = append(parts, s.data[s.pos:s.limit])
		s = s.next
	}
	return newSegmentedByteString(parts)
}

// Clone returns a cheap copy of the buffer that shares segments with the
// receiver under the same share-on-write discipline as Snapshot. It is
// used internally by Reader.Peek and is otherwise a useful corollary of
// the buffer's sharing design (spec_full.md §4 supplemented features).
func (b *Buffer) Clone() *Buffer {
	clone := &Buffer{size: b.size}
	s := b.head
	for s != nil {
		s.shared = true
		s.owner = false
		view := &Segment{chunk: s.chunk, data: s.data, pos: s.pos, limit: s.limit, owner: false, shared: true}
		clone.appendOwned(view)
		s = s.next
	}
	return clone
}
