// ©Hayabusa Cloud Co., Ltd. 2025. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package jayo

import "testing"

func TestSegmentSplitBelowShareMinimumCopies(t *testing.T) {
	s := acquireSegment()
	defer releaseSegment(s)
	n := copy(s.data, []byte("hello world"))
	s.limit = n

	prefix := s.split(5)
	defer releaseSegment(prefix)

	if prefix.owner != true || prefix.shared {
		t.Fatalf("small split should produce a fresh owned copy")
	}
	if string(prefix.data[:prefix.limit]) != "hello" {
		t.Fatalf("got %q", prefix.data[:prefix.limit])
	}
	if string(s.data[s.pos:s.limit]) != " world" {
		t.Fatalf("suffix got %q", s.data[s.pos:s.limit])
	}
}

func TestSegmentSplitAboveShareMinimumShares(t *testing.T) {
	s := acquireSegment()
	defer releaseSegment(s)
	n := copy(s.data, make([]byte, ShareMinimum+10))
	s.limit = n

	prefix := s.split(ShareMinimum)
	if !prefix.shared || prefix.owner {
		t.Fatalf("large split should produce a shared, non-owner view")
	}
	if !s.shared || s.owner {
		t.Fatalf("source segment should lose owner status once shared")
	}
}

func TestSegmentCompact(t *testing.T) {
	a := acquireSegment()
	b := acquireSegment()
	defer releaseSegment(a)

	a.limit = copy(a.data, []byte("abc"))
	b.limit = copy(b.data, []byte("def"))
	b.prev = a
	a.next = b

	b.compact()

	if string(a.data[a.pos:a.limit]) != "abcdef" {
		t.Fatalf("compact: got %q", a.data[a.pos:a.limit])
	}
	if a.next != nil {
		t.Fatalf("compacted segment should have been unlinked")
	}
}

func TestSegmentCompactNoOpWhenPrevShared(t *testing.T) {
	a := acquireSegment()
	b := acquireSegment()
	defer releaseSegment(a)
	defer releaseSegment(b)

	a.limit = copy(a.data, []byte("abc"))
	a.shared = true
	b.limit = copy(b.data, []byte("def"))
	b.prev = a
	a.next = b

	b.compact()

	if b.prev != a || a.next != b {
		t.Fatalf("compact must be a no-op when the previous segment is shared")
	}
}

func TestSegmentWritableSpace(t *testing.T) {
	s := acquireSegment()
	defer releaseSegment(s)
	if s.writableSpace() != SegmentSize {
		t.Fatalf("fresh segment writableSpace = %d want %d", s.writableSpace(), SegmentSize)
	}
	s.limit = 100
	if s.writableSpace() != SegmentSize-100 {
		t.Fatalf("writableSpace = %d want %d", s.writableSpace(), SegmentSize-100)
	}
	s.owner = false
	if s.writableSpace() != 0 {
		t.Fatalf("non-owner segment must report zero writableSpace")
	}
}
