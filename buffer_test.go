// ©Hayabusa Cloud Co., Ltd. 2025. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package jayo

import (
	"bytes"
	"testing"
)

func TestBufferWriteRead(t *testing.T) {
	var b Buffer
	n, err := b.Write([]byte("hello world"))
	if err != nil || n != 11 {
		t.Fatalf("Write: n=%d err=%v", n, err)
	}
	if b.Len() != 11 {
		t.Fatalf("Len: got %d want 11", b.Len())
	}
	out := make([]byte, 11)
	if _, err := b.ReadFully(out); err != nil {
		t.Fatalf("ReadFully: %v", err)
	}
	if string(out) != "hello world" {
		t.Fatalf("got %q", out)
	}
	if !b.IsEmpty() {
		t.Fatalf("expected empty buffer after full read")
	}
}

func TestBufferWriteAcrossSegments(t *testing.T) {
	var b Buffer
	payload := bytes.Repeat([]byte("x"), SegmentSize*3+17)
	if _, err := b.Write(payload); err != nil {
		t.Fatalf("Write: %v", err)
	}
	if b.Len() != int64(len(payload)) {
		t.Fatalf("Len: got %d want %d", b.Len(), len(payload))
	}
	out := make([]byte, len(payload))
	if _, err := b.ReadFully(out); err != nil {
		t.Fatalf("ReadFully: %v", err)
	}
	if !bytes.Equal(out, payload) {
		t.Fatalf("roundtrip mismatch")
	}
}

func TestBufferWriteFromBufferZeroCopy(t *testing.T) {
	var src, dst Buffer
	payload := bytes.Repeat([]byte("y"), SegmentSize+10)
	src.Write(payload)
	srcHead := src.head

	moved, err := dst.WriteFromBuffer(&src, int64(SegmentSize))
	if err != nil {
		t.Fatalf("WriteFromBuffer: %v", err)
	}
	if moved != SegmentSize {
		t.Fatalf("moved=%d want %d", moved, SegmentSize)
	}
	// The whole first segment was consumed, so it should have been
	// relinked onto dst directly rather than copied.
	if dst.head != srcHead {
		t.Fatalf("expected zero-copy segment transfer to relink the node")
	}
	if src.Len() != 10 {
		t.Fatalf("src.Len() = %d want 10", src.Len())
	}
}

func TestBufferWriteFromBufferSplitsPartialSegment(t *testing.T) {
	var src, dst Buffer
	src.Write(bytes.Repeat([]byte("z"), 2000))

	moved, err := dst.WriteFromBuffer(&src, 1500)
	if err != nil {
		t.Fatalf("WriteFromBuffer: %v", err)
	}
	if moved != 1500 {
		t.Fatalf("moved=%d want 1500", moved)
	}
	if src.Len() != 500 {
		t.Fatalf("src.Len() = %d want 500", src.Len())
	}
	if dst.Len() != 1500 {
		t.Fatalf("dst.Len() = %d want 1500", dst.Len())
	}
}

func TestBufferSnapshotIsolation(t *testing.T) {
	var b Buffer
	b.Write([]byte("abc"))
	snap := b.Snapshot()
	b.Write([]byte("def"))

	if snap.String() != "abc" {
		t.Fatalf("snapshot mutated: got %q", snap.String())
	}
	out := make([]byte, 6)
	b.ReadFully(out)
	if string(out) != "abcdef" {
		t.Fatalf("buffer mutated unexpectedly: got %q", out)
	}
}

func TestBufferIndexOf(t *testing.T) {
	var b Buffer
	b.Write([]byte("the quick brown fox"))
	idx := b.IndexOf('q', 0, -1)
	if idx != 4 {
		t.Fatalf("IndexOf: got %d want 4", idx)
	}
	if b.IndexOf('Q', 0, -1) != -1 {
		t.Fatalf("expected -1 for absent byte")
	}
}

func TestBufferIndexOfByteString(t *testing.T) {
	var b Buffer
	b.Write([]byte("the quick brown fox"))
	idx := b.IndexOfByteString(FromString("brown"), 0)
	if idx != 10 {
		t.Fatalf("IndexOfByteString: got %d want 10", idx)
	}
}

func TestBufferCopyToNonDestructive(t *testing.T) {
	var src, dst Buffer
	src.Write([]byte("0123456789"))
	n, err := src.CopyTo(&dst, 2, 5)
	if err != nil {
		t.Fatalf("CopyTo: %v", err)
	}
	if n != 5 {
		t.Fatalf("n=%d want 5", n)
	}
	if src.Len() != 10 {
		t.Fatalf("source mutated by CopyTo")
	}
	out := make([]byte, 5)
	dst.ReadFully(out)
	if string(out) != "23456" {
		t.Fatalf("got %q want 23456", out)
	}
}

func TestBufferClear(t *testing.T) {
	var b Buffer
	b.Write(bytes.Repeat([]byte("a"), SegmentSize*2))
	b.Clear()
	if !b.IsEmpty() || b.Len() != 0 {
		t.Fatalf("buffer not empty after Clear")
	}
}

func TestBufferReadFullyInsufficientData(t *testing.T) {
	var b Buffer
	b.Write([]byte("ab"))
	out := make([]byte, 5)
	if _, err := b.ReadFully(out); err != ErrEndOfInput {
		t.Fatalf("expected ErrEndOfInput, got %v", err)
	}
	if b.Len() != 2 {
		t.Fatalf("ReadFully must not consume on failure, Len()=%d", b.Len())
	}
}
