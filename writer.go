// ©Hayabusa Cloud Co., Ltd. 2025. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package jayo

import (
	"sync"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// Writer is a buffered layer over a RawWriter adding typed encode
// primitives. It owns exactly one Buffer and one
// RawWriter collaborator.
//
// A Writer is not safe for concurrent use by multiple goroutines.
type Writer struct {
	dst    RawWriter
	buf    Buffer
	closed bool
	log    *zap.Logger

	emitThreshold int

	async   bool
	group   *errgroup.Group
	queueMu sync.Mutex
	pending *Buffer
}

// NewWriter wraps dst in a buffered Writer.
func NewWriter(dst RawWriter, opts ...WriterOption) *Writer {
	o := defaultWriterOptions()
	for _, opt := range opts {
		opt(&o)
	}
	w := &Writer{dst: dst, log: o.log, emitThreshold: o.emitThreshold}
	if o.async {
		w.async = true
		w.group = &errgroup.Group{}
		w.pending = &Buffer{}
	}
	return w
}

// completeSegments counts how many fully-filled segments currently sit
// at the head of the internal buffer, for the auto-emission policy.
func (w *Writer) completeSegments() int {
	n := 0
	for s := w.buf.head; s != nil && s.owner && !s.shared && s.limit == SegmentSize; s = s.next {
		n++
	}
	return n
}

// maybeAutoEmit emits complete segments once their count exceeds the
// configured threshold, keeping the internal buffer bounded.
func (w *Writer) maybeAutoEmit() error {
	if w.emitThreshold <= 0 {
		return nil
	}
	if w.completeSegments() <= w.emitThreshold {
		return nil
	}
	return w.EmitCompleteSegments()
}

// Write moves byteCount bytes from src into the internal buffer and
// triggers auto-emission.
func (w *Writer) Write(src *Buffer, byteCount int64) error {
	if w.closed {
		return ErrClosed
	}
	if _, err := w.buf.WriteFromBuffer(src, byteCount); err != nil {
		return err
	}
	return w.maybeAutoEmit()
}

// WriteBytes appends p to the internal buffer. It has io.Writer's
// signature under a different name, since Write is the RawWriter method;
// a Writer is therefore not an io.Writer.
func (w *Writer) WriteBytes(p []byte) (int, error) {
	if w.closed {
		return 0, ErrClosed
	}
	n, _ := w.buf.Write(p)
	if err := w.maybeAutoEmit(); err != nil {
		return n, err
	}
	return n, nil
}

// WriteByte appends a single byte.
func (w *Writer) WriteByte(c byte) error {
	if w.closed {
		return ErrClosed
	}
	_ = w.buf.WriteByte(c)
	return w.maybeAutoEmit()
}

// WriteUint16 appends v big-endian.
func (w *Writer) WriteUint16(v uint16) error {
	if w.closed {
		return ErrClosed
	}
	_ = w.buf.WriteUint16(v)
	return w.maybeAutoEmit()
}

// WriteUint16Le appends v little-endian.
func (w *Writer) WriteUint16Le(v uint16) error {
	if w.closed {
		return ErrClosed
	}
	_ = w.buf.WriteUint16Le(v)
	return w.maybeAutoEmit()
}

// WriteInt16 appends v big-endian.
func (w *Writer) WriteInt16(v int16) error { return w.WriteUint16(uint16(v)) }

// WriteInt16Le appends v little-endian.
func (w *Writer) WriteInt16Le(v int16) error { return w.WriteUint16Le(uint16(v)) }

// WriteUint32 appends v big-endian.
func (w *Writer) WriteUint32(v uint32) error {
	if w.closed {
		return ErrClosed
	}
	_ = w.buf.WriteUint32(v)
	return w.maybeAutoEmit()
}

// WriteUint32Le appends v little-endian.
func (w *Writer) WriteUint32Le(v uint32) error {
	if w.closed {
		return ErrClosed
	}
	_ = w.buf.WriteUint32Le(v)
	return w.maybeAutoEmit()
}

// WriteInt32 appends v big-endian.
func (w *Writer) WriteInt32(v int32) error { return w.WriteUint32(uint32(v)) }

// WriteInt32Le appends v little-endian.
func (w *Writer) WriteInt32Le(v int32) error { return w.WriteUint32Le(uint32(v)) }

// WriteUint64 appends v big-endian.
func (w *Writer) WriteUint64(v uint64) error {
	if w.closed {
		return ErrClosed
	}
	_ = w.buf.WriteUint64(v)
	return w.maybeAutoEmit()
}

// WriteUint64Le appends v little-endian.
func (w *Writer) WriteUint64Le(v uint64) error {
	if w.closed {
		return ErrClosed
	}
	_ = w.buf.WriteUint64Le(v)
	return w.maybeAutoEmit()
}

// WriteInt64 appends v big-endian.
func (w *Writer) WriteInt64(v int64) error { return w.WriteUint64(uint64(v)) }

// WriteInt64Le appends v little-endian.
func (w *Writer) WriteInt64Le(v int64) error { return w.WriteUint64Le(uint64(v)) }

// WriteUtf8 encodes and appends s as UTF-8.
func (w *Writer) WriteUtf8(s string) (int, error) {
	if w.closed {
		return 0, ErrClosed
	}
	n, _ := w.buf.WriteUtf8(s)
	if err := w.maybeAutoEmit(); err != nil {
		return n, err
	}
	return n, nil
}

// WriteUtf8CodePoint encodes and appends a single code point.
func (w *Writer) WriteUtf8CodePoint(cp rune) error {
	if w.closed {
		return ErrClosed
	}
	_ = w.buf.WriteUtf8CodePoint(cp)
	return w.maybeAutoEmit()
}

// WriteByteString appends the contents of bs.
func (w *Writer) WriteByteString(bs ByteString) error {
	if w.closed {
		return ErrClosed
	}
	_, _ = w.buf.Write(bs.Bytes())
	return w.maybeAutoEmit()
}

// emitBuffer moves everything currently in src to the RawWriter,
// synchronously or via the async hand-off queue depending on
// configuration.
func (w *Writer) emitBuffer(src *Buffer) error {
	n := src.Len()
	if n == 0 {
		return nil
	}
	if !w.async {
		return w.dst.Write(src, n)
	}

	w.queueMu.Lock()
	_, _ = w.pending.WriteFromBuffer(src, n)
	pendingLen := w.pending.Len()
	w.queueMu.Unlock()

	if pendingLen == n {
		w.group.Go(w.drainAsync)
	}
	return nil
}

// drainAsync is the dedicated hand-off goroutine body: it
// keeps transferring whatever has accumulated in pending to the
// underlying RawWriter until the queue empties.
func (w *Writer) drainAsync() error {
	for {
		w.queueMu.Lock()
		n := w.pending.Len()
		if n == 0 {
			w.queueMu.Unlock()
			return nil
		}
		batch := &Buffer{}
		_, _ = batch.WriteFromBuffer(w.pending, n)
		w.queueMu.Unlock()

		if err := w.dst.Write(batch, n); err != nil {
			return WrapIOError("async write", err)
		}
	}
}

// Emit copies complete segments plus any partial tail segment to the
// underlying RawWriter — i.e. the entire internal buffer.
func (w *Writer) Emit() error {
	if w.closed {
		return ErrClosed
	}
	return w.emitBuffer(&w.buf)
}

// EmitCompleteSegments emits only fully-filled segments, retaining any
// partially-filled tail segment.
func (w *Writer) EmitCompleteSegments() error {
	if w.closed {
		return ErrClosed
	}
	n := int64(0)
	for s := w.buf.head; s != nil && s.owner && !s.shared && s.limit == SegmentSize; s = s.next {
		n += int64(s.size())
	}
	if n == 0 {
		return nil
	}
	complete := &Buffer{}
	if _, err := complete.WriteFromBuffer(&w.buf, n); err != nil {
		return err
	}
	return w.emitBuffer(complete)
}

// Flush emits everything and calls Flush on the underlying RawWriter,
// waiting for any async hand-off to drain first.
func (w *Writer) Flush() error {
	if w.closed {
		return ErrClosed
	}
	if err := w.Emit(); err != nil {
		return err
	}
	if w.async {
		if err := w.group.Wait(); err != nil {
			return err
		}
		w.group = &errgroup.Group{}
	}
	return w.dst.Flush()
}

// WriteAllFrom repeatedly pulls from source into the internal buffer
// and emits, returning the total byte count transferred.
func (w *Writer) WriteAllFrom(source RawReader) (int64, error) {
	if w.closed {
		return 0, ErrClosed
	}
	var total int64
	for {
		n, err := source.ReadAtMostTo(&w.buf, segmentBytes)
		if err != nil {
			return total, err
		}
		if n < 0 {
			return total, nil
		}
		total += n
		if err := w.maybeAutoEmit(); err != nil {
			return total, err
		}
	}
}

// Close flushes and closes the underlying RawWriter. It is idempotent;
// a flush error is recorded and re-raised after close is still
// attempted.
func (w *Writer) Close() error {
	if w.closed {
		return nil
	}
	flushErr := w.Flush()
	w.closed = true
	closeErr := w.dst.Close()
	if flushErr != nil {
		return flushErr
	}
	return closeErr
}
