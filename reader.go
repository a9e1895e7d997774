// ©Hayabusa Cloud Co., Ltd. 2025. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package jayo

import (
	"io"

	"go.uber.org/zap"
)

// segmentBytes is large enough that pulling one segment's worth of data
// at a time from the underlying RawReader amortises the per-call
// overhead without over-reading.
const segmentBytes = SegmentSize

// Reader is a buffered layer over a RawReader adding typed decode
// primitives. It owns exactly one Buffer and one
// RawReader collaborator.
//
// A Reader is not safe for concurrent use by multiple goroutines.
type Reader struct {
	src    RawReader
	buf    Buffer
	closed bool
	rawEOF bool
	log    *zap.Logger
}

// NewReader wraps src in a buffered Reader.
func NewReader(src RawReader, opts ...ReaderOption) *Reader {
	o := defaultReaderOptions()
	for _, opt := range opts {
		opt(&o)
	}
	return &Reader{src: src, log: o.log}
}

// Exhausted reports whether the internal buffer is empty and the
// underlying RawReader is at clean EOF. When the buffer is empty and EOF
// has not been seen yet, it pulls once from the RawReader to find out;
// a read error makes it report false.
func (r *Reader) Exhausted() bool {
	if !r.buf.IsEmpty() {
		return false
	}
	if r.rawEOF {
		return true
	}
	ok, err := r.fill()
	return err == nil && !ok
}

// fill makes one pull of up to one segment's worth of data from the
// underlying RawReader, returning false on clean EOF.
func (r *Reader) fill() (bool, error) {
	if r.rawEOF {
		return false, nil
	}
	n, err := r.src.ReadAtMostTo(&r.buf, segmentBytes)
	if err != nil {
		return false, WrapIOError("read", err)
	}
	if n < 0 {
		r.rawEOF = true
		return false, nil
	}
	return true, nil
}

// Request ensures at least n bytes are available in the internal
// buffer, pulling from the underlying RawReader as needed. It returns
// false if EOF is reached before n bytes accumulate.
func (r *Reader) Request(n int64) (bool, error) {
	if r.closed {
		return false, ErrClosed
	}
	for r.buf.Len() < n {
		ok, err := r.fill()
		if err != nil {
			return false, err
		}
		if !ok {
			return false, nil
		}
	}
	return true, nil
}

// Require behaves like Request but fails with ErrEndOfInput instead of
// returning false.
func (r *Reader) Require(n int64) error {
	ok, err := r.Request(n)
	if err != nil {
		return err
	}
	if !ok {
		return ErrEndOfInput
	}
	return nil
}

// ReadAtMostTo implements RawReader, satisfying Reader's use as a
// RawReader source for composition (e.g. wrapping one Reader in
// another). It first drains the internal buffer, then falls back to a
// single pull from the underlying RawReader if the buffer is empty.
func (r *Reader) ReadAtMostTo(dst *Buffer, byteCount int64) (int64, error) {
	if r.closed {
		return 0, ErrClosed
	}
	if r.buf.IsEmpty() {
		if r.rawEOF {
			return -1, nil
		}
		ok, err := r.fill()
		if err != nil {
			return 0, err
		}
		if !ok {
			return -1, nil
		}
	}
	n := r.buf.Len()
	if n > byteCount {
		n = byteCount
	}
	return dst.WriteFromBuffer(&r.buf, n)
}

// ReadAtMostToBytes copies up to len(dst) bytes into dst, pulling from
// the underlying RawReader at most once if the internal buffer is
// empty. It returns 0, nil at EOF with an empty dst slice request.
func (r *Reader) ReadAtMostToBytes(dst []byte) (int, error) {
	if r.closed {
		return 0, ErrClosed
	}
	if r.buf.IsEmpty() && !r.rawEOF {
		if _, err := r.fill(); err != nil {
			return 0, err
		}
	}
	n, _ := r.buf.ReadAtMostTo(dst)
	return n, nil
}

// Read implements io.Reader.
func (r *Reader) Read(p []byte) (int, error) {
	n, err := r.ReadAtMostToBytes(p)
	if err != nil {
		return n, err
	}
	if n == 0 && len(p) > 0 && r.Exhausted() {
		return 0, io.EOF
	}
	return n, nil
}

// ReadFully reads exactly len(dst) bytes, pulling from the underlying
// RawReader as needed.
func (r *Reader) ReadFully(dst []byte) (int, error) {
	if err := r.Require(int64(len(dst))); err != nil {
		return 0, err
	}
	return r.buf.ReadFully(dst)
}

// Skip discards exactly n bytes, pulling as needed, failing on EOF.
func (r *Reader) Skip(n int64) error {
	if err := r.Require(n); err != nil {
		return err
	}
	r.buf.discard(n)
	return nil
}

// ReadByte dequeues one byte.
func (r *Reader) ReadByte() (byte, error) {
	if err := r.Require(1); err != nil {
		return 0, err
	}
	return r.buf.ReadByte()
}

// ReadUint16 dequeues a big-endian uint16.
func (r *Reader) ReadUint16() (uint16, error) {
	if err := r.Require(2); err != nil {
		return 0, err
	}
	return r.buf.ReadUint16()
}

// ReadUint16Le dequeues a little-endian uint16.
func (r *Reader) ReadUint16Le() (uint16, error) {
	if err := r.Require(2); err != nil {
		return 0, err
	}
	return r.buf.ReadUint16Le()
}

// ReadInt16 dequeues a big-endian int16.
func (r *Reader) ReadInt16() (int16, error) {
	v, err := r.ReadUint16()
	return int16(v), err
}

// ReadInt16Le dequeues a little-endian int16.
func (r *Reader) ReadInt16Le() (int16, error) {
	v, err := r.ReadUint16Le()
	return int16(v), err
}

// ReadUint32 dequeues a big-endian uint32.
func (r *Reader) ReadUint32() (uint32, error) {
	if err := r.Require(4); err != nil {
		return 0, err
	}
	return r.buf.ReadUint32()
}

// ReadUint32Le dequeues a little-endian uint32.
func (r *Reader) ReadUint32Le() (uint32, error) {
	if err := r.Require(4); err != nil {
		return 0, err
	}
	return r.buf.ReadUint32Le()
}

// ReadInt32 dequeues a big-endian int32.
func (r *Reader) ReadInt32() (int32, error) {
	v, err := r.ReadUint32()
	return int32(v), err
}

// ReadInt32Le dequeues a little-endian int32.
func (r *Reader) ReadInt32Le() (int32, error) {
	v, err := r.ReadUint32Le()
	return int32(v), err
}

// ReadUint64 dequeues a big-endian uint64.
func (r *Reader) ReadUint64() (uint64, error) {
	if err := r.Require(8); err != nil {
		return 0, err
	}
	return r.buf.ReadUint64()
}

// ReadUint64Le dequeues a little-endian uint64.
func (r *Reader) ReadUint64Le() (uint64, error) {
	if err := r.Require(8); err != nil {
		return 0, err
	}
	return r.buf.ReadUint64Le()
}

// ReadInt64 dequeues a big-endian int64.
func (r *Reader) ReadInt64() (int64, error) {
	v, err := r.ReadUint64()
	return int64(v), err
}

// ReadInt64Le dequeues a little-endian int64.
func (r *Reader) ReadInt64Le() (int64, error) {
	v, err := r.ReadUint64Le()
	return int64(v), err
}

// ReadDecimalLong parses a run of ASCII decimal digits, pulling more
// data until a non-digit byte is buffered or the underlying RawReader
// reaches EOF.
func (r *Reader) ReadDecimalLong() (int64, error) {
	if err := r.scanUntilNonDigit(isDecimalDigit); err != nil {
		return 0, err
	}
	return r.buf.ReadDecimalLong()
}

// ReadHexadecimalUnsignedLong parses a run of ASCII hex digits, pulling
// more data until a non-hex byte is buffered or EOF.
func (r *Reader) ReadHexadecimalUnsignedLong() (uint64, error) {
	if err := r.scanUntilNonDigit(isHexDigit); err != nil {
		return 0, err
	}
	return r.buf.ReadHexadecimalUnsignedLong()
}

func isDecimalDigit(c byte) bool { return c >= '0' && c <= '9' }
func isHexDigit(c byte) bool {
	return (c >= '0' && c <= '9') || (c >= 'a' && c <= 'f') || (c >= 'A' && c <= 'F')
}

// scanUntilNonDigit pulls additional segments until the buffer either
// contains a non-digit byte (per isDigit) or the underlying RawReader
// is exhausted, so ReadDecimalLong/ReadHexadecimalUnsignedLong can see
// the whole run of digits even when it spans a segment boundary.
func (r *Reader) scanUntilNonDigit(isDigit func(byte) bool) error {
	if r.closed {
		return ErrClosed
	}
	for {
		allDigits := true
		var i int64
		for i = 0; i < r.buf.Len(); i++ {
			c := r.buf.byteAt(i)
			if i == 0 && c == '-' {
				continue
			}
			if !isDigit(c) {
				allDigits = false
				break
			}
		}
		if !allDigits || r.rawEOF {
			return nil
		}
		ok, err := r.fill()
		if err != nil {
			return err
		}
		if !ok {
			return nil
		}
	}
}

// ReadByteString consumes n bytes as a segmented ByteString.
func (r *Reader) ReadByteString(n int64) (ByteString, error) {
	if err := r.Require(n); err != nil {
		return ByteString{}, err
	}
	return r.buf.ReadByteString(n)
}

// ReadUtf8 consumes n bytes and decodes them as UTF-8.
func (r *Reader) ReadUtf8(n int64) (string, error) {
	if err := r.Require(n); err != nil {
		return "", err
	}
	return r.buf.ReadUtf8(n)
}

// ReadUtf8CodePoint decodes and consumes one UTF-8 code point, pulling
// up to 4 bytes if needed.
func (r *Reader) ReadUtf8CodePoint() (rune, error) {
	if err := r.Require(1); err != nil {
		return 0, err
	}
	for r.buf.Len() < 4 && !r.rawEOF {
		ok, err := r.fill()
		if err != nil {
			return 0, err
		}
		if !ok {
			break
		}
	}
	return r.buf.ReadUtf8CodePoint()
}

// ReadUtf8Line reads up to but not including the next '\n' or "\r\n",
// pulling more data until a delimiter is found or the underlying
// RawReader reaches EOF.
func (r *Reader) ReadUtf8Line() (string, bool, error) {
	if r.closed {
		return "", false, ErrClosed
	}
	for {
		if idx := r.buf.IndexOf('\n', 0, -1); idx >= 0 || r.rawEOF {
			if r.buf.IsEmpty() {
				return "", false, nil
			}
			line, ok := r.buf.ReadUtf8Line()
			return line, ok, nil
		}
		if _, err := r.fill(); err != nil {
			return "", false, err
		}
	}
}

// ReadUtf8LineStrict behaves like ReadUtf8Line but fails with
// ErrEndOfInput if no delimiter is found within limit bytes (limit < 0
// means no limit beyond what the source eventually yields).
func (r *Reader) ReadUtf8LineStrict(limit int64) (string, error) {
	if r.closed {
		return "", ErrClosed
	}
	for {
		scanTo := r.buf.Len()
		if limit >= 0 && limit < scanTo {
			scanTo = limit
		}
		if r.buf.IndexOf('\n', 0, scanTo) >= 0 {
			return r.buf.ReadUtf8LineStrict(limit)
		}
		if r.rawEOF || (limit >= 0 && r.buf.Len() >= limit) {
			return r.buf.ReadUtf8LineStrict(limit)
		}
		if _, err := r.fill(); err != nil {
			return "", err
		}
	}
}

// ReadAll drains everything the underlying RawReader will ever produce
// into dst, returning the total byte count transferred.
func (r *Reader) ReadAll(dst RawWriter) (int64, error) {
	if r.closed {
		return 0, ErrClosed
	}
	var total int64
	for {
		if !r.buf.IsEmpty() {
			n := r.buf.Len()
			if err := dst.Write(&r.buf, n); err != nil {
				return total, err
			}
			total += n
		}
		if r.rawEOF {
			return total, nil
		}
		if _, err := r.fill(); err != nil {
			return total, err
		}
	}
}

// IndexOf returns the index of the first occurrence of b at or after
// from, pulling additional data until found or the underlying
// RawReader is exhausted.
func (r *Reader) IndexOf(b byte, from int64) (int64, error) {
	if r.closed {
		return -1, ErrClosed
	}
	for {
		if idx := r.buf.IndexOf(b, from, -1); idx >= 0 {
			return idx, nil
		}
		if r.rawEOF {
			return -1, nil
		}
		if _, err := r.fill(); err != nil {
			return -1, err
		}
	}
}

// IndexOfByteString returns the index of the first occurrence of needle
// at or after from, pulling additional data until found or exhausted.
func (r *Reader) IndexOfByteString(needle ByteString, from int64) (int64, error) {
	if r.closed {
		return -1, ErrClosed
	}
	for {
		if idx := r.buf.IndexOfByteString(needle, from); idx >= 0 {
			return idx, nil
		}
		if r.rawEOF {
			return -1, nil
		}
		if _, err := r.fill(); err != nil {
			return -1, err
		}
	}
}

// Peek returns a Reader view that shares the currently buffered bytes
// but consumes from an independent snapshot; it never pulls from the
// underlying RawReader and closing it is a no-op.
func (r *Reader) Peek() *Reader {
	p := &Reader{src: nopRawReader{}, rawEOF: true, log: r.log}
	p.buf = *r.buf.Clone()
	return p
}

// Close is idempotent; it releases the internal buffer's segments and
// closes the underlying RawReader.
func (r *Reader) Close() error {
	if r.closed {
		return nil
	}
	r.closed = true
	r.buf.Clear()
	return r.src.Close()
}

// nopRawReader backs Peek()'d readers, which must never pull more data
// from any underlying source.
type nopRawReader struct{}

func (nopRawReader) ReadAtMostTo(*Buffer, int64) (int64, error) { return -1, nil }
func (nopRawReader) Close() error                               { return nil }
