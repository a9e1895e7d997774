// ©Hayabusa Cloud Co., Ltd. 2025. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package jayo

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// memSource/memSink are minimal RawReader/RawWriter test doubles kept
// local to this package's tests so jayo's own tests don't depend on the
// adapters package (which imports jayo).

type memSource struct {
	data   []byte
	pos    int
	closed bool
}

func (m *memSource) ReadAtMostTo(dst *Buffer, byteCount int64) (int64, error) {
	if m.pos >= len(m.data) {
		return -1, nil
	}
	end := m.pos + int(byteCount)
	if end > len(m.data) {
		end = len(m.data)
	}
	n, _ := dst.Write(m.data[m.pos:end])
	m.pos += n
	return int64(n), nil
}
func (m *memSource) Close() error { m.closed = true; return nil }

type memSink struct {
	buf    Buffer
	closed bool
}

func (m *memSink) Write(src *Buffer, byteCount int64) error {
	_, err := m.buf.WriteFromBuffer(src, byteCount)
	return err
}
func (m *memSink) Flush() error { return nil }
func (m *memSink) Close() error { m.closed = true; return nil }

func TestReaderTypedReadsAcrossFills(t *testing.T) {
	src := &memSource{data: []byte("The Answer to the Ultimate Question of Life is 42")}
	r := NewReader(src)

	s, err := r.ReadUtf8(3)
	require.NoError(t, err)
	assert.Equal(t, "The", s)

	require.NoError(t, r.Skip(1))
	rest, err := r.ReadUtf8(int64(len("Answer to the Ultimate Question of Life is 42")))
	require.NoError(t, err)
	assert.Equal(t, "Answer to the Ultimate Question of Life is 42", rest)
	assert.True(t, r.Exhausted())
}

func TestReaderRequireFailsAtEOF(t *testing.T) {
	src := &memSource{data: []byte("ab")}
	r := NewReader(src)
	err := r.Require(10)
	assert.ErrorIs(t, err, ErrEndOfInput)
}

func TestReaderReadDecimalLong(t *testing.T) {
	src := &memSource{data: []byte("-12345rest")}
	r := NewReader(src)
	v, err := r.ReadDecimalLong()
	require.NoError(t, err)
	assert.EqualValues(t, -12345, v)
}

func TestReaderReadUtf8Line(t *testing.T) {
	src := &memSource{data: []byte("first\r\nsecond\nthird")}
	r := NewReader(src)

	line, ok, err := r.ReadUtf8Line()
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, "first", line)

	line, ok, err = r.ReadUtf8Line()
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, "second", line)

	line, ok, err = r.ReadUtf8Line()
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, "third", line)

	_, ok, err = r.ReadUtf8Line()
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestReaderPeekDoesNotConsume(t *testing.T) {
	src := &memSource{data: []byte("peekable")}
	r := NewReader(src)
	require.NoError(t, r.Require(8))

	peek := r.Peek()
	s, err := peek.ReadUtf8(4)
	require.NoError(t, err)
	assert.Equal(t, "peek", s)

	full, err := r.ReadUtf8(8)
	require.NoError(t, err)
	assert.Equal(t, "peekable", full)
}

func TestWriterEmitAndFlush(t *testing.T) {
	sink := &memSink{}
	w := NewWriter(sink, WithEmitThreshold(0))

	_, err := w.WriteUtf8("The Answer to the Ultimate Question of Life is 42")
	require.NoError(t, err)
	require.NoError(t, w.Flush())

	out := make([]byte, sink.buf.Len())
	sink.buf.ReadFully(out)
	assert.Equal(t, "The Answer to the Ultimate Question of Life is 42", string(out))
}

func TestWriterAutoEmitsCompleteSegments(t *testing.T) {
	sink := &memSink{}
	w := NewWriter(sink, WithEmitThreshold(1))

	payload := make([]byte, SegmentSize*3)
	for i := range payload {
		payload[i] = byte(i)
	}
	_, err := w.WriteBytes(payload)
	require.NoError(t, err)

	// At least the complete segments should already be in the sink
	// before Flush, since the threshold was crossed during WriteBytes.
	assert.True(t, sink.buf.Len() > 0)

	require.NoError(t, w.Flush())
	assert.EqualValues(t, len(payload), sink.buf.Len())
}

func TestWriterCloseIsIdempotent(t *testing.T) {
	sink := &memSink{}
	w := NewWriter(sink)
	require.NoError(t, w.Close())
	require.NoError(t, w.Close())
	assert.True(t, sink.closed)
}

func TestWriterOperationAfterCloseFails(t *testing.T) {
	sink := &memSink{}
	w := NewWriter(sink)
	require.NoError(t, w.Close())
	_, err := w.WriteUtf8("too late")
	assert.ErrorIs(t, err, ErrClosed)
}

func TestWriterAsyncDrainsToSink(t *testing.T) {
	sink := &memSink{}
	w := NewWriter(sink, WithAsyncWriter(), WithEmitThreshold(0))

	_, err := w.WriteUtf8("async payload")
	require.NoError(t, err)
	require.NoError(t, w.Flush())

	out := make([]byte, sink.buf.Len())
	sink.buf.ReadFully(out)
	assert.Equal(t, "async payload", string(out))
}
