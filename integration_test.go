// ©Hayabusa Cloud Co., Ltd. 2025. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package jayo

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestScenarioS1RoundTripThroughWriterReader writes the canonical
// payload through a buffered Writer wrapping an in-memory sink, then
// reads the same length back through a buffered Reader wrapping the
// matching source.
func TestScenarioS1RoundTripThroughWriterReader(t *testing.T) {
	const payload = "The Answer to the Ultimate Question of Life is 42"

	sink := &memSink{}
	w := NewWriter(sink)
	_, err := w.WriteUtf8(payload)
	require.NoError(t, err)
	require.NoError(t, w.Flush())

	src := &memSource{data: sink.Bytes()}
	r := NewReader(src)
	got, err := r.ReadUtf8(int64(len(payload)))
	require.NoError(t, err)
	assert.Equal(t, payload, got)
}

// Bytes materialises everything accumulated by a memSink, for test
// assertions that need the raw byte slice rather than a Buffer.
func (m *memSink) Bytes() []byte {
	out := make([]byte, m.buf.Len())
	m.buf.Clone().ReadFully(out)
	return out
}

// TestScenarioS2EncodeDecodeUtf8WithSurrogatePair checks the exact byte
// count and content of a UTF-8 encode/decode round trip through a fresh
// Buffer for a string combining a precomposed accent and an astral
// code point (outside the BMP, i.e. requiring a UTF-16 surrogate pair
// on platforms that use UTF-16 strings).
func TestScenarioS2EncodeDecodeUtf8WithSurrogatePair(t *testing.T) {
	const s = "Café \U0001F369" // "Café 🍩"

	var b Buffer
	n, err := b.WriteUtf8(s)
	require.NoError(t, err)
	assert.Equal(t, 10, n)
	assert.Equal(t, 10, Size(s))

	got, err := b.ReadUtf8(10)
	require.NoError(t, err)
	assert.Equal(t, s, got)
}

// TestScenarioS3SnapshotIsolatedFromSubsequentReads builds a 32 KiB
// deterministic Buffer, snapshots it, then reads half of it out of the
// source Buffer. The snapshot must still observe all 32 KiB.
func TestScenarioS3SnapshotIsolatedFromSubsequentReads(t *testing.T) {
	const total = 32 * 1024
	payload := make([]byte, total)
	for i := range payload {
		payload[i] = byte(i)
	}

	var b Buffer
	b.Write(payload)
	snap := b.Snapshot()

	out := make([]byte, total/2)
	_, err := b.ReadFully(out)
	require.NoError(t, err)

	assert.EqualValues(t, total/2, b.Len())
	assert.EqualValues(t, total, snap.Len())
	assert.Equal(t, payload, snap.Bytes())
}

// TestScenarioS5MixedLineEndings exercises ReadUtf8LineStrict followed
// by ReadUtf8Line across CRLF and LF delimiters, ending with "no value".
func TestScenarioS5MixedLineEndings(t *testing.T) {
	var b Buffer
	b.Write([]byte("hello\r\nworld\nend"))

	strict, err := b.ReadUtf8LineStrict(-1)
	require.NoError(t, err)
	assert.Equal(t, "hello", strict)

	line, ok := b.ReadUtf8Line()
	require.True(t, ok)
	assert.Equal(t, "world", line)

	line, ok = b.ReadUtf8Line()
	require.True(t, ok)
	assert.Equal(t, "end", line)

	_, ok = b.ReadUtf8Line()
	assert.False(t, ok)
}

// TestScenarioS6ByteStringBase64 exercises ByteString.Of/base64 and
// decodeBase64's whitespace/padding tolerance.
func TestScenarioS6ByteStringBase64(t *testing.T) {
	bs := Of(0x48, 0x65, 0x6C, 0x6C, 0x6F)
	assert.Equal(t, "SGVsbG8=", bs.Base64())

	decoded, ok := DecodeBase64("SGVsbG8=")
	require.True(t, ok)
	assert.True(t, bs.Equal(decoded))

	decoded, ok = DecodeBase64("SGVsbG8")
	require.True(t, ok)
	assert.True(t, bs.Equal(decoded))
}
