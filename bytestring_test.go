// ©Hayabusa Cloud Co., Ltd. 2025. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package jayo

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestByteStringEqualAcrossRepresentations(t *testing.T) {
	contiguous := FromString("hello world")

	var buf Buffer
	buf.Write([]byte("hello world"))
	segmented := buf.Snapshot()

	assert.True(t, contiguous.Equal(segmented))
	assert.Equal(t, contiguous.Hash(), segmented.Hash())
}

func TestByteStringSubstring(t *testing.T) {
	bs := FromString("hello world")
	sub := bs.Substring(6, 11)
	assert.Equal(t, "world", sub.String())
}

func TestByteStringStartsEndsWith(t *testing.T) {
	bs := FromString("hello world")
	assert.True(t, bs.StartsWith(FromString("hello")))
	assert.True(t, bs.EndsWith(FromString("world")))
	assert.False(t, bs.StartsWith(FromString("world")))
}

func TestByteStringIndexOf(t *testing.T) {
	bs := FromString("abcabcabc")
	assert.Equal(t, 0, bs.IndexOf(FromString("abc"), 0))
	assert.Equal(t, 3, bs.IndexOf(FromString("abc"), 1))
	assert.Equal(t, -1, bs.IndexOf(FromString("xyz"), 0))
	assert.Equal(t, 6, bs.LastIndexOf(FromString("abc"), -1))
}

func TestByteStringAsciiCaseIdentity(t *testing.T) {
	bs := FromString("already lower")
	lowered := bs.ToAsciiLowercase()
	// No byte changes, so the identical underlying data should be
	// returned rather than a fresh copy.
	assert.True(t, &bs.data[0] == &lowered.data[0])

	upper := FromString("MIXED Case 123")
	lowerMixed := upper.ToAsciiLowercase()
	assert.Equal(t, "mixed case 123", lowerMixed.String())
}

func TestByteStringBase64RoundTrip(t *testing.T) {
	bs := FromString("The Answer to the Ultimate Question of Life is 42")
	encoded := bs.Base64()
	decoded, ok := DecodeBase64(encoded)
	require.True(t, ok)
	assert.True(t, bs.Equal(decoded))
}

func TestByteStringBase64ToleratesWhitespace(t *testing.T) {
	bs := FromString("hi")
	encoded := bs.Base64() // "aGk="
	withWhitespace := " aGk\n= \t"
	decoded, ok := DecodeBase64(withWhitespace)
	require.True(t, ok)
	assert.True(t, bs.Equal(decoded))
	_ = encoded
}

func TestByteStringDecodeBase64InvalidReturnsNoValue(t *testing.T) {
	_, ok := DecodeBase64("not*valid*base64!!")
	assert.False(t, ok)
}

func TestByteStringHexRoundTrip(t *testing.T) {
	bs := FromBytes([]byte{0x00, 0x01, 0xFF, 0xAB})
	decoded, ok := DecodeHex(bs.Hex())
	require.True(t, ok)
	assert.True(t, bs.Equal(decoded))
}

func TestByteStringSegmentedSubstringSpansBoundary(t *testing.T) {
	var buf Buffer
	payload := make([]byte, SegmentSize+100)
	for i := range payload {
		payload[i] = byte(i % 251)
	}
	buf.Write(payload)
	bs := buf.Snapshot()

	sub := bs.Substring(SegmentSize-10, SegmentSize+10)
	want := payload[SegmentSize-10 : SegmentSize+10]
	assert.Equal(t, want, sub.Bytes())
}
