// ©Hayabusa Cloud Co., Ltd. 2025. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package jayo

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecodeUtf8ValidatesWellFormedness(t *testing.T) {
	_, ok := DecodeUtf8(FromBytes([]byte{0xff, 0xfe}))
	assert.False(t, ok)

	u, ok := DecodeUtf8(FromString("héllo"))
	require.True(t, ok)
	assert.Equal(t, "héllo", u.String())
}

func TestDecodeAsciiRejectsHighBytes(t *testing.T) {
	_, ok := DecodeAscii(FromString("héllo"))
	assert.False(t, ok)

	a, ok := DecodeAscii(FromString("hello"))
	require.True(t, ok)
	assert.Equal(t, "hello", a.String())
}

func TestUtf16CountSurrogatePairs(t *testing.T) {
	// U+1F600 (grinning face) requires a surrogate pair in UTF-16.
	s := "a\U0001F600b"
	assert.Equal(t, 4, Utf16Count(s)) // 'a' + hi + lo + 'b'
}

func TestSizeMatchesUtf8ByteLen(t *testing.T) {
	s := "hello, 世界"
	assert.Equal(t, len(s), Size(s))
}

func TestDecodeISO88591(t *testing.T) {
	bs := FromBytes([]byte{0x48, 0x65, 0x6C, 0x6C, 0xF6}) // "Hell" + 'ö' (0xF6 in Latin-1)
	s, err := DecodeISO88591(bs)
	require.NoError(t, err)
	assert.Equal(t, "Hellö", s)
}
