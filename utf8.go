// ©Hayabusa Cloud Co., Ltd. 2025. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package jayo

import (
	"unicode/utf16"
	"unicode/utf8"

	"golang.org/x/text/encoding/charmap"
)

// Utf8 is a ByteString known to hold well-formed UTF-8, refined with a
// cached UTF-16 code unit count and cached string decoding. It is
// modelled as an embedding of ByteString rather than a class hierarchy.
type Utf8 struct {
	ByteString
	utf16Len    int
	utf16LenSet bool

	str    string
	strSet bool
}

// Ascii further refines Utf8 to bytes all < 0x80. Every Ascii is a valid
// Utf8 is a valid ByteString.
type Ascii struct {
	Utf8
}

// AsUtf8 wraps bs as a Utf8, without validating well-formedness; callers
// that decoded or constructed bs from a trusted source (e.g.
// Buffer.WriteUtf8's own encoder) may skip validation. Use DecodeUtf8 to
// validate arbitrary input instead.
func AsUtf8(bs ByteString) Utf8 { return Utf8{ByteString: bs} }

// DecodeUtf8 validates that bs holds well-formed UTF-8 before wrapping
// it, returning ok=false otherwise.
func DecodeUtf8(bs ByteString) (u Utf8, ok bool) {
	if !utf8.Valid(bs.Bytes()) {
		return Utf8{}, false
	}
	return Utf8{ByteString: bs}, true
}

// Utf8Of encodes s (already valid UTF-8, as all Go strings effectively
// are) as a Utf8 ByteString.
func Utf8Of(s string) Utf8 {
	return Utf8{ByteString: FromString(s)}
}

// AsciiOf wraps bs as Ascii without validating; use DecodeAscii for
// untrusted input.
func AsciiOf(bs ByteString) Ascii { return Ascii{Utf8: Utf8{ByteString: bs}} }

// DecodeAscii validates that every byte of bs is < 0x80.
func DecodeAscii(bs ByteString) (a Ascii, ok bool) {
	allAscii := true
	bs.forEachByte(func(_ int, c byte) bool {
		if c >= 0x80 {
			allAscii = false
			return false
		}
		return true
	})
	if !allAscii {
		return Ascii{}, false
	}
	return Ascii{Utf8: Utf8{ByteString: bs}}, true
}

// String decodes and caches the UTF-8 string, reusing the cached result
// on subsequent calls.
func (u *Utf8) String() string {
	if u.strSet {
		return u.str
	}
	s := u.ByteString.String()
	u.str = s
	u.strSet = true
	return s
}

// Utf16Len returns the number of UTF-16 code units the decoded string
// would occupy, caching the result.
func (u *Utf8) Utf16Len() int {
	if u.utf16LenSet {
		return u.utf16Len
	}
	n := Utf16Count(u.String())
	u.utf16Len = n
	u.utf16LenSet = true
	return n
}

// Utf16Count computes the UTF-16 code unit length of s, used by
// Utf8.Utf16Len.
func Utf16Count(s string) int {
	return len(utf16.Encode([]rune(s)))
}

// Size computes the exact UTF-8 byte count that Buffer.WriteUtf8(s)
// would emit. For any string already valid
// UTF-8 this equals len(s); decoding rune by rune additionally matches
// WriteUtf8's policy of emitting a single '?' byte for any malformed
// byte sequence.
func Size(s string) int {
	n := 0
	for i := 0; i < len(s); {
		r, size := utf8.DecodeRuneInString(s[i:])
		if r == utf8.RuneError && size <= 1 {
			n++ // malformed input -> '?'
		} else {
			n += size
		}
		i += size
	}
	return n
}

// DecodeISO88591 decodes bs as ISO-8859-1 (Latin-1), the one
// non-UTF-8/ASCII charset jayo supports. Every byte
// maps 1:1 to the Unicode code point of the same value, so this is
// provided via golang.org/x/text/encoding/charmap for parity with the
// rest of the decodeToString(charset) contract rather than because the
// mapping itself is complex.
func DecodeISO88591(bs ByteString) (string, error) {
	decoded, err := charmap.ISO8859_1.NewDecoder().Bytes(bs.Bytes())
	if err != nil {
		return "", WrapIOError("decode-iso-8859-1", err)
	}
	return string(decoded), nil
}
