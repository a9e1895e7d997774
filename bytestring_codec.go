// ©Hayabusa Cloud Co., Ltd. 2025. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package jayo

import (
	"encoding/base64"
	"encoding/hex"
	"strings"
)

// Base64 encodes the byte string per RFC 4648, standard alphabet, with
// padding.
func (bs ByteString) Base64() string {
	return base64.StdEncoding.EncodeToString(bs.Bytes())
}

// Base64Url encodes the byte string per RFC 4648 section 5 (URL and
// filename safe alphabet), with padding.
func (bs ByteString) Base64Url() string {
	return base64.URLEncoding.EncodeToString(bs.Bytes())
}

// Hex encodes the byte string as lowercase hexadecimal.
func (bs ByteString) Hex() string {
	return hex.EncodeToString(bs.Bytes())
}

// stripBase64Whitespace removes ASCII whitespace, which RFC 4648 decoders
// must tolerate.
func stripBase64Whitespace(s string) string {
	return strings.Map(func(r rune) rune {
		switch r {
		case ' ', '\t', '\n', '\r', '\f', '\v':
			return -1
		}
		return r
	}, s)
}

// DecodeBase64 decodes s (standard or URL-safe alphabet, auto-detected)
// tolerating interior/trailing whitespace and missing padding. On any
// invalid character it returns ok=false rather than a stop-at-first-
// invalid partial decode.
func DecodeBase64(s string) (bs ByteString, ok bool) {
	cleaned := stripBase64Whitespace(s)
	enc := base64.StdEncoding
	if strings.ContainsAny(cleaned, "-_") {
		enc = base64.URLEncoding
	}
	enc = enc.WithPadding(base64.NoPadding)
	cleaned = strings.TrimRight(cleaned, "=")
	out, err := enc.DecodeString(cleaned)
	if err != nil {
		return ByteString{}, false
	}
	return FromBytes(out), true
}

// DecodeHex decodes s as hexadecimal, case-insensitive, returning
// ok=false on any non-hex character or odd length.
func DecodeHex(s string) (bs ByteString, ok bool) {
	out, err := hex.DecodeString(s)
	if err != nil {
		return ByteString{}, false
	}
	return FromBytes(out), true
}
