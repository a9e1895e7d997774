// ©Hayabusa Cloud Co., Ltd. 2025. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package jayo

import "unicode/utf8"

// peek copies up to max bytes from the head of the buffer without
// consuming them, used by the UTF-8 decoders which need to look ahead
// across segment boundaries before deciding how many bytes to consume.
func (b *Buffer) peek(max int) []byte {
	if max <= 0 {
		return nil
	}
	out := make([]byte, 0, max)
	s := b.head
	for s != nil && len(out) < max {
		take := s.limit - s.pos
		if len(out)+take > max {
			take = max - len(out)
		}
		out = append(out, s.data[s.pos:s.pos+take]...)
		s = s.next
	}
	return out
}

// discard removes n bytes from the head of the buffer without copying
// them anywhere, releasing any segment that becomes empty.
func (b *Buffer) discard(n int64) {
	if n > b.size {
		n = b.size
	}
	for n > 0 && b.head != nil {
		s := b.head
		avail := int64(s.size())
		take := avail
		if take > n {
			take = n
		}
		s.pos += int(take)
		b.size -= take
		n -= take
		b.dropHeadIfEmpty()
	}
}

// WriteUtf8 encodes s as UTF-8 and appends it to the tail. Malformed
// byte sequences in s (which a valid Go string should never contain, but
// a string built from untrusted bytes via string([]byte) may) are
// replaced with a single '?' byte, matching the source's policy for
// unpaired surrogates; Go's string type has no surrogate
// concept of its own, so an invalid encoding is the closest analogous
// condition (see DESIGN.md).
func (b *Buffer) WriteUtf8(s string) (int, error) {
	start := b.size
	i := 0
	var scratch [4]byte
	for i < len(s) {
		r, size := utf8.DecodeRuneInString(s[i:])
		if r == utf8.RuneError && size <= 1 {
			_ = b.WriteByte('?')
		} else {
			n := utf8.EncodeRune(scratch[:], r)
			b.Write(scratch[:n])
		}
		i += size
	}
	return int(b.size - start), nil
}

// WriteUtf8CodePoint emits the UTF-8 encoding of a single code point
// (1-4 bytes per RFC 3629). Surrogate code points (U+D800..U+DFFF) and
// values outside [0, U+10FFFF] emit '?' instead.
func (b *Buffer) WriteUtf8CodePoint(cp rune) error {
	if cp < 0 || cp > 0x10FFFF || (cp >= 0xD800 && cp <= 0xDFFF) {
		return b.WriteByte('?')
	}
	var scratch [4]byte
	n := utf8.EncodeRune(scratch[:], cp)
	_, err := b.Write(scratch[:n])
	return err
}

// ReadUtf8CodePoint decodes and consumes one UTF-8 code point from the
// head of the buffer. On malformed bytes — overlong encodings, truncated
// multibyte sequences, unexpected continuation bytes, or encoded values
// above U+10FFFF — it consumes exactly one byte and returns the
// replacement character U+FFFD.
func (b *Buffer) ReadUtf8CodePoint() (rune, error) {
	if b.size == 0 {
		return 0, ErrEndOfInput
	}
	max := 4
	if int64(max) > b.size {
		max = int(b.size)
	}
	r, size := utf8.DecodeRune(b.peek(max))
	if size == 0 {
		size = 1
	}
	b.discard(int64(size))
	return r, nil
}

// ReadUtf8 decodes and consumes n bytes as a UTF-8 string. If fewer than
// n bytes are currently buffered, it returns ErrEndOfInput without
// consuming anything.
func (b *Buffer) ReadUtf8(n int64) (string, error) {
	if n > b.size {
		return "", ErrEndOfInput
	}
	buf := make([]byte, n)
	_, _ = b.ReadFully(buf)
	return string(buf), nil
}

// ReadByteString consumes n bytes and returns them as a segmented
// ByteString. Whole segments and split prefixes of at least ShareMinimum
// bytes are shared without copying; a shorter split prefix is copied
// into a fresh segment.
func (b *Buffer) ReadByteString(n int64) (ByteString, error) {
	if n > b.size {
		return ByteString{}, ErrEndOfInput
	}
	if n == 0 {
		return ByteString{}, nil
	}
	out := &Buffer{}
	if _, err := out.WriteFromBuffer(b, n); err != nil {
		return ByteString{}, err
	}
	return out.Snapshot(), nil
}

// ReadUtf8Line reads up to but not including the next '\n' or "\r\n",
// consuming the delimiter. At end of the currently buffered bytes with
// no delimiter found, it returns everything that remains (including a
// lone trailing '\r', per the Open Question resolution in DESIGN.md) and
// ok=true; it returns ok=false only when the buffer is already empty.
func (b *Buffer) ReadUtf8Line() (line string, ok bool) {
	if b.size == 0 {
		return "", false
	}
	idx := b.IndexOf('\n', 0, -1)
	if idx == -1 {
		s, _ := b.ReadUtf8(b.size)
		return s, true
	}
	trim := int64(0)
	if idx > 0 && b.byteAt(idx-1) == '\r' {
		trim = 1
	}
	s, _ := b.ReadUtf8(idx - trim)
	b.discard(trim + 1) // the optional '\r' and the '\n'
	return s, true
}

// ReadUtf8LineStrict reads up to but not including the next '\n' or
// "\r\n" within the first limit bytes currently buffered (limit < 0
// means no limit beyond what is buffered), consuming the delimiter. It
// fails with ErrEndOfInput if no delimiter is found within that window —
// the buffered-reader layer (Reader.ReadUtf8LineStrict) is what pulls
// more data from the raw source before giving up for real.
func (b *Buffer) ReadUtf8LineStrict(limit int64) (string, error) {
	scanTo := b.size
	if limit >= 0 && limit < scanTo {
		scanTo = limit
	}
	idx := b.IndexOf('\n', 0, scanTo)
	if idx == -1 {
		return "", ErrEndOfInput
	}
	trim := int64(0)
	if idx > 0 && b.byteAt(idx-1) == '\r' {
		trim = 1
	}
	s, _ := b.ReadUtf8(idx - trim)
	b.discard(trim + 1)
	return s, nil
}
