// ©Hayabusa Cloud Co., Ltd. 2025. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package jayo

import (
	"bytes"
	"sort"
)

// ByteString is an immutable byte sequence. Internally it is
// either a contiguous representation (a single backing array) or a
// segmented representation (a snapshot of Buffer segments with an offset
// directory for O(log n) index lookup); callers never observe the
// difference — equality, hashing, ordering and the search operations are
// bit-exact across representations.
//
// The zero value is the empty ByteString.
type ByteString struct {
	// contiguous representation
	data []byte

	// segmented representation: spans holds the shared segment slices in
	// order; offsets[i] is the absolute start index of spans[i], with a
	// trailing sentinel offsets[len(spans)] == length.
	spans   [][]byte
	offsets []int64

	length int

	hash    uint64
	hashSet bool
}

// Of builds a contiguous ByteString copying the given bytes.
func Of(b ...byte) ByteString {
	cp := make([]byte, len(b))
	copy(cp, b)
	return ByteString{data: cp, length: len(cp)}
}

// FromBytes builds a contiguous ByteString copying p. Use this rather
// than Of when p is already a []byte to avoid the ...byte conversion.
func FromBytes(p []byte) ByteString {
	cp := make([]byte, len(p))
	copy(cp, p)
	return ByteString{data: cp, length: len(cp)}
}

// FromString builds a contiguous ByteString from the UTF-8 bytes of s.
func FromString(s string) ByteString {
	return ByteString{data: []byte(s), length: len(s)}
}

// newSegmentedByteString builds a Segmented ByteString from already-shared
// segment slices, as produced by Buffer.Snapshot.
func newSegmentedByteString(spans [][]byte) ByteString {
	offsets := make([]int64, len(spans)+1)
	var total int64
	for i, s := range spans {
		offsets[i] = total
		total += int64(len(s))
	}
	offsets[len(spans)] = total
	return ByteString{spans: spans, offsets: offsets, length: int(total)}
}

func (bs ByteString) isSegmented() bool { return bs.spans != nil }

// Len returns the number of bytes in the byte string.
func (bs ByteString) Len() int { return bs.length }

// At returns the byte at index i. It panics if i is out of range.
func (bs ByteString) At(i int) byte {
	if i < 0 || i >= bs.length {
		panic("jayo: ByteString: index out of range")
	}
	if !bs.isSegmented() {
		return bs.data[i]
	}
	idx := bs.spanIndex(int64(i))
	return bs.spans[idx][int64(i)-bs.offsets[idx]]
}

// spanIndex returns the index into bs.spans containing absolute offset i,
// via binary search over the offset directory (O(log n)).
func (bs ByteString) spanIndex(i int64) int {
	return sort.Search(len(bs.spans), func(k int) bool { return bs.offsets[k+1] > i })
}

// Bytes materialises the byte string as a single freshly allocated slice.
// For a Segmented ByteString this is the one place copying happens; all
// other operations avoid it.
func (bs ByteString) Bytes() []byte {
	if !bs.isSegmented() {
		out := make([]byte, len(bs.data))
		copy(out, bs.data)
		return out
	}
	out := make([]byte, bs.length)
	off := 0
	for _, s := range bs.spans {
		off += copy(out[off:], s)
	}
	return out
}

// Substring returns the byte string over [start, end). It shares the
// underlying representation where possible instead of copying.
func (bs ByteString) Substring(start, end int) ByteString {
	if start < 0 || end > bs.length || start > end {
		panic("jayo: ByteString: Substring out of range")
	}
	if start == 0 && end == bs.length {
		return bs
	}
	if !bs.isSegmented() {
		return ByteString{data: bs.data[start:end], length: end - start}
	}
	lo := bs.spanIndex(int64(start))
	hiInclusive := bs.spanIndex(int64(end - 1))
	spans := make([][]byte, 0, hiInclusive-lo+1)
	for i := lo; i <= hiInclusive; i++ {
		from, to := 0, len(bs.spans[i])
		if i == lo {
			from = start - int(bs.offsets[i])
		}
		if i == hiInclusive {
			to = end - int(bs.offsets[i])
		}
		spans = append(spans, bs.spans[i][from:to])
	}
	return newSegmentedByteString(spans)
}

// forEachByte calls fn for every byte in order, stopping early if fn
// returns false. It is the shared traversal used by Equal, hashing,
// DecodeAscii and the ASCII case conversions so both representations
// share one code path.
func (bs ByteString) forEachByte(fn func(i int, c byte) bool) {
	if !bs.isSegmented() {
		for i, c := range bs.data {
			if !fn(i, c) {
				return
			}
		}
		return
	}
	i := 0
	for _, s := range bs.spans {
		for _, c := range s {
			if !fn(i, c) {
				return
			}
			i++
		}
	}
}

// Equal reports whether bs and other hold identical bytes, regardless of
// representation.
func (bs ByteString) Equal(other ByteString) bool {
	if bs.length != other.length {
		return false
	}
	if !bs.isSegmented() && !other.isSegmented() {
		return bytes.Equal(bs.data, other.data)
	}
	equal := true
	bs.forEachByte(func(i int, c byte) bool {
		if other.At(i) != c {
			equal = false
			return false
		}
		return true
	})
	return equal
}

// Compare orders bs and other byte-wise, like bytes.Compare.
func (bs ByteString) Compare(other ByteString) int {
	n := bs.length
	if other.length < n {
		n = other.length
	}
	for i := 0; i < n; i++ {
		a, b := bs.At(i), other.At(i)
		if a != b {
			if a < b {
				return -1
			}
			return 1
		}
	}
	switch {
	case bs.length < other.length:
		return -1
	case bs.length > other.length:
		return 1
	default:
		return 0
	}
}

// fnv1a64 parameters, used for ByteString.Hash.
const (
	fnvOffset64 = 14695981039346656037
	fnvPrime64  = 1099511628211
)

// Hash returns a cached, content-derived hash, stable across
// representations for identical contents.
func (bs *ByteString) Hash() uint64 {
	if bs.hashSet {
		return bs.hash
	}
	h := uint64(fnvOffset64)
	bs.forEachByte(func(_ int, c byte) bool {
		h ^= uint64(c)
		h *= fnvPrime64
		return true
	})
	bs.hash = h
	bs.hashSet = true
	return h
}

// StartsWith reports whether bs begins with prefix.
func (bs ByteString) StartsWith(prefix ByteString) bool {
	if prefix.length > bs.length {
		return false
	}
	return bs.Substring(0, prefix.length).Equal(prefix)
}

// EndsWith reports whether bs ends with suffix.
func (bs ByteString) EndsWith(suffix ByteString) bool {
	if suffix.length > bs.length {
		return false
	}
	return bs.Substring(bs.length-suffix.length, bs.length).Equal(suffix)
}

// IndexOf returns the index of the first occurrence of other at or after
// from, or -1 if absent.
func (bs ByteString) IndexOf(other ByteString, from int) int {
	if from < 0 {
		from = 0
	}
	if other.length == 0 {
		if from > bs.length {
			return -1
		}
		return from
	}
	limit := bs.length - other.length
	for i := from; i <= limit; i++ {
		if bs.Substring(i, i+other.length).Equal(other) {
			return i
		}
	}
	return -1
}

// LastIndexOf returns the index of the last occurrence of other at or
// before from, or -1 if absent. from == -1 means "search from the end".
func (bs ByteString) LastIndexOf(other ByteString, from int) int {
	limit := bs.length - other.length
	if from < 0 || from > limit {
		from = limit
	}
	for i := from; i >= 0; i-- {
		if bs.Substring(i, i+other.length).Equal(other) {
			return i
		}
	}
	return -1
}

// toAsciiCase returns this when no byte changes under fn, and otherwise a
// fresh contiguous ByteString, giving callers a bit-for-bit identity
// guarantee when ToAsciiLowercase/Uppercase is a no-op.
func (bs ByteString) toAsciiCase(fn func(byte) byte) ByteString {
	changed := false
	bs.forEachByte(func(_ int, c byte) bool {
		if fn(c) != c {
			changed = true
			return false
		}
		return true
	})
	if !changed {
		return bs
	}
	out := bs.Bytes()
	for i, c := range out {
		out[i] = fn(c)
	}
	return ByteString{data: out, length: len(out)}
}

func asciiLower(c byte) byte {
	if c >= 'A' && c <= 'Z' {
		return c + ('a' - 'A')
	}
	return c
}

func asciiUpper(c byte) byte {
	if c >= 'a' && c <= 'z' {
		return c - ('a' - 'A')
	}
	return c
}

// ToAsciiLowercase returns this unchanged when no byte is an ASCII
// uppercase letter, otherwise a new ByteString with those bytes lowered.
func (bs ByteString) ToAsciiLowercase() ByteString { return bs.toAsciiCase(asciiLower) }

// ToAsciiUppercase returns this unchanged when no byte is an ASCII
// lowercase letter, otherwise a new ByteString with those bytes raised.
func (bs ByteString) ToAsciiUppercase() ByteString { return bs.toAsciiCase(asciiUpper) }

// String decodes the byte string as UTF-8. The result is not cached on
// plain ByteString values (only Utf8 caches); construct a Utf8 via
// AsUtf8 when repeated decoding matters.
func (bs ByteString) String() string {
	if !bs.isSegmented() {
		return string(bs.data)
	}
	return string(bs.Bytes())
}
