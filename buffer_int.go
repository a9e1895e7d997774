// ©Hayabusa Cloud Co., Ltd. 2025. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package jayo

import (
	"encoding/binary"

	"code.hybscloud.com/jayo/internal/bo"
)

// Fixed-width integer codecs. Default endianness is
// big-endian; Le-suffixed variants are little-endian.
// Signed and unsigned readers/writers are pure bit reinterpretations of
// one another.

func (b *Buffer) readExact(n int) ([]byte, error) {
	if int64(n) > b.size {
		return nil, ErrEndOfInput
	}
	buf := make([]byte, n)
	_, _ = b.ReadFully(buf)
	return buf, nil
}

// ReadUint16 dequeues a big-endian uint16 from the head.
func (b *Buffer) ReadUint16() (uint16, error) {
	p, err := b.readExact(2)
	if err != nil {
		return 0, err
	}
	return binary.BigEndian.Uint16(p), nil
}

// ReadUint16Le dequeues a little-endian uint16 from the head.
func (b *Buffer) ReadUint16Le() (uint16, error) {
	p, err := b.readExact(2)
	if err != nil {
		return 0, err
	}
	return binary.LittleEndian.Uint16(p), nil
}

// ReadInt16 dequeues a big-endian int16 from the head.
func (b *Buffer) ReadInt16() (int16, error) {
	v, err := b.ReadUint16()
	return int16(v), err
}

// ReadInt16Le dequeues a little-endian int16 from the head.
func (b *Buffer) ReadInt16Le() (int16, error) {
	v, err := b.ReadUint16Le()
	return int16(v), err
}

// ReadUint32 dequeues a big-endian uint32 from the head.
func (b *Buffer) ReadUint32() (uint32, error) {
	p, err := b.readExact(4)
	if err != nil {
		return 0, err
	}
	return binary.BigEndian.Uint32(p), nil
}

// ReadUint32Le dequeues a little-endian uint32 from the head.
func (b *Buffer) ReadUint32Le() (uint32, error) {
	p, err := b.readExact(4)
	if err != nil {
		return 0, err
	}
	return binary.LittleEndian.Uint32(p), nil
}

// ReadInt32 dequeues a big-endian int32 from the head.
func (b *Buffer) ReadInt32() (int32, error) {
	v, err := b.ReadUint32()
	return int32(v), err
}

// ReadInt32Le dequeues a little-endian int32 from the head.
func (b *Buffer) ReadInt32Le() (int32, error) {
	v, err := b.ReadUint32Le()
	return int32(v), err
}

// ReadUint64 dequeues a big-endian uint64 from the head.
func (b *Buffer) ReadUint64() (uint64, error) {
	p, err := b.readExact(8)
	if err != nil {
		return 0, err
	}
	return binary.BigEndian.Uint64(p), nil
}

// ReadUint64Le dequeues a little-endian uint64 from the head.
func (b *Buffer) ReadUint64Le() (uint64, error) {
	p, err := b.readExact(8)
	if err != nil {
		return 0, err
	}
	return binary.LittleEndian.Uint64(p), nil
}

// ReadInt64 dequeues a big-endian int64 from the head.
func (b *Buffer) ReadInt64() (int64, error) {
	v, err := b.ReadUint64()
	return int64(v), err
}

// ReadInt64Le dequeues a little-endian int64 from the head.
func (b *Buffer) ReadInt64Le() (int64, error) {
	v, err := b.ReadUint64Le()
	return int64(v), err
}

// WriteUint16 appends v in big-endian order.
func (b *Buffer) WriteUint16(v uint16) error {
	var buf [2]byte
	binary.BigEndian.PutUint16(buf[:], v)
	_, err := b.Write(buf[:])
	return err
}

// WriteUint16Le appends v in little-endian order.
func (b *Buffer) WriteUint16Le(v uint16) error {
	var buf [2]byte
	binary.LittleEndian.PutUint16(buf[:], v)
	_, err := b.Write(buf[:])
	return err
}

// WriteInt16 appends v in big-endian order.
func (b *Buffer) WriteInt16(v int16) error { return b.WriteUint16(uint16(v)) }

// WriteInt16Le appends v in little-endian order.
func (b *Buffer) WriteInt16Le(v int16) error { return b.WriteUint16Le(uint16(v)) }

// WriteUint32 appends v in big-endian order.
func (b *Buffer) WriteUint32(v uint32) error {
	var buf [4]byte
	binary.BigEndian.PutUint32(buf[:], v)
	_, err := b.Write(buf[:])
	return err
}

// WriteUint32Le appends v in little-endian order.
func (b *Buffer) WriteUint32Le(v uint32) error {
	var buf [4]byte
	binary.LittleEndian.PutUint32(buf[:], v)
	_, err := b.Write(buf[:])
	return err
}

// WriteInt32 appends v in big-endian order.
func (b *Buffer) WriteInt32(v int32) error { return b.WriteUint32(uint32(v)) }

// WriteInt32Le appends v in little-endian order.
func (b *Buffer) WriteInt32Le(v int32) error { return b.WriteUint32Le(uint32(v)) }

// WriteUint64 appends v in big-endian order.
func (b *Buffer) WriteUint64(v uint64) error {
	var buf [8]byte
	binary.BigEndian.PutUint64(buf[:], v)
	_, err := b.Write(buf[:])
	return err
}

// WriteUint64Le appends v in little-endian order.
func (b *Buffer) WriteUint64Le(v uint64) error {
	var buf [8]byte
	binary.LittleEndian.PutUint64(buf[:], v)
	_, err := b.Write(buf[:])
	return err
}

// WriteInt64 appends v in big-endian order.
func (b *Buffer) WriteInt64(v int64) error { return b.WriteUint64(uint64(v)) }

// WriteInt64Le appends v in little-endian order.
func (b *Buffer) WriteInt64Le(v int64) error { return b.WriteUint64Le(uint64(v)) }

// ReadDecimalLong parses and consumes a run of ASCII decimal digits
// (with an optional leading '-') from the head of the buffer, stopping
// at the first non-digit byte or end of buffer
// readDecimalLong. It fails with a ProtocolError if no digit is present.
func (b *Buffer) ReadDecimalLong() (int64, error) {
	neg := false
	if b.size > 0 && b.byteAt(0) == '-' {
		neg = true
	}
	i := int64(0)
	if neg {
		i = 1
	}
	var val int64
	digits := 0
	for i < b.size {
		c := b.byteAt(i)
		if c < '0' || c > '9' {
			break
		}
		val = val*10 + int64(c-'0')
		digits++
		i++
	}
	if digits == 0 {
		return 0, NewProtocolError("expected a decimal digit")
	}
	b.discard(i)
	if neg {
		val = -val
	}
	return val, nil
}

// ReadUint32Native dequeues a uint32 encoded in the host's native byte
// order, for callers interoperating with a format defined in terms of
// the platform's own endianness (e.g. a memory-mapped record written by
// a process on the same machine) rather than a wire-format default.
func (b *Buffer) ReadUint32Native() (uint32, error) {
	p, err := b.readExact(4)
	if err != nil {
		return 0, err
	}
	return bo.Native().Uint32(p), nil
}

// WriteUint32Native appends v encoded in the host's native byte order.
func (b *Buffer) WriteUint32Native(v uint32) error {
	var buf [4]byte
	bo.Native().PutUint32(buf[:], v)
	_, err := b.Write(buf[:])
	return err
}

// ReadUint64Native dequeues a uint64 encoded in the host's native byte
// order.
func (b *Buffer) ReadUint64Native() (uint64, error) {
	p, err := b.readExact(8)
	if err != nil {
		return 0, err
	}
	return bo.Native().Uint64(p), nil
}

// WriteUint64Native appends v encoded in the host's native byte order.
func (b *Buffer) WriteUint64Native(v uint64) error {
	var buf [8]byte
	bo.Native().PutUint64(buf[:], v)
	_, err := b.Write(buf[:])
	return err
}

// ReadHexadecimalUnsignedLong parses and consumes a run of ASCII hex
// digits from the head of the buffer, case-insensitive.
func (b *Buffer) ReadHexadecimalUnsignedLong() (uint64, error) {
	var val uint64
	digits := int64(0)
	for digits < b.size {
		c := b.byteAt(digits)
		var d uint64
		switch {
		case c >= '0' && c <= '9':
			d = uint64(c - '0')
		case c >= 'a' && c <= 'f':
			d = uint64(c-'a') + 10
		case c >= 'A' && c <= 'F':
			d = uint64(c-'A') + 10
		default:
			goto done
		}
		val = val<<4 | d
		digits++
	}
done:
	if digits == 0 {
		return 0, NewProtocolError("expected a hexadecimal digit")
	}
	b.discard(digits)
	return val, nil
}
