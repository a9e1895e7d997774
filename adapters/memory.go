// ©Hayabusa Cloud Co., Ltd. 2025. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

// Package adapters implements jayo's RawReader/RawWriter contracts over
// concrete external collaborators: in-memory sources and
// sinks, os.File, net.Conn sockets, and a codec wrapper. Only the glue
// between these collaborators and the RawReader/RawWriter shape is in
// scope here; TLS, socket-option tuning, and compression internals
// belong to their own libraries.
package adapters

import "code.hybscloud.com/jayo"

// MemorySource is a RawReader over a fixed in-memory byte slice,
// yielding it to the caller one ReadAtMostTo call at a time.
type MemorySource struct {
	data   []byte
	pos    int
	closed bool
}

// NewMemorySource wraps data as a RawReader. data is not copied;
// callers must not mutate it while the source is in use.
func NewMemorySource(data []byte) *MemorySource {
	return &MemorySource{data: data}
}

// ReadAtMostTo appends up to byteCount bytes starting at the source's
// current position, returning -1 once the slice is exhausted.
func (m *MemorySource) ReadAtMostTo(dst *jayo.Buffer, byteCount int64) (int64, error) {
	if m.closed {
		return 0, jayo.ErrClosed
	}
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

// Close marks the source closed. Idempotent.
func (m *MemorySource) Close() error {
	m.closed = true
	return nil
}

// MemorySink is a RawWriter that accumulates everything written to it
// into an in-memory buffer, retrievable via Bytes.
type MemorySink struct {
	buf    jayo.Buffer
	closed bool
}

// NewMemorySink constructs an empty MemorySink.
func NewMemorySink() *MemorySink { return &MemorySink{} }

// Write moves byteCount bytes from src into the sink's internal buffer.
func (m *MemorySink) Write(src *jayo.Buffer, byteCount int64) error {
	if m.closed {
		return jayo.ErrClosed
	}
	_, err := m.buf.WriteFromBuffer(src, byteCount)
	return err
}

// Flush is a no-op; a MemorySink has no further downstream to push to.
func (m *MemorySink) Flush() error { return nil }

// Close marks the sink closed. Idempotent.
func (m *MemorySink) Close() error {
	m.closed = true
	return nil
}

// Bytes returns a copy of everything written to the sink so far.
func (m *MemorySink) Bytes() []byte {
	out := make([]byte, m.buf.Len())
	m.buf.Clone().ReadFully(out)
	return out
}
