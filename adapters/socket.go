// ©Hayabusa Cloud Co., Ltd. 2025. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package adapters

import (
	"errors"
	"io"
	"net"

	"code.hybscloud.com/jayo"
)

// socketScratch is the staging buffer a Conn adapter reads raw bytes
// into before handing them to Buffer.Write, sized to one segment so a
// single net.Conn.Read call can fill an entire jayo segment.
const socketScratch = jayo.SegmentSize

// ConnReader is a RawReader over a net.Conn. It implements
// jayo.AsyncCloseable so a cancel.Watchdog can close the underlying
// connection from outside the goroutine blocked in Read.
type ConnReader struct {
	conn net.Conn
}

// NewConnReader wraps conn as a RawReader.
func NewConnReader(conn net.Conn) *ConnReader { return &ConnReader{conn: conn} }

// ReadAtMostTo reads at most byteCount bytes (capped at one segment per
// call) from the connection into dst, translating a clean net.Conn EOF
// into the -1 convention.
func (r *ConnReader) ReadAtMostTo(dst *jayo.Buffer, byteCount int64) (int64, error) {
	if byteCount > socketScratch {
		byteCount = socketScratch
	}
	var scratch [socketScratch]byte
	n, err := r.conn.Read(scratch[:byteCount])
	if n > 0 {
		_, _ = dst.Write(scratch[:n])
	}
	if err != nil {
		if errors.Is(err, io.EOF) {
			return -1, nil
		}
		return int64(n), jayo.WrapIOError("socket read", err)
	}
	return int64(n), nil
}

// Close closes the underlying connection. Idempotent from the caller's
// perspective of jayo's contract, though net.Conn.Close itself may
// return an error on a second call.
func (r *ConnReader) Close() error { return r.conn.Close() }

// ConnWriter is a RawWriter over a net.Conn, also exposing
// AsyncCloseable.
type ConnWriter struct {
	conn net.Conn
}

// NewConnWriter wraps conn as a RawWriter.
func NewConnWriter(conn net.Conn) *ConnWriter { return &ConnWriter{conn: conn} }

// Write removes exactly byteCount bytes from src and transfers them to
// the connection, looping until the whole payload is written or an
// error occurs.
func (w *ConnWriter) Write(src *jayo.Buffer, byteCount int64) error {
	remaining := byteCount
	var scratch [socketScratch]byte
	for remaining > 0 {
		n := remaining
		if n > socketScratch {
			n = socketScratch
		}
		m, _ := src.ReadAtMostTo(scratch[:n])
		if m == 0 {
			break
		}
		if _, err := w.conn.Write(scratch[:m]); err != nil {
			return jayo.WrapIOError("socket write", err)
		}
		remaining -= int64(m)
	}
	return nil
}

// Flush is a no-op for a raw TCP/Unix socket; there is no user-space
// buffering to push through.
func (w *ConnWriter) Flush() error { return nil }

// Close closes the underlying connection.
func (w *ConnWriter) Close() error { return w.conn.Close() }
