// ©Hayabusa Cloud Co., Ltd. 2025. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package adapters

import (
	"errors"
	"io"

	"github.com/klauspost/compress/flate"

	"code.hybscloud.com/jayo"
)

// FlateReader is a RawReader that decompresses a DEFLATE-compressed
// underlying RawReader on the fly, demonstrating that a codec wrapper
// composes with the RawReader contract without the core Buffer/Reader
// knowing anything about compression.
type FlateReader struct {
	src jayo.RawReader
	fr  io.ReadCloser
}

// NewFlateReader wraps src, decompressing everything read through it.
// src is consumed through an io.Reader adapter backed by a jayo.Buffer,
// since klauspost/compress/flate speaks io.Reader.
func NewFlateReader(src jayo.RawReader) *FlateReader {
	br := newRawReaderAsIOReader(src)
	return &FlateReader{src: src, fr: flate.NewReader(br)}
}

// ReadAtMostTo decompresses at most byteCount bytes into dst.
func (r *FlateReader) ReadAtMostTo(dst *jayo.Buffer, byteCount int64) (int64, error) {
	if byteCount > socketScratch {
		byteCount = socketScratch
	}
	var scratch [socketScratch]byte
	n, err := r.fr.Read(scratch[:byteCount])
	if n > 0 {
		_, _ = dst.Write(scratch[:n])
	}
	if err != nil {
		if errors.Is(err, io.EOF) {
			if n > 0 {
				return int64(n), nil
			}
			return -1, nil
		}
		return int64(n), jayo.WrapIOError("flate read", err)
	}
	return int64(n), nil
}

// Close closes the flate reader and the underlying RawReader.
func (r *FlateReader) Close() error {
	_ = r.fr.Close()
	return r.src.Close()
}

// FlateWriter is a RawWriter that compresses everything written to it
// with DEFLATE before handing it to an underlying RawWriter.
type FlateWriter struct {
	dst jayo.RawWriter
	fw  *flate.Writer
}

// NewFlateWriter wraps dst, compressing everything written through it
// at the given level (flate.DefaultCompression if level is 0).
func NewFlateWriter(dst jayo.RawWriter, level int) (*FlateWriter, error) {
	if level == 0 {
		level = flate.DefaultCompression
	}
	fw, err := flate.NewWriter(newRawWriterAsIOWriter(dst), level)
	if err != nil {
		return nil, jayo.WrapIOError("flate init", err)
	}
	return &FlateWriter{dst: dst, fw: fw}, nil
}

// Write compresses exactly byteCount bytes from src.
func (w *FlateWriter) Write(src *jayo.Buffer, byteCount int64) error {
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
		if _, err := w.fw.Write(scratch[:m]); err != nil {
			return jayo.WrapIOError("flate write", err)
		}
		remaining -= int64(m)
	}
	return nil
}

// Flush flushes the DEFLATE stream and the underlying RawWriter.
func (w *FlateWriter) Flush() error {
	if err := w.fw.Flush(); err != nil {
		return jayo.WrapIOError("flate flush", err)
	}
	return w.dst.Flush()
}

// Close closes the DEFLATE stream and the underlying RawWriter.
func (w *FlateWriter) Close() error {
	_ = w.fw.Close()
	return w.dst.Close()
}

// rawReaderAsIOReader adapts a jayo.RawReader to io.Reader so it can
// feed a stdlib-shaped decompressor.
type rawReaderAsIOReader struct {
	src jayo.RawReader
	buf jayo.Buffer
}

func newRawReaderAsIOReader(src jayo.RawReader) *rawReaderAsIOReader {
	return &rawReaderAsIOReader{src: src}
}

func (a *rawReaderAsIOReader) Read(p []byte) (int, error) {
	if a.buf.IsEmpty() {
		n, err := a.src.ReadAtMostTo(&a.buf, int64(len(p)))
		if err != nil {
			return 0, err
		}
		if n < 0 {
			return 0, io.EOF
		}
	}
	return a.buf.ReadAtMostTo(p)
}

// rawWriterAsIOWriter adapts a jayo.RawWriter to io.Writer so it can
// receive output from a stdlib-shaped compressor.
type rawWriterAsIOWriter struct {
	dst jayo.RawWriter
	buf jayo.Buffer
}

func newRawWriterAsIOWriter(dst jayo.RawWriter) *rawWriterAsIOWriter {
	return &rawWriterAsIOWriter{dst: dst}
}

func (a *rawWriterAsIOWriter) Write(p []byte) (int, error) {
	n, _ := a.buf.Write(p)
	if err := a.dst.Write(&a.buf, int64(n)); err != nil {
		return 0, err
	}
	return n, nil
}
