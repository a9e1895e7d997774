// ©Hayabusa Cloud Co., Ltd. 2025. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package adapters

import (
	"errors"
	"io"
	"os"

	"code.hybscloud.com/jayo"
)

// FileReader is a RawReader over an *os.File.
type FileReader struct {
	f *os.File
}

// OpenFileReader opens path read-only and wraps it as a RawReader.
func OpenFileReader(path string) (*FileReader, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, jayo.WrapIOError("open", err)
	}
	return &FileReader{f: f}, nil
}

// NewFileReader wraps an already-open *os.File.
func NewFileReader(f *os.File) *FileReader { return &FileReader{f: f} }

// ReadAtMostTo reads at most byteCount bytes (capped at one segment per
// call) from the file into dst.
func (r *FileReader) ReadAtMostTo(dst *jayo.Buffer, byteCount int64) (int64, error) {
	if byteCount > socketScratch {
		byteCount = socketScratch
	}
	var scratch [socketScratch]byte
	n, err := r.f.Read(scratch[:byteCount])
	if n > 0 {
		_, _ = dst.Write(scratch[:n])
	}
	if err != nil {
		if errors.Is(err, io.EOF) {
			return -1, nil
		}
		return int64(n), jayo.WrapIOError("file read", err)
	}
	return int64(n), nil
}

// Close closes the underlying file.
func (r *FileReader) Close() error { return r.f.Close() }

// FileWriter is a RawWriter over an *os.File.
type FileWriter struct {
	f *os.File
}

// CreateFileWriter creates (or truncates) path and wraps it as a
// RawWriter.
func CreateFileWriter(path string) (*FileWriter, error) {
	f, err := os.Create(path)
	if err != nil {
		return nil, jayo.WrapIOError("create", err)
	}
	return &FileWriter{f: f}, nil
}

// NewFileWriter wraps an already-open *os.File.
func NewFileWriter(f *os.File) *FileWriter { return &FileWriter{f: f} }

// Write removes exactly byteCount bytes from src and appends them to
// the file.
func (w *FileWriter) Write(src *jayo.Buffer, byteCount int64) error {
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
		if _, err := w.f.Write(scratch[:m]); err != nil {
			return jayo.WrapIOError("file write", err)
		}
		remaining -= int64(m)
	}
	return nil
}

// Flush calls Sync on the underlying file, pushing kernel-buffered
// writes to stable storage.
func (w *FileWriter) Flush() error {
	if err := w.f.Sync(); err != nil {
		return jayo.WrapIOError("file sync", err)
	}
	return nil
}

// Close closes the underlying file.
func (w *FileWriter) Close() error { return w.f.Close() }
