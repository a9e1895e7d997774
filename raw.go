// ©Hayabusa Cloud Co., Ltd. 2025. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package jayo

// RawReader is the abstract byte producer contract:
// implementations exist for byte streams, channels, in-memory sources,
// and codec wrappers (jayo/adapters). The implementations in this module
// do not consult a cancel.CancelToken themselves; a deadline or cancel
// reaches a blocking call only where the resource has been registered
// with CancelToken.Checkpoint around that call.
type RawReader interface {
	// ReadAtMostTo appends between 1 and byteCount bytes to dst and
	// returns the number appended, or -1 on clean end of input. It must
	// not return 0 unless byteCount is 0. It may block.
	ReadAtMostTo(dst *Buffer, byteCount int64) (int64, error)

	// Close releases underlying resources. Idempotent.
	Close() error
}

// RawWriter is the abstract byte consumer contract.
type RawWriter interface {
	// Write removes exactly byteCount bytes from src's head and
	// transfers them, blocking until completion or failure.
	Write(src *Buffer, byteCount int64) error

	// Flush makes a best-effort push to the ultimate destination.
	Flush() error

	// Close is idempotent and implies Flush when state permits.
	Close() error
}

// AsyncCloseable is implemented by resources that a Watchdog can close
// from a goroutine other than the one blocked on them, to make
// cancellation effective regardless of where the blocked call actually
// parks.
type AsyncCloseable interface {
	Close() error
}
