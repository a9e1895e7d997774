// ©Hayabusa Cloud Co., Ltd. 2025. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package jayo

import "go.uber.org/zap"

// defaultEmitThreshold is the number of complete segments a buffered
// Writer tolerates before auto-emitting to its RawWriter.
const defaultEmitThreshold = 4

// readerOptions configures a Reader.
type readerOptions struct {
	log *zap.Logger
}

// ReaderOption configures a Reader at construction time.
type ReaderOption func(*readerOptions)

func defaultReaderOptions() readerOptions {
	return readerOptions{log: zap.NewNop()}
}

// WithReaderLogger attaches a structured logger to the Reader (it is
// carried over to Peek views). The default is a no-op logger; the Reader
// emits no log events of its own.
func WithReaderLogger(log *zap.Logger) ReaderOption {
	return func(o *readerOptions) {
		if log != nil {
			o.log = log
		}
	}
}

// writerOptions configures a Writer.
type writerOptions struct {
	log           *zap.Logger
	emitThreshold int
	async         bool
}

// WriterOption configures a Writer at construction time.
type WriterOption func(*writerOptions)

func defaultWriterOptions() writerOptions {
	return writerOptions{log: zap.NewNop(), emitThreshold: defaultEmitThreshold}
}

// WithWriterLogger attaches a structured logger to the Writer. The
// default is a no-op logger; the Writer emits no log events of its own.
func WithWriterLogger(log *zap.Logger) WriterOption {
	return func(o *writerOptions) {
		if log != nil {
			o.log = log
		}
	}
}

// WithEmitThreshold overrides the number of complete segments tolerated
// before a buffered Writer auto-emits. n <= 0 disables
// auto-emission entirely, deferring all transfer to explicit Flush/Emit
// calls.
func WithEmitThreshold(n int) WriterOption {
	return func(o *writerOptions) { o.emitThreshold = n }
}

// WithAsyncWriter delegates emit-to-raw transfers to a dedicated
// goroutine via a hand-off queue. Flush and Close still
// block until outstanding writes are drained and any error is surfaced.
func WithAsyncWriter() WriterOption {
	return func(o *writerOptions) { o.async = true }
}
