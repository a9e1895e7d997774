// ©Hayabusa Cloud Co., Ltd. 2025. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package jayo

import (
	"errors"
	"fmt"

	pkgerrors "github.com/pkg/errors"
)

// Sentinel errors for the control-flow signals described in the error kinds
// table (§7): EndOfInput, Closed, Timeout, Interrupted, Protocol,
// IllegalArgument. Timeout is-a Interrupted (errors.Is(ErrTimeout,
// ErrInterrupted) reports true) since cancellation due to an elapsed
// deadline is a subtype of cancellation in general.
var (
	// ErrEndOfInput reports that the underlying source returned EOF before
	// the requested contract (a guaranteed byte count) was satisfied.
	ErrEndOfInput = errors.New("jayo: end of input")

	// ErrClosed reports an operation attempted on an already-closed
	// Reader, Writer, or Pipe side.
	ErrClosed = errors.New("jayo: closed")

	// ErrInterrupted reports cancellation due to an explicit CancelScope
	// cancel or host thread interruption.
	ErrInterrupted = errors.New("jayo: interrupted")

	// ErrTimeout reports cancellation due to an elapsed deadline. It wraps
	// ErrInterrupted so callers that only check for interruption still
	// match timeouts.
	ErrTimeout = fmt.Errorf("jayo: timeout: %w", ErrInterrupted)

	// ErrInvalidArgument reports a negative count or an out-of-range
	// offset/length passed to an operation.
	ErrInvalidArgument = errors.New("jayo: invalid argument")
)

// ProtocolError reports a well-formedness violation in encoded data, such
// as malformed hex, invalid base64 presented where no recovery was
// requested, or malformed UTF-8 surfaced by a strict decoding variant.
type ProtocolError struct {
	Msg string
}

func (e *ProtocolError) Error() string { return "jayo: protocol: " + e.Msg }

// NewProtocolError builds a ProtocolError with the given message.
func NewProtocolError(msg string) error { return &ProtocolError{Msg: msg} }

// IOError wraps a generic host I/O failure together with its cause. Use
// errors.Is/errors.As, Cause, or github.com/pkg/errors.Cause to reach the
// underlying error, e.g. an *os.PathError or a net.Error; a single
// errors.Unwrap yields the stack-carrying wrapper around it.
type IOError struct {
	Op    string
	cause error
}

// Cause returns the wrapped cause, letting github.com/pkg/errors.Cause
// walk through an IOError to the underlying error.
func (e *IOError) Cause() error { return e.cause }

func (e *IOError) Error() string {
	if e.Op == "" {
		return "jayo: io: " + e.cause.Error()
	}
	return "jayo: io: " + e.Op + ": " + e.cause.Error()
}

func (e *IOError) Unwrap() error { return e.cause }

// WrapIOError wraps a non-nil host I/O error with context about the
// operation that failed. It returns nil when err is nil, so call sites can
// write `return jayo.WrapIOError("read", err)` unconditionally.
//
// The wrapped error additionally carries a stack trace via
// github.com/pkg/errors, recoverable with pkgerrors.Cause and (where the
// cause implements it) the StackTrace() method — the pack's usual pattern
// for host I/O failures that need postmortem context (e.g. yawal's WAL
// segment errors).
func WrapIOError(op string, err error) error {
	if err == nil {
		return nil
	}
	return &IOError{Op: op, cause: pkgerrors.WithStack(err)}
}

// Cause unwraps a jayo error chain to the innermost error recorded by
// github.com/pkg/errors.WithStack, falling back to err itself.
func Cause(err error) error { return pkgerrors.Cause(err) }
