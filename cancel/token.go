// ©Hayabusa Cloud Co., Ltd. 2025. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

// Package cancel implements jayo's ambient deadline/cancellation scope:
// CancelToken carries a deadline and cancellation state; WithTimeout,
// WithDeadline and WithCancel construct a token bound to a block of work;
// a package-level Watchdog
// asynchronously closes registered AsyncCloseable resources at their
// token's deadline, making cancellation effective even when the blocked
// call cannot otherwise be interrupted.
//
// Some I/O libraries lean on a thread-local or scoped-value slot that
// child threads inherit automatically. Go has no such ambient mechanism
// by design, so a *CancelToken is held explicitly by the caller instead of
// living in goroutine-local storage — the same shape as the standard
// library's context.Context, which is Go's own idiomatic answer to the
// same problem. jayo's readers, writers and adapters take no token; a
// caller brackets a blocking call with Checkpoint and its release
// function.
package cancel

import (
	"sync"
	"time"

	"github.com/google/uuid"

	"code.hybscloud.com/jayo"
)

// AsyncCloseable is any resource the Watchdog can close from outside the
// goroutine currently blocked on it.
type AsyncCloseable interface {
	Close() error
}

// CancelToken carries a deadline and cancellation state for an ambient
// scope, and a registry of resources currently blocked under it.
type CancelToken struct {
	id uuid.UUID

	parent *CancelToken

	mu         sync.Mutex
	deadline   time.Time
	hasDead    bool
	cancelled  bool
	resources  map[uuid.UUID]AsyncCloseable
	watchdog   *Watchdog
}

// ID returns a stable identifier for the token, used to key watchdog
// registrations and in diagnostic logging.
func (t *CancelToken) ID() uuid.UUID { return t.id }

// Background returns a root CancelToken with no deadline and an
// independent resource registry, analogous to context.Background().
func Background() *CancelToken {
	return &CancelToken{
		id:        uuid.New(),
		resources: make(map[uuid.UUID]AsyncCloseable),
		watchdog:  defaultWatchdog,
	}
}

// Deadline reports the token's effective deadline, if any.
func (t *CancelToken) Deadline() (time.Time, bool) {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.deadline, t.hasDead
}

// Cancelled reports whether Cancel has been called on this token or an
// ancestor.
func (t *CancelToken) Cancelled() bool {
	for tok := t; tok != nil; tok = tok.parent {
		tok.mu.Lock()
		c := tok.cancelled
		tok.mu.Unlock()
		if c {
			return true
		}
	}
	return false
}

// Err returns ErrTimeout if the token's deadline has elapsed,
// ErrInterrupted if it was explicitly cancelled, or nil otherwise.
func (t *CancelToken) Err() error {
	if t.Cancelled() {
		if d, ok := t.Deadline(); ok && !time.Now().Before(d) {
			return jayo.ErrTimeout
		}
		return jayo.ErrInterrupted
	}
	if d, ok := t.Deadline(); ok && !time.Now().Before(d) {
		return jayo.ErrTimeout
	}
	return nil
}

// remaining returns the time left until the token's deadline, and
// whether a deadline exists at all.
func (t *CancelToken) remaining() (time.Duration, bool) {
	d, ok := t.Deadline()
	if !ok {
		return 0, false
	}
	return time.Until(d), true
}

// Checkpoint performs the suspension-point entry check: fail immediately
// if already cancelled or past deadline, otherwise register resource
// with the Watchdog (if the token has a
// deadline) so it is asynchronously closed if the deadline elapses
// before the caller finishes. The returned release function must be
// called once the blocking operation completes, successfully or not, to
// withdraw the registration.
func (t *CancelToken) Checkpoint(resource AsyncCloseable) (release func(), err error) {
	if t.Cancelled() {
		return func() {}, jayo.ErrInterrupted
	}
	if remaining, ok := t.remaining(); ok && remaining <= 0 {
		return func() {}, jayo.ErrTimeout
	}

	rid := uuid.New()
	t.mu.Lock()
	t.resources[rid] = resource
	deadline, hasDead := t.deadline, t.hasDead
	t.mu.Unlock()

	var cancelWatch func()
	if hasDead && t.watchdog != nil {
		cancelWatch = t.watchdog.watch(resource, deadline)
	}

	return func() {
		t.mu.Lock()
		delete(t.resources, rid)
		t.mu.Unlock()
		if cancelWatch != nil {
			cancelWatch()
		}
	}, nil
}

// Cancel atomically marks the token (and every descendant sharing its
// ancestry, since Cancelled() walks parents) as cancelled and
// asynchronously closes every resource currently registered under it,
// so their in-flight blocking calls return with ErrInterrupted.
func (t *CancelToken) Cancel() {
	t.mu.Lock()
	t.cancelled = true
	resources := make([]AsyncCloseable, 0, len(t.resources))
	for _, r := range t.resources {
		resources = append(resources, r)
	}
	t.mu.Unlock()

	for _, r := range resources {
		_ = r.Close()
	}
}

// child constructs a token under t with its own empty resource registry
// and t's watchdog, whose deadline is the sooner of t's deadline and the
// given one (resource registration for blocking calls goes through
// Checkpoint).
func (t *CancelToken) child(deadline time.Time, hasDead bool) *CancelToken {
	child := &CancelToken{
		id:        uuid.New(),
		parent:    t,
		resources: make(map[uuid.UUID]AsyncCloseable),
		watchdog:  t.watchdog,
	}
	if pd, pok := t.Deadline(); pok {
		if !hasDead || pd.Before(deadline) {
			deadline, hasDead = pd, true
		}
	}
	child.deadline, child.hasDead = deadline, hasDead
	return child
}
