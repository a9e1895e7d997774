// ©Hayabusa Cloud Co., Ltd. 2025. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package cancel

import "time"

// CancelFunc releases resources associated with a CancelToken and marks
// it (and its Checkpoint-registered resources) cancelled. Calling it
// more than once is a no-op beyond the first call.
type CancelFunc func()

// WithTimeout returns a child of parent whose deadline is the sooner of
// parent's own deadline and now+d. parent may be
// nil, in which case the child is rooted under Background().
func WithTimeout(parent *CancelToken, d time.Duration) (*CancelToken, CancelFunc) {
	return WithDeadline(parent, time.Now().Add(d))
}

// WithDeadline returns a child of parent whose deadline is the sooner of
// parent's own deadline and deadline.
func WithDeadline(parent *CancelToken, deadline time.Time) (*CancelToken, CancelFunc) {
	if parent == nil {
		parent = Background()
	}
	child := parent.child(deadline, true)
	return child, func() { child.Cancel() }
}

// WithCancel returns a child of parent with no deadline of its own,
// useful purely for its independent resource registry and CancelFunc.
func WithCancel(parent *CancelToken) (*CancelToken, CancelFunc) {
	if parent == nil {
		parent = Background()
	}
	child := parent.child(time.Time{}, false)
	return child, func() { child.Cancel() }
}
