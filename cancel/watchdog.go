// ©Hayabusa Cloud Co., Ltd. 2025. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package cancel

import (
	"sync"
	"time"

	"go.uber.org/zap"
)

// Watchdog asynchronously closes registered AsyncCloseable resources at
// their deadline. A single package-level instance (defaultWatchdog)
// backs every CancelToken; SetDefaultLogger points its diagnostics at a
// caller-supplied logger.
type Watchdog struct {
	log *zap.Logger

	mu      sync.Mutex
	pending map[*time.Timer]struct{}
}

// NewWatchdog constructs a Watchdog. log may be nil, in which case the
// watchdog logs nothing — matching jayo's default-silent logging
// posture.
func NewWatchdog(log *zap.Logger) *Watchdog {
	if log == nil {
		log = zap.NewNop()
	}
	return &Watchdog{log: log, pending: make(map[*time.Timer]struct{})}
}

var defaultWatchdog = NewWatchdog(nil)

// SetDefaultLogger points the package-wide default watchdog's
// diagnostics at log, for callers that want visibility into deadline
// closes without constructing their own Watchdog.
func SetDefaultLogger(log *zap.Logger) {
	if log == nil {
		log = zap.NewNop()
	}
	defaultWatchdog.log = log
}

// watch schedules resource.Close() to run at deadline and returns a
// function that withdraws the schedule if called before it fires.
func (w *Watchdog) watch(resource AsyncCloseable, deadline time.Time) func() {
	d := time.Until(deadline)
	if d <= 0 {
		d = 0
	}
	var timer *time.Timer
	timer = time.AfterFunc(d, func() {
		w.mu.Lock()
		delete(w.pending, timer)
		w.mu.Unlock()
		if err := resource.Close(); err != nil {
			w.log.Warn("watchdog: deadline close failed", zap.Error(err))
		} else {
			w.log.Debug("watchdog: closed resource at deadline")
		}
	})
	w.mu.Lock()
	w.pending[timer] = struct{}{}
	w.mu.Unlock()

	return func() {
		if timer.Stop() {
			w.mu.Lock()
			delete(w.pending, timer)
			w.mu.Unlock()
		}
	}
}

// PendingCount reports how many deadline closes are currently scheduled,
// for tests and diagnostics.
func (w *Watchdog) PendingCount() int {
	w.mu.Lock()
	defer w.mu.Unlock()
	return len(w.pending)
}
