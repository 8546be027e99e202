package fastpair

import (
	"sync"
	"time"
)

// Timer wraps time.Timer with the no-op-after-natural-completion guarantee
// once Stop has been called, a race with an
// in-flight fire is resolved in favor of Stop, so a timer that fires after
// the operation it bounds has already completed does nothing.
type Timer struct {
	mu      sync.Mutex
	timer   *time.Timer
	stopped bool
}

// StartTimer schedules fn to run on executor after d, unless the returned
// Timer is stopped first.
func StartTimer(executor *Executor, d time.Duration, fn func()) *Timer {
	t := &Timer{}
	t.timer = time.AfterFunc(d, func() {
		t.mu.Lock()
		stopped := t.stopped
		t.mu.Unlock()
		if stopped {
			return
		}
		executor.Submit(func() {
			t.mu.Lock()
			stopped := t.stopped
			t.mu.Unlock()
			if !stopped {
				fn()
			}
		})
	})
	return t
}

// Stop prevents a pending fire from taking effect. It is safe to call
// multiple times and after the timer has already fired.
func (t *Timer) Stop() {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.stopped {
		return
	}
	t.stopped = true
	t.timer.Stop()
}
