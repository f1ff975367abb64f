// Package loop provides the single-threaded cooperative scheduler the gesture core runs on.
//
// Touch events, engine notifications and timer callbacks are all executed one at a
// time on the loop, so gesture and transform state never needs locking.
package loop

import (
	"context"
	"time"
)

// Timer is a scheduled callback.
type Timer interface {
	// Stop cancels the timer. It reports whether the call prevented the callback from running.
	Stop() bool
}

// Scheduler runs functions on the loop, now or after a delay.
type Scheduler interface {
	Post(fn func())
	AfterFunc(d time.Duration, fn func()) Timer
	Now() time.Time
}

// Loop is the production Scheduler: one goroutine draining a queue of functions.
type Loop struct {
	queue chan func()
}

// New creates a loop with room for size pending functions.
func New(size int) *Loop {
	return &Loop{queue: make(chan func(), size)}
}

// Post enqueues fn. It blocks while the queue is full.
func (l *Loop) Post(fn func()) {
	l.queue <- fn
}

// Now implements Scheduler.
func (l *Loop) Now() time.Time {
	return time.Now()
}

// AfterFunc schedules fn to run on the loop after d.
func (l *Loop) AfterFunc(d time.Duration, fn func()) Timer {
	t := &loopTimer{}
	t.timer = time.AfterFunc(d, func() {
		l.Post(func() {
			// stopped after the wall-clock timer fired but before the loop got to it
			if t.stopped {
				return
			}
			t.fired = true
			fn()
		})
	})
	return t
}

// Run executes queued functions until ctx is done.
func (l *Loop) Run(ctx context.Context) error {
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case fn := <-l.queue:
			fn()
		}
	}
}

// loopTimer fields are only touched on the loop goroutine, except timer.Stop which is safe anywhere.
type loopTimer struct {
	timer   *time.Timer
	stopped bool
	fired   bool
}

func (t *loopTimer) Stop() bool {
	if t.stopped || t.fired {
		return false
	}
	t.stopped = true
	t.timer.Stop()
	return true
}
