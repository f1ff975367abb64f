package loop

import (
	"sort"
	"time"
)

// Manual is a Scheduler driven by a virtual clock. Posted functions run immediately;
// timers run when Advance moves the clock past their deadline. Tests and replays use it.
type Manual struct {
	now    time.Time
	seq    int
	timers []*manualTimer
}

// NewManual creates a scheduler whose clock starts at start.
func NewManual(start time.Time) *Manual {
	return &Manual{now: start}
}

func (m *Manual) Post(fn func()) {
	fn()
}

func (m *Manual) Now() time.Time {
	return m.now
}

func (m *Manual) AfterFunc(d time.Duration, fn func()) Timer {
	m.seq++
	t := &manualTimer{at: m.now.Add(d), seq: m.seq, fn: fn}
	m.timers = append(m.timers, t)
	return t
}

// Advance moves the clock forward by d, firing due timers in deadline order.
// Timers scheduled by callbacks fire too if they fall within the window.
func (m *Manual) Advance(d time.Duration) {
	m.AdvanceTo(m.now.Add(d))
}

// AdvanceTo moves the clock to t if t is later than now.
func (m *Manual) AdvanceTo(t time.Time) {
	for {
		next := m.nextDue(t)
		if next == nil {
			break
		}
		m.now = next.at
		next.done = true
		next.fn()
	}
	if t.After(m.now) {
		m.now = t
	}
}

// Pending reports how many timers are still scheduled.
func (m *Manual) Pending() int {
	n := 0
	for _, t := range m.timers {
		if !t.done {
			n++
		}
	}
	return n
}

func (m *Manual) nextDue(limit time.Time) *manualTimer {
	live := m.timers[:0]
	for _, t := range m.timers {
		if !t.done {
			live = append(live, t)
		}
	}
	m.timers = live

	sort.SliceStable(m.timers, func(i, j int) bool {
		if m.timers[i].at.Equal(m.timers[j].at) {
			return m.timers[i].seq < m.timers[j].seq
		}
		return m.timers[i].at.Before(m.timers[j].at)
	})

	if len(m.timers) == 0 || m.timers[0].at.After(limit) {
		return nil
	}
	return m.timers[0]
}

type manualTimer struct {
	at   time.Time
	seq  int
	fn   func()
	done bool
}

func (t *manualTimer) Stop() bool {
	if t.done {
		return false
	}
	t.done = true
	return true
}
