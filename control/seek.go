package control

import (
	"github.com/samber/mo"
	"github.com/sirupsen/logrus"
	"github.com/touchctl/touchctl/log"
	"github.com/touchctl/touchctl/property"
	"github.com/touchctl/touchctl/state"
	"github.com/touchctl/touchctl/util"
)

// Seek maps a horizontal drag onto the transport position. Playback is paused
// for the length of the drag.
type Seek struct {
	bridge   *property.Bridge
	store    *state.Store
	playback *Playback
	opts     Options

	active    bool
	startPos  float64
	startX    float64
	wasPaused bool
}

func NewSeek(bridge *property.Bridge, store *state.Store, playback *Playback, opts Options) *Seek {
	return &Seek{bridge: bridge, store: store, playback: playback, opts: opts}
}

// Enabled reports whether horizontal drags should be claimed for seeking.
func (s *Seek) Enabled() bool {
	return s.opts.Seek
}

// Active reports whether a drag is in progress.
func (s *Seek) Active() bool {
	return s.active
}

// Start begins a drag at x.
func (s *Seek) Start(x float64) {
	s.store.Sync(s.bridge)
	snap := s.store.Snapshot()

	s.active = true
	s.startPos = snap.Position
	s.startX = x
	s.wasPaused = snap.Paused

	log.WithFields(logrus.Fields{"position": s.startPos, "paused": s.wasPaused}).Debug("seek started")
	s.playback.Pause()
}

// Update moves the target to follow x. dx is the horizontal movement since the previous update.
func (s *Seek) Update(x, dx float64) {
	if !s.active {
		return
	}

	// Without a known duration there is no timeline to move along.
	if d, ok := s.store.Duration.Get().Get(); !ok || d <= 0 {
		return
	}

	snap := s.store.Snapshot()
	if snap.Position <= 0 && dx < 0 {
		return
	}
	if snap.Position >= snap.Duration && dx > 0 {
		return
	}

	target := s.Target(x, snap.Duration)
	s.store.SeekPreview.Set(mo.Some(state.SeekPreview{Start: s.startPos, Delta: target - s.startPos}))
	s.playback.SeekTo(target, s.opts.PreciseSeeking)

	if s.opts.ShowSeekbar {
		s.store.SeekBarShown.Set(true)
	}
}

// Target is the position a drag to x selects, clamped into [0, duration].
func (s *Seek) Target(x, duration float64) float64 {
	return util.Clamp(s.startPos+(x-s.startX)*s.opts.SeekSensitivity, 0, max(0, duration))
}

// End finishes the drag and resumes playback unless it was paused before.
func (s *Seek) End() {
	if !s.active {
		return
	}
	log.Debugf("seek ended")
	s.finish()
}

// Cancel abandons the drag. The position stays where the drag left it.
func (s *Seek) Cancel() {
	if !s.active {
		return
	}
	log.Debugf("seek cancelled")
	s.finish()
}

func (s *Seek) finish() {
	s.active = false
	s.store.SeekPreview.Set(mo.None[state.SeekPreview]())
	s.store.SeekBarShown.Set(false)
	if !s.wasPaused {
		s.playback.Unpause()
	}
}
