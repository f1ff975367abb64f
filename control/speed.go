package control

import (
	"github.com/sirupsen/logrus"
	"github.com/touchctl/touchctl/constant"
	"github.com/touchctl/touchctl/log"
	"github.com/touchctl/touchctl/property"
	"github.com/touchctl/touchctl/state"
)

// Speed plays at a multiple of the normal speed while a long press is held.
type Speed struct {
	bridge *property.Bridge
	store  *state.Store
	opts   Options

	active   bool
	original float32
}

func NewSpeed(bridge *property.Bridge, store *state.Store, opts Options) *Speed {
	return &Speed{bridge: bridge, store: store, opts: opts}
}

// Active reports whether the multiplier is applied.
func (s *Speed) Active() bool {
	return s.active
}

// Start applies the multiplier. It does nothing, and reports false, when the
// gesture is disabled, controls are locked, playback is not known to be running
// or the current speed is unknown.
func (s *Speed) Start() bool {
	if s.active || s.opts.MultipleSpeed == 0 || s.store.ControlsLocked.Get() {
		return false
	}

	s.store.Sync(s.bridge)
	if paused, ok := s.store.Paused.Get().Get(); !ok || paused {
		return false
	}

	speed := s.bridge.Float(constant.PropSpeed)
	original, ok := speed.Get().Get()
	if !ok {
		return false
	}

	if err := speed.Set(float32(s.opts.MultipleSpeed)); err != nil {
		return false
	}

	s.active = true
	s.original = original
	s.store.Update.Set(state.UpdateMultipleSpeed)

	log.WithFields(logrus.Fields{"from": original, "to": s.opts.MultipleSpeed}).Debug("speed multiplier applied")
	return true
}

// End restores the speed from before the press.
func (s *Speed) End() {
	if !s.active {
		return
	}

	s.active = false
	_ = s.bridge.Float(constant.PropSpeed).Set(s.original)
	s.store.Update.Set(state.UpdateNone)

	log.Debugf("speed restored to %v", s.original)
}

// Cancel behaves like End.
func (s *Speed) Cancel() {
	s.End()
}
