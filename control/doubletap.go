package control

import (
	"time"

	"github.com/sirupsen/logrus"
	"github.com/touchctl/touchctl/log"
	"github.com/touchctl/touchctl/loop"
	"github.com/touchctl/touchctl/state"
)

const (
	// DecayDelay is how long the double-tap counter lives after its last change.
	DecayDelay = 800 * time.Millisecond
	// HideDelay separates the counter reset from hiding the seek bar.
	HideDelay = 100 * time.Millisecond
)

// Zone is a horizontal band of the viewport.
type Zone int

const (
	ZoneCenter Zone = iota
	ZoneBackward
	ZoneForward
)

func (z Zone) String() string {
	switch z {
	case ZoneBackward:
		return "backward"
	case ZoneForward:
		return "forward"
	default:
		return "center"
	}
}

// Zoomer is the part of the transform engine a double tap can reset.
type Zoomer interface {
	Zoomed() bool
	Reset()
}

// DoubleTap seeks by a fixed amount per tap on the outer fifths of the screen and
// runs the center action in between. Taps in the same direction accumulate into a
// counter that decays after DecayDelay.
type DoubleTap struct {
	store    *state.Store
	playback *Playback
	zoom     Zoomer
	sched    loop.Scheduler
	opts     Options

	decay loop.Timer
	hide  loop.Timer
}

func NewDoubleTap(store *state.Store, playback *Playback, zoom Zoomer, sched loop.Scheduler, opts Options) *DoubleTap {
	return &DoubleTap{store: store, playback: playback, zoom: zoom, sched: sched, opts: opts}
}

// ZoneAt classifies x: below 2/5 of the width seeks backward, above 3/5 forward.
func (d *DoubleTap) ZoneAt(x float64) Zone {
	width := d.store.Viewport.Get().Width
	switch {
	case x > width*3/5:
		return ZoneForward
	case x < width*2/5:
		return ZoneBackward
	default:
		return ZoneCenter
	}
}

// Seeking reports whether a press should continue the current double-tap seek.
func (d *DoubleTap) Seeking() bool {
	return d.store.DoubleTapSeeking.Get() && d.store.DoubleTapAmount.Get() != 0
}

// Press handles a pointer going down at x. While the counter is live a press on
// either side zone continues seeking at once and a press in the center runs the
// center action. Press reports true to claim the touch sequence.
func (d *DoubleTap) Press(x float64) bool {
	if d.store.ControlsLocked.Get() {
		return false
	}
	if !d.Seeking() {
		d.store.DoubleTapSeeking.Set(false)
		return false
	}

	zone := d.ZoneAt(x)
	if zone == ZoneCenter {
		d.center()
		return true
	}
	d.seek(zone)
	return true
}

// DoubleTap handles a recognised double tap at x.
func (d *DoubleTap) DoubleTap(x float64) {
	if d.store.ControlsLocked.Get() || d.store.DoubleTapSeeking.Get() {
		return
	}

	if d.zoom.Zoomed() {
		log.Debugf("double tap resets zoom")
		d.zoom.Reset()
		return
	}

	zone := d.ZoneAt(x)
	if zone == ZoneCenter {
		d.center()
		return
	}
	d.seek(zone)
	d.store.DoubleTapSeeking.Set(true)
}

// Stop cancels pending timers and clears the counter.
func (d *DoubleTap) Stop() {
	d.stopTimers()
	d.store.DoubleTapAmount.Set(0)
	d.store.DoubleTapSeeking.Set(false)
}

func (d *DoubleTap) seek(zone Zone) {
	step := d.opts.DoubleTapSeek
	forwards := zone == ZoneForward

	if forwards != d.store.SeekingForwards.Get() {
		d.store.DoubleTapAmount.Set(0)
	}
	if !forwards {
		step = -step
	}

	d.store.SeekingForwards.Set(forwards)
	d.store.DoubleTapAmount.Update(func(amount int) int { return amount + step })
	d.store.SeekBarShown.Set(true)

	log.WithFields(logrus.Fields{"zone": zone, "amount": d.store.DoubleTapAmount.Get()}).Debug("double tap seek")
	d.playback.SeekBy(float64(step), d.opts.PreciseSeeking)

	d.restartDecay()
}

func (d *DoubleTap) center() {
	switch d.opts.CenterDoubleTap {
	case CenterPause:
		d.playback.PauseUnpause()
	case CenterNone, "":
	default:
		log.Warnf("unknown center double tap action %q", d.opts.CenterDoubleTap)
	}
}

func (d *DoubleTap) restartDecay() {
	d.stopTimers()
	d.decay = d.sched.AfterFunc(DecayDelay, func() {
		d.decay = nil
		d.store.DoubleTapAmount.Set(0)
		d.store.DoubleTapSeeking.Set(false)
		d.hide = d.sched.AfterFunc(HideDelay, func() {
			d.hide = nil
			d.store.SeekBarShown.Set(false)
		})
	})
}

func (d *DoubleTap) stopTimers() {
	if d.decay != nil {
		d.decay.Stop()
		d.decay = nil
	}
	if d.hide != nil {
		d.hide.Stop()
		d.hide = nil
	}
}
