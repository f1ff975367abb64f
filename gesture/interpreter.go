// Package gesture turns raw pointer events into gesture sessions.
//
// The interpreter is an explicit state machine. A second pointer always starts a
// pinch, a drag while zoomed pans, and any other drag past the touch slop is
// claimed by its dominant axis. Presses that never move are taps, double taps or
// long presses. Once a pinch or pan is recognised no tap, double tap or axis drag
// is reported until every pointer has lifted.
package gesture

import (
	"math"
	"slices"

	"github.com/samber/lo"
	"github.com/samber/mo"
	"github.com/sirupsen/logrus"
	"github.com/touchctl/touchctl/log"
	"github.com/touchctl/touchctl/loop"
	"github.com/touchctl/touchctl/state"
)

// State is the recognition state.
type State int

const (
	Idle State = iota
	// Pressed is a single pointer down that has not crossed the touch slop.
	Pressed
	Transforming
	Seeking
	AdjustingVertical
	LongPressSpeed
	// DoubleTapPending holds a tap while waiting for a second one.
	DoubleTapPending
	// Ignoring swallows the rest of a touch sequence nothing claimed.
	Ignoring
)

func (s State) String() string {
	switch s {
	case Idle:
		return "idle"
	case Pressed:
		return "pressed"
	case Transforming:
		return "transforming"
	case Seeking:
		return "seeking"
	case AdjustingVertical:
		return "adjusting-vertical"
	case LongPressSpeed:
		return "long-press-speed"
	case DoubleTapPending:
		return "double-tap-pending"
	case Ignoring:
		return "ignoring"
	default:
		return "unknown"
	}
}

// Session is the active gesture and the reference it computes against.
type Session struct {
	Kind       state.Gesture
	Start      state.Point
	StartValue float64
	Dirty      bool
}

// Interpreter recognises gestures from pointer events. It is not safe for
// concurrent use; all calls and timer callbacks run on one loop.
type Interpreter struct {
	store *state.Store
	sched loop.Scheduler
	h     Handlers
	opts  Options

	state    State
	pointers map[int]state.Point
	down     state.Point
	session  mo.Option[Session]

	longPress loop.Timer
	tapTimer  loop.Timer
	// first tap of a possible double tap
	pendingTap mo.Option[state.Point]

	// pinch reference, reset whenever the pointer set changes
	centroid state.Point
	span     float64
}

func NewInterpreter(store *state.Store, sched loop.Scheduler, h Handlers, opts Options) *Interpreter {
	return &Interpreter{
		store:    store,
		sched:    sched,
		h:        h,
		opts:     opts,
		pointers: make(map[int]state.Point),
	}
}

// State returns the recognition state.
func (in *Interpreter) State() State {
	return in.state
}

// Session returns the active session, if any.
func (in *Interpreter) Session() mo.Option[Session] {
	return in.session
}

// Handle feeds one pointer event.
func (in *Interpreter) Handle(ev Event) {
	p := state.Point{X: ev.X, Y: ev.Y}

	switch ev.Type {
	case Down:
		in.pointerDown(ev.ID, p)
	case Move:
		in.pointerMove(ev.ID, p)
	case Up:
		in.pointerUp(ev.ID)
	case Cancel:
		in.cancelAll()
	}
}

func (in *Interpreter) pointerDown(id int, p state.Point) {
	if _, ok := in.pointers[id]; ok {
		return
	}
	in.pointers[id] = p

	if len(in.pointers) > 1 {
		in.extraPointer()
		return
	}

	in.stopTimer(&in.tapTimer)

	if in.h.DoubleTap.Press(p.X) {
		in.pendingTap = mo.None[state.Point]()
		in.transition(Ignoring)
		return
	}

	in.down = p
	in.transition(Pressed)
	in.longPress = in.sched.AfterFunc(in.opts.LongPress, in.longPressed)
}

// extraPointer starts or extends a pinch.
func (in *Interpreter) extraPointer() {
	if in.state == Transforming {
		in.resetReference()
		return
	}

	if in.store.ControlsLocked.Get() {
		if in.state != Ignoring {
			in.abandon()
			in.transition(Ignoring)
		}
		return
	}

	in.flushTap()
	in.supersede()
	in.startTransform(state.GesturePinch)
}

func (in *Interpreter) pointerMove(id int, p state.Point) {
	prev, ok := in.pointers[id]
	if !ok {
		return
	}
	in.pointers[id] = p
	dx, dy := p.X-prev.X, p.Y-prev.Y

	switch in.state {
	case Pressed:
		if math.Hypot(p.X-in.down.X, p.Y-in.down.Y) <= in.opts.TouchSlop {
			return
		}
		in.dragStarted(p, dx, dy)
	case Transforming:
		in.transform()
	case Seeking:
		in.h.Seek.Update(p.X, dx)
		in.markDirty()
	case AdjustingVertical:
		in.adjust(p, dy)
	}
}

// dragStarted claims a press that crossed the touch slop.
func (in *Interpreter) dragStarted(p state.Point, dx, dy float64) {
	in.stopTimer(&in.longPress)
	in.flushTap()

	locked := in.store.ControlsLocked.Get()
	switch {
	case locked:
		in.transition(Ignoring)
	case in.h.Transform.Zoomed():
		in.startTransform(state.GesturePan)
		in.h.Transform.ApplyPan(dx, dy)
		in.markDirty()
	case math.Abs(p.X-in.down.X) > math.Abs(p.Y-in.down.Y):
		if !in.h.Seek.Enabled() {
			in.transition(Ignoring)
			return
		}
		in.h.Seek.Start(p.X)
		in.begin(state.GestureSeek, in.store.Snapshot().Position)
		in.transition(Seeking)
		in.h.Seek.Update(p.X, dx)
		in.markDirty()
	default:
		if !in.h.Vertical.Enabled() {
			in.transition(Ignoring)
			return
		}
		in.h.Vertical.Start()
		in.begin(state.GestureNone, 0)
		in.transition(AdjustingVertical)
		in.adjust(p, dy)
	}
}

func (in *Interpreter) adjust(p state.Point, dy float64) {
	kind := in.h.Vertical.Update(p.X, p.Y, dy)
	if kind == state.GestureNone {
		return
	}

	s, _ := in.session.Get()
	if s.Kind != kind {
		s.Kind = kind
		if kind == state.GestureVolume {
			s.StartValue = float64(in.store.Volume.Get())
		} else {
			s.StartValue = in.store.Brightness.Get()
		}
	}
	s.Dirty = true
	in.session = mo.Some(s)
	in.store.Gesture.Set(kind)
}

func (in *Interpreter) pointerUp(id int) {
	if _, ok := in.pointers[id]; !ok {
		return
	}
	delete(in.pointers, id)

	if len(in.pointers) > 0 {
		if in.state == Transforming {
			in.resetReference()
		}
		return
	}

	switch in.state {
	case Pressed:
		in.stopTimer(&in.longPress)
		in.tapped()
		return
	case Seeking:
		in.h.Seek.End()
	case AdjustingVertical:
		in.h.Vertical.End()
	case LongPressSpeed:
		in.h.Speed.End()
	}
	in.finish()
}

// tapped handles a press released without a drag.
func (in *Interpreter) tapped() {
	if in.store.ControlsLocked.Get() {
		in.finish()
		in.tap()
		return
	}

	if first, ok := in.pendingTap.Get(); ok {
		in.pendingTap = mo.None[state.Point]()
		if math.Hypot(in.down.X-first.X, in.down.Y-first.Y) <= in.opts.DoubleTapSlop {
			in.finish()
			log.WithFields(logrus.Fields{"x": in.down.X, "y": in.down.Y}).Debug("double tap")
			in.h.DoubleTap.DoubleTap(in.down.X)
			return
		}
		in.tap()
	}

	in.pendingTap = mo.Some(in.down)
	in.transition(DoubleTapPending)
	in.tapTimer = in.sched.AfterFunc(in.opts.DoubleTap, func() {
		in.tapTimer = nil
		in.flushTap()
		if in.state == DoubleTapPending {
			in.transition(Idle)
		}
	})
}

func (in *Interpreter) longPressed() {
	in.longPress = nil
	if in.state != Pressed {
		return
	}

	in.flushTap()
	if !in.store.ControlsLocked.Get() && in.h.Speed.Start() {
		in.begin(state.GestureLongPress, in.store.Snapshot().Speed)
		in.transition(LongPressSpeed)
		return
	}
	in.transition(Ignoring)
}

// transform applies the pointer movement since the last reference.
func (in *Interpreter) transform() {
	centroid, span := in.reference()

	if len(in.pointers) > 1 && in.span > 0 && span > 0 && span != in.span {
		in.h.Transform.ApplyZoom(span/in.span, centroid.X, centroid.Y)
		in.markDirty()
	}

	dx, dy := centroid.X-in.centroid.X, centroid.Y-in.centroid.Y
	if (dx != 0 || dy != 0) && in.h.Transform.Zoomed() {
		in.h.Transform.ApplyPan(dx, dy)
		in.markDirty()
	}

	in.centroid, in.span = centroid, span
}

// reference is the centroid of the pointers and their mean distance to it.
func (in *Interpreter) reference() (state.Point, float64) {
	ids := lo.Keys(in.pointers)
	if len(ids) == 0 {
		return state.Point{}, 0
	}
	slices.Sort(ids)
	points := lo.Map(ids, func(id int, _ int) state.Point { return in.pointers[id] })

	var c state.Point
	for _, p := range points {
		c.X += p.X
		c.Y += p.Y
	}
	c.X /= float64(len(points))
	c.Y /= float64(len(points))

	span := lo.SumBy(points, func(p state.Point) float64 {
		return math.Hypot(p.X-c.X, p.Y-c.Y)
	}) / float64(len(points))

	return c, span
}

func (in *Interpreter) resetReference() {
	in.centroid, in.span = in.reference()
}

func (in *Interpreter) startTransform(kind state.Gesture) {
	in.begin(kind, in.store.Zoom.Get())
	in.store.TransformActive.Set(true)
	in.resetReference()
	in.transition(Transforming)
}

// supersede cancels whatever the first pointer started, without an end event.
func (in *Interpreter) supersede() {
	in.stopTimer(&in.longPress)

	switch in.state {
	case Seeking:
		in.h.Seek.Cancel()
	case AdjustingVertical:
		in.h.Vertical.Cancel()
	case LongPressSpeed:
		in.h.Speed.Cancel()
	}

	if s, ok := in.session.Get(); ok {
		log.WithFields(logrus.Fields{"gesture": s.Kind}).Debug("gesture superseded")
	}
	in.session = mo.None[Session]()
}

// abandon drops the current session and pending timers.
func (in *Interpreter) abandon() {
	in.supersede()
	in.store.Gesture.Set(state.GestureNone)
}

func (in *Interpreter) cancelAll() {
	in.stopTimer(&in.tapTimer)
	in.pendingTap = mo.None[state.Point]()
	in.abandon()
	in.pointers = make(map[int]state.Point)
	in.store.TransformActive.Set(false)
	in.transition(Idle)
}

func (in *Interpreter) begin(kind state.Gesture, startValue float64) {
	in.session = mo.Some(Session{Kind: kind, Start: in.down, StartValue: startValue})
	in.store.Gesture.Set(kind)
	log.WithFields(logrus.Fields{"gesture": kind, "x": in.down.X, "y": in.down.Y}).Debug("gesture started")
}

func (in *Interpreter) markDirty() {
	if s, ok := in.session.Get(); ok && !s.Dirty {
		s.Dirty = true
		in.session = mo.Some(s)
	}
}

// finish ends the touch sequence.
func (in *Interpreter) finish() {
	in.session = mo.None[Session]()
	in.store.Gesture.Set(state.GestureNone)
	in.store.TransformActive.Set(false)
	in.transition(Idle)
}

// flushTap reports a held first tap as a single tap.
func (in *Interpreter) flushTap() {
	if _, ok := in.pendingTap.Get(); !ok {
		return
	}
	in.stopTimer(&in.tapTimer)
	in.pendingTap = mo.None[state.Point]()
	in.tap()
}

func (in *Interpreter) tap() {
	log.Debugf("tap")
	if in.h.Tap != nil {
		in.h.Tap()
	}
}

func (in *Interpreter) stopTimer(t *loop.Timer) {
	if *t != nil {
		(*t).Stop()
		*t = nil
	}
}

func (in *Interpreter) transition(to State) {
	if in.state == to {
		return
	}
	log.WithFields(logrus.Fields{"from": in.state, "to": to}).Debug("gesture state")
	in.state = to
}
