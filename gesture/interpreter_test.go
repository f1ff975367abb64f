package gesture

import (
	"fmt"
	"testing"
	"time"

	. "github.com/smartystreets/goconvey/convey"
	"github.com/touchctl/touchctl/loop"
	"github.com/touchctl/touchctl/state"
)

type recorder struct {
	calls []string

	zoomed       bool
	seekOff      bool
	verticalOff  bool
	claimPress   bool
	speedRefused bool
	axis         state.Gesture
}

func (r *recorder) record(format string, args ...any) {
	r.calls = append(r.calls, fmt.Sprintf(format, args...))
}

func (r *recorder) handlers() Handlers {
	return Handlers{
		Transform: fakeTransform{r},
		Seek:      fakeSeek{r},
		Vertical:  fakeVertical{r},
		DoubleTap: fakeDoubleTap{r},
		Speed:     fakeSpeed{r},
		Tap:       func() { r.record("tap") },
	}
}

type fakeTransform struct{ r *recorder }

func (f fakeTransform) ApplyZoom(scale, fx, fy float64) {
	f.r.record("zoom %.2f @(%.0f,%.0f)", scale, fx, fy)
	if scale > 1 {
		f.r.zoomed = true
	}
}
func (f fakeTransform) ApplyPan(dx, dy float64) { f.r.record("pan %.0f,%.0f", dx, dy) }
func (f fakeTransform) Zoomed() bool            { return f.r.zoomed }

type fakeSeek struct{ r *recorder }

func (f fakeSeek) Enabled() bool        { return !f.r.seekOff }
func (f fakeSeek) Start(x float64)      { f.r.record("seek start %.0f", x) }
func (f fakeSeek) Update(x, dx float64) { f.r.record("seek %.0f", x) }
func (f fakeSeek) End()                 { f.r.record("seek end") }
func (f fakeSeek) Cancel()              { f.r.record("seek cancel") }

type fakeVertical struct{ r *recorder }

func (f fakeVertical) Enabled() bool { return !f.r.verticalOff }
func (f fakeVertical) Start()        { f.r.record("vertical start") }
func (f fakeVertical) Update(x, y, dy float64) state.Gesture {
	f.r.record("vertical %.0f", y)
	return f.r.axis
}
func (f fakeVertical) End()    { f.r.record("vertical end") }
func (f fakeVertical) Cancel() { f.r.record("vertical cancel") }

type fakeDoubleTap struct{ r *recorder }

func (f fakeDoubleTap) Press(x float64) bool {
	if f.r.claimPress {
		f.r.record("continue %.0f", x)
	}
	return f.r.claimPress
}
func (f fakeDoubleTap) DoubleTap(x float64) { f.r.record("double tap %.0f", x) }

type fakeSpeed struct{ r *recorder }

func (f fakeSpeed) Start() bool {
	if f.r.speedRefused {
		return false
	}
	f.r.record("speed start")
	return true
}
func (f fakeSpeed) End()    { f.r.record("speed end") }
func (f fakeSpeed) Cancel() { f.r.record("speed cancel") }

type harness struct {
	*recorder
	in    *Interpreter
	store *state.Store
	clock *loop.Manual
}

func newHarness() *harness {
	r := &recorder{axis: state.GestureVolume}
	store := state.NewStore(state.Defaults{Volume: 100, Brightness: 0.5, Viewport: state.Size{Width: 1000, Height: 600}})
	clock := loop.NewManual(time.Unix(0, 0))
	in := NewInterpreter(store, clock, r.handlers(), Options{
		TouchSlop:     16,
		LongPress:     500 * time.Millisecond,
		DoubleTap:     300 * time.Millisecond,
		DoubleTapSlop: 100,
	})
	return &harness{recorder: r, in: in, store: store, clock: clock}
}

func (h *harness) down(id int, x, y float64) { h.in.Handle(Event{Type: Down, ID: id, X: x, Y: y}) }
func (h *harness) move(id int, x, y float64) { h.in.Handle(Event{Type: Move, ID: id, X: x, Y: y}) }
func (h *harness) up(id int)                 { h.in.Handle(Event{Type: Up, ID: id}) }

func (h *harness) wait(ms int) {
	h.clock.Advance(time.Duration(ms) * time.Millisecond)
}

func TestTaps(t *testing.T) {
	Convey("Given an interpreter", t, func() {
		h := newHarness()

		Convey("A single tap is reported after the double-tap timeout", func() {
			h.down(0, 100, 100)
			h.up(0)
			So(h.in.State(), ShouldEqual, DoubleTapPending)
			So(h.calls, ShouldBeEmpty)

			h.wait(300)
			So(h.calls, ShouldResemble, []string{"tap"})
			So(h.in.State(), ShouldEqual, Idle)
		})

		Convey("Two nearby taps are a double tap and no single tap", func() {
			h.down(0, 100, 100)
			h.up(0)
			h.wait(150)
			h.down(0, 120, 110)
			h.up(0)
			h.wait(1000)
			So(h.calls, ShouldResemble, []string{"double tap 120"})
		})

		Convey("Two distant taps are two single taps", func() {
			h.down(0, 100, 100)
			h.up(0)
			h.wait(150)
			h.down(0, 900, 100)
			h.up(0)
			So(h.calls, ShouldResemble, []string{"tap"})
			h.wait(300)
			So(h.calls, ShouldResemble, []string{"tap", "tap"})
		})

		Convey("Movement within the slop is still a tap", func() {
			h.down(0, 100, 100)
			h.move(0, 110, 105)
			h.up(0)
			h.wait(300)
			So(h.calls, ShouldResemble, []string{"tap"})
		})

		Convey("A claimed press swallows its sequence", func() {
			h.claimPress = true
			h.down(0, 900, 100)
			So(h.in.State(), ShouldEqual, Ignoring)
			h.move(0, 600, 100)
			h.up(0)
			h.wait(1000)
			So(h.calls, ShouldResemble, []string{"continue 900"})
		})
	})
}

func TestDrags(t *testing.T) {
	Convey("Given an interpreter", t, func() {
		h := newHarness()

		Convey("A horizontal drag seeks", func() {
			h.down(0, 100, 300)
			h.move(0, 130, 305)
			So(h.in.State(), ShouldEqual, Seeking)
			So(h.store.Gesture.Get(), ShouldEqual, state.GestureSeek)

			h.move(0, 200, 310)
			h.up(0)
			h.wait(1000)
			So(h.calls, ShouldResemble, []string{"seek start 130", "seek 130", "seek 200", "seek end"})
			So(h.store.Gesture.Get(), ShouldEqual, state.GestureNone)
		})

		Convey("A vertical drag adjusts the axis under the pointer", func() {
			h.down(0, 800, 300)
			h.move(0, 805, 250)
			So(h.in.State(), ShouldEqual, AdjustingVertical)
			So(h.store.Gesture.Get(), ShouldEqual, state.GestureVolume)

			session, ok := h.in.Session().Get()
			So(ok, ShouldBeTrue)
			So(session.Kind, ShouldEqual, state.GestureVolume)
			So(session.StartValue, ShouldEqual, 100.0)

			h.up(0)
			So(h.calls, ShouldResemble, []string{"vertical start", "vertical 250", "vertical end"})
		})

		Convey("A drag on a disabled axis is ignored until release", func() {
			h.seekOff = true
			h.down(0, 100, 300)
			h.move(0, 300, 300)
			So(h.in.State(), ShouldEqual, Ignoring)
			h.up(0)
			h.wait(1000)
			So(h.calls, ShouldBeEmpty)
		})

		Convey("A drag while zoomed pans instead of seeking", func() {
			h.zoomed = true
			h.down(0, 100, 300)
			h.move(0, 130, 300)
			h.move(0, 150, 290)
			So(h.store.TransformActive.Get(), ShouldBeTrue)
			h.up(0)
			h.wait(1000)
			So(h.calls, ShouldResemble, []string{"pan 30,0", "pan 20,-10"})
			So(h.store.TransformActive.Get(), ShouldBeFalse)
		})

		Convey("A drag flushes a pending tap first", func() {
			h.down(0, 100, 300)
			h.up(0)
			h.wait(100)
			h.down(0, 100, 300)
			h.move(0, 200, 300)
			So(h.calls[0], ShouldEqual, "tap")
			So(h.calls[1], ShouldEqual, "seek start 200")
		})
	})
}

func TestLongPress(t *testing.T) {
	Convey("Given an interpreter", t, func() {
		h := newHarness()

		Convey("Holding still starts the speed gesture until release", func() {
			h.down(0, 500, 300)
			h.wait(499)
			So(h.calls, ShouldBeEmpty)
			h.wait(1)
			So(h.in.State(), ShouldEqual, LongPressSpeed)
			So(h.store.Gesture.Get(), ShouldEqual, state.GestureLongPress)

			h.move(0, 700, 300)
			h.up(0)
			h.wait(1000)
			So(h.calls, ShouldResemble, []string{"speed start", "speed end"})
		})

		Convey("A refused long press still consumes the tap", func() {
			h.speedRefused = true
			h.down(0, 500, 300)
			h.wait(600)
			h.up(0)
			h.wait(1000)
			So(h.calls, ShouldBeEmpty)
		})

		Convey("Releasing early cancels the long press", func() {
			h.down(0, 500, 300)
			h.wait(200)
			h.up(0)
			h.wait(1000)
			So(h.calls, ShouldResemble, []string{"tap"})
		})
	})
}

func TestPinch(t *testing.T) {
	Convey("Given an interpreter", t, func() {
		h := newHarness()

		Convey("Spreading two pointers zooms about their centroid", func() {
			h.down(0, 400, 300)
			h.down(1, 600, 300)
			So(h.in.State(), ShouldEqual, Transforming)
			So(h.store.Gesture.Get(), ShouldEqual, state.GesturePinch)
			So(h.store.TransformActive.Get(), ShouldBeTrue)

			h.move(1, 800, 300)
			So(h.calls[0], ShouldEqual, "zoom 2.00 @(600,300)")

			Convey("No tap is reported for the sequence", func() {
				h.up(1)
				So(h.store.TransformActive.Get(), ShouldBeTrue)
				h.up(0)
				h.wait(1000)
				So(h.calls, ShouldNotContain, "tap")
				So(h.store.TransformActive.Get(), ShouldBeFalse)
				So(h.in.State(), ShouldEqual, Idle)
			})

			Convey("A remaining pointer pans once zoomed", func() {
				h.up(1)
				h.move(0, 420, 310)
				So(h.calls[len(h.calls)-1], ShouldEqual, "pan 20,10")
			})
		})

		Convey("A second pointer cancels a seek without ending it", func() {
			h.down(0, 100, 300)
			h.move(0, 200, 300)
			h.down(1, 400, 300)
			h.up(0)
			h.up(1)
			So(h.calls, ShouldContain, "seek cancel")
			So(h.calls, ShouldNotContain, "seek end")
		})

		Convey("A second pointer cancels the speed gesture", func() {
			h.down(0, 500, 300)
			h.wait(600)
			h.down(1, 700, 300)
			So(h.calls, ShouldResemble, []string{"speed start", "speed cancel"})
		})
	})
}

func TestLockedAndCancel(t *testing.T) {
	Convey("Given an interpreter with locked controls", t, func() {
		h := newHarness()
		h.store.ControlsLocked.Set(true)

		Convey("Taps are reported at once", func() {
			h.down(0, 500, 300)
			h.up(0)
			So(h.calls, ShouldResemble, []string{"tap"})
		})

		Convey("Drags, pinches and long presses are ignored", func() {
			h.down(0, 500, 300)
			h.move(0, 700, 300)
			h.up(0)
			h.down(0, 500, 300)
			h.down(1, 700, 300)
			h.move(1, 900, 300)
			h.up(0)
			h.up(1)
			h.down(0, 500, 300)
			h.wait(1000)
			h.up(0)
			So(h.calls, ShouldBeEmpty)
		})
	})

	Convey("Given an interpreter in a seek", t, func() {
		h := newHarness()
		h.down(0, 100, 300)
		h.move(0, 200, 300)

		Convey("A cancel event abandons everything", func() {
			h.in.Handle(Event{Type: Cancel})
			So(h.in.State(), ShouldEqual, Idle)
			So(h.calls[len(h.calls)-1], ShouldEqual, "seek cancel")
			So(h.store.Gesture.Get(), ShouldEqual, state.GestureNone)

			h.move(0, 300, 300)
			h.up(0)
			So(h.calls[len(h.calls)-1], ShouldEqual, "seek cancel")
		})
	})

	Convey("Given a pending tap", t, func() {
		h := newHarness()
		h.down(0, 100, 300)
		h.up(0)

		Convey("A cancel event drops it", func() {
			h.in.Handle(Event{Type: Cancel})
			h.wait(1000)
			So(h.calls, ShouldBeEmpty)
		})
	})
}
