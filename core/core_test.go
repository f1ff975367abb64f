package core

import (
	"testing"
	"time"

	"github.com/samber/lo"
	. "github.com/smartystreets/goconvey/convey"
	"github.com/touchctl/touchctl/control"
	"github.com/touchctl/touchctl/gesture"
	"github.com/touchctl/touchctl/loop"
	"github.com/touchctl/touchctl/property"
	"github.com/touchctl/touchctl/state"
	"github.com/touchctl/touchctl/transform"
)

func testOptions() Options {
	return Options{
		Transform: transform.Options{MinZoom: 1, MaxZoom: 2},
		Control: control.Options{
			Seek:                  true,
			SeekSensitivity:       0.15,
			ShowSeekbar:           true,
			Volume:                true,
			Brightness:            true,
			VolumeSensitivity:     0.03,
			BoostSensitivity:      0.02,
			BrightnessSensitivity: 0.001,
			MaxVolume:             150,
			BoostCap:              30,
			MultipleSpeed:         2,
			DoubleTapSeek:         10,
			CenterDoubleTap:       control.CenterPause,
		},
		Gesture: gesture.Options{
			TouchSlop:     16,
			LongPress:     500 * time.Millisecond,
			DoubleTap:     300 * time.Millisecond,
			DoubleTapSlop: 100,
		},
		Defaults: state.Defaults{
			Volume:     100,
			Brightness: 0.5,
			Viewport:   state.Size{Width: 1000, Height: 600},
		},
	}
}

type session struct {
	core   *Core
	memory *property.Memory
	clock  *loop.Manual
	t      int64
}

func newSession() *session {
	return newSessionWith(testOptions())
}

func newSessionWith(opts Options) *session {
	memory := property.NewMemory()
	memory.Put("duration", 100.0)
	memory.Put("time-pos", 50.0)
	clock := loop.NewManual(time.Unix(0, 0))
	c := New(memory, clock, nil, opts)
	memory.OnChange(c.Notify)
	memory.ClearCalls()
	return &session{core: c, memory: memory, clock: clock}
}

func (s *session) send(typ gesture.Type, id int, x, y float64) {
	s.core.Handle(gesture.Event{Type: typ, ID: id, X: x, Y: y, T: s.t})
}

func (s *session) wait(ms int64) {
	s.t += ms
	s.clock.Advance(time.Duration(ms) * time.Millisecond)
}

func (s *session) tap(x, y float64) {
	s.send(gesture.Down, 0, x, y)
	s.wait(50)
	s.send(gesture.Up, 0, x, y)
}

func TestCore(t *testing.T) {
	Convey("Given an assembled core over an in-memory engine", t, func() {
		s := newSession()
		store := s.core.Store

		Convey("Engine state is mirrored at startup", func() {
			snap := store.Snapshot()
			So(snap.Position, ShouldEqual, 50.0)
			So(snap.Duration, ShouldEqual, 100.0)
			So(snap.Paused, ShouldBeFalse)
		})

		Convey("A single tap toggles pause", func() {
			s.tap(500, 300)
			So(s.memory.Writes("pause"), ShouldBeEmpty)
			s.wait(300)
			So(s.memory.Writes("pause"), ShouldResemble, []any{true})
			So(store.Snapshot().Paused, ShouldBeTrue)
		})

		Convey("A pinch zooms the surface and suppresses taps", func() {
			s.send(gesture.Down, 0, 400, 300)
			s.send(gesture.Down, 1, 600, 300)
			s.send(gesture.Move, 1, 700, 300)
			So(store.TransformActive.Get(), ShouldBeTrue)
			So(s.core.Transform.ZoomLevel(), ShouldAlmostEqual, 1.5, 1e-9)

			s.send(gesture.Move, 1, 2000, 300)
			So(s.core.Transform.ZoomLevel(), ShouldEqual, 2.0)
			So(lo.LastOrEmpty(s.memory.Writes("video-zoom")), ShouldEqual, 1.0)

			s.send(gesture.Up, 1, 2000, 300)
			s.send(gesture.Up, 0, 400, 300)
			s.wait(1000)
			So(store.TransformActive.Get(), ShouldBeFalse)
			So(s.memory.Writes("pause"), ShouldBeEmpty)

			Convey("A double tap then resets the transform instead of seeking", func() {
				s.tap(900, 300)
				s.wait(100)
				s.tap(900, 300)
				So(s.core.Transform.ZoomLevel(), ShouldEqual, 1.0)
				So(s.core.Transform.Pan(), ShouldResemble, state.Point{})
				So(s.memory.Commands("seek"), ShouldBeEmpty)
			})

			Convey("A horizontal drag pans instead of seeking", func() {
				before := s.core.Transform.Pan().X
				s.send(gesture.Down, 0, 500, 300)
				s.send(gesture.Move, 0, 450, 300)
				s.send(gesture.Up, 0, 450, 300)
				So(s.memory.Commands("seek"), ShouldBeEmpty)
				So(s.core.Transform.Pan().X, ShouldAlmostEqual, before-50, 1e-9)
			})
		})

		Convey("A horizontal drag seeks with the engine paused", func() {
			s.send(gesture.Down, 0, 500, 300)
			s.send(gesture.Move, 0, 600, 300)
			So(store.Snapshot().Paused, ShouldBeTrue)
			So(store.SeekBarShown.Get(), ShouldBeTrue)

			s.send(gesture.Move, 0, 700, 300)
			So(store.Snapshot().Position, ShouldEqual, 65.0)

			s.send(gesture.Up, 0, 700, 300)
			So(store.Snapshot().Paused, ShouldBeFalse)
			So(store.SeekPreview.Get().IsAbsent(), ShouldBeTrue)
		})

		Convey("Double taps accumulate and decay", func() {
			s.tap(900, 300)
			s.wait(100)
			s.tap(900, 300)
			So(store.DoubleTapAmount.Get(), ShouldEqual, 10)
			So(store.Snapshot().Position, ShouldEqual, 60.0)

			s.wait(200)
			s.tap(900, 300)
			So(store.DoubleTapAmount.Get(), ShouldEqual, 20)
			So(store.Snapshot().Position, ShouldEqual, 70.0)

			s.wait(800)
			So(store.DoubleTapAmount.Get(), ShouldEqual, 0)
			s.wait(100)
			So(store.SeekBarShown.Get(), ShouldBeFalse)
			So(s.memory.Writes("pause"), ShouldBeEmpty)
		})

		Convey("A center tap during a double-tap seek pauses once", func() {
			s.tap(900, 300)
			s.wait(100)
			s.tap(900, 300)
			s.wait(100)
			s.tap(500, 300)
			So(s.memory.Writes("pause"), ShouldResemble, []any{true})
			So(store.DoubleTapAmount.Get(), ShouldEqual, 10)

			s.wait(400)
			So(s.memory.Writes("pause"), ShouldResemble, []any{true})
			So(store.Snapshot().Position, ShouldEqual, 60.0)
		})

		Convey("A long press doubles the speed and a cancel restores it", func() {
			s.send(gesture.Down, 0, 500, 300)
			s.wait(500)
			So(store.Snapshot().Speed, ShouldEqual, 2.0)
			So(store.Update.Get(), ShouldEqual, state.UpdateMultipleSpeed)

			s.core.Handle(gesture.Event{Type: gesture.Cancel})
			So(store.Snapshot().Speed, ShouldEqual, 1.0)
			So(store.Update.Get(), ShouldEqual, state.UpdateNone)
		})

		Convey("A vertical drag on the right raises the displayed volume", func() {
			s.send(gesture.Down, 0, 800, 400)
			s.send(gesture.Move, 0, 800, 380)
			s.send(gesture.Move, 0, 800, 80)
			s.send(gesture.Up, 0, 800, 80)
			So(store.Volume.Get(), ShouldEqual, 109)
			So(lo.LastOrEmpty(s.memory.Writes("ao-volume")), ShouldAlmostEqual, 109*100/150.0, 1e-9)
		})

		Convey("Locked controls only pass taps", func() {
			s.core.Lock(true)
			s.send(gesture.Down, 0, 500, 300)
			s.send(gesture.Move, 0, 700, 300)
			s.send(gesture.Up, 0, 700, 300)
			So(s.memory.Calls(), ShouldBeEmpty)

			s.tap(500, 300)
			So(s.memory.Writes("pause"), ShouldResemble, []any{true})
		})

		Convey("Resizing re-clamps pan", func() {
			s.core.Transform.ApplyZoom(2, 0, 0)
			s.core.Resize(state.Size{Width: 100, Height: 60})
			So(s.core.Transform.Pan(), ShouldResemble, state.Point{X: 50, Y: 30})
		})

		Convey("Close abandons a gesture in flight", func() {
			s.send(gesture.Down, 0, 500, 300)
			s.send(gesture.Move, 0, 600, 300)
			s.core.Close()
			So(store.Snapshot().Paused, ShouldBeFalse)
			So(store.Gesture.Get(), ShouldEqual, state.GestureNone)
		})
	})
}

func TestCoreShrinkableView(t *testing.T) {
	Convey("Given a core whose view may shrink below its natural size", t, func() {
		opts := testOptions()
		opts.Transform.MinZoom = 0.5
		s := newSessionWith(opts)
		store := s.core.Store

		Convey("The identity view keeps axis gestures", func() {
			So(s.core.Transform.ZoomLevel(), ShouldEqual, 1.0)
			So(s.core.Transform.Zoomed(), ShouldBeFalse)

			s.send(gesture.Down, 0, 500, 300)
			s.send(gesture.Move, 0, 600, 300)
			s.send(gesture.Move, 0, 700, 300)
			s.send(gesture.Up, 0, 700, 300)
			So(s.memory.Commands("seek"), ShouldNotBeEmpty)
			So(store.Snapshot().Position, ShouldEqual, 65.0)

			s.send(gesture.Down, 0, 800, 400)
			s.send(gesture.Move, 0, 800, 380)
			s.send(gesture.Move, 0, 800, 80)
			s.send(gesture.Up, 0, 800, 80)
			So(store.Volume.Get(), ShouldEqual, 109)
		})

		Convey("A double tap on the right seeks instead of resetting", func() {
			s.tap(900, 300)
			s.wait(100)
			s.tap(900, 300)
			So(store.DoubleTapAmount.Get(), ShouldEqual, 10)
			So(store.Snapshot().Position, ShouldEqual, 60.0)
			So(s.core.Transform.ZoomLevel(), ShouldEqual, 1.0)
		})

		Convey("A pinch that shrinks the view still leaves drags seeking", func() {
			s.send(gesture.Down, 0, 300, 300)
			s.send(gesture.Down, 1, 700, 300)
			s.send(gesture.Move, 1, 500, 300)
			s.send(gesture.Up, 1, 500, 300)
			s.send(gesture.Up, 0, 300, 300)
			So(s.core.Transform.ZoomLevel(), ShouldAlmostEqual, 0.5, 1e-9)
			So(s.core.Transform.Zoomed(), ShouldBeFalse)
			s.wait(1000)

			s.send(gesture.Down, 0, 500, 300)
			s.send(gesture.Move, 0, 600, 300)
			s.send(gesture.Move, 0, 700, 300)
			s.send(gesture.Up, 0, 700, 300)
			So(store.Snapshot().Position, ShouldEqual, 65.0)
		})
	})
}
