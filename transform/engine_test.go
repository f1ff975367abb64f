package transform

import (
	"math"
	"math/rand"
	"testing"

	"github.com/samber/lo"
	. "github.com/smartystreets/goconvey/convey"
	"github.com/touchctl/touchctl/property"
	"github.com/touchctl/touchctl/state"
)

const epsilon = 1e-6

func newEngine(opts Options) (*Engine, *state.Store, *property.Memory) {
	memory := property.NewMemory()
	bridge := property.NewBridge(memory)
	store := state.NewStore(state.Defaults{Viewport: state.Size{Width: 1000, Height: 600}})
	return New(bridge, store, opts), store, memory
}

func withinBounds(e *Engine, store *state.Store) bool {
	size := store.Viewport.Get()
	pan := e.Pan()
	return math.Abs(pan.X) <= size.Width*(e.ZoomLevel()-1)/2+epsilon &&
		math.Abs(pan.Y) <= size.Height*(e.ZoomLevel()-1)/2+epsilon
}

func TestEngineBounds(t *testing.T) {
	Convey("Given a transform engine bounded to [1, 2]", t, func() {
		e, store, _ := newEngine(Options{MinZoom: 1, MaxZoom: 2})
		rng := rand.New(rand.NewSource(7))

		Convey("Zoom never leaves its bounds and pan never leaves its rectangle", func() {
			for i := 0; i < 2000; i++ {
				switch rng.Intn(3) {
				case 0:
					e.ApplyZoom(rng.Float64()*3, rng.Float64()*1000, rng.Float64()*600)
				case 1:
					e.ApplyPan(rng.NormFloat64()*400, rng.NormFloat64()*400)
				case 2:
					if rng.Intn(20) == 0 {
						e.Reset()
					}
				}
				So(e.ZoomLevel(), ShouldBeBetweenOrEqual, 1.0, 2.0)
				So(withinBounds(e, store), ShouldBeTrue)
			}
		})

		Convey("Huge factors saturate", func() {
			e.ApplyZoom(1e9, 500, 300)
			So(e.ZoomLevel(), ShouldEqual, 2.0)
			e.ApplyZoom(1e-9, 500, 300)
			So(e.ZoomLevel(), ShouldEqual, 1.0)
			So(e.Pan(), ShouldResemble, state.Point{})
		})

		Convey("Invalid factors are ignored", func() {
			e.ApplyZoom(math.NaN(), 0, 0)
			e.ApplyZoom(-2, 0, 0)
			e.ApplyZoom(math.Inf(1), 0, 0)
			So(e.ZoomLevel(), ShouldEqual, 1.0)
		})

		Convey("Panning an unzoomed view is a no-op", func() {
			e.ApplyPan(50, 50)
			So(e.Pan(), ShouldResemble, state.Point{})
		})

		Convey("Pan is clamped per axis", func() {
			e.ApplyZoom(2, 500, 300)
			e.ApplyPan(10000, -10000)
			So(e.Pan(), ShouldResemble, state.Point{X: 500, Y: -300})
		})

		Convey("Shrinking the viewport pulls pan back inside", func() {
			e.ApplyZoom(2, 500, 300)
			e.ApplyPan(10000, 10000)
			store.Viewport.Set(state.Size{Width: 200, Height: 100})
			So(e.Pan(), ShouldResemble, state.Point{X: 100, Y: 50})
		})
	})
}

func TestEngineReset(t *testing.T) {
	Convey("Given a zoomed and panned view", t, func() {
		e, store, memory := newEngine(Options{MinZoom: 1, MaxZoom: 2})
		e.ApplyZoom(1.8, 100, 100)
		e.ApplyPan(-40, 25)

		Convey("Reset returns to identity and is idempotent", func() {
			for i := 0; i < 3; i++ {
				e.Reset()
				So(e.ZoomLevel(), ShouldEqual, 1.0)
				So(e.Pan(), ShouldResemble, state.Point{})
				So(e.Matrix.Get(), ShouldResemble, Identity)
				So(store.Zoom.Get(), ShouldEqual, 1.0)
			}
		})

		Convey("Reset mirrors identity into the engine", func() {
			e.Reset()
			So(lo.LastOrEmpty(memory.Writes("video-zoom")), ShouldEqual, 0.0)
			So(lo.LastOrEmpty(memory.Writes("video-pan-x")), ShouldEqual, 0.0)
		})
	})
}

func TestEngineZoomedBelowOne(t *testing.T) {
	Convey("Given an engine that may shrink the view to half size", t, func() {
		e, _, _ := newEngine(Options{MinZoom: 0.5, MaxZoom: 2})

		Convey("The identity view is not zoomed", func() {
			So(e.ZoomLevel(), ShouldEqual, 1.0)
			So(e.Zoomed(), ShouldBeFalse)
		})

		Convey("Only magnification counts as zoomed", func() {
			e.ApplyZoom(0.6, 500, 300)
			So(e.ZoomLevel(), ShouldEqual, 0.6)
			So(e.Zoomed(), ShouldBeFalse)

			e.ApplyPan(40, 40)
			So(e.Pan(), ShouldResemble, state.Point{})

			e.ApplyZoom(3, 500, 300)
			So(e.Zoomed(), ShouldBeTrue)

			e.Reset()
			So(e.Zoomed(), ShouldBeFalse)
		})
	})
}

func TestEngineAnchor(t *testing.T) {
	Convey("Given an engine", t, func() {
		e, _, memory := newEngine(Options{MinZoom: 1, MaxZoom: 4})

		Convey("A zoom-only gesture keeps the content under the focus fixed", func() {
			rng := rand.New(rand.NewSource(11))
			for i := 0; i < 200; i++ {
				e.Reset()
				focus := state.Point{X: rng.Float64() * 1000, Y: rng.Float64() * 600}
				before := e.ContentAt(focus)

				for step := 0; step < 5; step++ {
					e.ApplyZoom(1+rng.Float64()*0.4, focus.X, focus.Y)
					after := e.ContentAt(focus)
					So(after.X, ShouldAlmostEqual, before.X, epsilon)
					So(after.Y, ShouldAlmostEqual, before.Y, epsilon)
				}
			}
		})

		Convey("Zooming at the center leaves pan untouched", func() {
			e.ApplyZoom(1.5, 500, 300)
			So(e.Pan().X, ShouldAlmostEqual, 0.0, epsilon)
			So(e.Pan().Y, ShouldAlmostEqual, 0.0, epsilon)
		})

		Convey("Every mutation is mirrored as normalized engine values", func() {
			e.ApplyZoom(2, 1000, 600)
			So(lo.LastOrEmpty(memory.Writes("video-zoom")), ShouldEqual, 1.0)
			So(lo.LastOrEmpty(memory.Writes("video-pan-x")), ShouldAlmostEqual, e.Pan().X/1000, epsilon)
			So(lo.LastOrEmpty(memory.Writes("video-pan-y")), ShouldAlmostEqual, e.Pan().Y/1000, epsilon)
		})

		Convey("The matrix scales about the center and then translates", func() {
			e.ApplyZoom(2, 500, 300)
			e.ApplyPan(30, -20)
			m := e.Matrix.Get()
			center := m.Apply(state.Point{X: 500, Y: 300})
			So(center.X, ShouldAlmostEqual, 530.0, epsilon)
			So(center.Y, ShouldAlmostEqual, 280.0, epsilon)
		})
	})
}
