package state

import (
	"testing"

	"github.com/samber/mo"
	. "github.com/smartystreets/goconvey/convey"
	"github.com/touchctl/touchctl/property"
)

func TestValue(t *testing.T) {
	Convey("Given an observable value", t, func() {
		v := NewValue(1)
		var seen []int
		cancel := v.Subscribe(func(x int) { seen = append(seen, x) })

		Convey("Subscribers see changes", func() {
			So(v.Set(2), ShouldBeTrue)
			So(v.Get(), ShouldEqual, 2)
			So(seen, ShouldResemble, []int{2})
		})

		Convey("Writing the same value notifies nobody", func() {
			So(v.Set(1), ShouldBeFalse)
			So(seen, ShouldBeEmpty)
		})

		Convey("Last value wins", func() {
			v.Set(3)
			v.Update(func(x int) int { return x * 2 })
			So(v.Get(), ShouldEqual, 6)
			So(seen, ShouldResemble, []int{3, 6})
		})

		Convey("Cancelled subscribers are not notified", func() {
			cancel()
			v.Set(5)
			So(seen, ShouldBeEmpty)
		})

		Convey("A subscriber may unsubscribe itself while notified", func() {
			var once func()
			calls := 0
			once = v.Subscribe(func(int) {
				calls++
				once()
			})
			v.Set(7)
			v.Set(8)
			So(calls, ShouldEqual, 1)
			So(seen, ShouldResemble, []int{7, 8})
		})
	})
}

func TestStore(t *testing.T) {
	Convey("Given a store bound to an engine", t, func() {
		engine := property.NewMemory()
		bridge := property.NewBridge(engine)
		engine.OnChange(bridge.Notify)

		store := NewStore(Defaults{Volume: 100, Brightness: 0.5, Viewport: Size{Width: 1920, Height: 1080}})
		unbind := store.Bind(bridge)

		Convey("Nothing is known before the engine reports", func() {
			So(store.Position.Get().IsAbsent(), ShouldBeTrue)
			snap := store.Snapshot()
			So(snap.Paused, ShouldBeFalse)
			So(snap.Position, ShouldEqual, 0)
			So(snap.Duration, ShouldEqual, 0)
			So(snap.EngineVolume, ShouldEqual, 100)
			So(snap.Speed, ShouldEqual, 1)
		})

		Convey("Engine changes flow into the store", func() {
			engine.Put("time-pos", 12.0)
			engine.Put("pause", true)
			So(store.Position.Get(), ShouldResemble, mo.Some(12.0))
			So(store.Paused.Get(), ShouldResemble, mo.Some(true))
		})

		Convey("Sync picks up values set before binding", func() {
			unbind()
			engine.Put("duration", 100.0)
			So(store.Duration.Get().IsAbsent(), ShouldBeTrue)

			store.Sync(bridge)
			So(store.Duration.Get(), ShouldResemble, mo.Some(100.0))
			So(store.EngineVolume.Get(), ShouldResemble, mo.Some(100))
		})
	})
}
