package tui

import (
	"github.com/touchctl/touchctl/state"
	"github.com/touchctl/touchctl/transform"
)

// Frame is a copy of everything the view draws, taken on the loop goroutine so
// the terminal program never touches the store directly.
type Frame struct {
	state.Snapshot

	Zoom    float64
	Pan     state.Point
	Matrix  transform.Matrix
	Gesture state.Gesture

	SeekPreview           state.SeekPreview
	Seeking               bool
	SeekBarShown          bool
	VolumeSliderShown     bool
	BrightnessSliderShown bool

	DoubleTapAmount int
	MultipleSpeed   bool
	TransformActive bool
	Locked          bool
}

// Capture copies the current values out of store and engine.
func Capture(store *state.Store, engine *transform.Engine) Frame {
	preview, seeking := store.SeekPreview.Get().Get()
	return Frame{
		Snapshot: store.Snapshot(),

		Zoom:    store.Zoom.Get(),
		Pan:     store.Pan.Get(),
		Matrix:  engine.Matrix.Get(),
		Gesture: store.Gesture.Get(),

		SeekPreview:           preview,
		Seeking:               seeking,
		SeekBarShown:          store.SeekBarShown.Get(),
		VolumeSliderShown:     store.VolumeSliderShown.Get(),
		BrightnessSliderShown: store.BrightnessSliderShown.Get(),

		DoubleTapAmount: store.DoubleTapAmount.Get(),
		MultipleSpeed:   store.Update.Get() == state.UpdateMultipleSpeed,
		TransformActive: store.TransformActive.Get(),
		Locked:          store.ControlsLocked.Get(),
	}
}

// Watch calls fn with a fresh frame whenever any observable value changes.
// It must be called on the loop; fn runs there too.
func Watch(store *state.Store, engine *transform.Engine, fn func(Frame)) (cancel func()) {
	emit := func() { fn(Capture(store, engine)) }

	cancels := []func(){
		watch(store.Paused, emit),
		watch(store.Position, emit),
		watch(store.Duration, emit),
		watch(store.Speed, emit),
		watch(store.EngineVolume, emit),
		watch(store.Volume, emit),
		watch(store.Brightness, emit),
		watch(store.Zoom, emit),
		watch(store.Pan, emit),
		watch(store.Viewport, emit),
		watch(store.SeekPreview, emit),
		watch(store.SeekBarShown, emit),
		watch(store.VolumeSliderShown, emit),
		watch(store.BrightnessSliderShown, emit),
		watch(store.DoubleTapAmount, emit),
		watch(store.SeekingForwards, emit),
		watch(store.DoubleTapSeeking, emit),
		watch(store.Update, emit),
		watch(store.Gesture, emit),
		watch(store.TransformActive, emit),
		watch(store.ControlsLocked, emit),
		watch(engine.Matrix, emit),
	}

	emit()
	return func() {
		for _, c := range cancels {
			c()
		}
	}
}

func watch[T comparable](v *state.Value[T], fn func()) func() {
	return v.Subscribe(func(T) { fn() })
}
