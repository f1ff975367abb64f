package state

import (
	"github.com/samber/mo"
	"github.com/touchctl/touchctl/constant"
	"github.com/touchctl/touchctl/property"
)

// Point is a screen-space offset in pixels.
type Point struct {
	X, Y float64
}

// Size is a surface size in pixels.
type Size struct {
	Width, Height float64
}

// SeekPreview is the transient "proposed delta" shown while seeking with a drag.
type SeekPreview struct {
	Start float64
	Delta float64
}

// Update names a transient player indicator.
type Update int

const (
	UpdateNone Update = iota
	UpdateMultipleSpeed
)

// Gesture is the kind of the active gesture session.
type Gesture string

const (
	GestureNone          Gesture = ""
	GesturePinch         Gesture = "pinch"
	GesturePan           Gesture = "pan"
	GestureSeek          Gesture = "horizontal-seek"
	GestureVolume        Gesture = "vertical-volume"
	GestureBrightness    Gesture = "vertical-brightness"
	GestureLongPress     Gesture = "long-press-speed"
	GestureDoubleTapSeek Gesture = "double-tap-seek"
)

// Defaults seed the values no engine property backs.
type Defaults struct {
	Volume     int
	Brightness float64
	Viewport   Size
}

// Store groups every observable value of the player surface.
type Store struct {
	// mirrored from the engine, absent until reported
	Paused       *Value[mo.Option[bool]]
	Position     *Value[mo.Option[float64]]
	Duration     *Value[mo.Option[float64]]
	Speed        *Value[mo.Option[float64]]
	EngineVolume *Value[mo.Option[int]]

	Volume     *Value[int]
	Brightness *Value[float64]

	Zoom     *Value[float64]
	Pan      *Value[Point]
	Viewport *Value[Size]

	SeekPreview           *Value[mo.Option[SeekPreview]]
	SeekBarShown          *Value[bool]
	VolumeSliderShown     *Value[bool]
	BrightnessSliderShown *Value[bool]

	DoubleTapAmount  *Value[int]
	SeekingForwards  *Value[bool]
	DoubleTapSeeking *Value[bool]

	Update          *Value[Update]
	Gesture         *Value[Gesture]
	TransformActive *Value[bool]
	ControlsLocked  *Value[bool]
}

// NewStore creates a store with nothing known about the engine yet.
func NewStore(d Defaults) *Store {
	return &Store{
		Paused:       NewValue(mo.None[bool]()),
		Position:     NewValue(mo.None[float64]()),
		Duration:     NewValue(mo.None[float64]()),
		Speed:        NewValue(mo.None[float64]()),
		EngineVolume: NewValue(mo.None[int]()),

		Volume:     NewValue(d.Volume),
		Brightness: NewValue(d.Brightness),

		Zoom:     NewValue(1.0),
		Pan:      NewValue(Point{}),
		Viewport: NewValue(d.Viewport),

		SeekPreview:           NewValue(mo.None[SeekPreview]()),
		SeekBarShown:          NewValue(false),
		VolumeSliderShown:     NewValue(false),
		BrightnessSliderShown: NewValue(false),

		DoubleTapAmount:  NewValue(0),
		SeekingForwards:  NewValue(false),
		DoubleTapSeeking: NewValue(false),

		Update:          NewValue(UpdateNone),
		Gesture:         NewValue(GestureNone),
		TransformActive: NewValue(false),
		ControlsLocked:  NewValue(false),
	}
}

// Bind mirrors engine property changes into the store. The returned func stops mirroring.
func (s *Store) Bind(b *property.Bridge) (unbind func()) {
	cancels := []func(){
		b.Flag(constant.PropPause).Observe(func(v mo.Option[bool]) { s.Paused.Set(v) }),
		b.Double(constant.PropTimePos).Observe(func(v mo.Option[float64]) { s.Position.Set(v) }),
		b.Double(constant.PropDuration).Observe(func(v mo.Option[float64]) { s.Duration.Set(v) }),
		b.Double(constant.PropSpeed).Observe(func(v mo.Option[float64]) { s.Speed.Set(v) }),
		b.Int(constant.PropVolume).Observe(func(v mo.Option[int]) { s.EngineVolume.Set(v) }),
	}
	return func() {
		for _, cancel := range cancels {
			cancel()
		}
	}
}

// Sync re-reads every mirrored property from the engine.
// Controllers call it at gesture start so deltas are computed against fresh state.
func (s *Store) Sync(b *property.Bridge) {
	s.Paused.Set(b.Flag(constant.PropPause).Get())
	s.Position.Set(b.Double(constant.PropTimePos).Get())
	s.Duration.Set(b.Double(constant.PropDuration).Get())
	s.Speed.Set(b.Double(constant.PropSpeed).Get())
	s.EngineVolume.Set(b.Int(constant.PropVolume).Get())
}

// Snapshot is the engine state controllers compute against, with absent values
// replaced by their defaults.
type Snapshot struct {
	Paused       bool
	Position     float64
	Duration     float64
	Speed        float64
	EngineVolume int
	Volume       int
	Brightness   float64
}

// Snapshot resolves the current values. Absent engine values fall back to: not
// paused, position 0, duration 0, speed 1, engine volume 100.
func (s *Store) Snapshot() Snapshot {
	return Snapshot{
		Paused:       s.Paused.Get().OrElse(false),
		Position:     s.Position.Get().OrElse(0),
		Duration:     s.Duration.Get().OrElse(0),
		Speed:        s.Speed.Get().OrElse(1),
		EngineVolume: s.EngineVolume.Get().OrElse(100),
		Volume:       s.Volume.Get(),
		Brightness:   s.Brightness.Get(),
	}
}
