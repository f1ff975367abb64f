// Package core wires the property bridge, state store, transform engine,
// controllers and gesture interpreter into one unit driven by touch events.
package core

import (
	"github.com/spf13/viper"
	"github.com/touchctl/touchctl/control"
	"github.com/touchctl/touchctl/gesture"
	"github.com/touchctl/touchctl/key"
	"github.com/touchctl/touchctl/log"
	"github.com/touchctl/touchctl/loop"
	"github.com/touchctl/touchctl/property"
	"github.com/touchctl/touchctl/state"
	"github.com/touchctl/touchctl/transform"
)

// Options configure every component.
type Options struct {
	Transform transform.Options
	Control   control.Options
	Gesture   gesture.Options
	Defaults  state.Defaults
}

// LoadOptions reads all options from the configuration.
func LoadOptions() Options {
	return Options{
		Transform: transform.LoadOptions(),
		Control:   control.LoadOptions(),
		Gesture:   gesture.LoadOptions(),
		Defaults: state.Defaults{
			Volume:     viper.GetInt(key.AudioDefaultVolume),
			Brightness: viper.GetFloat64(key.DisplayDefaultBrightness),
			Viewport: state.Size{
				Width:  viper.GetFloat64(key.ViewportWidth),
				Height: viper.GetFloat64(key.ViewportHeight),
			},
		},
	}
}

// Core is the assembled gesture pipeline. All methods must run on the scheduler's loop.
type Core struct {
	Bridge    *property.Bridge
	Store     *state.Store
	Transform *transform.Engine
	Playback  *control.Playback
	Seek      *control.Seek
	Vertical  *control.Vertical
	DoubleTap *control.DoubleTap
	Speed     *control.Speed

	Interpreter *gesture.Interpreter

	sched  loop.Scheduler
	unbind func()
}

// New assembles a core over bus. A nil device drives volume and brightness through the engine.
func New(bus property.Bus, sched loop.Scheduler, device control.Device, opts Options) *Core {
	bridge := property.NewBridge(bus)
	store := state.NewStore(opts.Defaults)
	if device == nil {
		device = control.NewEngineDevice(bridge)
	}

	c := &Core{
		Bridge: bridge,
		Store:  store,
		sched:  sched,
	}

	c.unbind = store.Bind(bridge)
	store.Sync(bridge)

	c.Transform = transform.New(bridge, store, opts.Transform)
	c.Playback = control.NewPlayback(bridge, store)
	c.Seek = control.NewSeek(bridge, store, c.Playback, opts.Control)
	c.Vertical = control.NewVertical(bridge, store, device, opts.Control)
	c.DoubleTap = control.NewDoubleTap(store, c.Playback, c.Transform, sched, opts.Control)
	c.Speed = control.NewSpeed(bridge, store, opts.Control)

	c.Interpreter = gesture.NewInterpreter(store, sched, gesture.Handlers{
		Transform: c.Transform,
		Seek:      c.Seek,
		Vertical:  c.Vertical,
		DoubleTap: c.DoubleTap,
		Speed:     c.Speed,
		Tap:       c.Playback.PauseUnpause,
	}, opts.Gesture)

	log.Infof("core ready, viewport %.0fx%.0f", opts.Defaults.Viewport.Width, opts.Defaults.Viewport.Height)
	return c
}

// Handle feeds one touch event.
func (c *Core) Handle(ev gesture.Event) {
	c.Interpreter.Handle(ev)
}

// Notify delivers an engine property change. It is safe to call from any
// goroutine; delivery happens on the loop.
func (c *Core) Notify(name string, value any) {
	c.sched.Post(func() {
		c.Bridge.Notify(name, value)
	})
}

// Resize updates the viewport size. Pan is re-clamped to the new bounds.
func (c *Core) Resize(size state.Size) {
	c.Store.Viewport.Set(size)
}

// Lock sets whether controls are locked. Only single taps pass while locked.
func (c *Core) Lock(locked bool) {
	c.Store.ControlsLocked.Set(locked)
}

// Close cancels any gesture in flight and stops mirroring engine state.
func (c *Core) Close() {
	c.Interpreter.Handle(gesture.Event{Type: gesture.Cancel})
	c.DoubleTap.Stop()
	c.unbind()
}
