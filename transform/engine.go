// Package transform owns the zoom level and pan offset of the video surface.
//
// The engine keeps pan inside the rectangle the current zoom allows, so zoomed
// content never reveals empty space past its edges, and publishes the resulting
// affine matrix to the surface, the store and the playback engine.
package transform

import (
	"math"

	"github.com/sirupsen/logrus"
	"github.com/spf13/viper"
	"github.com/touchctl/touchctl/constant"
	"github.com/touchctl/touchctl/key"
	"github.com/touchctl/touchctl/log"
	"github.com/touchctl/touchctl/property"
	"github.com/touchctl/touchctl/state"
	"github.com/touchctl/touchctl/util"
)

// Options bound the zoom level.
type Options struct {
	MinZoom float64
	MaxZoom float64
}

// LoadOptions reads the zoom bounds from the configuration.
func LoadOptions() Options {
	return Options{
		MinZoom: viper.GetFloat64(key.ViewportMinZoom),
		MaxZoom: viper.GetFloat64(key.ViewportMaxZoom),
	}
}

// Engine is the single owner of the viewport transform.
type Engine struct {
	bridge *property.Bridge
	store  *state.Store
	opts   Options

	zoom float64
	pan  state.Point

	// Matrix is the published surface transform.
	Matrix *state.Value[Matrix]
}

// New creates an engine at identity and keeps pan valid when the viewport is resized.
func New(bridge *property.Bridge, store *state.Store, opts Options) *Engine {
	if opts.MaxZoom < opts.MinZoom {
		opts.MaxZoom = opts.MinZoom
	}

	e := &Engine{
		bridge: bridge,
		store:  store,
		opts:   opts,
		zoom:   util.Clamp(1, opts.MinZoom, opts.MaxZoom),
		Matrix: state.NewValue(Identity),
	}

	store.Viewport.Subscribe(func(state.Size) {
		e.clampPan()
		e.publish()
	})

	e.publish()
	return e
}

// ZoomLevel returns the current zoom.
func (e *Engine) ZoomLevel() float64 {
	return e.zoom
}

// Pan returns the current pan offset.
func (e *Engine) Pan() state.Point {
	return e.pan
}

// Zoomed reports whether the view is magnified past its natural size.
// A view shrunk below 1 is not zoomed: it has nothing to pan and leaves
// the axis and double-tap gestures enabled.
func (e *Engine) Zoomed() bool {
	return e.zoom > 1
}

// ApplyZoom scales the view by scaleFactor, keeping the content under (focusX, focusY) in place.
func (e *Engine) ApplyZoom(scaleFactor, focusX, focusY float64) {
	if scaleFactor <= 0 || math.IsNaN(scaleFactor) || math.IsInf(scaleFactor, 0) {
		return
	}

	newZoom := util.Clamp(e.zoom*scaleFactor, e.opts.MinZoom, e.opts.MaxZoom)
	if newZoom == e.zoom {
		return
	}

	// scaling happens about the viewport center, so the focus is anchored in that frame
	size := e.store.Viewport.Get()
	fx := focusX - size.Width/2
	fy := focusY - size.Height/2

	change := newZoom / e.zoom
	e.pan.X = (e.pan.X-fx)*change + fx
	e.pan.Y = (e.pan.Y-fy)*change + fy
	e.zoom = newZoom

	e.clampPan()
	e.publish()
}

// ApplyPan moves the view by (deltaX, deltaY). At the minimum zoom it does nothing,
// and below zoom 1 the bounds keep the pan at zero.
func (e *Engine) ApplyPan(deltaX, deltaY float64) {
	if e.zoom <= e.opts.MinZoom {
		return
	}

	e.pan.X += deltaX
	e.pan.Y += deltaY

	e.clampPan()
	e.publish()
}

// Reset returns to zoom 1 and no pan.
func (e *Engine) Reset() {
	e.zoom = util.Clamp(1, e.opts.MinZoom, e.opts.MaxZoom)
	e.pan = state.Point{}

	log.Debugf("transform reset")
	e.publish()
}

// ContentAt maps a screen point back to the unscaled content coordinate under it.
func (e *Engine) ContentAt(screen state.Point) state.Point {
	inv, ok := e.Matrix.Get().Invert()
	if !ok {
		return screen
	}
	return inv.Apply(screen)
}

// maxPan is the largest offset that keeps the content covering the viewport.
func (e *Engine) maxPan() state.Point {
	size := e.store.Viewport.Get()
	return state.Point{
		X: math.Max(0, size.Width*(e.zoom-1)/2),
		Y: math.Max(0, size.Height*(e.zoom-1)/2),
	}
}

func (e *Engine) clampPan() {
	limit := e.maxPan()
	e.pan.X = util.Clamp(e.pan.X, -limit.X, limit.X)
	e.pan.Y = util.Clamp(e.pan.Y, -limit.Y, limit.Y)
}

func (e *Engine) publish() {
	size := e.store.Viewport.Get()
	e.Matrix.Set(ScaleAbout(e.zoom, size.Width/2, size.Height/2).Translate(e.pan.X, e.pan.Y))

	e.store.Zoom.Set(e.zoom)
	e.store.Pan.Set(e.pan)

	log.WithFields(logrus.Fields{"zoom": e.zoom, "pan_x": e.pan.X, "pan_y": e.pan.Y}).Debug("transform published")

	_ = e.bridge.Double(constant.PropVideoZoom).Set(e.zoom - 1)
	_ = e.bridge.Double(constant.PropVideoPanX).Set(e.pan.X / constant.PanScale)
	_ = e.bridge.Double(constant.PropVideoPanY).Set(e.pan.Y / constant.PanScale)
}
