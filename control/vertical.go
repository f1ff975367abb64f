package control

import (
	"github.com/sirupsen/logrus"
	"github.com/touchctl/touchctl/constant"
	"github.com/touchctl/touchctl/log"
	"github.com/touchctl/touchctl/property"
	"github.com/touchctl/touchctl/state"
	"github.com/touchctl/touchctl/util"
)

// Vertical maps a vertical drag onto displayed volume, engine volume boost or
// brightness. With both axes enabled the side of the screen under the pointer
// picks the axis on every update.
//
// Displayed volume and boost are separate ranges. Whenever a drag crosses from
// one into the other the newly active range is re-anchored at the current pointer
// and value, so the output never jumps.
type Vertical struct {
	bridge *property.Bridge
	store  *state.Store
	device Device
	opts   Options

	active bool

	anchored      bool
	boostAnchored bool
	startY        float64
	boostStartY   float64

	startVolume     int
	startEngine     int
	startBrightness float64
}

func NewVertical(bridge *property.Bridge, store *state.Store, device Device, opts Options) *Vertical {
	return &Vertical{bridge: bridge, store: store, device: device, opts: opts}
}

// Enabled reports whether vertical drags should be claimed at all.
func (v *Vertical) Enabled() bool {
	return v.opts.Volume || v.opts.Brightness
}

// Active reports whether a drag is in progress.
func (v *Vertical) Active() bool {
	return v.active
}

// Start begins a drag and captures the values it is relative to.
func (v *Vertical) Start() {
	v.store.Sync(v.bridge)
	snap := v.store.Snapshot()

	v.active = true
	v.anchored = false
	v.boostAnchored = false
	v.startVolume = snap.Volume
	v.startEngine = snap.EngineVolume
	v.startBrightness = snap.Brightness

	log.WithFields(logrus.Fields{
		"volume":     v.startVolume,
		"engine":     v.startEngine,
		"brightness": v.startBrightness,
	}).Debug("vertical drag started")
}

// Update follows the pointer to (x, y). dy is the vertical movement since the
// previous update, negative when moving up. It returns the axis that was adjusted.
func (v *Vertical) Update(x, y, dy float64) state.Gesture {
	if !v.active {
		return state.GestureNone
	}

	axis := v.axisAt(x)
	switch axis {
	case state.GestureVolume:
		v.changeVolume(y, dy)
	case state.GestureBrightness:
		v.changeBrightness(y)
	}
	return axis
}

// End finishes the drag and hides the sliders.
func (v *Vertical) End() {
	if !v.active {
		return
	}
	log.Debugf("vertical drag ended")
	v.finish()
}

// Cancel abandons the drag. Values already applied are kept.
func (v *Vertical) Cancel() {
	if !v.active {
		return
	}
	log.Debugf("vertical drag cancelled")
	v.finish()
}

func (v *Vertical) finish() {
	v.active = false
	v.anchored = false
	v.boostAnchored = false
	v.store.VolumeSliderShown.Set(false)
	v.store.BrightnessSliderShown.Set(false)
}

func (v *Vertical) axisAt(x float64) state.Gesture {
	switch {
	case v.opts.Volume && v.opts.Brightness:
		left := x < v.store.Viewport.Get().Width/2
		if left != v.opts.SwapVolumeBrightness {
			return state.GestureBrightness
		}
		return state.GestureVolume
	case v.opts.Brightness:
		return state.GestureBrightness
	case v.opts.Volume:
		return state.GestureVolume
	default:
		return state.GestureNone
	}
}

// increasingBoost reports whether upward motion should raise the engine volume past 100.
func (v *Vertical) increasingBoost(dy float64) bool {
	snap := v.store.Snapshot()
	return v.opts.BoostCap > 0 && snap.Volume == v.opts.MaxVolume &&
		snap.EngineVolume-100 < v.opts.BoostCap && dy < 0
}

// decreasingBoost reports whether downward motion should lower a boosted engine volume.
func (v *Vertical) decreasingBoost(dy float64) bool {
	snap := v.store.Snapshot()
	boost := snap.EngineVolume - 100
	return v.opts.BoostCap > 0 && snap.Volume == v.opts.MaxVolume &&
		boost >= 1 && boost <= v.opts.BoostCap && dy > 0
}

func (v *Vertical) changeVolume(y, dy float64) {
	if v.increasingBoost(dy) || v.decreasingBoost(dy) {
		if !v.boostAnchored {
			v.anchored = false
			v.boostAnchored = true
			v.startVolume = v.store.Volume.Get()
			v.boostStartY = y
		}
		engine := v.startEngine + util.Truncate((v.boostStartY-y)*v.opts.BoostSensitivity)
		v.setEngineVolume(util.Clamp(engine, 100, 100+v.opts.BoostCap))
	} else {
		if !v.anchored {
			v.boostAnchored = false
			v.anchored = true
			v.startEngine = v.store.Snapshot().EngineVolume
			v.startY = y
		}
		v.setVolume(v.startVolume + util.Truncate((v.startY-y)*v.opts.VolumeSensitivity))
	}
	v.store.VolumeSliderShown.Set(true)
}

func (v *Vertical) changeBrightness(y float64) {
	if !v.anchored {
		v.anchored = true
		v.startY = y
	}
	v.setBrightness(v.startBrightness + (v.startY-y)*v.opts.BrightnessSensitivity)
	v.store.BrightnessSliderShown.Set(true)
}

func (v *Vertical) setVolume(volume int) {
	volume = util.Clamp(volume, 0, v.opts.MaxVolume)
	if err := v.device.SetVolume(volume, v.opts.MaxVolume); err != nil {
		log.Warnf("set volume: %v", err)
	}
	v.store.Volume.Set(volume)
}

func (v *Vertical) setEngineVolume(volume int) {
	_ = v.bridge.Int(constant.PropVolume).Set(volume)
}

func (v *Vertical) setBrightness(brightness float64) {
	brightness = util.Clamp(brightness, 0, 1)
	if err := v.device.SetBrightness(brightness); err != nil {
		log.Warnf("set brightness: %v", err)
	}
	v.store.Brightness.Set(brightness)
}
