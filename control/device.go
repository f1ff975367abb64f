package control

import (
	"github.com/touchctl/touchctl/constant"
	"github.com/touchctl/touchctl/property"
)

// Device receives the displayed volume and screen brightness.
type Device interface {
	SetVolume(volume, max int) error
	SetBrightness(brightness float64) error
}

// EngineDevice drives the audio output volume and a brightness user-data
// property of the engine, for hosts without a system mixer or backlight.
type EngineDevice struct {
	bridge *property.Bridge
}

func NewEngineDevice(bridge *property.Bridge) *EngineDevice {
	return &EngineDevice{bridge: bridge}
}

// SetVolume scales volume from [0, max] onto the engine's [0, 100] output volume.
func (d *EngineDevice) SetVolume(volume, max int) error {
	if max <= 0 {
		return d.bridge.Double(constant.PropAOVolume).Set(0)
	}
	return d.bridge.Double(constant.PropAOVolume).Set(float64(volume) * 100 / float64(max))
}

func (d *EngineDevice) SetBrightness(brightness float64) error {
	return d.bridge.Double(constant.PropBrightness).Set(brightness)
}
