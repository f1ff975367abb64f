// Package control maps gesture sessions onto playback engine commands: drag seeking,
// volume with its boost range, brightness, double-tap seeking and the long-press
// speed multiplier.
package control

import (
	"github.com/spf13/viper"
	"github.com/touchctl/touchctl/key"
)

// Center double-tap actions.
const (
	CenterPause = "pause"
	CenterNone  = "none"
)

// Options are the user preferences the controllers read.
type Options struct {
	Seek            bool
	SeekSensitivity float64
	PreciseSeeking  bool
	ShowSeekbar     bool

	Volume                bool
	Brightness            bool
	SwapVolumeBrightness  bool
	VolumeSensitivity     float64
	BoostSensitivity      float64
	BrightnessSensitivity float64
	MaxVolume             int
	BoostCap              int

	MultipleSpeed   float64
	DoubleTapSeek   int
	CenterDoubleTap string
}

// LoadOptions reads the controller preferences from the configuration.
func LoadOptions() Options {
	return Options{
		Seek:            viper.GetBool(key.GestureSeek),
		SeekSensitivity: viper.GetFloat64(key.GestureSeekSensitivity),
		PreciseSeeking:  viper.GetBool(key.GesturePreciseSeeking),
		ShowSeekbar:     viper.GetBool(key.GestureShowSeekbar),

		Volume:                viper.GetBool(key.GestureVolume),
		Brightness:            viper.GetBool(key.GestureBrightness),
		SwapVolumeBrightness:  viper.GetBool(key.GestureSwapVolumeBrightness),
		VolumeSensitivity:     viper.GetFloat64(key.GestureVolumeSensitivity),
		BoostSensitivity:      viper.GetFloat64(key.GestureBoostSensitivity),
		BrightnessSensitivity: viper.GetFloat64(key.GestureBrightnessSensitivity),
		MaxVolume:             viper.GetInt(key.AudioMaxVolume),
		BoostCap:              max(0, viper.GetInt(key.AudioVolumeBoostCap)),

		MultipleSpeed:   viper.GetFloat64(key.GestureMultipleSpeed),
		DoubleTapSeek:   viper.GetInt(key.GestureDoubleTapSeek),
		CenterDoubleTap: viper.GetString(key.GestureCenterDoubleTap),
	}
}
