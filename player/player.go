// Package player runs mpv and exposes it as a property bus.
// Commands travel over mpv's JSON-IPC socket; property changes arrive on one
// persistent connection that stays open for the life of the process.
package player

import (
	"github.com/spf13/viper"
	"github.com/touchctl/touchctl/key"
	"github.com/touchctl/touchctl/property"
)

// Engine is a playback engine the gesture core can drive.
type Engine interface {
	property.Bus
	property.Observer

	// Play starts the engine on target, a local file or an http(s) URL.
	Play(target string) error

	// OnChange registers the receiver of observed property changes.
	// It is called from the event reader goroutine.
	OnChange(fn func(name string, value any))

	// IsRunning reports whether the engine answers commands.
	IsRunning() bool

	// Wait returns a channel that is closed when the engine exits.
	Wait() <-chan struct{}

	// Close quits the engine and releases its socket.
	Close() error
}

// Options configure the mpv process.
type Options struct {
	Binary string
	// VolumeMax is passed as --volume-max so the engine itself bounds boosted volume.
	VolumeMax int
	Title     string
	// Args are appended verbatim before the media target.
	Args []string
}

// LoadOptions reads the engine options from the configuration.
func LoadOptions() Options {
	return Options{
		Binary:    viper.GetString(key.PlayerBinary),
		VolumeMax: 100 + max(0, viper.GetInt(key.AudioVolumeBoostCap)),
	}
}
