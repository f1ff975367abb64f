package control

import (
	"github.com/samber/mo"
	"github.com/touchctl/touchctl/constant"
	"github.com/touchctl/touchctl/property"
	"github.com/touchctl/touchctl/state"
)

// Playback holds the transport commands shared by the controllers.
// Write failures are logged by the bridge and otherwise ignored.
type Playback struct {
	bridge *property.Bridge
	store  *state.Store
}

func NewPlayback(bridge *property.Bridge, store *state.Store) *Playback {
	return &Playback{bridge: bridge, store: store}
}

func (p *Playback) Pause() {
	p.setPaused(true)
}

func (p *Playback) Unpause() {
	p.setPaused(false)
}

// PauseUnpause toggles pause based on the last known state.
func (p *Playback) PauseUnpause() {
	paused := p.bridge.Flag(constant.PropPause).Get().OrElse(p.store.Paused.Get().OrElse(false))
	p.setPaused(!paused)
}

// SeekTo jumps to an absolute position in seconds.
func (p *Playback) SeekTo(position float64, precise bool) {
	_ = p.bridge.Command("seek", position, seekFlags("absolute", precise))
}

// SeekBy moves the position by delta seconds.
func (p *Playback) SeekBy(delta float64, precise bool) {
	_ = p.bridge.Command("seek", delta, seekFlags("relative", precise))
}

func (p *Playback) setPaused(paused bool) {
	if err := p.bridge.Flag(constant.PropPause).Set(paused); err != nil {
		return
	}
	p.store.Paused.Set(mo.Some(paused))
}

func seekFlags(mode string, precise bool) string {
	if precise {
		return mode + "+exact"
	}
	return mode
}
