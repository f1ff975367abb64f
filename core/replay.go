package core

import (
	"time"

	"github.com/samber/lo"
	"github.com/touchctl/touchctl/constant"
	"github.com/touchctl/touchctl/gesture"
	"github.com/touchctl/touchctl/loop"
	"github.com/touchctl/touchctl/property"
)

// ReplayOptions describe the simulated engine a recorded stream is played against.
type ReplayOptions struct {
	Duration float64
	Position float64
	Paused   bool
	// Settle is how long the virtual clock keeps running after the last event,
	// so pending taps and double-tap decay resolve.
	Settle time.Duration
}

// Report is the engine state after a replay.
type Report struct {
	Events     int      `json:"events" jsonschema:"description=Number of touch events replayed"`
	ElapsedMs  int64    `json:"elapsed_ms" jsonschema:"description=Virtual time at the end of the replay"`
	Paused     bool     `json:"paused"`
	Position   float64  `json:"position" jsonschema:"description=Playback position in seconds"`
	Speed      float64  `json:"speed"`
	Volume     int      `json:"volume" jsonschema:"description=Displayed volume"`
	Engine     int      `json:"engine_volume" jsonschema:"description=Engine volume in percent, above 100 when boosted"`
	Brightness float64  `json:"brightness"`
	Zoom       float64  `json:"zoom"`
	PanX       float64  `json:"pan_x" jsonschema:"description=Horizontal pan in viewport pixels"`
	PanY       float64  `json:"pan_y" jsonschema:"description=Vertical pan in viewport pixels"`
	Calls      []string `json:"calls" jsonschema:"description=Property writes and commands sent to the engine, in order"`
}

// Replay feeds events to a fresh core over an in-memory engine on a virtual
// clock. Event times are milliseconds from the start of the stream; events
// out of order run at the current virtual time.
func Replay(events []gesture.Event, opts Options, ro ReplayOptions) Report {
	mem := property.NewMemory()
	mem.Put(constant.PropVolumeMax, float64(100+max(0, opts.Control.BoostCap)))
	mem.Put(constant.PropDuration, ro.Duration)
	mem.Put(constant.PropTimePos, ro.Position)
	mem.Put(constant.PropPause, ro.Paused)

	start := time.Unix(0, 0)
	clock := loop.NewManual(start)

	c := New(mem, clock, nil, opts)
	defer c.Close()
	mem.OnChange(c.Notify)
	mem.ClearCalls()

	for _, ev := range events {
		clock.AdvanceTo(start.Add(time.Duration(ev.T) * time.Millisecond))
		c.Handle(ev)
	}
	clock.Advance(ro.Settle)

	snap := c.Store.Snapshot()
	pan := c.Store.Pan.Get()

	return Report{
		Events:     len(events),
		ElapsedMs:  clock.Now().Sub(start).Milliseconds(),
		Paused:     snap.Paused,
		Position:   snap.Position,
		Speed:      snap.Speed,
		Volume:     snap.Volume,
		Engine:     snap.EngineVolume,
		Brightness: snap.Brightness,
		Zoom:       c.Store.Zoom.Get(),
		PanX:       pan.X,
		PanY:       pan.Y,
		Calls: lo.Map(mem.Calls(), func(call property.Call, _ int) string {
			return call.String()
		}),
	}
}
