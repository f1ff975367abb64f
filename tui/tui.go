// Package tui draws the live state of the gesture core in the terminal.
package tui

import (
	"context"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/touchctl/touchctl/core"
	"github.com/touchctl/touchctl/loop"
)

// Options encapsulates the runtime configuration for the state view.
type Options struct {
	Core      *core.Core
	Scheduler loop.Scheduler

	MaxVolume int
	BoostCap  int
}

// Run shows the state view until the user quits or ctx is done.
func Run(ctx context.Context, options *Options) error {
	frames := make(chan Frame, 1)

	var cancel func()
	options.Scheduler.Post(func() {
		cancel = Watch(options.Core.Store, options.Core.Transform, func(f Frame) {
			offer(frames, f)
		})
	})
	defer options.Scheduler.Post(func() {
		if cancel != nil {
			cancel()
		}
	})

	_, err := tea.NewProgram(newBubble(options, frames), tea.WithAltScreen(), tea.WithContext(ctx)).Run()
	return err
}

// offer replaces any frame the view has not picked up yet.
func offer(frames chan Frame, f Frame) {
	for {
		select {
		case frames <- f:
			return
		default:
		}
		select {
		case <-frames:
		default:
		}
	}
}
