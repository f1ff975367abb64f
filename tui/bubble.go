package tui

import (
	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/progress"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/touchctl/touchctl/color"
)

type frameMsg Frame

// bubble is the state view model. It only ever reads frames; every action is
// posted back onto the core's loop.
type bubble struct {
	options *Options
	frames  <-chan Frame
	frame   Frame
	ready   bool

	keymap *keymap
	helpC  help.Model

	seekC       progress.Model
	volumeC     progress.Model
	boostC      progress.Model
	brightnessC progress.Model

	width, height int
}

func newBubble(options *Options, frames <-chan Frame) *bubble {
	bar := func(c string) progress.Model {
		return progress.New(progress.WithSolidFill(c), progress.WithoutPercentage())
	}

	return &bubble{
		options:     options,
		frames:      frames,
		keymap:      newKeymap(),
		helpC:       help.New(),
		seekC:       bar(string(color.Seek)),
		volumeC:     bar(string(color.Volume)),
		boostC:      bar(string(color.Boost)),
		brightnessC: bar(string(color.Brightness)),
	}
}

func (b *bubble) waitForFrame() tea.Cmd {
	return func() tea.Msg {
		f, ok := <-b.frames
		if !ok {
			return tea.Quit()
		}
		return frameMsg(f)
	}
}

func (b *bubble) Init() tea.Cmd {
	return b.waitForFrame()
}

func (b *bubble) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case frameMsg:
		b.frame = Frame(msg)
		b.ready = true
		return b, b.waitForFrame()
	case tea.WindowSizeMsg:
		b.resize(msg.Width, msg.Height)
	case tea.KeyMsg:
		return b, b.handleKey(msg)
	}
	return b, nil
}

func (b *bubble) handleKey(msg tea.KeyMsg) tea.Cmd {
	c := b.options.Core

	switch {
	case key.Matches(msg, b.keymap.quit, b.keymap.forceQuit):
		return tea.Quit
	case key.Matches(msg, b.keymap.playPause):
		b.options.Scheduler.Post(c.Playback.PauseUnpause)
	case key.Matches(msg, b.keymap.resetZoom):
		b.options.Scheduler.Post(c.Transform.Reset)
	case key.Matches(msg, b.keymap.lock):
		locked := !b.frame.Locked
		b.options.Scheduler.Post(func() { c.Lock(locked) })
	case key.Matches(msg, b.keymap.showHelp):
		b.helpC.ShowAll = !b.helpC.ShowAll
	}
	return nil
}

func (b *bubble) resize(width, height int) {
	b.width, b.height = width, height
	b.helpC.Width = width

	barWidth := max(10, width-barLabelWidth-barValueWidth-paddingX*2)
	b.seekC.Width = barWidth
	b.volumeC.Width = barWidth
	b.boostC.Width = barWidth
	b.brightnessC.Width = barWidth
}
