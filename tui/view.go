package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/reflow/truncate"
	"github.com/samber/lo"
	"github.com/touchctl/touchctl/color"
	"github.com/touchctl/touchctl/constant"
	"github.com/touchctl/touchctl/icon"
	"github.com/touchctl/touchctl/style"
	"github.com/touchctl/touchctl/util"
)

const (
	barLabelWidth = 14
	barValueWidth = 18
	paddingX      = 2
)

var paddingStyle = lipgloss.NewStyle().Padding(1, paddingX)

func (b *bubble) View() string {
	if !b.ready {
		return paddingStyle.Render(style.Faint("waiting for the player..."))
	}

	f := b.frame
	lines := []string{
		b.viewTitle(),
		"",
		b.viewSeek(),
		b.viewVolume(),
		b.viewBrightness(),
		"",
		b.viewTransform(),
		b.viewGesture(),
		"",
		b.helpC.View(b.keymap),
	}

	if f.Locked {
		lines = append(lines, "", style.Fg(color.Yellow)(icon.Get(icon.Warn)+" controls locked, only taps pass"))
	}

	return paddingStyle.Render(b.fit(lines))
}

// fit truncates every line to the window width.
func (b *bubble) fit(lines []string) string {
	if b.width <= paddingX*2 {
		return strings.Join(lines, "\n")
	}

	limit := uint(b.width - paddingX*2)
	lines = strings.Split(strings.Join(lines, "\n"), "\n")
	for i, line := range lines {
		lines[i] = truncate.StringWithTail(line, limit, "…")
	}
	return strings.Join(lines, "\n")
}

func (b *bubble) viewTitle() string {
	f := b.frame
	status := lo.Ternary(f.Paused, icon.Get(icon.Paused)+" paused", icon.Get(icon.Playing)+" playing")
	speed := fmt.Sprintf("%.2gx", f.Speed)
	if f.MultipleSpeed {
		speed = style.Fg(color.Speed)(icon.Get(icon.Speed) + " " + speed)
	}
	return fmt.Sprintf("%s  %s  %s", style.Title(constant.App), status, speed)
}

func (b *bubble) viewSeek() string {
	f := b.frame

	position := f.Position
	if f.Seeking {
		position = f.SeekPreview.Start + f.SeekPreview.Delta
	}

	ratio := 0.0
	if f.Duration > 0 {
		ratio = position / f.Duration
	}

	label := fmt.Sprintf("%s / %s", util.FormatSeconds(position), util.FormatSeconds(f.Duration))
	row := b.row(icon.Get(icon.SeekForward), "seek", b.seekC.ViewAs(ratio), label)

	switch {
	case f.Seeking:
		row += style.Fg(color.Seek)(fmt.Sprintf("  [%+.0fs]", f.SeekPreview.Delta))
	case f.DoubleTapAmount > 0:
		row += style.Fg(color.Seek)(fmt.Sprintf("  %s %s", icon.Get(icon.SeekForward), util.Quantify(f.DoubleTapAmount, "second", "seconds")))
	case f.DoubleTapAmount < 0:
		row += style.Fg(color.Seek)(fmt.Sprintf("  %s %s", icon.Get(icon.SeekBackward), util.Quantify(-f.DoubleTapAmount, "second", "seconds")))
	}

	return b.highlight(row, f.SeekBarShown, color.Seek)
}

func (b *bubble) viewVolume() string {
	f := b.frame
	maxVolume := b.options.MaxVolume

	ratio := 0.0
	if maxVolume > 0 {
		ratio = float64(f.Volume) / float64(maxVolume)
	}
	row := b.row(icon.Get(icon.Volume), "volume", b.volumeC.ViewAs(ratio), fmt.Sprintf("%d/%d", f.Volume, maxVolume))

	if b.options.BoostCap > 0 {
		boost := f.EngineVolume - 100
		row += "\n" + b.row(icon.Get(icon.Boost), "boost", b.boostC.ViewAs(float64(boost)/float64(b.options.BoostCap)),
			fmt.Sprintf("+%d%%", boost))
	}

	return b.highlight(row, f.VolumeSliderShown, color.Volume)
}

func (b *bubble) viewBrightness() string {
	f := b.frame
	row := b.row(icon.Get(icon.Brightness), "brightness", b.brightnessC.ViewAs(f.Brightness), fmt.Sprintf("%.0f%%", f.Brightness*100))
	return b.highlight(row, f.BrightnessSliderShown, color.Brightness)
}

func (b *bubble) viewTransform() string {
	f := b.frame
	m := f.Matrix

	zoom := style.Fg(color.Zoom)(fmt.Sprintf("%s %.2fx", icon.Get(icon.Zoom), f.Zoom))
	pan := fmt.Sprintf("pan %+.0f, %+.0f", f.Pan.X, f.Pan.Y)
	matrix := style.Faint(fmt.Sprintf("[%.2f %.2f %.1f | %.2f %.2f %.1f]", m.ScaleX, m.SkewX, m.TransX, m.SkewY, m.ScaleY, m.TransY))

	return strings.Join([]string{zoom, pan, matrix}, "  ")
}

func (b *bubble) viewGesture() string {
	f := b.frame
	gesture := string(f.Gesture)
	if gesture == "" {
		gesture = "none"
	}

	out := fmt.Sprintf("gesture %s", style.Bold(gesture))
	if f.TransformActive {
		out += style.Fg(color.Zoom)("  transform active")
	}
	return out
}

func (b *bubble) row(glyph, label, bar, value string) string {
	return fmt.Sprintf("%s %-*s %s %s", glyph, barLabelWidth-2, label, bar, style.Faint(value))
}

func (b *bubble) highlight(row string, shown bool, accent lipgloss.Color) string {
	if !shown {
		return row
	}
	return style.Fg(accent)("▌") + row
}
