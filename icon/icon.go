// Package icon renders the glyphs shown next to CLI messages and gesture overlays.
//
// Icons can be displayed as emoji, nerd-font glyphs or plain ASCII depending on
// the terminal; plain is always safe.
package icon

// Icon identifies a symbol in the registry.
type Icon int

const (
	Success Icon = iota
	Fail
	Warn
	SeekForward
	SeekBackward
	Volume
	Boost
	Brightness
	Speed
	Zoom
	Paused
	Playing
)

// Variant constants.
const (
	Plain = "plain"
	Emoji = "emoji"
	Nerd  = "nerd"
)

// variant is the active rendering style.
var variant = Plain

// AvailableVariants returns every supported variant name.
func AvailableVariants() []string {
	return []string{Plain, Emoji, Nerd}
}

// SetVariant switches the rendering style. Unknown names fall back to plain.
func SetVariant(v string) {
	switch v {
	case Emoji, Nerd:
		variant = v
	default:
		variant = Plain
	}
}

type iconDef struct {
	plain, emoji, nerd string
}

func (d iconDef) get() string {
	switch variant {
	case Emoji:
		return d.emoji
	case Nerd:
		return d.nerd
	default:
		return d.plain
	}
}

var icons = map[Icon]iconDef{
	Success:      {"✓", "✅", "\uf00c"},
	Fail:         {"✗", "❌", "\uf00d"},
	Warn:         {"!", "⚠️", "\uf071"},
	SeekForward:  {">>", "⏩", "\uf04e"},
	SeekBackward: {"<<", "⏪", "\uf04a"},
	Volume:       {"vol", "🔊", "\uf028"},
	Boost:        {"vol+", "📢", "\uf0a1"},
	Brightness:   {"bri", "🔆", "\uf185"},
	Speed:        {"x", "⏭️", "\uf050"},
	Zoom:         {"zoom", "🔍", "\uf002"},
	Paused:       {"||", "⏸️", "\uf04c"},
	Playing:      {"|>", "▶️", "\uf04b"},
}

// Get returns the rendered string for an icon in the active variant.
func Get(i Icon) string {
	return icons[i].get()
}
