// Package config provides centralized management for application settings, defaults, and the Viper-based configuration engine.
package config

import (
	"encoding/json"
	"fmt"
	"reflect"
	"strconv"
	"strings"
	"text/template"

	"github.com/samber/lo"
	"github.com/spf13/viper"
	"github.com/touchctl/touchctl/color"
	"github.com/touchctl/touchctl/constant"
	"github.com/touchctl/touchctl/key"
	"github.com/touchctl/touchctl/style"
)

// Field represents a configuration field definition.
type Field struct {
	Key         string
	Value       any
	Description string
}

// Pretty returns a colored string representation of the field for display.
func (f *Field) Pretty() string {
	var b strings.Builder
	lo.Must0(prettyTemplate.Execute(&b, f))
	return b.String()
}

// Env returns the environment variable name for this field.
func (f *Field) Env() string {
	env := strings.ToUpper(EnvKeyReplacer.Replace(f.Key))
	prefix := strings.ToUpper(constant.App + "_")
	if strings.HasPrefix(env, prefix) {
		return env
	}
	return prefix + env
}

// MarshalJSON customizes JSON output to include current and default values.
func (f *Field) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		Key         string `json:"key"`
		Value       any    `json:"value"`
		Default     any    `json:"default"`
		Description string `json:"description"`
		Type        string `json:"type"`
	}{
		Key:         f.Key,
		Value:       viper.Get(f.Key),
		Default:     f.Value,
		Description: f.Description,
		Type:        f.typeName(),
	})
}

// typeName returns the string representation of the field's underlying value type.
func (f *Field) typeName() string {
	switch f.Value.(type) {
	case string:
		return "string"
	case int:
		return "int"
	case float64:
		return "float"
	case bool:
		return "bool"
	case []string:
		return "[]string"
	case []int:
		return "[]int"
	default:
		return "unknown"
	}
}

// Default holds the map of all configuration fields.
var Default = make(map[string]Field)

// EnvExposed holds keys that are bound to environment variables.
var EnvExposed []string

func init() {
	register := func(k string, v any, desc string) {
		if _, exists := Default[k]; exists {
			panic("Duplicate config key: " + k)
		}
		f := Field{Key: k, Value: v, Description: desc}
		Default[k] = f
		EnvExposed = append(EnvExposed, k)
	}

	register(key.GestureSeek, true, "Seek by dragging horizontally")
	register(key.GestureSeekSensitivity, 0.15, "Seconds of media per pixel of horizontal drag")
	register(key.GesturePreciseSeeking, false, "Seek to the exact frame instead of the nearest keyframe")
	register(key.GestureShowSeekbar, true, "Show the seek bar while seeking with a gesture")
	register(key.GestureVolume, true, "Change volume by dragging vertically")
	register(key.GestureBrightness, true, "Change brightness by dragging vertically")
	register(key.GestureSwapVolumeBrightness, false, "Swap the screen halves used for volume and brightness.\nBy default brightness is on the left")
	register(key.GestureVolumeSensitivity, 0.03, "Volume steps per pixel of vertical drag")
	register(key.GestureBoostSensitivity, 0.02, "Boost percent per pixel of vertical drag above the maximum volume")
	register(key.GestureBrightnessSensitivity, 0.001, "Brightness per pixel of vertical drag (brightness ranges 0 to 1)")
	register(key.GestureMultipleSpeed, 2.0, "Playback speed while holding a long press.\n0 disables the gesture")
	register(key.GestureDoubleTapSeek, 10, "Seconds to seek per double tap on the screen edges")
	register(key.GestureCenterDoubleTap, "pause", "Action for a double tap in the screen center.\nAvailable options are: pause, none")
	register(key.GestureTouchSlop, 16.0, "Distance in pixels a pointer must travel before a press becomes a drag")
	register(key.GestureLongPressMs, 500, "Milliseconds a press must be held to count as a long press")
	register(key.GestureDoubleTapMs, 300, "Maximum milliseconds between the taps of a double tap")
	register(key.GestureDoubleTapSlop, 100.0, "Maximum distance in pixels between the taps of a double tap")
	register(key.AudioMaxVolume, 150, "Maximum displayed volume")
	register(key.AudioVolumeBoostCap, 30, "Percent the engine volume may be boosted above 100.\n0 disables boosting")
	register(key.AudioDefaultVolume, 100, "Displayed volume assumed when the device does not report one")
	register(key.DisplayDefaultBrightness, 0.5, "Brightness assumed when the device does not report one")
	register(key.ViewportMinZoom, 1.0, "Minimum zoom level of the video surface")
	register(key.ViewportMaxZoom, 2.0, "Maximum zoom level of the video surface")
	register(key.ViewportWidth, 1920, "Width of the touch surface in pixels")
	register(key.ViewportHeight, 1080, "Height of the touch surface in pixels")
	register(key.PlayerBinary, "mpv", "Path or name of the mpv executable")
	register(key.LogsWrite, false, "Write logs")
	register(key.LogsLevel, "info", "Available options are: (from less to most verbose)\npanic, fatal, error, warn, info, debug, trace")
	register(key.LogsJson, false, "Use json format for logs")
	register(key.CliColored, true, "Enable colored CLI output")
	register(key.IconsVariant, "plain", "Icon set used in CLI output and the state view.\nAvailable options are: plain, emoji, nerd")
}

var prettyTemplate = lo.Must(template.New("pretty").Funcs(template.FuncMap{
	"faint":    style.Faint,
	"bold":     style.Bold,
	"purple":   style.Fg(color.Purple),
	"blue":     style.Fg(color.Blue),
	"cyan":     style.Fg(color.Cyan),
	"value":    func(k string) any { return viper.Get(k) },
	"typename": func(v any) string { return reflect.TypeOf(v).String() },
	"hl": func(v any) string {
		switch value := v.(type) {
		case bool:
			b := strconv.FormatBool(value)
			if value {
				return style.Fg(color.Green)(b)
			}
			return style.Fg(color.Red)(b)
		case string:
			return style.Fg(color.Yellow)(value)
		default:
			return fmt.Sprint(value)
		}
	},
}).Parse(`{{ faint .Description }}
{{ blue "Key:" }}     {{ purple .Key }}
{{ blue "Env:" }}     {{ .Env }}
{{ blue "Value:" }}   {{ hl (value .Key) }}
{{ blue "Default:" }} {{ hl (.Value) }}
{{ blue "Type:" }}    {{ typename .Value }}`))
