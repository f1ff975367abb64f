// Package key defines the canonical set of configuration identifiers used for centralized settings management.
package key

// Seek Gesture - horizontal drag mapped onto the transport position.
const (
	GestureSeek            = "gesture.seek"
	GestureSeekSensitivity = "gesture.seek_sensitivity"
	GesturePreciseSeeking  = "gesture.precise_seeking"
	GestureShowSeekbar     = "gesture.show_seekbar_on_seek"
)

// Vertical Gestures - vertical drag mapped onto volume and screen brightness.
const (
	GestureVolume                = "gesture.volume"
	GestureBrightness            = "gesture.brightness"
	GestureSwapVolumeBrightness  = "gesture.swap_volume_brightness"
	GestureVolumeSensitivity     = "gesture.volume_sensitivity"
	GestureBoostSensitivity      = "gesture.boost_sensitivity"
	GestureBrightnessSensitivity = "gesture.brightness_sensitivity"
)

// Tap Gestures - double-tap seeking, long-press speed and recognition timings.
const (
	GestureMultipleSpeed   = "gesture.multiple_speed"
	GestureDoubleTapSeek   = "gesture.double_tap_seek"
	GestureCenterDoubleTap = "gesture.center_double_tap"
	GestureTouchSlop       = "gesture.touch_slop"
	GestureLongPressMs     = "gesture.long_press_ms"
	GestureDoubleTapMs     = "gesture.double_tap_ms"
	GestureDoubleTapSlop   = "gesture.double_tap_slop"
)

// Audio - displayed volume range and the engine boost range above 100%.
const (
	AudioMaxVolume      = "audio.max_volume"
	AudioVolumeBoostCap = "audio.volume_boost_cap"
	AudioDefaultVolume  = "audio.default_volume"
)

// Display - screen brightness default.
const (
	DisplayDefaultBrightness = "display.default_brightness"
)

// Viewport - zoom bounds and the surface size used when no real surface reports one.
const (
	ViewportMinZoom = "viewport.min_zoom"
	ViewportMaxZoom = "viewport.max_zoom"
	ViewportWidth   = "viewport.width"
	ViewportHeight  = "viewport.height"
)

// Media Playback - the external engine binary.
const (
	PlayerBinary = "player.binary"
)

// Logging Infrastructure - these keys manage the application's internal diagnostics.
const (
	LogsWrite = "logs.write"
	LogsLevel = "logs.level"
	LogsJson  = "logs.json"
)

// CLI Execution Environment.
const (
	CliColored   = "cli.colored"
	IconsVariant = "icons.variant"
)
