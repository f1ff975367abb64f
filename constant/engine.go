package constant

// Engine property names read and written by the gesture core.
const (
	PropPause      = "pause"
	PropTimePos    = "time-pos"
	PropDuration   = "duration"
	PropSpeed      = "speed"
	PropVolume     = "volume"
	PropVolumeMax  = "volume-max"
	PropAOVolume   = "ao-volume"
	PropVideoZoom  = "video-zoom"
	PropVideoPanX  = "video-pan-x"
	PropVideoPanY  = "video-pan-y"
	PropBrightness = "user-data/touchctl/brightness"
)

// PanScale converts surface pan pixels into the normalized pan mpv expects.
const PanScale = 1000.0
