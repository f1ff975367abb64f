package gesture

import "github.com/touchctl/touchctl/state"

// Transformer receives pinch and pan updates.
type Transformer interface {
	ApplyZoom(scaleFactor, focusX, focusY float64)
	ApplyPan(deltaX, deltaY float64)
	Zoomed() bool
}

// Seeker receives horizontal drags.
type Seeker interface {
	Enabled() bool
	Start(x float64)
	Update(x, dx float64)
	End()
	Cancel()
}

// Adjuster receives vertical drags and reports which axis each update adjusted.
type Adjuster interface {
	Enabled() bool
	Start()
	Update(x, y, dy float64) state.Gesture
	End()
	Cancel()
}

// DoubleTapper receives presses, which it may claim, and recognised double taps.
type DoubleTapper interface {
	Press(x float64) bool
	DoubleTap(x float64)
}

// Speeder receives long presses. Start reports whether the press was taken.
type Speeder interface {
	Start() bool
	End()
	Cancel()
}

// Handlers are the receivers of recognised gestures.
type Handlers struct {
	Transform Transformer
	Seek      Seeker
	Vertical  Adjuster
	DoubleTap DoubleTapper
	Speed     Speeder
	Tap       func()
}
