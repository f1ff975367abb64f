package transform

import "github.com/touchctl/touchctl/state"

// Matrix is a 2-D affine transform in the row layout the rendering surface expects:
//
//	x' = ScaleX*x + SkewX*y + TransX
//	y' = SkewY*x + ScaleY*y + TransY
type Matrix struct {
	ScaleX, SkewX, TransX float64
	SkewY, ScaleY, TransY float64
}

// Identity is the untransformed surface.
var Identity = Matrix{ScaleX: 1, ScaleY: 1}

// ScaleAbout returns a uniform scale by s around (cx, cy).
func ScaleAbout(s, cx, cy float64) Matrix {
	return Matrix{
		ScaleX: s, TransX: cx - s*cx,
		ScaleY: s, TransY: cy - s*cy,
	}
}

// Translate returns m followed by a translation.
func (m Matrix) Translate(dx, dy float64) Matrix {
	m.TransX += dx
	m.TransY += dy
	return m
}

// Apply maps a content point to screen space.
func (m Matrix) Apply(p state.Point) state.Point {
	return state.Point{
		X: m.ScaleX*p.X + m.SkewX*p.Y + m.TransX,
		Y: m.SkewY*p.X + m.ScaleY*p.Y + m.TransY,
	}
}

// Invert returns the inverse transform, or false if m is singular.
func (m Matrix) Invert() (Matrix, bool) {
	det := m.ScaleX*m.ScaleY - m.SkewX*m.SkewY
	if det == 0 {
		return Matrix{}, false
	}
	inv := Matrix{
		ScaleX: m.ScaleY / det,
		SkewX:  -m.SkewX / det,
		SkewY:  -m.SkewY / det,
		ScaleY: m.ScaleX / det,
	}
	inv.TransX = -(inv.ScaleX*m.TransX + inv.SkewX*m.TransY)
	inv.TransY = -(inv.SkewY*m.TransX + inv.ScaleY*m.TransY)
	return inv, true
}
