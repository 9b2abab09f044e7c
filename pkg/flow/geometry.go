package flow

// Point is a position in canvas coordinates.
// The origin is the top-left corner; y grows downward.
type Point struct {
	X float64 `json:"x" bson:"x"`
	Y float64 `json:"y" bson:"y"`
}

// Rect is an axis-aligned rectangle in canvas coordinates.
// (X0,Y0) is the top-left corner and (X1,Y1) the bottom-right.
type Rect struct {
	X0 float64 `json:"x0" bson:"x0"`
	Y0 float64 `json:"y0" bson:"y0"`
	X1 float64 `json:"x1" bson:"x1"`
	Y1 float64 `json:"y1" bson:"y1"`
}

// Width returns the horizontal span of the rectangle.
func (r Rect) Width() float64 { return r.X1 - r.X0 }

// Height returns the vertical span of the rectangle.
func (r Rect) Height() float64 { return r.Y1 - r.Y0 }

// CenterX returns the horizontal center point of the rectangle.
func (r Rect) CenterX() float64 { return (r.X0 + r.X1) / 2 }

// CenterY returns the vertical center point of the rectangle.
func (r Rect) CenterY() float64 { return (r.Y0 + r.Y1) / 2 }

// Center returns the center point of the rectangle.
func (r Rect) Center() Point { return Point{X: r.CenterX(), Y: r.CenterY()} }

// Translate returns a copy of the rectangle shifted by (dx, dy).
func (r Rect) Translate(dx, dy float64) Rect {
	return Rect{X0: r.X0 + dx, Y0: r.Y0 + dy, X1: r.X1 + dx, Y1: r.Y1 + dy}
}

// ClampInside returns a copy of the rectangle translated the minimum
// distance needed to fit fully inside bounds. A rectangle larger than
// bounds is pinned to the top-left corner of bounds.
func (r Rect) ClampInside(bounds Rect) Rect {
	dx, dy := 0.0, 0.0
	if r.X1 > bounds.X1 {
		dx = bounds.X1 - r.X1
	}
	if r.X0+dx < bounds.X0 {
		dx = bounds.X0 - r.X0
	}
	if r.Y1 > bounds.Y1 {
		dy = bounds.Y1 - r.Y1
	}
	if r.Y0+dy < bounds.Y0 {
		dy = bounds.Y0 - r.Y0
	}
	return r.Translate(dx, dy)
}

// Side identifies one edge of a node rectangle.
type Side string

// Rectangle sides a link endpoint can attach to.
const (
	SideTop    Side = "top"
	SideBottom Side = "bottom"
	SideLeft   Side = "left"
	SideRight  Side = "right"
)

// Valid reports whether s is one of the four recognized sides.
func (s Side) Valid() bool {
	switch s {
	case SideTop, SideBottom, SideLeft, SideRight:
		return true
	}
	return false
}

// Horizontal reports whether the side runs along the x axis
// (top or bottom edge of the rectangle).
func (s Side) Horizontal() bool { return s == SideTop || s == SideBottom }

// Path is a cubic Bézier curve connecting two resolved link endpoints.
type Path struct {
	Start Point `json:"start" bson:"start"`
	C1    Point `json:"c1" bson:"c1"`
	C2    Point `json:"c2" bson:"c2"`
	End   Point `json:"end" bson:"end"`
}
