package common

import "github.com/jakecoffman/cp"

// Rect is an axis-aligned box with its origin at the top-left corner and y
// growing downward.
type Rect struct {
	X, Y          float64
	Width, Height float64
}

// Intersects reports strict overlap; boxes that only share an edge do not
// intersect, which is what lets a body rest exactly on a platform top.
func (r Rect) Intersects(other Rect) bool {
	return r.X < other.X+other.Width &&
		r.X+r.Width > other.X &&
		r.Y < other.Y+other.Height &&
		r.Y+r.Height > other.Y
}

func (r Rect) Right() float64 {
	return r.X + r.Width
}

func (r Rect) Bottom() float64 {
	return r.Y + r.Height
}

func (r Rect) CenterX() float64 {
	return r.X + r.Width/2
}

func (r Rect) CenterY() float64 {
	return r.Y + r.Height/2
}

// Inset shrinks the box by dx on both horizontal sides and dy on the top
// edge only, matching how hazard contact boxes are tightened.
func (r Rect) Inset(dx, dy float64) Rect {
	return Rect{X: r.X + dx, Y: r.Y + dy, Width: r.Width - 2*dx, Height: r.Height - dy}
}

// BB converts to a chipmunk bounding box. cp's bottom/top are just the min
// and max y, so the downward y axis carries over unchanged.
func (r Rect) BB() cp.BB {
	return cp.BB{L: r.X, B: r.Y, R: r.Right(), T: r.Bottom()}
}
