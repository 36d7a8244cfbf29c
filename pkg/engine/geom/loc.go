// Package geom provides integer plane primitives shared by every layout package:
// points, rectangles, directions and index ranges.
package geom

import "fmt"

// Loc is an integer point on the tile plane.
type Loc struct {
	X, Y int
}

// Add returns the component-wise sum.
func (l Loc) Add(o Loc) Loc {
	return Loc{l.X + o.X, l.Y + o.Y}
}

// Sub returns the component-wise difference.
func (l Loc) Sub(o Loc) Loc {
	return Loc{l.X - o.X, l.Y - o.Y}
}

// Scale multiplies both components by n.
func (l Loc) Scale(n int) Loc {
	return Loc{l.X * n, l.Y * n}
}

// Get returns the component lying on the given axis.
func (l Loc) Get(a Axis) int {
	if a == Vertical {
		return l.Y
	}
	return l.X
}

// Dist8 returns the Chebyshev (chessboard) distance between two points.
func Dist8(a, b Loc) int {
	dx := abs(a.X - b.X)
	dy := abs(a.Y - b.Y)
	if dx > dy {
		return dx
	}
	return dy
}

// Dist4 returns the Manhattan distance between two points.
func Dist4(a, b Loc) int {
	return abs(a.X-b.X) + abs(a.Y-b.Y)
}

func (l Loc) String() string {
	return fmt.Sprintf("(%d,%d)", l.X, l.Y)
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}

// Rect is an axis-aligned rectangle. Right and Bottom are exclusive.
type Rect struct {
	Start Loc
	Size  Loc
}

// NewRect creates a rectangle from its top-left corner and size
func NewRect(x, y, w, h int) Rect {
	return Rect{Start: Loc{x, y}, Size: Loc{w, h}}
}

func (r Rect) X() int      { return r.Start.X }
func (r Rect) Y() int      { return r.Start.Y }
func (r Rect) Width() int  { return r.Size.X }
func (r Rect) Height() int { return r.Size.Y }
func (r Rect) Left() int   { return r.Start.X }
func (r Rect) Top() int    { return r.Start.Y }
func (r Rect) Right() int  { return r.Start.X + r.Size.X }
func (r Rect) Bottom() int { return r.Start.Y + r.Size.Y }

// End returns the exclusive bottom-right corner.
func (r Rect) End() Loc {
	return r.Start.Add(r.Size)
}

// Area returns the number of tiles covered.
func (r Rect) Area() int {
	if r.Empty() {
		return 0
	}
	return r.Size.X * r.Size.Y
}

// Empty reports whether the rectangle covers no tiles.
func (r Rect) Empty() bool {
	return r.Size.X <= 0 || r.Size.Y <= 0
}

// Contains reports whether loc lies inside the rectangle.
func (r Rect) Contains(loc Loc) bool {
	return loc.X >= r.Left() && loc.X < r.Right() && loc.Y >= r.Top() && loc.Y < r.Bottom()
}

// ContainsRect reports whether o lies entirely inside r.
func (r Rect) ContainsRect(o Rect) bool {
	return o.Left() >= r.Left() && o.Right() <= r.Right() && o.Top() >= r.Top() && o.Bottom() <= r.Bottom()
}

// Intersects reports whether the rectangles share at least one tile.
// Rectangles that only touch along an edge do not intersect.
func (r Rect) Intersects(o Rect) bool {
	return r.Left() < o.Right() && o.Left() < r.Right() && r.Top() < o.Bottom() && o.Top() < r.Bottom()
}

// Intersect returns the overlapping area of two rectangles (possibly empty).
func (r Rect) Intersect(o Rect) Rect {
	left := max(r.Left(), o.Left())
	top := max(r.Top(), o.Top())
	right := min(r.Right(), o.Right())
	bottom := min(r.Bottom(), o.Bottom())
	if right < left {
		right = left
	}
	if bottom < top {
		bottom = top
	}
	return NewRect(left, top, right-left, bottom-top)
}

// Inflate grows the rectangle by dx on the left and right and dy on the top and bottom.
func (r Rect) Inflate(dx, dy int) Rect {
	return NewRect(r.Left()-dx, r.Top()-dy, r.Width()+2*dx, r.Height()+2*dy)
}

// Side returns the scalar coordinate of the rectangle's edge facing dir.
// North and West are inclusive, South and East exclusive, so two rectangles
// abut when r.Side(d) == o.Side(d.Opposite()).
func (r Rect) Side(dir Dir4) int {
	switch dir {
	case North:
		return r.Top()
	case South:
		return r.Bottom()
	case West:
		return r.Left()
	case East:
		return r.Right()
	default:
		return 0
	}
}

// BorderLength returns the number of tiles along the edge facing dir.
func (r Rect) BorderLength(dir Dir4) int {
	if dir.Axis() == Vertical {
		return r.Width()
	}
	return r.Height()
}

// EdgeLoc returns the i-th tile inside the rectangle along the edge facing dir.
// North/South edges are indexed west to east, East/West edges north to south.
func (r Rect) EdgeLoc(dir Dir4, i int) Loc {
	switch dir {
	case North:
		return Loc{r.Left() + i, r.Top()}
	case South:
		return Loc{r.Left() + i, r.Bottom() - 1}
	case West:
		return Loc{r.Left(), r.Top() + i}
	default:
		return Loc{r.Right() - 1, r.Top() + i}
	}
}

// EdgeStart returns the absolute coordinate of index 0 along the edge facing dir.
func (r Rect) EdgeStart(dir Dir4) int {
	if dir.Axis() == Vertical {
		return r.Left()
	}
	return r.Top()
}

// Depth returns the extent of the rectangle perpendicular to the edge facing dir.
func (r Rect) Depth(dir Dir4) int {
	if dir.Axis() == Vertical {
		return r.Height()
	}
	return r.Width()
}

func (r Rect) String() string {
	return fmt.Sprintf("[%d,%d %dx%d]", r.X(), r.Y(), r.Width(), r.Height())
}
