// Package grid implements the connectivity kernel: flood fill, multi-goal
// pathfinding, blob labeling, and choke-point detection.
//
// Every algorithm works over predicates instead of a concrete map. checkBlock
// decides whether a tile can be entered; checkDiagBlock decides whether a tile
// prevents cutting a corner. A diagonal step is legal only when neither of the
// two orthogonal tiles forming the corner is diagonal-blocking, so passing a
// predicate that always returns true yields 4-connected behavior and one that
// always returns false yields free 8-connected movement.
package grid

import (
	"tilelayout/pkg/engine/geom"
)

// LocTest is a predicate over tile locations.
type LocTest func(loc geom.Loc) bool

// LocAction is a callback invoked on a tile location.
type LocAction func(loc geom.Loc)

// Never is a LocTest that always returns false.
func Never(geom.Loc) bool { return false }

// Always is a LocTest that always returns true.
func Always(geom.Loc) bool { return true }

// diagonalAllowed reports whether a step from loc in dir may be taken without
// cutting a diagonal-blocking corner. Cardinal steps are always allowed.
func diagonalAllowed(loc geom.Loc, dir geom.Dir8, checkDiagBlock LocTest) bool {
	if !dir.IsDiagonal() {
		return true
	}
	a, b := dir.Separate()
	return !checkDiagBlock(loc.Add(a.Delta())) && !checkDiagBlock(loc.Add(b.Delta()))
}

// visitMap is a flat boolean grid over a rectangle with an arbitrary origin.
type visitMap struct {
	rect geom.Rect
	bits []bool
}

func newVisitMap(rect geom.Rect) *visitMap {
	return &visitMap{rect: rect, bits: make([]bool, rect.Area())}
}

func (v *visitMap) index(loc geom.Loc) int {
	return (loc.Y-v.rect.Top())*v.rect.Width() + (loc.X - v.rect.Left())
}

func (v *visitMap) has(loc geom.Loc) bool {
	return v.bits[v.index(loc)]
}

func (v *visitMap) set(loc geom.Loc) {
	v.bits[v.index(loc)] = true
}
