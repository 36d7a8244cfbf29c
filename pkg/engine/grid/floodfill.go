package grid

import (
	"github.com/zyedidia/generic/queue"

	"tilelayout/pkg/engine/geom"
)

// FloodFill expands breadth-first from start within rect, calling fillOp once for
// every tile reached (start included) before expanding from it. Coordinates are
// absolute; rect may have a negative origin. Nothing happens if start lies
// outside rect or is blocked.
func FloodFill(rect geom.Rect, checkBlock, checkDiagBlock LocTest, fillOp LocAction, start geom.Loc) {
	if !rect.Contains(start) || checkBlock(start) {
		return
	}

	visited := newVisitMap(rect)
	frontier := queue.New[geom.Loc]()

	visited.set(start)
	fillOp(start)
	frontier.Enqueue(start)

	for !frontier.Empty() {
		current := frontier.Dequeue()
		for _, dir := range geom.AllDir8() {
			next := current.Add(dir.Delta())
			if !rect.Contains(next) || visited.has(next) {
				continue
			}
			if !diagonalAllowed(current, dir, checkDiagBlock) {
				continue
			}
			if checkBlock(next) {
				continue
			}
			visited.set(next)
			fillOp(next)
			frontier.Enqueue(next)
		}
	}
}

// CountReachable returns the number of tiles FloodFill would reach from start.
func CountReachable(rect geom.Rect, checkBlock, checkDiagBlock LocTest, start geom.Loc) int {
	count := 0
	FloodFill(rect, checkBlock, checkDiagBlock, func(geom.Loc) { count++ }, start)
	return count
}

// IsDirBlocked reports whether any tile up to distance steps from start in dir is
// blocked, or whether a diagonal step along the way would cut a blocking corner.
func IsDirBlocked(start geom.Loc, dir geom.Dir8, checkBlock, checkDiagBlock LocTest, distance int) bool {
	current := start
	delta := dir.Delta()
	for i := 0; i < distance; i++ {
		if !diagonalAllowed(current, dir, checkDiagBlock) {
			return true
		}
		current = current.Add(delta)
		if checkBlock(current) {
			return true
		}
	}
	return false
}
