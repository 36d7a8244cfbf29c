package grid

import (
	"github.com/zyedidia/generic/heap"
	"github.com/zyedidia/generic/queue"

	"tilelayout/pkg/engine/geom"
)

// searchSpace holds per-tile bookkeeping for one search over a rectangle.
type searchSpace struct {
	rect   geom.Rect
	cost   []int // -1 until discovered
	parent []int // flat index of predecessor, -1 for start
	closed []bool
}

func newSearchSpace(rect geom.Rect) *searchSpace {
	n := rect.Area()
	s := &searchSpace{
		rect:   rect,
		cost:   make([]int, n),
		parent: make([]int, n),
		closed: make([]bool, n),
	}
	for i := range s.cost {
		s.cost[i] = -1
		s.parent[i] = -1
	}
	return s
}

func (s *searchSpace) index(loc geom.Loc) int {
	return (loc.Y-s.rect.Top())*s.rect.Width() + (loc.X - s.rect.Left())
}

func (s *searchSpace) loc(idx int) geom.Loc {
	w := s.rect.Width()
	return geom.Loc{X: s.rect.Left() + idx%w, Y: s.rect.Top() + idx/w}
}

// trace rebuilds the path from the start to idx, start first.
func (s *searchSpace) trace(idx int) []geom.Loc {
	var reversed []geom.Loc
	for idx != -1 {
		reversed = append(reversed, s.loc(idx))
		idx = s.parent[idx]
	}
	path := make([]geom.Loc, len(reversed))
	for i, loc := range reversed {
		path[len(reversed)-1-i] = loc
	}
	return path
}

// neighbors calls fn for every tile enterable from loc, in Dir8 order.
func (s *searchSpace) neighbors(loc geom.Loc, checkBlock, checkDiagBlock LocTest, fn func(next geom.Loc, idx int)) {
	for _, dir := range geom.AllDir8() {
		next := loc.Add(dir.Delta())
		if !s.rect.Contains(next) {
			continue
		}
		if !diagonalAllowed(loc, dir, checkDiagBlock) || checkBlock(next) {
			continue
		}
		fn(next, s.index(next))
	}
}

type openEntry struct {
	idx  int
	f, h int
	seq  int
}

// FindPath returns the shortest path from start to end, start first. If end is
// unreachable the path leads to the reachable tile closest to it.
func FindPath(rect geom.Rect, start, end geom.Loc, checkBlock, checkDiagBlock LocTest) []geom.Loc {
	return FindAPath(rect, start, []geom.Loc{end}, checkBlock, checkDiagBlock)
}

// FindAPath runs an A* search towards the nearest of several goals and returns
// the path to the first goal reached. Steps in all eight directions cost the
// same. If no goal is reachable the path leads to the reachable tile closest to
// any goal. Returns nil when start lies outside rect.
func FindAPath(rect geom.Rect, start geom.Loc, ends []geom.Loc, checkBlock, checkDiagBlock LocTest) []geom.Loc {
	if !rect.Contains(start) {
		return nil
	}
	if len(ends) == 0 {
		return []geom.Loc{start}
	}

	space := newSearchSpace(rect)
	goals := make(map[int]bool, len(ends))
	for _, end := range ends {
		if rect.Contains(end) {
			goals[space.index(end)] = true
		}
	}
	heuristic := func(loc geom.Loc) int {
		best := -1
		for _, end := range ends {
			if d := geom.Dist8(loc, end); best < 0 || d < best {
				best = d
			}
		}
		return best
	}

	open := heap.New(func(a, b openEntry) bool {
		if a.f != b.f {
			return a.f < b.f
		}
		if a.h != b.h {
			return a.h < b.h
		}
		return a.seq < b.seq
	})

	seq := 0
	startIdx := space.index(start)
	space.cost[startIdx] = 0
	h := heuristic(start)
	open.Push(openEntry{idx: startIdx, f: h, h: h, seq: seq})

	closest, closestH := startIdx, h
	for open.Size() > 0 {
		entry, _ := open.Pop()
		if space.closed[entry.idx] {
			continue
		}
		space.closed[entry.idx] = true

		if entry.h < closestH {
			closest, closestH = entry.idx, entry.h
		}
		if goals[entry.idx] {
			return space.trace(entry.idx)
		}

		current := space.loc(entry.idx)
		nextCost := space.cost[entry.idx] + 1
		space.neighbors(current, checkBlock, checkDiagBlock, func(next geom.Loc, idx int) {
			if space.closed[idx] {
				return
			}
			if space.cost[idx] >= 0 && space.cost[idx] <= nextCost {
				return
			}
			space.cost[idx] = nextCost
			space.parent[idx] = entry.idx
			seq++
			nh := heuristic(next)
			open.Push(openEntry{idx: idx, f: nextCost + nh, h: nh, seq: seq})
		})
	}

	return space.trace(closest)
}

// bfs explores the area reachable from start in discovery order, stopping as
// soon as visit returns false. It returns the discovered indices in order.
func bfs(space *searchSpace, start geom.Loc, checkBlock, checkDiagBlock LocTest, visit func(idx int) bool) []int {
	startIdx := space.index(start)
	space.cost[startIdx] = 0
	order := []int{startIdx}
	if !visit(startIdx) {
		return order
	}

	frontier := queue.New[int]()
	frontier.Enqueue(startIdx)
	for !frontier.Empty() {
		idx := frontier.Dequeue()
		current := space.loc(idx)
		stop := false
		space.neighbors(current, checkBlock, checkDiagBlock, func(next geom.Loc, nextIdx int) {
			if stop || space.cost[nextIdx] >= 0 {
				return
			}
			space.cost[nextIdx] = space.cost[idx] + 1
			space.parent[nextIdx] = idx
			order = append(order, nextIdx)
			frontier.Enqueue(nextIdx)
			if !visit(nextIdx) {
				stop = true
			}
		})
		if stop {
			break
		}
	}
	return order
}

// goalIndex maps flat tile indices to the positions of ends lying on them.
func goalIndex(space *searchSpace, ends []geom.Loc) map[int][]int {
	goals := make(map[int][]int, len(ends))
	for i, end := range ends {
		if space.rect.Contains(end) {
			idx := space.index(end)
			goals[idx] = append(goals[idx], i)
		}
	}
	return goals
}

// FindAllPaths returns one shortest path per goal, in the order of ends, using a
// single breadth-first search. A goal that cannot be reached gets the path to
// the reachable tile closest to it instead. Returns nil when start lies outside rect.
func FindAllPaths(rect geom.Rect, start geom.Loc, ends []geom.Loc, checkBlock, checkDiagBlock LocTest) [][]geom.Loc {
	if !rect.Contains(start) {
		return nil
	}
	space := newSearchSpace(rect)
	goals := goalIndex(space, ends)
	paths := make([][]geom.Loc, len(ends))
	remaining := len(ends)

	order := bfs(space, start, checkBlock, checkDiagBlock, func(idx int) bool {
		for _, i := range goals[idx] {
			paths[i] = space.trace(idx)
			remaining--
		}
		return remaining > 0
	})

	for i, end := range ends {
		if paths[i] != nil {
			continue
		}
		best, bestDist := order[0], -1
		for _, idx := range order {
			if d := geom.Dist8(space.loc(idx), end); bestDist < 0 || d < bestDist {
				best, bestDist = idx, d
			}
		}
		paths[i] = space.trace(best)
	}
	return paths
}

// FindNPaths returns shortest paths to the n goals reached first by a single
// breadth-first search, in the order of ends. Goals reached later than the n-th,
// and unreachable goals, get nil. Goals at equal distance are ranked by
// discovery order, which follows the N, NE, E, SE, S, SW, W, NW expansion order.
func FindNPaths(rect geom.Rect, start geom.Loc, ends []geom.Loc, n int, checkBlock, checkDiagBlock LocTest) [][]geom.Loc {
	paths := make([][]geom.Loc, len(ends))
	if !rect.Contains(start) || n <= 0 {
		return paths
	}
	space := newSearchSpace(rect)
	goals := goalIndex(space, ends)
	found := 0

	bfs(space, start, checkBlock, checkDiagBlock, func(idx int) bool {
		for _, i := range goals[idx] {
			if found >= n {
				break
			}
			paths[i] = space.trace(idx)
			found++
		}
		return found < n
	})
	return paths
}
