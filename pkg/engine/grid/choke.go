package grid

import (
	"github.com/zyedidia/generic/mapset"

	"tilelayout/pkg/engine/geom"
)

// GetForkDirs returns one direction per group of neighbors around center that
// can only reach each other by passing through center. Neighbors that cannot be
// entered from center are ignored. Directions are returned in Dir8 order.
func GetForkDirs(rect geom.Rect, center geom.Loc, checkBlock, checkDiagBlock LocTest) []geom.Dir8 {
	var reachable [geom.Dir8Count]bool
	for _, dir := range geom.AllDir8() {
		next := center.Add(dir.Delta())
		reachable[dir] = rect.Contains(next) && !checkBlock(next) && diagonalAllowed(center, dir, checkDiagBlock)
	}

	// Consecutive ring tiles are orthogonal neighbors of each other.
	parent := [geom.Dir8Count]int{0, 1, 2, 3, 4, 5, 6, 7}
	var find func(i int) int
	find = func(i int) int {
		if parent[i] != i {
			parent[i] = find(parent[i])
		}
		return parent[i]
	}
	union := func(a, b int) {
		ra, rb := find(a), find(b)
		if ra < rb {
			parent[rb] = ra
		} else if rb < ra {
			parent[ra] = rb
		}
	}
	for i := 0; i < geom.Dir8Count; i++ {
		j := (i + 1) % geom.Dir8Count
		if reachable[i] && reachable[j] {
			union(i, j)
		}
	}

	var groups []geom.Dir8
	for _, dir := range geom.AllDir8() {
		if reachable[dir] && find(int(dir)) == int(dir) {
			groups = append(groups, dir)
		}
	}
	if len(groups) < 2 {
		return groups
	}

	blockedCenter := func(loc geom.Loc) bool {
		return loc == center || checkBlock(loc)
	}
	diagCenter := func(loc geom.Loc) bool {
		return loc == center || checkDiagBlock(loc)
	}

	var forks []geom.Dir8
	merged := mapset.New[geom.Dir8]()
	for i, dir := range groups {
		if merged.Has(dir) {
			continue
		}
		forks = append(forks, dir)
		targets := mapset.New[geom.Loc]()
		for _, other := range groups[i+1:] {
			if !merged.Has(other) {
				targets.Put(center.Add(other.Delta()))
			}
		}
		if targets.Size() == 0 {
			continue
		}
		FloodFill(rect, blockedCenter, diagCenter, func(loc geom.Loc) {
			if targets.Has(loc) {
				targets.Remove(loc)
				for _, other := range groups[i+1:] {
					if center.Add(other.Delta()) == loc {
						merged.Put(other)
					}
				}
			}
		}, center.Add(dir.Delta()))
	}
	return forks
}

// IsChokePoint reports whether blocking center would split its reachable
// neighbors into more than one disconnected group.
func IsChokePoint(rect geom.Rect, center geom.Loc, checkBlock, checkDiagBlock LocTest) bool {
	return len(GetForkDirs(rect, center, checkBlock, checkDiagBlock)) > 1
}
