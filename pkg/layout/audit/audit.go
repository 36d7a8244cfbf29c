// Package audit checks finished layouts for connectivity problems and guards
// item placement against splitting a layout apart.
//
// Movement is 4-connected: a layout only counts as connected if every walkable
// tile can be reached without cutting a corner.
package audit

import (
	"github.com/leonelquinteros/gotext"
	"github.com/zyedidia/generic/mapset"

	"tilelayout/pkg/engine/geom"
	"tilelayout/pkg/engine/grid"
	"tilelayout/pkg/engine/world"
)

// Report summarises the connectivity of a map.
type Report struct {
	Walkable         int        // walkable tiles, items ignored
	Regions          int        // 4-connected walkable regions, items ignored
	Reachable        int        // tiles reachable from the entrance, items block
	HasEntrance      bool
	UnreachableExits []geom.Loc // exits the entrance cannot reach
}

// Connected reports whether the layout has a single region and every exit is
// reachable from the entrance.
func (r Report) Connected() bool {
	return r.Regions <= 1 && len(r.UnreachableExits) == 0
}

// Problems describes everything wrong with the layout, one message each.
func (r Report) Problems() []string {
	var out []string
	if r.Walkable == 0 {
		out = append(out, gotext.Get("layout has no walkable tiles"))
	}
	if r.Regions > 1 {
		out = append(out, gotext.GetN("layout is split into %d region", "layout is split into %d regions", r.Regions, r.Regions))
	}
	if !r.HasEntrance {
		out = append(out, gotext.Get("layout has no entrance"))
	}
	for _, exit := range r.UnreachableExits {
		out = append(out, gotext.Get("exit at %v cannot be reached from the entrance", exit))
	}
	return out
}

// Check audits a map.
func Check(m *world.Map) Report {
	rect := m.Bounds()
	walkable := func(loc geom.Loc) bool { return !m.TileBlocked(loc, true) }

	blobs := grid.DetectBlobs(rect, walkable)
	report := Report{Regions: len(blobs.Blobs)}
	for _, b := range blobs.Blobs {
		report.Walkable += b.Area
	}

	entrance, ok := m.Entrance()
	report.HasEntrance = ok
	if !ok {
		return report
	}
	reached := Reachable(m, entrance, nil)
	report.Reachable = reached.Size()
	for _, exit := range m.Exits() {
		if !reached.Has(exit) {
			report.UnreachableExits = append(report.UnreachableExits, exit)
		}
	}
	return report
}

// Reachable returns every tile reachable from start by 4-connected moves.
// Blocking items stop movement, as does any tile in extra.
func Reachable(m *world.Map, start geom.Loc, extra *mapset.Set[geom.Loc]) mapset.Set[geom.Loc] {
	reachable := mapset.New[geom.Loc]()
	blocked := func(loc geom.Loc) bool {
		if extra != nil && extra.Has(loc) {
			return true
		}
		return m.Blocked(loc)
	}
	grid.FloodFill(m.Bounds(), blocked, grid.Always, reachable.Put, start)
	return reachable
}

// StillConnectedIfBlocked reports whether every tile reachable from start
// stays reachable, apart from loc itself, once loc is blocked.
func StillConnectedIfBlocked(m *world.Map, start, loc geom.Loc) bool {
	if loc == start {
		return false
	}
	if m.Blocked(loc) {
		return true
	}
	before := Reachable(m, start, nil)
	if !before.Has(loc) {
		return true
	}
	blocked := mapset.New[geom.Loc]()
	blocked.Put(loc)
	after := Reachable(m, start, &blocked)
	return after.Size() == before.Size()-1
}

// SafeToBlock reports whether a blocking item may stand on loc. The tile must
// be free, must not be a local choke point, and must not cut the entrance off
// from any tile it could reach before.
func SafeToBlock(m *world.Map, loc geom.Loc) bool {
	if m.Blocked(loc) {
		return false
	}
	if grid.IsChokePoint(m.Bounds(), loc, m.Blocked, grid.Always) {
		return false
	}
	entrance, ok := m.Entrance()
	if !ok {
		return true
	}
	if loc == entrance {
		return false
	}
	for _, exit := range m.Exits() {
		if loc == exit {
			return false
		}
	}
	return StillConnectedIfBlocked(m, entrance, loc)
}
