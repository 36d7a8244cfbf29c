package audit

import (
	"strings"
	"testing"

	"tilelayout/pkg/engine/geom"
	"tilelayout/pkg/engine/world"
)

func parseMap(t *testing.T, layout string) *world.Map {
	t.Helper()
	rows := strings.Split(strings.TrimSpace(layout), "\n")
	m := world.NewMap(len(rows[0]), len(rows))
	for y, row := range rows {
		for x, c := range row {
			if c == '.' {
				m.SetTile(geom.Loc{X: x, Y: y}, world.NewTile(world.Floor))
			}
		}
	}
	return m
}

func TestCheck_Connected(t *testing.T) {
	m := parseMap(t, `
#####
#...#
#####`)
	m.SetEntrance(geom.Loc{X: 1, Y: 1})
	m.AddExit(geom.Loc{X: 3, Y: 1})

	r := Check(m)
	if !r.Connected() {
		t.Errorf("Check().Connected() = false, want true (problems %v)", r.Problems())
	}
	if r.Walkable != 3 || r.Reachable != 3 {
		t.Errorf("Walkable, Reachable = %d, %d, want 3, 3", r.Walkable, r.Reachable)
	}
	if len(r.Problems()) != 0 {
		t.Errorf("Problems() = %v, want none", r.Problems())
	}
}

func TestCheck_SplitRegions(t *testing.T) {
	m := parseMap(t, `
#####
#.#.#
#####`)
	m.SetEntrance(geom.Loc{X: 1, Y: 1})
	m.AddExit(geom.Loc{X: 3, Y: 1})

	r := Check(m)
	if r.Regions != 2 {
		t.Errorf("Regions = %d, want 2", r.Regions)
	}
	if len(r.UnreachableExits) != 1 {
		t.Errorf("UnreachableExits = %v, want one", r.UnreachableExits)
	}
	if r.Connected() {
		t.Errorf("Connected() = true, want false")
	}
	found := false
	for _, p := range r.Problems() {
		if strings.Contains(p, "2 regions") {
			found = true
		}
	}
	if !found {
		t.Errorf("Problems() = %v, want a region count", r.Problems())
	}
}

func TestCheck_DiagonalTouchIsNotConnected(t *testing.T) {
	m := parseMap(t, `
####
#.##
##.#
####`)
	m.SetEntrance(geom.Loc{X: 1, Y: 1})
	m.AddExit(geom.Loc{X: 2, Y: 2})

	r := Check(m)
	if r.Regions != 2 || r.Connected() {
		t.Errorf("Regions = %d, Connected = %v, want 2, false", r.Regions, r.Connected())
	}
}

func TestCheck_BlockingItemCutsExit(t *testing.T) {
	m := parseMap(t, `
#####
#...#
#####`)
	m.SetEntrance(geom.Loc{X: 1, Y: 1})
	m.AddExit(geom.Loc{X: 3, Y: 1})
	crate := world.NewItem("crate")
	crate.Blocking = true
	m.PlaceItem(crate, geom.Loc{X: 2, Y: 1})

	r := Check(m)
	if r.Regions != 1 {
		t.Errorf("Regions = %d, want 1 (items ignored)", r.Regions)
	}
	if len(r.UnreachableExits) != 1 {
		t.Errorf("UnreachableExits = %v, want [(3,1)]", r.UnreachableExits)
	}
}

func TestCheck_NoEntrance(t *testing.T) {
	m := parseMap(t, `
###
#.#
###`)
	r := Check(m)
	if r.HasEntrance {
		t.Errorf("HasEntrance = true, want false")
	}
	if len(r.Problems()) != 1 {
		t.Errorf("Problems() = %v, want one", r.Problems())
	}
}

func TestStillConnectedIfBlocked(t *testing.T) {
	corridor := parseMap(t, `
#######
#.....#
#######`)
	start := geom.Loc{X: 1, Y: 1}
	if StillConnectedIfBlocked(corridor, start, geom.Loc{X: 3, Y: 1}) {
		t.Errorf("StillConnectedIfBlocked(corridor middle) = true, want false")
	}
	if !StillConnectedIfBlocked(corridor, start, geom.Loc{X: 5, Y: 1}) {
		t.Errorf("StillConnectedIfBlocked(corridor end) = false, want true")
	}

	room := parseMap(t, `
#####
#...#
#...#
#...#
#####`)
	if !StillConnectedIfBlocked(room, start, geom.Loc{X: 2, Y: 2}) {
		t.Errorf("StillConnectedIfBlocked(room center) = false, want true")
	}
	if StillConnectedIfBlocked(room, start, start) {
		t.Errorf("StillConnectedIfBlocked(start) = true, want false")
	}
}

func TestSafeToBlock(t *testing.T) {
	m := parseMap(t, `
#########
#...#####
#.......#
#...#####
#########`)
	m.SetEntrance(geom.Loc{X: 1, Y: 2})
	m.AddExit(geom.Loc{X: 7, Y: 2})

	tests := []struct {
		loc  geom.Loc
		want bool
	}{
		{geom.Loc{X: 1, Y: 1}, true},  // room corner
		{geom.Loc{X: 5, Y: 2}, false}, // corridor
		{geom.Loc{X: 1, Y: 2}, false}, // entrance
		{geom.Loc{X: 7, Y: 2}, false}, // exit
		{geom.Loc{X: 4, Y: 1}, false}, // wall
	}
	for _, tt := range tests {
		if got := SafeToBlock(m, tt.loc); got != tt.want {
			t.Errorf("SafeToBlock(%v) = %v, want %v", tt.loc, got, tt.want)
		}
	}
}
