package steps

import (
	"strings"
	"testing"

	"tilelayout/pkg/engine/fault"
	"tilelayout/pkg/engine/geom"
	"tilelayout/pkg/engine/rng"
	"tilelayout/pkg/engine/world"
	"tilelayout/pkg/layout/audit"
	"tilelayout/pkg/layout/floorplan"
	"tilelayout/pkg/layout/pathbranch"
	"tilelayout/pkg/layout/room"
	"tilelayout/pkg/layout/state"
)

func sizes(lo, hi int) geom.IntRange {
	return geom.IntRange{Min: lo, Max: hi}
}

func placed(t *testing.T, g room.Gen, x, y, w, h int) room.Gen {
	t.Helper()
	if err := room.PrepareSize(g, rng.New(1), geom.Loc{X: w, Y: h}); err != nil {
		t.Fatalf("PrepareSize error: %v", err)
	}
	room.Place(g, geom.Loc{X: x, Y: y})
	return g
}

// chainLayout draws room - hall - room running west to east on a 20x10 map.
func chainLayout(t *testing.T, seed int64) *state.Layout {
	t.Helper()
	l := state.NewLayout(rng.New(seed), 20, 10)
	p := floorplan.New(geom.NewRect(0, 0, 20, 10))
	a, err := p.AddRoom(placed(t, room.NewSquare(sizes(1, 2), sizes(1, 2)), 1, 1, 4, 4), floorplan.NewComponents(floorplan.TagRoot))
	if err != nil {
		t.Fatalf("AddRoom error: %v", err)
	}
	h, err := p.AddHall(placed(t, room.NewAngledHall(sizes(1, 2), sizes(1, 2), 50), 5, 2, 6, 3), floorplan.NewComponents(floorplan.TagHall), a)
	if err != nil {
		t.Fatalf("AddHall error: %v", err)
	}
	if _, err := p.AddRoom(placed(t, room.NewSquare(sizes(1, 2), sizes(1, 2)), 11, 0, 5, 8), floorplan.NewComponents(), h); err != nil {
		t.Fatalf("AddRoom error: %v", err)
	}
	l.SetFloorPlan(p)
	if err := (&DrawFloorPlan[*state.Layout]{}).Apply(l); err != nil {
		t.Fatalf("DrawFloorPlan error: %v", err)
	}
	return l
}

func TestInitTiles(t *testing.T) {
	l := state.NewLayout(rng.New(1), 5, 5)
	l.SetTile(geom.Loc{X: 2, Y: 2}, world.NewTile(world.Floor))

	if err := (&InitTiles[*state.Layout]{Width: 8, Height: 6, ImpassableBorder: true}).Apply(l); err != nil {
		t.Fatalf("Apply error: %v", err)
	}
	if l.Width() != 8 || l.Height() != 6 {
		t.Errorf("size = %dx%d, want 8x6", l.Width(), l.Height())
	}
	if got := l.Tile(geom.Loc{X: 0, Y: 3}).Terrain; got != world.Impassable {
		t.Errorf("border tile = %v, want Impassable", got)
	}
	if got := l.Tile(geom.Loc{X: 2, Y: 2}).Terrain; got != world.Wall {
		t.Errorf("inner tile = %v, want Wall", got)
	}
}

func TestInitFloorPlan(t *testing.T) {
	l := state.NewLayout(rng.New(1), 20, 10)
	if err := (&InitFloorPlan[*state.Layout]{Margin: 1}).Apply(l); err != nil {
		t.Fatalf("Apply error: %v", err)
	}
	if got, want := l.FloorPlan().Bounds(), geom.NewRect(1, 1, 18, 8); got != want {
		t.Errorf("Bounds() = %v, want %v", got, want)
	}
	if err := (&InitFloorPlan[*state.Layout]{Margin: 5}).Apply(l); !fault.IsConfiguration(err) {
		t.Errorf("Apply(margin 5) error = %v, want configuration error", err)
	}
}

func TestInitGridPlan_MapTooSmall(t *testing.T) {
	l := state.NewLayout(rng.New(1), 10, 10)
	s := &InitGridPlan[*state.Layout]{Cols: 3, Rows: 3, CellWidth: 5, CellHeight: 5, CellWall: 1}
	if err := s.Apply(l); !fault.IsConfiguration(err) {
		t.Errorf("Apply error = %v, want configuration error", err)
	}
	if l.GridPlan() != nil {
		t.Errorf("GridPlan() set after a failed init")
	}
}

func TestEntranceExit_FurthestRoom(t *testing.T) {
	for seed := int64(0); seed < 5; seed++ {
		l := chainLayout(t, seed)
		if err := (&EntranceExit[*state.Layout]{}).Apply(l); err != nil {
			t.Fatalf("seed %d: Apply error: %v", seed, err)
		}
		entrance, ok := l.Entrance()
		if !ok {
			t.Fatalf("seed %d: no entrance", seed)
		}
		if owner := l.Tile(entrance).Owner; owner != 0 {
			t.Errorf("seed %d: entrance %v owned by %d, want root room 0", seed, entrance, owner)
		}
		exits := l.Exits()
		if len(exits) != 1 {
			t.Fatalf("seed %d: Exits() = %v, want one", seed, exits)
		}
		if owner := l.Tile(exits[0]).Owner; owner != 1 {
			t.Errorf("seed %d: exit %v owned by %d, want far room 1\n%s", seed, exits[0], owner, l.Map)
		}
	}
}

func TestSpawnItems_CopiesAndNeverCutsOff(t *testing.T) {
	l := chainLayout(t, 3)
	if err := (&EntranceExit[*state.Layout]{}).Apply(l); err != nil {
		t.Fatalf("EntranceExit error: %v", err)
	}
	crate := &world.Item{Name: "crate", Blocking: true}
	coin := world.NewItem("coin")
	spawns := rng.NewSpawnList[*world.Item]()
	spawns.Add(crate, 1)
	spawns.Add(coin, 1)

	s := &SpawnItems[*state.Layout]{Spawns: spawns, Amount: sizes(12, 13)}
	if err := s.Apply(l); err != nil {
		t.Fatalf("Apply error: %v", err)
	}

	seen := make(map[geom.Loc]bool)
	count := 0
	l.Items().Each(func(it *world.Item) {
		count++
		if it == crate || it == coin {
			t.Errorf("template %s placed directly instead of a copy", it.Name)
		}
		if seen[it.Loc] {
			t.Errorf("two items at %v", it.Loc)
		}
		seen[it.Loc] = true
	})
	if count == 0 {
		t.Errorf("no items spawned")
	}
	if r := audit.Check(l.Map); !r.Connected() {
		t.Errorf("spawned items cut the layout: %v\n%s", r.Problems(), l.Map)
	}
}

func TestNameRooms(t *testing.T) {
	l := chainLayout(t, 1)
	s := &NameRooms[*state.Layout]{Names: []string{"Vault"}}
	if err := s.Apply(l); err != nil {
		t.Fatalf("Apply error: %v", err)
	}
	a := l.FloorPlan().Get(floorplan.RoomHallIndex{Index: 0}).Components.Name()
	b := l.FloorPlan().Get(floorplan.RoomHallIndex{Index: 1}).Components.Name()
	if a != "Vault" || b != "Vault 2" {
		t.Errorf("names = %q, %q, want Vault, Vault 2", a, b)
	}
	if hall := l.FloorPlan().Get(floorplan.RoomHallIndex{Index: 0, IsHall: true}); hall.Components.Name() != "" {
		t.Errorf("hall named %q, want unnamed", hall.Components.Name())
	}
	if got := l.RoomName(1); got != "Vault 2" {
		t.Errorf("RoomName(1) = %q, want Vault 2", got)
	}
}

func TestAudit_StrictFailsDisconnected(t *testing.T) {
	l := state.NewLayout(rng.New(1), 7, 3)
	l.SetTile(geom.Loc{X: 1, Y: 1}, world.NewTile(world.Floor))
	l.SetTile(geom.Loc{X: 5, Y: 1}, world.NewTile(world.Floor))
	l.SetEntrance(geom.Loc{X: 1, Y: 1})
	l.AddExit(geom.Loc{X: 5, Y: 1})

	if err := (&Audit[*state.Layout]{}).Apply(l); err != nil {
		t.Errorf("lenient Apply error = %v, want nil", err)
	}
	if len(l.Problems) == 0 {
		t.Errorf("no problems recorded")
	}
	l.ClearProblems()
	if err := (&Audit[*state.Layout]{Strict: true}).Apply(l); !fault.IsDisconnected(err) {
		t.Errorf("strict Apply error = %v, want disconnected", err)
	}
}

func TestFloorPipeline_EndToEnd(t *testing.T) {
	rooms := rng.NewSpawnList[room.Gen]()
	rooms.Add(room.NewSquare(sizes(3, 7), sizes(3, 7)), 10)
	rooms.Add(room.NewCave(sizes(6, 10), sizes(6, 10), 45, 50), 3)
	halls := rng.NewSpawnList[room.Gen]()
	halls.Add(room.NewAngledHall(sizes(1, 6), sizes(1, 6), 50), 10)

	for seed := int64(0); seed < 5; seed++ {
		l := state.NewLayout(rng.New(seed), 50, 40)
		run := []interface{ Apply(*state.Layout) error }{
			&InitTiles[*state.Layout]{ImpassableBorder: true},
			&InitFloorPlan[*state.Layout]{Margin: 1},
			&pathbranch.Grower[*state.Layout]{
				FillPercent: sizes(40, 50),
				BranchRatio: sizes(20, 50),
				HallPercent: 50,
				RoomGens:    rooms,
				HallGens:    halls,
			},
			&DrawFloorPlan[*state.Layout]{},
			&EntranceExit[*state.Layout]{},
			&Audit[*state.Layout]{Strict: true},
		}
		for _, s := range run {
			if err := s.Apply(l); err != nil {
				t.Fatalf("seed %d: %T error: %v\n%s", seed, s, err, l.Map)
			}
		}
		if len(l.Problems) != 0 {
			t.Errorf("seed %d: problems %s", seed, strings.Join(l.Problems, "; "))
		}
	}
}
