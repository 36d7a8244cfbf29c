package gridplan

import (
	"testing"

	"tilelayout/pkg/engine/fault"
	"tilelayout/pkg/engine/geom"
	"tilelayout/pkg/engine/grid"
	"tilelayout/pkg/engine/rng"
	"tilelayout/pkg/engine/world"
	"tilelayout/pkg/layout/floorplan"
	"tilelayout/pkg/layout/room"
)

func sizes(lo, hi int) geom.IntRange {
	return geom.IntRange{Min: lo, Max: hi}
}

func newPlan(t *testing.T) *GridPlan {
	t.Helper()
	p, err := New(3, 2, 5, 4, 1)
	if err != nil {
		t.Fatalf("New error: %v", err)
	}
	return p
}

func TestNew_RejectsInvalid(t *testing.T) {
	if _, err := New(3, 2, 5, 4, 0); !fault.IsConfiguration(err) {
		t.Errorf("New(wall 0) error = %v, want configuration error", err)
	}
}

func TestCellBounds(t *testing.T) {
	p := newPlan(t)
	if got, want := p.CellBounds(geom.NewRect(1, 1, 1, 1)), geom.NewRect(7, 6, 5, 4); got != want {
		t.Errorf("CellBounds(1,1) = %v, want %v", got, want)
	}
	if got, want := p.CellBounds(geom.NewRect(0, 0, 2, 1)), geom.NewRect(1, 1, 11, 4); got != want {
		t.Errorf("CellBounds(2 cells) = %v, want %v", got, want)
	}
	if got, want := p.Size(), (geom.Loc{X: 19, Y: 11}); got != want {
		t.Errorf("Size() = %v, want %v", got, want)
	}
}

func TestAddRoom_RejectsOverlap(t *testing.T) {
	p := newPlan(t)
	if _, err := p.AddRoom(geom.NewRect(0, 0, 2, 1), room.NewSquare(sizes(2, 4), sizes(2, 4)), floorplan.NewComponents()); err != nil {
		t.Fatalf("AddRoom error: %v", err)
	}
	_, err := p.AddRoom(geom.NewRect(1, 0, 1, 2), room.NewSquare(sizes(2, 4), sizes(2, 4)), floorplan.NewComponents())
	if !fault.IsConfiguration(err) {
		t.Errorf("AddRoom(overlap) error = %v, want configuration error", err)
	}
	_, err = p.AddRoom(geom.NewRect(2, 1, 2, 1), room.NewSquare(sizes(2, 4), sizes(2, 4)), floorplan.NewComponents())
	if !fault.IsConfiguration(err) {
		t.Errorf("AddRoom(outside) error = %v, want configuration error", err)
	}
	if got := p.RoomAt(geom.Loc{X: 1, Y: 0}); got != 0 {
		t.Errorf("RoomAt(1,0) = %d, want 0", got)
	}
	if got := p.RoomAt(geom.Loc{X: 2, Y: 1}); got != NoRoom {
		t.Errorf("RoomAt(2,1) = %d, want NoRoom", got)
	}
}

func TestSetHall_InsideRoom(t *testing.T) {
	p := newPlan(t)
	p.AddRoom(geom.NewRect(0, 0, 2, 1), room.NewSquare(sizes(2, 4), sizes(2, 4)), floorplan.NewComponents())
	err := p.SetHall(geom.Loc{X: 0, Y: 0}, geom.East, room.NewAngledHall(sizes(1, 2), sizes(1, 2), 0), floorplan.NewComponents())
	if !fault.IsConfiguration(err) {
		t.Errorf("SetHall(inside room) error = %v, want configuration error", err)
	}
	err = p.SetHall(geom.Loc{X: 2, Y: 0}, geom.East, room.NewAngledHall(sizes(1, 2), sizes(1, 2), 0), floorplan.NewComponents())
	if !fault.IsConfiguration(err) {
		t.Errorf("SetHall(off grid) error = %v, want configuration error", err)
	}
}

func TestSetHall_SharedBetweenSides(t *testing.T) {
	p := newPlan(t)
	h := room.NewAngledHall(sizes(1, 2), sizes(1, 2), 0)
	if err := p.SetHall(geom.Loc{X: 1, Y: 1}, geom.North, h, floorplan.NewComponents()); err != nil {
		t.Fatalf("SetHall error: %v", err)
	}
	if got := p.Hall(geom.Loc{X: 1, Y: 0}, geom.South); got == nil || got.Gen != h {
		t.Errorf("Hall(1,0 South) = %v, want the hall set from the other side", got)
	}
	p.SetHall(geom.Loc{X: 1, Y: 0}, geom.South, nil, floorplan.Components{})
	if got := p.Hall(geom.Loc{X: 1, Y: 1}, geom.North); got != nil {
		t.Errorf("Hall after removal = %v, want nil", got)
	}
}

// ring builds a 3x2 plan with a big room on top and single-cell rooms below,
// all connected.
func ring(t *testing.T) *GridPlan {
	t.Helper()
	p := newPlan(t)
	comps := floorplan.NewComponents()
	add := func(cells geom.Rect, gen room.Gen) {
		if _, err := p.AddRoom(cells, gen, comps); err != nil {
			t.Fatalf("AddRoom(%v) error: %v", cells, err)
		}
	}
	add(geom.NewRect(0, 0, 2, 1), room.NewSquare(sizes(2, 4), sizes(2, 4)))
	add(geom.NewRect(2, 0, 1, 1), room.NewRound(sizes(3, 6), sizes(3, 5)))
	add(geom.NewRect(0, 1, 1, 1), room.NewSquare(sizes(2, 4), sizes(2, 4)))
	add(geom.NewRect(1, 1, 1, 1), room.NewJunction(sizes(1, 2), sizes(1, 2)))
	add(geom.NewRect(2, 1, 1, 1), room.NewCross(sizes(3, 6), sizes(3, 5), sizes(1, 2)))

	halls := []struct {
		cell geom.Loc
		dir  geom.Dir4
	}{
		{geom.Loc{X: 1, Y: 0}, geom.East},
		{geom.Loc{X: 0, Y: 0}, geom.South},
		{geom.Loc{X: 0, Y: 1}, geom.East},
		{geom.Loc{X: 1, Y: 1}, geom.East},
		{geom.Loc{X: 2, Y: 0}, geom.South},
	}
	for _, h := range halls {
		if err := p.SetHall(h.cell, h.dir, room.NewAngledHall(sizes(1, 2), sizes(1, 2), 50), comps); err != nil {
			t.Fatalf("SetHall(%v, %v) error: %v", h.cell, h.dir, err)
		}
	}
	return p
}

func TestAdjacentRooms(t *testing.T) {
	p := ring(t)
	got := p.AdjacentRooms(0)
	if len(got) != 2 || got[0] != 1 || got[1] != 2 {
		t.Errorf("AdjacentRooms(0) = %v, want [1 2]", got)
	}
	got = p.AdjacentRooms(3)
	if len(got) != 2 || got[0] != 2 || got[1] != 4 {
		t.Errorf("AdjacentRooms(3) = %v, want [2 4]", got)
	}
}

func TestPlaceRoomsOnFloor_Connected(t *testing.T) {
	for seed := int64(0); seed < 20; seed++ {
		p := ring(t)
		r := rng.New(seed)
		size := p.Size()
		fp := floorplan.New(geom.NewRect(0, 0, size.X, size.Y))
		if err := p.PlaceRoomsOnFloor(r, fp); err != nil {
			t.Fatalf("seed %d: PlaceRoomsOnFloor error: %v", seed, err)
		}
		if fp.RoomCount() != 5 || fp.HallCount() != 5 {
			t.Fatalf("seed %d: plan has %d rooms and %d halls, want 5 and 5", seed, fp.RoomCount(), fp.HallCount())
		}
		m := world.NewMap(size.X, size.Y)
		if err := fp.DrawOnMap(m, r); err != nil {
			t.Fatalf("seed %d: DrawOnMap error: %v", seed, err)
		}

		var start geom.Loc
		floors := 0
		m.ForEachTile(func(loc geom.Loc, tile world.Tile) {
			if tile.Terrain == world.Floor {
				if floors == 0 {
					start = loc
				}
				floors++
			}
		})
		if got := grid.CountReachable(m.Bounds(), m.Blocked, m.DiagonalBlocked, start); got != floors {
			t.Errorf("seed %d: reachable floor = %d, want %d\n%s", seed, got, floors, m)
		}
	}
}

func TestPlaceRoomsOnFloor_HallToEmptyCell(t *testing.T) {
	p := newPlan(t)
	p.AddRoom(geom.NewRect(0, 0, 1, 1), room.NewSquare(sizes(2, 4), sizes(2, 4)), floorplan.NewComponents())
	p.SetHall(geom.Loc{X: 0, Y: 0}, geom.East, room.NewAngledHall(sizes(1, 2), sizes(1, 2), 0), floorplan.NewComponents())
	size := p.Size()
	err := p.PlaceRoomsOnFloor(rng.New(1), floorplan.New(geom.NewRect(0, 0, size.X, size.Y)))
	if !fault.IsConfiguration(err) {
		t.Errorf("PlaceRoomsOnFloor(dangling hall) error = %v, want configuration error", err)
	}
}
