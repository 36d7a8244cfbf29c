package world

import (
	"testing"

	"tilelayout/pkg/engine/geom"
)

func TestNewMapIsWalls(t *testing.T) {
	m := NewMap(4, 3)
	if got := m.CountTerrain(Wall); got != 12 {
		t.Errorf("CountTerrain(Wall) = %d, want 12", got)
	}
	if !m.Bounds().Contains(geom.Loc{X: 3, Y: 2}) {
		t.Errorf("Bounds() does not contain the last tile")
	}
}

func TestTileOutOfBounds(t *testing.T) {
	m := NewMap(2, 2)
	if got := m.Tile(geom.Loc{X: -1, Y: 0}).Terrain; got != Impassable {
		t.Errorf("Tile(-1,0) = %v, want Impassable", got)
	}
	m.SetTile(geom.Loc{X: 5, Y: 5}, NewTile(Floor))
	if got := m.CountTerrain(Floor); got != 0 {
		t.Errorf("out of bounds SetTile wrote %d tiles", got)
	}
}

func TestTrySetTile(t *testing.T) {
	m := NewMap(3, 3)
	edge := geom.Loc{X: 0, Y: 0}
	m.SetTile(edge, NewTile(Impassable))

	if m.TrySetTile(edge, NewTile(Floor)) {
		t.Errorf("TrySetTile on Impassable = true, want false")
	}
	if !m.TrySetTile(geom.Loc{X: 1, Y: 1}, NewTile(Floor)) {
		t.Errorf("TrySetTile on Wall = false, want true")
	}
	if m.TrySetTile(geom.Loc{X: 3, Y: 1}, NewTile(Floor)) {
		t.Errorf("TrySetTile out of bounds = true, want false")
	}
}

func TestTileBlocked(t *testing.T) {
	m := NewMap(3, 1)
	for x := 0; x < 3; x++ {
		m.SetTile(geom.Loc{X: x, Y: 0}, NewTile(Floor))
	}
	crate := &Item{Name: "crate", Blocking: true}
	coin := NewItem("coin")
	if !m.PlaceItem(crate, geom.Loc{X: 1, Y: 0}) || !m.PlaceItem(coin, geom.Loc{X: 2, Y: 0}) {
		t.Fatalf("PlaceItem failed on floor")
	}

	tests := []struct {
		loc      geom.Loc
		diagonal bool
		want     bool
	}{
		{geom.Loc{X: 0, Y: 0}, false, false},
		{geom.Loc{X: 1, Y: 0}, false, true},
		{geom.Loc{X: 1, Y: 0}, true, false},
		{geom.Loc{X: 2, Y: 0}, false, false},
		{geom.Loc{X: 3, Y: 0}, true, true},
	}
	for _, tt := range tests {
		if got := m.TileBlocked(tt.loc, tt.diagonal); got != tt.want {
			t.Errorf("TileBlocked(%v, %v) = %v, want %v", tt.loc, tt.diagonal, got, tt.want)
		}
	}

	if m.PlaceItem(NewItem("gem"), geom.Loc{X: 1, Y: 0}) {
		t.Errorf("PlaceItem on a blocking item = true, want false")
	}
	if got := m.ItemAt(geom.Loc{X: 2, Y: 0}); got != coin {
		t.Errorf("ItemAt(2,0) = %v, want coin", got)
	}
	if got := m.Items().Size(); got != 2 {
		t.Errorf("Items().Size() = %d, want 2", got)
	}
}

func TestEntranceAndExits(t *testing.T) {
	m := NewMap(3, 3)
	if m.SetEntrance(geom.Loc{X: 1, Y: 1}) {
		t.Errorf("SetEntrance on a wall = true, want false")
	}
	if got := m.Validate(); got != "Map has no entrance" {
		t.Errorf("Validate() = %q, want no entrance", got)
	}

	m.SetTile(geom.Loc{X: 1, Y: 1}, NewTile(Floor))
	m.SetTile(geom.Loc{X: 2, Y: 1}, NewTile(Floor))
	if !m.SetEntrance(geom.Loc{X: 1, Y: 1}) {
		t.Fatalf("SetEntrance on floor = false")
	}
	if got := m.Validate(); got != "Map has no exit" {
		t.Errorf("Validate() = %q, want no exit", got)
	}
	if !m.AddExit(geom.Loc{X: 2, Y: 1}) {
		t.Fatalf("AddExit on floor = false")
	}
	if got := m.Validate(); got != "" {
		t.Errorf("Validate() = %q, want valid", got)
	}

	exits := m.Exits()
	exits[0] = geom.Loc{}
	if m.Exits()[0] != (geom.Loc{X: 2, Y: 1}) {
		t.Errorf("Exits() returned the internal slice")
	}
}

func TestMapString(t *testing.T) {
	m := NewMap(3, 2)
	m.SetTile(geom.Loc{X: 1, Y: 0}, NewTile(Floor))
	m.SetTile(geom.Loc{X: 2, Y: 1}, NewTile(Impassable))
	if got, want := m.String(), "#.#\n##X\n"; got != want {
		t.Errorf("String() = %q, want %q", got, want)
	}
}

func TestEqualIgnoresOwner(t *testing.T) {
	a, b := NewMap(2, 2), NewMap(2, 2)
	a.SetTile(geom.Loc{X: 0, Y: 0}, Tile{Terrain: Floor, Owner: 3})
	b.SetTile(geom.Loc{X: 0, Y: 0}, NewTile(Floor))
	if !a.Equal(b) {
		t.Errorf("Equal() = false for maps differing only in owner")
	}
	if a.Equal(NewMap(2, 3)) {
		t.Errorf("Equal() = true for maps of different size")
	}
}

func TestItemCopy(t *testing.T) {
	it := &Item{Name: "key", Tags: []string{"quest"}}
	c := it.Copy()
	c.Tags[0] = "junk"
	if it.Tags[0] != "quest" {
		t.Errorf("Copy() shares tags with the original")
	}
}
