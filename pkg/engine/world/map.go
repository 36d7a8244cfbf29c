package world

import (
	"strings"

	"github.com/zyedidia/generic/mapset"

	"tilelayout/pkg/engine/geom"
)

// Tiled is the tile access layouts are drawn through.
type Tiled interface {
	Width() int
	Height() int
	Tile(loc geom.Loc) Tile
	SetTile(loc geom.Loc, t Tile)
	// TrySetTile sets the tile unless the current one is Impassable.
	TrySetTile(loc geom.Loc, t Tile) bool
	// TileBlocked reports whether loc can't be entered. With diagonal set it
	// reports whether loc prevents cutting a corner instead.
	TileBlocked(loc geom.Loc, diagonal bool) bool
	RoomTerrain() Tile
	WallTerrain() Tile
	TileEquivalent(a, b Tile) bool
}

// Map is a rectangular tile map with an entrance, exits and placed items.
type Map struct {
	width  int
	height int
	tiles  []Tile

	entrance    geom.Loc
	hasEntrance bool
	exits       []geom.Loc

	items    ItemSet
	blocking map[geom.Loc]*Item
}

// NewMap creates a map of the given size filled with walls.
func NewMap(width, height int) *Map {
	if width <= 0 || height <= 0 {
		panic("Map dimensions must be positive")
	}
	m := &Map{
		width:    width,
		height:   height,
		tiles:    make([]Tile, width*height),
		blocking: make(map[geom.Loc]*Item),
	}
	m.items = ItemSetOf()
	m.Fill(NewTile(Wall))
	return m
}

// ItemSetOf creates an item set holding the given items.
func ItemSetOf(items ...*Item) ItemSet {
	set := mapset.New[*Item]()
	for _, it := range items {
		set.Put(it)
	}
	return set
}

// Width returns the number of columns in the map
func (m *Map) Width() int {
	return m.width
}

// Height returns the number of rows in the map
func (m *Map) Height() int {
	return m.height
}

// Bounds returns the rectangle covered by the map.
func (m *Map) Bounds() geom.Rect {
	return geom.NewRect(0, 0, m.width, m.height)
}

// InBounds checks if a location is inside the map
func (m *Map) InBounds(loc geom.Loc) bool {
	return loc.X >= 0 && loc.X < m.width && loc.Y >= 0 && loc.Y < m.height
}

// IsOnPerimeter checks if a location is on the edge of the map
func (m *Map) IsOnPerimeter(loc geom.Loc) bool {
	return m.InBounds(loc) && (loc.X == 0 || loc.Y == 0 || loc.X == m.width-1 || loc.Y == m.height-1)
}

// Tile returns the tile at loc. Locations outside the map read as Impassable.
func (m *Map) Tile(loc geom.Loc) Tile {
	if !m.InBounds(loc) {
		return NewTile(Impassable)
	}
	return m.tiles[loc.Y*m.width+loc.X]
}

// SetTile overwrites the tile at loc. Out of bounds writes are ignored.
func (m *Map) SetTile(loc geom.Loc, t Tile) {
	if !m.InBounds(loc) {
		return
	}
	m.tiles[loc.Y*m.width+loc.X] = t
}

// TrySetTile sets the tile unless the location is out of bounds or Impassable.
func (m *Map) TrySetTile(loc geom.Loc, t Tile) bool {
	if !m.InBounds(loc) || m.Tile(loc).Terrain == Impassable {
		return false
	}
	m.SetTile(loc, t)
	return true
}

// TileBlocked reports whether loc is out of bounds, not walkable, or, unless
// diagonal is set, occupied by a blocking item. Items never block corners.
func (m *Map) TileBlocked(loc geom.Loc, diagonal bool) bool {
	if !m.InBounds(loc) || !m.Tile(loc).Terrain.Walkable() {
		return true
	}
	if diagonal {
		return false
	}
	_, found := m.blocking[loc]
	return found
}

// Blocked is TileBlocked(loc, false) as a predicate.
func (m *Map) Blocked(loc geom.Loc) bool {
	return m.TileBlocked(loc, false)
}

// DiagonalBlocked is TileBlocked(loc, true) as a predicate.
func (m *Map) DiagonalBlocked(loc geom.Loc) bool {
	return m.TileBlocked(loc, true)
}

// RoomTerrain returns the tile rooms are drawn with.
func (m *Map) RoomTerrain() Tile {
	return NewTile(Floor)
}

// WallTerrain returns the tile maps are initialised with.
func (m *Map) WallTerrain() Tile {
	return NewTile(Wall)
}

// TileEquivalent reports whether two tiles have the same terrain.
func (m *Map) TileEquivalent(a, b Tile) bool {
	return a.Equivalent(b)
}

// Fill sets every tile of the map.
func (m *Map) Fill(t Tile) {
	for i := range m.tiles {
		m.tiles[i] = t
	}
}

// ForEachTile iterates over all tiles, row by row.
func (m *Map) ForEachTile(fn func(loc geom.Loc, t Tile)) {
	for y := 0; y < m.height; y++ {
		for x := 0; x < m.width; x++ {
			fn(geom.Loc{X: x, Y: y}, m.tiles[y*m.width+x])
		}
	}
}

// CountTerrain returns the number of tiles with the given terrain.
func (m *Map) CountTerrain(t Terrain) int {
	n := 0
	for _, tile := range m.tiles {
		if tile.Terrain == t {
			n++
		}
	}
	return n
}

// Entrance returns the entrance location and whether one was set.
func (m *Map) Entrance() (geom.Loc, bool) {
	return m.entrance, m.hasEntrance
}

// SetEntrance sets the entrance. Returns false if loc is not walkable.
func (m *Map) SetEntrance(loc geom.Loc) bool {
	if m.TileBlocked(loc, true) {
		return false
	}
	m.entrance = loc
	m.hasEntrance = true
	return true
}

// Exits returns a copy of the exit locations.
func (m *Map) Exits() []geom.Loc {
	return append([]geom.Loc(nil), m.exits...)
}

// AddExit adds an exit. Returns false if loc is not walkable.
func (m *Map) AddExit(loc geom.Loc) bool {
	if m.TileBlocked(loc, true) {
		return false
	}
	m.exits = append(m.exits, loc)
	return true
}

// Items returns the set of placed items.
func (m *Map) Items() ItemSet {
	return m.items
}

// ItemAt returns the first item placed at loc, or nil.
func (m *Map) ItemAt(loc geom.Loc) *Item {
	var found *Item
	m.items.Each(func(it *Item) {
		if it.Loc == loc && (found == nil || it.Name < found.Name) {
			found = it
		}
	})
	return found
}

// PlaceItem puts an item on a walkable tile. Returns false if loc is blocked.
func (m *Map) PlaceItem(it *Item, loc geom.Loc) bool {
	if m.TileBlocked(loc, false) {
		return false
	}
	it.Loc = loc
	m.items.Put(it)
	if it.Blocking {
		m.blocking[loc] = it
	}
	return true
}

// Equal reports whether two maps have identical size and terrain.
func (m *Map) Equal(o *Map) bool {
	if m.width != o.width || m.height != o.height {
		return false
	}
	for i := range m.tiles {
		if !m.tiles[i].Equivalent(o.tiles[i]) {
			return false
		}
	}
	return true
}

// String renders the terrain as rows of '#' (wall), '.' (floor) and 'X' (impassable).
func (m *Map) String() string {
	var sb strings.Builder
	for y := 0; y < m.height; y++ {
		for x := 0; x < m.width; x++ {
			switch m.tiles[y*m.width+x].Terrain {
			case Floor:
				sb.WriteByte('.')
			case Impassable:
				sb.WriteByte('X')
			default:
				sb.WriteByte('#')
			}
		}
		sb.WriteByte('\n')
	}
	return sb.String()
}

// Validate checks the map for common issues and returns an error description or empty string if valid
func (m *Map) Validate() string {
	if m.width <= 0 || m.height <= 0 {
		return "Map has invalid dimensions"
	}

	if !m.hasEntrance {
		return "Map has no entrance"
	}

	if len(m.exits) == 0 {
		return "Map has no exit"
	}

	if m.TileBlocked(m.entrance, true) {
		return "Entrance is not walkable"
	}

	for _, exit := range m.exits {
		if m.TileBlocked(exit, true) {
			return "Exit is not walkable"
		}
	}

	return ""
}
