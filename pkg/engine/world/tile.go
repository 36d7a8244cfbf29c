// Package world provides the tile context layouts are drawn onto: terrain,
// tiles, the tile map, and spawnable items.
package world

// Terrain is the ground type of a tile.
type Terrain int

const (
	Wall Terrain = iota
	Floor
	// Impassable marks map edges and other tiles no step may ever dig out.
	Impassable
)

func (t Terrain) String() string {
	switch t {
	case Wall:
		return "Wall"
	case Floor:
		return "Floor"
	case Impassable:
		return "Impassable"
	default:
		return "Unknown"
	}
}

// Walkable reports whether the terrain can be stood on.
func (t Terrain) Walkable() bool {
	return t == Floor
}

// Tile is a single map tile.
type Tile struct {
	Terrain Terrain
	// Owner is the plan entry that last drew this tile, or NoOwner.
	Owner int
}

// NoOwner marks tiles drawn by no plan entry.
const NoOwner = -1

// NewTile creates an unowned tile of the given terrain.
func NewTile(t Terrain) Tile {
	return Tile{Terrain: t, Owner: NoOwner}
}

// Equivalent reports whether two tiles have the same terrain. Ownership is ignored.
func (t Tile) Equivalent(o Tile) bool {
	return t.Terrain == o.Terrain
}
