// Package room implements room and hall shapes and the border negotiation by
// which neighboring shapes agree on the tiles that connect them.
//
// A shape goes through a fixed lifecycle: its size is proposed and prepared,
// it is moved into place, zero or more neighbors hand it border requirements,
// and finally it is drawn. After drawing, SetRoomBorders records which edge
// tiles actually ended up open so that undrawn neighbors can read them.
package room

import (
	"tilelayout/pkg/engine/fault"
	"tilelayout/pkg/engine/geom"
	"tilelayout/pkg/engine/rng"
	"tilelayout/pkg/engine/world"
)

// Gen is a room or hall shape.
type Gen interface {
	// Kind names the shape, as used in configuration.
	Kind() string
	// Copy returns an independent copy of the shape, border state included.
	Copy() Gen
	// ProposeSize picks a random size for the shape.
	ProposeSize(r rng.Random) geom.Loc
	// PrepareFulfillableBorders marks the edge tiles the shape is able to open.
	// It runs on freshly reset border state sized to the prepared size.
	PrepareFulfillableBorders(r rng.Random)
	// DrawOnMap commits the shape's tiles inside Draw().
	DrawOnMap(m world.Tiled, r rng.Random) error
	// Border returns the shape's border state.
	Border() *Base
}

// Permissive is implemented by shapes that accept any combination of incoming
// connections. Halls are permissive.
type Permissive interface {
	Gen
	permissive()
}

// IsPermissive reports whether g is a permissive shape.
func IsPermissive(g Gen) bool {
	_, ok := g.(Permissive)
	return ok
}

// PrepareSize sizes the shape at the origin and prepares its fulfillable
// borders. Every side must end up with at least one fulfillable tile.
func PrepareSize(g Gen, r rng.Random, size geom.Loc) error {
	if size.X <= 0 || size.Y <= 0 {
		return fault.Configf("%s: invalid size %v", g.Kind(), size)
	}
	b := g.Border()
	b.reset(size)
	g.PrepareFulfillableBorders(r)
	for _, dir := range geom.AllDirections() {
		if b.FulfillableCount(dir) == 0 {
			return fault.Configf("%s %v: no fulfillable tiles facing %v", g.Kind(), size, dir)
		}
	}
	return nil
}

// Propose proposes and prepares a size in one call.
func Propose(g Gen, r rng.Random) error {
	return PrepareSize(g, r, g.ProposeSize(r))
}

// Place moves a prepared shape so its top-left corner is at loc.
func Place(g Gen, loc geom.Loc) {
	g.Border().SetLoc(loc)
}

// Draw runs the shape's DrawOnMap and records its opened borders.
func Draw(g Gen, m world.Tiled, r rng.Random) error {
	if err := g.DrawOnMap(m, r); err != nil {
		return err
	}
	SetRoomBorders(g.Border(), m)
	return nil
}

// SetRoomBorders marks every fulfillable edge tile that can be walked on as opened.
func SetRoomBorders(b *Base, m world.Tiled) {
	for _, dir := range geom.AllDirections() {
		for i := range b.opened[dir] {
			loc := b.draw.EdgeLoc(dir, i)
			b.opened[dir][i] = b.fulfillable[dir][i] && !m.TileBlocked(loc, false)
		}
	}
}

// FillRect sets every tile of rect to room terrain.
func FillRect(m world.Tiled, rect geom.Rect) {
	for y := rect.Top(); y < rect.Bottom(); y++ {
		for x := rect.Left(); x < rect.Right(); x++ {
			m.TrySetTile(geom.Loc{X: x, Y: y}, m.RoomTerrain())
		}
	}
}

// sizeIn picks a size with each dimension drawn from its half-open range.
func sizeIn(r rng.Random, width, height geom.IntRange) geom.Loc {
	return geom.Loc{X: r.NextRange(width.Min, width.Max), Y: r.NextRange(height.Min, height.Max)}
}
