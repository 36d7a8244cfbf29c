package room

import (
	"tilelayout/pkg/engine/fault"
	"tilelayout/pkg/engine/geom"
	"tilelayout/pkg/engine/rng"
	"tilelayout/pkg/engine/world"
)

// FulfillRoomBorders satisfies every side requirement of a strict shape that has
// already drawn its interior. For each requirement not yet met, a requested
// fulfillable edge tile is chosen and dug inward until it reaches open floor.
// A side without requirements must still end up with one open tile.
func FulfillRoomBorders(b *Base, m world.Tiled, r rng.Random) error {
	for _, dir := range geom.AllDirections() {
		reqs := b.sideReqs[dir].Ranges()
		requested := len(reqs) > 0
		if !requested {
			reqs = []geom.IntRange{{Min: 0, Max: len(b.fulfillable[dir])}}
		}
		for _, req := range reqs {
			if b.requirementMet(m, dir, req, requested) {
				continue
			}
			candidates := b.candidates(dir, req, true)
			if len(candidates) == 0 {
				candidates = b.candidates(dir, req, false)
			}
			if len(candidates) == 0 {
				return fault.Configf("%v has no fulfillable tiles in %v facing %v", b.draw, req, dir)
			}
			i := candidates[r.NextN(len(candidates))]
			if err := b.digInward(m, dir, i); err != nil {
				return err
			}
		}
	}
	return nil
}

// requirementMet reports whether a fulfillable tile in req is already open,
// counting only requested tiles when requested is set.
func (b *Base) requirementMet(m world.Tiled, dir geom.Dir4, req geom.IntRange, requested bool) bool {
	for i := req.Min; i < req.Max; i++ {
		if requested && !b.toFulfill[dir][i] {
			continue
		}
		if b.fulfillable[dir][i] && !m.TileBlocked(b.draw.EdgeLoc(dir, i), false) {
			return true
		}
	}
	return false
}

// candidates lists the fulfillable offsets in req, limited to requested ones
// when requested is set.
func (b *Base) candidates(dir geom.Dir4, req geom.IntRange, requested bool) []int {
	var out []int
	for i := req.Min; i < req.Max; i++ {
		if b.fulfillable[dir][i] && (!requested || b.toFulfill[dir][i]) {
			out = append(out, i)
		}
	}
	return out
}

// digInward opens tiles from edge tile i facing dir towards the opposite side
// until it meets walkable floor. Running through the whole shape is an error.
func (b *Base) digInward(m world.Tiled, dir geom.Dir4, i int) error {
	depth := b.draw.Depth(dir)
	for d := 0; d < depth; d++ {
		loc := b.inwardLoc(dir, i, d)
		if !m.TileBlocked(loc, false) {
			return nil
		}
		m.TrySetTile(loc, m.RoomTerrain())
	}
	return fault.Configf("%v: digging from %v offset %d found no floor", b.draw, dir, i)
}

// Square fills its whole rectangle.
type Square struct {
	Base
	Width  geom.IntRange
	Height geom.IntRange
}

// NewSquare creates a rectangular room with sizes drawn from the given ranges.
func NewSquare(width, height geom.IntRange) *Square {
	return &Square{Width: width, Height: height}
}

func (s *Square) Kind() string { return "square" }

func (s *Square) Copy() Gen {
	return &Square{Base: s.Base.clone(), Width: s.Width, Height: s.Height}
}

func (s *Square) ProposeSize(r rng.Random) geom.Loc {
	return sizeIn(r, s.Width, s.Height)
}

func (s *Square) PrepareFulfillableBorders(rng.Random) {
	for _, dir := range geom.AllDirections() {
		for i := range s.fulfillable[dir] {
			s.fulfillable[dir][i] = true
		}
	}
}

func (s *Square) DrawOnMap(m world.Tiled, r rng.Random) error {
	FillRect(m, s.draw)
	return FulfillRoomBorders(&s.Base, m, r)
}

// Cross draws a plus sign: one horizontal and one vertical bar crossing.
// Only the ends of the bars can be opened.
type Cross struct {
	Base
	Width    geom.IntRange
	Height   geom.IntRange
	BarWidth geom.IntRange

	// bar extents along x (vertical bar) and y (horizontal bar), chosen at preparation
	barX geom.IntRange
	barY geom.IntRange
}

// NewCross creates a cross-shaped room.
func NewCross(width, height, barWidth geom.IntRange) *Cross {
	return &Cross{Width: width, Height: height, BarWidth: barWidth}
}

func (c *Cross) Kind() string { return "cross" }

func (c *Cross) Copy() Gen {
	return &Cross{Base: c.Base.clone(), Width: c.Width, Height: c.Height, BarWidth: c.BarWidth, barX: c.barX, barY: c.barY}
}

func (c *Cross) ProposeSize(r rng.Random) geom.Loc {
	return sizeIn(r, c.Width, c.Height)
}

func (c *Cross) PrepareFulfillableBorders(r rng.Random) {
	size := c.draw.Size
	c.barX = bar(r, c.BarWidth, size.X)
	c.barY = bar(r, c.BarWidth, size.Y)
	for _, dir := range geom.AllDirections() {
		span := c.barX
		if dir.Axis() == geom.Horizontal {
			span = c.barY
		}
		for i := span.Min; i < span.Max; i++ {
			c.fulfillable[dir][i] = true
		}
	}
}

// bar picks a random bar of width from widths placed randomly inside length.
func bar(r rng.Random, widths geom.IntRange, length int) geom.IntRange {
	w := min(max(r.NextRange(widths.Min, widths.Max), 1), length)
	start := r.NextN(length - w + 1)
	return geom.IntRange{Min: start, Max: start + w}
}

func (c *Cross) DrawOnMap(m world.Tiled, r rng.Random) error {
	d := c.draw
	FillRect(m, geom.NewRect(d.Left()+c.barX.Min, d.Top(), c.barX.Length(), d.Height()))
	FillRect(m, geom.NewRect(d.Left(), d.Top()+c.barY.Min, d.Width(), c.barY.Length()))
	return FulfillRoomBorders(&c.Base, m, r)
}

// Round fills its rectangle except for the corners, clipped diagonally.
type Round struct {
	Base
	Width  geom.IntRange
	Height geom.IntRange
}

// NewRound creates a room with cut corners.
func NewRound(width, height geom.IntRange) *Round {
	return &Round{Width: width, Height: height}
}

func (o *Round) Kind() string { return "round" }

func (o *Round) Copy() Gen {
	return &Round{Base: o.Base.clone(), Width: o.Width, Height: o.Height}
}

func (o *Round) ProposeSize(r rng.Random) geom.Loc {
	return sizeIn(r, o.Width, o.Height)
}

// cut returns how many tiles are clipped from each corner along both edges.
func (o *Round) cut() int {
	return (min(o.draw.Width(), o.draw.Height()) - 1) / 3
}

func (o *Round) PrepareFulfillableBorders(rng.Random) {
	cut := o.cut()
	for _, dir := range geom.AllDirections() {
		n := len(o.fulfillable[dir])
		for i := cut; i < n-cut; i++ {
			o.fulfillable[dir][i] = true
		}
	}
}

func (o *Round) DrawOnMap(m world.Tiled, r rng.Random) error {
	cut := o.cut()
	d := o.draw
	for y := 0; y < d.Height(); y++ {
		dy := max(cut-y, y-(d.Height()-1-cut), 0)
		for x := 0; x < d.Width(); x++ {
			dx := max(cut-x, x-(d.Width()-1-cut), 0)
			if dx+dy <= cut {
				m.TrySetTile(geom.Loc{X: d.Left() + x, Y: d.Top() + y}, m.RoomTerrain())
			}
		}
	}
	return FulfillRoomBorders(&o.Base, m, r)
}
