package room

import (
	"tilelayout/pkg/engine/fault"
	"tilelayout/pkg/engine/geom"
)

// Base holds the border state shared by every shape. Border arrays are indexed
// by direction, then by offset along the edge: west to east for North and South,
// north to south for East and West.
type Base struct {
	draw        geom.Rect
	fulfillable [geom.DirCount][]bool
	toFulfill   [geom.DirCount][]bool
	opened      [geom.DirCount][]bool
	sideReqs    [geom.DirCount]geom.RangeSet
}

// Border returns b itself so that shapes embedding Base satisfy Gen.
func (b *Base) Border() *Base {
	return b
}

func (b *Base) reset(size geom.Loc) {
	b.draw = geom.Rect{Start: b.draw.Start, Size: size}
	for _, dir := range geom.AllDirections() {
		n := b.draw.BorderLength(dir)
		b.fulfillable[dir] = make([]bool, n)
		b.toFulfill[dir] = make([]bool, n)
		b.opened[dir] = make([]bool, n)
		b.sideReqs[dir].Clear()
	}
}

// clone returns a deep copy of the border state.
func (b *Base) clone() Base {
	c := Base{draw: b.draw}
	for _, dir := range geom.AllDirections() {
		c.fulfillable[dir] = append([]bool(nil), b.fulfillable[dir]...)
		c.toFulfill[dir] = append([]bool(nil), b.toFulfill[dir]...)
		c.opened[dir] = append([]bool(nil), b.opened[dir]...)
		for _, r := range b.sideReqs[dir].Ranges() {
			c.sideReqs[dir].Add(r)
		}
	}
	return c
}

// Draw returns the rectangle the shape occupies.
func (b *Base) Draw() geom.Rect {
	return b.draw
}

// SetLoc moves the shape without changing its size.
func (b *Base) SetLoc(loc geom.Loc) {
	b.draw.Start = loc
}

func (b *Base) inBorder(dir geom.Dir4, i int) bool {
	return dir.IsValid() && i >= 0 && i < len(b.fulfillable[dir])
}

// Fulfillable reports whether the shape can open edge tile i facing dir.
func (b *Base) Fulfillable(dir geom.Dir4, i int) bool {
	return b.inBorder(dir, i) && b.fulfillable[dir][i]
}

// SetFulfillable marks edge tile i facing dir. Shapes call it from
// PrepareFulfillableBorders.
func (b *Base) SetFulfillable(dir geom.Dir4, i int, v bool) {
	if b.inBorder(dir, i) {
		b.fulfillable[dir][i] = v
	}
}

// FulfillableCount returns the number of fulfillable tiles facing dir.
func (b *Base) FulfillableCount(dir geom.Dir4) int {
	n := 0
	for _, v := range b.fulfillable[dir] {
		if v {
			n++
		}
	}
	return n
}

// ToFulfill reports whether a neighbor asked to connect at edge tile i facing dir.
func (b *Base) ToFulfill(dir geom.Dir4, i int) bool {
	return b.inBorder(dir, i) && b.toFulfill[dir][i]
}

// Opened reports whether edge tile i facing dir ended up walkable after drawing.
func (b *Base) Opened(dir geom.Dir4, i int) bool {
	return b.inBorder(dir, i) && b.opened[dir][i]
}

// SideReqs returns the side requirement ranges facing dir, in edge offsets.
func (b *Base) SideReqs(dir geom.Dir4) []geom.IntRange {
	return b.sideReqs[dir].Ranges()
}

// HasRequirements reports whether any side carries a requirement.
func (b *Base) HasRequirements() bool {
	for _, dir := range geom.AllDirections() {
		if b.sideReqs[dir].Len() > 0 {
			return true
		}
	}
	return false
}

// EdgeSpan returns the absolute coordinates covered by the edge facing dir.
func (b *Base) EdgeSpan(dir geom.Dir4) geom.IntRange {
	start := b.draw.EdgeStart(dir)
	return geom.IntRange{Min: start, Max: start + b.draw.BorderLength(dir)}
}

// Overlap returns the absolute span along which b's edge facing dir touches
// other's opposite edge. It fails if the shapes do not abut on that side.
func (b *Base) Overlap(other *Base, dir geom.Dir4) (geom.IntRange, error) {
	if b.draw.Side(dir) != other.draw.Side(dir.Opposite()) {
		return geom.IntRange{}, fault.Configf("%v and %v do not abut facing %v", b.draw, other.draw, dir)
	}
	span := b.EdgeSpan(dir).Intersect(other.EdgeSpan(dir.Opposite()))
	if span.Empty() {
		return span, fault.Configf("%v and %v share no edge facing %v", b.draw, other.draw, dir)
	}
	return span, nil
}

// ReceiveOpenedBorder copies the tiles other opened on its edge touching b's
// edge facing dir, and requires at least one of them to open on b's side.
func (b *Base) ReceiveOpenedBorder(other *Base, dir geom.Dir4) error {
	return b.receiveBorder(other, dir, other.opened[dir.Opposite()])
}

// ReceiveFulfillableBorder is ReceiveOpenedBorder for a neighbor that has not
// been drawn yet: it transfers the tiles the neighbor is able to open.
func (b *Base) ReceiveFulfillableBorder(other *Base, dir geom.Dir4) error {
	return b.receiveBorder(other, dir, other.fulfillable[dir.Opposite()])
}

func (b *Base) receiveBorder(other *Base, dir geom.Dir4, source []bool) error {
	span, err := b.Overlap(other, dir)
	if err != nil {
		return err
	}
	otherStart := other.draw.EdgeStart(dir.Opposite())
	ownStart := b.draw.EdgeStart(dir)

	first, last := -1, -1
	usable := false
	for k := span.Min; k < span.Max; k++ {
		if !source[k-otherStart] {
			continue
		}
		i := k - ownStart
		b.toFulfill[dir][i] = true
		if first < 0 {
			first = i
		}
		last = i
		usable = usable || b.fulfillable[dir][i]
	}
	if first < 0 {
		return fault.Configf("%v offers no border tiles to %v facing %v", other.draw, b.draw, dir)
	}
	if !usable {
		return fault.Configf("%v cannot open any tile %v offers facing %v", b.draw, other.draw, dir)
	}
	b.sideReqs[dir].Add(geom.IntRange{Min: first, Max: last + 1})
	return nil
}

// ReceiveBorderRange requires at least one tile in the given edge offsets facing
// dir to open, marking all fulfillable tiles in it as requested.
func (b *Base) ReceiveBorderRange(r geom.IntRange, dir geom.Dir4) error {
	if !dir.IsValid() {
		return fault.Configf("invalid direction %v", dir)
	}
	r = r.Intersect(geom.IntRange{Min: 0, Max: len(b.fulfillable[dir])})
	found := false
	for i := r.Min; i < r.Max; i++ {
		if b.fulfillable[dir][i] {
			b.toFulfill[dir][i] = true
			found = true
		}
	}
	if !found {
		return fault.Configf("%v has no fulfillable tiles in %v facing %v", b.draw, r, dir)
	}
	b.sideReqs[dir].Add(r)
	return nil
}

// BorderMatch counts the positions where b's edge facing dir and other's
// opposite edge touch and both can open. Non-abutting shapes score zero.
func (b *Base) BorderMatch(other *Base, dir geom.Dir4) int {
	span, err := b.Overlap(other, dir)
	if err != nil {
		return 0
	}
	ownStart := b.draw.EdgeStart(dir)
	otherStart := other.draw.EdgeStart(dir.Opposite())
	n := 0
	for k := span.Min; k < span.Max; k++ {
		if b.fulfillable[dir][k-ownStart] && other.fulfillable[dir.Opposite()][k-otherStart] {
			n++
		}
	}
	return n
}

// inwardLoc returns the tile depth steps inside the shape from edge tile i facing dir.
func (b *Base) inwardLoc(dir geom.Dir4, i, depth int) geom.Loc {
	return b.draw.EdgeLoc(dir, i).Add(dir.Opposite().Delta().Scale(depth))
}
