// Package floorplan holds the free-form registry of rooms and halls, their
// adjacency graph, and the collision queries used to place new entries.
package floorplan

import (
	"fmt"

	"github.com/pkg/errors"

	"tilelayout/pkg/engine/fault"
	"tilelayout/pkg/engine/geom"
	"tilelayout/pkg/engine/rng"
	"tilelayout/pkg/engine/world"
	"tilelayout/pkg/layout/room"
)

// RoomHallIndex identifies a room or hall in a FloorPlan. It stays valid until
// the plan is cleared.
type RoomHallIndex struct {
	Index  int
	IsHall bool
}

func (i RoomHallIndex) String() string {
	if i.IsHall {
		return fmt.Sprintf("hall#%d", i.Index)
	}
	return fmt.Sprintf("room#%d", i.Index)
}

// Entry is one room or hall with its tags and neighbors.
type Entry struct {
	Gen        room.Gen
	Components Components
	Adjacents  []RoomHallIndex
}

// Draw returns the entry's rectangle.
func (e *Entry) Draw() geom.Rect {
	return e.Gen.Border().Draw()
}

// FloorPlan is an ordered registry of rooms and halls inside a drawing rectangle.
type FloorPlan struct {
	bounds geom.Rect
	rooms  []*Entry
	halls  []*Entry
}

// New creates an empty plan covering bounds.
func New(bounds geom.Rect) *FloorPlan {
	return &FloorPlan{bounds: bounds}
}

// Bounds returns the rectangle every entry must lie in.
func (p *FloorPlan) Bounds() geom.Rect {
	return p.bounds
}

// Clear removes every entry. Existing indices become invalid.
func (p *FloorPlan) Clear() {
	p.rooms = nil
	p.halls = nil
}

// RoomCount returns the number of rooms
func (p *FloorPlan) RoomCount() int {
	return len(p.rooms)
}

// HallCount returns the number of halls
func (p *FloorPlan) HallCount() int {
	return len(p.halls)
}

// Len returns the number of rooms and halls.
func (p *FloorPlan) Len() int {
	return len(p.rooms) + len(p.halls)
}

// Get returns the entry at idx, or nil if there is none.
func (p *FloorPlan) Get(idx RoomHallIndex) *Entry {
	list := p.rooms
	if idx.IsHall {
		list = p.halls
	}
	if idx.Index < 0 || idx.Index >= len(list) {
		return nil
	}
	return list[idx.Index]
}

// Entries returns the indices of all rooms followed by all halls.
func (p *FloorPlan) Entries() []RoomHallIndex {
	out := make([]RoomHallIndex, 0, p.Len())
	for i := range p.rooms {
		out = append(out, RoomHallIndex{Index: i})
	}
	for i := range p.halls {
		out = append(out, RoomHallIndex{Index: i, IsHall: true})
	}
	return out
}

// Adjacents returns the neighbors of idx.
func (p *FloorPlan) Adjacents(idx RoomHallIndex) []RoomHallIndex {
	e := p.Get(idx)
	if e == nil {
		return nil
	}
	return append([]RoomHallIndex(nil), e.Adjacents...)
}

// CoveredArea returns the summed area of every entry's rectangle.
func (p *FloorPlan) CoveredArea() int {
	area := 0
	for _, idx := range p.Entries() {
		area += p.Get(idx).Draw().Area()
	}
	return area
}

// AddRoom appends a placed room, attaching it to the given neighbors.
func (p *FloorPlan) AddRoom(gen room.Gen, comps Components, attached ...RoomHallIndex) (RoomHallIndex, error) {
	return p.add(false, gen, comps, attached)
}

// AddHall appends a placed hall, attaching it to the given neighbors.
func (p *FloorPlan) AddHall(gen room.Gen, comps Components, attached ...RoomHallIndex) (RoomHallIndex, error) {
	return p.add(true, gen, comps, attached)
}

func (p *FloorPlan) add(hall bool, gen room.Gen, comps Components, attached []RoomHallIndex) (RoomHallIndex, error) {
	rect := gen.Border().Draw()
	if rect.Empty() {
		return RoomHallIndex{}, fault.Configf("%s was not prepared before being added", gen.Kind())
	}
	if !p.bounds.ContainsRect(rect) {
		return RoomHallIndex{}, fault.Configf("%s %v lies outside plan bounds %v", gen.Kind(), rect, p.bounds)
	}
	if hits := p.CheckCollision(rect); len(hits) > 0 {
		return RoomHallIndex{}, fault.Configf("%s %v collides with %v", gen.Kind(), rect, hits[0])
	}
	for _, idx := range attached {
		other := p.Get(idx)
		if other == nil {
			return RoomHallIndex{}, fault.Configf("attached entry %v does not exist", idx)
		}
		dir, ok := Facing(rect, other.Draw())
		if !ok {
			return RoomHallIndex{}, fault.Configf("%s %v does not abut %v %v", gen.Kind(), rect, idx, other.Draw())
		}
		if gen.Border().BorderMatch(other.Gen.Border(), dir) == 0 {
			return RoomHallIndex{}, fault.Configf("%s %v cannot connect to %v facing %v", gen.Kind(), rect, idx, dir)
		}
	}

	entry := &Entry{Gen: gen, Components: comps.Copy()}
	var idx RoomHallIndex
	if hall {
		idx = RoomHallIndex{Index: len(p.halls), IsHall: true}
		p.halls = append(p.halls, entry)
	} else {
		idx = RoomHallIndex{Index: len(p.rooms)}
		p.rooms = append(p.rooms, entry)
	}
	for _, other := range attached {
		entry.Adjacents = append(entry.Adjacents, other)
		o := p.Get(other)
		o.Adjacents = append(o.Adjacents, idx)
	}
	return idx, nil
}

// CheckCollision returns every entry whose rectangle shares a tile with rect.
func (p *FloorPlan) CheckCollision(rect geom.Rect) []RoomHallIndex {
	var hits []RoomHallIndex
	for _, idx := range p.Entries() {
		if p.Get(idx).Draw().Intersects(rect) {
			hits = append(hits, idx)
		}
	}
	return hits
}

// Facing returns the side of a that touches b along a non-empty edge.
func Facing(a, b geom.Rect) (geom.Dir4, bool) {
	for _, dir := range geom.AllDirections() {
		if a.Side(dir) != b.Side(dir.Opposite()) {
			continue
		}
		along := dir.Axis().Orth()
		lo := max(a.Start.Get(along), b.Start.Get(along))
		hi := min(a.End().Get(along), b.End().Get(along))
		if lo < hi {
			return dir, true
		}
	}
	return 0, false
}

// GetBorderMatch scores how well gen placed at loc would connect to from, with
// gen lying in direction dir of from. Zero means the two cannot connect.
func GetBorderMatch(from, gen room.Gen, loc geom.Loc, dir geom.Dir4) int {
	b := gen.Border()
	prev := b.Draw().Start
	b.SetLoc(loc)
	defer b.SetLoc(prev)
	return b.BorderMatch(from.Border(), dir.Opposite())
}

// DrawOnMap draws rooms and then halls in index order. Before drawing, each
// entry receives the opened border of every neighbor already drawn and the
// fulfillable border of every neighbor still to come.
func (p *FloorPlan) DrawOnMap(m world.Tiled, r rng.Random) error {
	drawn := make(map[RoomHallIndex]bool, p.Len())
	for _, idx := range p.Entries() {
		e := p.Get(idx)
		b := e.Gen.Border()
		for _, adj := range e.Adjacents {
			other := p.Get(adj)
			dir, ok := Facing(e.Draw(), other.Draw())
			if !ok {
				return fault.Configf("%v and %v are adjacent but do not abut", idx, adj)
			}
			var err error
			if drawn[adj] {
				err = b.ReceiveOpenedBorder(other.Gen.Border(), dir)
			} else {
				err = b.ReceiveFulfillableBorder(other.Gen.Border(), dir)
			}
			if err != nil {
				return errors.Wrapf(err, "%v from %v", idx, adj)
			}
		}
		if err := room.Draw(e.Gen, m, r); err != nil {
			return errors.Wrapf(err, "drawing %v", idx)
		}
		for _, loc := range rectLocs(e.Draw()) {
			if t := m.Tile(loc); !m.TileBlocked(loc, true) {
				t.Owner = ownerID(idx, p.RoomCount())
				m.SetTile(loc, t)
			}
		}
		drawn[idx] = true
	}
	return nil
}

// ownerID numbers rooms first, then halls, matching Entries order.
func ownerID(idx RoomHallIndex, rooms int) int {
	if idx.IsHall {
		return rooms + idx.Index
	}
	return idx.Index
}

// EntryAt maps a tile owner back to the plan entry that drew it.
func (p *FloorPlan) EntryAt(owner int) (RoomHallIndex, bool) {
	if owner < 0 || owner >= p.Len() {
		return RoomHallIndex{}, false
	}
	if owner < len(p.rooms) {
		return RoomHallIndex{Index: owner}, true
	}
	return RoomHallIndex{Index: owner - len(p.rooms), IsHall: true}, true
}

func rectLocs(rect geom.Rect) []geom.Loc {
	locs := make([]geom.Loc, 0, rect.Area())
	for y := rect.Top(); y < rect.Bottom(); y++ {
		for x := rect.Left(); x < rect.Right(); x++ {
			locs = append(locs, geom.Loc{X: x, Y: y})
		}
	}
	return locs
}
