// Package gridplan holds a coarse layout where rooms occupy cells of a fixed
// grid and halls occupy the walls between neighboring cells.
package gridplan

import (
	"github.com/pkg/errors"

	"tilelayout/pkg/engine/fault"
	"tilelayout/pkg/engine/geom"
	"tilelayout/pkg/engine/rng"
	"tilelayout/pkg/layout/floorplan"
	"tilelayout/pkg/layout/room"
)

// NoRoom marks a cell without a room.
const NoRoom = -1

// Room is a room spanning a rectangle of cells.
type Room struct {
	Gen        room.Gen
	Cells      geom.Rect
	Components floorplan.Components
}

// Hall is a hall spanning the wall between two neighboring cells.
type Hall struct {
	Gen        room.Gen
	Components floorplan.Components
}

// GridPlan is a grid of cols x rows cells, each cellWidth x cellHeight tiles,
// separated and surrounded by walls cellWall tiles thick.
type GridPlan struct {
	cols, rows int
	cellWidth  int
	cellHeight int
	cellWall   int
	rooms      []*Room
	cells      [][]int   // [x][y] room index
	eastHalls  [][]*Hall // [x][y] hall between (x,y) and (x+1,y)
	southHalls [][]*Hall // [x][y] hall between (x,y) and (x,y+1)
}

// New creates an empty grid plan.
func New(cols, rows, cellWidth, cellHeight, cellWall int) (*GridPlan, error) {
	if cols <= 0 || rows <= 0 || cellWidth <= 0 || cellHeight <= 0 || cellWall <= 0 {
		return nil, fault.Configf("invalid grid %dx%d of %dx%d cells with wall %d", cols, rows, cellWidth, cellHeight, cellWall)
	}
	p := &GridPlan{cols: cols, rows: rows, cellWidth: cellWidth, cellHeight: cellHeight, cellWall: cellWall}
	p.Clear()
	return p, nil
}

// Cols returns the number of cell columns
func (p *GridPlan) Cols() int { return p.cols }

// Rows returns the number of cell rows
func (p *GridPlan) Rows() int { return p.rows }

// Size returns the tile size needed to draw the plan.
func (p *GridPlan) Size() geom.Loc {
	return geom.Loc{
		X: p.cols*(p.cellWidth+p.cellWall) + p.cellWall,
		Y: p.rows*(p.cellHeight+p.cellWall) + p.cellWall,
	}
}

// Bounds returns the cell rectangle of the whole grid.
func (p *GridPlan) Bounds() geom.Rect {
	return geom.NewRect(0, 0, p.cols, p.rows)
}

// Clear removes every room and hall.
func (p *GridPlan) Clear() {
	p.rooms = nil
	p.cells = make([][]int, p.cols)
	p.eastHalls = make([][]*Hall, p.cols)
	p.southHalls = make([][]*Hall, p.cols)
	for x := 0; x < p.cols; x++ {
		p.cells[x] = make([]int, p.rows)
		for y := range p.cells[x] {
			p.cells[x][y] = NoRoom
		}
		p.eastHalls[x] = make([]*Hall, p.rows)
		p.southHalls[x] = make([]*Hall, p.rows)
	}
}

// RoomCount returns the number of rooms
func (p *GridPlan) RoomCount() int {
	return len(p.rooms)
}

// GetRoom returns room i, or nil.
func (p *GridPlan) GetRoom(i int) *Room {
	if i < 0 || i >= len(p.rooms) {
		return nil
	}
	return p.rooms[i]
}

// RoomAt returns the index of the room covering a cell, or NoRoom.
func (p *GridPlan) RoomAt(cell geom.Loc) int {
	if !p.Bounds().Contains(cell) {
		return NoRoom
	}
	return p.cells[cell.X][cell.Y]
}

// CheckCollision returns the rooms covering any cell of cells, in index order.
func (p *GridPlan) CheckCollision(cells geom.Rect) []int {
	seen := make(map[int]bool)
	var hits []int
	for i := range p.rooms {
		if p.rooms[i].Cells.Intersects(cells) && !seen[i] {
			seen[i] = true
			hits = append(hits, i)
		}
	}
	return hits
}

// AddRoom places a room over a rectangle of free cells.
func (p *GridPlan) AddRoom(cells geom.Rect, gen room.Gen, comps floorplan.Components) (int, error) {
	if cells.Empty() || !p.Bounds().ContainsRect(cells) {
		return NoRoom, fault.Configf("room cells %v outside grid %v", cells, p.Bounds())
	}
	if hits := p.CheckCollision(cells); len(hits) > 0 {
		return NoRoom, fault.Configf("room cells %v overlap room %d", cells, hits[0])
	}
	idx := len(p.rooms)
	p.rooms = append(p.rooms, &Room{Gen: gen, Cells: cells, Components: comps.Copy()})
	for x := cells.Left(); x < cells.Right(); x++ {
		for y := cells.Top(); y < cells.Bottom(); y++ {
			p.cells[x][y] = idx
		}
	}
	return idx, nil
}

// hallSlot returns the storage for the hall leaving cell in dir.
func (p *GridPlan) hallSlot(cell geom.Loc, dir geom.Dir4) (**Hall, bool) {
	other := cell.Add(dir.Delta())
	if !p.Bounds().Contains(cell) || !p.Bounds().Contains(other) {
		return nil, false
	}
	switch dir {
	case geom.East:
		return &p.eastHalls[cell.X][cell.Y], true
	case geom.West:
		return &p.eastHalls[other.X][other.Y], true
	case geom.South:
		return &p.southHalls[cell.X][cell.Y], true
	case geom.North:
		return &p.southHalls[other.X][other.Y], true
	}
	return nil, false
}

// SetHall places a hall between cell and its neighbor in dir. A nil gen removes it.
func (p *GridPlan) SetHall(cell geom.Loc, dir geom.Dir4, gen room.Gen, comps floorplan.Components) error {
	slot, ok := p.hallSlot(cell, dir)
	if !ok {
		return fault.Configf("no cell beyond %v facing %v", cell, dir)
	}
	if gen == nil {
		*slot = nil
		return nil
	}
	if a := p.RoomAt(cell); a != NoRoom && a == p.RoomAt(cell.Add(dir.Delta())) {
		return fault.Configf("hall at %v facing %v would lie inside room %d", cell, dir, a)
	}
	*slot = &Hall{Gen: gen, Components: comps.Copy()}
	return nil
}

// Hall returns the hall between cell and its neighbor in dir, or nil.
func (p *GridPlan) Hall(cell geom.Loc, dir geom.Dir4) *Hall {
	slot, ok := p.hallSlot(cell, dir)
	if !ok {
		return nil
	}
	return *slot
}

// AdjacentRooms returns the rooms joined to room i by a hall, in index order.
func (p *GridPlan) AdjacentRooms(i int) []int {
	r := p.GetRoom(i)
	if r == nil {
		return nil
	}
	seen := make(map[int]bool)
	for x := r.Cells.Left(); x < r.Cells.Right(); x++ {
		for y := r.Cells.Top(); y < r.Cells.Bottom(); y++ {
			cell := geom.Loc{X: x, Y: y}
			for _, dir := range geom.AllDirections() {
				other := p.RoomAt(cell.Add(dir.Delta()))
				if other != NoRoom && other != i && p.Hall(cell, dir) != nil {
					seen[other] = true
				}
			}
		}
	}
	var out []int
	for j := range p.rooms {
		if seen[j] {
			out = append(out, j)
		}
	}
	return out
}

// CellBounds returns the tile rectangle covered by a rectangle of cells.
func (p *GridPlan) CellBounds(cells geom.Rect) geom.Rect {
	return geom.NewRect(
		p.cellWall+cells.Left()*(p.cellWidth+p.cellWall),
		p.cellWall+cells.Top()*(p.cellHeight+p.cellWall),
		cells.Width()*(p.cellWidth+p.cellWall)-p.cellWall,
		cells.Height()*(p.cellHeight+p.cellWall)-p.cellWall,
	)
}

// PlaceRoomsOnFloor sizes and positions every room and hall and registers them
// in fp. Rooms spanning several cells fill their cells. Single-cell rooms take a
// proposed size clamped to the cell, pushed flush against every cell side that
// has a hall. Each hall fills the wall between its two cells.
func (p *GridPlan) PlaceRoomsOnFloor(r rng.Random, fp *floorplan.FloorPlan) error {
	indices := make([]floorplan.RoomHallIndex, len(p.rooms))
	for i, gr := range p.rooms {
		bounds := p.CellBounds(gr.Cells)
		loc, size := bounds.Start, bounds.Size
		if gr.Cells.Area() == 1 {
			loc, size = p.fitCell(r, gr.Gen, gr.Cells.Start, bounds)
		}
		if err := room.PrepareSize(gr.Gen, r, size); err != nil {
			return errors.Wrapf(err, "grid room %d", i)
		}
		room.Place(gr.Gen, loc)
		idx, err := fp.AddRoom(gr.Gen, gr.Components)
		if err != nil {
			return errors.Wrapf(err, "grid room %d", i)
		}
		indices[i] = idx
	}

	for x := 0; x < p.cols; x++ {
		for y := 0; y < p.rows; y++ {
			cell := geom.Loc{X: x, Y: y}
			for _, dir := range []geom.Dir4{geom.East, geom.South} {
				h := p.Hall(cell, dir)
				if h == nil {
					continue
				}
				if err := p.placeHall(r, fp, indices, cell, dir, h); err != nil {
					return err
				}
			}
		}
	}
	return nil
}

// fitCell picks the rectangle of a single-cell room inside bounds.
func (p *GridPlan) fitCell(r rng.Random, gen room.Gen, cell geom.Loc, bounds geom.Rect) (geom.Loc, geom.Loc) {
	proposed := gen.ProposeSize(r)
	var loc, size [2]int
	for _, axis := range []geom.Axis{geom.Horizontal, geom.Vertical} {
		neg, pos := axis.Dirs()
		hasNeg, hasPos := p.Hall(cell, neg) != nil, p.Hall(cell, pos) != nil
		length := bounds.Size.Get(axis)
		n := min(max(proposed.Get(axis), 1), length)
		if hasNeg && hasPos {
			n = length
		}
		start := bounds.Start.Get(axis)
		switch {
		case hasNeg:
			loc[axis] = start
		case hasPos:
			loc[axis] = start + length - n
		default:
			loc[axis] = start + r.NextN(length-n+1)
		}
		size[axis] = n
	}
	return geom.Loc{X: loc[geom.Horizontal], Y: loc[geom.Vertical]}, geom.Loc{X: size[geom.Horizontal], Y: size[geom.Vertical]}
}

func (p *GridPlan) placeHall(r rng.Random, fp *floorplan.FloorPlan, indices []floorplan.RoomHallIndex, cell geom.Loc, dir geom.Dir4, h *Hall) error {
	a, b := p.RoomAt(cell), p.RoomAt(cell.Add(dir.Delta()))
	if a == NoRoom || b == NoRoom {
		return fault.Configf("hall at %v facing %v leads to an empty cell", cell, dir)
	}
	band := p.CellBounds(geom.NewRect(cell.X, cell.Y, 1, 1))
	rect := geom.NewRect(band.Left(), band.Bottom(), band.Width(), p.cellWall)
	if dir == geom.East {
		rect = geom.NewRect(band.Right(), band.Top(), p.cellWall, band.Height())
	}
	if err := room.PrepareSize(h.Gen, r, rect.Size); err != nil {
		return errors.Wrapf(err, "grid hall at %v facing %v", cell, dir)
	}
	room.Place(h.Gen, rect.Start)
	if _, err := fp.AddHall(h.Gen, h.Components, indices[a], indices[b]); err != nil {
		return errors.Wrapf(err, "grid hall at %v facing %v", cell, dir)
	}
	return nil
}

// Context is a generation context that carries a grid plan and the floor plan
// it is converted into.
type Context interface {
	floorplan.Context
	GridPlan() *GridPlan
	SetGridPlan(p *GridPlan)
}
