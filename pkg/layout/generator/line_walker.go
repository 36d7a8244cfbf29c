package generator

import (
	"github.com/zyedidia/generic/mapset"

	"tilelayout/pkg/engine/fault"
	"tilelayout/pkg/engine/geom"
	"tilelayout/pkg/engine/rng"
	"tilelayout/pkg/layout/floorplan"
	"tilelayout/pkg/layout/gridplan"
	"tilelayout/pkg/layout/room"
)

// branchDecay is how much the branch chance drops with every nested branch.
const branchDecay = 10

// LineWalker fills a grid plan by walking lines of cells outward from the
// center in random directions, branching as it goes. Cells it visits get a
// room or a junction; consecutive cells of a line are joined by halls.
type LineWalker[T gridplan.Context] struct {
	// BranchPercent is the chance of starting a branch at each cell.
	BranchPercent int
	LineLength    geom.IntRange
	// ExtraLines is the number of lines started near the center after the
	// four main ones.
	ExtraLines int
	// RoomPercent is the chance that a visited cell gets a room rather than
	// a junction. The start cell always gets a room.
	RoomPercent int

	RoomGens *rng.SpawnList[room.Gen]
	HallGens *rng.SpawnList[room.Gen]
	Junction room.Gen

	RoomComponents floorplan.Components
	HallComponents floorplan.Components
}

type walkEdge struct {
	cell geom.Loc
	dir  geom.Dir4
}

type walk struct {
	r       rng.Random
	bounds  geom.Rect
	visited mapset.Set[geom.Loc]
	order   []geom.Loc
	edges   []walkEdge
}

func (w *walk) visit(cell geom.Loc) {
	if !w.visited.Has(cell) {
		w.visited.Put(cell)
		w.order = append(w.order, cell)
	}
}

func (w *walk) randomDirection() geom.Dir4 {
	return geom.Dir4(w.r.NextN(geom.DirCount))
}

func (s *LineWalker[T]) Apply(ctx T) error {
	plan := ctx.GridPlan()
	if plan == nil {
		return fault.Configf("line walker needs a grid plan")
	}
	if !s.RoomGens.CanPick() || !s.HallGens.CanPick() || s.Junction == nil {
		return fault.Configf("line walker needs room shapes, hall shapes and a junction")
	}
	r := ctx.Rand()
	w := &walk{r: r, bounds: plan.Bounds(), visited: mapset.New[geom.Loc]()}

	start := geom.Loc{X: plan.Cols() / 2, Y: plan.Rows() / 2}
	w.visit(start)
	for _, dir := range geom.AllDirections() {
		s.buildLine(w, start, dir, s.BranchPercent)
	}
	for i := 0; i < s.ExtraLines; i++ {
		from := start.Add(geom.Loc{X: r.NextRange(-2, 3), Y: r.NextRange(-2, 3)})
		if w.bounds.Contains(from) && w.visited.Has(from) {
			s.buildLine(w, from, w.randomDirection(), s.BranchPercent)
		}
	}

	for _, cell := range w.order {
		if err := s.addCell(plan, r, cell, cell == start); err != nil {
			return err
		}
	}
	for _, e := range w.edges {
		if plan.Hall(e.cell, e.dir) != nil {
			continue
		}
		gen, err := s.HallGens.Pick(r)
		if err != nil {
			return err
		}
		if err := plan.SetHall(e.cell, e.dir, gen.Copy(), s.HallComponents); err != nil {
			return err
		}
	}
	ctx.Logger().Printf("line walker visited %d of %d cells", len(w.order), w.bounds.Area())
	return nil
}

func (s *LineWalker[T]) addCell(plan *gridplan.GridPlan, r rng.Random, cell geom.Loc, root bool) error {
	cells := geom.NewRect(cell.X, cell.Y, 1, 1)
	if !root && !rng.Chance(r, s.RoomPercent) {
		_, err := plan.AddRoom(cells, s.Junction.Copy(), s.HallComponents)
		return err
	}
	tmpl, err := s.RoomGens.Pick(r)
	if err != nil {
		return err
	}
	comps := s.RoomComponents
	if root {
		comps = comps.With(floorplan.TagRoot)
	}
	_, err = plan.AddRoom(cells, tmpl.Copy(), comps)
	return err
}

// buildLine walks a line of cells from cell in dir and returns the last cell
// reached. It stops early at the edge of the grid.
func (s *LineWalker[T]) buildLine(w *walk, cell geom.Loc, dir geom.Dir4, branchPercent int) geom.Loc {
	if !dir.IsValid() {
		dir = w.randomDirection()
	}

	distance := w.r.NextRange(s.LineLength.Min, s.LineLength.Max)
	for segment := 0; segment < distance; segment++ {
		next := cell.Add(dir.Delta())
		if !w.bounds.Contains(next) {
			return cell
		}

		if rng.Chance(w.r, branchPercent) {
			s.buildLine(w, cell, w.randomDirection(), branchPercent-branchDecay)
		}

		w.edges = append(w.edges, walkEdge{cell: cell, dir: dir})
		cell = next
		w.visit(cell)
	}
	return cell
}
