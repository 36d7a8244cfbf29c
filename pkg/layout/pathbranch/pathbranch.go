// Package pathbranch grows a floor plan outward from a single root room,
// extending paths from their ends and, at a configurable rate, branching from
// rooms already in the middle of a path.
package pathbranch

import (
	"github.com/pkg/errors"

	"tilelayout/pkg/engine/fault"
	"tilelayout/pkg/engine/geom"
	"tilelayout/pkg/engine/rng"
	"tilelayout/pkg/layout/floorplan"
	"tilelayout/pkg/layout/room"
)

const (
	// MaxAttempts is how often growth restarts from an empty plan before the
	// last partial result is kept.
	MaxAttempts = 10
	// PlacementAttempts is how often a new room is tried before an expansion
	// counts as impossible.
	PlacementAttempts = 30
	// branchCredit is the pending branch credit at which one branch is taken.
	branchCredit = 100
)

// Grower fills a floor plan with rooms and halls until a share of its area is covered.
type Grower[T floorplan.Context] struct {
	// FillPercent is the range the target share of the plan's area is drawn from.
	FillPercent geom.IntRange
	// BranchRatio is the percent of branch credit gained per extension.
	BranchRatio geom.IntRange
	// HallPercent is the chance of placing a hall between two rooms.
	HallPercent int

	RoomGens *rng.SpawnList[room.Gen]
	HallGens *rng.SpawnList[room.Gen]

	RoomComponents floorplan.Components
	HallComponents floorplan.Components

	// NoForcedBranches stops growth as soon as no path end can be extended.
	NoForcedBranches bool
}

// Apply grows the context's floor plan.
func (g *Grower[T]) Apply(ctx T) error {
	plan := ctx.FloorPlan()
	if plan == nil {
		return fault.Configf("path branch growth needs a floor plan")
	}
	if !g.RoomGens.CanPick() {
		return fault.Configf("path branch growth has no room shapes")
	}
	r := ctx.Rand()
	log := ctx.Logger()

	fill := r.NextRange(g.FillPercent.Min, g.FillPercent.Max)
	ratio := r.NextRange(g.BranchRatio.Min, g.BranchRatio.Max)
	target := plan.Bounds().Area() * fill / 100

	for attempt := 1; attempt <= MaxAttempts; attempt++ {
		plan.Clear()
		done, err := g.grow(plan, r, target, ratio)
		if err != nil {
			return err
		}
		if done {
			return nil
		}
		log.Printf("path branch attempt %d/%d covered %d of %d tiles", attempt, MaxAttempts, plan.CoveredArea(), target)
	}
	log.Printf("path branch keeping partial plan: %d rooms, %d halls", plan.RoomCount(), plan.HallCount())
	return nil
}

// grow runs one attempt. It reports whether the target area was reached.
func (g *Grower[T]) grow(plan *floorplan.FloorPlan, r rng.Random, target, ratio int) (bool, error) {
	placed, err := g.placeRoot(plan, r)
	if err != nil || !placed {
		return false, err
	}

	pending := 0
	for plan.CoveredArea() < target {
		if pending >= branchCredit {
			added, err := g.expand(plan, r, true)
			if err != nil {
				return false, err
			}
			if added {
				pending -= branchCredit
				continue
			}
		}

		added, err := g.expand(plan, r, false)
		if err != nil {
			return false, err
		}
		if added {
			if plan.RoomCount() > 2 {
				pending += ratio
			}
			continue
		}

		if g.NoForcedBranches {
			return false, nil
		}
		added, err = g.expand(plan, r, true)
		if err != nil || !added {
			return false, err
		}
	}
	return true, nil
}

// newGen picks a shape from list and proposes a size for a fresh copy of it.
func newGen(list *rng.SpawnList[room.Gen], r rng.Random) (room.Gen, error) {
	tmpl, err := list.Pick(r)
	if err != nil {
		return nil, err
	}
	gen := tmpl.Copy()
	if err := room.Propose(gen, r); err != nil {
		return nil, err
	}
	return gen, nil
}

func (g *Grower[T]) placeRoot(plan *floorplan.FloorPlan, r rng.Random) (bool, error) {
	gen, err := newGen(g.RoomGens, r)
	if err != nil {
		return false, err
	}
	bounds := plan.Bounds()
	size := gen.Border().Draw().Size
	if size.X > bounds.Width() || size.Y > bounds.Height() {
		return false, nil
	}
	room.Place(gen, geom.Loc{
		X: bounds.Left() + r.NextN(bounds.Width()-size.X+1),
		Y: bounds.Top() + r.NextN(bounds.Height()-size.Y+1),
	})
	if _, err := plan.AddRoom(gen, g.RoomComponents.With(floorplan.TagRoot)); err != nil {
		return false, errors.Wrap(err, "placing root room")
	}
	return true, nil
}

// expand attaches one new room, optionally behind a hall, to a frontier node.
// Extension grows from nodes with at most one neighbor, branching from nodes
// with more. It reports false when every attempt failed.
func (g *Grower[T]) expand(plan *floorplan.FloorPlan, r rng.Random, branch bool) (bool, error) {
	var frontier []floorplan.RoomHallIndex
	for _, idx := range plan.Entries() {
		if n := len(plan.Adjacents(idx)); (n > 1) == branch {
			frontier = append(frontier, idx)
		}
	}
	if len(frontier) == 0 {
		return false, nil
	}

	for attempt := 0; attempt < PlacementAttempts; attempt++ {
		from := frontier[r.NextN(len(frontier))]
		added, err := g.attach(plan, r, from, branch)
		if err != nil || added {
			return added, err
		}
	}
	return false, nil
}

func (g *Grower[T]) attach(plan *floorplan.FloorPlan, r rng.Random, from floorplan.RoomHallIndex, branch bool) (bool, error) {
	roomGen, err := newGen(g.RoomGens, r)
	if err != nil {
		return false, err
	}
	roomComps := g.RoomComponents
	if branch {
		roomComps = roomComps.With(floorplan.TagBranch)
	}
	fromGen := plan.Get(from).Gen

	if g.HallGens.CanPick() && rng.Chance(r, g.HallPercent) {
		hallGen, err := newGen(g.HallGens, r)
		if err != nil {
			return false, err
		}
		hallLoc, ok := chooseLoc(plan, r, fromGen, hallGen, from)
		if !ok {
			return false, nil
		}
		room.Place(hallGen, hallLoc)
		roomLoc, ok := chooseLoc(plan, r, hallGen, roomGen)
		if !ok {
			return false, nil
		}
		room.Place(roomGen, roomLoc)

		hallIdx, err := plan.AddHall(hallGen, g.HallComponents.With(floorplan.TagHall), from)
		if err != nil {
			return false, errors.Wrap(err, "attaching hall")
		}
		if _, err := plan.AddRoom(roomGen, roomComps, hallIdx); err != nil {
			return false, errors.Wrap(err, "attaching room behind hall")
		}
		return true, nil
	}

	loc, ok := chooseLoc(plan, r, fromGen, roomGen, from)
	if !ok {
		return false, nil
	}
	room.Place(roomGen, loc)
	if _, err := plan.AddRoom(roomGen, roomComps, from); err != nil {
		return false, errors.Wrap(err, "attaching room")
	}
	return true, nil
}

type candidate struct {
	loc   geom.Loc
	match int
}

// chooseLoc picks a weighted random location where gen touches from on one of
// its sides. The candidate, grown by one tile on every side, may only touch
// the ignored entries; it must lie in the plan's bounds and be able to open a
// tile towards from. Weights are the border match times a factor that gives
// short sides the same total chance as long ones.
func chooseLoc(plan *floorplan.FloorPlan, r rng.Random, from, gen room.Gen, ignore ...floorplan.RoomHallIndex) (geom.Loc, bool) {
	fromRect := from.Border().Draw()
	size := gen.Border().Draw().Size

	var sides [geom.DirCount][]candidate
	most := 0
	for _, dir := range geom.AllDirections() {
		for _, loc := range sideLocs(fromRect, size, dir) {
			rect := geom.Rect{Start: loc, Size: size}
			if !plan.Bounds().ContainsRect(rect) || collides(plan, rect.Inflate(1, 1), ignore) {
				continue
			}
			if match := floorplan.GetBorderMatch(from, gen, loc, dir); match > 0 {
				sides[dir] = append(sides[dir], candidate{loc: loc, match: match})
			}
		}
		most = max(most, len(sides[dir]))
	}

	picker := rng.NewSpawnList[geom.Loc]()
	for _, dir := range geom.AllDirections() {
		if len(sides[dir]) == 0 {
			continue
		}
		factor := max(1, most*10/len(sides[dir]))
		for _, c := range sides[dir] {
			picker.Add(c.loc, c.match*factor)
		}
	}
	loc, err := picker.Pick(r)
	if err != nil {
		return geom.Loc{}, false
	}
	return loc, true
}

// sideLocs lists every position of a size rectangle lying beyond rect in dir
// and sharing at least one tile of edge with it.
func sideLocs(rect geom.Rect, size geom.Loc, dir geom.Dir4) []geom.Loc {
	var locs []geom.Loc
	switch dir {
	case geom.North, geom.South:
		y := rect.Top() - size.Y
		if dir == geom.South {
			y = rect.Bottom()
		}
		for x := rect.Left() - size.X + 1; x < rect.Right(); x++ {
			locs = append(locs, geom.Loc{X: x, Y: y})
		}
	default:
		x := rect.Left() - size.X
		if dir == geom.East {
			x = rect.Right()
		}
		for y := rect.Top() - size.Y + 1; y < rect.Bottom(); y++ {
			locs = append(locs, geom.Loc{X: x, Y: y})
		}
	}
	return locs
}

func collides(plan *floorplan.FloorPlan, rect geom.Rect, ignore []floorplan.RoomHallIndex) bool {
	for _, hit := range plan.CheckCollision(rect) {
		ignored := false
		for _, idx := range ignore {
			ignored = ignored || hit == idx
		}
		if !ignored {
			return true
		}
	}
	return false
}
