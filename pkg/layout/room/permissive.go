package room

import (
	"sort"

	"tilelayout/pkg/engine/fault"
	"tilelayout/pkg/engine/geom"
	"tilelayout/pkg/engine/grid"
	"tilelayout/pkg/engine/rng"
	"tilelayout/pkg/engine/world"
)

// PermissiveBase is the border state of a shape that can open any edge tile.
type PermissiveBase struct {
	Base
}

func (p *PermissiveBase) permissive() {}

// PrepareFulfillableBorders marks every edge tile fulfillable.
func (p *PermissiveBase) PrepareFulfillableBorders(rng.Random) {
	for _, dir := range geom.AllDirections() {
		for i := range p.fulfillable[dir] {
			p.fulfillable[dir][i] = true
		}
	}
}

// candidateGroups partitions the side requirements facing dir into the fewest
// groups such that opening one tile per group satisfies every requirement.
// Each group lists its candidate offsets, preferring requested tiles.
func (b *Base) candidateGroups(dir geom.Dir4) [][]int {
	reqs := b.sideReqs[dir].Ranges()
	sort.SliceStable(reqs, func(i, j int) bool { return reqs[i].Max < reqs[j].Max })

	var groups [][]int
	for len(reqs) > 0 {
		common := reqs[0]
		rest := reqs[:0:0]
		for _, req := range reqs[1:] {
			if overlap := common.Intersect(req); !overlap.Empty() {
				common = overlap
			} else {
				rest = append(rest, req)
			}
		}
		reqs = rest

		group := b.candidates(dir, common, true)
		if len(group) == 0 {
			group = b.candidates(dir, common, false)
		}
		if len(group) > 0 {
			groups = append(groups, group)
		}
	}
	return groups
}

// hallPlan holds, per side, the offset chosen from each candidate group.
type hallPlan struct {
	groups [geom.DirCount][][]int
	picks  [geom.DirCount][]int
}

func (b *Base) planHall(r rng.Random) hallPlan {
	var plan hallPlan
	for _, dir := range geom.AllDirections() {
		plan.groups[dir] = b.candidateGroups(dir)
		for _, group := range plan.groups[dir] {
			plan.picks[dir] = append(plan.picks[dir], group[r.NextN(len(group))])
		}
	}
	return plan
}

func (p hallPlan) populated() []geom.Dir4 {
	var dirs []geom.Dir4
	for _, dir := range geom.AllDirections() {
		if len(p.picks[dir]) > 0 {
			dirs = append(dirs, dir)
		}
	}
	return dirs
}

// straightOutcome describes whether the connection across an axis must run
// straight, must turn, or is free to do either.
type straightOutcome int

const (
	freeOutcome straightOutcome = iota
	forcedStraight
	forcedTurn
)

// axisOutcome classifies the first groups on both sides of an axis and returns
// their common offsets.
func (p hallPlan) axisOutcome(axis geom.Axis) (straightOutcome, []int) {
	a, b := axis.Dirs()
	ga, gb := p.groups[a][0], p.groups[b][0]
	var common []int
	for _, i := range ga {
		for _, j := range gb {
			if i == j {
				common = append(common, i)
			}
		}
	}
	switch {
	case len(common) == 0:
		return forcedTurn, nil
	case len(ga) == 1 && len(gb) == 1:
		return forcedStraight, common
	default:
		return freeOutcome, common
	}
}

// lineTo opens every tile on the axis-aligned segment between two locations.
func lineTo(m world.Tiled, from, to geom.Loc) {
	step := geom.Loc{X: sign(to.X - from.X), Y: sign(to.Y - from.Y)}
	loc := from
	for {
		m.TrySetTile(loc, m.RoomTerrain())
		if loc == to {
			return
		}
		loc = loc.Add(step)
	}
}

func sign(x int) int {
	switch {
	case x > 0:
		return 1
	case x < 0:
		return -1
	default:
		return 0
	}
}

// drawAxis connects the first groups on both sides of an axis, either straight
// across or with one bend at a random depth.
func (b *Base) drawAxis(m world.Tiled, r rng.Random, p *hallPlan, axis geom.Axis, turnBias int) {
	a, z := axis.Dirs()
	outcome, common := p.axisOutcome(axis)
	turn := outcome == forcedTurn || (outcome == freeOutcome && rng.Chance(r, turnBias))
	if !turn {
		i := common[r.NextN(len(common))]
		p.picks[a][0], p.picks[z][0] = i, i
		lineTo(m, b.draw.EdgeLoc(a, i), b.draw.EdgeLoc(z, i))
		return
	}

	depth := b.draw.Depth(a)
	bend := r.NextN(depth)
	start := b.draw.EdgeLoc(a, p.picks[a][0])
	end := b.draw.EdgeLoc(z, p.picks[z][0])
	cornerA := b.inwardLoc(a, p.picks[a][0], bend)
	cornerZ := b.inwardLoc(z, p.picks[z][0], depth-1-bend)
	lineTo(m, start, cornerA)
	lineTo(m, cornerA, cornerZ)
	lineTo(m, cornerZ, end)
}

// drawJunction joins every pick on a single side at one random depth.
func (b *Base) drawJunction(m world.Tiled, r rng.Random, dir geom.Dir4, picks []int) {
	depth := r.NextN(b.draw.Depth(dir))
	lo, hi := picks[0], picks[0]
	for _, i := range picks {
		lineTo(m, b.draw.EdgeLoc(dir, i), b.inwardLoc(dir, i, depth))
		lo, hi = min(lo, i), max(hi, i)
	}
	lineTo(m, b.inwardLoc(dir, lo, depth), b.inwardLoc(dir, hi, depth))
}

// drawBend joins the first picks of two adjacent sides with an L.
func (b *Base) drawBend(m world.Tiled, p hallPlan, d1, d2 geom.Dir4) {
	from := b.draw.EdgeLoc(d1, p.picks[d1][0])
	to := b.draw.EdgeLoc(d2, p.picks[d2][0])
	corner := from
	if d1.Axis() == geom.Vertical {
		corner.Y = to.Y
	} else {
		corner.X = to.X
	}
	lineTo(m, from, corner)
	lineTo(m, corner, to)
}

// digToFloor opens a way from edge tile i facing dir to the nearest floor in
// the shape: straight inward if that meets floor, otherwise along the shortest
// four-connected path.
func (b *Base) digToFloor(m world.Tiled, dir geom.Dir4, i int) error {
	depth := b.draw.Depth(dir)
	for d := 0; d < depth; d++ {
		if !m.TileBlocked(b.inwardLoc(dir, i, d), false) {
			lineTo(m, b.draw.EdgeLoc(dir, i), b.inwardLoc(dir, i, d))
			return nil
		}
	}

	var floors []geom.Loc
	for y := b.draw.Top(); y < b.draw.Bottom(); y++ {
		for x := b.draw.Left(); x < b.draw.Right(); x++ {
			if loc := (geom.Loc{X: x, Y: y}); !m.TileBlocked(loc, false) {
				floors = append(floors, loc)
			}
		}
	}
	if len(floors) == 0 {
		return fault.Configf("%v: no floor to connect %v offset %d to", b.draw, dir, i)
	}
	path := grid.FindAPath(b.draw, b.draw.EdgeLoc(dir, i), floors, grid.Never, grid.Always)
	for _, loc := range path {
		m.TrySetTile(loc, m.RoomTerrain())
	}
	return nil
}

// digRemaining connects every pick not yet drawn to the floor already laid.
func (b *Base) digRemaining(m world.Tiled, p hallPlan, drawn [geom.DirCount]int) error {
	for _, dir := range geom.AllDirections() {
		for _, i := range p.picks[dir][drawn[dir]:] {
			if err := b.digToFloor(m, dir, i); err != nil {
				return err
			}
		}
	}
	return nil
}

// RouteHall draws a permissive shape so that every side requirement holds and
// all openings are connected. turnBias is the percent chance that a connection
// between opposite sides bends when it could run straight.
func RouteHall(b *Base, m world.Tiled, r rng.Random, turnBias int) error {
	plan := b.planHall(r)
	dirs := plan.populated()
	var drawn [geom.DirCount]int

	switch len(dirs) {
	case 0:
		return fault.Configf("hall %v has nothing to connect", b.draw)
	case 1:
		b.drawJunction(m, r, dirs[0], plan.picks[dirs[0]])
		return nil
	}

	var axes []geom.Axis
	for _, axis := range []geom.Axis{geom.Vertical, geom.Horizontal} {
		a, z := axis.Dirs()
		if len(plan.picks[a]) > 0 && len(plan.picks[z]) > 0 {
			axes = append(axes, axis)
		}
	}

	if len(axes) == 0 {
		// Two adjacent sides.
		b.drawBend(m, plan, dirs[0], dirs[1])
		drawn[dirs[0]], drawn[dirs[1]] = 1, 1
		return b.digRemaining(m, plan, drawn)
	}

	primary := axes[0]
	if len(axes) == 2 {
		primary = choosePrimary(r, plan, axes)
	}
	b.drawAxis(m, r, &plan, primary, turnBias)
	a, z := primary.Dirs()
	drawn[a], drawn[z] = 1, 1
	return b.digRemaining(m, plan, drawn)
}

// choosePrimary prefers an axis that must run straight, then one that must
// turn, and otherwise picks at random.
func choosePrimary(r rng.Random, p hallPlan, axes []geom.Axis) geom.Axis {
	for _, want := range []straightOutcome{forcedStraight, forcedTurn} {
		for _, axis := range axes {
			if outcome, _ := p.axisOutcome(axis); outcome == want {
				return axis
			}
		}
	}
	return axes[r.NextN(len(axes))]
}

// AngledHall is a hall that runs straight between opposite openings or bends
// with probability TurnBias.
type AngledHall struct {
	PermissiveBase
	Width    geom.IntRange
	Height   geom.IntRange
	TurnBias int
}

// NewAngledHall creates a hall.
func NewAngledHall(width, height geom.IntRange, turnBias int) *AngledHall {
	return &AngledHall{Width: width, Height: height, TurnBias: turnBias}
}

func (h *AngledHall) Kind() string { return "angled" }

func (h *AngledHall) Copy() Gen {
	return &AngledHall{PermissiveBase: PermissiveBase{Base: h.Base.clone()}, Width: h.Width, Height: h.Height, TurnBias: h.TurnBias}
}

func (h *AngledHall) ProposeSize(r rng.Random) geom.Loc {
	return sizeIn(r, h.Width, h.Height)
}

func (h *AngledHall) DrawOnMap(m world.Tiled, r rng.Random) error {
	return RouteHall(&h.Base, m, r, h.TurnBias)
}

// Junction is a hall that meets every opening at one central point.
type Junction struct {
	PermissiveBase
	Width  geom.IntRange
	Height geom.IntRange
}

// NewJunction creates a junction hall.
func NewJunction(width, height geom.IntRange) *Junction {
	return &Junction{Width: width, Height: height}
}

func (j *Junction) Kind() string { return "junction" }

func (j *Junction) Copy() Gen {
	return &Junction{PermissiveBase: PermissiveBase{Base: j.Base.clone()}, Width: j.Width, Height: j.Height}
}

func (j *Junction) ProposeSize(r rng.Random) geom.Loc {
	return sizeIn(r, j.Width, j.Height)
}

// DrawOnMap opens one random tile and routes every opening to it.
func (j *Junction) DrawOnMap(m world.Tiled, r rng.Random) error {
	plan := j.planHall(r)
	if len(plan.populated()) == 0 {
		return fault.Configf("junction %v has nothing to connect", j.draw)
	}
	d := j.draw
	m.TrySetTile(geom.Loc{X: d.Left() + r.NextN(d.Width()), Y: d.Top() + r.NextN(d.Height())}, m.RoomTerrain())
	return j.digRemaining(m, plan, [geom.DirCount]int{})
}
