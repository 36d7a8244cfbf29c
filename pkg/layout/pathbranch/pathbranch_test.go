package pathbranch

import (
	"io"
	"log"
	"testing"

	"tilelayout/pkg/engine/fault"
	"tilelayout/pkg/engine/geom"
	"tilelayout/pkg/engine/grid"
	"tilelayout/pkg/engine/rng"
	"tilelayout/pkg/engine/world"
	"tilelayout/pkg/layout/floorplan"
	"tilelayout/pkg/layout/room"
)

type testContext struct {
	*world.Map
	r    rng.Random
	plan *floorplan.FloorPlan
}

func (c *testContext) Rand() rng.Random                    { return c.r }
func (c *testContext) Logger() *log.Logger                 { return log.New(io.Discard, "", 0) }
func (c *testContext) FloorPlan() *floorplan.FloorPlan     { return c.plan }
func (c *testContext) SetFloorPlan(p *floorplan.FloorPlan) { c.plan = p }

func newContext(seed int64, w, h int) *testContext {
	m := world.NewMap(w, h)
	return &testContext{
		Map:  m,
		r:    rng.New(seed),
		plan: floorplan.New(geom.NewRect(1, 1, w-2, h-2)),
	}
}

func sizes(lo, hi int) geom.IntRange {
	return geom.IntRange{Min: lo, Max: hi}
}

func newGrower(hallPercent int) *Grower[*testContext] {
	rooms := rng.NewSpawnList[room.Gen]()
	rooms.Add(room.NewSquare(sizes(3, 7), sizes(3, 7)), 10)
	rooms.Add(room.NewRound(sizes(4, 8), sizes(4, 8)), 5)
	rooms.Add(room.NewCross(sizes(4, 8), sizes(4, 8), sizes(1, 3)), 5)
	halls := rng.NewSpawnList[room.Gen]()
	halls.Add(room.NewAngledHall(sizes(1, 6), sizes(1, 6), 50), 10)
	return &Grower[*testContext]{
		FillPercent:    sizes(40, 60),
		BranchRatio:    sizes(20, 60),
		HallPercent:    hallPercent,
		RoomGens:       rooms,
		HallGens:       halls,
		RoomComponents: floorplan.NewComponents(floorplan.TagMain),
		HallComponents: floorplan.NewComponents(),
	}
}

func TestGrower_NoCollisions(t *testing.T) {
	for seed := int64(0); seed < 10; seed++ {
		ctx := newContext(seed, 50, 40)
		if err := newGrower(50).Apply(ctx); err != nil {
			t.Fatalf("seed %d: Apply error: %v", seed, err)
		}
		entries := ctx.plan.Entries()
		if len(entries) < 2 {
			t.Fatalf("seed %d: plan has %d entries, want at least 2", seed, len(entries))
		}
		for i, a := range entries {
			ra := ctx.plan.Get(a).Draw()
			if !ctx.plan.Bounds().ContainsRect(ra) {
				t.Errorf("seed %d: %v %v outside bounds", seed, a, ra)
			}
			for _, b := range entries[i+1:] {
				if rb := ctx.plan.Get(b).Draw(); ra.Intersects(rb) {
					t.Errorf("seed %d: %v %v collides with %v %v", seed, a, ra, b, rb)
				}
			}
		}
	}
}

func TestGrower_ReachesTarget(t *testing.T) {
	ctx := newContext(3, 60, 50)
	g := newGrower(30)
	g.FillPercent = sizes(30, 31)
	if err := g.Apply(ctx); err != nil {
		t.Fatalf("Apply error: %v", err)
	}
	target := ctx.plan.Bounds().Area() * 30 / 100
	if got := ctx.plan.CoveredArea(); got < target {
		t.Errorf("CoveredArea = %d, want at least %d", got, target)
	}
}

func TestGrower_DrawnLayoutIsConnected(t *testing.T) {
	for seed := int64(0); seed < 10; seed++ {
		ctx := newContext(seed, 50, 40)
		if err := newGrower(50).Apply(ctx); err != nil {
			t.Fatalf("seed %d: Apply error: %v", seed, err)
		}
		if err := ctx.plan.DrawOnMap(ctx.Map, ctx.r); err != nil {
			t.Fatalf("seed %d: DrawOnMap error: %v", seed, err)
		}

		for _, idx := range ctx.plan.Entries() {
			e := ctx.plan.Get(idx)
			for _, adj := range e.Adjacents {
				other := ctx.plan.Get(adj)
				dir, ok := floorplan.Facing(e.Draw(), other.Draw())
				if !ok {
					t.Fatalf("seed %d: %v and %v are adjacent but do not abut", seed, idx, adj)
				}
				if !sharesOpening(e.Gen.Border(), other.Gen.Border(), dir) {
					t.Errorf("seed %d: %v and %v share no opened tile", seed, idx, adj)
				}
			}
		}

		var start geom.Loc
		floors := 0
		ctx.ForEachTile(func(loc geom.Loc, tile world.Tile) {
			if tile.Terrain == world.Floor {
				if floors == 0 {
					start = loc
				}
				floors++
			}
		})
		if got := grid.CountReachable(ctx.Bounds(), ctx.Blocked, ctx.DiagonalBlocked, start); got != floors {
			t.Errorf("seed %d: reachable floor = %d, want %d\n%s", seed, got, floors, ctx.Map)
		}
	}
}

func sharesOpening(a, b *room.Base, dir geom.Dir4) bool {
	aStart := a.Draw().EdgeStart(dir)
	bStart := b.Draw().EdgeStart(dir.Opposite())
	for i := 0; i < a.Draw().BorderLength(dir); i++ {
		if a.Opened(dir, i) && b.Opened(dir.Opposite(), aStart+i-bStart) {
			return true
		}
	}
	return false
}

func TestGrower_Deterministic(t *testing.T) {
	rects := func() []geom.Rect {
		ctx := newContext(42, 50, 40)
		if err := newGrower(50).Apply(ctx); err != nil {
			t.Fatalf("Apply error: %v", err)
		}
		var out []geom.Rect
		for _, idx := range ctx.plan.Entries() {
			out = append(out, ctx.plan.Get(idx).Draw())
		}
		return out
	}
	a, b := rects(), rects()
	if len(a) != len(b) {
		t.Fatalf("runs placed %d and %d entries", len(a), len(b))
	}
	for i := range a {
		if a[i] != b[i] {
			t.Errorf("entry %d: %v vs %v", i, a[i], b[i])
		}
	}
}

func TestGrower_RootTagged(t *testing.T) {
	ctx := newContext(5, 40, 30)
	if err := newGrower(0).Apply(ctx); err != nil {
		t.Fatalf("Apply error: %v", err)
	}
	root := ctx.plan.Get(floorplan.RoomHallIndex{Index: 0})
	if root == nil || !root.Components.Has(floorplan.TagRoot) || !root.Components.Has(floorplan.TagMain) {
		t.Errorf("root room components = %v, want root and main", root.Components.Tags())
	}
	if ctx.plan.HallCount() != 0 {
		t.Errorf("HallCount = %d with zero hall percent, want 0", ctx.plan.HallCount())
	}
}

func TestGrower_TooSmallKeepsPartial(t *testing.T) {
	ctx := newContext(1, 9, 9)
	g := newGrower(0)
	g.FillPercent = sizes(100, 101)
	if err := g.Apply(ctx); err != nil {
		t.Fatalf("Apply error: %v", err)
	}
	if ctx.plan.RoomCount() == 0 {
		t.Errorf("RoomCount = 0, want the partial result kept")
	}
}

func TestGrower_NoShapes(t *testing.T) {
	ctx := newContext(1, 30, 30)
	g := newGrower(0)
	g.RoomGens = rng.NewSpawnList[room.Gen]()
	if err := g.Apply(ctx); !fault.IsConfiguration(err) {
		t.Errorf("Apply without shapes error = %v, want configuration error", err)
	}
}

func TestSideLocs_TouchEdge(t *testing.T) {
	rect := geom.NewRect(5, 5, 3, 2)
	size := geom.Loc{X: 2, Y: 4}
	for _, dir := range geom.AllDirections() {
		locs := sideLocs(rect, size, dir)
		if len(locs) == 0 {
			t.Fatalf("sideLocs(%v) is empty", dir)
		}
		for _, loc := range locs {
			got, ok := floorplan.Facing(rect, geom.Rect{Start: loc, Size: size})
			if !ok || got != dir {
				t.Errorf("sideLocs(%v) gave %v facing %v, %v", dir, loc, got, ok)
			}
		}
	}
}
