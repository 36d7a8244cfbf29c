package steps

import (
	"github.com/zyedidia/generic/queue"

	"tilelayout/pkg/engine/fault"
	"tilelayout/pkg/engine/geom"
	"tilelayout/pkg/engine/rng"
	"tilelayout/pkg/engine/world"
	"tilelayout/pkg/layout/audit"
	"tilelayout/pkg/layout/floorplan"
)

// PlacementAttempts is how often a spawn is retried before it is skipped.
const PlacementAttempts = 30

// isRoom reports whether idx is a room proper. Rooms tagged as halls, such as
// grid junctions, do not count.
func isRoom(plan *floorplan.FloorPlan, idx floorplan.RoomHallIndex) bool {
	return !idx.IsHall && !plan.Get(idx).Components.Has(floorplan.TagHall)
}

// roomTiles returns the walkable tiles drawn by floor plan rooms, halls
// excluded, in row-major order.
func roomTiles(m *world.Map, plan *floorplan.FloorPlan, keep func(idx floorplan.RoomHallIndex) bool) []geom.Loc {
	var locs []geom.Loc
	m.ForEachTile(func(loc geom.Loc, t world.Tile) {
		if m.TileBlocked(loc, true) {
			return
		}
		idx, ok := plan.EntryAt(t.Owner)
		if ok && isRoom(plan, idx) && keep(idx) {
			locs = append(locs, loc)
		}
	})
	return locs
}

// EntranceExit puts the entrance in a random room, the root room if there is
// one, and the exit on the reachable tile furthest from it.
type EntranceExit[T PlaceableContext] struct{}

func (s *EntranceExit[T]) Apply(ctx T) error {
	plan := ctx.FloorPlan()
	if plan == nil || plan.RoomCount() == 0 {
		return fault.Configf("no rooms to place an entrance in")
	}
	m := ctx.Tiles()
	r := ctx.Rand()

	start := floorplan.RoomHallIndex{Index: r.NextN(plan.RoomCount())}
	for i := 0; i < plan.RoomCount(); i++ {
		idx := floorplan.RoomHallIndex{Index: i}
		if plan.Get(idx).Components.Has(floorplan.TagRoot) {
			start = idx
			break
		}
	}

	candidates := roomTiles(m, plan, func(idx floorplan.RoomHallIndex) bool { return idx == start })
	if len(candidates) == 0 {
		ctx.Logger().Printf("room %v has no floor, entrance placed anywhere", start)
		candidates = roomTiles(m, plan, func(floorplan.RoomHallIndex) bool { return true })
	}
	if len(candidates) == 0 {
		return fault.Configf("floor plan drew no floor")
	}
	entrance := candidates[r.NextN(len(candidates))]
	m.SetEntrance(entrance)

	exit := furthestTile(m, plan, entrance)
	m.AddExit(exit)
	ctx.Logger().Printf("entrance at %v, exit at %v", entrance, exit)
	return nil
}

// furthestTile finds the tile furthest from start by walking distance,
// preferring room tiles over hall tiles at equal distance.
func furthestTile(m *world.Map, plan *floorplan.FloorPlan, start geom.Loc) geom.Loc {
	type tileDist struct {
		loc  geom.Loc
		dist int
	}

	inRoom := func(loc geom.Loc) bool {
		idx, ok := plan.EntryAt(m.Tile(loc).Owner)
		return ok && isRoom(plan, idx)
	}

	visited := map[geom.Loc]bool{start: true}
	frontier := queue.New[tileDist]()
	frontier.Enqueue(tileDist{start, 0})

	furthest, maxDist := start, -1
	for !frontier.Empty() {
		current := frontier.Dequeue()

		if current.dist > maxDist || (current.dist == maxDist && inRoom(current.loc) && !inRoom(furthest)) {
			maxDist = current.dist
			furthest = current.loc
		}

		for _, dir := range geom.AllDirections() {
			next := current.loc.Add(dir.Delta())
			if !visited[next] && !m.Blocked(next) {
				visited[next] = true
				frontier.Enqueue(tileDist{next, current.dist + 1})
			}
		}
	}
	return furthest
}

// SpawnItems places copies of weighted item templates on free room tiles.
// Blocking items are never placed where they would cut part of the layout off
// from the entrance.
type SpawnItems[T PlaceableContext] struct {
	Spawns *rng.SpawnList[*world.Item]
	Amount geom.IntRange
}

func (s *SpawnItems[T]) Apply(ctx T) error {
	if s.Spawns.Len() == 0 {
		return nil
	}
	plan := ctx.FloorPlan()
	if plan == nil {
		return fault.Configf("no floor plan to spawn items in")
	}
	m := ctx.Tiles()
	r := ctx.Rand()

	entrance, hasEntrance := m.Entrance()
	reserved := func(loc geom.Loc) bool {
		if hasEntrance && loc == entrance {
			return true
		}
		for _, exit := range m.Exits() {
			if loc == exit {
				return true
			}
		}
		return m.ItemAt(loc) != nil
	}

	tiles := roomTiles(m, plan, func(floorplan.RoomHallIndex) bool { return true })
	amount := r.NextRange(s.Amount.Min, s.Amount.Max)
	placed := 0
	for i := 0; i < amount; i++ {
		template, err := s.Spawns.Pick(r)
		if err != nil {
			return err
		}
		if s.place(m, r, tiles, template.Copy(), reserved) {
			placed++
			continue
		}
		ctx.Logger().Printf("no room for %s after %d attempts", template.Name, PlacementAttempts)
	}
	ctx.Logger().Printf("spawned %d of %d items", placed, amount)
	return nil
}

func (s *SpawnItems[T]) place(m *world.Map, r rng.Random, tiles []geom.Loc, it *world.Item, reserved func(geom.Loc) bool) bool {
	if len(tiles) == 0 {
		return false
	}
	for attempt := 0; attempt < PlacementAttempts; attempt++ {
		loc := tiles[r.NextN(len(tiles))]
		if reserved(loc) {
			continue
		}
		if it.Blocking && !audit.SafeToBlock(m, loc) {
			continue
		}
		if m.PlaceItem(it, loc) {
			return true
		}
	}
	return false
}
