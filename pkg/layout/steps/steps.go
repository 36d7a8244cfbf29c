// Package steps provides the generation steps pipelines are assembled from.
// Each step states what it needs from the generation context through the type
// constraint on its context parameter.
package steps

import (
	"log"

	"github.com/pkg/errors"

	"tilelayout/pkg/engine/fault"
	"tilelayout/pkg/engine/geom"
	"tilelayout/pkg/engine/rng"
	"tilelayout/pkg/engine/world"
	"tilelayout/pkg/layout/floorplan"
	"tilelayout/pkg/layout/gridplan"
)

// TileContext is a context whose tile map can be replaced.
type TileContext interface {
	world.Tiled
	Rand() rng.Random
	Logger() *log.Logger
	Tiles() *world.Map
	SetTiles(m *world.Map)
}

// PlaceableContext is a context with a drawn floor plan that items, the
// entrance and exits can be placed on.
type PlaceableContext interface {
	floorplan.Context
	Tiles() *world.Map
}

// AuditContext is a context that collects audit findings.
type AuditContext interface {
	PlaceableContext
	AddProblem(msg string)
}

// InitTiles replaces the tile map with a wall-filled one. A zero size keeps the
// current size.
type InitTiles[T TileContext] struct {
	Width, Height int
	// ImpassableBorder turns the outermost ring of tiles impassable so nothing
	// can be dug through it.
	ImpassableBorder bool
}

func (s *InitTiles[T]) Apply(ctx T) error {
	w, h := s.Width, s.Height
	if w == 0 {
		w = ctx.Width()
	}
	if h == 0 {
		h = ctx.Height()
	}
	if w <= 0 || h <= 0 {
		return fault.Configf("invalid map size %dx%d", w, h)
	}
	m := world.NewMap(w, h)
	if s.ImpassableBorder {
		m.ForEachTile(func(loc geom.Loc, _ world.Tile) {
			if m.IsOnPerimeter(loc) {
				m.SetTile(loc, world.NewTile(world.Impassable))
			}
		})
	}
	ctx.SetTiles(m)
	return nil
}

// InitFloorPlan gives the context an empty floor plan covering the map, inset
// by Margin tiles on every side.
type InitFloorPlan[T floorplan.Context] struct {
	Margin int
}

func (s *InitFloorPlan[T]) Apply(ctx T) error {
	bounds := geom.NewRect(0, 0, ctx.Width(), ctx.Height()).Inflate(-s.Margin, -s.Margin)
	if bounds.Empty() {
		return fault.Configf("margin %d leaves no room on a %dx%d map", s.Margin, ctx.Width(), ctx.Height())
	}
	ctx.SetFloorPlan(floorplan.New(bounds))
	return nil
}

// InitGridPlan gives the context an empty grid plan. The map must be large
// enough to draw it.
type InitGridPlan[T gridplan.Context] struct {
	Cols, Rows            int
	CellWidth, CellHeight int
	CellWall              int
}

func (s *InitGridPlan[T]) Apply(ctx T) error {
	plan, err := gridplan.New(s.Cols, s.Rows, s.CellWidth, s.CellHeight, s.CellWall)
	if err != nil {
		return err
	}
	if size := plan.Size(); size.X > ctx.Width() || size.Y > ctx.Height() {
		return fault.Configf("grid plan needs %dx%d tiles, map is %dx%d", size.X, size.Y, ctx.Width(), ctx.Height())
	}
	ctx.SetGridPlan(plan)
	return nil
}

// DrawGridPlan converts the grid plan into a fresh floor plan. Drawing the
// floor plan is left to DrawFloorPlan.
type DrawGridPlan[T gridplan.Context] struct{}

func (s *DrawGridPlan[T]) Apply(ctx T) error {
	plan := ctx.GridPlan()
	if plan == nil {
		return fault.Configf("no grid plan to draw")
	}
	size := plan.Size()
	fp := floorplan.New(geom.NewRect(0, 0, size.X, size.Y))
	if err := plan.PlaceRoomsOnFloor(ctx.Rand(), fp); err != nil {
		return errors.Wrap(err, "placing grid rooms")
	}
	ctx.SetFloorPlan(fp)
	ctx.Logger().Printf("grid plan placed %d rooms and %d halls", fp.RoomCount(), fp.HallCount())
	return nil
}

// DrawFloorPlan draws every room and hall of the floor plan onto the map.
type DrawFloorPlan[T floorplan.Context] struct{}

func (s *DrawFloorPlan[T]) Apply(ctx T) error {
	plan := ctx.FloorPlan()
	if plan == nil {
		return fault.Configf("no floor plan to draw")
	}
	return plan.DrawOnMap(ctx, ctx.Rand())
}
