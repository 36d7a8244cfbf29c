package generator

import (
	"tilelayout/pkg/engine/geom"
	"tilelayout/pkg/layout/config"
	"tilelayout/pkg/layout/floorplan"
	"tilelayout/pkg/layout/pipeline"
	"tilelayout/pkg/layout/state"
	"tilelayout/pkg/layout/steps"
)

// GridGenerator lays rooms out on a grid of cells with a line walker.
type GridGenerator struct {
	size     geom.Loc
	pipeline *pipeline.Pipeline[*state.Layout]
}

// NewGridGenerator builds the grid pipeline from cfg. The map is sized to fit
// the grid; cfg.Width and cfg.Height are ignored.
func NewGridGenerator(cfg *config.Config) (*GridGenerator, error) {
	rooms, err := NewShapeList(cfg.Rooms)
	if err != nil {
		return nil, err
	}
	halls, err := NewShapeList(cfg.Halls)
	if err != nil {
		return nil, err
	}
	junction, err := NewShape(cfg.Junction)
	if err != nil {
		return nil, err
	}

	gc := cfg.Grid
	size := geom.Loc{
		X: gc.Cols*(gc.CellWidth+gc.CellWall) + gc.CellWall,
		Y: gc.Rows*(gc.CellHeight+gc.CellWall) + gc.CellWall,
	}

	p := pipeline.New[*state.Layout]()
	p.Add(PriorityTiles, &steps.InitTiles[*state.Layout]{
		Width:            size.X,
		Height:           size.Y,
		ImpassableBorder: cfg.ImpassableBorder,
	})
	p.Add(PriorityPlan, &steps.InitGridPlan[*state.Layout]{
		Cols:       gc.Cols,
		Rows:       gc.Rows,
		CellWidth:  gc.CellWidth,
		CellHeight: gc.CellHeight,
		CellWall:   gc.CellWall,
	})
	p.Add(PriorityGrow, &LineWalker[*state.Layout]{
		BranchPercent:  gc.BranchPercent,
		LineLength:     gc.LineLength.IntRange(),
		ExtraLines:     gc.ExtraLines,
		RoomPercent:    gc.RoomPercent,
		RoomGens:       rooms,
		HallGens:       halls,
		Junction:       junction,
		RoomComponents: floorplan.NewComponents(floorplan.TagMain),
		HallComponents: floorplan.NewComponents(floorplan.TagHall),
	})
	p.Add(PriorityDraw, &steps.DrawGridPlan[*state.Layout]{})
	p.Add(PriorityDraw.Push(1), &steps.DrawFloorPlan[*state.Layout]{})
	addFinishing(p, cfg)

	return &GridGenerator{size: size, pipeline: p}, nil
}

// Name returns the name of this generator
func (g *GridGenerator) Name() string {
	return "Line Walker"
}

func (g *GridGenerator) Size() geom.Loc {
	return g.size
}

func (g *GridGenerator) Pipeline() *pipeline.Pipeline[*state.Layout] {
	return g.pipeline
}
