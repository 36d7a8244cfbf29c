package generator

import (
	"tilelayout/pkg/engine/geom"
	"tilelayout/pkg/layout/config"
	"tilelayout/pkg/layout/floorplan"
	"tilelayout/pkg/layout/pathbranch"
	"tilelayout/pkg/layout/pipeline"
	"tilelayout/pkg/layout/state"
	"tilelayout/pkg/layout/steps"
)

// FloorGenerator grows a free-form floor plan with path-branch growth.
type FloorGenerator struct {
	width, height int
	pipeline      *pipeline.Pipeline[*state.Layout]
}

// NewFloorGenerator builds the path-branch pipeline from cfg.
func NewFloorGenerator(cfg *config.Config) (*FloorGenerator, error) {
	rooms, err := NewShapeList(cfg.Rooms)
	if err != nil {
		return nil, err
	}
	halls, err := NewShapeList(cfg.Halls)
	if err != nil {
		return nil, err
	}

	p := pipeline.New[*state.Layout]()
	p.Add(PriorityTiles, &steps.InitTiles[*state.Layout]{
		Width:            cfg.Width,
		Height:           cfg.Height,
		ImpassableBorder: cfg.ImpassableBorder,
	})
	p.Add(PriorityPlan, &steps.InitFloorPlan[*state.Layout]{Margin: cfg.Floor.Margin})
	p.Add(PriorityGrow, &pathbranch.Grower[*state.Layout]{
		FillPercent:      cfg.Floor.FillPercent.IntRange(),
		BranchRatio:      cfg.Floor.BranchRatio.IntRange(),
		HallPercent:      cfg.Floor.HallPercent,
		RoomGens:         rooms,
		HallGens:         halls,
		RoomComponents:   floorplan.NewComponents(floorplan.TagMain),
		HallComponents:   floorplan.NewComponents(floorplan.TagHall),
		NoForcedBranches: cfg.Floor.NoForcedBranches,
	})
	p.Add(PriorityDraw, &steps.DrawFloorPlan[*state.Layout]{})
	addFinishing(p, cfg)

	return &FloorGenerator{width: cfg.Width, height: cfg.Height, pipeline: p}, nil
}

// Name returns the name of this generator
func (g *FloorGenerator) Name() string {
	return "Path Branch"
}

func (g *FloorGenerator) Size() geom.Loc {
	return geom.Loc{X: g.width, Y: g.height}
}

func (g *FloorGenerator) Pipeline() *pipeline.Pipeline[*state.Layout] {
	return g.pipeline
}
