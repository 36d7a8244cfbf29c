// Package generator assembles the preset generation pipelines.
package generator

import (
	"log"

	"github.com/pkg/errors"

	"tilelayout/pkg/engine/fault"
	"tilelayout/pkg/engine/geom"
	"tilelayout/pkg/engine/rng"
	"tilelayout/pkg/engine/world"
	"tilelayout/pkg/layout/config"
	"tilelayout/pkg/layout/pipeline"
	"tilelayout/pkg/layout/room"
	"tilelayout/pkg/layout/state"
	"tilelayout/pkg/layout/steps"
)

// Stage priorities shared by the presets. Sub-steps of a stage use Push.
var (
	PriorityTiles = pipeline.P(-4)
	PriorityPlan  = pipeline.P(-2)
	PriorityGrow  = pipeline.P(0)
	PriorityDraw  = pipeline.P(2)
	PriorityPlace = pipeline.P(4)
	PriorityAudit = pipeline.P(6)
)

// Generator builds layouts from seeds.
type Generator interface {
	Name() string
	// Size returns the map size the generator draws on.
	Size() geom.Loc
	Pipeline() *pipeline.Pipeline[*state.Layout]
}

// Generate runs a generator's pipeline over a fresh layout. The observer and
// logger may be nil.
func Generate(g Generator, seed int64, logger *log.Logger, observer pipeline.Observer[*state.Layout]) (*state.Layout, error) {
	size := g.Size()
	l := state.NewLayout(rng.New(seed), size.X, size.Y)
	l.SetLogger(logger)
	if err := g.Pipeline().Apply(l, observer); err != nil {
		return l, errors.Wrapf(err, "%s generator, seed %d", g.Name(), seed)
	}
	return l, nil
}

// FromConfig builds the generator selected by cfg.Mode.
func FromConfig(cfg *config.Config) (Generator, error) {
	switch cfg.Mode {
	case config.ModeFloor:
		return NewFloorGenerator(cfg)
	case config.ModeGrid:
		return NewGridGenerator(cfg)
	default:
		return nil, fault.Configf("unknown mode %q", cfg.Mode)
	}
}

// NewShape builds a room shape template from its configuration.
func NewShape(s config.ShapeConfig) (room.Gen, error) {
	w, h := s.Width.IntRange(), s.Height.IntRange()
	switch s.Kind {
	case config.KindSquare:
		return room.NewSquare(w, h), nil
	case config.KindCross:
		return room.NewCross(w, h, s.BarWidth.IntRange()), nil
	case config.KindRound:
		return room.NewRound(w, h), nil
	case config.KindCave:
		return room.NewCave(w, h, s.FillPercent, s.MinAreaPercent), nil
	case config.KindAngled:
		return room.NewAngledHall(w, h, s.TurnBias), nil
	case config.KindJunction:
		return room.NewJunction(w, h), nil
	default:
		return nil, fault.Configf("unknown shape kind %q", s.Kind)
	}
}

// NewShapeList builds a weighted list of shape templates.
func NewShapeList(shapes []config.ShapeConfig) (*rng.SpawnList[room.Gen], error) {
	list := rng.NewSpawnList[room.Gen]()
	for i, s := range shapes {
		gen, err := NewShape(s)
		if err != nil {
			return nil, errors.Wrapf(err, "shape %d", i)
		}
		list.Add(gen, s.Weight)
	}
	return list, nil
}

// NewItemList builds a weighted list of item templates.
func NewItemList(items []config.ItemConfig) *rng.SpawnList[*world.Item] {
	list := rng.NewSpawnList[*world.Item]()
	for _, it := range items {
		tmpl := world.NewItem(it.Name)
		tmpl.Blocking = it.Blocking
		tmpl.Tags = append([]string(nil), it.Tags...)
		list.Add(tmpl, it.Weight)
	}
	return list
}

// addFinishing schedules the steps every preset runs once the floor plan is drawn.
func addFinishing(p *pipeline.Pipeline[*state.Layout], cfg *config.Config) {
	p.Add(PriorityPlace, &steps.EntranceExit[*state.Layout]{})
	p.Add(PriorityPlace.Push(1), &steps.SpawnItems[*state.Layout]{
		Spawns: NewItemList(cfg.Items.Spawns),
		Amount: cfg.Items.Count.IntRange(),
	})
	p.Add(PriorityPlace.Push(2), &steps.NameRooms[*state.Layout]{Names: cfg.Names})
	p.Add(PriorityAudit, &steps.Audit[*state.Layout]{Strict: cfg.Audit.Strict})
}
