package floorplan

import (
	"log"

	"tilelayout/pkg/engine/rng"
	"tilelayout/pkg/engine/world"
)

// Context is a generation context that carries a floor plan.
type Context interface {
	world.Tiled
	Rand() rng.Random
	Logger() *log.Logger
	FloorPlan() *FloorPlan
	SetFloorPlan(p *FloorPlan)
}
