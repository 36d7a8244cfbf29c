// Package state holds the mutable context a generation pipeline runs over.
package state

import (
	"io"
	"log"

	"tilelayout/pkg/engine/rng"
	"tilelayout/pkg/engine/world"
	"tilelayout/pkg/layout/floorplan"
	"tilelayout/pkg/layout/gridplan"
)

// Layout is the shared generation context. Its tile map is embedded so the
// layout itself can be drawn on.
type Layout struct {
	*world.Map

	rand   rng.Random
	logger *log.Logger

	floorPlan *floorplan.FloorPlan
	gridPlan  *gridplan.GridPlan

	Problems []string
}

// NewLayout creates a context with a wall-filled map. Logging is discarded
// until SetLogger is called.
func NewLayout(r rng.Random, width, height int) *Layout {
	return &Layout{
		Map:    world.NewMap(width, height),
		rand:   r,
		logger: log.New(io.Discard, "", 0),
	}
}

// Rand returns the random source of the run
func (l *Layout) Rand() rng.Random {
	return l.rand
}

// Logger returns the logger steps report to
func (l *Layout) Logger() *log.Logger {
	return l.logger
}

// SetLogger replaces the logger. A nil logger discards.
func (l *Layout) SetLogger(logger *log.Logger) {
	if logger == nil {
		logger = log.New(io.Discard, "", 0)
	}
	l.logger = logger
}

// Tiles returns the tile map
func (l *Layout) Tiles() *world.Map {
	return l.Map
}

// SetTiles replaces the tile map
func (l *Layout) SetTiles(m *world.Map) {
	l.Map = m
}

func (l *Layout) FloorPlan() *floorplan.FloorPlan {
	return l.floorPlan
}

func (l *Layout) SetFloorPlan(p *floorplan.FloorPlan) {
	l.floorPlan = p
}

func (l *Layout) GridPlan() *gridplan.GridPlan {
	return l.gridPlan
}

func (l *Layout) SetGridPlan(p *gridplan.GridPlan) {
	l.gridPlan = p
}

// AddProblem records an audit finding
func (l *Layout) AddProblem(msg string) {
	l.Problems = append(l.Problems, msg)
}

// ClearProblems clears all recorded findings
func (l *Layout) ClearProblems() {
	l.Problems = nil
}

// RoomName returns the name given to the floor plan entry that owns a tile
// owner id, or "" when it has none.
func (l *Layout) RoomName(owner int) string {
	if l.floorPlan == nil || owner == world.NoOwner {
		return ""
	}
	idx, ok := l.floorPlan.EntryAt(owner)
	if !ok {
		return ""
	}
	return l.floorPlan.Get(idx).Components.Name()
}
