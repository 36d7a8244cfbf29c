package generator

import (
	"testing"

	"tilelayout/pkg/engine/fault"
	"tilelayout/pkg/engine/geom"
	"tilelayout/pkg/layout/audit"
	"tilelayout/pkg/layout/config"
	"tilelayout/pkg/layout/floorplan"
	"tilelayout/pkg/layout/pipeline"
	"tilelayout/pkg/layout/state"
)

func generate(t *testing.T, cfg *config.Config, seed int64) *state.Layout {
	t.Helper()
	g, err := FromConfig(cfg)
	if err != nil {
		t.Fatalf("FromConfig error: %v", err)
	}
	l, err := Generate(g, seed, nil, nil)
	if err != nil {
		t.Fatalf("Generate(%d) error: %v\n%s", seed, err, l.Map)
	}
	return l
}

func checkLayout(t *testing.T, l *state.Layout, seed int64) {
	t.Helper()
	if _, ok := l.Entrance(); !ok {
		t.Errorf("seed %d: no entrance", seed)
	}
	if len(l.Exits()) != 1 {
		t.Errorf("seed %d: Exits() = %v, want one", seed, l.Exits())
	}
	if r := audit.Check(l.Map); !r.Connected() {
		t.Errorf("seed %d: layout not connected: %v\n%s", seed, r.Problems(), l.Map)
	}
	if len(l.Problems) != 0 {
		t.Errorf("seed %d: audit problems %v", seed, l.Problems)
	}
}

func TestFloorGenerator(t *testing.T) {
	cfg := config.Default()
	for seed := int64(0); seed < 8; seed++ {
		l := generate(t, cfg, seed)
		checkLayout(t, l, seed)
		if l.Width() != cfg.Width || l.Height() != cfg.Height {
			t.Errorf("seed %d: size %dx%d, want %dx%d", seed, l.Width(), l.Height(), cfg.Width, cfg.Height)
		}
		if l.FloorPlan().RoomCount() < 2 {
			t.Errorf("seed %d: RoomCount = %d, want at least 2", seed, l.FloorPlan().RoomCount())
		}
	}
}

func TestGridGenerator(t *testing.T) {
	cfg := config.Default()
	cfg.Mode = config.ModeGrid
	for seed := int64(0); seed < 8; seed++ {
		l := generate(t, cfg, seed)
		checkLayout(t, l, seed)
		if size := l.GridPlan().Size(); l.Width() != size.X || l.Height() != size.Y {
			t.Errorf("seed %d: size %dx%d, want grid size %v", seed, l.Width(), l.Height(), size)
		}
	}
}

func TestGenerate_SameSeedSameLayout(t *testing.T) {
	for _, mode := range []string{config.ModeFloor, config.ModeGrid} {
		cfg := config.Default()
		cfg.Mode = mode
		a := generate(t, cfg, 99)
		b := generate(t, cfg, 99)
		if !a.Map.Equal(b.Map) {
			t.Errorf("%s: same seed drew different maps\n%s\n%s", mode, a.Map, b.Map)
		}
		ea, _ := a.Entrance()
		eb, _ := b.Entrance()
		if ea != eb {
			t.Errorf("%s: entrances %v and %v differ", mode, ea, eb)
		}
		if a.Items().Size() != b.Items().Size() {
			t.Errorf("%s: item counts %d and %d differ", mode, a.Items().Size(), b.Items().Size())
		}
	}
}

func TestGenerate_ObserverSeesEveryStepInOrder(t *testing.T) {
	g, err := NewFloorGenerator(config.Default())
	if err != nil {
		t.Fatalf("NewFloorGenerator error: %v", err)
	}
	var seen []pipeline.Priority
	_, err = Generate(g, 1, nil, func(p pipeline.Priority, _ pipeline.Step[*state.Layout], _ *state.Layout) {
		seen = append(seen, p)
	})
	if err != nil {
		t.Fatalf("Generate error: %v", err)
	}
	if len(seen) != g.Pipeline().Len() {
		t.Errorf("observer saw %d steps, want %d", len(seen), g.Pipeline().Len())
	}
	for i := 1; i < len(seen); i++ {
		if seen[i].Less(seen[i-1]) {
			t.Errorf("step %d at %v ran after %v", i, seen[i], seen[i-1])
		}
	}
}

func TestLineWalker_RoomsJoined(t *testing.T) {
	cfg := config.Default()
	cfg.Mode = config.ModeGrid
	for seed := int64(0); seed < 5; seed++ {
		l := generate(t, cfg, seed)
		plan := l.GridPlan()
		if plan.RoomCount() < 2 {
			t.Fatalf("seed %d: RoomCount = %d, want at least 2", seed, plan.RoomCount())
		}
		roots := 0
		for i := 0; i < plan.RoomCount(); i++ {
			if len(plan.AdjacentRooms(i)) == 0 {
				t.Errorf("seed %d: grid room %d has no hall", seed, i)
			}
			if plan.GetRoom(i).Components.Has(floorplan.TagRoot) {
				roots++
			}
		}
		if roots != 1 {
			t.Errorf("seed %d: %d root rooms, want 1", seed, roots)
		}
		center := geom.Loc{X: plan.Cols() / 2, Y: plan.Rows() / 2}
		if plan.RoomAt(center) != 0 {
			t.Errorf("seed %d: RoomAt(center) = %d, want 0", seed, plan.RoomAt(center))
		}
	}
}

func TestFromConfig_UnknownMode(t *testing.T) {
	cfg := config.Default()
	cfg.Mode = "maze"
	if _, err := FromConfig(cfg); !fault.IsConfiguration(err) {
		t.Errorf("FromConfig(maze) error = %v, want configuration error", err)
	}
}

func TestNewShape_UnknownKind(t *testing.T) {
	if _, err := NewShape(config.ShapeConfig{Kind: "hexagon"}); !fault.IsConfiguration(err) {
		t.Errorf("NewShape(hexagon) error = %v, want configuration error", err)
	}
}
