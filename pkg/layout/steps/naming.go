package steps

import (
	"fmt"

	"github.com/leonelquinteros/gotext"

	"tilelayout/pkg/engine/rng"
	"tilelayout/pkg/layout/floorplan"
)

// dynamicGet looks up names that come from configuration rather than
// constant format strings.
var dynamicGet = gotext.Get

// NameRooms gives every room of the floor plan a themed display name, stored
// as a name component. Rooms tagged as halls stay unnamed. Names are handed out
// in shuffled order; once they run out they are reused with a number appended.
type NameRooms[T floorplan.Context] struct {
	Names []string
}

func (s *NameRooms[T]) Apply(ctx T) error {
	plan := ctx.FloorPlan()
	if plan == nil || len(s.Names) == 0 {
		return nil
	}
	names := append([]string(nil), s.Names...)
	rng.Shuffle(ctx.Rand(), names)

	used := make(map[string]int)
	next := 0
	for i := 0; i < plan.RoomCount(); i++ {
		entry := plan.Get(floorplan.RoomHallIndex{Index: i})
		if entry.Components.Has(floorplan.TagHall) {
			continue
		}
		base := dynamicGet(names[next%len(names)])
		next++
		used[base]++
		name := base
		if n := used[base]; n > 1 {
			name = fmt.Sprintf("%s %d", base, n)
		}
		entry.Components = entry.Components.With(floorplan.TagNamePrefix + name)
	}
	return nil
}
