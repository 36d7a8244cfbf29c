// Package devtools provides developer tools for inspecting generated layouts.
package devtools

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/pkg/errors"

	"tilelayout/pkg/engine/geom"
	"tilelayout/pkg/engine/world"
	"tilelayout/pkg/layout/audit"
	"tilelayout/pkg/layout/floorplan"
	"tilelayout/pkg/layout/state"
)

// DefaultDumpFilename is where DumpToFile writes when no path is given.
const DefaultDumpFilename = "layout.txt"

// tileSymbol returns the single-character symbol for a tile with overlays.
func tileSymbol(l *state.Layout, loc geom.Loc, exits map[geom.Loc]bool) byte {
	if entrance, ok := l.Entrance(); ok && entrance == loc {
		return '<'
	}
	if exits[loc] {
		return '>'
	}
	if it := l.ItemAt(loc); it != nil {
		if it.Blocking {
			return 'B'
		}
		return 'i'
	}
	switch l.Tile(loc).Terrain {
	case world.Floor:
		return '.'
	case world.Impassable:
		return 'X'
	default:
		return '#'
	}
}

func writeMapGrid(w io.Writer, l *state.Layout) {
	exits := make(map[geom.Loc]bool)
	for _, exit := range l.Exits() {
		exits[exit] = true
	}
	line := make([]byte, l.Width())
	for y := 0; y < l.Height(); y++ {
		for x := 0; x < l.Width(); x++ {
			line[x] = tileSymbol(l, geom.Loc{X: x, Y: y}, exits)
		}
		fmt.Fprintf(w, "%s\n", line)
	}
}

// writeOwnerGrid writes the owner of each floor tile as a base-36 digit,
// '+' for owners past 35 and '#' for everything else.
func writeOwnerGrid(w io.Writer, l *state.Layout) {
	const digits = "0123456789abcdefghijklmnopqrstuvwxyz"
	line := make([]byte, l.Width())
	for y := 0; y < l.Height(); y++ {
		for x := 0; x < l.Width(); x++ {
			t := l.Tile(geom.Loc{X: x, Y: y})
			switch {
			case t.Terrain != world.Floor || t.Owner == world.NoOwner:
				line[x] = '#'
			case t.Owner < len(digits):
				line[x] = digits[t.Owner]
			default:
				line[x] = '+'
			}
		}
		fmt.Fprintf(w, "%s\n", line)
	}
}

func indexList(indices []floorplan.RoomHallIndex) string {
	parts := make([]string, len(indices))
	for i, idx := range indices {
		parts[i] = idx.String()
	}
	return strings.Join(parts, " ")
}

// Dump writes a full debug dump of a layout: metadata, legend, the tile map,
// tile ownership, plan entries, items and audit results. The format is plain
// sections of key: value lines.
func Dump(w io.Writer, l *state.Layout, title string) {
	fmt.Fprintln(w, "=== LAYOUT DUMP ===")
	fmt.Fprintln(w, "")
	fmt.Fprintln(w, "--- Metadata ---")
	fmt.Fprintf(w, "generator: %s\n", title)
	fmt.Fprintf(w, "seed: %d\n", l.Rand().Seed())
	fmt.Fprintf(w, "width: %d\n", l.Width())
	fmt.Fprintf(w, "height: %d\n", l.Height())
	fmt.Fprintf(w, "coordinate_system: x,y (0-based, x=horizontal, y=vertical)\n")
	if entrance, ok := l.Entrance(); ok {
		fmt.Fprintf(w, "entrance: %d,%d\n", entrance.X, entrance.Y)
	} else {
		fmt.Fprintln(w, "entrance: none")
	}
	for _, exit := range l.Exits() {
		fmt.Fprintf(w, "exit: %d,%d\n", exit.X, exit.Y)
	}
	fmt.Fprintln(w, "")

	fmt.Fprintln(w, "--- Legend ---")
	fmt.Fprintln(w, ". = floor  # = wall  X = impassable  < = entrance  > = exit  i = item  B = blocking item")
	fmt.Fprintln(w, "")

	fmt.Fprintln(w, "--- Map ---")
	writeMapGrid(w, l)
	fmt.Fprintln(w, "")

	fmt.Fprintln(w, "--- Owners (floor tile owner id, base 36) ---")
	writeOwnerGrid(w, l)
	fmt.Fprintln(w, "")

	fmt.Fprintln(w, "--- Floor plan ---")
	if plan := l.FloorPlan(); plan == nil {
		fmt.Fprintln(w, "  (none)")
	} else {
		fmt.Fprintf(w, "bounds: %v\n", plan.Bounds())
		fmt.Fprintf(w, "rooms: %d\n", plan.RoomCount())
		fmt.Fprintf(w, "halls: %d\n", plan.HallCount())
		for _, idx := range plan.Entries() {
			e := plan.Get(idx)
			fmt.Fprintf(w, "  %s kind: %s rect: %v tags: %q adjacent: [%s]\n",
				idx, e.Gen.Kind(), e.Draw(), e.Components.Tags(), indexList(e.Adjacents))
		}
	}
	fmt.Fprintln(w, "")

	if grid := l.GridPlan(); grid != nil {
		fmt.Fprintln(w, "--- Grid plan ---")
		fmt.Fprintf(w, "cols: %d rows: %d\n", grid.Cols(), grid.Rows())
		for i := 0; i < grid.RoomCount(); i++ {
			r := grid.GetRoom(i)
			fmt.Fprintf(w, "  room#%d cells: %v kind: %s tags: %q adjacent: %v\n",
				i, r.Cells, r.Gen.Kind(), r.Components.Tags(), grid.AdjacentRooms(i))
		}
		fmt.Fprintln(w, "")
	}

	fmt.Fprintln(w, "--- Items ---")
	var items []*world.Item
	l.Items().Each(func(it *world.Item) {
		items = append(items, it)
	})
	sort.Slice(items, func(i, j int) bool {
		a, b := items[i].Loc, items[j].Loc
		if a.Y != b.Y {
			return a.Y < b.Y
		}
		return a.X < b.X
	})
	if len(items) == 0 {
		fmt.Fprintln(w, "  (none)")
	}
	for _, it := range items {
		fmt.Fprintf(w, "  x: %d y: %d name: %q blocking: %v room: %q\n",
			it.Loc.X, it.Loc.Y, it.Name, it.Blocking, l.RoomName(l.Tile(it.Loc).Owner))
	}
	fmt.Fprintln(w, "")

	fmt.Fprintln(w, "--- Audit ---")
	report := audit.Check(l.Map)
	fmt.Fprintf(w, "walkable: %d\n", report.Walkable)
	fmt.Fprintf(w, "regions: %d\n", report.Regions)
	fmt.Fprintf(w, "reachable: %d\n", report.Reachable)
	fmt.Fprintf(w, "connected: %v\n", report.Connected())
	for _, msg := range l.Problems {
		fmt.Fprintf(w, "problem: %s\n", msg)
	}
	fmt.Fprintln(w, "")

	fmt.Fprintln(w, "=== END LAYOUT DUMP ===")
}

// DumpToFile writes Dump output to path, or DefaultDumpFilename when path is
// empty, and returns the absolute path written.
func DumpToFile(l *state.Layout, title, path string) (string, error) {
	if path == "" {
		path = DefaultDumpFilename
	}
	absPath, err := filepath.Abs(path)
	if err != nil {
		return "", errors.Wrap(err, "resolve dump path")
	}

	f, err := os.Create(absPath)
	if err != nil {
		return "", errors.Wrap(err, "create dump file")
	}
	defer f.Close()

	Dump(f, l, title)

	if err := f.Sync(); err != nil {
		return absPath, errors.Wrap(err, "sync dump file")
	}
	return absPath, nil
}
