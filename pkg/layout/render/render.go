// Package render prints layouts to the terminal.
package render

import (
	_ "embed"
	"fmt"
	"regexp"
	"sort"
	"strings"

	"github.com/gookit/color"
	"github.com/leonelquinteros/gotext"

	"tilelayout/pkg/engine/geom"
	"tilelayout/pkg/engine/world"
	"tilelayout/pkg/layout/floorplan"
	"tilelayout/pkg/layout/state"
)

// Icon constants
const (
	IconWall       = "▒"
	IconImpassable = "█"
	IconFloor      = "·"
	IconHall       = "░"
	IconEntrance   = "▼"
	IconExit       = "▲"
	IconItem       = "?"
	IconObstacle   = "■"
)

// Floor icons for themed rooms, matched against the room name.
var roomFloorIcons = map[string]string{
	"Armory":      "□",
	"Barracks":    "·",
	"Chapel":      "◇",
	"Crypt":       "◇",
	"Forge":       "▫",
	"Gallery":     "◎",
	"Kitchen":     "·",
	"Library":     "▫",
	"Pantry":      "□",
	"Storeroom":   "□",
	"Throne Room": "◎",
	"Vault":       "◆",
}

//go:embed locales/default.po
var defaultCatalog []byte

// Printer renders layouts as text, optionally colored.
type Printer struct {
	Color bool

	catalog *gotext.Po

	colorWall     color.Style
	colorFloor    color.Style
	colorHall     color.Style
	colorEntrance color.Style
	colorExit     color.Style
	colorItem     color.Style
	colorObstacle color.Style
	colorSubtle   color.Style
	colorDenied   color.Style

	regexpStringFunctions *regexp.Regexp
}

// New creates a printer using the built-in message catalog.
func New(useColor bool) *Printer {
	p := &Printer{
		Color:         useColor,
		catalog:       gotext.NewPo(),
		colorWall:     color.Style{color.FgGray},
		colorFloor:    color.Style{color.FgBlue},
		colorHall:     color.Style{color.FgGray, color.OpBold},
		colorEntrance: color.Style{color.FgGreen, color.OpBold},
		colorExit:     color.Style{color.FgGreen},
		colorItem:     color.Style{color.FgMagenta},
		colorObstacle: color.Style{color.FgYellow, color.OpBold},
		colorSubtle:   color.Style{color.FgGray, color.OpBold},
		colorDenied:   color.Style{color.FgRed, color.OpBold},

		regexpStringFunctions: regexp.MustCompile(`([a-zA-Z_]*){([a-z A-Z0-9_,:]+)}`),
	}
	p.catalog.Parse(defaultCatalog)
	return p
}

// LoadCatalog replaces the message catalog with the contents of a .po file.
func (p *Printer) LoadCatalog(data []byte) {
	p.catalog = gotext.NewPo()
	p.catalog.Parse(data)
}

func (p *Printer) style(s color.Style, text string) string {
	if !p.Color {
		return text
	}
	return s.Sprint(text)
}

// FormatText formats a message with the markup system: GT{KEY} is looked up
// in the catalog, ROOM{name} and ITEM{name} are styled.
func (p *Printer) FormatText(msg string, args ...any) string {
	ret := fmt.Sprintf(msg, args...)

	for _, match := range p.regexpStringFunctions.FindAllStringSubmatch(ret, -1) {
		function := match[1]
		operand := match[2]

		var val string
		switch function {
		case "GT":
			val = p.catalog.Get(operand)
		case "ROOM":
			val = p.style(p.colorFloor, operand)
		case "ITEM":
			val = p.style(p.colorItem, operand)
		case "DENIED":
			val = p.style(p.colorDenied, operand)
		default:
			val = fmt.Sprintf("ERROR, function not found: %v -> %v", function, operand)
		}

		ret = strings.Replace(ret, match[0], val, -1)
	}

	return ret
}

// floorIcon returns the floor icon for a room based on its name
func floorIcon(roomName string) string {
	for baseRoom, icon := range roomFloorIcons {
		if strings.Contains(roomName, baseRoom) {
			return icon
		}
	}
	return IconFloor
}

// renderTile returns the string representation of one tile
func (p *Printer) renderTile(l *state.Layout, loc geom.Loc, exits map[geom.Loc]bool) string {
	if entrance, ok := l.Entrance(); ok && entrance == loc {
		return p.style(p.colorEntrance, IconEntrance)
	}
	if exits[loc] {
		return p.style(p.colorExit, IconExit)
	}
	if it := l.ItemAt(loc); it != nil {
		if it.Blocking {
			return p.style(p.colorObstacle, IconObstacle)
		}
		return p.style(p.colorItem, IconItem)
	}

	t := l.Tile(loc)
	switch t.Terrain {
	case world.Impassable:
		return p.style(p.colorSubtle, IconImpassable)
	case world.Wall:
		return p.style(p.colorWall, IconWall)
	}
	if plan := l.FloorPlan(); plan != nil {
		if idx, ok := plan.EntryAt(t.Owner); ok {
			if idx.IsHall || plan.Get(idx).Components.Has(floorplan.TagHall) {
				return p.style(p.colorHall, IconHall)
			}
			return p.style(p.colorFloor, floorIcon(plan.Get(idx).Components.Name()))
		}
	}
	return p.style(p.colorFloor, IconFloor)
}

// Map renders the tiles of a layout, one line per row.
func (p *Printer) Map(l *state.Layout) string {
	exits := make(map[geom.Loc]bool)
	for _, exit := range l.Exits() {
		exits[exit] = true
	}
	var sb strings.Builder
	for y := 0; y < l.Height(); y++ {
		for x := 0; x < l.Width(); x++ {
			sb.WriteString(p.renderTile(l, geom.Loc{X: x, Y: y}, exits))
		}
		sb.WriteByte('\n')
	}
	return sb.String()
}

// Legend renders the icon legend on one line.
func (p *Printer) Legend() string {
	entries := []struct {
		icon  string
		style color.Style
		key   string
	}{
		{IconWall, p.colorWall, "WALL"},
		{IconFloor, p.colorFloor, "FLOOR"},
		{IconHall, p.colorHall, "HALL"},
		{IconEntrance, p.colorEntrance, "ENTRANCE"},
		{IconExit, p.colorExit, "EXIT"},
		{IconItem, p.colorItem, "ITEM"},
		{IconObstacle, p.colorObstacle, "OBSTACLE"},
	}
	parts := make([]string, len(entries))
	for i, e := range entries {
		parts[i] = p.style(e.style, e.icon) + " " + p.FormatText("GT{%s}", e.key)
	}
	return p.FormatText("GT{LEGEND}: ") + strings.Join(parts, p.style(p.colorSubtle, ", "))
}

// Summary lists the named rooms, item counts and audit problems.
func (p *Printer) Summary(l *state.Layout) string {
	var sb strings.Builder
	if plan := l.FloorPlan(); plan != nil {
		var names []string
		for i := 0; i < plan.RoomCount(); i++ {
			if name := plan.Get(floorplan.RoomHallIndex{Index: i}).Components.Name(); name != "" {
				names = append(names, p.FormatText("ROOM{%s}", name))
			}
		}
		sb.WriteString(p.FormatText("GT{ROOMS}: %d", plan.RoomCount()))
		if len(names) > 0 {
			sb.WriteString(" (" + strings.Join(names, ", ") + ")")
		}
		sb.WriteString(p.FormatText("\nGT{HALLS}: %d\n", plan.HallCount()))
	}

	counts := make(map[string]int)
	l.Items().Each(func(it *world.Item) {
		counts[it.Name]++
	})
	var items []string
	for name, n := range counts {
		items = append(items, p.FormatText("ITEM{%s} x%d", name, n))
	}
	sort.Strings(items)
	sb.WriteString(p.FormatText("GT{ITEMS}: ") + strings.Join(items, ", ") + "\n")

	if len(l.Problems) > 0 {
		sb.WriteString(p.FormatText("GT{PROBLEMS}:\n"))
		for _, msg := range l.Problems {
			sb.WriteString("- " + p.style(p.colorDenied, msg) + "\n")
		}
	}
	return sb.String()
}

// Layout renders the header, map, legend and summary of a layout.
func (p *Printer) Layout(l *state.Layout, title string) string {
	var sb strings.Builder
	sb.WriteString(p.style(p.colorSubtle, fmt.Sprintf("%s  ", title)))
	sb.WriteString(p.FormatText("GT{SEED} %d  %dx%d\n\n", l.Rand().Seed(), l.Width(), l.Height()))
	sb.WriteString(p.Map(l))
	sb.WriteString("\n" + p.Legend() + "\n")
	sb.WriteString(p.Summary(l))
	return sb.String()
}
