package render

import (
	"strings"
	"testing"
	"unicode/utf8"

	"tilelayout/pkg/layout/config"
	"tilelayout/pkg/layout/generator"
	"tilelayout/pkg/layout/state"
)

func layout(t *testing.T) *state.Layout {
	t.Helper()
	cfg := config.Default()
	cfg.Width, cfg.Height = 40, 20
	g, err := generator.FromConfig(cfg)
	if err != nil {
		t.Fatalf("FromConfig error: %v", err)
	}
	l, err := generator.Generate(g, 4, nil, nil)
	if err != nil {
		t.Fatalf("Generate error: %v", err)
	}
	return l
}

func TestMap_OneRunePerTile(t *testing.T) {
	l := layout(t)
	out := New(false).Map(l)
	rows := strings.Split(strings.TrimSuffix(out, "\n"), "\n")
	if len(rows) != l.Height() {
		t.Fatalf("Map() has %d rows, want %d", len(rows), l.Height())
	}
	for y, row := range rows {
		if n := utf8.RuneCountInString(row); n != l.Width() {
			t.Errorf("row %d has %d runes, want %d", y, n, l.Width())
		}
	}
	if strings.Count(out, IconEntrance) != 1 || strings.Count(out, IconExit) != 1 {
		t.Errorf("Map() should show one entrance and one exit:\n%s", out)
	}
}

func TestMap_ColorOnlyAddsCodes(t *testing.T) {
	l := layout(t)
	plain := New(false).Map(l)
	colored := New(true).Map(l)
	if got := stripCodes(colored); got != plain {
		t.Errorf("colored map differs from plain map once codes are removed")
	}
}

func stripCodes(s string) string {
	var sb strings.Builder
	inCode := false
	for _, r := range s {
		switch {
		case r == '\x1b':
			inCode = true
		case inCode && r == 'm':
			inCode = false
		case !inCode:
			sb.WriteRune(r)
		}
	}
	return sb.String()
}

func TestFormatText(t *testing.T) {
	p := New(false)
	if got := p.FormatText("GT{WALL}"); got != "wall" {
		t.Errorf("FormatText(GT{WALL}) = %q, want wall", got)
	}
	if got := p.FormatText("GT{UNKNOWN_KEY}"); got != "UNKNOWN_KEY" {
		t.Errorf("FormatText(GT{UNKNOWN_KEY}) = %q, want the key back", got)
	}
	if got := p.FormatText("ROOM{Vault} has %d ITEM{key}", 2); got != "Vault has 2 key" {
		t.Errorf("FormatText(ROOM, ITEM) = %q, want %q", got, "Vault has 2 key")
	}
}

func TestLoadCatalog(t *testing.T) {
	p := New(false)
	p.LoadCatalog([]byte("msgid \"WALL\"\nmsgstr \"Mauer\"\n"))
	if got := p.FormatText("GT{WALL}"); got != "Mauer" {
		t.Errorf("FormatText(GT{WALL}) = %q, want Mauer", got)
	}
}

func TestLayout_IncludesLegendAndSummary(t *testing.T) {
	l := layout(t)
	out := New(false).Layout(l, "Path Branch")
	for _, want := range []string{"Path Branch", "seed 4", "Legend:", "wall", "Rooms:", "Items:"} {
		if !strings.Contains(out, want) {
			t.Errorf("Layout() missing %q", want)
		}
	}
}
