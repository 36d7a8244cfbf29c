// Package config loads generation settings from YAML. Files are overlaid on
// the built-in defaults, so a file only needs the keys it changes.
package config

import (
	"os"
	"strings"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"

	"tilelayout/pkg/engine/fault"
	"tilelayout/pkg/engine/geom"
)

// Generation modes.
const (
	ModeFloor = "floor"
	ModeGrid  = "grid"
)

// Shape kinds.
const (
	KindSquare   = "square"
	KindCross    = "cross"
	KindRound    = "round"
	KindCave     = "cave"
	KindAngled   = "angled"
	KindJunction = "junction"
)

// DefaultYAML is the built-in configuration. Every other configuration is
// overlaid on it.
const DefaultYAML = `# tilelayout configuration
seed: 0
width: 80
height: 40
mode: floor
impassable_border: true

floor:
  margin: 1
  fill_percent: {min: 45, max: 60}
  branch_ratio: {min: 20, max: 60}
  hall_percent: 50
  no_forced_branches: false

grid:
  cols: 6
  rows: 4
  cell_width: 9
  cell_height: 7
  cell_wall: 1
  branch_percent: 30
  line_length: {min: 2, max: 4}
  extra_lines: 1
  room_percent: 70

# Ranges are inclusive.
rooms:
  - kind: square
    weight: 10
    width: {min: 4, max: 9}
    height: {min: 3, max: 7}
  - kind: round
    weight: 4
    width: {min: 5, max: 9}
    height: {min: 5, max: 8}
  - kind: cross
    weight: 3
    width: {min: 5, max: 9}
    height: {min: 5, max: 9}
    bar_width: {min: 1, max: 3}
  - kind: cave
    weight: 2
    width: {min: 7, max: 12}
    height: {min: 6, max: 10}
    fill_percent: 45
    min_area_percent: 40

halls:
  - kind: angled
    weight: 10
    width: {min: 1, max: 6}
    height: {min: 1, max: 6}
    turn_bias: 50

junction:
  kind: junction
  weight: 1
  width: {min: 1, max: 3}
  height: {min: 1, max: 3}

items:
  count: {min: 4, max: 10}
  spawns:
    - name: chest
      weight: 2
      blocking: true
    - name: key
      weight: 1
    - name: potion
      weight: 4
    - name: statue
      weight: 1
      blocking: true
      tags: [decor]

audit:
  strict: false

names:
  - Armory
  - Barracks
  - Chapel
  - Crypt
  - Forge
  - Gallery
  - Kitchen
  - Library
  - Pantry
  - Storeroom
  - Throne Room
  - Vault
`

// Range is an inclusive integer range.
type Range struct {
	Min int `yaml:"min"`
	Max int `yaml:"max"`
}

// IntRange converts the inclusive range to a half-open geom.IntRange.
func (r Range) IntRange() geom.IntRange {
	return geom.IntRange{Min: r.Min, Max: r.Max + 1}
}

func (r Range) validate(name string, lo int) error {
	if r.Min < lo || r.Max < r.Min {
		return fault.Configf("%s: range %d..%d must satisfy %d <= min <= max", name, r.Min, r.Max, lo)
	}
	return nil
}

// FloorConfig configures path-branch growth.
type FloorConfig struct {
	Margin           int   `yaml:"margin"`
	FillPercent      Range `yaml:"fill_percent"`
	BranchRatio      Range `yaml:"branch_ratio"`
	HallPercent      int   `yaml:"hall_percent"`
	NoForcedBranches bool  `yaml:"no_forced_branches"`
}

// GridConfig configures grid plans and the line walker that fills them.
type GridConfig struct {
	Cols          int   `yaml:"cols"`
	Rows          int   `yaml:"rows"`
	CellWidth     int   `yaml:"cell_width"`
	CellHeight    int   `yaml:"cell_height"`
	CellWall      int   `yaml:"cell_wall"`
	BranchPercent int   `yaml:"branch_percent"`
	LineLength    Range `yaml:"line_length"`
	ExtraLines    int   `yaml:"extra_lines"`
	RoomPercent   int   `yaml:"room_percent"`
}

// ShapeConfig describes one weighted room or hall shape. Fields a kind does
// not use are ignored.
type ShapeConfig struct {
	Kind           string `yaml:"kind"`
	Weight         int    `yaml:"weight"`
	Width          Range  `yaml:"width"`
	Height         Range  `yaml:"height"`
	BarWidth       Range  `yaml:"bar_width,omitempty"`
	FillPercent    int    `yaml:"fill_percent,omitempty"`
	MinAreaPercent int    `yaml:"min_area_percent,omitempty"`
	TurnBias       int    `yaml:"turn_bias,omitempty"`
}

// ItemConfig describes one weighted item template.
type ItemConfig struct {
	Name     string   `yaml:"name"`
	Weight   int      `yaml:"weight"`
	Blocking bool     `yaml:"blocking,omitempty"`
	Tags     []string `yaml:"tags,omitempty"`
}

// ItemsConfig configures item spawning.
type ItemsConfig struct {
	Count  Range        `yaml:"count"`
	Spawns []ItemConfig `yaml:"spawns"`
}

// AuditConfig configures the connectivity audit.
type AuditConfig struct {
	Strict bool `yaml:"strict"`
}

// Config holds every generation setting.
type Config struct {
	Seed             int64         `yaml:"seed"`
	Width            int           `yaml:"width"`
	Height           int           `yaml:"height"`
	Mode             string        `yaml:"mode"`
	ImpassableBorder bool          `yaml:"impassable_border"`
	Floor            FloorConfig   `yaml:"floor"`
	Grid             GridConfig    `yaml:"grid"`
	Rooms            []ShapeConfig `yaml:"rooms"`
	Halls            []ShapeConfig `yaml:"halls"`
	Junction         ShapeConfig   `yaml:"junction"`
	Items            ItemsConfig   `yaml:"items"`
	Audit            AuditConfig   `yaml:"audit"`
	Names            []string      `yaml:"names"`
}

// Default returns the built-in configuration.
func Default() *Config {
	var cfg Config
	if err := yaml.Unmarshal([]byte(DefaultYAML), &cfg); err != nil {
		panic("invalid built-in configuration: " + err.Error())
	}
	return &cfg
}

// Parse overlays YAML data on the defaults and validates the result. Lists
// given in data replace the default lists.
func Parse(data []byte) (*Config, error) {
	cfg := Default()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, errors.Wrap(err, "config: parse")
	}
	cfg.normalize()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Load reads a YAML file and overlays it on the defaults.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrapf(err, "config: read %s", path)
	}
	cfg, err := Parse(data)
	if err != nil {
		return nil, errors.Wrapf(err, "config: %s", path)
	}
	return cfg, nil
}

// Marshal renders the configuration as YAML.
func (c *Config) Marshal() ([]byte, error) {
	return yaml.Marshal(c)
}

func (c *Config) normalize() {
	c.Mode = strings.ToLower(strings.TrimSpace(c.Mode))
	for i := range c.Rooms {
		c.Rooms[i].Kind = normalizeKind(c.Rooms[i].Kind)
	}
	for i := range c.Halls {
		c.Halls[i].Kind = normalizeKind(c.Halls[i].Kind)
	}
	c.Junction.Kind = normalizeKind(c.Junction.Kind)
	for i := range c.Items.Spawns {
		c.Items.Spawns[i].Name = strings.TrimSpace(c.Items.Spawns[i].Name)
	}
}

func normalizeKind(kind string) string {
	return strings.ToLower(strings.TrimSpace(kind))
}

// Validate reports the first configuration error.
func (c *Config) Validate() error {
	if c.Width < 3 || c.Height < 3 {
		return fault.Configf("map size %dx%d must be at least 3x3", c.Width, c.Height)
	}
	switch c.Mode {
	case ModeFloor, ModeGrid:
	default:
		return fault.Configf("mode must be %q or %q, got %q", ModeFloor, ModeGrid, c.Mode)
	}
	if err := c.Floor.validate(); err != nil {
		return errors.Wrap(err, "floor")
	}
	if err := c.Grid.validate(); err != nil {
		return errors.Wrap(err, "grid")
	}
	if err := validateShapes("rooms", c.Rooms, strictKinds); err != nil {
		return err
	}
	if err := validateShapes("halls", c.Halls, permissiveKinds); err != nil {
		return err
	}
	if err := validateShapes("junction", []ShapeConfig{c.Junction}, permissiveKinds); err != nil {
		return err
	}
	if err := c.Items.validate(); err != nil {
		return errors.Wrap(err, "items")
	}
	return nil
}

func (f FloorConfig) validate() error {
	if f.Margin < 0 {
		return fault.Configf("margin %d is negative", f.Margin)
	}
	if err := f.FillPercent.validate("fill_percent", 1); err != nil {
		return err
	}
	if f.FillPercent.Max > 100 {
		return fault.Configf("fill_percent above 100")
	}
	if err := f.BranchRatio.validate("branch_ratio", 0); err != nil {
		return err
	}
	if f.HallPercent < 0 || f.HallPercent > 100 {
		return fault.Configf("hall_percent %d outside 0..100", f.HallPercent)
	}
	return nil
}

func (g GridConfig) validate() error {
	if g.Cols <= 0 || g.Rows <= 0 || g.CellWidth <= 0 || g.CellHeight <= 0 || g.CellWall <= 0 {
		return fault.Configf("grid %dx%d of %dx%d cells with wall %d must be positive", g.Cols, g.Rows, g.CellWidth, g.CellHeight, g.CellWall)
	}
	if err := g.LineLength.validate("line_length", 1); err != nil {
		return err
	}
	if g.BranchPercent < 0 || g.BranchPercent > 100 || g.RoomPercent < 0 || g.RoomPercent > 100 {
		return fault.Configf("percentages must lie in 0..100")
	}
	if g.ExtraLines < 0 {
		return fault.Configf("extra_lines %d is negative", g.ExtraLines)
	}
	return nil
}

var (
	strictKinds     = []string{KindSquare, KindCross, KindRound, KindCave}
	permissiveKinds = []string{KindAngled, KindJunction}
)

func validateShapes(section string, shapes []ShapeConfig, kinds []string) error {
	total := 0
	for i, s := range shapes {
		if !contains(kinds, s.Kind) {
			return fault.Configf("%s[%d]: kind %q must be one of %s", section, i, s.Kind, strings.Join(kinds, ", "))
		}
		if s.Weight < 0 {
			return fault.Configf("%s[%d]: weight %d is negative", section, i, s.Weight)
		}
		if err := s.Width.validate(section+".width", 1); err != nil {
			return err
		}
		if err := s.Height.validate(section+".height", 1); err != nil {
			return err
		}
		if s.Kind == KindCross {
			if err := s.BarWidth.validate(section+".bar_width", 1); err != nil {
				return err
			}
		}
		total += s.Weight
	}
	if total == 0 {
		return fault.Configf("%s: total weight must be positive", section)
	}
	return nil
}

func (it ItemsConfig) validate() error {
	if err := it.Count.validate("count", 0); err != nil {
		return err
	}
	if it.Count.Max > 0 && len(it.Spawns) == 0 {
		return fault.Configf("count is positive but no spawns are configured")
	}
	total := 0
	for i, s := range it.Spawns {
		if s.Name == "" {
			return fault.Configf("spawns[%d]: name is required", i)
		}
		if s.Weight < 0 {
			return fault.Configf("spawns[%d]: weight %d is negative", i, s.Weight)
		}
		total += s.Weight
	}
	if len(it.Spawns) > 0 && total == 0 {
		return fault.Configf("spawns: total weight must be positive")
	}
	return nil
}

func contains(values []string, target string) bool {
	for _, v := range values {
		if v == target {
			return true
		}
	}
	return false
}
