package geom

// Dir4 represents a cardinal direction
type Dir4 int

// Dir4 constants
const (
	North Dir4 = iota
	East
	South
	West
)

// DirCount is the number of cardinal directions
const DirCount = 4

// AllDirections returns all valid directions for iteration
func AllDirections() []Dir4 {
	return []Dir4{North, East, South, West}
}

// String returns the string representation of a direction
func (d Dir4) String() string {
	switch d {
	case North:
		return "North"
	case East:
		return "East"
	case South:
		return "South"
	case West:
		return "West"
	default:
		return "Unknown"
	}
}

// IsValid returns true if the direction is a valid cardinal direction
func (d Dir4) IsValid() bool {
	return d >= North && d <= West
}

// Opposite returns the opposite direction
func (d Dir4) Opposite() Dir4 {
	switch d {
	case North:
		return South
	case South:
		return North
	case East:
		return West
	case West:
		return East
	default:
		return d
	}
}

// Delta returns the unit offset for this direction. Y grows southwards.
func (d Dir4) Delta() Loc {
	switch d {
	case North:
		return Loc{0, -1}
	case East:
		return Loc{1, 0}
	case South:
		return Loc{0, 1}
	case West:
		return Loc{-1, 0}
	default:
		return Loc{}
	}
}

// Axis returns the axis a step in this direction travels along.
func (d Dir4) Axis() Axis {
	if d == North || d == South {
		return Vertical
	}
	return Horizontal
}

// Dir8 converts the cardinal direction to its eight-way equivalent.
func (d Dir4) Dir8() Dir8 {
	return Dir8(d * 2)
}

// Axis is the orientation of a line or a pair of opposite sides.
type Axis int

const (
	Horizontal Axis = iota
	Vertical
)

// Dirs returns the two directions lying on the axis, negative side first.
func (a Axis) Dirs() (Dir4, Dir4) {
	if a == Vertical {
		return North, South
	}
	return West, East
}

// Orth returns the perpendicular axis.
func (a Axis) Orth() Axis {
	if a == Vertical {
		return Horizontal
	}
	return Vertical
}

// Dir8 represents one of the eight compass directions.
// Order: N, NE, E, SE, S, SW, W, NW
type Dir8 int

const (
	Dir8N Dir8 = iota
	Dir8NE
	Dir8E
	Dir8SE
	Dir8S
	Dir8SW
	Dir8W
	Dir8NW
)

// Dir8Count is the number of eight-way directions
const Dir8Count = 8

var dir8Vectors = [Dir8Count]Loc{
	{0, -1}, {1, -1}, {1, 0}, {1, 1},
	{0, 1}, {-1, 1}, {-1, 0}, {-1, -1},
}

// AllDir8 returns the eight directions in clockwise order starting north.
func AllDir8() []Dir8 {
	return []Dir8{Dir8N, Dir8NE, Dir8E, Dir8SE, Dir8S, Dir8SW, Dir8W, Dir8NW}
}

// IsValid returns true if the direction is one of the eight compass directions
func (d Dir8) IsValid() bool {
	return d >= Dir8N && d <= Dir8NW
}

// Delta returns the unit offset for this direction.
func (d Dir8) Delta() Loc {
	if !d.IsValid() {
		return Loc{}
	}
	return dir8Vectors[d]
}

// IsDiagonal reports whether the direction moves along both axes.
func (d Dir8) IsDiagonal() bool {
	return d%2 == 1
}

// Opposite returns the opposite direction
func (d Dir8) Opposite() Dir8 {
	return (d + 4) % Dir8Count
}

// Separate splits a diagonal into its two cardinal components.
// For cardinal directions both results are the direction itself.
func (d Dir8) Separate() (Dir4, Dir4) {
	if !d.IsDiagonal() {
		return Dir4(d / 2), Dir4(d / 2)
	}
	return Dir4(d / 2), Dir4((d/2 + 1) % DirCount)
}

func (d Dir8) String() string {
	switch d {
	case Dir8N:
		return "N"
	case Dir8NE:
		return "NE"
	case Dir8E:
		return "E"
	case Dir8SE:
		return "SE"
	case Dir8S:
		return "S"
	case Dir8SW:
		return "SW"
	case Dir8W:
		return "W"
	case Dir8NW:
		return "NW"
	default:
		return "?"
	}
}
