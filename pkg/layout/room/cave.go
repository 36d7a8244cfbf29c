package room

import (
	"tilelayout/pkg/engine/geom"
	"tilelayout/pkg/engine/grid"
	"tilelayout/pkg/engine/rng"
	"tilelayout/pkg/engine/world"
)

const (
	caveAttempts  = 20
	caveSmoothing = 2
)

// Cave grows random noise into an irregular blob. Edge tiles in line with the
// blob are fulfillable; reaching the blob from them may need digging.
type Cave struct {
	Base
	Width  geom.IntRange
	Height geom.IntRange
	// FillPercent is the chance of each tile starting as floor.
	FillPercent int
	// MinAreaPercent is the smallest blob, relative to the proposed area, accepted.
	MinAreaPercent int

	tiles [][]bool // [x][y], sized to the prepared rectangle
}

// NewCave creates a cave room.
func NewCave(width, height geom.IntRange, fillPercent, minAreaPercent int) *Cave {
	return &Cave{Width: width, Height: height, FillPercent: fillPercent, MinAreaPercent: minAreaPercent}
}

func (c *Cave) Kind() string { return "cave" }

func (c *Cave) Copy() Gen {
	out := &Cave{Base: c.Base.clone(), Width: c.Width, Height: c.Height, FillPercent: c.FillPercent, MinAreaPercent: c.MinAreaPercent}
	for _, col := range c.tiles {
		out.tiles = append(out.tiles, append([]bool(nil), col...))
	}
	return out
}

// ProposeSize grows noise until a blob of acceptable area appears and returns
// the size of its bounding box. Gives up with a solid rectangle.
func (c *Cave) ProposeSize(r rng.Random) geom.Loc {
	for attempt := 0; attempt < caveAttempts; attempt++ {
		size := sizeIn(r, c.Width, c.Height)
		noise := c.noise(r, size)
		blobs := grid.DetectBlobs(geom.Rect{Size: size}, func(loc geom.Loc) bool { return noise[loc.X][loc.Y] })
		best := largestBlob(blobs)
		if best < 0 || blobs.Blobs[best].Area*100 < size.X*size.Y*c.MinAreaPercent {
			continue
		}
		c.tiles = cropBlob(blobs, best)
		return blobs.Blobs[best].Bounds.Size
	}
	size := sizeIn(r, c.Width, c.Height)
	c.tiles = solid(size)
	return size
}

func (c *Cave) noise(r rng.Random, size geom.Loc) [][]bool {
	tiles := make([][]bool, size.X)
	for x := range tiles {
		tiles[x] = make([]bool, size.Y)
		for y := range tiles[x] {
			tiles[x][y] = rng.Chance(r, c.FillPercent)
		}
	}
	for i := 0; i < caveSmoothing; i++ {
		tiles = smooth(tiles, size)
	}
	return tiles
}

// smooth keeps a tile as floor when most of its 3x3 neighborhood is floor.
func smooth(tiles [][]bool, size geom.Loc) [][]bool {
	out := make([][]bool, size.X)
	for x := range out {
		out[x] = make([]bool, size.Y)
		for y := range out[x] {
			n := 0
			for dx := -1; dx <= 1; dx++ {
				for dy := -1; dy <= 1; dy++ {
					nx, ny := x+dx, y+dy
					if nx >= 0 && ny >= 0 && nx < size.X && ny < size.Y && tiles[nx][ny] {
						n++
					}
				}
			}
			out[x][y] = n >= 5
		}
	}
	return out
}

func largestBlob(blobs grid.BlobMap) int {
	best := -1
	for i, b := range blobs.Blobs {
		if best < 0 || b.Area > blobs.Blobs[best].Area {
			best = i
		}
	}
	return best
}

// cropBlob returns the tiles of one blob cut to its bounding box.
func cropBlob(blobs grid.BlobMap, label int) [][]bool {
	bounds := blobs.Blobs[label].Bounds
	tiles := make([][]bool, bounds.Width())
	for x := range tiles {
		tiles[x] = make([]bool, bounds.Height())
		for y := range tiles[x] {
			tiles[x][y] = blobs.Label(geom.Loc{X: bounds.Left() + x, Y: bounds.Top() + y}) == label
		}
	}
	return tiles
}

func solid(size geom.Loc) [][]bool {
	tiles := make([][]bool, size.X)
	for x := range tiles {
		tiles[x] = make([]bool, size.Y)
		for y := range tiles[x] {
			tiles[x][y] = true
		}
	}
	return tiles
}

// PrepareFulfillableBorders marks every edge offset whose row or column holds
// blob tiles. A size other than the proposed one gets a fresh blob.
func (c *Cave) PrepareFulfillableBorders(r rng.Random) {
	size := c.draw.Size
	if len(c.tiles) != size.X || len(c.tiles[0]) != size.Y {
		noise := c.noise(r, size)
		blobs := grid.DetectBlobs(geom.Rect{Size: size}, func(loc geom.Loc) bool { return noise[loc.X][loc.Y] })
		c.tiles = make([][]bool, size.X)
		for x := range c.tiles {
			c.tiles[x] = make([]bool, size.Y)
		}
		if best := largestBlob(blobs); best >= 0 {
			for x := range c.tiles {
				for y := range c.tiles[x] {
					c.tiles[x][y] = blobs.Map[x][y] == best
				}
			}
		} else {
			c.tiles[size.X/2][size.Y/2] = true
		}
	}

	for x := 0; x < size.X; x++ {
		for y := 0; y < size.Y; y++ {
			if !c.tiles[x][y] {
				continue
			}
			c.fulfillable[geom.North][x] = true
			c.fulfillable[geom.South][x] = true
			c.fulfillable[geom.West][y] = true
			c.fulfillable[geom.East][y] = true
		}
	}
}

func (c *Cave) DrawOnMap(m world.Tiled, r rng.Random) error {
	for x, col := range c.tiles {
		for y, floor := range col {
			if floor {
				m.TrySetTile(c.draw.Start.Add(geom.Loc{X: x, Y: y}), m.RoomTerrain())
			}
		}
	}
	return FulfillRoomBorders(&c.Base, m, r)
}
