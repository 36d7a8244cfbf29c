package grid

import (
	"github.com/zyedidia/generic/queue"

	"tilelayout/pkg/engine/geom"
)

// Background marks tiles in a BlobMap that belong to no blob.
const Background = -1

// Blob is one 4-connected region found by DetectBlobs.
type Blob struct {
	Bounds geom.Rect // absolute coordinates
	Area   int       // number of tiles, not the bounding box area
}

// BlobMap labels every tile of the scanned rectangle with the index of the blob
// containing it, or Background.
type BlobMap struct {
	Rect  geom.Rect
	Map   [][]int // indexed [x][y] relative to Rect
	Blobs []Blob
}

// Label returns the blob index at an absolute location, or Background when the
// location lies outside the scanned rectangle.
func (b BlobMap) Label(loc geom.Loc) int {
	if !b.Rect.Contains(loc) {
		return Background
	}
	return b.Map[loc.X-b.Rect.Left()][loc.Y-b.Rect.Top()]
}

// DetectBlobs labels the 4-connected regions of tiles for which isTrue holds.
// Diagonal neighbors never join a region. Blobs are numbered in the order their
// first tile is met scanning rows top to bottom, left to right.
func DetectBlobs(rect geom.Rect, isTrue LocTest) BlobMap {
	result := BlobMap{Rect: rect, Map: make([][]int, rect.Width())}
	for x := range result.Map {
		result.Map[x] = make([]int, rect.Height())
		for y := range result.Map[x] {
			result.Map[x][y] = Background
		}
	}

	for y := rect.Top(); y < rect.Bottom(); y++ {
		for x := rect.Left(); x < rect.Right(); x++ {
			loc := geom.Loc{X: x, Y: y}
			if result.Label(loc) != Background || !isTrue(loc) {
				continue
			}
			result.Blobs = append(result.Blobs, result.fill(loc, len(result.Blobs), isTrue))
		}
	}
	return result
}

func (b BlobMap) fill(start geom.Loc, label int, isTrue LocTest) Blob {
	minLoc, maxLoc := start, start
	area := 0

	frontier := queue.New[geom.Loc]()
	b.Map[start.X-b.Rect.Left()][start.Y-b.Rect.Top()] = label
	frontier.Enqueue(start)

	for !frontier.Empty() {
		current := frontier.Dequeue()
		area++
		minLoc.X, minLoc.Y = min(minLoc.X, current.X), min(minLoc.Y, current.Y)
		maxLoc.X, maxLoc.Y = max(maxLoc.X, current.X), max(maxLoc.Y, current.Y)

		for _, dir := range geom.AllDirections() {
			next := current.Add(dir.Delta())
			if !b.Rect.Contains(next) || b.Label(next) != Background || !isTrue(next) {
				continue
			}
			b.Map[next.X-b.Rect.Left()][next.Y-b.Rect.Top()] = label
			frontier.Enqueue(next)
		}
	}

	return Blob{
		Bounds: geom.NewRect(minLoc.X, minLoc.Y, maxLoc.X-minLoc.X+1, maxLoc.Y-minLoc.Y+1),
		Area:   area,
	}
}
