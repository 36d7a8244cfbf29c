package world

import (
	"github.com/zyedidia/generic/mapset"

	"tilelayout/pkg/engine/geom"
)

// ItemSet is a set of items
type ItemSet = mapset.Set[*Item]

// Item is a spawnable object placed on the map.
type Item struct {
	Name     string
	Loc      geom.Loc
	Blocking bool // blocking items cannot be walked through
	Tags     []string
}

// NewItem creates a new item with the given name
func NewItem(name string) *Item {
	return &Item{Name: name}
}

// Copy returns an independent copy of the item so one template can be placed
// any number of times.
func (i *Item) Copy() *Item {
	c := *i
	c.Tags = append([]string(nil), i.Tags...)
	return &c
}
