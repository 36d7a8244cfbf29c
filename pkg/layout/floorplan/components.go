package floorplan

import (
	"sort"
	"strings"

	"github.com/zyedidia/generic/mapset"
)

// Well-known component tags.
const (
	TagRoot   = "root"
	TagMain   = "main"
	TagHall   = "hall"
	TagBranch = "branch"
	// TagNamePrefix prefixes the tag holding a room's display name.
	TagNamePrefix = "name:"
)

// Components is a set of string tags attached to a plan entry.
type Components struct {
	tags mapset.Set[string]
}

// NewComponents creates a tag set.
func NewComponents(tags ...string) Components {
	c := Components{tags: mapset.New[string]()}
	for _, tag := range tags {
		c.tags.Put(tag)
	}
	return c
}

// Has reports whether the tag is present.
func (c Components) Has(tag string) bool {
	return c.tags.Has(tag)
}

// Copy returns an independent copy.
func (c Components) Copy() Components {
	return NewComponents(c.Tags()...)
}

// With returns a copy with the given tags added.
func (c Components) With(tags ...string) Components {
	return NewComponents(append(c.Tags(), tags...)...)
}

// Len returns the number of tags.
func (c Components) Len() int {
	return c.tags.Size()
}

// Tags returns the tags in sorted order.
func (c Components) Tags() []string {
	var tags []string
	c.tags.Each(func(tag string) {
		tags = append(tags, tag)
	})
	sort.Strings(tags)
	return tags
}

// Name returns the value of the name tag, or "".
func (c Components) Name() string {
	for _, tag := range c.Tags() {
		if name, ok := strings.CutPrefix(tag, TagNamePrefix); ok {
			return name
		}
	}
	return ""
}
