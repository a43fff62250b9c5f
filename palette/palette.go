// Package palette holds named season palettes. Seasons keep the order they
// were declared in, and rankings rely on that order to break score ties.
package palette

import (
	"fmt"

	"github.com/mmuldo/seasonmatch/colorspace"
)

// Season is a named set of swatch colors.
type Season struct {
	Name     string   `json:"season" yaml:"season"`
	Swatches []string `json:"swatches" yaml:"swatches"`
}

// Palette is an ordered list of seasons.
type Palette []Season

// Names returns the season names in palette order.
func (p Palette) Names() []string {
	names := make([]string, len(p))
	for i, s := range p {
		names[i] = s.Name
	}
	return names
}

// Get returns the swatches for a season name.
func (p Palette) Get(name string) ([]string, bool) {
	for _, s := range p {
		if s.Name == name {
			return s.Swatches, true
		}
	}
	return nil, false
}

// Validate checks that every swatch parses as a hex color.
func (p Palette) Validate() error {
	for _, s := range p {
		for _, sw := range s.Swatches {
			if _, e := colorspace.HexToRGB(sw); e != nil {
				return fmt.Errorf("season %q: %w", s.Name, e)
			}
		}
	}
	return nil
}

// upsert appends a season, or replaces the swatches of an existing one in
// place. A document naming a season twice keeps the first position and the
// last swatch list.
func upsert(p Palette, name string, swatches []string) Palette {
	for i := range p {
		if p[i].Name == name {
			p[i].Swatches = swatches
			return p
		}
	}
	return append(p, Season{Name: name, Swatches: swatches})
}
