// Package season ranks season palettes by how closely their swatches match
// a set of garment colors.
package season

import (
	"sort"

	"github.com/mmuldo/seasonmatch/colorspace"
	"github.com/mmuldo/seasonmatch/palette"
)

// Entry is one season's score in a ranking. Lower scores are closer matches.
type Entry struct {
	Season string  `json:"season"`
	Score  float64 `json:"score"`
}

type byScore []Entry

func (es byScore) Len() int           { return len(es) }
func (es byScore) Less(i, j int) bool { return es[i].Score < es[j].Score }
func (es byScore) Swap(i, j int)      { es[i], es[j] = es[j], es[i] }

// Rank scores the item colors against every season and returns the seasons
// ordered closest match first.
//
// A season's score is the mean, over the item colors, of the CIE76 distance
// to its nearest swatch. Seasons without swatches are left out. The sort is
// stable, so tied seasons keep their palette order. No item colors means an
// empty ranking. A color that fails to parse, swatch or item, aborts the
// ranking with that error.
func Rank(itemHexes []string, pal palette.Palette) ([]Entry, error) {
	if len(itemHexes) == 0 {
		return nil, nil
	}

	itemLabs, e := toLabs(itemHexes)
	if e != nil {
		return nil, e
	}

	var entries []Entry
	for _, s := range pal {
		if len(s.Swatches) == 0 {
			continue
		}

		swatchLabs, e := toLabs(s.Swatches)
		if e != nil {
			return nil, e
		}

		total := 0.0
		for _, item := range itemLabs {
			nearest := colorspace.DeltaE76(item, swatchLabs[0])
			for _, sw := range swatchLabs[1:] {
				if d := colorspace.DeltaE76(item, sw); d < nearest {
					nearest = d
				}
			}
			total += nearest
		}

		entries = append(entries, Entry{
			Season: s.Name,
			Score:  total / float64(len(itemLabs)),
		})
	}

	sort.Stable(byScore(entries))
	return entries, nil
}

// Top returns the best n entries, at least one.
func Top(entries []Entry, n int) []Entry {
	if n < 1 {
		n = 1
	}
	if n > len(entries) {
		n = len(entries)
	}
	return entries[:n]
}

// converts hex colors to Lab in one pass
func toLabs(hexes []string) ([]colorspace.Lab, error) {
	labs := make([]colorspace.Lab, len(hexes))
	for i, h := range hexes {
		lab, e := colorspace.HexToLab(h)
		if e != nil {
			return nil, e
		}
		labs[i] = lab
	}
	return labs, nil
}
