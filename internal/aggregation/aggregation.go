// Package aggregation merges similar colors into a small palette.
package aggregation

import (
	"math"
	"sort"

	"github.com/maax3v3/colr/internal/color"
)

// Entry is one palette color and the total weight merged into it.
type Entry struct {
	Color  color.RGB
	Weight float64
}

type group struct {
	color  color.RGB
	lab    color.LAB
	weight float64
}

// Reduce groups identical colors, then merges the two closest groups (in
// CIELAB space) until at most maxColors remain. A merged group takes the
// weighted mean of its members. If weights is nil every color weighs 1;
// maxColors 0 disables merging. Entries are returned heaviest first, ties
// in first-seen order.
func Reduce(colors []color.RGB, weights []float64, maxColors int) []Entry {
	if len(colors) == 0 {
		return nil
	}

	index := make(map[color.RGB]int)
	var groups []group
	for i, c := range colors {
		w := 1.0
		if weights != nil {
			w = weights[i]
		}
		if idx, ok := index[c]; ok {
			groups[idx].weight += w
			continue
		}
		index[c] = len(groups)
		groups = append(groups, group{color: c, lab: c.ToLAB(), weight: w})
	}

	for maxColors > 0 && len(groups) > maxColors {
		bestDist := math.MaxFloat64
		bestI, bestJ := 0, 1
		for i := 0; i < len(groups); i++ {
			for j := i + 1; j < len(groups); j++ {
				if d := groups[i].lab.Distance(groups[j].lab); d < bestDist {
					bestDist = d
					bestI, bestJ = i, j
				}
			}
		}

		a, b := groups[bestI], groups[bestJ]
		merged := color.WeightedMean([]color.RGB{a.color, b.color}, []float64{a.weight, b.weight})
		if a.weight+b.weight == 0 {
			merged = a.color
		}
		groups[bestI] = group{color: merged, lab: merged.ToLAB(), weight: a.weight + b.weight}
		groups = append(groups[:bestJ], groups[bestJ+1:]...)
	}

	sort.SliceStable(groups, func(i, j int) bool {
		return groups[i].weight > groups[j].weight
	})
	entries := make([]Entry, len(groups))
	for i, g := range groups {
		entries[i] = Entry{Color: g.color, Weight: g.weight}
	}
	return entries
}
