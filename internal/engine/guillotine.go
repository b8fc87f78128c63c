package engine

import (
	"github.com/piwi3910/chipcut/internal/model"
)

// DefaultAlignmentBonus is the score reduction, as a fraction of the part's
// area, granted for every edge that lands on an existing cut coordinate.
const DefaultAlignmentBonus = 0.25

// guillotinePacker packs parts into free rectangles with two-cut guillotine
// splits. With a zero alignBonus it is a plain best-area-fit packer.
type guillotinePacker struct {
	name       model.Strategy
	alignBonus float64
}

// NewAlignedGuillotine returns the default packer: best area fit, biased
// towards positions that reuse existing cut lines.
func NewAlignedGuillotine() Packer {
	return &guillotinePacker{name: model.StrategyAlignedGuillotine, alignBonus: DefaultAlignmentBonus}
}

// NewBestAreaFit returns a packer that only looks at leftover area.
func NewBestAreaFit() Packer {
	return &guillotinePacker{name: model.StrategyBestAreaFit}
}

func (gp *guillotinePacker) Name() model.Strategy { return gp.name }

// candidate is one feasible (free rectangle, orientation) pair.
type candidate struct {
	handle  rectHandle
	rect    model.Rect // where the part would go
	rotated bool
	score   float64
}

func (gp *guillotinePacker) Pack(board model.Chipboard, kerf float64, instances []PartInstance) ([]model.PlacedPart, []PartInstance) {
	free := newFreeRects(board.UsableRect())
	var edges edgeIndex
	var placed []model.PlacedPart
	var unplaced []PartInstance

	for _, inst := range instances {
		best, ok := gp.bestCandidate(free, &edges, inst)
		if !ok {
			unplaced = append(unplaced, inst)
			continue
		}

		pp := inst.place(best.rect.X, best.rect.Y, best.rotated)
		placed = append(placed, pp)
		edges.add(best.rect)

		consumed := free.get(best.handle)
		free.remove(best.handle)
		right, top := splitGuillotine(consumed, best.rect, kerf)
		free.add(right)
		free.add(top)
	}

	return placed, unplaced
}

// bestCandidate scores every free rectangle in both allowed orientations.
// The lowest score wins; on ties the first candidate seen is kept.
func (gp *guillotinePacker) bestCandidate(free *freeRects, edges *edgeIndex, inst PartInstance) (candidate, bool) {
	var best candidate
	found := false

	orientations := allowedOrientations(inst)

	free.each(func(h rectHandle, r model.Rect) {
		for _, o := range orientations {
			if !o.dims.FitsIn(r.Size()) {
				continue
			}
			target := model.Rect{X: r.X, Y: r.Y, Width: o.dims.Width, Height: o.dims.Height}
			score := r.Area() - o.dims.Area()
			if gp.alignBonus > 0 {
				score -= gp.alignBonus * o.dims.Area() * float64(edges.alignments(target))
			}
			if !found || score < best.score {
				best = candidate{handle: h, rect: target, rotated: o.rotated, score: score}
				found = true
			}
		}
	})
	return best, found
}

type orientation struct {
	dims    model.Dimensions
	rotated bool
}

// allowedOrientations lists the normal orientation and, for rotatable
// non-square parts, the rotated one.
func allowedOrientations(inst PartInstance) []orientation {
	dims := inst.Dimensions()
	out := []orientation{{dims: dims}}
	if inst.Spec.CanRotate && !dims.IsSquare() {
		out = append(out, orientation{dims: dims.Rotate(), rotated: true})
	}
	return out
}

// edgeIndex remembers the edge coordinates of parts placed so far.
type edgeIndex struct {
	lefts, rights, bottoms, tops []float64
}

func (e *edgeIndex) add(r model.Rect) {
	e.lefts = append(e.lefts, r.X)
	e.rights = append(e.rights, r.Right())
	e.bottoms = append(e.bottoms, r.Y)
	e.tops = append(e.tops, r.Top())
}

// alignments counts how many edges of r line up with edges already cut.
func (e *edgeIndex) alignments(r model.Rect) int {
	n := 0
	if containsCoord(e.lefts, r.X) {
		n++
	}
	if containsCoord(e.bottoms, r.Y) {
		n++
	}
	if containsCoord(e.rights, r.Right()) {
		n++
	}
	if containsCoord(e.tops, r.Top()) {
		n++
	}
	return n
}

func containsCoord(coords []float64, v float64) bool {
	for _, c := range coords {
		if model.NearlyEqual(c, v) {
			return true
		}
	}
	return false
}
