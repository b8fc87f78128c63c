package engine

import (
	"sort"

	"github.com/piwi3910/chipcut/internal/model"
)

// span is a closed interval along a cut line.
type span struct {
	lo, hi float64
}

// DeriveCutLines returns the saw passes needed to free every part on a sheet.
//
// Each distinct part edge coordinate yields one line per contiguous run of
// parts that share it, so neighbouring parts reuse a single pass. Edges on the
// usable boundary need no cut. A near edge sitting one kerf past the far edge
// of a part beside it belongs to that same pass. Vertical lines come first, sorted by x;
// horizontal lines follow, sorted by y.
func DeriveCutLines(parts []model.PlacedPart, board model.Chipboard, kerf float64) []model.CutLine {
	if len(parts) == 0 {
		return nil
	}
	usable := board.UsableRect()
	rects := make([]model.Rect, len(parts))
	for i, p := range parts {
		rects[i] = p.Rect()
	}

	lines := verticalCuts(rects, usable, kerf)

	transposed := make([]model.Rect, len(rects))
	for i, r := range rects {
		transposed[i] = transpose(r)
	}
	for _, l := range verticalCuts(transposed, transpose(usable), kerf) {
		lines = append(lines, model.CutLine{X1: l.Y1, Y1: l.X1, X2: l.Y2, Y2: l.X2})
	}
	return lines
}

// verticalCuts derives the x = const cuts for a set of rectangles.
func verticalCuts(rects []model.Rect, usable model.Rect, kerf float64) []model.CutLine {
	var coords []float64
	spans := map[int][]span{}

	addAt := func(x float64, r model.Rect) {
		if x <= usable.X+model.Epsilon || x >= usable.Right()-model.Epsilon {
			return
		}
		s := span{lo: max(r.Y, usable.Y), hi: min(r.Top(), usable.Top())}
		if s.hi-s.lo <= model.Epsilon {
			return
		}
		idx := -1
		for i, c := range coords {
			if model.NearlyEqual(c, x) {
				idx = i
				break
			}
		}
		if idx < 0 {
			idx = len(coords)
			coords = append(coords, x)
		}
		spans[idx] = append(spans[idx], s)
	}

	for _, r := range rects {
		addAt(r.Right(), r)
	}
	for _, r := range rects {
		x := r.X
		for _, n := range rects {
			// Only a neighbour sharing some of r's height is cut by the same pass.
			if kerf > 0 && model.NearlyEqual(n.Right()+kerf, r.X) &&
				n.Y < r.Top()-model.Epsilon && n.Top() > r.Y+model.Epsilon {
				x = n.Right()
				break
			}
		}
		addAt(x, r)
	}

	order := make([]int, len(coords))
	for i := range order {
		order[i] = i
	}
	sort.Slice(order, func(a, b int) bool { return coords[order[a]] < coords[order[b]] })

	var lines []model.CutLine
	for _, idx := range order {
		x := coords[idx]
		for _, s := range mergeSpans(spans[idx], kerf) {
			lines = append(lines, model.CutLine{X1: x, Y1: s.lo, X2: x, Y2: s.hi})
		}
	}
	return lines
}

// mergeSpans joins spans that overlap, touch, or are only a kerf apart.
// The result is sorted and disjoint.
func mergeSpans(spans []span, kerf float64) []span {
	if len(spans) == 0 {
		return nil
	}
	sorted := append([]span(nil), spans...)
	sort.Slice(sorted, func(i, j int) bool {
		if sorted[i].lo != sorted[j].lo {
			return sorted[i].lo < sorted[j].lo
		}
		return sorted[i].hi < sorted[j].hi
	})

	merged := []span{sorted[0]}
	for _, s := range sorted[1:] {
		cur := &merged[len(merged)-1]
		if s.lo <= cur.hi+kerf+model.Epsilon {
			cur.hi = max(cur.hi, s.hi)
			continue
		}
		merged = append(merged, s)
	}
	return merged
}

// transpose swaps the x and y axes of a rectangle.
func transpose(r model.Rect) model.Rect {
	return model.Rect{X: r.Y, Y: r.X, Width: r.Height, Height: r.Width}
}
