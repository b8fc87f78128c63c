package engine

import (
	"fmt"
	"sort"

	"github.com/piwi3910/chipcut/internal/model"
)

// freeSegment is a part-free rectangle found by the strip scan, tracked with
// the range of strips it spans.
type freeSegment struct {
	x0, x1, y0, y1 float64
	first, last    int
}

// ComputeRemainders returns the reusable offcuts of a sheet.
//
// The usable area is sliced into horizontal strips at every part's bottom and
// top edge. Within a strip, the x positions of the parts crossing it split the
// strip into segments, and segments no part covers are free. Free segments
// with the same x range in consecutive strips are joined. Every side that is
// not on the usable boundary gives up one kerf to the saw.
func ComputeRemainders(parts []model.PlacedPart, board model.Chipboard, kerf float64) []model.Remainder {
	usable := board.UsableRect()
	if usable.Empty() {
		return nil
	}
	if len(parts) == 0 {
		return []model.Remainder{model.NewRemainder(usable, "sheet")}
	}

	rects := make([]model.Rect, len(parts))
	ys := []float64{usable.Y, usable.Top()}
	for i, p := range parts {
		rects[i] = p.Rect()
		ys = append(ys, clamp(rects[i].Y, usable.Y, usable.Top()), clamp(rects[i].Top(), usable.Y, usable.Top()))
	}
	ys = uniqueSorted(ys)

	var open, done []freeSegment
	for strip := 0; strip+1 < len(ys); strip++ {
		y0, y1 := ys[strip], ys[strip+1]

		var crossing []model.Rect
		xs := []float64{usable.X, usable.Right()}
		for _, r := range rects {
			if r.Y < y1-model.Epsilon && r.Top() > y0+model.Epsilon {
				crossing = append(crossing, r)
				xs = append(xs, clamp(r.X, usable.X, usable.Right()), clamp(r.Right(), usable.X, usable.Right()))
			}
		}
		xs = uniqueSorted(xs)

		var next []freeSegment
		carried := make([]bool, len(open))
		for i := 0; i+1 < len(xs); i++ {
			seg := model.Rect{X: xs[i], Y: y0, Width: xs[i+1] - xs[i], Height: y1 - y0}
			if occupied(seg, crossing) {
				continue
			}
			fs := freeSegment{x0: xs[i], x1: xs[i+1], y0: y0, y1: y1, first: strip, last: strip}
			for j, o := range open {
				if !carried[j] && model.NearlyEqual(o.x0, fs.x0) && model.NearlyEqual(o.x1, fs.x1) {
					carried[j] = true
					fs.y0, fs.first = o.y0, o.first
					break
				}
			}
			next = append(next, fs)
		}
		for j, o := range open {
			if !carried[j] {
				done = append(done, o)
			}
		}
		open = next
	}
	done = append(done, open...)

	var remainders []model.Remainder
	for _, fs := range done {
		r := shrinkInternal(fs, usable, kerf)
		if r.Empty() {
			continue
		}
		remainders = append(remainders, model.NewRemainder(r, fs.source()))
	}

	sort.Slice(remainders, func(i, j int) bool {
		if !model.NearlyEqual(remainders[i].Y, remainders[j].Y) {
			return remainders[i].Y < remainders[j].Y
		}
		return remainders[i].X < remainders[j].X
	})
	return remainders
}

func (fs freeSegment) source() string {
	if fs.first == fs.last {
		return fmt.Sprintf("strip %d", fs.first+1)
	}
	return fmt.Sprintf("strips %d-%d", fs.first+1, fs.last+1)
}

// shrinkInternal pulls every side that is not on the usable boundary in by kerf.
func shrinkInternal(fs freeSegment, usable model.Rect, kerf float64) model.Rect {
	x0, x1, y0, y1 := fs.x0, fs.x1, fs.y0, fs.y1
	if x0 > usable.X+model.Epsilon {
		x0 += kerf
	}
	if x1 < usable.Right()-model.Epsilon {
		x1 -= kerf
	}
	if y0 > usable.Y+model.Epsilon {
		y0 += kerf
	}
	if y1 < usable.Top()-model.Epsilon {
		y1 -= kerf
	}
	return model.Rect{X: x0, Y: y0, Width: x1 - x0, Height: y1 - y0}
}

func occupied(seg model.Rect, parts []model.Rect) bool {
	for _, p := range parts {
		if seg.Overlaps(p) {
			return true
		}
	}
	return false
}

// uniqueSorted sorts values and drops those within Epsilon of their predecessor.
func uniqueSorted(values []float64) []float64 {
	sort.Float64s(values)
	out := values[:0]
	for _, v := range values {
		if len(out) > 0 && model.NearlyEqual(out[len(out)-1], v) {
			continue
		}
		out = append(out, v)
	}
	return out
}

func clamp(v, lo, hi float64) float64 {
	return max(lo, min(v, hi))
}
