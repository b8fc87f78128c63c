package engine

import (
	"fmt"

	"github.com/piwi3910/chipcut/internal/model"
)

// Packer places as many instances as it can on one empty chipboard.
//
// Implementations must be deterministic and must not keep state between calls.
// Instances that do not fit are returned in their original order.
type Packer interface {
	Name() model.Strategy
	Pack(board model.Chipboard, kerf float64, instances []PartInstance) (placed []model.PlacedPart, unplaced []PartInstance)
}

// StrategyByName returns the packer registered under name.
func StrategyByName(name model.Strategy) (Packer, error) {
	switch name {
	case model.StrategyAlignedGuillotine, "":
		return NewAlignedGuillotine(), nil
	case model.StrategyBestAreaFit:
		return NewBestAreaFit(), nil
	default:
		return nil, fmt.Errorf("unknown packing strategy %q", name)
	}
}

// Strategies returns one instance of every built-in packer.
func Strategies() []Packer {
	return []Packer{NewAlignedGuillotine(), NewBestAreaFit()}
}

// rectHandle addresses a free rectangle inside a freeRects arena.
type rectHandle int

// freeRects is the arena of free space owned by a single Pack call.
// Removed entries stay in the arena as tombstones so handles remain stable.
type freeRects struct {
	rects []model.Rect
	live  []bool
}

func newFreeRects(initial model.Rect) *freeRects {
	f := &freeRects{}
	f.add(initial)
	return f
}

// add stores r unless it has no usable area.
func (f *freeRects) add(r model.Rect) {
	if r.Empty() {
		return
	}
	f.rects = append(f.rects, r)
	f.live = append(f.live, true)
}

func (f *freeRects) get(h rectHandle) model.Rect {
	return f.rects[h]
}

func (f *freeRects) remove(h rectHandle) {
	f.live[h] = false
}

// each visits live rectangles in handle order.
func (f *freeRects) each(fn func(h rectHandle, r model.Rect)) {
	for i, r := range f.rects {
		if f.live[i] {
			fn(rectHandle(i), r)
		}
	}
}

// splitGuillotine cuts the consumed free rectangle around a part placed at its
// origin. The first cut runs vertically past the part's right edge over the full
// height of the free rectangle; the second cuts the left column above the part.
func splitGuillotine(free, part model.Rect, kerf float64) (right, top model.Rect) {
	right = model.Rect{
		X:      part.Right() + kerf,
		Y:      free.Y,
		Width:  free.Right() - (part.Right() + kerf),
		Height: free.Height,
	}
	top = model.Rect{
		X:      free.X,
		Y:      part.Top() + kerf,
		Width:  part.Width,
		Height: free.Top() - (part.Top() + kerf),
	}
	return right, top
}
