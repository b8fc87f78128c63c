package model

import "sort"

// Remainder is a free rectangle left on a sheet after its parts are cut.
type Remainder struct {
	X      float64 `json:"x"`
	Y      float64 `json:"y"`
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
	Area   float64 `json:"area"`
	Source string  `json:"source"` // which decomposition pass produced it
}

func NewRemainder(r Rect, source string) Remainder {
	return Remainder{
		X:      r.X,
		Y:      r.Y,
		Width:  r.Width,
		Height: r.Height,
		Area:   r.Area(),
		Source: source,
	}
}

// Rect returns the rectangle covered by the remainder.
func (r Remainder) Rect() Rect {
	return Rect{X: r.X, Y: r.Y, Width: r.Width, Height: r.Height}
}

// ToChipboard converts a remainder into a chipboard for reuse in a future job.
// The new board has no margin since the remainder was already cut clean.
func (r Remainder) ToChipboard(source Chipboard) Chipboard {
	name := "Remainder " + source.Name
	return NewChipboard(name, r.Width, r.Height, source.Thickness, 0)
}

// MinRemainderDimension is the minimum width or height (in mm) for a remainder
// to be worth keeping. Anything smaller is scrap.
const MinRemainderDimension = 50.0

// MinRemainderArea is the minimum area (in sq mm) for a remainder to be worth keeping.
const MinRemainderArea = 10000.0 // 100mm x 100mm equivalent

// UsableRemainders filters out scraps below the given size thresholds and returns
// the rest sorted by area, largest first.
func UsableRemainders(rs []Remainder, minDim, minArea float64) []Remainder {
	var kept []Remainder
	for _, r := range rs {
		if r.Width >= minDim && r.Height >= minDim && r.Area >= minArea {
			kept = append(kept, r)
		}
	}
	sort.SliceStable(kept, func(i, j int) bool {
		return kept[i].Area > kept[j].Area
	})
	return kept
}

// TotalRemainderArea returns the total area of all remainders in square mm.
func TotalRemainderArea(rs []Remainder) float64 {
	var total float64
	for _, r := range rs {
		total += r.Area
	}
	return total
}
