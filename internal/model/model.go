package model

import (
	"math"

	"github.com/google/uuid"
)

// Chipboard represents a stock sheet that parts are cut from.
type Chipboard struct {
	ID         string     `json:"id"`
	Name       string     `json:"name"`
	Dimensions Dimensions `json:"dimensions"`
	Thickness  float64    `json:"thickness" validate:"gte=0"` // mm, informational only
	Margin     float64    `json:"margin" validate:"gte=0"`    // uniform inward trim in mm
}

func NewChipboard(name string, w, h, thickness, margin float64) Chipboard {
	return Chipboard{
		ID:         uuid.New().String()[:8],
		Name:       name,
		Dimensions: Dimensions{Width: w, Height: h},
		Thickness:  thickness,
		Margin:     margin,
	}
}

// UsableRect returns the sheet area left after removing the margin on every side.
func (c Chipboard) UsableRect() Rect {
	return Rect{
		X:      c.Margin,
		Y:      c.Margin,
		Width:  c.Dimensions.Width - 2*c.Margin,
		Height: c.Dimensions.Height - 2*c.Margin,
	}
}

// UsableArea returns the area of the usable rectangle, or 0 if the margin eats the sheet.
func (c Chipboard) UsableArea() float64 {
	u := c.UsableRect()
	if u.Width <= 0 || u.Height <= 0 {
		return 0
	}
	return u.Area()
}

// PartSpec represents a required part and how many copies of it to cut.
type PartSpec struct {
	ID         string     `json:"id"`
	Name       string     `json:"name"`
	Dimensions Dimensions `json:"dimensions"`
	CanRotate  bool       `json:"can_rotate"`
	Count      int        `json:"count" validate:"min=1"`
	PvcEdges   *PvcEdges  `json:"pvc_edges,omitempty"` // nil means no banding
}

// Edges returns the spec's banding, treating a missing value as no banding.
func (p PartSpec) Edges() PvcEdges {
	if p.PvcEdges == nil {
		return PvcEdges{}
	}
	return *p.PvcEdges
}

// PlacedPart is one part instance with its final position on a sheet.
type PlacedPart struct {
	ID         string     `json:"id"`      // instance identity
	SpecID     string     `json:"spec_id"` // originating PartSpec
	Name       string     `json:"name"`
	Dimensions Dimensions `json:"dimensions"` // already rotated when Rotated is set
	X          float64    `json:"x"`          // lower-left corner, sheet coordinates
	Y          float64    `json:"y"`
	Rotated    bool       `json:"rotated"`
	PvcEdges   PvcEdges   `json:"pvc_edges"` // in the final orientation
}

// Rect returns the rectangle the part occupies on its sheet.
func (p PlacedPart) Rect() Rect {
	return Rect{X: p.X, Y: p.Y, Width: p.Dimensions.Width, Height: p.Dimensions.Height}
}

// Area returns the area of the placed part.
func (p PlacedPart) Area() float64 {
	return p.Dimensions.Area()
}

// EdgeBandingLength returns the banding this part needs in its final orientation.
func (p PlacedPart) EdgeBandingLength() float64 {
	return p.PvcEdges.Length(p.Dimensions.Width, p.Dimensions.Height)
}

// CutLine is a single straight saw pass. One coordinate pair is constant.
type CutLine struct {
	X1 float64 `json:"x1"`
	Y1 float64 `json:"y1"`
	X2 float64 `json:"x2"`
	Y2 float64 `json:"y2"`
}

// Length returns the length of the cut in mm.
func (c CutLine) Length() float64 {
	return math.Hypot(c.X2-c.X1, c.Y2-c.Y1)
}

// Vertical reports whether the cut runs along the y axis.
func (c CutLine) Vertical() bool {
	return NearlyEqual(c.X1, c.X2)
}

// SheetLayout is one chipboard with everything placed on and derived from it.
type SheetLayout struct {
	Chipboard  Chipboard    `json:"chipboard"`
	Parts      []PlacedPart `json:"parts"`
	CutLines   []CutLine    `json:"cut_lines"`
	Remainders []Remainder  `json:"remainders"`
}

// UsedArea returns the total area covered by placed parts.
func (sl SheetLayout) UsedArea() float64 {
	var total float64
	for _, p := range sl.Parts {
		total += p.Area()
	}
	return total
}

// UsableArea returns the usable area of the sheet.
func (sl SheetLayout) UsableArea() float64 {
	return sl.Chipboard.UsableArea()
}

// Efficiency returns the usage percentage of the usable area.
func (sl SheetLayout) Efficiency() float64 {
	ua := sl.UsableArea()
	if ua == 0 {
		return 0
	}
	return (sl.UsedArea() / ua) * 100.0
}

// CutLength returns the summed length of all cut lines on the sheet.
func (sl SheetLayout) CutLength() float64 {
	var total float64
	for _, c := range sl.CutLines {
		total += c.Length()
	}
	return total
}

// PlacementStatistics summarises a set of sheet layouts.
type PlacementStatistics struct {
	TotalParts         int     `json:"total_parts"`
	RequestedParts     int     `json:"requested_parts"`
	UnplacedParts      int     `json:"unplaced_parts"`
	SheetCount         int     `json:"sheet_count"`
	TotalCutLength     float64 `json:"total_cut_length"` // mm, rounded to whole mm
	TotalCutOperations int     `json:"total_cut_operations"`
	Efficiency         float64 `json:"efficiency"`          // percent, two decimals
	EdgeBandingLength  float64 `json:"edge_banding_length"` // mm
}

// UnplacedReason explains why an instance did not end up on a sheet.
type UnplacedReason string

const (
	ReasonUnplaceable   UnplacedReason = "unplaceable"    // cannot fit an empty sheet
	ReasonResourceBound UnplacedReason = "resource_bound" // sheet or time budget ran out
)

// UnplacedPart identifies one instance that was not placed.
type UnplacedPart struct {
	InstanceID string         `json:"instance_id"`
	SpecID     string         `json:"spec_id"`
	Name       string         `json:"name"`
	Dimensions Dimensions     `json:"dimensions"`
	Reason     UnplacedReason `json:"reason"`
}

// PlacementResult holds the full cutting plan.
type PlacementResult struct {
	Sheets     []SheetLayout       `json:"sheets"`
	Statistics PlacementStatistics `json:"statistics"`
	Unplaced   []UnplacedPart      `json:"unplaced,omitempty"`
	Degraded   bool                `json:"degraded"` // a safety bound stopped the run early
	Strategy   string              `json:"strategy"`
}

// PlacedCount returns the number of parts placed over all sheets.
func (pr PlacementResult) PlacedCount() int {
	n := 0
	for _, s := range pr.Sheets {
		n += len(s.Parts)
	}
	return n
}

// TotalRequested sums the counts of a list of specs.
func TotalRequested(specs []PartSpec) int {
	n := 0
	for _, s := range specs {
		n += s.Count
	}
	return n
}
