package model

import (
	"math"
	"strings"
)

// PvcEdges marks which sides of a part receive edge banding.
type PvcEdges struct {
	Top    bool `json:"top"`
	Right  bool `json:"right"`
	Bottom bool `json:"bottom"`
	Left   bool `json:"left"`
}

// HasAny reports whether at least one side is banded.
func (e PvcEdges) HasAny() bool {
	return e.Top || e.Right || e.Bottom || e.Left
}

// EdgeCount returns the number of banded sides.
func (e PvcEdges) EdgeCount() int {
	n := 0
	for _, b := range []bool{e.Top, e.Right, e.Bottom, e.Left} {
		if b {
			n++
		}
	}
	return n
}

// Length returns the banding length for a part of the given size.
// Top and bottom run along the width, left and right along the height.
func (e PvcEdges) Length(width, height float64) float64 {
	var total float64
	if e.Top {
		total += width
	}
	if e.Bottom {
		total += width
	}
	if e.Left {
		total += height
	}
	if e.Right {
		total += height
	}
	return total
}

// Rotate returns the edges after turning the part by 90°.
func (e PvcEdges) Rotate() PvcEdges {
	return PvcEdges{
		Top:    e.Left,
		Right:  e.Top,
		Bottom: e.Right,
		Left:   e.Bottom,
	}
}

// String returns a compact form such as "T+L", or "-" when nothing is banded.
func (e PvcEdges) String() string {
	var sides []string
	if e.Top {
		sides = append(sides, "T")
	}
	if e.Right {
		sides = append(sides, "R")
	}
	if e.Bottom {
		sides = append(sides, "B")
	}
	if e.Left {
		sides = append(sides, "L")
	}
	if len(sides) == 0 {
		return "-"
	}
	return strings.Join(sides, "+")
}

// EdgeBandingSummary holds the calculated edge banding requirements for a job.
type EdgeBandingSummary struct {
	TotalLinearMM    float64 `json:"total_linear_mm"`     // Total banding length in mm (no waste)
	TotalLinearM     float64 `json:"total_linear_m"`      // Total banding length in meters (no waste)
	WastePercent     float64 `json:"waste_percent"`       // Waste percentage applied
	TotalWithWasteMM float64 `json:"total_with_waste_mm"` // Total with waste in mm
	TotalWithWasteM  float64 `json:"total_with_waste_m"`  // Total with waste in meters
	PartCount        int     `json:"part_count"`          // Number of individual pieces needing banding
	EdgeCount        int     `json:"edge_count"`          // Total number of edges needing banding
}

// CalculateEdgeBanding computes the total edge banding requested by a list of specs.
// wastePercent is the additional percentage to add for waste (e.g., 10 for 10%).
func CalculateEdgeBanding(specs []PartSpec, wastePercent float64) EdgeBandingSummary {
	var totalMM float64
	var partCount, edgeCount int

	for _, s := range specs {
		edges := s.Edges()
		if !edges.HasAny() {
			continue
		}
		totalMM += edges.Length(s.Dimensions.Width, s.Dimensions.Height) * float64(s.Count)
		partCount += s.Count
		edgeCount += edges.EdgeCount() * s.Count
	}

	totalWithWaste := math.Ceil(totalMM * (1.0 + wastePercent/100.0))

	return EdgeBandingSummary{
		TotalLinearMM:    totalMM,
		TotalLinearM:     totalMM / 1000.0,
		WastePercent:     wastePercent,
		TotalWithWasteMM: totalWithWaste,
		TotalWithWasteM:  totalWithWaste / 1000.0,
		PartCount:        partCount,
		EdgeCount:        edgeCount,
	}
}

// PerPartEdgeBanding is one line of the per-spec banding breakdown.
type PerPartEdgeBanding struct {
	Name          string  `json:"name"`
	Width         float64 `json:"width"`
	Height        float64 `json:"height"`
	Count         int     `json:"count"`
	Edges         string  `json:"edges"`           // e.g., "T+R+B+L"
	LengthPerUnit float64 `json:"length_per_unit"` // mm per piece
	TotalLength   float64 `json:"total_length"`    // mm for all pieces
}

// CalculatePerPartEdgeBanding returns a breakdown of banding per spec.
func CalculatePerPartEdgeBanding(specs []PartSpec) []PerPartEdgeBanding {
	var results []PerPartEdgeBanding
	for _, s := range specs {
		edges := s.Edges()
		if !edges.HasAny() {
			continue
		}
		perUnit := edges.Length(s.Dimensions.Width, s.Dimensions.Height)
		results = append(results, PerPartEdgeBanding{
			Name:          s.Name,
			Width:         s.Dimensions.Width,
			Height:        s.Dimensions.Height,
			Count:         s.Count,
			Edges:         edges.String(),
			LengthPerUnit: perUnit,
			TotalLength:   perUnit * float64(s.Count),
		})
	}
	return results
}
