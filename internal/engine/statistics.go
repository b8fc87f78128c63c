package engine

import (
	"github.com/shopspring/decimal"

	"github.com/piwi3910/chipcut/internal/model"
)

// ComputeStatistics aggregates a set of sheet layouts.
//
// Efficiency is measured against the usable area of the template chipboard on
// every sheet and rounded to two decimals; cut length is rounded to whole mm.
// Both are 0 when there are no sheets.
func ComputeStatistics(sheets []model.SheetLayout, requested int, template model.Chipboard) model.PlacementStatistics {
	stats := model.PlacementStatistics{
		RequestedParts: requested,
		SheetCount:     len(sheets),
	}

	var placedArea, cutLength float64
	for _, s := range sheets {
		stats.TotalParts += len(s.Parts)
		stats.TotalCutOperations += len(s.CutLines)
		cutLength += s.CutLength()
		for _, p := range s.Parts {
			placedArea += p.Area()
			stats.EdgeBandingLength += p.EdgeBandingLength()
		}
	}

	if requested > stats.TotalParts {
		stats.UnplacedParts = requested - stats.TotalParts
	}

	stats.TotalCutLength = decimal.NewFromFloat(cutLength).Round(0).InexactFloat64()

	denominator := float64(len(sheets)) * template.UsableArea()
	if denominator > 0 {
		eff := decimal.NewFromFloat(placedArea).
			Mul(decimal.NewFromInt(100)).
			Div(decimal.NewFromFloat(denominator))
		stats.Efficiency = eff.Round(2).InexactFloat64()
	}
	return stats
}
