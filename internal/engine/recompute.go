package engine

import (
	"fmt"

	"github.com/piwi3910/chipcut/internal/model"
)

// ValidateLayout checks that every part of a sheet lies inside the usable
// rectangle and that no two parts overlap. The first violation found is
// returned as a *LayoutError.
func ValidateLayout(layout model.SheetLayout) error {
	usable := layout.Chipboard.UsableRect()
	for _, p := range layout.Parts {
		if p.Dimensions.Width <= 0 || p.Dimensions.Height <= 0 {
			return &LayoutError{PartID: p.ID, Reason: fmt.Sprintf("has non-positive size %gx%g", p.Dimensions.Width, p.Dimensions.Height)}
		}
		if !usable.Contains(p.Rect()) {
			r := p.Rect()
			return &LayoutError{
				PartID: p.ID,
				Reason: fmt.Sprintf("at [%g,%g]-[%g,%g] lies outside the usable area [%g,%g]-[%g,%g]",
					r.X, r.Y, r.Right(), r.Top(), usable.X, usable.Y, usable.Right(), usable.Top()),
			}
		}
	}
	for i := range layout.Parts {
		for j := i + 1; j < len(layout.Parts); j++ {
			a, b := layout.Parts[i], layout.Parts[j]
			if a.Rect().Overlaps(b.Rect()) {
				return &LayoutError{PartID: a.ID, OtherID: b.ID, Reason: "overlap"}
			}
		}
	}
	return nil
}

// RecomputeLayout re-derives the cut lines and remainders of a sheet whose
// parts may have been moved by hand. Part positions are left untouched.
// Running it again on its own output yields the same layout.
func RecomputeLayout(layout model.SheetLayout, kerf float64) (model.SheetLayout, error) {
	if err := validateKerf(kerf); err != nil {
		return model.SheetLayout{}, err
	}
	if err := ValidateLayout(layout); err != nil {
		return model.SheetLayout{}, err
	}

	parts := append([]model.PlacedPart(nil), layout.Parts...)
	return model.SheetLayout{
		Chipboard:  layout.Chipboard,
		Parts:      parts,
		CutLines:   DeriveCutLines(parts, layout.Chipboard, kerf),
		Remainders: ComputeRemainders(parts, layout.Chipboard, kerf),
	}, nil
}

// RecomputeStatistics re-aggregates statistics after one or more sheets
// have been recomputed.
func RecomputeStatistics(sheets []model.SheetLayout, requested int, template model.Chipboard) model.PlacementStatistics {
	return ComputeStatistics(sheets, requested, template)
}
