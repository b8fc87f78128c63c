package model

import "math"

// PurchaseEstimate holds the results of a sheet purchasing calculation.
type PurchaseEstimate struct {
	TotalPartArea     float64 `json:"total_part_area"`     // Total area of all parts incl. kerf (sq mm)
	TotalBoardFeet    float64 `json:"total_board_feet"`    // Total area in board feet (1 bf = 144 sq in = 92903.04 sq mm)
	UsableSheetArea   float64 `json:"usable_sheet_area"`   // Usable area of one chipboard (sq mm)
	SheetsNeededExact float64 `json:"sheets_needed_exact"` // Exact fractional number of sheets
	SheetsNeededMin   int     `json:"sheets_needed_min"`   // Minimum sheets (ceiling of exact)
	SheetsWithWaste   int     `json:"sheets_with_waste"`   // Recommended sheets including waste factor
	WastePercent      float64 `json:"waste_percent"`       // Waste factor applied (e.g., 15 for 15%)
	KerfWidth         float64 `json:"kerf_width"`          // Kerf width used in calculation
}

// sqmmPerBoardFoot is the number of square millimeters in one board foot.
// 1 board foot = 12" x 12" x 1" (area) = 144 sq inches = 144 * 645.16 sq mm = 92903.04 sq mm.
const sqmmPerBoardFoot = 92903.04

// CalculatePurchaseEstimate computes a quick, area-only lower bound on how many
// chipboards a job needs. It accounts for kerf per part and an extra waste factor
// but does no packing, so the real plan may need more sheets.
func CalculatePurchaseEstimate(specs []PartSpec, board Chipboard, kerfWidth, wastePercent float64) PurchaseEstimate {
	var totalPartArea float64
	for _, s := range specs {
		partW := s.Dimensions.Width + kerfWidth
		partH := s.Dimensions.Height + kerfWidth
		totalPartArea += partW * partH * float64(s.Count)
	}

	sheetArea := board.UsableArea()
	if sheetArea <= 0 {
		return PurchaseEstimate{
			TotalPartArea:  totalPartArea,
			TotalBoardFeet: totalPartArea / sqmmPerBoardFoot,
			WastePercent:   wastePercent,
			KerfWidth:      kerfWidth,
		}
	}

	exactSheets := totalPartArea / sheetArea
	minSheets := int(math.Ceil(exactSheets))

	wasteFactor := 1.0 + (wastePercent / 100.0)
	sheetsWithWaste := int(math.Ceil(exactSheets * wasteFactor))
	if sheetsWithWaste < minSheets {
		sheetsWithWaste = minSheets
	}

	return PurchaseEstimate{
		TotalPartArea:     totalPartArea,
		TotalBoardFeet:    totalPartArea / sqmmPerBoardFoot,
		UsableSheetArea:   sheetArea,
		SheetsNeededExact: exactSheets,
		SheetsNeededMin:   minSheets,
		SheetsWithWaste:   sheetsWithWaste,
		WastePercent:      wastePercent,
		KerfWidth:         kerfWidth,
	}
}
