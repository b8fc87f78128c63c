package model

// Strategy names a sheet packing heuristic.
type Strategy string

const (
	StrategyAlignedGuillotine Strategy = "aligned-guillotine" // Guillotine with cut-line alignment scoring (default)
	StrategyBestAreaFit       Strategy = "best-area-fit"      // Plain guillotine best-area-fit
)

// DefaultMaxSheets caps how many sheets one run may open.
const DefaultMaxSheets = 1000

// CutSettings holds optimizer configuration.
type CutSettings struct {
	Strategy       Strategy `json:"strategy"`        // Packing heuristic
	KerfWidth      float64  `json:"kerf_width"`      // Blade width in mm
	MaxSheets      int      `json:"max_sheets"`      // Safety ceiling on sheets per run
	ParallelDerive bool     `json:"parallel_derive"` // Derive cut lines/remainders per sheet concurrently
}

func DefaultSettings() CutSettings {
	return CutSettings{
		Strategy:       StrategyAlignedGuillotine,
		KerfWidth:      3.2,
		MaxSheets:      DefaultMaxSheets,
		ParallelDerive: true,
	}
}
