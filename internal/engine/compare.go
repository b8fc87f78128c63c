package engine

import (
	"context"
	"fmt"

	"github.com/piwi3910/chipcut/internal/model"
)

// ComparisonScenario defines a named set of settings to compare.
type ComparisonScenario struct {
	Name     string
	Settings model.CutSettings
}

// ComparisonResult holds the placement result and headline numbers
// for a single scenario.
type ComparisonResult struct {
	Scenario      ComparisonScenario
	Result        model.PlacementResult
	SheetsUsed    int
	TotalCuts     int
	WastePercent  float64
	UnplacedCount int
}

// CompareScenarios runs the placement pipeline once per scenario and returns
// the results in scenario order. Each scenario uses its own strategy and kerf.
// Any invalid scenario aborts the comparison.
func CompareScenarios(ctx context.Context, scenarios []ComparisonScenario, board model.Chipboard, specs []model.PartSpec, opts ...Option) ([]ComparisonResult, error) {
	results := make([]ComparisonResult, 0, len(scenarios))

	for _, scenario := range scenarios {
		opt := New(scenario.Settings, opts...)
		result, err := opt.PlaceAllContext(ctx, board, specs, scenario.Settings.KerfWidth)
		if err != nil {
			return nil, fmt.Errorf("scenario %q: %w", scenario.Name, err)
		}

		waste := 0.0
		if len(result.Sheets) > 0 {
			waste = 100.0 - result.Statistics.Efficiency
		}

		results = append(results, ComparisonResult{
			Scenario:      scenario,
			Result:        result,
			SheetsUsed:    result.Statistics.SheetCount,
			TotalCuts:     result.Statistics.TotalCutOperations,
			WastePercent:  waste,
			UnplacedCount: len(result.Unplaced),
		})
	}

	return results, nil
}

// BuildDefaultScenarios generates a set of comparison scenarios based on
// the current settings, varying key parameters to show what-if alternatives.
func BuildDefaultScenarios(base model.CutSettings) []ComparisonScenario {
	scenarios := []ComparisonScenario{
		{
			Name:     "Current Settings",
			Settings: base,
		},
	}

	// Every other built-in strategy
	current := base.Strategy
	if current == "" {
		current = model.StrategyAlignedGuillotine
	}
	for _, p := range Strategies() {
		if p.Name() == current {
			continue
		}
		alt := base
		alt.Strategy = p.Name()
		scenarios = append(scenarios, ComparisonScenario{
			Name:     fmt.Sprintf("Strategy %s", p.Name()),
			Settings: alt,
		})
	}

	// Thinner blade
	if base.KerfWidth > 1.0 {
		tight := base
		tight.KerfWidth = base.KerfWidth * 0.5
		scenarios = append(scenarios, ComparisonScenario{
			Name:     fmt.Sprintf("Kerf %.1fmm (half)", tight.KerfWidth),
			Settings: tight,
		})
	}

	return scenarios
}
