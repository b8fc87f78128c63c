package cli

import (
	"github.com/spf13/cobra"

	"github.com/piwi3910/chipcut/internal/engine"
)

// comparisonRow is one line of the compare output.
type comparisonRow struct {
	Name         string  `json:"name"`
	Strategy     string  `json:"strategy"`
	Kerf         float64 `json:"kerf"`
	Sheets       int     `json:"sheets"`
	CutLines     int     `json:"cut_lines"`
	CutLength    float64 `json:"cut_length"`
	Efficiency   float64 `json:"efficiency"`
	WastePercent float64 `json:"waste_percent"`
	Unplaced     int     `json:"unplaced"`
}

func newCompareCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "compare",
		Short: "Run a job under alternative strategies and kerfs side by side",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			run, err := a.loadJobRun(cmd)
			if err != nil {
				return err
			}

			results, err := engine.CompareScenarios(cmd.Context(), engine.BuildDefaultScenarios(run.settings),
				run.board, run.specs, engine.WithLogger(a.logger))
			if err != nil {
				return err
			}

			rows := make([]comparisonRow, 0, len(results))
			for _, r := range results {
				rows = append(rows, comparisonRow{
					Name:         r.Scenario.Name,
					Strategy:     r.Result.Strategy,
					Kerf:         r.Scenario.Settings.KerfWidth,
					Sheets:       r.SheetsUsed,
					CutLines:     r.TotalCuts,
					CutLength:    r.Result.Statistics.TotalCutLength,
					Efficiency:   r.Result.Statistics.Efficiency,
					WastePercent: r.WastePercent,
					Unplaced:     r.UnplacedCount,
				})
			}
			return writeJSON(cmd.OutOrStdout(), rows)
		},
	}
	addJobFlags(cmd)
	return cmd
}
