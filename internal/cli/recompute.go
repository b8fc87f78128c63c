package cli

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/piwi3910/chipcut/internal/engine"
	"github.com/piwi3910/chipcut/internal/model"
	"github.com/piwi3910/chipcut/internal/project"
)

func newRecomputeCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "recompute",
		Short: "Re-derive cut lines, remainders and statistics after editing a layout",
		Long: `Recompute never moves parts. Give either a single sheet layout with --layout,
or a result file from "chipcut place" with --result and the index of the edited sheet.
With --out the same document printed to stdout is written to the file; a layout
report written this way can be edited and passed to --layout again.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			kerf := a.cfg.Engine.Kerf
			if cmd.Flags().Changed("kerf") {
				kerf, _ = cmd.Flags().GetFloat64("kerf")
			}
			out, _ := cmd.Flags().GetString("out")

			if path, _ := cmd.Flags().GetString("layout"); path != "" {
				layout, err := project.LoadLayout(path)
				if err != nil {
					return err
				}
				recomputed, err := engine.RecomputeLayout(layout, kerf)
				if err != nil {
					return err
				}
				report := project.LayoutReport{
					Layout:     recomputed,
					Statistics: engine.RecomputeStatistics([]model.SheetLayout{recomputed}, len(recomputed.Parts), recomputed.Chipboard),
				}
				if out != "" {
					return project.SaveLayoutReport(out, report)
				}
				return writeJSON(cmd.OutOrStdout(), report)
			}

			path, _ := cmd.Flags().GetString("result")
			sheet, _ := cmd.Flags().GetInt("sheet")
			rf, err := project.LoadResult(path)
			if err != nil {
				return err
			}
			if sheet < 0 || sheet >= len(rf.Result.Sheets) {
				return fmt.Errorf("sheet %d out of range: result has %d sheets", sheet, len(rf.Result.Sheets))
			}

			recomputed, err := engine.RecomputeLayout(rf.Result.Sheets[sheet], kerf)
			if err != nil {
				return err
			}
			rf.Result.Sheets[sheet] = recomputed
			rf.Result.Statistics = engine.RecomputeStatistics(rf.Result.Sheets, rf.Result.Statistics.RequestedParts, recomputed.Chipboard)
			rf.SetOffcuts(collectOffcuts(rf.Result, a.cfg.Engine.RemainderMinDimension, a.cfg.Engine.RemainderMinArea), recomputed.Chipboard)

			a.logger.Info("Sheet recomputed",
				zap.Int("sheet", sheet),
				zap.Int("cut_lines", len(recomputed.CutLines)),
				zap.Float64("efficiency", rf.Result.Statistics.Efficiency))

			if out != "" {
				return project.SaveResult(out, rf)
			}
			return writeJSON(cmd.OutOrStdout(), rf)
		},
	}
	cmd.Flags().String("layout", "", "single sheet layout file (JSON)")
	cmd.Flags().String("result", "", "result file written by place")
	cmd.Flags().Int("sheet", 0, "index of the edited sheet in --result")
	cmd.Flags().Float64("kerf", 0, "blade width in mm (default from config)")
	cmd.Flags().StringP("out", "o", "", "write to this file instead of stdout")
	cmd.MarkFlagsMutuallyExclusive("layout", "result")
	cmd.MarkFlagsOneRequired("layout", "result")
	return cmd
}
