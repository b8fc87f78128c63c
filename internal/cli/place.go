package cli

import (
	"context"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/piwi3910/chipcut/internal/engine"
	"github.com/piwi3910/chipcut/internal/model"
	"github.com/piwi3910/chipcut/internal/project"
)

func newPlaceCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "place",
		Short: "Pack a job onto chipboards and print the cutting plan",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			run, err := a.loadJobRun(cmd)
			if err != nil {
				return err
			}

			ctx := cmd.Context()
			if timeout, _ := cmd.Flags().GetDuration("timeout"); timeout > 0 {
				var cancel context.CancelFunc
				ctx, cancel = context.WithTimeout(ctx, timeout)
				defer cancel()
			}

			opt := engine.New(run.settings, engine.WithLogger(a.logger))
			result, err := opt.PlaceAllContext(ctx, run.board, run.specs, run.kerf)
			if err != nil {
				return err
			}

			a.logger.Info("Cutting plan ready",
				zap.String("job", run.job.Name),
				zap.String("strategy", result.Strategy),
				zap.Int("sheets", result.Statistics.SheetCount),
				zap.Int("placed", result.PlacedCount()),
				zap.Int("unplaced", len(result.Unplaced)),
				zap.Float64("efficiency", result.Statistics.Efficiency))
			if result.Degraded {
				a.logger.Warn("Plan is incomplete: a sheet or time budget ran out",
					zap.Int("unplaced", len(result.Unplaced)))
			}

			rf := project.NewResultFile(run.job.Name, result)
			rf.SetOffcuts(collectOffcuts(result, a.cfg.Engine.RemainderMinDimension, a.cfg.Engine.RemainderMinArea), run.board)

			if out, _ := cmd.Flags().GetString("out"); out != "" {
				return project.SaveResult(out, rf)
			}
			return writeJSON(cmd.OutOrStdout(), rf)
		},
	}
	addJobFlags(cmd)
	cmd.Flags().StringP("out", "o", "", "write the result to this file instead of stdout")
	cmd.Flags().Duration("timeout", 0, "stop opening new sheets after this long (0 = no limit)")
	return cmd
}

// collectOffcuts gathers the remainders of every sheet that are big enough to keep.
func collectOffcuts(result model.PlacementResult, minDim, minArea float64) []model.Remainder {
	var all []model.Remainder
	for _, s := range result.Sheets {
		all = append(all, s.Remainders...)
	}
	return model.UsableRemainders(all, minDim, minArea)
}
