package cli

import (
	"github.com/spf13/cobra"

	"github.com/piwi3910/chipcut/internal/engine"
	"github.com/piwi3910/chipcut/internal/model"
)

// estimateReport is the output of the estimate command.
type estimateReport struct {
	Job         string                     `json:"job"`
	Purchase    model.PurchaseEstimate     `json:"purchase"`
	EdgeBanding model.EdgeBandingSummary   `json:"edge_banding"`
	PerPart     []model.PerPartEdgeBanding `json:"per_part,omitempty"`
}

func newEstimateCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "estimate",
		Short: "Estimate sheets and edge banding to buy without packing",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			run, err := a.loadJobRun(cmd)
			if err != nil {
				return err
			}
			if err := engine.ValidateJob(run.board, run.specs, run.kerf); err != nil {
				return err
			}
			waste, _ := cmd.Flags().GetFloat64("waste")

			return writeJSON(cmd.OutOrStdout(), estimateReport{
				Job:         run.job.Name,
				Purchase:    model.CalculatePurchaseEstimate(run.specs, run.board, run.kerf, waste),
				EdgeBanding: model.CalculateEdgeBanding(run.specs, waste),
				PerPart:     model.CalculatePerPartEdgeBanding(run.specs),
			})
		},
	}
	addJobFlags(cmd)
	cmd.Flags().Float64("waste", 10, "extra waste percentage")
	return cmd
}
