package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/piwi3910/chipcut/internal/model"
	"github.com/piwi3910/chipcut/internal/project"
)

// jobRun is a job file resolved against configuration and command flags.
// Flags beat the job file, which beats configuration.
type jobRun struct {
	job      project.Job
	board    model.Chipboard
	specs    []model.PartSpec
	kerf     float64
	settings model.CutSettings
}

func addJobFlags(cmd *cobra.Command) {
	cmd.Flags().String("job", "", "job file (JSON)")
	cmd.Flags().Float64("kerf", 0, "blade width in mm (overrides job and config)")
	cmd.Flags().String("strategy", "", "packing strategy: aligned-guillotine or best-area-fit")
	_ = cmd.MarkFlagRequired("job")
}

func (a *app) loadJobRun(cmd *cobra.Command) (jobRun, error) {
	path, _ := cmd.Flags().GetString("job")
	job, err := project.LoadJob(path)
	if err != nil {
		return jobRun{}, err
	}

	run := jobRun{
		job:      job,
		board:    job.Board(a.cfg.Engine.Margin),
		specs:    job.Specs(),
		kerf:     job.KerfOr(a.cfg.Engine.Kerf),
		settings: a.cfg.Engine.Settings(),
	}
	if job.Strategy != "" {
		run.settings.Strategy = model.Strategy(job.Strategy)
	}

	if cmd.Flags().Changed("kerf") {
		run.kerf, _ = cmd.Flags().GetFloat64("kerf")
	}
	if cmd.Flags().Changed("strategy") {
		s, _ := cmd.Flags().GetString("strategy")
		run.settings.Strategy = model.Strategy(s)
	}
	switch run.settings.Strategy {
	case model.StrategyAlignedGuillotine, model.StrategyBestAreaFit:
	default:
		return jobRun{}, fmt.Errorf("unknown strategy %q", run.settings.Strategy)
	}
	run.settings.KerfWidth = run.kerf
	return run, nil
}
