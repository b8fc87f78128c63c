package engine

import (
	"context"
	"runtime"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/piwi3910/chipcut/internal/model"
)

// Optimizer drives a Packer sheet by sheet until every part is placed.
type Optimizer struct {
	Settings model.CutSettings

	packer Packer
	logger *zap.Logger
}

// Option customises an Optimizer.
type Option func(*Optimizer)

// WithLogger sets the logger used for per-sheet diagnostics.
func WithLogger(l *zap.Logger) Option {
	return func(o *Optimizer) { o.logger = l }
}

// WithPacker overrides the strategy named in the settings.
func WithPacker(p Packer) Option {
	return func(o *Optimizer) { o.packer = p }
}

func New(settings model.CutSettings, opts ...Option) *Optimizer {
	o := &Optimizer{Settings: settings, logger: zap.NewNop()}
	for _, opt := range opts {
		opt(o)
	}
	if o.packer == nil {
		p, err := StrategyByName(settings.Strategy)
		if err != nil {
			o.logger.Warn("Falling back to default packing strategy", zap.Error(err))
			p = NewAlignedGuillotine()
		}
		o.packer = p
	}
	return o
}

// Strategy returns the name of the packer in use.
func (o *Optimizer) Strategy() model.Strategy {
	return o.packer.Name()
}

// PlaceAll runs the full pipeline: validate, expand, pack sheet by sheet,
// derive cut lines and remainders, and compute statistics.
//
// Parts that cannot be placed are reported in the result, not as an error.
// Only invalid input returns an error.
func (o *Optimizer) PlaceAll(board model.Chipboard, specs []model.PartSpec, kerf float64) (model.PlacementResult, error) {
	return o.PlaceAllContext(context.Background(), board, specs, kerf)
}

// PlaceAllContext is PlaceAll with a caller-supplied budget. When ctx is done
// the run stops after the current sheet and the rest is reported as
// resource-bound, the same as hitting the sheet ceiling.
func (o *Optimizer) PlaceAllContext(ctx context.Context, board model.Chipboard, specs []model.PartSpec, kerf float64) (model.PlacementResult, error) {
	if err := ValidateJob(board, specs, kerf); err != nil {
		return model.PlacementResult{}, err
	}

	result := model.PlacementResult{Strategy: string(o.packer.Name())}
	usable := board.UsableRect()

	// Anything that cannot fit an empty sheet never will.
	var remaining []PartInstance
	for _, inst := range Expand(specs) {
		if fitsEmpty(inst, usable) {
			remaining = append(remaining, inst)
			continue
		}
		o.logger.Debug("Part can never fit the chipboard",
			zap.String("part", inst.Spec.Name),
			zap.Float64("width", inst.Spec.Dimensions.Width),
			zap.Float64("height", inst.Spec.Dimensions.Height))
		result.Unplaced = append(result.Unplaced, inst.unplaced(model.ReasonUnplaceable))
	}

	maxSheets := o.Settings.MaxSheets
	if maxSheets <= 0 {
		maxSheets = model.DefaultMaxSheets
	}

	for len(remaining) > 0 {
		if err := ctx.Err(); err != nil {
			o.logger.Warn("Placement budget exhausted", zap.Error(err), zap.Int("remaining", len(remaining)))
			break
		}
		if len(result.Sheets) >= maxSheets {
			o.logger.Warn("Sheet ceiling reached", zap.Int("max_sheets", maxSheets), zap.Int("remaining", len(remaining)))
			break
		}

		placed, unplaced := o.packer.Pack(board, kerf, remaining)
		if len(placed) == 0 {
			// An empty sheet took nothing: no later sheet will either.
			for _, inst := range remaining {
				result.Unplaced = append(result.Unplaced, inst.unplaced(model.ReasonUnplaceable))
			}
			remaining = nil
			break
		}

		sheet := model.SheetLayout{Chipboard: board, Parts: placed}
		result.Sheets = append(result.Sheets, sheet)
		o.logger.Debug("Sheet packed",
			zap.Int("sheet", len(result.Sheets)),
			zap.Int("placed", len(placed)),
			zap.Float64("efficiency", sheet.Efficiency()),
			zap.Int("remaining", len(unplaced)))
		remaining = unplaced
	}

	if len(remaining) > 0 {
		result.Degraded = true
		for _, inst := range remaining {
			result.Unplaced = append(result.Unplaced, inst.unplaced(model.ReasonResourceBound))
		}
	}

	if err := o.deriveSheets(result.Sheets, kerf); err != nil {
		return result, err
	}
	result.Statistics = ComputeStatistics(result.Sheets, model.TotalRequested(specs), board)
	return result, nil
}

// deriveSheets fills in cut lines and remainders for every sheet. Sheets are
// independent once packed, so with ParallelDerive each one is handled on its
// own goroutine writing only to its own slot.
func (o *Optimizer) deriveSheets(sheets []model.SheetLayout, kerf float64) error {
	if !o.Settings.ParallelDerive || len(sheets) < 2 {
		for i := range sheets {
			derived, err := RecomputeLayout(sheets[i], kerf)
			if err != nil {
				return err
			}
			sheets[i] = derived
		}
		return nil
	}

	var g errgroup.Group
	g.SetLimit(runtime.GOMAXPROCS(0))
	for i := range sheets {
		g.Go(func() error {
			derived, err := RecomputeLayout(sheets[i], kerf)
			if err != nil {
				return err
			}
			sheets[i] = derived
			return nil
		})
	}
	return g.Wait()
}

// fitsEmpty reports whether the instance fits the usable rect in any allowed orientation.
func fitsEmpty(inst PartInstance, usable model.Rect) bool {
	for _, o := range allowedOrientations(inst) {
		if o.dims.FitsIn(usable.Size()) {
			return true
		}
	}
	return false
}
