package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/piwi3910/chipcut/internal/model"
)

func TestComputeStatistics(t *testing.T) {
	board := testBoard(1000, 500, 0)
	banded := testPlaced("a", 0, 0, 400, 300)
	banded.PvcEdges = model.PvcEdges{Top: true, Left: true}

	sheets := []model.SheetLayout{
		{
			Chipboard: board,
			Parts:     []model.PlacedPart{banded},
			CutLines: []model.CutLine{
				{X1: 400, Y1: 0, X2: 400, Y2: 300},
				{X1: 0, Y1: 300, X2: 400.4, Y2: 300},
			},
		},
		{
			Chipboard: board,
			Parts:     []model.PlacedPart{testPlaced("b", 0, 0, 500, 500)},
			CutLines:  []model.CutLine{{X1: 500, Y1: 0, X2: 500, Y2: 500}},
		},
	}

	stats := ComputeStatistics(sheets, 3, board)

	assert.Equal(t, model.PlacementStatistics{
		TotalParts:         2,
		RequestedParts:     3,
		UnplacedParts:      1,
		SheetCount:         2,
		TotalCutLength:     1200,
		TotalCutOperations: 3,
		Efficiency:         37,
		EdgeBandingLength:  700,
	}, stats)
}

func TestComputeStatistics_RoundsEfficiency(t *testing.T) {
	board := testBoard(300, 700, 0)
	sheets := []model.SheetLayout{{Chipboard: board, Parts: []model.PlacedPart{testPlaced("a", 0, 0, 100, 100)}}}

	stats := ComputeStatistics(sheets, 1, board)

	assert.InDelta(t, 4.76, stats.Efficiency, 1e-9)
}

func TestComputeStatistics_NoSheets(t *testing.T) {
	stats := ComputeStatistics(nil, 4, testBoard(1000, 500, 0))

	assert.Equal(t, 0.0, stats.Efficiency)
	assert.Equal(t, 0, stats.SheetCount)
	assert.Equal(t, 4, stats.UnplacedParts)
}

func TestComputeStatistics_MorePlacedThanRequested(t *testing.T) {
	board := testBoard(1000, 500, 0)
	sheets := []model.SheetLayout{{Chipboard: board, Parts: []model.PlacedPart{testPlaced("a", 0, 0, 100, 100)}}}

	stats := ComputeStatistics(sheets, 0, board)

	assert.Equal(t, 0, stats.UnplacedParts)
}
