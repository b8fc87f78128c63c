package engine

import (
	"fmt"
	"math/rand"

	"github.com/piwi3910/chipcut/internal/model"
)

func testBoard(w, h, margin float64) model.Chipboard {
	return model.Chipboard{
		ID:         "board",
		Name:       "Test",
		Dimensions: model.Dimensions{Width: w, Height: h},
		Thickness:  18,
		Margin:     margin,
	}
}

func testSpec(id string, w, h float64, count int, canRotate bool) model.PartSpec {
	return model.PartSpec{
		ID:         id,
		Name:       "Part " + id,
		Dimensions: model.Dimensions{Width: w, Height: h},
		CanRotate:  canRotate,
		Count:      count,
	}
}

func testPlaced(id string, x, y, w, h float64) model.PlacedPart {
	return model.PlacedPart{
		ID:         id,
		SpecID:     id,
		Name:       id,
		Dimensions: model.Dimensions{Width: w, Height: h},
		X:          x,
		Y:          y,
	}
}

func testSettings() model.CutSettings {
	s := model.DefaultSettings()
	s.ParallelDerive = false
	return s
}

// randomSpecs returns a reproducible mixed job for property checks.
func randomSpecs(r *rand.Rand, n int) []model.PartSpec {
	specs := make([]model.PartSpec, n)
	for i := range specs {
		specs[i] = testSpec(
			fmt.Sprintf("s%02d", i),
			float64(50+r.Intn(900)),
			float64(50+r.Intn(600)),
			1+r.Intn(4),
			r.Intn(3) > 0,
		)
		if r.Intn(2) == 0 {
			specs[i].PvcEdges = &model.PvcEdges{Top: true, Left: r.Intn(2) == 0}
		}
	}
	return specs
}
