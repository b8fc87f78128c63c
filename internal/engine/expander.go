package engine

import (
	"fmt"
	"sort"

	"github.com/google/uuid"

	"github.com/piwi3910/chipcut/internal/model"
)

// instanceNamespace seeds the name-based instance IDs so identical jobs
// always produce identical IDs.
var instanceNamespace = uuid.MustParse("6f1c3a52-5d0e-4b8e-9a57-2f1de0c4b7a1")

// PartInstance is one physical copy of a PartSpec. It only lives for the
// duration of a placement run.
type PartInstance struct {
	ID   string
	Spec model.PartSpec
}

// Dimensions returns the unrotated size of the instance.
func (pi PartInstance) Dimensions() model.Dimensions {
	return pi.Spec.Dimensions
}

// place turns the instance into a PlacedPart at x, y.
func (pi PartInstance) place(x, y float64, rotated bool) model.PlacedPart {
	dims := pi.Spec.Dimensions
	edges := pi.Spec.Edges()
	if rotated {
		dims = dims.Rotate()
		edges = edges.Rotate()
	}
	return model.PlacedPart{
		ID:         pi.ID,
		SpecID:     pi.Spec.ID,
		Name:       pi.Spec.Name,
		Dimensions: dims,
		X:          x,
		Y:          y,
		Rotated:    rotated,
		PvcEdges:   edges,
	}
}

// unplaced reports the instance as not placed for the given reason.
func (pi PartInstance) unplaced(reason model.UnplacedReason) model.UnplacedPart {
	return model.UnplacedPart{
		InstanceID: pi.ID,
		SpecID:     pi.Spec.ID,
		Name:       pi.Spec.Name,
		Dimensions: pi.Spec.Dimensions,
		Reason:     reason,
	}
}

// Expand turns specs into one instance per requested unit and orders them
// widest first, then tallest first. Hard-to-place parts are tried early.
// Specs are assumed valid.
func Expand(specs []model.PartSpec) []PartInstance {
	var instances []PartInstance
	for si, s := range specs {
		for n := 0; n < s.Count; n++ {
			name := fmt.Sprintf("%s/%d/%d", s.ID, si, n)
			instances = append(instances, PartInstance{
				ID:   uuid.NewSHA1(instanceNamespace, []byte(name)).String(),
				Spec: s,
			})
		}
	}

	sort.SliceStable(instances, func(i, j int) bool {
		a, b := instances[i].Dimensions(), instances[j].Dimensions()
		if a.Width != b.Width {
			return a.Width > b.Width
		}
		return a.Height > b.Height
	})
	return instances
}
