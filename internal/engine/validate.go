package engine

import (
	"errors"
	"fmt"
	"math"

	"github.com/go-playground/validator/v10"

	"github.com/piwi3910/chipcut/internal/model"
)

var validate = validator.New()

// ValidateChipboard checks that a chipboard has positive dimensions and a
// margin that leaves some usable area.
func ValidateChipboard(c model.Chipboard) error {
	subject := fmt.Sprintf("chipboard %q", c.Name)
	if err := structError(subject, validate.Struct(c)); err != nil {
		return err
	}
	if 2*c.Margin >= c.Dimensions.Width || 2*c.Margin >= c.Dimensions.Height {
		return &SpecError{
			Subject: subject,
			Field:   "Margin",
			Reason:  fmt.Sprintf("%g leaves no usable area on a %gx%g sheet", c.Margin, c.Dimensions.Width, c.Dimensions.Height),
		}
	}
	return nil
}

// ValidatePartSpec checks that a part spec has positive dimensions and count.
func ValidatePartSpec(p model.PartSpec) error {
	return structError(fmt.Sprintf("part %q (%s)", p.Name, p.ID), validate.Struct(p))
}

// ValidateJob validates everything PlaceAll needs before any packing starts.
func ValidateJob(board model.Chipboard, specs []model.PartSpec, kerf float64) error {
	if err := validateKerf(kerf); err != nil {
		return err
	}
	if err := ValidateChipboard(board); err != nil {
		return err
	}
	for _, s := range specs {
		if err := ValidatePartSpec(s); err != nil {
			return err
		}
	}
	return nil
}

// validateKerf rejects negative, NaN and infinite blade widths.
func validateKerf(kerf float64) error {
	if kerf < 0 || math.IsNaN(kerf) || math.IsInf(kerf, 0) {
		return &SpecError{Subject: "kerf", Reason: fmt.Sprintf("must be a finite value >= 0, got %g", kerf)}
	}
	return nil
}

// structError turns the first validator failure into a *SpecError.
func structError(subject string, err error) error {
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) && len(verrs) > 0 {
		fe := verrs[0]
		return &SpecError{
			Subject: subject,
			Field:   fe.StructNamespace(),
			Reason:  fmt.Sprintf("must satisfy %s=%s, got %v", fe.Tag(), fe.Param(), fe.Value()),
		}
	}
	return &SpecError{Subject: subject, Reason: err.Error()}
}
