package domain

import (
	"fmt"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
)

var validate = validator.New()

// ValidateStep checks the fields the given step is responsible for.
// The review step validates everything.
func (d Draft) ValidateStep(step int) error {
	var errs []FieldError
	switch step {
	case StepPropertyInfo:
		errs = d.validatePropertyInfo()
	case StepInspectionDetails:
		errs = d.validateInspectionDetails()
	case StepDocumentIssues:
		errs = d.validateIssues()
	case StepReview:
		errs = append(errs, d.validatePropertyInfo()...)
		errs = append(errs, d.validateInspectionDetails()...)
		errs = append(errs, d.validateIssues()...)
	default:
		return ErrStepOutOfRange
	}
	if len(errs) > 0 {
		return &ValidationError{Step: step, Fields: errs}
	}
	return nil
}

func (d Draft) validatePropertyInfo() []FieldError {
	p := d.PropertyInfo
	var errs []FieldError
	if strings.TrimSpace(p.PropertyName) == "" {
		errs = append(errs, FieldError{"property_info.property_name", "is required"})
	}
	if p.PropertyType == "" {
		errs = append(errs, FieldError{"property_info.property_type", "is required"})
	} else if !contains(PropertyTypes, p.PropertyType) {
		errs = append(errs, FieldError{"property_info.property_type", "must be one of " + strings.Join(PropertyTypes, ", ")})
	}
	if p.ConstructionType != "" && !contains(ConstructionTypes, p.ConstructionType) {
		errs = append(errs, FieldError{"property_info.construction_type", "must be one of " + strings.Join(ConstructionTypes, ", ")})
	}
	if strings.TrimSpace(p.Address) == "" {
		errs = append(errs, FieldError{"property_info.address", "is required"})
	}
	if p.YearBuilt != nil {
		if y := *p.YearBuilt; y < 1800 || y > d.CreatedAt.Year() {
			errs = append(errs, FieldError{"property_info.year_built", fmt.Sprintf("must be between 1800 and %d", d.CreatedAt.Year())})
		}
	}
	if p.OwnerEmail != "" {
		if err := validate.Var(p.OwnerEmail, "email"); err != nil {
			errs = append(errs, FieldError{"property_info.owner_email", "must be a valid email address"})
		}
	}
	return errs
}

func (d Draft) validateInspectionDetails() []FieldError {
	det := d.InspectionDetails
	var errs []FieldError
	if det.InspectionDate == nil {
		errs = append(errs, FieldError{"inspection_details.inspection_date", "is required"})
	}
	if strings.TrimSpace(det.InspectorName) == "" {
		errs = append(errs, FieldError{"inspection_details.inspector_name", "is required"})
	}
	if !contains(InspectionTypes, det.InspectionType) {
		errs = append(errs, FieldError{"inspection_details.inspection_type", "must be one of " + strings.Join(InspectionTypes, ", ")})
	}
	for _, a := range det.AreasToInspect {
		if !contains(InspectionAreas, a) {
			errs = append(errs, FieldError{"inspection_details.areas_to_inspect", fmt.Sprintf("unknown area %q", a)})
			break
		}
	}
	return errs
}

func (d Draft) validateIssues() []FieldError {
	var errs []FieldError
	for i, is := range d.Issues {
		prefix := fmt.Sprintf("issues[%d]", i)
		if strings.TrimSpace(is.Area) == "" {
			errs = append(errs, FieldError{prefix + ".area", "is required"})
		}
		if strings.TrimSpace(is.Description) == "" {
			errs = append(errs, FieldError{prefix + ".description", "is required"})
		}
		if is.RequiresFollowUp && is.FollowUpDate == nil {
			errs = append(errs, FieldError{prefix + ".follow_up_date", "is required when a follow-up is requested"})
		}
		if is.FollowUpDate != nil && d.InspectionDetails.InspectionDate != nil &&
			truncateDay(*is.FollowUpDate).Before(truncateDay(*d.InspectionDetails.InspectionDate)) {
			errs = append(errs, FieldError{prefix + ".follow_up_date", "must not precede the inspection date"})
		}
	}
	return errs
}

func truncateDay(t time.Time) time.Time {
	y, m, day := t.Date()
	return time.Date(y, m, day, 0, 0, 0, 0, time.UTC)
}
