package domain

import (
	"math"
	"sort"
	"strconv"
	"strings"
	"time"
)

// Form sections addressable by SetField.
const (
	SectionPropertyInfo      = "property_info"
	SectionInspectionDetails = "inspection_details"
)

type setter[T any] func(*T, any) error

var propertySetters = map[string]setter[PropertyInfo]{
	"property_name":     stringField(func(p *PropertyInfo) *string { return &p.PropertyName }, "property_name"),
	"property_type":     stringField(func(p *PropertyInfo) *string { return &p.PropertyType }, "property_type"),
	"construction_type": stringField(func(p *PropertyInfo) *string { return &p.ConstructionType }, "construction_type"),
	"address":           stringField(func(p *PropertyInfo) *string { return &p.Address }, "address"),
	"city":              stringField(func(p *PropertyInfo) *string { return &p.City }, "city"),
	"state":             stringField(func(p *PropertyInfo) *string { return &p.State }, "state"),
	"zip_code":          stringField(func(p *PropertyInfo) *string { return &p.ZipCode }, "zip_code"),
	"owner_name":        stringField(func(p *PropertyInfo) *string { return &p.OwnerName }, "owner_name"),
	"owner_contact":     stringField(func(p *PropertyInfo) *string { return &p.OwnerContact }, "owner_contact"),
	"owner_email":       stringField(func(p *PropertyInfo) *string { return &p.OwnerEmail }, "owner_email"),
	"year_built": func(p *PropertyInfo, v any) error {
		year, err := asOptionalInt("year_built", v)
		if err != nil {
			return err
		}
		p.YearBuilt = year
		return nil
	},
}

var detailSetters = map[string]setter[InspectionDetails]{
	"inspector_name":       stringField(func(d *InspectionDetails) *string { return &d.InspectorName }, "inspector_name"),
	"inspection_type":      stringField(func(d *InspectionDetails) *string { return &d.InspectionType }, "inspection_type"),
	"special_instructions": stringField(func(d *InspectionDetails) *string { return &d.SpecialInstructions }, "special_instructions"),
	"inspection_date": func(d *InspectionDetails, v any) error {
		t, err := asOptionalDate("inspection_date", v)
		if err != nil {
			return err
		}
		d.InspectionDate = t
		return nil
	},
	"areas_to_inspect": func(d *InspectionDetails, v any) error {
		areas, err := asStringList("areas_to_inspect", v)
		if err != nil {
			return err
		}
		d.AreasToInspect = areas
		return nil
	},
}

var issueSetters = map[string]setter[Issue]{
	"area":               stringField(func(is *Issue) *string { return &is.Area }, "area"),
	"description":        stringField(func(is *Issue) *string { return &is.Description }, "description"),
	"recommended_action": stringField(func(is *Issue) *string { return &is.RecommendedAction }, "recommended_action"),
	"severity": func(is *Issue, v any) error {
		s, ok := v.(string)
		if !ok {
			if sev, isSev := v.(Severity); isSev {
				s = string(sev)
			} else {
				return invalid("severity", "expected one of low, medium, high, critical")
			}
		}
		sev := Severity(strings.ToLower(strings.TrimSpace(s)))
		if !sev.Valid() {
			return invalid("severity", "expected one of low, medium, high, critical, got %q", s)
		}
		is.Severity = sev
		return nil
	},
	"estimated_cost": func(is *Issue, v any) error {
		cost, err := asOptionalFloat("estimated_cost", v)
		if err != nil {
			return err
		}
		if cost != nil && *cost < 0 {
			return invalid("estimated_cost", "must not be negative")
		}
		is.EstimatedCost = cost
		return nil
	},
	"requires_follow_up": func(is *Issue, v any) error {
		b, ok := v.(bool)
		if !ok {
			return invalid("requires_follow_up", "expected a boolean")
		}
		is.RequiresFollowUp = b
		if !b {
			is.FollowUpDate = nil
		}
		return nil
	},
	"follow_up_date": func(is *Issue, v any) error {
		t, err := asOptionalDate("follow_up_date", v)
		if err != nil {
			return err
		}
		is.FollowUpDate = t
		return nil
	},
}

// SetField replaces one field of the property info or inspection details
// section. Sibling fields and the other section are untouched.
func (d Draft) SetField(section, field string, value any) (Draft, error) {
	if err := d.editable(); err != nil {
		return d, err
	}
	next := d.clone()
	switch section {
	case SectionPropertyInfo:
		set, ok := propertySetters[field]
		if !ok {
			return d, unknown(section, field)
		}
		if err := set(&next.PropertyInfo, value); err != nil {
			return d, err
		}
	case SectionInspectionDetails:
		set, ok := detailSetters[field]
		if !ok {
			return d, unknown(section, field)
		}
		if err := set(&next.InspectionDetails, value); err != nil {
			return d, err
		}
	default:
		return d, unknown(section, field)
	}
	return next, nil
}

// Fields lists the settable field names of a section ("issue" included).
func Fields(section string) []string {
	var out []string
	switch section {
	case SectionPropertyInfo:
		for k := range propertySetters {
			out = append(out, k)
		}
	case SectionInspectionDetails:
		for k := range detailSetters {
			out = append(out, k)
		}
	case "issue":
		for k := range issueSetters {
			out = append(out, k)
		}
	}
	sort.Strings(out)
	return out
}

func stringField[T any](ptr func(*T) *string, name string) setter[T] {
	return func(t *T, v any) error {
		switch s := v.(type) {
		case string:
			*ptr(t) = s
		case nil:
			*ptr(t) = ""
		default:
			return invalid(name, "expected a string")
		}
		return nil
	}
}

func asOptionalInt(name string, v any) (*int, error) {
	switch n := v.(type) {
	case nil:
		return nil, nil
	case int:
		return &n, nil
	case int64:
		i := int(n)
		return &i, nil
	case float64:
		if n != math.Trunc(n) {
			return nil, invalid(name, "expected a whole number")
		}
		i := int(n)
		return &i, nil
	case string:
		if strings.TrimSpace(n) == "" {
			return nil, nil
		}
		i, err := strconv.Atoi(strings.TrimSpace(n))
		if err != nil {
			return nil, invalid(name, "expected a whole number, got %q", n)
		}
		return &i, nil
	}
	return nil, invalid(name, "expected a whole number")
}

func asOptionalFloat(name string, v any) (*float64, error) {
	switch n := v.(type) {
	case nil:
		return nil, nil
	case float64:
		return &n, nil
	case int:
		f := float64(n)
		return &f, nil
	case string:
		if strings.TrimSpace(n) == "" {
			return nil, nil
		}
		f, err := strconv.ParseFloat(strings.TrimSpace(n), 64)
		if err != nil {
			return nil, invalid(name, "expected a number, got %q", n)
		}
		return &f, nil
	}
	return nil, invalid(name, "expected a number")
}

var dateLayouts = []string{time.RFC3339Nano, time.RFC3339, "2006-01-02"}

func asOptionalDate(name string, v any) (*time.Time, error) {
	switch t := v.(type) {
	case nil:
		return nil, nil
	case time.Time:
		return &t, nil
	case *time.Time:
		return clonePtr(t), nil
	case string:
		s := strings.TrimSpace(t)
		if s == "" {
			return nil, nil
		}
		for _, layout := range dateLayouts {
			if parsed, err := time.Parse(layout, s); err == nil {
				return &parsed, nil
			}
		}
		return nil, invalid(name, "expected a date (YYYY-MM-DD or RFC 3339), got %q", s)
	}
	return nil, invalid(name, "expected a date")
}

func asStringList(name string, v any) ([]string, error) {
	switch list := v.(type) {
	case nil:
		return []string{}, nil
	case []string:
		return append([]string{}, list...), nil
	case []any:
		out := make([]string, 0, len(list))
		for _, item := range list {
			s, ok := item.(string)
			if !ok {
				return nil, invalid(name, "expected a list of strings")
			}
			out = append(out, s)
		}
		return out, nil
	}
	return nil, invalid(name, "expected a list of strings")
}
