package domain

import "time"

// Draft is the in-progress inspection record owned by the wizard.
// It is a value type: every mutator returns a new Draft and leaves the
// receiver untouched.
type Draft struct {
	ID                string            `json:"id"`
	InspectorID       string            `json:"inspector_id"`
	Step              int               `json:"step"`
	Status            string            `json:"status"`
	PropertyInfo      PropertyInfo      `json:"property_info"`
	InspectionDetails InspectionDetails `json:"inspection_details"`
	Issues            []Issue           `json:"issues"`
	NextIssueSeq      int               `json:"next_issue_seq"`
	CreatedAt         time.Time         `json:"created_at"`
	UpdatedAt         time.Time         `json:"updated_at"`
	SubmittedAt       *time.Time        `json:"submitted_at,omitempty"`
}

// Draft status constants
const (
	StatusEditing   = "editing"
	StatusSubmitted = "submitted"
)

type PropertyInfo struct {
	PropertyName     string `json:"property_name"`
	PropertyType     string `json:"property_type"`
	ConstructionType string `json:"construction_type"`
	YearBuilt        *int   `json:"year_built"`
	Address          string `json:"address"`
	City             string `json:"city"`
	State            string `json:"state"`
	ZipCode          string `json:"zip_code"`
	OwnerName        string `json:"owner_name"`
	OwnerContact     string `json:"owner_contact"`
	OwnerEmail       string `json:"owner_email"`
}

type InspectionDetails struct {
	InspectionDate      *time.Time `json:"inspection_date"`
	InspectorName       string     `json:"inspector_name"`
	InspectionType      string     `json:"inspection_type"`
	AreasToInspect      []string   `json:"areas_to_inspect"`
	SpecialInstructions string     `json:"special_instructions"`
}

type Issue struct {
	ID                int        `json:"id"`
	Area              string     `json:"area"`
	Description       string     `json:"description"`
	Severity          Severity   `json:"severity"`
	RecommendedAction string     `json:"recommended_action"`
	EstimatedCost     *float64   `json:"estimated_cost"`
	Images            []ImageRef `json:"images"`
	RequiresFollowUp  bool       `json:"requires_follow_up"`
	FollowUpDate      *time.Time `json:"follow_up_date"`
}

// ImageRef is a display reference produced for an attached photo. The
// reference stays valid until it is released.
type ImageRef struct {
	ID          string `json:"id"`
	Key         string `json:"key"`
	URL         string `json:"url"`
	FileName    string `json:"file_name"`
	ContentType string `json:"content_type"`
	Size        int64  `json:"size"`
}

// Receipt acknowledges a submitted draft.
type Receipt struct {
	SubmissionID string    `json:"submission_id"`
	DraftID      string    `json:"draft_id"`
	SubmittedAt  time.Time `json:"submitted_at"`
	Sinks        []string  `json:"sinks"`
}

// Severity is ordered low < medium < high < critical.
type Severity string

const (
	SeverityLow      Severity = "low"
	SeverityMedium   Severity = "medium"
	SeverityHigh     Severity = "high"
	SeverityCritical Severity = "critical"
)

var severityRank = map[Severity]int{
	SeverityLow:      1,
	SeverityMedium:   2,
	SeverityHigh:     3,
	SeverityCritical: 4,
}

// Rank returns the ordinal of s, or 0 when s is not a known severity.
func (s Severity) Rank() int {
	return severityRank[s]
}

func (s Severity) Valid() bool {
	return s.Rank() > 0
}

// Inspection types
const (
	InspectionFull         = "Full"
	InspectionPartial      = "Partial"
	InspectionReinspection = "Reinspection"
)

// Option lists offered by the wizard's select inputs.
var (
	PropertyTypes     = []string{"Residential House", "Apartment", "Commercial Building", "Industrial", "Other"}
	ConstructionTypes = []string{"Concrete", "Steel", "Wood", "Masonry", "Mixed", "Other"}
	InspectionTypes   = []string{InspectionFull, InspectionPartial, InspectionReinspection}
	InspectionAreas   = []string{"Foundation", "Roof", "Exterior", "Plumbing", "Electrical", "HVAC", "Interior"}
	Severities        = []Severity{SeverityLow, SeverityMedium, SeverityHigh, SeverityCritical}
)

func contains(list []string, v string) bool {
	for _, item := range list {
		if item == v {
			return true
		}
	}
	return false
}
