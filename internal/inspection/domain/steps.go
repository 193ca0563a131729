package domain

// Wizard steps, in order.
const (
	StepPropertyInfo = iota
	StepInspectionDetails
	StepDocumentIssues
	StepReview
)

var stepNames = [...]string{
	StepPropertyInfo:      "Property Info",
	StepInspectionDetails: "Inspection Details",
	StepDocumentIssues:    "Document Issues",
	StepReview:            "Review & Submit",
}

// LastStep is the index of the review step.
const LastStep = len(stepNames) - 1

// StepNames returns the ordered step labels.
func StepNames() []string {
	out := make([]string, len(stepNames))
	copy(out, stepNames[:])
	return out
}

// StepName returns the label of step i, or "" when i is out of range.
func StepName(i int) string {
	if i < 0 || i > LastStep {
		return ""
	}
	return stepNames[i]
}

// Advance moves to the next step. Leaving the review step is only possible
// through submission.
func (d Draft) Advance() (Draft, error) {
	if err := d.editable(); err != nil {
		return d, err
	}
	if d.Step >= LastStep {
		return d, ErrStepOutOfRange
	}
	next := d.clone()
	next.Step++
	return next, nil
}

// Retreat moves to the previous step.
func (d Draft) Retreat() (Draft, error) {
	if err := d.editable(); err != nil {
		return d, err
	}
	if d.Step <= StepPropertyInfo {
		return d, ErrStepOutOfRange
	}
	next := d.clone()
	next.Step--
	return next, nil
}

// StepName returns the label of the draft's current step.
func (d Draft) StepName() string {
	return StepName(d.Step)
}
