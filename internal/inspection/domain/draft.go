package domain

import "time"

// NewDraft returns the initial wizard state: step 0, empty property info,
// a full inspection dated now and a single default issue with id 1.
func NewDraft(id, inspectorID string, now time.Time) Draft {
	inspectionDate := now
	return Draft{
		ID:          id,
		InspectorID: inspectorID,
		Step:        StepPropertyInfo,
		Status:      StatusEditing,
		InspectionDetails: InspectionDetails{
			InspectionDate: &inspectionDate,
			InspectionType: InspectionFull,
			AreasToInspect: []string{},
		},
		Issues:       []Issue{newIssue(1)},
		NextIssueSeq: 2,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
}

func newIssue(id int) Issue {
	return Issue{
		ID:       id,
		Severity: SeverityMedium,
		Images:   []ImageRef{},
	}
}

// Submitted reports whether the draft reached its terminal state.
func (d Draft) Submitted() bool {
	return d.Status == StatusSubmitted
}

func (d Draft) editable() error {
	if d.Submitted() {
		return ErrDraftSubmitted
	}
	return nil
}

// clone deep-copies every slice and pointer so the result can be mutated
// without touching d.
func (d Draft) clone() Draft {
	out := d
	out.PropertyInfo.YearBuilt = clonePtr(d.PropertyInfo.YearBuilt)
	out.InspectionDetails.InspectionDate = clonePtr(d.InspectionDetails.InspectionDate)
	out.InspectionDetails.AreasToInspect = append([]string{}, d.InspectionDetails.AreasToInspect...)
	out.SubmittedAt = clonePtr(d.SubmittedAt)
	out.Issues = make([]Issue, len(d.Issues))
	for i, is := range d.Issues {
		out.Issues[i] = is.clone()
	}
	return out
}

func (is Issue) clone() Issue {
	out := is
	out.EstimatedCost = clonePtr(is.EstimatedCost)
	out.FollowUpDate = clonePtr(is.FollowUpDate)
	out.Images = append([]ImageRef{}, is.Images...)
	return out
}

func clonePtr[T any](p *T) *T {
	if p == nil {
		return nil
	}
	v := *p
	return &v
}

// AddIssue appends a default issue carrying the next sequence id. Ids are
// never reused, even after removals.
func (d Draft) AddIssue() (Draft, error) {
	if err := d.editable(); err != nil {
		return d, err
	}
	next := d.clone()
	seq := next.NextIssueSeq
	if seq <= maxIssueID(next.Issues) {
		seq = maxIssueID(next.Issues) + 1
	}
	next.Issues = append(next.Issues, newIssue(seq))
	next.NextIssueSeq = seq + 1
	return next, nil
}

func maxIssueID(issues []Issue) int {
	m := 0
	for _, is := range issues {
		if is.ID > m {
			m = is.ID
		}
	}
	return m
}

// RemoveIssue deletes the issue at index and returns the image references it
// held so the caller can release them. Removing the only issue is a no-op.
func (d Draft) RemoveIssue(index int) (Draft, []ImageRef, error) {
	if err := d.editable(); err != nil {
		return d, nil, err
	}
	if index < 0 || index >= len(d.Issues) {
		return d, nil, ErrIssueNotFound
	}
	if len(d.Issues) <= 1 {
		return d, nil, nil
	}
	next := d.clone()
	released := next.Issues[index].Images
	next.Issues = append(next.Issues[:index], next.Issues[index+1:]...)
	return next, released, nil
}

// UpdateIssueField replaces a single field of the issue at index.
func (d Draft) UpdateIssueField(index int, field string, value any) (Draft, error) {
	if err := d.editable(); err != nil {
		return d, err
	}
	if index < 0 || index >= len(d.Issues) {
		return d, ErrIssueNotFound
	}
	set, ok := issueSetters[field]
	if !ok {
		return d, unknown("issue", field)
	}
	next := d.clone()
	if err := set(&next.Issues[index], value); err != nil {
		return d, err
	}
	return next, nil
}

// ImageCapacity returns how many more images the issue at index can take.
func (d Draft) ImageCapacity(index, max int) (int, error) {
	if index < 0 || index >= len(d.Issues) {
		return 0, ErrIssueNotFound
	}
	left := max - len(d.Issues[index].Images)
	if left < 0 {
		left = 0
	}
	return left, nil
}

// AttachImages appends refs to the issue at index. The attach is all or
// nothing: if the result would exceed max the draft is unchanged.
func (d Draft) AttachImages(index int, refs []ImageRef, max int) (Draft, error) {
	if err := d.editable(); err != nil {
		return d, err
	}
	left, err := d.ImageCapacity(index, max)
	if err != nil {
		return d, err
	}
	if len(refs) > left {
		return d, ErrImageLimit
	}
	next := d.clone()
	next.Issues[index].Images = append(next.Issues[index].Images, refs...)
	return next, nil
}

// DetachImage removes one image by position and returns its reference.
func (d Draft) DetachImage(issueIndex, imageIndex int) (Draft, ImageRef, error) {
	if err := d.editable(); err != nil {
		return d, ImageRef{}, err
	}
	if issueIndex < 0 || issueIndex >= len(d.Issues) {
		return d, ImageRef{}, ErrIssueNotFound
	}
	images := d.Issues[issueIndex].Images
	if imageIndex < 0 || imageIndex >= len(images) {
		return d, ImageRef{}, ErrImageNotFound
	}
	next := d.clone()
	is := &next.Issues[issueIndex]
	removed := is.Images[imageIndex]
	is.Images = append(is.Images[:imageIndex], is.Images[imageIndex+1:]...)
	return next, removed, nil
}

// Images returns every reference held by the draft.
func (d Draft) Images() []ImageRef {
	var out []ImageRef
	for _, is := range d.Issues {
		out = append(out, is.Images...)
	}
	return out
}

// MarkSubmitted moves a draft on the review step into its terminal state.
func (d Draft) MarkSubmitted(now time.Time) (Draft, error) {
	if err := d.editable(); err != nil {
		return d, err
	}
	if d.Step != LastStep {
		return d, ErrNotFinalStep
	}
	next := d.clone()
	next.Status = StatusSubmitted
	next.SubmittedAt = &now
	return next, nil
}

// Reopen reverts MarkSubmitted after a failed hand-off.
func (d Draft) Reopen() Draft {
	next := d.clone()
	next.Status = StatusEditing
	next.SubmittedAt = nil
	return next
}
