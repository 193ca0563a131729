package domain

import (
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testNow = time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC)

func newTestDraft() Draft {
	return NewDraft("draft-1", "inspector-1", testNow)
}

func refs(n int, prefix string) []ImageRef {
	out := make([]ImageRef, n)
	for i := range out {
		out[i] = ImageRef{ID: fmt.Sprintf("%s-%d", prefix, i), URL: "/previews/" + prefix}
	}
	return out
}

func TestNewDraft_InitialShape(t *testing.T) {
	d := newTestDraft()

	assert.Equal(t, StepPropertyInfo, d.Step)
	assert.Equal(t, StatusEditing, d.Status)
	assert.Equal(t, "Property Info", d.StepName())
	require.Len(t, d.Issues, 1)
	assert.Equal(t, 1, d.Issues[0].ID)
	assert.Equal(t, SeverityMedium, d.Issues[0].Severity)
	assert.Empty(t, d.Issues[0].Images)
	assert.False(t, d.Issues[0].RequiresFollowUp)
	assert.Nil(t, d.Issues[0].FollowUpDate)
	assert.Nil(t, d.Issues[0].EstimatedCost)
	assert.Nil(t, d.PropertyInfo.YearBuilt)
	assert.Equal(t, InspectionFull, d.InspectionDetails.InspectionType)
	require.NotNil(t, d.InspectionDetails.InspectionDate)
	assert.True(t, d.InspectionDetails.InspectionDate.Equal(testNow))
}

func TestAddRemoveIssue_Length(t *testing.T) {
	d := newTestDraft()

	added, err := d.AddIssue()
	require.NoError(t, err)
	assert.Len(t, added.Issues, len(d.Issues)+1)
	assert.Len(t, d.Issues, 1, "receiver must be unchanged")

	removed, released, err := added.RemoveIssue(0)
	require.NoError(t, err)
	assert.Len(t, removed.Issues, len(added.Issues)-1)
	assert.Empty(t, released)
}

func TestRemoveIssue_OnlyIssueIsNoop(t *testing.T) {
	d := newTestDraft()

	after, released, err := d.RemoveIssue(0)
	require.NoError(t, err)
	assert.Equal(t, d.Issues, after.Issues)
	assert.Nil(t, released)
}

func TestRemoveIssue_OutOfRange(t *testing.T) {
	d := newTestDraft()

	_, _, err := d.RemoveIssue(3)
	assert.ErrorIs(t, err, ErrIssueNotFound)
	_, _, err = d.RemoveIssue(-1)
	assert.ErrorIs(t, err, ErrIssueNotFound)
}

func TestRemoveIssue_ReturnsImagesForRelease(t *testing.T) {
	d, _ := newTestDraft().AddIssue()
	d, err := d.AttachImages(1, refs(2, "b"), 10)
	require.NoError(t, err)

	after, released, err := d.RemoveIssue(1)
	require.NoError(t, err)
	assert.Len(t, after.Issues, 1)
	assert.Equal(t, refs(2, "b"), released)
}

func TestIssueIDs_NeverReused(t *testing.T) {
	d := newTestDraft()
	d, _ = d.AddIssue()
	d, _ = d.AddIssue()
	require.Equal(t, []int{1, 2, 3}, issueIDs(d))

	d, _, _ = d.RemoveIssue(2)
	d, _ = d.AddIssue()
	assert.Equal(t, []int{1, 2, 4}, issueIDs(d))

	d, _, _ = d.RemoveIssue(0)
	d, _ = d.AddIssue()
	assert.Equal(t, []int{2, 4, 5}, issueIDs(d))
}

func issueIDs(d Draft) []int {
	ids := make([]int, len(d.Issues))
	for i, is := range d.Issues {
		ids[i] = is.ID
	}
	return ids
}

func TestUpdateIssueField_IsolatesChange(t *testing.T) {
	d, _ := newTestDraft().AddIssue()
	d, _ = d.AddIssue()

	after, err := d.UpdateIssueField(1, "severity", "critical")
	require.NoError(t, err)

	assert.Equal(t, SeverityCritical, after.Issues[1].Severity)
	assert.Equal(t, d.Issues[0], after.Issues[0])
	assert.Equal(t, d.Issues[2], after.Issues[2])
	assert.Equal(t, d.Issues[1].ID, after.Issues[1].ID)
	assert.Equal(t, d.Issues[1].Description, after.Issues[1].Description)
	assert.Equal(t, SeverityMedium, d.Issues[1].Severity, "receiver must be unchanged")
}

func TestUpdateIssueField_Validation(t *testing.T) {
	d := newTestDraft()

	_, err := d.UpdateIssueField(0, "severity", "catastrophic")
	assert.ErrorIs(t, err, ErrInvalidValue)

	_, err = d.UpdateIssueField(0, "colour", "red")
	assert.ErrorIs(t, err, ErrUnknownField)

	_, err = d.UpdateIssueField(4, "area", "Roof")
	assert.ErrorIs(t, err, ErrIssueNotFound)

	_, err = d.UpdateIssueField(0, "estimated_cost", -5.0)
	assert.ErrorIs(t, err, ErrInvalidValue)
}

func TestUpdateIssueField_Values(t *testing.T) {
	d := newTestDraft()

	d, err := d.UpdateIssueField(0, "estimated_cost", 2500.5)
	require.NoError(t, err)
	require.NotNil(t, d.Issues[0].EstimatedCost)
	assert.Equal(t, 2500.5, *d.Issues[0].EstimatedCost)

	d, err = d.UpdateIssueField(0, "estimated_cost", "")
	require.NoError(t, err)
	assert.Nil(t, d.Issues[0].EstimatedCost)

	d, err = d.UpdateIssueField(0, "area", "Roof")
	require.NoError(t, err)
	assert.Equal(t, "Roof", d.Issues[0].Area)
}

func TestFollowUpDateClearedWithFlag(t *testing.T) {
	d := newTestDraft()
	d, err := d.UpdateIssueField(0, "requires_follow_up", true)
	require.NoError(t, err)
	d, err = d.UpdateIssueField(0, "follow_up_date", "2024-04-01")
	require.NoError(t, err)
	require.NotNil(t, d.Issues[0].FollowUpDate)

	d, err = d.UpdateIssueField(0, "requires_follow_up", false)
	require.NoError(t, err)
	assert.False(t, d.Issues[0].RequiresFollowUp)
	assert.Nil(t, d.Issues[0].FollowUpDate)
}

func TestAttachImages_Cap(t *testing.T) {
	d, err := newTestDraft().AttachImages(0, refs(9, "a"), 10)
	require.NoError(t, err)
	require.Len(t, d.Issues[0].Images, 9)

	after, err := d.AttachImages(0, refs(2, "b"), 10)
	assert.ErrorIs(t, err, ErrImageLimit)
	assert.Len(t, after.Issues[0].Images, 9)

	after, err = d.AttachImages(0, refs(1, "c"), 10)
	require.NoError(t, err)
	assert.Len(t, after.Issues[0].Images, 10)

	left, err := after.ImageCapacity(0, 10)
	require.NoError(t, err)
	assert.Equal(t, 0, left)
}

func TestAttachImages_PreservesOrder(t *testing.T) {
	d, err := newTestDraft().AttachImages(0, refs(2, "a"), 10)
	require.NoError(t, err)
	d, err = d.AttachImages(0, refs(1, "b"), 10)
	require.NoError(t, err)

	ids := []string{}
	for _, img := range d.Issues[0].Images {
		ids = append(ids, img.ID)
	}
	assert.Equal(t, []string{"a-0", "a-1", "b-0"}, ids)
}

func TestDetachImage(t *testing.T) {
	d, _ := newTestDraft().AttachImages(0, refs(3, "a"), 10)

	after, removed, err := d.DetachImage(0, 1)
	require.NoError(t, err)
	assert.Equal(t, "a-1", removed.ID)
	require.Len(t, after.Issues[0].Images, 2)
	assert.Equal(t, "a-0", after.Issues[0].Images[0].ID)
	assert.Equal(t, "a-2", after.Issues[0].Images[1].ID)
	assert.Len(t, d.Issues[0].Images, 3, "receiver must be unchanged")

	_, _, err = d.DetachImage(0, 3)
	assert.ErrorIs(t, err, ErrImageNotFound)
	_, _, err = d.DetachImage(2, 0)
	assert.ErrorIs(t, err, ErrIssueNotFound)
}

func TestImages_CollectsAllIssues(t *testing.T) {
	d, _ := newTestDraft().AddIssue()
	d, _ = d.AttachImages(0, refs(1, "a"), 10)
	d, _ = d.AttachImages(1, refs(2, "b"), 10)

	assert.Len(t, d.Images(), 3)
}

func TestSubmittedDraftRejectsEdits(t *testing.T) {
	d := newTestDraft()
	d.Step = LastStep
	d, err := d.MarkSubmitted(testNow)
	require.NoError(t, err)
	require.True(t, d.Submitted())
	require.NotNil(t, d.SubmittedAt)

	_, err = d.AddIssue()
	assert.ErrorIs(t, err, ErrDraftSubmitted)
	_, err = d.SetField(SectionPropertyInfo, "city", "Pune")
	assert.ErrorIs(t, err, ErrDraftSubmitted)
	_, err = d.Retreat()
	assert.ErrorIs(t, err, ErrDraftSubmitted)
	_, err = d.MarkSubmitted(testNow)
	assert.ErrorIs(t, err, ErrDraftSubmitted)

	reopened := d.Reopen()
	assert.Equal(t, StatusEditing, reopened.Status)
	assert.Nil(t, reopened.SubmittedAt)
}

func TestMarkSubmitted_RequiresFinalStep(t *testing.T) {
	_, err := newTestDraft().MarkSubmitted(testNow)
	assert.True(t, errors.Is(err, ErrNotFinalStep))
}
