package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/lib/pq"
	"github.com/safehaven-ai/safehaven-backend/internal/inspection/domain"
)

// SubmissionRepository persists submitted inspections to PostgreSQL
type SubmissionRepository struct {
	db *sql.DB
}

// NewSubmissionRepository creates a new SubmissionRepository
func NewSubmissionRepository(db *sql.DB) *SubmissionRepository {
	return &SubmissionRepository{db: db}
}

// SubmissionSummary is a stored inspection without its issues.
type SubmissionSummary struct {
	ID           string    `json:"id"`
	DraftID      string    `json:"draft_id"`
	PropertyName string    `json:"property_name"`
	Address      string    `json:"address"`
	IssueCount   int       `json:"issue_count"`
	SubmittedAt  time.Time `json:"submitted_at"`
}

// Save writes the inspection row and one row per issue in a single
// transaction. A draft that was already stored is left as is.
func (r *SubmissionRepository) Save(ctx context.Context, d domain.Draft, receipt domain.Receipt) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	p := d.PropertyInfo
	det := d.InspectionDetails

	var yearBuilt sql.NullInt64
	if p.YearBuilt != nil {
		yearBuilt = sql.NullInt64{Int64: int64(*p.YearBuilt), Valid: true}
	}
	var inspectionDate sql.NullTime
	if det.InspectionDate != nil {
		inspectionDate = sql.NullTime{Time: *det.InspectionDate, Valid: true}
	}

	res, err := tx.ExecContext(ctx, `
		INSERT INTO inspections (
			id, draft_id, inspector_id, property_name, property_type, construction_type,
			year_built, address, city, state, zip_code, owner_name, owner_contact, owner_email,
			inspection_date, inspector_name, inspection_type, areas_to_inspect,
			special_instructions, submitted_at
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19, $20)
		ON CONFLICT (draft_id) DO NOTHING
	`,
		receipt.SubmissionID, d.ID, d.InspectorID, p.PropertyName, p.PropertyType, p.ConstructionType,
		yearBuilt, p.Address, p.City, p.State, p.ZipCode, p.OwnerName, p.OwnerContact, p.OwnerEmail,
		inspectionDate, det.InspectorName, det.InspectionType, pq.Array(det.AreasToInspect),
		det.SpecialInstructions, receipt.SubmittedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to insert inspection: %w", err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return tx.Commit()
	}

	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO inspection_issues (
			inspection_id, issue_seq, area, description, severity, recommended_action,
			estimated_cost, requires_follow_up, follow_up_date, images
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
	`)
	if err != nil {
		return fmt.Errorf("failed to prepare issue insert: %w", err)
	}
	defer stmt.Close()

	for _, is := range d.Issues {
		var cost sql.NullFloat64
		if is.EstimatedCost != nil {
			cost = sql.NullFloat64{Float64: *is.EstimatedCost, Valid: true}
		}
		var followUp sql.NullTime
		if is.FollowUpDate != nil {
			followUp = sql.NullTime{Time: *is.FollowUpDate, Valid: true}
		}
		images, err := json.Marshal(is.Images)
		if err != nil {
			images = []byte("[]")
		}

		if _, err := stmt.ExecContext(ctx,
			receipt.SubmissionID, is.ID, is.Area, is.Description, string(is.Severity), is.RecommendedAction,
			cost, is.RequiresFollowUp, followUp, images,
		); err != nil {
			return fmt.Errorf("failed to insert issue %d: %w", is.ID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit submission: %w", err)
	}
	return nil
}

// ListRecent returns the most recently submitted inspections.
func (r *SubmissionRepository) ListRecent(ctx context.Context, limit int) ([]SubmissionSummary, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT i.id, i.draft_id, i.property_name, i.address, COUNT(s.issue_seq), i.submitted_at
		FROM inspections i
		LEFT JOIN inspection_issues s ON s.inspection_id = i.id
		GROUP BY i.id
		ORDER BY i.submitted_at DESC
		LIMIT $1
	`, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query submissions: %w", err)
	}
	defer rows.Close()

	out := []SubmissionSummary{}
	for rows.Next() {
		var s SubmissionSummary
		if err := rows.Scan(&s.ID, &s.DraftID, &s.PropertyName, &s.Address, &s.IssueCount, &s.SubmittedAt); err != nil {
			return nil, fmt.Errorf("failed to scan submission: %w", err)
		}
		out = append(out, s)
	}
	return out, rows.Err()
}
