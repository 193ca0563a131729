package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/safehaven-ai/safehaven-backend/internal/catalog/domain"
)

// Risk distribution scopes.
const (
	ScopeRegulator = "regulator"
	ScopeReports   = "reports"
)

// RegulatorRepository reads regulator analytics from Postgres.
type RegulatorRepository struct {
	db *sql.DB
}

func NewRegulatorRepository(db *sql.DB) *RegulatorRepository {
	return &RegulatorRepository{db: db}
}

var _ domain.RegulatorSource = (*RegulatorRepository)(nil)

func (r *RegulatorRepository) RegulatorCities(ctx context.Context) ([]domain.City, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT name, inspections, high_risk, violations, unsafe
		FROM regulator_cities
		ORDER BY position
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to query cities: %w", err)
	}
	defer rows.Close()

	out := []domain.City{}
	for rows.Next() {
		var c domain.City
		if err := rows.Scan(&c.Name, &c.Inspections, &c.HighRisk, &c.Violations, &c.Unsafe); err != nil {
			return nil, fmt.Errorf("failed to scan city: %w", err)
		}
		out = append(out, c)
	}
	return out, rows.Err()
}

func (r *RegulatorRepository) RegulatorRiskDistribution(ctx context.Context) ([]domain.RiskSlice, error) {
	return r.riskDistribution(ctx, ScopeRegulator)
}

// ReportRiskDistribution lets the repository also serve the reports chart.
func (r *RegulatorRepository) ReportRiskDistribution(ctx context.Context) ([]domain.RiskSlice, error) {
	return r.riskDistribution(ctx, ScopeReports)
}

func (r *RegulatorRepository) riskDistribution(ctx context.Context, scope string) ([]domain.RiskSlice, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT name, value, color
		FROM risk_distribution
		WHERE scope = $1
		ORDER BY position
	`, scope)
	if err != nil {
		return nil, fmt.Errorf("failed to query %s risk distribution: %w", scope, err)
	}
	defer rows.Close()

	out := []domain.RiskSlice{}
	for rows.Next() {
		var s domain.RiskSlice
		if err := rows.Scan(&s.Name, &s.Value, &s.Color); err != nil {
			return nil, fmt.Errorf("failed to scan risk slice: %w", err)
		}
		out = append(out, s)
	}
	return out, rows.Err()
}

func (r *RegulatorRepository) Builders(ctx context.Context) ([]domain.Builder, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, name, score, projects, high_risk, status
		FROM builders
		ORDER BY id
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to query builders: %w", err)
	}
	defer rows.Close()

	out := []domain.Builder{}
	for rows.Next() {
		var b domain.Builder
		if err := rows.Scan(&b.ID, &b.Name, &b.Score, &b.Projects, &b.HighRisk, &b.Status); err != nil {
			return nil, fmt.Errorf("failed to scan builder: %w", err)
		}
		out = append(out, b)
	}
	return out, rows.Err()
}

func (r *RegulatorRepository) TrendingIssues(ctx context.Context) ([]domain.TrendingIssue, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT issue, current_month, change_pct
		FROM trending_issues
		ORDER BY position
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to query trending issues: %w", err)
	}
	defer rows.Close()

	out := []domain.TrendingIssue{}
	for rows.Next() {
		var ti domain.TrendingIssue
		if err := rows.Scan(&ti.Issue, &ti.CurrentMonth, &ti.Change); err != nil {
			return nil, fmt.Errorf("failed to scan trending issue: %w", err)
		}
		out = append(out, ti)
	}
	return out, rows.Err()
}

func (r *RegulatorRepository) ActionItems(ctx context.Context) ([]domain.ActionItem, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, title, priority
		FROM regulator_action_items
		ORDER BY id
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to query action items: %w", err)
	}
	defer rows.Close()

	out := []domain.ActionItem{}
	for rows.Next() {
		var a domain.ActionItem
		if err := rows.Scan(&a.ID, &a.Title, &a.Priority); err != nil {
			return nil, fmt.Errorf("failed to scan action item: %w", err)
		}
		out = append(out, a)
	}
	return out, rows.Err()
}

// Seed replaces the regulator tables with the datasets of src in one
// transaction.
func (r *RegulatorRepository) Seed(ctx context.Context, src domain.Provider) error {
	cities, err := src.RegulatorCities(ctx)
	if err != nil {
		return err
	}
	regulatorRisk, err := src.RegulatorRiskDistribution(ctx)
	if err != nil {
		return err
	}
	reportRisk, err := src.ReportRiskDistribution(ctx)
	if err != nil {
		return err
	}
	builders, err := src.Builders(ctx)
	if err != nil {
		return err
	}
	trending, err := src.TrendingIssues(ctx)
	if err != nil {
		return err
	}
	actions, err := src.ActionItems(ctx)
	if err != nil {
		return err
	}

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `TRUNCATE regulator_cities, risk_distribution, builders, trending_issues, regulator_action_items`); err != nil {
		return fmt.Errorf("failed to clear catalog tables: %w", err)
	}

	for i, c := range cities {
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO regulator_cities (name, position, inspections, high_risk, violations, unsafe) VALUES ($1, $2, $3, $4, $5, $6)`,
			c.Name, i, c.Inspections, c.HighRisk, c.Violations, c.Unsafe,
		); err != nil {
			return fmt.Errorf("failed to insert city %s: %w", c.Name, err)
		}
	}
	for scope, slices := range map[string][]domain.RiskSlice{ScopeRegulator: regulatorRisk, ScopeReports: reportRisk} {
		for i, s := range slices {
			if _, err := tx.ExecContext(ctx,
				`INSERT INTO risk_distribution (scope, name, position, value, color) VALUES ($1, $2, $3, $4, $5)`,
				scope, s.Name, i, s.Value, s.Color,
			); err != nil {
				return fmt.Errorf("failed to insert risk slice %s/%s: %w", scope, s.Name, err)
			}
		}
	}
	for _, b := range builders {
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO builders (id, name, score, projects, high_risk, status) VALUES ($1, $2, $3, $4, $5, $6)`,
			b.ID, b.Name, b.Score, b.Projects, b.HighRisk, b.Status,
		); err != nil {
			return fmt.Errorf("failed to insert builder %s: %w", b.Name, err)
		}
	}
	for i, ti := range trending {
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO trending_issues (issue, position, current_month, change_pct) VALUES ($1, $2, $3, $4)`,
			ti.Issue, i, ti.CurrentMonth, ti.Change,
		); err != nil {
			return fmt.Errorf("failed to insert trending issue %s: %w", ti.Issue, err)
		}
	}
	for _, a := range actions {
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO regulator_action_items (id, title, priority) VALUES ($1, $2, $3)`,
			a.ID, a.Title, a.Priority,
		); err != nil {
			return fmt.Errorf("failed to insert action item %d: %w", a.ID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit catalog seed: %w", err)
	}
	return nil
}
