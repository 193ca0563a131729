// Package static serves the built-in sample datasets. It backs the dashboard
// when no database is configured and seeds the databases from the admin CLI.
package static

import (
	"context"

	"github.com/safehaven-ai/safehaven-backend/internal/catalog/domain"
)

// Provider implements domain.Provider over in-memory sample data. Every call
// returns fresh copies.
type Provider struct{}

func New() *Provider { return &Provider{} }

var _ domain.Provider = (*Provider)(nil)

func (*Provider) HomeSummary(ctx context.Context) (domain.HomeSummary, error) {
	return domain.HomeSummary{
		Stats:             copyOf(homeStats),
		RecentInspections: copyOf(recentInspections),
	}, nil
}

func (*Provider) PropertyReports(ctx context.Context) ([]domain.PropertyReport, error) {
	out := make([]domain.PropertyReport, len(propertyReports))
	for i, r := range propertyReports {
		out[i] = cloneReport(r)
	}
	return out, nil
}

func (*Provider) PropertyReport(ctx context.Context, id string) (domain.PropertyReport, error) {
	for _, r := range propertyReports {
		if r.ID == id {
			return cloneReport(r), nil
		}
	}
	return domain.PropertyReport{}, domain.ErrNotFound
}

func (*Provider) ReportRiskDistribution(ctx context.Context) ([]domain.RiskSlice, error) {
	return copyOf(reportRiskDistribution), nil
}

func (*Provider) RegulatorCities(ctx context.Context) ([]domain.City, error) {
	return copyOf(cities), nil
}

func (*Provider) RegulatorRiskDistribution(ctx context.Context) ([]domain.RiskSlice, error) {
	return copyOf(regulatorRiskDistribution), nil
}

func (*Provider) Builders(ctx context.Context) ([]domain.Builder, error) {
	return copyOf(builders), nil
}

func (*Provider) TrendingIssues(ctx context.Context) ([]domain.TrendingIssue, error) {
	return copyOf(trendingIssues), nil
}

func (*Provider) ActionItems(ctx context.Context) ([]domain.ActionItem, error) {
	return copyOf(actionItems), nil
}

func (*Provider) About(ctx context.Context) (domain.About, error) {
	return domain.About{
		Team:     copyOf(about.Team),
		Features: copyOf(about.Features),
		Stats:    copyOf(about.Stats),
	}, nil
}

func copyOf[T any](in []T) []T {
	return append([]T(nil), in...)
}

func cloneReport(r domain.PropertyReport) domain.PropertyReport {
	r.Issues = copyOf(r.Issues)
	r.Rooms = copyOf(r.Rooms)
	r.Documents = copyOf(r.Documents)
	return r
}
