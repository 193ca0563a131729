package domain

import "context"

// ReportSource serves property reports.
type ReportSource interface {
	PropertyReports(ctx context.Context) ([]PropertyReport, error)
	PropertyReport(ctx context.Context, id string) (PropertyReport, error)
}

// RegulatorSource serves the regulator dashboard datasets.
type RegulatorSource interface {
	RegulatorCities(ctx context.Context) ([]City, error)
	RegulatorRiskDistribution(ctx context.Context) ([]RiskSlice, error)
	Builders(ctx context.Context) ([]Builder, error)
	TrendingIssues(ctx context.Context) ([]TrendingIssue, error)
	ActionItems(ctx context.Context) ([]ActionItem, error)
}

// ReportDistributionSource serves the risk chart of the reports page.
type ReportDistributionSource interface {
	ReportRiskDistribution(ctx context.Context) ([]RiskSlice, error)
}

// Provider serves every read-only dataset of the dashboard.
type Provider interface {
	ReportSource
	RegulatorSource
	ReportDistributionSource
	HomeSummary(ctx context.Context) (HomeSummary, error)
	About(ctx context.Context) (About, error)
}
