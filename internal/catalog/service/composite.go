package service

import (
	"context"

	"github.com/safehaven-ai/safehaven-backend/internal/catalog/domain"
)

// Composite serves each dataset from the most specific configured source and
// falls back to base for the rest.
type Composite struct {
	base      domain.Provider
	reports   domain.ReportSource
	regulator domain.RegulatorSource
}

// NewComposite builds a provider over base. reports and regulator may be nil.
func NewComposite(base domain.Provider, reports domain.ReportSource, regulator domain.RegulatorSource) *Composite {
	c := &Composite{base: base, reports: base, regulator: base}
	if reports != nil {
		c.reports = reports
	}
	if regulator != nil {
		c.regulator = regulator
	}
	return c
}

var _ domain.Provider = (*Composite)(nil)

func (c *Composite) HomeSummary(ctx context.Context) (domain.HomeSummary, error) {
	return c.base.HomeSummary(ctx)
}

func (c *Composite) About(ctx context.Context) (domain.About, error) {
	return c.base.About(ctx)
}

func (c *Composite) PropertyReports(ctx context.Context) ([]domain.PropertyReport, error) {
	return c.reports.PropertyReports(ctx)
}

func (c *Composite) PropertyReport(ctx context.Context, id string) (domain.PropertyReport, error) {
	return c.reports.PropertyReport(ctx, id)
}

// ReportRiskDistribution comes from the regulator source when it can serve
// it, since both charts live in the same analytics store.
func (c *Composite) ReportRiskDistribution(ctx context.Context) ([]domain.RiskSlice, error) {
	if src, ok := c.regulator.(domain.ReportDistributionSource); ok {
		return src.ReportRiskDistribution(ctx)
	}
	return c.base.ReportRiskDistribution(ctx)
}

func (c *Composite) RegulatorCities(ctx context.Context) ([]domain.City, error) {
	return c.regulator.RegulatorCities(ctx)
}

func (c *Composite) RegulatorRiskDistribution(ctx context.Context) ([]domain.RiskSlice, error) {
	return c.regulator.RegulatorRiskDistribution(ctx)
}

func (c *Composite) Builders(ctx context.Context) ([]domain.Builder, error) {
	return c.regulator.Builders(ctx)
}

func (c *Composite) TrendingIssues(ctx context.Context) ([]domain.TrendingIssue, error) {
	return c.regulator.TrendingIssues(ctx)
}

func (c *Composite) ActionItems(ctx context.Context) ([]domain.ActionItem, error) {
	return c.regulator.ActionItems(ctx)
}
