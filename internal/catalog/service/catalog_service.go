package service

import (
	"context"

	"github.com/safehaven-ai/safehaven-backend/internal/catalog/domain"
)

type StatView struct {
	domain.Stat
	Trend string `json:"trend"`
}

type RecentInspectionView struct {
	domain.RecentInspection
	RiskBand string `json:"risk_band"`
}

type HomeView struct {
	Stats             []StatView             `json:"stats"`
	RecentInspections []RecentInspectionView `json:"recent_inspections"`
}

type ReportView struct {
	domain.PropertyReport
	Condition      string `json:"condition"`
	ConditionColor string `json:"condition_color"`
}

type CityView struct {
	domain.City
	HighRiskPercent float64 `json:"high_risk_percent"`
}

type BuilderView struct {
	domain.Builder
	Flagged bool `json:"flagged"`
}

type TrendView struct {
	domain.TrendingIssue
	Trend string `json:"trend"`
}

// CatalogService derives the dashboard views from a provider.
type CatalogService struct {
	provider domain.Provider
}

func NewCatalogService(provider domain.Provider) *CatalogService {
	return &CatalogService{provider: provider}
}

func (s *CatalogService) Home(ctx context.Context) (HomeView, error) {
	summary, err := s.provider.HomeSummary(ctx)
	if err != nil {
		return HomeView{}, err
	}
	view := HomeView{
		Stats:             make([]StatView, 0, len(summary.Stats)),
		RecentInspections: make([]RecentInspectionView, 0, len(summary.RecentInspections)),
	}
	for _, st := range summary.Stats {
		view.Stats = append(view.Stats, StatView{Stat: st, Trend: domain.TrendDirection(st.Change)})
	}
	for _, ri := range summary.RecentInspections {
		view.RecentInspections = append(view.RecentInspections, RecentInspectionView{RecentInspection: ri, RiskBand: domain.RiskBand(ri.RiskScore)})
	}
	return view, nil
}

func (s *CatalogService) Reports(ctx context.Context) ([]ReportView, error) {
	reports, err := s.provider.PropertyReports(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]ReportView, 0, len(reports))
	for _, r := range reports {
		out = append(out, reportView(r))
	}
	return out, nil
}

func (s *CatalogService) Report(ctx context.Context, id string) (ReportView, error) {
	r, err := s.provider.PropertyReport(ctx, id)
	if err != nil {
		return ReportView{}, err
	}
	return reportView(r), nil
}

func reportView(r domain.PropertyReport) ReportView {
	return ReportView{
		PropertyReport: r,
		Condition:      domain.ReportLevel(r.RiskScore),
		ConditionColor: domain.ReportColor(r.RiskScore),
	}
}

func (s *CatalogService) ReportRiskDistribution(ctx context.Context) ([]domain.RiskSlice, error) {
	return s.provider.ReportRiskDistribution(ctx)
}

func (s *CatalogService) Cities(ctx context.Context) ([]CityView, error) {
	cities, err := s.provider.RegulatorCities(ctx)
	if err != nil {
		return nil, err
	}
	return cityViews(cities), nil
}

// City returns the named city. Unknown names fall back to the first city;
// matched reports which one happened.
func (s *CatalogService) City(ctx context.Context, name string) (view CityView, matched bool, err error) {
	cities, err := s.provider.RegulatorCities(ctx)
	if err != nil {
		return CityView{}, false, err
	}
	if len(cities) == 0 {
		return CityView{}, false, domain.ErrNotFound
	}
	c, matched := domain.FindCity(cities, name)
	return CityView{City: c, HighRiskPercent: domain.HighRiskPercent(c)}, matched, nil
}

// Compliance lists cities by inspection volume, busiest first.
func (s *CatalogService) Compliance(ctx context.Context) ([]CityView, error) {
	cities, err := s.provider.RegulatorCities(ctx)
	if err != nil {
		return nil, err
	}
	return cityViews(domain.ByInspections(cities)), nil
}

func cityViews(cities []domain.City) []CityView {
	out := make([]CityView, 0, len(cities))
	for _, c := range cities {
		out = append(out, CityView{City: c, HighRiskPercent: domain.HighRiskPercent(c)})
	}
	return out
}

func (s *CatalogService) RegulatorRiskDistribution(ctx context.Context) ([]domain.RiskSlice, error) {
	return s.provider.RegulatorRiskDistribution(ctx)
}

func (s *CatalogService) Builders(ctx context.Context) ([]BuilderView, error) {
	builders, err := s.provider.Builders(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]BuilderView, 0, len(builders))
	for _, b := range builders {
		out = append(out, BuilderView{Builder: b, Flagged: domain.BuilderFlagged(b)})
	}
	return out, nil
}

func (s *CatalogService) TrendingIssues(ctx context.Context) ([]TrendView, error) {
	issues, err := s.provider.TrendingIssues(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]TrendView, 0, len(issues))
	for _, ti := range issues {
		out = append(out, TrendView{TrendingIssue: ti, Trend: domain.TrendDirection(ti.Change)})
	}
	return out, nil
}

func (s *CatalogService) ActionItems(ctx context.Context) ([]domain.ActionItem, error) {
	return s.provider.ActionItems(ctx)
}

func (s *CatalogService) About(ctx context.Context) (domain.About, error) {
	return s.provider.About(ctx)
}
