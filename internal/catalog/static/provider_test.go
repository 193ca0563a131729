package static

import (
	"context"
	"testing"

	"github.com/safehaven-ai/safehaven-backend/internal/catalog/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProvider_Regulator(t *testing.T) {
	p := New()
	ctx := context.Background()

	cities, err := p.RegulatorCities(ctx)
	require.NoError(t, err)
	require.Len(t, cities, 5)
	assert.Equal(t, "Bengaluru", cities[0].Name)
	assert.Equal(t, 15.0, domain.HighRiskPercent(cities[0]))

	builders, err := p.Builders(ctx)
	require.NoError(t, err)
	var flagged []string
	for _, b := range builders {
		if domain.BuilderFlagged(b) {
			flagged = append(flagged, b.Name)
		}
	}
	assert.Equal(t, []string{"Sobha Limited", "XYZ Builders", "ABC Construction"}, flagged)

	items, err := p.ActionItems(ctx)
	require.NoError(t, err)
	assert.Len(t, items, 5)
	assert.Equal(t, domain.PriorityHigh, items[0].Priority)

	slices, err := p.RegulatorRiskDistribution(ctx)
	require.NoError(t, err)
	total := 0
	for _, s := range slices {
		total += s.Value
	}
	assert.Equal(t, 100, total)
}

func TestProvider_ReturnsCopies(t *testing.T) {
	p := New()
	ctx := context.Background()

	cities, err := p.RegulatorCities(ctx)
	require.NoError(t, err)
	cities[0].Name = "Changed"

	report, err := p.PropertyReport(ctx, "1")
	require.NoError(t, err)
	report.Issues[0].Status = "Closed"

	again, err := p.RegulatorCities(ctx)
	require.NoError(t, err)
	assert.Equal(t, "Bengaluru", again[0].Name)

	report, err = p.PropertyReport(ctx, "1")
	require.NoError(t, err)
	assert.Equal(t, "Open", report.Issues[0].Status)
	assert.Equal(t, "Sunrise Apartments", report.Name)

	_, err = p.PropertyReport(ctx, "99")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestProvider_HomeAndAbout(t *testing.T) {
	p := New()
	ctx := context.Background()

	home, err := p.HomeSummary(ctx)
	require.NoError(t, err)
	assert.Len(t, home.Stats, 4)
	assert.Equal(t, "PROP-2023-002", home.RecentInspections[1].PropertyID)

	a, err := p.About(ctx)
	require.NoError(t, err)
	assert.Len(t, a.Team, 4)
	assert.Len(t, a.Features, 4)
	assert.Equal(t, "98%", a.Stats[1].Value)
}
