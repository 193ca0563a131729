package repository

import (
	"context"
	"testing"

	"github.com/safehaven-ai/safehaven-backend/internal/catalog/domain"
	"github.com/safehaven-ai/safehaven-backend/internal/catalog/static"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo/integration/mtest"
)

const reportNS = "safehaven.property_reports"

func sunriseDoc() bson.D {
	return bson.D{
		{Key: "reportId", Value: "1"},
		{Key: "name", Value: "Sunrise Apartments"},
		{Key: "address", Value: "123 Main St, Bengaluru"},
		{Key: "yearBuilt", Value: 2015},
		{Key: "riskScore", Value: 78},
		{Key: "estimatedCost", Value: 125000.0},
		{Key: "issues", Value: bson.A{
			bson.D{{Key: "id", Value: 1}, {Key: "category", Value: "Electrical"}, {Key: "severity", Value: "High"}, {Key: "status", Value: "Open"}},
		}},
	}
}

func TestReportRepository(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))

	mt.Run("list", func(mt *mtest.T) {
		repo := NewReportRepository(mt.DB, ReportCollection)
		mt.AddMockResponses(
			mtest.CreateCursorResponse(1, reportNS, mtest.FirstBatch, sunriseDoc()),
			mtest.CreateCursorResponse(0, reportNS, mtest.NextBatch),
		)

		reports, err := repo.PropertyReports(context.Background())
		require.NoError(mt, err)
		require.Len(mt, reports, 1)
		r := reports[0]
		assert.Equal(mt, "1", r.ID)
		assert.Equal(mt, 2015, r.YearBuilt)
		assert.Equal(mt, 125000.0, r.EstimatedCost)
		assert.Equal(mt, "Electrical", r.Issues[0].Category)
		assert.NotNil(mt, r.Rooms)
		assert.NotNil(mt, r.Documents)
	})

	mt.Run("get", func(mt *mtest.T) {
		repo := NewReportRepository(mt.DB, ReportCollection)
		mt.AddMockResponses(mtest.CreateCursorResponse(0, reportNS, mtest.FirstBatch, sunriseDoc()))

		r, err := repo.PropertyReport(context.Background(), "1")
		require.NoError(mt, err)
		assert.Equal(mt, "Sunrise Apartments", r.Name)
		assert.Equal(mt, domain.LevelFair, domain.ReportLevel(r.RiskScore))
	})

	mt.Run("get missing", func(mt *mtest.T) {
		repo := NewReportRepository(mt.DB, ReportCollection)
		mt.AddMockResponses(mtest.CreateCursorResponse(0, reportNS, mtest.FirstBatch))

		_, err := repo.PropertyReport(context.Background(), "42")
		assert.ErrorIs(mt, err, domain.ErrNotFound)
	})

	mt.Run("seed", func(mt *mtest.T) {
		repo := NewReportRepository(mt.DB, ReportCollection)
		mt.AddMockResponses(mtest.CreateSuccessResponse(
			bson.E{Key: "n", Value: 1},
			bson.E{Key: "nModified", Value: 0},
			bson.E{Key: "upserted", Value: bson.A{
				bson.D{{Key: "index", Value: 0}, {Key: "_id", Value: primitive.NewObjectID()}},
			}},
		))

		n, err := repo.Seed(context.Background(), static.New())
		require.NoError(mt, err)
		assert.Equal(mt, 1, n)
	})
}
