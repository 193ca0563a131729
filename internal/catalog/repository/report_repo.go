package repository

import (
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/safehaven-ai/safehaven-backend/internal/catalog/domain"
)

// ReportCollection is the default collection of property report documents.
const ReportCollection = "property_reports"

// ReportRepository reads property reports from MongoDB.
type ReportRepository struct {
	collection *mongo.Collection
}

func NewReportRepository(db *mongo.Database, collectionName string) *ReportRepository {
	return &ReportRepository{collection: db.Collection(collectionName)}
}

// PropertyReports returns every report ordered by report id.
func (r *ReportRepository) PropertyReports(ctx context.Context) ([]domain.PropertyReport, error) {
	cursor, err := r.collection.Find(ctx, bson.M{}, options.Find().SetSort(bson.D{{Key: "reportId", Value: 1}}))
	if err != nil {
		return nil, fmt.Errorf("failed to find reports: %w", err)
	}
	defer cursor.Close(ctx)

	reports := make([]domain.PropertyReport, 0)
	for cursor.Next(ctx) {
		var doc domain.PropertyReport
		if err := cursor.Decode(&doc); err != nil {
			return nil, fmt.Errorf("failed to decode report: %w", err)
		}
		reports = append(reports, normalize(doc))
	}
	if err := cursor.Err(); err != nil {
		return nil, err
	}
	return reports, nil
}

func (r *ReportRepository) PropertyReport(ctx context.Context, id string) (domain.PropertyReport, error) {
	var doc domain.PropertyReport
	err := r.collection.FindOne(ctx, bson.M{"reportId": id}).Decode(&doc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return domain.PropertyReport{}, domain.ErrNotFound
	}
	if err != nil {
		return domain.PropertyReport{}, fmt.Errorf("failed to find report %s: %w", id, err)
	}
	return normalize(doc), nil
}

// Seed upserts every report of src by report id.
func (r *ReportRepository) Seed(ctx context.Context, src domain.ReportSource) (int, error) {
	reports, err := src.PropertyReports(ctx)
	if err != nil {
		return 0, err
	}
	if len(reports) == 0 {
		return 0, nil
	}
	models := make([]mongo.WriteModel, 0, len(reports))
	for _, rep := range reports {
		models = append(models, mongo.NewReplaceOneModel().
			SetFilter(bson.M{"reportId": rep.ID}).
			SetReplacement(rep).
			SetUpsert(true))
	}
	res, err := r.collection.BulkWrite(ctx, models)
	if err != nil {
		return 0, fmt.Errorf("failed to seed reports: %w", err)
	}
	return int(res.UpsertedCount + res.MatchedCount), nil
}

func normalize(doc domain.PropertyReport) domain.PropertyReport {
	if doc.Issues == nil {
		doc.Issues = []domain.ReportIssue{}
	}
	if doc.Rooms == nil {
		doc.Rooms = []domain.RoomRisk{}
	}
	if doc.Documents == nil {
		doc.Documents = []domain.Document{}
	}
	return doc
}
