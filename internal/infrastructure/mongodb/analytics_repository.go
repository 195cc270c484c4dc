package mongodb

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/gudangmaju/motorparts-api/internal/domain/repository"
)

var _ repository.AnalyticsRepository = (*AnalyticsRepo)(nil)

// AnalyticsRepo agregaciones sobre el ledger usando el pipeline de MongoDB.
type AnalyticsRepo struct {
	coll *mongo.Collection
}

// NewAnalyticsRepository construye el adaptador de analítica.
func NewAnalyticsRepository(client *Client) *AnalyticsRepo {
	return &AnalyticsRepo{coll: client.db.Collection(collTransactions)}
}

// TopParts devuelve los repuestos con mayor volumen de unidades para un tipo
// de transacción, opcionalmente acotado por fechas.
func (r *AnalyticsRepo) TopParts(ctx context.Context, txType string, from, to *time.Time, limit int) ([]repository.PartVolumeResult, error) {
	match := bson.M{"type": txType}
	if from != nil || to != nil {
		rangeQuery := bson.M{}
		if from != nil {
			rangeQuery["$gte"] = *from
		}
		if to != nil {
			rangeQuery["$lte"] = *to
		}
		match["occurred_at"] = rangeQuery
	}

	pipeline := mongo.Pipeline{
		{{Key: "$match", Value: match}},
		{{Key: "$unwind", Value: "$items"}},
		{{Key: "$group", Value: bson.M{
			"_id":       "$items.part_id",
			"part_name": bson.M{"$last": "$items.part_name"},
			"units":     bson.M{"$sum": "$items.quantity"},
		}}},
		{{Key: "$sort", Value: bson.D{{Key: "units", Value: -1}}}},
		{{Key: "$limit", Value: limit}},
	}

	cursor, err := r.coll.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, fmt.Errorf("aggregate top parts: %w", err)
	}
	defer cursor.Close(ctx)

	var results []repository.PartVolumeResult
	for cursor.Next(ctx) {
		var row struct {
			PartID   string `bson:"_id"`
			PartName string `bson:"part_name"`
			Units    int64  `bson:"units"`
		}
		if err := cursor.Decode(&row); err != nil {
			return nil, fmt.Errorf("decode top part: %w", err)
		}
		results = append(results, repository.PartVolumeResult{
			PartID:   row.PartID,
			PartName: row.PartName,
			Units:    row.Units,
		})
	}
	if err := cursor.Err(); err != nil {
		return nil, fmt.Errorf("iterate top parts: %w", err)
	}
	return results, nil
}

// PeriodTotals calcula conteo de asientos, valor monetario total y unidades
// movidas para un tipo dentro de un rango de fechas. Como los montos viajan
// como string, el pipeline los convierte con $toDecimal.
func (r *AnalyticsRepo) PeriodTotals(ctx context.Context, txType string, from, to time.Time) (repository.PeriodTotalsResult, error) {
	pipeline := mongo.Pipeline{
		{{Key: "$match", Value: bson.M{
			"type":        txType,
			"occurred_at": bson.M{"$gte": from, "$lte": to},
		}}},
		{{Key: "$group", Value: bson.M{
			"_id":   nil,
			"count": bson.M{"$sum": 1},
			"total": bson.M{"$sum": bson.M{"$toDecimal": "$total_amount"}},
			"units": bson.M{"$sum": bson.M{"$sum": "$items.quantity"}},
		}}},
	}

	cursor, err := r.coll.Aggregate(ctx, pipeline)
	if err != nil {
		return repository.PeriodTotalsResult{}, fmt.Errorf("aggregate period totals: %w", err)
	}
	defer cursor.Close(ctx)

	result := repository.PeriodTotalsResult{TotalValue: decimal.Zero}
	if cursor.Next(ctx) {
		var row struct {
			Count int64                `bson:"count"`
			Total primitive.Decimal128 `bson:"total"`
			Units int64                `bson:"units"`
		}
		if err := cursor.Decode(&row); err != nil {
			return repository.PeriodTotalsResult{}, fmt.Errorf("decode period totals: %w", err)
		}
		total, err := decimal.NewFromString(row.Total.String())
		if err != nil {
			return repository.PeriodTotalsResult{}, fmt.Errorf("parse period total: %w", err)
		}
		result.TransactionCount = row.Count
		result.TotalValue = total
		result.TotalUnits = row.Units
	}
	if err := cursor.Err(); err != nil {
		return repository.PeriodTotalsResult{}, fmt.Errorf("iterate period totals: %w", err)
	}
	return result, nil
}
