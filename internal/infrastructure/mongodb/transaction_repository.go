package mongodb

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/gudangmaju/motorparts-api/internal/domain/entity"
	"github.com/gudangmaju/motorparts-api/internal/domain/repository"
)

var _ repository.TransactionRepository = (*TransactionRepo)(nil)

type transactionItemDoc struct {
	PartID   string `bson:"part_id"`
	PartName string `bson:"part_name"`
	Quantity int64  `bson:"quantity"`
	Price    string `bson:"price"`
}

type transactionDoc struct {
	ID          string               `bson:"_id"`
	Type        string               `bson:"type"`
	Items       []transactionItemDoc `bson:"items"`
	OccurredAt  time.Time            `bson:"occurred_at"`
	TotalAmount string               `bson:"total_amount"`
	Notes       string               `bson:"notes"`
	CreatedBy   string               `bson:"created_by"`
}

func toTransactionDoc(record *entity.TransactionRecord) *transactionDoc {
	items := make([]transactionItemDoc, len(record.Items))
	for i, item := range record.Items {
		items[i] = transactionItemDoc{
			PartID:   item.PartID,
			PartName: item.PartName,
			Quantity: item.Quantity,
			Price:    item.Price.String(),
		}
	}
	return &transactionDoc{
		ID:          record.ID,
		Type:        record.Type,
		Items:       items,
		OccurredAt:  record.Timestamp,
		TotalAmount: record.TotalAmount.String(),
		Notes:       record.Notes,
		CreatedBy:   record.CreatedBy,
	}
}

func (d *transactionDoc) toEntity() (*entity.TransactionRecord, error) {
	total, err := decimal.NewFromString(d.TotalAmount)
	if err != nil {
		return nil, fmt.Errorf("parse transaction total %q: %w", d.TotalAmount, err)
	}
	items := make([]entity.TransactionItem, len(d.Items))
	for i, item := range d.Items {
		price, err := decimal.NewFromString(item.Price)
		if err != nil {
			return nil, fmt.Errorf("parse item price %q: %w", item.Price, err)
		}
		items[i] = entity.TransactionItem{
			PartID:   item.PartID,
			PartName: item.PartName,
			Quantity: item.Quantity,
			Price:    price,
		}
	}
	return &entity.TransactionRecord{
		ID:          d.ID,
		Type:        d.Type,
		Items:       items,
		Timestamp:   d.OccurredAt,
		TotalAmount: total,
		Notes:       d.Notes,
		CreatedBy:   d.CreatedBy,
	}, nil
}

// TransactionRepo implementación del ledger append-only sobre MongoDB.
type TransactionRepo struct {
	coll *mongo.Collection
}

// NewTransactionRepository construye el adaptador del ledger.
func NewTransactionRepository(client *Client) *TransactionRepo {
	return &TransactionRepo{coll: client.db.Collection(collTransactions)}
}

// Create agrega un registro al ledger. Los registros nunca se modifican.
func (r *TransactionRepo) Create(ctx context.Context, record *entity.TransactionRecord) error {
	if _, err := r.coll.InsertOne(ctx, toTransactionDoc(record)); err != nil {
		return fmt.Errorf("insert transaction: %w", err)
	}
	return nil
}

// GetByID obtiene un registro por ID. Devuelve (nil, nil) si no existe.
func (r *TransactionRepo) GetByID(ctx context.Context, id string) (*entity.TransactionRecord, error) {
	var doc transactionDoc
	err := r.coll.FindOne(ctx, bson.M{"_id": id}).Decode(&doc)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, nil
		}
		return nil, fmt.Errorf("find transaction: %w", err)
	}
	return doc.toEntity()
}

// List devuelve una página del ledger, más reciente primero, acotada
// opcionalmente por fechas.
func (r *TransactionRepo) List(ctx context.Context, from, to *time.Time, limit, offset int) ([]*entity.TransactionRecord, error) {
	query := bson.M{}
	if from != nil || to != nil {
		rangeQuery := bson.M{}
		if from != nil {
			rangeQuery["$gte"] = *from
		}
		if to != nil {
			rangeQuery["$lte"] = *to
		}
		query["occurred_at"] = rangeQuery
	}

	opts := options.Find().
		SetSort(bson.D{{Key: "occurred_at", Value: -1}}).
		SetLimit(int64(limit)).
		SetSkip(int64(offset))
	cursor, err := r.coll.Find(ctx, query, opts)
	if err != nil {
		return nil, fmt.Errorf("find transactions: %w", err)
	}
	defer cursor.Close(ctx)

	var records []*entity.TransactionRecord
	for cursor.Next(ctx) {
		var doc transactionDoc
		if err := cursor.Decode(&doc); err != nil {
			return nil, fmt.Errorf("decode transaction: %w", err)
		}
		record, err := doc.toEntity()
		if err != nil {
			return nil, err
		}
		records = append(records, record)
	}
	if err := cursor.Err(); err != nil {
		return nil, fmt.Errorf("iterate transactions: %w", err)
	}
	return records, nil
}
