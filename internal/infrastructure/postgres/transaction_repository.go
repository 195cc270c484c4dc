package postgres

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"
	"github.com/gudangmaju/motorparts-api/internal/domain/entity"
	"github.com/gudangmaju/motorparts-api/internal/domain/repository"
)

var _ repository.TransactionRepository = (*TransactionRepo)(nil)

// TransactionRepo implementación del libro de transacciones sobre PostgreSQL
// (usable con pool o tx). Las líneas se guardan como JSONB: son instantáneas
// inmutables, nunca se consultan por clave foránea.
type TransactionRepo struct {
	q Querier
}

// NewTransactionRepository construye el adaptador. Pasar pool o tx (Querier).
func NewTransactionRepository(q Querier) *TransactionRepo {
	return &TransactionRepo{q: q}
}

// txItemDoc forma JSON de una línea dentro de la columna items.
type txItemDoc struct {
	PartID   string          `json:"part_id"`
	PartName string          `json:"part_name"`
	Quantity int64           `json:"quantity"`
	Price    decimal.Decimal `json:"price"`
}

// Create persiste un asiento. El libro es append-only: no hay UPDATE ni DELETE.
func (r *TransactionRepo) Create(ctx context.Context, record *entity.TransactionRecord) error {
	items := make([]txItemDoc, 0, len(record.Items))
	for _, it := range record.Items {
		items = append(items, txItemDoc{
			PartID:   it.PartID,
			PartName: it.PartName,
			Quantity: it.Quantity,
			Price:    it.Price,
		})
	}
	payload, err := json.Marshal(items)
	if err != nil {
		return fmt.Errorf("marshal items: %w", err)
	}
	query := `
		INSERT INTO transactions (id, type, items, occurred_at, total_amount, notes, created_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`
	createdBy := (*string)(nil)
	if record.CreatedBy != "" {
		createdBy = &record.CreatedBy
	}
	_, err = r.q.Exec(ctx, query,
		record.ID, record.Type, string(payload), record.Timestamp,
		record.TotalAmount, record.Notes, createdBy,
	)
	if err != nil {
		return fmt.Errorf("insert transaction: %w", err)
	}
	return nil
}

// GetByID obtiene un asiento por ID. Devuelve (nil, nil) si no existe.
func (r *TransactionRepo) GetByID(ctx context.Context, id string) (*entity.TransactionRecord, error) {
	query := `
		SELECT id, type, items, occurred_at, total_amount, notes, created_by
		FROM transactions WHERE id = $1`
	rec, err := scanTransaction(r.q.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get transaction: %w", err)
	}
	return rec, nil
}

// List lista asientos más recientes primero, opcionalmente acotados a [from, to].
func (r *TransactionRepo) List(ctx context.Context, from, to *time.Time, limit, offset int) ([]*entity.TransactionRecord, error) {
	query := `
		SELECT id, type, items, occurred_at, total_amount, notes, created_by
		FROM transactions WHERE 1=1`
	args := []any{}
	pos := 1
	if from != nil {
		query += fmt.Sprintf(" AND occurred_at >= $%d", pos)
		args = append(args, *from)
		pos++
	}
	if to != nil {
		query += fmt.Sprintf(" AND occurred_at <= $%d", pos)
		args = append(args, *to)
		pos++
	}
	query += fmt.Sprintf(" ORDER BY occurred_at DESC LIMIT $%d OFFSET $%d", pos, pos+1)
	args = append(args, limit, offset)

	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list transactions: %w", err)
	}
	defer rows.Close()
	var list []*entity.TransactionRecord
	for rows.Next() {
		rec, err := scanTransaction(rows)
		if err != nil {
			return nil, fmt.Errorf("scan transaction: %w", err)
		}
		list = append(list, rec)
	}
	return list, rows.Err()
}

func scanTransaction(row pgx.Row) (*entity.TransactionRecord, error) {
	var rec entity.TransactionRecord
	var payload []byte
	var createdBy *string
	if err := row.Scan(&rec.ID, &rec.Type, &payload, &rec.Timestamp,
		&rec.TotalAmount, &rec.Notes, &createdBy); err != nil {
		return nil, err
	}
	var items []txItemDoc
	if err := json.Unmarshal(payload, &items); err != nil {
		return nil, fmt.Errorf("unmarshal items: %w", err)
	}
	rec.Items = make([]entity.TransactionItem, 0, len(items))
	for _, it := range items {
		rec.Items = append(rec.Items, entity.TransactionItem{
			PartID:   it.PartID,
			PartName: it.PartName,
			Quantity: it.Quantity,
			Price:    it.Price,
		})
	}
	if createdBy != nil {
		rec.CreatedBy = *createdBy
	}
	return &rec, nil
}
