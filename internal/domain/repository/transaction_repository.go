package repository

import (
	"context"
	"time"

	"github.com/gudangmaju/motorparts-api/internal/domain/entity"
)

// TransactionRepository define el puerto del libro de transacciones.
// El libro es append-only: no existen Update ni Delete.
type TransactionRepository interface {
	Create(ctx context.Context, record *entity.TransactionRecord) error
	// GetByID devuelve (nil, nil) si el asiento no existe.
	GetByID(ctx context.Context, id string) (*entity.TransactionRecord, error)
	// List devuelve asientos ordenados por timestamp descendente,
	// opcionalmente acotados a [from, to].
	List(ctx context.Context, from, to *time.Time, limit, offset int) ([]*entity.TransactionRecord, error)
}
