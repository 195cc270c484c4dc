// Package ledger expone la consulta del libro de transacciones: historial,
// asiento individual y recibo imprimible. El libro nunca se edita desde aquí.
package ledger

import (
	"context"
	"time"

	"github.com/gudangmaju/motorparts-api/internal/application/dto"
	"github.com/gudangmaju/motorparts-api/internal/application/inventory"
	"github.com/gudangmaju/motorparts-api/internal/domain"
	"github.com/gudangmaju/motorparts-api/internal/domain/entity"
	"github.com/gudangmaju/motorparts-api/internal/domain/repository"
)

// ReceiptGenerator genera el recibo imprimible de un asiento.
type ReceiptGenerator interface {
	GenerateReceiptPDF(ctx context.Context, record *entity.TransactionRecord) ([]byte, error)
}

// UseCase consultas de solo lectura sobre el libro.
type UseCase struct {
	ledger  repository.TransactionRepository
	receipt ReceiptGenerator
}

// NewUseCase construye el caso de uso. receipt puede ser nil si no se sirven PDFs.
func NewUseCase(ledger repository.TransactionRepository, receipt ReceiptGenerator) *UseCase {
	return &UseCase{ledger: ledger, receipt: receipt}
}

// List devuelve asientos más recientes primero, opcionalmente acotados a [from, to].
func (uc *UseCase) List(ctx context.Context, from, to *time.Time, limit, offset int) (*dto.TransactionListResponse, error) {
	list, err := uc.ledger.List(ctx, from, to, limit, offset)
	if err != nil {
		return nil, err
	}
	items := make([]dto.TransactionResponse, 0, len(list))
	for _, r := range list {
		items = append(items, inventory.ToTransactionResponse(r))
	}
	return &dto.TransactionListResponse{
		Items: items,
		Page:  dto.PageResponse{Limit: limit, Offset: offset},
	}, nil
}

// Get devuelve un asiento por ID.
func (uc *UseCase) Get(ctx context.Context, id string) (*dto.TransactionResponse, error) {
	record, err := uc.ledger.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if record == nil {
		return nil, domain.ErrNotFound
	}
	resp := inventory.ToTransactionResponse(record)
	return &resp, nil
}

// GetReceiptPDF genera el recibo imprimible de un asiento.
func (uc *UseCase) GetReceiptPDF(ctx context.Context, id string) ([]byte, error) {
	record, err := uc.ledger.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if record == nil {
		return nil, domain.ErrNotFound
	}
	return uc.receipt.GenerateReceiptPDF(ctx, record)
}
