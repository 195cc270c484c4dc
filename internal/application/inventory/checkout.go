package inventory

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/gudangmaju/motorparts-api/internal/application/dto"
	"github.com/gudangmaju/motorparts-api/internal/domain"
	"github.com/gudangmaju/motorparts-api/internal/domain/entity"
	"github.com/gudangmaju/motorparts-api/internal/domain/repository"
)

// CreateOutgoingTransaction valida y aplica un lote de líneas de salida de
// forma atómica respecto a la suficiencia de stock: o todas las líneas se
// aplican, o ninguna. Un solo asiento "out" cubre todo el lote.
//
// Líneas repetidas del mismo repuesto (p. ej. varios escaneos de barcode) se
// fusionan sumando cantidades antes de validar, de modo que la suficiencia se
// comprueba contra el total solicitado y no línea por línea.
//
// Un part_id inexistente rechaza el lote completo con ErrNotFound: descartar
// la línea en silencio ocultaría errores de captura.
func (uc *StockUseCase) CreateOutgoingTransaction(ctx context.Context, in dto.CreateOutgoingTransactionRequest, actorID string) (*dto.OutgoingTransactionResponse, error) {
	if len(in.Items) == 0 {
		return nil, domain.ErrInvalidInput
	}
	for _, it := range in.Items {
		if it.PartID == "" || it.Quantity <= 0 {
			return nil, domain.ErrInvalidInput
		}
	}
	merged := mergeItems(in.Items)
	// Orden estable de bloqueo: dos lotes concurrentes sobre los mismos
	// repuestos adquieren los locks en el mismo orden.
	sort.Slice(merged, func(i, j int) bool { return merged[i].PartID < merged[j].PartID })
	now := time.Now()

	var (
		record *entity.TransactionRecord
		alerts []dto.LowStockAlert
	)
	err := uc.txRunner.Run(ctx, func(txCtx context.Context, parts repository.PartRepository, ledger repository.TransactionRepository) error {
		alerts = nil

		// Fase de validación: resolver y verificar todas las líneas antes de
		// escribir nada, para que el rechazo no deje aplicaciones parciales.
		type staged struct {
			part *entity.Part
			qty  int64
		}
		plan := make([]staged, 0, len(merged))
		for _, it := range merged {
			part, err := parts.GetForUpdate(txCtx, it.PartID)
			if err != nil {
				return err
			}
			if part == nil {
				return fmt.Errorf("%w: repuesto %s", domain.ErrNotFound, it.PartID)
			}
			if part.Quantity-it.Quantity < 0 {
				return fmt.Errorf("%w: %s (disponible %d, solicitado %d)",
					domain.ErrInsufficientStock, part.Name, part.Quantity, it.Quantity)
			}
			plan = append(plan, staged{part: part, qty: it.Quantity})
		}

		// Fase de aplicación: decrementos + asiento en la misma transacción.
		items := make([]entity.TransactionItem, 0, len(plan))
		for _, s := range plan {
			s.part.Quantity -= s.qty
			s.part.UpdatedAt = now
			if err := parts.Update(txCtx, s.part); err != nil {
				return err
			}
			items = append(items, entity.TransactionItem{
				PartID:   s.part.ID,
				PartName: s.part.Name,
				Quantity: s.qty,
				Price:    s.part.Price,
			})
			if s.part.LowStock() {
				alerts = append(alerts, dto.LowStockAlert{
					PartID:   s.part.ID,
					PartName: s.part.Name,
					Quantity: s.part.Quantity,
					MinStock: s.part.MinStock,
				})
			}
		}

		record = entity.NewTransactionRecord(entity.TransactionTypeOut, items, entity.NotesOutgoingSale, actorID, now)
		return ledger.Create(txCtx, record)
	})
	if err != nil {
		return nil, err
	}

	uc.notifier.NotifyLowStock(ctx, alerts)
	return &dto.OutgoingTransactionResponse{
		Transaction: ToTransactionResponse(record),
		LowStock:    alerts,
	}, nil
}

// mergeItems fusiona líneas del mismo repuesto sumando cantidades,
// conservando el orden de primera aparición.
func mergeItems(items []dto.OutgoingItemRequest) []dto.OutgoingItemRequest {
	index := make(map[string]int, len(items))
	merged := make([]dto.OutgoingItemRequest, 0, len(items))
	for _, it := range items {
		if i, ok := index[it.PartID]; ok {
			merged[i].Quantity += it.Quantity
			continue
		}
		index[it.PartID] = len(merged)
		merged = append(merged, it)
	}
	return merged
}

// ToTransactionResponse mapea un asiento al DTO de salida (timestamp en epoch millis).
func ToTransactionResponse(r *entity.TransactionRecord) dto.TransactionResponse {
	items := make([]dto.TransactionItemResponse, 0, len(r.Items))
	for _, it := range r.Items {
		items = append(items, dto.TransactionItemResponse{
			PartID:   it.PartID,
			PartName: it.PartName,
			Quantity: it.Quantity,
			Price:    it.Price,
		})
	}
	return dto.TransactionResponse{
		ID:          r.ID,
		Type:        r.Type,
		Items:       items,
		Timestamp:   r.Timestamp.UnixMilli(),
		TotalAmount: r.TotalAmount,
		Notes:       r.Notes,
		CreatedBy:   r.CreatedBy,
	}
}
