package inventory

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/gudangmaju/motorparts-api/internal/application/dto"
	"github.com/gudangmaju/motorparts-api/internal/domain"
	"github.com/gudangmaju/motorparts-api/internal/domain/entity"
	"github.com/gudangmaju/motorparts-api/internal/domain/repository"
)

// StockUseCase concilia el inventario con el libro de transacciones:
// toda mutación de cantidad de un repuesto produce exactamente un asiento,
// escrito en la misma transacción de almacenamiento que el repuesto.
type StockUseCase struct {
	txRunner TxRunner
	parts    repository.PartRepository
	notifier Notifier
}

// NewStockUseCase construye el caso de uso. notifier en nil deshabilita avisos.
func NewStockUseCase(txRunner TxRunner, parts repository.PartRepository, notifier Notifier) *StockUseCase {
	if notifier == nil {
		notifier = NopNotifier{}
	}
	return &StockUseCase{txRunner: txRunner, parts: parts, notifier: notifier}
}

// AddPart agrega un repuesto. Si el código de barras ya está en uso falla con
// ErrDuplicateBarcode. Si ya existe un repuesto con el mismo nombre (trim +
// case folding) se trata como reabastecimiento: suma la cantidad, sobrescribe
// precio/ubicación/categoría/minStock/barcode y asienta una entrada. Si no,
// crea el repuesto con ID nuevo y asienta la entrada correspondiente.
func (uc *StockUseCase) AddPart(ctx context.Context, in dto.PartInput, actorID string) (*dto.PartMutationResponse, error) {
	if err := validatePartInput(in); err != nil {
		return nil, err
	}
	now := time.Now()
	nameKey := entity.NameKey(in.Name)

	var (
		part      *entity.Part
		record    *entity.TransactionRecord
		restocked bool
	)
	err := uc.txRunner.Run(ctx, func(txCtx context.Context, parts repository.PartRepository, ledger repository.TransactionRepository) error {
		if in.Barcode != "" {
			existing, err := parts.GetByBarcode(txCtx, in.Barcode)
			if err != nil {
				return err
			}
			if existing != nil && entity.NameKey(existing.Name) != nameKey {
				return domain.ErrDuplicateBarcode
			}
		}

		byName, err := parts.GetByNameKey(txCtx, nameKey)
		if err != nil {
			return err
		}

		if byName != nil {
			// Reabastecimiento: se fusiona con el repuesto existente en vez de duplicar.
			byName.Quantity += in.Quantity
			byName.Price = in.Price
			byName.StorageLocation = in.StorageLocation
			byName.Category = in.Category
			byName.MinStock = in.MinStock
			byName.Barcode = in.Barcode
			byName.UpdatedAt = now
			if err := parts.Update(txCtx, byName); err != nil {
				return err
			}
			part = byName
			restocked = true
			record = entity.NewTransactionRecord(entity.TransactionTypeIn, []entity.TransactionItem{{
				PartID:   byName.ID,
				PartName: byName.Name,
				Quantity: in.Quantity,
				Price:    byName.Price,
			}}, entity.NotesRestock, actorID, now)
			return ledger.Create(txCtx, record)
		}

		part = &entity.Part{
			ID:              uuid.New().String(),
			Name:            in.Name,
			NameKey:         nameKey,
			Quantity:        in.Quantity,
			Price:           in.Price,
			StorageLocation: in.StorageLocation,
			Category:        in.Category,
			MinStock:        in.MinStock,
			Barcode:         in.Barcode,
			CreatedAt:       now,
			UpdatedAt:       now,
		}
		if err := parts.Create(txCtx, part); err != nil {
			return err
		}
		record = entity.NewTransactionRecord(entity.TransactionTypeIn, []entity.TransactionItem{{
			PartID:   part.ID,
			PartName: part.Name,
			Quantity: part.Quantity,
			Price:    part.Price,
		}}, entity.NotesNewPart, actorID, now)
		return ledger.Create(txCtx, record)
	})
	if err != nil {
		return nil, err
	}

	alerts := lowStockAlerts(part)
	uc.notifier.NotifyLowStock(ctx, alerts)
	return &dto.PartMutationResponse{
		Part:          ToPartResponse(part),
		TransactionID: record.ID,
		Restocked:     restocked,
		LowStock:      alerts,
	}, nil
}

// UpdatePart aplica la actualización completa de campos. Si la cantidad cambia,
// asienta un movimiento in/out por el valor absoluto del delta con nota de
// ajuste manual. El aviso de stock bajo es efecto observable, no bloquea.
func (uc *StockUseCase) UpdatePart(ctx context.Context, id string, in dto.PartInput, actorID string) (*dto.PartMutationResponse, error) {
	if err := validatePartInput(in); err != nil {
		return nil, err
	}
	now := time.Now()

	var (
		part   *entity.Part
		record *entity.TransactionRecord
	)
	err := uc.txRunner.Run(ctx, func(txCtx context.Context, parts repository.PartRepository, ledger repository.TransactionRepository) error {
		current, err := parts.GetForUpdate(txCtx, id)
		if err != nil {
			return err
		}
		if current == nil {
			return domain.ErrNotFound
		}
		if in.Barcode != "" {
			other, err := parts.GetByBarcode(txCtx, in.Barcode)
			if err != nil {
				return err
			}
			if other != nil && other.ID != id {
				return domain.ErrDuplicateBarcode
			}
		}

		delta := in.Quantity - current.Quantity
		current.Name = in.Name
		current.NameKey = entity.NameKey(in.Name)
		current.Quantity = in.Quantity
		current.Price = in.Price
		current.StorageLocation = in.StorageLocation
		current.Category = in.Category
		current.MinStock = in.MinStock
		current.Barcode = in.Barcode
		current.UpdatedAt = now
		if err := parts.Update(txCtx, current); err != nil {
			return err
		}
		part = current

		if delta == 0 {
			return nil
		}
		txType := entity.TransactionTypeIn
		qty := delta
		if delta < 0 {
			txType = entity.TransactionTypeOut
			qty = -delta
		}
		record = entity.NewTransactionRecord(txType, []entity.TransactionItem{{
			PartID:   current.ID,
			PartName: current.Name,
			Quantity: qty,
			Price:    current.Price,
		}}, entity.NotesManualAdjustment, actorID, now)
		return ledger.Create(txCtx, record)
	})
	if err != nil {
		return nil, err
	}

	alerts := lowStockAlerts(part)
	uc.notifier.NotifyLowStock(ctx, alerts)
	out := &dto.PartMutationResponse{Part: ToPartResponse(part), LowStock: alerts}
	if record != nil {
		out.TransactionID = record.ID
	}
	return out, nil
}

// DeletePart asienta una salida por la cantidad restante (nota "part removed")
// y elimina el repuesto, todo en una sola transacción.
func (uc *StockUseCase) DeletePart(ctx context.Context, id string, actorID string) (*dto.PartMutationResponse, error) {
	now := time.Now()

	var record *entity.TransactionRecord
	err := uc.txRunner.Run(ctx, func(txCtx context.Context, parts repository.PartRepository, ledger repository.TransactionRepository) error {
		current, err := parts.GetForUpdate(txCtx, id)
		if err != nil {
			return err
		}
		if current == nil {
			return domain.ErrNotFound
		}
		record = entity.NewTransactionRecord(entity.TransactionTypeOut, []entity.TransactionItem{{
			PartID:   current.ID,
			PartName: current.Name,
			Quantity: current.Quantity,
			Price:    current.Price,
		}}, entity.NotesPartRemoved, actorID, now)
		if err := ledger.Create(txCtx, record); err != nil {
			return err
		}
		return parts.Delete(txCtx, id)
	})
	if err != nil {
		return nil, err
	}
	return &dto.PartMutationResponse{TransactionID: record.ID}, nil
}

// GetPart obtiene un repuesto por ID.
func (uc *StockUseCase) GetPart(ctx context.Context, id string) (*dto.PartResponse, error) {
	part, err := uc.parts.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if part == nil {
		return nil, domain.ErrNotFound
	}
	return ToPartResponse(part), nil
}

// GetPartByBarcode resuelve un código de barras escaneado a su repuesto.
func (uc *StockUseCase) GetPartByBarcode(ctx context.Context, barcode string) (*dto.PartResponse, error) {
	if barcode == "" {
		return nil, domain.ErrInvalidInput
	}
	part, err := uc.parts.GetByBarcode(ctx, barcode)
	if err != nil {
		return nil, err
	}
	if part == nil {
		return nil, domain.ErrNotFound
	}
	return ToPartResponse(part), nil
}

// ListParts lista repuestos con filtros de búsqueda, categoría y ubicación.
func (uc *StockUseCase) ListParts(ctx context.Context, filter repository.PartListFilter) (*dto.PartListResponse, error) {
	list, err := uc.parts.List(ctx, filter)
	if err != nil {
		return nil, err
	}
	items := make([]dto.PartResponse, 0, len(list))
	for _, p := range list {
		items = append(items, *ToPartResponse(p))
	}
	return &dto.PartListResponse{
		Items: items,
		Page:  dto.PageResponse{Limit: filter.Limit, Offset: filter.Offset},
	}, nil
}

// ListLocations devuelve las ubicaciones de almacenamiento en uso.
func (uc *StockUseCase) ListLocations(ctx context.Context) ([]string, error) {
	return uc.parts.ListLocations(ctx)
}

// ListLowStock lista los repuestos en o bajo su umbral mínimo.
func (uc *StockUseCase) ListLowStock(ctx context.Context) ([]dto.LowStockAlert, error) {
	list, err := uc.parts.ListLowStock(ctx)
	if err != nil {
		return nil, err
	}
	alerts := make([]dto.LowStockAlert, 0, len(list))
	for _, p := range list {
		alerts = append(alerts, dto.LowStockAlert{
			PartID:   p.ID,
			PartName: p.Name,
			Quantity: p.Quantity,
			MinStock: p.MinStock,
		})
	}
	return alerts, nil
}

func validatePartInput(in dto.PartInput) error {
	if entity.NameKey(in.Name) == "" {
		return domain.ErrInvalidInput
	}
	if in.Quantity < 0 || in.MinStock < 0 {
		return domain.ErrInvalidInput
	}
	if in.Price.LessThan(decimal.Zero) {
		return domain.ErrInvalidInput
	}
	if !entity.ValidCategory(in.Category) {
		return domain.ErrInvalidInput
	}
	return nil
}

func lowStockAlerts(part *entity.Part) []dto.LowStockAlert {
	if part == nil || !part.LowStock() {
		return nil
	}
	return []dto.LowStockAlert{{
		PartID:   part.ID,
		PartName: part.Name,
		Quantity: part.Quantity,
		MinStock: part.MinStock,
	}}
}

// ToPartResponse mapea la entidad al DTO de salida.
func ToPartResponse(p *entity.Part) *dto.PartResponse {
	if p == nil {
		return nil
	}
	return &dto.PartResponse{
		ID:              p.ID,
		Name:            p.Name,
		Quantity:        p.Quantity,
		Price:           p.Price,
		StorageLocation: p.StorageLocation,
		Category:        p.Category,
		MinStock:        p.MinStock,
		Barcode:         p.Barcode,
		LowStock:        p.LowStock(),
		CreatedAt:       p.CreatedAt,
		UpdatedAt:       p.UpdatedAt,
	}
}
