package inventory

import (
	"context"

	"github.com/gudangmaju/motorparts-api/internal/application/dto"
	"github.com/gudangmaju/motorparts-api/internal/domain/repository"
)

// TxRunner ejecuta una función dentro de una transacción del backend de
// almacenamiento, pasando repositorios atados a esa transacción. Garantiza
// que la escritura del repuesto y el asiento en el libro son una sola
// unidad atómica: o ambos persisten, o ninguno.
//
// txCtx propaga la transacción (tx de pgx o sesión de mongo); todos los
// accesos a los repos dentro de fn deben usar txCtx, no el ctx original.
type TxRunner interface {
	Run(ctx context.Context, fn func(
		txCtx context.Context,
		parts repository.PartRepository,
		ledger repository.TransactionRepository,
	) error) error
}

// Notifier recibe las alertas de stock bajo que deja una operación.
// Las implementaciones no deben fallar la operación: registran el error y siguen.
type Notifier interface {
	NotifyLowStock(ctx context.Context, alerts []dto.LowStockAlert)
}

// NopNotifier descarta las alertas (webhook deshabilitado).
type NopNotifier struct{}

// NotifyLowStock no hace nada.
func (NopNotifier) NotifyLowStock(context.Context, []dto.LowStockAlert) {}
