package repository

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
)

// PartVolumeResult agrega unidades movidas por repuesto dentro de un período.
type PartVolumeResult struct {
	PartID   string
	PartName string
	Units    int64
}

// PeriodTotalsResult totales de un tipo de transacción en un período.
type PeriodTotalsResult struct {
	TransactionCount int64
	TotalValue       decimal.Decimal
	TotalUnits       int64
}

// AnalyticsRepository consultas de solo lectura sobre el libro de
// transacciones para dashboard y reportes.
type AnalyticsRepository interface {
	// TopParts devuelve los `limit` repuestos con más unidades movidas en
	// asientos del tipo dado, ordenados descendente. from/to en nil = sin acotar.
	TopParts(ctx context.Context, txType string, from, to *time.Time, limit int) ([]PartVolumeResult, error)
	// PeriodTotals agrega conteo de asientos, valor total y unidades del período.
	PeriodTotals(ctx context.Context, txType string, from, to time.Time) (PeriodTotalsResult, error)
}
