package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// TopPartDTO repuesto con unidades movidas en el período.
type TopPartDTO struct {
	PartID   string `json:"part_id,omitempty"`
	PartName string `json:"part_name"`
	Units    int64  `json:"units"`
}

// ReportResponse resumen de actividad del inventario para un período
// (day, week, month, quarter, year, anclado a "ahora").
type ReportResponse struct {
	Period        string          `json:"period"`
	From          time.Time       `json:"from"`
	To            time.Time       `json:"to"`
	InCount       int64           `json:"in_count"`  // asientos de entrada
	OutCount      int64           `json:"out_count"` // asientos de salida
	InValue       decimal.Decimal `json:"in_value"`
	OutValue      decimal.Decimal `json:"out_value"`
	InUnits       int64           `json:"in_units"`
	OutUnits      int64           `json:"out_units"`
	TopPartsIn    []TopPartDTO    `json:"top_parts_in"`
	TopPartsOut   []TopPartDTO    `json:"top_parts_out"`
	GeneratedAt   time.Time       `json:"generated_at"`
}

// DashboardResponse los repuestos que más entran y más salen del almacén.
type DashboardResponse struct {
	TopOutgoing []TopPartDTO `json:"top_outgoing"`
	TopIncoming []TopPartDTO `json:"top_incoming"`
}
