package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// PartInput entrada para crear o actualizar un repuesto.
type PartInput struct {
	Name            string          `json:"name" validate:"required,min=1,max=200"`
	Quantity        int64           `json:"quantity" validate:"min=0"`
	Price           decimal.Decimal `json:"price"`
	StorageLocation string          `json:"storage_location"`
	Category        string          `json:"category" validate:"required"`
	MinStock        int64           `json:"min_stock" validate:"min=0"`
	Barcode         string          `json:"barcode,omitempty"`
}

// PartResponse salida de un repuesto.
type PartResponse struct {
	ID              string          `json:"id"`
	Name            string          `json:"name"`
	Quantity        int64           `json:"quantity"`
	Price           decimal.Decimal `json:"price"`
	StorageLocation string          `json:"storage_location"`
	Category        string          `json:"category"`
	MinStock        int64           `json:"min_stock"`
	Barcode         string          `json:"barcode,omitempty"`
	LowStock        bool            `json:"low_stock"`
	CreatedAt       time.Time       `json:"created_at"`
	UpdatedAt       time.Time       `json:"updated_at"`
}

// PartListResponse lista de repuestos.
type PartListResponse struct {
	Items []PartResponse `json:"items"`
	Page  PageResponse   `json:"page"`
}

// PartMutationResponse resultado de una mutación de inventario: el repuesto
// resultante, el ID del asiento generado en el libro y las alertas de stock bajo.
type PartMutationResponse struct {
	Part          *PartResponse   `json:"part,omitempty"` // nil tras un delete
	TransactionID string          `json:"transaction_id,omitempty"`
	Restocked     bool            `json:"restocked,omitempty"` // true si el add se fusionó con un repuesto existente
	LowStock      []LowStockAlert `json:"low_stock_alerts,omitempty"`
}
