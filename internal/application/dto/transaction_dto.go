package dto

import "github.com/shopspring/decimal"

// OutgoingItemRequest una línea de la transacción de salida.
type OutgoingItemRequest struct {
	PartID   string `json:"part_id" validate:"required"`
	Quantity int64  `json:"quantity" validate:"min=1"`
}

// CreateOutgoingTransactionRequest body para POST /api/transactions.
type CreateOutgoingTransactionRequest struct {
	Items []OutgoingItemRequest `json:"items" validate:"required,min=1"`
}

// TransactionItemResponse línea de un asiento (instantánea de nombre y precio).
type TransactionItemResponse struct {
	PartID   string          `json:"part_id"`
	PartName string          `json:"part_name"`
	Quantity int64           `json:"quantity"`
	Price    decimal.Decimal `json:"price"`
}

// TransactionResponse salida de un asiento del libro.
type TransactionResponse struct {
	ID          string                    `json:"id"`
	Type        string                    `json:"type"`
	Items       []TransactionItemResponse `json:"items"`
	Timestamp   int64                     `json:"timestamp"` // epoch millis
	TotalAmount decimal.Decimal           `json:"total_amount"`
	Notes       string                    `json:"notes,omitempty"`
	CreatedBy   string                    `json:"created_by,omitempty"`
}

// TransactionListResponse listado de asientos, más reciente primero.
type TransactionListResponse struct {
	Items []TransactionResponse `json:"items"`
	Page  PageResponse          `json:"page"`
}

// OutgoingTransactionResponse resultado de una transacción de salida:
// el asiento creado y las alertas de stock bajo que dejó.
type OutgoingTransactionResponse struct {
	Transaction TransactionResponse `json:"transaction"`
	LowStock    []LowStockAlert     `json:"low_stock_alerts,omitempty"`
}
