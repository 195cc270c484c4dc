package entity

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Tipos de transacción del libro de movimientos.
const (
	TransactionTypeIn  = "in"  // entrada de mercancía
	TransactionTypeOut = "out" // salida de mercancía
)

// Notas estándar que registran la causa de cada asiento.
const (
	NotesNewPart          = "new part added"
	NotesRestock          = "stock added to existing part"
	NotesManualAdjustment = "manual stock adjustment"
	NotesPartRemoved      = "part removed"
	NotesOutgoingSale     = "outgoing/sale transaction"
)

// TransactionItem es una línea de transacción. PartName y Price son
// instantáneas al momento del asiento, no referencias vivas al Part.
type TransactionItem struct {
	PartID   string
	PartName string
	Quantity int64 // siempre positivo; el signo lo da el Type del registro
	Price    decimal.Decimal
}

// Subtotal devuelve price * quantity de la línea.
func (i TransactionItem) Subtotal() decimal.Decimal {
	return i.Price.Mul(decimal.NewFromInt(i.Quantity))
}

// TransactionRecord es un asiento inmutable del libro: una vez creado
// nunca se edita ni se borra.
type TransactionRecord struct {
	ID          string
	Type        string // in | out
	Items       []TransactionItem
	Timestamp   time.Time
	TotalAmount decimal.Decimal // calculado una sola vez al crear el asiento
	Notes       string
	CreatedBy   string // UserID
}

// NewTransactionRecord construye un asiento con ID derivado del tiempo,
// timestamp y total calculado sobre las líneas.
func NewTransactionRecord(txType string, items []TransactionItem, notes, createdBy string, now time.Time) *TransactionRecord {
	total := decimal.Zero
	for _, it := range items {
		total = total.Add(it.Subtotal())
	}
	return &TransactionRecord{
		ID:          NewTransactionID(now),
		Type:        txType,
		Items:       items,
		Timestamp:   now,
		TotalAmount: total,
		Notes:       notes,
		CreatedBy:   createdBy,
	}
}

// NewTransactionID genera un ID derivado del tiempo (millis epoch) con un
// sufijo aleatorio corto para desambiguar asientos del mismo milisegundo.
func NewTransactionID(now time.Time) string {
	return fmt.Sprintf("TRX-%d-%s", now.UnixMilli(), uuid.NewString()[:8])
}
