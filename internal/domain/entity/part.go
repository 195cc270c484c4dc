package entity

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"golang.org/x/text/cases"
)

// Categorías válidas para Part (enum cerrado).
const (
	CategoryEngineParts     = "Engine Parts"
	CategoryElectrical      = "Electrical Components"
	CategoryBodyFrame       = "Body & Frame"
	CategoryWheelsTires     = "Wheels & Tires"
	CategoryBraking         = "Braking System"
	CategorySuspension      = "Suspension"
	CategoryAccessories     = "Accessories"
	CategoryFluidsChemicals = "Fluids & Chemicals"
	CategoryOther           = "Other"
)

var partCategories = map[string]struct{}{
	CategoryEngineParts:     {},
	CategoryElectrical:      {},
	CategoryBodyFrame:       {},
	CategoryWheelsTires:     {},
	CategoryBraking:         {},
	CategorySuspension:      {},
	CategoryAccessories:     {},
	CategoryFluidsChemicals: {},
	CategoryOther:           {},
}

// ValidCategory verifica que la categoría pertenezca al enum de categorías de repuestos.
func ValidCategory(c string) bool {
	_, ok := partCategories[c]
	return ok
}

// Part representa un repuesto (SKU) del almacén de motopartes.
// Quantity es la única propiedad cuyo cambio genera asientos en el libro de transacciones.
type Part struct {
	ID              string
	Name            string
	NameKey         string // clave normalizada para detección de duplicados por nombre
	Quantity        int64
	Price           decimal.Decimal // precio unitario de venta
	StorageLocation string
	Category        string
	MinStock        int64
	Barcode         string // opcional; único entre repuestos cuando no está vacío
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

// LowStock indica si el repuesto está en o bajo su umbral mínimo.
func (p *Part) LowStock() bool {
	return p.Quantity <= p.MinStock
}

var nameFolder = cases.Fold()

// NameKey normaliza un nombre para comparación exacta (trim + case folding Unicode).
// "oil filter " y "Oil Filter" producen la misma clave.
func NameKey(name string) string {
	return nameFolder.String(strings.TrimSpace(name))
}
