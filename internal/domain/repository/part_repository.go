package repository

import (
	"context"

	"github.com/gudangmaju/motorparts-api/internal/domain/entity"
)

// PartListFilter criterios opcionales para listar repuestos.
type PartListFilter struct {
	Search          string // substring del nombre, case-insensitive
	Category        string
	StorageLocation string
	Limit           int
	Offset          int
}

// PartRepository define el puerto de persistencia para Part (DIP).
// Los métodos Get* devuelven (nil, nil) cuando el repuesto no existe.
type PartRepository interface {
	Create(ctx context.Context, part *entity.Part) error
	GetByID(ctx context.Context, id string) (*entity.Part, error)
	// GetByNameKey busca por la clave normalizada de nombre (entity.NameKey).
	GetByNameKey(ctx context.Context, nameKey string) (*entity.Part, error)
	GetByBarcode(ctx context.Context, barcode string) (*entity.Part, error)
	// GetForUpdate bloquea la fila para update dentro de una transacción
	// (SELECT FOR UPDATE en PostgreSQL; lectura de sesión en MongoDB).
	GetForUpdate(ctx context.Context, id string) (*entity.Part, error)
	List(ctx context.Context, filter PartListFilter) ([]*entity.Part, error)
	ListLocations(ctx context.Context) ([]string, error)
	ListLowStock(ctx context.Context) ([]*entity.Part, error)
	Update(ctx context.Context, part *entity.Part) error
	Delete(ctx context.Context, id string) error
}
