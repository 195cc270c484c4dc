package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/gudangmaju/motorparts-api/internal/domain"
	"github.com/gudangmaju/motorparts-api/internal/domain/entity"
	"github.com/gudangmaju/motorparts-api/internal/domain/repository"
)

var _ repository.PartRepository = (*PartRepo)(nil)

const partColumns = `id, name, name_key, quantity, price, storage_location, category, min_stock, barcode, created_at, updated_at`

// Constraints únicos de la tabla parts (nombres por defecto de Postgres).
const (
	constraintPartBarcode = "parts_barcode_key"
	constraintPartNameKey = "parts_name_key_key"
)

// mapPartConflict traduce violaciones únicas a sentinels de dominio. Un choque
// de name_key aquí es una alta concurrente del mismo nombre que el merge del
// caso de uso no alcanzó a ver.
func mapPartConflict(err error) error {
	switch uniqueViolation(err) {
	case constraintPartBarcode:
		return domain.ErrDuplicateBarcode
	case constraintPartNameKey:
		return domain.ErrInvalidInput
	}
	return nil
}

// PartRepo implementación del puerto PartRepository sobre PostgreSQL (usable con pool o tx).
type PartRepo struct {
	q Querier
}

// NewPartRepository construye el adaptador de persistencia para repuestos. Pasar pool o tx (Querier).
func NewPartRepository(q Querier) *PartRepo {
	return &PartRepo{q: q}
}

// Create persiste un nuevo repuesto.
func (r *PartRepo) Create(ctx context.Context, part *entity.Part) error {
	query := `
		INSERT INTO parts (id, name, name_key, quantity, price, storage_location, category, min_stock, barcode, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`
	_, err := r.q.Exec(ctx, query,
		part.ID, part.Name, part.NameKey, part.Quantity, part.Price,
		part.StorageLocation, part.Category, part.MinStock, nullIfEmpty(part.Barcode),
		part.CreatedAt, part.UpdatedAt,
	)
	if err != nil {
		if mapped := mapPartConflict(err); mapped != nil {
			return mapped
		}
		return fmt.Errorf("insert part: %w", err)
	}
	return nil
}

// GetByID obtiene un repuesto por ID. Devuelve (nil, nil) si no existe.
func (r *PartRepo) GetByID(ctx context.Context, id string) (*entity.Part, error) {
	return r.getOne(ctx, `SELECT `+partColumns+` FROM parts WHERE id = $1`, id)
}

// GetByNameKey obtiene un repuesto por su clave normalizada de nombre.
func (r *PartRepo) GetByNameKey(ctx context.Context, nameKey string) (*entity.Part, error) {
	return r.getOne(ctx, `SELECT `+partColumns+` FROM parts WHERE name_key = $1`, nameKey)
}

// GetByBarcode obtiene un repuesto por código de barras.
func (r *PartRepo) GetByBarcode(ctx context.Context, barcode string) (*entity.Part, error) {
	return r.getOne(ctx, `SELECT `+partColumns+` FROM parts WHERE barcode = $1`, barcode)
}

// GetForUpdate obtiene el repuesto y bloquea la fila (SELECT FOR UPDATE).
func (r *PartRepo) GetForUpdate(ctx context.Context, id string) (*entity.Part, error) {
	return r.getOne(ctx, `SELECT `+partColumns+` FROM parts WHERE id = $1 FOR UPDATE`, id)
}

func (r *PartRepo) getOne(ctx context.Context, query string, arg any) (*entity.Part, error) {
	var p entity.Part
	var barcode *string
	err := r.q.QueryRow(ctx, query, arg).Scan(
		&p.ID, &p.Name, &p.NameKey, &p.Quantity, &p.Price,
		&p.StorageLocation, &p.Category, &p.MinStock, &barcode,
		&p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get part: %w", err)
	}
	if barcode != nil {
		p.Barcode = *barcode
	}
	return &p, nil
}

// List lista repuestos con filtros opcionales y paginación.
func (r *PartRepo) List(ctx context.Context, filter repository.PartListFilter) ([]*entity.Part, error) {
	query := `SELECT ` + partColumns + ` FROM parts WHERE 1=1`
	args := []any{}
	pos := 1
	if filter.Search != "" {
		query += fmt.Sprintf(" AND name ILIKE $%d", pos)
		args = append(args, "%"+filter.Search+"%")
		pos++
	}
	if filter.Category != "" {
		query += fmt.Sprintf(" AND category = $%d", pos)
		args = append(args, filter.Category)
		pos++
	}
	if filter.StorageLocation != "" {
		query += fmt.Sprintf(" AND storage_location = $%d", pos)
		args = append(args, filter.StorageLocation)
		pos++
	}
	query += fmt.Sprintf(" ORDER BY name LIMIT $%d OFFSET $%d", pos, pos+1)
	args = append(args, filter.Limit, filter.Offset)

	return r.list(ctx, query, args...)
}

// ListLowStock lista repuestos con quantity <= min_stock.
func (r *PartRepo) ListLowStock(ctx context.Context) ([]*entity.Part, error) {
	return r.list(ctx, `SELECT `+partColumns+` FROM parts WHERE quantity <= min_stock ORDER BY name`)
}

func (r *PartRepo) list(ctx context.Context, query string, args ...any) ([]*entity.Part, error) {
	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list parts: %w", err)
	}
	defer rows.Close()
	var list []*entity.Part
	for rows.Next() {
		var p entity.Part
		var barcode *string
		if err := rows.Scan(&p.ID, &p.Name, &p.NameKey, &p.Quantity, &p.Price,
			&p.StorageLocation, &p.Category, &p.MinStock, &barcode,
			&p.CreatedAt, &p.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan part: %w", err)
		}
		if barcode != nil {
			p.Barcode = *barcode
		}
		list = append(list, &p)
	}
	return list, rows.Err()
}

// ListLocations devuelve las ubicaciones de almacenamiento distintas en uso.
func (r *PartRepo) ListLocations(ctx context.Context) ([]string, error) {
	rows, err := r.q.Query(ctx, `SELECT DISTINCT storage_location FROM parts WHERE storage_location <> '' ORDER BY storage_location`)
	if err != nil {
		return nil, fmt.Errorf("list locations: %w", err)
	}
	defer rows.Close()
	var locations []string
	for rows.Next() {
		var loc string
		if err := rows.Scan(&loc); err != nil {
			return nil, fmt.Errorf("scan location: %w", err)
		}
		locations = append(locations, loc)
	}
	return locations, rows.Err()
}

// Update actualiza todos los campos mutables de un repuesto.
func (r *PartRepo) Update(ctx context.Context, part *entity.Part) error {
	query := `
		UPDATE parts
		SET name = $2, name_key = $3, quantity = $4, price = $5, storage_location = $6,
		    category = $7, min_stock = $8, barcode = $9, updated_at = $10
		WHERE id = $1`
	_, err := r.q.Exec(ctx, query,
		part.ID, part.Name, part.NameKey, part.Quantity, part.Price,
		part.StorageLocation, part.Category, part.MinStock, nullIfEmpty(part.Barcode),
		part.UpdatedAt,
	)
	if err != nil {
		if mapped := mapPartConflict(err); mapped != nil {
			return mapped
		}
		return fmt.Errorf("update part: %w", err)
	}
	return nil
}

// Delete elimina un repuesto por ID.
func (r *PartRepo) Delete(ctx context.Context, id string) error {
	_, err := r.q.Exec(ctx, `DELETE FROM parts WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete part: %w", err)
	}
	return nil
}

// nullIfEmpty permite que el índice único de barcode ignore valores vacíos.
func nullIfEmpty(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
