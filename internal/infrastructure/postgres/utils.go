package postgres

import (
	"errors"

	"github.com/jackc/pgx/v5/pgconn"
)

// uniqueViolation devuelve el nombre del constraint único violado (código
// 23505 de Postgres), o "" si el error no es una violación de unicidad.
// Los repos deciden el sentinel de dominio según el constraint afectado.
func uniqueViolation(err error) string {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == "23505" {
		return pgErr.ConstraintName
	}
	return ""
}
