package postgres

import (
	"errors"
	"fmt"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gudangmaju/motorparts-api/internal/domain"
)

func TestUniqueViolation_DevuelveElConstraint(t *testing.T) {
	pgErr := &pgconn.PgError{Code: "23505", ConstraintName: constraintPartBarcode}
	assert.Equal(t, constraintPartBarcode, uniqueViolation(fmt.Errorf("insert part: %w", pgErr)))

	assert.Empty(t, uniqueViolation(errors.New("connection refused")))
	assert.Empty(t, uniqueViolation(&pgconn.PgError{Code: "23503", ConstraintName: "fk"}),
		"otros códigos no son violaciones de unicidad")
}

func TestMapPartConflict(t *testing.T) {
	barcode := &pgconn.PgError{Code: "23505", ConstraintName: constraintPartBarcode}
	require.ErrorIs(t, mapPartConflict(barcode), domain.ErrDuplicateBarcode)

	nameKey := &pgconn.PgError{Code: "23505", ConstraintName: constraintPartNameKey}
	require.ErrorIs(t, mapPartConflict(nameKey), domain.ErrInvalidInput)

	assert.Nil(t, mapPartConflict(errors.New("connection refused")),
		"los errores no únicos se propagan sin mapear")
}
