package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/gudangmaju/motorparts-api/internal/domain/repository"
)

var _ repository.AnalyticsRepository = (*AnalyticsRepo)(nil)

// AnalyticsRepo agregaciones sobre el ledger de transacciones.
// Los ítems viven como JSONB dentro de la fila de transacción, así que
// las consultas expanden el arreglo con jsonb_array_elements.
type AnalyticsRepo struct {
	q Querier
}

// NewAnalyticsRepository construye el adaptador de analítica.
func NewAnalyticsRepository(q Querier) *AnalyticsRepo {
	return &AnalyticsRepo{q: q}
}

// TopParts devuelve los repuestos con mayor volumen de unidades para un tipo
// de transacción, opcionalmente acotado por fechas.
func (r *AnalyticsRepo) TopParts(ctx context.Context, txType string, from, to *time.Time, limit int) ([]repository.PartVolumeResult, error) {
	query := `
		SELECT item->>'part_id' AS part_id,
		       item->>'part_name' AS part_name,
		       SUM((item->>'quantity')::bigint) AS units
		FROM transactions t,
		     jsonb_array_elements(t.items) AS item
		WHERE t.type = $1`
	args := []any{txType}
	idx := 2
	if from != nil {
		query += fmt.Sprintf(" AND t.occurred_at >= $%d", idx)
		args = append(args, *from)
		idx++
	}
	if to != nil {
		query += fmt.Sprintf(" AND t.occurred_at <= $%d", idx)
		args = append(args, *to)
		idx++
	}
	query += fmt.Sprintf(`
		GROUP BY item->>'part_id', item->>'part_name'
		ORDER BY units DESC
		LIMIT $%d`, idx)
	args = append(args, limit)

	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query top parts: %w", err)
	}
	defer rows.Close()

	results := make([]repository.PartVolumeResult, 0, limit)
	for rows.Next() {
		var res repository.PartVolumeResult
		if err := rows.Scan(&res.PartID, &res.PartName, &res.Units); err != nil {
			return nil, fmt.Errorf("scan top part: %w", err)
		}
		results = append(results, res)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate top parts: %w", err)
	}
	return results, nil
}

// PeriodTotals calcula conteo de asientos, valor monetario total y unidades
// movidas para un tipo dentro de un rango de fechas.
func (r *AnalyticsRepo) PeriodTotals(ctx context.Context, txType string, from, to time.Time) (repository.PeriodTotalsResult, error) {
	query := `
		SELECT COUNT(*),
		       COALESCE(SUM(t.total_amount), 0),
		       COALESCE(SUM((
		           SELECT SUM((i->>'quantity')::bigint)
		           FROM jsonb_array_elements(t.items) AS i
		       )), 0)
		FROM transactions t
		WHERE t.type = $1 AND t.occurred_at >= $2 AND t.occurred_at <= $3`

	var res repository.PeriodTotalsResult
	err := r.q.QueryRow(ctx, query, txType, from, to).Scan(
		&res.TransactionCount, &res.TotalValue, &res.TotalUnits,
	)
	if err != nil {
		return repository.PeriodTotalsResult{}, fmt.Errorf("query period totals: %w", err)
	}
	return res, nil
}
