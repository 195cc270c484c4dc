package report

import (
	"time"

	"github.com/gudangmaju/motorparts-api/internal/domain"
)

// Períodos de reporte soportados, anclados a "ahora".
const (
	PeriodDay     = "day"
	PeriodWeek    = "week"
	PeriodMonth   = "month"
	PeriodQuarter = "quarter"
	PeriodYear    = "year"
)

// PeriodRange devuelve [inicio, fin] del período que contiene a now.
// La semana empieza en lunes. El fin es el último instante del período
// (23:59:59.999999999 del último día).
func PeriodRange(period string, now time.Time) (time.Time, time.Time, error) {
	loc := now.Location()
	switch period {
	case PeriodDay:
		start := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, loc)
		return start, endOfDay(start), nil
	case PeriodWeek:
		// Weekday: domingo=0 ... sábado=6; llevamos al lunes anterior o igual.
		offset := (int(now.Weekday()) + 6) % 7
		start := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, loc).AddDate(0, 0, -offset)
		return start, endOfDay(start.AddDate(0, 0, 6)), nil
	case PeriodMonth:
		start := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, loc)
		return start, start.AddDate(0, 1, 0).Add(-time.Nanosecond), nil
	case PeriodQuarter:
		q := (int(now.Month()) - 1) / 3
		start := time.Date(now.Year(), time.Month(q*3+1), 1, 0, 0, 0, 0, loc)
		return start, start.AddDate(0, 3, 0).Add(-time.Nanosecond), nil
	case PeriodYear:
		start := time.Date(now.Year(), 1, 1, 0, 0, 0, 0, loc)
		return start, start.AddDate(1, 0, 0).Add(-time.Nanosecond), nil
	default:
		return time.Time{}, time.Time{}, domain.ErrInvalidInput
	}
}

func endOfDay(start time.Time) time.Time {
	return start.AddDate(0, 0, 1).Add(-time.Nanosecond)
}
