package report_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gudangmaju/motorparts-api/internal/application/report"
	"github.com/gudangmaju/motorparts-api/internal/domain"
)

// Ancla fija para todos los casos: miércoles 15 de mayo de 2024, 14:30 UTC.
var anchor = time.Date(2024, time.May, 15, 14, 30, 0, 0, time.UTC)

func TestPeriodRange_Day(t *testing.T) {
	from, to, err := report.PeriodRange(report.PeriodDay, anchor)
	require.NoError(t, err)

	assert.Equal(t, time.Date(2024, time.May, 15, 0, 0, 0, 0, time.UTC), from)
	assert.Equal(t, time.Date(2024, time.May, 16, 0, 0, 0, 0, time.UTC).Add(-time.Nanosecond), to)
}

func TestPeriodRange_Week_EmpiezaEnLunes(t *testing.T) {
	from, to, err := report.PeriodRange(report.PeriodWeek, anchor)
	require.NoError(t, err)

	// El 15/05/2024 es miércoles; la semana va del lunes 13 al domingo 19.
	assert.Equal(t, time.Date(2024, time.May, 13, 0, 0, 0, 0, time.UTC), from)
	assert.Equal(t, time.Monday, from.Weekday())
	assert.Equal(t, time.Date(2024, time.May, 20, 0, 0, 0, 0, time.UTC).Add(-time.Nanosecond), to)
}

func TestPeriodRange_Week_AncladaEnDomingo(t *testing.T) {
	// Domingo 19/05: pertenece a la semana que empezó el lunes 13.
	sunday := time.Date(2024, time.May, 19, 8, 0, 0, 0, time.UTC)
	from, _, err := report.PeriodRange(report.PeriodWeek, sunday)
	require.NoError(t, err)

	assert.Equal(t, time.Date(2024, time.May, 13, 0, 0, 0, 0, time.UTC), from)
}

func TestPeriodRange_Month(t *testing.T) {
	from, to, err := report.PeriodRange(report.PeriodMonth, anchor)
	require.NoError(t, err)

	assert.Equal(t, time.Date(2024, time.May, 1, 0, 0, 0, 0, time.UTC), from)
	assert.Equal(t, time.Date(2024, time.June, 1, 0, 0, 0, 0, time.UTC).Add(-time.Nanosecond), to)
}

func TestPeriodRange_Quarter(t *testing.T) {
	from, to, err := report.PeriodRange(report.PeriodQuarter, anchor)
	require.NoError(t, err)

	// Mayo cae en el segundo trimestre: abril-junio.
	assert.Equal(t, time.Date(2024, time.April, 1, 0, 0, 0, 0, time.UTC), from)
	assert.Equal(t, time.Date(2024, time.July, 1, 0, 0, 0, 0, time.UTC).Add(-time.Nanosecond), to)
}

func TestPeriodRange_Year(t *testing.T) {
	from, to, err := report.PeriodRange(report.PeriodYear, anchor)
	require.NoError(t, err)

	assert.Equal(t, time.Date(2024, time.January, 1, 0, 0, 0, 0, time.UTC), from)
	assert.Equal(t, time.Date(2025, time.January, 1, 0, 0, 0, 0, time.UTC).Add(-time.Nanosecond), to)
}

func TestPeriodRange_PeriodoDesconocido(t *testing.T) {
	_, _, err := report.PeriodRange("fortnight", anchor)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}
