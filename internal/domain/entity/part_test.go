package entity_test

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/gudangmaju/motorparts-api/internal/domain/entity"
)

func TestNameKey_NormalizaEspaciosYMayusculas(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"Spark Plug NGK CR7HSA", "spark plug ngk cr7hsa"},
		{"  Oli Mesin Federal Oil  ", "oli mesin federal oil"},
		{"KAMPAS KOPLING SET", "kampas kopling set"},
		{"   ", ""},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, entity.NameKey(tc.in), "NameKey(%q)", tc.in)
	}
}

func TestNameKey_VariantesDelMismoNombreColisionan(t *testing.T) {
	a := entity.NameKey("Oil Filter Honda OEM")
	b := entity.NameKey("  oil filter honda oem ")
	assert.Equal(t, a, b, "las variantes de trim y mayúsculas deben producir la misma clave")
}

func TestPart_LowStock(t *testing.T) {
	p := entity.Part{Quantity: 5, MinStock: 5}
	assert.True(t, p.LowStock(), "cantidad igual al mínimo ya es stock bajo")

	p.Quantity = 6
	assert.False(t, p.LowStock())

	p.Quantity = 0
	assert.True(t, p.LowStock())
}

func TestTransactionItem_Subtotal(t *testing.T) {
	item := entity.TransactionItem{
		Quantity: 7,
		Price:    decimal.NewFromInt(100),
	}
	assert.True(t, decimal.NewFromInt(700).Equal(item.Subtotal()))
}

func TestNewTransactionRecord_CalculaTotalUnaVez(t *testing.T) {
	items := []entity.TransactionItem{
		{PartID: "a", Quantity: 4, Price: decimal.NewFromInt(52500)},
		{PartID: "b", Quantity: 2, Price: decimal.NewFromInt(65000)},
	}
	now := time.Date(2024, time.May, 15, 14, 30, 0, 0, time.UTC)
	rec := entity.NewTransactionRecord(entity.TransactionTypeOut, items, entity.NotesOutgoingSale, "admin", now)

	assert.True(t, decimal.NewFromInt(340000).Equal(rec.TotalAmount))
	assert.Equal(t, entity.TransactionTypeOut, rec.Type)
	assert.Contains(t, rec.ID, "TRX-", "el ID del asiento deriva del tiempo")
}
