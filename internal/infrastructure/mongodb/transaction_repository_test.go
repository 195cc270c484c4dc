package mongodb

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gudangmaju/motorparts-api/internal/domain/entity"
)

func TestTransactionDoc_IdaYVuelta(t *testing.T) {
	now := time.Date(2024, 5, 15, 14, 30, 0, 0, time.UTC)
	record := entity.NewTransactionRecord(entity.TransactionTypeOut, []entity.TransactionItem{
		{PartID: "p1", PartName: "Spark Plug NGK CR7HSA", Quantity: 4, Price: decimal.NewFromInt(52500)},
		{PartID: "p2", PartName: "Oli Mesin Federal Oil", Quantity: 2, Price: decimal.NewFromInt(65000)},
	}, entity.NotesOutgoingSale, "kepala", now)

	doc := toTransactionDoc(record)
	assert.Equal(t, entity.TransactionTypeOut, doc.Type)
	assert.Equal(t, "340000", doc.TotalAmount, "los montos viajan como string")

	got, err := doc.toEntity()
	require.NoError(t, err)

	assert.Equal(t, record.ID, got.ID)
	assert.Equal(t, entity.TransactionTypeOut, got.Type)
	assert.Equal(t, entity.NotesOutgoingSale, got.Notes)
	assert.Equal(t, "kepala", got.CreatedBy)
	assert.True(t, record.TotalAmount.Equal(got.TotalAmount))
	require.Len(t, got.Items, 2)
	assert.True(t, decimal.NewFromInt(52500).Equal(got.Items[0].Price))
	assert.Equal(t, int64(4), got.Items[0].Quantity)
}

func TestTransactionDoc_MontoIlegible(t *testing.T) {
	doc := &transactionDoc{ID: "TRX-1", Type: entity.TransactionTypeIn, TotalAmount: "no-es-numero"}

	_, err := doc.toEntity()
	assert.Error(t, err)
}
