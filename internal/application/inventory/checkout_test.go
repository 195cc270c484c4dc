package inventory_test

import (
	"context"
	"sort"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gudangmaju/motorparts-api/internal/application/dto"
	"github.com/gudangmaju/motorparts-api/internal/domain"
	"github.com/gudangmaju/motorparts-api/internal/domain/entity"
)

func outgoing(items ...dto.OutgoingItemRequest) dto.CreateOutgoingTransactionRequest {
	return dto.CreateOutgoingTransactionRequest{Items: items}
}

func TestCreateOutgoingTransaction_MultiItem_UnSoloAsiento(t *testing.T) {
	uc, parts, ledger, _ := newTestUseCase()

	a, err := uc.AddPart(context.Background(), partInput("Spark Plug NGK CR7HSA", 50, 52500), "admin")
	require.NoError(t, err)
	b, err := uc.AddPart(context.Background(), partInput("Oli Mesin Federal Oil", 30, 65000), "admin")
	require.NoError(t, err)

	out, err := uc.CreateOutgoingTransaction(context.Background(), outgoing(
		dto.OutgoingItemRequest{PartID: a.Part.ID, Quantity: 4},
		dto.OutgoingItemRequest{PartID: b.Part.ID, Quantity: 2},
	), "kepala")
	require.NoError(t, err)

	assert.Equal(t, entity.TransactionTypeOut, out.Transaction.Type)
	require.Len(t, out.Transaction.Items, 2)

	// Total = 4*52500 + 2*65000 = 340000
	assert.True(t, decimal.NewFromInt(340000).Equal(out.Transaction.TotalAmount),
		"el total debe ser la suma de precio por cantidad de todas las líneas")

	gotA, _ := parts.GetByID(context.Background(), a.Part.ID)
	gotB, _ := parts.GetByID(context.Background(), b.Part.ID)
	assert.Equal(t, int64(46), gotA.Quantity)
	assert.Equal(t, int64(28), gotB.Quantity)

	// 2 asientos de alta + 1 asiento de la venta completa
	require.Len(t, ledger.records, 3, "la venta multi-ítem deja un solo asiento")
	assert.Equal(t, entity.NotesOutgoingSale, ledger.records[2].Notes)
	assert.Equal(t, "kepala", ledger.records[2].CreatedBy)
}

func TestCreateOutgoingTransaction_LineasRepetidas_SeFusionan(t *testing.T) {
	uc, parts, _, _ := newTestUseCase()

	a, err := uc.AddPart(context.Background(), partInput("Bohlam Sein (1 pasang)", 50, 25000), "admin")
	require.NoError(t, err)

	// Tres escaneos del mismo repuesto: una sola línea por 5 unidades.
	out, err := uc.CreateOutgoingTransaction(context.Background(), outgoing(
		dto.OutgoingItemRequest{PartID: a.Part.ID, Quantity: 2},
		dto.OutgoingItemRequest{PartID: a.Part.ID, Quantity: 2},
		dto.OutgoingItemRequest{PartID: a.Part.ID, Quantity: 1},
	), "admin")
	require.NoError(t, err)

	require.Len(t, out.Transaction.Items, 1, "las líneas del mismo repuesto se fusionan")
	assert.Equal(t, int64(5), out.Transaction.Items[0].Quantity)

	got, _ := parts.GetByID(context.Background(), a.Part.ID)
	assert.Equal(t, int64(45), got.Quantity)
}

func TestCreateOutgoingTransaction_BloqueaEnOrdenEstable(t *testing.T) {
	uc, parts, _, _ := newTestUseCase()

	a, err := uc.AddPart(context.Background(), partInput("Rantai Keteng Set", 20, 185000), "admin")
	require.NoError(t, err)
	b, err := uc.AddPart(context.Background(), partInput("Filter Udara Vario", 20, 55000), "admin")
	require.NoError(t, err)
	c, err := uc.AddPart(context.Background(), partInput("Kabel Gas Supra", 20, 35000), "admin")
	require.NoError(t, err)

	want := []string{a.Part.ID, b.Part.ID, c.Part.ID}
	sort.Strings(want)

	// Se envía en orden inverso al ordenado: los locks deben adquirirse
	// igual en orden de ID, para que dos lotes concurrentes no se crucen.
	parts.lockOrder = nil
	_, err = uc.CreateOutgoingTransaction(context.Background(), outgoing(
		dto.OutgoingItemRequest{PartID: want[2], Quantity: 1},
		dto.OutgoingItemRequest{PartID: want[0], Quantity: 1},
		dto.OutgoingItemRequest{PartID: want[1], Quantity: 1},
	), "admin")
	require.NoError(t, err)

	assert.Equal(t, want, parts.lockOrder)
}

func TestCreateOutgoingTransaction_StockInsuficiente_RechazaElLoteCompleto(t *testing.T) {
	uc, parts, ledger, _ := newTestUseCase()

	a, err := uc.AddPart(context.Background(), partInput("Kampas Kopling Set", 10, 250000), "admin")
	require.NoError(t, err)
	b, err := uc.AddPart(context.Background(), partInput("Spion Standar Kanan", 15, 75000), "admin")
	require.NoError(t, err)

	_, err = uc.CreateOutgoingTransaction(context.Background(), outgoing(
		dto.OutgoingItemRequest{PartID: b.Part.ID, Quantity: 3},
		dto.OutgoingItemRequest{PartID: a.Part.ID, Quantity: 11}, // solo hay 10
	), "admin")
	require.ErrorIs(t, err, domain.ErrInsufficientStock)

	// Nada se aplica: ni siquiera la línea que sí alcanzaba.
	gotA, _ := parts.GetByID(context.Background(), a.Part.ID)
	gotB, _ := parts.GetByID(context.Background(), b.Part.ID)
	assert.Equal(t, int64(10), gotA.Quantity, "el rechazo no debe tocar el stock")
	assert.Equal(t, int64(15), gotB.Quantity, "la línea válida tampoco se aplica")
	assert.Len(t, ledger.records, 2, "el lote rechazado no deja asiento")
}

func TestCreateOutgoingTransaction_RepuestoInexistente_RechazaElLote(t *testing.T) {
	uc, parts, _, _ := newTestUseCase()

	a, err := uc.AddPart(context.Background(), partInput("Handlebar Grips Yamaha", 20, 236250), "admin")
	require.NoError(t, err)

	_, err = uc.CreateOutgoingTransaction(context.Background(), outgoing(
		dto.OutgoingItemRequest{PartID: a.Part.ID, Quantity: 1},
		dto.OutgoingItemRequest{PartID: "no-such-part", Quantity: 1},
	), "admin")
	require.ErrorIs(t, err, domain.ErrNotFound)

	got, _ := parts.GetByID(context.Background(), a.Part.ID)
	assert.Equal(t, int64(20), got.Quantity)
}

func TestCreateOutgoingTransaction_EntradaInvalida(t *testing.T) {
	uc, _, _, _ := newTestUseCase()

	_, err := uc.CreateOutgoingTransaction(context.Background(), outgoing(), "admin")
	assert.ErrorIs(t, err, domain.ErrInvalidInput, "lote vacío")

	_, err = uc.CreateOutgoingTransaction(context.Background(), outgoing(
		dto.OutgoingItemRequest{PartID: "x", Quantity: 0},
	), "admin")
	assert.ErrorIs(t, err, domain.ErrInvalidInput, "cantidad cero")

	_, err = uc.CreateOutgoingTransaction(context.Background(), outgoing(
		dto.OutgoingItemRequest{PartID: "", Quantity: 1},
	), "admin")
	assert.ErrorIs(t, err, domain.ErrInvalidInput, "part_id vacío")
}

func TestCreateOutgoingTransaction_DejaAlertaDeStockBajo(t *testing.T) {
	uc, _, _, notifier := newTestUseCase()

	in := partInput("Oil Filter Honda OEM", 9, 134850)
	in.MinStock = 5
	a, err := uc.AddPart(context.Background(), in, "admin")
	require.NoError(t, err)

	out, err := uc.CreateOutgoingTransaction(context.Background(), outgoing(
		dto.OutgoingItemRequest{PartID: a.Part.ID, Quantity: 5}, // deja 4, bajo el mínimo 5
	), "admin")
	require.NoError(t, err)

	require.Len(t, out.LowStock, 1)
	assert.Equal(t, int64(4), out.LowStock[0].Quantity)
	assert.Equal(t, int64(5), out.LowStock[0].MinStock)
	assert.NotEmpty(t, notifier.alerts, "la alerta debe propagarse al notificador")
}
