package inventory_test

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gudangmaju/motorparts-api/internal/application/dto"
	"github.com/gudangmaju/motorparts-api/internal/application/inventory"
	"github.com/gudangmaju/motorparts-api/internal/domain"
	"github.com/gudangmaju/motorparts-api/internal/domain/entity"
	"github.com/gudangmaju/motorparts-api/internal/domain/repository"
)

// ──────────────────────────────────────────────────────────────────────────────
// Fakes en memoria
// ──────────────────────────────────────────────────────────────────────────────

type fakePartRepo struct {
	mu        sync.Mutex
	parts     map[string]*entity.Part
	lockOrder []string // IDs pasados a GetForUpdate, en orden
}

func newFakePartRepo() *fakePartRepo {
	return &fakePartRepo{parts: make(map[string]*entity.Part)}
}

func (r *fakePartRepo) clone(p *entity.Part) *entity.Part {
	cp := *p
	return &cp
}

func (r *fakePartRepo) Create(_ context.Context, part *entity.Part) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.parts[part.ID] = r.clone(part)
	return nil
}

func (r *fakePartRepo) GetByID(_ context.Context, id string) (*entity.Part, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if p, ok := r.parts[id]; ok {
		return r.clone(p), nil
	}
	return nil, nil
}

func (r *fakePartRepo) GetByNameKey(_ context.Context, nameKey string) (*entity.Part, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, p := range r.parts {
		if p.NameKey == nameKey {
			return r.clone(p), nil
		}
	}
	return nil, nil
}

func (r *fakePartRepo) GetByBarcode(_ context.Context, barcode string) (*entity.Part, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, p := range r.parts {
		if p.Barcode != "" && p.Barcode == barcode {
			return r.clone(p), nil
		}
	}
	return nil, nil
}

func (r *fakePartRepo) GetForUpdate(ctx context.Context, id string) (*entity.Part, error) {
	r.mu.Lock()
	r.lockOrder = append(r.lockOrder, id)
	r.mu.Unlock()
	return r.GetByID(ctx, id)
}

func (r *fakePartRepo) List(_ context.Context, _ repository.PartListFilter) ([]*entity.Part, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]*entity.Part, 0, len(r.parts))
	for _, p := range r.parts {
		out = append(out, r.clone(p))
	}
	return out, nil
}

func (r *fakePartRepo) ListLocations(_ context.Context) ([]string, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	seen := make(map[string]struct{})
	var out []string
	for _, p := range r.parts {
		if _, ok := seen[p.StorageLocation]; !ok && p.StorageLocation != "" {
			seen[p.StorageLocation] = struct{}{}
			out = append(out, p.StorageLocation)
		}
	}
	return out, nil
}

func (r *fakePartRepo) ListLowStock(_ context.Context) ([]*entity.Part, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*entity.Part
	for _, p := range r.parts {
		if p.LowStock() {
			out = append(out, r.clone(p))
		}
	}
	return out, nil
}

func (r *fakePartRepo) Update(_ context.Context, part *entity.Part) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.parts[part.ID]; !ok {
		return domain.ErrNotFound
	}
	r.parts[part.ID] = r.clone(part)
	return nil
}

func (r *fakePartRepo) Delete(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.parts[id]; !ok {
		return domain.ErrNotFound
	}
	delete(r.parts, id)
	return nil
}

type fakeLedger struct {
	mu      sync.Mutex
	records []*entity.TransactionRecord
}

func (l *fakeLedger) Create(_ context.Context, record *entity.TransactionRecord) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.records = append(l.records, record)
	return nil
}

func (l *fakeLedger) GetByID(_ context.Context, id string) (*entity.TransactionRecord, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	for _, r := range l.records {
		if r.ID == id {
			return r, nil
		}
	}
	return nil, nil
}

func (l *fakeLedger) List(_ context.Context, _, _ *time.Time, _, _ int) ([]*entity.TransactionRecord, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	return append([]*entity.TransactionRecord(nil), l.records...), nil
}

// fakeTxRunner ejecuta fn directamente sobre los fakes compartidos. Si fn
// devuelve error simula el rollback restaurando el estado previo de los parts.
type fakeTxRunner struct {
	parts  *fakePartRepo
	ledger *fakeLedger
}

func (t *fakeTxRunner) Run(ctx context.Context, fn func(txCtx context.Context, parts repository.PartRepository, ledger repository.TransactionRepository) error) error {
	t.parts.mu.Lock()
	snapshotParts := make(map[string]*entity.Part, len(t.parts.parts))
	for id, p := range t.parts.parts {
		cp := *p
		snapshotParts[id] = &cp
	}
	t.parts.mu.Unlock()
	t.ledger.mu.Lock()
	snapshotLedger := len(t.ledger.records)
	t.ledger.mu.Unlock()

	if err := fn(ctx, t.parts, t.ledger); err != nil {
		t.parts.mu.Lock()
		t.parts.parts = snapshotParts
		t.parts.mu.Unlock()
		t.ledger.mu.Lock()
		t.ledger.records = t.ledger.records[:snapshotLedger]
		t.ledger.mu.Unlock()
		return err
	}
	return nil
}

type fakeNotifier struct {
	mu     sync.Mutex
	alerts []dto.LowStockAlert
}

func (n *fakeNotifier) NotifyLowStock(_ context.Context, alerts []dto.LowStockAlert) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.alerts = append(n.alerts, alerts...)
}

func newTestUseCase() (*inventory.StockUseCase, *fakePartRepo, *fakeLedger, *fakeNotifier) {
	parts := newFakePartRepo()
	ledger := &fakeLedger{}
	notifier := &fakeNotifier{}
	uc := inventory.NewStockUseCase(&fakeTxRunner{parts: parts, ledger: ledger}, parts, notifier)
	return uc, parts, ledger, notifier
}

func partInput(name string, qty int64, price int64) dto.PartInput {
	return dto.PartInput{
		Name:            name,
		Quantity:        qty,
		Price:           decimal.NewFromInt(price),
		StorageLocation: "Shelf A-1",
		Category:        entity.CategoryEngineParts,
		MinStock:        5,
	}
}

// ──────────────────────────────────────────────────────────────────────────────
// AddPart
// ──────────────────────────────────────────────────────────────────────────────

func TestAddPart_NuevoRepuesto_CreaAsientoDeEntrada(t *testing.T) {
	uc, _, ledger, _ := newTestUseCase()

	out, err := uc.AddPart(context.Background(), partInput("Spark Plug NGK CR7HSA", 50, 52500), "admin")
	require.NoError(t, err)
	require.NotNil(t, out.Part)

	assert.False(t, out.Restocked)
	assert.Equal(t, int64(50), out.Part.Quantity)
	assert.NotEmpty(t, out.TransactionID)

	require.Len(t, ledger.records, 1, "cada alta debe dejar exactamente un asiento")
	rec := ledger.records[0]
	assert.Equal(t, entity.TransactionTypeIn, rec.Type)
	assert.Equal(t, entity.NotesNewPart, rec.Notes)
	assert.Equal(t, "admin", rec.CreatedBy)
	require.Len(t, rec.Items, 1)
	assert.Equal(t, int64(50), rec.Items[0].Quantity)
	assert.True(t, decimal.NewFromInt(50*52500).Equal(rec.TotalAmount),
		"el total del asiento debe ser precio por cantidad")
}

func TestAddPart_MismoNombre_FusionaComoReabastecimiento(t *testing.T) {
	uc, parts, ledger, _ := newTestUseCase()

	first, err := uc.AddPart(context.Background(), partInput("Oil Filter Honda OEM", 30, 134850), "admin")
	require.NoError(t, err)

	// Mismo nombre con espacios y mayúsculas distintas: debe fusionar, no duplicar.
	in := partInput("  oil filter honda oem ", 5, 140000)
	out, err := uc.AddPart(context.Background(), in, "kepala")
	require.NoError(t, err)

	assert.True(t, out.Restocked, "el alta con nombre existente es un reabastecimiento")
	assert.Equal(t, first.Part.ID, out.Part.ID, "debe conservar el ID del repuesto original")
	assert.Equal(t, int64(35), out.Part.Quantity, "30 existentes + 5 nuevos")
	assert.True(t, decimal.NewFromInt(140000).Equal(out.Part.Price),
		"el precio se sobrescribe con el del alta")

	all, _ := parts.List(context.Background(), repository.PartListFilter{})
	assert.Len(t, all, 1, "no debe quedar un repuesto duplicado")

	require.Len(t, ledger.records, 2)
	assert.Equal(t, entity.NotesRestock, ledger.records[1].Notes)
	assert.Equal(t, int64(5), ledger.records[1].Items[0].Quantity,
		"el asiento de reabastecimiento registra solo las unidades agregadas")
}

func TestAddPart_BarcodeDeOtroRepuesto_Rechaza(t *testing.T) {
	uc, parts, ledger, _ := newTestUseCase()

	in := partInput("Battery Yuasa YTZ10S", 12, 1432500)
	in.Barcode = "8990001112223"
	_, err := uc.AddPart(context.Background(), in, "admin")
	require.NoError(t, err)

	other := partInput("Air Filter Twin Air", 18, 334500)
	other.Barcode = "8990001112223"
	_, err = uc.AddPart(context.Background(), other, "admin")
	assert.ErrorIs(t, err, domain.ErrDuplicateBarcode)

	all, _ := parts.List(context.Background(), repository.PartListFilter{})
	assert.Len(t, all, 1, "el alta rechazada no debe crear el repuesto")
	assert.Len(t, ledger.records, 1, "el alta rechazada no debe dejar asiento")
}

func TestAddPart_EntradaInvalida(t *testing.T) {
	uc, _, _, _ := newTestUseCase()

	cases := []struct {
		name string
		in   dto.PartInput
	}{
		{"nombre vacío", partInput("   ", 10, 100)},
		{"cantidad negativa", partInput("Spion Standar Kanan", -1, 100)},
		{"categoría desconocida", func() dto.PartInput {
			in := partInput("Spion Standar Kanan", 10, 100)
			in.Category = "Spare Stuff"
			return in
		}()},
		{"precio negativo", partInput("Spion Standar Kanan", 10, -5)},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := uc.AddPart(context.Background(), tc.in, "admin")
			assert.ErrorIs(t, err, domain.ErrInvalidInput)
		})
	}
}

// ──────────────────────────────────────────────────────────────────────────────
// UpdatePart
// ──────────────────────────────────────────────────────────────────────────────

func TestUpdatePart_DeltaDeCantidad_AsientaAjusteManual(t *testing.T) {
	uc, _, ledger, _ := newTestUseCase()

	created, err := uc.AddPart(context.Background(), partInput("Brake Pads Front Set", 25, 375000), "admin")
	require.NoError(t, err)
	id := created.Part.ID

	// Subir de 25 a 30: asiento "in" por 5.
	up := partInput("Brake Pads Front Set", 30, 375000)
	outUp, err := uc.UpdatePart(context.Background(), id, up, "kepala")
	require.NoError(t, err)
	assert.Equal(t, int64(30), outUp.Part.Quantity)

	require.Len(t, ledger.records, 2)
	assert.Equal(t, entity.TransactionTypeIn, ledger.records[1].Type)
	assert.Equal(t, entity.NotesManualAdjustment, ledger.records[1].Notes)
	assert.Equal(t, int64(5), ledger.records[1].Items[0].Quantity)

	// Bajar de 30 a 22: asiento "out" por 8.
	down := partInput("Brake Pads Front Set", 22, 375000)
	outDown, err := uc.UpdatePart(context.Background(), id, down, "kepala")
	require.NoError(t, err)
	assert.Equal(t, int64(22), outDown.Part.Quantity)

	require.Len(t, ledger.records, 3)
	assert.Equal(t, entity.TransactionTypeOut, ledger.records[2].Type)
	assert.Equal(t, int64(8), ledger.records[2].Items[0].Quantity,
		"el ajuste registra el valor absoluto del delta")
}

func TestUpdatePart_SinCambioDeCantidad_NoAsienta(t *testing.T) {
	uc, _, ledger, _ := newTestUseCase()

	created, err := uc.AddPart(context.Background(), partInput("Chain Lube Motul C2+", 40, 187500), "admin")
	require.NoError(t, err)

	in := partInput("Chain Lube Motul C2+", 40, 200000)
	in.StorageLocation = "Fluids Rack 2"
	out, err := uc.UpdatePart(context.Background(), created.Part.ID, in, "admin")
	require.NoError(t, err)

	assert.Empty(t, out.TransactionID, "sin delta de cantidad no hay asiento")
	assert.Len(t, ledger.records, 1, "solo debe existir el asiento del alta original")
	assert.Equal(t, "Fluids Rack 2", out.Part.StorageLocation)
}

func TestUpdatePart_NoExiste_RetornaNotFound(t *testing.T) {
	uc, _, _, _ := newTestUseCase()

	_, err := uc.UpdatePart(context.Background(), "no-such-id", partInput("X", 1, 1), "admin")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

// ──────────────────────────────────────────────────────────────────────────────
// DeletePart
// ──────────────────────────────────────────────────────────────────────────────

func TestDeletePart_AsientaSalidaPorStockRestante(t *testing.T) {
	uc, parts, ledger, _ := newTestUseCase()

	created, err := uc.AddPart(context.Background(), partInput("Kabel Rem Belakang", 7, 100), "admin")
	require.NoError(t, err)

	out, err := uc.DeletePart(context.Background(), created.Part.ID, "admin")
	require.NoError(t, err)
	assert.NotEmpty(t, out.TransactionID)
	assert.Nil(t, out.Part, "tras el delete no hay repuesto que devolver")

	got, _ := parts.GetByID(context.Background(), created.Part.ID)
	assert.Nil(t, got, "el repuesto debe desaparecer del inventario")

	require.Len(t, ledger.records, 2)
	rec := ledger.records[1]
	assert.Equal(t, entity.TransactionTypeOut, rec.Type)
	assert.Equal(t, entity.NotesPartRemoved, rec.Notes)
	assert.Equal(t, int64(7), rec.Items[0].Quantity)
	assert.True(t, decimal.NewFromInt(700).Equal(rec.TotalAmount),
		"7 unidades a precio 100 deben asentar un total de 700")
}

// ──────────────────────────────────────────────────────────────────────────────
// Señal de stock bajo
// ──────────────────────────────────────────────────────────────────────────────

func TestLowStock_AlertaCuandoQuedaEnElUmbral(t *testing.T) {
	uc, _, _, notifier := newTestUseCase()

	in := partInput("Tire Pirelli Diablo Rosso III", 5, 2250000)
	in.MinStock = 5
	out, err := uc.AddPart(context.Background(), in, "admin")
	require.NoError(t, err)

	require.Len(t, out.LowStock, 1, "cantidad igual al mínimo ya es stock bajo")
	assert.Equal(t, out.Part.ID, out.LowStock[0].PartID)
	assert.Equal(t, int64(5), out.LowStock[0].Quantity)
	assert.Len(t, notifier.alerts, 1, "la alerta debe llegar al notificador")
	assert.True(t, out.Part.LowStock)
}
