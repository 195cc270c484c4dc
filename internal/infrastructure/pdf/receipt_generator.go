// Package pdf implementa los documentos imprimibles del almacén usando
// Maroto v2: el recibo de una transacción y el reporte de período.
//
// Layout del recibo (A5 vertical):
//
//	┌───────────────────────────────────────┐
//	│  GUDANG MAJU SEJAHTERA                │
//	│  Recibo N° + Fecha + Tipo             │
//	│  ───────────────────────────────────  │
//	│  TABLA: Cant | Repuesto | P.Unit | Sub│
//	│  ───────────────────────────────────  │
//	│  TOTAL en Rupiah                      │
//	│  Notas + usuario                      │
//	└───────────────────────────────────────┘
package pdf

import (
	"context"
	"fmt"

	maroto "github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/col"
	"github.com/johnfercher/maroto/v2/pkg/components/line"
	"github.com/johnfercher/maroto/v2/pkg/components/row"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	"github.com/johnfercher/maroto/v2/pkg/config"
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/consts/pagesize"
	"github.com/johnfercher/maroto/v2/pkg/core"

	"github.com/johnfercher/maroto/v2/pkg/props"

	"github.com/gudangmaju/motorparts-api/internal/application/ledger"
	"github.com/gudangmaju/motorparts-api/internal/domain/entity"
)

const companyName = "GUDANG MAJU SEJAHTERA"

var (
	colorPrimary = &props.Color{Red: 178, Green: 34, Blue: 34}
	colorGray    = &props.Color{Red: 100, Green: 100, Blue: 100}
)

var _ ledger.ReceiptGenerator = (*ReceiptGenerator)(nil)

// ReceiptGenerator implementa ledger.ReceiptGenerator usando Maroto v2.
type ReceiptGenerator struct{}

// NewReceiptGenerator construye el generador de recibos.
func NewReceiptGenerator() *ReceiptGenerator { return &ReceiptGenerator{} }

// GenerateReceiptPDF genera el recibo y devuelve sus bytes.
func (g *ReceiptGenerator) GenerateReceiptPDF(_ context.Context, record *entity.TransactionRecord) ([]byte, error) {
	cfg := config.NewBuilder().
		WithPageSize(pagesize.A5).
		WithLeftMargin(10).WithRightMargin(10).
		WithTopMargin(10).WithBottomMargin(10).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 9}).
		WithTitle("Recibo "+record.ID, true).
		WithAuthor(companyName, true).
		Build()

	m := maroto.New(cfg)

	m.AddRows(receiptHeaderRow(record))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))

	m.AddRows(receiptTableHeaderRow())
	for _, r := range receiptItemRows(record.Items) {
		m.AddRows(r)
	}

	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))
	m.AddRows(receiptTotalRow(record))
	m.AddRows(receiptFooterRow(record))

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generar recibo: %w", err)
	}
	return doc.GetBytes(), nil
}

// receiptHeaderRow: nombre del almacén (izq) y N° de recibo + fecha (der).
func receiptHeaderRow(record *entity.TransactionRecord) core.Row {
	tipo := "ENTRADA DE STOCK"
	if record.Type == entity.TransactionTypeOut {
		tipo = "SALIDA / VENTA"
	}
	fecha := record.Timestamp.Format("02/01/2006 15:04")

	return row.New(18).Add(
		col.New(6).Add(
			text.New(companyName, props.Text{
				Style: fontstyle.Bold, Size: 12, Color: colorPrimary, Top: 1,
			}),
			text.New("Repuestos de motocicleta", props.Text{
				Size: 8, Top: 8, Color: colorGray,
			}),
		),
		col.New(6).Add(
			text.New(tipo, props.Text{
				Style: fontstyle.Bold, Size: 8, Align: align.Right,
				Color: colorPrimary, Top: 1,
			}),
			text.New(record.ID, props.Text{
				Style: fontstyle.Bold, Size: 9, Align: align.Right, Top: 7,
			}),
			text.New("Fecha: "+fecha, props.Text{
				Size: 8, Align: align.Right, Top: 13, Color: colorGray,
			}),
		),
	)
}

func receiptTableHeaderRow() core.Row {
	h := func(label string, size int, a align.Type) core.Col {
		return col.New(size).Add(text.New(label, props.Text{
			Style: fontstyle.Bold, Size: 8, Align: a,
			Color: colorPrimary, Top: 2, Left: 1, Right: 1,
		}))
	}
	return row.New(8).Add(
		h("Cant.", 2, align.Center),
		h("Repuesto", 5, align.Left),
		h("P. Unit.", 2, align.Right),
		h("Subtotal", 3, align.Right),
	)
}

// receiptItemRows: una fila por ítem del asiento.
func receiptItemRows(items []entity.TransactionItem) []core.Row {
	result := make([]core.Row, 0, len(items))
	for _, item := range items {
		result = append(result, row.New(7).Add(
			col.New(2).Add(text.New(
				fmt.Sprintf("%d", item.Quantity),
				props.Text{Size: 8, Align: align.Center, Top: 1},
			)),
			col.New(5).Add(text.New(
				item.PartName,
				props.Text{Size: 8, Align: align.Left, Top: 1, Left: 1},
			)),
			col.New(2).Add(text.New(
				formatRupiah(item.Price),
				props.Text{Size: 8, Align: align.Right, Top: 1, Right: 1},
			)),
			col.New(3).Add(text.New(
				formatRupiah(item.Subtotal()),
				props.Text{Size: 8, Align: align.Right, Top: 1, Right: 1},
			)),
		))
	}
	return result
}

func receiptTotalRow(record *entity.TransactionRecord) core.Row {
	return row.New(12).Add(
		col.New(6),
		col.New(3).Add(text.New("TOTAL:", props.Text{
			Style: fontstyle.Bold, Size: 10, Align: align.Right,
			Color: colorPrimary, Right: 2, Top: 2,
		})),
		col.New(3).Add(text.New(formatRupiah(record.TotalAmount), props.Text{
			Style: fontstyle.Bold, Size: 10, Align: align.Right,
			Color: colorPrimary, Right: 1, Top: 2,
		})),
	)
}

func receiptFooterRow(record *entity.TransactionRecord) core.Row {
	notas := record.Notes
	if notas == "" {
		notas = "—"
	}
	return row.New(12).Add(
		col.New(12).Add(
			text.New("Notas: "+notas, props.Text{Size: 8, Color: colorGray, Top: 2}),
			text.New("Atendido por: "+record.CreatedBy, props.Text{Size: 8, Color: colorGray, Top: 8}),
		),
	)
}
