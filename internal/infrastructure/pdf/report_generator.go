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

	"github.com/gudangmaju/motorparts-api/internal/application/dto"
	"github.com/gudangmaju/motorparts-api/internal/application/report"
)

var _ report.PDFGenerator = (*ReportGenerator)(nil)

// ReportGenerator implementa report.PDFGenerator usando Maroto v2.
type ReportGenerator struct{}

// NewReportGenerator construye el generador de reportes.
func NewReportGenerator() *ReportGenerator { return &ReportGenerator{} }

// GenerateReportPDF genera el reporte de período en A4 y devuelve sus bytes.
func (g *ReportGenerator) GenerateReportPDF(_ context.Context, rep *dto.ReportResponse) ([]byte, error) {
	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(10).WithRightMargin(10).
		WithTopMargin(10).WithBottomMargin(10).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 9}).
		WithTitle("Reporte de inventario "+rep.Period, true).
		WithAuthor(companyName, true).
		Build()

	m := maroto.New(cfg)

	m.AddRows(reportHeaderRow(rep))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))
	m.AddRows(reportTotalsRows(rep)...)
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))

	m.AddRows(reportTopSectionRows("REPUESTOS MÁS VENDIDOS", rep.TopPartsOut)...)
	m.AddRows(line.NewRow(2))
	m.AddRows(reportTopSectionRows("REPUESTOS MÁS INGRESADOS", rep.TopPartsIn)...)

	m.AddRows(line.NewRow(2))
	m.AddRows(row.New(6).Add(col.New(12).Add(
		text.New("Generado: "+rep.GeneratedAt.Format("02/01/2006 15:04"), props.Text{
			Size: 7, Color: colorGray, Align: align.Right,
		}),
	)))

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generar reporte: %w", err)
	}
	return doc.GetBytes(), nil
}

func reportHeaderRow(rep *dto.ReportResponse) core.Row {
	rango := fmt.Sprintf("%s — %s",
		rep.From.Format("02/01/2006"), rep.To.Format("02/01/2006"))
	return row.New(18).Add(
		col.New(7).Add(
			text.New(companyName, props.Text{
				Style: fontstyle.Bold, Size: 13, Color: colorPrimary, Top: 1,
			}),
			text.New("Reporte de movimiento de inventario", props.Text{
				Size: 9, Top: 9, Color: colorGray,
			}),
		),
		col.New(5).Add(
			text.New("PERÍODO: "+rep.Period, props.Text{
				Style: fontstyle.Bold, Size: 10, Align: align.Right,
				Color: colorPrimary, Top: 1,
			}),
			text.New(rango, props.Text{
				Size: 8, Align: align.Right, Top: 9, Color: colorGray,
			}),
		),
	)
}

// reportTotalsRows: dos columnas de totales, entradas y salidas.
func reportTotalsRows(rep *dto.ReportResponse) []core.Row {
	section := func(title string) core.Col {
		return col.New(6).Add(text.New(title, props.Text{
			Style: fontstyle.Bold, Size: 9, Color: colorPrimary, Top: 1,
		}))
	}
	metric := func(label, value string) core.Col {
		return col.New(6).Add(
			text.New(label, props.Text{Size: 8, Color: colorGray, Top: 1}),
			text.New(value, props.Text{Style: fontstyle.Bold, Size: 9, Top: 1, Left: 40}),
		)
	}
	return []core.Row{
		row.New(8).Add(
			section("ENTRADAS"),
			section("SALIDAS"),
		),
		row.New(6).Add(
			metric("Asientos:", fmt.Sprintf("%d", rep.InCount)),
			metric("Asientos:", fmt.Sprintf("%d", rep.OutCount)),
		),
		row.New(6).Add(
			metric("Unidades:", fmt.Sprintf("%d", rep.InUnits)),
			metric("Unidades:", fmt.Sprintf("%d", rep.OutUnits)),
		),
		row.New(6).Add(
			metric("Valor:", formatRupiah(rep.InValue)),
			metric("Valor:", formatRupiah(rep.OutValue)),
		),
	}
}

// reportTopSectionRows: ranking de repuestos por unidades movidas.
func reportTopSectionRows(title string, parts []dto.TopPartDTO) []core.Row {
	rows := []core.Row{
		row.New(8).Add(col.New(12).Add(
			text.New(title, props.Text{
				Style: fontstyle.Bold, Size: 9, Color: colorPrimary, Top: 2,
			}),
		)),
	}
	if len(parts) == 0 {
		rows = append(rows, row.New(6).Add(col.New(12).Add(
			text.New("Sin movimientos en el período.", props.Text{
				Size: 8, Color: colorGray, Top: 1, Left: 2,
			}),
		)))
		return rows
	}
	for i, part := range parts {
		rows = append(rows, row.New(6).Add(
			col.New(1).Add(text.New(
				fmt.Sprintf("%d.", i+1),
				props.Text{Size: 8, Align: align.Center, Top: 1},
			)),
			col.New(8).Add(text.New(
				part.PartName,
				props.Text{Size: 8, Align: align.Left, Top: 1},
			)),
			col.New(3).Add(text.New(
				fmt.Sprintf("%d uds.", part.Units),
				props.Text{Size: 8, Align: align.Right, Top: 1, Right: 1},
			)),
		))
	}
	return rows
}
