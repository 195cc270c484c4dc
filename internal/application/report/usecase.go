// Package report genera el reporte combinado de actividad del almacén:
// totales de entradas/salidas y top de repuestos para un período dado.
package report

import (
	"context"
	"fmt"
	"time"

	"github.com/gudangmaju/motorparts-api/internal/application/dto"
	"github.com/gudangmaju/motorparts-api/internal/domain/entity"
	"github.com/gudangmaju/motorparts-api/internal/domain/repository"
)

const reportTopParts = 5 // repuestos en cada top del reporte

// PDFGenerator genera la versión imprimible del reporte.
type PDFGenerator interface {
	GenerateReportPDF(ctx context.Context, rep *dto.ReportResponse) ([]byte, error)
}

// UseCase construye el reporte del período a partir del repositorio de analítica.
type UseCase struct {
	analyticsRepo repository.AnalyticsRepository
	pdf           PDFGenerator
}

// NewUseCase construye el caso de uso. pdf puede ser nil si no se sirven PDFs.
func NewUseCase(analyticsRepo repository.AnalyticsRepository, pdf PDFGenerator) *UseCase {
	return &UseCase{analyticsRepo: analyticsRepo, pdf: pdf}
}

// GetReport agrega la actividad del período (day/week/month/quarter/year).
//
// Cuatro consultas en paralelo:
//  1. PeriodTotals(in)   → conteo, valor y unidades de entrada
//  2. PeriodTotals(out)  → conteo, valor y unidades de salida
//  3. TopParts(in, 5)    → top repuestos que entraron
//  4. TopParts(out, 5)   → top repuestos que salieron
func (uc *UseCase) GetReport(ctx context.Context, period string) (*dto.ReportResponse, error) {
	now := time.Now()
	from, to, err := PeriodRange(period, now)
	if err != nil {
		return nil, err
	}

	type totalsResult struct {
		totals repository.PeriodTotalsResult
		err    error
	}
	type topResult struct {
		parts []repository.PartVolumeResult
		err   error
	}

	inCh := make(chan totalsResult, 1)
	outCh := make(chan totalsResult, 1)
	topInCh := make(chan topResult, 1)
	topOutCh := make(chan topResult, 1)

	go func() {
		t, err := uc.analyticsRepo.PeriodTotals(ctx, entity.TransactionTypeIn, from, to)
		inCh <- totalsResult{t, err}
	}()
	go func() {
		t, err := uc.analyticsRepo.PeriodTotals(ctx, entity.TransactionTypeOut, from, to)
		outCh <- totalsResult{t, err}
	}()
	go func() {
		p, err := uc.analyticsRepo.TopParts(ctx, entity.TransactionTypeIn, &from, &to, reportTopParts)
		topInCh <- topResult{p, err}
	}()
	go func() {
		p, err := uc.analyticsRepo.TopParts(ctx, entity.TransactionTypeOut, &from, &to, reportTopParts)
		topOutCh <- topResult{p, err}
	}()

	in := <-inCh
	out := <-outCh
	topIn := <-topInCh
	topOut := <-topOutCh

	if in.err != nil {
		return nil, fmt.Errorf("report: totales de entrada: %w", in.err)
	}
	if out.err != nil {
		return nil, fmt.Errorf("report: totales de salida: %w", out.err)
	}
	if topIn.err != nil {
		return nil, fmt.Errorf("report: top entradas: %w", topIn.err)
	}
	if topOut.err != nil {
		return nil, fmt.Errorf("report: top salidas: %w", topOut.err)
	}

	return &dto.ReportResponse{
		Period:      period,
		From:        from,
		To:          to,
		InCount:     in.totals.TransactionCount,
		OutCount:    out.totals.TransactionCount,
		InValue:     in.totals.TotalValue,
		OutValue:    out.totals.TotalValue,
		InUnits:     in.totals.TotalUnits,
		OutUnits:    out.totals.TotalUnits,
		TopPartsIn:  toTopPartDTOs(topIn.parts),
		TopPartsOut: toTopPartDTOs(topOut.parts),
		GeneratedAt: now,
	}, nil
}

// GetReportPDF genera la versión imprimible del reporte del período.
func (uc *UseCase) GetReportPDF(ctx context.Context, period string) ([]byte, error) {
	rep, err := uc.GetReport(ctx, period)
	if err != nil {
		return nil, err
	}
	return uc.pdf.GenerateReportPDF(ctx, rep)
}

func toTopPartDTOs(list []repository.PartVolumeResult) []dto.TopPartDTO {
	out := make([]dto.TopPartDTO, 0, len(list))
	for _, p := range list {
		out = append(out, dto.TopPartDTO{PartID: p.PartID, PartName: p.PartName, Units: p.Units})
	}
	return out
}
