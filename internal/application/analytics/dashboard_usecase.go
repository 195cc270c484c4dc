// Package analytics contiene el caso de uso del dashboard: los repuestos
// que más se mueven en el almacén, calculados sobre el libro completo.
package analytics

import (
	"context"
	"fmt"

	"github.com/gudangmaju/motorparts-api/internal/application/dto"
	"github.com/gudangmaju/motorparts-api/internal/domain/entity"
	"github.com/gudangmaju/motorparts-api/internal/domain/repository"
)

const dashboardTopParts = 10 // repuestos por widget del dashboard

// DashboardUseCase genera el top de repuestos salientes y entrantes.
//
// Fuente de datos: AnalyticsRepository (consultas read-only sobre el libro).
type DashboardUseCase struct {
	analyticsRepo repository.AnalyticsRepository
}

// NewDashboardUseCase construye el caso de uso.
func NewDashboardUseCase(analyticsRepo repository.AnalyticsRepository) *DashboardUseCase {
	return &DashboardUseCase{analyticsRepo: analyticsRepo}
}

// GetSummary lanza las dos consultas en paralelo y arma el DTO.
func (uc *DashboardUseCase) GetSummary(ctx context.Context) (*dto.DashboardResponse, error) {
	type topResult struct {
		parts []repository.PartVolumeResult
		err   error
	}

	outCh := make(chan topResult, 1)
	inCh := make(chan topResult, 1)

	go func() {
		p, err := uc.analyticsRepo.TopParts(ctx, entity.TransactionTypeOut, nil, nil, dashboardTopParts)
		outCh <- topResult{p, err}
	}()
	go func() {
		p, err := uc.analyticsRepo.TopParts(ctx, entity.TransactionTypeIn, nil, nil, dashboardTopParts)
		inCh <- topResult{p, err}
	}()

	out := <-outCh
	in := <-inCh

	if out.err != nil {
		return nil, fmt.Errorf("dashboard: top salidas: %w", out.err)
	}
	if in.err != nil {
		return nil, fmt.Errorf("dashboard: top entradas: %w", in.err)
	}

	return &dto.DashboardResponse{
		TopOutgoing: toTopParts(out.parts),
		TopIncoming: toTopParts(in.parts),
	}, nil
}

func toTopParts(list []repository.PartVolumeResult) []dto.TopPartDTO {
	result := make([]dto.TopPartDTO, 0, len(list))
	for _, p := range list {
		result = append(result, dto.TopPartDTO{PartID: p.PartID, PartName: p.PartName, Units: p.Units})
	}
	return result
}
