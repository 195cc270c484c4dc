package http

import (
	"fmt"

	"github.com/gofiber/fiber/v2"

	"github.com/gudangmaju/motorparts-api/internal/application/report"
)

// ReportHandler maneja los reportes de período.
type ReportHandler struct {
	uc *report.UseCase
}

// NewReportHandler construye el handler.
func NewReportHandler(uc *report.UseCase) *ReportHandler {
	return &ReportHandler{uc: uc}
}

// Get godoc
// @Summary      Reporte de actividad para un período anclado a hoy
// @Tags         reports
// @Security     Bearer
// @Produce      json
// @Param        period  query  string  false  "day | week | month | quarter | year"  default(month)
// @Success      200     {object}  dto.ReportResponse
// @Failure      400     {object}  dto.ErrorResponse
// @Router       /api/reports [get]
func (h *ReportHandler) Get(c *fiber.Ctx) error {
	period := c.Query("period", report.PeriodMonth)
	out, err := h.uc.GetReport(c.UserContext(), period)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// GetPDF godoc
// @Summary      Descargar el reporte de período como PDF
// @Tags         reports
// @Security     Bearer
// @Produce      application/pdf
// @Param        period  query  string  false  "day | week | month | quarter | year"  default(month)
// @Success      200     {file}    binary
// @Failure      400     {object}  dto.ErrorResponse
// @Router       /api/reports/pdf [get]
func (h *ReportHandler) GetPDF(c *fiber.Ctx) error {
	period := c.Query("period", report.PeriodMonth)
	pdfBytes, err := h.uc.GetReportPDF(c.UserContext(), period)
	if err != nil {
		return respondError(c, err)
	}
	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Set(fiber.HeaderContentDisposition, fmt.Sprintf(`attachment; filename="report-%s.pdf"`, period))
	return c.Send(pdfBytes)
}
