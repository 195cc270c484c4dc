package http

import (
	"fmt"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/gudangmaju/motorparts-api/internal/application/dto"
	"github.com/gudangmaju/motorparts-api/internal/application/inventory"
	"github.com/gudangmaju/motorparts-api/internal/application/ledger"
	"github.com/gudangmaju/motorparts-api/internal/application/report"
)

// TransactionHandler maneja el libro de transacciones y las salidas de stock.
type TransactionHandler struct {
	stockUC  *inventory.StockUseCase
	ledgerUC *ledger.UseCase
}

// NewTransactionHandler construye el handler.
func NewTransactionHandler(stockUC *inventory.StockUseCase, ledgerUC *ledger.UseCase) *TransactionHandler {
	return &TransactionHandler{stockUC: stockUC, ledgerUC: ledgerUC}
}

// Create godoc
// @Summary      Registrar transacción de salida (venta) multi-ítem
// @Tags         transactions
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateOutgoingTransactionRequest  true  "Ítems de la venta"
// @Success      201   {object}  dto.OutgoingTransactionResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/transactions [post]
func (h *TransactionHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateOutgoingTransactionRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	out, err := h.stockUC.CreateOutgoingTransaction(c.UserContext(), in, GetUsername(c))
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// List godoc
// @Summary      Listar asientos del libro, más reciente primero
// @Tags         transactions
// @Security     Bearer
// @Produce      json
// @Param        period  query  string  false  "Período anclado a hoy (day|week|month|quarter|year); tiene prioridad sobre from/to"
// @Param        from    query  int  false  "Inicio del rango (epoch millis)"
// @Param        to      query  int  false  "Fin del rango (epoch millis)"
// @Param        limit   query  int  false  "Límite"   default(20)
// @Param        offset  query  int  false  "Offset"   default(0)
// @Success      200     {object}  dto.TransactionListResponse
// @Router       /api/transactions [get]
func (h *TransactionHandler) List(c *fiber.Ctx) error {
	limit := c.QueryInt("limit", 20)
	offset := c.QueryInt("offset", 0)
	if limit <= 0 {
		limit = 20
	}
	if limit > 100 {
		limit = 100
	}
	if offset < 0 {
		offset = 0
	}
	from := queryMillis(c, "from")
	to := queryMillis(c, "to")
	if period := c.Query("period"); period != "" {
		start, end, err := report.PeriodRange(period, time.Now())
		if err != nil {
			return respondError(c, err)
		}
		from, to = &start, &end
	}

	out, err := h.ledgerUC.List(c.UserContext(), from, to, limit, offset)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// GetByID godoc
// @Summary      Obtener un asiento por ID
// @Tags         transactions
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID del asiento"
// @Success      200  {object}  dto.TransactionResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/transactions/{id} [get]
func (h *TransactionHandler) GetByID(c *fiber.Ctx) error {
	id := c.Params("id")
	if id == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "MISSING_ID", Message: "id es requerido"})
	}
	out, err := h.ledgerUC.Get(c.UserContext(), id)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// GetReceipt godoc
// @Summary      Descargar recibo PDF de un asiento
// @Tags         transactions
// @Security     Bearer
// @Produce      application/pdf
// @Param        id   path  string  true  "ID del asiento"
// @Success      200  {file}    binary
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/transactions/{id}/receipt [get]
func (h *TransactionHandler) GetReceipt(c *fiber.Ctx) error {
	id := c.Params("id")
	if id == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "MISSING_ID", Message: "id es requerido"})
	}
	pdfBytes, err := h.ledgerUC.GetReceiptPDF(c.UserContext(), id)
	if err != nil {
		return respondError(c, err)
	}
	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Set(fiber.HeaderContentDisposition, fmt.Sprintf(`attachment; filename="receipt-%s.pdf"`, id))
	return c.Send(pdfBytes)
}

// queryMillis interpreta un query param epoch-millis como *time.Time.
func queryMillis(c *fiber.Ctx, key string) *time.Time {
	v := c.QueryInt(key, -1)
	if v < 0 {
		return nil
	}
	t := time.UnixMilli(int64(v)).UTC()
	return &t
}
