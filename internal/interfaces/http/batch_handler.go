package http

import (
	"fmt"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Manufactura-api/internal/application/dto"
	"github.com/jhoicas/Manufactura-api/internal/application/production"
	"github.com/jhoicas/Manufactura-api/internal/domain/repository"
)

// BatchHandler lotes de manufactura y sus costos.
type BatchHandler struct {
	batches *production.BatchUseCase
	costs   *production.CostUseCase
}

// NewBatchHandler construye el handler.
func NewBatchHandler(batches *production.BatchUseCase, costs *production.CostUseCase) *BatchHandler {
	return &BatchHandler{batches: batches, costs: costs}
}

// Create godoc
// @Summary      Crear lote de manufactura
// @Description  Genera el número de lote, registra los materiales y los descuenta del stock.
// @Tags         batches
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateBatchRequest  true  "Lote"
// @Success      201   {object}  dto.BatchResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      422   {object}  dto.ErrorResponse
// @Router       /api/batches [post]
func (h *BatchHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateBatchRequest
	if ok, err := bindAndValidate(c, &in); !ok {
		return err
	}
	lines := make([]production.MaterialLine, 0, len(in.Materials))
	for _, m := range in.Materials {
		lines = append(lines, production.MaterialLine{MaterialID: m.MaterialID, Quantity: m.Quantity})
	}
	b, err := h.batches.Create(c.UserContext(), production.CreateBatchInput{
		ProductID:              in.ProductID,
		Quantity:               in.Quantity,
		StartDate:              in.StartDate,
		ExpectedCompletionDate: in.ExpectedCompletionDate,
		Notes:                  in.Notes,
		Materials:              lines,
		UserID:                 GetUserID(c),
		Username:               GetUsername(c),
	})
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(dto.NewBatchResponse(b))
}

// List godoc
// @Summary      Listar lotes
// @Tags         batches
// @Security     Bearer
// @Produce      json
// @Param        status      query  string  false  "Estado"
// @Param        product_id  query  string  false  "Producto"
// @Success      200  {array}  dto.BatchResponse
// @Router       /api/batches [get]
func (h *BatchHandler) List(c *fiber.Ctx) error {
	limit, offset := pageParams(c)
	list, err := h.batches.List(c.UserContext(), repository.BatchFilter{
		Status:    c.Query("status"),
		ProductID: c.Query("product_id"),
		Limit:     limit,
		Offset:    offset,
	})
	if err != nil {
		return writeError(c, err)
	}
	out := make([]dto.BatchResponse, 0, len(list))
	for _, b := range list {
		out = append(out, dto.NewBatchResponse(b))
	}
	return c.JSON(out)
}

// Get godoc
// @Summary      Detalle de lote con materiales e historial
// @Tags         batches
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID del lote"
// @Success      200  {object}  dto.BatchDetailResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/batches/{id} [get]
func (h *BatchHandler) Get(c *fiber.Ctx) error {
	ctx := c.UserContext()
	id := c.Params("id")
	b, err := h.batches.Get(ctx, id)
	if err != nil {
		return writeError(c, err)
	}
	mats, err := h.batches.Materials(ctx, id)
	if err != nil {
		return writeError(c, err)
	}
	history, err := h.batches.History(ctx, id)
	if err != nil {
		return writeError(c, err)
	}
	out := dto.BatchDetailResponse{
		BatchResponse: dto.NewBatchResponse(b),
		Materials:     make([]dto.BatchMaterialResponse, 0, len(mats)),
		History:       make([]dto.StatusEntryResponse, 0, len(history)),
	}
	for _, m := range mats {
		out.Materials = append(out.Materials, dto.BatchMaterialResponse{MaterialID: m.MaterialID, QuantityRequired: m.QuantityRequired})
	}
	for _, e := range history {
		out.History = append(out.History, dto.NewStatusEntryResponse(e))
	}
	return c.JSON(out)
}

// Advance godoc
// @Summary      Cambiar estado de un lote
// @Description  Avanza un paso, retrocede uno o cancela. Al completar acredita el stock de manufactura.
// @Tags         batches
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string  true  "ID del lote"
// @Param        body  body  dto.AdvanceBatchRequest  true  "Nuevo estado"
// @Success      200   {object}  dto.BatchResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/batches/{id}/status [patch]
func (h *BatchHandler) Advance(c *fiber.Ctx) error {
	var in dto.AdvanceBatchRequest
	if ok, err := bindAndValidate(c, &in); !ok {
		return err
	}
	b, err := h.batches.Advance(c.UserContext(), production.AdvanceInput{
		BatchID:  c.Params("id"),
		Status:   in.Status,
		Notes:    in.Notes,
		UserID:   GetUserID(c),
		Username: GetUsername(c),
	})
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(dto.NewBatchResponse(b))
}

// History godoc
// @Summary      Historial de estados del lote
// @Tags         batches
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID del lote"
// @Success      200  {array}  dto.StatusEntryResponse
// @Router       /api/batches/{id}/history [get]
func (h *BatchHandler) History(c *fiber.Ctx) error {
	history, err := h.batches.History(c.UserContext(), c.Params("id"))
	if err != nil {
		return writeError(c, err)
	}
	out := make([]dto.StatusEntryResponse, 0, len(history))
	for _, e := range history {
		out = append(out, dto.NewStatusEntryResponse(e))
	}
	return c.JSON(out)
}

// AddCost godoc
// @Summary      Registrar costo de mano de obra u otro
// @Tags         costs
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string  true  "ID del lote"
// @Param        body  body  dto.AddCostRequest  true  "Costo"
// @Success      201   {object}  dto.CostResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/batches/{id}/costs [post]
func (h *BatchHandler) AddCost(c *fiber.Ctx) error {
	var in dto.AddCostRequest
	if ok, err := bindAndValidate(c, &in); !ok {
		return err
	}
	cost, err := h.costs.AddCost(c.UserContext(), production.AddCostInput{
		BatchID:     c.Params("id"),
		CostType:    in.CostType,
		Amount:      in.Amount,
		Description: in.Description,
		UserID:      GetUserID(c),
	})
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(dto.NewCostResponse(cost))
}

// ListCosts godoc
// @Summary      Costos registrados del lote
// @Tags         costs
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID del lote"
// @Success      200  {array}  dto.CostResponse
// @Router       /api/batches/{id}/costs [get]
func (h *BatchHandler) ListCosts(c *fiber.Ctx) error {
	list, err := h.costs.ListCosts(c.UserContext(), c.Params("id"))
	if err != nil {
		return writeError(c, err)
	}
	out := make([]dto.CostResponse, 0, len(list))
	for _, cost := range list {
		out = append(out, dto.NewCostResponse(cost))
	}
	return c.JSON(out)
}

// CostBreakdown godoc
// @Summary      Desglose de costo del lote
// @Tags         costs
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID del lote"
// @Success      200  {object}  dto.CostBreakdownResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/batches/{id}/cost-breakdown [get]
func (h *BatchHandler) CostBreakdown(c *fiber.Ctx) error {
	b, bd, err := h.costs.GetCostBreakdown(c.UserContext(), c.Params("id"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(dto.NewCostBreakdownResponse(b, bd))
}

// CostSheet godoc
// @Summary      Hoja de costos en PDF
// @Tags         costs
// @Security     Bearer
// @Produce      application/pdf
// @Param        id   path  string  true  "ID del lote"
// @Success      200  {file}  binary
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/batches/{id}/cost-sheet.pdf [get]
func (h *BatchHandler) CostSheet(c *fiber.Ctx) error {
	content, filename, err := h.costs.CostSheetPDF(c.UserContext(), c.Params("id"), GetUsername(c))
	if err != nil {
		return writeError(c, err)
	}
	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Set(fiber.HeaderContentDisposition, fmt.Sprintf(`attachment; filename="%s"`, filename))
	return c.Send(content)
}
