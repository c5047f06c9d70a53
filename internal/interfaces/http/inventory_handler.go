package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Manufactura-api/internal/application/dto"
	"github.com/jhoicas/Manufactura-api/internal/application/inventory"
	"github.com/jhoicas/Manufactura-api/internal/application/purchasing"
	"github.com/jhoicas/Manufactura-api/internal/domain/repository"
)

// InventoryHandler maneja el ledger de inventario, ajustes, compras y reposición.
type InventoryHandler struct {
	uc            *inventory.UseCase
	replenishment *inventory.ReplenishmentUseCase
	purchases     *purchasing.UseCase
}

// NewInventoryHandler construye el handler.
func NewInventoryHandler(uc *inventory.UseCase, replenishment *inventory.ReplenishmentUseCase, purchases *purchasing.UseCase) *InventoryHandler {
	return &InventoryHandler{uc: uc, replenishment: replenishment, purchases: purchases}
}

// List godoc
// @Summary      Listar inventario por producto y ubicación
// @Tags         inventory
// @Security     Bearer
// @Produce      json
// @Param        product_id  query  string  false  "Producto"
// @Param        location    query  string  false  "manufacturing | transit | wholesale"
// @Success      200  {array}   dto.InventoryRecordResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/inventory [get]
func (h *InventoryHandler) List(c *fiber.Ctx) error {
	records, err := h.uc.List(c.UserContext(), repository.InventoryFilter{
		ProductID: c.Query("product_id"),
		Location:  c.Query("location"),
	})
	if err != nil {
		return writeError(c, err)
	}
	out := make([]dto.InventoryRecordResponse, 0, len(records))
	for _, r := range records {
		out = append(out, dto.NewInventoryRecordResponse(r))
	}
	return c.JSON(out)
}

// Get godoc
// @Summary      Obtener registro de inventario
// @Tags         inventory
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID del registro"
// @Success      200  {object}  dto.InventoryRecordResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/inventory/{id} [get]
func (h *InventoryHandler) Get(c *fiber.Ctx) error {
	rec, err := h.uc.Get(c.UserContext(), c.Params("id"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(dto.NewInventoryRecordResponse(rec))
}

// Quantity godoc
// @Summary      Cantidad de un producto en una ubicación
// @Tags         inventory
// @Security     Bearer
// @Produce      json
// @Param        product_id  query  string  true  "Producto"
// @Param        location    query  string  true  "manufacturing | transit | wholesale"
// @Success      200  {object}  dto.QuantityResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/inventory/quantity [get]
func (h *InventoryHandler) Quantity(c *fiber.Ctx) error {
	productID, location := c.Query("product_id"), c.Query("location")
	qty, err := h.uc.Quantity(c.UserContext(), productID, location)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(dto.QuantityResponse{ProductID: productID, Location: location, Quantity: qty})
}

// Adjust godoc
// @Summary      Ajuste manual de inventario
// @Description  add suma, remove resta (falla si queda negativo), set fija la cantidad. Escribe auditoría.
// @Tags         inventory
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string  true  "ID del registro"
// @Param        body  body  dto.AdjustInventoryRequest  true  "Ajuste"
// @Success      201   {object}  dto.AdjustmentResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/inventory/{id}/adjustments [post]
func (h *InventoryHandler) Adjust(c *fiber.Ctx) error {
	var in dto.AdjustInventoryRequest
	if ok, err := bindAndValidate(c, &in); !ok {
		return err
	}
	adj, err := h.uc.Adjust(c.UserContext(), inventory.AdjustInput{
		InventoryID: c.Params("id"),
		Type:        in.Type,
		Quantity:    in.Quantity,
		Reason:      in.Reason,
		Notes:       in.Notes,
		UserID:      GetUserID(c),
	})
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(dto.NewAdjustmentResponse(adj))
}

// Adjustments godoc
// @Summary      Historial de ajustes de un registro
// @Tags         inventory
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID del registro"
// @Success      200  {array}  dto.AdjustmentResponse
// @Router       /api/inventory/{id}/adjustments [get]
func (h *InventoryHandler) Adjustments(c *fiber.Ctx) error {
	list, err := h.uc.Adjustments(c.UserContext(), c.Params("id"))
	if err != nil {
		return writeError(c, err)
	}
	out := make([]dto.AdjustmentResponse, 0, len(list))
	for _, a := range list {
		out = append(out, dto.NewAdjustmentResponse(a))
	}
	return c.JSON(out)
}

// LowStock godoc
// @Summary      Materias primas bajo el mínimo con sugerencia de compra
// @Tags         materials
// @Security     Bearer
// @Produce      json
// @Success      200  {array}  dto.LowStockMaterialDTO
// @Router       /api/materials/low-stock [get]
func (h *InventoryHandler) LowStock(c *fiber.Ctx) error {
	out, err := h.replenishment.LowStockMaterials(c.UserContext())
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// RecordPurchase godoc
// @Summary      Registrar compra de materia prima
// @Tags         purchases
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.RecordPurchaseRequest  true  "Compra"
// @Success      201   {object}  dto.PurchaseResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/purchases [post]
func (h *InventoryHandler) RecordPurchase(c *fiber.Ctx) error {
	var in dto.RecordPurchaseRequest
	if ok, err := bindAndValidate(c, &in); !ok {
		return err
	}
	p, err := h.purchases.RecordPurchase(c.UserContext(), purchasing.RecordInput{
		MaterialID:   in.MaterialID,
		Quantity:     in.Quantity,
		UnitPrice:    in.UnitPrice,
		Supplier:     in.Supplier,
		PurchaseDate: in.PurchaseDate,
		UserID:       GetUserID(c),
	})
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(dto.NewPurchaseResponse(p))
}

// ListPurchases godoc
// @Summary      Listar compras
// @Tags         purchases
// @Security     Bearer
// @Produce      json
// @Param        material_id  query  string  false  "Materia prima"
// @Success      200  {array}  dto.PurchaseResponse
// @Router       /api/purchases [get]
func (h *InventoryHandler) ListPurchases(c *fiber.Ctx) error {
	limit, offset := pageParams(c)
	list, err := h.purchases.ListPurchases(c.UserContext(), c.Query("material_id"), limit, offset)
	if err != nil {
		return writeError(c, err)
	}
	out := make([]dto.PurchaseResponse, 0, len(list))
	for _, p := range list {
		out = append(out, dto.NewPurchaseResponse(p))
	}
	return c.JSON(out)
}
