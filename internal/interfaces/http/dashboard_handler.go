package http

import (
	"fmt"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Manufactura-api/internal/application/activity"
	appanalytics "github.com/jhoicas/Manufactura-api/internal/application/analytics"
	"github.com/jhoicas/Manufactura-api/internal/application/dto"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

// DashboardHandler resumen, reporte XLSX y log de actividad.
type DashboardHandler struct {
	dashboard *appanalytics.DashboardUseCase
	reports   *appanalytics.ReportUseCase
	activity  *activity.UseCase
}

// NewDashboardHandler construye el handler.
func NewDashboardHandler(dashboard *appanalytics.DashboardUseCase, reports *appanalytics.ReportUseCase, act *activity.UseCase) *DashboardHandler {
	return &DashboardHandler{dashboard: dashboard, reports: reports, activity: act}
}

// GetSummary devuelve lotes por estado, stock por ubicación, traslados
// pendientes y materias primas bajo mínimo.
// GET /api/dashboard/summary
func (h *DashboardHandler) GetSummary(c *fiber.Ctx) error {
	summary, err := h.dashboard.GetSummary(c.UserContext())
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(summary)
}

// Workbook godoc
// @Summary      Reporte XLSX de inventario y lotes
// @Tags         reports
// @Security     Bearer
// @Produce      application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Success      200  {file}  binary
// @Router       /api/reports/workbook.xlsx [get]
func (h *DashboardHandler) Workbook(c *fiber.Ctx) error {
	content, filename, err := h.reports.Workbook(c.UserContext())
	if err != nil {
		return writeError(c, err)
	}
	c.Set(fiber.HeaderContentType, xlsxContentType)
	c.Set(fiber.HeaderContentDisposition, fmt.Sprintf(`attachment; filename="%s"`, filename))
	return c.Send(content)
}

// Activity godoc
// @Summary      Log de actividad
// @Tags         activity
// @Security     Bearer
// @Produce      json
// @Param        module  query  string  false  "batches | costs | inventory | transfers | sales | purchases | catalog | users"
// @Success      200  {array}  dto.ActivityLogResponse
// @Router       /api/activity [get]
func (h *DashboardHandler) Activity(c *fiber.Ctx) error {
	limit, offset := pageParams(c)
	list, err := h.activity.List(c.UserContext(), c.Query("module"), limit, offset)
	if err != nil {
		return writeError(c, err)
	}
	out := make([]dto.ActivityLogResponse, 0, len(list))
	for _, a := range list {
		out = append(out, dto.ActivityLogResponse{
			ID: a.ID, UserID: a.UserID, ActionType: a.ActionType, Module: a.Module,
			Description: a.Description, EntityID: a.EntityID, CreatedAt: a.CreatedAt,
		})
	}
	return c.JSON(out)
}
