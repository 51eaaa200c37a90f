package admin

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

type Handler struct {
	svc *Service
}

func NewHandler(svc *Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) RegisterRoutes(api *echo.Group) {
	api.GET("/admin/appointments", h.Dashboard)
	api.GET("/admin/columns", h.TableColumns)
}

// Dashboard serves the full admin payload: counts, stat cards, and the
// rendered appointment table.
func (h *Handler) Dashboard(c echo.Context) error {
	d, err := h.svc.BuildDashboard(c.Request().Context())
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, d)
}

func (h *Handler) TableColumns(c echo.Context) error {
	return c.JSON(http.StatusOK, Columns())
}
