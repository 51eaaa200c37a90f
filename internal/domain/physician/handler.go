package physician

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"
)

// Handler exposes the physician roster over HTTP.
type Handler struct {
	registry *Registry
}

func NewHandler(registry *Registry) *Handler {
	return &Handler{registry: registry}
}

// RegisterRoutes mounts physician routes on the supplied group.
func (h *Handler) RegisterRoutes(g *echo.Group) {
	g.GET("/physicians", h.handleList)
	g.GET("/physicians/:id", h.handleGet)
}

func (h *Handler) handleList(c echo.Context) error {
	return c.JSON(http.StatusOK, h.registry.List())
}

func (h *Handler) handleGet(c echo.Context) error {
	p, err := h.registry.Get(c.Param("id"))
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, err.Error())
		}
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, p)
}
