package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"portal/internal/usecase"
)

type DashboardHandler struct {
	uc *usecase.DashboardUsecase
}

func NewDashboardHandler(uc *usecase.DashboardUsecase) *DashboardHandler {
	return &DashboardHandler{uc: uc}
}

func (h *DashboardHandler) RegisterRoutes(e *echo.Echo) {
	e.GET("/dashboard-data", h.data)
}

func (h *DashboardHandler) data(c echo.Context) error {
	d, err := h.uc.Data(c.Request().Context())
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, d)
}
