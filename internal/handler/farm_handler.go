package handler

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"portal/internal/usecase"
)

type FarmHandler struct {
	uc *usecase.FarmUsecase
}

func NewFarmHandler(uc *usecase.FarmUsecase) *FarmHandler {
	return &FarmHandler{uc: uc}
}

func (h *FarmHandler) RegisterRoutes(e *echo.Echo) {
	e.GET("/varieties", h.listVarieties)
	e.GET("/plantings", h.listPlantings)
	e.POST("/plantings", h.createPlanting)
	e.GET("/harvests", h.listHarvests)
}

func (h *FarmHandler) listVarieties(c echo.Context) error {
	varieties, err := h.uc.ListVarieties(c.Request().Context())
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, varieties)
}

func (h *FarmHandler) listPlantings(c echo.Context) error {
	plantings, err := h.uc.ListPlantings(c.Request().Context())
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, plantings)
}

type PlantingCreateRequest struct {
	VarietyID int64  `json:"variety_id"`
	PlantDate string `json:"plant_date"`
	TrayCount int    `json:"tray_count"`
}

func (h *FarmHandler) createPlanting(c echo.Context) error {
	var req PlantingCreateRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
	}

	plantDate, ok := parseDate(req.PlantDate)
	if !ok {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "plant_date must be a date"})
	}

	p, err := h.uc.CreatePlanting(c.Request().Context(), usecase.CreatePlantingInput{
		VarietyID: req.VarietyID,
		PlantDate: plantDate,
		TrayCount: req.TrayCount,
	})
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusCreated, p)
}

func (h *FarmHandler) listHarvests(c echo.Context) error {
	harvests, err := h.uc.ListHarvests(c.Request().Context())
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, harvests)
}

// parseDate は日付のみとRFC3339の両方を受ける。
func parseDate(s string) (time.Time, bool) {
	if s == "" {
		return time.Time{}, false
	}
	if t, err := time.Parse("2006-01-02", s); err == nil {
		return t, true
	}
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t, true
	}
	return time.Time{}, false
}
