package handler

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"portal/internal/usecase"
)

type ForecastHandler struct {
	uc *usecase.ForecastUsecase
}

func NewForecastHandler(uc *usecase.ForecastUsecase) *ForecastHandler {
	return &ForecastHandler{uc: uc}
}

func (h *ForecastHandler) RegisterRoutes(e *echo.Echo) {
	e.GET("/forecast", h.forecast)
	e.GET("/historical-sales", h.historicalSales)
}

func (h *ForecastHandler) forecast(c echo.Context) error {
	weeks := 4
	if v := c.QueryParam("weeks"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "weeks must be number"})
		}
		weeks = n
	}

	f, err := h.uc.GetForecast(c.Request().Context(), weeks)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, f)
}

func (h *ForecastHandler) historicalSales(c echo.Context) error {
	days := 90
	if v := c.QueryParam("days"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "days must be number"})
		}
		days = n
	}

	records, err := h.uc.HistoricalSales(c.Request().Context(), days)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, records)
}
