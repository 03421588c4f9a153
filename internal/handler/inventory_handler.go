package handler

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"portal/internal/domain/model"
	"portal/internal/repository"
	"portal/internal/usecase"
)

type ErrorResponse struct {
	Error string `json:"error"`
}

func writeError(c echo.Context, err error) error {
	if err == nil {
		return nil
	}
	if he, ok := usecase.AsHTTPError(err); ok {
		return c.JSON(he.Status, ErrorResponse{Error: he.Message})
	}

	var rejected *usecase.OrderRejectedError
	if errors.As(err, &rejected) {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: rejected.Error()})
	}

	switch {
	case errors.Is(err, repository.ErrNotFound):
		return c.JSON(http.StatusNotFound, ErrorResponse{Error: "not found"})
	case errors.Is(err, usecase.ErrInsufficientStock),
		errors.Is(err, usecase.ErrVarietyMismatch):
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
	}

	//500
	return c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "internal error"})
}

func parseDateTimeRFC3339(s string) (*time.Time, bool) {
	if strings.TrimSpace(s) == "" {
		return nil, true
	}
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return nil, false
	}
	return &t, true
}

// /inventory のAPI
type InventoryHandler struct {
	uc *usecase.LedgerUsecase
}

func NewInventoryHandler(uc *usecase.LedgerUsecase) *InventoryHandler {
	return &InventoryHandler{uc: uc}
}

func (h *InventoryHandler) RegisterRoutes(e *echo.Echo) {
	g := e.Group("/inventory")

	g.GET("", h.list)
	g.POST("", h.create)
	g.GET("/:id", h.get)
	g.PUT("/:id", h.update)
	g.DELETE("/:id", h.remove)
	g.POST("/:id/log", h.adjust)
	g.GET("/:id/logs", h.logs)
}

func (h *InventoryHandler) list(c echo.Context) error {
	f := repository.BatchListFilter{
		Variety: c.QueryParam("variety"),
		Status:  c.QueryParam("status"),
	}

	from, ok := parseDateTimeRFC3339(c.QueryParam("start_date"))
	if !ok {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid start_date format"})
	}
	f.HarvestedFrom = from

	to, ok := parseDateTimeRFC3339(c.QueryParam("end_date"))
	if !ok {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid end_date format"})
	}
	f.HarvestedTo = to

	batches, err := h.uc.ListBatches(c.Request().Context(), f)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, batches)
}

func (h *InventoryHandler) get(c echo.Context) error {
	b, err := h.uc.GetBatch(c.Request().Context(), c.Param("id"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, b)
}

type BatchCreateRequest struct {
	Variety     string    `json:"variety"`
	TrayCount   int       `json:"trayCount"`
	HarvestDate time.Time `json:"harvestDate"`
	WeightKg    *float64  `json:"weightKg"`
	Status      string    `json:"status"`
}

func (h *InventoryHandler) create(c echo.Context) error {
	var req BatchCreateRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
	}

	b, err := h.uc.CreateBatch(c.Request().Context(), usecase.BatchInput{
		Variety:     req.Variety,
		TrayCount:   req.TrayCount,
		HarvestDate: req.HarvestDate,
		WeightKg:    req.WeightKg,
		Status:      model.BatchStatus(req.Status),
	}, "system")
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusCreated, b)
}

type BatchUpdateRequest struct {
	Variety     string    `json:"variety"`
	TrayCount   *int      `json:"trayCount"`
	HarvestDate time.Time `json:"harvestDate"`
	WeightKg    *float64  `json:"weightKg"`
	Status      string    `json:"status"`
}

func (h *InventoryHandler) update(c echo.Context) error {
	var req BatchUpdateRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
	}

	b, err := h.uc.UpdateBatch(c.Request().Context(), c.Param("id"), usecase.BatchInput{
		Variety:     req.Variety,
		HarvestDate: req.HarvestDate,
		WeightKg:    req.WeightKg,
		Status:      model.BatchStatus(req.Status),
	}, req.TrayCount)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, b)
}

func (h *InventoryHandler) remove(c echo.Context) error {
	if err := h.uc.RemoveBatch(c.Request().Context(), c.Param("id"), "system"); err != nil {
		return writeError(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}

type AdjustmentRequest struct {
	Change int    `json:"change"`
	Reason string `json:"reason"`
	Actor  string `json:"userId"`
}

type AdjustmentResponse struct {
	BatchID  string `json:"batchId"`
	Change   int    `json:"change"`
	Reason   string `json:"reason"`
	NewCount int    `json:"newCount"`
}

func (h *InventoryHandler) adjust(c echo.Context) error {
	var req AdjustmentRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
	}
	if strings.TrimSpace(req.Reason) == "" {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "reason is required"})
	}

	batchID := c.Param("id")
	newCount, err := h.uc.Adjust(c.Request().Context(), batchID, req.Change, req.Reason, req.Actor)
	if err != nil {
		return writeError(c, err)
	}

	return c.JSON(http.StatusCreated, AdjustmentResponse{
		BatchID:  batchID,
		Change:   req.Change,
		Reason:   req.Reason,
		NewCount: newCount,
	})
}

func (h *InventoryHandler) logs(c echo.Context) error {
	entries, err := h.uc.ListLogs(c.Request().Context(), c.Param("id"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, entries)
}
