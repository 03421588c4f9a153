package handler

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"portal/internal/domain/model"
	"portal/internal/repository"
	"portal/internal/usecase"
)

type OrderHandler struct {
	uc *usecase.OrderUsecase
}

func NewOrderHandler(uc *usecase.OrderUsecase) *OrderHandler {
	return &OrderHandler{uc: uc}
}

func (h *OrderHandler) RegisterRoutes(e *echo.Echo) {
	g := e.Group("/orders")

	g.GET("", h.list)
	g.POST("", h.create)
	g.GET("/:id", h.detail)
	g.PUT("/:id", h.updateStatus)
	g.DELETE("/:id", h.cancel)
}

type OrderLineRequest struct {
	BatchID      string   `json:"inventoryItemId"`
	Variety      string   `json:"variety"`
	Quantity     int      `json:"quantity"`
	PricePerTray *float64 `json:"price_per_tray"`
}

type OrderCreateRequest struct {
	CustomerName    string             `json:"customerName"`
	CustomerContact string             `json:"customerContact"`
	PickupDate      time.Time          `json:"pickupDate"`
	Items           []OrderLineRequest `json:"items"`
}

func (h *OrderHandler) create(c echo.Context) error {
	var req OrderCreateRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
	}

	lines := make([]usecase.OrderLineInput, 0, len(req.Items))
	for _, it := range req.Items {
		lines = append(lines, usecase.OrderLineInput{
			BatchID:      it.BatchID,
			Variety:      it.Variety,
			Quantity:     it.Quantity,
			PricePerTray: it.PricePerTray,
		})
	}

	order, err := h.uc.PlaceOrder(c.Request().Context(), usecase.PlaceOrderInput{
		CustomerName:    req.CustomerName,
		CustomerContact: req.CustomerContact,
		PickupDate:      req.PickupDate,
		Items:           lines,
	})
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusCreated, order)
}

func (h *OrderHandler) list(c echo.Context) error {
	f := repository.OrderListFilter{Status: c.QueryParam("status")}

	type rangeParam struct {
		name string
		dst  **time.Time
	}
	for _, p := range []rangeParam{
		{"start_date", &f.From},
		{"end_date", &f.To},
		{"pickup_start_date", &f.PickupFrom},
		{"pickup_end_date", &f.PickupTo},
	} {
		t, ok := parseDateTimeRFC3339(c.QueryParam(p.name))
		if !ok {
			return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid " + p.name + " format"})
		}
		*p.dst = t
	}

	orders, err := h.uc.ListOrders(c.Request().Context(), f)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, orders)
}

func (h *OrderHandler) detail(c echo.Context) error {
	order, err := h.uc.GetOrder(c.Request().Context(), c.Param("id"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, order)
}

type StatusUpdateRequest struct {
	Status string `json:"status"`
}

func (h *OrderHandler) updateStatus(c echo.Context) error {
	var req StatusUpdateRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
	}

	order, err := h.uc.UpdateStatus(c.Request().Context(), c.Param("id"), model.OrderStatus(req.Status))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, order)
}

func (h *OrderHandler) cancel(c echo.Context) error {
	if _, err := h.uc.Cancel(c.Request().Context(), c.Param("id")); err != nil {
		return writeError(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}
