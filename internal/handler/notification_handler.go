package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"portal/internal/usecase"
)

type NotificationHandler struct {
	uc *usecase.NotificationUsecase
}

func NewNotificationHandler(uc *usecase.NotificationUsecase) *NotificationHandler {
	return &NotificationHandler{uc: uc}
}

func (h *NotificationHandler) RegisterRoutes(e *echo.Echo) {
	g := e.Group("/notifications")
	g.GET("", h.list)
	g.POST("", h.create)
	g.PUT("/:id/read", h.markRead)
}

func (h *NotificationHandler) list(c echo.Context) error {
	unreadOnly := c.QueryParam("unread") == "true"
	notifications, err := h.uc.List(c.Request().Context(), unreadOnly)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, notifications)
}

type NotificationCreateRequest struct {
	Message string `json:"message"`
	Type    string `json:"type"`
}

func (h *NotificationHandler) create(c echo.Context) error {
	var req NotificationCreateRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
	}

	n, err := h.uc.Create(c.Request().Context(), usecase.CreateNotificationInput{
		Message: req.Message,
		Type:    req.Type,
	})
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusCreated, n)
}

func (h *NotificationHandler) markRead(c echo.Context) error {
	n, err := h.uc.MarkRead(c.Request().Context(), c.Param("id"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, n)
}
