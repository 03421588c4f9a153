package server

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"portal/internal/handler"
)

type Handlers struct {
	Inventory    *handler.InventoryHandler
	Order        *handler.OrderHandler
	Forecast     *handler.ForecastHandler
	Dashboard    *handler.DashboardHandler
	Farm         *handler.FarmHandler
	Notification *handler.NotificationHandler
}

// New はルーティング済みのechoインスタンスを返す。Start とテストの両方で使う。
func New(feURL string, h Handlers) *echo.Echo {
	e := echo.New()
	e.HideBanner = true

	e.Use(middleware.Logger())
	e.Use(middleware.Recover())

	origins := []string{"http://localhost:5173"}
	if feURL != "" {
		origins = append(origins, feURL)
	}
	e.Use(middleware.CORSWithConfig(middleware.CORSConfig{
		AllowOrigins: origins,
		AllowMethods: []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete},
	}))

	e.GET("/", func(c echo.Context) error {
		return c.JSON(http.StatusOK, map[string]string{"message": "Microgreen Portal API"})
	})
	e.GET("/metrics", echo.WrapHandler(promhttp.Handler()))

	h.Inventory.RegisterRoutes(e)
	h.Order.RegisterRoutes(e)
	h.Forecast.RegisterRoutes(e)
	h.Dashboard.RegisterRoutes(e)
	h.Farm.RegisterRoutes(e)
	h.Notification.RegisterRoutes(e)

	return e
}

func Start(addr string, feURL string, h Handlers) error {
	e := New(feURL, h)
	return e.Start(addr)
}
