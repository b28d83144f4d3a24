package route

import (
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	"github.com/sepguard/sepguard-server/route/admin"
	app_middleware "github.com/sepguard/sepguard-server/route/middleware"
	"github.com/sepguard/sepguard-server/route/monitor"
	"github.com/sepguard/sepguard-server/route/shared"
)

func NewHandler() *echo.Echo {
	e := echo.New()

	e.HTTPErrorHandler = shared.APIErrorHandler

	e.Use(middleware.Recover())
	e.Use(middleware.CORS())
	e.Use(middleware.Logger())
	e.Use(middleware.Gzip())
	e.Use(middleware.RequestID())
	e.Use(app_middleware.SessionLogger)
	e.Use(app_middleware.I18n)
	e.Use(app_middleware.Transactional)

	admin.RegisterAPI(e)
	monitor.RegisterAPI(e)

	return e
}
