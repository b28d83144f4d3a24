package admin

import (
	"github.com/labstack/echo/v4"

	"github.com/sepguard/sepguard-server/test"
)

func testHandler() *echo.Echo {
	e := test.TestHandler()

	RegisterAPI(e)

	return e
}
