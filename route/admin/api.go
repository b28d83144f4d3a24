package admin

import (
	"github.com/labstack/echo/v4"

	"github.com/sepguard/sepguard-server/route/shared"
)

func RegisterAPI(e *echo.Echo) {
	router := e.Group("/admin/1")

	registerAPIs(router)
}

func registerAPIs(router *echo.Group) {
	// 患者管理。
	router.POST("/patients", shared.C(createPatient))
	router.PUT("/patients/:patient_id", shared.C(updatePatient))
	router.POST("/patients/:patient_id/discharge", shared.C(dischargePatient))

	// 設定。
	router.GET("/settings/thresholds", shared.C(fetchThresholds))
	router.PUT("/settings/thresholds", shared.C(updateThresholds))
	router.GET("/settings/schedule", shared.C(fetchSchedule))
	router.PUT("/settings/schedule", shared.C(updateSchedule))
}
