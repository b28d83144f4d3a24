package monitor

import (
	"github.com/labstack/echo/v4"

	"github.com/sepguard/sepguard-server/route/shared"
)

func RegisterAPI(e *echo.Echo) {
	router := e.Group("/1")

	registerAPIs(router)
}

func registerAPIs(router *echo.Group) {
	// 患者。
	router.GET("/patients", shared.C(listPatients))
	router.GET("/patients/:patient_id", shared.C(fetchPatient))

	// バイタル。
	router.GET("/patients/:patient_id/vitals", shared.C(listVitals))
	router.POST("/vitals", shared.C(submitVitals))

	// リスク評価。
	router.GET("/patients/:patient_id/assessments", shared.C(listAssessments))
	router.GET("/patients/:patient_id/assessments/latest", shared.C(fetchLatestAssessment))
	router.POST("/patients/:patient_id/retest", shared.C(retestPatient))

	// アラート。
	router.GET("/alerts", shared.C(listOpenAlerts))
	router.POST("/alerts/:alert_id/acknowledge", shared.C(acknowledgeAlert))
	router.GET("/patients/:patient_id/alerts", shared.C(listPatientAlerts))
	router.POST("/patients/:patient_id/escalations", shared.C(escalatePatient))

	// センサ。
	router.GET("/sensors", shared.C(listSensors))
	router.GET("/sensors/status", shared.C(listSensorStatus))
	router.POST("/sensors/:device_code/samples", shared.C(registerSamples))
	router.GET("/patients/:patient_id/samples", shared.C(listSamples))

	// 統計。
	router.GET("/stats", shared.C(fetchStats))
}
