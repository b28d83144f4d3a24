package monitor

import (
	"net/http"

	"github.com/sepguard/sepguard-server/model"
	S "github.com/sepguard/sepguard-server/service"
	"github.com/sepguard/sepguard-server/route/shared"
)

type listPatientsQuery struct {
	Limit  int `query:"limit"`
	Offset int `query:"offset"`
}

type listPatientsResponse struct {
	Patients []*model.PatientEntity `json:"patients"`
	Total    int64                  `json:"total"`
}

// listPatients godoc
// @summary 患者一覧を取得する。
// @description 各患者に最新のバイタルとリスク評価を添えて返す。リスクの新しい順。
// @tags [monitor] Patient
// @produce json
// @param limit query int false "最大取得件数。デフォルトは50。"
// @param offset query int false "取得開始位置。"
// @success 200 {object} listPatientsResponse "患者リスト。"
// @failure 500 {object} shared.ErrorResponse "サーバエラーが発生。"
// @router /1/patients [get]
func listPatients(c *shared.Context) error {
	query := &listPatientsQuery{}

	if e := c.Bind(query); e != nil {
		return e
	}

	service := shared.CreateService(S.PatientService{}, c).(*S.PatientService)

	patients, total, err := service.List(query.Limit, query.Offset)

	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, &listPatientsResponse{patients, total})
}

// fetchPatient godoc
// @summary 患者情報を取得する。
// @description 最新のバイタルとリスク評価を添えて返す。
// @tags [monitor] Patient
// @produce json
// @param patient_id path int true "患者ID。"
// @success 200 {object} model.PatientEntity "患者情報。"
// @failure 404 {object} shared.ErrorResponse "患者が存在しない。"
// @failure 500 {object} shared.ErrorResponse "サーバエラーが発生。"
// @router /1/patients/{patient_id} [get]
func fetchPatient(c *shared.Context) error {
	patientId := c.IntParam("patient_id")

	service := shared.CreateService(S.PatientService{}, c).(*S.PatientService)

	patient, err := service.Fetch(patientId)

	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, patient)
}
