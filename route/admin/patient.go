package admin

import (
	"net/http"
	"time"

	v "github.com/go-ozzo/ozzo-validation/v4"

	S "github.com/sepguard/sepguard-server/service"
	"github.com/sepguard/sepguard-server/route/shared"
)

type patientBody struct {
	Name          string     `json:"name"`
	Room          *string    `json:"room"`
	Age           *int       `json:"age"`
	AdmissionDate *time.Time `json:"admissionDate"`
}

func (body *patientBody) validate() error {
	return (v.Errors{
		"name": v.Validate(body.Name, v.Required, v.Length(1, 100)),
		"age":  v.Validate(body.Age, v.Min(0), v.Max(150)),
	}).Filter()
}

// createPatient godoc
// @summary 患者を登録する。
// @description 公開コードは自動採番される。
// @tags [admin] Patient
// @accept json
// @produce json
// @param patient body patientBody true "患者情報。"
// @success 201 {object} model.Patient "登録された患者。"
// @failure 400 {object} shared.ErrorResponse "バリデーションエラー。"
// @failure 500 {object} shared.ErrorResponse "サーバエラーが発生。"
// @router /admin/1/patients [post]
func createPatient(c *shared.Context) error {
	body := &patientBody{}

	if e := c.Bind(body); e != nil {
		return e
	}

	if e := body.validate(); e != nil {
		return e
	}

	service := shared.CreateService(S.PatientTxService{}, c).(*S.PatientTxService)

	patient, err := service.Create(&S.PatientInput{
		Name:          body.Name,
		Room:          body.Room,
		Age:           body.Age,
		AdmissionDate: body.AdmissionDate,
	})

	if err != nil {
		return err
	}

	return c.JSON(http.StatusCreated, patient)
}

// updatePatient godoc
// @summary 患者情報を更新する。
// @tags [admin] Patient
// @accept json
// @produce json
// @param patient_id path int true "患者ID。"
// @param patient body patientBody true "患者情報。"
// @success 200 {object} model.Patient "更新後の患者。"
// @failure 400 {object} shared.ErrorResponse "バリデーションエラー。"
// @failure 404 {object} shared.ErrorResponse "患者が存在しない。"
// @failure 500 {object} shared.ErrorResponse "サーバエラーが発生。"
// @router /admin/1/patients/{patient_id} [put]
func updatePatient(c *shared.Context) error {
	patientId := c.IntParam("patient_id")

	body := &patientBody{}

	if e := c.Bind(body); e != nil {
		return e
	}

	if e := body.validate(); e != nil {
		return e
	}

	service := shared.CreateService(S.PatientTxService{}, c).(*S.PatientTxService)

	patient, err := service.Update(patientId, &S.PatientInput{
		Name:          body.Name,
		Room:          body.Room,
		Age:           body.Age,
		AdmissionDate: body.AdmissionDate,
	})

	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, patient)
}

// dischargePatient godoc
// @summary 患者を退院済みにする。
// @description 記録は削除されず、一覧や評価バッチの対象から外れる。
// @tags [admin] Patient
// @produce json
// @param patient_id path int true "患者ID。"
// @success 200 {object} model.Patient "更新後の患者。"
// @failure 404 {object} shared.ErrorResponse "患者が存在しない。"
// @failure 500 {object} shared.ErrorResponse "サーバエラーが発生。"
// @router /admin/1/patients/{patient_id}/discharge [post]
func dischargePatient(c *shared.Context) error {
	patientId := c.IntParam("patient_id")

	service := shared.CreateService(S.PatientTxService{}, c).(*S.PatientTxService)

	patient, err := service.Discharge(patientId)

	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, patient)
}
