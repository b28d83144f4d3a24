package monitor

import (
	"net/http"
	"time"

	v "github.com/go-ozzo/ozzo-validation/v4"

	"github.com/sepguard/sepguard-server/model"
	S "github.com/sepguard/sepguard-server/service"
	"github.com/sepguard/sepguard-server/route/shared"
)

type listVitalsQuery struct {
	Begin string `query:"begin"`
	End   string `query:"end"`
}

type listVitalsResponse struct {
	Readings []*model.VitalsReading `json:"readings"`
}

// listVitals godoc
// @summary 患者のバイタル記録を取得する。
// @description 期間指定で古い順に返す。チャート表示用。
// @tags [monitor] Vitals
// @produce json
// @param patient_id path int true "患者ID。"
// @param begin query string false "期間の開始日時。RFC3339形式。"
// @param end query string false "期間の終了日時。RFC3339形式。"
// @success 200 {object} listVitalsResponse "バイタル記録リスト。"
// @failure 400 {object} shared.ErrorResponse "バリデーションエラー。"
// @failure 404 {object} shared.ErrorResponse "患者が存在しない。"
// @failure 500 {object} shared.ErrorResponse "サーバエラーが発生。"
// @router /1/patients/{patient_id}/vitals [get]
func listVitals(c *shared.Context) error {
	patientId := c.IntParam("patient_id")

	query := &listVitalsQuery{}

	if e := c.Bind(query); e != nil {
		return e
	}

	begin, err := shared.ParseTimeParam("begin", query.Begin)
	if err != nil {
		return err
	}

	end, err := shared.ParseTimeParam("end", query.End)
	if err != nil {
		return err
	}

	service := shared.CreateService(S.VitalsService{}, c).(*S.VitalsService)

	readings, err := service.ListVitals(patientId, begin, end)

	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, &listVitalsResponse{readings})
}

type submitVitalsBody struct {
	PatientCode      string     `json:"patientCode"`
	HeartRate        *float64   `json:"heartRate"`
	Temperature      *float64   `json:"temperature"`
	SystolicBp       *float64   `json:"systolicBp"`
	DiastolicBp      *float64   `json:"diastolicBp"`
	OxygenSaturation *float64   `json:"oxygenSaturation"`
	RespiratoryRate  *float64   `json:"respiratoryRate"`
	MeasuredAt       *time.Time `json:"measuredAt"`
}

// submitVitals godoc
// @summary バイタルを手入力し、評価パイプラインを実行する。
// @description 正規化、スコアリング、閾値分類、アラート送出、推奨対応の解決までを1トランザクションで行う。
// @tags [monitor] Vitals
// @accept json
// @produce json
// @param vitals body submitVitalsBody true "バイタル入力。"
// @success 200 {object} model.EvaluationResult "評価結果。"
// @failure 400 {object} shared.ErrorResponse "バリデーションエラー。"
// @failure 409 {object} shared.ErrorResponse "予測可能なモデルが存在しない。"
// @failure 500 {object} shared.ErrorResponse "サーバエラーが発生。"
// @router /1/vitals [post]
func submitVitals(c *shared.Context) error {
	body := &submitVitalsBody{}

	if e := c.Bind(body); e != nil {
		return e
	}

	if e := (v.Errors{
		"patientCode": v.Validate(body.PatientCode, v.Required),
	}).Filter(); e != nil {
		return e
	}

	service := shared.CreateService(S.AssessmentTxService{}, c).(*S.AssessmentTxService)

	result, err := service.Evaluate(body.PatientCode, &S.VitalsInput{
		HeartRate:        body.HeartRate,
		Temperature:      body.Temperature,
		SystolicBp:       body.SystolicBp,
		DiastolicBp:      body.DiastolicBp,
		OxygenSaturation: body.OxygenSaturation,
		RespiratoryRate:  body.RespiratoryRate,
		MeasuredAt:       body.MeasuredAt,
	}, false)

	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, result)
}
