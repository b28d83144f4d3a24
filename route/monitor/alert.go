package monitor

import (
	"net/http"

	v "github.com/go-ozzo/ozzo-validation/v4"

	C "github.com/sepguard/sepguard-server/constant"
	"github.com/sepguard/sepguard-server/model"
	S "github.com/sepguard/sepguard-server/service"
	"github.com/sepguard/sepguard-server/route/shared"
)

type listAlertsQuery struct {
	Tier  string `query:"tier"`
	Limit int    `query:"limit"`
}

type listAlertsResponse struct {
	Alerts []*model.AlertEntity `json:"alerts"`
}

// listOpenAlerts godoc
// @summary 未確認アラートを取得する。
// @description 患者情報付きで新しい順に返す。tierで区分を絞り込める。
// @tags [monitor] Alert
// @produce json
// @param tier query string false "アラート区分。criticalまたはwarning。"
// @param limit query int false "最大取得件数。デフォルトは50。"
// @success 200 {object} listAlertsResponse "アラートリスト。"
// @failure 400 {object} shared.ErrorResponse "バリデーションエラー。"
// @failure 500 {object} shared.ErrorResponse "サーバエラーが発生。"
// @router /1/alerts [get]
func listOpenAlerts(c *shared.Context) error {
	query := &listAlertsQuery{}

	if e := c.Bind(query); e != nil {
		return e
	}

	if e := (v.Errors{
		"tier": v.Validate(query.Tier, v.In(string(C.RiskCritical), string(C.RiskWarning))),
	}).Filter(); e != nil {
		return e
	}

	var tier *string
	if query.Tier != "" {
		tier = &query.Tier
	}

	service := shared.CreateService(S.AlertService{}, c).(*S.AlertService)

	alerts, err := service.ListOpen(tier, query.Limit)

	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, &listAlertsResponse{alerts})
}

// acknowledgeAlert godoc
// @summary アラートを確認済みにする。
// @description 冪等な操作であり、確認済みのアラートに対しても200を返す。
// @tags [monitor] Alert
// @produce json
// @param alert_id path int true "アラートID。"
// @success 200 {object} model.Alert "確認後のアラート。"
// @failure 404 {object} shared.ErrorResponse "アラートが存在しない。"
// @failure 500 {object} shared.ErrorResponse "サーバエラーが発生。"
// @router /1/alerts/{alert_id}/acknowledge [post]
func acknowledgeAlert(c *shared.Context) error {
	alertId := c.IntParam("alert_id")

	service := shared.CreateService(S.AlertTxService{}, c).(*S.AlertTxService)

	alert, err := service.Acknowledge(alertId)

	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, alert)
}

type listPatientAlertsQuery struct {
	Limit int `query:"limit"`
}

type listPatientAlertsResponse struct {
	Alerts []*model.Alert `json:"alerts"`
}

// listPatientAlerts godoc
// @summary 患者のアラート履歴を取得する。
// @description 確認済みを含めて新しい順に返す。
// @tags [monitor] Alert
// @produce json
// @param patient_id path int true "患者ID。"
// @param limit query int false "最大取得件数。デフォルトは20。"
// @success 200 {object} listPatientAlertsResponse "アラートリスト。"
// @failure 500 {object} shared.ErrorResponse "サーバエラーが発生。"
// @router /1/patients/{patient_id}/alerts [get]
func listPatientAlerts(c *shared.Context) error {
	patientId := c.IntParam("patient_id")

	query := &listPatientAlertsQuery{}

	if e := c.Bind(query); e != nil {
		return e
	}

	service := shared.CreateService(S.AlertService{}, c).(*S.AlertService)

	alerts, err := service.ListByPatient(patientId, query.Limit)

	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, &listPatientAlertsResponse{alerts})
}

type escalateBody struct {
	Reason string `json:"reason"`
}

// escalatePatient godoc
// @summary 患者のエスカレーションを登録する。
// @description 既存の未確認アラートの有無に関わらず、常にcritical区分の手動アラートを作成する。
// @tags [monitor] Alert
// @accept json
// @produce json
// @param patient_id path int true "患者ID。"
// @param escalation body escalateBody true "エスカレーション理由。"
// @success 201 {object} model.Alert "作成されたアラート。"
// @failure 400 {object} shared.ErrorResponse "バリデーションエラー。"
// @failure 404 {object} shared.ErrorResponse "患者が存在しない。"
// @failure 500 {object} shared.ErrorResponse "サーバエラーが発生。"
// @router /1/patients/{patient_id}/escalations [post]
func escalatePatient(c *shared.Context) error {
	patientId := c.IntParam("patient_id")

	body := &escalateBody{}

	if e := c.Bind(body); e != nil {
		return e
	}

	if e := (v.Errors{
		"reason": v.Validate(body.Reason, v.Required, v.Length(1, 500)),
	}).Filter(); e != nil {
		return e
	}

	service := shared.CreateService(S.AlertTxService{}, c).(*S.AlertTxService)

	alert, err := service.Escalate(patientId, body.Reason)

	if err != nil {
		return err
	}

	return c.JSON(http.StatusCreated, alert)
}
