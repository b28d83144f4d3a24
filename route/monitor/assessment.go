package monitor

import (
	"net/http"

	"github.com/sepguard/sepguard-server/model"
	S "github.com/sepguard/sepguard-server/service"
	"github.com/sepguard/sepguard-server/route/shared"
)

type listAssessmentsQuery struct {
	Limit int `query:"limit"`
}

type listAssessmentsResponse struct {
	Assessments []*model.RiskAssessmentEntity `json:"assessments"`
}

// listAssessments godoc
// @summary 患者のリスク評価履歴を取得する。
// @description 個別モデルの内訳付きで新しい順に返す。
// @tags [monitor] Assessment
// @produce json
// @param patient_id path int true "患者ID。"
// @param limit query int false "最大取得件数。デフォルトは10。"
// @success 200 {object} listAssessmentsResponse "評価リスト。"
// @failure 500 {object} shared.ErrorResponse "サーバエラーが発生。"
// @router /1/patients/{patient_id}/assessments [get]
func listAssessments(c *shared.Context) error {
	patientId := c.IntParam("patient_id")

	query := &listAssessmentsQuery{}

	if e := c.Bind(query); e != nil {
		return e
	}

	service := shared.CreateService(S.AssessmentService{}, c).(*S.AssessmentService)

	assessments, err := service.ListHistory(patientId, query.Limit)

	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, &listAssessmentsResponse{assessments})
}

// fetchLatestAssessment godoc
// @summary 患者の最新のリスク評価を取得する。
// @description 個別モデルの内訳付きで返す。評価が無い場合は404。
// @tags [monitor] Assessment
// @produce json
// @param patient_id path int true "患者ID。"
// @success 200 {object} model.RiskAssessmentEntity "評価。"
// @failure 404 {object} shared.ErrorResponse "評価が存在しない。"
// @failure 500 {object} shared.ErrorResponse "サーバエラーが発生。"
// @router /1/patients/{patient_id}/assessments/latest [get]
func fetchLatestAssessment(c *shared.Context) error {
	patientId := c.IntParam("patient_id")

	service := shared.CreateService(S.AssessmentService{}, c).(*S.AssessmentService)

	assessment, err := service.FetchLatest(patientId)

	if err != nil {
		return err
	} else if assessment == nil {
		return c.NoContent(http.StatusNotFound)
	}

	return c.JSON(http.StatusOK, assessment)
}

// retestPatient godoc
// @summary 最新のバイタル記録に対する評価を再実行する。
// @description 新しい記録は作らず、同じ記録から新しい評価を追加する。
// @tags [monitor] Assessment
// @produce json
// @param patient_id path int true "患者ID。"
// @success 200 {object} model.EvaluationResult "評価結果。"
// @failure 404 {object} shared.ErrorResponse "患者が存在しない。"
// @failure 409 {object} shared.ErrorResponse "評価可能なバイタル記録が無い。"
// @failure 500 {object} shared.ErrorResponse "サーバエラーが発生。"
// @router /1/patients/{patient_id}/retest [post]
func retestPatient(c *shared.Context) error {
	patientId := c.IntParam("patient_id")

	service := shared.CreateService(S.AssessmentTxService{}, c).(*S.AssessmentTxService)

	result, err := service.Retest(patientId)

	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, result)
}
