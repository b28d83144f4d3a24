package admin

import (
	"net/http"

	v "github.com/go-ozzo/ozzo-validation/v4"

	S "github.com/sepguard/sepguard-server/service"
	"github.com/sepguard/sepguard-server/route/shared"
)

type thresholdsBody struct {
	CriticalThreshold  int  `json:"criticalThreshold"`
	WarningThreshold   int  `json:"warningThreshold"`
	AudioAlerts        bool `json:"audioAlerts"`
	EmailNotifications bool `json:"emailNotifications"`
	SmsAlerts          bool `json:"smsAlerts"`
}

// fetchThresholds godoc
// @summary 現行のアラート閾値設定を取得する。
// @description 未登録の場合は既定値を返す。
// @tags [admin] Settings
// @produce json
// @success 200 {object} model.AlertThresholdPolicy "閾値設定。"
// @failure 500 {object} shared.ErrorResponse "サーバエラーが発生。"
// @router /admin/1/settings/thresholds [get]
func fetchThresholds(c *shared.Context) error {
	service := shared.CreateService(S.PolicyService{}, c).(*S.PolicyService)

	policy, err := service.FetchCurrent()

	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, policy)
}

// updateThresholds godoc
// @summary アラート閾値設定を更新する。
// @description critical閾値はwarning閾値より大きくなければならない。検証に失敗した場合は何も変更されない。
// @description 更新後の設定は以後の評価にのみ適用される。
// @tags [admin] Settings
// @accept json
// @produce json
// @param thresholds body thresholdsBody true "閾値設定。"
// @success 200 {object} model.AlertThresholdPolicy "更新後の設定。"
// @failure 400 {object} shared.ErrorResponse "バリデーションエラー。"
// @failure 500 {object} shared.ErrorResponse "サーバエラーが発生。"
// @router /admin/1/settings/thresholds [put]
func updateThresholds(c *shared.Context) error {
	body := &thresholdsBody{}

	if e := c.Bind(body); e != nil {
		return e
	}

	if e := (v.Errors{
		"criticalThreshold": v.Validate(body.CriticalThreshold, v.Min(0), v.Max(100)),
		"warningThreshold":  v.Validate(body.WarningThreshold, v.Min(0), v.Max(100)),
	}).Filter(); e != nil {
		return e
	}

	service := shared.CreateService(S.PolicyTxService{}, c).(*S.PolicyTxService)

	policy, err := service.Update(&S.PolicyInput{
		CriticalThreshold:  body.CriticalThreshold,
		WarningThreshold:   body.WarningThreshold,
		AudioAlerts:        body.AudioAlerts,
		EmailNotifications: body.EmailNotifications,
		SmsAlerts:          body.SmsAlerts,
	})

	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, policy)
}

type scheduleBody struct {
	IntervalMinutes int `json:"intervalMinutes"`
}

// fetchSchedule godoc
// @summary 自動評価スケジュールを取得する。
// @tags [admin] Settings
// @produce json
// @success 200 {object} model.TestingSchedule "スケジュール。"
// @failure 500 {object} shared.ErrorResponse "サーバエラーが発生。"
// @router /admin/1/settings/schedule [get]
func fetchSchedule(c *shared.Context) error {
	service := shared.CreateService(S.SensorService{}, c).(*S.SensorService)

	schedule, err := service.FetchSchedule()

	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, schedule)
}

// updateSchedule godoc
// @summary 自動評価スケジュールの間隔を更新する。
// @description 更新時点を実行済みと見なし、次回実行時刻を間隔分だけ先に設定する。
// @tags [admin] Settings
// @accept json
// @produce json
// @param schedule body scheduleBody true "スケジュール設定。"
// @success 200 {object} model.TestingSchedule "更新後のスケジュール。"
// @failure 400 {object} shared.ErrorResponse "バリデーションエラー。"
// @failure 500 {object} shared.ErrorResponse "サーバエラーが発生。"
// @router /admin/1/settings/schedule [put]
func updateSchedule(c *shared.Context) error {
	body := &scheduleBody{}

	if e := c.Bind(body); e != nil {
		return e
	}

	service := shared.CreateService(S.SensorTxService{}, c).(*S.SensorTxService)

	schedule, err := service.UpdateSchedule(body.IntervalMinutes)

	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, schedule)
}
