package monitor

import (
	"net/http"
	"time"

	v "github.com/go-ozzo/ozzo-validation/v4"

	"github.com/sepguard/sepguard-server/model"
	S "github.com/sepguard/sepguard-server/service"
	"github.com/sepguard/sepguard-server/route/shared"
)

type listSensorsResponse struct {
	Sensors []*S.SensorView `json:"sensors"`
}

// listSensors godoc
// @summary 全センサの状態を取得する。
// @description テレメトリから導出した実効状態と最終サンプル時刻を添えて返す。
// @tags [monitor] Sensor
// @produce json
// @success 200 {object} listSensorsResponse "センサリスト。"
// @failure 500 {object} shared.ErrorResponse "サーバエラーが発生。"
// @router /1/sensors [get]
func listSensors(c *shared.Context) error {
	service := shared.CreateService(S.SensorService{}, c).(*S.SensorService)

	sensors, err := service.ListDevices()

	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, &listSensorsResponse{sensors})
}

type sensorStatusResponse struct {
	Statuses []*model.SensorTypeStatus `json:"statuses"`
}

// listSensorStatus godoc
// @summary センサ種別ごとの稼働状況を取得する。
// @description 種別ごとの稼働数・総数と、稼働率による状態区分を返す。
// @tags [monitor] Sensor
// @produce json
// @success 200 {object} sensorStatusResponse "稼働状況リスト。"
// @failure 500 {object} shared.ErrorResponse "サーバエラーが発生。"
// @router /1/sensors/status [get]
func listSensorStatus(c *shared.Context) error {
	service := shared.CreateService(S.SensorService{}, c).(*S.SensorService)

	statuses, err := service.AggregateByType()

	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, &sensorStatusResponse{statuses})
}

type registerSamplesBody struct {
	Values     []float64   `json:"values"`
	Timestamps []time.Time `json:"timestamps"`
}

// registerSamples godoc
// @summary デバイスから届いたサンプル群を登録する。
// @description 時系列ストアへ書き込み、デバイスの最終更新時刻と稼働状態を更新する。
// @tags [monitor] Sensor
// @accept json
// @produce json
// @param device_code path string true "デバイスコード。"
// @param samples body registerSamplesBody true "サンプル群。"
// @success 204 "登録成功。"
// @failure 400 {object} shared.ErrorResponse "バリデーションエラー。"
// @failure 404 {object} shared.ErrorResponse "デバイスが存在しない。"
// @failure 500 {object} shared.ErrorResponse "サーバエラーが発生。"
// @router /1/sensors/{device_code}/samples [post]
func registerSamples(c *shared.Context) error {
	deviceCode := c.Param("device_code")

	body := &registerSamplesBody{}

	if e := c.Bind(body); e != nil {
		return e
	}

	if e := (v.Errors{
		"values": v.Validate(body.Values, v.Required),
	}).Filter(); e != nil {
		return e
	}

	service := shared.CreateService(S.DataTxService{}, c).(*S.DataTxService)

	if e := service.RegisterSamples(deviceCode, body.Values, body.Timestamps); e != nil {
		return e
	}

	return c.NoContent(http.StatusNoContent)
}

type listSamplesQuery struct {
	Type  string `query:"type"`
	Begin string `query:"begin"`
	End   string `query:"end"`
}

type listSamplesResponse struct {
	Samples []*model.SensorSample `json:"samples"`
}

// listSamples godoc
// @summary 患者のセンササンプルを取得する。
// @description 期間指定で古い順に返す。期間を省略した場合は直近24時間。
// @tags [monitor] Sensor
// @produce json
// @param patient_id path int true "患者ID。"
// @param type query string false "センサ種別。"
// @param begin query string false "期間の開始日時。RFC3339形式。"
// @param end query string false "期間の終了日時。RFC3339形式。"
// @success 200 {object} listSamplesResponse "サンプルリスト。"
// @failure 400 {object} shared.ErrorResponse "バリデーションエラー。"
// @failure 404 {object} shared.ErrorResponse "患者が存在しない。"
// @failure 500 {object} shared.ErrorResponse "サーバエラーが発生。"
// @router /1/patients/{patient_id}/samples [get]
func listSamples(c *shared.Context) error {
	patientId := c.IntParam("patient_id")

	query := &listSamplesQuery{}

	if e := c.Bind(query); e != nil {
		return e
	}

	sensorType, err := shared.ParseSensorTypeParam(query.Type)
	if err != nil {
		return err
	}

	begin, err := shared.ParseTimeParam("begin", query.Begin)
	if err != nil {
		return err
	}

	end, err := shared.ParseTimeParam("end", query.End)
	if err != nil {
		return err
	}

	service := shared.CreateService(S.DataService{}, c).(*S.DataService)

	samples, err := service.ListSamples(patientId, sensorType, begin, end)

	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, &listSamplesResponse{samples})
}
