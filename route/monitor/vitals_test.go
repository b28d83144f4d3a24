package monitor

import (
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/sepguard/sepguard-server/lib"
	"github.com/sepguard/sepguard-server/model"
	"github.com/sepguard/sepguard-server/test"
	F "github.com/sepguard/sepguard-server/test/fixture"
)

func TestMonitorVitals_Submit(t *testing.T) {
	db := lib.GetDB(lib.WriteDBKey)

	prepare := func() {
		F.Truncate(db, "alert", "model_prediction", "risk_assessment", "vitals_reading", "alert_threshold_policy", "patient")

		F.Insert(db, model.Patient{}, 0, 1, func(i int, r F.Record) {
			r["Status"] = "active"
		})
	}

	// 全モデルが評価可能なバイタル一式。
	abnormal := map[string]interface{}{
		"patientCode":      "code-0001",
		"heartRate":        130,
		"temperature":      39.0,
		"systolicBp":       95,
		"diastolicBp":      60,
		"oxygenSaturation": 93,
		"respiratoryRate":  24,
		"measuredAt":       F.BaseTime.Format(time.RFC3339),
	}

	httpTests := test.HttpTests{
		{
			Name:   "評価パイプラインの実行",
			Method: http.MethodPost,
			Path:   "/1/vitals",
			Body:   test.JsonBody(abnormal),
			Check: func(t *testing.T, rec *httptest.ResponseRecorder) {
				assert.Equal(t, http.StatusOK, rec.Code)
				res := F.FromJsonResponse(t, rec, &model.EvaluationResult{}).(*model.EvaluationResult)

				// 正規化。MAP = 60 + (95-60)/3、丸めなし。
				assert.EqualValues(t, 60.0+35.0/3.0, *res.Reading.MeanArterialPressure)

				// 3モデルの加重平均。(95*0.7 + 100*0.8 + 60*0.9) / 2.4。
				assert.EqualValues(t, 83.5, res.Assessment.RiskScore)
				assert.InDelta(t, 0.8, res.Assessment.Confidence, 1e-9)
				assert.EqualValues(t, 3, len(res.Assessment.Predictions))

				assert.EqualValues(t, "warning", res.Tier)
				if assert.NotNil(t, res.Alert) {
					assert.EqualValues(t, "warning", res.Alert.Tier)
				}
				assert.EqualValues(t, 3, len(res.RecommendedActions))
			},
		},
		{
			Name:   "同一区分のアラートは抑止される",
			Method: http.MethodPost,
			Path:   "/1/vitals",
			Body:   test.JsonBody(abnormal),
			Check: func(t *testing.T, rec *httptest.ResponseRecorder) {
				assert.Equal(t, http.StatusOK, rec.Code)
				res := F.FromJsonResponse(t, rec, &model.EvaluationResult{}).(*model.EvaluationResult)

				assert.EqualValues(t, "warning", res.Tier)
				assert.Nil(t, res.Alert)
			},
		},
		{
			Name:   "患者コードなし",
			Method: http.MethodPost,
			Path:   "/1/vitals",
			Body:   test.JsonBody(map[string]interface{}{"heartRate": 80}),
			Check: func(t *testing.T, rec *httptest.ResponseRecorder) {
				assert.Equal(t, http.StatusBadRequest, rec.Code)
			},
		},
		{
			Name:   "存在しない患者コード",
			Method: http.MethodPost,
			Path:   "/1/vitals",
			Body: test.JsonBody(map[string]interface{}{
				"patientCode": "no-such-code",
				"heartRate":   80,
			}),
			Check: func(t *testing.T, rec *httptest.ResponseRecorder) {
				assert.Equal(t, http.StatusBadRequest, rec.Code)
			},
		},
		{
			Name:   "血圧の逆転",
			Method: http.MethodPost,
			Path:   "/1/vitals",
			Body: test.JsonBody(map[string]interface{}{
				"patientCode": "code-0001",
				"systolicBp":  80,
				"diastolicBp": 90,
			}),
			Check: func(t *testing.T, rec *httptest.ResponseRecorder) {
				assert.Equal(t, http.StatusBadRequest, rec.Code)
			},
		},
		{
			Name:   "バイタルなし",
			Method: http.MethodPost,
			Path:   "/1/vitals",
			Body:   test.JsonBody(map[string]interface{}{"patientCode": "code-0001"}),
			Check: func(t *testing.T, rec *httptest.ResponseRecorder) {
				assert.Equal(t, http.StatusBadRequest, rec.Code)
			},
		},
	}

	httpTests.Run(testHandler(), t, prepare)
}

func TestMonitorVitals_List(t *testing.T) {
	db := lib.GetDB(lib.WriteDBKey)

	prepare := func() {
		F.Truncate(db, "vitals_reading", "patient")

		F.Insert(db, model.Patient{}, 0, 1, func(i int, r F.Record) {
			r["Status"] = "active"
		})

		F.Insert(db, model.VitalsReading{}, 0, 5, func(i int, r F.Record) {
			r["PatientId"] = 1
			r["HeartRate"] = 60.0 + float64(i)
			r["MeasuredAt"] = F.BaseTime.Add(time.Duration(i) * time.Hour)
		})
	}

	httpTests := test.HttpTests{
		{
			Name:   "全期間",
			Method: http.MethodGet,
			Path:   "/1/patients/1/vitals",
			Check: func(t *testing.T, rec *httptest.ResponseRecorder) {
				assert.Equal(t, http.StatusOK, rec.Code)
				res := F.FromJsonResponse(t, rec, &listVitalsResponse{}).(*listVitalsResponse)

				assert.EqualValues(t, 5, len(res.Readings))

				// 古い順。
				for i, r := range res.Readings {
					assert.EqualValues(t, i+1, r.Id)
				}
			},
		},
		{
			Name:   "期間指定",
			Method: http.MethodGet,
			Path:   "/1/patients/1/vitals",
			Query: func(q url.Values) {
				q.Set("begin", F.BaseTime.Add(2*time.Hour).Format(time.RFC3339))
				q.Set("end", F.BaseTime.Add(4*time.Hour).Format(time.RFC3339))
			},
			Check: func(t *testing.T, rec *httptest.ResponseRecorder) {
				assert.Equal(t, http.StatusOK, rec.Code)
				res := F.FromJsonResponse(t, rec, &listVitalsResponse{}).(*listVitalsResponse)

				assert.EqualValues(t, 3, len(res.Readings))
				assert.EqualValues(t, 2, res.Readings[0].Id)
			},
		},
		{
			Name:   "不正な日時形式",
			Method: http.MethodGet,
			Path:   "/1/patients/1/vitals",
			Query: func(q url.Values) {
				q.Set("begin", "2026/04/01")
			},
			Check: func(t *testing.T, rec *httptest.ResponseRecorder) {
				assert.Equal(t, http.StatusBadRequest, rec.Code)
			},
		},
		{
			Name:   "存在しない患者",
			Method: http.MethodGet,
			Path:   "/1/patients/9999/vitals",
			Check: func(t *testing.T, rec *httptest.ResponseRecorder) {
				assert.Equal(t, http.StatusNotFound, rec.Code)
			},
		},
	}

	httpTests.Run(testHandler(), t, prepare)
}
