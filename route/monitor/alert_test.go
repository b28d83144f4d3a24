package monitor

import (
	"fmt"
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

func TestMonitorAlert_ListOpen(t *testing.T) {
	db := lib.GetDB(lib.WriteDBKey)

	// p - al
	// 1 - [1,3,5]
	// 2 - [2,4,6]
	// 5,6は確認済み。
	prepare := func() {
		F.Truncate(db, "alert", "patient")

		F.Insert(db, model.Patient{}, 0, 2, func(i int, r F.Record) {
			r["Status"] = "active"
		})

		F.Insert(db, model.Alert{}, 0, 6, func(i int, r F.Record) {
			r["PatientId"] = (i-1)%2 + 1
			r["Tier"] = F.If(i%2 == 0, "warning", "critical")
			r["Acknowledged"] = i >= 5
			r["CreatedAt"] = F.BaseTime.Add(time.Duration(i) * time.Minute)
		})
	}

	httpTests := test.HttpTests{
		{
			Name:   "全未確認アラート",
			Method: http.MethodGet,
			Path:   "/1/alerts",
			Check: func(t *testing.T, rec *httptest.ResponseRecorder) {
				assert.Equal(t, http.StatusOK, rec.Code)
				res := F.FromJsonResponse(t, rec, &listAlertsResponse{}).(*listAlertsResponse)

				assert.EqualValues(t, 4, len(res.Alerts))

				// 新しい順。
				for i, a := range res.Alerts {
					assert.EqualValues(t, 4-i, a.Id)
					assert.NotNil(t, a.Patient)
					assert.EqualValues(t, fmt.Sprintf("name-%04d", (a.Id-1)%2+1), a.Patient.Name)
				}
			},
		},
		{
			Name:   "区分指定",
			Method: http.MethodGet,
			Path:   "/1/alerts",
			Query: func(q url.Values) {
				q.Set("tier", "critical")
			},
			Check: func(t *testing.T, rec *httptest.ResponseRecorder) {
				assert.Equal(t, http.StatusOK, rec.Code)
				res := F.FromJsonResponse(t, rec, &listAlertsResponse{}).(*listAlertsResponse)

				assert.EqualValues(t, 2, len(res.Alerts))
				assert.EqualValues(t, 3, res.Alerts[0].Id)
				assert.EqualValues(t, 1, res.Alerts[1].Id)
			},
		},
		{
			Name:   "件数制限",
			Method: http.MethodGet,
			Path:   "/1/alerts",
			Query: func(q url.Values) {
				q.Set("limit", "2")
			},
			Check: func(t *testing.T, rec *httptest.ResponseRecorder) {
				assert.Equal(t, http.StatusOK, rec.Code)
				res := F.FromJsonResponse(t, rec, &listAlertsResponse{}).(*listAlertsResponse)

				assert.EqualValues(t, 2, len(res.Alerts))
			},
		},
		{
			Name:   "不正な区分",
			Method: http.MethodGet,
			Path:   "/1/alerts",
			Query: func(q url.Values) {
				q.Set("tier", "fatal")
			},
			Check: func(t *testing.T, rec *httptest.ResponseRecorder) {
				assert.Equal(t, http.StatusBadRequest, rec.Code)
			},
		},
	}

	httpTests.Run(testHandler(), t, prepare)
}

func TestMonitorAlert_Acknowledge(t *testing.T) {
	db := lib.GetDB(lib.WriteDBKey)

	prepare := func() {
		F.Truncate(db, "alert", "patient")

		F.Insert(db, model.Patient{}, 0, 1, func(i int, r F.Record) {
			r["Status"] = "active"
		})

		F.Insert(db, model.Alert{}, 0, 1, func(i int, r F.Record) {
			r["PatientId"] = 1
			r["Tier"] = "warning"
			r["Acknowledged"] = false
		})
	}

	httpTests := test.HttpTests{
		{
			Name:   "確認",
			Method: http.MethodPost,
			Path:   "/1/alerts/1/acknowledge",
			Check: func(t *testing.T, rec *httptest.ResponseRecorder) {
				assert.Equal(t, http.StatusOK, rec.Code)
				res := F.FromJsonResponse(t, rec, &model.Alert{}).(*model.Alert)

				assert.EqualValues(t, true, res.Acknowledged)
				assert.NotNil(t, res.AcknowledgedAt)
			},
		},
		{
			Name:   "確認済みでも200",
			Method: http.MethodPost,
			Path:   "/1/alerts/1/acknowledge",
			Check: func(t *testing.T, rec *httptest.ResponseRecorder) {
				assert.Equal(t, http.StatusOK, rec.Code)
			},
		},
		{
			Name:   "存在しないアラート",
			Method: http.MethodPost,
			Path:   "/1/alerts/9999/acknowledge",
			Check: func(t *testing.T, rec *httptest.ResponseRecorder) {
				assert.Equal(t, http.StatusNotFound, rec.Code)
			},
		},
	}

	httpTests.Run(testHandler(), t, prepare)
}

func TestMonitorAlert_Escalate(t *testing.T) {
	db := lib.GetDB(lib.WriteDBKey)

	prepare := func() {
		F.Truncate(db, "alert", "patient")

		F.Insert(db, model.Patient{}, 0, 1, func(i int, r F.Record) {
			r["Status"] = "active"
		})
	}

	httpTests := test.HttpTests{
		{
			Name:   "エスカレーション作成",
			Method: http.MethodPost,
			Path:   "/1/patients/1/escalations",
			Body:   test.JsonBody(map[string]interface{}{"reason": "意識レベルの低下"}),
			Check: func(t *testing.T, rec *httptest.ResponseRecorder) {
				assert.Equal(t, http.StatusCreated, rec.Code)
				res := F.FromJsonResponse(t, rec, &model.Alert{}).(*model.Alert)

				assert.EqualValues(t, "critical", res.Tier)
				assert.EqualValues(t, true, res.IsManual)
				assert.EqualValues(t, false, res.Acknowledged)
			},
		},
		{
			Name:   "未確認アラートがあっても作成される",
			Method: http.MethodPost,
			Path:   "/1/patients/1/escalations",
			Body:   test.JsonBody(map[string]interface{}{"reason": "再送"}),
			Check: func(t *testing.T, rec *httptest.ResponseRecorder) {
				assert.Equal(t, http.StatusCreated, rec.Code)

				if n, e := db.SelectInt(`SELECT COUNT(*) FROM alert WHERE NOT acknowledged`); assert.NoError(t, e) {
					assert.EqualValues(t, 2, n)
				}
			},
		},
		{
			Name:   "理由なしは拒否",
			Method: http.MethodPost,
			Path:   "/1/patients/1/escalations",
			Body:   test.JsonBody(map[string]interface{}{}),
			Check: func(t *testing.T, rec *httptest.ResponseRecorder) {
				assert.Equal(t, http.StatusBadRequest, rec.Code)
			},
		},
		{
			Name:   "存在しない患者",
			Method: http.MethodPost,
			Path:   "/1/patients/9999/escalations",
			Body:   test.JsonBody(map[string]interface{}{"reason": "誤操作"}),
			Check: func(t *testing.T, rec *httptest.ResponseRecorder) {
				assert.Equal(t, http.StatusNotFound, rec.Code)
			},
		},
	}

	httpTests.Run(testHandler(), t, prepare)
}
