package service

import (
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"

	C "github.com/sepguard/sepguard-server/constant"
	"github.com/sepguard/sepguard-server/lib"
	"github.com/sepguard/sepguard-server/model"
	"github.com/sepguard/sepguard-server/resource/rds"
	F "github.com/sepguard/sepguard-server/test/fixture"
)

func testAlertTxService(t *testing.T) (*AlertTxService, func()) {
	db := lib.GetDB(lib.WriteDBKey)

	tx, err := db.Begin()

	if err != nil {
		t.Fatal(err)
	}

	service := &AlertTxService{&Service{Log: logrus.WithField("test", "alert")}, tx}

	return service, func() {
		if e := tx.Commit(); e != nil {
			t.Fatal(e)
		}
	}
}

func TestServiceAlert_ListOpen(t *testing.T) {
	db := lib.GetDB(lib.WriteDBKey)

	F.Truncate(db, "alert", "patient")

	patients := F.Insert(db, model.Patient{}, 0, 2, func(i int, r F.Record) {
		r["Status"] = "active"
	}).([]*model.Patient)

	F.Insert(db, model.Alert{}, 0, 4, func(i int, r F.Record) {
		r["PatientId"] = patients[(i-1)%2].Id
		r["Tier"] = F.If(i%2 == 0, "critical", "warning")
		r["Acknowledged"] = i == 4
		r["CreatedAt"] = F.BaseTime.Add(time.Duration(i) * time.Minute)
	})

	service := &AlertService{&Service{Log: logrus.WithField("test", "alert")}, db}

	// 未確認のみ、新しい順。
	if alerts, err := service.ListOpen(nil, 0); assert.NoError(t, err) {
		assert.EqualValues(t, 3, len(alerts))
		assert.EqualValues(t, 3, alerts[0].Id)
		assert.NotNil(t, alerts[0].Patient)
	}

	// 区分での絞り込み。
	critical := "critical"

	if alerts, err := service.ListOpen(&critical, 0); assert.NoError(t, err) {
		assert.EqualValues(t, 1, len(alerts))
		assert.EqualValues(t, 2, alerts[0].Id)
	}
}

func TestServiceAlert_Escalate(t *testing.T) {
	db := lib.GetDB(lib.WriteDBKey)

	F.Truncate(db, "alert", "patient")

	patients := F.Insert(db, model.Patient{}, 0, 1, func(i int, r F.Record) {
		r["Name"] = "佐藤花子"
		r["Status"] = "active"
	}).([]*model.Patient)

	// 既に未確認のcriticalアラートがある状態を作る。
	F.Fixture(db, model.Alert{}, 0, func(i int, r F.Record) {
		r["PatientId"] = patients[0].Id
		r["Tier"] = "critical"
		r["Acknowledged"] = false
	})

	service, commit := testAlertTxService(t)

	alert, err := service.Escalate(patients[0].Id, "Nurse observed altered mental status")

	if !assert.NoError(t, err) {
		t.FailNow()
	}

	commit()

	// 手動エスカレーションは重複抑止の対象外。
	assert.EqualValues(t, "critical", alert.Tier)
	assert.EqualValues(t, true, alert.IsManual)
	assert.EqualValues(t, "Escalation for 佐藤花子: Nurse observed altered mental status", alert.Message)

	if n, e := rds.CountOpenAlerts(db, nil); assert.NoError(t, e) {
		assert.EqualValues(t, 2, n)
	}

	// 存在しない患者。
	service, commit = testAlertTxService(t)

	_, err = service.Escalate(9999, "reason")

	assert.IsType(t, &C.NotFoundError{}, err)

	commit()
}

func TestServiceAlert_Acknowledge(t *testing.T) {
	db := lib.GetDB(lib.WriteDBKey)

	F.Truncate(db, "alert", "patient")

	patients := F.Insert(db, model.Patient{}, 0, 1, func(i int, r F.Record) {
		r["Status"] = "active"
	}).([]*model.Patient)

	alerts := F.Insert(db, model.Alert{}, 0, 1, func(i int, r F.Record) {
		r["PatientId"] = patients[0].Id
		r["Tier"] = "warning"
		r["Acknowledged"] = false
	}).([]*model.Alert)

	service, commit := testAlertTxService(t)

	acknowledged, err := service.Acknowledge(alerts[0].Id)

	if !assert.NoError(t, err) {
		t.FailNow()
	}

	commit()

	assert.EqualValues(t, true, acknowledged.Acknowledged)
	assert.NotNil(t, acknowledged.AcknowledgedAt)

	// 冪等。2回目は確認時刻を変更しない。
	service, commit = testAlertTxService(t)

	again, err := service.Acknowledge(alerts[0].Id)

	assert.NoError(t, err)
	assert.EqualValues(t, acknowledged.AcknowledgedAt.Unix(), again.AcknowledgedAt.Unix())

	commit()

	// 存在しないアラート。
	service, commit = testAlertTxService(t)

	_, err = service.Acknowledge(9999)

	assert.IsType(t, &C.NotFoundError{}, err)

	commit()
}
