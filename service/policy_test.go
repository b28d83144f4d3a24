package service

import (
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"

	C "github.com/sepguard/sepguard-server/constant"
	"github.com/sepguard/sepguard-server/lib"
	F "github.com/sepguard/sepguard-server/test/fixture"
)

func TestServicePolicy_FetchCurrentDefault(t *testing.T) {
	db := lib.GetDB(lib.WriteDBKey)

	F.Truncate(db, "alert_threshold_policy")

	service := &PolicyService{&Service{Log: logrus.WithField("test", "policy")}, db}

	// 未登録なら既定値。
	if policy, err := service.FetchCurrent(); assert.NoError(t, err) {
		assert.EqualValues(t, 85, policy.CriticalThreshold)
		assert.EqualValues(t, 65, policy.WarningThreshold)
		assert.EqualValues(t, true, policy.AudioAlerts)
	}
}

func TestServicePolicy_Update(t *testing.T) {
	db := lib.GetDB(lib.WriteDBKey)

	F.Truncate(db, "alert_threshold_policy")

	tx, _ := db.Begin()
	service := &PolicyTxService{&Service{Log: logrus.WithField("test", "policy")}, tx}

	policy, err := service.Update(&PolicyInput{
		CriticalThreshold: 90,
		WarningThreshold:  70,
		AudioAlerts:       true,
	})

	if !assert.NoError(t, err) {
		t.FailNow()
	}
	assert.NoError(t, tx.Commit())

	assert.EqualValues(t, 90, policy.CriticalThreshold)
	assert.EqualValues(t, 70, policy.WarningThreshold)

	reader := &PolicyService{&Service{Log: logrus.WithField("test", "policy")}, db}

	if current, e := reader.FetchCurrent(); assert.NoError(t, e) {
		assert.EqualValues(t, 90, current.CriticalThreshold)
	}

	// 2回目の更新は行を増やさず既存行を書き換える。
	tx, _ = db.Begin()
	service = &PolicyTxService{&Service{Log: logrus.WithField("test", "policy")}, tx}

	_, err = service.Update(&PolicyInput{CriticalThreshold: 95, WarningThreshold: 60})

	assert.NoError(t, err)
	assert.NoError(t, tx.Commit())

	if n, e := db.SelectInt(`SELECT COUNT(*) FROM alert_threshold_policy`); assert.NoError(t, e) {
		assert.EqualValues(t, 1, n)
	}
}

func TestServicePolicy_UpdateInvalid(t *testing.T) {
	db := lib.GetDB(lib.WriteDBKey)

	F.Truncate(db, "alert_threshold_policy")

	tx, _ := db.Begin()
	service := &PolicyTxService{&Service{Log: logrus.WithField("test", "policy")}, tx}

	_, err := service.Update(&PolicyInput{CriticalThreshold: 80, WarningThreshold: 70})
	assert.NoError(t, err)
	assert.NoError(t, tx.Commit())

	for _, input := range []*PolicyInput{
		{CriticalThreshold: 60, WarningThreshold: 70},
		{CriticalThreshold: 70, WarningThreshold: 70},
		{CriticalThreshold: 101, WarningThreshold: 70},
		{CriticalThreshold: 80, WarningThreshold: -1},
	} {
		tx, _ = db.Begin()
		service = &PolicyTxService{&Service{Log: logrus.WithField("test", "policy")}, tx}

		_, err = service.Update(input)

		assert.Equal(t, C.INVALID_POLICY, err)
		assert.NoError(t, tx.Rollback())
	}

	// 検証に失敗しても従前の設定は保たれる。
	reader := &PolicyService{&Service{Log: logrus.WithField("test", "policy")}, db}

	if current, e := reader.FetchCurrent(); assert.NoError(t, e) {
		assert.EqualValues(t, 80, current.CriticalThreshold)
		assert.EqualValues(t, 70, current.WarningThreshold)
	}
}
