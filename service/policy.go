package service

import (
	"time"

	"gopkg.in/gorp.v2"

	C "github.com/sepguard/sepguard-server/constant"
	"github.com/sepguard/sepguard-server/model"
	"github.com/sepguard/sepguard-server/resource/rds"
)

type PolicyService struct {
	*Service
	DB *gorp.DbMap
}

type PolicyTxService struct {
	*Service
	DB *gorp.Transaction
}

// 閾値設定の更新内容。
type PolicyInput struct {
	CriticalThreshold  int
	WarningThreshold   int
	AudioAlerts        bool
	EmailNotifications bool
	SmsAlerts          bool
}

// 現行の閾値設定を取得する。未登録の場合は既定値を返す。
func (s *PolicyService) FetchCurrent() (*model.AlertThresholdPolicy, error) {
	return currentPolicy(s.DB)
}

// 閾値設定を更新する。
//
// critical閾値はwarning閾値より大きく、いずれも0〜100の範囲でなければならない。
// 検証に失敗した場合は何も変更されず、従前の設定が効力を持ち続ける。
// 更新後の設定は以後の評価にのみ適用され、保存済みの評価は変化しない。
func (s *PolicyTxService) Update(input *PolicyInput) (*model.AlertThresholdPolicy, error) {
	if input.CriticalThreshold <= input.WarningThreshold ||
		input.WarningThreshold < 0 ||
		input.CriticalThreshold > 100 {
		return nil, C.INVALID_POLICY
	}

	var policy *model.AlertThresholdPolicy

	if r, e := rds.FetchCurrentPolicy(s.DB); e != nil {
		return nil, C.DB_OPERATION_ERROR(e)
	} else {
		policy = r
	}

	now := time.Now()

	if policy == nil {
		policy = &model.AlertThresholdPolicy{
			CriticalThreshold:  input.CriticalThreshold,
			WarningThreshold:   input.WarningThreshold,
			AudioAlerts:        input.AudioAlerts,
			EmailNotifications: input.EmailNotifications,
			SmsAlerts:          input.SmsAlerts,
			ModifiedAt:         now,
		}

		if e := s.DB.Insert(policy); e != nil {
			return nil, C.DB_OPERATION_ERROR(e)
		}
	} else {
		policy.CriticalThreshold = input.CriticalThreshold
		policy.WarningThreshold = input.WarningThreshold
		policy.AudioAlerts = input.AudioAlerts
		policy.EmailNotifications = input.EmailNotifications
		policy.SmsAlerts = input.SmsAlerts
		policy.ModifiedAt = now

		if _, e := s.DB.Update(policy); e != nil {
			return nil, C.DB_OPERATION_ERROR(e)
		}
	}

	return policy, nil
}
