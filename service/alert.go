package service

import (
	"fmt"
	"time"

	"gopkg.in/gorp.v2"

	C "github.com/sepguard/sepguard-server/constant"
	"github.com/sepguard/sepguard-server/model"
	"github.com/sepguard/sepguard-server/resource/rds"
)

type AlertService struct {
	*Service
	DB *gorp.DbMap
}

type AlertTxService struct {
	*Service
	DB *gorp.Transaction
}

// 未確認アラートを新しい順に取得する。tierを指定した場合はその区分のみ。
func (s *AlertService) ListOpen(tier *string, limit int) ([]*model.AlertEntity, error) {
	if limit <= 0 {
		limit = 50
	}

	if rs, e := rds.ListOpenAlerts(s.DB, tier, limit); e != nil {
		return nil, C.DB_OPERATION_ERROR(e)
	} else {
		return rs, nil
	}
}

// 患者のアラート履歴を新しい順に取得する。
func (s *AlertService) ListByPatient(patientId int, limit int) ([]*model.Alert, error) {
	if limit <= 0 {
		limit = 20
	}

	if rs, e := rds.ListAlertsByPatient(s.DB, patientId, limit); e != nil {
		return nil, C.DB_OPERATION_ERROR(e)
	} else {
		return rs, nil
	}
}

// 患者のエスカレーションを登録する。
//
// 手動アラートとして扱われるため、既存の未確認アラートの有無に関わらず
// 常にcritical区分のアラートが新規作成される。
func (s *AlertTxService) Escalate(patientId int, reason string) (*model.Alert, error) {
	var patient *model.Patient

	if r, e := rds.InquirePatient(s.DB, patientId); e != nil {
		return nil, C.DB_OPERATION_ERROR(e)
	} else if r == nil {
		return nil, C.NewNotFoundError(
			"patient_not_found",
			"Patient is not found",
			map[string]interface{}{"id": patientId},
		)
	} else {
		patient = r
	}

	now := time.Now()

	alert := &model.Alert{
		PatientId:  patient.Id,
		Tier:       string(C.RiskCritical),
		Message:    fmt.Sprintf("Escalation for %s: %s", patient.Name, reason),
		IsManual:   true,
		CreatedAt:  now,
		ModifiedAt: now,
	}

	if e := s.DB.Insert(alert); e != nil {
		return nil, C.DB_OPERATION_ERROR(e)
	}

	return alert, nil
}

// アラートを確認済みにする。
//
// 冪等な操作であり、既に確認済みの場合は状態を変えずにそのまま返す。
func (s *AlertTxService) Acknowledge(alertId int) (*model.Alert, error) {
	var alert *model.Alert

	if r, e := rds.InquireAlert(s.DB, alertId); e != nil {
		return nil, C.DB_OPERATION_ERROR(e)
	} else if r == nil {
		return nil, C.NewNotFoundError(
			"alert_not_found",
			"Alert is not found",
			map[string]interface{}{"id": alertId},
		)
	} else {
		alert = r
	}

	if alert.Acknowledged {
		return alert, nil
	}

	now := time.Now()

	alert.Acknowledged = true
	alert.AcknowledgedAt = &now
	alert.ModifiedAt = now

	if _, e := s.DB.Update(alert); e != nil {
		return nil, C.DB_OPERATION_ERROR(e)
	}

	return alert, nil
}
