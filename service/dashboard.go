package service

import (
	"time"

	"gopkg.in/gorp.v2"

	C "github.com/sepguard/sepguard-server/constant"
	"github.com/sepguard/sepguard-server/model"
	"github.com/sepguard/sepguard-server/resource/rds"
)

type StatsService struct {
	*Service
	DB *gorp.DbMap
}

// ダッシュボード統計を集計する。
//
// 高リスク患者は、最新の評価スコアが既定の下限以上の患者。
// 当日の評価件数は与えられたローカル日付の0時を起点に数える。
func (s *StatsService) Collect(today time.Time) (*model.DashboardStats, error) {
	stats := &model.DashboardStats{}

	if n, e := rds.CountActivePatients(s.DB); e != nil {
		return nil, C.DB_OPERATION_ERROR(e)
	} else {
		stats.ActivePatients = n
	}

	if n, e := rds.CountHighRiskPatients(s.DB, C.HighRiskCutoff); e != nil {
		return nil, C.DB_OPERATION_ERROR(e)
	} else {
		stats.HighRiskCount = n
	}

	critical := string(C.RiskCritical)

	if n, e := rds.CountOpenAlerts(s.DB, &critical); e != nil {
		return nil, C.DB_OPERATION_ERROR(e)
	} else {
		stats.CriticalAlerts = n
	}

	midnight := time.Date(today.Year(), today.Month(), today.Day(), 0, 0, 0, 0, today.Location())

	if n, e := rds.CountAssessmentsSince(s.DB, midnight.UTC()); e != nil {
		return nil, C.DB_OPERATION_ERROR(e)
	} else {
		stats.AssessmentsToday = n
	}

	return stats, nil
}
