package model

import (
	C "github.com/sepguard/sepguard-server/constant"
)

// 個別モデルの内訳を持つリスク評価。
type RiskAssessmentEntity struct {
	*RiskAssessment
	Predictions []*ModelPrediction `json:"predictions"`
}

// 最新のバイタルと評価を持つ患者。
type PatientEntity struct {
	*Patient
	LatestVitals     *VitalsReading  `json:"latestVitals"`
	LatestAssessment *RiskAssessment `json:"latestAssessment"`
}

// 患者情報付きのアラート。
type AlertEntity struct {
	*Alert
	Patient *Patient `json:"patient"`
}

// 1回の評価パイプラインの出力。表示層はこれを受け取って整形する。
type EvaluationResult struct {
	Reading            *VitalsReading        `json:"reading"`
	Assessment         *RiskAssessmentEntity `json:"assessment"`
	Tier               C.RiskTier            `json:"tier"`
	Alert              *Alert                `json:"alert"`
	RecommendedActions []string              `json:"recommendedActions"`
}

// センサ種別ごとの稼働集計。
type SensorTypeStatus struct {
	SensorType  C.SensorType `json:"sensorType"`
	Online      int          `json:"online"`
	Total       int          `json:"total"`
	StatusClass string       `json:"statusClass"`
}

// ダッシュボード統計。
type DashboardStats struct {
	ActivePatients   int64 `json:"activePatients"`
	HighRiskCount    int64 `json:"highRiskCount"`
	CriticalAlerts   int64 `json:"criticalAlerts"`
	AssessmentsToday int64 `json:"assessmentsToday"`
}
