package service

import (
	"fmt"
	"time"

	"gopkg.in/gorp.v2"

	C "github.com/sepguard/sepguard-server/constant"
	"github.com/sepguard/sepguard-server/model"
	"github.com/sepguard/sepguard-server/resource/rds"
)

type AssessmentService struct {
	*Service
	DB *gorp.DbMap
}

type AssessmentTxService struct {
	*Service
	DB *gorp.Transaction

	// 評価に用いるエンジン。未設定の場合は標準構成が使われる。
	Engine *RiskEngine
}

// バイタル入力から評価までのパイプラインを一括で実行する。
//
// 正規化、記録の保存、スコアリング、閾値分類、アラート送出、推奨対応の解決を
// この順で行い、全ての永続化は呼び出し元のトランザクションに含まれる。
// いずれかの段階が失敗した場合、途中までの保存内容は残らない。
func (s *AssessmentTxService) Evaluate(
	patientCode string,
	input *VitalsInput,
	automatic bool,
) (*model.EvaluationResult, error) {
	var patient *model.Patient

	if r, e := rds.FetchPatientByCode(s.DB, patientCode); e != nil {
		return nil, C.DB_OPERATION_ERROR(e)
	} else if r == nil {
		return nil, C.UNKNOWN_PATIENT(patientCode)
	} else {
		patient = r
	}

	reading, err := NormalizeReading(patient.Id, input)

	if err != nil {
		return nil, err
	}

	reading.CreatedAt = time.Now()

	if e := s.DB.Insert(reading); e != nil {
		return nil, C.DB_OPERATION_ERROR(e)
	}

	return s.evaluateReading(patient, reading, automatic)
}

// 最新のバイタル記録に対する評価を再実行する。
//
// 新しい記録は作成されず、同一の記録から新しい評価が追加される。
// エンジン構成が変わらない限り、得られるスコアは前回と一致する。
func (s *AssessmentTxService) Retest(patientId int) (*model.EvaluationResult, error) {
	return s.EvaluateLatest(patientId, false)
}

// 最新のバイタル記録から評価を実行する。automaticは評価の契機の区別に使われ、
// 自動評価バッチからの呼び出しではtrueが渡される。
func (s *AssessmentTxService) EvaluateLatest(patientId int, automatic bool) (*model.EvaluationResult, error) {
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

	var reading *model.VitalsReading

	if r, e := rds.FetchLatestVitals(s.DB, patientId); e != nil {
		return nil, C.DB_OPERATION_ERROR(e)
	} else if r == nil {
		return nil, C.NewConflictError(
			"no_vitals_recorded",
			"Patient has no vitals reading to evaluate",
			map[string]interface{}{"id": patientId},
		)
	} else {
		reading = r
	}

	return s.evaluateReading(patient, reading, automatic)
}

func (s *AssessmentTxService) evaluateReading(
	patient *model.Patient,
	reading *model.VitalsReading,
	automatic bool,
) (*model.EvaluationResult, error) {
	engine := s.Engine

	if engine == nil {
		engine = DefaultRiskEngine()
	}

	score, confidence, predictions, err := engine.Score(s.Log, reading)

	if err != nil {
		return nil, err
	}

	assessment := &model.RiskAssessment{
		PatientId:   patient.Id,
		RiskScore:   score,
		Confidence:  confidence,
		IsAutomatic: automatic,
		CreatedAt:   time.Now(),
	}

	if e := rds.InsertAssessment(s.DB, assessment, predictions); e != nil {
		return nil, C.DB_OPERATION_ERROR(e)
	}

	// 閾値は評価開始時点の設定を読み、分類までこの値を用いる。
	policy, err := currentPolicy(s.DB)

	if err != nil {
		return nil, err
	}

	tier := C.ClassifyRisk(score, policy.CriticalThreshold, policy.WarningThreshold)

	alert, err := s.dispatch(patient, tier, score)

	if err != nil {
		return nil, err
	}

	return &model.EvaluationResult{
		Reading:            reading,
		Assessment:         &model.RiskAssessmentEntity{RiskAssessment: assessment, Predictions: predictions},
		Tier:               tier,
		Alert:              alert,
		RecommendedActions: C.RecommendedActions(score),
	}, nil
}

// 分類結果に応じたアラートを送出する。
//
// 対象はcriticalとwarningのみ。同一患者・同一区分の未確認アラートが既に
// 存在する場合は新規作成を抑止し、nilを返す。
func (s *AssessmentTxService) dispatch(
	patient *model.Patient,
	tier C.RiskTier,
	score float64,
) (*model.Alert, error) {
	if tier != C.RiskCritical && tier != C.RiskWarning {
		return nil, nil
	}

	alert := &model.Alert{
		PatientId: patient.Id,
		Tier:      string(tier),
		Message:   fmt.Sprintf("%s: risk score %.1f for %s", tier, score, patient.Name),
		CreatedAt: time.Now(),
	}

	if created, e := rds.InsertAlertUnlessOpen(s.DB, alert); e != nil {
		return nil, C.DB_OPERATION_ERROR(e)
	} else if !created {
		s.Log.Infof("alert suppressed: open %s alert already exists for patient %d", tier, patient.Id)
		return nil, nil
	}

	return alert, nil
}

// 現行の閾値設定を返す。設定未登録の場合は既定値を返す。
func currentPolicy(db model.QueryExecutor) (*model.AlertThresholdPolicy, error) {
	if r, e := rds.FetchCurrentPolicy(db); e != nil {
		return nil, C.DB_OPERATION_ERROR(e)
	} else if r == nil {
		return &model.AlertThresholdPolicy{
			CriticalThreshold:  C.DefaultCriticalThreshold,
			WarningThreshold:   C.DefaultWarningThreshold,
			AudioAlerts:        true,
			EmailNotifications: false,
			SmsAlerts:          false,
		}, nil
	} else {
		return r, nil
	}
}

// 患者の評価履歴を新しい順に取得する。
func (s *AssessmentService) ListHistory(
	patientId int,
	limit int,
) ([]*model.RiskAssessmentEntity, error) {
	if limit <= 0 {
		limit = 10
	}

	if rs, e := rds.ListAssessments(s.DB, patientId, limit); e != nil {
		return nil, C.DB_OPERATION_ERROR(e)
	} else {
		return rs, nil
	}
}

// 患者の最新の評価を個別予測付きで取得する。評価が無い場合はnilを返す。
func (s *AssessmentService) FetchLatest(patientId int) (*model.RiskAssessmentEntity, error) {
	if r, e := rds.FetchLatestAssessment(s.DB, patientId); e != nil {
		return nil, C.DB_OPERATION_ERROR(e)
	} else {
		return r, nil
	}
}

