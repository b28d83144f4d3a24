package model

import (
	"database/sql"
	"time"

	"github.com/sepguard/sepguard-server/lib"
)

// JSON jsonb型カラムの値。
type JSON []byte

// gorp.DbMapとgorp.Transactionの共通インタフェース。
type QueryExecutor interface {
	Get(i interface{}, keys ...interface{}) (interface{}, error)
	Insert(list ...interface{}) error
	Update(list ...interface{}) (int64, error)
	Delete(list ...interface{}) (int64, error)
	Exec(query string, args ...interface{}) (sql.Result, error)
	Query(query string, args ...interface{}) (*sql.Rows, error)
	SelectInt(query string, args ...interface{}) (int64, error)
	SelectNullInt(query string, args ...interface{}) (sql.NullInt64, error)
	SelectOne(holder interface{}, query string, args ...interface{}) error
}

// 患者。
type Patient struct {
	Id            int       `db:"id" json:"id"`
	Code          string    `db:"code" json:"code"`
	Name          string    `db:"name" json:"name"`
	Room          *string   `db:"room" json:"room"`
	Age           *int      `db:"age" json:"age"`
	Status        string    `db:"status" json:"status"`
	AdmissionDate time.Time `db:"admission_date" json:"admissionDate"`
	CreatedAt     time.Time `db:"created_at" json:"createdAt"`
	ModifiedAt    time.Time `db:"modified_at" json:"modifiedAt"`
}

// バイタル記録。派生値であるMAPは登録時に計算され、以後変更されない。
type VitalsReading struct {
	Id                   int       `db:"id" json:"id"`
	PatientId            int       `db:"patient_id" json:"patientId"`
	HeartRate            *float64  `db:"heart_rate" json:"heartRate"`
	Temperature          *float64  `db:"temperature" json:"temperature"`
	SystolicBp           *float64  `db:"systolic_bp" json:"systolicBp"`
	DiastolicBp          *float64  `db:"diastolic_bp" json:"diastolicBp"`
	OxygenSaturation     *float64  `db:"oxygen_saturation" json:"oxygenSaturation"`
	RespiratoryRate      *float64  `db:"respiratory_rate" json:"respiratoryRate"`
	MeanArterialPressure *float64  `db:"mean_arterial_pressure" json:"meanArterialPressure"`
	MeasuredAt           time.Time `db:"measured_at" json:"measuredAt"`
	CreatedAt            time.Time `db:"created_at" json:"createdAt"`
}

// リスク評価。作成後は変更されない。
type RiskAssessment struct {
	Id          int       `db:"id" json:"id"`
	PatientId   int       `db:"patient_id" json:"patientId"`
	RiskScore   float64   `db:"risk_score" json:"riskScore"`
	Confidence  float64   `db:"confidence" json:"confidence"`
	IsAutomatic bool      `db:"is_automatic" json:"isAutomatic"`
	CreatedAt   time.Time `db:"created_at" json:"createdAt"`
}

// 評価に寄与した個別モデルの予測。Seqは予測器の登録順。
type ModelPrediction struct {
	Id           int     `db:"id" json:"id"`
	AssessmentId int     `db:"assessment_id" json:"assessmentId"`
	Seq          int     `db:"seq" json:"seq"`
	ModelName    string  `db:"model_name" json:"modelName"`
	Prediction   float64 `db:"prediction" json:"prediction"`
	Confidence   float64 `db:"confidence" json:"confidence"`
}

// アラート。acknowledgedは一方向にのみ遷移する。
type Alert struct {
	Id             int        `db:"id" json:"id"`
	PatientId      int        `db:"patient_id" json:"patientId"`
	Tier           string     `db:"tier" json:"tier"`
	Message        string     `db:"message" json:"message"`
	IsManual       bool       `db:"is_manual" json:"isManual"`
	Acknowledged   bool       `db:"acknowledged" json:"acknowledged"`
	AcknowledgedAt *time.Time `db:"acknowledged_at" json:"acknowledgedAt"`
	CreatedAt      time.Time  `db:"created_at" json:"createdAt"`
	ModifiedAt     time.Time  `db:"modified_at" json:"modifiedAt"`
}

// アラート閾値設定。プロセス全体で1行のみを現行設定とする。
type AlertThresholdPolicy struct {
	Id                 int       `db:"id" json:"id"`
	CriticalThreshold  int       `db:"critical_threshold" json:"criticalThreshold"`
	WarningThreshold   int       `db:"warning_threshold" json:"warningThreshold"`
	AudioAlerts        bool      `db:"audio_alerts" json:"audioAlerts"`
	EmailNotifications bool      `db:"email_notifications" json:"emailNotifications"`
	SmsAlerts          bool      `db:"sms_alerts" json:"smsAlerts"`
	ModifiedAt         time.Time `db:"modified_at" json:"modifiedAt"`
}

// ベッドサイドセンサ。Metaはベンダ固有の任意JSON。
type SensorDevice struct {
	Id          int       `db:"id" json:"id"`
	PatientId   int       `db:"patient_id" json:"patientId"`
	Code        string    `db:"code" json:"code"`
	SensorType  string    `db:"sensor_type" json:"sensorType"`
	Status      string    `db:"status" json:"status"`
	Meta        JSON      `db:"meta" json:"meta"`
	LastUpdated time.Time `db:"last_updated" json:"lastUpdated"`
}

// 自動評価スケジュール。次回実行時刻は外部のバッチが進める。
type TestingSchedule struct {
	Id              int        `db:"id" json:"id"`
	IntervalMinutes int        `db:"interval_minutes" json:"intervalMinutes"`
	LastRun         *time.Time `db:"last_run" json:"lastRun"`
	NextRun         *time.Time `db:"next_run" json:"nextRun"`
	ModifiedAt      time.Time  `db:"modified_at" json:"modifiedAt"`
}

var tables = []struct {
	prototype interface{}
	name      string
}{
	{Patient{}, "patient"},
	{VitalsReading{}, "vitals_reading"},
	{RiskAssessment{}, "risk_assessment"},
	{ModelPrediction{}, "model_prediction"},
	{Alert{}, "alert"},
	{AlertThresholdPolicy{}, "alert_threshold_policy"},
	{SensorDevice{}, "sensor_device"},
	{TestingSchedule{}, "testing_schedule"},
}

func SetupModels() {
	for _, key := range []string{lib.WriteDBKey, lib.ReadDBKey} {
		db := lib.GetDB(key)
		if db == nil {
			continue
		}
		for _, t := range tables {
			db.AddTableWithName(t.prototype, t.name).SetKeys(true, "Id")
		}
	}

	lib.RegisterPointType(func() lib.Point { return &SensorSample{} })
}
