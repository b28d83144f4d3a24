package constant

import (
	"time"
)

// Language 言語。
type Language string

const (
	LanguageJa Language = "ja" // 日本語。
	LanguageEn Language = "en" // 英語。
)

// バイタル項目。
type VitalField string

const (
	VitalHeartRate        VitalField = "heart_rate"
	VitalTemperature      VitalField = "temperature"
	VitalSystolicBP       VitalField = "systolic_bp"
	VitalDiastolicBP      VitalField = "diastolic_bp"
	VitalOxygenSaturation VitalField = "oxygen_saturation"
	VitalRespiratoryRate  VitalField = "respiratory_rate"
)

// 各バイタル項目の臨床的に妥当な範囲。
type VitalRange struct {
	Min float64
	Max float64
}

var VitalRanges = map[VitalField]VitalRange{
	VitalHeartRate:        VitalRange{30, 200},
	VitalTemperature:      VitalRange{30, 45},
	VitalSystolicBP:       VitalRange{50, 300},
	VitalDiastolicBP:      VitalRange{30, 200},
	VitalOxygenSaturation: VitalRange{70, 100},
	VitalRespiratoryRate:  VitalRange{5, 60},
}

// センサ種別。
type SensorType string

const (
	SensorHeartRate     SensorType = "heart_rate"
	SensorTemperature   SensorType = "temperature"
	SensorBloodPressure SensorType = "blood_pressure"
	SensorOxygen        SensorType = "oxygen"
)

var SensorTypes = []SensorType{
	SensorHeartRate,
	SensorTemperature,
	SensorBloodPressure,
	SensorOxygen,
}

// センサ稼働状態。
type SensorState string

const (
	SensorOnline  SensorState = "online"
	SensorOffline SensorState = "offline"
	SensorError   SensorState = "error"
)

// アラート関連。
const (
	// 既定のアラート閾値。
	DefaultCriticalThreshold int = 85
	DefaultWarningThreshold  int = 65

	// ダッシュボード集計でハイリスクと見なす固定値。
	// 設定可能な警告閾値とは独立した臨床上の定数であり、設定変更に追従しない。
	HighRiskCutoff float64 = 65

	// 自動評価の既定間隔。
	DefaultTestingInterval time.Duration = time.Duration(120) * time.Minute

	// センサがこの時間以上サンプルを送信しない場合、オフラインと見なす。
	SensorSilenceDuration time.Duration = time.Duration(5) * time.Minute
)
