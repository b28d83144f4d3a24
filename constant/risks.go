package constant

// リスク区分。
type RiskTier string

const (
	RiskCritical RiskTier = "critical"
	RiskWarning  RiskTier = "warning"
	RiskInfo     RiskTier = "info"
	RiskNormal   RiskTier = "normal"
)

// infoとnormalの境界。設定対象外の固定値。
const infoFloor float64 = 40

// リスクスコアをアラート閾値に照らして区分に変換する。
// 境界値はいずれも高い側の区分に含まれる。
func ClassifyRisk(score float64, criticalThreshold int, warningThreshold int) RiskTier {
	switch {
	case score >= float64(criticalThreshold):
		return RiskCritical
	case score >= float64(warningThreshold):
		return RiskWarning
	case score >= infoFloor:
		return RiskInfo
	default:
		return RiskNormal
	}
}

// 推奨対応の固定バンド。
// 既定のアラート閾値と同じ値だが、閾値設定とは独立した臨床バンドであり連動させない。
var (
	urgentActions = []string{
		"Immediate medical attention required",
		"Contact attending physician",
		"Consider antibiotic therapy",
		"Increase monitoring frequency",
	}

	elevatedActions = []string{
		"Monitor closely",
		"Consider additional testing",
		"Notify medical team",
	}

	routineActions = []string{
		"Continue routine monitoring",
		"Review patient history",
	}

	maintenanceActions = []string{
		"Maintain current care plan",
	}
)

// リスクスコアに応じた推奨対応リストを優先度順に返す。
func RecommendedActions(score float64) []string {
	switch {
	case score >= 85:
		return urgentActions
	case score >= 65:
		return elevatedActions
	case score >= 40:
		return routineActions
	default:
		return maintenanceActions
	}
}
