package constant

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRisks_Classify(t *testing.T) {
	// 既定閾値での境界値。
	assert.EqualValues(t, RiskCritical, ClassifyRisk(85, 85, 65))
	assert.EqualValues(t, RiskCritical, ClassifyRisk(100, 85, 65))
	assert.EqualValues(t, RiskWarning, ClassifyRisk(84.9, 85, 65))
	assert.EqualValues(t, RiskWarning, ClassifyRisk(65, 85, 65))
	assert.EqualValues(t, RiskInfo, ClassifyRisk(64.9, 85, 65))
	assert.EqualValues(t, RiskInfo, ClassifyRisk(40, 85, 65))
	assert.EqualValues(t, RiskNormal, ClassifyRisk(39.9, 85, 65))
	assert.EqualValues(t, RiskNormal, ClassifyRisk(0, 85, 65))
}

func TestRisks_ClassifyCustomThresholds(t *testing.T) {
	assert.EqualValues(t, RiskCritical, ClassifyRisk(90, 90, 70))
	assert.EqualValues(t, RiskWarning, ClassifyRisk(89.9, 90, 70))
	assert.EqualValues(t, RiskWarning, ClassifyRisk(70, 90, 70))
	assert.EqualValues(t, RiskInfo, ClassifyRisk(69.9, 90, 70))

	// info境界は閾値設定に連動しない。
	assert.EqualValues(t, RiskInfo, ClassifyRisk(40, 90, 70))
	assert.EqualValues(t, RiskNormal, ClassifyRisk(39.9, 90, 70))
}

func TestRisks_RecommendedActions(t *testing.T) {
	actions := RecommendedActions(90)
	assert.EqualValues(t, 4, len(actions))
	assert.EqualValues(t, "Immediate medical attention required", actions[0])

	actions = RecommendedActions(85)
	assert.EqualValues(t, 4, len(actions))

	actions = RecommendedActions(70)
	assert.EqualValues(t, 3, len(actions))
	assert.EqualValues(t, "Monitor closely", actions[0])

	actions = RecommendedActions(50)
	assert.EqualValues(t, 2, len(actions))
	assert.EqualValues(t, "Continue routine monitoring", actions[0])

	actions = RecommendedActions(10)
	assert.EqualValues(t, 1, len(actions))
	assert.EqualValues(t, "Maintain current care plan", actions[0])
}
