package advice

import (
	"testing"

	"healthscan-api/internal/core/label"
	"healthscan-api/internal/core/nutrition"
	"healthscan-api/internal/core/profile"

	"github.com/stretchr/testify/assert"
)

func f(v float64) *float64 { return &v }

func defaults() profile.Thresholds {
	return profile.TargetsFor(&profile.HealthProfile{})
}

func findAssessment(t *testing.T, a Advice, name string) Assessment {
	t.Helper()
	for _, item := range a.Assessments {
		if item.Name == name {
			return item
		}
	}
	t.Fatalf("assessment %q not found", name)
	return Assessment{}
}

func TestEvaluateAllGood(t *testing.T) {
	m := label.Metrics{
		SugarsG:  f(3),
		SodiumMG: f(100),
		SatfatG:  f(1),
		ProteinG: f(8),
		FiberG:   f(4),
	}
	a := Evaluate(m, defaults())
	assert.Equal(t, nutrition.LevelSuitable, a.Overall)
	for _, item := range a.Assessments {
		assert.Contains(t, []string{StatusGood, StatusOK}, item.Status, "assessment %s", item.Name)
	}
}

func TestEvaluateModerateSodiumIsConsider(t *testing.T) {
	// 鈉 500mg 在預設門檻 400/600 之間 → moderate → 整體 Consider carefully
	m := label.Metrics{SodiumMG: f(500)}
	a := Evaluate(m, defaults())
	assert.Equal(t, StatusModerate, findAssessment(t, a, "sodium").Status)
	assert.Equal(t, nutrition.LevelConsider, a.Overall)
}

func TestEvaluateSingleHighIsLimit(t *testing.T) {
	m := label.Metrics{SugarsG: f(20)}
	a := Evaluate(m, defaults())
	assert.Equal(t, StatusHigh, findAssessment(t, a, "sugar").Status)
	assert.Equal(t, nutrition.LevelLimit, a.Overall)
}

func TestEvaluateTwoHighsIsAvoid(t *testing.T) {
	m := label.Metrics{SugarsG: f(20), SodiumMG: f(900)}
	a := Evaluate(m, defaults())
	assert.Equal(t, nutrition.LevelAvoid, a.Overall)
}

func TestEvaluateTransfatIsAvoid(t *testing.T) {
	// 反式脂肪一票否決，其他項目再好也擋不住
	m := label.Metrics{SugarsG: f(1), TransfatFlag: true}
	a := Evaluate(m, defaults())
	assert.Equal(t, nutrition.LevelAvoid, a.Overall)
	assert.True(t, a.Transfat)
}

func TestEvaluateLowProteinDoesNotLowerOverall(t *testing.T) {
	// 下限型營養不足只提示，不拉低整體等級
	m := label.Metrics{ProteinG: f(2), FiberG: f(1)}
	a := Evaluate(m, defaults())
	assert.Equal(t, StatusLow, findAssessment(t, a, "protein").Status)
	assert.Equal(t, StatusLow, findAssessment(t, a, "fiber").Status)
	assert.Equal(t, nutrition.LevelSuitable, a.Overall)
}

func TestEvaluateAdditives(t *testing.T) {
	m := label.Metrics{AdditivesCount: 6}
	a := Evaluate(m, defaults())
	assert.Equal(t, StatusMany, findAssessment(t, a, "additives").Status)
	// 添加物超標與 high 同權重
	assert.Equal(t, nutrition.LevelLimit, a.Overall)
}

func TestEvaluateMissingValuesAreUnknown(t *testing.T) {
	a := Evaluate(label.Metrics{}, defaults())
	assert.Equal(t, StatusUnknown, findAssessment(t, a, "sugar").Status)
	assert.Equal(t, StatusUnknown, findAssessment(t, a, "sodium").Status)
	// 什麼都不知道時不能宣稱有問題
	assert.Equal(t, nutrition.LevelSuitable, a.Overall)
}

func TestEvaluatePersonalizedThresholds(t *testing.T) {
	// 高血壓收緊鈉門檻：同樣 300mg 從 good 變 moderate
	m := label.Metrics{SodiumMG: f(300)}

	a := Evaluate(m, defaults())
	assert.Equal(t, StatusGood, findAssessment(t, a, "sodium").Status)

	tight := profile.TargetsFor(&profile.HealthProfile{
		Conditions: profile.Conditions{Selected: []string{"hypertension"}},
	})
	a = Evaluate(m, tight)
	assert.Equal(t, StatusModerate, findAssessment(t, a, "sodium").Status)
}
