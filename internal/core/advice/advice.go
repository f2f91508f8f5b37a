package advice

import (
	"fmt"

	"healthscan-api/internal/core/label"
	"healthscan-api/internal/core/nutrition"
	"healthscan-api/internal/core/profile"
)

// 各項評估狀態
const (
	StatusGood     = "good"
	StatusModerate = "moderate"
	StatusHigh     = "high"
	StatusLow      = "low"
	StatusMany     = "many"
	StatusOK       = "ok"
	StatusUnknown  = "unknown"
)

// Assessment 單一營養項目對比個人門檻的結果
type Assessment struct {
	Name    string   `json:"name"`
	Value   *float64 `json:"value,omitempty"`
	Status  string   `json:"status"`
	Comment string   `json:"comment,omitempty"`
}

// Advice 掃描標籤對比個人門檻的整體建議
type Advice struct {
	Overall     string             `json:"overall"`
	Assessments []Assessment       `json:"assessments"`
	Thresholds  profile.Thresholds `json:"thresholds"`
	Transfat    bool               `json:"transfat"`
}

// assessCap 上限型營養：≤good 為 good，≤high 為 moderate，其餘 high
// 缺值回 unknown，不參與整體判級
func assessCap(name string, v *float64, good, high float64, unit string) Assessment {
	a := Assessment{Name: name, Value: v}
	if v == nil {
		a.Status = StatusUnknown
		return a
	}
	switch {
	case *v <= good:
		a.Status = StatusGood
	case *v <= high:
		a.Status = StatusModerate
		a.Comment = fmt.Sprintf("Above your target of %.0f%s", good, unit)
	default:
		a.Status = StatusHigh
		a.Comment = fmt.Sprintf("Well above your target of %.0f%s", good, unit)
	}
	return a
}

// assessFloor 下限型營養：≥min 為 good，其餘 low（不影響整體判級）
func assessFloor(name string, v *float64, min float64, unit string) Assessment {
	a := Assessment{Name: name, Value: v}
	if v == nil {
		a.Status = StatusUnknown
		return a
	}
	if *v >= min {
		a.Status = StatusGood
		return a
	}
	a.Status = StatusLow
	a.Comment = fmt.Sprintf("Below your target of %.0f%s", min, unit)
	return a
}

// Evaluate 對比標籤數值與個人門檻，產出逐項評估與整體等級
// 整體判級：反式脂肪或 ≥2 項 high 直接 Avoid，任一 high 為 Limit，
// 任一 moderate 為 Consider carefully，其餘 Suitable
func Evaluate(m label.Metrics, t profile.Thresholds) Advice {
	assessments := []Assessment{
		assessCap("sugar", m.SugarsG, t.SugarGoodG, t.SugarHighG, "g"),
		assessCap("sodium", m.SodiumMG, t.SodiumGoodMG, t.SodiumHighMG, "mg"),
		assessCap("saturated_fat", m.SatfatG, t.SatfatGoodG, t.SatfatHighG, "g"),
		assessFloor("protein", m.ProteinG, t.ProteinMinG, "g"),
		assessFloor("fiber", m.FiberG, t.FiberMinG, "g"),
		assessAdditives(m.AdditivesCount, t.AdditivesMax),
	}

	highs, moderates := 0, 0
	for _, a := range assessments {
		switch a.Status {
		case StatusHigh, StatusMany:
			highs++
		case StatusModerate:
			moderates++
		}
	}

	overall := nutrition.LevelSuitable
	switch {
	case m.TransfatFlag || highs >= 2:
		overall = nutrition.LevelAvoid
	case highs >= 1:
		overall = nutrition.LevelLimit
	case moderates >= 1:
		overall = nutrition.LevelConsider
	}

	return Advice{
		Overall:     overall,
		Assessments: assessments,
		Thresholds:  t,
		Transfat:    m.TransfatFlag,
	}
}

func assessAdditives(count, max int) Assessment {
	v := float64(count)
	a := Assessment{Name: "additives", Value: &v}
	if count > max {
		a.Status = StatusMany
		a.Comment = fmt.Sprintf("More than your target of %d additives", max)
		return a
	}
	a.Status = StatusOK
	return a
}
