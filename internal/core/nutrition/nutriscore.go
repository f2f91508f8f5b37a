package nutrition

import (
	"math"

	"healthscan-api/internal/core/catalog"
)

// kcal → kJ
const kcalToKJ = 4.184

// NutriScore 獨立於個人檔案的營養品質等級
type NutriScore struct {
	Points    int       `json:"points"`
	Grade     string    `json:"grade"`
	Breakdown Breakdown `json:"breakdown"`
}

// Breakdown 分數組成，方便除錯與前端展示
type Breakdown struct {
	Negative int `json:"neg"`
	Positive int `json:"pos"`
	Fiber    int `json:"pfiber"`
	Protein  int `json:"pprotein"`
	FruitVeg int `json:"pfvn"`
}

// 負分梯度（十階，0–10 分）：能量 kJ、糖 g、飽和脂肪 g、鈉 mg
var (
	energyStepsKJ = []float64{335, 670, 1005, 1340, 1675, 2010, 2345, 2680, 3015, 3350}
	sugarSteps    = []float64{4.5, 9, 13.5, 18, 22.5, 27, 31, 36, 40, 45}
	satfatSteps   = []float64{1, 2, 3, 4, 5, 6, 7, 8, 9, 10}
	sodiumStepsMG = []float64{90, 180, 270, 360, 450, 540, 630, 720, 810, 900}
)

// 正分梯度（五階，0–5 分）：纖維 g、蛋白質 g
var (
	fiberSteps   = []float64{0.9, 1.9, 2.8, 3.7, 4.7}
	proteinSteps = []float64{1.6, 3.2, 4.8, 6.4, 8.0}
)

// ladderPoints 遞增門檻梯度：值 ≤ steps[i] 得 i 分，超過最後一階得滿分
func ladderPoints(v float64, steps []float64) int {
	for i, s := range steps {
		if v <= s {
			return i
		}
	}
	return len(steps)
}

func orZero(v *float64) float64 {
	if v == nil {
		return 0
	}
	return *v
}

// Grade 計算 Nutri-Score 式等級
// 純函數：同樣輸入永遠得到同樣輸出，與個人檔案無關
func Grade(nut catalog.NutrientProfile, isBeverage bool) NutriScore {
	energyKJ := orZero(nut.EnergyKcal) * kcalToKJ
	sodiumMG := orZero(nut.SodiumG) * 1000

	neg := ladderPoints(energyKJ, energyStepsKJ) +
		ladderPoints(orZero(nut.SugarsG), sugarSteps) +
		ladderPoints(orZero(nut.SatfatG), satfatSteps) +
		ladderPoints(sodiumMG, sodiumStepsMG)

	pFiber := ladderPoints(orZero(nut.FiberG), fiberSteps)
	pProtein := ladderPoints(orZero(nut.ProteinG), proteinSteps)
	// 蔬果堅果占比目前無資料來源，固定 0 分
	pFruitVeg := 0

	// 負分過高且蔬果分不足時不計蛋白質分，避免高蛋白垃圾食物被拉高
	effectiveProtein := pProtein
	if neg >= 11 && pFruitVeg < 5 {
		effectiveProtein = 0
	}
	pos := pFruitVeg + pFiber + effectiveProtein

	total := neg - pos
	return NutriScore{
		Points: int(math.Round(float64(total))),
		Grade:  gradeLetter(total, isBeverage),
		Breakdown: Breakdown{
			Negative: neg,
			Positive: pos,
			Fiber:    pFiber,
			Protein:  pProtein,
			FruitVeg: pFruitVeg,
		},
	}
}

// gradeLetter 依總分查等級，飲料與一般食品使用不同切點
func gradeLetter(points int, isBeverage bool) string {
	if isBeverage {
		switch {
		case points <= 1:
			return "B"
		case points <= 5:
			return "C"
		case points <= 9:
			return "D"
		default:
			return "E"
		}
	}
	switch {
	case points <= -1:
		return "A"
	case points <= 2:
		return "B"
	case points <= 10:
		return "C"
	case points <= 18:
		return "D"
	default:
		return "E"
	}
}
