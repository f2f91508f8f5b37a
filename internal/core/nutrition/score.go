package nutrition

import (
	"strings"

	"healthscan-api/internal/core/catalog"
)

// 個人化健康分數滿分（展示用）
const HealthScoreMax = 8.0

// 健康等級四檔，下界皆含
const (
	LevelSuitable = "Suitable"
	LevelConsider = "Consider carefully"
	LevelLimit    = "Limit"
	LevelAvoid    = "Avoid"
)

// 目標關鍵字：蛋白質加分只在目標文字命中時生效
var proteinGoalKeywords = []string{"tăng cơ", "muscle", "protein", "giảm mỡ", "fat loss", "no lâu", "satiety"}

// 目標關鍵字：纖維加分
var fiberGoalKeywords = []string{"tiêu hoá", "digestion", "giảm cân", "weight loss", "ít đói"}

// scoreRule 單一評分規則：純函數，回傳分數調整與理由（理由可為空）
// 規則不可互相依賴，缺漏欄位時整條規則跳過
type scoreRule func(item catalog.Item, goals string) (delta float64, reason string, applied bool)

// scoreRules 規則清單，順序即套用順序（理由列表的順序由此決定）
var scoreRules = []scoreRule{
	sugarRule,
	sodiumRule,
	satfatRule,
	proteinRule,
	fiberRule,
	snackEnergyRule,
}

func sugarRule(item catalog.Item, _ string) (float64, string, bool) {
	sugar := item.Nutrition.SugarsG
	if sugar == nil {
		return 0, "", false
	}
	switch {
	case *sugar <= 5:
		return 2, "Low sugar (≤5g/100g)", true
	case *sugar <= 8:
		return 1, "Medium sugar", true
	default:
		return -1, "High sugar", true
	}
}

func sodiumRule(item catalog.Item, _ string) (float64, string, bool) {
	sodium := item.Nutrition.SodiumG
	if sodium == nil {
		return 0, "", false
	}
	switch {
	case *sodium <= 0.12:
		return 2, "Low sodium (≤120mg/100g)", true
	case *sodium > 0.4:
		return -1, "High sodium", true
	default:
		return 0, "", false
	}
}

// 飽和脂肪只調分數，不產生理由
func satfatRule(item catalog.Item, _ string) (float64, string, bool) {
	satfat := item.Nutrition.SatfatG
	if satfat == nil {
		return 0, "", false
	}
	switch {
	case *satfat <= 3:
		return 1, "", true
	case *satfat > 5:
		return -1, "", true
	default:
		return 0, "", false
	}
}

func proteinRule(item catalog.Item, goals string) (float64, string, bool) {
	protein := item.Nutrition.ProteinG
	if protein == nil || !containsAny(goals, proteinGoalKeywords) {
		return 0, "", false
	}
	if *protein >= 10 {
		return 2, "High protein (≥10g/100g)", true
	}
	return 0, "", false
}

func fiberRule(item catalog.Item, goals string) (float64, string, bool) {
	fiber := item.Nutrition.FiberG
	if fiber == nil || !containsAny(goals, fiberGoalKeywords) {
		return 0, "", false
	}
	if *fiber >= 5 {
		return 1, "Notable fiber (≥5g/100g)", true
	}
	return 0, "", false
}

func snackEnergyRule(item catalog.Item, _ string) (float64, string, bool) {
	kcal := item.Nutrition.EnergyKcal
	if kcal == nil {
		return 0, "", false
	}
	if catalog.BucketOf(item.Category) == catalog.BucketSnack && *kcal > 480 {
		return -1, "High energy for a snack", true
	}
	return 0, "", false
}

func containsAny(text string, keywords []string) bool {
	text = strings.ToLower(text)
	for _, k := range keywords {
		if strings.Contains(text, k) {
			return true
		}
	}
	return false
}

// ScoreItem 計算個人化健康分數與理由
// 任何營養欄位缺漏時該條規則直接跳過，不加分也不扣分，絕不出錯
func ScoreItem(item catalog.Item, goalsText string) (float64, []string) {
	score := 0.0
	reasons := []string{}
	for _, rule := range scoreRules {
		delta, reason, applied := rule(item, goalsText)
		if !applied {
			continue
		}
		score += delta
		if reason != "" {
			reasons = append(reasons, reason)
		}
	}
	return score, reasons
}

// HealthLevel 分數映射到四檔等級，邊界含下界，全實數覆蓋無縫隙
func HealthLevel(score float64) string {
	switch {
	case score >= 5.0:
		return LevelSuitable
	case score >= 3.0:
		return LevelConsider
	case score >= 1.0:
		return LevelLimit
	default:
		return LevelAvoid
	}
}
