package label

import (
	"math"
	"regexp"
	"strconv"
	"strings"
)

// Label 掃描標籤的解析結果（上游 OCR/VLM 產出，本服務只消費）
type Label struct {
	Language       string         `json:"language,omitempty"`
	IngredientsRaw string         `json:"ingredients_raw,omitempty"`
	Ingredients    []Ingredient   `json:"ingredients,omitempty"`
	NutritionFacts NutritionFacts `json:"nutrition_facts,omitempty"`
	Warnings       []string       `json:"warnings,omitempty"`
}

// Ingredient 單一成分
type Ingredient struct {
	Name       string   `json:"name"`
	Percentage *float64 `json:"percentage,omitempty"`
	IsAllergen bool     `json:"is_allergen,omitempty"`
	Notes      string   `json:"notes,omitempty"`
}

// NutritionFacts 標籤上的營養標示（每份）
type NutritionFacts struct {
	ServingSize          string     `json:"serving_size,omitempty"`
	ServingsPerContainer string     `json:"servings_per_container,omitempty"`
	Calories             string     `json:"calories,omitempty"`
	Nutrients            []Nutrient `json:"nutrients,omitempty"`
}

// Nutrient 營養標示的一列
type Nutrient struct {
	Name              string `json:"name"`
	Amount            string `json:"amount"`
	Unit              string `json:"unit"`
	DailyValuePercent string `json:"daily_value_percent,omitempty"`
}

// Metrics 從標籤萃取的每份營養數值（與每 100g 的目錄數值不可混用）
type Metrics struct {
	ServingSize    string   `json:"serving_size,omitempty"`
	SugarsG        *float64 `json:"sugars_g"`
	SodiumMG       *float64 `json:"sodium_mg"`
	SatfatG        *float64 `json:"satfat_g"`
	ProteinG       *float64 `json:"protein_g"`
	FiberG         *float64 `json:"fiber_g"`
	Kcal           *float64 `json:"kcal"`
	AdditivesCount int      `json:"additives_count"`
	TransfatFlag   bool     `json:"transfat_flag"`
}

// Text 回傳標籤的可搜尋文字（原始成分 + 解析出的成分名），供類別猜測
func (l *Label) Text() string {
	if l == nil {
		return ""
	}
	parts := []string{strings.ToLower(l.IngredientsRaw)}
	for _, ing := range l.Ingredients {
		parts = append(parts, strings.ToLower(ing.Name))
	}
	return strings.Join(parts, " ")
}

var numberPattern = regexp.MustCompile(`[-+]?\d+(?:[.,]\d+)?`)

// safeFloat 從任意字串撈出第一個數字，逗號小數點也接受
func safeFloat(s string) *float64 {
	m := numberPattern.FindString(s)
	if m == "" {
		return nil
	}
	m = strings.ReplaceAll(m, ",", ".")
	v, err := strconv.ParseFloat(m, 64)
	if err != nil {
		return nil
	}
	return &v
}

func round2(v float64) float64 { return math.Round(v*100) / 100 }

func round3(v float64) float64 { return math.Round(v*1000) / 1000 }

// findAmount 以關鍵字在營養列中找數值並轉換單位（to: "g" 或 "mg"）
func (l *Label) findAmount(keys []string, to string) *float64 {
	for _, n := range l.NutritionFacts.Nutrients {
		name := strings.ToLower(n.Name)
		matched := false
		for _, k := range keys {
			if strings.Contains(name, k) {
				matched = true
				break
			}
		}
		if !matched {
			continue
		}
		amt := safeFloat(n.Amount)
		if amt == nil {
			return nil
		}
		unit := strings.ToLower(strings.TrimSpace(n.Unit))
		v := *amt
		switch to {
		case "mg":
			if unit == "g" {
				v = round2(v * 1000)
			}
		case "g":
			if unit == "mg" {
				v = round3(v / 1000)
			}
		}
		return &v
	}
	return nil
}

// ExtractMetrics 萃取每份營養數值與成分啟發式指標
func (l *Label) ExtractMetrics() Metrics {
	if l == nil {
		return Metrics{}
	}
	return Metrics{
		ServingSize:    l.NutritionFacts.ServingSize,
		SugarsG:        l.findAmount([]string{"sugars", "đường"}, "g"),
		SodiumMG:       l.findAmount([]string{"sodium", "natri"}, "mg"),
		SatfatG:        l.findAmount([]string{"saturated", "bão hòa", "bão hoà"}, "g"),
		ProteinG:       l.findAmount([]string{"protein", "đạm"}, "g"),
		FiberG:         l.findAmount([]string{"fiber", "chất xơ"}, "g"),
		Kcal:           safeFloat(l.NutritionFacts.Calories),
		AdditivesCount: l.additivesCount(),
		TransfatFlag:   l.hasTransfat(),
	}
}

var eNumberPatterns = []*regexp.Regexp{
	regexp.MustCompile(`\be-?\s?\d{3}[a-z]?\b`),
	regexp.MustCompile(`\be\d{3}[a-z]?\b`),
}

// 成分表裡常見的添加物字眼（越南文 + 英文）
var additiveKeywords = []string{
	"chất điều vị", "chất bảo quản", "phẩm màu", "phẩm mầu", "tạo ngọt",
	"hương liệu", "emulsifier", "preservative", "colour", "color", "stabilizer",
	"regulator", "thickener", "acidulant", "antioxidant", "sweetener",
}

// additivesCount 粗估添加物數量：E 編號 + 關鍵字出現次數
func (l *Label) additivesCount() int {
	raw := strings.ToLower(l.IngredientsRaw)
	count := 0
	for _, p := range eNumberPatterns {
		count += len(p.FindAllString(raw, -1))
	}
	for _, kw := range additiveKeywords {
		count += strings.Count(raw, kw)
	}
	return count
}

var transfatKeywords = []string{
	"trans fat", "dầu hydro hóa", "hydrogenated", "partially hydrogenated",
	"shortening", "béo chuyển hóa", "béo chuyển hoá",
}

// hasTransfat 成分表是否出現反式脂肪相關字眼
func (l *Label) hasTransfat() bool {
	raw := strings.ToLower(l.IngredientsRaw)
	for _, kw := range transfatKeywords {
		if strings.Contains(raw, kw) {
			return true
		}
	}
	return false
}
