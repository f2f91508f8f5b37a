package catalog

import (
	"encoding/json"
	"os"
	"strconv"
	"strings"

	"healthscan-api/internal/pkg/common"

	"go.uber.org/zap"
)

// 最少要有 3 個營養欄位才值得評分
const minKnownNutrients = 3

// sodium(g) ≈ salt(g) × 0.393
const saltToSodium = 0.393

// LoadCatalog 讀取目錄檔並正規化
// 目錄是輔助資料：檔案缺失或格式錯誤只記警告，回傳空目錄，絕不中斷啟動
func LoadCatalog(path string) []Item {
	data, err := os.ReadFile(path)
	if err != nil {
		common.LogWarn("Catalog file not found, recommendations disabled",
			zap.String("path", path),
			zap.Error(err),
		)
		return nil
	}
	return ParseCatalog(data)
}

// ParseCatalog 解析目錄 JSON（兩種來源格式擇一）
func ParseCatalog(data []byte) []Item {
	var raw []json.RawMessage
	if err := common.ParseJSONBytes(data, &raw); err != nil {
		common.LogWarn("Catalog file is not a JSON array, empty catalog returned", zap.Error(err))
		return nil
	}
	if len(raw) == 0 {
		common.LogWarn("Catalog file is empty")
		return nil
	}

	// 格式偵測只做一次：首筆帶 nutrition_100g / eligible 即視為舊格式
	if isLegacySchema(raw[0]) {
		items := parseLegacyCatalog(raw)
		common.LogInfo("Catalog loaded (legacy format)", zap.Int("items", len(items)))
		return items
	}
	items := parseOFFCatalog(raw)
	common.LogInfo("Catalog loaded (OFF format)", zap.Int("items", len(items)))
	return items
}

// isLegacySchema 依第一筆資料的形狀判斷來源格式
func isLegacySchema(first json.RawMessage) bool {
	var probe map[string]json.RawMessage
	if err := json.Unmarshal(first, &probe); err != nil {
		return false
	}
	if _, ok := probe["nutrition_100g"]; ok {
		return true
	}
	_, ok := probe["eligible"]
	return ok
}

// legacyRecord 舊版目錄格式（health_catalog.json）
type legacyRecord struct {
	Eligible  *bool                      `json:"eligible"`
	Barcode   flexString                 `json:"barcode"`
	Name      string                     `json:"name"`
	Brand     string                     `json:"brand"`
	Category  string                     `json:"category"`
	Countries []string                   `json:"countries"`
	Allergens stringList                 `json:"allergens"`
	Additives stringList                 `json:"additives"`
	Nutrition map[string]json.RawMessage `json:"nutrition_100g"`
	Image     flexString                 `json:"image"`
}

func parseLegacyCatalog(raw []json.RawMessage) []Item {
	out := make([]Item, 0, len(raw))
	for _, r := range raw {
		var rec legacyRecord
		if err := json.Unmarshal(r, &rec); err != nil {
			// 單筆壞資料只跳過，不中斷整批載入
			continue
		}
		if rec.Eligible != nil && !*rec.Eligible {
			continue
		}
		name := strings.TrimSpace(rec.Name)
		brand := strings.TrimSpace(rec.Brand)
		if name == "" && brand == "" {
			continue
		}
		nut := NutrientProfile{
			SugarsG:    rawFloat(rec.Nutrition["sugars_g"]),
			CarbsG:     rawFloat(rec.Nutrition["carbs_g"]),
			SodiumG:    rawFloat(rec.Nutrition["sodium_g"]),
			SaltG:      rawFloat(rec.Nutrition["salt_g"]),
			SatfatG:    rawFloat(rec.Nutrition["satfat_g"]),
			ProteinG:   rawFloat(rec.Nutrition["protein_g"]),
			FatG:       rawFloat(rec.Nutrition["fat_g"]),
			FiberG:     rawFloat(rec.Nutrition["fiber_g"]),
			EnergyKcal: rawFloat(rec.Nutrition["energy_kcal"]),
		}
		if nut.KnownFields() < minKnownNutrients {
			continue
		}
		out = append(out, Item{
			Barcode:   string(rec.Barcode),
			Name:      name,
			Brand:     brand,
			Category:  strings.ToLower(strings.TrimSpace(rec.Category)),
			Countries: rec.Countries,
			Allergens: rec.Allergens,
			Additives: rec.Additives,
			Nutrition: nut,
			Image:     string(rec.Image),
		})
	}
	return out
}

// offRecord OpenFoodFacts 匯出格式
type offRecord struct {
	Barcode           flexString                 `json:"barcode"`
	Name              string                     `json:"name"`
	Brand             string                     `json:"brand"`
	Category          string                     `json:"category"`
	CategoriesTags    []string                   `json:"categories_tags"`
	CountriesTags     []string                   `json:"countries_tags"`
	Allergens         stringList                 `json:"allergens"`
	Additives         stringList                 `json:"additives"`
	Nutrition         map[string]json.RawMessage `json:"nutrition"`
	ImageURL          flexString                 `json:"image_url"`
	ImageFrontURL     flexString                 `json:"image_front_url"`
	ImageNutritionURL flexString                 `json:"image_nutrition_url"`
	SelectedImages    struct {
		Front struct {
			Display flexString `json:"display"`
			Small   flexString `json:"small"`
			Thumb   flexString `json:"thumb"`
		} `json:"front"`
	} `json:"selected_images"`
}

func parseOFFCatalog(raw []json.RawMessage) []Item {
	out := make([]Item, 0, len(raw))
	for _, r := range raw {
		var rec offRecord
		if err := json.Unmarshal(r, &rec); err != nil {
			continue
		}
		name := strings.TrimSpace(rec.Name)
		brand := strings.TrimSpace(rec.Brand)
		if name == "" && brand == "" {
			continue
		}
		nut := extractOFFNutrition(rec.Nutrition)
		if nut.KnownFields() < minKnownNutrients {
			continue
		}
		out = append(out, Item{
			Barcode:   string(rec.Barcode),
			Name:      name,
			Brand:     brand,
			Category:  offCategory(rec),
			Countries: stripTagPrefixes(rec.CountriesTags),
			Allergens: rec.Allergens,
			Additives: rec.Additives,
			Nutrition: nut,
			Image:     offImage(rec),
		})
	}
	return out
}

// extractOFFNutrition 以多組替代鍵名探測數值，第一個有值的鍵勝出
func extractOFFNutrition(n map[string]json.RawMessage) NutrientProfile {
	probe := func(key string) *float64 {
		for _, k := range []string{key + "_100g", key, key + "-100g", key + "_value"} {
			if raw, ok := n[k]; ok {
				if v := rawFloat(raw); v != nil {
					return v
				}
			}
		}
		return nil
	}

	nut := NutrientProfile{
		SugarsG:    probe("sugars"),
		CarbsG:     probe("carbohydrates"),
		SodiumG:    probe("sodium"),
		SaltG:      probe("salt"),
		SatfatG:    probe("saturated-fat"),
		ProteinG:   probe("proteins"),
		FatG:       probe("fat"),
		FiberG:     probe("fiber"),
		EnergyKcal: probe("energy-kcal"),
	}

	// 缺鈉時由鹽換算
	if nut.SodiumG == nil && nut.SaltG != nil {
		sodium := *nut.SaltG * saltToSodium
		nut.SodiumG = &sodium
	}
	return nut
}

// offCategory 優先取顯式欄位，否則取冒號路徑標籤的最後一段
func offCategory(rec offRecord) string {
	cat := strings.TrimSpace(rec.Category)
	if cat == "" && len(rec.CategoriesTags) > 0 {
		last := rec.CategoriesTags[len(rec.CategoriesTags)-1]
		if idx := strings.Index(last, ":"); idx >= 0 {
			last = last[idx+1:]
		}
		cat = last
	}
	return strings.ToLower(strings.TrimSpace(cat))
}

// offImage 顯式 URL 優先，否則取 selected_images front 裡最好的一張
func offImage(rec offRecord) string {
	for _, img := range []string{
		string(rec.ImageURL),
		string(rec.ImageFrontURL),
		string(rec.ImageNutritionURL),
		string(rec.SelectedImages.Front.Display),
		string(rec.SelectedImages.Front.Small),
		string(rec.SelectedImages.Front.Thumb),
	} {
		if img != "" {
			return img
		}
	}
	return ""
}

func stripTagPrefixes(tags []string) []string {
	out := make([]string, 0, len(tags))
	for _, t := range tags {
		if idx := strings.LastIndex(t, ":"); idx >= 0 {
			t = t[idx+1:]
		}
		out = append(out, t)
	}
	return out
}

// LoadStores 讀取門市清單，錯誤同樣只降級
func LoadStores(path string) []Store {
	data, err := os.ReadFile(path)
	if err != nil {
		common.LogWarn("Stores file not found",
			zap.String("path", path),
			zap.Error(err),
		)
		return nil
	}
	return ParseStores(data)
}

// ParseStores 解析門市 JSON
func ParseStores(data []byte) []Store {
	var raw []Store
	if err := common.ParseJSONBytes(data, &raw); err != nil {
		common.LogWarn("Stores file is malformed, empty store list returned", zap.Error(err))
		return nil
	}
	out := make([]Store, 0, len(raw))
	for _, s := range raw {
		if s.Type == "" {
			s.Type = "supermarket"
		}
		s.Chains = lowerAll(s.Chains)
		s.Categories = lowerAll(s.Categories)
		out = append(out, s)
	}
	common.LogInfo("Stores loaded", zap.Int("entries", len(out)))
	return out
}

func lowerAll(values []string) []string {
	out := make([]string, len(values))
	for i, v := range values {
		out[i] = strings.ToLower(v)
	}
	return out
}

// ---------- 寬鬆型別：目錄來源的欄位型別並不穩定 ----------

// flexString 接受字串或數字，其他型別視為空
type flexString string

func (f *flexString) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		*f = flexString(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(data, &n); err == nil {
		*f = flexString(n.String())
		return nil
	}
	*f = ""
	return nil
}

// stringList 接受字串陣列或單一字串
type stringList []string

func (l *stringList) UnmarshalJSON(data []byte) error {
	var list []string
	if err := json.Unmarshal(data, &list); err == nil {
		*l = list
		return nil
	}
	var s string
	if err := json.Unmarshal(data, &s); err == nil && strings.TrimSpace(s) != "" {
		*l = []string{s}
		return nil
	}
	*l = nil
	return nil
}

// rawFloat 寬鬆數值解析：支援數字、"12,5" 這類字串，解析失敗回 nil
func rawFloat(raw json.RawMessage) *float64 {
	if len(raw) == 0 || string(raw) == "null" {
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(raw, &n); err == nil {
		if v, err := n.Float64(); err == nil {
			return &v
		}
	}
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		s = strings.ReplaceAll(strings.TrimSpace(s), ",", ".")
		if v, err := strconv.ParseFloat(s, 64); err == nil {
			return &v
		}
	}
	return nil
}
