package catalog

// NutrientProfile 每 100g 營養成分
// 全部欄位皆可缺漏：nil 表示「標示上沒有」，不等於 0
type NutrientProfile struct {
	SugarsG    *float64 `json:"sugars_g"`
	CarbsG     *float64 `json:"carbs_g"`
	SodiumG    *float64 `json:"sodium_g"`
	SaltG      *float64 `json:"salt_g"`
	SatfatG    *float64 `json:"satfat_g"`
	ProteinG   *float64 `json:"protein_g"`
	FatG       *float64 `json:"fat_g"`
	FiberG     *float64 `json:"fiber_g"`
	EnergyKcal *float64 `json:"energy_kcal"`
}

// KnownFields 回傳有值的欄位數（9 個追蹤欄位）
func (n NutrientProfile) KnownFields() int {
	count := 0
	for _, v := range []*float64{
		n.SugarsG, n.CarbsG, n.SodiumG, n.SaltG, n.SatfatG,
		n.ProteinG, n.FatG, n.FiberG, n.EnergyKcal,
	} {
		if v != nil {
			count++
		}
	}
	return count
}

// Item 正規化後的目錄品項，載入後不再修改
type Item struct {
	Barcode   string          `json:"barcode,omitempty"`
	Name      string          `json:"name"`
	Brand     string          `json:"brand"`
	Category  string          `json:"category"`
	Countries []string        `json:"countries"`
	Allergens []string        `json:"allergens"`
	Additives []string        `json:"additives"`
	Nutrition NutrientProfile `json:"nutrition_100g"`
	Image     string          `json:"image,omitempty"`
}

// Store 可購買門市
type Store struct {
	Store      string   `json:"store"`
	District   string   `json:"district"`
	Type       string   `json:"type"`
	Chains     []string `json:"chains"`
	Categories []string `json:"categories"`
}
