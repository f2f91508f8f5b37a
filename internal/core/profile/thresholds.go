package profile

import "strings"

// Thresholds 依個人檔案推導的營養門檻
// 每次請求重新計算，純函數，不跨檔案快取
type Thresholds struct {
	SugarGoodG   float64 `json:"sugar_good_g"`
	SugarHighG   float64 `json:"sugar_high_g"`
	SodiumGoodMG float64 `json:"sodium_good_mg"`
	SodiumHighMG float64 `json:"sodium_high_mg"`
	SatfatGoodG  float64 `json:"satfat_good_g"`
	SatfatHighG  float64 `json:"satfat_high_g"`
	ProteinMinG  float64 `json:"protein_min_g"`
	FiberMinG    float64 `json:"fiber_min_g"`
	AdditivesMax int     `json:"additives_max"`
}

// 六組狀況關鍵字（越南文 + 英文），命中即收緊對應門檻
var (
	diabetesKeywords     = []string{"tiểu đường", "đái tháo đường", "diabetes", "prediabetes"}
	weightLossKeywords   = []string{"giảm cân", "weight loss"}
	hypertensionKeywords = []string{"huyết áp", "tăng huyết áp", "hypertension"}
	heartKeywords        = []string{"tim mạch", "cholesterol", "mỡ máu", "cardiovascular"}
	muscleGainKeywords   = []string{"tăng cơ", "muscle"}
	digestionKeywords    = []string{"tiêu hoá", "dạ dày", "ibs", "ruột kích thích", "trào ngược", "digestive", "digestion"}
)

func containsAny(text string, keywords []string) bool {
	for _, k := range keywords {
		if strings.Contains(text, k) {
			return true
		}
	}
	return false
}

// TargetsFor 由健康檔案文字推導門檻
// 多個狀況同時成立時各自收緊自己的門檻，方向單調，不需要衝突處理；
// 無任何狀況時回傳預設門檻，永遠不回傳空值
func TargetsFor(p *HealthProfile) Thresholds {
	text := p.Text()

	hasDiabetes := containsAny(text, diabetesKeywords)
	weightLoss := containsAny(text, weightLossKeywords)
	hypertension := containsAny(text, hypertensionKeywords)
	heart := containsAny(text, heartKeywords)
	muscleGain := containsAny(text, muscleGainKeywords)
	digestion := containsAny(text, digestionKeywords)

	t := Thresholds{
		SugarGoodG:   8.0,
		SugarHighG:   12.0,
		SodiumGoodMG: 400.0,
		SodiumHighMG: 600.0,
		SatfatGoodG:  3.0,
		SatfatHighG:  5.0,
		ProteinMinG:  6.0,
		FiberMinG:    3.0,
		AdditivesMax: 4,
	}

	if hasDiabetes || weightLoss {
		t.SugarGoodG = 5.0
	}
	if hypertension {
		t.SodiumGoodMG = 200.0
	}
	if heart {
		t.SatfatGoodG = 2.0
		t.SatfatHighG = 3.5
	}
	if muscleGain {
		t.ProteinMinG = 10.0
	}
	if weightLoss || digestion {
		t.FiberMinG = 5.0
	}
	if digestion {
		t.AdditivesMax = 2
	}

	return t
}
