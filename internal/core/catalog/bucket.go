package catalog

import "strings"

// Bucket 粗分類，唯一的可比性依據
type Bucket string

const (
	BucketBeverage  Bucket = "beverage"
	BucketSnack     Bucket = "snack"
	BucketNoodle    Bucket = "noodle"
	BucketMilk      Bucket = "milk"
	BucketOil       Bucket = "oil"
	BucketCondiment Bucket = "condiment"
	BucketMisc      Bucket = "misc"
)

// bucketMembers 各 bucket 的固定類別詞彙
// 順序即比對順序（"yogurt" 同時出現在 beverage 與 milk，先到先得）
var bucketMembers = []struct {
	bucket  Bucket
	members map[string]struct{}
}{
	{BucketBeverage, set("beverage", "tea", "coffee", "water", "yogurt")},
	{BucketSnack, set("snack", "biscuit", "cereal")},
	{BucketNoodle, set("noodle/dumpling", "noodle", "dumpling", "vermicelli")},
	{BucketMilk, set("milk", "yogurt")},
	{BucketOil, set("oil", "condiment")},
	{BucketCondiment, set("condiment")},
	{BucketMisc, set("misc")},
}

func set(words ...string) map[string]struct{} {
	m := make(map[string]struct{}, len(words))
	for _, w := range words {
		m[w] = struct{}{}
	}
	return m
}

// BucketOf 將類別字串映射到唯一 bucket，未知一律歸 misc
func BucketOf(category string) Bucket {
	cat := strings.ToLower(strings.TrimSpace(category))
	for _, b := range bucketMembers {
		if _, ok := b.members[cat]; ok {
			return b.bucket
		}
	}
	return BucketMisc
}

// SameBucket 判斷兩個類別是否落在同一 bucket
func SameBucket(a, b string) bool {
	return BucketOf(a) == BucketOf(b)
}

// categoryKeywords 從標籤文字猜類別用的關鍵字表（越南文 + 英文）
// 順序固定，取第一個命中的類別
var categoryKeywords = []struct {
	category string
	words    []string
}{
	{"tea", []string{"trà", "oolong", "tea"}},
	{"coffee", []string{"cà phê", "coffee"}},
	{"milk", []string{"sữa", "yogurt", "yaourt", "sữa chua"}},
	{"snack", []string{"snack", "bánh", "chips", "crackers", "wafer", "cookie"}},
	{"noodle/dumpling", []string{"mì", "bún", "phở", "miến", "dumpling", "mandu"}},
	{"oil", []string{"dầu", "olive", "pesto"}},
	{"condiment", []string{"tương", "nước mắm", "sốt", "sauce", "ketchup", "mayonnaise", "mù tạt", "mustard"}},
	{"water", []string{"nước khoáng", "nước uống", "water"}},
}

// GuessCategory 以關鍵字掃描標籤文字猜測類別，僅供參考，呼叫端可覆寫
func GuessCategory(labelText string) string {
	text := strings.ToLower(labelText)
	for _, kw := range categoryKeywords {
		for _, w := range kw.words {
			if strings.Contains(text, w) {
				return kw.category
			}
		}
	}
	return string(BucketMisc)
}
