package recommend

import "strings"

// AllergenMatcher 過敏原比對策略
// 獨立成介面：目前是子字串比對，之後可換成正規的過敏原本體論而不動編排層
type AllergenMatcher interface {
	Matches(itemTag, profileTerm string) bool
}

// SubstringMatcher 大小寫不敏感的雙向包含比對
// 個人檔案的過敏詞出現在品項標籤中，或品項標籤以該詞結尾，皆視為命中
type SubstringMatcher struct{}

// Matches 實現 AllergenMatcher
func (SubstringMatcher) Matches(itemTag, profileTerm string) bool {
	tag := strings.ToLower(strings.TrimSpace(itemTag))
	term := strings.ToLower(strings.TrimSpace(profileTerm))
	if tag == "" || term == "" {
		return false
	}
	return strings.Contains(tag, term) || strings.HasSuffix(tag, term)
}

// hasAllergen 品項任一過敏原標籤命中任一過敏詞即排除
func hasAllergen(matcher AllergenMatcher, itemAllergens []string, allergies map[string]struct{}) bool {
	if len(allergies) == 0 {
		return false
	}
	for _, tag := range itemAllergens {
		for term := range allergies {
			if matcher.Matches(tag, term) {
				return true
			}
		}
	}
	return false
}
