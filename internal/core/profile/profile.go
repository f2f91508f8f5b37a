package profile

import (
	"encoding/json"
	"strings"
)

// HealthProfile 使用者健康檔案，由呼叫端每次請求帶入，本核心不保存也不修改
type HealthProfile struct {
	Basic      Basic      `json:"basic,omitempty"`
	Conditions Conditions `json:"conditions,omitempty"`
	Allergies  StringList `json:"allergies,omitempty"`
	Goals      Goals      `json:"goals,omitempty"`
}

// Basic 基本生理資料
type Basic struct {
	Age           *int     `json:"age,omitempty"`
	Gender        string   `json:"gender,omitempty"`
	GenderLabel   string   `json:"genderLabel,omitempty"`
	Weight        *float64 `json:"weight,omitempty"`
	Height        *float64 `json:"height,omitempty"`
	ActivityLevel string   `json:"activityLevel,omitempty"`
}

// Conditions 健康狀況：勾選項 + 自由文字
type Conditions struct {
	Selected []string   `json:"selected,omitempty"`
	Other    StringList `json:"other,omitempty"`
}

// Goals 健康目標：勾選項 + 備註
type Goals struct {
	Selected []string `json:"selected,omitempty"`
	Note     string   `json:"note,omitempty"`
}

// Text 把所有狀況與目標文字接成一個小寫字串，供關鍵字比對
func (p *HealthProfile) Text() string {
	if p == nil {
		return ""
	}
	parts := make([]string, 0, 8)
	parts = append(parts, p.Conditions.Selected...)
	parts = append(parts, p.Conditions.Other...)
	parts = append(parts, p.Goals.Selected...)
	if p.Goals.Note != "" {
		parts = append(parts, p.Goals.Note)
	}
	return strings.ToLower(strings.Join(parts, " "))
}

// GoalsText 目標文字（勾選項 + 備註），供評分規則判斷目標相關加分
func (p *HealthProfile) GoalsText() string {
	if p == nil {
		return ""
	}
	parts := make([]string, 0, 4)
	for _, g := range p.Goals.Selected {
		if strings.TrimSpace(g) != "" {
			parts = append(parts, g)
		}
	}
	if strings.TrimSpace(p.Goals.Note) != "" {
		parts = append(parts, p.Goals.Note)
	}
	return strings.Join(parts, ", ")
}

// AllergySet 小寫化的過敏原集合
func (p *HealthProfile) AllergySet() map[string]struct{} {
	out := make(map[string]struct{})
	if p == nil {
		return out
	}
	for _, a := range p.Allergies {
		a = strings.ToLower(strings.TrimSpace(a))
		if a != "" {
			out[a] = struct{}{}
		}
	}
	return out
}

// StringList 接受字串陣列或單一字串（前端兩種格式都送過）
type StringList []string

func (l *StringList) UnmarshalJSON(data []byte) error {
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
