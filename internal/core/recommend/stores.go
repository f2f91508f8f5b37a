package recommend

import (
	"sort"
	"strings"

	"healthscan-api/internal/core/catalog"
)

// StoreMatch 推薦品項附帶的門市建議
type StoreMatch struct {
	Store    string `json:"store"`
	District string `json:"district"`
	Type     string `json:"type"`
}

// storesForItem 依品牌與類別替品項配對門市
// 連鎖名與品牌雙向子字串 +2；門市類別涵蓋 bucket 或原始類別 +1；0 分不列入
func storesForItem(stores []catalog.Store, item catalog.Item, topN int) []StoreMatch {
	brand := strings.ToLower(item.Brand)
	cat := strings.ToLower(item.Category)
	bucket := string(catalog.BucketOf(cat))

	type scoredStore struct {
		score int
		store catalog.Store
	}
	scored := make([]scoredStore, 0, len(stores))
	for _, s := range stores {
		sc := 0
		if brand != "" {
			for _, chain := range s.Chains {
				if strings.Contains(chain, brand) || strings.Contains(brand, chain) {
					sc += 2
					break
				}
			}
		}
		for _, c := range s.Categories {
			if c == bucket || c == cat {
				sc++
				break
			}
		}
		if sc > 0 {
			scored = append(scored, scoredStore{score: sc, store: s})
		}
	}

	sort.SliceStable(scored, func(i, j int) bool { return scored[i].score > scored[j].score })

	if topN > 0 && len(scored) > topN {
		scored = scored[:topN]
	}
	out := make([]StoreMatch, 0, len(scored))
	for _, s := range scored {
		out = append(out, StoreMatch{
			Store:    s.store.Store,
			District: s.store.District,
			Type:     s.store.Type,
		})
	}
	return out
}
