package recommend

import (
	"context"
	"math"
	"sort"
	"strings"
	"time"

	"healthscan-api/internal/core/catalog"
	"healthscan-api/internal/core/label"
	"healthscan-api/internal/core/nutrition"
	"healthscan-api/internal/core/profile"
	"healthscan-api/internal/pkg/common"

	"go.uber.org/zap"
)

// Options 編排層參數
type Options struct {
	DefaultTopK int // 無狀態推薦的預設筆數
	PoolSize    int // 分頁會話凍結的快照大小
	PageSize    int // 每頁筆數
	MaxStores   int // 每個品項附帶的門市上限
}

// N100g 回傳給前端的每 100g 營養摘要
type N100g struct {
	SugarsG  *float64 `json:"sugars_g"`
	SodiumMG *int     `json:"sodium_mg"`
	SatfatG  *float64 `json:"satfat_g"`
	ProteinG *float64 `json:"protein_g"`
	Kcal     *float64 `json:"kcal"`
}

// ItemResult 單一推薦品項
type ItemResult struct {
	Name        string               `json:"name"`
	Brand       string               `json:"brand"`
	Barcode     string               `json:"barcode,omitempty"`
	Category    string               `json:"category"`
	Image       string               `json:"image,omitempty"`
	HealthScore float64              `json:"health_score"`
	HealthLevel string               `json:"health_level"`
	Reasons     []string             `json:"reasons"`
	NutriScore  nutrition.NutriScore `json:"nutriscore"`
	N100g       N100g                `json:"n_100g"`
	Stores      []StoreMatch         `json:"stores"`
}

// Result 無狀態推薦結果
type Result struct {
	Category string       `json:"category"`
	Bucket   string       `json:"bucket"`
	Items    []ItemResult `json:"items"`
	Total    int          `json:"total"`
}

// Page 分頁推薦結果
type Page struct {
	ChatID   string       `json:"chat_id"`
	Category string       `json:"category"`
	Bucket   string       `json:"bucket"`
	Items    []ItemResult `json:"items"`
	HasMore  bool         `json:"has_more"`
	Total    int          `json:"total"`
}

// Service 推薦編排：類別判定 → 候選池 → 過敏排除 → 評分排序 → 截取
// 目錄與門市載入後唯讀，所有方法可並行呼叫
type Service struct {
	items    []catalog.Item
	stores   []catalog.Store
	sessions SessionStore
	matcher  AllergenMatcher
	opts     Options
	locks    *keyedMutex
}

// NewService 創建推薦服務
func NewService(items []catalog.Item, stores []catalog.Store, sessions SessionStore, opts Options) *Service {
	if opts.DefaultTopK <= 0 {
		opts.DefaultTopK = 5
	}
	if opts.PoolSize <= 0 {
		opts.PoolSize = 50
	}
	if opts.PageSize <= 0 {
		opts.PageSize = 5
	}
	return &Service{
		items:    items,
		stores:   stores,
		sessions: sessions,
		matcher:  SubstringMatcher{},
		opts:     opts,
		locks:    newKeyedMutex(),
	}
}

// CatalogSize 目錄品項數
func (s *Service) CatalogSize() int { return len(s.items) }

// StoreCount 門市清單筆數
func (s *Service) StoreCount() int { return len(s.stores) }

// resolveCategory 類別判定：呼叫端覆寫優先，否則從標籤文字猜
func (s *Service) resolveCategory(override string, lbl *label.Label) string {
	if c := strings.TrimSpace(strings.ToLower(override)); c != "" {
		return c
	}
	if lbl != nil {
		return catalog.GuessCategory(lbl.Text())
	}
	return string(catalog.BucketMisc)
}

// rank 核心排序：同 bucket 候選池（空則退回全目錄）、過敏排除、評分、穩定降冪
func (s *Service) rank(p *profile.HealthProfile, category string) []ItemResult {
	bucket := catalog.BucketOf(category)

	pool := make([]catalog.Item, 0, len(s.items))
	for _, item := range s.items {
		if catalog.BucketOf(item.Category) == bucket {
			pool = append(pool, item)
		}
	}
	// 候選池空則退回全目錄，寧可給出不同類別的建議也不交白卷
	if len(pool) == 0 {
		pool = s.items
	}

	allergies := p.AllergySet()
	goals := p.GoalsText()

	results := make([]ItemResult, 0, len(pool))
	for _, item := range pool {
		if hasAllergen(s.matcher, item.Allergens, allergies) {
			continue
		}
		score, reasons := nutrition.ScoreItem(item, goals)
		isBeverage := catalog.BucketOf(item.Category) == catalog.BucketBeverage
		results = append(results, ItemResult{
			Name:        item.Name,
			Brand:       item.Brand,
			Barcode:     item.Barcode,
			Category:    item.Category,
			Image:       item.Image,
			HealthScore: round2(score),
			HealthLevel: nutrition.HealthLevel(score),
			Reasons:     reasons,
			NutriScore:  nutrition.Grade(item.Nutrition, isBeverage),
			N100g:       summarize(item.Nutrition),
			Stores:      storesForItem(s.stores, item, s.opts.MaxStores),
		})
	}

	// 穩定排序：同分品項維持目錄順序，結果可重現
	sort.SliceStable(results, func(i, j int) bool {
		return results[i].HealthScore > results[j].HealthScore
	})
	return results
}

// Recommend 無狀態推薦：每次重新排序並取前 k 筆
func (s *Service) Recommend(ctx context.Context, p *profile.HealthProfile, lbl *label.Label, categoryOverride string, topK int) (*Result, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if len(s.items) == 0 {
		return nil, common.ErrCatalogEmpty
	}

	category := s.resolveCategory(categoryOverride, lbl)
	ranked := s.rank(p, category)

	k := topK
	if k <= 0 {
		k = s.opts.DefaultTopK
	}
	if k < 1 {
		k = 1
	}
	if k > len(ranked) {
		k = len(ranked)
	}

	common.LogInfo("Recommendation served",
		zap.String("category", category),
		zap.Int("pool", len(ranked)),
		zap.Int("top_k", k),
	)

	return &Result{
		Category: category,
		Bucket:   string(catalog.BucketOf(category)),
		Items:    ranked[:k],
		Total:    len(ranked),
	}, nil
}

// RecommendPage 分頁推薦：首次呼叫凍結快照，之後依游標翻頁
// 同一 chat_id 的請求以鍵鎖串行，游標不跳號不重複
func (s *Service) RecommendPage(ctx context.Context, chatID string, p *profile.HealthProfile, lbl *label.Label, categoryOverride string) (*Page, error) {
	if len(s.items) == 0 {
		return nil, common.ErrCatalogEmpty
	}

	unlock := s.locks.Lock(chatID)
	defer unlock()

	session, err := s.sessions.Get(ctx, chatID)
	if err != nil {
		common.LogWarn("Session lookup failed, starting fresh",
			zap.String("chat_id", chatID),
			zap.Error(err),
		)
		session = nil
	}

	if session == nil {
		category := s.resolveCategory(categoryOverride, lbl)
		ranked := s.rank(p, category)
		if len(ranked) > s.opts.PoolSize {
			ranked = ranked[:s.opts.PoolSize]
		}
		session = &Session{
			ChatID:    chatID,
			Category:  category,
			Bucket:    string(catalog.BucketOf(category)),
			Cursor:    0,
			Items:     ranked,
			CreatedAt: time.Now(),
		}
	}

	start := session.Cursor
	if start > len(session.Items) {
		start = len(session.Items)
	}
	end := start + s.opts.PageSize
	if end > len(session.Items) {
		end = len(session.Items)
	}
	page := session.Items[start:end]
	session.Cursor = end

	if err := s.sessions.Put(ctx, session); err != nil {
		common.LogWarn("Session save failed",
			zap.String("chat_id", chatID),
			zap.Error(err),
		)
	}

	return &Page{
		ChatID:   chatID,
		Category: session.Category,
		Bucket:   session.Bucket,
		Items:    page,
		HasMore:  session.Cursor < len(session.Items),
		Total:    len(session.Items),
	}, nil
}

// Reset 捨棄會話，下一次分頁請求會重新凍結快照
func (s *Service) Reset(ctx context.Context, chatID string) error {
	unlock := s.locks.Lock(chatID)
	defer unlock()
	return s.sessions.Delete(ctx, chatID)
}

// summarize 擷取回傳用的營養摘要，鈉換算成 mg 整數
func summarize(n catalog.NutrientProfile) N100g {
	out := N100g{
		SugarsG:  n.SugarsG,
		SatfatG:  n.SatfatG,
		ProteinG: n.ProteinG,
		Kcal:     n.EnergyKcal,
	}
	if n.SodiumG != nil {
		mg := int(math.Round(*n.SodiumG * 1000))
		out.SodiumMG = &mg
	}
	return out
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
