package recommend

import (
	"context"
	"sync"
	"time"

	"healthscan-api/internal/pkg/common"

	"go.uber.org/zap"
)

// Session 一個對話的推薦分頁狀態：凍結的排序快照 + 游標
// 建立後目錄重載不影響進行中的會話
type Session struct {
	ChatID    string       `json:"chat_id"`
	Category  string       `json:"category"`
	Bucket    string       `json:"bucket"`
	Cursor    int          `json:"cursor"`
	Items     []ItemResult `json:"items"`
	CreatedAt time.Time    `json:"created_at"`
}

// SessionStore 會話存取抽象，由編排層注入
// Get 不存在時回傳 (nil, nil)
type SessionStore interface {
	Get(ctx context.Context, chatID string) (*Session, error)
	Put(ctx context.Context, session *Session) error
	Delete(ctx context.Context, chatID string) error
	Close() error
}

// sessionEntry 記錄最後存取時間，供閒置回收
type sessionEntry struct {
	session    *Session
	lastAccess time.Time
}

// sessionStats 會話統計
type sessionStats struct {
	hits      int64
	misses    int64
	evictions int64
}

// MemoryStore 行程內會話儲存
// 來源實作從不回收閒置會話；這裡補上閒置 TTL + 定期清理
type MemoryStore struct {
	mu              sync.RWMutex
	store           map[string]*sessionEntry
	stats           sessionStats
	idleTTL         time.Duration
	cleanupInterval time.Duration
	done            chan struct{}
	closeOnce       sync.Once
}

// NewMemoryStore 創建記憶體會話儲存並啟動清理協程
func NewMemoryStore(idleTTL, cleanupInterval time.Duration) *MemoryStore {
	m := &MemoryStore{
		store:           make(map[string]*sessionEntry),
		idleTTL:         idleTTL,
		cleanupInterval: cleanupInterval,
		done:            make(chan struct{}),
	}
	go m.startCleanup()

	common.LogInfo("Session store initialized",
		zap.Duration("idle_ttl", idleTTL),
		zap.Duration("cleanup_interval", cleanupInterval),
	)
	return m
}

// Get 取得會話，同時刷新最後存取時間
func (m *MemoryStore) Get(_ context.Context, chatID string) (*Session, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	entry, ok := m.store[chatID]
	if !ok {
		m.stats.misses++
		return nil, nil
	}
	entry.lastAccess = time.Now()
	m.stats.hits++
	return entry.session, nil
}

// Put 寫入會話
func (m *MemoryStore) Put(_ context.Context, session *Session) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.store[session.ChatID] = &sessionEntry{
		session:    session,
		lastAccess: time.Now(),
	}
	return nil
}

// Delete 移除會話
func (m *MemoryStore) Delete(_ context.Context, chatID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	delete(m.store, chatID)
	return nil
}

// Close 停止清理協程
func (m *MemoryStore) Close() error {
	m.closeOnce.Do(func() { close(m.done) })
	return nil
}

// startCleanup 定期回收閒置會話
func (m *MemoryStore) startCleanup() {
	ticker := time.NewTicker(m.cleanupInterval)
	defer ticker.Stop()

	for {
		select {
		case <-m.done:
			return
		case <-ticker.C:
			m.evictIdle()
		}
	}
}

func (m *MemoryStore) evictIdle() {
	now := time.Now()
	m.mu.Lock()
	defer m.mu.Unlock()

	evicted := 0
	for id, entry := range m.store {
		if now.Sub(entry.lastAccess) > m.idleTTL {
			delete(m.store, id)
			evicted++
		}
	}
	m.stats.evictions += int64(evicted)
	if evicted > 0 {
		common.LogDebug("Idle sessions evicted",
			zap.Int("evicted", evicted),
			zap.Int("remaining", len(m.store)),
		)
	}
}

// keyedMutex 依對話 ID 的互斥鎖
// 同一對話的翻頁請求必須串行，否則游標會跳號或重複
type keyedMutex struct {
	mu    sync.Mutex
	locks map[string]*lockEntry
}

type lockEntry struct {
	mu   sync.Mutex
	refs int
}

func newKeyedMutex() *keyedMutex {
	return &keyedMutex{locks: make(map[string]*lockEntry)}
}

// Lock 鎖住指定鍵，回傳對應的解鎖函數
func (k *keyedMutex) Lock(key string) func() {
	k.mu.Lock()
	entry, ok := k.locks[key]
	if !ok {
		entry = &lockEntry{}
		k.locks[key] = entry
	}
	entry.refs++
	k.mu.Unlock()

	entry.mu.Lock()
	return func() {
		entry.mu.Unlock()
		k.mu.Lock()
		entry.refs--
		if entry.refs == 0 {
			delete(k.locks, key)
		}
		k.mu.Unlock()
	}
}
