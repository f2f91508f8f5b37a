package recommend

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"
)

const redisSessionPrefix = "reco:session:"

// RedisStore Redis 會話儲存，多副本部署時共享會話
// 閒置回收交給 Redis TTL，每次讀取滑動續期
type RedisStore struct {
	client  *redis.Client
	idleTTL time.Duration
}

// NewRedisStore 創建 Redis 會話儲存並測試連接
func NewRedisStore(addr string, idleTTL time.Duration) (*RedisStore, error) {
	client := redis.NewClient(&redis.Options{
		Addr: addr,
	})

	// 測試連接
	if err := client.Ping(context.Background()).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}

	return &RedisStore{
		client:  client,
		idleTTL: idleTTL,
	}, nil
}

// Get 獲取會話並滑動續期
func (r *RedisStore) Get(ctx context.Context, chatID string) (*Session, error) {
	key := redisSessionPrefix + chatID

	data, err := r.client.Get(ctx, key).Bytes()
	if err != nil {
		if err == redis.Nil {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get session: %w", err)
	}

	var session Session
	if err := json.Unmarshal(data, &session); err != nil {
		return nil, fmt.Errorf("failed to unmarshal session: %w", err)
	}

	// 滑動續期，失敗不影響讀取結果
	r.client.Expire(ctx, key, r.idleTTL)
	return &session, nil
}

// Put 寫入會話
func (r *RedisStore) Put(ctx context.Context, session *Session) error {
	data, err := json.Marshal(session)
	if err != nil {
		return fmt.Errorf("failed to marshal session: %w", err)
	}

	key := redisSessionPrefix + session.ChatID
	if err := r.client.Set(ctx, key, data, r.idleTTL).Err(); err != nil {
		return fmt.Errorf("failed to set session: %w", err)
	}
	return nil
}

// Delete 移除會話
func (r *RedisStore) Delete(ctx context.Context, chatID string) error {
	if err := r.client.Del(ctx, redisSessionPrefix+chatID).Err(); err != nil {
		return fmt.Errorf("failed to delete session: %w", err)
	}
	return nil
}

// Close 關閉 Redis 連接
func (r *RedisStore) Close() error {
	return r.client.Close()
}
