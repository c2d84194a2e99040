package chat

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/serenitybot/serenity/internal/model"
)

const (
	// 会话缓存过期时间
	sessionTTL = 24 * time.Hour
	// Redis key 前缀
	sessionKeyPrefix = "session:"
)

// SessionCache 会话的 Redis 读穿缓存
// 追加和删除时由服务层失效，缓存异常只记日志不影响主链路
type SessionCache struct {
	client *redis.Client
}

// NewSessionCache 创建会话缓存
func NewSessionCache(client *redis.Client) *SessionCache {
	return &SessionCache{client: client}
}

// Get 读取缓存的会话
func (c *SessionCache) Get(ctx context.Context, sessionID string) (*model.ChatSession, bool) {
	data, err := c.client.Get(ctx, sessionKeyPrefix+sessionID).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, false
	}
	if err != nil {
		log.Printf("chat: session cache get failed: %v", err)
		return nil, false
	}

	var session model.ChatSession
	if err := json.Unmarshal(data, &session); err != nil {
		log.Printf("chat: session cache decode failed: %v", err)
		return nil, false
	}
	return &session, true
}

// Set 写入会话缓存
func (c *SessionCache) Set(ctx context.Context, session *model.ChatSession) error {
	data, err := json.Marshal(session)
	if err != nil {
		return fmt.Errorf("failed to encode session: %w", err)
	}
	return c.client.Set(ctx, sessionKeyPrefix+session.ID, data, sessionTTL).Err()
}

// Invalidate 删除缓存的会话
func (c *SessionCache) Invalidate(ctx context.Context, sessionID string) error {
	return c.client.Del(ctx, sessionKeyPrefix+sessionID).Err()
}
