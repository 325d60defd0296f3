package pipeline

import (
	"context"
	"log"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/LENAX/autotune/pkg/core/errs"
	"github.com/LENAX/autotune/pkg/core/identity"
	"github.com/LENAX/autotune/pkg/storage"
)

// DefaultIdentityTTL 身份缓存默认有效期
const DefaultIdentityTTL = time.Hour

// identityEntry 缓存条目（内部使用）
type identityEntry struct {
	user       *identity.User
	expireTime time.Time
}

// IdentityCache 身份解析缓存（对外导出）
// 以令牌为键的读穿缓存：未命中时查询存储，存储也未命中时创建新用户
type IdentityCache struct {
	users storage.UserRepository
	ttl   time.Duration

	mu      sync.RWMutex
	entries map[string]*identityEntry
}

// NewIdentityCache 创建身份缓存
// ttl<=0时使用默认1小时
func NewIdentityCache(users storage.UserRepository, ttl time.Duration) *IdentityCache {
	if ttl <= 0 {
		ttl = DefaultIdentityTTL
	}
	c := &IdentityCache{
		users:   users,
		ttl:     ttl,
		entries: make(map[string]*identityEntry),
	}
	// 启动清理协程，定期清理过期条目
	go c.cleanupExpired()
	return c
}

// Resolve 解析调用方身份
// token必须是合法的v4 UUID，role必须非空；存储未命中时以给定角色创建新用户
func (c *IdentityCache) Resolve(ctx context.Context, token, role string) (*identity.User, error) {
	if token == "" {
		return nil, errs.Unauthorizedf("user ID must be provided")
	}

	parsed, err := uuid.Parse(token)
	if err != nil || parsed.Version() != 4 {
		return nil, errs.Unauthorizedf("invalid user ID format")
	}

	if role == "" {
		return nil, errs.Unauthorizedf("role must be provided")
	}

	// 缓存命中且未过期
	c.mu.RLock()
	entry, ok := c.entries[token]
	c.mu.RUnlock()
	if ok && time.Now().Before(entry.expireTime) {
		return entry.user, nil
	}

	// 查询存储
	user, err := c.users.GetUser(ctx, token)
	if err != nil {
		return nil, errs.Wrap("failed to look up user", err)
	}

	// 存储未命中，创建新用户
	if user == nil {
		log.Printf("user %s not found in the database, creating new user", token)
		user = &identity.User{
			ID:         token,
			Role:       role,
			IsActive:   true,
			CreateTime: time.Now(),
		}
		if err := c.users.CreateUser(ctx, user); err != nil {
			return nil, errs.Wrap("failed to create user", err)
		}
	}

	c.mu.Lock()
	c.entries[token] = &identityEntry{user: user, expireTime: time.Now().Add(c.ttl)}
	c.mu.Unlock()

	return user, nil
}

// cleanupExpired 清理过期条目（内部方法）
func (c *IdentityCache) cleanupExpired() {
	ticker := time.NewTicker(1 * time.Minute)
	defer ticker.Stop()

	for range ticker.C {
		c.mu.Lock()
		now := time.Now()
		for key, entry := range c.entries {
			if now.After(entry.expireTime) {
				delete(c.entries, key)
			}
		}
		c.mu.Unlock()
	}
}
