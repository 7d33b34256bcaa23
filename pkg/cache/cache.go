package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// TTL 상수 정의
const (
	TTLAutosave = 24 * time.Hour  // 자동 저장 초안
	TTLTemplate = 5 * time.Minute // 공개 템플릿 목록
)

// 캐시 키 접두사
const (
	PrefixAutosave  = "autosave:"
	PrefixTemplates = "templates:"
)

// ErrUnavailable Redis 클라이언트 없음
var ErrUnavailable = errors.New("redis not available")

// Service Redis 캐시 서비스 인터페이스
type Service interface {
	// 자동 저장 (raw JSON 그대로 보관)
	GetAutosave(ctx context.Context, kind, id string) ([]byte, error)
	SetAutosave(ctx context.Context, kind, id string, data []byte, ttl time.Duration) error
	DeleteAutosave(ctx context.Context, kind, id string) error

	// 공개 템플릿 목록
	GetTemplates(ctx context.Context, category string, page, limit int) ([]byte, error)
	SetTemplates(ctx context.Context, category string, page, limit int, data interface{}) error
	InvalidateTemplates(ctx context.Context) error
}

// redisCache Redis 기반 캐시 구현
type redisCache struct {
	client *redis.Client
}

// NewService 새로운 캐시 서비스 생성
func NewService(client *redis.Client) Service {
	return &redisCache{client: client}
}

// AutosaveKey autosave:{kind}:{id}
func AutosaveKey(kind, id string) string {
	return PrefixAutosave + kind + ":" + id
}

// IsMiss reports whether err means the key does not exist
func IsMiss(err error) bool {
	return errors.Is(err, redis.Nil)
}

// ========================================
// 자동 저장
// ========================================

// GetAutosave returns redis.Nil when nothing is stored
func (c *redisCache) GetAutosave(ctx context.Context, kind, id string) ([]byte, error) {
	if c.client == nil {
		return nil, ErrUnavailable
	}
	return c.client.Get(ctx, AutosaveKey(kind, id)).Bytes()
}

// SetAutosave unlike Set, a missing client is an error: drafts must not vanish silently
func (c *redisCache) SetAutosave(ctx context.Context, kind, id string, data []byte, ttl time.Duration) error {
	if c.client == nil {
		return ErrUnavailable
	}
	if ttl <= 0 {
		ttl = TTLAutosave
	}
	return c.client.Set(ctx, AutosaveKey(kind, id), data, ttl).Err()
}

func (c *redisCache) DeleteAutosave(ctx context.Context, kind, id string) error {
	if c.client == nil {
		return nil
	}
	return c.client.Del(ctx, AutosaveKey(kind, id)).Err()
}

// ========================================
// 공개 템플릿 목록
// ========================================

func (c *redisCache) templatesKey(category string, page, limit int) string {
	if category == "" {
		category = "all"
	}
	return fmt.Sprintf("%s%s:%d:%d", PrefixTemplates, category, page, limit)
}

func (c *redisCache) GetTemplates(ctx context.Context, category string, page, limit int) ([]byte, error) {
	if c.client == nil {
		return nil, ErrUnavailable
	}
	return c.client.Get(ctx, c.templatesKey(category, page, limit)).Bytes()
}

func (c *redisCache) SetTemplates(ctx context.Context, category string, page, limit int, data interface{}) error {
	if c.client == nil {
		return nil
	}
	jsonData, err := json.Marshal(data)
	if err != nil {
		return err
	}
	return c.client.Set(ctx, c.templatesKey(category, page, limit), jsonData, TTLTemplate).Err()
}

func (c *redisCache) InvalidateTemplates(ctx context.Context) error {
	if c.client == nil {
		return nil
	}
	return c.deleteByPattern(ctx, PrefixTemplates+"*")
}

// ========================================
// 내부 유틸리티
// ========================================

func (c *redisCache) deleteByPattern(ctx context.Context, pattern string) error {
	iter := c.client.Scan(ctx, 0, pattern, 100).Iterator()
	for iter.Next(ctx) {
		if err := c.client.Del(ctx, iter.Val()).Err(); err != nil {
			return err
		}
	}
	return iter.Err()
}
