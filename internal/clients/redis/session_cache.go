package redis

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	goredis "github.com/redis/go-redis/v9"

	"github.com/yungbote/wishlist-backend/internal/platform/logger"
)

// SessionCache remembers which user an access token resolved to, so bearer
// checks can skip the user_token lookup until the entry expires or is evicted.
type SessionCache interface {
	Get(ctx context.Context, accessToken string) (uuid.UUID, bool, error)
	Set(ctx context.Context, accessToken string, userID uuid.UUID, ttl time.Duration) error
	Delete(ctx context.Context, accessTokens ...string) error
	Close() error
}

type sessionCache struct {
	log    *logger.Logger
	rdb    goredis.UniversalClient
	prefix string
}

type Config struct {
	Addr     string
	Password string
	DB       int
	Prefix   string
}

func NewSessionCache(log *logger.Logger, cfg Config) (SessionCache, error) {
	if log == nil {
		return nil, fmt.Errorf("logger required")
	}
	addr := strings.TrimSpace(cfg.Addr)
	if addr == "" {
		return nil, fmt.Errorf("missing REDIS_ADDR")
	}
	rdb := goredis.NewClient(&goredis.Options{
		Addr:        addr,
		Password:    cfg.Password,
		DB:          cfg.DB,
		DialTimeout: 5 * time.Second,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := rdb.Ping(ctx).Err(); err != nil {
		_ = rdb.Close()
		return nil, fmt.Errorf("redis ping: %w", err)
	}
	return NewSessionCacheFromClient(log, rdb, cfg.Prefix), nil
}

func NewSessionCacheFromClient(log *logger.Logger, rdb goredis.UniversalClient, prefix string) SessionCache {
	if prefix == "" {
		prefix = "session:"
	}
	return &sessionCache{
		log:    log.With("service", "RedisSessionCache"),
		rdb:    rdb,
		prefix: prefix,
	}
}

func (s *sessionCache) key(token string) string { return s.prefix + token }

func (s *sessionCache) Get(ctx context.Context, accessToken string) (uuid.UUID, bool, error) {
	raw, err := s.rdb.Get(ctx, s.key(accessToken)).Result()
	if errors.Is(err, goredis.Nil) {
		return uuid.Nil, false, nil
	}
	if err != nil {
		return uuid.Nil, false, err
	}
	id, err := uuid.Parse(raw)
	if err != nil {
		s.log.Warn("Dropping malformed session entry", "error", err)
		_ = s.rdb.Del(ctx, s.key(accessToken)).Err()
		return uuid.Nil, false, nil
	}
	return id, true, nil
}

func (s *sessionCache) Set(ctx context.Context, accessToken string, userID uuid.UUID, ttl time.Duration) error {
	if ttl <= 0 {
		return nil
	}
	return s.rdb.Set(ctx, s.key(accessToken), userID.String(), ttl).Err()
}

func (s *sessionCache) Delete(ctx context.Context, accessTokens ...string) error {
	if len(accessTokens) == 0 {
		return nil
	}
	keys := make([]string, 0, len(accessTokens))
	for _, t := range accessTokens {
		keys = append(keys, s.key(t))
	}
	return s.rdb.Del(ctx, keys...).Err()
}

func (s *sessionCache) Close() error { return s.rdb.Close() }

// NoopSessionCache is used when REDIS_ADDR is unset.
type NoopSessionCache struct{}

func (NoopSessionCache) Get(context.Context, string) (uuid.UUID, bool, error) {
	return uuid.Nil, false, nil
}
func (NoopSessionCache) Set(context.Context, string, uuid.UUID, time.Duration) error { return nil }
func (NoopSessionCache) Delete(context.Context, ...string) error { return nil }
func (NoopSessionCache) Close() error { return nil }
