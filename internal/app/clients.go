package app

import (
	"fmt"
	"strings"

	"github.com/yungbote/wishlist-backend/internal/clients/redis"
	"github.com/yungbote/wishlist-backend/internal/platform/logger"
)

type Clients struct {
	Sessions redis.SessionCache
}

func wireClients(log *logger.Logger, cfg Config) (Clients, error) {
	log.Info("Wiring clients...")

	// Redis
	sessions := redis.SessionCache(redis.NoopSessionCache{})
	if strings.TrimSpace(cfg.Redis.Addr) != "" {
		sc, err := redis.NewSessionCache(log, cfg.redisConfig())
		if err != nil {
			return Clients{}, fmt.Errorf("init redis session cache: %w", err)
		}
		sessions = sc
	} else {
		log.Warn("REDIS_ADDR not set; bearer checks go to the database on every request")
	}

	return Clients{Sessions: sessions}, nil
}

func (c *Clients) Close() {
	if c == nil {
		return
	}
	if c.Sessions != nil {
		_ = c.Sessions.Close()
	}
}
