package observability

import (
	"context"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	"github.com/yungbote/wishlist-backend/internal/platform/logger"
)

// Metrics holds the process-wide counters exported on the metrics listener.
// A nil *Metrics is valid and records nothing.
type Metrics struct {
	apiRequests *CounterVec
	apiLatency  *HistogramVec
	apiInflight *Gauge
	apiErrors   *CounterVec
	resourceOps *CounterVec
	authEvents  *CounterVec
	dbStats     *GaugeVec
	redisUp     *Gauge
	redisPing   *Gauge
	scrapeEvery time.Duration
}

type MetricsConfig struct {
	Enabled        bool
	ScrapeInterval time.Duration
}

func NewMetrics(log *logger.Logger, cfg MetricsConfig) *Metrics {
	if !cfg.Enabled {
		return nil
	}
	every := cfg.ScrapeInterval
	if every <= 0 {
		every = 15 * time.Second
	}
	m := &Metrics{
		apiRequests: NewCounterVec("wl_api_requests_total", "API requests by method/route/status.", []string{"method", "route", "status"}),
		apiLatency: NewHistogramVec(
			"wl_api_request_duration_seconds",
			"API request latency in seconds by method/route.",
			[]string{"method", "route"},
			[]float64{0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2, 5},
		),
		apiInflight: NewGauge("wl_api_inflight_requests", "In-flight API requests."),
		apiErrors:   NewCounterVec("wl_api_errors_total", "API error responses by code.", []string{"code"}),
		resourceOps: NewCounterVec("wl_resource_operations_total", "Resource operations by kind/op/outcome.", []string{"kind", "op", "outcome"}),
		authEvents:  NewCounterVec("wl_auth_events_total", "Account events by event/outcome.", []string{"event", "outcome"}),
		dbStats:     NewGaugeVec("wl_db_pool", "Database pool stats.", []string{"metric"}),
		redisUp:     NewGauge("wl_redis_up", "Redis connectivity (1=up, 0=down)."),
		redisPing:   NewGauge("wl_redis_ping_seconds", "Redis ping latency in seconds."),
		scrapeEvery: every,
	}
	if log != nil {
		log.Info("Metrics enabled", "scrape_interval", every.String())
	}
	return m
}

func (m *Metrics) ObserveAPI(method, route string, status int, dur time.Duration) {
	if m == nil {
		return
	}
	if route == "" {
		route = "unmatched"
	}
	method = strings.ToUpper(method)
	m.apiRequests.Inc(method, route, strconv.Itoa(status))
	m.apiLatency.Observe(dur.Seconds(), method, route)
}

func (m *Metrics) InflightInc() {
	if m != nil {
		m.apiInflight.Inc()
	}
}

func (m *Metrics) InflightDec() {
	if m != nil {
		m.apiInflight.Dec()
	}
}

func (m *Metrics) IncAPIError(code string) {
	if m != nil {
		m.apiErrors.Inc(code)
	}
}

func (m *Metrics) IncResourceOp(kind, op string, err error) {
	if m == nil {
		return
	}
	m.resourceOps.Inc(kind, op, outcome(err))
}

func (m *Metrics) IncAuthEvent(event string, err error) {
	if m == nil {
		return
	}
	m.authEvents.Inc(event, outcome(err))
}

func outcome(err error) string {
	if err != nil {
		return "error"
	}
	return "ok"
}

// Handler serves the Prometheus text exposition.
func (m *Metrics) Handler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		if m == nil {
			w.WriteHeader(http.StatusServiceUnavailable)
			return
		}
		w.Header().Set("Content-Type", "text/plain; version=0.0.4")
		for _, f := range []family{
			m.apiRequests, m.apiLatency, m.apiInflight, m.apiErrors,
			m.resourceOps, m.authEvents, m.dbStats, m.redisUp, m.redisPing,
		} {
			if err := f.WritePrometheus(w); err != nil {
				return
			}
		}
	})
}

// StartDBCollector samples the gorm connection pool until ctx is done.
func (m *Metrics) StartDBCollector(ctx context.Context, log *logger.Logger, db *gorm.DB) {
	if m == nil || db == nil {
		return
	}
	go m.every(ctx, func() {
		sqlDB, err := db.DB()
		if err != nil {
			if log != nil {
				log.Warn("metrics: db stats unavailable", "error", err)
			}
			return
		}
		s := sqlDB.Stats()
		m.dbStats.Set(float64(s.OpenConnections), "open_connections")
		m.dbStats.Set(float64(s.InUse), "in_use")
		m.dbStats.Set(float64(s.Idle), "idle")
		m.dbStats.Set(float64(s.WaitCount), "wait_count")
		m.dbStats.Set(s.WaitDuration.Seconds(), "wait_duration_seconds")
	})
}

// StartRedisCollector pings the session cache backend until ctx is done.
func (m *Metrics) StartRedisCollector(ctx context.Context, log *logger.Logger, opts *redis.Options) {
	if m == nil || opts == nil || strings.TrimSpace(opts.Addr) == "" {
		return
	}
	rdb := redis.NewClient(opts)
	go func() {
		<-ctx.Done()
		_ = rdb.Close()
	}()
	go m.every(ctx, func() {
		start := time.Now()
		if err := rdb.Ping(ctx).Err(); err != nil {
			m.redisUp.Set(0)
			if log != nil && ctx.Err() == nil {
				log.Warn("metrics: redis ping failed", "error", err)
			}
			return
		}
		m.redisUp.Set(1)
		m.redisPing.Set(time.Since(start).Seconds())
	})
}

func (m *Metrics) every(ctx context.Context, fn func()) {
	ticker := time.NewTicker(m.scrapeEvery)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			fn()
		}
	}
}
