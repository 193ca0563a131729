// Package cache puts a Redis read-through cache in front of a catalog
// provider.
package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/safehaven-ai/safehaven-backend/internal/catalog/domain"
	"go.uber.org/atomic"
	"go.uber.org/zap"
)

const keyPrefix = "catalog:" // catalog:{dataset}, catalog:report:{id}

// Provider caches every dataset of the wrapped provider as JSON under a TTL.
// Redis failures degrade to direct reads.
type Provider struct {
	next   domain.Provider
	client *redis.Client
	ttl    time.Duration
	logger *zap.Logger

	hits   atomic.Int64
	misses atomic.Int64
}

func New(next domain.Provider, client *redis.Client, ttl time.Duration, logger *zap.Logger) *Provider {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Provider{next: next, client: client, ttl: ttl, logger: logger}
}

var _ domain.Provider = (*Provider)(nil)

// Stats reports cache hits and misses since start.
func (p *Provider) Stats() (hits, misses int64) {
	return p.hits.Load(), p.misses.Load()
}

func cached[T any](ctx context.Context, p *Provider, key string, load func(context.Context) (T, error)) (T, error) {
	key = keyPrefix + key
	raw, err := p.client.Get(ctx, key).Bytes()
	if err == nil {
		var v T
		if err := json.Unmarshal(raw, &v); err == nil {
			p.hits.Inc()
			return v, nil
		}
		p.logger.Warn("discarding undecodable catalog entry", zap.String("key", key))
	} else if !errors.Is(err, redis.Nil) {
		p.logger.Warn("catalog cache read failed", zap.String("key", key), zap.Error(err))
	}

	p.misses.Inc()
	v, err := load(ctx)
	if err != nil {
		return v, err
	}
	if data, err := json.Marshal(v); err == nil {
		if err := p.client.Set(ctx, key, data, p.ttl).Err(); err != nil {
			p.logger.Warn("catalog cache write failed", zap.String("key", key), zap.Error(err))
		}
	}
	return v, nil
}

func (p *Provider) HomeSummary(ctx context.Context) (domain.HomeSummary, error) {
	return cached(ctx, p, "home", p.next.HomeSummary)
}

func (p *Provider) About(ctx context.Context) (domain.About, error) {
	return cached(ctx, p, "about", p.next.About)
}

func (p *Provider) PropertyReports(ctx context.Context) ([]domain.PropertyReport, error) {
	return cached(ctx, p, "reports", p.next.PropertyReports)
}

func (p *Provider) PropertyReport(ctx context.Context, id string) (domain.PropertyReport, error) {
	return cached(ctx, p, "report:"+id, func(ctx context.Context) (domain.PropertyReport, error) {
		return p.next.PropertyReport(ctx, id)
	})
}

func (p *Provider) ReportRiskDistribution(ctx context.Context) ([]domain.RiskSlice, error) {
	return cached(ctx, p, "reports:risk", p.next.ReportRiskDistribution)
}

func (p *Provider) RegulatorCities(ctx context.Context) ([]domain.City, error) {
	return cached(ctx, p, "regulator:cities", p.next.RegulatorCities)
}

func (p *Provider) RegulatorRiskDistribution(ctx context.Context) ([]domain.RiskSlice, error) {
	return cached(ctx, p, "regulator:risk", p.next.RegulatorRiskDistribution)
}

func (p *Provider) Builders(ctx context.Context) ([]domain.Builder, error) {
	return cached(ctx, p, "regulator:builders", p.next.Builders)
}

func (p *Provider) TrendingIssues(ctx context.Context) ([]domain.TrendingIssue, error) {
	return cached(ctx, p, "regulator:trending", p.next.TrendingIssues)
}

func (p *Provider) ActionItems(ctx context.Context) ([]domain.ActionItem, error) {
	return cached(ctx, p, "regulator:actions", p.next.ActionItems)
}

// Invalidate drops every cached catalog entry and returns how many were
// removed.
func (p *Provider) Invalidate(ctx context.Context) (int, error) {
	var (
		cursor  uint64
		removed int
	)
	for {
		keys, next, err := p.client.Scan(ctx, cursor, keyPrefix+"*", 100).Result()
		if err != nil {
			return removed, fmt.Errorf("scan catalog keys: %w", err)
		}
		if len(keys) > 0 {
			n, err := p.client.Del(ctx, keys...).Result()
			if err != nil {
				return removed, fmt.Errorf("delete catalog keys: %w", err)
			}
			removed += int(n)
		}
		cursor = next
		if cursor == 0 {
			return removed, nil
		}
	}
}

// Warm invalidates the cache and reloads every dataset, reports included.
func (p *Provider) Warm(ctx context.Context) error {
	if _, err := p.Invalidate(ctx); err != nil {
		return err
	}

	loaders := []func(context.Context) error{
		func(ctx context.Context) error { _, err := p.HomeSummary(ctx); return err },
		func(ctx context.Context) error { _, err := p.About(ctx); return err },
		func(ctx context.Context) error { _, err := p.ReportRiskDistribution(ctx); return err },
		func(ctx context.Context) error { _, err := p.RegulatorCities(ctx); return err },
		func(ctx context.Context) error { _, err := p.RegulatorRiskDistribution(ctx); return err },
		func(ctx context.Context) error { _, err := p.Builders(ctx); return err },
		func(ctx context.Context) error { _, err := p.TrendingIssues(ctx); return err },
		func(ctx context.Context) error { _, err := p.ActionItems(ctx); return err },
	}
	var errs []error
	for _, load := range loaders {
		if err := load(ctx); err != nil {
			errs = append(errs, err)
		}
	}

	reports, err := p.PropertyReports(ctx)
	if err != nil {
		errs = append(errs, err)
	}
	for _, r := range reports {
		if _, err := p.PropertyReport(ctx, r.ID); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
