package cache

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/zvrva/ticketing/config"
	"github.com/zvrva/ticketing/internal/domain"
)

// RedisCache is a read-side cache for the flight catalog and the issued-ticket
// reporting projection. The issuance path never consults it; admission is
// decided by the database locks alone.
type RedisCache struct {
	client     *redis.Client
	flightsTTL time.Duration
	reportTTL  time.Duration
}

func NewRedisCache(cfg config.RedisConfig, flightsTTL, reportTTL time.Duration) *RedisCache {
	return &RedisCache{
		client:     redis.NewClient(&redis.Options{Addr: cfg.Addr, Password: cfg.Password, DB: cfg.DB}),
		flightsTTL: flightsTTL,
		reportTTL:  reportTTL,
	}
}

func (c *RedisCache) GetFlights(ctx context.Context) ([]domain.Flight, error) {
	data, err := c.client.Get(ctx, flightsKey()).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, nil
		}
		return nil, err
	}

	var flights []domain.Flight
	if err := json.Unmarshal(data, &flights); err != nil {
		return nil, err
	}
	return flights, nil
}

func (c *RedisCache) SetFlights(ctx context.Context, flights []domain.Flight) error {
	payload, err := json.Marshal(flights)
	if err != nil {
		return err
	}
	return c.client.Set(ctx, flightsKey(), payload, c.flightsTTL).Err()
}

func (c *RedisCache) GetTicketReport(ctx context.Context) ([]domain.TicketReportRow, error) {
	data, err := c.client.Get(ctx, reportKey()).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, nil
		}
		return nil, err
	}

	var report []domain.TicketReportRow
	if err := json.Unmarshal(data, &report); err != nil {
		return nil, err
	}
	return report, nil
}

func (c *RedisCache) SetTicketReport(ctx context.Context, report []domain.TicketReportRow) error {
	payload, err := json.Marshal(report)
	if err != nil {
		return err
	}
	return c.client.Set(ctx, reportKey(), payload, c.reportTTL).Err()
}

// InvalidateTicketReport drops the cached projection; called after a
// successful issuance so the report catches up before the TTL would.
func (c *RedisCache) InvalidateTicketReport(ctx context.Context) error {
	return c.client.Del(ctx, reportKey()).Err()
}

func flightsKey() string {
	return "cache:flights"
}

func reportKey() string {
	return "cache:ticket_report"
}
