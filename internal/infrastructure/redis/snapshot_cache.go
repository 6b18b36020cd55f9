// Package redis implementa el cache de snapshots de inventario sobre Redis.
package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/kabidey/privity-sub000/internal/application/inventory"
	"github.com/kabidey/privity-sub000/internal/domain/entity"
	"github.com/kabidey/privity-sub000/pkg/config"
)

var _ inventory.SnapshotCache = (*SnapshotCache)(nil)

// SnapshotCache cachea snapshots de inventario serializados como JSON con TTL corto.
// Un miss o un error de Redis nunca es fatal: el proyector recalcula contra la DB.
type SnapshotCache struct {
	client *redis.Client
	ttl    time.Duration
}

// NewSnapshotCache conecta a Redis y valida con un ping.
func NewSnapshotCache(ctx context.Context, cfg config.RedisConfig) (*SnapshotCache, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})
	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("ping redis: %w", err)
	}
	ttl := time.Duration(cfg.TTLSec) * time.Second
	if ttl <= 0 {
		ttl = 30 * time.Second
	}
	return &SnapshotCache{client: client, ttl: ttl}, nil
}

func key(securityID string) string {
	return "inventory:snapshot:" + securityID
}

func (c *SnapshotCache) Get(ctx context.Context, securityID string) (*entity.InventorySnapshot, bool, error) {
	raw, err := c.client.Get(ctx, key(securityID)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, false, nil
		}
		return nil, false, fmt.Errorf("redis get: %w", err)
	}
	var snap entity.InventorySnapshot
	if err := json.Unmarshal(raw, &snap); err != nil {
		// Entrada corrupta: tratarla como miss y dejar que el Set la reemplace.
		return nil, false, nil
	}
	return &snap, true, nil
}

func (c *SnapshotCache) Set(ctx context.Context, snap *entity.InventorySnapshot) error {
	raw, err := json.Marshal(snap)
	if err != nil {
		return fmt.Errorf("marshal snapshot: %w", err)
	}
	if err := c.client.Set(ctx, key(snap.SecurityID), raw, c.ttl).Err(); err != nil {
		return fmt.Errorf("redis set: %w", err)
	}
	return nil
}

func (c *SnapshotCache) Invalidate(ctx context.Context, securityID string) error {
	if err := c.client.Del(ctx, key(securityID)).Err(); err != nil {
		return fmt.Errorf("redis del: %w", err)
	}
	return nil
}

// Close cierra la conexión a Redis.
func (c *SnapshotCache) Close() error {
	return c.client.Close()
}
