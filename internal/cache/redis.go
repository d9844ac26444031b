package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"docsummary/internal/config"
	"docsummary/internal/model"
)

// RedisCache implements DocumentCache on top of Redis with a fixed TTL per entry.
type RedisCache struct {
	client *redis.Client
	ttl    time.Duration
}

// NewRedis connects to Redis and verifies connectivity with a short ping.
func NewRedis(cfg config.RedisConfig) (*RedisCache, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("redis ping: %w", err)
	}

	return &RedisCache{client: client, ttl: time.Duration(cfg.TTLSec) * time.Second}, nil
}

var _ DocumentCache = (*RedisCache)(nil)

func (r *RedisCache) key(id string) string {
	return "document:" + id
}

func (r *RedisCache) SetDocument(ctx context.Context, doc *model.Document) error {
	data, err := json.Marshal(doc)
	if err != nil {
		return fmt.Errorf("marshal document: %w", err)
	}
	if err := r.client.Set(ctx, r.key(doc.ID), data, r.ttl).Err(); err != nil {
		return fmt.Errorf("cache set: %w", err)
	}
	return nil
}

func (r *RedisCache) GetDocument(ctx context.Context, id string) (*model.Document, error) {
	val, err := r.client.Get(ctx, r.key(id)).Result()
	if errors.Is(err, redis.Nil) {
		return nil, nil // miss
	}
	if err != nil {
		return nil, fmt.Errorf("cache get: %w", err)
	}

	var doc model.Document
	if err := json.Unmarshal([]byte(val), &doc); err != nil {
		return nil, fmt.Errorf("unmarshal cached document: %w", err)
	}
	return &doc, nil
}

func (r *RedisCache) DeleteDocument(ctx context.Context, id string) error {
	if err := r.client.Del(ctx, r.key(id)).Err(); err != nil {
		return fmt.Errorf("cache delete: %w", err)
	}
	return nil
}
