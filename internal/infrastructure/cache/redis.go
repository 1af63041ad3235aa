package cache

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/PedroSmithhh/sistema-de-agendamento-de-exames/internal/domain/repository"
	"github.com/PedroSmithhh/sistema-de-agendamento-de-exames/internal/infrastructure/config"
)

const labelKeyPrefix = "examtriage:label:"

// NewRedisClient connects to redis and verifies the connection
func NewRedisClient(cfg *config.RedisConfig) (*redis.Client, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr(),
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("failed to connect to redis: %w", err)
	}

	return client, nil
}

type labelCache struct {
	client redis.Cmdable
	ttl    time.Duration
}

// NewLabelCache stores pipeline labels in redis, keyed by a hash of the text
func NewLabelCache(client redis.Cmdable, ttl time.Duration) repository.LabelCache {
	return &labelCache{client: client, ttl: ttl}
}

func (c *labelCache) GetMany(ctx context.Context, texts []string) ([]string, error) {
	labels := make([]string, len(texts))
	if len(texts) == 0 {
		return labels, nil
	}

	keys := make([]string, len(texts))
	for i, text := range texts {
		keys[i] = LabelKey(text)
	}

	values, err := c.client.MGet(ctx, keys...).Result()
	if err != nil && !errors.Is(err, redis.Nil) {
		return nil, fmt.Errorf("failed to read labels: %w", err)
	}

	for i, v := range values {
		if s, ok := v.(string); ok {
			labels[i] = s
		}
	}

	return labels, nil
}

func (c *labelCache) SetMany(ctx context.Context, texts, labels []string) error {
	if len(texts) != len(labels) {
		return fmt.Errorf("got %d labels for %d texts", len(labels), len(texts))
	}
	if len(texts) == 0 {
		return nil
	}

	pipe := c.client.Pipeline()
	for i, text := range texts {
		pipe.Set(ctx, LabelKey(text), labels[i], c.ttl)
	}
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("failed to store labels: %w", err)
	}
	return nil
}

// LabelKey returns the redis key holding the label of text
func LabelKey(text string) string {
	sum := sha256.Sum256([]byte(text))
	return labelKeyPrefix + hex.EncodeToString(sum[:])
}
