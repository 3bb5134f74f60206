// Package cache provides a Redis-backed read-through cache for the courier
// message dictionary. The dictionary changes rarely but is consulted on every
// classified message, so lookups are served from Redis and refreshed from the
// database on miss.
package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"backoffice/internal/core/domain/model/courier"
	"backoffice/internal/core/ports"

	"github.com/redis/go-redis/v9"
)

// dictionaryTTL bounds staleness when an invalidation is lost.
const dictionaryTTL = 7 * 24 * time.Hour

const (
	textsKeyFmt = "cs_messages:texts:%d:%s"
	allTypesKey = "all"
)

// CachedCSMessageRepository decorates a CSMessageRepository with Redis
// caching. Cache failures degrade to the underlying repository; they are
// logged but never surfaced to the classifier.
type CachedCSMessageRepository struct {
	source ports.CSMessageRepository
	client *redis.Client
	logger *slog.Logger
}

// NewCachedCSMessageRepository creates a caching decorator over the given
// dictionary repository.
func NewCachedCSMessageRepository(
	source ports.CSMessageRepository,
	client *redis.Client,
	logger *slog.Logger,
) *CachedCSMessageRepository {
	return &CachedCSMessageRepository{
		source: source,
		client: client,
		logger: logger.With("component", "cs_message_cache"),
	}
}

// GetTexts retrieves dictionary texts from cache, falling back to the source
// repository and repopulating the cache on miss.
func (r *CachedCSMessageRepository) GetTexts(
	ctx context.Context,
	courierID courier.ID,
	msgType *courier.MessageType,
) ([]string, error) {
	key := textsKey(courierID, msgType)

	if texts, ok := r.getCached(ctx, key); ok {
		return texts, nil
	}

	texts, err := r.source.GetTexts(ctx, courierID, msgType)
	if err != nil {
		return nil, err
	}

	r.setCached(ctx, key, texts)
	return texts, nil
}

// Add persists the entry through the source repository and invalidates the
// affected cache keys.
func (r *CachedCSMessageRepository) Add(
	ctx context.Context,
	courierID courier.ID,
	msgType courier.MessageType,
	text string,
) error {
	if err := r.source.Add(ctx, courierID, msgType, text); err != nil {
		return err
	}

	keys := []string{
		textsKey(courierID, &msgType),
		textsKey(courierID, nil),
	}
	if err := r.client.Del(ctx, keys...).Err(); err != nil {
		r.logger.Warn("failed to invalidate dictionary cache",
			"courier_id", int(courierID),
			"error", err)
	}

	return nil
}

func (r *CachedCSMessageRepository) getCached(ctx context.Context, key string) ([]string, bool) {
	data, err := r.client.Get(ctx, key).Result()
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			r.logger.Warn("dictionary cache read failed", "key", key, "error", err)
		}
		return nil, false
	}

	var texts []string
	if err := json.Unmarshal([]byte(data), &texts); err != nil {
		r.logger.Warn("dictionary cache entry corrupt", "key", key, "error", err)
		return nil, false
	}

	return texts, true
}

func (r *CachedCSMessageRepository) setCached(ctx context.Context, key string, texts []string) {
	encoded, err := json.Marshal(texts)
	if err != nil {
		return
	}

	if err := r.client.Set(ctx, key, encoded, dictionaryTTL).Err(); err != nil {
		r.logger.Warn("dictionary cache write failed", "key", key, "error", err)
	}
}

func textsKey(courierID courier.ID, msgType *courier.MessageType) string {
	typePart := allTypesKey
	if msgType != nil {
		typePart = msgType.String()
	}
	return fmt.Sprintf(textsKeyFmt, int(courierID), typePart)
}
