package cache

import (
	"context"
	"encoding/json"
	"log/slog"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/guild-framework/guild-backend/pkg/surveys/types"
)

// CatalogSource is the read side the cache sits in front of, implemented by
// the guild DB service.
type CatalogSource interface {
	GetActiveQuestionsByIDs(ids []string) ([]types.Question, error)
	GetQuestionByID(id string) (types.Question, error)
	GetSurveyBlueprintByDescriptor(descriptor string) (types.SurveyBlueprint, error)
}

// CatalogCache is a read-through redis cache for question and blueprint
// lookups. Both are immutable once surveys reference them, so a short TTL is
// only needed to pick up newly added catalog entries.
type CatalogCache struct {
	client *redis.Client
	source CatalogSource
	ttl    time.Duration
}

func NewCatalogCache(client *redis.Client, source CatalogSource, ttl time.Duration) *CatalogCache {
	return &CatalogCache{
		client: client,
		source: source,
		ttl:    ttl,
	}
}

func (c *CatalogCache) GetActiveQuestionsByIDs(ids []string) ([]types.Question, error) {
	ctx := context.Background()
	key := "questions:active:" + strings.Join(ids, ",")

	data, err := c.client.Get(ctx, key).Result()
	if err == nil {
		var questions []types.Question
		if err := json.Unmarshal([]byte(data), &questions); err == nil {
			return questions, nil
		}
	} else if err != redis.Nil {
		slog.Debug("question cache read failed", slog.String("error", err.Error()))
	}

	questions, err := c.source.GetActiveQuestionsByIDs(ids)
	if err != nil {
		return nil, err
	}
	c.set(ctx, key, questions)
	return questions, nil
}

func (c *CatalogCache) GetQuestionByID(id string) (types.Question, error) {
	ctx := context.Background()
	key := "question:" + id

	data, err := c.client.Get(ctx, key).Result()
	if err == nil {
		var question types.Question
		if err := json.Unmarshal([]byte(data), &question); err == nil {
			return question, nil
		}
	} else if err != redis.Nil {
		slog.Debug("question cache read failed", slog.String("error", err.Error()))
	}

	question, err := c.source.GetQuestionByID(id)
	if err != nil {
		return question, err
	}
	c.set(ctx, key, question)
	return question, nil
}

func (c *CatalogCache) GetSurveyBlueprintByDescriptor(descriptor string) (types.SurveyBlueprint, error) {
	ctx := context.Background()
	key := "surveyBlueprint:" + descriptor

	data, err := c.client.Get(ctx, key).Result()
	if err == nil {
		var blueprint types.SurveyBlueprint
		if err := json.Unmarshal([]byte(data), &blueprint); err == nil {
			return blueprint, nil
		}
	} else if err != redis.Nil {
		slog.Debug("blueprint cache read failed", slog.String("error", err.Error()))
	}

	blueprint, err := c.source.GetSurveyBlueprintByDescriptor(descriptor)
	if err != nil {
		return blueprint, err
	}
	c.set(ctx, key, blueprint)
	return blueprint, nil
}

func (c *CatalogCache) set(ctx context.Context, key string, value interface{}) {
	data, err := json.Marshal(value)
	if err != nil {
		return
	}
	if err := c.client.Set(ctx, key, data, c.ttl).Err(); err != nil {
		slog.Debug("catalog cache write failed", slog.String("key", key), slog.String("error", err.Error()))
	}
}
