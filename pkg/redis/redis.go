package redis

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strconv"
	"time"

	jsoniter "github.com/json-iterator/go"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"

	"ShuleGolang/pkg/nlp"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// cacheTTL bounds how long a memoized canonical phrase survives. The
// allow-list is the only admission policy; the TTL just keeps a shared
// Redis from accumulating rows across deployments.
const cacheTTL = 24 * time.Hour

const keyPrefix = "assistant:preprocess:"

type IRedis interface {
	GetPreprocessResult(ctx context.Context, key string) (nlp.PreprocessResult, bool)
	SetPreprocessResult(ctx context.Context, key string, result nlp.PreprocessResult) error
}

type redisClient struct {
	client *redis.Client
	log    *logrus.Logger
}

func New(log *logrus.Logger) IRedis {
	db, _ := strconv.Atoi(os.Getenv("REDIS_DB"))
	redisAddr := os.Getenv("REDIS_ADDRESS")
	redisPassword := os.Getenv("REDIS_PASSWORD")

	log.Info(fmt.Sprintf("Connecting to Redis at %s...", redisAddr))

	client := redis.NewClient(&redis.Options{
		Addr:     redisAddr,
		Password: redisPassword,
		DB:       db,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if _, err := client.Ping(ctx).Result(); err != nil {
		log.Error(fmt.Sprintf("Failed to connect to Redis: %v", err))
	} else {
		log.Info("Successfully connected to Redis")
	}

	return &redisClient{client: client, log: log}
}

// NewWithClient wraps an existing connection; used by tests.
func NewWithClient(client *redis.Client, log *logrus.Logger) IRedis {
	return &redisClient{client: client, log: log}
}

// GetPreprocessResult returns the memoized result for a normalized phrase.
// Misses and decode failures both report absent; the pipeline recomputes.
func (r *redisClient) GetPreprocessResult(ctx context.Context, key string) (nlp.PreprocessResult, bool) {
	raw, err := r.client.Get(ctx, keyPrefix+key).Result()
	if errors.Is(err, redis.Nil) {
		return nlp.PreprocessResult{}, false
	}
	if err != nil {
		r.log.WithFields(logrus.Fields{
			"key":   key,
			"error": err.Error(),
		}).Warn("Cache lookup failed")
		return nlp.PreprocessResult{}, false
	}

	var result nlp.PreprocessResult
	if err := json.UnmarshalFromString(raw, &result); err != nil {
		r.log.WithFields(logrus.Fields{
			"key":   key,
			"error": err.Error(),
		}).Warn("Cache entry undecodable, treating as miss")
		return nlp.PreprocessResult{}, false
	}

	if result.Entities == nil {
		result.Entities = []nlp.Entity{}
	}
	if result.ContextUpdate == nil {
		result.ContextUpdate = map[string]interface{}{}
	}

	r.log.WithFields(logrus.Fields{"key": key}).Debug("Cache hit")
	return result, true
}

// SetPreprocessResult memoizes a result for a canonical phrase. Keys
// outside the allow-list are ignored so entity-bearing free text is never
// served stale.
func (r *redisClient) SetPreprocessResult(ctx context.Context, key string, result nlp.PreprocessResult) error {
	if !nlp.Cacheable(key) {
		return nil
	}

	raw, err := json.MarshalToString(result)
	if err != nil {
		return err
	}

	if err := r.client.Set(ctx, keyPrefix+key, raw, cacheTTL).Err(); err != nil {
		r.log.WithFields(logrus.Fields{
			"key":   key,
			"error": err.Error(),
		}).Warn("Cache write failed")
		return err
	}
	return nil
}
