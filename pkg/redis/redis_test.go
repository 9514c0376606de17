package redis

import (
	"context"
	"testing"

	"github.com/alicebob/miniredis/v2"
	goredis "github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ShuleGolang/pkg/nlp"
)

func newTestCache(t *testing.T) IRedis {
	t.Helper()

	server := miniredis.RunT(t)
	client := goredis.NewClient(&goredis.Options{Addr: server.Addr()})

	log := logrus.New()
	log.SetLevel(logrus.PanicLevel)

	return NewWithClient(client, log)
}

func TestCacheRoundTrip(t *testing.T) {
	cache := newTestCache(t)
	ctx := context.Background()

	result := nlp.PreprocessResult{
		NormalizedText:  "hi",
		SuggestedIntent: "greet",
		Entities:        []nlp.Entity{},
		Confidence:      0.95,
		ContextUpdate:   map[string]interface{}{},
	}

	require.NoError(t, cache.SetPreprocessResult(ctx, "hi", result))

	got, ok := cache.GetPreprocessResult(ctx, "hi")
	require.True(t, ok)
	assert.Equal(t, "greet", got.SuggestedIntent)
	assert.InDelta(t, 0.95, got.Confidence, 0.001)
	assert.NotNil(t, got.Entities)
	assert.NotNil(t, got.ContextUpdate)
}

func TestCacheMiss(t *testing.T) {
	cache := newTestCache(t)

	_, ok := cache.GetPreprocessResult(context.Background(), "never stored")
	assert.False(t, ok)
}

func TestCacheRejectsNonAllowListedKeys(t *testing.T) {
	cache := newTestCache(t)
	ctx := context.Background()

	result := nlp.PreprocessResult{
		NormalizedText:  "create student joshua mwangi",
		SuggestedIntent: "create_student",
		Entities:        []nlp.Entity{{Type: "student_name", Value: "Joshua Mwangi"}},
		Confidence:      0.8,
	}

	require.NoError(t, cache.SetPreprocessResult(ctx, "create student joshua mwangi", result))

	_, ok := cache.GetPreprocessResult(ctx, "create student joshua mwangi")
	assert.False(t, ok, "entity-bearing free text must never be cached")
}

func TestCacheAllowListedPhrases(t *testing.T) {
	cache := newTestCache(t)
	ctx := context.Background()

	for _, phrase := range []string{"hi", "hello", "hey", "greet", "list all students", "list all classes"} {
		result := nlp.PreprocessResult{NormalizedText: phrase, Confidence: 0.9}
		require.NoError(t, cache.SetPreprocessResult(ctx, phrase, result))

		_, ok := cache.GetPreprocessResult(ctx, phrase)
		assert.True(t, ok, phrase)
	}
}
