package nlp

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMatchQuickPatternGreetings(t *testing.T) {
	for _, text := range []string{"hi", "hello", "hey", "good morning", "Good Afternoon"} {
		result, ok := MatchQuickPattern(text)
		assert.True(t, ok, text)
		assert.Equal(t, "greet", result.SuggestedIntent)
		assert.GreaterOrEqual(t, result.Confidence, 0.90)
	}
}

func TestMatchQuickPatternFarewells(t *testing.T) {
	result, ok := MatchQuickPattern("goodbye")
	assert.True(t, ok)
	assert.Equal(t, "goodbye", result.SuggestedIntent)
}

func TestMatchQuickPatternListQueries(t *testing.T) {
	result, ok := MatchQuickPattern("list all students")
	assert.True(t, ok)
	assert.Equal(t, "list_students", result.SuggestedIntent)
	assert.InDelta(t, 0.90, result.Confidence, 0.001)

	result, ok = MatchQuickPattern("list all classes")
	assert.True(t, ok)
	assert.Equal(t, "list_classes", result.SuggestedIntent)
}

func TestMatchQuickPatternMiss(t *testing.T) {
	_, ok := MatchQuickPattern("create a student called Joshua")
	assert.False(t, ok)
}

func TestMatchQuickPatternCopiesContainers(t *testing.T) {
	first, _ := MatchQuickPattern("hi")
	first.ContextUpdate["poisoned"] = true
	first.Entities = append(first.Entities, Entity{Type: "x", Value: "y"})

	second, _ := MatchQuickPattern("hi")
	assert.Empty(t, second.ContextUpdate)
	assert.Empty(t, second.Entities)
}

func TestCacheAllowList(t *testing.T) {
	assert.True(t, Cacheable("hi"))
	assert.True(t, Cacheable("  List All Students  "))
	assert.False(t, Cacheable("create student Joshua Mwangi"))
	assert.False(t, Cacheable("goodbye"))
}
